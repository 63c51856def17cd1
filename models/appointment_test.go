package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace-gateway/models"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name      string
		current   models.AppointmentStatus
		requested models.AppointmentStatus
		want      bool
	}{
		{"pending to confirmed", models.AppointmentStatusPending, models.AppointmentStatusConfirmed, true},
		{"pending to cancelled", models.AppointmentStatusPending, models.AppointmentStatusCancelled, true},
		{"pending to rejected", models.AppointmentStatusPending, models.AppointmentStatusRejected, true},
		{"pending to paid skips confirm", models.AppointmentStatusPending, models.AppointmentStatusPaid, false},
		{"pending to completed skips everything", models.AppointmentStatusPending, models.AppointmentStatusCompleted, false},
		{"confirmed to paid", models.AppointmentStatusConfirmed, models.AppointmentStatusPaid, true},
		{"confirmed to cancelled", models.AppointmentStatusConfirmed, models.AppointmentStatusCancelled, true},
		{"confirmed to rejected", models.AppointmentStatusConfirmed, models.AppointmentStatusRejected, false},
		{"confirmed to completed", models.AppointmentStatusConfirmed, models.AppointmentStatusCompleted, false},
		{"paid to completed", models.AppointmentStatusPaid, models.AppointmentStatusCompleted, true},
		{"paid to cancelled", models.AppointmentStatusPaid, models.AppointmentStatusCancelled, true},
		{"paid to confirmed goes backwards", models.AppointmentStatusPaid, models.AppointmentStatusConfirmed, false},
		{"completed is terminal", models.AppointmentStatusCompleted, models.AppointmentStatusPending, false},
		{"cancelled is terminal", models.AppointmentStatusCancelled, models.AppointmentStatusConfirmed, false},
		{"rejected is terminal", models.AppointmentStatusRejected, models.AppointmentStatusPending, false},
		{"unknown current", models.AppointmentStatus("bogus"), models.AppointmentStatusConfirmed, false},
		{"unknown requested", models.AppointmentStatusPending, models.AppointmentStatus("bogus"), false},
		{"self transition", models.AppointmentStatusPending, models.AppointmentStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ValidateTransition(tt.current, tt.requested))
		})
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	assert.True(t, models.AppointmentStatusCompleted.IsTerminal())
	assert.True(t, models.AppointmentStatusCancelled.IsTerminal())
	assert.True(t, models.AppointmentStatusRejected.IsTerminal())
	assert.False(t, models.AppointmentStatusPending.IsTerminal())
	assert.False(t, models.AppointmentStatusConfirmed.IsTerminal())
	assert.False(t, models.AppointmentStatus("bogus").IsTerminal())
}

func TestComputeDashboardStats(t *testing.T) {
	appointments := []models.Appointment{
		{ID: 1, Status: models.AppointmentStatusPending},
		{ID: 2, Status: models.AppointmentStatusConfirmed},
		{ID: 3, Status: models.AppointmentStatusCompleted},
	}

	stats := models.ComputeDashboardStats(appointments)

	assert.Equal(t, 3, stats.TotalAppointments)
	assert.Equal(t, 2, stats.UpcomingAppointments)
	assert.Equal(t, 1, stats.CompletedAppointments)
}

func TestComputeDashboardStatsEmpty(t *testing.T) {
	stats := models.ComputeDashboardStats(nil)
	assert.Zero(t, stats.TotalAppointments)
	assert.Zero(t, stats.UpcomingAppointments)
	assert.Zero(t, stats.CompletedAppointments)
}

func TestStatusDisplayFallback(t *testing.T) {
	known := models.AppointmentStatusConfirmed.Display()
	assert.Equal(t, "Confirmed", known.Label)

	unknown := models.AppointmentStatus("weird").Display()
	assert.Equal(t, "weird", unknown.Label)
	assert.NotEmpty(t, unknown.Color)
}
