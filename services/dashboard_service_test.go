package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-gateway/models"
	"marketplace-gateway/services"
)

// fakeAppointmentAPI is a hand-rolled backend stand-in tracking every call
type fakeAppointmentAPI struct {
	mu           sync.Mutex
	appointments []models.Appointment
	listCalls    int
	updateCalls  int
	updateErr    error
}

func (f *fakeAppointmentAPI) ListAppointments(ctx context.Context, token string, status string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]models.Appointment, len(f.appointments))
	copy(out, f.appointments)
	return out, nil
}

func (f *fakeAppointmentAPI) UpdateAppointmentStatus(ctx context.Context, token string, id uint, status models.AppointmentStatus) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].Status = status
			updated := f.appointments[i]
			return &updated, nil
		}
	}
	return nil, errors.New("not found")
}

func newDashboardFixture(appointments ...models.Appointment) (*services.DashboardService, *fakeAppointmentAPI) {
	api := &fakeAppointmentAPI{appointments: appointments}
	svc := services.NewDashboardService(api, nil, "http://pay.local/checkout")
	return svc, api
}

func TestDashboardRefreshComputesStats(t *testing.T) {
	svc, _ := newDashboardFixture(
		models.Appointment{ID: 1, Status: models.AppointmentStatusPending},
		models.Appointment{ID: 2, Status: models.AppointmentStatusConfirmed},
		models.Appointment{ID: 3, Status: models.AppointmentStatusCompleted},
	)

	appointments, stats, err := svc.Refresh(context.Background(), 7, "tok")
	require.NoError(t, err)

	assert.Len(t, appointments, 3)
	assert.Equal(t, 2, stats.UpcomingAppointments)
	assert.Equal(t, 1, stats.CompletedAppointments)
}

func TestUpdateStatusInvalidTransitionSkipsBackend(t *testing.T) {
	svc, api := newDashboardFixture(
		models.Appointment{ID: 1, Status: models.AppointmentStatusCompleted},
	)

	_, _, err := svc.Refresh(context.Background(), 7, "tok")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), 7, "tok", 1, models.AppointmentStatusPending)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	assert.Equal(t, 0, api.updateCalls, "illegal transition must never reach the backend")
}

func TestUpdateStatusRollsBackOnFailure(t *testing.T) {
	svc, api := newDashboardFixture(
		models.Appointment{ID: 1, Status: models.AppointmentStatusPending},
	)
	_, _, err := svc.Refresh(context.Background(), 7, "tok")
	require.NoError(t, err)

	api.updateErr = errors.New("backend down")

	_, err = svc.UpdateStatus(context.Background(), 7, "tok", 1, models.AppointmentStatusConfirmed)
	require.Error(t, err)

	appointments, stats := svc.Snapshot(7)
	require.Len(t, appointments, 1)
	assert.Equal(t, models.AppointmentStatusPending, appointments[0].Status, "optimistic update must be rolled back")
	assert.Equal(t, 1, stats.UpcomingAppointments)
}

func TestUpdateStatusSuccessRefreshesStats(t *testing.T) {
	svc, api := newDashboardFixture(
		models.Appointment{ID: 1, Status: models.AppointmentStatusPaid},
		models.Appointment{ID: 2, Status: models.AppointmentStatusPending},
	)
	_, _, err := svc.Refresh(context.Background(), 7, "tok")
	require.NoError(t, err)
	listCallsBefore := api.listCalls

	result, err := svc.UpdateStatus(context.Background(), 7, "tok", 1, models.AppointmentStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentStatusCompleted, result.Appointment.Status)
	assert.Equal(t, 1, result.Stats.CompletedAppointments)
	assert.Equal(t, 1, result.Stats.UpcomingAppointments)
	assert.Empty(t, result.PaymentURL)
	assert.Greater(t, api.listCalls, listCallsBefore, "success must trigger a full refresh")
}

func TestUpdateStatusConfirmReturnsPaymentURL(t *testing.T) {
	svc, _ := newDashboardFixture(
		models.Appointment{ID: 9, Status: models.AppointmentStatusPending},
	)
	_, _, err := svc.Refresh(context.Background(), 7, "tok")
	require.NoError(t, err)

	result, err := svc.UpdateStatus(context.Background(), 7, "tok", 9, models.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, "http://pay.local/checkout/appointments/9", result.PaymentURL)
}

func TestUpdateStatusUnknownAppointment(t *testing.T) {
	svc, _ := newDashboardFixture()
	_, _, err := svc.Refresh(context.Background(), 7, "tok")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), 7, "tok", 42, models.AppointmentStatusConfirmed)
	assert.ErrorIs(t, err, services.ErrAppointmentNotFound)
}
