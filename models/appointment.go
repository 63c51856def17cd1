package models

import (
	"time"
)

// AppointmentStatus represents the current status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusPaid      AppointmentStatus = "paid"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
)

// allowedAppointmentTransitions is the full transition table. Anything not
// listed here is rejected before a backend call is made.
var allowedAppointmentTransitions = map[AppointmentStatus]map[AppointmentStatus]bool{
	AppointmentStatusPending: {
		AppointmentStatusConfirmed: true,
		AppointmentStatusCancelled: true,
		AppointmentStatusRejected:  true,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusPaid:      true,
		AppointmentStatusCancelled: true,
	},
	AppointmentStatusPaid: {
		AppointmentStatusCompleted: true,
		AppointmentStatusCancelled: true,
	},
	AppointmentStatusCompleted: {},
	AppointmentStatusCancelled: {},
	AppointmentStatusRejected:  {},
}

// ValidateTransition reports whether requested is a legal next status for
// current. Unknown statuses never validate.
func ValidateTransition(current, requested AppointmentStatus) bool {
	next, ok := allowedAppointmentTransitions[current]
	if !ok {
		return false
	}
	return next[requested]
}

// IsTerminal reports whether no further transitions are possible
func (s AppointmentStatus) IsTerminal() bool {
	next, ok := allowedAppointmentTransitions[s]
	return ok && len(next) == 0
}

// Appointment represents a scheduled engagement between a client and a professional
type Appointment struct {
	ID             uint              `json:"id"`
	ClientID       uint              `json:"client_id"`
	ProfessionalID uint              `json:"professional_id"`
	ServiceName    string            `json:"service_name"`
	Date           time.Time         `json:"date"`
	Time           string            `json:"time"`
	Status         AppointmentStatus `json:"status"`
	EstimatedCost  *float64          `json:"estimated_cost,omitempty"`
	TotalCost      *float64          `json:"total_cost,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	Client       *User                `json:"client,omitempty"`
	Professional *ProfessionalProfile `json:"professional,omitempty"`
}

// StatusDisplay carries the presentation metadata for a status value
type StatusDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var appointmentStatusDisplay = map[AppointmentStatus]StatusDisplay{
	AppointmentStatusPending:   {Label: "Pending", Color: "#FF9800", Icon: "clock"},
	AppointmentStatusConfirmed: {Label: "Confirmed", Color: "#2196F3", Icon: "check-circle"},
	AppointmentStatusPaid:      {Label: "Paid", Color: "#673AB7", Icon: "credit-card"},
	AppointmentStatusCompleted: {Label: "Completed", Color: "#4CAF50", Icon: "check-all"},
	AppointmentStatusCancelled: {Label: "Cancelled", Color: "#9E9E9E", Icon: "close-circle"},
	AppointmentStatusRejected:  {Label: "Rejected", Color: "#F44336", Icon: "cancel"},
}

// Display returns the presentation metadata for the status, with a neutral
// fallback for values the table doesn't know
func (s AppointmentStatus) Display() StatusDisplay {
	if d, ok := appointmentStatusDisplay[s]; ok {
		return d
	}
	return StatusDisplay{Label: string(s), Color: "#9E9E9E", Icon: "help-circle"}
}

// DashboardStats holds the counters derived from the appointment list
type DashboardStats struct {
	TotalAppointments     int `json:"total_appointments"`
	UpcomingAppointments  int `json:"upcoming_appointments"`
	CompletedAppointments int `json:"completed_appointments"`
}

// ComputeDashboardStats recalculates the counters from the authoritative
// appointment list. Upcoming counts pending and confirmed appointments.
func ComputeDashboardStats(appointments []Appointment) DashboardStats {
	stats := DashboardStats{TotalAppointments: len(appointments)}
	for _, a := range appointments {
		switch a.Status {
		case AppointmentStatusPending, AppointmentStatusConfirmed:
			stats.UpcomingAppointments++
		case AppointmentStatusCompleted:
			stats.CompletedAppointments++
		}
	}
	return stats
}
