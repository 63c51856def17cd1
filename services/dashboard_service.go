package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"marketplace-gateway/models"
)

var (
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// AppointmentAPI is the slice of the backend the dashboard needs
type AppointmentAPI interface {
	ListAppointments(ctx context.Context, token string, status string) ([]models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, token string, id uint, status models.AppointmentStatus) (*models.Appointment, error)
}

// AppointmentNotifier pushes appointment status events to the UI. May be nil.
type AppointmentNotifier interface {
	NotifyAppointmentStatus(userID uint, appointmentID uint, status models.AppointmentStatus)
}

// dashboardState is the in-memory dashboard of one professional
type dashboardState struct {
	mu           sync.Mutex
	appointments []models.Appointment
	stats        models.DashboardStats
	isFetching   bool
	loaded       bool
}

// DashboardService owns the professional dashboard workflow: the appointment
// list, the derived counters and the status transitions with optimistic
// updates and rollback.
type DashboardService struct {
	api             AppointmentAPI
	notifier        AppointmentNotifier
	tracker         *OptimisticTracker
	checkoutBaseURL string

	mu     sync.Mutex
	boards map[uint]*dashboardState
}

// NewDashboardService creates the service. checkoutBaseURL is where the UI
// is redirected after a confirm transition.
func NewDashboardService(api AppointmentAPI, notifier AppointmentNotifier, checkoutBaseURL string) *DashboardService {
	return &DashboardService{
		api:             api,
		notifier:        notifier,
		tracker:         NewOptimisticTracker(),
		checkoutBaseURL: checkoutBaseURL,
		boards:          make(map[uint]*dashboardState),
	}
}

func (s *DashboardService) board(userID uint) *dashboardState {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.boards[userID]
	if !ok {
		b = &dashboardState{}
		s.boards[userID] = b
	}
	return b
}

// Snapshot returns the current in-memory appointment list and stats without
// touching the backend
func (s *DashboardService) Snapshot(userID uint) ([]models.Appointment, models.DashboardStats) {
	b := s.board(userID)
	b.mu.Lock()
	defer b.mu.Unlock()

	appointments := make([]models.Appointment, len(b.appointments))
	copy(appointments, b.appointments)
	return appointments, b.stats
}

// Refresh re-fetches the appointment list and recomputes the stats from the
// authoritative result. Overlapping refreshes are collapsed: a cycle that
// finds one already running returns the current snapshot untouched.
func (s *DashboardService) Refresh(ctx context.Context, userID uint, token string) ([]models.Appointment, models.DashboardStats, error) {
	b := s.board(userID)

	b.mu.Lock()
	if b.isFetching {
		appointments := make([]models.Appointment, len(b.appointments))
		copy(appointments, b.appointments)
		stats := b.stats
		b.mu.Unlock()
		return appointments, stats, nil
	}
	b.isFetching = true
	b.mu.Unlock()

	appointments, err := s.api.ListAppointments(ctx, token, "")

	b.mu.Lock()
	b.isFetching = false
	if err != nil {
		b.mu.Unlock()
		return nil, models.DashboardStats{}, err
	}
	b.appointments = appointments
	b.stats = models.ComputeDashboardStats(appointments)
	b.loaded = true
	result := make([]models.Appointment, len(appointments))
	copy(result, appointments)
	stats := b.stats
	b.mu.Unlock()

	return result, stats, nil
}

// StatusUpdateResult is what a successful transition returns to the UI
type StatusUpdateResult struct {
	Appointment models.Appointment    `json:"appointment"`
	Stats       models.DashboardStats `json:"stats"`
	// PaymentURL is set on the confirmed transition; the UI opens it in a
	// new tab instead of completing synchronously
	PaymentURL string `json:"payment_url,omitempty"`
}

// UpdateStatus drives one appointment through the status machine. The
// transition is validated against the local table first; illegal requests
// fail with ErrInvalidTransition and never reach the backend. Legal ones are
// applied optimistically, rolled back if the backend rejects them, and
// reconciled against a full refresh on success.
func (s *DashboardService) UpdateStatus(ctx context.Context, userID uint, token string, appointmentID uint, requested models.AppointmentStatus) (*StatusUpdateResult, error) {
	b := s.board(userID)

	b.mu.Lock()
	if !b.loaded {
		b.mu.Unlock()
		if _, _, err := s.Refresh(ctx, userID, token); err != nil {
			return nil, err
		}
		b.mu.Lock()
	}

	idx := -1
	for i := range b.appointments {
		if b.appointments[i].ID == appointmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return nil, ErrAppointmentNotFound
	}
	previous := b.appointments[idx].Status
	b.mu.Unlock()

	if !models.ValidateTransition(previous, requested) {
		return nil, ErrInvalidTransition
	}

	// interim optimistic display value; reconciled below
	setStatus := func(status models.AppointmentStatus) {
		b.mu.Lock()
		for i := range b.appointments {
			if b.appointments[i].ID == appointmentID {
				b.appointments[i].Status = status
				b.stats = models.ComputeDashboardStats(b.appointments)
				break
			}
		}
		b.mu.Unlock()
	}
	correlationID := s.tracker.Apply(func(string) {
		setStatus(requested)
	}, func() {
		setStatus(previous)
	})

	updated, err := s.api.UpdateAppointmentStatus(ctx, token, appointmentID, requested)
	if err != nil {
		s.tracker.Reject(correlationID)
		return nil, err
	}
	s.tracker.Confirm(correlationID, nil)

	if s.notifier != nil {
		s.notifier.NotifyAppointmentStatus(userID, appointmentID, requested)
	}

	// reconcile the counters against the authoritative list
	_, stats, refreshErr := s.Refresh(ctx, userID, token)
	if refreshErr != nil {
		log.Printf("⚠️ Dashboard refresh after status update failed for user %d: %v", userID, refreshErr)
		_, stats = s.Snapshot(userID)
	}

	result := &StatusUpdateResult{
		Appointment: *updated,
		Stats:       stats,
	}
	if requested == models.AppointmentStatusConfirmed {
		result.PaymentURL = fmt.Sprintf("%s/appointments/%d", s.checkoutBaseURL, appointmentID)
	}
	return result, nil
}
