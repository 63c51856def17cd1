package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"marketplace-gateway/models"
)

// ListAppointments fetches the caller's appointments, optionally filtered by
// status. A missing results field decodes as an empty list.
func (c *Client) ListAppointments(ctx context.Context, token string, status string) ([]models.Appointment, error) {
	values := url.Values{}
	if status != "" {
		values.Set("status", status)
	}

	var resp struct {
		Results []models.Appointment `json:"results"`
		Count   int                  `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, withQuery("/appointments/", values), token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []models.Appointment{}
	}
	return resp.Results, nil
}

// GetAppointment fetches a single appointment
func (c *Client) GetAppointment(ctx context.Context, token string, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/appointments/%d/", id), token, nil, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// UpdateAppointmentStatus asks the backend to move an appointment to the
// requested status. Transition legality is checked by the caller before
// this is ever invoked.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, token string, id uint, status models.AppointmentStatus) (*models.Appointment, error) {
	body := map[string]string{"status": string(status)}

	var appointment models.Appointment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/appointments/%d/status/", id), token, body, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// RescheduleAppointment moves an appointment to a new date/time slot
func (c *Client) RescheduleAppointment(ctx context.Context, token string, id uint, date, timeSlot string) (*models.Appointment, error) {
	body := map[string]string{"date": date, "time": timeSlot}

	var appointment models.Appointment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/appointments/%d/reschedule/", id), token, body, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}
