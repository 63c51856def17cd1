package backend

import (
	"context"
	"fmt"
	"net/http"

	"marketplace-gateway/models"
)

// ListNotifications fetches the caller's notifications
func (c *Client) ListNotifications(ctx context.Context, token string) ([]models.Notification, error) {
	var resp struct {
		Results []models.Notification `json:"results"`
		Count   int                   `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/notifications/", token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []models.Notification{}
	}
	return resp.Results, nil
}

// MarkNotificationRead marks a single notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, token string, id uint) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/notifications/%d/read/", id), token, nil, nil)
}

// MarkAllNotificationsRead marks every notification of the caller as read
func (c *Client) MarkAllNotificationsRead(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/notifications/mark-all-read/", token, nil, nil)
}
