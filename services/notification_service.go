package services

import (
	"context"

	"marketplace-gateway/models"
)

// NotificationAPI is the slice of the backend the notification center needs
type NotificationAPI interface {
	ListNotifications(ctx context.Context, token string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, token string, id uint) error
	MarkAllNotificationsRead(ctx context.Context, token string) error
}

// NotificationService fetches notifications and enriches them with the
// derived business metadata before they reach the UI
type NotificationService struct {
	api NotificationAPI
}

func NewNotificationService(api NotificationAPI) *NotificationService {
	return &NotificationService{api: api}
}

// List returns the caller's notifications categorized and sorted for
// display. newestFirst flips only the date ordering; unread-first and
// impact ordering always hold.
func (s *NotificationService) List(ctx context.Context, token string, newestFirst bool) ([]models.CategorizedNotification, error) {
	raw, err := s.api.ListNotifications(ctx, token)
	if err != nil {
		return nil, err
	}

	categorized := make([]models.CategorizedNotification, 0, len(raw))
	for _, n := range raw {
		categorized = append(categorized, models.Categorize(n))
	}
	models.SortNotifications(categorized, newestFirst)
	return categorized, nil
}

// MarkRead marks a single notification as read
func (s *NotificationService) MarkRead(ctx context.Context, token string, id uint) error {
	return s.api.MarkNotificationRead(ctx, token, id)
}

// MarkAllRead marks all of the caller's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, token string) error {
	return s.api.MarkAllNotificationsRead(ctx, token)
}
