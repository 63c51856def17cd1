package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketplace-gateway/models"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name           string
		notification   models.Notification
		wantCategory   models.NotificationCategory
		wantImpact     models.BusinessImpact
		wantActionable bool
	}{
		{"appointment", models.Notification{Type: "appointment"}, models.CategoryBookings, models.ImpactHigh, true},
		{"payment", models.Notification{Type: "payment"}, models.CategoryRevenue, models.ImpactHigh, true},
		{"review without response", models.Notification{Type: "review"}, models.CategoryReputation, models.ImpactMedium, true},
		{"review with response", models.Notification{Type: "review", HasResponse: true}, models.CategoryReputation, models.ImpactMedium, false},
		{"message", models.Notification{Type: "message"}, models.CategoryCommunication, models.ImpactMedium, true},
		{"lead", models.Notification{Type: "lead"}, models.CategoryBusiness, models.ImpactHigh, true},
		{"contract", models.Notification{Type: "contract"}, models.CategoryLegal, models.ImpactHigh, false},
		{"reminder", models.Notification{Type: "reminder"}, models.CategoryTasks, models.ImpactLow, false},
		{"system", models.Notification{Type: "system"}, models.CategoryAccount, models.ImpactLow, false},
		{"verification", models.Notification{Type: "verification"}, models.CategoryCompliance, models.ImpactMedium, false},
		{"unknown type", models.Notification{Type: "unknown_type"}, models.CategoryGeneral, models.ImpactMedium, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := models.Categorize(tt.notification)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantImpact, got.BusinessImpact)
			assert.Equal(t, tt.wantActionable, got.ActionRequired)
		})
	}
}

func categorizeAll(notifications []models.Notification) []models.CategorizedNotification {
	out := make([]models.CategorizedNotification, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, models.Categorize(n))
	}
	return out
}

func TestSortNotifications(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	notifications := categorizeAll([]models.Notification{
		{ID: 1, Type: "reminder", IsRead: false, CreatedAt: base},
		{ID: 2, Type: "payment", IsRead: true, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 3, Type: "payment", IsRead: false, CreatedAt: base.Add(time.Hour)},
		{ID: 4, Type: "message", IsRead: false, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 5, Type: "payment", IsRead: false, CreatedAt: base.Add(4 * time.Hour)},
	})

	models.SortNotifications(notifications, true)

	ids := make([]uint, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	// unread first; high impact before medium before low; newest first
	// within equal impact; read items last regardless of impact
	assert.Equal(t, []uint{5, 3, 4, 1, 2}, ids)
}

func TestSortNotificationsOrderToggle(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	notifications := categorizeAll([]models.Notification{
		{ID: 1, Type: "payment", IsRead: false, CreatedAt: base},
		{ID: 2, Type: "payment", IsRead: false, CreatedAt: base.Add(time.Hour)},
		{ID: 3, Type: "reminder", IsRead: false, CreatedAt: base.Add(2 * time.Hour)},
	})

	models.SortNotifications(notifications, false)

	ids := make([]uint, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	// the toggle flips only the date comparison: impact ordering still puts
	// the reminder last even though it is newest
	assert.Equal(t, []uint{1, 2, 3}, ids)
}
