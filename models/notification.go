package models

import (
	"sort"
	"time"
)

// Notification represents a raw notification as returned by the backend
type Notification struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Type      string    `json:"type"` // appointment, payment, review, message, system, lead, contract, reminder, verification
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`

	// HasResponse is set for review notifications once the professional has
	// answered the review
	HasResponse bool `json:"has_response,omitempty"`
}

// NotificationCategory is the business category a notification maps to
type NotificationCategory string

const (
	CategoryBookings      NotificationCategory = "bookings"
	CategoryRevenue       NotificationCategory = "revenue"
	CategoryReputation    NotificationCategory = "reputation"
	CategoryCommunication NotificationCategory = "communication"
	CategoryTasks         NotificationCategory = "tasks"
	CategoryCompliance    NotificationCategory = "compliance"
	CategoryAccount       NotificationCategory = "account"
	CategoryBusiness      NotificationCategory = "business"
	CategoryLegal         NotificationCategory = "legal"
	CategoryGeneral       NotificationCategory = "general"
)

// BusinessImpact ranks how much a notification matters to the professional
type BusinessImpact string

const (
	ImpactHigh   BusinessImpact = "high"
	ImpactMedium BusinessImpact = "medium"
	ImpactLow    BusinessImpact = "low"
)

var notificationCategories = map[string]NotificationCategory{
	"appointment":  CategoryBookings,
	"payment":      CategoryRevenue,
	"review":       CategoryReputation,
	"message":      CategoryCommunication,
	"system":       CategoryAccount,
	"lead":         CategoryBusiness,
	"contract":     CategoryLegal,
	"reminder":     CategoryTasks,
	"verification": CategoryCompliance,
}

var notificationImpact = map[string]BusinessImpact{
	"appointment": ImpactHigh,
	"payment":     ImpactHigh,
	"lead":        ImpactHigh,
	"contract":    ImpactHigh,
	"review":      ImpactMedium,
	"message":     ImpactMedium,
	"reminder":    ImpactLow,
	"system":      ImpactLow,
}

var impactRank = map[BusinessImpact]int{
	ImpactHigh:   3,
	ImpactMedium: 2,
	ImpactLow:    1,
}

// CategorizedNotification is a notification enriched with the derived
// business metadata used for display and sorting
type CategorizedNotification struct {
	Notification
	Category       NotificationCategory `json:"category"`
	BusinessImpact BusinessImpact       `json:"business_impact"`
	ActionRequired bool                 `json:"action_required"`
}

// Categorize derives category, business impact and the action-required flag
// from the notification's raw type. Unknown types land in the general
// category with medium impact.
func Categorize(n Notification) CategorizedNotification {
	category, ok := notificationCategories[n.Type]
	if !ok {
		category = CategoryGeneral
	}
	impact, ok := notificationImpact[n.Type]
	if !ok {
		impact = ImpactMedium
	}

	actionRequired := false
	switch n.Type {
	case "appointment", "payment", "lead", "message":
		actionRequired = true
	case "review":
		actionRequired = !n.HasResponse
	}

	return CategorizedNotification{
		Notification:   n,
		Category:       category,
		BusinessImpact: impact,
		ActionRequired: actionRequired,
	}
}

// SortNotifications orders notifications for display: unread before read,
// higher impact first within the same read state, then by created_at. The
// newestFirst toggle flips only the date comparison, never the read/impact
// ordering.
func SortNotifications(notifications []CategorizedNotification, newestFirst bool) {
	sort.SliceStable(notifications, func(i, j int) bool {
		a, b := notifications[i], notifications[j]
		if a.IsRead != b.IsRead {
			return !a.IsRead
		}
		if impactRank[a.BusinessImpact] != impactRank[b.BusinessImpact] {
			return impactRank[a.BusinessImpact] > impactRank[b.BusinessImpact]
		}
		if newestFirst {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
