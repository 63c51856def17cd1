package models

import (
	"time"
)

// QuoteStatus represents the current status of a professional's quote
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// ServiceQuote represents a professional's priced proposal against a
// specific service request
type ServiceQuote struct {
	ID                 uint        `json:"id"`
	ServiceRequestID   uint        `json:"service_request_id"`
	ProfessionalID     uint        `json:"professional_id"`
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	TotalPrice         float64     `json:"total_price"`
	EstimatedDuration  string      `json:"estimated_duration"`
	StartDate          *time.Time  `json:"start_date,omitempty"`
	CompletionDate     *time.Time  `json:"completion_date,omitempty"`
	MaterialsIncluded  bool        `json:"materials_included"`
	WarrantyPeriod     string      `json:"warranty_period,omitempty"`
	TermsAndConditions string      `json:"terms_and_conditions,omitempty"`
	Status             QuoteStatus `json:"status"`
	ExpiresAt          *time.Time  `json:"expires_at,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`

	Professional *ProfessionalProfile `json:"professional,omitempty"`
}

// IsActionable reports whether the quote still exposes Accept/Reject
// actions. Everything but pending is display-only.
func (q *ServiceQuote) IsActionable() bool {
	return q.Status == QuoteStatusPending
}

var quoteStatusDisplay = map[QuoteStatus]StatusDisplay{
	QuoteStatusPending:  {Label: "Pending", Color: "#FF9800", Icon: "clock"},
	QuoteStatusAccepted: {Label: "Accepted", Color: "#4CAF50", Icon: "check-circle"},
	QuoteStatusRejected: {Label: "Rejected", Color: "#F44336", Icon: "close-circle"},
	QuoteStatusExpired:  {Label: "Expired", Color: "#9E9E9E", Icon: "timer-off"},
}

// Display returns the presentation metadata for the quote status
func (s QuoteStatus) Display() StatusDisplay {
	if d, ok := quoteStatusDisplay[s]; ok {
		return d
	}
	return StatusDisplay{Label: string(s), Color: "#9E9E9E", Icon: "help-circle"}
}
