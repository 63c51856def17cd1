package models

import (
	"time"
)

// ServiceRequestStatus represents the current status of a client service request
type ServiceRequestStatus string

const (
	RequestStatusDraft      ServiceRequestStatus = "draft"
	RequestStatusPending    ServiceRequestStatus = "pending"
	RequestStatusQuoted     ServiceRequestStatus = "quoted"
	RequestStatusAccepted   ServiceRequestStatus = "accepted"
	RequestStatusInProgress ServiceRequestStatus = "in_progress"
	RequestStatusCompleted  ServiceRequestStatus = "completed"
	RequestStatusCancelled  ServiceRequestStatus = "cancelled"
)

// RequestUrgency is how soon the client needs the work done
type RequestUrgency string

const (
	UrgencyLow       RequestUrgency = "low"
	UrgencyMedium    RequestUrgency = "medium"
	UrgencyHigh      RequestUrgency = "high"
	UrgencyEmergency RequestUrgency = "emergency"
)

// ServiceRequest represents a client-authored ask for work, which
// professionals respond to with quotes
type ServiceRequest struct {
	ID                 uint                 `json:"id"`
	ClientID           uint                 `json:"client_id"`
	CategoryID         uint                 `json:"category_id"`
	Title              string               `json:"title"`
	Description        string               `json:"description"`
	Urgency            RequestUrgency       `json:"urgency"`
	Status             ServiceRequestStatus `json:"status"`
	BudgetMax          *float64             `json:"budget_max,omitempty"`
	PreferredStartDate *time.Time           `json:"preferred_start_date,omitempty"`
	LocationAddress    string               `json:"location_address"`
	LocationCity       string               `json:"location_city"`
	LocationLat        *float64             `json:"location_lat,omitempty"`
	LocationLng        *float64             `json:"location_lng,omitempty"`
	QuotesCount        int                  `json:"quotes_count"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`

	Client   *User            `json:"client,omitempty"`
	Category *ServiceCategory `json:"category,omitempty"`
}

// IsEditable reports whether the owning client may still edit or delete the
// request. Once a quote lands (or later), the request is locked.
func (r *ServiceRequest) IsEditable() bool {
	return r.Status == RequestStatusDraft || r.Status == RequestStatusPending
}

// IsCancellable reports whether cancellation is still allowed. Cancellation
// is terminal from draft, pending and quoted.
func (r *ServiceRequest) IsCancellable() bool {
	switch r.Status {
	case RequestStatusDraft, RequestStatusPending, RequestStatusQuoted:
		return true
	}
	return false
}

// ServiceRequestCreate is the payload for creating a service request
type ServiceRequestCreate struct {
	CategoryID         uint           `json:"category_id" binding:"required"`
	Title              string         `json:"title" binding:"required"`
	Description        string         `json:"description"`
	Urgency            RequestUrgency `json:"urgency" binding:"omitempty,oneof=low medium high emergency"`
	BudgetMax          *float64       `json:"budget_max"`
	PreferredStartDate *time.Time     `json:"preferred_start_date"`
	LocationAddress    string         `json:"location_address" binding:"required"`
	LocationCity       string         `json:"location_city"`
	LocationLat        *float64       `json:"location_lat"`
	LocationLng        *float64       `json:"location_lng"`
	Draft              bool           `json:"draft"`
}

// ServiceRequestUpdate is the payload for editing a request while it is
// still editable
type ServiceRequestUpdate struct {
	Title              *string         `json:"title"`
	Description        *string         `json:"description"`
	Urgency            *RequestUrgency `json:"urgency"`
	BudgetMax          *float64        `json:"budget_max"`
	PreferredStartDate *time.Time      `json:"preferred_start_date"`
	LocationAddress    *string         `json:"location_address"`
	LocationCity       *string         `json:"location_city"`
	LocationLat        *float64        `json:"location_lat"`
	LocationLng        *float64        `json:"location_lng"`
}

var requestStatusDisplay = map[ServiceRequestStatus]StatusDisplay{
	RequestStatusDraft:      {Label: "Draft", Color: "#9E9E9E", Icon: "file-outline"},
	RequestStatusPending:    {Label: "Pending", Color: "#FF9800", Icon: "clock"},
	RequestStatusQuoted:     {Label: "Quoted", Color: "#2196F3", Icon: "file-document"},
	RequestStatusAccepted:   {Label: "Accepted", Color: "#00BCD4", Icon: "handshake"},
	RequestStatusInProgress: {Label: "In Progress", Color: "#673AB7", Icon: "progress-wrench"},
	RequestStatusCompleted:  {Label: "Completed", Color: "#4CAF50", Icon: "check-all"},
	RequestStatusCancelled:  {Label: "Cancelled", Color: "#F44336", Icon: "close-circle"},
}

// Display returns the presentation metadata for the request status
func (s ServiceRequestStatus) Display() StatusDisplay {
	if d, ok := requestStatusDisplay[s]; ok {
		return d
	}
	return StatusDisplay{Label: string(s), Color: "#9E9E9E", Icon: "help-circle"}
}
