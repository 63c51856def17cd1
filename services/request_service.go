package services

import (
	"context"
	"errors"
	"log"

	"marketplace-gateway/models"
)

var (
	ErrRequestNotEditable  = errors.New("service request can no longer be edited")
	ErrRequestNotCancelled = errors.New("service request can no longer be cancelled")
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrQuoteNotActionable  = errors.New("quote is no longer actionable")
)

// RequestAPI is the slice of the backend the request workflow needs
type RequestAPI interface {
	ListServiceRequests(ctx context.Context, token string) ([]models.ServiceRequest, error)
	GetServiceRequest(ctx context.Context, token string, id uint) (*models.ServiceRequest, error)
	CreateServiceRequest(ctx context.Context, token string, payload models.ServiceRequestCreate) (*models.ServiceRequest, error)
	UpdateServiceRequest(ctx context.Context, token string, id uint, payload models.ServiceRequestUpdate) (*models.ServiceRequest, error)
	DeleteServiceRequest(ctx context.Context, token string, id uint) error
	CancelServiceRequest(ctx context.Context, token string, id uint) (*models.ServiceRequest, error)
	ListQuotes(ctx context.Context, token string, serviceRequestID uint) ([]models.ServiceQuote, error)
	AcceptQuote(ctx context.Context, token string, quoteID uint) error
	RejectQuote(ctx context.Context, token string, quoteID uint) error
}

// RequestService owns the service-request/quote lifecycle on the client
// side: edit/delete guards, cancellation, and quote accept/reject with the
// follow-up refreshes.
type RequestService struct {
	api RequestAPI
}

func NewRequestService(api RequestAPI) *RequestService {
	return &RequestService{api: api}
}

// List fetches the caller's service requests
func (s *RequestService) List(ctx context.Context, token string) ([]models.ServiceRequest, error) {
	return s.api.ListServiceRequests(ctx, token)
}

// Get fetches a single service request
func (s *RequestService) Get(ctx context.Context, token string, id uint) (*models.ServiceRequest, error) {
	return s.api.GetServiceRequest(ctx, token, id)
}

// Create creates a new service request
func (s *RequestService) Create(ctx context.Context, token string, payload models.ServiceRequestCreate) (*models.ServiceRequest, error) {
	return s.api.CreateServiceRequest(ctx, token, payload)
}

// Update edits a request. Requests stop being editable once quoted.
func (s *RequestService) Update(ctx context.Context, token string, id uint, payload models.ServiceRequestUpdate) (*models.ServiceRequest, error) {
	request, err := s.api.GetServiceRequest(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if !request.IsEditable() {
		return nil, ErrRequestNotEditable
	}
	return s.api.UpdateServiceRequest(ctx, token, id, payload)
}

// Delete removes a request, allowed only while it is still editable
func (s *RequestService) Delete(ctx context.Context, token string, id uint) error {
	request, err := s.api.GetServiceRequest(ctx, token, id)
	if err != nil {
		return err
	}
	if !request.IsEditable() {
		return ErrRequestNotEditable
	}
	return s.api.DeleteServiceRequest(ctx, token, id)
}

// Cancel cancels a request. Cancellation is terminal and allowed from
// draft, pending and quoted.
func (s *RequestService) Cancel(ctx context.Context, token string, id uint) (*models.ServiceRequest, error) {
	request, err := s.api.GetServiceRequest(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if !request.IsCancellable() {
		return nil, ErrRequestNotCancelled
	}
	return s.api.CancelServiceRequest(ctx, token, id)
}

// Quotes fetches the quotes submitted against a request
func (s *RequestService) Quotes(ctx context.Context, token string, serviceRequestID uint) ([]models.ServiceQuote, error) {
	return s.api.ListQuotes(ctx, token, serviceRequestID)
}

// QuoteDecision carries the refreshed state after an accept or reject, so
// the UI sees the request's new status and quotes_count without another
// round trip
type QuoteDecision struct {
	Quotes   []models.ServiceQuote   `json:"quotes"`
	Requests []models.ServiceRequest `json:"requests,omitempty"`
}

// AcceptQuote accepts a pending quote and refreshes both the quotes list of
// the request and the request list itself. Refresh failures after a
// successful accept are logged, not surfaced.
func (s *RequestService) AcceptQuote(ctx context.Context, token string, serviceRequestID, quoteID uint) (*QuoteDecision, error) {
	quote, err := s.findQuote(ctx, token, serviceRequestID, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.IsActionable() {
		return nil, ErrQuoteNotActionable
	}

	if err := s.api.AcceptQuote(ctx, token, quoteID); err != nil {
		return nil, err
	}

	decision := &QuoteDecision{}
	if decision.Quotes, err = s.api.ListQuotes(ctx, token, serviceRequestID); err != nil {
		log.Printf("⚠️ Quote list refresh after accept failed for request %d: %v", serviceRequestID, err)
	}
	if decision.Requests, err = s.api.ListServiceRequests(ctx, token); err != nil {
		log.Printf("⚠️ Request list refresh after accept failed: %v", err)
	}
	return decision, nil
}

// RejectQuote rejects a pending quote. Sibling quotes are untouched; only
// the quotes list of the request is refreshed.
func (s *RequestService) RejectQuote(ctx context.Context, token string, serviceRequestID, quoteID uint) (*QuoteDecision, error) {
	quote, err := s.findQuote(ctx, token, serviceRequestID, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.IsActionable() {
		return nil, ErrQuoteNotActionable
	}

	if err := s.api.RejectQuote(ctx, token, quoteID); err != nil {
		return nil, err
	}

	decision := &QuoteDecision{}
	if decision.Quotes, err = s.api.ListQuotes(ctx, token, serviceRequestID); err != nil {
		log.Printf("⚠️ Quote list refresh after reject failed for request %d: %v", serviceRequestID, err)
	}
	return decision, nil
}

func (s *RequestService) findQuote(ctx context.Context, token string, serviceRequestID, quoteID uint) (*models.ServiceQuote, error) {
	quotes, err := s.api.ListQuotes(ctx, token, serviceRequestID)
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		if quotes[i].ID == quoteID {
			return &quotes[i], nil
		}
	}
	return nil, ErrQuoteNotFound
}
