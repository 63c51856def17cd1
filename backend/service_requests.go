package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"marketplace-gateway/models"
)

// ListServiceRequests fetches the caller's service requests
func (c *Client) ListServiceRequests(ctx context.Context, token string) ([]models.ServiceRequest, error) {
	var resp struct {
		Results []models.ServiceRequest `json:"results"`
		Count   int                     `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/service-requests/", token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []models.ServiceRequest{}
	}
	return resp.Results, nil
}

// GetServiceRequest fetches a single service request
func (c *Client) GetServiceRequest(ctx context.Context, token string, id uint) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/service-requests/%d/", id), token, nil, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// CreateServiceRequest creates a new service request
func (c *Client) CreateServiceRequest(ctx context.Context, token string, payload models.ServiceRequestCreate) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := c.do(ctx, http.MethodPost, "/service-requests/", token, payload, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateServiceRequest edits an existing service request
func (c *Client) UpdateServiceRequest(ctx context.Context, token string, id uint, payload models.ServiceRequestUpdate) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/service-requests/%d/", id), token, payload, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// DeleteServiceRequest deletes a service request
func (c *Client) DeleteServiceRequest(ctx context.Context, token string, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/service-requests/%d/", id), token, nil, nil)
}

// CancelServiceRequest cancels a service request
func (c *Client) CancelServiceRequest(ctx context.Context, token string, id uint) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/service-requests/%d/cancel/", id), token, nil, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// ListQuotes fetches the quotes submitted against a service request
func (c *Client) ListQuotes(ctx context.Context, token string, serviceRequestID uint) ([]models.ServiceQuote, error) {
	values := url.Values{}
	values.Set("service_request", fmt.Sprintf("%d", serviceRequestID))

	var resp struct {
		Results []models.ServiceQuote `json:"results"`
		Count   int                   `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, withQuery("/quotes/", values), token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []models.ServiceQuote{}
	}
	return resp.Results, nil
}

// AcceptQuote accepts a quote on behalf of the owning client
func (c *Client) AcceptQuote(ctx context.Context, token string, quoteID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/quotes/%d/accept/", quoteID), token, nil, nil)
}

// RejectQuote rejects a quote on behalf of the owning client
func (c *Client) RejectQuote(ctx context.Context, token string, quoteID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/quotes/%d/reject/", quoteID), token, nil, nil)
}
