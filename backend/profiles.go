package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"marketplace-gateway/models"
)

// GetProfessionalProfile fetches the caller's own professional profile
func (c *Client) GetProfessionalProfile(ctx context.Context, token string) (*models.ProfessionalProfile, error) {
	var profile models.ProfessionalProfile
	if err := c.do(ctx, http.MethodGet, "/professionals/me/", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfessionalProfile edits the caller's professional profile
func (c *Client) UpdateProfessionalProfile(ctx context.Context, token string, payload models.ProfessionalProfileUpdate) (*models.ProfessionalProfile, error) {
	var profile models.ProfessionalProfile
	if err := c.do(ctx, http.MethodPatch, "/professionals/me/", token, payload, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListCategories fetches the service categories
func (c *Client) ListCategories(ctx context.Context, token string) ([]models.ServiceCategory, error) {
	var resp struct {
		Results []models.ServiceCategory `json:"results"`
		Count   int                      `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/categories/", token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []models.ServiceCategory{}
	}
	return resp.Results, nil
}

// ListReviews fetches the reviews left for a professional
func (c *Client) ListReviews(ctx context.Context, token string, professionalID uint) ([]models.Review, error) {
	values := url.Values{}
	values.Set("professional", fmt.Sprintf("%d", professionalID))

	var resp struct {
		Results []models.Review `json:"results"`
		Count   int             `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, withQuery("/reviews/", values), token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []models.Review{}
	}
	return resp.Results, nil
}

// CreateReview posts a review for a professional
func (c *Client) CreateReview(ctx context.Context, token string, payload models.ReviewCreate) (*models.Review, error) {
	var review models.Review
	if err := c.do(ctx, http.MethodPost, "/reviews/", token, payload, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
