package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GeocodingResult represents the result of a geocoding operation
type GeocodingResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
}

// Geocoder talks to a Nominatim-style geocoding provider
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeocoder creates a geocoder against baseURL (no trailing slash)
func NewGeocoder(baseURL string, timeout time.Duration) *Geocoder {
	return &Geocoder{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Forward converts a text address to coordinates
func (g *Geocoder) Forward(ctx context.Context, addressText string) (*GeocodingResult, error) {
	cleanAddress := strings.TrimSpace(addressText)
	if cleanAddress == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	apiURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.baseURL, url.QueryEscape(cleanAddress))

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := g.get(ctx, apiURL, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no geocoding results for address")
	}

	result := results[0]
	lat, err := parseFloat(result.Lat)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in response: %w", err)
	}
	lon, err := parseFloat(result.Lon)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in response: %w", err)
	}

	return &GeocodingResult{
		Latitude:  lat,
		Longitude: lon,
		Address:   result.DisplayName,
		City:      extractCity(result.DisplayName),
	}, nil
}

// Reverse converts coordinates back to address details
func (g *Geocoder) Reverse(ctx context.Context, lat, lng float64) (*GeocodingResult, error) {
	apiURL := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json", g.baseURL, lat, lng)

	var result struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			City string `json:"city"`
			Town string `json:"town"`
		} `json:"address"`
	}
	if err := g.get(ctx, apiURL, &result); err != nil {
		return nil, err
	}

	city := result.Address.City
	if city == "" {
		city = result.Address.Town
	}
	if city == "" {
		city = extractCity(result.DisplayName)
	}

	return &GeocodingResult{
		Latitude:  lat,
		Longitude: lng,
		Address:   result.DisplayName,
		City:      city,
	}, nil
}

// ForwardWithFallback geocodes an address but never discards what the user
// already has: on provider failure the existing result is returned as-is.
func (g *Geocoder) ForwardWithFallback(ctx context.Context, addressText string, existing *GeocodingResult) *GeocodingResult {
	result, err := g.Forward(ctx, addressText)
	if err != nil {
		if existing != nil {
			return existing
		}
		return &GeocodingResult{Address: strings.TrimSpace(addressText)}
	}
	return result
}

func (g *Geocoder) get(ctx context.Context, apiURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoding service returned status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	return nil
}

// parseFloat is a helper function to parse string to float64
func parseFloat(s string) (float64, error) {
	var f float64
	_, err := fmt.Sscanf(s, "%f", &f)
	return f, err
}

// extractCity extracts the city name from the display name
func extractCity(displayName string) string {
	parts := strings.Split(displayName, ",")
	if len(parts) > 0 {
		city := strings.TrimSpace(parts[0])
		if city != "" {
			return city
		}
	}
	return ""
}
