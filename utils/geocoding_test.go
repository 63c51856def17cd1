package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *Geocoder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGeocoder(server.URL, 2*time.Second)
}

func TestForwardParsesFirstResult(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "12 Rue de la Paix, Paris", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"lat":"48.8692","lon":"2.3317","display_name":"Paris, Île-de-France, France"}]`))
	})

	result, err := geocoder.Forward(context.Background(), "12 Rue de la Paix, Paris")
	require.NoError(t, err)

	assert.InDelta(t, 48.8692, result.Latitude, 0.0001)
	assert.InDelta(t, 2.3317, result.Longitude, 0.0001)
	assert.Equal(t, "Paris, Île-de-France, France", result.Address)
	assert.Equal(t, "Paris", result.City)
}

func TestForwardEmptyAddress(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("provider must not be called for an empty address")
	})

	_, err := geocoder.Forward(context.Background(), "   ")
	assert.Error(t, err)
}

func TestForwardNoResults(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := geocoder.Forward(context.Background(), "nowhere at all")
	assert.Error(t, err)
}

func TestReversePrefersStructuredCity(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		w.Write([]byte(`{"display_name":"Somewhere, Region","address":{"city":"Lyon"}}`))
	})

	result, err := geocoder.Reverse(context.Background(), 45.75, 4.85)
	require.NoError(t, err)

	assert.Equal(t, "Lyon", result.City)
	assert.InDelta(t, 45.75, result.Latitude, 0.0001)
}

func TestReverseFallsBackToTownThenDisplayName(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"display_name":"Annecy, Haute-Savoie","address":{"town":"Annecy"}}`))
	})

	result, err := geocoder.Reverse(context.Background(), 45.9, 6.12)
	require.NoError(t, err)
	assert.Equal(t, "Annecy", result.City)
}

func TestForwardWithFallbackKeepsExistingOnFailure(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	existing := &GeocodingResult{Latitude: 48.85, Longitude: 2.35, Address: "old address", City: "Paris"}
	result := geocoder.ForwardWithFallback(context.Background(), "new address", existing)

	assert.Equal(t, existing, result)
}

func TestForwardWithFallbackWithoutExisting(t *testing.T) {
	geocoder := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	result := geocoder.ForwardWithFallback(context.Background(), "  10 Main St  ", nil)

	require.NotNil(t, result)
	assert.Equal(t, "10 Main St", result.Address)
	assert.Zero(t, result.Latitude)
}
