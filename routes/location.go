package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-gateway/utils"
)

// RegisterLocationRoutes sets up the geocoding routes
func RegisterLocationRoutes(router *gin.RouterGroup) {
	router.POST("/geocode", geocodeAddress)
	router.POST("/reverse-geocode", reverseGeocode)
}

type geocodeRequest struct {
	Address string `json:"address" binding:"required"`
	// The coordinates the user already has, if any. Provider failure must
	// not discard them.
	CurrentLat     *float64 `json:"current_lat"`
	CurrentLng     *float64 `json:"current_lng"`
	CurrentAddress string   `json:"current_address"`
}

func geocodeAddress(c *gin.Context) {
	var req geocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "Address is required"})
		return
	}

	var existing *utils.GeocodingResult
	if req.CurrentLat != nil && req.CurrentLng != nil {
		existing = &utils.GeocodingResult{
			Latitude:  *req.CurrentLat,
			Longitude: *req.CurrentLng,
			Address:   req.CurrentAddress,
		}
	}

	result := deps.Geocoder.ForwardWithFallback(c.Request.Context(), req.Address, existing)
	c.JSON(http.StatusOK, result)
}

// Pointers so that 0 (equator, prime meridian) passes required validation
type reverseGeocodeRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func reverseGeocode(c *gin.Context) {
	var req reverseGeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "Latitude and longitude are required"})
		return
	}

	result, err := deps.Geocoder.Reverse(c.Request.Context(), *req.Latitude, *req.Longitude)
	if err != nil {
		// preserve what the caller already has rather than discarding it
		c.JSON(http.StatusOK, &utils.GeocodingResult{
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
		})
		return
	}
	c.JSON(http.StatusOK, result)
}
