package routes

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-gateway/backend"
	"marketplace-gateway/jobs"
	"marketplace-gateway/services"
	"marketplace-gateway/utils"
	ws "marketplace-gateway/websocket"
)

// Dependencies holds everything the handlers need. Set once at startup via
// Init.
type Dependencies struct {
	Backend       *backend.Client
	Dashboard     *services.DashboardService
	Requests      *services.RequestService
	Chat          *services.ChatService
	Notifications *services.NotificationService
	Watcher       *jobs.QuoteWatcher
	Geocoder      *utils.Geocoder
	Hub           *ws.Hub
}

var deps Dependencies

// Init wires the handler dependencies
func Init(d Dependencies) {
	deps = d
}

// respondError maps workflow and backend errors to user-facing responses.
// Validation failures come back as 4xx before any backend call was made;
// backend failures surface as a dismissible message, never a panic.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_transition",
			"message": "Invalid status transition",
		})
	case errors.Is(err, services.ErrRequestNotEditable):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "not_editable",
			"message": "This request can no longer be edited",
		})
	case errors.Is(err, services.ErrRequestNotCancelled):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "not_cancellable",
			"message": "This request can no longer be cancelled",
		})
	case errors.Is(err, services.ErrQuoteNotActionable):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "quote_not_actionable",
			"message": "This quote can no longer be accepted or rejected",
		})
	case errors.Is(err, services.ErrQuoteNotFound),
		errors.Is(err, services.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "The requested resource was not found",
		})
	case errors.Is(err, services.ErrNoActiveConversation):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "no_active_conversation",
			"message": "Open a conversation first",
		})
	case errors.Is(err, services.ErrSendInFlight):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "send_in_flight",
			"message": "A message is already being sent",
		})
	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			log.Printf("❌ Backend error: %v", apiErr)
			status := http.StatusBadGateway
			if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
				status = apiErr.StatusCode
			}
			c.JSON(status, gin.H{
				"error":   "backend_error",
				"message": "The request could not be completed. Please try again.",
			})
			return
		}
		log.Printf("❌ Unexpected error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "unavailable",
			"message": "The service is temporarily unavailable. Please try again.",
		})
	}
}
