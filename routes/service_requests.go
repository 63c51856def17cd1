package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace-gateway/models"
)

// RegisterServiceRequestRoutes sets up the service request and quote routes
func RegisterServiceRequestRoutes(router *gin.RouterGroup) {
	router.GET("/service-requests", listServiceRequests)
	router.POST("/service-requests", createServiceRequest)
	router.GET("/service-requests/:id", getServiceRequest)
	router.PUT("/service-requests/:id", updateServiceRequest)
	router.DELETE("/service-requests/:id", deleteServiceRequest)
	router.POST("/service-requests/:id/cancel", cancelServiceRequest)
	router.GET("/service-requests/:id/quotes", listQuotes)
	router.POST("/service-requests/:id/quotes/:quoteId/accept", acceptQuote)
	router.POST("/service-requests/:id/quotes/:quoteId/reject", rejectQuote)
}

func listServiceRequests(c *gin.Context) {
	userID := c.GetUint("user_id")
	token := c.GetString("token")

	requests, err := deps.Requests.List(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	// the list poll doubles as the new-quote watch registration
	deps.Watcher.Watch(userID, token)

	c.JSON(http.StatusOK, gin.H{"results": requests, "count": len(requests)})
}

func createServiceRequest(c *gin.Context) {
	token := c.GetString("token")

	var payload models.ServiceRequestCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	request, err := deps.Requests.Create(c.Request.Context(), token, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func getServiceRequest(c *gin.Context) {
	token := c.GetString("token")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	request, err := deps.Requests.Get(c.Request.Context(), token, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func updateServiceRequest(c *gin.Context) {
	token := c.GetString("token")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var payload models.ServiceRequestUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	request, err := deps.Requests.Update(c.Request.Context(), token, id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func deleteServiceRequest(c *gin.Context) {
	token := c.GetString("token")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := deps.Requests.Delete(c.Request.Context(), token, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service request deleted"})
}

func cancelServiceRequest(c *gin.Context) {
	token := c.GetString("token")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	request, err := deps.Requests.Cancel(c.Request.Context(), token, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func listQuotes(c *gin.Context) {
	token := c.GetString("token")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	quotes, err := deps.Requests.Quotes(c.Request.Context(), token, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": quotes, "count": len(quotes)})
}

type quoteDecisionRequest struct {
	Confirm bool `json:"confirm"`
}

func acceptQuote(c *gin.Context) {
	token := c.GetString("token")

	requestID, ok := parseID(c, "id")
	if !ok {
		return
	}
	quoteID, ok := parseID(c, "quoteId")
	if !ok {
		return
	}

	var req quoteDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "confirmation_required",
			"message": "Accepting a quote must be confirmed",
		})
		return
	}

	decision, err := deps.Requests.AcceptQuote(c.Request.Context(), token, requestID, quoteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

func rejectQuote(c *gin.Context) {
	token := c.GetString("token")

	requestID, ok := parseID(c, "id")
	if !ok {
		return
	}
	quoteID, ok := parseID(c, "quoteId")
	if !ok {
		return
	}

	decision, err := deps.Requests.RejectQuote(c.Request.Context(), token, requestID, quoteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}

// parseID reads a uint path parameter, responding with a 400 on garbage
func parseID(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id", "message": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(value), true
}
