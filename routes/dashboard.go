package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace-gateway/models"
)

// RegisterDashboardRoutes sets up the professional dashboard routes
func RegisterDashboardRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", getDashboard)
	router.GET("/appointments", getAppointments)
	router.POST("/appointments/:id/status", updateAppointmentStatus)
}

// getDashboard loads the foundational dashboard data. If the profile fetch
// fails the whole page is in error state and the UI shows a retry action.
func getDashboard(c *gin.Context) {
	userID := c.GetUint("user_id")
	token := c.GetString("token")

	profile, err := deps.Backend.GetProfessionalProfile(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "profile_unavailable",
			"message":   "Could not load your profile. Please retry.",
			"retryable": true,
		})
		return
	}

	appointments, stats, err := deps.Dashboard.Refresh(c.Request.Context(), userID, token)
	if err != nil {
		respondError(c, err)
		return
	}

	// keep the watcher's token fresh for background polls
	deps.Watcher.Watch(userID, token)

	c.JSON(http.StatusOK, gin.H{
		"profile":      profile,
		"appointments": appointments,
		"stats":        stats,
	})
}

// getAppointments re-fetches the appointment list, optionally filtered by
// status
func getAppointments(c *gin.Context) {
	userID := c.GetUint("user_id")
	token := c.GetString("token")

	status := c.Query("status")
	if status != "" {
		appointments, err := deps.Backend.ListAppointments(c.Request.Context(), token, status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"appointments": appointments})
		return
	}

	appointments, stats, err := deps.Dashboard.Refresh(c.Request.Context(), userID, token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments, "stats": stats})
}

type statusUpdateRequest struct {
	Status  models.AppointmentStatus `json:"status" binding:"required"`
	Confirm bool                     `json:"confirm"`
}

// updateAppointmentStatus drives an appointment through the status machine.
// The UI's blocking confirmation dialog is enforced here: requests without
// confirm=true are bounced before anything happens.
func updateAppointmentStatus(c *gin.Context) {
	userID := c.GetUint("user_id")
	token := c.GetString("token")

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id", "message": "Invalid appointment ID"})
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}
	if !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "confirmation_required",
			"message": "Status changes must be confirmed",
		})
		return
	}

	result, err := deps.Dashboard.UpdateStatus(c.Request.Context(), userID, token, uint(appointmentID), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
