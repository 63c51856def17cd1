package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes sets up the notification center routes
func RegisterNotificationRoutes(router *gin.RouterGroup) {
	router.GET("/", getNotifications)
	router.GET("", getNotifications)
	router.POST("/mark-read/:id", markNotificationAsRead)
	router.POST("/mark-all-read", markAllNotificationsAsRead)
}

// getNotifications returns the caller's notifications categorized and
// sorted. order=oldest flips the date ordering only.
func getNotifications(c *gin.Context) {
	token := c.GetString("token")

	newestFirst := c.Query("order") != "oldest"

	notifications, err := deps.Notifications.List(c.Request.Context(), token, newestFirst)
	if err != nil {
		respondError(c, err)
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results":      notifications,
		"count":        len(notifications),
		"unread_count": unread,
	})
}

func markNotificationAsRead(c *gin.Context) {
	token := c.GetString("token")

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := deps.Notifications.MarkRead(c.Request.Context(), token, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func markAllNotificationsAsRead(c *gin.Context) {
	token := c.GetString("token")

	if err := deps.Notifications.MarkAllRead(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
