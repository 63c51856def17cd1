package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-gateway/middleware"
	"marketplace-gateway/models"
	"marketplace-gateway/services"
	ws "marketplace-gateway/websocket"
)

// ChatRoutes sets up chat-related routes
func ChatRoutes(router *gin.Engine) {
	chat := router.Group("/api/v1/chat")
	{
		// WebSocket connection - use WebSocket-specific auth middleware
		chat.GET("/ws", middleware.WebSocketAuthMiddleware(), handleWebSocketConnection)

		chat.GET("/conversations", middleware.AuthMiddleware(), getConversations)
		chat.POST("/conversations/:id/open", middleware.AuthMiddleware(), openConversation)
		chat.POST("/conversations/close", middleware.AuthMiddleware(), closeConversation)
		chat.GET("/messages", middleware.AuthMiddleware(), getMessages)
		chat.POST("/messages", middleware.AuthMiddleware(), sendMessage)
	}
}

// handleWebSocketConnection upgrades the connection; the hub pushes chat
// and quote events to it
func handleWebSocketConnection(c *gin.Context) {
	userID := c.GetUint("user_id")
	ws.ServeWebSocket(deps.Hub, c.Writer, c.Request, userID)
}

func getConversations(c *gin.Context) {
	token := c.GetString("token")

	conversations, err := deps.Chat.Conversations(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": conversations, "count": len(conversations)})
}

// openConversation makes the conversation the user's active one: the
// previous session's poll loop (if any) is cancelled and a new one starts
func openConversation(c *gin.Context) {
	userID := c.GetUint("user_id")
	token := c.GetString("token")

	conversationID, ok := parseID(c, "id")
	if !ok {
		return
	}

	messages, err := deps.Chat.Open(c.Request.Context(), userID, token, conversationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": messages, "count": len(messages)})
}

// closeConversation tears the active session down; called on view teardown
func closeConversation(c *gin.Context) {
	userID := c.GetUint("user_id")
	deps.Chat.Close(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Conversation closed"})
}

// getMessages returns the in-memory list of the active conversation,
// including any optimistic entries awaiting confirmation
func getMessages(c *gin.Context) {
	userID := c.GetUint("user_id")

	messages, err := deps.Chat.Messages(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": messages, "count": len(messages)})
}

// sendMessage sends in the active conversation. On failure the original
// content is echoed back so the UI can restore the input for a retry.
func sendMessage(c *gin.Context) {
	userID := c.GetUint("user_id")

	var payload models.MessageSend
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "Message content is required"})
		return
	}

	message, err := deps.Chat.Send(c.Request.Context(), userID, payload.Content)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveConversation) || errors.Is(err, services.ErrSendInFlight) {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error":            "send_failed",
			"message":          "Your message could not be sent. Please try again.",
			"restored_content": payload.Content,
		})
		return
	}
	c.JSON(http.StatusCreated, message)
}
