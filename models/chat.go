package models

import (
	"time"
)

// Conversation represents a chat thread between a client and a professional
type Conversation struct {
	ID              uint       `json:"id"`
	ClientID        uint       `json:"client_id"`
	ProfessionalID  uint       `json:"professional_id"`
	LastMessageText string     `json:"last_message_text"`
	LastMessageAt   *time.Time `json:"last_message_at,omitempty"`
	UnreadCount     int        `json:"unread_count"`
	CreatedAt       time.Time  `json:"created_at"`

	Client       *User `json:"client,omitempty"`
	Professional *User `json:"professional,omitempty"`
}

// Message represents a single message in a conversation. Optimistic
// messages carry a client-generated TempID until the server-confirmed copy
// replaces them.
type Message struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"conversation_id"`
	SenderID       uint      `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`

	TempID       string `json:"temp_id,omitempty"`
	IsOptimistic bool   `json:"is_optimistic,omitempty"`
}

// MessageSend is the payload for sending a message
type MessageSend struct {
	Content string `json:"content" binding:"required"`
}
