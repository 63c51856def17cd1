package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"marketplace-gateway/models"
)

// Client represents a connected UI client
type Client struct {
	Hub    *Hub
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// Event is a workflow event pushed to the UI
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub manages the WebSocket connections the gateway pushes workflow events
// through. The gateway polls the backend, so the UI doesn't have to.
type Hub struct {
	Clients    map[uint]*Client
	Register   chan *Client
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[uint]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if old, ok := h.Clients[client.UserID]; ok {
				close(old.Send)
			}
			h.Clients[client.UserID] = client
			h.mu.Unlock()
			log.Printf("🔌 Client registered: UserID=%d", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if current, ok := h.Clients[client.UserID]; ok && current == client {
				delete(h.Clients, client.UserID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Client unregistered: UserID=%d", client.UserID)
		}
	}
}

// SendToUser delivers an event to a single connected user. Disconnected
// users are silently skipped; slow clients drop the event instead of
// blocking the hub.
func (h *Hub) SendToUser(userID uint, event *Event) {
	h.mu.RLock()
	client, ok := h.Clients[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ Error marshaling event: %v", err)
		return
	}

	select {
	case client.Send <- data:
	default:
		log.Printf("⚠️ Send buffer full for user %d, dropping %s event", userID, event.Type)
	}
}

// NotifyNewQuotes pushes a single new-quote event per detection cycle
func (h *Hub) NotifyNewQuotes(userID uint, requestIDs []uint) {
	h.SendToUser(userID, &Event{
		Type: "new_quote",
		Data: map[string]interface{}{
			"request_ids": requestIDs,
		},
		Timestamp: time.Now(),
	})
}

// NotifyChatMessage tells the UI the active conversation changed
func (h *Hub) NotifyChatMessage(userID uint, conversationID uint) {
	h.SendToUser(userID, &Event{
		Type: "chat_message",
		Data: map[string]interface{}{
			"conversation_id": conversationID,
		},
		Timestamp: time.Now(),
	})
}

// NotifyAppointmentStatus tells the UI an appointment moved to a new status
func (h *Hub) NotifyAppointmentStatus(userID uint, appointmentID uint, status models.AppointmentStatus) {
	h.SendToUser(userID, &Event{
		Type: "appointment_status",
		Data: map[string]interface{}{
			"appointment_id": appointmentID,
			"status":         status,
		},
		Timestamp: time.Now(),
	})
}
