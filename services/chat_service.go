package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"marketplace-gateway/models"
)

var (
	ErrNoActiveConversation = errors.New("no active conversation")
	ErrSendInFlight         = errors.New("a send is already in flight")
)

// ChatAPI is the slice of the backend the messaging workflow needs
type ChatAPI interface {
	ListConversations(ctx context.Context, token string) ([]models.Conversation, error)
	ListMessages(ctx context.Context, token string, conversationID uint) ([]models.Message, error)
	SendMessage(ctx context.Context, token string, conversationID uint, content string) (*models.Message, error)
	MarkConversationRead(ctx context.Context, token string, conversationID uint) error
}

// ChatNotifier pushes chat events to the UI. May be nil.
type ChatNotifier interface {
	NotifyChatMessage(userID uint, conversationID uint)
}

// chatSession keeps one user's active conversation approximately in sync
// with the server through a fixed-interval poll. The poll is suspended while
// a send is in flight and stopped when the session closes.
type chatSession struct {
	userID         uint
	conversationID uint
	token          string

	api      ChatAPI
	notifier ChatNotifier
	tracker  *OptimisticTracker
	timeout  time.Duration

	mu       sync.Mutex
	messages []models.Message
	sending  bool

	stopChan chan struct{}
	stopOnce sync.Once
}

// ChatService manages at most one polled conversation session per user
type ChatService struct {
	api      ChatAPI
	notifier ChatNotifier
	interval time.Duration
	timeout  time.Duration

	mu       sync.Mutex
	sessions map[uint]*chatSession
}

// NewChatService creates the service. interval is the poll period for open
// sessions; timeout bounds each poll-driven backend call.
func NewChatService(api ChatAPI, notifier ChatNotifier, interval, timeout time.Duration) *ChatService {
	return &ChatService{
		api:      api,
		notifier: notifier,
		interval: interval,
		timeout:  timeout,
		sessions: make(map[uint]*chatSession),
	}
}

// Conversations fetches the caller's conversation list
func (s *ChatService) Conversations(ctx context.Context, token string) ([]models.Conversation, error) {
	return s.api.ListConversations(ctx, token)
}

// Open makes a conversation the user's active one: the previous session (if
// any) is stopped first, the message list is loaded, a best-effort mark-read
// is issued and the poll loop starts.
func (s *ChatService) Open(ctx context.Context, userID uint, token string, conversationID uint) ([]models.Message, error) {
	s.mu.Lock()
	if existing, ok := s.sessions[userID]; ok {
		existing.stop()
		delete(s.sessions, userID)
	}
	session := &chatSession{
		userID:         userID,
		conversationID: conversationID,
		token:          token,
		api:            s.api,
		notifier:       s.notifier,
		tracker:        NewOptimisticTracker(),
		timeout:        s.timeout,
		stopChan:       make(chan struct{}),
	}
	s.sessions[userID] = session
	s.mu.Unlock()

	messages, err := session.load(ctx)
	if err != nil {
		s.Close(userID)
		return nil, err
	}

	go session.run(s.interval)
	return messages, nil
}

// Close tears the user's active session down and cancels its poll loop
func (s *ChatService) Close(userID uint) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()

	if ok {
		session.stop()
	}
}

// Messages returns the in-memory message list of the active conversation
func (s *ChatService) Messages(userID uint) ([]models.Message, error) {
	session, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	return session.snapshot(), nil
}

// Send sends a message in the user's active conversation. The optimistic
// entry is visible in the list immediately; on failure it is removed and the
// original content is returned so the UI can restore the input.
func (s *ChatService) Send(ctx context.Context, userID uint, content string) (*models.Message, error) {
	session, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	return session.send(ctx, content)
}

func (s *ChatService) session(userID uint) (*chatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoActiveConversation
	}
	return session, nil
}

// load replaces the local list with the server list and issues the
// best-effort mark-read
func (c *chatSession) load(ctx context.Context) ([]models.Message, error) {
	messages, err := c.api.ListMessages(ctx, c.token, c.conversationID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.messages = messages
	c.mu.Unlock()

	c.markRead(ctx)
	return c.snapshot(), nil
}

func (c *chatSession) markRead(ctx context.Context) {
	if err := c.api.MarkConversationRead(ctx, c.token, c.conversationID); err != nil {
		log.Printf("⚠️ Failed to mark conversation %d as read: %v", c.conversationID, err)
	}
}

func (c *chatSession) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.poll()
		case <-c.stopChan:
			return
		}
	}
}

func (c *chatSession) stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}

// poll re-fetches the message list. It does nothing while a send is in
// flight, and replaces the local list only when the server count differs
// from the local count.
func (c *chatSession) poll() {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return
	}
	localCount := len(c.messages)
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	messages, err := c.api.ListMessages(ctx, c.token, c.conversationID)
	if err != nil {
		log.Printf("⚠️ Message poll failed for conversation %d: %v", c.conversationID, err)
		return
	}
	if len(messages) == localCount {
		return
	}

	c.mu.Lock()
	// A send may have started while the fetch was in flight. The server list
	// can already contain that message, so applying it here would race the
	// optimistic append and Confirm would duplicate the entry. Discard this
	// cycle; the next tick catches up.
	if c.sending || len(c.messages) != localCount {
		c.mu.Unlock()
		return
	}
	c.messages = messages
	c.mu.Unlock()

	c.markRead(ctx)
	if c.notifier != nil {
		c.notifier.NotifyChatMessage(c.userID, c.conversationID)
	}
}

func (c *chatSession) snapshot() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	messages := make([]models.Message, len(c.messages))
	copy(messages, c.messages)
	return messages
}

func (c *chatSession) send(ctx context.Context, content string) (*models.Message, error) {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return nil, ErrSendInFlight
	}
	c.sending = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.sending = false
		c.mu.Unlock()
	}()

	var tempID string
	correlationID := c.tracker.Apply(func(id string) {
		tempID = id
		c.mu.Lock()
		c.messages = append(c.messages, models.Message{
			ConversationID: c.conversationID,
			SenderID:       c.userID,
			Content:        content,
			CreatedAt:      time.Now(),
			TempID:         id,
			IsOptimistic:   true,
		})
		c.mu.Unlock()
	}, func() {
		c.mu.Lock()
		c.messages = removeByTempID(c.messages, tempID)
		c.mu.Unlock()
	})

	sent, err := c.api.SendMessage(ctx, c.token, c.conversationID, content)
	if err != nil {
		c.tracker.Reject(correlationID)
		return nil, err
	}

	c.tracker.Confirm(correlationID, func() {
		c.mu.Lock()
		c.messages = append(removeByTempID(c.messages, tempID), *sent)
		c.mu.Unlock()
	})
	return sent, nil
}

// removeByTempID drops the optimistic entry matching the correlation id.
// Matching is by id, never by content.
func removeByTempID(messages []models.Message, tempID string) []models.Message {
	out := messages[:0]
	for _, m := range messages {
		if m.TempID != tempID {
			out = append(out, m)
		}
	}
	return out
}
