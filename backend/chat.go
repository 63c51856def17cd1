package backend

import (
	"context"
	"fmt"
	"net/http"

	"marketplace-gateway/models"
)

// ListConversations fetches the caller's conversations
func (c *Client) ListConversations(ctx context.Context, token string) ([]models.Conversation, error) {
	var resp struct {
		Results []models.Conversation `json:"results"`
		Count   int                   `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/conversations/", token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []models.Conversation{}
	}
	return resp.Results, nil
}

// ListMessages fetches all messages of a conversation
func (c *Client) ListMessages(ctx context.Context, token string, conversationID uint) ([]models.Message, error) {
	var resp struct {
		Results []models.Message `json:"results"`
		Count   int              `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/conversations/%d/messages/", conversationID), token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []models.Message{}
	}
	return resp.Results, nil
}

// SendMessage posts a message to a conversation and returns the
// server-confirmed copy
func (c *Client) SendMessage(ctx context.Context, token string, conversationID uint, content string) (*models.Message, error) {
	body := map[string]string{"content": content}

	var message models.Message
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/conversations/%d/messages/", conversationID), token, body, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkConversationRead marks every message in a conversation as read
func (c *Client) MarkConversationRead(ctx context.Context, token string, conversationID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/conversations/%d/mark-read/", conversationID), token, nil, nil)
}
