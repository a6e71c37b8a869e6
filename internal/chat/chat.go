// Package chat is a thin client for an OpenAI-compatible chat-completions API.
// The backend forwards assistant conversations to the provider verbatim after
// prepending a fixed system prompt; no completion logic lives here.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taetu445/RescueBites/internal/pkg/logger"
)

// ErrEmptyReply indicates the provider returned no choices.
var ErrEmptyReply = errors.New("chat: empty reply")

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces a reply for a conversation.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Client calls the configured chat-completions endpoint.
type Client struct {
	apiKey string
	url    string
	model  string
	client *http.Client
	log    *logger.Logger
}

// NewClient creates a chat client for the given endpoint, model, and API key.
func NewClient(url, model, apiKey string, l *logger.Logger) *Client {
	const requestTimeout = 60 * time.Second
	return &Client{
		apiKey: apiKey,
		url:    url,
		model:  model,
		client: &http.Client{Timeout: requestTimeout},
		log:    l,
	}
}

// Complete posts the conversation to the provider and returns the assistant reply.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(completionRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Sugar().Errorf("Chat completion request failed: %s", err)
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Sugar().Errorf("Chat provider returned status %d", resp.StatusCode)
		return "", fmt.Errorf("chat: provider returned status %d", resp.StatusCode)
	}

	var completion completionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", ErrEmptyReply
	}

	return completion.Choices[0].Message.Content, nil
}
