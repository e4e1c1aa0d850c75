package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	// ErrMissingAPIKey is returned by NewClient when no API key is configured.
	ErrMissingAPIKey = errors.New("generate: missing API key")
	// ErrEmptyResponse means the model answered without any text part.
	ErrEmptyResponse = errors.New("generate: empty response")
)

// Message is one earlier turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator produces text for a prompt, given the conversation so far.
type Generator interface {
	Generate(ctx context.Context, prompt string, history []Message) (string, error)
	Model() string
}

// Client talks to the Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

var _ Generator = (*Client)(nil)

// NewClient creates a Gemini client for model. A zero timeout means no per-call limit.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("generate: create client: %w", err)
	}
	return &Client{client: c, model: model, timeout: timeout}, nil
}

// Model returns the model name used for generation.
func (c *Client) Model() string { return c.model }

// Generate sends prompt after replaying history and returns the first text part
// of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string, history []Message) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	cs := c.client.GenerativeModel(c.model).StartChat()
	cs.History = BuildHistory(history)
	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate: %s: %w", c.model, err)
	}
	return FirstText(resp)
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// BuildHistory converts conversation turns into genai contents. Turns without
// content are dropped; any role other than "user" is sent as "model".
func BuildHistory(history []Message) []*genai.Content {
	var out []*genai.Content
	for _, m := range history {
		if m.Content == "" {
			continue
		}
		role := "model"
		if m.Role == "user" {
			role = "user"
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return out
}

// FirstText extracts the first non-empty text part of the first candidate.
func FirstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", ErrEmptyResponse
}
