// Package llm is a minimal chat-completion HTTP client for plan generation.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/waypointhq/waypoint-cli/internal/constants"
	"github.com/waypointhq/waypoint-cli/internal/logger"
)

const (
	defaultBaseURL = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"
)

// ErrCircuitOpen is returned while the breaker is cooling down after
// repeated provider failures. Callers should fall back rather than wait.
var ErrCircuitOpen = errors.New("llm provider temporarily unavailable")

// Message is a single chat turn sent to the provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client calls a chat-completion endpoint with retries and a circuit
// breaker. Safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client

	mu           sync.Mutex
	failures     int
	breakerUntil time.Time
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the completion endpoint, mainly for tests and
// self-hosted providers.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a completion client. The per-request timeout covers
// the full request including body read.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{Timeout: constants.GenerateTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends the conversation and returns the assistant's reply text.
// Transient failures (network errors, timeouts, 429, 5xx) are retried with
// exponential backoff; after repeated failures the breaker opens and
// Complete fails fast with ErrCircuitOpen until the cooldown passes.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("API key not set")
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	if err := c.checkBreaker(); err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	backoff := constants.GenerateMinBackoff
	for attempt := 0; attempt < constants.GenerateMaxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("Retrying completion request", "attempt", attempt, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			backoff *= 2
			if backoff > constants.GenerateMaxBackoff {
				backoff = constants.GenerateMaxBackoff
			}
		}

		content, retryable, err := c.complete(ctx, body)
		if err == nil {
			c.recordSuccess()
			return content, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err
		if !retryable {
			c.recordFailure()
			return "", err
		}
	}

	c.recordFailure()
	return "", fmt.Errorf("max retries (%d) exceeded: %w", constants.GenerateMaxRetries, lastErr)
}

func (c *Client) complete(ctx context.Context, body []byte) (content string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("HTTP request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", true, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var provErr apiError
		if json.Unmarshal(respBody, &provErr) == nil && provErr.Error.Message != "" {
			err = fmt.Errorf("provider error (%d): %s", resp.StatusCode, provErr.Error.Message)
		} else {
			err = fmt.Errorf("provider error (%d): %s", resp.StatusCode, string(respBody))
		}
		retryable = resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, err
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", false, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", false, fmt.Errorf("provider returned no choices")
	}
	return chatResp.Choices[0].Message.Content, false, nil
}

func (c *Client) checkBreaker() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Now().Before(c.breakerUntil) {
		return ErrCircuitOpen
	}
	return nil
}

func (c *Client) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = 0
}

func (c *Client) recordFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures++
	if c.failures >= constants.BreakerThreshold {
		c.breakerUntil = time.Now().Add(constants.BreakerCooldown)
		c.failures = 0
		logger.Warn("Completion provider failing, pausing requests", "cooldown", constants.BreakerCooldown)
	}
}
