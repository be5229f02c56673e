// Package remote pushes account state to the waypoint sync service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.waypointhq.dev"

// Client talks to the remote sync endpoint. Each update is a full partial
// upsert keyed by user id, so repeating a push is harmless.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the sync endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateAccount upserts the given fields on the user's remote record.
// Fields absent from payload are left untouched server-side.
func (c *Client) UpdateAccount(ctx context.Context, userID string, payload map[string]any) error {
	if userID == "" {
		return fmt.Errorf("user id cannot be empty")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/accounts/%s", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sync request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sync rejected with status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
