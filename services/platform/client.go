package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client is a typed HTTP client for the platform REST API. The signed-in
// customer's bearer token is passed through on every call.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient returns a platform API client rooted at baseURL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// CollaboratorError is a non-2xx or transport failure from a platform call,
// carrying the human-readable messages collected from the error payload.
type CollaboratorError struct {
	StatusCode int
	Messages   []string
}

func (e *CollaboratorError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("platform request failed with status %d", e.StatusCode)
	}
	return strings.Join(e.Messages, "; ")
}

// collectMessages pulls every human-readable message out of a structured error
// payload (message / error / title / nested field errors) and deduplicates them.
func collectMessages(body []byte) []string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var messages []string
	add := func(m string) {
		m = strings.TrimSpace(m)
		if m != "" && !seen[m] {
			seen[m] = true
			messages = append(messages, m)
		}
	}

	for _, key := range []string{"message", "error", "title", "detail"} {
		if s, ok := payload[key].(string); ok {
			add(s)
		}
	}
	if errs, ok := payload["errors"].(map[string]interface{}); ok {
		for _, v := range errs {
			switch val := v.(type) {
			case string:
				add(val)
			case []interface{}:
				for _, item := range val {
					if s, ok := item.(string); ok {
						add(s)
					}
				}
			}
		}
	}
	return messages
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("platform request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read platform response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		collabErr := &CollaboratorError{
			StatusCode: resp.StatusCode,
			Messages:   collectMessages(data),
		}
		c.logger.Warn("platform call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Strings("messages", collabErr.Messages),
		)
		return collabErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode platform response: %w", err)
		}
	}
	return nil
}
