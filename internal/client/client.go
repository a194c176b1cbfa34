// Package client speaks the chatbot backend's HTTP contract: a streaming
// chat endpoint emitting typed event frames, a non-streaming fallback,
// and a health probe.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mulbot/mulchat/internal/model/chat"
	"github.com/mulbot/mulchat/internal/stream"
)

const (
	// DefaultBaseURL points at a locally running backend.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds the non-streaming endpoints. The streaming
	// endpoint is bounded by the caller's context instead.
	DefaultTimeout = 30 * time.Second

	// maxResponseSize caps non-streaming response bodies.
	maxResponseSize = 1 << 20

	streamPath = "/api/chat/stream"
	chatPath   = "/api/chat"
	healthPath = "/api/health"
)

// StatusError reports a non-success HTTP status on the initial request,
// before any frame was read.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat backend returned HTTP %d", e.Code)
}

// Client talks to one chatbot backend.
type Client struct {
	baseURL string
	http    *http.Client // non-streaming, timeout-bounded
	stream  *http.Client // streaming, context-bounded
	log     zerolog.Logger
}

// New creates a client for the backend at baseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		stream:  &http.Client{},
		log:     zerolog.Nop(),
	}
}

// WithTimeout sets the timeout for the non-streaming endpoints.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.http.Timeout = timeout
	return c
}

// WithLogger attaches a logger.
func (c *Client) WithLogger(log zerolog.Logger) *Client {
	c.log = log.With().Str("component", "client").Logger()
	return c
}

// Stream submits a message and returns a decoder over the event frames.
// threadID correlates the turn with an existing conversation; pass the
// empty string on the first turn. The caller must drain and Close the
// decoder.
func (c *Client) Stream(ctx context.Context, message, threadID string) (*stream.Decoder, error) {
	req, err := c.newChatRequest(ctx, streamPath, message, threadID)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stream request: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		c.log.Warn().Int("status", resp.StatusCode).Msg("stream request rejected")
		return nil, &StatusError{Code: resp.StatusCode}
	}

	c.log.Debug().Str("thread_id", threadID).Msg("stream opened")
	return stream.NewDecoder(resp.Body), nil
}

// Send is the non-streaming fallback: one request, one final answer.
func (c *Client) Send(ctx context.Context, message, threadID string) (chat.SendResponse, error) {
	req, err := c.newChatRequest(ctx, chatPath, message, threadID)
	if err != nil {
		return chat.SendResponse{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return chat.SendResponse{}, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return chat.SendResponse{}, fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return chat.SendResponse{}, &StatusError{Code: resp.StatusCode}
	}

	var out chat.SendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return chat.SendResponse{}, fmt.Errorf("parse chat response: %w", err)
	}
	return out, nil
}

// Health probes the backend.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

func (c *Client) newChatRequest(ctx context.Context, path, message, threadID string) (*http.Request, error) {
	payload := chat.SendRequest{Message: message}
	if threadID != "" {
		payload.ThreadID = &threadID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
