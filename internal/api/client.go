// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/jeranaias/haven-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeUnauthorized
	ErrTypeInvalidCredentials
	ErrTypeUserExists
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable        = &ClientError{Type: ErrTypeConnection, Message: "service is unreachable"}
	ErrTimeout            = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrUnauthorized       = &ClientError{Type: ErrTypeUnauthorized, Message: "not authorized"}
	ErrInvalidCredentials = &ClientError{Type: ErrTypeInvalidCredentials, Message: "invalid credentials"}
	ErrUserExists         = &ClientError{Type: ErrTypeUserExists, Message: "username already exists"}
)

// IsUnauthorized checks whether an error is an authorization failure.
func IsUnauthorized(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnauthorized
	}
	return false
}

// IsInvalidCredentials checks whether an error is a rejected login.
func IsInvalidCredentials(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeInvalidCredentials
	}
	return false
}

// IsTimeout checks whether an error is a timeout.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL of the haven backend, e.g. http://127.0.0.1:5000
	BaseURL string

	// Timeout for requests (default: 30s). The client enforces no other
	// deadline; callers pass a context when they want a shorter one.
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:5000",
		Timeout: 30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the haven backend. It is stateless: the bearer token is
// passed per call, never held by the client, so the session store stays the
// single owner of the credential.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:5000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Timeout returns the configured request timeout.
func (c *Client) Timeout() time.Duration {
	return c.config.Timeout
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Login exchanges credentials for an access token. A response without a
// token is a failure, never a success with an empty credential.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := c.post(ctx, "/login", "", credentialsRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		drainBody(resp)
		return "", ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return "", c.statusError("login failed", resp)
	}

	var result loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode login response", Cause: err}
	}
	if result.AccessToken == "" {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "login response missing access token"}
	}

	return result.AccessToken, nil
}

// Register creates a new account. Registration never authenticates; the
// caller must log in separately afterwards.
func (c *Client) Register(ctx context.Context, username, password string) error {
	resp, err := c.post(ctx, "/register", "", credentialsRequest{Username: username, Password: password})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		drainBody(resp)
		return nil
	case http.StatusBadRequest:
		var body registerResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			if body.Error == "Username already exists" {
				return ErrUserExists
			}
			return &ClientError{Type: ErrTypeInvalidResponse, Message: body.Error}
		}
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "registration rejected"}
	default:
		return c.statusError("registration failed", resp)
	}
}

// =============================================================================
// CHAT OPERATION
// =============================================================================

// Chat sends one user message and returns the bot reply with its sentiment
// annotation. The token authenticates the call.
//
// A reply without a response text is rejected here rather than letting a
// blank bot message reach the conversation log.
func (c *Client) Chat(ctx context.Context, token, message, language string) (*ChatReply, error) {
	resp, err := c.post(ctx, "/chat", token, chatRequest{Message: message, Language: language})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		drainBody(resp)
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError("chat request failed", resp)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode chat response", Cause: err}
	}
	if result.Response == "" {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "chat response missing reply text"}
	}

	reply := &ChatReply{Response: result.Response}
	if result.Sentiment != nil && result.Confidence != nil {
		reply.Sentiment = *result.Sentiment
		reply.Confidence = *result.Confidence
		reply.HasSentiment = true
	}
	return reply, nil
}

// =============================================================================
// MOOD TREND OPERATION
// =============================================================================

// MoodTrend fetches the caller's historical sentiment events. The backend
// returns newest-first; the result is re-sorted ascending by timestamp so
// the series reads left to right on a time axis.
func (c *Client) MoodTrend(ctx context.Context, token string) ([]model.MoodPoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/mood_trend", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		drainBody(resp)
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError("mood trend request failed", resp)
	}

	var entries []moodEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode mood trend", Cause: err}
	}

	points := make([]model.MoodPoint, 0, len(entries))
	for _, e := range entries {
		ts, err := parseTimestamp(e.Timestamp)
		if err != nil {
			return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "mood trend entry has invalid timestamp", Cause: err}
		}
		sentiment, ok := model.ParseSentiment(e.Sentiment)
		if !ok {
			return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "mood trend entry has unknown sentiment: " + e.Sentiment}
		}
		points = append(points, model.MoodPoint{
			Timestamp:  ts,
			Sentiment:  sentiment,
			Confidence: e.Confidence,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	return points, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// post issues a JSON POST. A non-empty token is attached as a bearer
// credential.
func (c *Client) post(ctx context.Context, path, token string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	return resp, nil
}

// statusError builds a ClientError from an unexpected HTTP status, reading
// the service's error body when one is present.
func (c *Client) statusError(prefix string, resp *http.Response) error {
	var svcErr serviceError
	if err := json.NewDecoder(resp.Body).Decode(&svcErr); err == nil {
		if svcErr.Error != "" {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: prefix + ": " + svcErr.Error}
		}
		if svcErr.Msg != "" {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: prefix + ": " + svcErr.Msg}
		}
	}
	return &ClientError{Type: ErrTypeInvalidResponse, Message: prefix + ": " + resp.Status}
}

// drainBody discards a response body so the connection can be reused.
func drainBody(resp *http.Response) {
	const maxDrain = 4 << 10
	buf := make([]byte, maxDrain)
	for {
		if _, err := resp.Body.Read(buf); err != nil {
			return
		}
	}
}

// timestampLayouts are the formats the backend has been seen emitting.
// Flask's isoformat omits the zone marker; RFC3339 covers proxied setups.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// parseTimestamp decodes a trend timestamp, trying each known layout.
func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
