// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jeranaias/haven-tui/internal/session"
)

// =============================================================================
// STATES
// =============================================================================

// State is the authentication lifecycle position.
type State int

const (
	// StateAnonymous means no token is held.
	StateAnonymous State = iota
	// StateAuthenticating means a login request is in flight.
	StateAuthenticating
	// StateAuthenticated means a token is held and protected screens
	// are reachable.
	StateAuthenticated
	// StateAuthFailed means the last login attempt was rejected. The
	// login form stays usable for another attempt.
	StateAuthFailed
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateAuthFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrLoginInFlight      = errors.New("login already in progress")
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Authenticator is the backend surface the controller needs.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) error
}

// Controller owns the authentication state. The session store is the
// only place the token goes; the controller never retains credentials
// past the call that used them.
type Controller struct {
	mu          sync.Mutex
	api         Authenticator
	sessions    *session.Store
	state       State
	lastErr     error
	subscribers []func(State)
}

// NewController creates a controller. A session restored from disk
// starts the machine in the authenticated state.
func NewController(api Authenticator, sessions *session.Store) *Controller {
	state := StateAnonymous
	if sessions.IsAuthenticated() {
		state = StateAuthenticated
	}
	return &Controller{
		api:      api,
		sessions: sessions,
		state:    state,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error behind the last failed transition, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Subscribe registers a callback for state transitions. Callbacks run
// synchronously after the transition is applied.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Login attempts to authenticate. Blank credentials fail locally
// without a request. A second login while one is in flight is
// rejected rather than queued.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		c.transition(StateAuthFailed, ErrMissingCredentials)
		return ErrMissingCredentials
	}

	c.mu.Lock()
	if c.state == StateAuthenticating {
		c.mu.Unlock()
		return ErrLoginInFlight
	}
	c.mu.Unlock()

	c.transition(StateAuthenticating, nil)

	token, err := c.api.Login(ctx, username, password)
	if err != nil {
		c.transition(StateAuthFailed, err)
		return err
	}

	if err := c.sessions.Set(token); err != nil {
		c.transition(StateAuthFailed, err)
		return err
	}

	c.transition(StateAuthenticated, nil)
	return nil
}

// Register creates an account. The state machine does not move: a
// successful registration still requires a login.
func (c *Controller) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	return c.api.Register(ctx, username, password)
}

// Logout clears the session and returns to anonymous.
func (c *Controller) Logout() error {
	if err := c.sessions.Clear(); err != nil {
		return err
	}
	c.transition(StateAnonymous, nil)
	return nil
}

// Expire handles a token the backend no longer accepts: the stale
// session is dropped and the machine returns to anonymous.
func (c *Controller) Expire() error {
	return c.Logout()
}

func (c *Controller) transition(next State, err error) {
	c.mu.Lock()
	c.state = next
	c.lastErr = err
	subs := append([]func(State){}, c.subscribers...)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}
