// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jeranaias/haven-tui/internal/storage"
)

// tokenKey is the fixed key the sealed token is stored under.
const tokenKey = "auth_token"

// KV is the persistence the store needs. *storage.Store satisfies it.
type KV interface {
	Get(key string) (string, error)
	Put(key, value string) error
	Delete(key string) error
}

// Session is the snapshot handed to subscribers.
type Session struct {
	Token string
}

// Authenticated reports whether the snapshot carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// =============================================================================
// STORE
// =============================================================================

// Store is the single owner of the access token. All reads and writes
// of the credential go through it; screens never hold their own copy.
type Store struct {
	mu          sync.RWMutex
	kv          KV
	sealer      *Sealer
	token       string
	subscribers []func(Session)
}

// NewStore creates a session store over the given persistence. A nil
// sealer stores the token unprotected; callers outside tests should
// always pass one.
func NewStore(kv KV, sealer *Sealer) *Store {
	return &Store{kv: kv, sealer: sealer}
}

// Load restores a persisted token, if any. A missing key means an
// anonymous session. A token that fails to unseal (copied database,
// rotated secret) is discarded rather than surfaced as an error, so a
// bad credential can never block startup.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.kv.Get(tokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		s.token = ""
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if s.sealer == nil {
		s.token = stored
		return nil
	}

	token, err := s.sealer.Open(stored)
	if err != nil {
		s.token = ""
		_ = s.kv.Delete(tokenKey)
		return nil
	}
	s.token = token
	return nil
}

// Set stores a new token and notifies subscribers.
func (s *Store) Set(token string) error {
	s.mu.Lock()

	stored := token
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(token)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to seal token: %w", err)
		}
		stored = sealed
	}
	if err := s.kv.Put(tokenKey, stored); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.token = token
	snapshot := Session{Token: token}
	subs := append([]func(Session){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	return nil
}

// Clear drops the token in memory and at rest, returning the store to
// the anonymous state. Subscribers are notified.
func (s *Store) Clear() error {
	s.mu.Lock()

	if err := s.kv.Delete(tokenKey); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.token = ""
	subs := append([]func(Session){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(Session{})
	}
	return nil
}

// Token returns the current access token ("" when anonymous).
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Subscribe registers a callback for session changes. Callbacks run
// synchronously on the goroutine that changed the session, after the
// change is applied.
func (s *Store) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
