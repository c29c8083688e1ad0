// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jeranaias/haven-tui/internal/session"
	"github.com/jeranaias/haven-tui/internal/storage"
)

// fakeAPI is a scripted Authenticator.
type fakeAPI struct {
	loginToken    string
	loginErr      error
	registerErr   error
	loginCalls    int
	registerCalls int
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (string, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeAPI) Register(ctx context.Context, username, password string) error {
	f.registerCalls++
	return f.registerErr
}

// memKV keeps the session store off disk for these tests.
type memKV struct {
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: make(map[string]string)} }

func (m *memKV) Get(key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}
func (m *memKV) Put(key, value string) error { m.data[key] = value; return nil }
func (m *memKV) Delete(key string) error     { delete(m.data, key); return nil }

func newController(api *fakeAPI) (*Controller, *session.Store) {
	sessions := session.NewStore(newMemKV(), nil)
	return NewController(api, sessions), sessions
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

func TestLogin_Success(t *testing.T) {
	api := &fakeAPI{loginToken: "tok123"}
	ctrl, sessions := newController(api)

	var transitions []State
	ctrl.Subscribe(func(s State) { transitions = append(transitions, s) })

	if err := ctrl.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if ctrl.State() != StateAuthenticated {
		t.Errorf("expected authenticated, got %v", ctrl.State())
	}
	if sessions.Token() != "tok123" {
		t.Errorf("expected token in session store, got %q", sessions.Token())
	}
	want := []State{StateAuthenticating, StateAuthenticated}
	if len(transitions) != len(want) {
		t.Fatalf("expected %d transitions, got %v", len(want), transitions)
	}
	for i, s := range want {
		if transitions[i] != s {
			t.Errorf("transition %d: expected %v, got %v", i, s, transitions[i])
		}
	}
}

func TestLogin_Rejected(t *testing.T) {
	wantErr := errors.New("invalid credentials")
	api := &fakeAPI{loginErr: wantErr}
	ctrl, sessions := newController(api)

	err := ctrl.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected login error, got %v", err)
	}
	if ctrl.State() != StateAuthFailed {
		t.Errorf("expected failed state, got %v", ctrl.State())
	}
	if !errors.Is(ctrl.Err(), wantErr) {
		t.Errorf("expected failure recorded, got %v", ctrl.Err())
	}
	if sessions.IsAuthenticated() {
		t.Error("expected no token after rejected login")
	}
}

func TestLogin_BlankCredentialsFailLocally(t *testing.T) {
	api := &fakeAPI{loginToken: "tok123"}
	ctrl, _ := newController(api)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"both blank", "", ""},
		{"blank password", "alice", ""},
		{"blank username", "", "secret"},
		{"whitespace username", "   ", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ctrl.Login(context.Background(), tt.username, tt.password)
			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	}
	if api.loginCalls != 0 {
		t.Errorf("expected no backend calls, got %d", api.loginCalls)
	}
}

func TestLogin_RetryAfterFailure(t *testing.T) {
	api := &fakeAPI{loginErr: errors.New("invalid credentials")}
	ctrl, _ := newController(api)

	_ = ctrl.Login(context.Background(), "alice", "wrong")
	if ctrl.State() != StateAuthFailed {
		t.Fatalf("expected failed state, got %v", ctrl.State())
	}

	api.loginErr = nil
	api.loginToken = "tok123"
	if err := ctrl.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if ctrl.State() != StateAuthenticated {
		t.Errorf("expected authenticated after retry, got %v", ctrl.State())
	}
}

// =============================================================================
// REGISTER TESTS
// =============================================================================

func TestRegister_DoesNotAuthenticate(t *testing.T) {
	api := &fakeAPI{}
	ctrl, sessions := newController(api)

	if err := ctrl.Register(context.Background(), "bob", "hunter2"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if ctrl.State() != StateAnonymous {
		t.Errorf("expected anonymous after registration, got %v", ctrl.State())
	}
	if sessions.IsAuthenticated() {
		t.Error("registration must not create a session")
	}
	if api.registerCalls != 1 {
		t.Errorf("expected 1 register call, got %d", api.registerCalls)
	}
}

func TestRegister_BlankCredentials(t *testing.T) {
	api := &fakeAPI{}
	ctrl, _ := newController(api)

	if err := ctrl.Register(context.Background(), "", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
	if api.registerCalls != 0 {
		t.Errorf("expected no backend calls, got %d", api.registerCalls)
	}
}

// =============================================================================
// LOGOUT TESTS
// =============================================================================

func TestLogout(t *testing.T) {
	api := &fakeAPI{loginToken: "tok123"}
	ctrl, sessions := newController(api)

	if err := ctrl.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := ctrl.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if ctrl.State() != StateAnonymous {
		t.Errorf("expected anonymous after logout, got %v", ctrl.State())
	}
	if sessions.IsAuthenticated() {
		t.Error("expected session cleared after logout")
	}
}

func TestNewController_RestoredSessionStartsAuthenticated(t *testing.T) {
	sessions := session.NewStore(newMemKV(), nil)
	if err := sessions.Set("tok123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	ctrl := NewController(&fakeAPI{}, sessions)
	if ctrl.State() != StateAuthenticated {
		t.Errorf("expected authenticated with restored session, got %v", ctrl.State())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateAnonymous, "anonymous"},
		{StateAuthenticating, "authenticating"},
		{StateAuthenticated, "authenticated"},
		{StateAuthFailed, "failed"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
