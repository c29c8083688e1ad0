// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/haven-tui/internal/auth"
	"github.com/jeranaias/haven-tui/internal/session"
	"github.com/jeranaias/haven-tui/internal/storage"
)

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

type fakeAPI struct {
	loginErr error
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "tok123", nil
}

func (f *fakeAPI) Register(ctx context.Context, username, password string) error {
	return nil
}

func newModel(api *fakeAPI) Model {
	sessions := session.NewStore(newMemKV(), nil)
	return New(auth.NewController(api, sessions), 5*time.Second)
}

func typeKeys(m Model, keys string) Model {
	for _, r := range keys {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, key tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: key})
}

// =============================================================================
// FORM TESTS
// =============================================================================

func TestTyping_ReachesFocusedField(t *testing.T) {
	m := newModel(&fakeAPI{})
	m = typeKeys(m, "alice")
	if m.username.Value() != "alice" {
		t.Errorf("expected username alice, got %q", m.username.Value())
	}

	m, _ = press(m, tea.KeyTab)
	m = typeKeys(m, "secret")
	if m.password.Value() != "secret" {
		t.Errorf("expected password secret, got %q", m.password.Value())
	}
	if m.username.Value() != "alice" {
		t.Errorf("username should be untouched, got %q", m.username.Value())
	}
}

func TestEnter_BlankFieldsShowsError(t *testing.T) {
	m := newModel(&fakeAPI{})
	m, _ = press(m, tea.KeyEnter)

	if !m.banner.Visible() {
		t.Fatal("expected an error banner for blank credentials")
	}
	if !strings.Contains(m.banner.Text(), "required") {
		t.Errorf("unexpected banner text: %q", m.banner.Text())
	}
}

func TestEnter_SubmitsLogin(t *testing.T) {
	m := newModel(&fakeAPI{})
	m = typeKeys(m, "alice")
	m, _ = press(m, tea.KeyTab)
	m = typeKeys(m, "secret")

	var cmd tea.Cmd
	m, cmd = press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected a command from enter")
	}
	if !m.spinner.Active() {
		t.Error("expected spinner while the login is in flight")
	}
}

func TestResultMsg_FailureShowsBanner(t *testing.T) {
	m := newModel(&fakeAPI{})

	m, _ = m.Update(ResultMsg{Err: errors.New("invalid credentials")})
	if m.spinner.Active() {
		t.Error("spinner should stop when the result lands")
	}
	if !m.banner.Visible() {
		t.Fatal("expected an error banner")
	}
	if !strings.Contains(m.banner.Text(), "Login failed") {
		t.Errorf("unexpected banner text: %q", m.banner.Text())
	}
}

func TestResultMsg_SuccessScrubsPassword(t *testing.T) {
	m := newModel(&fakeAPI{})
	m, _ = press(m, tea.KeyTab)
	m = typeKeys(m, "secret")

	m, _ = m.Update(ResultMsg{Err: nil})
	if m.password.Value() != "" {
		t.Error("password should be scrubbed after a successful login")
	}
}

func TestRegisterResult(t *testing.T) {
	m := newModel(&fakeAPI{})

	m, _ = m.Update(RegisterResultMsg{Err: nil})
	if !m.banner.Visible() || !strings.Contains(m.banner.Text(), "Account created") {
		t.Errorf("expected success banner, got %q", m.banner.Text())
	}

	m, _ = m.Update(RegisterResultMsg{Err: errors.New("Username already exists")})
	if !strings.Contains(m.banner.Text(), "Registration failed") {
		t.Errorf("expected failure banner, got %q", m.banner.Text())
	}
}

func TestReset(t *testing.T) {
	m := newModel(&fakeAPI{})
	m = typeKeys(m, "alice")
	m, _ = press(m, tea.KeyTab)
	m = typeKeys(m, "secret")

	m.Reset()
	if m.username.Value() != "" || m.password.Value() != "" {
		t.Error("Reset should clear both fields")
	}
	if m.focus != focusUsername {
		t.Error("Reset should refocus the username field")
	}
}

func TestView_ContainsForm(t *testing.T) {
	m := newModel(&fakeAPI{})
	view := m.View()
	for _, want := range []string{"haven", "Username", "Password", "register"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}
