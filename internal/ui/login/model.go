// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the sign-in and registration screen.
//
// The form drives the auth controller: enter submits a login,
// ctrl+r registers the typed credentials. Results come back as
// messages so the root model can react to the state change.
package login

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/auth"
	"github.com/jeranaias/haven-tui/internal/ui/components"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ResultMsg reports a finished login attempt.
type ResultMsg struct {
	Err error
}

// RegisterResultMsg reports a finished registration attempt.
type RegisterResultMsg struct {
	Err error
}

// =============================================================================
// MODEL
// =============================================================================

const (
	focusUsername = iota
	focusPassword
	focusCount
)

// Model is the login screen state.
type Model struct {
	auth    *auth.Controller
	timeout time.Duration

	username textinput.Model
	password textinput.Model
	focus    int

	spinner components.Spinner
	banner  components.Banner

	width  int
	height int
}

// New creates the login screen.
func New(authCtrl *auth.Controller, timeout time.Duration) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{
		auth:     authCtrl,
		timeout:  timeout,
		username: username,
		password: password,
		spinner:  components.NewSpinner("Signing in"),
		banner:   components.NewBanner(),
	}
}

// Init starts cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize stores the window dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.banner.SetWidth(width - 2)
}

// Reset clears both fields, for re-entry after logout.
func (m *Model) Reset() {
	m.username.SetValue("")
	m.password.SetValue("")
	m.focus = focusUsername
	m.username.Focus()
	m.password.Blur()
	m.banner.Hide()
	m.spinner.Stop()
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles input and async results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResultMsg:
		m.spinner.Stop()
		if msg.Err != nil {
			return m, m.banner.Show(loginErrorText(msg.Err), components.BannerError)
		}
		// Success: the root model switches screens. Scrub the
		// password so it does not outlive the attempt.
		m.password.SetValue("")
		return m, nil

	case RegisterResultMsg:
		m.spinner.Stop()
		if msg.Err != nil {
			return m, m.banner.Show("Registration failed: "+msg.Err.Error(), components.BannerError)
		}
		return m, m.banner.Show("Account created. Press enter to sign in.", components.BannerSuccess)

	case components.BannerExpiredMsg:
		m.banner.Update(msg)
		return m, nil
	}

	cmd := m.spinner.Update(msg)
	inputCmd := m.updateInputs(msg)
	return m, tea.Batch(cmd, inputCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil

	case "enter":
		return m.submitLogin()

	case "ctrl+r":
		return m.submitRegister()
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *Model) setFocus(focus int) {
	m.focus = focus
	if focus == focusUsername {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.password.Focus()
		m.username.Blur()
	}
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) submitLogin() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		return m, m.banner.Show("Username and password are required", components.BannerError)
	}

	m.banner.Hide()
	spinCmd := m.spinner.Start()
	return m, tea.Batch(spinCmd, m.loginCmd(username, password))
}

func (m Model) submitRegister() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		return m, m.banner.Show("Fill in both fields to register", components.BannerError)
	}

	m.banner.Hide()
	m.spinner.SetMessage("Registering")
	spinCmd := m.spinner.Start()
	return m, tea.Batch(spinCmd, m.registerCmd(username, password))
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	authCtrl, timeout := m.auth, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ResultMsg{Err: authCtrl.Login(ctx, username, password)}
	}
}

func (m Model) registerCmd(username, password string) tea.Cmd {
	authCtrl, timeout := m.auth, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return RegisterResultMsg{Err: authCtrl.Register(ctx, username, password)}
	}
}

// loginErrorText turns a login failure into banner copy.
func loginErrorText(err error) string {
	if errors.Is(err, auth.ErrMissingCredentials) {
		return "Username and password are required"
	}
	if api.IsInvalidCredentials(err) {
		return "Invalid username or password"
	}
	return "Login failed: " + err.Error()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the login form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("haven"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("a quiet place to talk"))
	b.WriteString("\n\n")

	userBorder := styles.BlurredBorder
	passBorder := styles.BlurredBorder
	if m.focus == focusUsername {
		userBorder = styles.FocusedBorder
	} else {
		passBorder = styles.FocusedBorder
	}

	b.WriteString(styles.Label.Render("Username"))
	b.WriteString("\n")
	b.WriteString(userBorder.Render(m.username.View()))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render("Password"))
	b.WriteString("\n")
	b.WriteString(passBorder.Render(m.password.View()))
	b.WriteString("\n\n")

	if m.spinner.Active() {
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	}
	if m.banner.Visible() {
		b.WriteString(m.banner.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpBar.Render("enter sign in · ctrl+r register · tab switch field · ctrl+q quit"))

	content := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
