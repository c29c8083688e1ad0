// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/auth"
	"github.com/jeranaias/haven-tui/internal/chat"
	"github.com/jeranaias/haven-tui/internal/config"
	"github.com/jeranaias/haven-tui/internal/mood"
	"github.com/jeranaias/haven-tui/internal/session"
	"github.com/jeranaias/haven-tui/internal/ui/chatview"
	"github.com/jeranaias/haven-tui/internal/ui/login"
)

// =============================================================================
// ROOT MODEL
// =============================================================================

// configReloadedMsg arrives when the config file changed on disk and
// reloaded cleanly.
type configReloadedMsg struct {
	cfg *config.Config
}

type screen int

const (
	screenLogin screen = iota
	screenChat
)

// appModel routes between the login screen and the conversation. The
// authenticated transition is the only way into the conversation, and
// it triggers the once-per-login trend fetch.
type appModel struct {
	authCtrl *auth.Controller
	moodCtrl *mood.Controller

	loginView login.Model
	chatView  chatview.Model
	active    screen

	width  int
	height int
}

func newApp(cfg *config.Config, client *api.Client, sessions *session.Store, authCtrl *auth.Controller, chatCtrl *chat.Controller, moodCtrl *mood.Controller) appModel {
	active := screenLogin
	if authCtrl.State() == auth.StateAuthenticated {
		active = screenChat
	}

	return appModel{
		authCtrl:  authCtrl,
		moodCtrl:  moodCtrl,
		loginView: login.New(authCtrl, client.Timeout()),
		chatView: chatview.New(chatCtrl, moodCtrl, client, sessions, chatview.Options{
			ChartHeight:    cfg.UI.ChartHeight,
			ShowTimestamps: cfg.UI.ShowTimestamps,
			Language:       cfg.Chat.DefaultLanguage,
		}),
		active: active,
	}
}

// Init kicks off the active screen. A session restored from disk
// skips the login form, so the trend fetch fires here too.
func (a appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loginView.Init(), a.chatView.Init()}
	if a.active == screenChat && a.moodCtrl.NeedsFetch() {
		cmds = append(cmds, a.chatView.FetchTrendCmd())
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// UPDATE
// =============================================================================

func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.loginView.SetSize(msg.Width, msg.Height)
		a.chatView.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q", "ctrl+c":
			a.chatView.Teardown()
			return a, tea.Quit

		case "ctrl+d":
			if a.active == screenChat {
				return a.signOut()
			}
		}

	case login.ResultMsg:
		var cmd tea.Cmd
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err == nil && a.authCtrl.State() == auth.StateAuthenticated {
			a.active = screenChat
			if a.moodCtrl.NeedsFetch() {
				return a, tea.Batch(cmd, a.chatView.FetchTrendCmd())
			}
		}
		return a, cmd

	case chatview.SessionExpiredMsg:
		return a.signOut()

	case configReloadedMsg:
		cmd := a.chatView.ApplyConfig(chatview.Options{
			ChartHeight:    msg.cfg.UI.ChartHeight,
			ShowTimestamps: msg.cfg.UI.ShowTimestamps,
			Language:       msg.cfg.Chat.DefaultLanguage,
		})
		if a.active == screenChat {
			return a, cmd
		}
		return a, nil
	}

	return a.route(msg)
}

// route forwards a message to the active screen.
func (a appModel) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if a.active == screenLogin {
		a.loginView, cmd = a.loginView.Update(msg)
	} else {
		a.chatView, cmd = a.chatView.Update(msg)
	}
	return a, cmd
}

// signOut clears the session and returns to the login form. The mood
// history resets so the next login fetches fresh data.
func (a appModel) signOut() (tea.Model, tea.Cmd) {
	_ = a.authCtrl.Logout()
	a.moodCtrl.Reset()
	a.chatView.Teardown()
	a.loginView.Reset()
	a.active = screenLogin
	return a, nil
}

// =============================================================================
// VIEW
// =============================================================================

func (a appModel) View() string {
	if a.active == screenLogin {
		return a.loginView.View()
	}
	return a.chatView.View()
}
