// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatview implements the conversation screen.
//
// It owns the composer, the scrolling message list, the reply
// language selector, and the mood trend panel. Sends are optimistic:
// the user message lands in the list immediately and the reply (or a
// failure banner) follows when the request completes.
package chatview

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/chat"
	"github.com/jeranaias/haven-tui/internal/model"
	"github.com/jeranaias/haven-tui/internal/mood"
	"github.com/jeranaias/haven-tui/internal/session"
	"github.com/jeranaias/haven-tui/internal/ui/chart"
	"github.com/jeranaias/haven-tui/internal/ui/components"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ReplyMsg carries the outcome of one send.
type ReplyMsg struct {
	Seq   uint64
	Reply *api.ChatReply
	Err   error
}

// TrendMsg carries the outcome of a mood trend fetch.
type TrendMsg struct {
	Points []model.MoodPoint
	Err    error
}

// SessionExpiredMsg tells the root model the backend rejected our
// token. The root logs out and returns to the login screen.
type SessionExpiredMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the conversation screen state.
type Model struct {
	chatCtrl *chat.Controller
	moodCtrl *mood.Controller
	client   *api.Client
	sessions *session.Store

	input    textinput.Model
	viewport viewport.Model
	spinner  components.Spinner
	banner   components.Banner
	langSel  components.LangSelector
	adapter  *chart.Adapter
	markdown *glamour.TermRenderer

	showChart      bool
	showTimestamps bool
	ready          bool
	width          int
	height         int
}

// Options configures the conversation screen.
type Options struct {
	ChartHeight    int
	ShowTimestamps bool
	Language       string
}

// New creates the conversation screen.
func New(chatCtrl *chat.Controller, moodCtrl *mood.Controller, client *api.Client, sessions *session.Store, opts Options) Model {
	input := textinput.New()
	input.Placeholder = "Say something..."
	input.CharLimit = 2000
	input.Focus()

	chatCtrl.SetLanguage(opts.Language)

	markdown, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		markdown = nil
	}

	height := opts.ChartHeight
	if height == 0 {
		height = 10
	}

	return Model{
		chatCtrl:       chatCtrl,
		moodCtrl:       moodCtrl,
		client:         client,
		sessions:       sessions,
		input:          input,
		spinner:        components.NewSpinner("Haven is thinking"),
		banner:         components.NewBanner(),
		langSel:        components.NewLangSelector(chatCtrl.Language()),
		adapter:        chart.NewAdapter(chart.NewLineChart, height),
		markdown:       markdown,
		showTimestamps: opts.ShowTimestamps,
	}
}

// Init starts cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize lays the screen out for the window dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.banner.SetWidth(width - 2)

	vpHeight := height - m.chromeHeight()
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.refreshMessages()
}

// ApplyConfig applies freshly loaded settings to the running screen.
// The reply language follows the config file; a chart height change
// rebuilds the open chart at the new size.
func (m *Model) ApplyConfig(opts Options) tea.Cmd {
	m.showTimestamps = opts.ShowTimestamps

	if api.IsSupportedLanguage(opts.Language) && opts.Language != m.chatCtrl.Language() {
		m.chatCtrl.SetLanguage(opts.Language)
		m.langSel.Select(opts.Language)
	}

	if opts.ChartHeight > 0 && opts.ChartHeight != m.adapter.Height() {
		m.adapter.SetHeight(opts.ChartHeight)
		if m.showChart {
			m.adapter.SetData(m.moodCtrl.PlotPoints())
		}
	}

	m.SetSize(m.width, m.height)
	return m.banner.Show("Settings reloaded", components.BannerInfo)
}

// Teardown releases the chart renderer when the screen goes away.
func (m *Model) Teardown() {
	m.adapter.Teardown()
}

// ChartAdapter exposes the chart lifecycle, mainly for tests.
func (m *Model) ChartAdapter() *chart.Adapter {
	return m.adapter
}
