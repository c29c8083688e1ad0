// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatview

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/chat"
	"github.com/jeranaias/haven-tui/internal/model"
	"github.com/jeranaias/haven-tui/internal/ui/components"
	"github.com/jeranaias/haven-tui/internal/util"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles input and async results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case TrendMsg:
		return m.handleTrend(msg)

	case components.BannerExpiredMsg:
		m.banner.Update(msg)
		return m, nil
	}

	spinCmd := m.spinner.Update(msg)
	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(spinCmd, vpCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()

	case "ctrl+g":
		lang := m.chatCtrl.CycleLanguage()
		m.langSel.Select(lang)
		return m, m.banner.Show("Replies in "+components.LangName(lang), components.BannerInfo)

	case "ctrl+t":
		m.showChart = !m.showChart
		if m.showChart {
			m.adapter.SetData(m.moodCtrl.PlotPoints())
		} else {
			m.adapter.Teardown()
		}
		m.SetSize(m.width, m.height)
		return m, nil

	case "up", "down", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SEND PIPELINE
// =============================================================================

func (m Model) submit() (Model, tea.Cmd) {
	text := m.input.Value()

	pending, err := m.chatCtrl.Send(text)
	if errors.Is(err, chat.ErrEmptyMessage) {
		// Blank input: nothing appended, nothing sent
		return m, nil
	}
	if err != nil {
		return m, m.banner.Show("Could not send: "+err.Error(), components.BannerError)
	}

	m.input.SetValue("")
	m.refreshMessages()
	m.viewport.GotoBottom()

	var spinCmd tea.Cmd
	if !m.spinner.Active() {
		spinCmd = m.spinner.Start()
	}
	return m, tea.Batch(spinCmd, m.sendCmd(pending.Seq, pending.Message.Text))
}

// sendCmd dispatches one chat request. The sequence number ties the
// eventual reply back to its pending send.
func (m Model) sendCmd(seq uint64, text string) tea.Cmd {
	client, token, lang := m.client, m.sessions.Token(), m.chatCtrl.Language()
	return func() tea.Msg {
		reply, err := client.Chat(context.Background(), token, text, lang)
		return ReplyMsg{Seq: seq, Reply: reply, Err: err}
	}
}

func (m Model) handleReply(msg ReplyMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		failed, _ := m.chatCtrl.Fail(msg.Seq)
		if m.chatCtrl.InFlight() == 0 {
			m.spinner.Stop()
		}
		if api.IsUnauthorized(msg.Err) {
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
		text := "Message failed to send. The conversation keeps your message."
		if failed != nil {
			text = "Couldn't send \"" + failed.Preview(24) + "\". The conversation keeps your message."
		}
		return m, m.banner.Show(text, components.BannerError)
	}

	if _, err := m.chatCtrl.Resolve(msg.Seq, msg.Reply); err != nil {
		// Reply for a retired send, drop it
		return m, nil
	}
	if m.chatCtrl.InFlight() == 0 {
		m.spinner.Stop()
	}
	m.refreshMessages()
	m.viewport.GotoBottom()
	return m, nil
}

// =============================================================================
// MOOD TREND
// =============================================================================

// FetchTrendCmd loads the sentiment history. The root model issues it
// once per login, on the transition into the authenticated state.
func (m Model) FetchTrendCmd() tea.Cmd {
	client, token := m.client, m.sessions.Token()
	return func() tea.Msg {
		points, err := client.MoodTrend(context.Background(), token)
		return TrendMsg{Points: points, Err: err}
	}
}

func (m Model) handleTrend(msg TrendMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		if api.IsUnauthorized(msg.Err) {
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
		return m, m.banner.Show("Couldn't load your mood trend", components.BannerError)
	}

	m.moodCtrl.Replace(msg.Points)
	if m.showChart {
		m.adapter.SetData(m.moodCtrl.PlotPoints())
	}
	if n := m.moodCtrl.Len(); n > 0 {
		positive := m.moodCtrl.CountBySentiment(model.SentimentPositive)
		return m, m.banner.Show(
			"Mood history loaded: "+util.IntToString(n)+" entries, "+
				util.IntToString(positive)+" positive", components.BannerInfo)
	}
	return m, nil
}
