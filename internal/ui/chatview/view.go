// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatview

import (
	"strings"

	"github.com/jeranaias/haven-tui/internal/model"
	"github.com/jeranaias/haven-tui/internal/ui/chart"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
	"github.com/jeranaias/haven-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// chromeHeight is everything that is not the message viewport: the
// header, composer, banner row, help bar, and the chart panel when
// open.
func (m *Model) chromeHeight() int {
	h := 5
	if m.showChart {
		h += m.adapter.Height() + 5
	}
	return h
}

// View renders the conversation screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.showChart {
		panel := m.adapter.Render(m.width - 4)
		if !m.adapter.Live() {
			panel = styles.Muted.Render("No mood data yet. Send a few messages first.")
		}
		b.WriteString(styles.ChartFrame.Render(
			panel + "\n" + chart.Summary(m.moodCtrl.Points())))
		b.WriteString("\n")
	}

	status := m.statusView()
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(styles.FocusedBorder.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(styles.HelpBar.Render("enter send · ctrl+g language · ctrl+t mood chart · ctrl+d sign out · ctrl+q quit"))

	return b.String()
}

func (m Model) headerView() string {
	title := styles.Title.Render("haven")
	header := title + "  " + m.langSel.View()
	if latest, ok := m.moodCtrl.Latest(); ok {
		header += "  " + sentimentBadge(latest.Sentiment, latest.Confidence)
	}
	return header
}

func (m Model) statusView() string {
	if m.spinner.Active() {
		return m.spinner.View()
	}
	if m.banner.Visible() {
		return m.banner.View()
	}
	return ""
}

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

// refreshMessages rebuilds the viewport content from the log.
func (m *Model) refreshMessages() {
	if !m.ready {
		return
	}

	messages := m.chatCtrl.Messages()
	if len(messages) == 0 {
		m.viewport.SetContent(styles.Muted.Render("No messages yet. Say hello."))
		return
	}

	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

func (m *Model) renderMessage(msg *model.ChatMessage) string {
	var b strings.Builder

	name := styles.UserName.Render(msg.Sender.DisplayName())
	bubble := styles.UserBubble
	if msg.Sender == model.SenderBot {
		name = styles.BotName.Render(msg.Sender.DisplayName())
		bubble = styles.BotBubble
	}

	b.WriteString(name)
	if m.showTimestamps {
		b.WriteString("  " + styles.Muted.Render(msg.Timestamp.Format("15:04")))
	}
	if msg.HasSentiment() {
		b.WriteString("  " + sentimentBadge(*msg.Sentiment, *msg.Confidence))
	}
	b.WriteString("\n")

	body := msg.Text
	if msg.Sender == model.SenderBot && m.markdown != nil {
		if rendered, err := m.markdown.Render(msg.Text); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}

	width := m.width - 6
	if width < 20 {
		width = 20
	}
	b.WriteString(bubble.MaxWidth(width).Render(body))
	return b.String()
}

// sentimentBadge renders the sentiment annotation on a bot reply,
// e.g. "POSITIVE 87%".
func sentimentBadge(s model.Sentiment, confidence float64) string {
	label := string(s) + " " + util.PercentString(confidence)
	if s == model.SentimentPositive {
		return styles.PositiveBadge.Render(label)
	}
	return styles.NegativeBadge.Render(label)
}
