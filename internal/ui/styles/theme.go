// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// TEXT STYLES
// =============================================================================

var (
	// Title is the screen heading style.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	// Subtitle sits under the title.
	Subtitle = lipgloss.NewStyle().
			Foreground(TextSecondary)

	// Label marks form fields.
	Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Muted is for hints and timestamps.
	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	// HelpBar renders the keybinding hints at the bottom of a screen.
	HelpBar = lipgloss.NewStyle().
		Foreground(TextMuted)
)

// =============================================================================
// BANNERS
// =============================================================================

var (
	// ErrorBanner announces a failed operation.
	ErrorBanner = lipgloss.NewStyle().
			Foreground(TextInverse).
			Background(Rose).
			Padding(0, 1).
			Bold(true)

	// SuccessBanner announces a completed operation.
	SuccessBanner = lipgloss.NewStyle().
			Foreground(TextInverse).
			Background(Emerald).
			Padding(0, 1)

	// InfoBanner announces neutral status.
	InfoBanner = lipgloss.NewStyle().
			Foreground(TextInverse).
			Background(TealDeep).
			Padding(0, 1)

	// PendingBanner marks an operation in flight.
	PendingBanner = lipgloss.NewStyle().
			Foreground(TextInverse).
			Background(Amber).
			Padding(0, 1)
)

// =============================================================================
// MESSAGE BUBBLES
// =============================================================================

var (
	// UserBubble frames a message from the user.
	UserBubble = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(UserBubbleBorder).
			Foreground(UserBubbleFg).
			Padding(0, 1)

	// BotBubble frames a reply from haven.
	BotBubble = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BotBubbleBorder).
			Foreground(BotBubbleFg).
			Padding(0, 1)

	// UserName labels the user's messages.
	UserName = lipgloss.NewStyle().
			Bold(true).
			Foreground(UserBubbleBorder)

	// BotName labels haven's messages.
	BotName = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)
)

// =============================================================================
// SENTIMENT BADGES
// =============================================================================

var (
	// PositiveBadge tags a reply annotated POSITIVE.
	PositiveBadge = lipgloss.NewStyle().
			Foreground(Emerald).
			Bold(true)

	// NegativeBadge tags a reply annotated NEGATIVE.
	NegativeBadge = lipgloss.NewStyle().
			Foreground(Rose).
			Bold(true)
)

// =============================================================================
// CHART STYLES
// =============================================================================

var (
	// ChartTitle heads the trend chart.
	ChartTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Teal)

	// ChartAxis draws axis lines and tick labels.
	ChartAxis = lipgloss.NewStyle().
			Foreground(TextMuted)

	// ChartPositive marks points above the baseline.
	ChartPositive = lipgloss.NewStyle().
			Foreground(Emerald)

	// ChartNegative marks points below the baseline.
	ChartNegative = lipgloss.NewStyle().
			Foreground(Rose)

	// ChartFrame borders the chart panel.
	ChartFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Overlay).
			Padding(0, 1)
)

// =============================================================================
// INPUT STYLES
// =============================================================================

var (
	// FocusedBorder wraps the active input.
	FocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Teal).
			Padding(0, 1)

	// BlurredBorder wraps inactive inputs.
	BlurredBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Overlay).
			Padding(0, 1)
)
