// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/haven-tui/internal/ui/styles"
	"github.com/jeranaias/haven-tui/internal/util"
)

// =============================================================================
// STATUS BANNER
// =============================================================================

// BannerLevel selects the banner's tone.
type BannerLevel int

const (
	BannerInfo BannerLevel = iota
	BannerSuccess
	BannerError
	BannerPending
)

// BannerExpiredMsg fires when a banner's display time is up.
type BannerExpiredMsg struct {
	ID int
}

// Banner shows transient status text: login failures, send failures,
// fetch failures, registration results. Errors stay until replaced;
// other levels fade after a few seconds.
type Banner struct {
	text    string
	level   BannerLevel
	visible bool
	id      int
	width   int
}

// NewBanner creates an empty, hidden banner.
func NewBanner() Banner {
	return Banner{}
}

// bannerTTL is how long non-error banners stay up.
const bannerTTL = 4 * time.Second

// Show displays text at the given level. Non-error banners schedule
// their own expiry; the returned command must be dispatched.
func (b *Banner) Show(text string, level BannerLevel) tea.Cmd {
	b.text = text
	b.level = level
	b.visible = true
	b.id++

	if level == BannerError || level == BannerPending {
		return nil
	}
	id := b.id
	return tea.Tick(bannerTTL, func(time.Time) tea.Msg {
		return BannerExpiredMsg{ID: id}
	})
}

// Update hides the banner when its expiry fires. Stale expirations
// from an already-replaced banner are ignored.
func (b *Banner) Update(msg tea.Msg) {
	if expired, ok := msg.(BannerExpiredMsg); ok && expired.ID == b.id {
		b.visible = false
	}
}

// Hide clears the banner immediately.
func (b *Banner) Hide() {
	b.visible = false
}

// Visible reports whether the banner is showing.
func (b *Banner) Visible() bool {
	return b.visible
}

// Text returns the current banner text.
func (b *Banner) Text() string {
	return b.text
}

// SetWidth caps the rendered text to one status row of the given
// display width. Zero means unbounded.
func (b *Banner) SetWidth(width int) {
	b.width = width
}

// View renders the banner, or nothing when hidden.
func (b *Banner) View() string {
	if !b.visible {
		return ""
	}
	text := b.text
	if b.width > 0 {
		text = util.TruncateWidth(text, b.width)
	}
	switch b.level {
	case BannerError:
		return styles.ErrorBanner.Render(text)
	case BannerSuccess:
		return styles.SuccessBanner.Render(text)
	case BannerPending:
		return styles.PendingBanner.Render(text)
	default:
		return styles.InfoBanner.Render(text)
	}
}
