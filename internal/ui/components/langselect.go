// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/ui/styles"
)

// =============================================================================
// LANGUAGE SELECTOR
// =============================================================================

// langNames maps language codes to display names.
var langNames = map[string]string{
	api.LangEnglish: "English",
	api.LangSpanish: "Español",
	api.LangFrench:  "Français",
}

// LangName returns the display name for a language code.
func LangName(code string) string {
	if name, ok := langNames[code]; ok {
		return name
	}
	return code
}

// LangSelector renders the reply-language picker as an inline list
// with the active language highlighted.
type LangSelector struct {
	active string
}

// NewLangSelector creates a selector with the given active language.
func NewLangSelector(active string) LangSelector {
	if !api.IsSupportedLanguage(active) {
		active = api.LangEnglish
	}
	return LangSelector{active: active}
}

// Active returns the selected language code.
func (l *LangSelector) Active() string {
	return l.active
}

// Select sets the active language. Unsupported codes are ignored.
func (l *LangSelector) Select(code string) {
	if api.IsSupportedLanguage(code) {
		l.active = code
	}
}

// View renders the selector on one line.
func (l *LangSelector) View() string {
	parts := make([]string, 0, len(api.SupportedLanguages))
	for _, code := range api.SupportedLanguages {
		name := LangName(code)
		if code == l.active {
			parts = append(parts, styles.Title.Render("["+name+"]"))
		} else {
			parts = append(parts, styles.Muted.Render(" "+name+" "))
		}
	}
	return strings.Join(parts, " ")
}
