// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles defines the shared color palette and lipgloss styles for
// the haven TUI. Colors are adaptive and degrade gracefully on terminals
// with limited color support.
package styles
