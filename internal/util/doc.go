// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the haven client.
//
// It contains:
//   - AtomicWriteFile: crash-safe file writes (write temp, fsync, rename)
//   - Rune- and width-aware string truncation for terminal display
//   - Numeric formatting helpers used by the UI
package util
