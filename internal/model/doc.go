// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the haven client: chat
// messages and the append-only chat log, sentiment labels, and the mood
// trend series with its plot-point derivation.
//
// Ownership rules:
//   - ChatLog is the single owner of the ordered message sequence. Messages
//     are append-only; nothing mutates or removes a message once appended.
//   - Only bot messages carry a sentiment label and confidence score. The
//     constructors enforce this; user messages never have either.
//   - MoodPoint values come verbatim from the trend endpoint. The only
//     client-side derivation is the signed confidence used for plotting.
package model
