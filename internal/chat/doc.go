// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat runs the message pipeline.
//
// A send appends the user message to the log immediately, before the
// backend replies. Each in-flight send carries a sequence number;
// replies resolve against that number and append in arrival order,
// which may differ from send order when requests overlap. A failed
// send leaves the optimistic user message in place and reports the
// failure instead of rolling the log back.
package chat
