// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chatview implements the main conversation screen for the haven TUI.

The view is a Bubble Tea component built around a scrollable viewport of
messages, a single-line input, and an optional mood chart panel. Outgoing
messages appear in the transcript immediately; the bot reply is appended
when the backend responds, and a failed send leaves the user's message in
place with a status banner.

# Key Bindings

  - enter: send the current input
  - ctrl+g: cycle the chat language
  - ctrl+t: toggle the mood chart panel
  - pgup/pgdn, up/down: scroll the transcript
*/
package chatview
