// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CHAT LOG TYPE
// =============================================================================

// ChatLog holds the ordered conversation history. Insertion order is
// rendering order and is semantically meaningful: it IS the conversation.
//
// The log is append-only. Messages are never mutated or removed after
// insertion; Reset replaces the whole log and is only used when a new
// session begins.
type ChatLog struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	messages []*ChatMessage
}

// NewChatLog creates an empty chat log with a generated ID.
func NewChatLog() *ChatLog {
	now := time.Now()
	return &ChatLog{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		messages:  make([]*ChatMessage, 0),
	}
}

// =============================================================================
// APPEND OPERATIONS
// =============================================================================

// Append adds a message to the end of the log.
func (l *ChatLog) Append(msg *ChatMessage) {
	l.messages = append(l.messages, msg)
	l.UpdatedAt = time.Now()
}

// AddUserMessage creates and appends a user message, returning it.
func (l *ChatLog) AddUserMessage(text string) *ChatMessage {
	msg := NewUserMessage(text)
	l.Append(msg)
	return msg
}

// AddBotMessage creates and appends an annotated bot message, returning it.
func (l *ChatLog) AddBotMessage(text string, sentiment Sentiment, confidence float64) *ChatMessage {
	msg := NewBotMessage(text, sentiment, confidence)
	l.Append(msg)
	return msg
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// Messages returns a snapshot of the log in insertion order. The returned
// slice is a copy; appends after the call do not affect it.
func (l *ChatLog) Messages() []*ChatMessage {
	out := make([]*ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Last returns the most recent message, or nil if the log is empty.
func (l *ChatLog) Last() *ChatMessage {
	if len(l.messages) == 0 {
		return nil
	}
	return l.messages[len(l.messages)-1]
}

// Len returns the number of messages in the log.
func (l *ChatLog) Len() int {
	return len(l.messages)
}

// IsEmpty reports whether the log has no messages.
func (l *ChatLog) IsEmpty() bool {
	return len(l.messages) == 0
}

// CountBySender returns how many messages the given sender has in the log.
func (l *ChatLog) CountBySender(sender Sender) int {
	n := 0
	for _, msg := range l.messages {
		if msg.Sender == sender {
			n++
		}
	}
	return n
}

// Reset clears the log for a fresh session. Existing snapshots from
// Messages() remain valid.
func (l *ChatLog) Reset() {
	l.messages = make([]*ChatMessage, 0)
	l.UpdatedAt = time.Now()
}
