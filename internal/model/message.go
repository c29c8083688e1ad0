// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/haven-tui/internal/util"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Haven"
	default:
		return string(s)
	}
}

// =============================================================================
// SENTIMENT TYPE
// =============================================================================

// Sentiment is the polarity label the service attaches to bot replies and
// mood log entries.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
)

// ParseSentiment normalizes a service-provided label to its canonical form.
// The chat endpoint lowercases labels while the trend endpoint does not, so
// parsing is case-insensitive. Unknown labels return ok=false.
func ParseSentiment(s string) (Sentiment, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(SentimentPositive):
		return SentimentPositive, true
	case string(SentimentNegative):
		return SentimentNegative, true
	default:
		return "", false
	}
}

// String returns the canonical label.
func (s Sentiment) String() string {
	return string(s)
}

// =============================================================================
// CHAT MESSAGE TYPE
// =============================================================================

// ChatMessage is a single entry in the conversation log.
//
// Sentiment and Confidence are nil for user messages; both are set together
// on bot messages when the service supplied them.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	Sentiment  *Sentiment `json:"sentiment,omitempty"`
	Confidence *float64   `json:"confidence,omitempty"`
}

// NewUserMessage creates a user message. User messages never carry
// sentiment or confidence.
func NewUserMessage(text string) *ChatMessage {
	return &ChatMessage{
		ID:        generateMessageID(),
		Sender:    SenderUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewBotMessage creates a bot message with a sentiment annotation.
func NewBotMessage(text string, sentiment Sentiment, confidence float64) *ChatMessage {
	return &ChatMessage{
		ID:         generateMessageID(),
		Sender:     SenderBot,
		Text:       text,
		Timestamp:  time.Now(),
		Sentiment:  &sentiment,
		Confidence: &confidence,
	}
}

// NewBotMessagePlain creates a bot message without a sentiment annotation.
// Used when the service response omitted the label.
func NewBotMessagePlain(text string) *ChatMessage {
	return &ChatMessage{
		ID:        generateMessageID(),
		Sender:    SenderBot,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// HasSentiment reports whether the message carries a sentiment annotation.
func (m *ChatMessage) HasSentiment() bool {
	return m.Sentiment != nil && m.Confidence != nil
}

// Preview returns a truncated single-line preview of the message text.
func (m *ChatMessage) Preview(maxLen int) string {
	return util.TruncateRunes(strings.ReplaceAll(m.Text, "\n", " "), maxLen)
}

// generateMessageID creates a unique message ID.
func generateMessageID() string {
	return "msg_" + uuid.NewString()
}
