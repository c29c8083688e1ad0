// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("Hello")

	if msg.Sender != SenderUser {
		t.Errorf("Sender = %q, want 'user'", msg.Sender)
	}
	if msg.Text != "Hello" {
		t.Errorf("Text = %q, want 'Hello'", msg.Text)
	}
	if msg.HasSentiment() {
		t.Error("user messages must never carry sentiment")
	}
	if msg.ID == "" {
		t.Error("ID should be generated")
	}
}

func TestNewBotMessage(t *testing.T) {
	msg := NewBotMessage("Hi there", SentimentPositive, 0.87)

	if msg.Sender != SenderBot {
		t.Errorf("Sender = %q, want 'bot'", msg.Sender)
	}
	if !msg.HasSentiment() {
		t.Fatal("bot message should carry sentiment")
	}
	if *msg.Sentiment != SentimentPositive {
		t.Errorf("Sentiment = %q, want POSITIVE", *msg.Sentiment)
	}
	if *msg.Confidence != 0.87 {
		t.Errorf("Confidence = %v, want 0.87", *msg.Confidence)
	}
}

func TestParseSentiment(t *testing.T) {
	tests := []struct {
		in     string
		want   Sentiment
		wantOK bool
	}{
		{"POSITIVE", SentimentPositive, true},
		{"positive", SentimentPositive, true}, // chat endpoint lowercases
		{"NEGATIVE", SentimentNegative, true},
		{" negative ", SentimentNegative, true},
		{"NEUTRAL", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		got, ok := ParseSentiment(tc.in)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ParseSentiment(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestMessagePreview(t *testing.T) {
	msg := NewUserMessage("a long line\nwith a newline in the middle of it")
	preview := msg.Preview(20)
	if len([]rune(preview)) > 20 {
		t.Errorf("preview too long: %q", preview)
	}
	for _, r := range preview {
		if r == '\n' {
			t.Error("preview should not contain newlines")
		}
	}
}

// =============================================================================
// CHAT LOG TESTS
// =============================================================================

func TestChatLog_AppendOrder(t *testing.T) {
	log := NewChatLog()
	log.AddUserMessage("first")
	log.AddBotMessage("second", SentimentPositive, 0.5)
	log.AddUserMessage("third")

	msgs := log.Messages()
	if len(msgs) != 3 {
		t.Fatalf("Len = %d, want 3", len(msgs))
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if msgs[i].Text != w {
			t.Errorf("messages[%d].Text = %q, want %q", i, msgs[i].Text, w)
		}
	}
}

func TestChatLog_MessagesIsSnapshot(t *testing.T) {
	log := NewChatLog()
	log.AddUserMessage("one")

	snap := log.Messages()
	log.AddUserMessage("two")

	if len(snap) != 1 {
		t.Errorf("snapshot grew with log: len = %d, want 1", len(snap))
	}
	if log.Len() != 2 {
		t.Errorf("Len = %d, want 2", log.Len())
	}
}

func TestChatLog_CountBySender(t *testing.T) {
	log := NewChatLog()
	log.AddUserMessage("a")
	log.AddUserMessage("b")
	log.AddBotMessage("c", SentimentNegative, 0.9)

	if got := log.CountBySender(SenderUser); got != 2 {
		t.Errorf("CountBySender(user) = %d, want 2", got)
	}
	if got := log.CountBySender(SenderBot); got != 1 {
		t.Errorf("CountBySender(bot) = %d, want 1", got)
	}
}

func TestChatLog_Last(t *testing.T) {
	log := NewChatLog()
	if log.Last() != nil {
		t.Error("Last on empty log should be nil")
	}
	log.AddUserMessage("only")
	if last := log.Last(); last == nil || last.Text != "only" {
		t.Errorf("Last = %v", last)
	}
}

// =============================================================================
// MOOD POINT TESTS
// =============================================================================

func TestSignedConfidence(t *testing.T) {
	tests := []struct {
		name       string
		sentiment  Sentiment
		confidence float64
		want       float64
	}{
		{"positive", SentimentPositive, 0.9, 0.9},
		{"negative", SentimentNegative, 0.6, -0.6},
		{"positive full", SentimentPositive, 1.0, 1.0},
		{"negative full", SentimentNegative, 1.0, -1.0},
		{"zero", SentimentPositive, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := MoodPoint{Sentiment: tc.sentiment, Confidence: tc.confidence}
			got := p.SignedConfidence()
			if got != tc.want {
				t.Errorf("SignedConfidence() = %v, want %v", got, tc.want)
			}
			if got < -1 || got > 1 {
				t.Errorf("SignedConfidence() = %v outside [-1,1]", got)
			}
		})
	}
}

func TestDerivePlotPoints(t *testing.T) {
	d1 := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	d2 := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)

	points := []MoodPoint{
		{Timestamp: d1, Sentiment: SentimentNegative, Confidence: 0.6},
		{Timestamp: d2, Sentiment: SentimentPositive, Confidence: 0.9},
	}

	plot := DerivePlotPoints(points)
	if len(plot) != 2 {
		t.Fatalf("len = %d, want 2", len(plot))
	}
	if plot[0].Label != "2025-03-10" || plot[0].Value != -0.6 {
		t.Errorf("plot[0] = %+v, want (2025-03-10, -0.6)", plot[0])
	}
	if plot[1].Label != "2025-03-11" || plot[1].Value != 0.9 {
		t.Errorf("plot[1] = %+v, want (2025-03-11, 0.9)", plot[1])
	}
}

func TestDerivePlotPoints_Empty(t *testing.T) {
	plot := DerivePlotPoints(nil)
	if len(plot) != 0 {
		t.Errorf("len = %d, want 0", len(plot))
	}
}
