// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"testing"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/model"
)

// memArchive is an in-memory Archiver.
type memArchive struct {
	saved []*model.ChatMessage
}

func (m *memArchive) SaveMessage(msg *model.ChatMessage) error {
	for i, existing := range m.saved {
		if existing.ID == msg.ID {
			m.saved[i] = msg
			return nil
		}
	}
	m.saved = append(m.saved, msg)
	return nil
}

func (m *memArchive) Messages(limit int) ([]*model.ChatMessage, error) {
	if limit > 0 && len(m.saved) > limit {
		return m.saved[len(m.saved)-limit:], nil
	}
	return m.saved, nil
}

func positiveReply(text string, confidence float64) *api.ChatReply {
	return &api.ChatReply{
		Response:     text,
		Sentiment:    "positive",
		Confidence:   confidence,
		HasSentiment: true,
	}
}

// =============================================================================
// SEND TESTS
// =============================================================================

func TestSend_OptimisticAppend(t *testing.T) {
	ctrl := NewController(nil)

	pending, err := ctrl.Send("Hello")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	// The user message is visible before any reply
	messages := ctrl.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message after send, got %d", len(messages))
	}
	if messages[0].Sender != model.SenderUser {
		t.Errorf("expected user message, got %v", messages[0].Sender)
	}
	if messages[0].Text != "Hello" {
		t.Errorf("expected text Hello, got %q", messages[0].Text)
	}
	if pending.Message != messages[0] {
		t.Error("pending should reference the appended message")
	}
	if ctrl.InFlight() != 1 {
		t.Errorf("expected 1 in-flight send, got %d", ctrl.InFlight())
	}
}

func TestSend_BlankIsNoOp(t *testing.T) {
	ctrl := NewController(nil)

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := ctrl.Send(input)
		if !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Send(%q): expected ErrEmptyMessage, got %v", input, err)
		}
	}
	if ctrl.Len() != 0 {
		t.Errorf("expected empty log, got %d messages", ctrl.Len())
	}
	if ctrl.InFlight() != 0 {
		t.Errorf("expected no in-flight sends, got %d", ctrl.InFlight())
	}
}

func TestSend_TrimsInput(t *testing.T) {
	ctrl := NewController(nil)

	pending, err := ctrl.Send("  Hello  ")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if pending.Message.Text != "Hello" {
		t.Errorf("expected trimmed text, got %q", pending.Message.Text)
	}
}

// =============================================================================
// RESOLVE TESTS
// =============================================================================

func TestResolve_AppendsBotReply(t *testing.T) {
	ctrl := NewController(nil)

	pending, err := ctrl.Send("Hello")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	bot, err := ctrl.Resolve(pending.Seq, positiveReply("Hi there", 0.87))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	messages := ctrl.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[1] != bot {
		t.Error("expected bot reply appended last")
	}
	if !bot.HasSentiment() {
		t.Fatal("expected sentiment on bot reply")
	}
	if *bot.Sentiment != model.SentimentPositive || *bot.Confidence != 0.87 {
		t.Errorf("unexpected annotation: %v %v", *bot.Sentiment, *bot.Confidence)
	}
	if ctrl.InFlight() != 0 {
		t.Errorf("expected no in-flight sends after resolve, got %d", ctrl.InFlight())
	}
}

func TestResolve_PlainReply(t *testing.T) {
	ctrl := NewController(nil)

	pending, _ := ctrl.Send("Hello")
	bot, err := ctrl.Resolve(pending.Seq, &api.ChatReply{Response: "I hear you"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if bot.HasSentiment() {
		t.Error("expected no sentiment on plain reply")
	}
}

func TestResolve_UnknownSeq(t *testing.T) {
	ctrl := NewController(nil)

	if _, err := ctrl.Resolve(42, positiveReply("hi", 0.5)); !errors.Is(err, ErrUnknownSend) {
		t.Errorf("expected ErrUnknownSend, got %v", err)
	}
}

func TestResolve_OutOfOrderArrival(t *testing.T) {
	ctrl := NewController(nil)

	first, _ := ctrl.Send("first")
	second, _ := ctrl.Send("second")

	// The second send's reply lands before the first's
	if _, err := ctrl.Resolve(second.Seq, positiveReply("reply two", 0.8)); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, err := ctrl.Resolve(first.Seq, positiveReply("reply one", 0.7)); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// Replies append in arrival order, not send order
	messages := ctrl.Messages()
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[2].Text != "reply two" || messages[3].Text != "reply one" {
		t.Errorf("expected arrival order, got %q then %q", messages[2].Text, messages[3].Text)
	}
}

// =============================================================================
// FAIL TESTS
// =============================================================================

func TestFail_KeepsOptimisticMessage(t *testing.T) {
	ctrl := NewController(nil)

	pending, _ := ctrl.Send("Hello")
	failed, err := ctrl.Fail(pending.Seq)
	if err != nil {
		t.Fatalf("Fail failed: %v", err)
	}
	if failed != pending.Message {
		t.Error("expected the pending user message back")
	}

	// The user message is not rolled back
	if ctrl.Len() != 1 {
		t.Errorf("expected user message retained, log has %d", ctrl.Len())
	}
	if ctrl.InFlight() != 0 {
		t.Errorf("expected no in-flight sends, got %d", ctrl.InFlight())
	}

	// A retired sequence cannot resolve later
	if _, err := ctrl.Resolve(pending.Seq, positiveReply("late", 0.5)); !errors.Is(err, ErrUnknownSend) {
		t.Errorf("expected ErrUnknownSend for retired seq, got %v", err)
	}
}

// =============================================================================
// PROPERTY: MESSAGE COUNT
// =============================================================================

// Message count only grows: sends and resolves append, failures keep
// what was already there.
func TestMessageCountNeverShrinks(t *testing.T) {
	ctrl := NewController(nil)

	prev := 0
	check := func(step string) {
		if n := ctrl.Len(); n < prev {
			t.Fatalf("%s: log shrank from %d to %d", step, prev, n)
		} else {
			prev = n
		}
	}

	p1, _ := ctrl.Send("one")
	check("send one")
	p2, _ := ctrl.Send("two")
	check("send two")
	_, _ = ctrl.Fail(p1.Seq)
	check("fail one")
	_, _ = ctrl.Resolve(p2.Seq, positiveReply("reply", 0.9))
	check("resolve two")
	_, _ = ctrl.Send("   ")
	check("blank send")
}

// =============================================================================
// HISTORY AND LANGUAGE TESTS
// =============================================================================

func TestLoadHistory(t *testing.T) {
	archive := &memArchive{}
	first := NewController(archive)
	pending, _ := first.Send("Hello")
	_, _ = first.Resolve(pending.Seq, positiveReply("Hi there", 0.87))

	restored := NewController(archive)
	if err := restored.LoadHistory(0); err != nil {
		t.Fatalf("LoadHistory failed: %v", err)
	}
	if restored.Len() != 2 {
		t.Fatalf("expected 2 restored messages, got %d", restored.Len())
	}
	messages := restored.Messages()
	if messages[0].Sender != model.SenderUser || messages[1].Sender != model.SenderBot {
		t.Error("expected user then bot in restored history")
	}
}

func TestLanguage_CycleAndSet(t *testing.T) {
	ctrl := NewController(nil)

	if ctrl.Language() != api.LangEnglish {
		t.Errorf("expected default language en, got %q", ctrl.Language())
	}

	ctrl.SetLanguage("klingon")
	if ctrl.Language() != api.LangEnglish {
		t.Errorf("unsupported language should be ignored, got %q", ctrl.Language())
	}

	seen := map[string]bool{ctrl.Language(): true}
	for i := 0; i < len(api.SupportedLanguages)-1; i++ {
		seen[ctrl.CycleLanguage()] = true
	}
	if len(seen) != len(api.SupportedLanguages) {
		t.Errorf("cycling should visit every language, saw %v", seen)
	}
	if ctrl.CycleLanguage() != api.LangEnglish {
		t.Error("expected cycle to wrap back to en")
	}
}
