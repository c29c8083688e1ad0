// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"sync"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyMessage means the input was blank after trimming. The
	// send is a no-op: nothing is appended, nothing goes on the wire.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrUnknownSend means a reply arrived for a sequence number with
	// no pending send.
	ErrUnknownSend = errors.New("no pending send for sequence")
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Archiver persists messages across restarts. *storage.Store
// satisfies it.
type Archiver interface {
	SaveMessage(msg *model.ChatMessage) error
	Messages(limit int) ([]*model.ChatMessage, error)
}

// Pending identifies an in-flight send.
type Pending struct {
	Seq     uint64
	Message *model.ChatMessage
}

// Controller owns the conversation log and the set of in-flight
// sends. The UI calls Send before dispatching the request, then
// Resolve or Fail when the request completes.
type Controller struct {
	mu       sync.Mutex
	log      *model.ChatLog
	archive  Archiver
	language string
	nextSeq  uint64
	pending  map[uint64]*model.ChatMessage
}

// NewController creates a controller. The archive may be nil, in
// which case messages live only for the session.
func NewController(archive Archiver) *Controller {
	return &Controller{
		log:      model.NewChatLog(),
		archive:  archive,
		language: api.LangEnglish,
		pending:  make(map[uint64]*model.ChatMessage),
	}
}

// LoadHistory restores archived messages into the log. A limit of 0
// loads everything.
func (c *Controller) LoadHistory(limit int) error {
	if c.archive == nil {
		return nil
	}
	messages, err := c.archive.Messages(limit)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, msg := range messages {
		c.log.Append(msg)
	}
	return nil
}

// Send appends the user message optimistically and registers a
// pending send. A blank message (after trimming) is refused before
// anything is appended.
func (c *Controller) Send(text string) (*Pending, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	msg := model.NewUserMessage(trimmed)
	c.log.Append(msg)
	c.persist(msg)

	c.nextSeq++
	seq := c.nextSeq
	c.pending[seq] = msg

	return &Pending{Seq: seq, Message: msg}, nil
}

// Resolve appends the bot reply for a pending send. Replies append in
// the order they arrive, not the order their sends left.
func (c *Controller) Resolve(seq uint64, reply *api.ChatReply) (*model.ChatMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.pending[seq]; !ok {
		return nil, ErrUnknownSend
	}
	delete(c.pending, seq)

	var msg *model.ChatMessage
	if sentiment, ok := model.ParseSentiment(reply.Sentiment); ok && reply.HasSentiment {
		msg = model.NewBotMessage(reply.Response, sentiment, reply.Confidence)
	} else {
		msg = model.NewBotMessagePlain(reply.Response)
	}

	c.log.Append(msg)
	c.persist(msg)
	return msg, nil
}

// Fail retires a pending send whose request errored. The optimistic
// user message stays in the log; the caller surfaces the error. The
// returned message is the one whose send failed.
func (c *Controller) Fail(seq uint64) (*model.ChatMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg, ok := c.pending[seq]
	if !ok {
		return nil, ErrUnknownSend
	}
	delete(c.pending, seq)
	return msg, nil
}

// InFlight returns the number of pending sends.
func (c *Controller) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Messages returns a snapshot of the conversation.
func (c *Controller) Messages() []*model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Messages()
}

// Len returns the number of messages in the log.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Len()
}

// Language returns the reply language sent with each message.
func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// SetLanguage selects the reply language. Unsupported codes are
// ignored and the current language kept.
func (c *Controller) SetLanguage(lang string) {
	if !api.IsSupportedLanguage(lang) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = lang
}

// CycleLanguage advances to the next supported language and returns
// the new selection.
func (c *Controller) CycleLanguage() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	langs := api.SupportedLanguages
	for i, lang := range langs {
		if lang == c.language {
			c.language = langs[(i+1)%len(langs)]
			return c.language
		}
	}
	c.language = langs[0]
	return c.language
}

// persist archives a message. Archive failures are swallowed, the
// conversation on screen is the source of truth for the session.
func (c *Controller) persist(msg *model.ChatMessage) {
	if c.archive == nil {
		return
	}
	_ = c.archive.SaveMessage(msg)
}
