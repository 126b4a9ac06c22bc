// Package support implements the single-turn support chatbot: an append-only
// transcript per conversation, each user message forwarded on its own (no
// history) to the hosted assistant.
package support

import (
	"context"
	"errors"
	"sync"
	"time"

	"bloodlink/internal/genai"
	"bloodlink/internal/utils"

	"github.com/sirupsen/logrus"
)

const (
	greetingText = "Hello! I'm the BloodLink BD support assistant. How can I help you navigate our app or understand its features today?"
	fallbackText = "I'm sorry, I couldn't process that request. Could you try rephrasing?"
)

var (
	// ErrReplyPending is returned when a send arrives while a prior send is
	// still in flight; the transcript is left untouched.
	ErrReplyPending = errors.New("a reply is still pending")

	ErrEmptyMessage = errors.New("message must not be empty")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation holds one transcript for the lifetime of a chat panel. Nothing
// is persisted.
type Conversation struct {
	client *genai.Client
	logger *logrus.Logger

	mu       sync.Mutex
	pending  bool
	messages []Message
}

func NewConversation(client *genai.Client, logger *logrus.Logger) *Conversation {
	c := &Conversation{client: client, logger: logger}
	c.messages = append(c.messages, newMessage(RoleAssistant, greetingText))
	return c
}

// Send appends the user entry, forwards only that message to the assistant,
// and appends the reply. On any service failure the fixed fallback entry is
// appended instead; Send never surfaces the failure as an error. While a call
// is in flight further sends are rejected with ErrReplyPending, which keeps
// the transcript strictly interleaved in send order.
func (c *Conversation) Send(ctx context.Context, text string) (Message, error) {
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return Message{}, ErrReplyPending
	}
	c.pending = true
	c.messages = append(c.messages, newMessage(RoleUser, text))
	c.mu.Unlock()

	replyText, err := c.client.Generate(ctx, genai.BuildSupportPrompt(text))
	if err != nil {
		c.logger.WithError(err).Warn("support assistant call failed, using fallback reply")
		replyText = fallbackText
	}

	reply := newMessage(RoleAssistant, replyText)

	c.mu.Lock()
	c.messages = append(c.messages, reply)
	c.pending = false
	c.mu.Unlock()

	return reply, nil
}

// Transcript returns a copy of the conversation so far, in append order.
func (c *Conversation) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Pending reports whether a send is currently awaiting its reply.
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func newMessage(role Role, text string) Message {
	return Message{
		ID:        utils.NanoIDSize(21),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}
