package chat

import (
	"strings"
	"sync"

	"figment/internal/catalog"
)

// EventType classifies conversation notifications.
type EventType string

const (
	// EventMessage fires once per appended message, in append order.
	EventMessage EventType = "message"
	// EventTypingStarted fires when a simulated reply goes in flight.
	EventTypingStarted EventType = "typing_started"
	// EventTypingStopped fires when the pending reply resolves or the
	// conversation closes with a reply still pending.
	EventTypingStopped EventType = "typing_stopped"
)

// Event is a conversation notification. Message is set for EventMessage only.
type Event struct {
	Type    EventType `json:"type"`
	Message *Message  `json:"message,omitempty"`
}

// Conversation is one character-scoped, append-only message log. Messages
// are never mutated or removed after creation.
type Conversation struct {
	engine    *Engine
	character *catalog.Character

	mu          sync.Mutex
	messages    []Message
	seq         int64
	pending     Timer
	closed      bool
	subscribers map[int]func(Event)
	nextSubID   int
}

// Character returns the character this conversation is with.
func (c *Conversation) Character() *catalog.Character {
	return c.character
}

// Messages returns a snapshot of the log in append order.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// IsTyping reports whether a simulated reply is in flight. This is the sole
// signal the UI uses to render a typing affordance.
func (c *Conversation) IsTyping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Closed reports whether Close has been called.
func (c *Conversation) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Subscribe registers a listener for conversation events and returns an
// unsubscribe function. Listeners are invoked synchronously after each
// state change, in event order.
func (c *Conversation) Subscribe(fn func(Event)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// Submit appends a user message and schedules a simulated character reply
// after a randomized delay. The user append is synchronous; the reply lands
// later via the engine clock. Empty text and submissions while a reply is
// pending are rejected with no state change.
func (c *Conversation) Submit(text string) (Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Message{}, ErrConversationClosed
	}
	if c.pending != nil {
		c.mu.Unlock()
		return Message{}, ErrReplyPending
	}

	msg := c.appendLocked(SenderUser, trimmed)
	delay := c.engine.replyDelay()
	c.pending = c.engine.clock.AfterFunc(delay, c.resolvePendingReply)
	c.mu.Unlock()

	c.notify(Event{Type: EventMessage, Message: &msg})
	c.notify(Event{Type: EventTypingStarted})
	return msg, nil
}

// resolvePendingReply fires when the reply delay elapses. A conversation
// closed before the timer fired must not be appended to, so the closed and
// pending flags are re-checked under the lock.
func (c *Conversation) resolvePendingReply() {
	c.mu.Lock()
	if c.closed || c.pending == nil {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	reply := c.engine.selector.Pick(c.character.Responses)
	msg := c.appendLocked(SenderCharacter, reply)
	c.mu.Unlock()

	c.notify(Event{Type: EventTypingStopped})
	c.notify(Event{Type: EventMessage, Message: &msg})
}

// Close cancels any pending reply and releases the conversation. Idempotent.
func (c *Conversation) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	wasTyping := c.pending != nil
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.mu.Unlock()

	if wasTyping {
		c.notify(Event{Type: EventTypingStopped})
	}
}

// appendLocked creates and stores the next message. Caller holds c.mu.
func (c *Conversation) appendLocked(sender Sender, text string) Message {
	c.seq++
	msg := Message{
		ID:        c.seq,
		Text:      text,
		Sender:    sender,
		CreatedAt: c.engine.clock.Now(),
	}
	c.messages = append(c.messages, msg)
	return msg
}

// notify delivers an event to every subscriber. Listeners are copied under
// the lock and invoked outside it so they may call back into the
// conversation.
func (c *Conversation) notify(ev Event) {
	c.mu.Lock()
	listeners := make([]func(Event), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// append seeds a message during Open, before the conversation is shared.
func (c *Conversation) append(sender Sender, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appendLocked(sender, text)
}
