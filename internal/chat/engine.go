package chat

import (
	"errors"
	"fmt"
	"time"

	"figment/internal/catalog"
	"figment/internal/logging"
)

var (
	// ErrCharacterNotFound is returned by Open for an unknown character id.
	ErrCharacterNotFound = errors.New("character not found")
	// ErrEmptyMessage is returned when the submitted text trims to nothing.
	ErrEmptyMessage = errors.New("message text is empty")
	// ErrReplyPending is returned when a message is submitted while a
	// simulated reply is still in flight.
	ErrReplyPending = errors.New("a reply is already pending")
	// ErrConversationClosed is returned by operations on a closed conversation.
	ErrConversationClosed = errors.New("conversation is closed")
)

// Engine creates conversations against the character directory. Each
// conversation simulates the character side with a delayed canned reply.
type Engine struct {
	directory *catalog.Directory
	selector  *Selector
	clock     Clock
	delayMin  time.Duration
	delayMax  time.Duration
	logger    *logging.Logger
}

// Options tunes engine behavior. Zero values fall back to defaults.
type Options struct {
	Selector      *Selector
	Clock         Clock
	ReplyDelayMin time.Duration
	ReplyDelayMax time.Duration
	Logger        *logging.Logger
}

// NewEngine creates an engine over the given directory.
func NewEngine(directory *catalog.Directory, opts Options) *Engine {
	if opts.Selector == nil {
		opts.Selector = NewSelector(nil)
	}
	if opts.Clock == nil {
		opts.Clock = NewClock()
	}
	if opts.ReplyDelayMin <= 0 {
		opts.ReplyDelayMin = 1500 * time.Millisecond
	}
	if opts.ReplyDelayMax < opts.ReplyDelayMin {
		opts.ReplyDelayMax = opts.ReplyDelayMin + time.Second
	}
	return &Engine{
		directory: directory,
		selector:  opts.Selector,
		clock:     opts.Clock,
		delayMin:  opts.ReplyDelayMin,
		delayMax:  opts.ReplyDelayMax,
		logger:    opts.Logger,
	}
}

// Open starts a conversation with the given character, seeding the log with
// the character's greeting.
func (e *Engine) Open(characterID int) (*Conversation, error) {
	character, err := e.directory.ByID(characterID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrCharacterNotFound, characterID)
	}

	c := &Conversation{
		engine:      e,
		character:   character,
		subscribers: make(map[int]func(Event)),
	}
	c.append(SenderCharacter, character.Greeting)

	if e.logger != nil {
		e.logger.Debug("opened conversation with character %q (id=%d)", character.Name, character.ID)
	}
	return c, nil
}

// replyDelay draws the simulated thinking latency for one reply.
func (e *Engine) replyDelay() time.Duration {
	ms := e.selector.delayBetween(e.delayMin.Milliseconds(), e.delayMax.Milliseconds())
	return time.Duration(ms) * time.Millisecond
}
