package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"figment/internal/store"
)

// Common errors
var (
	// ErrInvalidCredentials is returned when the provider rejects a
	// sign-in or sign-up attempt
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoSession is returned by Current when nobody is signed in
	ErrNoSession = errors.New("no active provider session")
)

// Provider defines the external authentication boundary. Implementations are
// treated as opaque, potentially-failing remote services: every method other
// than OnChange may fail, and callers are expected to turn failures into
// structured results rather than propagate them.
type Provider interface {
	// SignIn authenticates credentials and returns the resulting identity
	SignIn(ctx context.Context, email, password string) (Identity, error)

	// SignUp registers credentials and returns the resulting identity
	SignUp(ctx context.Context, email, password string) (Identity, error)

	// SignOut ends the provider-side session
	SignOut(ctx context.Context) error

	// Current returns the identity of the provider's active session, or
	// ErrNoSession
	Current(ctx context.Context) (Identity, error)

	// OnChange registers a listener invoked whenever the provider's own
	// notion of the session changes. The returned function unregisters
	// the listener.
	OnChange(listener func(Identity)) (unsubscribe func())

	// Name returns the provider name (e.g., "mock", "local", "sso")
	Name() string
}

// Config holds provider configuration
type Config struct {
	Type            string // "mock", "local", "sso"
	TokenExpiryDays int
}

// NewProvider returns the configured auth provider
func NewProvider(cfg Config, st store.DataStore) (Provider, error) {
	switch cfg.Type {
	case "mock", "":
		return NewMockProvider(), nil
	case "local":
		return NewLocalProvider(st, cfg.TokenExpiryDays), nil
	case "sso":
		return &SSOProvider{}, nil
	default:
		return nil, fmt.Errorf("unsupported auth provider: %s", cfg.Type)
	}
}

// notifier is the shared listener registry embedded by providers
type notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(Identity)
}

func (n *notifier) add(listener func(Identity)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.listeners == nil {
		n.listeners = make(map[int]func(Identity))
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = listener
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

func (n *notifier) notify(identity Identity) {
	n.mu.Lock()
	listeners := make([]func(Identity), 0, len(n.listeners))
	for _, l := range n.listeners {
		listeners = append(listeners, l)
	}
	n.mu.Unlock()

	for _, listener := range listeners {
		listener(identity)
	}
}
