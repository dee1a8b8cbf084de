package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"figment/internal/auth"
	"figment/internal/logging"
	"figment/internal/store"
	"figment/internal/theme"
)

var (
	// ErrNoActiveUser is returned by profile mutations when nobody is
	// signed in.
	ErrNoActiveUser = errors.New("no active user")

	// ErrGuestSession is returned by SignIn/SignUp while a guest session
	// is active. The guest must log out first so the two identities can
	// never be set at once.
	ErrGuestSession = errors.New("guest session active, log out first")
)

// Profile is the free-form display profile persisted for the current user.
type Profile map[string]interface{}

// State is a point-in-time snapshot of the session handed to subscribers.
type State struct {
	Identity      auth.Identity `json:"identity"`
	Profile       Profile       `json:"profile,omitempty"`
	Theme         theme.Mode    `json:"theme"`
	IsLoading     bool          `json:"is_loading"`
	IsInitialized bool          `json:"is_initialized"`
}

// Manager is the single source of truth for who is using the app and how it
// should look. It owns the current identity, the persisted profile and theme
// preference, and the startup lifecycle flags.
type Manager struct {
	store    store.DataStore
	provider auth.Provider
	logger   *logging.Logger

	mu            sync.Mutex
	identity      auth.Identity
	profile       Profile
	theme         theme.Mode
	isLoading     bool
	isInitialized bool
	subscribers   map[int]func(State)
	nextSubID     int

	stopProvider func()
}

// Options tunes manager construction.
type Options struct {
	DefaultTheme theme.Mode
	Logger       *logging.Logger
}

// NewManager creates a session manager over the given store and provider.
// Call Initialize before use and Dispose on teardown.
func NewManager(st store.DataStore, provider auth.Provider, opts Options) *Manager {
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = theme.ModeDark
	}
	return &Manager{
		store:       st,
		provider:    provider,
		logger:      opts.Logger,
		identity:    auth.Nobody,
		profile:     Profile{},
		theme:       opts.DefaultTheme,
		subscribers: make(map[int]func(State)),
	}
}

// Initialize restores the persisted session. The provider lookup and the
// store reads run concurrently; failure of either is logged and leaves the
// corresponding state at its default. Initialization always completes:
// isInitialized is set unconditionally so the UI can never be stuck behind
// the loading gate.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	m.isLoading = true
	m.mu.Unlock()
	m.notify()

	var (
		wg          sync.WaitGroup
		identity    auth.Identity
		identityErr error
		storedTheme string
		themeErr    error
		storedProf  string
		profErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		identity, identityErr = m.provider.Current(ctx)
	}()
	go func() {
		defer wg.Done()
		storedTheme, themeErr = m.store.GetValue(ctx, store.KeyTheme)
		storedProf, profErr = m.store.GetValue(ctx, store.KeyProfile)
	}()
	wg.Wait()

	m.mu.Lock()
	if identityErr != nil {
		if !errors.Is(identityErr, auth.ErrNoSession) {
			m.logf("session restore failed: %v", identityErr)
		}
	} else if !m.isInitialized || m.identity.IsNone() {
		// A provider change notification that raced ahead of us wins.
		m.identity = identity
	}

	if themeErr == nil {
		if mode, ok := theme.ParseMode(storedTheme); ok {
			m.theme = mode
		}
	} else if !errors.Is(themeErr, store.ErrKeyNotFound) {
		m.logf("theme restore failed: %v", themeErr)
	}

	if profErr == nil {
		var p Profile
		if err := json.Unmarshal([]byte(storedProf), &p); err != nil {
			m.logf("stored profile is corrupt, discarding: %v", err)
		} else {
			m.profile = p
		}
	} else if !errors.Is(profErr, store.ErrKeyNotFound) {
		m.logf("profile restore failed: %v", profErr)
	}

	m.isLoading = false
	m.isInitialized = true

	if m.stopProvider == nil {
		m.stopProvider = m.provider.OnChange(m.onProviderChange)
	}
	m.mu.Unlock()
	m.notify()
}

// onProviderChange applies an external identity change (token refresh,
// remote sign-out). Provider notifications are authoritative over the
// startup read.
func (m *Manager) onProviderChange(identity auth.Identity) {
	m.mu.Lock()
	if m.identity.IsGuest() && identity.IsNone() {
		// A provider-side sign-out does not end a purely local guest
		// session.
		m.mu.Unlock()
		return
	}
	m.identity = identity
	m.mu.Unlock()
	m.notify()
}

// SignIn authenticates against the provider. Guest sessions must be ended
// explicitly first. Provider failures are returned as values; isLoading is
// always cleared.
func (m *Manager) SignIn(ctx context.Context, email, password string) (auth.Identity, error) {
	return m.authenticate(ctx, email, password, m.provider.SignIn)
}

// SignUp registers new credentials with the provider under the same rules
// as SignIn.
func (m *Manager) SignUp(ctx context.Context, email, password string) (auth.Identity, error) {
	return m.authenticate(ctx, email, password, m.provider.SignUp)
}

func (m *Manager) authenticate(ctx context.Context, email, password string, op func(context.Context, string, string) (auth.Identity, error)) (auth.Identity, error) {
	m.mu.Lock()
	if m.identity.IsGuest() {
		m.mu.Unlock()
		return auth.Nobody, ErrGuestSession
	}
	m.isLoading = true
	m.mu.Unlock()
	m.notify()

	identity, err := op(ctx, email, password)

	m.mu.Lock()
	m.isLoading = false
	if err == nil {
		m.identity = identity
	}
	m.mu.Unlock()
	m.notify()

	if err != nil {
		return auth.Nobody, fmt.Errorf("authentication failed: %w", err)
	}
	return identity, nil
}

// ContinueAsGuest starts a local guest session without touching the
// provider. Each invocation yields a distinct guest id.
func (m *Manager) ContinueAsGuest() auth.Identity {
	identity := auth.Identity{
		Kind:   auth.KindGuest,
		UserID: "guest-" + uuid.NewString(),
	}

	m.mu.Lock()
	m.identity = identity
	m.mu.Unlock()
	m.notify()
	return identity
}

// Logout ends the current session. Guest sessions are cleared locally with
// no provider call. Authenticated sessions delegate to the provider first,
// but local state is cleared even when the provider call fails: a stuck
// session is worse than a false logout.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	identity := m.identity
	m.mu.Unlock()

	var err error
	if identity.IsAuthenticated() {
		if err = m.provider.SignOut(ctx); err != nil {
			m.logf("provider sign-out failed: %v", err)
		}
	}

	m.mu.Lock()
	m.identity = auth.Nobody
	m.mu.Unlock()
	m.notify()
	return err
}

// ToggleTheme flips the theme preference and persists the new value. The
// in-memory flip happens even when the persist fails, but the failure is
// surfaced so the caller can warn.
func (m *Manager) ToggleTheme(ctx context.Context) (theme.Mode, error) {
	m.mu.Lock()
	next := m.theme.Toggle()
	m.theme = next
	m.mu.Unlock()

	err := m.store.SetValue(ctx, store.KeyTheme, string(next))
	m.notify()
	if err != nil {
		return next, fmt.Errorf("failed to persist theme: %w", err)
	}
	return next, nil
}

// Theme returns the current theme preference.
func (m *Manager) Theme() theme.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme
}

// UpdateProfile merges partial into the stored profile, stamps updated_at,
// and persists the result. Fails with ErrNoActiveUser when nobody is
// signed in.
func (m *Manager) UpdateProfile(ctx context.Context, partial Profile) (Profile, error) {
	m.mu.Lock()
	if m.identity.IsNone() {
		m.mu.Unlock()
		return nil, ErrNoActiveUser
	}

	merged := make(Profile, len(m.profile)+len(partial)+1)
	for k, v := range m.profile {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	merged["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(merged)
	if err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	m.profile = merged
	m.mu.Unlock()

	if err := m.store.SetValue(ctx, store.KeyProfile, string(data)); err != nil {
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}
	m.notify()
	return m.snapshot().Profile, nil
}

// Identity returns the current identity.
func (m *Manager) Identity() auth.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// State returns a snapshot of the full session state.
func (m *Manager) State() State {
	return m.snapshot()
}

// Subscribe registers a listener invoked with a state snapshot after every
// session mutation. Returns an unsubscribe function.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// Dispose unregisters the provider listener. The manager must not be used
// afterward.
func (m *Manager) Dispose() {
	m.mu.Lock()
	stop := m.stopProvider
	m.stopProvider = nil
	m.subscribers = make(map[int]func(State))
	m.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func (m *Manager) snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile := make(Profile, len(m.profile))
	for k, v := range m.profile {
		profile[k] = v
	}
	return State{
		Identity:      m.identity,
		Profile:       profile,
		Theme:         m.theme,
		IsLoading:     m.isLoading,
		IsInitialized: m.isInitialized,
	}
}

// notify hands the current snapshot to every subscriber outside the lock.
func (m *Manager) notify() {
	state := m.snapshot()
	m.mu.Lock()
	listeners := make([]func(State), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func (m *Manager) logf(format string, args ...interface{}) {
	if m.logger != nil {
		m.logger.Warn(format, args...)
	}
}
