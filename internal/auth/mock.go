package auth

import (
	"context"
	"sync"
)

// MockProvider accepts any credentials and vouches for a fixed identity. It
// stands in for the hosted auth backend during development and in tests; the
// rest of the application cannot tell it apart from a real provider.
type MockProvider struct {
	notifier

	mu       sync.Mutex
	current  Identity
	failErr  error
	signOuts int
}

// NewMockProvider creates a provider with no active session
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// FailWith makes every subsequent call return err. Pass nil to restore
// normal behavior. Test hook.
func (m *MockProvider) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// SignIn accepts any credentials
func (m *MockProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	return m.establish(email)
}

// SignUp accepts any credentials
func (m *MockProvider) SignUp(ctx context.Context, email, password string) (Identity, error) {
	return m.establish(email)
}

func (m *MockProvider) establish(email string) (Identity, error) {
	m.mu.Lock()
	if m.failErr != nil {
		err := m.failErr
		m.mu.Unlock()
		return Nobody, err
	}
	if email == "" {
		email = "test@example.com"
	}
	identity := Identity{
		Kind:   KindAuthenticated,
		UserID: "mock-user-id",
		Email:  email,
	}
	m.current = identity
	m.mu.Unlock()

	m.notify(identity)
	return identity, nil
}

// SignOut clears the mock session
func (m *MockProvider) SignOut(ctx context.Context) error {
	m.mu.Lock()
	m.signOuts++
	if m.failErr != nil {
		err := m.failErr
		m.mu.Unlock()
		return err
	}
	m.current = Nobody
	m.mu.Unlock()

	m.notify(Nobody)
	return nil
}

// Current returns the mock session's identity
func (m *MockProvider) Current(ctx context.Context) (Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return Nobody, m.failErr
	}
	if m.current.IsNone() {
		return Nobody, ErrNoSession
	}
	return m.current, nil
}

// OnChange registers a session-change listener
func (m *MockProvider) OnChange(listener func(Identity)) func() {
	return m.add(listener)
}

// Emit simulates an externally triggered session change (token refresh,
// sign-out from another device). Test hook.
func (m *MockProvider) Emit(identity Identity) {
	m.mu.Lock()
	m.current = identity
	m.mu.Unlock()

	m.notify(identity)
}

// SignOutCalls reports how many times SignOut ran. Test hook.
func (m *MockProvider) SignOutCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signOuts
}

// Name returns "mock"
func (m *MockProvider) Name() string {
	return "mock"
}
