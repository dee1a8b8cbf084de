package auth

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"figment/internal/store"
)

func TestMockProviderAlwaysSucceeds(t *testing.T) {
	ctx := context.Background()
	m := NewMockProvider()

	identity, err := m.SignIn(ctx, "anyone@example.com", "whatever")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if !identity.IsAuthenticated() {
		t.Errorf("expected authenticated identity, got %v", identity.Kind)
	}
	if identity.Email != "anyone@example.com" {
		t.Errorf("expected echoed email, got %q", identity.Email)
	}

	current, err := m.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if current != identity {
		t.Errorf("Current returned %v, want %v", current, identity)
	}

	if err := m.SignOut(ctx); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if _, err := m.Current(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after sign-out, got %v", err)
	}
}

func TestMockProviderInjectedFailure(t *testing.T) {
	ctx := context.Background()
	m := NewMockProvider()

	boom := errors.New("provider unreachable")
	m.FailWith(boom)

	if _, err := m.SignIn(ctx, "x@y.z", "pw"); !errors.Is(err, boom) {
		t.Errorf("expected injected failure, got %v", err)
	}

	m.FailWith(nil)
	if _, err := m.SignIn(ctx, "x@y.z", "pw"); err != nil {
		t.Errorf("expected success after clearing failure, got %v", err)
	}
}

func TestMockProviderChangeNotifications(t *testing.T) {
	ctx := context.Background()
	m := NewMockProvider()

	var got []Identity
	unsubscribe := m.OnChange(func(identity Identity) {
		got = append(got, identity)
	})

	m.SignIn(ctx, "a@b.c", "pw")
	m.SignOut(ctx)

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if !got[0].IsAuthenticated() || !got[1].IsNone() {
		t.Errorf("unexpected notification sequence: %v", got)
	}

	unsubscribe()
	m.SignIn(ctx, "a@b.c", "pw")
	if len(got) != 2 {
		t.Errorf("expected no notifications after unsubscribe, got %d", len(got))
	}
}

func TestLocalProviderLifecycle(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	l := NewLocalProvider(st, 7)

	t.Run("sign-up creates and signs in", func(t *testing.T) {
		identity, err := l.SignUp(ctx, "new@example.com", "secret123")
		if err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}
		if !identity.IsAuthenticated() {
			t.Errorf("expected authenticated identity")
		}

		current, err := l.Current(ctx)
		if err != nil {
			t.Fatalf("Current failed: %v", err)
		}
		if current.Email != "new@example.com" {
			t.Errorf("expected current session for new account, got %v", current)
		}
	})

	t.Run("sign-out ends the session", func(t *testing.T) {
		if err := l.SignOut(ctx); err != nil {
			t.Fatalf("SignOut failed: %v", err)
		}
		if _, err := l.Current(ctx); !errors.Is(err, ErrNoSession) {
			t.Errorf("expected ErrNoSession, got %v", err)
		}
	})

	t.Run("sign-in with valid credentials", func(t *testing.T) {
		identity, err := l.SignIn(ctx, "new@example.com", "secret123")
		if err != nil {
			t.Fatalf("SignIn failed: %v", err)
		}
		if !identity.IsAuthenticated() {
			t.Errorf("expected authenticated identity")
		}
	})

	t.Run("sign-in with wrong password", func(t *testing.T) {
		if _, err := l.SignIn(ctx, "new@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("duplicate sign-up rejected", func(t *testing.T) {
		if _, err := l.SignUp(ctx, "new@example.com", "other"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestLocalProviderExpiredToken(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	l := NewLocalProvider(st, 7)

	identity, err := l.SignUp(ctx, "short@example.com", "secret123")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	// Backdate the stored token so the next Current sees it expired.
	l.mu.Lock()
	token := l.token
	l.mu.Unlock()
	accountID, err := strconv.ParseInt(identity.UserID, 10, 64)
	if err != nil {
		t.Fatalf("unexpected user id %q: %v", identity.UserID, err)
	}
	if err := st.DeleteAuthToken(ctx, token); err != nil {
		t.Fatalf("DeleteAuthToken failed: %v", err)
	}
	if err := st.CreateAuthToken(ctx, token, accountID, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("CreateAuthToken failed: %v", err)
	}

	if _, err := l.Current(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession for expired token, got %v", err)
	}
	if _, err := st.GetAuthToken(ctx, token); !errors.Is(err, store.ErrTokenNotFound) {
		t.Errorf("expired token should be deleted on use, got %v", err)
	}
}

func TestNewProviderFactory(t *testing.T) {
	st := store.NewMemoryStore()

	cases := []struct {
		cfgType string
		want    string
	}{
		{"mock", "mock"},
		{"", "mock"},
		{"local", "local"},
		{"sso", "sso"},
	}
	for _, tc := range cases {
		p, err := NewProvider(Config{Type: tc.cfgType}, st)
		if err != nil {
			t.Fatalf("NewProvider(%q) failed: %v", tc.cfgType, err)
		}
		if p.Name() != tc.want {
			t.Errorf("NewProvider(%q).Name() = %q, want %q", tc.cfgType, p.Name(), tc.want)
		}
	}

	if _, err := NewProvider(Config{Type: "ldap"}, st); err == nil {
		t.Errorf("expected error for unsupported provider type")
	}
}
