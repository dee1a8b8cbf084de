package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// newTestStore returns a SQLite store backed by a temp file
func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestKVOperations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("missing key returns ErrKeyNotFound", func(t *testing.T) {
		_, err := s.GetValue(ctx, KeyTheme)
		if !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		if err := s.SetValue(ctx, KeyTheme, "dark"); err != nil {
			t.Fatalf("Failed to set value: %v", err)
		}
		value, err := s.GetValue(ctx, KeyTheme)
		if err != nil {
			t.Fatalf("Failed to get value: %v", err)
		}
		if value != "dark" {
			t.Errorf("expected 'dark', got %q", value)
		}
	})

	t.Run("set overwrites previous value", func(t *testing.T) {
		if err := s.SetValue(ctx, KeyTheme, "light"); err != nil {
			t.Fatalf("Failed to set value: %v", err)
		}
		value, err := s.GetValue(ctx, KeyTheme)
		if err != nil {
			t.Fatalf("Failed to get value: %v", err)
		}
		if value != "light" {
			t.Errorf("expected 'light', got %q", value)
		}
	})

	t.Run("delete removes key", func(t *testing.T) {
		if err := s.DeleteValue(ctx, KeyTheme); err != nil {
			t.Fatalf("Failed to delete value: %v", err)
		}
		_, err := s.GetValue(ctx, KeyTheme)
		if !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
		}
	})

	t.Run("delete of absent key is not an error", func(t *testing.T) {
		if err := s.DeleteValue(ctx, "no-such-key"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})
}

func TestAccountOperations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateAccount(ctx, "test@example.com", "password123")
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero account id")
	}

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := s.CreateAccount(ctx, "test@example.com", "other")
		if !errors.Is(err, ErrAccountExists) {
			t.Errorf("expected ErrAccountExists, got %v", err)
		}
	})

	t.Run("lookup by email", func(t *testing.T) {
		acct, err := s.GetAccountByEmail(ctx, "test@example.com")
		if err != nil {
			t.Fatalf("Failed to get account: %v", err)
		}
		if acct.ID != id {
			t.Errorf("expected id %d, got %d", id, acct.ID)
		}
		if acct.PasswordHash == "password123" {
			t.Errorf("password stored in plaintext")
		}
	})

	t.Run("valid credentials accepted", func(t *testing.T) {
		acct, err := s.ValidateCredentials(ctx, "test@example.com", "password123")
		if err != nil {
			t.Fatalf("expected valid credentials, got %v", err)
		}
		if acct.Email != "test@example.com" {
			t.Errorf("unexpected email %q", acct.Email)
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := s.ValidateCredentials(ctx, "test@example.com", "wrong")
		if !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		_, err := s.ValidateCredentials(ctx, "nobody@example.com", "password123")
		if !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestAuthTokenOperations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	accountID, err := s.CreateAccount(ctx, "token@example.com", "secret")
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	if err := s.CreateAuthToken(ctx, "tok-1", accountID, expiresAt); err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	t.Run("stored token retrievable", func(t *testing.T) {
		tok, err := s.GetAuthToken(ctx, "tok-1")
		if err != nil {
			t.Fatalf("Failed to get token: %v", err)
		}
		if tok.AccountID != accountID {
			t.Errorf("expected account id %d, got %d", accountID, tok.AccountID)
		}
		if tok.ExpiresAt.IsZero() {
			t.Errorf("expected parsed expiry, got zero time")
		}
	})

	t.Run("unknown token returns ErrTokenNotFound", func(t *testing.T) {
		_, err := s.GetAuthToken(ctx, "tok-unknown")
		if !errors.Is(err, ErrTokenNotFound) {
			t.Errorf("expected ErrTokenNotFound, got %v", err)
		}
	})

	t.Run("cleanup removes expired tokens only", func(t *testing.T) {
		if err := s.CreateAuthToken(ctx, "tok-old", accountID, time.Now().Add(-time.Hour)); err != nil {
			t.Fatalf("Failed to create token: %v", err)
		}
		if err := s.CleanupExpiredTokens(ctx); err != nil {
			t.Fatalf("Failed to cleanup: %v", err)
		}
		if _, err := s.GetAuthToken(ctx, "tok-old"); !errors.Is(err, ErrTokenNotFound) {
			t.Errorf("expected expired token to be removed, got %v", err)
		}
		if _, err := s.GetAuthToken(ctx, "tok-1"); err != nil {
			t.Errorf("expected live token to survive cleanup, got %v", err)
		}
	})

	t.Run("delete invalidates token", func(t *testing.T) {
		if err := s.DeleteAuthToken(ctx, "tok-1"); err != nil {
			t.Fatalf("Failed to delete token: %v", err)
		}
		if _, err := s.GetAuthToken(ctx, "tok-1"); !errors.Is(err, ErrTokenNotFound) {
			t.Errorf("expected ErrTokenNotFound after delete, got %v", err)
		}
	})
}

func TestMemoryStoreMatchesContract(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if _, err := m.GetValue(ctx, "x"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
	if err := m.SetValue(ctx, "x", "1"); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}
	if v, _ := m.GetValue(ctx, "x"); v != "1" {
		t.Errorf("expected '1', got %q", v)
	}

	id, err := m.CreateAccount(ctx, "a@b.c", "pw")
	if err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	if _, err := m.CreateAccount(ctx, "a@b.c", "pw"); !errors.Is(err, ErrAccountExists) {
		t.Errorf("expected ErrAccountExists, got %v", err)
	}
	if _, err := m.ValidateCredentials(ctx, "a@b.c", "pw"); err != nil {
		t.Errorf("expected valid credentials, got %v", err)
	}
	if _, err := m.ValidateCredentials(ctx, "a@b.c", "nope"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}

	if err := m.CreateAuthToken(ctx, "t", id, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}
	if err := m.CleanupExpiredTokens(ctx); err != nil {
		t.Fatalf("Failed to cleanup: %v", err)
	}
	if _, err := m.GetAuthToken(ctx, "t"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected expired token removed, got %v", err)
	}
}
