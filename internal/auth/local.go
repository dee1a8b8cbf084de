package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"sync"
	"time"

	"figment/internal/store"
)

// LocalProvider implements the Provider boundary against local accounts in
// the data store: bcrypt-hashed passwords and expiring random session tokens.
// It behaves like a client SDK — it remembers the token of the session it
// established and answers Current from it.
type LocalProvider struct {
	notifier

	store       store.DataStore
	tokenExpiry time.Duration

	mu    sync.Mutex
	token string
}

// NewLocalProvider creates a store-backed provider
func NewLocalProvider(st store.DataStore, tokenExpiryDays int) *LocalProvider {
	if tokenExpiryDays <= 0 {
		tokenExpiryDays = 7
	}
	return &LocalProvider{
		store:       st,
		tokenExpiry: time.Duration(tokenExpiryDays) * 24 * time.Hour,
	}
}

// SignIn validates credentials against stored accounts
func (l *LocalProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	acct, err := l.store.ValidateCredentials(ctx, email, password)
	if err != nil {
		return Nobody, ErrInvalidCredentials
	}
	return l.openSession(ctx, acct)
}

// SignUp registers a new account and signs it in
func (l *LocalProvider) SignUp(ctx context.Context, email, password string) (Identity, error) {
	if email == "" || password == "" {
		return Nobody, ErrInvalidCredentials
	}
	id, err := l.store.CreateAccount(ctx, email, password)
	if err != nil {
		if err == store.ErrAccountExists {
			return Nobody, ErrInvalidCredentials
		}
		return Nobody, fmt.Errorf("failed to create account: %w", err)
	}
	acct, err := l.store.GetAccountByID(ctx, id)
	if err != nil {
		return Nobody, fmt.Errorf("failed to load new account: %w", err)
	}
	return l.openSession(ctx, acct)
}

func (l *LocalProvider) openSession(ctx context.Context, acct *store.Account) (Identity, error) {
	// 32 bytes = 256 bits of entropy
	token, err := generateSecureToken(32)
	if err != nil {
		return Nobody, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := l.store.CreateAuthToken(ctx, token, acct.ID, time.Now().Add(l.tokenExpiry)); err != nil {
		return Nobody, fmt.Errorf("failed to create session: %w", err)
	}
	l.store.UpdateLastLogin(ctx, acct.ID)

	identity := identityFor(acct)

	l.mu.Lock()
	l.token = token
	l.mu.Unlock()

	l.notify(identity)
	return identity, nil
}

// SignOut invalidates the current token
func (l *LocalProvider) SignOut(ctx context.Context) error {
	l.mu.Lock()
	token := l.token
	l.token = ""
	l.mu.Unlock()

	if token == "" {
		return nil
	}
	err := l.store.DeleteAuthToken(ctx, token)
	l.notify(Nobody)
	return err
}

// Current validates the remembered token and returns its identity
func (l *LocalProvider) Current(ctx context.Context) (Identity, error) {
	l.mu.Lock()
	token := l.token
	l.mu.Unlock()

	if token == "" {
		return Nobody, ErrNoSession
	}

	tok, err := l.store.GetAuthToken(ctx, token)
	if err != nil {
		return Nobody, ErrNoSession
	}
	if time.Now().After(tok.ExpiresAt) {
		l.store.DeleteAuthToken(ctx, token)
		l.mu.Lock()
		l.token = ""
		l.mu.Unlock()
		return Nobody, ErrNoSession
	}

	acct, err := l.store.GetAccountByID(ctx, tok.AccountID)
	if err != nil {
		return Nobody, ErrNoSession
	}
	return identityFor(acct), nil
}

// OnChange registers a session-change listener
func (l *LocalProvider) OnChange(listener func(Identity)) func() {
	return l.add(listener)
}

// Name returns "local"
func (l *LocalProvider) Name() string {
	return "local"
}

func identityFor(acct *store.Account) Identity {
	return Identity{
		Kind:   KindAuthenticated,
		UserID: strconv.FormatInt(acct.ID, 10),
		Email:  acct.Email,
	}
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
