package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MemoryStore is an in-memory DataStore used in tests and by the terminal
// client, where nothing needs to survive the process.
type MemoryStore struct {
	mu       sync.RWMutex
	kv       map[string]string
	accounts map[int64]*Account
	byEmail  map[string]int64
	tokens   map[string]*AuthToken
	nextID   int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		kv:       make(map[string]string),
		accounts: make(map[int64]*Account),
		byEmail:  make(map[string]int64),
		tokens:   make(map[string]*AuthToken),
		nextID:   1,
	}
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) GetValue(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.kv[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (m *MemoryStore) SetValue(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.kv[key] = value
	return nil
}

func (m *MemoryStore) DeleteValue(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.kv, key)
	return nil
}

func (m *MemoryStore) CreateAccount(ctx context.Context, email, password string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[email]; exists {
		return 0, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	id := m.nextID
	m.nextID++
	now := time.Now()
	m.accounts[id] = &Account{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		LastLogin:    now,
	}
	m.byEmail[email] = id
	return id, nil
}

func (m *MemoryStore) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	copy := *m.accounts[id]
	return &copy, nil
}

func (m *MemoryStore) GetAccountByID(ctx context.Context, accountID int64) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acct, ok := m.accounts[accountID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	copy := *acct
	return &copy, nil
}

func (m *MemoryStore) ValidateCredentials(ctx context.Context, email, password string) (*Account, error) {
	acct, err := m.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}

func (m *MemoryStore) UpdateLastLogin(ctx context.Context, accountID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	acct.LastLogin = time.Now()
	return nil
}

func (m *MemoryStore) CreateAuthToken(ctx context.Context, token string, accountID int64, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[token] = &AuthToken{
		Token:     token,
		AccountID: accountID,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	return nil
}

func (m *MemoryStore) GetAuthToken(ctx context.Context, token string) (*AuthToken, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tok, ok := m.tokens[token]
	if !ok {
		return nil, ErrTokenNotFound
	}
	copy := *tok
	return &copy, nil
}

func (m *MemoryStore) DeleteAuthToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, token)
	return nil
}

func (m *MemoryStore) CleanupExpiredTokens(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for token, tok := range m.tokens {
		if tok.ExpiresAt.Before(now) {
			delete(m.tokens, token)
		}
	}
	return nil
}
