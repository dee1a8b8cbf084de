package store

import (
	"context"
	"fmt"
	"time"
)

// DataStore defines the persistence operations the application needs: a small
// key-value surface for session state (profile, theme) and account/token
// management for the local auth provider. The abstraction keeps SQLite
// swappable for an in-memory store in tests.
type DataStore interface {
	// Lifecycle
	Close() error

	// Key-Value Preferences
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error

	// Account Management
	CreateAccount(ctx context.Context, email, password string) (int64, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	GetAccountByID(ctx context.Context, accountID int64) (*Account, error)
	ValidateCredentials(ctx context.Context, email, password string) (*Account, error)
	UpdateLastLogin(ctx context.Context, accountID int64) error

	// Auth Token Management
	CreateAuthToken(ctx context.Context, token string, accountID int64, expiresAt time.Time) error
	GetAuthToken(ctx context.Context, token string) (*AuthToken, error)
	DeleteAuthToken(ctx context.Context, token string) error
	CleanupExpiredTokens(ctx context.Context) error
}

// NewDataStore creates a DataStore based on the backend type
func NewDataStore(backend, path string) (DataStore, error) {
	switch backend {
	case "sqlite", "":
		return NewStore(path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", backend)
	}
}
