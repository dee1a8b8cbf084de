package store

import (
	"errors"
	"time"
)

// Well-known keys in the kv table. The session layer reads and writes these;
// nothing else is persisted for a running session.
const (
	KeyProfile = "profile"
	KeyTheme   = "theme"
)

var (
	// ErrKeyNotFound is returned when a kv key has no stored value
	ErrKeyNotFound = errors.New("key not found")

	// ErrAccountNotFound is returned when no account matches the lookup
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists is returned when creating an account with a taken email
	ErrAccountExists = errors.New("account already exists")

	// ErrTokenNotFound is returned when an auth token is unknown or expired
	ErrTokenNotFound = errors.New("token not found")
)

// Account is a locally registered user account, used by the local auth
// provider. The mock provider never touches these.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    time.Time
}

// AuthToken is an opaque session token issued by the local auth provider
type AuthToken struct {
	Token     string
	AccountID int64
	CreatedAt time.Time
	ExpiresAt time.Time
}
