package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for Figment
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and runs migrations
func NewStore(path string) (*Store, error) {
	// WAL mode for concurrent access, busy timeout for write contention
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetValue returns the stored value for key, or ErrKeyNotFound
func (s *Store) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get value for %q: %w", key, err)
	}
	return value, nil
}

// SetValue upserts a key. Last write wins per key.
func (s *Store) SetValue(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set value for %q: %w", key, err)
	}
	return nil
}

// DeleteValue removes a key. Deleting an absent key is not an error.
func (s *Store) DeleteValue(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete value for %q: %w", key, err)
	}
	return nil
}

// CreateAccount registers a local account with a bcrypt-hashed password
func (s *Store) CreateAccount(ctx context.Context, email, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (email, password_hash) VALUES (?, ?)`,
		email, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrAccountExists
		}
		return 0, fmt.Errorf("failed to create account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get account id: %w", err)
	}
	return id, nil
}

// GetAccountByEmail looks up an account by email
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	query := `
		SELECT id, email, password_hash, created_at, COALESCE(last_login, created_at)
		FROM accounts WHERE email = ?
	`
	return s.scanAccount(s.db.QueryRowContext(ctx, query, email))
}

// GetAccountByID looks up an account by id
func (s *Store) GetAccountByID(ctx context.Context, accountID int64) (*Account, error) {
	query := `
		SELECT id, email, password_hash, created_at, COALESCE(last_login, created_at)
		FROM accounts WHERE id = ?
	`
	return s.scanAccount(s.db.QueryRowContext(ctx, query, accountID))
}

func (s *Store) scanAccount(row *sql.Row) (*Account, error) {
	var acct Account
	var createdAt, lastLogin string
	err := row.Scan(&acct.ID, &acct.Email, &acct.PasswordHash, &createdAt, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	acct.CreatedAt = parseTimestamp(createdAt)
	acct.LastLogin = parseTimestamp(lastLogin)
	return &acct, nil
}

// ValidateCredentials checks email/password and returns the account on match.
// A wrong password and an unknown email both return ErrAccountNotFound so
// callers cannot distinguish the two.
func (s *Store) ValidateCredentials(ctx context.Context, email, password string) (*Account, error) {
	acct, err := s.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}

// UpdateLastLogin stamps the account's last_login
func (s *Store) UpdateLastLogin(ctx context.Context, accountID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET last_login = CURRENT_TIMESTAMP WHERE id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// CreateAuthToken stores an issued token with its expiry
func (s *Store) CreateAuthToken(ctx context.Context, token string, accountID int64, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO auth_tokens (token, account_id, expires_at) VALUES (?, ?, ?)`,
		token, accountID, expiresAt.UTC().Format(sqliteTimeLayout))
	if err != nil {
		return fmt.Errorf("failed to create auth token: %w", err)
	}
	return nil
}

// GetAuthToken returns a stored token, or ErrTokenNotFound
func (s *Store) GetAuthToken(ctx context.Context, token string) (*AuthToken, error) {
	query := `SELECT token, account_id, created_at, expires_at FROM auth_tokens WHERE token = ?`
	var tok AuthToken
	var createdAt, expiresAt string
	err := s.db.QueryRowContext(ctx, query, token).Scan(&tok.Token, &tok.AccountID, &createdAt, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auth token: %w", err)
	}
	tok.CreatedAt = parseTimestamp(createdAt)
	tok.ExpiresAt = parseTimestamp(expiresAt)
	return &tok, nil
}

// DeleteAuthToken invalidates a token
func (s *Store) DeleteAuthToken(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token = ?`, token); err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}
	return nil
}

// CleanupExpiredTokens removes tokens past their expiry
func (s *Store) CleanupExpiredTokens(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM auth_tokens WHERE expires_at < ?`, time.Now().UTC().Format(sqliteTimeLayout))
	if err != nil {
		return fmt.Errorf("failed to cleanup expired tokens: %w", err)
	}
	return nil
}

const sqliteTimeLayout = "2006-01-02 15:04:05"

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		// SQLite may include fractional seconds depending on how the value
		// was written
		t, err = time.Parse("2006-01-02 15:04:05.999999999", s)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// modernc.org/sqlite reports constraint failures in the error text
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
