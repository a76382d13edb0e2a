package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/acemeet/aceletters/internal/client/migrations"
	"github.com/acemeet/aceletters/internal/common"
	"github.com/acemeet/aceletters/internal/dbx"
)

const (
	keyUserID   = "user_id"
	keyToken    = "token"
	keyUsername = "username"
)

// SQLiteStore keeps the session in a key/value metadata table of the
// client's local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// InitDatabase opens the local state database and applies pending
// migrations. The caller owns the returned handle.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, tx dbx.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context) (Session, error) {
	userID, err := s.get(ctx, keyUserID)
	if err != nil {
		return Session{}, err
	}
	if userID == "" {
		return Session{}, common.ErrorNoSession
	}

	token, err := s.get(ctx, keyToken)
	if err != nil {
		return Session{}, err
	}
	username, err := s.get(ctx, keyUsername)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: userID, Token: token, Username: username}, nil
}

// Set writes the whole identity in one transaction so a failure cannot
// leave a user id persisted next to a stale token.
func (s *SQLiteStore) Set(ctx context.Context, sess Session) error {
	if sess.UserID == "" {
		return fmt.Errorf("%w: session user id is empty", common.ErrorValidation)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, keyUserID, sess.UserID); err != nil {
			return err
		}
		if err := s.set(ctx, tx, keyToken, sess.Token); err != nil {
			return err
		}
		return s.set(ctx, tx, keyUsername, sess.Username)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata`)
	if err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}
