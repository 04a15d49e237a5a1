// Package creds persists the two session credentials (token, username) in a
// small sqlite key/value table. They are written after login/signup, read
// once at startup for session restoration, and cleared wholesale on logout.
package creds

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes both credentials in one transaction.
func (s *Store) Save(token, username string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const upsert = `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := tx.Exec(upsert, "token", token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	if _, err := tx.Exec(upsert, "username", username); err != nil {
		return fmt.Errorf("saving username: %w", err)
	}
	return tx.Commit()
}

// Load returns the persisted credentials. Absent entries come back as empty
// strings, which callers treat as "no session" rather than an error.
func (s *Store) Load() (token, username string, err error) {
	token, err = s.get("token")
	if err != nil {
		return "", "", err
	}
	username, err = s.get("username")
	if err != nil {
		return "", "", err
	}
	return token, username, nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}

// Clear removes everything, ending the persisted session.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM session")
	return err
}
