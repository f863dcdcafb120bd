package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// CreateUser inserts a new account. A username that already exists yields ErrUsernameTaken.
func (s *Store) CreateUser(username, credential string) (*User, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO users (username, credential, created_at) VALUES (?, ?, ?)`,
		username, credential, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert user %q: %w", username, ErrUsernameTaken)
		}
		return nil, fmt.Errorf("insert user %q: %w: %w", username, ErrPersistence, err)
	}
	id, _ := res.LastInsertId()
	return s.GetUser(id)
}

func (s *Store) GetUser(id int64) (*User, error) {
	return s.scanUser(s.db.QueryRow(
		`SELECT id, username, credential, created_at FROM users WHERE id = ?`, id,
	), fmt.Sprintf("get user %d", id))
}

// FindUserByCredentials returns the user whose username and credential both
// match exactly, or ErrNotFound.
func (s *Store) FindUserByCredentials(username, credential string) (*User, error) {
	return s.scanUser(s.db.QueryRow(
		`SELECT id, username, credential, created_at FROM users WHERE username = ? AND credential = ?`,
		username, credential,
	), fmt.Sprintf("find user %q", username))
}

func (s *Store) scanUser(row *sql.Row, op string) (*User, error) {
	u := &User{}
	var createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.Credential, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return u, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// Primary code only when extended result codes are off.
		return strings.Contains(se.Error(), "UNIQUE")
	}
	return false
}
