package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
	ns         TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (ns, key)
);
`

// SQLite stores entries in a single kv table
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("session: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session: apply schema: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

func (s *SQLite) Get(ctx context.Context, ns, key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE ns = ? AND key = ?`, ns, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session: get %s/%s: %w", ns, key, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, ns, key, value string) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO kv (ns, key, value) VALUES (?, ?, ?)
		ON CONFLICT(ns, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		ns, key, value)
	if err != nil {
		return fmt.Errorf("session: set %s/%s: %w", ns, key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, ns, key string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE ns = ? AND key = ?`, ns, key); err != nil {
		return fmt.Errorf("session: delete %s/%s: %w", ns, key, err)
	}
	return nil
}

// Close closes the underlying database connection
func (s *SQLite) Close() error {
	return s.conn.Close()
}
