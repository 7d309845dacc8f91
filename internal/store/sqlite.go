package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	code       TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore persists snapshots in a single table.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, code string, data []byte) error {
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO snapshots (code, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		code, data, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", code, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, code string) ([]byte, error) {
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE code = ?`, code).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", code, err)
	}
	return data, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, code string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM snapshots WHERE code = ?`, code); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", code, err)
	}
	return nil
}

func (s *SQLiteStore) Codes(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT code FROM snapshots ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
