package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-metabox/pkg/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS item_meta (
    item_id    TEXT NOT NULL,
    meta_key   TEXT NOT NULL,
    meta_value TEXT NOT NULL,
    PRIMARY KEY (item_id, meta_key)
);
CREATE TABLE IF NOT EXISTS site_options (
    option_key   TEXT PRIMARY KEY,
    option_value TEXT NOT NULL
);`

// Store persists values in an embedded SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

var _ storage.Store = (*Store)(nil)

// Open initializes or connects to the database at path and ensures the schema.
// Use ":memory:" for a private in-process database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite store: path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("ensure directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// each connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ItemMeta(ctx context.Context, itemID, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT meta_value FROM item_meta WHERE item_id = ? AND meta_key = ?`,
		itemID, key,
	)
	return scanValue(row)
}

func (s *Store) SiteOption(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT option_value FROM site_options WHERE option_key = ?`,
		key,
	)
	return scanValue(row)
}

func (s *Store) SetItemMeta(ctx context.Context, itemID, key, value string) error {
	if itemID == "" {
		return storage.ErrItemRequired
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO item_meta (item_id, meta_key, meta_value) VALUES (?, ?, ?)
         ON CONFLICT(item_id, meta_key) DO UPDATE SET meta_value = excluded.meta_value`,
		itemID, key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert item meta: %w", err)
	}
	return nil
}

func (s *Store) SetSiteOption(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO site_options (option_key, option_value) VALUES (?, ?)
         ON CONFLICT(option_key) DO UPDATE SET option_value = excluded.option_value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert site option: %w", err)
	}
	return nil
}

func scanValue(row *sql.Row) (string, bool, error) {
	var value string
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("scan value: %w", err)
	}
	return value, true, nil
}
