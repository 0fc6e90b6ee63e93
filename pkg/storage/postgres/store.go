package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goliatone/go-metabox/pkg/storage"
)

// DBTX is satisfied by a pool, a single connection or a transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Schema creates the tables used by Store. It is safe to run repeatedly.
const Schema = `
CREATE TABLE IF NOT EXISTS metabox_item_meta (
    item_id    TEXT NOT NULL,
    meta_key   TEXT NOT NULL,
    meta_value TEXT NOT NULL,
    PRIMARY KEY (item_id, meta_key)
);
CREATE TABLE IF NOT EXISTS metabox_site_options (
    option_key   TEXT PRIMARY KEY,
    option_value TEXT NOT NULL
);`

// Store persists values in PostgreSQL.
type Store struct {
	db DBTX
}

var _ storage.Store = (*Store)(nil)

// New wraps an existing connection. The schema is expected to exist.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// Connect opens a pool for databaseURL, verifies it and applies Schema. The
// caller owns the returned pool.
func Connect(ctx context.Context, databaseURL string) (*Store, *pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse database url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return New(pool), pool, nil
}

// Migrate applies Schema.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return handlePostgresError("migrate", err)
	}
	return nil
}

func (s *Store) ItemMeta(ctx context.Context, itemID, key string) (string, bool, error) {
	row := s.db.QueryRow(ctx,
		`SELECT meta_value FROM metabox_item_meta WHERE item_id = $1 AND meta_key = $2`,
		itemID, key,
	)
	return scanValue("read item meta", row)
}

func (s *Store) SiteOption(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRow(ctx,
		`SELECT option_value FROM metabox_site_options WHERE option_key = $1`,
		key,
	)
	return scanValue("read site option", row)
}

func (s *Store) SetItemMeta(ctx context.Context, itemID, key, value string) error {
	if itemID == "" {
		return storage.ErrItemRequired
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO metabox_item_meta (item_id, meta_key, meta_value) VALUES ($1, $2, $3)
         ON CONFLICT (item_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value`,
		itemID, key, value,
	)
	if err != nil {
		return handlePostgresError("write item meta", err)
	}
	return nil
}

func (s *Store) SetSiteOption(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO metabox_site_options (option_key, option_value) VALUES ($1, $2)
         ON CONFLICT (option_key) DO UPDATE SET option_value = EXCLUDED.option_value`,
		key, value,
	)
	if err != nil {
		return handlePostgresError("write site option", err)
	}
	return nil
}

func scanValue(operation string, row pgx.Row) (string, bool, error) {
	var value string
	err := row.Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, handlePostgresError(operation, err)
	}
	return value, true, nil
}

func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01": // undefined_table
			return fmt.Errorf("%s: table does not exist, run migrations: %w", operation, err)
		case "23502": // not_null_violation
			return fmt.Errorf("%s: required column %s is missing: %w", operation, pgErr.ColumnName, err)
		default:
			return fmt.Errorf("%s: %s (code: %s): %w", operation, pgErr.Message, pgErr.Code, err)
		}
	}
	return fmt.Errorf("%s: %w", operation, err)
}
