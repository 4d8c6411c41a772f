package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLStore keeps one row per collection in the collections table. It works
// against PostgreSQL and SQLite; the schema is created by database.Migrate.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open, migrated database.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Load implements Store.
func (s *SQLStore) Load(ctx context.Context, c Collection) (json.RawMessage, error) {
	var payload string
	query := s.db.Rebind(`SELECT payload FROM collections WHERE name = ?`)
	if err := s.db.GetContext(ctx, &payload, query, string(c)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load %s: %w", c, err)
	}
	return checkArray(c, []byte(payload))
}

// SaveBatch implements Store. All rows are upserted in one transaction.
func (s *SQLStore) SaveBatch(ctx context.Context, batch map[Collection]json.RawMessage) error {
	if err := validateBatch(batch); err != nil {
		return err
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := tx.Rebind(`
		INSERT INTO collections (name, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, c := range sortedBatch(batch) {
		if _, err := tx.ExecContext(ctx, query, string(c), string(batch[c]), now); err != nil {
			return fmt.Errorf("save %s: %w", c, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLStore) Close() error { return s.db.Close() }
