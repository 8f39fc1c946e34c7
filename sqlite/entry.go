package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/kvdrop"
)

// Compile-time interface verification.
var _ kvdrop.EntryService = (*EntryService)(nil)

// EntryService implements kvdrop.EntryService using SQLite.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

// FindEntry returns the value stored under key.
func (s *EntryService) FindEntry(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", kvdrop.Errorf(kvdrop.ENOTFOUND, "entry %q not found", key)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// PutEntries upserts all entries in a single transaction.
func (s *EntryService) PutEntries(ctx context.Context, entries ...kvdrop.Entry) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range entries {
		if e.Key == "" {
			return kvdrop.Errorf(kvdrop.EINVALID, "entry key required")
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entries (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, e.Key, e.Value, now); err != nil {
			return fmt.Errorf("failed to write entry %q: %w", e.Key, err)
		}
	}

	return tx.Commit()
}
