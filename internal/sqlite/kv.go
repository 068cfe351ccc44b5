package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Get returns the document stored under key. The boolean is false when the key has never been set or was deleted.
func (db *Database) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := db.ReadOnly.QueryRowContext(ctx, `
		SELECT value
		FROM kv_entries
		WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query kv entry %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set replaces the document stored under key in a single statement.
func (db *Database) Set(ctx context.Context, key string, value []byte) error {
	// The value column is STRICT TEXT so the document is bound as a string, not a BLOB.
	if _, err := db.ReadWrite.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`, key, string(value)); err != nil {
		return fmt.Errorf("upsert kv entry %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (db *Database) Delete(ctx context.Context, key string) error {
	if _, err := db.ReadWrite.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete kv entry %s: %w", key, err)
	}
	return nil
}
