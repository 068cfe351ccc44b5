package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// schemaVersion is stored in PRAGMA user_version. Bump it when schema.sql changes and add the upgrade step
// to migrate.
const schemaVersion = 1

// migrate brings the database schema to schemaVersion.
//
// The schema is a single key-value table, so the upgrade is an idempotent CREATE TABLE IF NOT EXISTS run in one
// transaction together with the version bump. A database from a newer release is refused instead of being
// modified.
func (db *Database) migrate(ctx context.Context, schema string) error {
	start := time.Now()

	var current int
	if err := db.ReadWrite.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("query user_version: %w", err)
	}
	if current > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, schemaVersion)
	}

	tx, err := db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer db.rollback(ctx, tx)()

	if _, err = tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	// PRAGMA does not accept bind parameters.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	db.logger.LogAttrs(ctx, slog.LevelDebug, "migrated database",
		slog.Int("from_version", current),
		slog.Int("to_version", schemaVersion),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// rollback rolls back given transaction.
func (db *Database) rollback(ctx context.Context, tx *sql.Tx) func() {
	return func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			err = fmt.Errorf("rollback transaction: %w", err)
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction", slog.Any("error", err))
		}
	}
}
