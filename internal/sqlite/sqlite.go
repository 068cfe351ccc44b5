// Package sqlite stores the workout tracker documents in a local SQLite database.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	_ "embed"
)

//go:embed schema.sql
var schemaDefinition string

// Database holds a single-connection writer pool and a reader pool over the same file.
type Database struct {
	ReadWrite *sql.DB
	ReadOnly  *sql.DB
	logger    *slog.Logger
}

// NewDatabase opens the database at url, migrates it and optimizes it periodically until ctx is done.
//
// Readers and the writer use separate pools, see https://github.com/mattn/go-sqlite3/issues/1179.
// Use ":memory:" for a private in-memory database.
func NewDatabase(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	db, err := connect(ctx, url, logger)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err = db.migrate(ctx, schemaDefinition); err != nil {
		return nil, errors.Join(fmt.Errorf("migrate: %w", err), db.Close())
	}
	go db.startDatabaseOptimizer(ctx, time.Hour)
	return db, nil
}

const driverName = "sqlite3_liftlog"

//nolint:gochecknoglobals // sql.Register panics when called twice.
var registerDriver = sync.OnceFunc(func() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		Extensions: nil,
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if _, err := conn.Exec("PRAGMA temp_store = memory; PRAGMA mmap_size = 30000000000;", nil); err != nil {
				return fmt.Errorf("set connection pragmas: %w", err)
			}
			return nil
		},
	})
})

// pool describes one of the two connection pools.
type pool struct {
	name     string
	mode     string
	options  []string
	maxConns int
}

//nolint:gochecknoglobals // fixed pool settings.
var (
	writerPool = pool{name: "read-write", mode: "rwc", options: []string{"_txlock=immediate"}, maxConns: 1}
	readerPool = pool{
		name:     "read-only",
		mode:     "ro",
		options:  []string{"_txlock=deferred", "_query_only=true"},
		maxConns: 4, //nolint:mnd // plenty for a single user.
	}
)

// dsn builds the connection string. Options are documented at
// https://pkg.go.dev/github.com/mattn/go-sqlite3#SQLiteDriver.Open.
func (p pool) dsn(path string, inMemory bool) string {
	options := []string{
		"_loc=auto",
		"_journal_mode=wal",
		"_busy_timeout=5000",
		"_synchronous=normal",
	}
	options = append(options, p.options...)
	if inMemory {
		// Both pools must share the cache to see the same in-memory database.
		options = append(options, "mode=memory", "cache=shared")
	} else {
		options = append(options, "mode="+p.mode)
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(options, "&"))
}

func (p pool) open(ctx context.Context, path string, inMemory bool, logger *slog.Logger) (*sql.DB, error) {
	dsn := p.dsn(path, inMemory)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", p.name, err)
	}
	db.SetMaxOpenConns(p.maxConns)
	db.SetMaxIdleConns(p.maxConns)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(time.Hour)
	// sql.DB connects lazily.
	if err = db.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping %s database: %w", p.name, err), db.Close())
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "opened database", slog.String("pool", p.name), slog.String("dsn", dsn))
	return db, nil
}

func connect(ctx context.Context, url string, logger *slog.Logger) (*Database, error) {
	registerDriver()

	// Each in-memory database gets a random name so that parallel tests stay isolated.
	inMemory := strings.Contains(url, ":memory:")
	if inMemory {
		url = rand.Text()
	}

	// The writer goes first so that it creates the file before the read-only pool opens it.
	readWrite, err := writerPool.open(ctx, url, inMemory, logger)
	if err != nil {
		return nil, err
	}
	readOnly, err := readerPool.open(ctx, url, inMemory, logger)
	if err != nil {
		return nil, errors.Join(err, readWrite.Close())
	}
	return &Database{
		ReadWrite: readWrite,
		ReadOnly:  readOnly,
		logger:    logger,
	}, nil
}

// Close closes both pools.
func (db *Database) Close() error {
	return errors.Join(db.ReadOnly.Close(), db.ReadWrite.Close())
}
