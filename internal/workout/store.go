package workout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Keys of the documents kept in the Store. Each key holds one JSON document.
const (
	LogsKey     = "liftlog_logs_v1"
	ProgramKey  = "liftlog_program_v1"
	SessionKey  = "liftlog_session_v1"
	SettingsKey = "liftlog_settings_v1"
	PlanKey     = "liftlog_plan_v1"
)

// Store is the narrow persistence boundary of the workout package. A sqlite.Database satisfies it.
type Store interface {
	// Get returns the raw document under key and false when nothing is stored.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the document under key atomically.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}

// baseRepository holds the dependencies shared by every document repository.
type baseRepository struct {
	store  Store
	logger *slog.Logger
}

func newBaseRepository(store Store, logger *slog.Logger) baseRepository {
	return baseRepository{
		store:  store,
		logger: logger,
	}
}

// loadDocument decodes the document under key into T.
//
// Absent documents and documents that fail to decode yield fallback() and found=false. Corrupt documents are
// logged as a warning and never returned as an error; only storage errors propagate.
func loadDocument[T any](ctx context.Context, r baseRepository, key string, fallback func() T) (T, bool, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return fallback(), false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return fallback(), false, nil
	}
	var v T
	if err = json.Unmarshal(raw, &v); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "discarding corrupt document",
			slog.String("key", key), slog.Any("error", err))
		return fallback(), false, nil
	}
	return v, true, nil
}

// saveDocument encodes v and writes it under key in a single Set.
func saveDocument[T any](ctx context.Context, r baseRepository, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err = r.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// repository groups the document repositories behind the Service.
type repository struct {
	logs     *logRepository
	program  *programRepository
	plan     *planRepository
	settings *settingsRepository
}

type repositoryFactory struct {
	store  Store
	logger *slog.Logger
}

func newRepositoryFactory(store Store, logger *slog.Logger) *repositoryFactory {
	return &repositoryFactory{
		store:  store,
		logger: logger,
	}
}

func (f *repositoryFactory) newRepository() *repository {
	base := newBaseRepository(f.store, f.logger)
	return &repository{
		logs:     &logRepository{baseRepository: base},
		program:  &programRepository{baseRepository: base},
		plan:     &planRepository{baseRepository: base},
		settings: &settingsRepository{baseRepository: base},
	}
}
