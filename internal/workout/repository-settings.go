package workout

import (
	"context"
	"fmt"
)

// settingsRepository persists the settings under SettingsKey.
type settingsRepository struct {
	baseRepository
}

// Default rest durations in seconds.
const (
	DefaultRestBetweenSets      = 90
	DefaultRestBetweenExercises = 120
)

// Get returns the stored settings with the default rest durations filled in where unset.
func (r *settingsRepository) Get(ctx context.Context) (Settings, error) {
	settings, _, err := loadDocument(ctx, r.baseRepository, SettingsKey, func() Settings { return Settings{} })
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if settings.RestBetweenSets == nil {
		restBetweenSets := DefaultRestBetweenSets
		settings.RestBetweenSets = &restBetweenSets
	}
	if settings.RestBetweenExercises == nil {
		restBetweenExercises := DefaultRestBetweenExercises
		settings.RestBetweenExercises = &restBetweenExercises
	}
	return settings, nil
}

func (r *settingsRepository) Set(ctx context.Context, settings Settings) error {
	if err := saveDocument(ctx, r.baseRepository, SettingsKey, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
