package workout

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/myrjola/liftlog/internal/errors"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidBackup = errors.NewSentinel("invalid backup")

// backup is the exported state. Each field holds the stored document verbatim, or null when absent.
type backup struct {
	Logs     *string `json:"logs"`
	Program  *string `json:"program"`
	Plan     *string `json:"plan"`
	Settings *string `json:"settings"`
}

func (b *backup) fields() []struct {
	key   string
	value **string
} {
	return []struct {
		key   string
		value **string
	}{
		{key: LogsKey, value: &b.Logs},
		{key: ProgramKey, value: &b.Program},
		{key: PlanKey, value: &b.Plan},
		{key: SettingsKey, value: &b.Settings},
	}
}

// Export returns the logs, program, plan and settings as a base64 encoded JSON object. The active session is
// not part of the backup.
func (s *Service) Export(ctx context.Context) (string, error) {
	var b backup
	g, gctx := errgroup.WithContext(ctx)
	for _, field := range b.fields() {
		g.Go(func() error {
			raw, ok, err := s.store.Get(gctx, field.key)
			if err != nil {
				return fmt.Errorf("get %s: %w", field.key, err)
			}
			if ok {
				value := string(raw)
				*field.value = &value
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	encoded, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshal backup: %w", err)
	}
	return base64.StdEncoding.EncodeToString(encoded), nil
}

// Import restores a backup created by Export.
//
// Fields that are missing, null or empty keep the current value. Every other field must hold valid JSON,
// otherwise ErrInvalidBackup is returned and nothing is written.
func (s *Service) Import(ctx context.Context, text string) error {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("decode base64: %w: %w", ErrInvalidBackup, err)
	}
	var b backup
	if err = json.Unmarshal(decoded, &b); err != nil {
		return fmt.Errorf("unmarshal backup: %w: %w", ErrInvalidBackup, err)
	}

	fields := b.fields()
	for _, field := range fields {
		value := *field.value
		if value != nil && *value != "" && !json.Valid([]byte(*value)) {
			return fmt.Errorf("field %s is not JSON: %w", field.key, ErrInvalidBackup)
		}
	}

	var restored []string
	for _, field := range fields {
		value := *field.value
		if value == nil || *value == "" {
			continue
		}
		if err = s.store.Set(ctx, field.key, []byte(*value)); err != nil {
			return fmt.Errorf("set %s: %w", field.key, err)
		}
		restored = append(restored, field.key)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "imported backup", slog.Any("keys", restored))
	return nil
}
