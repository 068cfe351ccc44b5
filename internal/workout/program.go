package workout

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/myrjola/liftlog/internal/errors"
)

var (
	ErrDuplicateID      = errors.NewSentinel("duplicate id")
	ErrDayNotFound      = errors.NewSentinel("workout day not found")
	ErrExerciseNotFound = errors.NewSentinel("exercise not found")
	ErrPresetNotFound   = errors.NewSentinel("preset not found")
	ErrInvalidPosition  = errors.NewSentinel("invalid position")
)

// Labels shown for ids that no longer exist in the program.
const (
	UnknownDayLabel      = "Workout"
	UnknownExerciseLabel = "Unknown exercise"
)

// Validate reports ErrDuplicateID when two days share an id or a day has two exercises with the same id.
func (p Program) Validate() error {
	days := make(map[string]struct{}, len(p))
	for _, day := range p {
		if _, ok := days[day.ID]; ok {
			return fmt.Errorf("day %s: %w", day.ID, ErrDuplicateID)
		}
		days[day.ID] = struct{}{}

		exercises := make(map[string]struct{}, len(day.Exercises))
		for _, ex := range day.Exercises {
			if _, ok := exercises[ex.ID]; ok {
				return fmt.Errorf("exercise %s of day %s: %w", ex.ID, day.ID, ErrDuplicateID)
			}
			exercises[ex.ID] = struct{}{}
		}
	}
	return nil
}

// Clone returns a deep copy of p.
func (p Program) Clone() Program {
	if p == nil {
		return nil
	}
	clone := make(Program, len(p))
	for i, day := range p {
		clone[i] = day
		clone[i].Exercises = slices.Clone(day.Exercises)
	}
	return clone
}

// Day looks up a day by id.
func (p Program) Day(dayID string) (WorkoutDay, bool) {
	i := p.dayIndex(dayID)
	if i < 0 {
		return WorkoutDay{}, false
	}
	return p[i], true
}

func (p Program) dayIndex(dayID string) int {
	return slices.IndexFunc(p, func(d WorkoutDay) bool { return d.ID == dayID })
}

// Exercise looks up an exercise by id in any day. Logs reference exercises without their day.
func (p Program) Exercise(exerciseID string) (ExerciseDefinition, bool) {
	for _, day := range p {
		for _, ex := range day.Exercises {
			if ex.ID == exerciseID {
				return ex, true
			}
		}
	}
	return ExerciseDefinition{}, false
}

// DayLabel is the name of dayID, or UnknownDayLabel when the day was removed.
func (p Program) DayLabel(dayID string) string {
	if day, ok := p.Day(dayID); ok {
		return day.Name
	}
	return UnknownDayLabel
}

// ExerciseLabel is the name of exerciseID, or UnknownExerciseLabel when the exercise was removed.
func (p Program) ExerciseLabel(exerciseID string) string {
	if ex, ok := p.Exercise(exerciseID); ok {
		return ex.Name
	}
	return UnknownExerciseLabel
}

// Program returns the current program.
func (s *Service) Program(ctx context.Context) (Program, error) {
	program, err := s.repo.program.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	return program, nil
}

// SaveProgram replaces the program. It rejects programs with duplicate ids with ErrDuplicateID.
func (s *Service) SaveProgram(ctx context.Context, program Program) error {
	if err := s.repo.program.Set(ctx, program); err != nil {
		return fmt.Errorf("save program: %w", err)
	}
	return nil
}

// updateProgram runs a read-modify-write of the program that persists once.
func (s *Service) updateProgram(ctx context.Context, updateFn func(Program) (Program, error)) (Program, error) {
	program, err := s.repo.program.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	if program, err = updateFn(program); err != nil {
		return nil, err
	}
	if err = s.repo.program.Set(ctx, program); err != nil {
		return nil, fmt.Errorf("save program: %w", err)
	}
	return program, nil
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// AddDay appends a new day to the rotation and returns it.
func (s *Service) AddDay(ctx context.Context, name string, isRestDay bool) (WorkoutDay, error) {
	day := WorkoutDay{
		ID:        newID("day"),
		Name:      name,
		Exercises: []ExerciseDefinition{},
		IsRestDay: isRestDay,
	}
	if _, err := s.updateProgram(ctx, func(p Program) (Program, error) {
		return append(p, day), nil
	}); err != nil {
		return WorkoutDay{}, fmt.Errorf("add day: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "added workout day", slog.String("day_id", day.ID))
	return day, nil
}

// RemoveDay removes dayID. Logs and plans keep referring to it and fall back to UnknownDayLabel.
func (s *Service) RemoveDay(ctx context.Context, dayID string) error {
	if _, err := s.updateProgram(ctx, func(p Program) (Program, error) {
		i := p.dayIndex(dayID)
		if i < 0 {
			return nil, fmt.Errorf("day %s: %w", dayID, ErrDayNotFound)
		}
		return slices.Delete(p, i, i+1), nil
	}); err != nil {
		return fmt.Errorf("remove day: %w", err)
	}
	return nil
}

// RenameDay changes the name of dayID.
func (s *Service) RenameDay(ctx context.Context, dayID string, name string) error {
	if _, err := s.updateProgram(ctx, func(p Program) (Program, error) {
		i := p.dayIndex(dayID)
		if i < 0 {
			return nil, fmt.Errorf("day %s: %w", dayID, ErrDayNotFound)
		}
		p[i].Name = name
		return p, nil
	}); err != nil {
		return fmt.Errorf("rename day: %w", err)
	}
	return nil
}

// MoveDay moves the day at position from to position to, shifting the days in between.
func (s *Service) MoveDay(ctx context.Context, from, to int) error {
	if _, err := s.updateProgram(ctx, func(p Program) (Program, error) {
		return move(p, from, to)
	}); err != nil {
		return fmt.Errorf("move day: %w", err)
	}
	return nil
}

// AddExercise appends def to dayID. An empty def.ID gets a generated id.
func (s *Service) AddExercise(ctx context.Context, dayID string, def ExerciseDefinition) (ExerciseDefinition, error) {
	if def.ID == "" {
		def.ID = newID("ex")
	}
	if _, err := s.updateProgram(ctx, func(p Program) (Program, error) {
		i := p.dayIndex(dayID)
		if i < 0 {
			return nil, fmt.Errorf("day %s: %w", dayID, ErrDayNotFound)
		}
		p[i].Exercises = append(p[i].Exercises, def)
		return p, nil
	}); err != nil {
		return ExerciseDefinition{}, fmt.Errorf("add exercise: %w", err)
	}
	return def, nil
}

// RemoveExercise removes exerciseID from dayID.
func (s *Service) RemoveExercise(ctx context.Context, dayID, exerciseID string) error {
	if _, err := s.updateExercises(ctx, dayID, exerciseID, func(exercises []ExerciseDefinition, i int) ([]ExerciseDefinition, error) {
		return slices.Delete(exercises, i, i+1), nil
	}); err != nil {
		return fmt.Errorf("remove exercise: %w", err)
	}
	return nil
}

// UpdateExerciseTarget replaces the target sets pattern of exerciseID in dayID.
func (s *Service) UpdateExerciseTarget(ctx context.Context, dayID, exerciseID, targetSets string) error {
	if _, err := s.updateExercises(ctx, dayID, exerciseID, func(exercises []ExerciseDefinition, i int) ([]ExerciseDefinition, error) {
		exercises[i].TargetSets = targetSets
		return exercises, nil
	}); err != nil {
		return fmt.Errorf("update exercise target: %w", err)
	}
	return nil
}

// MoveExercise moves the exercise at position from to position to within dayID.
func (s *Service) MoveExercise(ctx context.Context, dayID string, from, to int) error {
	if _, err := s.updateProgram(ctx, func(p Program) (Program, error) {
		i := p.dayIndex(dayID)
		if i < 0 {
			return nil, fmt.Errorf("day %s: %w", dayID, ErrDayNotFound)
		}
		exercises, err := move(p[i].Exercises, from, to)
		if err != nil {
			return nil, err
		}
		p[i].Exercises = exercises
		return p, nil
	}); err != nil {
		return fmt.Errorf("move exercise: %w", err)
	}
	return nil
}

func (s *Service) updateExercises(
	ctx context.Context,
	dayID string,
	exerciseID string,
	updateFn func([]ExerciseDefinition, int) ([]ExerciseDefinition, error),
) (Program, error) {
	return s.updateProgram(ctx, func(p Program) (Program, error) {
		i := p.dayIndex(dayID)
		if i < 0 {
			return nil, fmt.Errorf("day %s: %w", dayID, ErrDayNotFound)
		}
		j := slices.IndexFunc(p[i].Exercises, func(ex ExerciseDefinition) bool { return ex.ID == exerciseID })
		if j < 0 {
			return nil, fmt.Errorf("exercise %s: %w", exerciseID, ErrExerciseNotFound)
		}
		exercises, err := updateFn(p[i].Exercises, j)
		if err != nil {
			return nil, err
		}
		p[i].Exercises = exercises
		return p, nil
	})
}

// NewProgram replaces the program with a single empty day and returns it.
func (s *Service) NewProgram(ctx context.Context) (Program, error) {
	program := Program{{
		ID:        newID("day"),
		Name:      "Day 1",
		Exercises: []ExerciseDefinition{},
		IsRestDay: false,
	}}
	if err := s.repo.program.Set(ctx, program); err != nil {
		return nil, fmt.Errorf("new program: %w", err)
	}
	return program, nil
}

// ApplyPreset replaces the program with the preset presetID.
func (s *Service) ApplyPreset(ctx context.Context, presetID string) (Program, error) {
	preset, ok := FindPreset(presetID)
	if !ok {
		return nil, fmt.Errorf("preset %s: %w", presetID, ErrPresetNotFound)
	}
	if err := s.repo.program.Set(ctx, preset.Program); err != nil {
		return nil, fmt.Errorf("apply preset: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "applied preset", slog.String("preset_id", presetID))
	return preset.Program, nil
}

func move[S ~[]E, E any](s S, from, to int) (S, error) {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) {
		return nil, fmt.Errorf("move %d to %d of %d: %w", from, to, len(s), ErrInvalidPosition)
	}
	item := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, item), nil
}
