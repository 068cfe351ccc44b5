package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/myrjola/liftlog/internal/errors"
	"github.com/myrjola/liftlog/internal/ptr"
)

var ErrRestDay = errors.NewSentinel("rest days cannot be started")

// Service handles the business logic of program management, workout logging and planning.
type Service struct {
	store   Store
	repo    *repository
	tracker *SessionTracker
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new workout service. A nil now uses time.Now.
func NewService(store Store, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	factory := newRepositoryFactory(store, logger)
	return &Service{
		store:   store,
		repo:    factory.newRepository(),
		tracker: NewSessionTracker(store, logger, now),
		logger:  logger,
		now:     now,
	}
}

// Sessions returns the tracker of the active workout.
func (s *Service) Sessions() *SessionTracker {
	return s.tracker
}

// Logs returns every finalized log in stored order.
func (s *Service) Logs(ctx context.Context) ([]WorkoutLog, error) {
	logs, err := s.repo.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

// SaveLog recomputes the aggregates of log and stores it, replacing the log with the same start time.
func (s *Service) SaveLog(ctx context.Context, log WorkoutLog) (WorkoutLog, error) {
	saved, err := s.repo.logs.Save(ctx, log)
	if err != nil {
		return WorkoutLog{}, fmt.Errorf("save log: %w", err)
	}
	return saved, nil
}

// DeleteLog removes the first log matching target and returns the remaining logs.
func (s *Service) DeleteLog(ctx context.Context, target WorkoutLog) ([]WorkoutLog, error) {
	logs, err := s.repo.logs.Delete(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("delete log: %w", err)
	}
	return logs, nil
}

// FindLog returns the first log of dayID on date.
func (s *Service) FindLog(ctx context.Context, date string, dayID string) (WorkoutLog, bool, error) {
	log, ok, err := s.repo.logs.Find(ctx, date, dayID)
	if err != nil {
		return WorkoutLog{}, false, fmt.Errorf("find log: %w", err)
	}
	return log, ok, nil
}

// Settings returns the settings with defaults applied.
func (s *Service) Settings(ctx context.Context) (Settings, error) {
	settings, err := s.repo.settings.Get(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// SaveSettings replaces the settings.
func (s *Service) SaveSettings(ctx context.Context, settings Settings) error {
	if err := s.repo.settings.Set(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// RestDuration is the rest after a completed set. The longer rest between exercises applies when the set
// finished the exercise.
func RestDuration(settings Settings, exerciseFinished bool) time.Duration {
	seconds := ptr.ValueOr(settings.RestBetweenSets, DefaultRestBetweenSets)
	if exerciseFinished {
		seconds = ptr.ValueOr(settings.RestBetweenExercises, DefaultRestBetweenExercises)
	}
	return time.Duration(max(seconds, 0)) * time.Second
}

// Workout is the state needed to continue logging a day.
type Workout struct {
	Day WorkoutDay
	// Exercises are the sets already logged today, empty when the day has not been logged today.
	Exercises map[string][]ExerciseSet
	// StartTime is the start of the active session of the day in epoch milliseconds, nil when not started.
	StartTime *int64
}

// OpenWorkout resumes today's log of dayID and the active session of the day.
func (s *Service) OpenWorkout(ctx context.Context, dayID string) (Workout, error) {
	day, err := s.workoutDay(ctx, dayID)
	if err != nil {
		return Workout{}, err
	}
	w := Workout{
		Day:       day,
		Exercises: map[string][]ExerciseSet{},
		StartTime: nil,
	}
	existing, ok, err := s.FindLog(ctx, FormatDate(s.now()), dayID)
	if err != nil {
		return Workout{}, err
	}
	if ok {
		w.Exercises = existing.Exercises
	}
	start, ok, err := s.tracker.StartTime(ctx, dayID)
	if err != nil {
		return Workout{}, fmt.Errorf("get session start: %w", err)
	}
	if ok {
		w.StartTime = &start
	}
	return w, nil
}

// StartWorkout starts the session timer of dayID, replacing any active session.
func (s *Service) StartWorkout(ctx context.Context, dayID string) (int64, error) {
	if _, err := s.workoutDay(ctx, dayID); err != nil {
		return 0, err
	}
	start, err := s.tracker.Start(ctx, dayID)
	if err != nil {
		return 0, fmt.Errorf("start workout: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "started workout", slog.String("day_id", dayID))
	return start, nil
}

// FinishWorkout saves the sets of dayID as a log ending now and clears the session.
//
// The duration covers the active session of the day and is 0 without one. The log is dated on the UTC date of
// its end.
func (s *Service) FinishWorkout(ctx context.Context, dayID string, exercises map[string][]ExerciseSet) (WorkoutLog, error) {
	end := s.now()
	endTime := end.UnixMilli()
	start, active, err := s.tracker.StartTime(ctx, dayID)
	if err != nil {
		return WorkoutLog{}, fmt.Errorf("get session start: %w", err)
	}

	var duration int64
	startTime := endTime
	if active {
		duration = (endTime - start) / 1000 //nolint:mnd // milliseconds to seconds.
		startTime = start
	}
	if exercises == nil {
		exercises = map[string][]ExerciseSet{}
	}

	saved, err := s.repo.logs.Save(ctx, WorkoutLog{
		Date:        FormatDate(end),
		DayID:       dayID,
		StartTime:   &startTime,
		EndTime:     &endTime,
		Duration:    &duration,
		TotalVolume: 0,
		TotalSets:   0,
		PRs:         nil,
		Exercises:   exercises,
	})
	if err != nil {
		return WorkoutLog{}, fmt.Errorf("save log: %w", err)
	}
	if err = s.tracker.End(ctx); err != nil {
		return WorkoutLog{}, fmt.Errorf("end session: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "finished workout",
		slog.String("day_id", dayID),
		slog.Int64("duration_seconds", duration),
		slog.Int("total_sets", saved.TotalSets),
		slog.Any("prs", saved.PRs))
	return saved, nil
}

// CancelWorkout discards the active session without logging.
func (s *Service) CancelWorkout(ctx context.Context) error {
	if err := s.tracker.End(ctx); err != nil {
		return fmt.Errorf("cancel workout: %w", err)
	}
	return nil
}

func (s *Service) workoutDay(ctx context.Context, dayID string) (WorkoutDay, error) {
	program, err := s.repo.program.Get(ctx)
	if err != nil {
		return WorkoutDay{}, fmt.Errorf("get program: %w", err)
	}
	day, ok := program.Day(dayID)
	if !ok {
		return WorkoutDay{}, fmt.Errorf("day %s: %w", dayID, ErrDayNotFound)
	}
	if day.IsRestDay {
		return WorkoutDay{}, fmt.Errorf("day %s: %w", dayID, ErrRestDay)
	}
	return day, nil
}
