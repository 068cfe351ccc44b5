package workout

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/myrjola/liftlog/internal/errors"
)

var (
	ErrEmptyProgram   = errors.NewSentinel("program has no days")
	ErrInvalidHorizon = errors.NewSentinel("horizon must not be negative")
)

// DefaultPlanHorizonDays is how far ahead AutoFill plans when no horizon is configured.
const DefaultPlanHorizonDays = 60

// FillPlan returns a copy of plan where the horizonDays dates starting at start follow the program rotation.
//
// Date i gets program[i mod len(program)]. Dates that land on a rest day are removed from the plan. Dates
// outside the horizon are kept as they are.
func FillPlan(program Program, plan Plan, start time.Time, horizonDays int) (Plan, error) {
	if len(program) == 0 {
		return nil, ErrEmptyProgram
	}
	if horizonDays < 0 {
		return nil, fmt.Errorf("%d days: %w", horizonDays, ErrInvalidHorizon)
	}

	filled := make(Plan, len(plan)+horizonDays)
	maps.Copy(filled, plan)
	start = start.UTC()
	for i := range horizonDays {
		date := FormatDate(start.AddDate(0, 0, i))
		day := program[i%len(program)]
		if day.IsRestDay {
			delete(filled, date)
			continue
		}
		filled[date] = day.ID
	}
	return filled, nil
}

// PlannedDay resolves the day planned for date. It reports false when nothing is planned or the planned day
// is no longer in the program.
func PlannedDay(program Program, plan Plan, date string) (WorkoutDay, bool) {
	dayID, ok := plan[date]
	if !ok {
		return WorkoutDay{}, false
	}
	return program.Day(dayID)
}

// Plan returns the planned workouts.
func (s *Service) Plan(ctx context.Context) (Plan, error) {
	plan, err := s.repo.plan.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return plan, nil
}

// AutoFill plans the horizonDays days starting at start from the program rotation. The plan is left untouched
// when the program is empty.
func (s *Service) AutoFill(ctx context.Context, start time.Time, horizonDays int) (Plan, error) {
	program, err := s.repo.program.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	plan, err := s.repo.plan.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if plan, err = FillPlan(program, plan, start, horizonDays); err != nil {
		return nil, fmt.Errorf("fill plan: %w", err)
	}
	if err = s.repo.plan.Set(ctx, plan); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "auto-filled plan",
		slog.String("start", FormatDate(start)), slog.Int("horizon_days", horizonDays))
	return plan, nil
}

// ClearPlan removes every planned workout.
func (s *Service) ClearPlan(ctx context.Context) error {
	if err := s.repo.plan.Set(ctx, Plan{}); err != nil {
		return fmt.Errorf("clear plan: %w", err)
	}
	return nil
}

// Assign plans dayID on date. The day must exist in the program.
func (s *Service) Assign(ctx context.Context, date time.Time, dayID string) error {
	program, err := s.repo.program.Get(ctx)
	if err != nil {
		return fmt.Errorf("get program: %w", err)
	}
	if _, ok := program.Day(dayID); !ok {
		return fmt.Errorf("assign %s: %w", dayID, ErrDayNotFound)
	}
	return s.updatePlan(ctx, func(plan Plan) {
		plan[FormatDate(date)] = dayID
	})
}

// Unassign removes the workout planned on date, if any.
func (s *Service) Unassign(ctx context.Context, date time.Time) error {
	return s.updatePlan(ctx, func(plan Plan) {
		delete(plan, FormatDate(date))
	})
}

func (s *Service) updatePlan(ctx context.Context, updateFn func(Plan)) error {
	plan, err := s.repo.plan.Get(ctx)
	if err != nil {
		return fmt.Errorf("get plan: %w", err)
	}
	updateFn(plan)
	if err = s.repo.plan.Set(ctx, plan); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}
