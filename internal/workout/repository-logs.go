package workout

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/myrjola/liftlog/internal/ptr"
)

// logRepository persists the collection of finalized logs under LogsKey.
type logRepository struct {
	baseRepository
}

func emptyLogs() []WorkoutLog { return []WorkoutLog{} }

// List returns every log in stored order. A corrupt collection reads as empty.
func (r *logRepository) List(ctx context.Context) ([]WorkoutLog, error) {
	logs, _, err := loadDocument(ctx, r.baseRepository, LogsKey, emptyLogs)
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}
	if logs == nil {
		logs = emptyLogs()
	}
	return logs, nil
}

// Save recomputes the aggregates of log and upserts it by start time. Logs without a start time are always
// appended.
func (r *logRepository) Save(ctx context.Context, log WorkoutLog) (WorkoutLog, error) {
	logs, err := r.List(ctx)
	if err != nil {
		return WorkoutLog{}, err
	}

	agg := ComputeAggregates(log, logs)
	finalized := log
	finalized.TotalVolume = agg.TotalVolume
	finalized.TotalSets = agg.TotalSets
	finalized.PRs = agg.PRs
	if finalized.Exercises == nil {
		finalized.Exercises = map[string][]ExerciseSet{}
	}

	existing := slices.IndexFunc(logs, func(l WorkoutLog) bool { return sameStartTime(l, log) })
	if existing >= 0 {
		logs[existing] = finalized
	} else {
		logs = append(logs, finalized)
	}

	if err = saveDocument(ctx, r.baseRepository, LogsKey, logs); err != nil {
		return WorkoutLog{}, fmt.Errorf("save logs: %w", err)
	}
	return finalized, nil
}

// Delete removes the first log matching target and returns the remaining logs.
//
// Logs are matched by start time first. When target has no start time or no log has it, the first log with
// the same date, day and duration is removed. Deleting a missing log leaves the store untouched.
func (r *logRepository) Delete(ctx context.Context, target WorkoutLog) ([]WorkoutLog, error) {
	logs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	index := -1
	if hasStartTime(target) {
		index = slices.IndexFunc(logs, func(l WorkoutLog) bool {
			return hasStartTime(l) && formatStartTime(*l.StartTime) == formatStartTime(*target.StartTime)
		})
	}
	if index < 0 {
		index = slices.IndexFunc(logs, func(l WorkoutLog) bool {
			return l.Date == target.Date && l.DayID == target.DayID && ptr.Equal(l.Duration, target.Duration)
		})
	}
	if index < 0 {
		return logs, nil
	}

	logs = slices.Delete(logs, index, index+1)
	if err = saveDocument(ctx, r.baseRepository, LogsKey, logs); err != nil {
		return nil, fmt.Errorf("save logs: %w", err)
	}
	return logs, nil
}

// Find returns the first log of dayID on date.
func (r *logRepository) Find(ctx context.Context, date string, dayID string) (WorkoutLog, bool, error) {
	logs, err := r.List(ctx)
	if err != nil {
		return WorkoutLog{}, false, err
	}
	for _, l := range logs {
		if l.Date == date && l.DayID == dayID {
			return l, true, nil
		}
	}
	return WorkoutLog{}, false, nil
}

// sameStartTime reports whether both logs have a start time and it is the same.
func sameStartTime(a, b WorkoutLog) bool {
	return hasStartTime(a) && hasStartTime(b) && *a.StartTime == *b.StartTime
}

// hasStartTime reports whether l carries a usable start time. A zero start time counts as missing.
func hasStartTime(l WorkoutLog) bool {
	return l.StartTime != nil && *l.StartTime != 0
}

func formatStartTime(ms int64) string {
	return strconv.FormatInt(ms, 10)
}

// SortByDateDesc sorts logs newest date first in place. Logs on the same date keep their order.
func SortByDateDesc(logs []WorkoutLog) {
	slices.SortStableFunc(logs, func(a, b WorkoutLog) int {
		return strings.Compare(b.Date, a.Date)
	})
}
