package workout

import (
	"context"
	"fmt"
)

// RecommendNext returns the id of the day that follows the most recent log in the rotation.
//
// The most recent log is the one with the latest date; ties go to the later start time and then to the later
// position in history. The rotation wraps to the first day after the last day, and when the last logged day
// was removed from the program. Rest days are recommended like any other day. It reports false for an empty
// program.
func RecommendNext(program Program, history []WorkoutLog) (string, bool) {
	if len(program) == 0 {
		return "", false
	}
	if len(history) == 0 {
		return program[0].ID, true
	}

	latest := history[0]
	for _, l := range history[1:] {
		if !isBefore(l, latest) {
			latest = l
		}
	}

	i := program.dayIndex(latest.DayID)
	if i < 0 || i == len(program)-1 {
		return program[0].ID, true
	}
	return program[i+1].ID, true
}

// isBefore orders logs by date and then start time. Logs without a start time sort first within a date.
func isBefore(a, b WorkoutLog) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	var aStart, bStart int64 = -1, -1
	if a.StartTime != nil {
		aStart = *a.StartTime
	}
	if b.StartTime != nil {
		bStart = *b.StartTime
	}
	return aStart < bStart
}

// NextWorkout returns the recommended day of the stored program and logs.
func (s *Service) NextWorkout(ctx context.Context) (WorkoutDay, bool, error) {
	program, err := s.repo.program.Get(ctx)
	if err != nil {
		return WorkoutDay{}, false, fmt.Errorf("get program: %w", err)
	}
	logs, err := s.repo.logs.List(ctx)
	if err != nil {
		return WorkoutDay{}, false, fmt.Errorf("list logs: %w", err)
	}
	dayID, ok := RecommendNext(program, logs)
	if !ok {
		return WorkoutDay{}, false, nil
	}
	day, _ := program.Day(dayID)
	return day, true, nil
}
