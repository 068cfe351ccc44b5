package workout

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Aggregates are the statistics derived from the sets of a log when it is saved.
type Aggregates struct {
	TotalVolume float64
	TotalSets   int
	// PRs lists the ids of exercises whose best weight beats every other log, sorted.
	PRs []string
}

func isValidSet(s ExerciseSet) bool {
	return s.Completed && s.Weight > 0
}

// ComputeAggregates derives volume, set count and personal records of log.
//
// A set counts when it is completed and has a positive weight. Completed sets with zero reps count as a set
// but add no volume. An exercise is a personal record when its heaviest valid set is strictly heavier than the
// heaviest completed set of that exercise in every history log, excluding logs that share log's start time.
func ComputeAggregates(log WorkoutLog, history []WorkoutLog) Aggregates {
	agg := Aggregates{
		TotalVolume: 0,
		TotalSets:   0,
		PRs:         []string{},
	}
	for exerciseID, sets := range log.Exercises {
		var currentMax float64
		for _, s := range sets {
			if !isValidSet(s) {
				continue
			}
			agg.TotalSets++
			agg.TotalVolume += s.Weight * float64(s.Reps)
			currentMax = max(currentMax, s.Weight)
		}
		if currentMax <= 0 {
			continue
		}

		var historicalMax float64
		for _, h := range history {
			if sameStartTime(log, h) {
				continue
			}
			historicalMax = max(historicalMax, FindMaxWeight(h.Exercises[exerciseID]))
		}
		if currentMax > historicalMax {
			agg.PRs = append(agg.PRs, exerciseID)
		}
	}
	slices.Sort(agg.PRs)
	return agg
}

// FindMaxWeight returns the heaviest completed set, or 0 when no set is completed.
func FindMaxWeight(sets []ExerciseSet) float64 {
	var best float64
	for _, s := range sets {
		if s.Completed {
			best = max(best, s.Weight)
		}
	}
	return best
}

// HistoricalMax is the heaviest completed set of exerciseID across all logs. New sets are prefilled with it.
func HistoricalMax(logs []WorkoutLog, exerciseID string) float64 {
	var best float64
	for _, l := range logs {
		best = max(best, FindMaxWeight(l.Exercises[exerciseID]))
	}
	return best
}

const defaultSetCount = 3

var setCountPattern = regexp.MustCompile(`^(\d+)[xX]`)

// DefaultSetCount reads the leading "<n>x" of a target such as "4x8-10". It falls back to 3.
func DefaultSetCount(targetSets string) int {
	if n, ok := leadingSetCount(targetSets); ok {
		return n
	}
	return defaultSetCount
}

func leadingSetCount(targetSets string) (int, bool) {
	match := setCountPattern.FindStringSubmatch(targetSets)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

var weightPrefixPattern = regexp.MustCompile(`^\d*\.?\d*`)

// ParseTargetWeight extracts the number of a target weight such as "62.5 kg". Targets without a number are 0.
func ParseTargetWeight(targetWeight string) float64 {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, targetWeight)
	f, err := strconv.ParseFloat(weightPrefixPattern.FindString(digits), 64)
	if err != nil {
		return 0
	}
	return f
}

// InitialSets returns the empty sets shown when an exercise has no sets in the current log. The weight is
// prefilled with historicalMax when positive and with the target weight otherwise.
func InitialSets(def ExerciseDefinition, historicalMax float64) []ExerciseSet {
	weight := ParseTargetWeight(def.TargetWeight)
	if historicalMax > 0 {
		weight = historicalMax
	}
	sets := make([]ExerciseSet, DefaultSetCount(def.TargetSets))
	for i := range sets {
		sets[i] = ExerciseSet{Reps: 0, Weight: weight, Completed: false, RPE: nil}
	}
	return sets
}

// ResizeSets grows or shrinks sets to n. Added sets copy the weight of the last set.
func ResizeSets(sets []ExerciseSet, n int) []ExerciseSet {
	if n <= len(sets) {
		return slices.Clone(sets[:max(n, 0)])
	}
	resized := slices.Clone(sets)
	var weight float64
	if len(sets) > 0 {
		weight = sets[len(sets)-1].Weight
	}
	for len(resized) < n {
		resized = append(resized, ExerciseSet{Reps: 0, Weight: weight, Completed: false, RPE: nil})
	}
	return resized
}

// PlannedSetCount sums the leading set counts of the exercises of day. Targets without a count add nothing.
func PlannedSetCount(day WorkoutDay) int {
	total := 0
	for _, ex := range day.Exercises {
		if n, ok := leadingSetCount(ex.TargetSets); ok {
			total += n
		}
	}
	return total
}

// Summary totals a group of logs.
type Summary struct {
	Count  int
	Volume float64
	// Duration is in seconds.
	Duration int64
}

// Summarize totals the logs dated in the given month.
func Summarize(logs []WorkoutLog, year int, month time.Month) Summary {
	var s Summary
	for _, l := range logs {
		d, err := ParseDate(l.Date)
		if err != nil || d.Year() != year || d.Month() != month {
			continue
		}
		s.Count++
		s.Volume += l.TotalVolume
		if l.Duration != nil {
			s.Duration += *l.Duration
		}
	}
	return s
}

// MonthOverMonth summarises the month of now and the month before it.
func MonthOverMonth(logs []WorkoutLog, now time.Time) (Summary, Summary) {
	now = now.UTC()
	previous := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC)
	return Summarize(logs, now.Year(), now.Month()), Summarize(logs, previous.Year(), previous.Month())
}

// Trend is the percentage change from prev to curr. It reports false when prev is 0.
func Trend(curr, prev float64) (float64, bool) {
	if prev == 0 {
		return 0, false
	}
	return (curr - prev) / prev * 100, true //nolint:mnd // percent.
}

// ProgressPoint is the performance of one exercise in one log.
type ProgressPoint struct {
	Date      string
	MaxWeight float64
	Volume    float64
}

// ExerciseProgress lists the best weight and completed volume of exerciseID per log, oldest first. Logs
// without completed sets of the exercise are skipped.
func ExerciseProgress(logs []WorkoutLog, exerciseID string) []ProgressPoint {
	sorted := slices.Clone(logs)
	slices.SortStableFunc(sorted, func(a, b WorkoutLog) int {
		return strings.Compare(a.Date, b.Date)
	})

	var points []ProgressPoint
	for _, l := range sorted {
		var (
			completed bool
			point     = ProgressPoint{Date: l.Date, MaxWeight: 0, Volume: 0}
		)
		for _, s := range l.Exercises[exerciseID] {
			if !s.Completed {
				continue
			}
			completed = true
			point.MaxWeight = max(point.MaxWeight, s.Weight)
			point.Volume += s.Weight * float64(s.Reps)
		}
		if completed {
			points = append(points, point)
		}
	}
	return points
}
