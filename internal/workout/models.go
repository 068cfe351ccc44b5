package workout

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// ExerciseSet is one logged set of an exercise.
type ExerciseSet struct {
	Reps      int      `json:"reps"`
	Weight    float64  `json:"weight"`
	Completed bool     `json:"completed"`
	RPE       *float64 `json:"rpe,omitempty"`
}

// UnmarshalJSON decodes a set leniently. Numeric strings are parsed and anything else that is not a finite
// non-negative number becomes 0, so that one bad field never discards a whole collection.
func (s *ExerciseSet) UnmarshalJSON(data []byte) error {
	var raw struct {
		Reps      json.RawMessage `json:"reps"`
		Weight    json.RawMessage `json:"weight"`
		Completed json.RawMessage `json:"completed"`
		RPE       json.RawMessage `json:"rpe"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err //nolint:wrapcheck // decoding errors surface through json.Unmarshal of the caller.
	}
	reps, _ := lenientNumber(raw.Reps)
	if reps > math.MaxInt32 {
		reps = 0
	}
	weight, _ := lenientNumber(raw.Weight)
	*s = ExerciseSet{
		Reps:      int(math.Max(0, math.Trunc(reps))),
		Weight:    math.Max(0, weight),
		Completed: lenientBool(raw.Completed),
		RPE:       nil,
	}
	if rpe, ok := lenientNumber(raw.RPE); ok {
		s.RPE = &rpe
	}
	return nil
}

// ExerciseDefinition is an exercise of a program day.
type ExerciseDefinition struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
	// TargetSets is a free-form pattern such as "3x8-10" or "1x6-8 (Fail)".
	TargetSets string `json:"targetSets" yaml:"targetSets"`
	// TargetWeight is a free-form weight such as "60 kg" or "-".
	TargetWeight string `json:"targetWeight"      yaml:"targetWeight"`
	LastLog      string `json:"lastLog,omitempty" yaml:"lastLog,omitempty"`
}

// WorkoutDay is one entry of a program rotation.
type WorkoutDay struct {
	ID        string               `json:"id"                  yaml:"id"`
	Name      string               `json:"name"                yaml:"name"`
	Exercises []ExerciseDefinition `json:"exercises"           yaml:"exercises"`
	IsRestDay bool                 `json:"isRestDay,omitempty" yaml:"isRestDay,omitempty"`
}

// Program is the ordered list of workout days. The order defines the rotation.
type Program []WorkoutDay

// WorkoutLog is a finalized workout.
//
// Its identity is StartTime when present, otherwise the (Date, DayID, Duration) triple.
type WorkoutLog struct {
	// Date is the UTC calendar date formatted as YYYY-MM-DD.
	Date  string `json:"date"`
	DayID string `json:"dayId"`
	// StartTime and EndTime are epoch milliseconds.
	StartTime *int64 `json:"startTime,omitempty"`
	EndTime   *int64 `json:"endTime,omitempty"`
	// Duration is in whole seconds.
	Duration    *int64                   `json:"duration,omitempty"`
	TotalVolume float64                  `json:"totalVolume,omitempty"`
	TotalSets   int                      `json:"totalSets,omitempty"`
	PRs         []string                 `json:"prs,omitempty"`
	Exercises   map[string][]ExerciseSet `json:"exercises"`
}

// UnmarshalJSON accepts the numeric fields as numbers or numeric strings. Values that cannot be parsed are
// treated as absent.
func (l *WorkoutLog) UnmarshalJSON(data []byte) error {
	type plain WorkoutLog
	var raw struct {
		plain

		StartTime   json.RawMessage `json:"startTime"`
		EndTime     json.RawMessage `json:"endTime"`
		Duration    json.RawMessage `json:"duration"`
		TotalVolume json.RawMessage `json:"totalVolume"`
		TotalSets   json.RawMessage `json:"totalSets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err //nolint:wrapcheck // decoding errors surface through json.Unmarshal of the caller.
	}
	*l = WorkoutLog(raw.plain)
	l.StartTime = lenientInt(raw.StartTime)
	l.EndTime = lenientInt(raw.EndTime)
	l.Duration = lenientInt(raw.Duration)
	l.TotalVolume, _ = lenientNumber(raw.TotalVolume)
	totalSets, _ := lenientNumber(raw.TotalSets)
	l.TotalSets = int(totalSets)
	if l.Exercises == nil {
		l.Exercises = map[string][]ExerciseSet{}
	}
	return nil
}

// Plan maps a YYYY-MM-DD date to the id of a program day. The id is a weak reference.
type Plan map[string]string

// Session is the active workout. At most one exists at a time.
type Session struct {
	DayID     string `json:"dayId"`
	StartTime int64  `json:"startTime"`
}

// Settings are the user preferences. Nil rest durations mean the defaults apply.
type Settings struct {
	MembershipStartDate string `json:"membershipStartDate,omitempty"`
	MembershipEndDate   string `json:"membershipEndDate,omitempty"`
	// RestBetweenSets and RestBetweenExercises are in seconds.
	RestBetweenSets      *int `json:"restBetweenSets,omitempty"`
	RestBetweenExercises *int `json:"restBetweenExercises,omitempty"`
}

// FormatDate formats t as the UTC calendar date used in logs and plans.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, err //nolint:wrapcheck // the time package error names the input.
	}
	return t, nil
}

// lenientNumber parses a JSON number or numeric string. It returns false for null, missing, non-numeric and
// non-finite values.
func lenientNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// lenientInt parses an integer such as an epoch millisecond timestamp. Values outside int64 read as nil.
func lenientInt(raw json.RawMessage) *int64 {
	f, ok := lenientNumber(raw)
	// float64(math.MaxInt64) rounds up to 2^63, which no int64 can hold.
	if !ok || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil
	}
	i := int64(f)
	return &i
}

func lenientBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}
