package workout_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/myrjola/liftlog/internal/ptr"
	"github.com/myrjola/liftlog/internal/workout"
	"pgregory.net/rapid"
)

func completed(reps int, weight float64) workout.ExerciseSet {
	return workout.ExerciseSet{Reps: reps, Weight: weight, Completed: true, RPE: nil}
}

func pending(reps int, weight float64) workout.ExerciseSet {
	return workout.ExerciseSet{Reps: reps, Weight: weight, Completed: false, RPE: nil}
}

func logAt(date string, startTime int64, exercises map[string][]workout.ExerciseSet) workout.WorkoutLog {
	return workout.WorkoutLog{
		Date:        date,
		DayID:       "push",
		StartTime:   ptr.Ref(startTime),
		EndTime:     nil,
		Duration:    nil,
		TotalVolume: 0,
		TotalSets:   0,
		PRs:         nil,
		Exercises:   exercises,
	}
}

// drawSets draws sets whose weights are multiples of 0.5 so that sums are exact.
func drawSets(t *rapid.T, label string) []workout.ExerciseSet {
	n := rapid.IntRange(0, 6).Draw(t, label+"_count")
	sets := make([]workout.ExerciseSet, n)
	for i := range sets {
		sets[i] = workout.ExerciseSet{
			Reps:      rapid.IntRange(0, 30).Draw(t, label+"_reps"),
			Weight:    float64(rapid.IntRange(0, 600).Draw(t, label+"_half_kg")) / 2,
			Completed: rapid.Bool().Draw(t, label+"_completed"),
			RPE:       nil,
		}
	}
	return sets
}

func drawExercises(t *rapid.T, prefix string) map[string][]workout.ExerciseSet {
	n := rapid.IntRange(0, 4).Draw(t, prefix+"_exercises")
	exercises := make(map[string][]workout.ExerciseSet, n)
	for i := range n {
		id := fmt.Sprintf("%s-%d", prefix, i)
		exercises[id] = drawSets(t, id)
	}
	return exercises
}

func TestComputeAggregates_VolumeIsAdditive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawExercises(t, "a")
		b := drawExercises(t, "b")
		merged := make(map[string][]workout.ExerciseSet, len(a)+len(b))
		for id, sets := range a {
			merged[id] = sets
		}
		for id, sets := range b {
			merged[id] = sets
		}

		aggA := workout.ComputeAggregates(logAt("2025-01-06", 1, a), nil)
		aggB := workout.ComputeAggregates(logAt("2025-01-06", 1, b), nil)
		aggMerged := workout.ComputeAggregates(logAt("2025-01-06", 1, merged), nil)

		if aggMerged.TotalVolume != aggA.TotalVolume+aggB.TotalVolume {
			t.Fatalf("volume %v, want %v + %v", aggMerged.TotalVolume, aggA.TotalVolume, aggB.TotalVolume)
		}
		if aggMerged.TotalSets != aggA.TotalSets+aggB.TotalSets {
			t.Fatalf("sets %d, want %d + %d", aggMerged.TotalSets, aggA.TotalSets, aggB.TotalSets)
		}
	})
}

func TestComputeAggregates_OrderIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sets := drawSets(t, "sets")
		permuted := rapid.Permutation(sets).Draw(t, "permuted")
		history := []workout.WorkoutLog{logAt("2025-01-01", 1, map[string][]workout.ExerciseSet{
			"bench": drawSets(t, "history"),
		})}

		want := workout.ComputeAggregates(logAt("2025-01-06", 2, map[string][]workout.ExerciseSet{"bench": sets}), history)
		got := workout.ComputeAggregates(logAt("2025-01-06", 2, map[string][]workout.ExerciseSet{"bench": permuted}), history)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("aggregates depend on set order (-want +got):\n%s", diff)
		}
	})
}

func TestComputeAggregates(t *testing.T) {
	history := []workout.WorkoutLog{
		logAt("2025-01-01", 100, map[string][]workout.ExerciseSet{
			"bench": {completed(5, 80), pending(5, 120)},
			"squat": {completed(5, 100)},
		}),
	}

	tests := []struct {
		name      string
		exercises map[string][]workout.ExerciseSet
		want      workout.Aggregates
	}{
		{
			name:      "empty log",
			exercises: map[string][]workout.ExerciseSet{},
			want:      workout.Aggregates{TotalVolume: 0, TotalSets: 0, PRs: []string{}},
		},
		{
			name: "only completed sets with weight count",
			exercises: map[string][]workout.ExerciseSet{
				"row": {completed(10, 50), pending(10, 50), completed(10, 0)},
			},
			want: workout.Aggregates{TotalVolume: 500, TotalSets: 1, PRs: []string{"row"}},
		},
		{
			name: "zero reps counts as a set without volume",
			exercises: map[string][]workout.ExerciseSet{
				"row": {completed(0, 50)},
			},
			want: workout.Aggregates{TotalVolume: 0, TotalSets: 1, PRs: []string{"row"}},
		},
		{
			name: "equal to historical max is not a record",
			exercises: map[string][]workout.ExerciseSet{
				"bench": {completed(5, 80)},
			},
			want: workout.Aggregates{TotalVolume: 400, TotalSets: 1, PRs: []string{}},
		},
		{
			name: "heavier than historical max is a record",
			exercises: map[string][]workout.ExerciseSet{
				"bench": {completed(5, 80.01)},
			},
			want: workout.Aggregates{TotalVolume: 400.05, TotalSets: 1, PRs: []string{"bench"}},
		},
		{
			name: "uncompleted history sets are ignored",
			exercises: map[string][]workout.ExerciseSet{
				"bench": {completed(1, 100)},
			},
			want: workout.Aggregates{TotalVolume: 100, TotalSets: 1, PRs: []string{"bench"}},
		},
		{
			name: "records are sorted",
			exercises: map[string][]workout.ExerciseSet{
				"squat": {completed(1, 140)},
				"curl":  {completed(10, 20)},
			},
			want: workout.Aggregates{TotalVolume: 340, TotalSets: 2, PRs: []string{"curl", "squat"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := workout.ComputeAggregates(logAt("2025-01-08", 200, tt.exercises), history)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("ComputeAggregates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeAggregates_ExcludesLogWithSameStartTime(t *testing.T) {
	log := logAt("2025-01-08", 200, map[string][]workout.ExerciseSet{"bench": {completed(5, 100)}})
	previous := logAt("2025-01-01", 100, map[string][]workout.ExerciseSet{"bench": {completed(5, 90)}})

	got := workout.ComputeAggregates(log, []workout.WorkoutLog{previous, log})
	if diff := cmp.Diff([]string{"bench"}, got.PRs); diff != "" {
		t.Errorf("PRs mismatch (-want +got):\n%s", diff)
	}
}

func TestFindMaxWeight(t *testing.T) {
	tests := []struct {
		name string
		sets []workout.ExerciseSet
		want float64
	}{
		{name: "no sets", sets: nil, want: 0},
		{name: "only uncompleted", sets: []workout.ExerciseSet{pending(5, 100)}, want: 0},
		{name: "completed max", sets: []workout.ExerciseSet{completed(5, 60), pending(5, 100), completed(3, 70)}, want: 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workout.FindMaxWeight(tt.sets); got != tt.want {
				t.Errorf("FindMaxWeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultSetCount(t *testing.T) {
	tests := []struct {
		target string
		want   int
	}{
		{target: "3x10", want: 3},
		{target: "4X8-10", want: 4},
		{target: "1x6-8 (Fail)", want: 1},
		{target: "12x1", want: 12},
		{target: "AMRAP", want: 3},
		{target: "", want: 3},
		{target: " 3x10", want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := workout.DefaultSetCount(tt.target); got != tt.want {
				t.Errorf("DefaultSetCount(%q) = %d, want %d", tt.target, got, tt.want)
			}
		})
	}
}

func TestParseTargetWeight(t *testing.T) {
	tests := []struct {
		target string
		want   float64
	}{
		{target: "60 kg", want: 60},
		{target: "12.5 kg", want: 12.5},
		{target: "-", want: 0},
		{target: "", want: 0},
		{target: "bodyweight", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := workout.ParseTargetWeight(tt.target); got != tt.want {
				t.Errorf("ParseTargetWeight(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestInitialSets(t *testing.T) {
	def := workout.ExerciseDefinition{
		ID:           "bench",
		Name:         "Bench Press",
		TargetSets:   "4x8",
		TargetWeight: "60 kg",
		LastLog:      "",
	}

	got := workout.InitialSets(def, 0)
	want := []workout.ExerciseSet{pending(0, 60), pending(0, 60), pending(0, 60), pending(0, 60)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InitialSets without history mismatch (-want +got):\n%s", diff)
	}

	got = workout.InitialSets(def, 72.5)
	if got[0].Weight != 72.5 {
		t.Errorf("InitialSets weight = %v, want historical max 72.5", got[0].Weight)
	}
}

func TestResizeSets(t *testing.T) {
	sets := []workout.ExerciseSet{completed(8, 60), completed(8, 65)}

	grown := workout.ResizeSets(sets, 4)
	want := []workout.ExerciseSet{completed(8, 60), completed(8, 65), pending(0, 65), pending(0, 65)}
	if diff := cmp.Diff(want, grown); diff != "" {
		t.Errorf("grow mismatch (-want +got):\n%s", diff)
	}

	shrunk := workout.ResizeSets(sets, 1)
	if diff := cmp.Diff([]workout.ExerciseSet{completed(8, 60)}, shrunk); diff != "" {
		t.Errorf("shrink mismatch (-want +got):\n%s", diff)
	}
}

func TestPlannedSetCount(t *testing.T) {
	day := workout.WorkoutDay{
		ID:   "push",
		Name: "Push",
		Exercises: []workout.ExerciseDefinition{
			{ID: "a", Name: "A", TargetSets: "3x10", TargetWeight: "", LastLog: ""},
			{ID: "b", Name: "B", TargetSets: "4x8-10", TargetWeight: "", LastLog: ""},
			{ID: "c", Name: "C", TargetSets: "to failure", TargetWeight: "", LastLog: ""},
		},
		IsRestDay: false,
	}
	if got := workout.PlannedSetCount(day); got != 7 {
		t.Errorf("PlannedSetCount() = %d, want 7", got)
	}
}

func TestMonthOverMonth(t *testing.T) {
	withTotals := func(date string, volume float64, duration int64) workout.WorkoutLog {
		l := logAt(date, 0, nil)
		l.TotalVolume = volume
		l.Duration = ptr.Ref(duration)
		return l
	}
	logs := []workout.WorkoutLog{
		withTotals("2025-02-03", 1000, 3600),
		withTotals("2025-02-10", 1500, 1800),
		withTotals("2025-01-31", 2000, 3000),
		withTotals("2024-12-31", 9999, 9999),
	}

	curr, prev := workout.MonthOverMonth(logs, time.Date(2025, time.February, 15, 12, 0, 0, 0, time.UTC))
	if diff := cmp.Diff(workout.Summary{Count: 2, Volume: 2500, Duration: 5400}, curr); diff != "" {
		t.Errorf("current month mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(workout.Summary{Count: 1, Volume: 2000, Duration: 3000}, prev); diff != "" {
		t.Errorf("previous month mismatch (-want +got):\n%s", diff)
	}

	change, ok := workout.Trend(curr.Volume, prev.Volume)
	if !ok || change != 25 {
		t.Errorf("Trend() = %v, %v, want 25, true", change, ok)
	}
	if _, ok = workout.Trend(10, 0); ok {
		t.Error("Trend() with no previous data reported ok")
	}
}

func TestMonthOverMonth_January(t *testing.T) {
	logs := []workout.WorkoutLog{logAt("2024-12-20", 0, nil)}
	_, prev := workout.MonthOverMonth(logs, time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC))
	if prev.Count != 1 {
		t.Errorf("previous month of January counted %d logs, want 1", prev.Count)
	}
}

func TestExerciseProgress(t *testing.T) {
	logs := []workout.WorkoutLog{
		logAt("2025-01-08", 3, map[string][]workout.ExerciseSet{"bench": {completed(5, 85), completed(5, 80)}}),
		logAt("2025-01-01", 1, map[string][]workout.ExerciseSet{"bench": {completed(5, 80)}}),
		logAt("2025-01-04", 2, map[string][]workout.ExerciseSet{"bench": {pending(5, 90)}}),
		logAt("2025-01-05", 2, map[string][]workout.ExerciseSet{"squat": {completed(5, 90)}}),
	}

	want := []workout.ProgressPoint{
		{Date: "2025-01-01", MaxWeight: 80, Volume: 400},
		{Date: "2025-01-08", MaxWeight: 85, Volume: 825},
	}
	if diff := cmp.Diff(want, workout.ExerciseProgress(logs, "bench")); diff != "" {
		t.Errorf("ExerciseProgress mismatch (-want +got):\n%s", diff)
	}
}
