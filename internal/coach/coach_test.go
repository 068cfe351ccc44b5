package coach_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/liftlog/internal/coach"
	"github.com/myrjola/liftlog/internal/ptr"
	"github.com/myrjola/liftlog/internal/testhelpers"
	"github.com/myrjola/liftlog/internal/workout"
)

// fakeCompleter records prompts and answers with a canned response.
type fakeCompleter struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

func testLogs() []workout.WorkoutLog {
	return []workout.WorkoutLog{
		{
			Date:        "2025-01-06",
			DayID:       "ppl-push-default",
			StartTime:   ptr.Ref(int64(1)),
			EndTime:     nil,
			Duration:    nil,
			TotalVolume: 960,
			TotalSets:   2,
			PRs:         []string{"bp-def"},
			Exercises: map[string][]workout.ExerciseSet{
				"bp-def":  {{Reps: 8, Weight: 60, Completed: true, RPE: nil}, {Reps: 8, Weight: 60, Completed: true, RPE: nil}},
				"ohp-def": {{Reps: 0, Weight: 35, Completed: false, RPE: nil}},
				"removed": {{Reps: 10, Weight: 20, Completed: true, RPE: nil}},
			},
		},
	}
}

func TestCoach_Ask(t *testing.T) {
	ctx := t.Context()
	logger := testhelpers.NewTestLogger(t)

	tests := []struct {
		name      string
		completer *fakeCompleter
		want      string
	}{
		{name: "answer", completer: &fakeCompleter{answer: "Eat more protein.", err: nil, prompts: nil}, want: "Eat more protein."},
		{name: "empty answer", completer: &fakeCompleter{answer: "  \n", err: nil, prompts: nil}, want: coach.AskFallbackAnswer},
		{
			name:      "completion error",
			completer: &fakeCompleter{answer: "", err: errors.New("timeout"), prompts: nil},
			want:      coach.AskFallbackAnswer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := coach.New(tt.completer, logger)
			if got := c.Ask(ctx, "How do I bench more?", `{"program":[]}`); got != tt.want {
				t.Errorf("Ask() = %q, want %q", got, tt.want)
			}
			if len(tt.completer.prompts) != 1 {
				t.Fatalf("got %d prompts, want 1", len(tt.completer.prompts))
			}
			prompt := tt.completer.prompts[0]
			if !strings.Contains(prompt, "How do I bench more?") || !strings.Contains(prompt, `{"program":[]}`) {
				t.Errorf("prompt lacks question or context: %q", prompt)
			}
		})
	}
}

func TestCoach_MissingAPIKey(t *testing.T) {
	ctx := t.Context()
	c := coach.NewFromAPIKey("", testhelpers.NewTestLogger(t))

	if got := c.Ask(ctx, "question", "{}"); got != coach.MissingAPIKeyAnswer {
		t.Errorf("Ask() = %q, want missing key answer", got)
	}
	if got := c.Analyze(ctx, testLogs(), workout.DefaultProgram()); got != coach.MissingAPIKeyAnswer {
		t.Errorf("Analyze() = %q, want missing key answer", got)
	}
}

func TestCoach_Analyze(t *testing.T) {
	ctx := t.Context()
	completer := &fakeCompleter{answer: "Solid week.", err: nil, prompts: nil}
	c := coach.New(completer, testhelpers.NewTestLogger(t))

	if got := c.Analyze(ctx, testLogs(), workout.DefaultProgram()); got != "Solid week." {
		t.Errorf("Analyze() = %q", got)
	}
	want := `[{"date":"2025-01-06","exercises":["Bench Press: 2 sets","Unknown exercise: 1 sets"]}]`
	if !strings.Contains(completer.prompts[0], want) {
		t.Errorf("prompt %q does not contain summary %s", completer.prompts[0], want)
	}

	completer.err = errors.New("boom")
	if got := c.Analyze(ctx, testLogs(), workout.DefaultProgram()); got != coach.AnalyzeFallbackAnswer {
		t.Errorf("Analyze() with failing completer = %q", got)
	}
}

func TestBuildContext(t *testing.T) {
	program := workout.Program{
		{
			ID:   "ppl-push-default",
			Name: "Push",
			Exercises: []workout.ExerciseDefinition{
				{ID: "bp-def", Name: "Bench Press", TargetSets: "3x8", TargetWeight: "60 kg", LastLog: ""},
			},
			IsRestDay: false,
		},
		{ID: "rest", Name: "Rest", Exercises: []workout.ExerciseDefinition{}, IsRestDay: true},
	}

	got, err := coach.BuildContext(program, testLogs())
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}
	want := `{"program":[{"name":"Push","exercises":[{"name":"Bench Press","targetSets":"3x8","targetWeight":"60 kg"}]},` +
		`{"name":"Rest","isRestDay":true}],` +
		`"recentWorkouts":[{"date":"2025-01-06","day":"Push","totalVolume":960,"totalSets":2,"prs":["Bench Press"]}]}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildContext mismatch (-want +got):\n%s", diff)
	}
}

func TestRecentLogs(t *testing.T) {
	var logs []workout.WorkoutLog
	for _, date := range []string{"2025-01-01", "2025-01-05", "2025-01-03"} {
		logs = append(logs, workout.WorkoutLog{
			Date: date, DayID: "x", StartTime: nil, EndTime: nil, Duration: nil,
			TotalVolume: 0, TotalSets: 0, PRs: nil, Exercises: nil,
		})
	}
	recent := coach.RecentLogs(logs, 2)
	if len(recent) != 2 || recent[0].Date != "2025-01-05" || recent[1].Date != "2025-01-03" {
		t.Errorf("RecentLogs() = %+v", recent)
	}
	if logs[0].Date != "2025-01-01" {
		t.Error("RecentLogs reordered its input")
	}
}

func TestRenderHTML(t *testing.T) {
	answer := "## Plan\n\n- **Squat** 3x5\n- Bench 3x8\n\n<script>alert(1)</script>"

	html, err := coach.RenderHTML(answer)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		t.Fatalf("parse HTML: %v", err)
	}

	if got := doc.Find("h2").Text(); got != "Plan" {
		t.Errorf("heading = %q, want Plan", got)
	}
	if got := doc.Find("li").Length(); got != 2 {
		t.Errorf("got %d list items, want 2", got)
	}
	if got := doc.Find("li strong").Text(); got != "Squat" {
		t.Errorf("bold item = %q, want Squat", got)
	}
	if doc.Find("script").Length() != 0 {
		t.Error("raw script tag was rendered")
	}
}
