// Package coach asks a text completion model for training advice. Every failure degrades to a fixed answer so
// that callers never have to handle coach errors.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/myrjola/liftlog/internal/errors"
	"github.com/myrjola/liftlog/internal/workout"
)

// Fixed answers returned instead of errors.
const (
	MissingAPIKeyAnswer   = "The coach is not configured. Set LIFTLOG_OPENAI_API_KEY to enable it."
	AskFallbackAnswer     = "Sorry, I can't answer right now."
	AnalyzeFallbackAnswer = "Workout analysis is not available right now."
)

// AnalysisWindow is how many of the latest logs are analysed.
const AnalysisWindow = 5

// Completer turns a prompt into text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Coach answers training questions. A Coach without a Completer answers MissingAPIKeyAnswer.
type Coach struct {
	completer Completer
	logger    *slog.Logger
}

// New creates a coach backed by completer, which may be nil.
func New(completer Completer, logger *slog.Logger) *Coach {
	return &Coach{
		completer: completer,
		logger:    logger,
	}
}

// NewFromAPIKey creates a coach backed by OpenAI, or an unconfigured coach when apiKey is empty.
func NewFromAPIKey(apiKey string, logger *slog.Logger) *Coach {
	if apiKey == "" {
		return New(nil, logger)
	}
	return New(NewOpenAICompleter(apiKey, logger), logger)
}

// Ask answers question given a context built with BuildContext.
func (c *Coach) Ask(ctx context.Context, question string, trainingContext string) string {
	prompt := fmt.Sprintf(`You are an expert fitness coach named "Coach".
Context: %s
User question: %s`, trainingContext, question)
	return c.complete(ctx, prompt, AskFallbackAnswer)
}

// Analyze reviews recentLogs, typically the latest AnalysisWindow logs.
func (c *Coach) Analyze(ctx context.Context, recentLogs []workout.WorkoutLog, program workout.Program) string {
	summary, err := json.Marshal(summarizeLogs(recentLogs, program))
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelError, "marshal workout summary", errors.SlogError(err))
		return AnalyzeFallbackAnswer
	}
	prompt := fmt.Sprintf("Analyse these recent workouts and suggest what to improve: %s", summary)
	return c.complete(ctx, prompt, AnalyzeFallbackAnswer)
}

func (c *Coach) complete(ctx context.Context, prompt string, fallback string) string {
	if c.completer == nil {
		return MissingAPIKeyAnswer
	}
	answer, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "coach completion failed",
			errors.SlogError(errors.Wrap(err, "complete prompt")))
		return fallback
	}
	if strings.TrimSpace(answer) == "" {
		return fallback
	}
	return answer
}

type loggedWorkout struct {
	Date      string   `json:"date"`
	Exercises []string `json:"exercises"`
}

// summarizeLogs lists the completed set count of every exercise that has completed sets.
func summarizeLogs(logs []workout.WorkoutLog, program workout.Program) []loggedWorkout {
	summary := make([]loggedWorkout, 0, len(logs))
	for _, l := range logs {
		ids := slices.Sorted(maps.Keys(l.Exercises))
		entry := loggedWorkout{Date: l.Date, Exercises: []string{}}
		for _, id := range ids {
			n := 0
			for _, s := range l.Exercises[id] {
				if s.Completed {
					n++
				}
			}
			if n > 0 {
				entry.Exercises = append(entry.Exercises, fmt.Sprintf("%s: %d sets", program.ExerciseLabel(id), n))
			}
		}
		summary = append(summary, entry)
	}
	return summary
}

// RecentLogs returns the latest n logs, newest first.
func RecentLogs(logs []workout.WorkoutLog, n int) []workout.WorkoutLog {
	sorted := slices.Clone(logs)
	workout.SortByDateDesc(sorted)
	return sorted[:min(n, len(sorted))]
}

type contextDay struct {
	Name      string            `json:"name"`
	IsRestDay bool              `json:"isRestDay,omitempty"`
	Exercises []contextExercise `json:"exercises,omitempty"`
}

type contextExercise struct {
	Name         string `json:"name"`
	TargetSets   string `json:"targetSets"`
	TargetWeight string `json:"targetWeight"`
}

type contextWorkout struct {
	Date        string   `json:"date"`
	Day         string   `json:"day"`
	TotalVolume float64  `json:"totalVolume"`
	TotalSets   int      `json:"totalSets"`
	PRs         []string `json:"prs,omitempty"`
}

// BuildContext describes the program and the latest AnalysisWindow logs as JSON for Ask.
func BuildContext(program workout.Program, logs []workout.WorkoutLog) (string, error) {
	var c struct {
		Program        []contextDay     `json:"program"`
		RecentWorkouts []contextWorkout `json:"recentWorkouts"`
	}
	c.Program = make([]contextDay, 0, len(program))
	for _, day := range program {
		d := contextDay{Name: day.Name, IsRestDay: day.IsRestDay, Exercises: nil}
		for _, ex := range day.Exercises {
			d.Exercises = append(d.Exercises, contextExercise{
				Name:         ex.Name,
				TargetSets:   ex.TargetSets,
				TargetWeight: ex.TargetWeight,
			})
		}
		c.Program = append(c.Program, d)
	}
	c.RecentWorkouts = []contextWorkout{}
	for _, l := range RecentLogs(logs, AnalysisWindow) {
		w := contextWorkout{
			Date:        l.Date,
			Day:         program.DayLabel(l.DayID),
			TotalVolume: l.TotalVolume,
			TotalSets:   l.TotalSets,
			PRs:         nil,
		}
		for _, id := range l.PRs {
			w.PRs = append(w.PRs, program.ExerciseLabel(id))
		}
		c.RecentWorkouts = append(c.RecentWorkouts, w)
	}

	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal coach context: %w", err)
	}
	return string(b), nil
}
