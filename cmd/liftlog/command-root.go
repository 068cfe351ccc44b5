package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/myrjola/liftlog/internal/logging"
	"github.com/myrjola/liftlog/internal/workout"
	"github.com/spf13/cobra"
)

func (app *application) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "liftlog",
		Short: "Track a rotating training program, log workouts and review progress",
		// Errors are logged by main with their annotations.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())))
		},
	}
	root.AddCommand(
		app.programCommand(),
		app.workoutCommand(),
		app.historyCommand(),
		app.statsCommand(),
		app.planCommand(),
		app.settingsCommand(),
		app.backupCommand(),
		app.coachCommand(),
	)
	return root
}

// parseSet parses "exercise=REPSxWEIGHT", for example "bp-def=8x62.5".
func parseSet(text string, completed bool) (string, workout.ExerciseSet, error) {
	exerciseID, performance, ok := strings.Cut(text, "=")
	if !ok || exerciseID == "" {
		return "", workout.ExerciseSet{}, fmt.Errorf("set %q: want exercise=REPSxWEIGHT", text)
	}
	repsText, weightText, ok := strings.Cut(strings.ToLower(performance), "x")
	if !ok {
		return "", workout.ExerciseSet{}, fmt.Errorf("set %q: want exercise=REPSxWEIGHT", text)
	}
	reps, err := strconv.Atoi(strings.TrimSpace(repsText))
	if err != nil || reps < 0 {
		return "", workout.ExerciseSet{}, fmt.Errorf("set %q: invalid reps", text)
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(weightText), 64)
	if err != nil || weight < 0 {
		return "", workout.ExerciseSet{}, fmt.Errorf("set %q: invalid weight", text)
	}
	return exerciseID, workout.ExerciseSet{Reps: reps, Weight: weight, Completed: completed, RPE: nil}, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("position %q: %w", s, err)
	}
	return i, nil
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func printSets(w io.Writer, label string, sets []workout.ExerciseSet) {
	parts := make([]string, 0, len(sets))
	for _, s := range sets {
		part := fmt.Sprintf("%dx%s", s.Reps, formatWeight(s.Weight))
		if !s.Completed {
			part += " (pending)"
		}
		parts = append(parts, part)
	}
	_, _ = fmt.Fprintf(w, "  %s: %s\n", label, strings.Join(parts, ", "))
}

// confirm asks question on the command's stdin unless assumeYes is set. Only y or yes accepts; a closed stdin
// declines.
func confirm(cmd *cobra.Command, question string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
