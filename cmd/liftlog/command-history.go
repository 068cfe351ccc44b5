package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/myrjola/liftlog/internal/ptr"
	"github.com/myrjola/liftlog/internal/workout"
	"github.com/spf13/cobra"
)

func (app *application) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and edit logged workouts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print logged workouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logs, err := app.workoutService.Logs(ctx)
			if err != nil {
				return err
			}
			program, err := app.workoutService.Program(ctx)
			if err != nil {
				return err
			}
			workout.SortByDateDesc(logs)
			out := cmd.OutOrStdout()
			for _, l := range logs {
				var startTime string
				if l.StartTime != nil {
					startTime = fmt.Sprintf(" start=%d", *l.StartTime)
				}
				duration := time.Duration(ptr.ValueOr(l.Duration, 0)) * time.Second
				_, _ = fmt.Fprintf(out, "%s %s: %d sets, volume %s, %s%s\n",
					l.Date, program.DayLabel(l.DayID), l.TotalSets, formatWeight(l.TotalVolume), duration, startTime)
				if len(l.PRs) > 0 {
					labels := make([]string, 0, len(l.PRs))
					for _, exerciseID := range l.PRs {
						labels = append(labels, program.ExerciseLabel(exerciseID))
					}
					_, _ = fmt.Fprintf(out, "  records: %s\n", strings.Join(labels, ", "))
				}
			}
			return nil
		},
	}

	var (
		startTime int64
		date      string
		dayID     string
		duration  int64
	)
	deleteLog := &cobra.Command{
		Use:   "delete",
		Short: "Delete a logged workout",
		Long: "Delete a logged workout by --start-time, or by --date, --day and --duration for workouts logged " +
			"without a start time.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := workout.WorkoutLog{Date: date, DayID: dayID, Exercises: nil}
			if cmd.Flags().Changed("start-time") {
				target.StartTime = &startTime
			}
			if cmd.Flags().Changed("duration") {
				target.Duration = &duration
			}
			remaining, err := app.workoutService.DeleteLog(cmd.Context(), target)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d workouts remain\n", len(remaining))
			return nil
		},
	}
	deleteLog.Flags().Int64Var(&startTime, "start-time", 0, "start time in epoch milliseconds")
	deleteLog.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD")
	deleteLog.Flags().StringVar(&dayID, "day", "", "day id")
	deleteLog.Flags().Int64Var(&duration, "duration", 0, "duration in seconds")

	progress := &cobra.Command{
		Use:   "progress EXERCISE",
		Short: "Print the best weight and volume of an exercise per workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := app.workoutService.Logs(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range workout.ExerciseProgress(logs, args[0]) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s max %s volume %s\n",
					p.Date, formatWeight(p.MaxWeight), formatWeight(p.Volume))
			}
			return nil
		},
	}

	cmd.AddCommand(list, deleteLog, progress)
	return cmd
}
