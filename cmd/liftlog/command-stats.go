package main

import (
	"fmt"
	"io"
	"time"

	"github.com/myrjola/liftlog/internal/workout"
	"github.com/spf13/cobra"
)

func (app *application) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Compare this month with the previous month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logs, err := app.workoutService.Logs(cmd.Context())
			if err != nil {
				return err
			}
			curr, prev := workout.MonthOverMonth(logs, app.now())
			out := cmd.OutOrStdout()
			printStat(out, "workouts", fmt.Sprint(curr.Count), float64(curr.Count), float64(prev.Count))
			printStat(out, "volume", formatWeight(curr.Volume), curr.Volume, prev.Volume)
			printStat(out, "time", (time.Duration(curr.Duration) * time.Second).String(),
				float64(curr.Duration), float64(prev.Duration))
			return nil
		},
	}
}

func printStat(w io.Writer, name, value string, curr, prev float64) {
	trend, ok := workout.Trend(curr, prev)
	if !ok {
		_, _ = fmt.Fprintf(w, "%s: %s\n", name, value)
		return
	}
	_, _ = fmt.Fprintf(w, "%s: %s (%+.0f%%)\n", name, value, trend)
}
