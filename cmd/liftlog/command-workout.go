package main

import (
	"fmt"
	"time"

	"github.com/myrjola/liftlog/internal/workout"
	"github.com/spf13/cobra"
)

func (app *application) workoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Run today's workout",
	}

	next := &cobra.Command{
		Use:   "next",
		Short: "Recommend the next day of the rotation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, ok, err := app.workoutService.NextWorkout(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "the program is empty")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n", day.Name, day.ID)
			return nil
		},
	}

	var setCount int
	show := &cobra.Command{
		Use:   "show DAY",
		Short: "Print the sets to do today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := app.workoutService.OpenWorkout(ctx, args[0])
			if err != nil {
				return err
			}
			logs, err := app.workoutService.Logs(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, w.Day.Name)
			if w.StartTime != nil {
				started := time.UnixMilli(*w.StartTime).UTC()
				_, _ = fmt.Fprintf(out, "started %s\n", started.Format(time.DateTime))
			}
			for _, ex := range w.Day.Exercises {
				sets, ok := w.Exercises[ex.ID]
				if !ok {
					sets = workout.InitialSets(ex, workout.HistoricalMax(logs, ex.ID))
				}
				if setCount > 0 {
					sets = workout.ResizeSets(sets, setCount)
				}
				printSets(out, ex.Name, sets)
			}
			return nil
		},
	}

	show.Flags().IntVar(&setCount, "sets", 0, "show this many sets per exercise instead of the target")

	start := &cobra.Command{
		Use:   "start DAY",
		Short: "Start the session timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime, err := app.workoutService.StartWorkout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), startTime)
			return nil
		},
	}

	var completedSets, pendingSets []string
	finish := &cobra.Command{
		Use:   "finish DAY",
		Short: "Log the workout and stop the session timer",
		Long: "Log the workout and stop the session timer.\n\n" +
			"Sets are given as exercise=REPSxWEIGHT. Exercises without sets keep what was logged earlier today.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := app.workoutService.OpenWorkout(ctx, args[0])
			if err != nil {
				return err
			}
			given := map[string][]workout.ExerciseSet{}
			for _, group := range []struct {
				texts     []string
				completed bool
			}{{completedSets, true}, {pendingSets, false}} {
				for _, text := range group.texts {
					exerciseID, set, parseErr := parseSet(text, group.completed)
					if parseErr != nil {
						return parseErr
					}
					given[exerciseID] = append(given[exerciseID], set)
				}
			}
			for exerciseID, sets := range given {
				w.Exercises[exerciseID] = sets
			}

			saved, err := app.workoutService.FinishWorkout(ctx, args[0], w.Exercises)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "logged %s: %d sets, volume %s, duration %s\n",
				saved.Date, saved.TotalSets, formatWeight(saved.TotalVolume),
				time.Duration(*saved.Duration)*time.Second)
			program, err := app.workoutService.Program(ctx)
			if err != nil {
				return err
			}
			for _, exerciseID := range saved.PRs {
				_, _ = fmt.Fprintf(out, "new record: %s\n", program.ExerciseLabel(exerciseID))
			}
			return nil
		},
	}
	finish.Flags().StringArrayVar(&completedSets, "set", nil, "completed set as exercise=REPSxWEIGHT")
	finish.Flags().StringArrayVar(&pendingSets, "pending", nil, "planned but not completed set as exercise=REPSxWEIGHT")

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Discard the session timer without logging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.workoutService.CancelWorkout(cmd.Context())
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Print the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, ok, err := app.workoutService.Sessions().Active(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active workout")
				return nil
			}
			elapsed := app.now().Sub(time.UnixMilli(session.StartTime)).Truncate(time.Second)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s running for %s\n", session.DayID, elapsed)
			return nil
		},
	}

	var exerciseFinished bool
	rest := &cobra.Command{
		Use:   "rest",
		Short: "Print the rest after a completed set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.workoutService.Settings(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), workout.RestDuration(settings, exerciseFinished))
			return nil
		},
	}
	rest.Flags().BoolVar(&exerciseFinished, "exercise-finished", false, "the set was the last of its exercise")

	cmd.AddCommand(next, show, start, finish, cancel, status, rest)
	return cmd
}
