package main

import (
	"fmt"

	"github.com/myrjola/liftlog/internal/workout"
	"github.com/spf13/cobra"
)

func (app *application) programCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "program",
		Short: "Show and edit the training program",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the program rotation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			program, err := app.workoutService.Program(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, day := range program {
				if day.IsRestDay {
					_, _ = fmt.Fprintf(out, "%d. %s [%s] rest day\n", i, day.Name, day.ID)
					continue
				}
				_, _ = fmt.Fprintf(out, "%d. %s [%s] %d sets\n", i, day.Name, day.ID, workout.PlannedSetCount(day))
				for j, ex := range day.Exercises {
					_, _ = fmt.Fprintf(out, "   %d. %s [%s] %s @ %s\n", j, ex.Name, ex.ID, ex.TargetSets, ex.TargetWeight)
				}
			}
			return nil
		},
	}

	presets := &cobra.Command{
		Use:   "presets",
		Short: "List ready-made programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, p := range workout.Presets() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s, %d days)\n  %s\n",
					p.ID, p.Name, p.Level, p.DaysCount(), p.Description)
			}
			return nil
		},
	}

	apply := &cobra.Command{
		Use:   "apply PRESET",
		Short: "Replace the program with a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := app.workoutService.ApplyPreset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "program now has %d days\n", len(program))
			return nil
		},
	}

	newProgram := &cobra.Command{
		Use:   "new",
		Short: "Replace the program with a single empty day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			program, err := app.workoutService.NewProgram(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), program[0].ID)
			return nil
		},
	}

	var rest bool
	addDay := &cobra.Command{
		Use:   "add-day NAME",
		Short: "Append a day to the rotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := app.workoutService.AddDay(cmd.Context(), args[0], rest)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), day.ID)
			return nil
		},
	}
	addDay.Flags().BoolVar(&rest, "rest", false, "add a rest day")

	removeDay := &cobra.Command{
		Use:   "remove-day DAY",
		Short: "Remove a day from the rotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.workoutService.RemoveDay(cmd.Context(), args[0])
		},
	}

	renameDay := &cobra.Command{
		Use:   "rename-day DAY NAME",
		Short: "Rename a day",
		Args:  cobra.ExactArgs(2), //nolint:mnd // day and name.
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.workoutService.RenameDay(cmd.Context(), args[0], args[1])
		},
	}

	moveDay := &cobra.Command{
		Use:   "move-day FROM TO",
		Short: "Move a day to another position of the rotation",
		Args:  cobra.ExactArgs(2), //nolint:mnd // from and to.
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			to, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return app.workoutService.MoveDay(cmd.Context(), from, to)
		},
	}

	var targetSets, targetWeight string
	addExercise := &cobra.Command{
		Use:   "add-exercise DAY NAME",
		Short: "Append an exercise to a day",
		Args:  cobra.ExactArgs(2), //nolint:mnd // day and name.
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := app.workoutService.AddExercise(cmd.Context(), args[0], workout.ExerciseDefinition{
				ID:           "",
				Name:         args[1],
				TargetSets:   targetSets,
				TargetWeight: targetWeight,
				LastLog:      "",
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), ex.ID)
			return nil
		},
	}
	addExercise.Flags().StringVar(&targetSets, "sets", "3x10", "target sets such as 4x8-10")
	addExercise.Flags().StringVar(&targetWeight, "weight", "20 kg", "target weight such as 60 kg")

	removeExercise := &cobra.Command{
		Use:   "remove-exercise DAY EXERCISE",
		Short: "Remove an exercise from a day",
		Args:  cobra.ExactArgs(2), //nolint:mnd // day and exercise.
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.workoutService.RemoveExercise(cmd.Context(), args[0], args[1])
		},
	}

	setTarget := &cobra.Command{
		Use:   "set-target DAY EXERCISE TARGET",
		Short: "Change the target sets of an exercise",
		Args:  cobra.ExactArgs(3), //nolint:mnd // day, exercise and target.
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.workoutService.UpdateExerciseTarget(cmd.Context(), args[0], args[1], args[2])
		},
	}

	moveExercise := &cobra.Command{
		Use:   "move-exercise DAY FROM TO",
		Short: "Reorder the exercises of a day",
		Args:  cobra.ExactArgs(3), //nolint:mnd // day, from and to.
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			to, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			return app.workoutService.MoveExercise(cmd.Context(), args[0], from, to)
		},
	}

	cmd.AddCommand(show, presets, apply, newProgram, addDay, removeDay, renameDay, moveDay,
		addExercise, removeExercise, setTarget, moveExercise)
	return cmd
}
