package main

import (
	"fmt"
	"slices"

	"github.com/myrjola/liftlog/internal/workout"
	"github.com/spf13/cobra"
)

func (app *application) planCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Schedule program days on calendar dates",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the planned dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			plan, err := app.workoutService.Plan(ctx)
			if err != nil {
				return err
			}
			program, err := app.workoutService.Program(ctx)
			if err != nil {
				return err
			}
			dates := make([]string, 0, len(plan))
			for date := range plan {
				dates = append(dates, date)
			}
			slices.Sort(dates)
			for _, date := range dates {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", date, program.DayLabel(plan[date]))
			}
			return nil
		},
	}

	var (
		start     string
		days      int
		assumeYes bool
	)
	autofill := &cobra.Command{
		Use:   "autofill",
		Short: "Plan the rotation on consecutive dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			from := app.now()
			if start != "" {
				var err error
				if from, err = workout.ParseDate(start); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("days") {
				days = app.cfg.PlanHorizonDays
			}
			question := fmt.Sprintf("Replace the plan of %d days from %s?", days, workout.FormatDate(from))
			if !confirm(cmd, question, assumeYes) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "plan left unchanged")
				return nil
			}
			plan, err := app.workoutService.AutoFill(cmd.Context(), from, days)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d dates planned\n", len(plan))
			return nil
		},
	}
	autofill.Flags().StringVar(&start, "start", "", "first date as YYYY-MM-DD, today by default")
	autofill.Flags().IntVar(&days, "days", workout.DefaultPlanHorizonDays, "number of days to plan")
	autofill.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	clearPlan := &cobra.Command{
		Use:   "clear",
		Short: "Remove every planned date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirm(cmd, "Remove every planned date?", assumeYes) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "plan left unchanged")
				return nil
			}
			return app.workoutService.ClearPlan(cmd.Context())
		},
	}
	clearPlan.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	assign := &cobra.Command{
		Use:   "assign DATE DAY",
		Short: "Plan a day on a date",
		Args:  cobra.ExactArgs(2), //nolint:mnd // date and day.
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := workout.ParseDate(args[0])
			if err != nil {
				return err
			}
			return app.workoutService.Assign(cmd.Context(), date, args[1])
		},
	}

	unassign := &cobra.Command{
		Use:   "unassign DATE",
		Short: "Remove the plan of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := workout.ParseDate(args[0])
			if err != nil {
				return err
			}
			return app.workoutService.Unassign(cmd.Context(), date)
		},
	}

	cmd.AddCommand(show, autofill, clearPlan, assign, unassign)
	return cmd
}
