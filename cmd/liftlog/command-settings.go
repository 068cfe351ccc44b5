package main

import (
	"fmt"

	"github.com/myrjola/liftlog/internal/ptr"
	"github.com/myrjola/liftlog/internal/workout"
	"github.com/spf13/cobra"
)

func (app *application) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change rest timers and membership dates",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.workoutService.Settings(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "rest between sets: %ds\n", ptr.ValueOr(s.RestBetweenSets, workout.DefaultRestBetweenSets))
			_, _ = fmt.Fprintf(out, "rest between exercises: %ds\n",
				ptr.ValueOr(s.RestBetweenExercises, workout.DefaultRestBetweenExercises))
			if s.MembershipStartDate != "" || s.MembershipEndDate != "" {
				_, _ = fmt.Fprintf(out, "membership: %s to %s\n", s.MembershipStartDate, s.MembershipEndDate)
			}
			return nil
		},
	}

	var (
		restSets      int
		restExercises int
		memberFrom    string
		memberTo      string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change the given settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := app.workoutService.Settings(ctx)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("rest-sets") {
				s.RestBetweenSets = ptr.Ref(restSets)
			}
			if flags.Changed("rest-exercises") {
				s.RestBetweenExercises = ptr.Ref(restExercises)
			}
			for _, date := range []struct {
				flag  string
				value string
				dst   *string
			}{{"membership-start", memberFrom, &s.MembershipStartDate}, {"membership-end", memberTo, &s.MembershipEndDate}} {
				if !flags.Changed(date.flag) {
					continue
				}
				if date.value != "" {
					if _, err = workout.ParseDate(date.value); err != nil {
						return fmt.Errorf("--%s: %w", date.flag, err)
					}
				}
				*date.dst = date.value
			}
			return app.workoutService.SaveSettings(ctx, s)
		},
	}
	set.Flags().IntVar(&restSets, "rest-sets", workout.DefaultRestBetweenSets, "rest between sets in seconds")
	set.Flags().IntVar(&restExercises, "rest-exercises", workout.DefaultRestBetweenExercises,
		"rest between exercises in seconds")
	set.Flags().StringVar(&memberFrom, "membership-start", "", "membership start date as YYYY-MM-DD")
	set.Flags().StringVar(&memberTo, "membership-end", "", "membership end date as YYYY-MM-DD")

	cmd.AddCommand(show, set)
	return cmd
}
