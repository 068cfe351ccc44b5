package main

import (
	"fmt"
	"strings"

	"github.com/myrjola/liftlog/internal/coach"
	"github.com/spf13/cobra"
)

func (app *application) coachCommand() *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Ask the training coach",
	}
	cmd.PersistentFlags().BoolVar(&asHTML, "html", false, "render the answer as HTML")

	ask := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask a question about your training",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			program, err := app.workoutService.Program(ctx)
			if err != nil {
				return err
			}
			logs, err := app.workoutService.Logs(ctx)
			if err != nil {
				return err
			}
			trainingContext, err := coach.BuildContext(program, logs)
			if err != nil {
				return err
			}
			return app.printAnswer(cmd, app.coach.Ask(ctx, strings.Join(args, " "), trainingContext), asHTML)
		},
	}

	analyze := &cobra.Command{
		Use:   "analyze",
		Short: "Review the latest workouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			program, err := app.workoutService.Program(ctx)
			if err != nil {
				return err
			}
			logs, err := app.workoutService.Logs(ctx)
			if err != nil {
				return err
			}
			answer := app.coach.Analyze(ctx, coach.RecentLogs(logs, coach.AnalysisWindow), program)
			return app.printAnswer(cmd, answer, asHTML)
		},
	}

	cmd.AddCommand(ask, analyze)
	return cmd
}

func (app *application) printAnswer(cmd *cobra.Command, answer string, asHTML bool) error {
	if !asHTML {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	}
	html, err := coach.RenderHTML(answer)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), html)
	return nil
}
