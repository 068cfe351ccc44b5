package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func (app *application) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Move data between devices as a single line of text",
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Print the logs, program, plan and settings as backup text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := app.workoutService.Export(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	importBackup := &cobra.Command{
		Use:   "import TEXT",
		Short: "Restore backup text, use - to read it from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			if text == "-" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(raw)
			}
			if err := app.workoutService.Import(cmd.Context(), strings.TrimSpace(text)); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "backup restored")
			return nil
		},
	}

	cmd.AddCommand(export, importBackup)
	return cmd
}
