package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// LogsCommand represents the logs command.
type LogsCommand struct{}

// GetCobraCommand returns the cobra command for showing service logs.
func (c *LogsCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logs [lines]",
		Short: "Show the last journal lines of the participation client service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()
			return runLogs(cmd, args, app, app.Installer.ServiceUnit())
		},
	}
}

// runLogs parses the optional line-count argument and prints the journal
// tail for unit. Shared with logs-logserver.
func runLogs(cmd *cobra.Command, args []string, app *App, unit string) error {
	lines := app.Config.LogLines
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid line count %q, expected a positive integer", args[0])
		}
		lines = n
	}

	output, err := app.Journal.Tail(cmd.Context(), unit, lines)
	if err != nil {
		return err
	}

	fmt.Println(output)
	return nil
}
