package cmd

import (
	"context"
	"strconv"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/trellisnet/nodectl/internal/systemd"
)

// StatusCommand represents the status command.
type StatusCommand struct{}

// GetCobraCommand returns the cobra command for showing unit status.
func (c *StatusCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the status of the participation client and logserver units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewApp()
			return c.run(cmd.Context(), app)
		},
	}
}

func (c *StatusCommand) run(ctx context.Context, app *App) error {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	tbl := table.New("Unit", "State", "Sub-State", "Enabled", "PID", "Since")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for _, unit := range []string{app.Installer.ServiceUnit(), app.Installer.LogServerUnit()} {
		tbl.AddRow(c.statusRow(ctx, app, unit)...)
	}

	tbl.Print()
	return nil
}

func (c *StatusCommand) statusRow(ctx context.Context, app *App, unit string) []interface{} {
	if !app.Installer.IsInstalled(unit) {
		return []interface{}{unit, "not-installed", "-", "-", "-", "-"}
	}

	status, err := app.UnitManager.Status(ctx, unit)
	if err != nil {
		app.Logger.Debug("Error getting unit status", "unit", unit, "error", err)
		return []interface{}{unit, "unknown", "-", "-", "-", "-"}
	}

	return []interface{}{
		unit,
		status.State,
		status.SubState,
		strconv.FormatBool(status.Enabled),
		pidString(status),
		sinceString(status),
	}
}

func pidString(status *systemd.UnitStatus) string {
	if status.PID == 0 {
		return "-"
	}
	return strconv.Itoa(status.PID)
}

func sinceString(status *systemd.UnitStatus) string {
	if status.Since == "" {
		return "-"
	}
	return status.Since
}
