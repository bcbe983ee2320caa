package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InstallLogServerCommand represents the install-logserver command.
type InstallLogServerCommand struct{}

// GetCobraCommand returns the cobra command for installing the logserver.
func (c *InstallLogServerCommand) GetCobraCommand() *cobra.Command {
	var port int

	installCmd := &cobra.Command{
		Use:   "install-logserver",
		Short: "Install the HTTP status logserver as a systemd service",
		Args:  cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return NewApp().Validator.SystemRequirements()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewApp()
			return app.Installer.InstallLogServer(cmd.Context(), port)
		},
	}

	installCmd.Flags().IntVar(&port, "port", 0, "Port the logserver listens on (default from config)")

	return installCmd
}

// StartLogServerCommand represents the start-logserver command.
type StartLogServerCommand struct{}

// GetCobraCommand returns the cobra command for starting the logserver.
func (c *StartLogServerCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start-logserver",
		Short: "Start the logserver service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewApp()
			unit := app.Installer.LogServerUnit()
			if err := app.Installer.RequireInstalled(unit); err != nil {
				return err
			}
			if err := app.UnitManager.Start(cmd.Context(), unit); err != nil {
				return err
			}
			fmt.Printf("Started %s\n", unit)
			return nil
		},
	}
}

// StopLogServerCommand represents the stop-logserver command.
type StopLogServerCommand struct{}

// GetCobraCommand returns the cobra command for stopping the logserver.
func (c *StopLogServerCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop-logserver",
		Short: "Stop the logserver service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewApp()
			unit := app.Installer.LogServerUnit()
			if err := app.UnitManager.Stop(cmd.Context(), unit); err != nil {
				return err
			}
			fmt.Printf("Stopped %s\n", unit)
			return nil
		},
	}
}

// LogsLogServerCommand represents the logs-logserver command.
type LogsLogServerCommand struct{}

// GetCobraCommand returns the cobra command for showing logserver logs.
func (c *LogsLogServerCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logs-logserver [lines]",
		Short: "Show the last journal lines of the logserver service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()
			return runLogs(cmd, args, app, app.Installer.LogServerUnit())
		},
	}
}

// RemoveLogServerCommand represents the remove-logserver command.
type RemoveLogServerCommand struct{}

// GetCobraCommand returns the cobra command for removing the logserver.
func (c *RemoveLogServerCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-logserver",
		Short: "Remove the logserver service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewApp()
			return app.Installer.Remove(cmd.Context(), app.Installer.LogServerUnit())
		},
	}
}
