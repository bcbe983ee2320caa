package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// StartCommand represents the start command.
type StartCommand struct{}

// GetCobraCommand returns the cobra command for starting the service.
func (c *StartCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the participation client service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewApp()
			unit := app.Installer.ServiceUnit()
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

// StopCommand represents the stop command.
type StopCommand struct{}

// GetCobraCommand returns the cobra command for stopping the service.
func (c *StopCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the participation client service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewApp()
			unit := app.Installer.ServiceUnit()
			if err := app.UnitManager.Stop(cmd.Context(), unit); err != nil {
				return err
			}
			fmt.Printf("Stopped %s\n", unit)
			return nil
		},
	}
}

// RestartCommand represents the restart command.
type RestartCommand struct{}

// GetCobraCommand returns the cobra command for restarting the service.
func (c *RestartCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the participation client service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewApp()
			unit := app.Installer.ServiceUnit()
			if err := app.Installer.RequireInstalled(unit); err != nil {
				return err
			}
			if err := app.UnitManager.Restart(cmd.Context(), unit); err != nil {
				return err
			}
			fmt.Printf("Restarted %s\n", unit)
			return nil
		},
	}
}
