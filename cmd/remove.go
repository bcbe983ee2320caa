package cmd

import (
	"github.com/spf13/cobra"
)

// RemoveCommand represents the remove command.
type RemoveCommand struct{}

// GetCobraCommand returns the cobra command for removing the service.
func (c *RemoveCommand) GetCobraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the participation client service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewApp()
			return app.Installer.Remove(cmd.Context(), app.Installer.ServiceUnit())
		},
	}
}
