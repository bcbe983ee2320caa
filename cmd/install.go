package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trellisnet/nodectl/internal/installer"
)

// InstallCommand represents the install command.
type InstallCommand struct{}

// GetCobraCommand returns the cobra command for installing the participation
// client service.
func (c *InstallCommand) GetCobraCommand() *cobra.Command {
	var opts installer.InstallOptions

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install the participation client as a systemd service",
		Long: `Install the participation client as a systemd service.

Exactly one of --node-id or --wallet must be provided. With --wallet the
client registers the wallet once during install; with --node-id the node id
is passed to the client on every start.`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			app := NewApp()
			if err := app.Validator.SystemRequirements(); err != nil {
				return err
			}
			return app.Validator.ClientBinary(app.Config.BinaryPath)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewApp()
			return app.Installer.InstallClient(cmd.Context(), opts)
		},
	}

	installCmd.Flags().StringVar(&opts.NodeID, "node-id", "", "Node id to participate with (decimal digits)")
	installCmd.Flags().StringVar(&opts.Wallet, "wallet", "", "Wallet address to participate with (0x + 40 hex characters)")
	installCmd.Flags().StringVar(&opts.MaxDifficulty, "max-difficulty", "", "Maximum difficulty level (not supported yet)")

	return installCmd
}
