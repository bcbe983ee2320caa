// Package cmd provides the command line interface for nodectl.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trellisnet/nodectl/internal/config"
	"github.com/trellisnet/nodectl/internal/log"
)

// RootCommand represents the root command for the nodectl CLI.
type RootCommand struct{}

var (
	cfg            *config.Settings
	userMode       bool
	configFilePath string
	verbose        bool
)

// GetCobraCommand returns the cobra root command for the nodectl CLI.
func (c *RootCommand) GetCobraCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nodectl",
		Short: "nodectl installs and controls a systemd-managed blockchain participation client.",
		Long: `nodectl installs and controls a systemd-managed blockchain participation client.
It generates hardened systemd unit files for the client and a companion HTTP
status logserver, and maps lifecycle commands onto systemd operations.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if configFilePath != "" {
				config.SetConfigFilePath(configFilePath)
			}
			cfg = config.InitConfig()
			log.Init(verbose)

			if verbose {
				cfg.Verbose = true
			}
			if userMode {
				config.ApplyUserMode(cfg)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&userMode, "user", "u", false, "Manage units in the systemd user scope")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", "", "Path to the configuration file")

	rootCmd.AddCommand(
		(&InstallCommand{}).GetCobraCommand(),
		(&StartCommand{}).GetCobraCommand(),
		(&StopCommand{}).GetCobraCommand(),
		(&RestartCommand{}).GetCobraCommand(),
		(&StatusCommand{}).GetCobraCommand(),
		(&LogsCommand{}).GetCobraCommand(),
		(&RemoveCommand{}).GetCobraCommand(),
		(&InstallLogServerCommand{}).GetCobraCommand(),
		(&StartLogServerCommand{}).GetCobraCommand(),
		(&StopLogServerCommand{}).GetCobraCommand(),
		(&LogsLogServerCommand{}).GetCobraCommand(),
		(&RemoveLogServerCommand{}).GetCobraCommand(),
		(&ServeLogServerCommand{}).GetCobraCommand(),
		(&VersionCommand{}).GetCobraCommand(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return (&RootCommand{}).GetCobraCommand().Execute()
}
