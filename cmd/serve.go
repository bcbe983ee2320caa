package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trellisnet/nodectl/internal/logserver"
)

// ServeLogServerCommand represents the serve-logserver command. The
// generated logserver unit runs this command in the foreground; systemd
// supervises it and restarts it on failure.
type ServeLogServerCommand struct{}

// GetCobraCommand returns the cobra command for running the logserver.
func (c *ServeLogServerCommand) GetCobraCommand() *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:   "serve-logserver",
		Short: "Run the HTTP status logserver in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := NewApp()
			if port <= 0 {
				port = app.Config.LogServerPort
			}

			srv := logserver.New(
				port,
				app.Installer.ServiceUnit(),
				app.Config.LogLines,
				app.Client,
				app.UnitManager,
				app.Journal,
				app.Logger,
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	serveCmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config)")

	return serveCmd
}
