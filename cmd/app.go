package cmd

import (
	"os"

	"github.com/trellisnet/nodectl/internal/client"
	"github.com/trellisnet/nodectl/internal/config"
	"github.com/trellisnet/nodectl/internal/execx"
	"github.com/trellisnet/nodectl/internal/installer"
	"github.com/trellisnet/nodectl/internal/log"
	"github.com/trellisnet/nodectl/internal/systemd"
	"github.com/trellisnet/nodectl/internal/validate"
)

// App holds the application dependencies for the command line interface.
type App struct {
	Logger         log.Logger
	Config         *config.Settings
	ConfigProvider config.Provider
	Runner         execx.Runner
	Validator      *validate.Validator
	UnitManager    systemd.UnitManager
	Journal        systemd.JournalReader
	Client         *client.Client
	Installer      *installer.Installer
}

// NewApp creates an App with all dependencies initialized from the current
// configuration.
func NewApp() *App {
	logger := log.GetLogger()

	provider := config.NewDefaultConfigProvider()
	provider.SetConfig(cfg)

	runner := execx.NewRealRunner()
	factory := systemd.NewConnectionFactory(logger)
	manager := systemd.NewManager(factory, provider, logger)
	journal := systemd.NewJournal(runner, provider, logger)
	cl := client.New(cfg.BinaryPath, runner, logger)

	return &App{
		Logger:         logger,
		Config:         cfg,
		ConfigProvider: provider,
		Runner:         runner,
		Validator:      validate.NewValidator(logger, runner),
		UnitManager:    manager,
		Journal:        journal,
		Client:         cl,
		Installer:      installer.New(provider, manager, cl, logger, os.Executable),
	}
}
