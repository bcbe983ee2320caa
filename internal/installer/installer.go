// Package installer orchestrates installation and removal of the units
// nodectl owns: the participation client service and the logserver.
package installer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/trellisnet/nodectl/internal/config"
	"github.com/trellisnet/nodectl/internal/log"
	"github.com/trellisnet/nodectl/internal/systemd"
	"github.com/trellisnet/nodectl/internal/unitfile"
	"github.com/trellisnet/nodectl/internal/validate"
)

// ParticipationClient is the subset of the client wrapper the installer needs.
type ParticipationClient interface {
	RegisterWallet(ctx context.Context, address string) error
	StartCommand(nodeID string) string
}

// InstallOptions holds the install command inputs.
type InstallOptions struct {
	NodeID        string
	Wallet        string
	MaxDifficulty string
}

// Installer writes unit files and drives systemd for install/remove flows.
type Installer struct {
	configProvider config.Provider
	manager        systemd.UnitManager
	client         ParticipationClient
	logger         log.Logger

	// executablePath resolves the nodectl binary for the logserver
	// ExecStart. Overridable for testing.
	executablePath func() (string, error)
}

// New creates an installer with injected dependencies.
func New(configProvider config.Provider, manager systemd.UnitManager, client ParticipationClient, logger log.Logger, executablePath func() (string, error)) *Installer {
	return &Installer{
		configProvider: configProvider,
		manager:        manager,
		client:         client,
		logger:         logger,
		executablePath: executablePath,
	}
}

// ServiceUnit returns the participation client unit name.
func (i *Installer) ServiceUnit() string {
	return i.configProvider.GetConfig().ServiceName + ".service"
}

// LogServerUnit returns the logserver unit name.
func (i *Installer) LogServerUnit() string {
	return i.configProvider.GetConfig().LogServerName + ".service"
}

// UnitPath returns the filesystem path of a unit file.
func (i *Installer) UnitPath(unitName string) string {
	return filepath.Join(i.configProvider.GetConfig().UnitDir, unitName)
}

// IsInstalled reports whether the unit file for unitName exists.
func (i *Installer) IsInstalled(unitName string) bool {
	return unitfile.Exists(i.UnitPath(unitName))
}

// RequireInstalled returns an error when the unit file is missing. Used as
// the precondition for start/restart.
func (i *Installer) RequireInstalled(unitName string) error {
	if !i.IsInstalled(unitName) {
		return fmt.Errorf("service %s is not installed, run install first", unitName)
	}
	return nil
}

// InstallClient validates opts, registers the wallet when given one, and
// installs the participation client unit. Stop/disable failures of a
// pre-existing instance are swallowed so reinstalls stay idempotent.
func (i *Installer) InstallClient(ctx context.Context, opts InstallOptions) error {
	if (opts.NodeID == "") == (opts.Wallet == "") {
		return fmt.Errorf("exactly one of --node-id or --wallet must be provided")
	}

	if opts.NodeID != "" {
		if err := validate.NodeID(opts.NodeID); err != nil {
			return err
		}
	}
	if opts.Wallet != "" {
		if err := validate.WalletAddress(opts.Wallet); err != nil {
			return err
		}
	}
	if opts.MaxDifficulty != "" {
		i.logger.Warn("--max-difficulty is not supported yet and will be ignored", "value", opts.MaxDifficulty)
	}

	cfg := i.configProvider.GetConfig()
	unitName := i.ServiceUnit()

	i.stopExisting(ctx, unitName)

	if opts.Wallet != "" {
		if err := i.client.RegisterWallet(ctx, opts.Wallet); err != nil {
			return err
		}
	}

	spec := unitfile.Spec{
		Description:      "Blockchain participation client (headless)",
		ExecStart:        i.client.StartCommand(opts.NodeID),
		WorkingDirectory: cfg.WorkingDir,
	}
	if !cfg.UserMode {
		spec.User = cfg.ServiceUser
	} else {
		spec.WantedBy = "default.target"
	}

	return i.installUnit(ctx, unitName, spec)
}

// InstallLogServer installs the logserver unit. Its ExecStart runs this
// nodectl binary in serve-logserver mode.
func (i *Installer) InstallLogServer(ctx context.Context, port int) error {
	cfg := i.configProvider.GetConfig()
	if port <= 0 {
		port = cfg.LogServerPort
	}

	self, err := i.executablePath()
	if err != nil {
		return fmt.Errorf("failed to resolve nodectl binary path: %w", err)
	}

	unitName := i.LogServerUnit()
	i.stopExisting(ctx, unitName)

	spec := unitfile.Spec{
		Description:      "Status logserver for the blockchain participation client",
		ExecStart:        fmt.Sprintf("%s serve-logserver --port %d", self, port),
		WorkingDirectory: cfg.WorkingDir,
	}
	if !cfg.UserMode {
		spec.User = cfg.ServiceUser
	} else {
		spec.WantedBy = "default.target"
	}

	return i.installUnit(ctx, unitName, spec)
}

// Remove deletes a unit. A missing unit file warns instead of failing so
// remove is safe to re-run.
func (i *Installer) Remove(ctx context.Context, unitName string) error {
	path := i.UnitPath(unitName)
	if !unitfile.Exists(path) {
		i.logger.Warn("Unit file not found, nothing to remove", "unit", unitName, "path", path)
		return nil
	}

	i.stopExisting(ctx, unitName)

	if err := unitfile.Remove(path); err != nil {
		return err
	}

	if err := i.manager.Reload(ctx); err != nil {
		return err
	}

	i.logger.Info("Removed unit", "unit", unitName)
	return nil
}

// installUnit renders and writes the unit file, then reloads systemd and
// enables the unit.
func (i *Installer) installUnit(ctx context.Context, unitName string, spec unitfile.Spec) error {
	content, err := unitfile.Render(spec)
	if err != nil {
		return err
	}

	path := i.UnitPath(unitName)
	if err := unitfile.WriteFile(path, content); err != nil {
		return err
	}
	i.logger.Debug("Wrote unit file", "unit", unitName, "path", path)

	if err := i.manager.Reload(ctx); err != nil {
		return err
	}

	if err := i.manager.Enable(ctx, unitName); err != nil {
		return err
	}

	i.logger.Info("Installed unit", "unit", unitName)
	return nil
}

// stopExisting stops and disables a previous instance of the unit. Failures
// are logged and swallowed: the unit may never have been installed, and a
// reinstall must not abort here.
func (i *Installer) stopExisting(ctx context.Context, unitName string) {
	if !i.IsInstalled(unitName) {
		return
	}

	if err := i.manager.Stop(ctx, unitName); err != nil {
		i.logger.Warn("Could not stop existing unit, continuing", "unit", unitName, "error", err)
	}
	if err := i.manager.Disable(ctx, unitName); err != nil {
		i.logger.Warn("Could not disable existing unit, continuing", "unit", unitName, "error", err)
	}
}
