package systemd

import (
	"context"
	"fmt"
	"time"

	"github.com/trellisnet/nodectl/internal/config"
	"github.com/trellisnet/nodectl/internal/log"
)

// UnitStatus is a snapshot of a unit's runtime state.
type UnitStatus struct {
	Name        string
	State       string // ActiveState: active, inactive, failed, ...
	SubState    string // running, dead, ...
	LoadState   string // loaded, not-found, ...
	Description string
	Enabled     bool
	PID         int
	Since       string // RFC3339, empty when not active
	Error       string // failure detail when Result != success
}

// Manager implements UnitManager over a D-Bus connection factory.
type Manager struct {
	connectionFactory ConnectionFactory
	configProvider    config.Provider
	logger            log.Logger
}

// NewManager creates a unit manager with injected dependencies.
func NewManager(connectionFactory ConnectionFactory, configProvider config.Provider, logger log.Logger) *Manager {
	return &Manager{
		connectionFactory: connectionFactory,
		configProvider:    configProvider,
		logger:            logger,
	}
}

func (m *Manager) connect(ctx context.Context) (Connection, error) {
	return m.connectionFactory.NewConnection(ctx, m.configProvider.GetConfig().UserMode)
}

// runJob starts a systemd job through run and waits for its result.
func (m *Manager) runJob(ctx context.Context, op, unitName string, run func(Connection) (chan string, error)) error {
	conn, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	m.logger.Debug("Dispatching systemd job", "op", op, "unit", unitName)

	ch, err := run(conn)
	if err != nil {
		return NewError(op, unitName, err)
	}

	select {
	case result := <-ch:
		if result != "done" {
			return NewError(op, unitName, fmt.Errorf("job result %q", result))
		}
	case <-ctx.Done():
		return NewError(op, unitName, ctx.Err())
	}

	m.logger.Debug("Systemd job finished", "op", op, "unit", unitName)
	return nil
}

// Start starts a unit.
func (m *Manager) Start(ctx context.Context, unitName string) error {
	return m.runJob(ctx, "start", unitName, func(conn Connection) (chan string, error) {
		return conn.StartUnit(ctx, unitName, "replace")
	})
}

// Stop stops a unit.
func (m *Manager) Stop(ctx context.Context, unitName string) error {
	return m.runJob(ctx, "stop", unitName, func(conn Connection) (chan string, error) {
		return conn.StopUnit(ctx, unitName, "replace")
	})
}

// Restart restarts a unit.
func (m *Manager) Restart(ctx context.Context, unitName string) error {
	return m.runJob(ctx, "restart", unitName, func(conn Connection) (chan string, error) {
		return conn.RestartUnit(ctx, unitName, "replace")
	})
}

// ActiveState returns the unit's ActiveState property.
func (m *Manager) ActiveState(ctx context.Context, unitName string) (string, error) {
	conn, err := m.connect(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = conn.Close() }()

	prop, err := conn.GetUnitProperty(ctx, unitName, "ActiveState")
	if err != nil {
		return "", NewError("active-state", unitName, err)
	}

	state, ok := prop.Value.Value().(string)
	if !ok {
		return "", NewError("active-state", unitName, fmt.Errorf("unexpected property type %T", prop.Value.Value()))
	}
	return state, nil
}

// IsEnabled reports whether the unit file is enabled.
func (m *Manager) IsEnabled(ctx context.Context, unitName string) (bool, error) {
	conn, err := m.connect(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = conn.Close() }()

	prop, err := conn.GetUnitProperty(ctx, unitName, "UnitFileState")
	if err != nil {
		return false, NewError("is-enabled", unitName, err)
	}

	state, _ := prop.Value.Value().(string)
	return state == "enabled", nil
}

// Status returns the current status of a unit.
func (m *Manager) Status(ctx context.Context, unitName string) (*UnitStatus, error) {
	conn, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	props, err := conn.GetUnitProperties(ctx, unitName)
	if err != nil {
		return nil, NewError("status", unitName, err)
	}

	status := &UnitStatus{Name: unitName}

	if activeState, ok := props["ActiveState"].(string); ok {
		status.State = activeState
	}
	if subState, ok := props["SubState"].(string); ok {
		status.SubState = subState
	}
	if loadState, ok := props["LoadState"].(string); ok {
		status.LoadState = loadState
	}
	if desc, ok := props["Description"].(string); ok {
		status.Description = desc
	}
	if fileState, ok := props["UnitFileState"].(string); ok {
		status.Enabled = fileState == "enabled"
	}
	if mainPID, ok := props["MainPID"].(uint32); ok && mainPID > 0 {
		status.PID = int(mainPID)
	}
	if activeEnter, ok := props["ActiveEnterTimestamp"].(uint64); ok && activeEnter > 0 {
		// Microseconds since epoch.
		// #nosec G115 - timestamp comes from systemd, value is controlled.
		status.Since = time.Unix(0, int64(activeEnter)*1000).Format(time.RFC3339)
	}
	if result, ok := props["Result"].(string); ok && result != "success" {
		status.Error = fmt.Sprintf("Result: %s", result)
		if exitStatus, ok := props["ExecMainStatus"].(int32); ok && exitStatus != 0 {
			status.Error += fmt.Sprintf(", Exit Code: %d", exitStatus)
		}
	}

	return status, nil
}

// Enable enables the unit so it starts on boot.
func (m *Manager) Enable(ctx context.Context, unitName string) error {
	conn, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	m.logger.Debug("Enabling unit", "unit", unitName)
	if err := conn.EnableUnitFiles(ctx, []string{unitName}); err != nil {
		return NewError("enable", unitName, err)
	}
	return nil
}

// Disable disables the unit.
func (m *Manager) Disable(ctx context.Context, unitName string) error {
	conn, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	m.logger.Debug("Disabling unit", "unit", unitName)
	if err := conn.DisableUnitFiles(ctx, []string{unitName}); err != nil {
		return NewError("disable", unitName, err)
	}
	return nil
}

// ResetFailed resets the failed state of a unit.
func (m *Manager) ResetFailed(ctx context.Context, unitName string) error {
	conn, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if err := conn.ResetFailedUnit(ctx, unitName); err != nil {
		return NewError("reset-failed", unitName, err)
	}
	return nil
}

// Reload reloads systemd configuration (daemon-reload).
func (m *Manager) Reload(ctx context.Context) error {
	conn, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	m.logger.Debug("Reloading systemd daemon configuration")
	if err := conn.Reload(ctx); err != nil {
		return NewError("daemon-reload", "", err)
	}
	return nil
}
