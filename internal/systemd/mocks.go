package systemd

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/v22/dbus"
)

// MockConnection implements Connection for testing.
type MockConnection struct {
	GetUnitPropertyFunc   func(ctx context.Context, unitName, propertyName string) (*dbus.Property, error)
	GetUnitPropertiesFunc func(ctx context.Context, unitName string) (map[string]interface{}, error)
	StartUnitFunc         func(ctx context.Context, unitName, mode string) (chan string, error)
	StopUnitFunc          func(ctx context.Context, unitName, mode string) (chan string, error)
	RestartUnitFunc       func(ctx context.Context, unitName, mode string) (chan string, error)
	ResetFailedUnitFunc   func(ctx context.Context, unitName string) error
	EnableUnitFilesFunc   func(ctx context.Context, files []string) error
	DisableUnitFilesFunc  func(ctx context.Context, files []string) error
	ReloadFunc            func(ctx context.Context) error
	CloseFunc             func() error
}

// GetUnitProperty gets a property of a systemd unit.
func (m *MockConnection) GetUnitProperty(ctx context.Context, unitName, propertyName string) (*dbus.Property, error) {
	if m.GetUnitPropertyFunc != nil {
		return m.GetUnitPropertyFunc(ctx, unitName, propertyName)
	}
	return nil, fmt.Errorf("mock not implemented")
}

// GetUnitProperties gets all properties of a systemd unit.
func (m *MockConnection) GetUnitProperties(ctx context.Context, unitName string) (map[string]interface{}, error) {
	if m.GetUnitPropertiesFunc != nil {
		return m.GetUnitPropertiesFunc(ctx, unitName)
	}
	return nil, fmt.Errorf("mock not implemented")
}

// StartUnit starts a systemd unit.
func (m *MockConnection) StartUnit(ctx context.Context, unitName, mode string) (chan string, error) {
	if m.StartUnitFunc != nil {
		return m.StartUnitFunc(ctx, unitName, mode)
	}
	return nil, fmt.Errorf("mock not implemented")
}

// StopUnit stops a systemd unit.
func (m *MockConnection) StopUnit(ctx context.Context, unitName, mode string) (chan string, error) {
	if m.StopUnitFunc != nil {
		return m.StopUnitFunc(ctx, unitName, mode)
	}
	return nil, fmt.Errorf("mock not implemented")
}

// RestartUnit restarts a systemd unit.
func (m *MockConnection) RestartUnit(ctx context.Context, unitName, mode string) (chan string, error) {
	if m.RestartUnitFunc != nil {
		return m.RestartUnitFunc(ctx, unitName, mode)
	}
	return nil, fmt.Errorf("mock not implemented")
}

// ResetFailedUnit resets the failed state of a unit.
func (m *MockConnection) ResetFailedUnit(ctx context.Context, unitName string) error {
	if m.ResetFailedUnitFunc != nil {
		return m.ResetFailedUnitFunc(ctx, unitName)
	}
	return fmt.Errorf("mock not implemented")
}

// EnableUnitFiles enables unit files.
func (m *MockConnection) EnableUnitFiles(ctx context.Context, files []string) error {
	if m.EnableUnitFilesFunc != nil {
		return m.EnableUnitFilesFunc(ctx, files)
	}
	return fmt.Errorf("mock not implemented")
}

// DisableUnitFiles disables unit files.
func (m *MockConnection) DisableUnitFiles(ctx context.Context, files []string) error {
	if m.DisableUnitFilesFunc != nil {
		return m.DisableUnitFilesFunc(ctx, files)
	}
	return fmt.Errorf("mock not implemented")
}

// Reload reloads systemd configuration.
func (m *MockConnection) Reload(ctx context.Context) error {
	if m.ReloadFunc != nil {
		return m.ReloadFunc(ctx)
	}
	return fmt.Errorf("mock not implemented")
}

// Close closes the connection.
func (m *MockConnection) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// MockConnectionFactory implements ConnectionFactory for testing.
type MockConnectionFactory struct {
	NewConnectionFunc func(ctx context.Context, userMode bool) (Connection, error)
	Connection        Connection
}

// NewConnection creates a new systemd connection based on configuration.
func (m *MockConnectionFactory) NewConnection(ctx context.Context, userMode bool) (Connection, error) {
	if m.NewConnectionFunc != nil {
		return m.NewConnectionFunc(ctx, userMode)
	}
	if m.Connection != nil {
		return m.Connection, nil
	}
	return nil, fmt.Errorf("mock not configured")
}

// MockUnitManager implements UnitManager for testing.
type MockUnitManager struct {
	StartFunc       func(ctx context.Context, unitName string) error
	StopFunc        func(ctx context.Context, unitName string) error
	RestartFunc     func(ctx context.Context, unitName string) error
	StatusFunc      func(ctx context.Context, unitName string) (*UnitStatus, error)
	ActiveStateFunc func(ctx context.Context, unitName string) (string, error)
	IsEnabledFunc   func(ctx context.Context, unitName string) (bool, error)
	EnableFunc      func(ctx context.Context, unitName string) error
	DisableFunc     func(ctx context.Context, unitName string) error
	ResetFailedFunc func(ctx context.Context, unitName string) error
	ReloadFunc      func(ctx context.Context) error

	Calls []string
}

func (m *MockUnitManager) record(op, unitName string) {
	if unitName == "" {
		m.Calls = append(m.Calls, op)
		return
	}
	m.Calls = append(m.Calls, op+" "+unitName)
}

// Start starts a unit.
func (m *MockUnitManager) Start(ctx context.Context, unitName string) error {
	m.record("start", unitName)
	if m.StartFunc != nil {
		return m.StartFunc(ctx, unitName)
	}
	return nil
}

// Stop stops a unit.
func (m *MockUnitManager) Stop(ctx context.Context, unitName string) error {
	m.record("stop", unitName)
	if m.StopFunc != nil {
		return m.StopFunc(ctx, unitName)
	}
	return nil
}

// Restart restarts a unit.
func (m *MockUnitManager) Restart(ctx context.Context, unitName string) error {
	m.record("restart", unitName)
	if m.RestartFunc != nil {
		return m.RestartFunc(ctx, unitName)
	}
	return nil
}

// Status returns the current status of a unit.
func (m *MockUnitManager) Status(ctx context.Context, unitName string) (*UnitStatus, error) {
	m.record("status", unitName)
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, unitName)
	}
	return &UnitStatus{Name: unitName}, nil
}

// ActiveState returns the unit's ActiveState property.
func (m *MockUnitManager) ActiveState(ctx context.Context, unitName string) (string, error) {
	m.record("active-state", unitName)
	if m.ActiveStateFunc != nil {
		return m.ActiveStateFunc(ctx, unitName)
	}
	return "inactive", nil
}

// IsEnabled reports whether the unit file is enabled.
func (m *MockUnitManager) IsEnabled(ctx context.Context, unitName string) (bool, error) {
	m.record("is-enabled", unitName)
	if m.IsEnabledFunc != nil {
		return m.IsEnabledFunc(ctx, unitName)
	}
	return false, nil
}

// Enable enables the unit.
func (m *MockUnitManager) Enable(ctx context.Context, unitName string) error {
	m.record("enable", unitName)
	if m.EnableFunc != nil {
		return m.EnableFunc(ctx, unitName)
	}
	return nil
}

// Disable disables the unit.
func (m *MockUnitManager) Disable(ctx context.Context, unitName string) error {
	m.record("disable", unitName)
	if m.DisableFunc != nil {
		return m.DisableFunc(ctx, unitName)
	}
	return nil
}

// ResetFailed resets the failed state of a unit.
func (m *MockUnitManager) ResetFailed(ctx context.Context, unitName string) error {
	m.record("reset-failed", unitName)
	if m.ResetFailedFunc != nil {
		return m.ResetFailedFunc(ctx, unitName)
	}
	return nil
}

// Reload reloads systemd configuration.
func (m *MockUnitManager) Reload(ctx context.Context) error {
	m.record("daemon-reload", "")
	if m.ReloadFunc != nil {
		return m.ReloadFunc(ctx)
	}
	return nil
}
