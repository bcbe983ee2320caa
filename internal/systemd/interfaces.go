// Package systemd provides systemd unit management operations for nodectl.
package systemd

import (
	"context"

	"github.com/coreos/go-systemd/v22/dbus"
)

// Connection wraps systemd D-Bus operations for testability.
type Connection interface {
	// GetUnitProperty gets a property of a systemd unit.
	GetUnitProperty(ctx context.Context, unitName, propertyName string) (*dbus.Property, error)

	// GetUnitProperties gets all properties of a systemd unit.
	GetUnitProperties(ctx context.Context, unitName string) (map[string]interface{}, error)

	// StartUnit starts a systemd unit.
	StartUnit(ctx context.Context, unitName, mode string) (chan string, error)

	// StopUnit stops a systemd unit.
	StopUnit(ctx context.Context, unitName, mode string) (chan string, error)

	// RestartUnit restarts a systemd unit.
	RestartUnit(ctx context.Context, unitName, mode string) (chan string, error)

	// ResetFailedUnit resets the failed state of a unit.
	ResetFailedUnit(ctx context.Context, unitName string) error

	// EnableUnitFiles enables unit files so they start on boot.
	EnableUnitFiles(ctx context.Context, files []string) error

	// DisableUnitFiles disables unit files.
	DisableUnitFiles(ctx context.Context, files []string) error

	// Reload reloads systemd configuration (daemon-reload).
	Reload(ctx context.Context) error

	// Close closes the connection.
	Close() error
}

// ConnectionFactory creates Connection instances.
type ConnectionFactory interface {
	// NewConnection creates a new systemd connection based on configuration.
	NewConnection(ctx context.Context, userMode bool) (Connection, error)
}

// UnitManager manages the lifecycle of the units nodectl owns.
type UnitManager interface {
	// Start starts a unit.
	Start(ctx context.Context, unitName string) error

	// Stop stops a unit.
	Stop(ctx context.Context, unitName string) error

	// Restart restarts a unit.
	Restart(ctx context.Context, unitName string) error

	// Status returns the current status of a unit.
	Status(ctx context.Context, unitName string) (*UnitStatus, error)

	// ActiveState returns the unit's ActiveState property.
	ActiveState(ctx context.Context, unitName string) (string, error)

	// IsEnabled reports whether the unit file is enabled.
	IsEnabled(ctx context.Context, unitName string) (bool, error)

	// Enable enables the unit so it starts on boot.
	Enable(ctx context.Context, unitName string) error

	// Disable disables the unit.
	Disable(ctx context.Context, unitName string) error

	// ResetFailed resets the failed state of a unit.
	ResetFailed(ctx context.Context, unitName string) error

	// Reload reloads systemd configuration.
	Reload(ctx context.Context) error
}

// JournalReader retrieves log lines for a unit.
type JournalReader interface {
	// Tail returns the last n journal lines for the unit.
	Tail(ctx context.Context, unitName string, n int) (string, error)
}
