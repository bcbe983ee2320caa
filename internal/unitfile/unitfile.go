// Package unitfile generates the systemd unit files nodectl owns.
package unitfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/ini.v1"
)

// Spec describes a service unit to generate. Callers are expected to have
// validated the inputs already; Render only assembles the file.
type Spec struct {
	Description      string
	ExecStart        string
	User             string // empty for user-scope units
	WorkingDirectory string
	WantedBy         string // defaults to multi-user.target
}

// Restart policy shared by both generated units. Supervision is systemd's
// job; nodectl itself never retries.
const (
	restartPolicy = "always"
	restartSec    = "5"
)

func init() {
	// Emit Key=value without padding, matching conventional unit files.
	ini.PrettyFormat = false
}

// Render produces the unit file content for spec.
func Render(spec Spec) (string, error) {
	file := ini.Empty()

	unit, err := file.NewSection("Unit")
	if err != nil {
		return "", fmt.Errorf("failed to create Unit section: %w", err)
	}
	_, _ = unit.NewKey("Description", spec.Description)
	_, _ = unit.NewKey("After", "network-online.target")
	_, _ = unit.NewKey("Wants", "network-online.target")

	service, err := file.NewSection("Service")
	if err != nil {
		return "", fmt.Errorf("failed to create Service section: %w", err)
	}
	_, _ = service.NewKey("Type", "simple")
	_, _ = service.NewKey("ExecStart", spec.ExecStart)
	if spec.User != "" {
		_, _ = service.NewKey("User", spec.User)
	}
	if spec.WorkingDirectory != "" {
		_, _ = service.NewKey("WorkingDirectory", spec.WorkingDirectory)
	}
	_, _ = service.NewKey("Restart", restartPolicy)
	_, _ = service.NewKey("RestartSec", restartSec)
	_, _ = service.NewKey("NoNewPrivileges", "true")
	_, _ = service.NewKey("PrivateTmp", "true")
	_, _ = service.NewKey("ProtectSystem", "strict")
	_, _ = service.NewKey("ProtectHome", "true")
	if spec.WorkingDirectory != "" {
		_, _ = service.NewKey("ReadWritePaths", spec.WorkingDirectory)
	}

	install, err := file.NewSection("Install")
	if err != nil {
		return "", fmt.Errorf("failed to create Install section: %w", err)
	}
	wantedBy := spec.WantedBy
	if wantedBy == "" {
		wantedBy = "multi-user.target"
	}
	_, _ = install.NewKey("WantedBy", wantedBy)

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("failed to serialize unit file: %w", err)
	}
	return buf.String(), nil
}

// WriteFile writes unit content to path atomically, creating the parent
// directory if needed.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create unit directory: %w", err)
	}
	if err := renameio.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write unit file %s: %w", path, err)
	}
	return nil
}

// Remove deletes the unit file at path. Returns os.ErrNotExist (wrapped)
// when the file is absent so callers can downgrade it to a warning.
func Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove unit file %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a unit file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
