// Package validate provides input and system requirements validation for nodectl.
package validate

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/trellisnet/nodectl/internal/execx"
	"github.com/trellisnet/nodectl/internal/log"
)

var (
	// walletPattern matches a 0x-prefixed 40 character hex wallet address.
	walletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

	// nodeIDPattern matches one or more decimal digits.
	nodeIDPattern = regexp.MustCompile(`^[0-9]+$`)
)

// WalletAddress checks that addr is a 0x-prefixed 40 character hex string.
func WalletAddress(addr string) error {
	if !walletPattern.MatchString(addr) {
		return fmt.Errorf("invalid wallet address %q, expected format: 0x followed by 40 hexadecimal characters", addr)
	}
	return nil
}

// NodeID checks that id is a string of one or more decimal digits.
func NodeID(id string) error {
	if !nodeIDPattern.MatchString(id) {
		return fmt.Errorf("invalid node id %q, expected one or more decimal digits", id)
	}
	return nil
}

// Validator provides system requirements validation with dependency injection.
type Validator struct {
	logger     log.Logger
	runner     execx.Runner
	osGetter   func() string                     // defaults to runtime.GOOS
	statGetter func(string) (os.FileInfo, error) // defaults to os.Stat
}

// NewValidator creates a new Validator with the provided logger and command runner.
func NewValidator(logger log.Logger, runner execx.Runner) *Validator {
	return &Validator{
		logger:     logger,
		runner:     runner,
		osGetter:   func() string { return runtime.GOOS },
		statGetter: os.Stat,
	}
}

// NewValidatorWithDefaults creates a new Validator with default dependencies.
func NewValidatorWithDefaults(logger log.Logger) *Validator {
	return NewValidator(logger, execx.NewRealRunner())
}

// WithOSGetter sets a custom OS getter for testing.
func (v *Validator) WithOSGetter(osGetter func() string) *Validator {
	v.osGetter = osGetter
	return v
}

// WithStatGetter sets a custom file stat function for testing.
func (v *Validator) WithStatGetter(statGetter func(string) (os.FileInfo, error)) *Validator {
	v.statGetter = statGetter
	return v
}

// SystemRequirements checks that the host can run systemd-managed services.
func (v *Validator) SystemRequirements() error {
	ctx := context.Background()

	if goos := v.osGetter(); goos != "linux" {
		return fmt.Errorf("unsupported platform: %s (nodectl requires Linux with systemd)", goos)
	}

	v.logger.Debug("Validating systemd availability")

	systemdVersion, err := v.runner.CombinedOutput(ctx, "systemctl", "--version")
	if err != nil {
		return fmt.Errorf("systemd not found: %w", err)
	}

	if !strings.Contains(string(systemdVersion), "systemd") {
		return fmt.Errorf("systemd not properly installed")
	}

	return nil
}

// ClientBinary checks that the participation client binary exists at path.
func (v *Validator) ClientBinary(path string) error {
	v.logger.Debug("Validating participation client binary", "path", path)

	info, err := v.statGetter(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("participation client binary not found at %s", path)
		}
		return fmt.Errorf("cannot access participation client binary %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("participation client path %s is a directory, not a binary", path)
	}

	return nil
}
