package validate

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trellisnet/nodectl/internal/log"
	"github.com/trellisnet/nodectl/internal/testutil/fakerunner"
)

func TestWalletAddress(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"valid lowercase", "0x1234567890abcdef1234567890abcdef12345678", false},
		{"valid uppercase", "0x1234567890ABCDEF1234567890ABCDEF12345678", false},
		{"valid mixed case", "0x1234567890AbCdEf1234567890aBcDeF12345678", false},
		{"too short", "0x1234567890abcdef1234567890abcdef1234567", true},
		{"too long", "0x1234567890abcdef1234567890abcdef123456789", true},
		{"missing prefix", "1234567890abcdef1234567890abcdef12345678", true},
		{"non-hex characters", "0x1234567890abcdef1234567890abcdef1234567g", true},
		{"empty", "", true},
		{"prefix only", "0x", true},
		{"whitespace padded", " 0x1234567890abcdef1234567890abcdef12345678", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WalletAddress(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"single digit", "0", false},
		{"multiple digits", "42", false},
		{"long id", "123456789012345", false},
		{"empty", "", true},
		{"negative", "-1", true},
		{"hex", "0x42", true},
		{"alpha", "abc", true},
		{"trailing space", "42 ", true},
		{"decimal point", "4.2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NodeID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSystemRequirements(t *testing.T) {
	logger := log.NewLogger(false)

	t.Run("systemd available", func(t *testing.T) {
		runner := fakerunner.New()
		runner.SetOutput("systemctl", []string{"--version"}, []byte("systemd 255 (255.4)"))

		v := NewValidator(logger, runner)
		assert.NoError(t, v.SystemRequirements())
	})

	t.Run("systemctl missing", func(t *testing.T) {
		runner := fakerunner.New()
		runner.SetError("systemctl", []string{"--version"}, errors.New("executable not found"))

		v := NewValidator(logger, runner)
		err := v.SystemRequirements()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "systemd not found")
	})

	t.Run("unexpected systemctl output", func(t *testing.T) {
		runner := fakerunner.New()
		runner.SetOutput("systemctl", []string{"--version"}, []byte("not the init you expect"))

		v := NewValidator(logger, runner)
		assert.Error(t, v.SystemRequirements())
	})

	t.Run("unsupported platform", func(t *testing.T) {
		v := NewValidator(logger, fakerunner.New()).WithOSGetter(func() string { return "darwin" })
		err := v.SystemRequirements()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported platform")
	})
}

func TestClientBinary(t *testing.T) {
	logger := log.NewLogger(false)

	t.Run("binary exists", func(t *testing.T) {
		dir := t.TempDir()
		path := dir + "/trellis-node"
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

		v := NewValidatorWithDefaults(logger)
		assert.NoError(t, v.ClientBinary(path))
	})

	t.Run("binary missing", func(t *testing.T) {
		v := NewValidatorWithDefaults(logger)
		err := v.ClientBinary(t.TempDir() + "/missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("path is a directory", func(t *testing.T) {
		v := NewValidatorWithDefaults(logger)
		err := v.ClientBinary(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory")
	})
}
