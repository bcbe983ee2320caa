// Package testutil provides common test utilities and helpers to reduce boilerplate in test files.
package testutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/trellisnet/nodectl/internal/config"
	"github.com/trellisnet/nodectl/internal/log"
)

// NewTestLogger creates a logger that writes to t.Logf for testing.
// This ensures test output is properly captured by the test framework.
func NewTestLogger(t testing.TB) log.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	handler := &testHandler{t: t, opts: opts}
	slogLogger := slog.New(handler)

	return log.NewSlogAdapter(slogLogger)
}

// ConfigOption allows customization of test config settings.
type ConfigOption func(*config.Settings)

// WithUnitDir sets a custom unit file directory.
func WithUnitDir(dir string) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.UnitDir = dir
	}
}

// WithUserMode sets user mode.
func WithUserMode(userMode bool) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.UserMode = userMode
	}
}

// WithLogLines sets the default journal line count.
func WithLogLines(n int) ConfigOption {
	return func(cfg *config.Settings) {
		cfg.LogLines = n
	}
}

// NewMockConfig creates a config provider for testing with optional
// customizations. The unit directory points at a per-test temp dir so tests
// never touch /etc/systemd.
func NewMockConfig(t testing.TB, opts ...ConfigOption) config.Provider {
	cfg := &config.Settings{
		BinaryPath:    config.DefaultBinaryPath,
		ServiceName:   config.DefaultServiceName,
		LogServerName: config.DefaultLogServerName,
		UnitDir:       t.TempDir(),
		ServiceUser:   config.DefaultServiceUser,
		WorkingDir:    config.DefaultWorkingDir,
		LogServerPort: config.DefaultLogServerPort,
		LogLines:      config.DefaultLogLines,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	configProvider := config.NewDefaultConfigProvider()
	configProvider.SetConfig(cfg)
	return configProvider
}

// testHandler implements slog.Handler to write to testing.TB.
type testHandler struct {
	t    testing.TB
	opts *slog.HandlerOptions
}

func (h *testHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *testHandler) Handle(_ context.Context, record slog.Record) error {
	h.t.Logf("[%s] %s", record.Level.String(), record.Message)
	return nil
}

func (h *testHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts}
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return &testHandler{t: h.t, opts: h.opts}
}
