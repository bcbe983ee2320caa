package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trellisnet/nodectl/internal/client"
	"github.com/trellisnet/nodectl/internal/config"
	"github.com/trellisnet/nodectl/internal/systemd"
	"github.com/trellisnet/nodectl/internal/testutil"
	"github.com/trellisnet/nodectl/internal/testutil/fakerunner"
)

const validWallet = "0x1234567890abcdef1234567890abcdef12345678"

func testExecutablePath() (string, error) {
	return "/usr/local/bin/nodectl", nil
}

func newTestInstaller(t *testing.T) (*Installer, *systemd.MockUnitManager, *fakerunner.Runner, *config.Settings) {
	t.Helper()

	provider := testutil.NewMockConfig(t)
	cfg := provider.GetConfig()

	logger := testutil.NewTestLogger(t)
	runner := fakerunner.New()
	manager := &systemd.MockUnitManager{}
	cl := client.New(cfg.BinaryPath, runner, logger)

	return New(provider, manager, cl, logger, testExecutablePath), manager, runner, cfg
}

func TestUnitNames(t *testing.T) {
	inst, _, _, cfg := newTestInstaller(t)

	assert.Equal(t, "trellis-node.service", inst.ServiceUnit())
	assert.Equal(t, "trellis-node-logserver.service", inst.LogServerUnit())
	assert.Equal(t, filepath.Join(cfg.UnitDir, "trellis-node.service"), inst.UnitPath("trellis-node.service"))
}

func TestInstallClientRequiresExactlyOneInput(t *testing.T) {
	tests := []struct {
		name string
		opts InstallOptions
	}{
		{"neither", InstallOptions{}},
		{"both", InstallOptions{NodeID: "42", Wallet: validWallet}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, _, _, _ := newTestInstaller(t)
			err := inst.InstallClient(context.Background(), tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exactly one of")
		})
	}
}

func TestInstallClientRejectsInvalidInput(t *testing.T) {
	inst, manager, _, _ := newTestInstaller(t)

	assert.Error(t, inst.InstallClient(context.Background(), InstallOptions{NodeID: "abc"}))
	assert.Error(t, inst.InstallClient(context.Background(), InstallOptions{Wallet: "0xdeadbeef"}))
	assert.Empty(t, manager.Calls, "no systemd calls expected for invalid input")
}

func TestInstallClientNodeIDMode(t *testing.T) {
	inst, manager, runner, cfg := newTestInstaller(t)

	err := inst.InstallClient(context.Background(), InstallOptions{NodeID: "42"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.UnitDir, "trellis-node.service"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "ExecStart=/usr/local/bin/trellis-node start --headless --node-id 42")
	assert.Contains(t, content, "User=trellis-node")
	assert.Contains(t, content, "Restart=always")

	assert.Equal(t, []string{"daemon-reload", "enable trellis-node.service"}, manager.Calls)
	assert.False(t, runner.CalledWith("/usr/local/bin/trellis-node register"),
		"node-id mode must not register a wallet")
}

func TestInstallClientWalletMode(t *testing.T) {
	inst, manager, runner, cfg := newTestInstaller(t)

	err := inst.InstallClient(context.Background(), InstallOptions{Wallet: validWallet})
	require.NoError(t, err)

	assert.True(t, runner.CalledWith("/usr/local/bin/trellis-node register --wallet "+validWallet))

	data, err := os.ReadFile(filepath.Join(cfg.UnitDir, "trellis-node.service"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "ExecStart=/usr/local/bin/trellis-node start --headless")
	assert.NotContains(t, content, "--node-id")
	assert.NotContains(t, content, validWallet, "wallet must not leak into the unit file")

	assert.Equal(t, []string{"daemon-reload", "enable trellis-node.service"}, manager.Calls)
}

func TestInstallClientWalletRegistrationFailure(t *testing.T) {
	inst, manager, runner, cfg := newTestInstaller(t)
	runner.SetError("/usr/local/bin/trellis-node", []string{"register", "--wallet", validWallet}, errors.New("exit status 1"))

	err := inst.InstallClient(context.Background(), InstallOptions{Wallet: validWallet})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wallet registration failed")

	assert.NoFileExists(t, filepath.Join(cfg.UnitDir, "trellis-node.service"))
	assert.Empty(t, manager.Calls)
}

func TestInstallClientReinstallIsIdempotent(t *testing.T) {
	inst, manager, _, _ := newTestInstaller(t)
	ctx := context.Background()

	require.NoError(t, inst.InstallClient(ctx, InstallOptions{NodeID: "1"}))

	// A pre-existing unit is stopped and disabled before reinstall, and
	// failures there must not abort the flow.
	manager.Calls = nil
	manager.StopFunc = func(_ context.Context, _ string) error { return errors.New("unit not loaded") }
	manager.DisableFunc = func(_ context.Context, _ string) error { return errors.New("unit not enabled") }

	require.NoError(t, inst.InstallClient(ctx, InstallOptions{NodeID: "2"}))
	assert.Equal(t, []string{
		"stop trellis-node.service",
		"disable trellis-node.service",
		"daemon-reload",
		"enable trellis-node.service",
	}, manager.Calls)

	data, err := os.ReadFile(inst.UnitPath(inst.ServiceUnit()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "--node-id 2")
	assert.NotContains(t, string(data), "--node-id 1")
}

func TestInstallClientUserMode(t *testing.T) {
	inst, _, _, cfg := newTestInstaller(t)
	cfg.UserMode = true

	require.NoError(t, inst.InstallClient(context.Background(), InstallOptions{NodeID: "7"}))

	data, err := os.ReadFile(inst.UnitPath(inst.ServiceUnit()))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "WantedBy=default.target")
	assert.NotContains(t, content, "User=")
}

func TestInstallClientEnableFailure(t *testing.T) {
	inst, manager, _, _ := newTestInstaller(t)
	manager.EnableFunc = func(_ context.Context, _ string) error {
		return systemd.NewError("enable", "trellis-node.service", errors.New("access denied"))
	}

	err := inst.InstallClient(context.Background(), InstallOptions{NodeID: "1"})
	require.Error(t, err)
	assert.True(t, systemd.IsError(err))
}

func TestInstallLogServer(t *testing.T) {
	inst, manager, _, cfg := newTestInstaller(t)

	require.NoError(t, inst.InstallLogServer(context.Background(), 0))

	data, err := os.ReadFile(filepath.Join(cfg.UnitDir, "trellis-node-logserver.service"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "ExecStart=/usr/local/bin/nodectl serve-logserver --port 8686")
	assert.Contains(t, content, "Restart=always")

	assert.Equal(t, []string{"daemon-reload", "enable trellis-node-logserver.service"}, manager.Calls)
}

func TestInstallLogServerCustomPort(t *testing.T) {
	inst, _, _, _ := newTestInstaller(t)

	require.NoError(t, inst.InstallLogServer(context.Background(), 9000))

	data, err := os.ReadFile(inst.UnitPath(inst.LogServerUnit()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "serve-logserver --port 9000")
}

func TestInstallLogServerExecutableResolutionFailure(t *testing.T) {
	inst, _, _, _ := newTestInstaller(t)
	inst.executablePath = func() (string, error) { return "", errors.New("no proc") }

	err := inst.InstallLogServer(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nodectl binary path")
}

func TestRemove(t *testing.T) {
	inst, manager, _, _ := newTestInstaller(t)
	ctx := context.Background()

	require.NoError(t, inst.InstallClient(ctx, InstallOptions{NodeID: "1"}))
	require.True(t, inst.IsInstalled(inst.ServiceUnit()))

	manager.Calls = nil
	require.NoError(t, inst.Remove(ctx, inst.ServiceUnit()))

	assert.False(t, inst.IsInstalled(inst.ServiceUnit()))
	assert.Equal(t, []string{
		"stop trellis-node.service",
		"disable trellis-node.service",
		"daemon-reload",
	}, manager.Calls)
}

func TestRemoveMissingUnitWarnsOnly(t *testing.T) {
	inst, manager, _, _ := newTestInstaller(t)

	assert.NoError(t, inst.Remove(context.Background(), inst.ServiceUnit()))
	assert.Empty(t, manager.Calls)
}

func TestRequireInstalled(t *testing.T) {
	inst, _, _, _ := newTestInstaller(t)

	err := inst.RequireInstalled(inst.ServiceUnit())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not installed")

	require.NoError(t, inst.InstallClient(context.Background(), InstallOptions{NodeID: "1"}))
	assert.NoError(t, inst.RequireInstalled(inst.ServiceUnit()))
}
