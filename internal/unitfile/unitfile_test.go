package unitfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func TestRender(t *testing.T) {
	spec := Spec{
		Description:      "Blockchain participation client (headless)",
		ExecStart:        "/usr/local/bin/trellis-node start --headless",
		User:             "trellis-node",
		WorkingDirectory: "/var/lib/trellis-node",
	}

	content, err := Render(spec)
	require.NoError(t, err)

	file, err := ini.Load([]byte(content))
	require.NoError(t, err)

	unit, err := file.GetSection("Unit")
	require.NoError(t, err)
	assert.Equal(t, spec.Description, unit.Key("Description").String())
	assert.Equal(t, "network-online.target", unit.Key("After").String())

	service, err := file.GetSection("Service")
	require.NoError(t, err)
	assert.Equal(t, spec.ExecStart, service.Key("ExecStart").String())
	assert.Equal(t, "trellis-node", service.Key("User").String())
	assert.Equal(t, "/var/lib/trellis-node", service.Key("WorkingDirectory").String())
	assert.Equal(t, "always", service.Key("Restart").String())
	assert.Equal(t, "5", service.Key("RestartSec").String())

	install, err := file.GetSection("Install")
	require.NoError(t, err)
	assert.Equal(t, "multi-user.target", install.Key("WantedBy").String())
}

func TestRenderHardening(t *testing.T) {
	content, err := Render(Spec{
		Description:      "test",
		ExecStart:        "/bin/true",
		WorkingDirectory: "/var/lib/test",
	})
	require.NoError(t, err)

	file, err := ini.Load([]byte(content))
	require.NoError(t, err)

	service := file.Section("Service")
	assert.Equal(t, "true", service.Key("NoNewPrivileges").String())
	assert.Equal(t, "true", service.Key("PrivateTmp").String())
	assert.Equal(t, "strict", service.Key("ProtectSystem").String())
	assert.Equal(t, "true", service.Key("ProtectHome").String())
	assert.Equal(t, "/var/lib/test", service.Key("ReadWritePaths").String())
}

func TestRenderUserScope(t *testing.T) {
	content, err := Render(Spec{
		Description: "test",
		ExecStart:   "/bin/true",
		WantedBy:    "default.target",
	})
	require.NoError(t, err)

	file, err := ini.Load([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, "default.target", file.Section("Install").Key("WantedBy").String())
	assert.False(t, file.Section("Service").HasKey("User"))
	assert.False(t, file.Section("Service").HasKey("WorkingDirectory"))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "units", "trellis-node.service")

	require.NoError(t, WriteFile(path, "[Unit]\nDescription=test\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Description=test")

	// Overwrite must replace the content, not append.
	require.NoError(t, WriteFile(path, "[Unit]\nDescription=other\n"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "test")
}

func TestRemoveAndExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trellis-node.service")

	assert.False(t, Exists(path))

	require.NoError(t, WriteFile(path, "[Unit]\n"))
	assert.True(t, Exists(path))

	require.NoError(t, Remove(path))
	assert.False(t, Exists(path))

	assert.Error(t, Remove(path))
}

func TestExistsIgnoresDirectories(t *testing.T) {
	assert.False(t, Exists(t.TempDir()))
}
