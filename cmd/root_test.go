package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCommandFlags verifies flag parsing.
func TestRootCommandFlags(t *testing.T) {
	rootCmd := &RootCommand{}
	cmd := rootCmd.GetCobraCommand()

	// Test flag defaults
	userFlag := cmd.PersistentFlags().Lookup("user")
	require.NotNil(t, userFlag)
	assert.Equal(t, "false", userFlag.DefValue)

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "false", verboseFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

// TestRootCommandSubcommands verifies the full command surface is registered.
func TestRootCommandSubcommands(t *testing.T) {
	cmd := (&RootCommand{}).GetCobraCommand()

	expected := []string{
		"install",
		"start",
		"stop",
		"restart",
		"status",
		"logs",
		"remove",
		"install-logserver",
		"start-logserver",
		"stop-logserver",
		"logs-logserver",
		"remove-logserver",
		"serve-logserver",
		"version",
	}

	registered := map[string]bool{}
	for _, sub := range cmd.Commands() {
		registered[sub.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "missing subcommand %q", name)
	}
}

func TestInstallCommandFlags(t *testing.T) {
	cmd := (&InstallCommand{}).GetCobraCommand()

	require.NotNil(t, cmd.Flags().Lookup("node-id"))
	require.NotNil(t, cmd.Flags().Lookup("wallet"))
	require.NotNil(t, cmd.Flags().Lookup("max-difficulty"))
}

func TestInstallLogServerCommandFlags(t *testing.T) {
	cmd := (&InstallLogServerCommand{}).GetCobraCommand()

	portFlag := cmd.Flags().Lookup("port")
	require.NotNil(t, portFlag)
	assert.Equal(t, "0", portFlag.DefValue)
}

func TestServeLogServerCommandFlags(t *testing.T) {
	cmd := (&ServeLogServerCommand{}).GetCobraCommand()

	require.NotNil(t, cmd.Flags().Lookup("port"))
}

func TestLogsCommandArgs(t *testing.T) {
	cmd := (&LogsCommand{}).GetCobraCommand()

	assert.NoError(t, cmd.Args(cmd, []string{}))
	assert.NoError(t, cmd.Args(cmd, []string{"20"}))
	assert.Error(t, cmd.Args(cmd, []string{"20", "extra"}))
}
