package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// setConfigFile points --config at cfgPath for the duration of the test.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	previous := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = previous })
}

// setupBrokenConfigFile writes a config.yml that viper cannot parse.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// executeCommand runs cmd with args and stdin and returns what it wrote to stdout.
func executeCommand(cmd *cobra.Command, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}
