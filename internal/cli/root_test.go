package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliRun holds the streams of one root command execution.
type cliRun struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	err    error
}

// execute runs the root command with args, feeding stdin.
func execute(t *testing.T, stdin string, args ...string) cliRun {
	t.Helper()

	run := cliRun{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	cmd := NewRootCommand()
	cmd.SetOut(run.stdout)
	cmd.SetErr(run.stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	run.err = cmd.Execute()
	return run
}

// writeFile writes content to name inside a fresh temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "platymap", cmd.Use)
	assert.Contains(t, cmd.Long, "binary opcode format")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"compile", "decompile", "validate", "table", "history", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestModeIsCaseInsensitive(t *testing.T) {
	input := writeFile(t, "level.json", `[{"action":"sayLevel"}]`)
	output := filepath.Join(t.TempDir(), "level.bin")

	run := execute(t, "", "COMPILE", input, output)
	require.NoError(t, run.err, run.stderr.String())
	assert.FileExists(t, output)
}

func TestCaseInsensitiveIsPackageSetting(t *testing.T) {
	// Set once when the package loads, not per command construction.
	assert.True(t, cobra.EnableCaseInsensitive)
}

func TestUnknownMode(t *testing.T) {
	run := execute(t, "", "assemble", "in", "out")
	require.Error(t, run.err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.err))
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "db", "table", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		command string
		flag    string
	}{
		{"compile", "input-format"},
		{"decompile", "text-format"},
		{"validate", "input-format"},
		{"validate", "binary"},
		{"table", "shadowed"},
		{"history", "limit"},
		{"history", "binary-hash"},
		{"test", "update"},
		{"test", "filter"},
	}

	cmd := NewRootCommand()
	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.flag, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)
			assert.NotNil(t, sub.Flags().Lookup(tt.flag))
		})
	}
}

func TestVersion(t *testing.T) {
	run := execute(t, "", "--version")
	require.NoError(t, run.err)
	assert.Contains(t, run.stdout.String(), "0.1.0")
}

func TestFormatValidationIntegration(t *testing.T) {
	run := execute(t, "", "--format", "invalid", "table")
	require.Error(t, run.err)
	assert.Contains(t, run.err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(run.err))
}

func TestConfigFileSetsTextFormat(t *testing.T) {
	cfgPath := writeFile(t, "platymap.toml", "text_format = \"yaml\"\n")
	input := writeFile(t, "level.bin", string(sayLevelBinary))

	run := execute(t, "", "--config", cfgPath, "decompile", input, "-")
	require.NoError(t, run.err, run.stderr.String())
	assert.Equal(t, "- action: sayLevel\n", run.stdout.String())
}

func TestConfigFileInvalid(t *testing.T) {
	cfgPath := writeFile(t, "platymap.toml", "colour = \"red\"\n")

	run := execute(t, "", "--config", cfgPath, "table")
	require.Error(t, run.err)
	assert.Equal(t, ExitCommandError, GetExitCode(run.err))
	assert.Contains(t, run.stderr.String(), ErrCodeConfig)
}

func TestVerboseLogsToStderr(t *testing.T) {
	input := writeFile(t, "level.json", `[{"action":"sayLevel"}]`)

	run := execute(t, "", "-v", "compile", input, "-")
	require.NoError(t, run.err)
	assert.Equal(t, sayLevelBinary, run.stdout.Bytes())
	assert.Contains(t, run.stderr.String(), "compiled")
}
