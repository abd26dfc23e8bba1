// Package main provides tests for the BigSharp CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bigsharp/internal/cli"
	"github.com/leapstack-labs/bigsharp/internal/cli/config"
	"github.com/leapstack-labs/bigsharp/internal/cli/testutil"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := cli.NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "BigSharp v"+cli.Version)
}

func TestHelpCommand(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)

	for _, name := range []string{"compile", "tokens", "calc", "repl", "watch", "passes", "doctor", "cache", "init", "completion"} {
		assert.Contains(t, out, name)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := execute(t, "completion", shell)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}

	_, _, err := execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestCompileProject(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	out, _, err := execute(t, "compile", "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "build/Program.cs")

	program, err := os.ReadFile(filepath.Join(dir, "build", "Program.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(program), "Console.WriteLine(Convert.ToString(x));")

	_, err = os.Stat(filepath.Join(dir, ".bigsharp", "cache.db"))
	require.NoError(t, err, "cache database should be created")

	out, _, err = execute(t, "compile", "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "(cached)")
}

func TestInvalidConfiguration(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "calc", "1", "--precision=-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestCalcFlagsReachEngine(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := execute(t, "calc", "1/3", "--precision", "5")
	require.NoError(t, err)
	assert.Equal(t, "0.33333\n", out)
}
