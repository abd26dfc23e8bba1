package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "github.com/leapstack-labs/bigsharp/internal/config"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string)
		args      []string
		wantErr   bool
		wantFiles []string
		noFiles   []string
	}{
		{
			name:      "init empty directory",
			wantFiles: []string{"bigsharp.yaml"},
			noFiles:   []string{"hello.bs"},
		},
		{
			name:      "init with example",
			args:      []string{"--example"},
			wantFiles: []string{"bigsharp.yaml", "hello.bs", ".gitignore"},
		},
		{
			name:      "init into new directory",
			args:      []string{"sub/project", "--example"},
			wantFiles: []string{"sub/project/bigsharp.yaml", "sub/project/hello.bs"},
		},
		{
			name: "init existing config without force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "bigsharp.yaml"), []byte("existing"), 0o600))
			},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "bigsharp.yaml"), []byte("existing"), 0o600))
			},
			args:      []string{"--force"},
			wantFiles: []string{"bigsharp.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)
			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			for _, f := range tt.wantFiles {
				_, err := os.Stat(filepath.Join(tmpDir, f))
				assert.NoError(t, err, "expected %s", f)
			}
			for _, f := range tt.noFiles {
				_, err := os.Stat(filepath.Join(tmpDir, f))
				assert.True(t, os.IsNotExist(err), "unexpected %s", f)
			}
			assert.Contains(t, buf.String(), "BigSharp project initialized!")
		})
	}
}

func TestInitWritesLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"--example"})
	require.NoError(t, cmd.Execute())

	cfg, err := intconfig.LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	want := intconfig.Defaults()
	want.Source = exampleSource
	want.ProjectRoot = dir
	assert.Equal(t, &want, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestInitExampleCompiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"--example"})
	require.NoError(t, cmd.Execute())

	out, stderr, err := runCommand(t, NewCompileCommand(), "--format", "plain")
	require.NoError(t, err, stderr)
	assert.Contains(t, out, "Program.cs")

	program, err := os.ReadFile(filepath.Join(dir, "Program.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(program), `"Hello from "`)
}

func TestListTemplateFiles(t *testing.T) {
	files, err := listTemplateFiles("example")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".gitignore", "hello.bs"}, files)
}
