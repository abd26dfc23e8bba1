package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// globalFlags mirrors the persistent flags registered by the root command.
func globalFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.Int("precision", 0, "")
	fs.Bool("no-interpolation", false, "")
	fs.Bool("no-cache", false, "")
	fs.String("locale", "", "")
	fs.String("format", "", "")
	return fs
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "bigsharp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Precision)
	assert.True(t, cfg.Interpolation)
	assert.Equal(t, "Program.cs", cfg.Output)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "dotnet", cfg.Toolchain.Binary)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_Layers(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		env    map[string]string
		args   []string
		verify func(t *testing.T, cfg *Settings)
	}{
		{
			name: "file overrides defaults",
			file: "precision: 30\noutput: out/Main.cs\ntoolchain:\n  binary: /usr/bin/dotnet\n",
			verify: func(t *testing.T, cfg *Settings) {
				assert.Equal(t, 30, cfg.Precision)
				assert.Equal(t, "out/Main.cs", cfg.Output)
				assert.Equal(t, "/usr/bin/dotnet", cfg.Toolchain.Binary)
			},
		},
		{
			name: "env overrides file",
			file: "precision: 30\n",
			env: map[string]string{
				"BIGSHARP_PRECISION":             "40",
				"BIGSHARP_LOG_LEVEL":             "info",
				"BIGSHARP_CACHE_PATH":            "/tmp/c.db",
				"BIGSHARP_TOOLCHAIN_PROJECT_DIR": "/tmp/app",
			},
			verify: func(t *testing.T, cfg *Settings) {
				assert.Equal(t, 40, cfg.Precision)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "/tmp/c.db", cfg.Cache.Path)
				assert.Equal(t, "/tmp/app", cfg.Toolchain.ProjectDir)
			},
		},
		{
			name: "flags override env",
			env:  map[string]string{"BIGSHARP_PRECISION": "40"},
			args: []string{"--precision", "50", "--no-interpolation", "--no-cache", "-v"},
			verify: func(t *testing.T, cfg *Settings) {
				assert.Equal(t, 50, cfg.Precision)
				assert.False(t, cfg.Interpolation)
				assert.False(t, cfg.Cache.Enabled)
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
		{
			name: "unset flags keep file values",
			file: "precision: 12\ninterpolation: false\n",
			args: []string{"--locale", "de"},
			verify: func(t *testing.T, cfg *Settings) {
				assert.Equal(t, 12, cfg.Precision)
				assert.False(t, cfg.Interpolation)
				assert.Equal(t, "de", cfg.Locale)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := t.TempDir()
			t.Chdir(dir)
			if tt.file != "" {
				writeConfig(t, dir, tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs := globalFlags()
			require.NoError(t, fs.Parse(tt.args))

			cfg, err := LoadConfig("", fs)
			require.NoError(t, err)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadConfig_ProjectRootSearch(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, "precision: 8\n")
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Precision)

	// t.TempDir may sit behind a symlink, so compare resolved paths.
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(cfg.ProjectRoot)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 3\n"), 0o644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		errSubstr string
	}{
		{"malformed yaml", "precision: [\n", "error reading config file"},
		{"invalid precision", "precision: 0\n", "precision must be at least 1"},
		{"unknown pass", "passes:\n  inline: true\n", `unknown rewrite pass "inline"`},
		{"unknown log level", "log_level: chatty\n", `unknown level "chatty"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := t.TempDir()
			path := writeConfig(t, dir, tt.file)

			_, err := LoadConfig(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
			assert.Nil(t, GetCurrentConfig())
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.ErrorContains(t, err, "error reading config file")
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"BIGSHARP_PRECISION":             "precision",
		"BIGSHARP_LOG_LEVEL":             "log_level",
		"BIGSHARP_CACHE_ENABLED":         "cache.enabled",
		"BIGSHARP_TOOLCHAIN_PROJECT_DIR": "toolchain.project_dir",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, &Settings{LogLevel: "info"})
	logger.Debug("hidden")
	logger.Info("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=1")

	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
	assert.NotNil(t, GetLogger(context.Background()))
}
