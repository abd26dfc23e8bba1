package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "Program.cs", d.Output)
	assert.Equal(t, 100, d.Precision)
	assert.True(t, d.Interpolation)
	assert.True(t, d.Cache.Enabled)
	assert.Equal(t, "dotnet", d.Toolchain.Binary)
	assert.NoError(t, d.Validate())

	m := DefaultsMap()
	assert.Equal(t, d.Cache.Path, m["cache.path"])
	assert.Equal(t, d.Toolchain.ProjectDir, m["toolchain.project_dir"])
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(s *Settings)
		errSubstr string
	}{
		{"valid", func(*Settings) {}, ""},
		{"zero precision", func(s *Settings) { s.Precision = 0 }, "precision must be at least 1"},
		{"known pass", func(s *Settings) { s.Passes = map[string]bool{"memoize": false} }, ""},
		{"unknown pass", func(s *Settings) { s.Passes = map[string]bool{"inline": true} }, `unknown rewrite pass "inline"`},
		{"log level", func(s *Settings) { s.LogLevel = "DEBUG" }, ""},
		{"bad log level", func(s *Settings) { s.LogLevel = "loud" }, `unknown level "loud"`},
		{"locale", func(s *Settings) { s.Locale = "de-DE" }, ""},
		{"bad locale", func(s *Settings) { s.Locale = "not a tag" }, "unknown tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)
			err := s.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelWarn,
		"warning": slog.LevelWarn,
		"debug":   slog.LevelDebug,
		"Info":    slog.LevelInfo,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestLocaleTag(t *testing.T) {
	s := Settings{}
	tag, err := s.LocaleTag()
	require.NoError(t, err)
	assert.Equal(t, language.Und, tag)

	s.Locale = "fr"
	tag, err = s.LocaleTag()
	require.NoError(t, err)
	assert.Equal(t, language.French, tag)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()

	s, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Nil(t, s)

	yaml := "precision: 20\ninterpolation: false\npasses:\n  memoize: false\ncache:\n  enabled: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), []byte(yaml), 0o644))

	s, err = LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 20, s.Precision)
	assert.False(t, s.Interpolation)
	assert.Equal(t, map[string]bool{"memoize": false}, s.Passes)
	assert.False(t, s.Cache.Enabled)
	assert.Equal(t, DefaultCachePath, s.Cache.Path)
	assert.Equal(t, DefaultOutput, s.Output)
	assert.Equal(t, dir, s.ProjectRoot)
}

func TestLoadFromDir_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("precision: [1\n"), 0o644))

	_, err := LoadFromDir(dir)
	assert.ErrorContains(t, err, "error reading config file")
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Empty(t, FindProjectRoot(nested))

	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("precision: 5\n"), 0o644))
	assert.Equal(t, root, FindProjectRoot(nested))
}

func TestResolve(t *testing.T) {
	s := Settings{ProjectRoot: filepath.Join("home", "proj")}
	assert.Equal(t, filepath.Join("home", "proj", "out.cs"), s.Resolve("out.cs"))
	assert.Equal(t, "", s.Resolve(""))
	assert.Equal(t, ":memory:", s.Resolve(":memory:"))
	abs := filepath.Join(string(filepath.Separator), "tmp", "x")
	assert.Equal(t, abs, s.Resolve(abs))
}
