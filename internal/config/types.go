// Package config provides the settings shared by the CLI and the engine.
// It is decoupled from flag parsing so tools can load a project's
// bigsharp.yaml directly.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/leapstack-labs/bigsharp/pkg/rewrite"
)

// Settings holds every configurable option of a BigSharp project.
type Settings struct {
	Source        string            `koanf:"source" yaml:"source,omitempty"`
	Output        string            `koanf:"output" yaml:"output"`
	Autorun       bool              `koanf:"autorun" yaml:"autorun"`
	Precision     int               `koanf:"precision" yaml:"precision"`
	Interpolation bool              `koanf:"interpolation" yaml:"interpolation"`
	Passes        map[string]bool   `koanf:"passes" yaml:"passes,omitempty"`
	Header        string            `koanf:"header" yaml:"header,omitempty"`
	Footer        string            `koanf:"footer" yaml:"footer,omitempty"`
	Locale        string            `koanf:"locale" yaml:"locale,omitempty"`
	LogLevel      string            `koanf:"log_level" yaml:"log_level,omitempty"`
	Cache         CacheSettings     `koanf:"cache" yaml:"cache"`
	Toolchain     ToolchainSettings `koanf:"toolchain" yaml:"toolchain"`

	// ProjectRoot is the directory relative paths resolve against. It is
	// set by the loader, never read from a file.
	ProjectRoot string `koanf:"-" yaml:"-"`
}

// CacheSettings configures the compile cache database.
type CacheSettings struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Path    string `koanf:"path" yaml:"path"`
}

// ToolchainSettings configures the dotnet invocation.
type ToolchainSettings struct {
	Binary     string `koanf:"binary" yaml:"binary"`
	ProjectDir string `koanf:"project_dir" yaml:"project_dir"`
}

// Validate reports the first invalid setting.
func (s *Settings) Validate() error {
	if s.Precision < 1 {
		return fmt.Errorf("precision must be at least 1, got %d", s.Precision)
	}
	for id := range s.Passes {
		if !rewrite.IsPass(id) {
			return fmt.Errorf("passes: unknown rewrite pass %q", id)
		}
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	if _, err := s.LocaleTag(); err != nil {
		return err
	}
	return nil
}

// LocaleTag returns the configured locale, or language.Und when none is set.
func (s *Settings) LocaleTag() (language.Tag, error) {
	if s.Locale == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(s.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("locale: unknown tag %q: %w", s.Locale, err)
	}
	return tag, nil
}

// ParseLevel maps a log_level value to a slog level. Empty means warn.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log_level: unknown level %q", level)
}
