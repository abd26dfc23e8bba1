package config

import "github.com/leapstack-labs/bigsharp/pkg/decimal"

// Default configuration values.
const (
	DefaultOutput           = "Program.cs"
	DefaultPrecision        = decimal.DefaultPrecision
	DefaultCachePath        = ".bigsharp/cache.db"
	DefaultToolchainBinary  = "dotnet"
	DefaultToolchainProject = ".bigsharp/dotnet"
)

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		Output:        DefaultOutput,
		Precision:     DefaultPrecision,
		Interpolation: true,
		Cache: CacheSettings{
			Enabled: true,
			Path:    DefaultCachePath,
		},
		Toolchain: ToolchainSettings{
			Binary:     DefaultToolchainBinary,
			ProjectDir: DefaultToolchainProject,
		},
	}
}

// DefaultsMap returns Defaults as flat koanf keys.
func DefaultsMap() map[string]any {
	d := Defaults()
	return map[string]any{
		"output":                d.Output,
		"autorun":               d.Autorun,
		"precision":             d.Precision,
		"interpolation":         d.Interpolation,
		"cache.enabled":         d.Cache.Enabled,
		"cache.path":            d.Cache.Path,
		"toolchain.binary":      d.Toolchain.Binary,
		"toolchain.project_dir": d.Toolchain.ProjectDir,
	}
}
