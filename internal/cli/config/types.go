// Package config loads layered CLI configuration: defaults, the project
// file, BIGSHARP_* environment variables and command-line flags.
//
// The settings type itself lives in internal/config and is re-exported
// here so commands only import one config package.
package config

import (
	intconfig "github.com/leapstack-labs/bigsharp/internal/config"
)

// Settings is an alias for the shared settings type.
type Settings = intconfig.Settings

// CacheSettings is an alias for the shared cache settings type.
type CacheSettings = intconfig.CacheSettings

// ToolchainSettings is an alias for the shared toolchain settings type.
type ToolchainSettings = intconfig.ToolchainSettings

// EnvPrefix is the prefix of environment variables read by the loader.
const EnvPrefix = "BIGSHARP_"

// nestedSections are the keys whose environment variables carry a
// section prefix, as in BIGSHARP_CACHE_PATH for cache.path.
var nestedSections = []string{"cache", "toolchain"}
