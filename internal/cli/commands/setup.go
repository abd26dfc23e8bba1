package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bigsharp/internal/cli/config"
	"github.com/leapstack-labs/bigsharp/internal/cli/output"
	intconfig "github.com/leapstack-labs/bigsharp/internal/config"
	"github.com/leapstack-labs/bigsharp/internal/engine"
	"github.com/leapstack-labs/bigsharp/internal/state"
	"github.com/leapstack-labs/bigsharp/internal/toolchain"
)

// toolchainRunner executes dotnet commands. Nil means os/exec.
var toolchainRunner toolchain.Runner

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Settings
	Logger    *slog.Logger
	Engine    *engine.Engine
	Renderer  *output.Renderer
	Toolchain *toolchain.Invoker
}

// NewCommandContext creates a CommandContext with engine and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutEngine(cmd)

	eng, err := createEngine(cc.Cfg, cc.Logger)
	if err != nil {
		return nil, nil, err
	}
	cc.Engine = eng

	cleanup := func() {
		if err := eng.Close(); err != nil {
			cc.Logger.Warn("failed to close engine", "error", err)
		}
	}
	return cc, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that never compile.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	inv := toolchain.New(cfg.Toolchain.Binary, cfg.Resolve(cfg.Toolchain.ProjectDir), logger)
	inv.Runner = toolchainRunner

	return &CommandContext{
		Cfg:       cfg,
		Logger:    logger,
		Renderer:  newRenderer(cmd),
		Toolchain: inv,
	}
}

func newRenderer(cmd *cobra.Command) *output.Renderer {
	var mode string
	if f := cmd.Flag("format"); f != nil {
		mode = f.Value.String()
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(mode))
}

// getConfig returns the loaded configuration, or the defaults rooted at
// the working directory when no command loaded one.
func getConfig() *config.Settings {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	cfg := intconfig.Defaults()
	if cwd, err := os.Getwd(); err == nil {
		cfg.ProjectRoot = cwd
	}
	return &cfg
}

func createEngine(cfg *config.Settings, logger *slog.Logger) (*engine.Engine, error) {
	locale, err := cfg.LocaleTag()
	if err != nil {
		return nil, err
	}

	header, err := readOptional(cfg.Resolve(cfg.Header))
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	footer, err := readOptional(cfg.Resolve(cfg.Footer))
	if err != nil {
		return nil, fmt.Errorf("failed to read footer: %w", err)
	}

	var store state.Store
	if cfg.Cache.Enabled {
		s, err := openCache(cfg.Resolve(cfg.Cache.Path), logger)
		if err != nil {
			return nil, err
		}
		store = s
	}

	eng, err := engine.New(engine.Config{
		Logger:        logger,
		Precision:     cfg.Precision,
		Interpolation: cfg.Interpolation,
		Passes:        cfg.Passes,
		Header:        header,
		Footer:        footer,
		Locale:        locale,
		Store:         store,
	})
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}
	return eng, nil
}

func openCache(path string, logger *slog.Logger) (*state.SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(path); err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return store, nil
}

func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from project config
	if err != nil {
		return "", err
	}
	return string(data), nil
}
