package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bigsharp/internal/cli/output"
)

// NewCacheCommand creates the cache command group.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the compile cache",
	}
	cmd.AddCommand(newCachePruneCommand())
	return cmd
}

func newCachePruneCommand() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached compilations older than a given age",
		Example: `  # Drop entries not refreshed in a week
  bigsharp cache prune --older-than 168h

  # Empty the cache
  bigsharp cache prune --older-than 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutEngine(cmd)
			if !cc.Cfg.Cache.Enabled {
				cc.Renderer.Warning("cache is disabled")
				return nil
			}
			if olderThan < 0 {
				return fmt.Errorf("--older-than must not be negative, got %s", olderThan)
			}

			store, err := openCache(cc.Cfg.Resolve(cc.Cfg.Cache.Path), cc.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			n, err := store.PruneBefore(time.Now().Add(-olderThan))
			if err != nil {
				return err
			}

			if cc.Renderer.EffectiveMode() == output.ModeJSON {
				return cc.Renderer.JSON(map[string]int64{"pruned": n})
			}
			cc.Renderer.Success(fmt.Sprintf("pruned %d cached compilations", n))
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age of entries to remove")
	return cmd
}
