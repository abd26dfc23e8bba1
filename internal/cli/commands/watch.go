package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bigsharp/internal/engine"
	"github.com/leapstack-labs/bigsharp/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var (
		outFile  string
		run      bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [file|dir]",
		Short: "Recompile sources when they change",
		Long: `Compile once, then recompile whenever a watched source is saved.
Failures are reported and watching continues. Stop with Ctrl+C.`,
		Example: `  bigsharp watch hello.bs --run
  bigsharp watch src/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			path := ""
			switch {
			case len(args) == 1:
				path = args[0]
			case cc.Cfg.Source != "":
				path = cc.Cfg.Resolve(cc.Cfg.Source)
			default:
				return errors.New("no source given and none configured")
			}
			if outFile == "" {
				outFile = cc.Cfg.Resolve(cc.Cfg.Output)
			}

			jobs, err := watch.Jobs(path, outFile)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				return fmt.Errorf("no sources found in %s", path)
			}
			if run && len(jobs) != 1 {
				return fmt.Errorf("--run needs exactly one source, got %d", len(jobs))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w := &watch.Watcher{
				Compiler:  cc.Engine,
				Jobs:      jobs,
				Debounce:  debounce,
				Logger:    cc.Logger,
				OnCompile: onCompile(ctx, cmd, cc, run),
			}
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Output file for a single source (default: config output)")
	cmd.Flags().BoolVar(&run, "run", false, "Run the program with dotnet after each successful compile")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before recompiling")

	return cmd
}

func onCompile(ctx context.Context, cmd *cobra.Command, cc *CommandContext, run bool) func(watch.Event) {
	return func(ev watch.Event) {
		if ev.Err != nil {
			cc.Renderer.Diagnostic("", engine.StageOf(ev.Err), ev.Err)
			return
		}
		cc.Renderer.Success(fmt.Sprintf("%s -> %s", ev.Job.Source, ev.Job.Output))
		if !run {
			return
		}
		if err := cc.Toolchain.Run(ctx, ev.Result.Output, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			cc.Renderer.Diagnostic(ev.Job.Source, "run", err)
		}
	}
}
