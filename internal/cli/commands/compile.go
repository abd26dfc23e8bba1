package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bigsharp/internal/cli/output"
	"github.com/leapstack-labs/bigsharp/internal/engine"
)

var errCompileFailed = errors.New("compilation failed")

// CompileJSON is the JSON shape of one compiled unit.
type CompileJSON struct {
	Source     string `json:"source"`
	Output     string `json:"output"`
	Hash       string `json:"hash"`
	Cached     bool   `json:"cached"`
	Tokens     int    `json:"tokens"`
	DurationMS int64  `json:"duration_ms"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	var (
		outFile string
		run     bool
	)

	cmd := &cobra.Command{
		Use:   "compile [file|dir...]",
		Short: "Compile BigSharp sources to C#",
		Long: `Compile BigSharp sources into C# programs.

A single source is written to the configured output file (Program.cs by
default). Directories are searched for .bs files and each is written next
to its source with a .cs extension. With no arguments the configured
source is compiled.`,
		Example: `  # Compile the configured source
  bigsharp compile

  # Compile one file and run it with dotnet
  bigsharp compile hello.bs --run

  # Compile every source under src/
  bigsharp compile src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			jobs, err := compileJobs(cc, args, outFile)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				cc.Renderer.Warning("no sources found")
				return nil
			}

			results, err := cc.Engine.CompileAll(cmd.Context(), jobs)
			if err != nil {
				cc.Renderer.Diagnostic("", engine.StageOf(err), err)
				return errCompileFailed
			}

			if err := printResults(cc.Renderer, jobs, results); err != nil {
				return err
			}

			if !run && !cc.Cfg.Autorun {
				return nil
			}
			if len(results) != 1 {
				return fmt.Errorf("--run needs exactly one source, got %d", len(results))
			}
			return cc.Toolchain.Run(cmd.Context(), results[0].Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Output file for a single source (default: config output)")
	cmd.Flags().BoolVar(&run, "run", false, "Run the compiled program with dotnet")

	return cmd
}

// compileJobs expands arguments into jobs. A lone file argument, or the
// configured source, writes to the configured output.
func compileJobs(cc *CommandContext, args []string, outFile string) ([]engine.Job, error) {
	cfg := cc.Cfg
	if len(args) == 0 {
		if cfg.Source == "" {
			return nil, errors.New("no source given and none configured")
		}
		args = []string{cfg.Resolve(cfg.Source)}
	}

	single := outFile
	if single == "" {
		single = cfg.Resolve(cfg.Output)
	}

	var jobs []engine.Job
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if info.IsDir() {
			found, err := engine.Discover(arg)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, found...)
			continue
		}
		out := engine.OutputFor(arg)
		if len(args) == 1 {
			out = single
		}
		jobs = append(jobs, engine.Job{Source: arg, Output: out})
	}
	return jobs, nil
}

func printResults(r *output.Renderer, jobs []engine.Job, results []*engine.Result) error {
	if r.EffectiveMode() == output.ModeJSON {
		out := make([]CompileJSON, len(results))
		for i, res := range results {
			out[i] = CompileJSON{
				Source:     jobs[i].Source,
				Output:     jobs[i].Output,
				Hash:       res.Hash,
				Cached:     res.Cached,
				Tokens:     res.Tokens,
				DurationMS: res.Duration().Milliseconds(),
			}
		}
		return r.JSON(out)
	}

	for i, res := range results {
		line := fmt.Sprintf("%s -> %s", jobs[i].Source, jobs[i].Output)
		if res.Cached {
			line += " " + r.Styles().Muted.Render("(cached)")
		}
		r.Success(line)
	}
	return nil
}
