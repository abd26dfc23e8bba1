package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// SourceExt is the file extension of BigSharp sources.
const SourceExt = ".bs"

// Job pairs a source file with the path its C# output is written to.
type Job struct {
	Source string
	Output string
}

// OutputFor returns the default output path for a source: the same path
// with a .cs extension.
func OutputFor(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".cs"
}

// Discover walks dir and returns one job per BigSharp source, in lexical
// order, each writing next to its source.
func Discover(dir string) ([]Job, error) {
	var jobs []Job
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Ext(path) != SourceExt {
			return nil
		}
		jobs = append(jobs, Job{Source: path, Output: OutputFor(path)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover sources in %s: %w", dir, err)
	}
	return jobs, nil
}

// CompileFile reads job.Source, compiles it and writes job.Output. The
// output file is left untouched when compilation fails.
func (e *Engine) CompileFile(ctx context.Context, job Job) (*Result, error) {
	src, err := os.ReadFile(job.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	res, err := e.Compile(ctx, job.Source, string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", job.Source, err)
	}

	if dir := filepath.Dir(job.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(job.Output, []byte(res.Output), 0o644); err != nil { //nolint:gosec // generated source is not secret
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	e.logger.Debug("wrote output", "source", job.Source, "output", job.Output, "cached", res.Cached)
	return res, nil
}

// CompileAll compiles jobs in parallel. Results are returned in job order.
// The first failure cancels the remaining units and is returned.
func (e *Engine) CompileAll(ctx context.Context, jobs []Job) ([]*Result, error) {
	start := time.Now()
	results := make([]*Result, len(jobs))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		eg.Go(func() error {
			res, err := e.CompileFile(egctx, job)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}

	e.logger.Info("compilation completed",
		"units", len(jobs),
		"duration_ms", time.Since(start).Milliseconds())
	return results, nil
}
