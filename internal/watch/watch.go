// Package watch recompiles BigSharp sources when they change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/bigsharp/internal/engine"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Compiler is the part of the engine the watcher drives.
type Compiler interface {
	CompileFile(ctx context.Context, job engine.Job) (*engine.Result, error)
}

// Event reports one recompilation.
type Event struct {
	Job    engine.Job
	Result *engine.Result
	Err    error
}

// Watcher recompiles a fixed set of jobs whenever their sources change.
type Watcher struct {
	Compiler Compiler
	Jobs     []engine.Job
	Debounce time.Duration
	Logger   *slog.Logger

	// OnCompile is called after every compilation, including the initial
	// one. It runs on the watcher's goroutine.
	OnCompile func(Event)
}

// Run compiles every job once, then watches their directories until ctx is
// cancelled. Compile failures are reported through OnCompile and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	bySource := make(map[string]engine.Job, len(w.Jobs))
	dirs := make(map[string]bool)
	for _, job := range w.Jobs {
		abs, err := filepath.Abs(job.Source)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", job.Source, err)
		}
		bySource[abs] = job
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	for _, job := range w.Jobs {
		w.compile(ctx, job)
	}
	logger.Info("watching for changes", "sources", len(w.Jobs))

	changed := make(chan string, len(w.Jobs)+1)
	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		timers := make(map[string]*time.Timer)
		defer func() {
			for _, t := range timers {
				t.Stop()
			}
		}()
		for {
			select {
			case <-egctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				abs, err := filepath.Abs(event.Name)
				if err != nil {
					continue
				}
				if _, ok := bySource[abs]; !ok {
					continue
				}
				if t := timers[abs]; t != nil {
					t.Stop()
				}
				timers[abs] = time.AfterFunc(debounce, func() {
					select {
					case changed <- abs:
					case <-egctx.Done():
					}
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Error("watcher error", "error", err)
			}
		}
	})

	eg.Go(func() error {
		for {
			select {
			case <-egctx.Done():
				return nil
			case abs := <-changed:
				logger.Debug("file changed, recompiling", "file", abs)
				w.compile(egctx, bySource[abs])
			}
		}
	})

	return eg.Wait()
}

func (w *Watcher) compile(ctx context.Context, job engine.Job) {
	res, err := w.Compiler.CompileFile(ctx, job)
	if w.OnCompile != nil {
		w.OnCompile(Event{Job: job, Result: res, Err: err})
	}
}

// Jobs expands a path into compile jobs: a directory yields every source
// below it, a file yields itself writing to output, or to the default
// output path when output is empty.
func Jobs(path, output string) ([]engine.Job, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return engine.Discover(path)
	}
	if output == "" {
		output = engine.OutputFor(path)
	}
	return []engine.Job{{Source: path, Output: output}}, nil
}
