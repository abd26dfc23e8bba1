// Package engine drives BigSharp sources through the compile pipeline:
// normalize, lex, rewrite, render and stitch.
// It owns the optional compile cache and the fan-out over many sources.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/leapstack-labs/bigsharp/internal/state"
	"github.com/leapstack-labs/bigsharp/pkg/calc"
	"github.com/leapstack-labs/bigsharp/pkg/decimal"
	"github.com/leapstack-labs/bigsharp/pkg/normalize"
	"github.com/leapstack-labs/bigsharp/pkg/render"
	"github.com/leapstack-labs/bigsharp/pkg/rewrite"
)

// Pipeline stage names, in execution order.
const (
	StageNormalize = "normalize"
	StageLex       = "lex"
	StageRewrite   = "rewrite"
	StageRender    = "render"
	StageStitch    = "stitch"
)

// Engine compiles BigSharp programs into C#.
type Engine struct {
	logger  *slog.Logger
	store   state.Store
	ctx     decimal.Context
	locale  language.Tag
	norm    normalize.Options
	rewrite rewrite.Options
	header  string
	footer  string
}

// Config holds engine configuration.
type Config struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// Precision is the fractional digit budget for the calculator. Zero
	// means the decimal default.
	Precision int
	// Interpolation splices {expr} spans of $"..." strings.
	Interpolation bool
	// Passes enables or disables rewrite passes by ID. Missing IDs are on.
	Passes map[string]bool
	// Header and Footer wrap the rendered body. Empty means the embedded
	// defaults.
	Header string
	Footer string
	// Locale selects the separators used by the calculator's num().
	Locale language.Tag
	// Store caches compiled output. Nil disables caching.
	Store state.Store
	// Names generates memo table suffixes. Defaults to random UUIDs.
	Names rewrite.NameSource
}

// StageError reports the pipeline stage that rejected a program.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the stage recorded in err, or "" when err did not come
// from the pipeline.
func StageOf(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// New creates an engine. Unknown pass IDs are rejected here so a bad
// configuration fails before any source is read.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx := decimal.DefaultContext()
	if cfg.Precision > 0 {
		ctx = decimal.WithPrecision(cfg.Precision)
	}

	disabled := make(map[string]bool)
	for id, on := range cfg.Passes {
		if !rewrite.IsPass(id) {
			return nil, fmt.Errorf("unknown rewrite pass %q", id)
		}
		if !on {
			disabled[id] = true
		}
	}

	header, footer := cfg.Header, cfg.Footer
	if header == "" {
		header = render.DefaultHeader()
	}
	if footer == "" {
		footer = render.DefaultFooter()
	}

	logger.Debug("initializing engine",
		"precision", ctx.Precision,
		"interpolation", cfg.Interpolation,
		"disabled_passes", len(disabled),
		"cache", cfg.Store != nil)

	return &Engine{
		logger: logger,
		store:  cfg.Store,
		ctx:    ctx,
		locale: cfg.Locale,
		norm:   normalize.Options{Interpolation: cfg.Interpolation},
		rewrite: rewrite.Options{
			Disabled: disabled,
			Names:    cfg.Names,
			Logger:   logger,
		},
		header: header,
		footer: footer,
	}, nil
}

// Context returns the decimal context the engine evaluates with.
func (e *Engine) Context() decimal.Context { return e.ctx }

// Calculator returns an evaluator sharing the engine's precision and
// locale.
func (e *Engine) Calculator() *calc.Evaluator {
	ev := calc.New(e.ctx)
	ev.Locale = e.locale
	return ev
}

// Close releases the cache store, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Close(); err != nil {
		return fmt.Errorf("failed to close cache: %w", err)
	}
	return nil
}
