package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/bigsharp/internal/state"
	"github.com/leapstack-labs/bigsharp/pkg/lexer"
	"github.com/leapstack-labs/bigsharp/pkg/normalize"
	"github.com/leapstack-labs/bigsharp/pkg/render"
	"github.com/leapstack-labs/bigsharp/pkg/rewrite"
	"github.com/leapstack-labs/bigsharp/pkg/token"
)

// StageTiming is the wall time one stage took.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Result is the outcome of compiling one source.
type Result struct {
	Name   string
	Output string
	Hash   string
	Cached bool
	Tokens int
	Stages []StageTiming
}

// Duration returns the total time spent across all stages.
func (r *Result) Duration() time.Duration {
	var d time.Duration
	for _, s := range r.Stages {
		d += s.Duration
	}
	return d
}

// Compile lowers src to a complete C# program. name labels the unit in logs
// and in the cache. A failure in any stage aborts the unit with no output
// and is returned as a *StageError.
func (e *Engine) Compile(ctx context.Context, name, src string) (*Result, error) {
	res := &Result{Name: name, Hash: e.cacheKey(src)}

	if out, ok := e.lookup(res.Hash); ok {
		e.logger.Debug("cache hit", "source", name, "hash", res.Hash)
		res.Output = out
		res.Cached = true
		return res, nil
	}

	start := time.Now()
	stage := func(id string) {
		now := time.Now()
		res.Stages = append(res.Stages, StageTiming{Stage: id, Duration: now.Sub(start)})
		start = now
	}

	text := normalize.Normalize(src, e.norm)
	stage(StageNormalize)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := lexer.Tokenize(text)
	if err != nil {
		return nil, &StageError{Stage: StageLex, Err: err}
	}
	stage(StageLex)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.runPasses(s); err != nil {
		return nil, &StageError{Stage: StageRewrite, Err: err}
	}
	stage(StageRewrite)

	body, err := render.Render(s.Tokens())
	if err != nil {
		return nil, &StageError{Stage: StageRender, Err: err}
	}
	stage(StageRender)

	res.Output = render.Stitch(e.header, body, e.footer)
	res.Tokens = s.Len()
	stage(StageStitch)

	e.logger.Info("compiled",
		"source", name,
		"tokens", res.Tokens,
		"duration_ms", res.Duration().Milliseconds())

	e.save(name, res)
	return res, nil
}

// Tokens returns the stream after the given stage, StageLex or
// StageRewrite, for inspection.
func (e *Engine) Tokens(src, stage string) ([]token.Token, error) {
	if stage != StageLex && stage != StageRewrite {
		return nil, fmt.Errorf("tokens: unknown stage %q, want %s or %s", stage, StageLex, StageRewrite)
	}

	s, err := lexer.Tokenize(normalize.Normalize(src, e.norm))
	if err != nil {
		return nil, &StageError{Stage: StageLex, Err: err}
	}
	if stage == StageRewrite {
		if err := e.runPasses(s); err != nil {
			return nil, &StageError{Stage: StageRewrite, Err: err}
		}
	}
	return s.Tokens(), nil
}

// Lower runs the pipeline on a snippet and returns the rendered body
// without header or footer. The cache is not consulted.
func (e *Engine) Lower(src string) (string, error) {
	toks, err := e.Tokens(src, StageRewrite)
	if err != nil {
		return "", err
	}
	body, err := render.Render(toks)
	if err != nil {
		return "", &StageError{Stage: StageRender, Err: err}
	}
	return body, nil
}

func (e *Engine) runPasses(s *token.Stream) error {
	r, err := rewrite.New(e.rewrite)
	if err != nil {
		return err
	}
	return r.Run(s)
}

// cacheKey hashes the source together with every option that changes the
// generated text.
func (e *Engine) cacheKey(src string) string {
	disabled := make([]string, 0, len(e.rewrite.Disabled))
	for id := range e.rewrite.Disabled {
		disabled = append(disabled, id)
	}
	slices.Sort(disabled)

	h := sha256.New()
	for _, part := range []string{
		src,
		strconv.FormatBool(e.norm.Interpolation),
		strings.Join(disabled, ","),
		e.header,
		e.footer,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

func (e *Engine) lookup(hash string) (string, bool) {
	if e.store == nil {
		return "", false
	}
	rec, err := e.store.GetCompilation(hash)
	if err != nil {
		if !errors.Is(err, state.ErrNotFound) {
			e.logger.Warn("cache lookup failed", "hash", hash, "error", err)
		}
		return "", false
	}
	return rec.Output, true
}

func (e *Engine) save(name string, res *Result) {
	if e.store == nil {
		return
	}
	err := e.store.SaveCompilation(&state.Compilation{
		SourcePath:  name,
		ContentHash: res.Hash,
		Output:      res.Output,
	})
	if err != nil {
		e.logger.Warn("cache save failed", "source", name, "error", err)
	}
}
