// Package rewrite lowers a lexed BigSharp token stream into a stream the
// renderer can print as C#.
//
// The rewriter runs a fixed, ordered list of passes over a token.Stream.
// Each pass rescans the whole stream and edits it in place through the
// stream's Insert, Remove and Replace cursors. A stream can be rewritten
// only once: index correction and memoization are not idempotent.
package rewrite

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/leapstack-labs/bigsharp/pkg/token"
)

// Pass IDs, in run order.
const (
	PassCoalesce = "coalesce"
	PassChecks   = "checks"
	PassJumps    = "jumps"
	PassBlocks   = "blocks"
	PassPrint    = "print"
	PassDeclare  = "declare"
	PassStrings  = "strings"
	PassContains = "contains"
	PassMemoize  = "memoize"
	PassIndex    = "index"
	PassCleanup  = "cleanup"
)

// ErrAlreadyRewritten is returned when Run is called twice on one stream.
var ErrAlreadyRewritten = errors.New("token stream has already been rewritten")

// PassError reports a structural violation found by a pass.
type PassError struct {
	Pass    string
	Pos     token.Position
	Message string
}

func (e *PassError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: line %d, column %d: %s", e.Pass, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Pass, e.Message)
}

// PassDef describes a registered pass.
type PassDef struct {
	ID          string
	Description string
	run         func(*run) error
}

var registry = []PassDef{
	{ID: PassCoalesce, Description: "merge adjacent unknown characters into identifiers", run: coalesce},
	{ID: PassChecks, Description: "reject constant reassignment and direct goto", run: checks},
	{ID: PassJumps, Description: "rewrite labelled break and continue to goto", run: jumps},
	{ID: PassBlocks, Description: "insert braces around single-statement if, elif and else bodies", run: blocks},
	{ID: PassPrint, Description: "stringify the argument of bare WriteLine and Write calls", run: printCalls},
	{ID: PassDeclare, Description: "tag declared variables and methods", run: declare},
	{ID: PassStrings, Description: "wrap string literals in FastString", run: wrapStrings},
	{ID: PassContains, Description: "lower the in operator to a membership test", run: contains},
	{ID: PassMemoize, Description: "cache the results of [Optimized] functions", run: memoize},
	{ID: PassIndex, Description: "shift literal indexes from 1-based to 0-based", run: index},
	{ID: PassCleanup, Description: "drop the terminator after a function body", run: cleanup},
}

// Passes returns every pass in run order.
func Passes() []PassDef {
	return slices.Clone(registry)
}

// IsPass reports whether id names a registered pass.
func IsPass(id string) bool {
	return slices.ContainsFunc(registry, func(p PassDef) bool { return p.ID == id })
}

// NameSource returns a fresh suffix for synthesized identifiers.
type NameSource func() string

// UUIDNames derives suffixes from random UUIDs.
func UUIDNames() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Options configures a Rewriter.
type Options struct {
	// Disabled lists pass IDs to skip.
	Disabled map[string]bool

	// Names generates suffixes for memo tables. Defaults to UUIDNames.
	Names NameSource

	Logger *slog.Logger
}

// Rewriter applies the enabled passes to token streams.
type Rewriter struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Rewriter. Unknown pass IDs in Disabled are reported.
func New(opts Options) (*Rewriter, error) {
	for id := range opts.Disabled {
		if !IsPass(id) {
			return nil, fmt.Errorf("unknown rewrite pass %q", id)
		}
	}
	if opts.Names == nil {
		opts.Names = UUIDNames
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Rewriter{opts: opts, logger: logger}, nil
}

// Enabled reports whether the pass id will run.
func (r *Rewriter) Enabled(id string) bool {
	return !r.opts.Disabled[id]
}

// Run rewrites s in place.
func (r *Rewriter) Run(s *token.Stream) error {
	if !s.MarkRewritten() {
		return ErrAlreadyRewritten
	}

	st := &run{s: s, names: r.opts.Names}
	for _, p := range registry {
		if !r.Enabled(p.ID) {
			r.logger.Debug("pass skipped", slog.String("pass", p.ID))
			continue
		}
		st.pass = p.ID
		before := s.Len()
		if err := p.run(st); err != nil {
			return err
		}
		r.logger.Debug("pass done",
			slog.String("pass", p.ID),
			slog.Int("tokens_before", before),
			slog.Int("tokens_after", s.Len()))
	}
	return nil
}

// Rewrite runs every pass over s with default options.
func Rewrite(s *token.Stream) error {
	r, err := New(Options{})
	if err != nil {
		return err
	}
	return r.Run(s)
}

// run is the per-stream state shared by the passes.
type run struct {
	s     *token.Stream
	names NameSource
	pass  string
}

func (r *run) fail(t token.Token, format string, args ...any) error {
	return &PassError{Pass: r.pass, Pos: t.Pos, Message: fmt.Sprintf(format, args...)}
}
