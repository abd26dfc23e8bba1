// Package state persists compiled programs so unchanged sources are not
// lowered twice.
package state

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no compilation matches a hash.
var ErrNotFound = errors.New("compilation not found")

// Compilation is one cached compile result.
type Compilation struct {
	ID          string
	SourcePath  string
	ContentHash string
	Output      string
	CompiledAt  time.Time
}

// Store is the cache surface the engine depends on.
type Store interface {
	GetCompilation(hash string) (*Compilation, error)
	SaveCompilation(rec *Compilation) error
	PruneBefore(t time.Time) (int64, error)
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
