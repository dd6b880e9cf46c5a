package arbor

import (
	"errors"
	"fmt"

	"github.com/hupe1980/arbor/core"
	"github.com/hupe1980/arbor/lockutil"
)

var (
	// ErrNotFound is the sentinel wrapped by every "identifier does not
	// exist" failure that is reported as an error rather than an ok=false.
	ErrNotFound = errors.New("arbor: node not found")

	// ErrPoisoned is raised (as a panic) when a node's lock was poisoned by
	// a writer that panicked mid-mutation. Re-exported from lockutil so
	// callers can match it without importing that package.
	ErrPoisoned = lockutil.ErrPoisoned
)

// ErrParentNotFound indicates an insert against a parent identifier that is
// not (or no longer) present in the arena.
//
// It unwraps to ErrNotFound.
type ErrParentNotFound struct {
	Parent core.NodeID
}

func (e *ErrParentNotFound) Error() string {
	return fmt.Sprintf("parent node %d not found", e.Parent)
}

func (e *ErrParentNotFound) Unwrap() error { return ErrNotFound }
