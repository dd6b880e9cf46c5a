package arbor

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/arbor/core"
)

// Visitor is invoked once per visited node with the node's identifier and a
// snapshot of its payload. No arena or node lock is held on the payload
// while the visitor runs, so a visitor may call back into the arena.
type Visitor[T any] func(id core.NodeID, payload T)

// MTArena wraps an Arena behind one more reader/writer lock so whole-arena
// phases can be made stable against each other: a parallel walk holds the
// wrapper's read lock for its full duration, while structural mutations go
// through Update and take the write lock. Use it when a traversal should
// run off the calling goroutine, e.g. to overlap a long per-node visitor
// with other work.
type MTArena[T any] struct {
	mu    sync.RWMutex
	arena *Arena[T]
}

// NewMT creates an MTArena around a fresh empty arena.
func NewMT[T any](optFns ...Option) *MTArena[T] {
	return &MTArena[T]{
		arena: New[T](optFns...),
	}
}

// View runs fn with shared access to the arena. Concurrent View calls and
// running walks proceed in parallel; Update calls are blocked out.
func (m *MTArena[T]) View(fn func(a *Arena[T])) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(m.arena)
}

// Update runs fn with exclusive access to the arena, blocking out every
// View call and running walk for its duration.
func (m *MTArena[T]) Update(fn func(a *Arena[T])) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.arena)
}

// Walk is the join handle returned by TreeWalkParallel.
type Walk struct {
	done chan struct{}
	ids  []core.NodeID
	err  error
}

// Wait blocks until the background walk finishes and returns the visited
// identifiers in WalkDFS order (nil for an unknown root). If the walk or a
// visitor panicked, the ids are nil and err carries the panic value;
// joining is the only way to observe such a failure.
func (w *Walk) Wait() ([]core.NodeID, error) {
	<-w.done
	return w.ids, w.err
}

// TreeWalkParallel starts a depth-first walk of the subtree rooted at root
// on a new goroutine and returns a handle the caller joins for the result.
//
// The goroutine holds the wrapper's read lock for the whole walk and
// visitor loop, so the set of visited nodes is stable relative to writers
// going through Update for the remainder of the walk. The visitor is called
// synchronously on that goroutine, once per visited node, in WalkDFS order.
func (m *MTArena[T]) TreeWalkParallel(root core.NodeID, visitor Visitor[T]) *Walk {
	w := &Walk{done: make(chan struct{})}

	go func() {
		defer close(w.done)
		defer func() {
			if r := recover(); r != nil {
				w.ids = nil
				w.err = fmt.Errorf("arbor: parallel tree walk panicked: %v", r)
			}
		}()

		m.mu.RLock()
		defer m.mu.RUnlock()

		ids := m.arena.WalkDFS(root)
		for _, id := range ids {
			if payload, ok := m.arena.PayloadOf(id); ok {
				visitor(id, payload)
			}
		}

		w.ids = ids
	}()

	return w
}

// TreeWalkSubtrees walks several subtrees concurrently, one goroutine per
// root, invoking visitor for every node of every subtree. Unknown roots are
// skipped. The wrapper's read lock is held until all walks finish; a panic
// in any visitor is re-raised from this call.
func (m *MTArena[T]) TreeWalkSubtrees(roots []core.NodeID, visitor Visitor[T]) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g := new(errgroup.Group)
	for _, root := range roots {
		g.Go(func() error {
			for _, id := range m.arena.WalkDFS(root) {
				if payload, ok := m.arena.PayloadOf(id); ok {
					visitor(id, payload)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
