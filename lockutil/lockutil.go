// Package lockutil provides Guarded, a reader/writer-locked value with
// closure-based access helpers.
//
// The helpers acquire the appropriate lock, invoke a closure with the
// guarded value and release the lock on every exit path, including early
// return and panic. Critical sections stay minimal and are safe to compose.
//
// Guarded also implements lock poisoning: if a closure panics while the
// write lock is held, the value may be torn, so the guard is marked
// poisoned and every subsequent acquisition panics with a value wrapping
// ErrPoisoned rather than silently handing out possibly-inconsistent state.
// A panic under the read lock does not poison; readers cannot tear the
// value.
package lockutil

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrPoisoned is the sentinel carried by the panic raised when a Guarded
// value is accessed after a writer panicked while holding its lock.
var ErrPoisoned = errors.New("lockutil: guarded value is poisoned")

// Guarded wraps a value of type T behind a reader/writer lock.
// The zero Guarded guards the zero T and is ready to use.
type Guarded[T any] struct {
	mu       sync.RWMutex
	poisoned atomic.Bool
	value    T
}

// NewGuarded returns a Guarded holding v.
func NewGuarded[T any](v T) *Guarded[T] {
	return &Guarded[T]{value: v}
}

// Poisoned reports whether a writer panicked while holding the lock.
// Once poisoned, a Guarded never recovers.
func (g *Guarded[T]) Poisoned() bool {
	return g.poisoned.Load()
}

func (g *Guarded[T]) checkPoison() {
	if g.poisoned.Load() {
		panic(fmt.Errorf("%w", ErrPoisoned))
	}
}

// Read acquires the read lock and invokes fn with the guarded value.
func (g *Guarded[T]) Read(fn func(v *T)) {
	g.checkPoison()
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.checkPoison()
	fn(&g.value)
}

// Write acquires the write lock and invokes fn with the guarded value.
// If fn panics, the guard is poisoned before the panic propagates.
func (g *Guarded[T]) Write(fn func(v *T)) {
	g.checkPoison()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.checkPoison()

	committed := false
	defer func() {
		if !committed {
			g.poisoned.Store(true)
		}
	}()
	fn(&g.value)
	committed = true
}

// WithRead acquires the read lock on g and returns fn's result.
// It exists alongside Guarded.Read because methods cannot introduce the
// result type parameter.
func WithRead[T, R any](g *Guarded[T], fn func(v *T) R) R {
	var out R
	g.Read(func(v *T) {
		out = fn(v)
	})
	return out
}

// WithWrite acquires the write lock on g and returns fn's result.
// A panic inside fn poisons g.
func WithWrite[T, R any](g *Guarded[T], fn func(v *T) R) R {
	var out R
	g.Write(func(v *T) {
		out = fn(v)
	})
	return out
}
