package arbor

import (
	"weak"

	"github.com/hupe1980/arbor/core"
	"github.com/hupe1980/arbor/lockutil"
)

// Node is the record the arena stores per identifier. The struct is only
// ever reached through its Guarded wrapper, so the fields are as safe to
// mutate inside a lock closure as they are to read.
//
// Parent is core.NoID for a root. Children holds the ordered child
// identifiers; it never contains duplicates or the node's own ID.
type Node[T any] struct {
	ID       core.NodeID
	Parent   core.NodeID
	Children []core.NodeID
	Payload  T
}

// IsRoot reports whether the node records no parent.
func (n *Node[T]) IsRoot() bool { return n.Parent == core.NoID }

// NodeRef is the shared handle to a node's backing storage: it keeps the
// storage alive and lockable even if the arena deletes the identifier from
// its table. Navigational operations stop finding the node by ID at that
// point, but an already-held NodeRef stays usable.
type NodeRef[T any] = *lockutil.Guarded[Node[T]]

// WeakNodeRef is the non-owning handle to a node. It must be upgraded
// before use.
//
// Liveness is decided by the garbage collector rather than a reference
// count: Upgrade is guaranteed to fail once no NodeRef (and no arena table
// entry) keeps the node reachable and the collector has reclaimed it, but
// it may still succeed for a short while after the last strong reference is
// dropped.
type WeakNodeRef[T any] struct {
	p weak.Pointer[lockutil.Guarded[Node[T]]]
}

// Upgrade attempts to recover a shared handle from the weak one.
func (w WeakNodeRef[T]) Upgrade() (NodeRef[T], bool) {
	ref := w.p.Value()
	return ref, ref != nil
}
