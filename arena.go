package arbor

import (
	"slices"
	"sync"
	"weak"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/google/uuid"

	"github.com/hupe1980/arbor/core"
	"github.com/hupe1980/arbor/lockutil"
)

// Arena owns a table mapping identifiers to independently-lockable nodes,
// plus the atomic generator for fresh identifiers. It is the unit of
// thread-safety: every operation may be called from any goroutine.
//
// Two independent lock levels are in play:
//
//   - the structural lock (a single RWMutex) guards the table's membership
//     and the live-ID bitmap. Inserts and removals take it in write mode;
//     lookups and iteration take it in read mode, so arbitrarily many
//     readers proceed concurrently.
//   - each node's content (parent, children, payload) is guarded by its own
//     lock (lockutil.Guarded), independent of every other node's lock and
//     of the structural lock.
//
// The payload type T must be safe to share across goroutines and cheap to
// copy: payloads are snapshot whenever they cross a lock boundary (into
// FilterBy predicates and traversal visitors), so a callback never runs
// while the node's lock is held.
type Arena[T any] struct {
	mu    sync.RWMutex // structural lock: guards nodes and live
	nodes map[core.NodeID]NodeRef[T]
	live  *roaring64.Bitmap

	gen        core.IDGenerator
	instanceID uuid.UUID

	opts options
}

// New creates an empty arena. The identifier generator starts at 0.
func New[T any](optFns ...Option) *Arena[T] {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Arena[T]{
		nodes:      make(map[core.NodeID]NodeRef[T], opts.initialCapacity),
		live:       roaring64.New(),
		instanceID: uuid.New(),
		opts:       opts,
	}
}

// InstanceID identifies this arena instance. Identifiers are scoped per
// instance and must never be resolved against a different arena; callers
// that route IDs between components can use the instance ID to enforce
// that.
func (a *Arena[T]) InstanceID() uuid.UUID {
	return a.instanceID
}

// Size returns the number of live nodes.
func (a *Arena[T]) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return int(a.live.GetCardinality())
}

// IsEmpty reports whether the arena holds no live nodes.
func (a *Arena[T]) IsEmpty() bool {
	return a.Size() == 0
}

// LiveIDs returns a snapshot of the live identifier set. The bitmap is a
// copy; it does not track later inserts or deletes.
func (a *Arena[T]) LiveIDs() *roaring64.Bitmap {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.live.Clone()
}

// AddRoot inserts a new parentless node and returns its identifier.
func (a *Arena[T]) AddRoot(payload T) core.NodeID {
	id := a.gen.Next()
	a.insert(id, core.NoID, payload)
	a.opts.logger.LogAdd(uint64(id), 0, true)
	return id
}

// AddNode inserts a new node under parent and returns its identifier.
// It fails with *ErrParentNotFound if parent is not present.
//
// The new node becomes visible in the table before it is linked into the
// parent's children, so a concurrent reader may briefly observe it before
// it is reachable from the parent. If the parent is deleted in that window
// the link step is skipped and the node is left as an orphan: it exists in
// the table, its Parent field names the deleted identifier, and no live
// node lists it as a child. HasParent reports false for such nodes.
func (a *Arena[T]) AddNode(payload T, parent core.NodeID) (core.NodeID, error) {
	if !a.Contains(parent) {
		return core.NoID, &ErrParentNotFound{Parent: parent}
	}

	id := a.gen.Next()
	a.insert(id, parent, payload)

	if ref, ok := a.lookup(parent); ok {
		ref.Write(func(n *Node[T]) {
			n.Children = append(n.Children, id)
		})
	}

	a.opts.logger.LogAdd(uint64(id), uint64(parent), false)
	return id, nil
}

func (a *Arena[T]) insert(id, parent core.NodeID, payload T) {
	ref := lockutil.NewGuarded(Node[T]{
		ID:      id,
		Parent:  parent,
		Payload: payload,
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	a.nodes[id] = ref
	a.live.Add(uint64(id))
}

// lookup resolves id to its shared handle under the structural read lock.
func (a *Arena[T]) lookup(id core.NodeID) (NodeRef[T], bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ref, ok := a.nodes[id]
	return ref, ok
}

// Contains reports whether id names a live node.
func (a *Arena[T]) Contains(id core.NodeID) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.live.Contains(uint64(id))
}

// ParentOf returns the recorded parent of id. ok is false if id does not
// exist or has no parent; the two causes are not distinguished.
func (a *Arena[T]) ParentOf(id core.NodeID) (core.NodeID, bool) {
	ref, ok := a.lookup(id)
	if !ok {
		return core.NoID, false
	}

	parent := lockutil.WithRead(ref, func(n *Node[T]) core.NodeID {
		return n.Parent
	})
	if parent == core.NoID {
		return core.NoID, false
	}

	return parent, true
}

// ChildrenOf returns a copy of id's ordered child list. ok is false if id
// does not exist; existing but childless nodes yield an empty slice.
func (a *Arena[T]) ChildrenOf(id core.NodeID) ([]core.NodeID, bool) {
	ref, ok := a.lookup(id)
	if !ok {
		return nil, false
	}

	children := lockutil.WithRead(ref, func(n *Node[T]) []core.NodeID {
		return slices.Clone(n.Children)
	})
	if children == nil {
		children = []core.NodeID{}
	}

	return children, true
}

// HasParent reports whether id exists, records a parent, and that parent
// itself is still live. It guards against dangling parent references left
// behind by the documented insert/delete race.
func (a *Arena[T]) HasParent(id core.NodeID) bool {
	parent, ok := a.ParentOf(id)
	return ok && a.Contains(parent)
}

// PayloadOf returns a snapshot of id's payload.
func (a *Arena[T]) PayloadOf(id core.NodeID) (T, bool) {
	ref, ok := a.lookup(id)
	if !ok {
		var zero T
		return zero, false
	}

	return lockutil.WithRead(ref, func(n *Node[T]) T {
		return n.Payload
	}), true
}

// SetPayload replaces id's payload. It returns false if id does not exist.
func (a *Arena[T]) SetPayload(id core.NodeID, payload T) bool {
	ref, ok := a.lookup(id)
	if !ok {
		return false
	}

	ref.Write(func(n *Node[T]) {
		n.Payload = payload
	})
	return true
}

// FilterBy scans the full live set once and returns the identifiers whose
// (id, payload) pair satisfies pred, or nil when nothing matches.
//
// The predicate is evaluated against payload snapshots after every lock has
// been released, so it may freely call back into the arena. Result order is
// table-iteration order and must not be relied on.
func (a *Arena[T]) FilterBy(pred func(id core.NodeID, payload T) bool) []core.NodeID {
	type snapshot struct {
		id      core.NodeID
		payload T
	}

	a.mu.RLock()
	snapshots := make([]snapshot, 0, len(a.nodes))
	for id, ref := range a.nodes {
		snapshots = append(snapshots, snapshot{
			id: id,
			payload: lockutil.WithRead(ref, func(n *Node[T]) T {
				return n.Payload
			}),
		})
	}
	a.mu.RUnlock()

	var matches []core.NodeID
	for _, s := range snapshots {
		if pred(s.id, s.payload) {
			matches = append(matches, s.id)
		}
	}

	return matches
}

// NodeRef returns the shared handle to id's backing storage. The handle
// keeps the storage alive and lockable even if the arena concurrently
// deletes id from the table; from that point on only the handle reaches
// the node, navigational operations no longer find it.
func (a *Arena[T]) NodeRef(id core.NodeID) (NodeRef[T], bool) {
	return a.lookup(id)
}

// NodeWeakRef returns a non-owning handle to id. See WeakNodeRef for the
// upgrade contract.
func (a *Arena[T]) NodeWeakRef(id core.NodeID) (WeakNodeRef[T], bool) {
	ref, ok := a.lookup(id)
	if !ok {
		return WeakNodeRef[T]{}, false
	}
	return WeakNodeRef[T]{p: weak.Make(ref)}, true
}

// WalkDFS traverses the subtree rooted at root depth-first and returns the
// visited identifiers, or nil if root does not exist.
//
// The traversal is iterative over an explicit stack, never recursive, so
// arbitrarily deep trees cannot exhaust the goroutine stack: pop the top
// identifier, record it, push its children in list order. The LIFO stack
// makes later children pop first; that order is part of the contract.
//
// A child deleted mid-walk simply ends that branch; the rest of the walk
// proceeds.
func (a *Arena[T]) WalkDFS(root core.NodeID) []core.NodeID {
	if !a.Contains(root) {
		return nil
	}

	var visited []core.NodeID
	stack := []core.NodeID{root}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ref, ok := a.lookup(id)
		if !ok {
			// Deleted while we walked; skip the branch.
			continue
		}

		visited = append(visited, id)
		ref.Read(func(n *Node[T]) {
			stack = append(stack, n.Children...)
		})
	}

	a.opts.logger.LogWalk(uint64(root), len(visited))

	if len(visited) == 0 {
		return nil
	}
	return visited
}

// Delete removes id and its entire subtree as one unit and returns the
// deleted identifiers in WalkDFS order, or nil if id does not exist.
// Partial deletion of a subtree is not supported; this is the only bulk
// removal path.
//
// The deleted root is detached from its former parent's children before the
// table entries are removed.
func (a *Arena[T]) Delete(id core.NodeID) []core.NodeID {
	doomed := a.WalkDFS(id)
	if doomed == nil {
		return nil
	}

	if parent, ok := a.ParentOf(id); ok {
		if ref, ok := a.lookup(parent); ok {
			ref.Write(func(n *Node[T]) {
				n.Children = slices.DeleteFunc(n.Children, func(c core.NodeID) bool {
					return c == id
				})
			})
		}
	}

	a.mu.Lock()
	for _, d := range doomed {
		delete(a.nodes, d)
		a.live.Remove(uint64(d))
	}
	a.mu.Unlock()

	a.opts.logger.LogDelete(uint64(id), len(doomed))
	return doomed
}
