// Package arbor provides a concurrent, identifier-addressed tree arena.
//
// The arena stores an arbitrary non-binary tree of user payloads. Nodes
// never point at each other: structural relationships (parent links, child
// lists) are expressed as opaque integer identifiers resolved through the
// arena's table, so the tree cannot form ownership cycles and any node is
// addressable by its ID alone.
//
// # Quick Start
//
//	a := arbor.New[string]()
//
//	root := a.AddRoot("root")
//	child, _ := a.AddNode("child", root)
//
//	a.ChildrenOf(root) // [child], true
//	a.WalkDFS(root)    // [root, child]
//	a.Delete(root)     // [root, child] — cascading, one unit
//
// # Concurrency
//
// Every Arena operation is safe to call from any goroutine. Membership of
// the ID table is guarded by one reader/writer lock; each node's content is
// guarded by its own independent lock, so readers of different nodes never
// contend. Identifier allocation is a single atomic counter, so concurrent
// inserts never collide on an ID.
//
// Payloads are snapshot whenever they cross a lock boundary (FilterBy
// predicates, traversal visitors), so callbacks can re-enter the arena
// without self-deadlock.
//
// If a mutation closure panics while holding a node's write lock, the
// node's lock is poisoned and every later access to that node panics with
// ErrPoisoned rather than exposing possibly-torn state.
//
// # Background traversal
//
// MTArena runs a depth-first walk on its own goroutine and hands back a
// joinable handle:
//
//	m := arbor.NewMT[string]()
//	// ... build the tree via m.Update ...
//	walk := m.TreeWalkParallel(root, func(id core.NodeID, payload string) {
//	    // runs off the calling goroutine, payload is a snapshot
//	})
//	ids, err := walk.Wait()
//
// # Key Properties
//
//   - IDs are issued monotonically and never reused
//   - Deletion is cascading: a node and its whole subtree go as one unit
//   - Traversal is iterative (explicit stack), safe for very deep trees
//   - Weak handles (NodeWeakRef) observe node lifetime without extending it
package arbor
