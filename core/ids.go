package core

import "sync/atomic"

// NodeID is the opaque identifier naming a node within a single arena.
// IDs are issued monotonically starting at 0 and are never reused, even
// after the node they name has been deleted. IDs from different arena
// instances are not interchangeable.
type NodeID uint64

// NoID is the sentinel for "no node". It is never issued by a generator.
const NoID = ^NodeID(0)

// IsValid reports whether id could have been issued by a generator.
func (id NodeID) IsValid() bool { return id != NoID }

// IDGenerator hands out NodeIDs with atomic fetch-and-increment semantics.
// Concurrent callers never observe a duplicate. The zero value is ready to
// use and issues 0 first.
type IDGenerator struct {
	next atomic.Uint64
}

// Next returns a fresh NodeID.
func (g *IDGenerator) Next() NodeID {
	return NodeID(g.next.Add(1) - 1)
}

// Issued returns how many IDs have been handed out so far.
func (g *IDGenerator) Issued() uint64 {
	return g.next.Load()
}
