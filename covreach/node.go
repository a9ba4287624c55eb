package covreach

import (
	"github.com/ticktac-project/tchecker/dbm"
	"github.com/ticktac-project/tchecker/pool"
	"github.com/ticktac-project/tchecker/zg"
)

// Colour is a node's lifecycle state in the explored graph (spec.md §3
// "Node ... colour").
type Colour int

const (
	// Active nodes are stored, uncovered, and may still be expanded.
	Active Colour = iota
	// Covered nodes have been subsumed by another stored node and are no
	// longer expanded; they stay in the node index, but their incoming
	// edges have been redirected to their covering node.
	Covered
	// Removed marks a node evicted from the node index. Engine never
	// assigns it: covered nodes are kept in the index under both policies.
	Removed
)

// Node is one explored state, with the bookkeeping the cover-reach engine
// needs to redirect edges when a later state covers an earlier one.
type Node struct {
	State       *zg.State
	fingerprint uint64
	Accepting   bool
	Colour      Colour

	// Expanded is set once Engine.Run pops this node from the waiting set
	// and iterates its outgoing edges. Under LeafNodes a new state may
	// only cover (retire) nodes that are Active and not yet Expanded;
	// under Full it may cover any Active node regardless.
	Expanded bool

	Incoming []*Node
	Outgoing []*Node

	// zoneHandle owns this node's share of its interned zone; released
	// (and set nil) the moment the node is marked Covered, so the pool's
	// background worker can reclaim the slot once no other node still
	// shares it.
	zoneHandle *pool.Handle[*dbm.Zone]
}

// Fingerprint implements nodeindex.Entry.
func (n *Node) Fingerprint() uint64 { return n.fingerprint }

// fingerprint64 computes the discrete-state fingerprint by mixing the
// vector location and then the integer valuation into one FNV-1a-style
// hash; the zone is deliberately not part of the key.
func fingerprint64(s *zg.State) uint64 {
	var h uint64 = 14695981039346656037
	const prime = 1099511628211
	for _, loc := range s.VLoc {
		h ^= hashString(loc.Process + "\x00" + loc.Name)
		h *= prime
	}
	for _, v := range s.IntVal {
		h ^= uint64(v)
		h *= prime
	}
	return h
}

func hashString(s string) uint64 {
	var h uint64 = 14695981039346656037
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}

// redirectIncoming rewires every edge that pointed at from so it now
// points at to instead, used when from becomes covered by to.
func redirectIncoming(from, to *Node) {
	for _, pred := range from.Incoming {
		for i, succ := range pred.Outgoing {
			if succ == from {
				pred.Outgoing[i] = to
			}
		}
		to.Incoming = append(to.Incoming, pred)
	}
	from.Incoming = nil
}
