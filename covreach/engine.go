package covreach

import (
	"context"

	"github.com/ticktac-project/tchecker/dbm"
	"github.com/ticktac-project/tchecker/nodeindex"
	"github.com/ticktac-project/tchecker/zg"
)

// Policy selects what the cover check scans when a new state is
// produced (spec.md §4.5 COVERING_LEAF_NODES vs COVERING_FULL).
type Policy int

const (
	// LeafNodes discards a new state covered by any Active node sharing
	// its fingerprint, but lets a new state cover (and retire) only Active
	// nodes that have not been expanded yet — cheaper, misses some
	// redundant coverage among already-expanded nodes.
	LeafNodes Policy = iota
	// Full also checks Covered nodes sharing the fingerprint when deciding
	// whether a new state is covered, and lets a new state cover any
	// Active node, expanded or not.
	Full
)

// WaitingOrder selects the waiting container's discipline.
type WaitingOrder int

const (
	LIFO WaitingOrder = iota
	FIFO
)

// Config parameterizes one Run of the engine.
type Config struct {
	Cover      dbm.CoverFunc
	Bounds     zg.BoundsFunc
	Accepting  func(*zg.State) bool
	Policy     Policy
	Order      WaitingOrder

	// BlockSize sizes the zone store's pool growth increment (spec.md
	// §6 "--block-size N"); <= 0 defaults to defaultBlockSize.
	BlockSize int

	// TableSize pre-sizes the node index's bucket map (spec.md §6
	// "--table-size N"); <= 0 leaves it to grow incrementally.
	TableSize int
}

// Stats are the counters spec.md §6's stdout contract reports.
type Stats struct {
	StoredNodes        int
	VisitedTransitions int
	CoveredStates      int
}

// Engine drives the covering-reachability search over a zg.ZoneGraph.
type Engine struct {
	ZG     *zg.ZoneGraph
	Config Config

	index   *nodeindex.Index[*Node]
	waiting *FilteringContainer[*Node]
	stats   Stats
	store   *zoneStore
}

// New builds an Engine over zg with the given configuration.
func New(graph *zg.ZoneGraph, cfg Config) *Engine {
	e := &Engine{
		ZG:     graph,
		Config: cfg,
		index:  nodeindex.NewWithSizeHint[*Node](cfg.TableSize),
		store:  newZoneStore(cfg.BlockSize),
	}
	var inner Container[*Node]
	if cfg.Order == FIFO {
		inner = NewQueue[*Node]()
	} else {
		inner = NewStack[*Node]()
	}
	e.waiting = NewFilteringContainer[*Node](inner, func(n *Node) bool { return n.Colour == Active })
	return e
}

// Stats returns the engine's running statistics.
func (e *Engine) Stats() Stats { return e.stats }

// Nodes returns every node the engine has stored, in no particular
// order; callers that need a deterministic order (e.g. DOT output)
// should sort by their own node label.
func (e *Engine) Nodes() []*Node { return e.index.All() }

// Run explores the zone graph from its initial state, returning whether
// any node satisfying Config.Accepting was reached. It stops as soon as
// one is found (spec.md §8's scenarios only require a boolean answer,
// not full state-space enumeration once reachability is settled).
func (e *Engine) Run() (bool, error) {
	e.store.pool.Start(context.Background())
	defer e.store.pool.Stop()

	for _, ie := range e.ZG.InitialEdges() {
		status, s, err := e.ZG.Initial(ie)
		if err != nil {
			return false, err
		}
		if status != zg.OK {
			continue
		}
		if e.enqueueIfUncovered(nil, s) {
			return true, nil
		}
	}

	for !e.waiting.Empty() {
		n, ok := e.waiting.Pop()
		if !ok {
			break
		}
		if n.Colour != Active {
			continue
		}
		n.Expanded = true
		if e.Config.Accepting != nil && e.Config.Accepting(n.State) {
			return true, nil
		}
		for _, tr := range e.ZG.OutgoingEdges(n.State) {
			e.stats.VisitedTransitions++
			status, succ, err := e.ZG.Next(n.State, tr)
			if err != nil {
				return false, err
			}
			if status != zg.OK {
				continue
			}
			if e.enqueueIfUncovered(n, succ) {
				return true, nil
			}
		}
	}
	return false, nil
}

// enqueueIfUncovered implements spec.md §4.5's enqueue_if_uncovered: if s
// is covered by an already-stored node, only an edge is recorded; if s
// covers one or more stored nodes, they are marked Covered and their
// incoming edges redirected to s's node before s itself is stored. It
// returns true the moment the newly-stored node satisfies Accepting, as a
// shortcut so Run can stop immediately.
func (e *Engine) enqueueIfUncovered(parent *Node, s *zg.State) bool {
	fp := fingerprint64(s)
	candidates := e.candidatesFor(fp)

	for _, m := range e.index.Find(fp) {
		if e.Config.Policy != Full && m.Colour != Active {
			continue
		}
		covered, err := e.Config.Cover(s.Zone, m.State.Zone, e.Config.Bounds(s.VLoc))
		if err == nil && covered && sameDiscreteState(s, m.State) {
			if parent != nil {
				parent.Outgoing = append(parent.Outgoing, m)
				m.Incoming = append(m.Incoming, parent)
			}
			e.stats.CoveredStates++
			return m.Accepting
		}
	}

	n := &Node{State: s, fingerprint: fp, Colour: Active, zoneHandle: e.store.intern(s.Zone)}
	if e.Config.Accepting != nil {
		n.Accepting = e.Config.Accepting(s)
	}

	for _, m := range candidates {
		if m.Colour != Active {
			continue
		}
		covered, err := e.Config.Cover(m.State.Zone, s.Zone, e.Config.Bounds(m.State.VLoc))
		if err == nil && covered && sameDiscreteState(m.State, s) {
			m.Colour = Covered
			e.stats.CoveredStates++
			redirectIncoming(m, n)
			if m.zoneHandle != nil {
				m.zoneHandle.Release()
				m.zoneHandle = nil
			}
		}
	}

	if parent != nil {
		parent.Outgoing = append(parent.Outgoing, n)
		n.Incoming = append(n.Incoming, parent)
	}

	e.index.Insert(n)
	e.waiting.Push(n)
	e.stats.StoredNodes++
	return n.Accepting
}

func (e *Engine) candidatesFor(fp uint64) []*Node {
	if e.Config.Policy == Full {
		return e.index.Find(fp)
	}
	bucket := e.index.Find(fp)
	out := make([]*Node, 0, len(bucket))
	for _, n := range bucket {
		if n.Colour == Active && !n.Expanded {
			out = append(out, n)
		}
	}
	return out
}

func sameDiscreteState(a, b *zg.State) bool {
	if !a.VLoc.Equal(b.VLoc) {
		return false
	}
	if len(a.IntVal) != len(b.IntVal) {
		return false
	}
	for i := range a.IntVal {
		if a.IntVal[i] != b.IntVal[i] {
			return false
		}
	}
	return true
}
