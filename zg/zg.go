package zg

import (
	"github.com/ticktac-project/tchecker/dbm"
	"github.com/ticktac-project/tchecker/system"
	"github.com/ticktac-project/tchecker/ta"
)

// Semantics selects between the two orderings spec.md §4.2 gives for
// combining delay and discrete jump.
type Semantics int

const (
	// Standard delays first, then jumps: delay, src invariant, guard,
	// resets, tgt invariant, extrapolate.
	Standard Semantics = iota
	// Elapsed jumps first and delays afterwards: src invariant, guard,
	// resets, delay, tgt invariant (re-applied post-delay), extrapolate.
	Elapsed
)

// BoundsFunc supplies the ClockBounds table to use for a given vector
// location. Passing a function that always returns the same system-wide
// table realizes the "global" extrapolation/cover variants; passing one
// that looks up a per-location table (backed by package clockbounds)
// realizes the "local" variants (see DESIGN.md's Open Question entry).
type BoundsFunc func(v ta.VLoc) *dbm.ClockBounds

// InitEdge is an opaque marker for the single supported way to build an
// initial state: entering every process's declared initial location
// simultaneously. Kept as a type (rather than simply calling Initial()
// with no argument) to mirror spec.md §4.2's
// initial_edges()/initial(init_edge) two-step contract.
type InitEdge struct{}

// ZoneGraph wires a system.System, a choice of Semantics and an optional
// extrapolation into the successor-computation functions spec.md §4.2
// names: InitialEdges, Initial, OutgoingEdges, Next.
type ZoneGraph struct {
	Sys       *system.System
	Semantics Semantics

	ClockIdx *system.ClockIndex
	IntIdx   *system.IntIndex

	Extrapolate dbm.ExtrapolationFunc
	Bounds      BoundsFunc

	syncEvent map[string]bool // "process\x00event" used by some Synchronization
}

// Option configures a ZoneGraph at construction.
type Option func(*ZoneGraph)

// WithExtrapolation installs fn (and the bounds table it should close
// over per vector location) as the zone graph's post-successor
// extrapolation step.
func WithExtrapolation(fn dbm.ExtrapolationFunc, bounds BoundsFunc) Option {
	return func(zg *ZoneGraph) {
		zg.Extrapolate = fn
		zg.Bounds = bounds
	}
}

// New builds a ZoneGraph over sys. Without WithExtrapolation, successors
// are never extrapolated (dbm.NoExtrapolation).
func New(sys *system.System, sem Semantics, opts ...Option) *ZoneGraph {
	zg := &ZoneGraph{
		Sys:         sys,
		Semantics:   sem,
		ClockIdx:    sys.BuildClockIndex(),
		IntIdx:      sys.BuildIntIndex(),
		Extrapolate: dbm.NoExtrapolation,
		Bounds:      func(ta.VLoc) *dbm.ClockBounds { return nil },
	}
	for _, opt := range opts {
		opt(zg)
	}
	zg.syncEvent = buildSyncEventSet(sys)
	return zg
}

func buildSyncEventSet(sys *system.System) map[string]bool {
	out := map[string]bool{}
	for _, sy := range sys.Synchronizations() {
		for _, c := range sy.Constraints {
			out[c.Process+"\x00"+c.Event] = true
		}
	}
	return out
}

// InitialEdges returns the single initial edge marker this ZoneGraph
// supports.
func (zg *ZoneGraph) InitialEdges() []InitEdge {
	return []InitEdge{{}}
}

// Initial builds the initial state: every process's declared initial
// location, the declared initial integer-variable valuation, and the
// zone of all non-negative clock valuations intersected with every
// initial location's invariant.
func (zg *ZoneGraph) Initial(InitEdge) (StateStatus, *State, error) {
	vloc, ok := ta.InitialVLoc(zg.Sys)
	if !ok {
		return ClocksSrcInvariantViolated, nil, nil
	}
	intval := zg.IntIdx.Initial()
	zone, err := dbm.NewUniversalPositiveZone(zg.ClockIdx.Dim())
	if err != nil {
		return OK, nil, err
	}
	env := newIntEnv(zg.IntIdx, intval)
	for _, loc := range vloc {
		ok, err := applyConstraint(loc.Invariant, zg.Sys.IsClock, zg.ClockIdx, zone, env)
		if err != nil {
			return OK, nil, err
		}
		if !ok {
			return ClocksSrcInvariantViolated, nil, nil
		}
	}
	zg.Extrapolate(zone, zg.Bounds(vloc))
	return OK, &State{VLoc: vloc, IntVal: intval, Zone: zone}, nil
}

// OutgoingEdges enumerates every transition tuple enabled at s's vector
// location: one combination per asynchronous local edge, and one per
// enabled combination of a synchronization vector's participating
// processes (spec.md §4.2 "finite iterator over tuples of enabled
// synchronizations"). committed/urgent restriction (ta.DelayAllowed) is
// applied by filtering out every combination in which a process outside
// the required set moves.
func (zg *ZoneGraph) OutgoingEdges(s *State) []Transition {
	procs := zg.Sys.Processes()
	n := len(procs)

	_, mustFireFrom := ta.DelayAllowed(s.VLoc)

	var out []Transition

	// Local (unsynchronized) edges.
	for i, p := range procs {
		for _, e := range zg.Sys.OutgoingEdges(p, s.VLoc[i].Name) {
			if zg.syncEvent[p+"\x00"+e.Event] {
				continue // this (process,event) only fires through a sync vector
			}
			if !ta.MustFireFromProcess(mustFireFrom, i) {
				continue
			}
			edges := make([]*system.Edge, n)
			edges[i] = e
			out = append(out, Transition{Edges: edges})
		}
	}

	// Synchronization vectors.
	for _, sy := range zg.Sys.Synchronizations() {
		out = append(out, zg.expandSync(sy, s, procs, mustFireFrom)...)
	}

	return out
}

func (zg *ZoneGraph) expandSync(sy system.Synchronization, s *State, procs []string, mustFireFrom []int) []Transition {
	procIndex := make(map[string]int, len(procs))
	for i, p := range procs {
		procIndex[p] = i
	}

	type choice struct {
		idx      int
		edges    []*system.Edge
		optional bool
	}
	choices := make([]choice, 0, len(sy.Constraints))
	for _, c := range sy.Constraints {
		i := procIndex[c.Process]
		cand := zg.Sys.OutgoingEdges(c.Process, s.VLoc[i].Name)
		enabled := make([]*system.Edge, 0, len(cand))
		for _, e := range cand {
			if e.Event == c.Event {
				enabled = append(enabled, e)
			}
		}
		if c.Strength == system.Mandatory && len(enabled) == 0 {
			return nil // EMPTY_SYNC: mandatory participant has no candidate edge
		}
		choices = append(choices, choice{idx: i, edges: enabled, optional: c.Strength == system.Weak})
	}

	var results []Transition
	var rec func(pos int, cur []*system.Edge)
	rec = func(pos int, cur []*system.Edge) {
		if pos == len(choices) {
			tr := make([]*system.Edge, len(procs))
			copy(tr, cur)
			anyFired := false
			for i, e := range tr {
				if e != nil {
					anyFired = true
					if !ta.MustFireFromProcess(mustFireFrom, i) {
						return // violates committed restriction
					}
				}
			}
			if !anyFired {
				return
			}
			results = append(results, Transition{Edges: tr})
			return
		}
		ch := choices[pos]
		for _, e := range ch.edges {
			cur[ch.idx] = e
			rec(pos+1, cur)
			cur[ch.idx] = nil
		}
		if ch.optional {
			cur[ch.idx] = nil
			rec(pos+1, cur)
		}
	}
	rec(0, make([]*system.Edge, len(procs)))
	return results
}

// Next computes the successor of s through tr, under zg.Semantics.
func (zg *ZoneGraph) Next(s *State, tr Transition) (StateStatus, *State, error) {
	if zg.Semantics == Elapsed {
		return zg.nextElapsed(s, tr)
	}
	return zg.nextStandard(s, tr)
}

func (zg *ZoneGraph) nextStandard(s *State, tr Transition) (StateStatus, *State, error) {
	next := s.Clone()
	env := newIntEnv(zg.IntIdx, next.IntVal)

	if delay, _ := ta.DelayAllowed(s.VLoc); delay {
		next.Zone.OpenUp()
	}
	for _, loc := range next.VLoc {
		ok, err := applyConstraint(loc.Invariant, zg.Sys.IsClock, zg.ClockIdx, next.Zone, env)
		if err != nil {
			return OK, nil, err
		}
		if !ok {
			return SrcInvariantViolated, nil, nil
		}
	}

	status, err := zg.applyTransition(next, tr, env)
	if status != OK {
		return status, nil, err
	}
	if err != nil {
		return OK, nil, err
	}

	for i, e := range tr.Edges {
		if e == nil {
			continue
		}
		loc := next.VLoc[i]
		ok, err := applyConstraint(loc.Invariant, zg.Sys.IsClock, zg.ClockIdx, next.Zone, env)
		if err != nil {
			return OK, nil, err
		}
		if !ok {
			return TgtInvariantViolated, nil, nil
		}
	}

	zg.Extrapolate(next.Zone, zg.Bounds(next.VLoc))
	return OK, next, nil
}

func (zg *ZoneGraph) nextElapsed(s *State, tr Transition) (StateStatus, *State, error) {
	next := s.Clone()
	env := newIntEnv(zg.IntIdx, next.IntVal)

	for _, loc := range next.VLoc {
		if ok, err := applyConstraint(loc.Invariant, zg.Sys.IsClock, zg.ClockIdx, next.Zone, env); err != nil || !ok {
			return SrcInvariantViolated, nil, err
		}
	}

	status, err := zg.applyTransition(next, tr, env)
	if status != OK {
		return status, nil, err
	}
	if err != nil {
		return OK, nil, err
	}

	for i, e := range tr.Edges {
		if e == nil {
			continue
		}
		if ok, err := applyConstraint(next.VLoc[i].Invariant, zg.Sys.IsClock, zg.ClockIdx, next.Zone, env); err != nil || !ok {
			return TgtInvariantViolated, nil, err
		}
	}

	if delay, _ := ta.DelayAllowed(next.VLoc); delay {
		next.Zone.OpenUp()
	}

	for i, e := range tr.Edges {
		if e == nil {
			continue
		}
		loc := next.VLoc[i]
		ok, err := applyConstraint(loc.Invariant, zg.Sys.IsClock, zg.ClockIdx, next.Zone, env)
		if err != nil {
			return OK, nil, err
		}
		if !ok {
			return TgtInvariantViolated, nil, nil
		}
	}

	zg.Extrapolate(next.Zone, zg.Bounds(next.VLoc))
	return OK, next, nil
}

// applyTransition runs every firing edge's guard, reset and target-
// location update against next in place, leaving next.VLoc/IntVal/Zone
// mutated on OK and returning a non-OK status otherwise. It never applies
// the delay or the final extrapolation; callers add those around it
// according to Semantics.
func (zg *ZoneGraph) applyTransition(next *State, tr Transition, env *intEnv) (StateStatus, error) {
	for _, e := range tr.Edges {
		if e == nil {
			continue
		}
		ok, err := applyConstraint(e.Guard, zg.Sys.IsClock, zg.ClockIdx, next.Zone, env)
		if err != nil {
			return OK, err
		}
		if !ok {
			return GuardViolated, nil
		}
	}

	for _, e := range tr.Edges {
		if e == nil {
			continue
		}
		resets, residual, ok := splitResets(e.Statement, zg.Sys.IsClock)
		if !ok {
			return ClocksResetFailed, nil
		}
		if !applyResets(resets, zg.ClockIdx, next.Zone) {
			return ClocksResetFailed, nil
		}
		if err := execResidual(residual, env); err != nil {
			return IntVarsOutOfRange, nil
		}
	}

	for i, e := range tr.Edges {
		if e == nil {
			continue
		}
		loc, ok := zg.Sys.Location(e.Process, e.Tgt)
		if !ok {
			return OK, nil
		}
		next.VLoc[i] = loc
	}
	return OK, nil
}
