package system

import (
	"fmt"
	"sort"
)

// System is the immutable static model of a network of timed automata.
// It is assembled once via NewSystem and a sequence of Option values; every
// later analysis package (clockbounds, ta, zg) treats it as read-only.
type System struct {
	name string

	processes map[string]struct{}
	events    map[string]struct{}

	clocks  map[string]Clock
	intVars map[string]IntVar

	// locations[process][name]
	locations map[string]map[string]*Location
	// edges[process] is the full ordered edge list of that process, kept
	// in declaration order so outgoing-edge enumeration is deterministic
	// (spec.md §5 "deterministic enumeration order").
	edges map[string][]*Edge

	syncs []Synchronization

	processOrder []string
}

// Option configures a System during NewSystem.
type Option func(*System) error

// NewSystem builds a System named name from the given options, applied in
// order, and returns the first error encountered.
func NewSystem(name string, opts ...Option) (*System, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	s := &System{
		name:      name,
		processes: map[string]struct{}{},
		events:    map[string]struct{}{},
		clocks:    map[string]Clock{},
		intVars:   map[string]IntVar{},
		locations: map[string]map[string]*Location{},
		edges:     map[string][]*Edge{},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// WithProcess declares a process named name.
func WithProcess(name string) Option {
	return func(s *System) error {
		if name == "" {
			return ErrEmptyName
		}
		if _, ok := s.processes[name]; ok {
			return fmt.Errorf("system: process %q: %w", name, ErrDuplicateProcess)
		}
		s.processes[name] = struct{}{}
		s.locations[name] = map[string]*Location{}
		s.processOrder = append(s.processOrder, name)
		return nil
	}
}

// WithEvent declares an event named name.
func WithEvent(name string) Option {
	return func(s *System) error {
		if name == "" {
			return ErrEmptyName
		}
		if _, ok := s.events[name]; ok {
			return fmt.Errorf("system: event %q: %w", name, ErrDuplicateEvent)
		}
		s.events[name] = struct{}{}
		return nil
	}
}

// WithClock declares a clock. size must be >= 1; use 1 for a scalar clock.
func WithClock(name string, size int64) Option {
	return func(s *System) error {
		if name == "" {
			return ErrEmptyName
		}
		if size < 1 {
			return fmt.Errorf("system: clock %q: %w", name, ErrInvalidVarSize)
		}
		if _, ok := s.clocks[name]; ok {
			return fmt.Errorf("system: clock %q: %w", name, ErrDuplicateClock)
		}
		s.clocks[name] = Clock{Name: name, Size: size}
		return nil
	}
}

// WithIntVar declares an integer variable (or flattened array of size
// size) ranging over [min, max], initialized to init.
func WithIntVar(name string, size, min, max, init int64) Option {
	return func(s *System) error {
		if name == "" {
			return ErrEmptyName
		}
		if size < 1 {
			return fmt.Errorf("system: intvar %q: %w", name, ErrInvalidVarSize)
		}
		if min > max {
			return fmt.Errorf("system: intvar %q: %w", name, ErrInvalidIntVarRange)
		}
		if _, ok := s.intVars[name]; ok {
			return fmt.Errorf("system: intvar %q: %w", name, ErrDuplicateIntVar)
		}
		s.intVars[name] = IntVar{Name: name, Size: size, Min: min, Max: max, Init: init}
		return nil
	}
}

// WithLocation declares a location within an already-declared process.
func WithLocation(loc Location) Option {
	return func(s *System) error {
		locs, ok := s.locations[loc.Process]
		if !ok {
			return fmt.Errorf("system: location %q: %w", loc.Name, ErrUnknownProcess)
		}
		if _, ok := locs[loc.Name]; ok {
			return fmt.Errorf("system: location %q: %w", loc.Name, ErrDuplicateLocation)
		}
		l := loc
		locs[loc.Name] = &l
		return nil
	}
}

// WithEdge declares an edge within an already-declared process, between
// two already-declared locations, on an already-declared event.
func WithEdge(e Edge) Option {
	return func(s *System) error {
		locs, ok := s.locations[e.Process]
		if !ok {
			return fmt.Errorf("system: edge: %w", ErrUnknownProcess)
		}
		if _, ok := locs[e.Src]; !ok {
			return fmt.Errorf("system: edge src %q: %w", e.Src, ErrUnknownLocation)
		}
		if _, ok := locs[e.Tgt]; !ok {
			return fmt.Errorf("system: edge tgt %q: %w", e.Tgt, ErrUnknownLocation)
		}
		if _, ok := s.events[e.Event]; !ok {
			return fmt.Errorf("system: edge event %q: %w", e.Event, ErrUnknownEvent)
		}
		edge := e
		s.edges[e.Process] = append(s.edges[e.Process], &edge)
		return nil
	}
}

// WithSynchronization declares a multiparty synchronization vector.
func WithSynchronization(sync Synchronization) Option {
	return func(s *System) error {
		seen := map[string]bool{}
		for _, c := range sync.Constraints {
			if _, ok := s.processes[c.Process]; !ok {
				return fmt.Errorf("system: sync: %w", ErrSyncMissingProcess)
			}
			if _, ok := s.events[c.Event]; !ok {
				return fmt.Errorf("system: sync: %w", ErrUnknownEvent)
			}
			if seen[c.Process] {
				return fmt.Errorf("system: sync: %w", ErrSyncDuplicateProc)
			}
			seen[c.Process] = true
			if c.Strength == Weak {
				// static check: a weakly synchronized event carries no
				// guard on any of the process's edges for that event.
				for _, e := range s.edges[c.Process] {
					if e.Event == c.Event && e.Guard != nil {
						return fmt.Errorf("system: event %q on process %q: %w", c.Event, c.Process, ErrWeakSyncHasGuard)
					}
				}
			}
		}
		s.syncs = append(s.syncs, sync)
		return nil
	}
}

// validate re-checks deferred invariants that depend on edges declared
// after a Synchronization (weak-sync guard check runs again here so
// declaration order of sync vs. edges never matters).
func (s *System) validate() error {
	for _, proc := range s.processOrder {
		if !s.hasInitialLocation(proc) {
			return fmt.Errorf("system: process %q: %w", proc, ErrNoInitialLocation)
		}
	}
	for _, sy := range s.syncs {
		for _, c := range sy.Constraints {
			if c.Strength != Weak {
				continue
			}
			for _, e := range s.edges[c.Process] {
				if e.Event == c.Event && e.Guard != nil {
					return fmt.Errorf("system: event %q on process %q: %w", c.Event, c.Process, ErrWeakSyncHasGuard)
				}
			}
		}
	}
	return nil
}

func (s *System) hasInitialLocation(process string) bool {
	for _, l := range s.locations[process] {
		if l.Initial {
			return true
		}
	}
	return false
}

// Name returns the system's name.
func (s *System) Name() string { return s.name }

// Processes returns process names in declaration order.
func (s *System) Processes() []string {
	out := make([]string, len(s.processOrder))
	copy(out, s.processOrder)
	return out
}

// Events returns every declared event name, sorted for determinism.
func (s *System) Events() []string {
	out := make([]string, 0, len(s.events))
	for e := range s.events {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Clock looks up a declared clock by name.
func (s *System) Clock(name string) (Clock, bool) {
	c, ok := s.clocks[name]
	return c, ok
}

// Clocks returns every declared clock, sorted by name.
func (s *System) Clocks() []Clock {
	out := make([]Clock, 0, len(s.clocks))
	for _, c := range s.clocks {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// IntVars returns every declared integer variable, sorted by name.
func (s *System) IntVars() []IntVar {
	out := make([]IntVar, 0, len(s.intVars))
	for _, v := range s.intVars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// IntVar looks up a declared integer variable by name.
func (s *System) IntVar(name string) (IntVar, bool) {
	v, ok := s.intVars[name]
	return v, ok
}

// Locations returns every location of process, sorted by name.
func (s *System) Locations(process string) []*Location {
	locs := s.locations[process]
	out := make([]*Location, 0, len(locs))
	for _, l := range locs {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Location looks up a location of process by name.
func (s *System) Location(process, name string) (*Location, bool) {
	l, ok := s.locations[process][name]
	return l, ok
}

// InitialLocation returns an initial location of process. NewSystem does
// not reject a process with several; which one is returned is then not
// defined.
func (s *System) InitialLocation(process string) (*Location, bool) {
	for _, l := range s.locations[process] {
		if l.Initial {
			return l, true
		}
	}
	return nil, false
}

// Edges returns every edge of process in declaration order.
func (s *System) Edges(process string) []*Edge {
	return s.edges[process]
}

// OutgoingEdges returns the edges of process whose Src is loc, in
// declaration order.
func (s *System) OutgoingEdges(process, loc string) []*Edge {
	all := s.edges[process]
	out := make([]*Edge, 0, len(all))
	for _, e := range all {
		if e.Src == loc {
			out = append(out, e)
		}
	}
	return out
}

// Synchronizations returns every declared synchronization vector.
func (s *System) Synchronizations() []Synchronization {
	return s.syncs
}

// IsClock reports whether name is a declared clock; it is the IsClock
// classifier package expr's SplitGuard expects.
func (s *System) IsClock(name string) bool {
	_, ok := s.clocks[name]
	return ok
}
