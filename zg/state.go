package zg

import (
	"github.com/ticktac-project/tchecker/dbm"
	"github.com/ticktac-project/tchecker/system"
	"github.com/ticktac-project/tchecker/ta"
)

// State is a symbolic state of the zone graph: a vector location, an
// integer-variable valuation and a zone (spec.md §3 "Symbolic state").
// Two states are equal iff all three components are equal.
type State struct {
	VLoc   ta.VLoc
	IntVal []int64
	Zone   *dbm.Zone
}

// Equal reports whether s and other denote the same symbolic state.
func (s *State) Equal(other *State) bool {
	if !s.VLoc.Equal(other.VLoc) {
		return false
	}
	if len(s.IntVal) != len(other.IntVal) {
		return false
	}
	for i := range s.IntVal {
		if s.IntVal[i] != other.IntVal[i] {
			return false
		}
	}
	eq, err := dbm.IsEqual(s.Zone, other.Zone)
	return err == nil && eq
}

// Clone returns a deep-enough copy of s suitable for mutation by Next
// (VLoc's *system.Location pointers and IntVal/Zone are copied, the
// pointed-to Locations are shared and immutable).
func (s *State) Clone() *State {
	return &State{
		VLoc:   s.VLoc.Clone(),
		IntVal: append([]int64(nil), s.IntVal...),
		Zone:   s.Zone.Clone(),
	}
}

// Transition is a tuple of edges firing together: one per participating
// process, indexed by process order, nil for a process that does not
// move. Transition values are allocated fresh per successor and never
// interned (spec.md §3 "Transition").
type Transition struct {
	Edges []*system.Edge
}

// intEnv adapts a flattened integer valuation to expr.Env, bounds-checked
// against the system's declared IntVar ranges.
type intEnv struct {
	idx *system.IntIndex
	val []int64
}

func newIntEnv(idx *system.IntIndex, val []int64) *intEnv {
	return &intEnv{idx: idx, val: val}
}

func (e *intEnv) Get(name string, index int64) (int64, error) {
	i, ok := e.idx.Index(cellRef(name, index))
	if !ok {
		return 0, errUnknownVar(name)
	}
	return e.val[i], nil
}

func (e *intEnv) Set(name string, index int64, value int64) error {
	i, ok := e.idx.Index(cellRef(name, index))
	if !ok {
		return errUnknownVar(name)
	}
	min, max := e.idx.Bounds(i)
	if value < min || value > max {
		return errOutOfRange(name, value)
	}
	e.val[i] = value
	return nil
}

func (e *intEnv) ArrayLen(name string) (int64, error) {
	n, ok := e.idx.Size(name)
	if !ok {
		return 0, errUnknownVar(name)
	}
	return n, nil
}

func cellRef(name string, index int64) string {
	if index == 0 {
		return name
	}
	return name + "[" + itoaLocal(index) + "]"
}

func itoaLocal(i int64) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}
