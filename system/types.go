package system

import "github.com/ticktac-project/tchecker/expr"

// IntVar is an integer variable declaration: a flattened array of Size
// cells (1 for a scalar), each ranging over [Min, Max] and starting at
// Init.
type IntVar struct {
	Name string
	Size int64
	Min  int64
	Max  int64
	Init int64
}

// Clock is a clock declaration: a flattened array of Size cells (1 for a
// scalar clock).
type Clock struct {
	Name string
	Size int64
}

// SyncStrength classifies a process/event pair within a Synchronization
// vector.
type SyncStrength int

const (
	// Mandatory requires the process to fire the event for the
	// synchronization to be enabled.
	Mandatory SyncStrength = iota
	// Weak allows the synchronization to fire even if the process does
	// not participate on this event at the current location; a weakly
	// synchronized event may carry no guard (spec.md §3 invariant).
	Weak
)

// SyncConstraint pairs a process with an event at a given strength within
// one Synchronization vector.
type SyncConstraint struct {
	Process  string
	Event    string
	Strength SyncStrength
}

// Synchronization is one multiparty synchronization vector: a set of
// (process, event, strength) constraints, at most one per process.
type Synchronization struct {
	Constraints []SyncConstraint
}

// Location is a control state of a process.
type Location struct {
	Name       string
	Process    string
	Initial    bool
	Committed  bool
	Urgent     bool
	Invariant  expr.Expr // nil means "true"
	Labels     []string
}

// Edge is a transition of a process from Src to Tgt on Event, guarded by
// Guard and updating state via Statement.
type Edge struct {
	Process   string
	Src       string
	Tgt       string
	Event     string
	Guard     expr.Expr // nil means "true"
	Statement expr.Stmt // nil means no-op
}
