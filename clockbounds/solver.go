package clockbounds

import (
	"github.com/ticktac-project/tchecker/dbm"
	"github.com/ticktac-project/tchecker/expr"
	"github.com/ticktac-project/tchecker/system"
)

// Table holds the per-location clock bounds for every process, plus a
// system-wide table obtained by taking the max over every location (the
// "global" bounds the Global cover/extrapolation variants use).
type Table struct {
	Index *system.ClockIndex

	// Local[process][location] is that location's bounds table.
	Local map[string]map[string]*dbm.ClockBounds

	// Global is the max of every Local table, dimension-aligned with Index.
	Global *dbm.ClockBounds
}

// Solve computes L/U/M clock bounds for every location of every process in
// s. It returns ErrDiagonalGuard (and a nil Table) if any guard or
// invariant uses a clock-difference atom, which falls outside the solver's
// diagonal-free fragment; callers should fall back to
// dbm.NoExtrapolation in that case.
func Solve(s *system.System) (*Table, error) {
	idx := s.BuildClockIndex()
	dim := idx.Dim()

	t := &Table{
		Index:  idx,
		Local:  map[string]map[string]*dbm.ClockBounds{},
		Global: dbm.NewClockBounds(dim),
	}

	for _, proc := range s.Processes() {
		locs := s.Locations(proc)
		bounds := map[string]*dbm.ClockBounds{}
		for _, l := range locs {
			bounds[l.Name] = dbm.NewClockBounds(dim)
		}
		t.Local[proc] = bounds

		// Seed bounds from each location's own invariant.
		for _, l := range locs {
			if err := accumulate(bounds[l.Name], l.Invariant, idx, s.IsClock); err != nil {
				return nil, err
			}
		}
		// Seed bounds from every edge's guard, attributed to its source
		// location (a clock compared in a guard must be bounded at the
		// location the guard fires from).
		for _, e := range s.Edges(proc) {
			if err := accumulate(bounds[e.Src], e.Guard, idx, s.IsClock); err != nil {
				return nil, err
			}
		}

		// Backward fixpoint: propagate a target location's bounds to its
		// source for every clock the edge does NOT reset, since a clock
		// that survives the edge unreset must still respect whatever
		// bound the target (and everything reachable from it) imposes.
		changed := true
		for changed {
			changed = false
			for _, e := range s.Edges(proc) {
				src, tgt := bounds[e.Src], bounds[e.Tgt]
				reset := resetClocks(e.Statement)
				for i := 1; i < dim; i++ {
					name := idx.Name(i)
					if reset[name] {
						continue
					}
					if mergeMax(&src.L[i], tgt.L[i]) {
						changed = true
					}
					if mergeMax(&src.U[i], tgt.U[i]) {
						changed = true
					}
				}
			}
		}

		for _, l := range locs {
			b := bounds[l.Name]
			for i := 1; i < dim; i++ {
				mergeMax(&t.Global.L[i], b.L[i])
				mergeMax(&t.Global.U[i], b.U[i])
			}
		}
	}

	return t, nil
}

// mergeMax sets *dst = max(*dst, v) treating dbm.NoBound as -infinity,
// reporting whether it changed.
func mergeMax(dst *int64, v int64) bool {
	if v == dbm.NoBound {
		return false
	}
	if *dst == dbm.NoBound || v > *dst {
		*dst = v
		return true
	}
	return false
}

func accumulate(b *dbm.ClockBounds, e expr.Expr, idx *system.ClockIndex, isClock expr.IsClock) error {
	if e == nil {
		return nil
	}
	atoms, _, err := expr.SplitGuard(e, isClock)
	if err != nil {
		return err
	}
	for _, a := range atoms {
		if a.Other != "" {
			return ErrDiagonalGuard
		}
		i, ok := idx.Index(a.Clock)
		if !ok {
			continue
		}
		c := a.Value
		if c < 0 {
			c = -c
		}
		switch a.Op {
		case expr.OpLt, expr.OpLe:
			mergeMax(&b.U[i], c)
		case expr.OpGe, expr.OpGt:
			mergeMax(&b.L[i], c)
		case expr.OpEq:
			mergeMax(&b.L[i], c)
			mergeMax(&b.U[i], c)
		}
	}
	return nil
}

// resetClocks returns the set of variable names s assigns to, via
// expr.WrittenVars: clocks and integer variables alike, whatever the
// assigned value; Solve only looks clock names up in it.
func resetClocks(s expr.Stmt) map[string]bool {
	if s == nil {
		return nil
	}
	return expr.WrittenVars(s)
}
