package dbm

import "fmt"

// Constraint is a single half-plane x_i - x_j Cmp Value, as produced by
// evaluating a guard or invariant's clock-comparison atoms.
type Constraint struct {
	I, J  int
	Bound Bound
}

// Constrain intersects z with the half-plane x_i - x_j Cmp c, re-tightening
// incrementally. If the resulting zone is empty, z is flagged empty and
// IsEmpty(z) becomes true; Constrain never itself returns an error for
// that case since "no successor on this edge" is not an error (spec.md
// §7) — callers translate emptiness into the relevant StateStatus.
func (z *Zone) Constrain(cs ...Constraint) {
	if z.IsEmpty() {
		return
	}
	for _, c := range cs {
		z.checkIndex(c.I, c.J)
		if !c.Bound.stronger(z.At(c.I, c.J)) {
			continue // not a strengthening, nothing to do
		}
		z.set(c.I, c.J, c.Bound)
		z.retightenFrom(c.I, c.J)
		if z.IsEmpty() {
			return
		}
	}
}

// ConstrainAtom is a convenience constructor for a Constraint from raw
// ingested operands, validating the constant's magnitude.
func ConstrainAtom(i, j int, cmp Cmp, c int64) (Constraint, error) {
	b, err := NewBound(cmp, c)
	if err != nil {
		return Constraint{}, fmt.Errorf("dbm: constrain(x%d - x%d): %w", i, j, err)
	}
	return Constraint{I: i, J: j, Bound: b}, nil
}
