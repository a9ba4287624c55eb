package dbm

import "fmt"

// CoverFunc decides whether zone(a) is subsumed by zone(b) under one of
// the four families named in spec.md §4.1. It is not required to be
// symmetric or transitive, only a sound simulation: if CoverFunc(a, b) the
// concrete valuations of a are a subset of those reachable from b's
// equivalence class.
type CoverFunc func(a, b *Zone, cb *ClockBounds) (bool, error)

// CoverInclusion is the plain zone-inclusion cover: z1 ⊆ z2.
func CoverInclusion(a, b *Zone, _ *ClockBounds) (bool, error) {
	return IsSubset(a, b)
}

// CoverAM applies aM-simulation: the same ClockBounds M array plays both
// the upper and lower role. spec.md's AM_G/AM_L distinction is realized by
// which ClockBounds the caller passes (a single global one, or one
// recomputed per source location), exactly as for extrapolation.
func CoverAM(a, b *Zone, cb *ClockBounds) (bool, error) {
	m := mArray(cb, a.dim)
	return simulates(a, b, m, m)
}

// CoverALU applies aLU-simulation with cb's L and U arrays. spec.md's
// ALU_G/ALU_L distinction is realized the same way as CoverAM's.
func CoverALU(a, b *Zone, cb *ClockBounds) (bool, error) {
	return simulates(a, b, cb.L, cb.U)
}

// simulates implements the aLU(l)-simulation test from the extrapolation
// literature: zone(a) is covered by zone(b) iff for every i,j either
// a[i,j] is at least as strong as b[i,j] (plain inclusion holds at that
// entry), or the entry is already irrelevant because b[i,j] is below
// -L(j) (clock j's lower bound), or a's own bound on clock i (read from
// the fixed zero-column entry a[i,0], not a[i,j]) already exceeds clock
// i's upper bound U(i). The reference clock (index 0) is always 0, so it
// is treated as having L(0) = U(0) = 0.
func simulates(a, b *Zone, lower, upper []int64) (bool, error) {
	if a.dim != b.dim {
		return false, fmt.Errorf("dbm: simulates: %w", ErrDimensionMismatch)
	}
	if a.IsEmpty() {
		return true, nil
	}
	if b.IsEmpty() {
		return false, nil
	}
	n := a.dim
	for i := 0; i < n; i++ {
		ai0 := a.At(i, 0)
		ui := upper[i]
		if i == 0 {
			ui = 0
		}
		for j := 0; j < n; j++ {
			aij := a.At(i, j)
			bij := b.At(i, j)
			if aij.stronger(bij) || aij == bij {
				continue
			}
			lj := lower[j]
			if j == 0 {
				lj = 0
			}
			if lj == NoBound || bij.Value < -lj {
				continue
			}
			if ui == NoBound || ai0.Value > ui {
				continue
			}
			return false, nil
		}
	}
	return true, nil
}
