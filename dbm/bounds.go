package dbm

// NoBound represents an absent (infinite) L/U/M bound for a clock, as
// produced by the clockbounds analyzer (package clockbounds) and consumed
// by the extrapolation operators below.
const NoBound = int64(-1)

// ClockBounds carries, per clock index (0 is the reference clock and
// always NoBound/0), the L and U bound families used by the LU-family
// extrapolations, and their max M = max(L, U) used by the M-family ones.
// Global variants use a single ClockBounds shared by all locations; local
// variants pass one per location.
type ClockBounds struct {
	L []int64
	U []int64
}

// NewClockBounds allocates a ClockBounds of the given dimension with every
// bound set to NoBound.
func NewClockBounds(dim int) *ClockBounds {
	l := make([]int64, dim)
	u := make([]int64, dim)
	for i := range l {
		l[i] = NoBound
		u[i] = NoBound
	}
	return &ClockBounds{L: l, U: u}
}

// M returns max(L[i], U[i]), or NoBound if both are unbounded.
func (cb *ClockBounds) M(i int) int64 {
	if cb.L[i] == NoBound && cb.U[i] == NoBound {
		return NoBound
	}
	if cb.L[i] == NoBound {
		return cb.U[i]
	}
	if cb.U[i] == NoBound {
		return cb.L[i]
	}
	if cb.L[i] > cb.U[i] {
		return cb.L[i]
	}
	return cb.U[i]
}
