package dbm

// Extrapolation abstracts a zone with respect to per-clock bound families
// so that the reachable zones for a fixed discrete state form a finite
// lattice (spec.md §4.1, §8 "Termination"). Soundness requires
// zone(z) ⊆ zone(extrapolated z); idempotence requires a second call to
// change nothing. Both properties hold for the rule below: it only ever
// relaxes (weakens) entries, and a relaxed entry already satisfies the
// relaxation condition that would trigger a further relaxation.
//
// The four named families (ExtraM, ExtraM+, ExtraLU, ExtraLU+) share one
// implementation parameterized by which per-clock bound array plays the
// "upper" and "lower" role, and by whether clamped clocks additionally
// relax their mutual entries (the "+" variants). Global vs. local
// extrapolation (spec.md §4.1) is not a fifth axis here: it is realized by
// which ClockBounds the caller (package zg, backed by package
// clockbounds) passes in — a single global ClockBounds for *_global, or
// one recomputed per source location for *_local.
func extrapolate(z *Zone, upper, lower []int64, plus bool) {
	if z.IsEmpty() {
		return
	}
	n := z.dim
	clamped := make([]bool, n)
	for i := 1; i < n; i++ {
		di0 := z.At(i, 0)
		if !di0.IsInfinite() && di0.Value > upper[i] {
			z.set(i, 0, Infinity)
			clamped[i] = true
		}
		d0i := z.At(0, i)
		if lower[i] == NoBound {
			if d0i.Value < 0 {
				z.set(0, i, LEZero)
				clamped[i] = true
			}
			continue
		}
		if -d0i.Value > lower[i] {
			z.set(0, i, Bound{Cmp: LT, Value: -lower[i]})
			if plus {
				clamped[i] = true
			}
		}
	}
	if plus {
		for i := 1; i < n; i++ {
			if !clamped[i] {
				continue
			}
			for j := 1; j < n; j++ {
				if i == j {
					continue
				}
				z.set(i, j, Infinity)
				z.set(j, i, Infinity)
			}
		}
	}
	z.Tighten()
}

// ExtraM applies the classical M-based extrapolation: both the upper and
// lower role are played by cb.M(i) = max(L(i), U(i)).
func ExtraM(z *Zone, cb *ClockBounds) {
	m := mArray(cb, z.dim)
	extrapolate(z, m, m, false)
}

// ExtraMPlus is ExtraM with the additional "+" relaxation of entries
// between two clamped clocks.
func ExtraMPlus(z *Zone, cb *ClockBounds) {
	m := mArray(cb, z.dim)
	extrapolate(z, m, m, true)
}

// ExtraLU applies the finer LU-based extrapolation: clock i's upper
// (x_i - 0) entries are compared against U(i), lower entries against
// L(i).
func ExtraLU(z *Zone, cb *ClockBounds) {
	extrapolate(z, cb.U, cb.L, false)
}

// ExtraLUPlus is ExtraLU with the additional "+" relaxation.
func ExtraLUPlus(z *Zone, cb *ClockBounds) {
	extrapolate(z, cb.U, cb.L, true)
}

func mArray(cb *ClockBounds, dim int) []int64 {
	m := make([]int64, dim)
	for i := 0; i < dim; i++ {
		m[i] = cb.M(i)
	}
	return m
}

// ExtrapolationFunc is the common signature every *_global/*_local
// extrapolation family in spec.md §6's `-a` configuration table resolves
// to; the CLI/engine selects one by name (see covreach.Config).
type ExtrapolationFunc func(z *Zone, cb *ClockBounds)

// NoExtrapolation leaves z untouched; selected by the clock-bounds solver
// fallback (spec.md §4.6) when no finite bound exists for any clock.
func NoExtrapolation(*Zone, *ClockBounds) {}
