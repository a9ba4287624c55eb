package dbm

// Tighten closes z under Floyd-Warshall on the (min, +) bound semiring,
// restoring the tightness invariant D[i,j] <= D[i,k] + D[k,j] for all
// i,j,k. It early-exits and flags z empty as soon as any diagonal entry
// becomes stronger than <=0, matching the incremental-tightening
// description in spec.md §4.1.
//
// Loop order is fixed (k -> i -> j), the same deterministic order
// matrix.FloydWarshall uses in the teacher library, so that results are
// reproducible across runs (spec.md §8 "Determinism").
func (z *Zone) Tighten() {
	n := z.dim
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			ik := z.At(i, k)
			if ik.IsInfinite() {
				continue
			}
			for j := 0; j < n; j++ {
				kj := z.At(k, j)
				if kj.IsInfinite() {
					continue
				}
				cand := Sum(ik, kj)
				if cand.stronger(z.At(i, j)) {
					z.set(i, j, cand)
				}
			}
		}
		if z.At(k, k).stronger(LEZero) {
			z.markEmpty()
			return
		}
	}
	// Final diagonal scan: tightening above only checks the diagonal of
	// the just-processed k; a full scan catches entries that became
	// negative only through a later k.
	for i := 0; i < n; i++ {
		if z.At(i, i).stronger(LEZero) {
			z.markEmpty()
			return
		}
	}
}

// retightenFrom performs the O(dim^2) incremental re-tightening after a
// single entry (p,q) has been strengthened, propagating the new bound
// through every pair that routes via p or q. This is the "re-tighten
// incrementally" path spec.md §4.1 calls for in Constrain, avoiding a full
// O(dim^3) Tighten on every guard.
func (z *Zone) retightenFrom(p, q int) {
	n := z.dim
	for i := 0; i < n; i++ {
		viq := Sum(z.At(i, p), z.At(p, q))
		if viq.stronger(z.At(i, q)) {
			z.set(i, q, viq)
		}
	}
	for j := 0; j < n; j++ {
		vpj := Sum(z.At(p, q), z.At(q, j))
		if vpj.stronger(z.At(p, j)) {
			z.set(p, j, vpj)
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cand := Sum(z.At(i, p), z.At(p, j))
			if cand.stronger(z.At(i, j)) {
				z.set(i, j, cand)
			}
			cand = Sum(z.At(i, q), z.At(q, j))
			if cand.stronger(z.At(i, j)) {
				z.set(i, j, cand)
			}
		}
	}
	for i := 0; i < n; i++ {
		if z.At(i, i).stronger(LEZero) {
			z.markEmpty()
			return
		}
	}
}
