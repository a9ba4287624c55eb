package dbm

import "fmt"

// IsSubset reports whether zone(a) is included in zone(b): entry-wise,
// a[i,j] must be at least as strong as b[i,j] for every i,j. Both zones
// must already be tight. Returns ErrDimensionMismatch if dimensions
// differ.
func IsSubset(a, b *Zone) (bool, error) {
	if a.dim != b.dim {
		return false, fmt.Errorf("dbm: IsSubset: %w", ErrDimensionMismatch)
	}
	if a.IsEmpty() {
		return true, nil
	}
	if b.IsEmpty() {
		return false, nil
	}
	for i := 0; i < a.dim; i++ {
		for j := 0; j < a.dim; j++ {
			if !a.At(i, j).stronger(b.At(i, j)) && a.At(i, j) != b.At(i, j) {
				return false, nil
			}
		}
	}
	return true, nil
}

// IsEqual reports whether a and b represent the same zone. Since tight
// DBMs are the unique canonical representative of their zone (spec.md §3
// "Uniqueness"), this reduces to entry-wise equality once both directions
// of inclusion are known; we take the direct entry-wise path as the fast
// common case and fall back to double inclusion only if it fails, to stay
// correct even if a caller passes a non-canonical-but-intersecting pair.
func IsEqual(a, b *Zone) (bool, error) {
	if a.dim != b.dim {
		return false, fmt.Errorf("dbm: IsEqual: %w", ErrDimensionMismatch)
	}
	if a.IsEmpty() || b.IsEmpty() {
		return a.IsEmpty() == b.IsEmpty(), nil
	}
	equalEntries := true
	for i := 0; i < a.dim && equalEntries; i++ {
		for j := 0; j < a.dim; j++ {
			if a.At(i, j) != b.At(i, j) {
				equalEntries = false
				break
			}
		}
	}
	if equalEntries {
		return true, nil
	}
	sub, err := IsSubset(a, b)
	if err != nil || !sub {
		return false, err
	}
	return IsSubset(b, a)
}
