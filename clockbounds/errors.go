package clockbounds

import "errors"

// ErrDiagonalGuard is returned when a guard or invariant contains a
// clock-difference atom (x - y # k); the bounds analyzer only handles the
// diagonal-free fragment (spec.md §4.6). Callers should fall back to
// dbm.NoExtrapolation for the affected system.
var ErrDiagonalGuard = errors.New("clockbounds: diagonal clock constraint outside solver's fragment")
