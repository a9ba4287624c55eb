// Package dbm: sentinel error set.
//
// All algorithms in this package MUST return these sentinels (wrapped with
// fmt.Errorf("%w: ...") at call boundaries when more context is useful) and
// tests MUST check them via errors.Is. Panics are reserved for programmer
// errors (out-of-range clock indices passed by the caller's own system
// model, which is a bug in the caller, not a reachable user-input error).
package dbm

import "errors"

var (
	// ErrInvalidDimension is returned when a requested zone dimension is not
	// strictly positive (dimension includes the reference clock, so the
	// minimum legal dimension is 1).
	ErrInvalidDimension = errors.New("dbm: invalid dimension")

	// ErrDimensionMismatch indicates two zones involved in a binary
	// operation (Intersect, IsSubset, IsEqual, ...) do not share a
	// dimension.
	ErrDimensionMismatch = errors.New("dbm: dimension mismatch")

	// ErrClockIndexOutOfRange indicates a clock index used to address a
	// Zone entry falls outside [0, dim).
	ErrClockIndexOutOfRange = errors.New("dbm: clock index out of range")

	// ErrOverflow is returned when a raw user-supplied constant (from a
	// guard, invariant or reset statement) exceeds the safe representable
	// magnitude. Saturating arithmetic performed internally during sums
	// never raises this; only constants ingested at the API boundary do.
	ErrOverflow = errors.New("dbm: difference bound overflow")

	// ErrUnderflow mirrors ErrOverflow for the negative magnitude case.
	ErrUnderflow = errors.New("dbm: difference bound underflow")
)
