package dbm

import "fmt"

// Zone is a dim×dim difference-bound matrix representing a convex set of
// clock valuations. Index 0 is the synthetic zero clock. Storage is a flat
// row-major slice, the same layout matrix.Dense uses for its backing
// store in the teacher library this package is modeled on.
type Zone struct {
	dim  int
	data []Bound
}

// NewZone allocates a dim×dim zone with every entry set to Infinity except
// the diagonal, which is LEZero. The result is tight but does not yet
// represent any particular valuation; callers build a real zone from it via
// Constrain, or use NewZeroZone / NewUniversalPositiveZone directly.
func NewZone(dim int) (*Zone, error) {
	if dim <= 0 {
		return nil, ErrInvalidDimension
	}
	data := make([]Bound, dim*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if i == j {
				data[i*dim+j] = LEZero
			} else {
				data[i*dim+j] = Infinity
			}
		}
	}
	return &Zone{dim: dim, data: data}, nil
}

// NewZeroZone returns the tight DBM for the singleton zone {0}: every clock
// (including the reference clock) equal to zero.
func NewZeroZone(dim int) (*Zone, error) {
	z, err := NewZone(dim)
	if err != nil {
		return nil, err
	}
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			z.data[i*dim+j] = LEZero
		}
	}
	return z, nil
}

// NewUniversalPositiveZone returns the tight DBM for the set of all
// non-negative clock valuations (every clock unconstrained above, bounded
// below by zero).
func NewUniversalPositiveZone(dim int) (*Zone, error) {
	z, err := NewZone(dim)
	if err != nil {
		return nil, err
	}
	for i := 1; i < dim; i++ {
		z.data[i*dim+0] = Infinity // no upper bound on x_i
		z.data[0*dim+i] = LEZero   // x_i >= 0
	}
	return z, nil
}

// Dim returns the zone's dimension (number of clocks including the
// reference clock).
func (z *Zone) Dim() int { return z.dim }

// At returns the bound on x_i - x_j. Panics if i or j is out of range: a
// caller addressing a clock outside the system model is a programmer
// error, not recoverable user input.
func (z *Zone) At(i, j int) Bound {
	z.checkIndex(i, j)
	return z.data[i*z.dim+j]
}

// set writes the bound on x_i - x_j without re-tightening. Internal use
// only; exported mutators go through Constrain/Reset/Delay so tightness is
// always restored before returning to the caller.
func (z *Zone) set(i, j int, b Bound) {
	z.data[i*z.dim+j] = b
}

func (z *Zone) checkIndex(i, j int) {
	if i < 0 || i >= z.dim || j < 0 || j >= z.dim {
		panic(fmt.Sprintf("dbm: index (%d,%d) out of range for dim %d", i, j, z.dim))
	}
}

// Clone returns a deep copy of z.
func (z *Zone) Clone() *Zone {
	data := make([]Bound, len(z.data))
	copy(data, z.data)
	return &Zone{dim: z.dim, data: data}
}

// IsEmpty reports whether z has been flagged empty: the convention, per
// spec.md §3, is a strictly negative bound at (0,0).
func (z *Zone) IsEmpty() bool {
	d := z.At(0, 0)
	return d.Value < 0 || (d.Value == 0 && d.Cmp == LT)
}

// markEmpty flags z as the empty zone by setting (0,0) to the canonical
// negative marker.
func (z *Zone) markEmpty() {
	z.set(0, 0, Bound{Cmp: LT, Value: -1})
}

// String renders the zone as a grid of bounds, one row per line; useful in
// test failure messages and the optional raw/DOT graph dumps.
func (z *Zone) String() string {
	s := ""
	for i := 0; i < z.dim; i++ {
		for j := 0; j < z.dim; j++ {
			if j > 0 {
				s += " "
			}
			s += z.At(i, j).String()
		}
		s += "\n"
	}
	return s
}
