package dbm

// ResetToValue implements "x := v": replace the row/column of clock x by
// the row/column of the zero clock shifted by v, then restore D[x,x] =
// <=0. This is the y=0 special case of ResetToClock.
func (z *Zone) ResetToValue(x int, v int64) error {
	return z.ResetToClock(x, 0, v)
}

// ResetToClock implements "x := y + v": replace the row and column of x by
// those of y shifted by v. Per spec.md §4.1 this preserves tightness
// without requiring a full re-tighten (the shift is distance-preserving on
// every other pair).
func (z *Zone) ResetToClock(x, y int, v int64) error {
	z.checkIndex(x, y)
	if z.IsEmpty() {
		return nil
	}
	shift, err := NewBound(LE, v)
	if err != nil {
		return err
	}
	negShift, err := NewBound(LE, -v)
	if err != nil {
		return err
	}
	n := z.dim
	for k := 0; k < n; k++ {
		if k == x {
			continue
		}
		z.set(x, k, Sum(shift, z.At(y, k)))
		z.set(k, x, Sum(z.At(k, y), negShift))
	}
	z.set(x, x, LEZero)
	return nil
}
