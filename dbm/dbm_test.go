package dbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZoneShapes(t *testing.T) {
	t.Run("invalid dimension", func(t *testing.T) {
		_, err := NewZone(0)
		assert.ErrorIs(t, err, ErrInvalidDimension)
	})

	t.Run("zero zone is tight and consistent", func(t *testing.T) {
		z, err := NewZeroZone(3)
		require.NoError(t, err)
		assert.False(t, z.IsEmpty())
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				assert.Equal(t, LEZero, z.At(i, j))
			}
		}
	})

	t.Run("universal positive zone has no upper bounds", func(t *testing.T) {
		z, err := NewUniversalPositiveZone(2)
		require.NoError(t, err)
		assert.True(t, z.At(1, 0).IsInfinite())
		assert.Equal(t, LEZero, z.At(0, 1))
	})
}

func TestConstrainMakesEmpty(t *testing.T) {
	z, err := NewZeroZone(2)
	require.NoError(t, err)
	z.OpenUp()
	// x >= 5 && x < 3 is unsatisfiable.
	c1, err := ConstrainAtom(0, 1, LE, -5)
	require.NoError(t, err)
	z.Constrain(c1)
	require.False(t, z.IsEmpty())

	c2, err := ConstrainAtom(1, 0, LT, 3)
	require.NoError(t, err)
	z.Constrain(c2)
	assert.True(t, z.IsEmpty())
}

func TestConstrainMonotonicity(t *testing.T) {
	z, err := NewUniversalPositiveZone(2)
	require.NoError(t, err)
	before := z.Clone()

	c, err := ConstrainAtom(1, 0, LE, 5)
	require.NoError(t, err)
	z.Constrain(c)

	sub, err := IsSubset(z, before)
	require.NoError(t, err)
	assert.True(t, sub, "constrain must shrink the zone")
}

func TestResetToValueThenToClock(t *testing.T) {
	z, err := NewUniversalPositiveZone(3) // clocks 1,2
	require.NoError(t, err)

	require.NoError(t, z.ResetToValue(1, 4))
	assert.Equal(t, Bound{Cmp: LE, Value: 4}, z.At(1, 0))
	assert.Equal(t, Bound{Cmp: LE, Value: -4}, z.At(0, 1))

	require.NoError(t, z.ResetToClock(2, 1, 1))
	assert.Equal(t, Bound{Cmp: LE, Value: 5}, z.At(2, 0))
}

func TestOpenUpOpenDown(t *testing.T) {
	z, err := NewZeroZone(2)
	require.NoError(t, err)
	z.OpenUp()
	assert.True(t, z.At(1, 0).IsInfinite())
	assert.Equal(t, LEZero, z.At(0, 1))

	z.OpenDown()
	assert.Equal(t, LEZero, z.At(0, 1))
}

func TestIsSubsetReflexive(t *testing.T) {
	z, err := NewUniversalPositiveZone(3)
	require.NoError(t, err)
	sub, err := IsSubset(z, z)
	require.NoError(t, err)
	assert.True(t, sub)
}

func TestIsSubsetDimensionMismatch(t *testing.T) {
	a, _ := NewZeroZone(2)
	b, _ := NewZeroZone(3)
	_, err := IsSubset(a, b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestExtrapolationSoundness(t *testing.T) {
	z, err := NewUniversalPositiveZone(2)
	require.NoError(t, err)
	c, err := ConstrainAtom(1, 0, LE, 10)
	require.NoError(t, err)
	z.Constrain(c)
	before := z.Clone()

	cb := NewClockBounds(2)
	cb.L[1], cb.U[1] = 5, 5
	ExtraM(z, cb)

	sub, err := IsSubset(before, z)
	require.NoError(t, err)
	assert.True(t, sub, "extrapolation must over-approximate")
}

func TestExtrapolationIdempotent(t *testing.T) {
	z, err := NewUniversalPositiveZone(2)
	require.NoError(t, err)
	c, err := ConstrainAtom(1, 0, LE, 10)
	require.NoError(t, err)
	z.Constrain(c)

	cb := NewClockBounds(2)
	cb.L[1], cb.U[1] = 5, 5
	ExtraM(z, cb)
	once := z.Clone()
	ExtraM(z, cb)

	eq, err := IsEqual(once, z)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestCoverInclusionSoundWithStoredWiderZone(t *testing.T) {
	wide, err := NewUniversalPositiveZone(2)
	require.NoError(t, err)
	narrow := wide.Clone()
	c, err := ConstrainAtom(1, 0, LE, 3)
	require.NoError(t, err)
	narrow.Constrain(c)

	covered, err := CoverInclusion(narrow, wide, nil)
	require.NoError(t, err)
	assert.True(t, covered)

	covered, err = CoverInclusion(wide, narrow, nil)
	require.NoError(t, err)
	assert.False(t, covered)
}

func TestSumSaturatesToInfinity(t *testing.T) {
	a := Bound{Cmp: LE, Value: MaxFiniteValue}
	b := Bound{Cmp: LE, Value: MaxFiniteValue}
	assert.True(t, Sum(a, b).IsInfinite())
}

func TestNewBoundOverflow(t *testing.T) {
	_, err := NewBound(LE, MaxFiniteValue+1)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = NewBound(LE, -(MaxFiniteValue + 1))
	assert.ErrorIs(t, err, ErrUnderflow)
}

func TestCoverALUAcceptsBeyondUpperBoundDespiteFailingInclusion(t *testing.T) {
	// x == 100 is not plain-inclusion-covered by 0 <= x <= 5, but once
	// clock 1's upper bound U(1) is 5, any value already past it
	// (a[1,0] > U(1)) is irrelevant to the abstraction: aLU-simulation
	// must still accept it. Asymmetric L(1)=2 != U(1)=5 exercises the
	// L/U role split directly (a swapped L/U or a wrong-cell read would
	// make this fail).
	narrow, err := NewUniversalPositiveZone(2)
	require.NoError(t, err)
	c1, err := ConstrainAtom(1, 0, LE, 100)
	require.NoError(t, err)
	c2, err := ConstrainAtom(0, 1, LE, -100)
	require.NoError(t, err)
	narrow.Constrain(c1, c2)
	require.False(t, narrow.IsEmpty())

	wide, err := NewUniversalPositiveZone(2)
	require.NoError(t, err)
	c3, err := ConstrainAtom(1, 0, LE, 5)
	require.NoError(t, err)
	wide.Constrain(c3)
	require.False(t, wide.IsEmpty())

	included, err := CoverInclusion(narrow, wide, nil)
	require.NoError(t, err)
	assert.False(t, included, "x==100 is not plain-inclusion-covered by 0<=x<=5")

	cb := NewClockBounds(2)
	cb.L[1], cb.U[1] = 2, 5

	coveredALU, err := CoverALU(narrow, wide, cb)
	require.NoError(t, err)
	assert.True(t, coveredALU, "aLU-simulation must accept once a's value exceeds U(1)")

	coveredAM, err := CoverAM(narrow, wide, cb)
	require.NoError(t, err)
	assert.True(t, coveredAM, "aM-simulation (M=max(L,U)=5) must accept for the same reason")
}

func TestCoverALURejectsWithinBothBounds(t *testing.T) {
	// Neither zone's clock value exceeds U(1), so no exception branch
	// applies and aLU-simulation must fall back to the same verdict as
	// plain inclusion: x==4 is not covered by 0<=x<=1.
	narrow, err := NewUniversalPositiveZone(2)
	require.NoError(t, err)
	c1, err := ConstrainAtom(1, 0, LE, 4)
	require.NoError(t, err)
	c2, err := ConstrainAtom(0, 1, LE, -4)
	require.NoError(t, err)
	narrow.Constrain(c1, c2)
	require.False(t, narrow.IsEmpty())

	wide, err := NewUniversalPositiveZone(2)
	require.NoError(t, err)
	c3, err := ConstrainAtom(1, 0, LE, 1)
	require.NoError(t, err)
	wide.Constrain(c3)
	require.False(t, wide.IsEmpty())

	cb := NewClockBounds(2)
	cb.L[1], cb.U[1] = 2, 10 // U(1)=10 is well above both zones' values

	covered, err := CoverALU(narrow, wide, cb)
	require.NoError(t, err)
	assert.False(t, covered)
}

func TestHashStableAcrossClones(t *testing.T) {
	z, err := NewUniversalPositiveZone(3)
	require.NoError(t, err)
	c := z.Clone()
	assert.Equal(t, z.Hash(), c.Hash())
}
