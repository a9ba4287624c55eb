package covreach_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticktac-project/tchecker/covreach"
	"github.com/ticktac-project/tchecker/dbm"
	"github.com/ticktac-project/tchecker/expr"
	"github.com/ticktac-project/tchecker/system"
	"github.com/ticktac-project/tchecker/ta"
	"github.com/ticktac-project/tchecker/zg"
)

func noBounds(ta.VLoc) *dbm.ClockBounds { return dbm.NewClockBounds(1) }

func acceptingAt(name string) func(*zg.State) bool {
	return func(s *zg.State) bool {
		for _, l := range s.VLoc {
			if l.Name == name {
				return true
			}
		}
		return false
	}
}

// TestSingleClockNoBoundNotReachable mirrors spec.md §8 scenario 1.
func TestSingleClockNoBoundNotReachable(t *testing.T) {
	s, err := system.NewSystem("single",
		system.WithProcess("P"),
		system.WithClock("x", 1),
		system.WithLocation(system.Location{Process: "P", Name: "l0", Initial: true}),
	)
	require.NoError(t, err)

	g := zg.New(s, zg.Standard)
	eng := covreach.New(g, covreach.Config{
		Cover:     dbm.CoverInclusion,
		Bounds:    noBounds,
		Accepting: acceptingAt("unreachable"),
		Policy:    covreach.LeafNodes,
		Order:     covreach.LIFO,
	})

	reachable, err := eng.Run()
	require.NoError(t, err)
	assert.False(t, reachable)
	assert.Equal(t, 1, eng.Stats().StoredNodes)
}

// TestGuardedOneShotReachable mirrors spec.md §8 scenario 2.
func TestGuardedOneShotReachable(t *testing.T) {
	s, err := system.NewSystem("oneshot",
		system.WithProcess("P"),
		system.WithEvent("go"),
		system.WithClock("x", 1),
		system.WithLocation(system.Location{Process: "P", Name: "l0", Initial: true}),
		system.WithLocation(system.Location{Process: "P", Name: "l1"}),
		system.WithEdge(system.Edge{
			Process: "P", Src: "l0", Tgt: "l1", Event: "go",
			Guard: expr.Binary{Op: expr.OpGe, Left: expr.Var{Name: "x"}, Right: expr.IntConst{Value: 1}},
		}),
	)
	require.NoError(t, err)

	g := zg.New(s, zg.Standard)
	eng := covreach.New(g, covreach.Config{
		Cover:     dbm.CoverInclusion,
		Bounds:    noBounds,
		Accepting: acceptingAt("l1"),
		Policy:    covreach.LeafNodes,
		Order:     covreach.LIFO,
	})

	reachable, err := eng.Run()
	require.NoError(t, err)
	assert.True(t, reachable)
	assert.Equal(t, 2, eng.Stats().StoredNodes)
}
