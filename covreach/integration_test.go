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

// countLocation builds an accepting predicate counting how many processes
// currently sit in a location named name, compared against want.
func countLocation(name string, want int) func(*zg.State) bool {
	return func(s *zg.State) bool {
		n := 0
		for _, l := range s.VLoc {
			if l.Name == name {
				n++
			}
		}
		return n == want
	}
}

// dining builds a five-philosopher network: each philosopher i first
// grabs its own fork (int var fork_i, 0 free / 1 held), then the fork to
// its right; the classic deadlock is every philosopher holding its own
// fork and waiting on its neighbour's, i.e. all five stuck in "hungry".
func dining(t *testing.T) *system.System {
	t.Helper()
	opts := []system.Option{
		system.WithEvent("take_left"),
		system.WithEvent("take_right"),
	}
	for i := 0; i < 5; i++ {
		opts = append(opts, system.WithIntVar(forkName(i), 1, 0, 1, 0))
	}
	for i := 0; i < 5; i++ {
		p := procName(i)
		right := (i + 1) % 5
		opts = append(opts,
			system.WithProcess(p),
			system.WithLocation(system.Location{Process: p, Name: "thinking", Initial: true}),
			system.WithLocation(system.Location{Process: p, Name: "hungry"}),
			system.WithLocation(system.Location{Process: p, Name: "eating"}),
			system.WithEdge(system.Edge{
				Process: p, Src: "thinking", Tgt: "hungry", Event: "take_left",
				Guard:     expr.Binary{Op: expr.OpEq, Left: expr.Var{Name: forkName(i)}, Right: expr.IntConst{Value: 0}},
				Statement: expr.Assign{Target: expr.Var{Name: forkName(i)}, Value: expr.IntConst{Value: 1}},
			}),
			system.WithEdge(system.Edge{
				Process: p, Src: "hungry", Tgt: "eating", Event: "take_right",
				Guard:     expr.Binary{Op: expr.OpEq, Left: expr.Var{Name: forkName(right)}, Right: expr.IntConst{Value: 0}},
				Statement: expr.Assign{Target: expr.Var{Name: forkName(right)}, Value: expr.IntConst{Value: 1}},
			}),
		)
	}
	s, err := system.NewSystem("dining", opts...)
	require.NoError(t, err)
	return s
}

func procName(i int) string { return "P" + string(rune('0'+i)) }
func forkName(i int) string { return "fork" + string(rune('0'+i)) }

// TestDiningPhilosophersDeadlockReachable mirrors spec.md §8 scenario 4:
// every philosopher can take its own (left) fork, after which none can
// take its right neighbour's, since each neighbour already holds it as
// its own left fork — the classic deadlock, reachable with zg.Elapsed
// semantics and the ALU cover relation.
func TestDiningPhilosophersDeadlockReachable(t *testing.T) {
	s := dining(t)
	g := zg.New(s, zg.Elapsed, zg.WithExtrapolation(dbm.ExtraLUPlus, func(ta.VLoc) *dbm.ClockBounds {
		return dbm.NewClockBounds(g0Dim(s))
	}))
	eng := covreach.New(g, covreach.Config{
		Cover:     dbm.CoverALU,
		Bounds:    g.Bounds,
		Accepting: countLocation("hungry", 5),
		Policy:    covreach.Full,
		Order:     covreach.FIFO,
	})

	reachable, err := eng.Run()
	require.NoError(t, err)
	assert.True(t, reachable)
	assert.Greater(t, eng.Stats().StoredNodes, 0)
}

func g0Dim(s *system.System) int {
	return s.BuildClockIndex().Dim()
}

// TestMutualExclusionNotReachable mirrors spec.md §8 scenario 5 (a
// non-diagonal, shared-variable mutual-exclusion network in the style of
// Fischer's protocol, scaled to N=3): a shared "turn" variable lets at
// most one process reach "cs" at a time, so the joint state with two
// processes simultaneously in "cs" is never reachable. The state space is
// small enough to enumerate by hand: (idle,idle,idle,turn=0)
// plus one (cs,turn=i) state per process, four states total.
func TestMutualExclusionNotReachable(t *testing.T) {
	const n = 3
	opts := []system.Option{
		system.WithIntVar("turn", 1, 0, n, 0),
	}
	for i := 1; i <= n; i++ {
		p := procName(i)
		opts = append(opts,
			system.WithEvent("req"+string(rune('0'+i))),
			system.WithEvent("exit"+string(rune('0'+i))),
			system.WithProcess(p),
			system.WithLocation(system.Location{Process: p, Name: "idle", Initial: true}),
			system.WithLocation(system.Location{Process: p, Name: "cs"}),
			system.WithEdge(system.Edge{
				Process: p, Src: "idle", Tgt: "cs", Event: "req" + string(rune('0'+i)),
				Guard:     expr.Binary{Op: expr.OpEq, Left: expr.Var{Name: "turn"}, Right: expr.IntConst{Value: 0}},
				Statement: expr.Assign{Target: expr.Var{Name: "turn"}, Value: expr.IntConst{Value: int64(i)}},
			}),
			system.WithEdge(system.Edge{
				Process: p, Src: "cs", Tgt: "idle", Event: "exit" + string(rune('0'+i)),
				Statement: expr.Assign{Target: expr.Var{Name: "turn"}, Value: expr.IntConst{Value: 0}},
			}),
		)
	}
	s, err := system.NewSystem("mutex", opts...)
	require.NoError(t, err)

	g := zg.New(s, zg.Standard)
	eng := covreach.New(g, covreach.Config{
		Cover:     dbm.CoverInclusion,
		Bounds:    noBounds,
		Accepting: countLocation("cs", 2),
		Policy:    covreach.LeafNodes,
		Order:     covreach.FIFO,
	})

	reachable, err := eng.Run()
	require.NoError(t, err)
	assert.False(t, reachable)
	assert.Equal(t, 4, eng.Stats().StoredNodes)
}

// TestOverflowGuardRaisesError mirrors spec.md §8 scenario 6: a guard
// constant past dbm.MaxFiniteValue must fail cleanly (wrapped
// dbm.ErrOverflow surfacing through Engine.Run), never crash or produce
// an undefined zone.
func TestOverflowGuardRaisesError(t *testing.T) {
	const tooBig = dbm.MaxFiniteValue + 1_000_000_000

	s, err := system.NewSystem("overflow",
		system.WithProcess("P"),
		system.WithEvent("go"),
		system.WithClock("x", 1),
		system.WithLocation(system.Location{Process: "P", Name: "l0", Initial: true}),
		system.WithLocation(system.Location{Process: "P", Name: "l1"}),
		system.WithEdge(system.Edge{
			Process: "P", Src: "l0", Tgt: "l1", Event: "go",
			Guard: expr.Binary{Op: expr.OpLe, Left: expr.Var{Name: "x"}, Right: expr.IntConst{Value: tooBig}},
		}),
	)
	require.NoError(t, err)

	g := zg.New(s, zg.Standard)
	eng := covreach.New(g, covreach.Config{
		Cover:     dbm.CoverInclusion,
		Bounds:    noBounds,
		Accepting: countLocation("l1", 1),
		Policy:    covreach.LeafNodes,
		Order:     covreach.LIFO,
	})

	reachable, err := eng.Run()
	require.Error(t, err)
	require.ErrorIs(t, err, dbm.ErrOverflow)
	assert.False(t, reachable)
}
