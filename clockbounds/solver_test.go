package clockbounds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticktac-project/tchecker/clockbounds"
	"github.com/ticktac-project/tchecker/expr"
	"github.com/ticktac-project/tchecker/system"
)

func buildOneShot(t *testing.T) *system.System {
	t.Helper()
	s, err := system.NewSystem("oneshot",
		system.WithProcess("P"),
		system.WithEvent("go"),
		system.WithClock("x", 1),
		system.WithLocation(system.Location{Process: "P", Name: "l0", Initial: true}),
		system.WithLocation(system.Location{Process: "P", Name: "l1"}),
		system.WithEdge(system.Edge{
			Process: "P", Src: "l0", Tgt: "l1", Event: "go",
			Guard: expr.Binary{Op: expr.OpLe, Left: expr.Var{Name: "x"}, Right: expr.IntConst{Value: 5}},
		}),
	)
	require.NoError(t, err)
	return s
}

func TestSolveUpperBoundFromGuard(t *testing.T) {
	s := buildOneShot(t)
	tbl, err := clockbounds.Solve(s)
	require.NoError(t, err)

	idx, ok := tbl.Index.Index("x")
	require.True(t, ok)

	l0 := tbl.Local["P"]["l0"]
	assert.Equal(t, int64(5), l0.U[idx])
}

func TestSolveRejectsDiagonalGuard(t *testing.T) {
	s, err := system.NewSystem("diag",
		system.WithProcess("P"),
		system.WithEvent("go"),
		system.WithClock("x", 1),
		system.WithClock("y", 1),
		system.WithLocation(system.Location{Process: "P", Name: "l0", Initial: true}),
		system.WithLocation(system.Location{Process: "P", Name: "l1"}),
		system.WithEdge(system.Edge{
			Process: "P", Src: "l0", Tgt: "l1", Event: "go",
			Guard: expr.Binary{Op: expr.OpLe,
				Left:  expr.Binary{Op: expr.OpSub, Left: expr.Var{Name: "x"}, Right: expr.Var{Name: "y"}},
				Right: expr.IntConst{Value: 3},
			},
		}),
	)
	require.NoError(t, err)

	_, err = clockbounds.Solve(s)
	require.ErrorIs(t, err, clockbounds.ErrDiagonalGuard)
}
