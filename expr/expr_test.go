package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticktac-project/tchecker/expr"
)

// mapEnv is a minimal expr.Env backed by a flat map, used only for tests.
type mapEnv struct {
	scalars map[string]int64
	arrays  map[string][]int64
	bounds  map[string][2]int64
}

func newMapEnv() *mapEnv {
	return &mapEnv{
		scalars: map[string]int64{},
		arrays:  map[string][]int64{},
		bounds:  map[string][2]int64{},
	}
}

func (e *mapEnv) Get(name string, index int64) (int64, error) {
	if a, ok := e.arrays[name]; ok {
		return a[index], nil
	}
	if v, ok := e.scalars[name]; ok {
		return v, nil
	}
	return 0, expr.ErrUnknownVariable
}

func (e *mapEnv) Set(name string, index int64, value int64) error {
	if b, ok := e.bounds[name]; ok {
		if value < b[0] || value > b[1] {
			return expr.ErrOutOfRange
		}
	}
	if a, ok := e.arrays[name]; ok {
		a[index] = value
		return nil
	}
	e.scalars[name] = value
	return nil
}

func (e *mapEnv) ArrayLen(name string) (int64, error) {
	if a, ok := e.arrays[name]; ok {
		return int64(len(a)), nil
	}
	return 1, nil
}

func TestEvalArithmetic(t *testing.T) {
	env := newMapEnv()
	e := expr.Binary{Op: expr.OpAdd,
		Left:  expr.IntConst{Value: 2},
		Right: expr.Binary{Op: expr.OpMul, Left: expr.IntConst{Value: 3}, Right: expr.IntConst{Value: 4}},
	}
	v, err := expr.Eval(e, env)
	require.NoError(t, err)
	assert.Equal(t, int64(14), v)
}

func TestEvalDivisionByZero(t *testing.T) {
	env := newMapEnv()
	e := expr.Binary{Op: expr.OpDiv, Left: expr.IntConst{Value: 1}, Right: expr.IntConst{Value: 0}}
	_, err := expr.Eval(e, env)
	require.ErrorIs(t, err, expr.ErrDivisionByZero)
}

func TestEvalAndShortCircuits(t *testing.T) {
	env := newMapEnv()
	// 0 && (1/0) must not evaluate the right side.
	e := expr.Binary{Op: expr.OpAnd,
		Left:  expr.IntConst{Value: 0},
		Right: expr.Binary{Op: expr.OpDiv, Left: expr.IntConst{Value: 1}, Right: expr.IntConst{Value: 0}},
	}
	v, err := expr.Eval(e, env)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestArrayIndexBounds(t *testing.T) {
	env := newMapEnv()
	env.arrays["a"] = []int64{10, 20, 30}
	idx := expr.ArrayIndex{Array: expr.Var{Name: "a"}, Index: expr.IntConst{Value: 1}}
	v, err := expr.Eval(idx, env)
	require.NoError(t, err)
	assert.Equal(t, int64(20), v)

	oob := expr.ArrayIndex{Array: expr.Var{Name: "a"}, Index: expr.IntConst{Value: 5}}
	_, err = expr.Eval(oob, env)
	require.ErrorIs(t, err, expr.ErrIndexOutOfRange)
}

func TestExecAssignOutOfRange(t *testing.T) {
	env := newMapEnv()
	env.scalars["x"] = 0
	env.bounds["x"] = [2]int64{0, 5}
	stmt := expr.Assign{Target: expr.Var{Name: "x"}, Value: expr.IntConst{Value: 10}}
	err := expr.Exec(stmt, env)
	require.ErrorIs(t, err, expr.ErrOutOfRange)
}

func TestExecWhileLoop(t *testing.T) {
	env := newMapEnv()
	env.scalars["i"] = 0
	env.scalars["sum"] = 0
	loop := expr.While{
		Cond: expr.Binary{Op: expr.OpLt, Left: expr.Var{Name: "i"}, Right: expr.IntConst{Value: 5}},
		Body: expr.Seq{
			First:  expr.Assign{Target: expr.Var{Name: "sum"}, Value: expr.Binary{Op: expr.OpAdd, Left: expr.Var{Name: "sum"}, Right: expr.Var{Name: "i"}}},
			Second: expr.Assign{Target: expr.Var{Name: "i"}, Value: expr.Binary{Op: expr.OpAdd, Left: expr.Var{Name: "i"}, Right: expr.IntConst{Value: 1}}},
		},
	}
	require.NoError(t, expr.Exec(loop, env))
	assert.Equal(t, int64(10), env.scalars["sum"])
}

func isClockX(name string) bool { return name == "x" || name == "y" }

func TestSplitGuardSingleClockAtom(t *testing.T) {
	// x < 5 && i == 2
	g := expr.Binary{Op: expr.OpAnd,
		Left:  expr.Binary{Op: expr.OpLt, Left: expr.Var{Name: "x"}, Right: expr.IntConst{Value: 5}},
		Right: expr.Binary{Op: expr.OpEq, Left: expr.Var{Name: "i"}, Right: expr.IntConst{Value: 2}},
	}
	atoms, residual, err := expr.SplitGuard(g, isClockX)
	require.NoError(t, err)
	require.Len(t, atoms, 1)
	assert.Equal(t, "x", atoms[0].Clock)
	assert.Equal(t, "", atoms[0].Other)
	assert.Equal(t, int64(5), atoms[0].Value)
	require.NotNil(t, residual)

	env := newMapEnv()
	env.scalars["i"] = 2
	v, err := expr.Eval(residual, env)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestSplitGuardDifferenceAtom(t *testing.T) {
	// x - y <= 3
	g := expr.Binary{Op: expr.OpLe,
		Left:  expr.Binary{Op: expr.OpSub, Left: expr.Var{Name: "x"}, Right: expr.Var{Name: "y"}},
		Right: expr.IntConst{Value: 3},
	}
	atoms, residual, err := expr.SplitGuard(g, isClockX)
	require.NoError(t, err)
	require.Len(t, atoms, 1)
	assert.Equal(t, "x", atoms[0].Clock)
	assert.Equal(t, "y", atoms[0].Other)
	assert.Equal(t, int64(3), atoms[0].Value)
	assert.Nil(t, residual)
}

func TestSplitGuardRejectsUnsupportedShape(t *testing.T) {
	// x * 2 < 5 is not a difference-bound atom.
	g := expr.Binary{Op: expr.OpLt,
		Left:  expr.Binary{Op: expr.OpMul, Left: expr.Var{Name: "x"}, Right: expr.IntConst{Value: 2}},
		Right: expr.IntConst{Value: 5},
	}
	_, _, err := expr.SplitGuard(g, isClockX)
	require.ErrorIs(t, err, expr.ErrUnsupportedGuardAtom)
}

func TestWrittenAndReadVars(t *testing.T) {
	s := expr.Seq{
		First:  expr.Assign{Target: expr.Var{Name: "x"}, Value: expr.IntConst{Value: 0}},
		Second: expr.If{Cond: expr.Var{Name: "c"}, Then: expr.Assign{Target: expr.Var{Name: "y"}, Value: expr.Var{Name: "z"}}, Else: expr.Nop{}},
	}
	w := expr.WrittenVars(s)
	assert.True(t, w["x"])
	assert.True(t, w["y"])
	assert.False(t, w["z"])

	r := expr.ReadVars(expr.Binary{Op: expr.OpAdd, Left: expr.Var{Name: "a"}, Right: expr.Var{Name: "b"}})
	assert.True(t, r["a"])
	assert.True(t, r["b"])
}
