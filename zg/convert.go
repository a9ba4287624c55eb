package zg

import (
	"fmt"

	"github.com/ticktac-project/tchecker/dbm"
	"github.com/ticktac-project/tchecker/expr"
	"github.com/ticktac-project/tchecker/system"
)

// atomToConstraints turns one extracted clock atom into the one or two
// dbm.Constraint half-planes it denotes (an equality atom needs both
// directions).
func atomToConstraints(a expr.ClockAtom, idx *system.ClockIndex) ([]dbm.Constraint, error) {
	x, ok := idx.Index(a.Clock)
	if !ok {
		return nil, fmt.Errorf("zg: unknown clock %q", a.Clock)
	}
	if a.Other == "" {
		return singleClockConstraints(x, a.Op, a.Value)
	}
	y, ok := idx.Index(a.Other)
	if !ok {
		return nil, fmt.Errorf("zg: unknown clock %q", a.Other)
	}
	return diffClockConstraints(x, y, a.Op, a.Value)
}

func singleClockConstraints(x int, op expr.BinOp, k int64) ([]dbm.Constraint, error) {
	switch op {
	case expr.OpLt:
		c, err := dbm.ConstrainAtom(x, 0, dbm.LT, k)
		return []dbm.Constraint{c}, err
	case expr.OpLe:
		c, err := dbm.ConstrainAtom(x, 0, dbm.LE, k)
		return []dbm.Constraint{c}, err
	case expr.OpGt:
		c, err := dbm.ConstrainAtom(0, x, dbm.LT, -k)
		return []dbm.Constraint{c}, err
	case expr.OpGe:
		c, err := dbm.ConstrainAtom(0, x, dbm.LE, -k)
		return []dbm.Constraint{c}, err
	case expr.OpEq:
		le, err := dbm.ConstrainAtom(x, 0, dbm.LE, k)
		if err != nil {
			return nil, err
		}
		ge, err := dbm.ConstrainAtom(0, x, dbm.LE, -k)
		if err != nil {
			return nil, err
		}
		return []dbm.Constraint{le, ge}, nil
	default:
		return nil, fmt.Errorf("zg: unsupported clock comparator %v", op)
	}
}

func diffClockConstraints(x, y int, op expr.BinOp, k int64) ([]dbm.Constraint, error) {
	switch op {
	case expr.OpLt:
		c, err := dbm.ConstrainAtom(x, y, dbm.LT, k)
		return []dbm.Constraint{c}, err
	case expr.OpLe:
		c, err := dbm.ConstrainAtom(x, y, dbm.LE, k)
		return []dbm.Constraint{c}, err
	case expr.OpGt:
		c, err := dbm.ConstrainAtom(y, x, dbm.LT, -k)
		return []dbm.Constraint{c}, err
	case expr.OpGe:
		c, err := dbm.ConstrainAtom(y, x, dbm.LE, -k)
		return []dbm.Constraint{c}, err
	case expr.OpEq:
		le, err := dbm.ConstrainAtom(x, y, dbm.LE, k)
		if err != nil {
			return nil, err
		}
		ge, err := dbm.ConstrainAtom(y, x, dbm.LE, -k)
		if err != nil {
			return nil, err
		}
		return []dbm.Constraint{le, ge}, nil
	default:
		return nil, fmt.Errorf("zg: unsupported clock comparator %v", op)
	}
}

// applyConstraint extracts e's clock atoms, constrains zone with them and
// evaluates the non-clock residual against env, reporting whether the
// whole conjunction holds. A nil e always holds.
func applyConstraint(e expr.Expr, isClock expr.IsClock, idx *system.ClockIndex, zone *dbm.Zone, env *intEnv) (bool, error) {
	if e == nil {
		return true, nil
	}
	atoms, residual, err := expr.SplitGuard(e, isClock)
	if err != nil {
		return false, err
	}
	for _, a := range atoms {
		cs, err := atomToConstraints(a, idx)
		if err != nil {
			return false, err
		}
		zone.Constrain(cs...)
		if zone.IsEmpty() {
			return false, nil
		}
	}
	if residual != nil {
		v, err := expr.Eval(residual, env)
		if err != nil {
			return false, err
		}
		if v == 0 {
			return false, nil
		}
	}
	return true, nil
}
