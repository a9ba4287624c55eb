package zg

import (
	"github.com/ticktac-project/tchecker/dbm"
	"github.com/ticktac-project/tchecker/expr"
	"github.com/ticktac-project/tchecker/system"
)

// clockReset is a single clock reset extracted from an edge's update
// statement: either "clock := const" (Other == "") or "clock := other".
type clockReset struct {
	Clock string
	Other string
	Const int64
}

// splitResets extracts every top-level clock reset from s (a sequence of
// assignments, as produced by the grammar's update statements) and returns
// the remaining statement to run against the integer-variable
// environment. Clock resets nested inside an If or While are outside the
// supported fragment (ClocksResetFailed), since a zone cannot represent a
// reset that only fires along one symbolic branch's runtime condition.
func splitResets(s expr.Stmt, isClock expr.IsClock) ([]clockReset, expr.Stmt, bool) {
	switch n := s.(type) {
	case nil:
		return nil, expr.Nop{}, true
	case expr.Nop:
		return nil, n, true
	case expr.Assign:
		name, isVar := targetClockName(n.Target, isClock)
		if !isVar {
			return nil, n, true
		}
		switch v := n.Value.(type) {
		case expr.IntConst:
			return []clockReset{{Clock: name, Const: v.Value}}, expr.Nop{}, true
		case expr.Var:
			if isClock(v.Name) {
				return []clockReset{{Clock: name, Other: v.Name}}, expr.Nop{}, true
			}
		}
		return nil, nil, false
	case expr.Seq:
		r1, res1, ok1 := splitResets(n.First, isClock)
		if !ok1 {
			return nil, nil, false
		}
		r2, res2, ok2 := splitResets(n.Second, isClock)
		if !ok2 {
			return nil, nil, false
		}
		return append(r1, r2...), expr.Seq{First: res1, Second: res2}, true
	case expr.If:
		if mentionsClockAssign(n.Then, isClock) || mentionsClockAssign(n.Else, isClock) {
			return nil, nil, false
		}
		return nil, n, true
	case expr.While:
		if mentionsClockAssign(n.Body, isClock) {
			return nil, nil, false
		}
		return nil, n, true
	case expr.LocalVar, expr.LocalArray:
		return nil, n, true
	default:
		return nil, nil, false
	}
}

func targetClockName(target expr.Expr, isClock expr.IsClock) (string, bool) {
	v, ok := target.(expr.Var)
	if !ok || !isClock(v.Name) {
		return "", false
	}
	return v.Name, true
}

func mentionsClockAssign(s expr.Stmt, isClock expr.IsClock) bool {
	switch n := s.(type) {
	case expr.Assign:
		_, ok := targetClockName(n.Target, isClock)
		return ok
	case expr.Seq:
		return mentionsClockAssign(n.First, isClock) || mentionsClockAssign(n.Second, isClock)
	case expr.If:
		return mentionsClockAssign(n.Then, isClock) || mentionsClockAssign(n.Else, isClock)
	case expr.While:
		return mentionsClockAssign(n.Body, isClock)
	}
	return false
}

// applyResets applies every extracted clock reset to zone in order.
func applyResets(resets []clockReset, idx *system.ClockIndex, zone *dbm.Zone) bool {
	for _, r := range resets {
		x, ok := idx.Index(r.Clock)
		if !ok {
			return false
		}
		if r.Other == "" {
			if err := zone.ResetToValue(x, r.Const); err != nil {
				return false
			}
			continue
		}
		y, ok := idx.Index(r.Other)
		if !ok {
			return false
		}
		if err := zone.ResetToClock(x, y, 0); err != nil {
			return false
		}
	}
	return true
}
