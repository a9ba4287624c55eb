package expr

// ClockAtom is a single difference-bound comparison extracted from a guard
// or invariant expression: Clock Op Value (Other == "") or
// Clock - Other Op Value.
type ClockAtom struct {
	Clock string
	Other string // "" for a single-clock atom
	Op    BinOp  // one of OpLt, OpLe, OpEq, OpGe, OpGt
	Value int64
}

// IsClock reports whether name is a clock, per the classifier passed to
// SplitGuard and WrittenVars/ReadVars callers.
type IsClock func(name string) bool

// SplitGuard walks e, which must be a (possibly empty) "&&"-conjunction of
// comparisons, and separates clock difference-bound atoms (x # k, x - y # k)
// from everything else. The non-clock leaves are reassembled into residual,
// evaluable against an integer-variable Env; residual is nil if every leaf
// was a clock atom. SplitGuard returns ErrUnsupportedGuardAtom if a leaf
// mixes clock and non-clock operands in a shape that isn't one of the two
// supported atom forms.
func SplitGuard(e Expr, isClock IsClock) (atoms []ClockAtom, residual Expr, err error) {
	for _, leaf := range conjuncts(e) {
		atom, isAtom, err := asClockAtom(leaf, isClock)
		if err != nil {
			return nil, nil, err
		}
		if isAtom {
			atoms = append(atoms, atom)
			continue
		}
		if mentionsClock(leaf, isClock) {
			return nil, nil, ErrUnsupportedGuardAtom
		}
		residual = and(residual, leaf)
	}
	return atoms, residual, nil
}

// conjuncts flattens a right- or left-leaning tree of "&&" into its leaves.
func conjuncts(e Expr) []Expr {
	if e == nil {
		return nil
	}
	if p, ok := e.(Paren); ok {
		return conjuncts(p.Inner)
	}
	b, ok := e.(Binary)
	if !ok || b.Op != OpAnd {
		return []Expr{e}
	}
	return append(conjuncts(b.Left), conjuncts(b.Right)...)
}

func and(a, b Expr) Expr {
	if a == nil {
		return b
	}
	return Binary{Op: OpAnd, Left: a, Right: b}
}

// asClockAtom recognizes "clock # k", "k # clock", "clock - clock # k" and
// their Paren-wrapped forms.
func asClockAtom(e Expr, isClock IsClock) (ClockAtom, bool, error) {
	b, ok := unwrap(e).(Binary)
	if !ok || !isCompareOp(b.Op) {
		return ClockAtom{}, false, nil
	}
	lhs, rhs := unwrap(b.Left), unwrap(b.Right)

	if lv, ok := lhs.(Var); ok && isClock(lv.Name) {
		if k, ok := asConst(rhs); ok {
			return ClockAtom{Clock: lv.Name, Op: b.Op, Value: k}, true, nil
		}
		if rv, ok := rhs.(Var); ok && isClock(rv.Name) {
			return ClockAtom{Clock: lv.Name, Other: rv.Name, Op: b.Op, Value: 0}, true, nil
		}
		if diff, other, k, ok := asClockMinusConst(rhs, isClock); ok {
			// clock # other - k  <=>  clock - other # -k, flip handled by caller semantics
			_ = diff
			return ClockAtom{Clock: lv.Name, Other: other, Op: b.Op, Value: -k}, true, nil
		}
		return ClockAtom{}, false, ErrUnsupportedGuardAtom
	}
	if k, ok := asConst(lhs); ok {
		if rv, ok := rhs.(Var); ok && isClock(rv.Name) {
			return ClockAtom{Clock: rv.Name, Op: flip(b.Op), Value: k}, true, nil
		}
	}
	if diffClock, other, k, ok := asClockMinus(lhs, isClock); ok {
		if rk, ok := asConst(rhs); ok {
			return ClockAtom{Clock: diffClock, Other: other, Op: b.Op, Value: rk + k}, true, nil
		}
	}
	return ClockAtom{}, false, nil
}

// asClockMinus matches "clock - other" where clock is a clock (other may or
// may not be); k is always 0 for this shape, kept for asClockMinusConst reuse.
func asClockMinus(e Expr, isClock IsClock) (clock, other string, k int64, ok bool) {
	b, ok2 := unwrap(e).(Binary)
	if !ok2 || b.Op != OpSub {
		return "", "", 0, false
	}
	lv, ok2 := unwrap(b.Left).(Var)
	if !ok2 || !isClock(lv.Name) {
		return "", "", 0, false
	}
	rv, ok2 := unwrap(b.Right).(Var)
	if !ok2 {
		return "", "", 0, false
	}
	return lv.Name, rv.Name, 0, true
}

// asClockMinusConst matches "other - k" for the "clock # other - k" shape.
func asClockMinusConst(e Expr, isClock IsClock) (isDiff bool, other string, k int64, ok bool) {
	b, ok2 := unwrap(e).(Binary)
	if !ok2 || b.Op != OpSub {
		return false, "", 0, false
	}
	rv, ok2 := unwrap(b.Left).(Var)
	if !ok2 {
		return false, "", 0, false
	}
	ck, ok2 := asConst(unwrap(b.Right))
	if !ok2 {
		return false, "", 0, false
	}
	return true, rv.Name, ck, true
}

func asConst(e Expr) (int64, bool) {
	switch n := unwrap(e).(type) {
	case IntConst:
		return n.Value, true
	case Unary:
		if n.Op == OpNeg {
			if v, ok := asConst(n.Operand); ok {
				return -v, true
			}
		}
	}
	return 0, false
}

func unwrap(e Expr) Expr {
	for {
		p, ok := e.(Paren)
		if !ok {
			return e
		}
		e = p.Inner
	}
}

func isCompareOp(op BinOp) bool {
	switch op {
	case OpLt, OpLe, OpEq, OpGe, OpGt:
		return true
	}
	return false
}

func flip(op BinOp) BinOp {
	switch op {
	case OpLt:
		return OpGt
	case OpLe:
		return OpGe
	case OpGe:
		return OpLe
	case OpGt:
		return OpLt
	default:
		return op
	}
}

func mentionsClock(e Expr, isClock IsClock) bool {
	switch n := e.(type) {
	case Var:
		return isClock(n.Name)
	case ArrayIndex:
		return mentionsClock(n.Array, isClock) || mentionsClock(n.Index, isClock)
	case Unary:
		return mentionsClock(n.Operand, isClock)
	case Binary:
		return mentionsClock(n.Left, isClock) || mentionsClock(n.Right, isClock)
	case IfThenElse:
		return mentionsClock(n.Cond, isClock) || mentionsClock(n.Then, isClock) || mentionsClock(n.Else, isClock)
	case Paren:
		return mentionsClock(n.Inner, isClock)
	}
	return false
}

// WrittenVars returns the set of flattened-variable names s assigns to,
// used by the clock-bounds solver to derive each edge's update map.
func WrittenVars(s Stmt) map[string]bool {
	out := map[string]bool{}
	collectWritten(s, out)
	return out
}

func collectWritten(s Stmt, out map[string]bool) {
	switch n := s.(type) {
	case Assign:
		switch t := n.Target.(type) {
		case Var:
			out[t.Name] = true
		case ArrayIndex:
			if name, ok := arrayName(t.Array); ok {
				out[name] = true
			}
		}
	case Seq:
		collectWritten(n.First, out)
		collectWritten(n.Second, out)
	case If:
		collectWritten(n.Then, out)
		collectWritten(n.Else, out)
	case While:
		collectWritten(n.Body, out)
	}
}

// ReadVars returns the set of flattened-variable names e reads.
func ReadVars(e Expr) map[string]bool {
	out := map[string]bool{}
	collectRead(e, out)
	return out
}

func collectRead(e Expr, out map[string]bool) {
	switch n := e.(type) {
	case Var:
		out[n.Name] = true
	case ArrayIndex:
		if name, ok := arrayName(n.Array); ok {
			out[name] = true
		}
		collectRead(n.Index, out)
	case Unary:
		collectRead(n.Operand, out)
	case Binary:
		collectRead(n.Left, out)
		collectRead(n.Right, out)
	case IfThenElse:
		collectRead(n.Cond, out)
		collectRead(n.Then, out)
		collectRead(n.Else, out)
	case Paren:
		collectRead(n.Inner, out)
	}
}
