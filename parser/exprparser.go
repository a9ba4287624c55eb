package parser

import (
	"fmt"

	"github.com/ticktac-project/tchecker/expr"
)

// exprParser recursive-descends over a token slice for one EXPR or STMT
// production embedded inside an "invariant:"/"provided:"/"do:" attribute.
// Precedence, loosest to tightest: "&&", relational, "+ -", "* / %",
// unary, primary — matching spec.md §6's "obvious C-like operator
// precedence" note.
type exprParser struct {
	toks []token
	pos  int
}

func newExprParser(toks []token) *exprParser {
	return &exprParser{toks: toks}
}

func (p *exprParser) cur() token {
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos]
}

func (p *exprParser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *exprParser) expect(k tokenKind, what string) (token, error) {
	t := p.cur()
	if t.kind != k {
		return token{}, fmt.Errorf("parser: line %d: expected %s, got %s: %w", t.line, what, t, ErrUnexpectedToken)
	}
	return p.advance(), nil
}

// parseExpr parses a full "&&"-level expression.
func (p *exprParser) parseExpr() (expr.Expr, error) {
	return p.parseAnd()
}

func (p *exprParser) parseAnd() (expr.Expr, error) {
	left, err := p.parseRel()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokAnd {
		p.advance()
		right, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		left = expr.Binary{Op: expr.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) parseRel() (expr.Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	op, ok := relOp(p.cur().kind)
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return expr.Binary{Op: op, Left: left, Right: right}, nil
}

func relOp(k tokenKind) (expr.BinOp, bool) {
	switch k {
	case tokLt:
		return expr.OpLt, true
	case tokLe:
		return expr.OpLe, true
	case tokEq:
		return expr.OpEq, true
	case tokNe:
		return expr.OpNe, true
	case tokGe:
		return expr.OpGe, true
	case tokGt:
		return expr.OpGt, true
	}
	return 0, false
}

func (p *exprParser) parseAdd() (expr.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		var op expr.BinOp
		switch p.cur().kind {
		case tokPlus:
			op = expr.OpAdd
		case tokMinus:
			op = expr.OpSub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = expr.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *exprParser) parseMul() (expr.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op expr.BinOp
		switch p.cur().kind {
		case tokStar:
			op = expr.OpMul
		case tokSlash:
			op = expr.OpDiv
		case tokPercent:
			op = expr.OpMod
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = expr.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *exprParser) parseUnary() (expr.Expr, error) {
	switch p.cur().kind {
	case tokMinus:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.Unary{Op: expr.OpNeg, Operand: operand}, nil
	case tokNot:
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.Unary{Op: expr.OpNot, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (expr.Expr, error) {
	t := p.cur()
	switch {
	case t.kind == tokNumber:
		p.advance()
		return expr.IntConst{Value: t.num}, nil

	case t.kind == tokLParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return expr.Paren{Inner: inner}, nil

	case isKeyword(t, "if"):
		return p.parseIfExpr()

	case t.kind == tokIdent:
		p.advance()
		var e expr.Expr = expr.Var{Name: t.text}
		if p.cur().kind == tokLBracket {
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRBracket, "]"); err != nil {
				return nil, err
			}
			e = expr.ArrayIndex{Array: e, Index: idx}
		}
		return e, nil
	}
	return nil, fmt.Errorf("parser: line %d: unexpected %s in expression: %w", t.line, t, ErrUnexpectedToken)
}

// parseIfExpr parses "if" COND "then" EXPR "else" EXPR "end" as an
// expr.IfThenElse, the ternary-like conditional expression form.
func (p *exprParser) parseIfExpr() (expr.Expr, error) {
	p.advance() // "if"
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("else"); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return expr.IfThenElse{Cond: cond, Then: then, Else: els}, nil
}

func (p *exprParser) expectKeyword(kw string) error {
	t := p.cur()
	if !isKeyword(t, kw) {
		return fmt.Errorf("parser: line %d: expected %q, got %s: %w", t.line, kw, t, ErrUnexpectedToken)
	}
	p.advance()
	return nil
}

// parseStmt parses a ";"-separated sequence of statements: nop, an
// assignment, "if ... then ... else ... end", "while ... do ... end",
// "local x" / "local x[e]". ";" is used rather than "," so a "do:"
// attribute body nests unambiguously inside the "," separated attr list
// of a location/edge block.
func (p *exprParser) parseStmt() (expr.Stmt, error) {
	first, err := p.parseOneStmt()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokSemicolon {
		p.advance()
		next, err := p.parseOneStmt()
		if err != nil {
			return nil, err
		}
		first = expr.Seq{First: first, Second: next}
	}
	return first, nil
}

func (p *exprParser) parseOneStmt() (expr.Stmt, error) {
	t := p.cur()
	switch {
	case isKeyword(t, "nop"):
		p.advance()
		return expr.Nop{}, nil

	case isKeyword(t, "local"):
		p.advance()
		name, err := p.expect(tokIdent, "identifier")
		if err != nil {
			return nil, err
		}
		if p.cur().kind == tokLBracket {
			p.advance()
			size, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRBracket, "]"); err != nil {
				return nil, err
			}
			return expr.LocalArray{Name: name.text, Size: size}, nil
		}
		var init expr.Expr = expr.IntConst{Value: 0}
		if p.cur().kind == tokAssign {
			p.advance()
			init, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		return expr.LocalVar{Name: name.text, Init: init}, nil

	case isKeyword(t, "if"):
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("then"); err != nil {
			return nil, err
		}
		then, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		var els expr.Stmt = expr.Nop{}
		if isKeyword(p.cur(), "else") {
			p.advance()
			els, err = p.parseStmt()
			if err != nil {
				return nil, err
			}
		}
		if err := p.expectKeyword("end"); err != nil {
			return nil, err
		}
		return expr.If{Cond: cond, Then: then, Else: els}, nil

	case isKeyword(t, "while"):
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("do"); err != nil {
			return nil, err
		}
		body, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("end"); err != nil {
			return nil, err
		}
		return expr.While{Cond: cond, Body: body}, nil

	case t.kind == tokIdent:
		target, err := p.parseLvalue()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokAssign, "="); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return expr.Assign{Target: target, Value: value}, nil
	}
	return nil, fmt.Errorf("parser: line %d: unexpected %s in statement: %w", t.line, t, ErrUnexpectedToken)
}

func (p *exprParser) parseLvalue() (expr.Expr, error) {
	name, err := p.expect(tokIdent, "identifier")
	if err != nil {
		return nil, err
	}
	var e expr.Expr = expr.Var{Name: name.text}
	if p.cur().kind == tokLBracket {
		p.advance()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRBracket, "]"); err != nil {
			return nil, err
		}
		e = expr.ArrayIndex{Array: e, Index: idx}
	}
	return e, nil
}
