package parser

import (
	"fmt"

	"github.com/ticktac-project/tchecker/expr"
	"github.com/ticktac-project/tchecker/system"
)

// Parse reads src (spec.md §6's input language) and builds a
// *system.System. It performs two passes: the first collects every
// option in source order, the second hands them all to
// system.NewSystem in one call, so the final validation
// (initial-location presence, weak-sync-guard check) runs once over the
// complete declaration set; each sync option also checks weak-sync
// guards against the edges declared before it.
func Parse(src string) (*system.System, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &topParser{toks: toks}
	return p.parseSystem()
}

// topParser walks the top-level system/decl grammar.
type topParser struct {
	toks []token
	pos  int
}

func (p *topParser) cur() token {
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos]
}

func (p *topParser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *topParser) expect(k tokenKind, what string) (token, error) {
	t := p.cur()
	if t.kind != k {
		return token{}, fmt.Errorf("parser: line %d: expected %s, got %s: %w", t.line, what, t, ErrUnexpectedToken)
	}
	return p.advance(), nil
}

func (p *topParser) expectKeyword(kw string) error {
	t := p.cur()
	if !isKeyword(t, kw) {
		return fmt.Errorf("parser: line %d: expected %q, got %s: %w", t.line, kw, t, ErrUnexpectedToken)
	}
	p.advance()
	return nil
}

func (p *topParser) parseSystem() (*system.System, error) {
	if err := p.expectKeyword("system"); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent, "system name")
	if err != nil {
		return nil, err
	}

	var opts []system.Option
	for p.cur().kind != tokEOF {
		opt, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}

	return system.NewSystem(name.text, opts...)
}

func (p *topParser) parseDecl() (system.Option, error) {
	t := p.cur()
	if t.kind != tokIdent {
		return nil, fmt.Errorf("parser: line %d: expected declaration, got %s: %w", t.line, t, ErrUnknownDecl)
	}
	switch t.text {
	case "event":
		return p.parseEvent()
	case "process":
		return p.parseProcess()
	case "clock":
		return p.parseClock()
	case "int":
		return p.parseInt()
	case "location":
		return p.parseLocation()
	case "edge":
		return p.parseEdge()
	case "sync":
		return p.parseSync()
	}
	return nil, fmt.Errorf("parser: line %d: %q is not a declaration keyword: %w", t.line, t.text, ErrUnknownDecl)
}

func (p *topParser) parseEvent() (system.Option, error) {
	p.advance()
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent, "event name")
	if err != nil {
		return nil, err
	}
	return system.WithEvent(name.text), nil
}

func (p *topParser) parseProcess() (system.Option, error) {
	p.advance()
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent, "process name")
	if err != nil {
		return nil, err
	}
	return system.WithProcess(name.text), nil
}

func (p *topParser) parseClock() (system.Option, error) {
	p.advance()
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	size, err := p.expect(tokNumber, "clock size")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent, "clock name")
	if err != nil {
		return nil, err
	}
	return system.WithClock(name.text, size.num), nil
}

func (p *topParser) parseInt() (system.Option, error) {
	p.advance()
	fields := make([]int64, 3)
	for i := range fields {
		if _, err := p.expect(tokColon, ":"); err != nil {
			return nil, err
		}
		n, err := p.parseSignedNumber()
		if err != nil {
			return nil, err
		}
		fields[i] = n
	}
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	init, err := p.parseSignedNumber()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent, "int variable name")
	if err != nil {
		return nil, err
	}
	size, min, max := fields[0], fields[1], fields[2]
	return system.WithIntVar(name.text, size, min, max, init), nil
}

// parseSignedNumber allows a leading "-" on MIN/MAX/INIT fields, which
// the tokenizer does not fold into tokNumber (unary "-" is otherwise an
// expression-level operator).
func (p *topParser) parseSignedNumber() (int64, error) {
	neg := false
	if p.cur().kind == tokMinus {
		p.advance()
		neg = true
	}
	t, err := p.expect(tokNumber, "integer")
	if err != nil {
		return 0, err
	}
	if neg {
		return -t.num, nil
	}
	return t.num, nil
}

func (p *topParser) parseLocation() (system.Option, error) {
	p.advance()
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	pid, err := p.expect(tokIdent, "process id")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	lid, err := p.expect(tokIdent, "location id")
	if err != nil {
		return nil, err
	}

	loc := system.Location{Process: pid.text, Name: lid.text}
	if p.cur().kind == tokLBrace {
		if err := p.parseAttrs(&loc); err != nil {
			return nil, err
		}
	}
	return system.WithLocation(loc), nil
}

func (p *topParser) parseEdge() (system.Option, error) {
	p.advance()
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	pid, err := p.expect(tokIdent, "process id")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	src, err := p.expect(tokIdent, "source location")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	tgt, err := p.expect(tokIdent, "target location")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon, ":"); err != nil {
		return nil, err
	}
	event, err := p.expect(tokIdent, "event name")
	if err != nil {
		return nil, err
	}

	e := system.Edge{Process: pid.text, Src: src.text, Tgt: tgt.text, Event: event.text}
	if p.cur().kind == tokLBrace {
		if err := p.parseEdgeAttrs(&e); err != nil {
			return nil, err
		}
	}
	return system.WithEdge(e), nil
}

// parseAttrs reads a "{ attr ("," attr)* }" block for a location:
// initial/committed/urgent/invariant/labels.
func (p *topParser) parseAttrs(loc *system.Location) error {
	p.advance() // "{"
	for {
		t := p.cur()
		if t.kind != tokIdent {
			return fmt.Errorf("parser: line %d: expected attribute, got %s: %w", t.line, t, ErrUnknownAttr)
		}
		switch t.text {
		case "initial":
			p.advance()
			if _, err := p.expect(tokColon, ":"); err != nil {
				return err
			}
			loc.Initial = true
		case "committed":
			p.advance()
			if _, err := p.expect(tokColon, ":"); err != nil {
				return err
			}
			loc.Committed = true
		case "urgent":
			p.advance()
			if _, err := p.expect(tokColon, ":"); err != nil {
				return err
			}
			loc.Urgent = true
		case "invariant":
			p.advance()
			if _, err := p.expect(tokColon, ":"); err != nil {
				return err
			}
			e, err := p.parseAttrExpr()
			if err != nil {
				return err
			}
			loc.Invariant = e
		case "labels":
			p.advance()
			if _, err := p.expect(tokColon, ":"); err != nil {
				return err
			}
			labels, err := p.parseLabelList()
			if err != nil {
				return err
			}
			loc.Labels = labels
		default:
			return fmt.Errorf("parser: line %d: %q is not a location attribute: %w", t.line, t.text, ErrUnknownAttr)
		}
		if p.cur().kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	_, err := p.expect(tokRBrace, "}")
	return err
}

// parseEdgeAttrs reads a "{ attr ("," attr)* }" block for an edge:
// provided/do (an edge has no initial/committed/urgent/labels/invariant
// attributes).
func (p *topParser) parseEdgeAttrs(e *system.Edge) error {
	p.advance() // "{"
	for {
		t := p.cur()
		if t.kind != tokIdent {
			return fmt.Errorf("parser: line %d: expected attribute, got %s: %w", t.line, t, ErrUnknownAttr)
		}
		switch t.text {
		case "provided":
			p.advance()
			if _, err := p.expect(tokColon, ":"); err != nil {
				return err
			}
			guard, err := p.parseAttrExpr()
			if err != nil {
				return err
			}
			e.Guard = guard
		case "do":
			p.advance()
			if _, err := p.expect(tokColon, ":"); err != nil {
				return err
			}
			stmt, err := p.parseAttrStmt()
			if err != nil {
				return err
			}
			e.Statement = stmt
		default:
			return fmt.Errorf("parser: line %d: %q is not an edge attribute: %w", t.line, t.text, ErrUnknownAttr)
		}
		if p.cur().kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	_, err := p.expect(tokRBrace, "}")
	return err
}

func (p *topParser) parseLabelList() ([]string, error) {
	first, err := p.expect(tokIdent, "label")
	if err != nil {
		return nil, err
	}
	labels := []string{first.text}
	for p.cur().kind == tokComma {
		// A label list's commas are ambiguous with the attr block's own
		// "," separator; disambiguate by only consuming the comma when
		// it is immediately followed by another identifier that is not
		// itself a known attribute keyword.
		save := p.pos
		p.advance()
		t := p.cur()
		if t.kind != tokIdent || isAttrKeyword(t.text) {
			p.pos = save
			break
		}
		p.advance()
		labels = append(labels, t.text)
	}
	return labels, nil
}

func isAttrKeyword(s string) bool {
	switch s {
	case "initial", "committed", "urgent", "invariant", "labels", "provided", "do":
		return true
	}
	return false
}

// attrTokens collects the tokens of one EXPR/STMT attribute value: every
// token up to (but not including) the next top-level "," or the closing
// "}". The grammar never produces a literal "," inside an expression or
// statement (array indices use "[" "]", sequencing uses ";"), so no
// bracket-depth tracking is needed.
func (p *topParser) attrTokens() []token {
	var out []token
	for {
		t := p.cur()
		if t.kind == tokEOF || t.kind == tokComma || t.kind == tokRBrace {
			break
		}
		out = append(out, p.advance())
	}
	return append(out, token{kind: tokEOF})
}

func (p *topParser) parseAttrExpr() (expr.Expr, error) {
	toks := p.attrTokens()
	ep := newExprParser(toks)
	e, err := ep.parseExpr()
	if err != nil {
		return nil, err
	}
	if ep.cur().kind != tokEOF {
		return nil, fmt.Errorf("parser: line %d: trailing tokens after expression: %w", ep.cur().line, ErrUnexpectedToken)
	}
	return e, nil
}

func (p *topParser) parseAttrStmt() (expr.Stmt, error) {
	toks := p.attrTokens()
	ep := newExprParser(toks)
	s, err := ep.parseStmt()
	if err != nil {
		return nil, err
	}
	if ep.cur().kind != tokEOF {
		return nil, fmt.Errorf("parser: line %d: trailing tokens after statement: %w", ep.cur().line, ErrUnexpectedToken)
	}
	return s, nil
}

func (p *topParser) parseSync() (system.Option, error) {
	p.advance()
	var constraints []system.SyncConstraint
	for {
		if _, err := p.expect(tokColon, ":"); err != nil {
			return nil, err
		}
		pid, err := p.expect(tokIdent, "process id")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokAt, "@"); err != nil {
			return nil, err
		}
		event, err := p.expect(tokIdent, "event name")
		if err != nil {
			return nil, err
		}
		strength := system.Mandatory
		if p.cur().kind == tokQuestion {
			p.advance()
			strength = system.Weak
		}
		constraints = append(constraints, system.SyncConstraint{
			Process: pid.text, Event: event.text, Strength: strength,
		})
		if p.cur().kind != tokColon {
			break
		}
	}
	return system.WithSynchronization(system.Synchronization{Constraints: constraints}), nil
}
