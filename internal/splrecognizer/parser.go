package splrecognizer

import (
	"strconv"
	"strings"

	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
)

// parser is a recursive-descent parser over a predicate's token stream,
// mirroring sigmarule's condition parser in shape (or > and > not > atom)
// but producing queryast.Query leaves directly instead of selection
// references, since the reverse direction has no selections to resolve
// against yet. Implicit AND (two atoms with nothing between them, the way
// SPL's own search-time "and" works, and the way the emitter joins
// top-level conjuncts) is accepted alongside the explicit "AND"/"OR"/"NOT"
// connectives the emitter writes inside parenthesized groups.
type parser struct {
	toks []tok
	pos  int
}

func parsePredicate(fragment string) (queryast.Query, error) {
	toks, err := tokenize(fragment)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tEOF {
		return nil, ErrEmptyQuery{}
	}
	q, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tEOF {
		return nil, ErrUnsupportedSpl{Fragment: p.peek().val, Offset: p.pos}
	}
	return q, nil
}

func (p *parser) peek() tok {
	if p.pos >= len(p.toks) {
		return tok{kind: tEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() tok {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) parseOr() (queryast.Query, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []queryast.Query{left}
	for p.peek().kind == tOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, right)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return queryast.Or{Terms: terms}, nil
}

// startsAtom reports whether a token can open a new atom, used to detect
// an implicit AND boundary (no "AND" keyword between two adjacent terms).
func startsAtom(t tok) bool {
	switch t.kind {
	case tIdent, tLparen, tNot:
		return true
	default:
		return false
	}
}

func (p *parser) parseAnd() (queryast.Query, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	terms := []queryast.Query{left}
	for {
		if p.peek().kind == tAnd {
			p.advance()
			right, err := p.parseNot()
			if err != nil {
				return nil, err
			}
			terms = append(terms, right)
			continue
		}
		if startsAtom(p.peek()) {
			right, err := p.parseNot()
			if err != nil {
				return nil, err
			}
			terms = append(terms, right)
			continue
		}
		break
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return queryast.And{Terms: terms}, nil
}

func (p *parser) parseNot() (queryast.Query, error) {
	if p.peek().kind == tNot {
		p.advance()
		child, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return queryast.Not{Term: child}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (queryast.Query, error) {
	t := p.peek()
	switch t.kind {
	case tLparen:
		p.advance()
		q, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tRparen {
			return nil, ErrUnsupportedSpl{Fragment: "unbalanced parenthesis", Offset: p.pos}
		}
		p.advance()
		return q, nil

	case tIdent:
		return p.parseFieldTerm()

	case tEOF:
		return nil, ErrEmptyQuery{}

	default:
		return nil, ErrUnsupportedSpl{Fragment: t.val, Offset: p.pos}
	}
}

// parseFieldTerm parses one of: a function-call predicate
// (isnotnull(field), cidrmatch("v", field)), or a field comparison
// (field=, field!=, field<, field<=, field>, field>=).
func (p *parser) parseFieldTerm() (queryast.Query, error) {
	name := p.advance().val

	if p.peek().kind == tLparen {
		return p.parseFuncCall(name)
	}

	op := p.advance()
	switch op.kind {
	case tEq, tNeq:
		valTok := p.advance()
		if valTok.kind != tString && valTok.kind != tNumber {
			return nil, ErrUnsupportedSpl{Fragment: valTok.val, Offset: p.pos}
		}
		m := matchFromQuoted(name, valTok.val)
		if op.kind == tNeq {
			return queryast.Not{Term: m}, nil
		}
		return m, nil

	case tLt, tLte, tGt, tGte:
		valTok := p.advance()
		n, err := strconv.ParseInt(valTok.val, 10, 64)
		if err != nil {
			return nil, ErrUnsupportedSpl{Fragment: valTok.val, Offset: p.pos}
		}
		return queryast.Match{Field: name, SigmaField: name, Op: numericOpFor(op.kind), Value: queryast.IntLiteral(n)}, nil

	default:
		return nil, ErrUnsupportedSpl{Fragment: name, Offset: p.pos}
	}
}

func numericOpFor(k tokKind) queryast.MatchOp {
	switch k {
	case tLt:
		return queryast.NumericLt
	case tLte:
		return queryast.NumericLte
	case tGt:
		return queryast.NumericGt
	default:
		return queryast.NumericGte
	}
}

func (p *parser) parseFuncCall(name string) (queryast.Query, error) {
	p.advance() // consume "("
	switch strings.ToLower(name) {
	case "isnotnull":
		field := p.advance()
		if field.kind != tIdent {
			return nil, ErrUnsupportedSpl{Fragment: field.val, Offset: p.pos}
		}
		if p.peek().kind != tRparen {
			return nil, ErrUnsupportedSpl{Fragment: "isnotnull(...)", Offset: p.pos}
		}
		p.advance()
		return queryast.Match{Field: field.val, SigmaField: field.val, Op: queryast.Exists}, nil

	case "cidrmatch":
		cidr := p.advance()
		if cidr.kind != tString {
			return nil, ErrUnsupportedSpl{Fragment: cidr.val, Offset: p.pos}
		}
		if p.peek().kind != tComma {
			return nil, ErrUnsupportedSpl{Fragment: "cidrmatch(...)", Offset: p.pos}
		}
		p.advance()
		field := p.advance()
		if field.kind != tIdent {
			return nil, ErrUnsupportedSpl{Fragment: field.val, Offset: p.pos}
		}
		if p.peek().kind != tRparen {
			return nil, ErrUnsupportedSpl{Fragment: "cidrmatch(...)", Offset: p.pos}
		}
		p.advance()
		return queryast.Match{Field: field.val, SigmaField: field.val, Op: queryast.CidrIn, Value: queryast.StringLiteral(cidr.val)}, nil

	default:
		return nil, ErrUnsupportedSpl{Fragment: name + "(...)", Offset: p.pos}
	}
}

// matchFromQuoted classifies a quoted literal's wildcard shape back into
// the MatchOp the emitter used to produce it (§4.5's Contains/StartsWith/
// EndsWith/Equals renderings), stripping the "*" markers it finds.
func matchFromQuoted(field, lit string) queryast.Query {
	hasLead := strings.HasPrefix(lit, "*")
	hasTrail := strings.HasSuffix(lit, "*") && len(lit) > 1
	switch {
	case hasLead && hasTrail:
		return queryast.Match{Field: field, SigmaField: field, Op: queryast.Contains, Value: queryast.StringLiteral(lit[1 : len(lit)-1]), CaseInsensitive: true}
	case hasLead:
		return queryast.Match{Field: field, SigmaField: field, Op: queryast.EndsWith, Value: queryast.StringLiteral(lit[1:]), CaseInsensitive: true}
	case hasTrail:
		return queryast.Match{Field: field, SigmaField: field, Op: queryast.StartsWith, Value: queryast.StringLiteral(lit[:len(lit)-1]), CaseInsensitive: true}
	default:
		return queryast.Match{Field: field, SigmaField: field, Op: queryast.Equals, Value: literalFromString(lit), CaseInsensitive: true}
	}
}

func literalFromString(s string) queryast.Literal {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return queryast.IntLiteral(n)
	}
	return queryast.StringLiteral(s)
}
