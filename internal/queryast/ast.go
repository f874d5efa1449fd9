// Package queryast defines the boolean query AST that the condition
// compiler lowers a Sigma detection block into, and the field-resolved
// Match leaves the SPL emitter and the reverse recognizer both operate on.
package queryast

import "fmt"

// MatchOp is the comparison a Match leaf performs.
type MatchOp int

const (
	Equals MatchOp = iota
	Contains
	StartsWith
	EndsWith
	Regex
	CidrIn
	NumericLt
	NumericLte
	NumericGt
	NumericGte
	In
	Exists
)

func (op MatchOp) String() string {
	switch op {
	case Equals:
		return "Equals"
	case Contains:
		return "Contains"
	case StartsWith:
		return "StartsWith"
	case EndsWith:
		return "EndsWith"
	case Regex:
		return "Regex"
	case CidrIn:
		return "CidrIn"
	case NumericLt:
		return "NumericLt"
	case NumericLte:
		return "NumericLte"
	case NumericGt:
		return "NumericGt"
	case NumericGte:
		return "NumericGte"
	case In:
		return "In"
	case Exists:
		return "Exists"
	}
	return fmt.Sprintf("MatchOp(%d)", int(op))
}

// IsNumericCmp reports whether op is one of the four NumericCmp variants.
func (op MatchOp) IsNumericCmp() bool {
	switch op {
	case NumericLt, NumericLte, NumericGt, NumericGte:
		return true
	}
	return false
}

// Literal is a Sigma/SPL scalar value: string, int64, bool, or nil. A list
// literal is represented in the AST as an Or/And of Match leaves, never as
// a Literal slice, so every leaf carries exactly one scalar.
type Literal struct {
	Str     string
	Int     int64
	Bool    bool
	IsInt   bool
	IsBool  bool
	IsNull  bool
}

func StringLiteral(s string) Literal { return Literal{Str: s} }
func IntLiteral(i int64) Literal     { return Literal{Int: i, IsInt: true} }
func BoolLiteral(b bool) Literal     { return Literal{Bool: b, IsBool: true} }
func NullLiteral() Literal           { return Literal{IsNull: true} }

func (l Literal) String() string {
	switch {
	case l.IsNull:
		return "null"
	case l.IsBool:
		return fmt.Sprintf("%t", l.Bool)
	case l.IsInt:
		return fmt.Sprintf("%d", l.Int)
	default:
		return l.Str
	}
}

// Query is a boolean AST node: And, Or, Not, or Match.
type Query interface {
	query()
}

type And struct{ Terms []Query }
type Or struct{ Terms []Query }
type Not struct{ Term Query }

// Match is a leaf predicate against a single resolved field.
type Match struct {
	Field           string
	Op              MatchOp
	Value           Literal
	CaseInsensitive bool

	// SigmaField is the original, pre-resolution Sigma field name, kept
	// alongside Field (the resolved target). The gap analyzer reads the
	// source name from MappingResult.SigmaField, not from here.
	SigmaField string
}

func (And) query()   {}
func (Or) query()    {}
func (Not) query()   {}
func (Match) query() {}

// Simplify collapses single-child And/Or nodes produced by folding a
// one-entry group or a one-element list, the way a hand-rolled boolean
// builder naturally emits before flattening.
func Simplify(q Query) Query {
	switch n := q.(type) {
	case And:
		terms := simplifyTerms(n.Terms)
		if len(terms) == 1 {
			return terms[0]
		}
		return And{Terms: terms}
	case Or:
		terms := simplifyTerms(n.Terms)
		if len(terms) == 1 {
			return terms[0]
		}
		return Or{Terms: terms}
	case Not:
		return Not{Term: Simplify(n.Term)}
	default:
		return q
	}
}

func simplifyTerms(terms []Query) []Query {
	out := make([]Query, 0, len(terms))
	for _, t := range terms {
		out = append(out, Simplify(t))
	}
	return out
}
