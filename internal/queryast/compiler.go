package queryast

import (
	"fmt"

	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/resolver"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
)

// MappingResult is the per-field resolution outcome recorded while
// compiling, carried alongside the Query AST so the gap analyzer (C7)
// never has to re-walk the detection tree.
type MappingResult struct {
	SigmaField  string
	TargetField string
	Status      resolver.Status
	Note        string
	Location    string
}

// CompileResult is the condition compiler's output: the normalized
// boolean Query AST plus every field resolution it performed along the
// way, in the order they were encountered.
type CompileResult struct {
	Query    Query
	Mappings []MappingResult
}

// Compile lowers rule's (already selection-expanded) condition tree into
// the Query AST, resolving every field through res. The ordering in §5
// is honored by construction: Compile is the sole caller into res.Resolve,
// which itself calls into the profile store — C4 ⇆ C3 ⇆ C2 happens inline,
// never as a separate pass.
func Compile(rule *sigmarule.Rule, res *resolver.Resolver, p profile.Profile) (CompileResult, error) {
	c := &compiler{rule: rule, resolver: res, profile: p}
	q, err := c.compileCond(rule.ConditionTree)
	if err != nil {
		return CompileResult{}, err
	}
	return CompileResult{Query: Simplify(q), Mappings: c.mappings}, nil
}

type compiler struct {
	rule     *sigmarule.Rule
	resolver *resolver.Resolver
	profile  profile.Profile
	mappings []MappingResult
}

func (c *compiler) compileCond(node sigmarule.CondNode) (Query, error) {
	switch n := node.(type) {
	case sigmarule.CondRef:
		return c.compileSelection(n.Name)

	case sigmarule.CondNot:
		child, err := c.compileCond(n.Child)
		if err != nil {
			return nil, err
		}
		return Not{Term: child}, nil

	case sigmarule.CondAnd:
		terms, err := c.compileChildren(n.Children)
		if err != nil {
			return nil, err
		}
		return And{Terms: terms}, nil

	case sigmarule.CondOr:
		terms, err := c.compileChildren(n.Children)
		if err != nil {
			return nil, err
		}
		return Or{Terms: terms}, nil

	default:
		return nil, fmt.Errorf("queryast: unhandled condition node %T", node)
	}
}

func (c *compiler) compileChildren(children []sigmarule.CondNode) ([]Query, error) {
	out := make([]Query, 0, len(children))
	for _, child := range children {
		q, err := c.compileCond(child)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// compileSelection lowers one selection reference into Or(Groups), each
// Group into And(Entries), per §4.1's implicit-OR-of-implicit-AND shape.
func (c *compiler) compileSelection(name string) (Query, error) {
	sel, ok := c.rule.Selection(name)
	if !ok {
		return nil, sigmarule.ErrUnresolvedSelection{Name: name}
	}
	if len(sel.Groups) == 0 {
		return nil, sigmarule.ErrEmptySelection{Name: name}
	}
	groupQueries := make([]Query, 0, len(sel.Groups))
	for _, g := range sel.Groups {
		gq, err := c.compileGroup(name, g)
		if err != nil {
			return nil, err
		}
		groupQueries = append(groupQueries, gq)
	}
	if len(groupQueries) == 1 {
		return groupQueries[0], nil
	}
	return Or{Terms: groupQueries}, nil
}

func (c *compiler) compileGroup(selectionName string, g sigmarule.Group) (Query, error) {
	if len(g.Entries) == 0 {
		return nil, sigmarule.ErrEmptySelection{Name: selectionName}
	}
	entryQueries := make([]Query, 0, len(g.Entries))
	for _, e := range g.Entries {
		eq, err := c.compileEntry(selectionName, e)
		if err != nil {
			return nil, err
		}
		entryQueries = append(entryQueries, eq)
	}
	if len(entryQueries) == 1 {
		return entryQueries[0], nil
	}
	return And{Terms: entryQueries}, nil
}

// compileEntry resolves the field, folds the modifier chain, and emits
// either a single Match or an Or/And of Match leaves for a list value.
func (c *compiler) compileEntry(selectionName string, e sigmarule.Entry) (Query, error) {
	location := fmt.Sprintf("detection.%s.%s", selectionName, e.Field)

	result := c.resolver.Resolve(e.Field, c.rule.LogSource, c.profile)
	c.mappings = append(c.mappings, MappingResult{
		SigmaField:  e.Field,
		TargetField: result.TargetField,
		Status:      result.Status,
		Note:        result.Note,
		Location:    location,
	})

	folded := foldModifiers(e.Modifiers, e.Values)
	values := applyTransform(result.Transform, folded.values)

	leaves := make([]Query, 0, len(values))
	for _, v := range values {
		if v == nil {
			leaves = append(leaves, Not{Term: Match{
				Field:      result.TargetField,
				SigmaField: e.Field,
				Op:         Exists,
			}})
			continue
		}
		lit, op := literalFor(v, folded.op)
		leaves = append(leaves, Match{
			Field:           result.TargetField,
			SigmaField:      e.Field,
			Op:              op,
			Value:           lit,
			CaseInsensitive: folded.caseInsensitive,
		})
	}
	if len(leaves) == 1 {
		return leaves[0], nil
	}
	if folded.allOf {
		return And{Terms: leaves}, nil
	}
	return Or{Terms: leaves}, nil
}

// literalFor converts a raw YAML scalar into a Literal and returns op
// unchanged: the op always wins over value type, since the modifier is
// explicit intent, so lt/lte/gt/gte against a value that isn't
// numeric-looking is still honored.
func literalFor(v interface{}, op MatchOp) (Literal, MatchOp) {
	switch t := v.(type) {
	case string:
		return StringLiteral(t), op
	case int:
		return IntLiteral(int64(t)), op
	case int64:
		return IntLiteral(t), op
	case bool:
		return BoolLiteral(t), op
	default:
		return StringLiteral(fmt.Sprintf("%v", t)), op
	}
}

func applyTransform(name string, values []interface{}) []interface{} {
	if name == "" || !profile.IsRecognizedTransform(name) {
		return values
	}
	out := make([]interface{}, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			out[i] = v
			continue
		}
		out[i] = applyNamedTransform(name, s)
	}
	return out
}
