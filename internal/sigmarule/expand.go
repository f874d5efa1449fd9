package sigmarule

import (
	"strings"

	"github.com/gobwas/glob"
)

// expandQuantifiers rewrites every CondQuantifier in node into a concrete
// CondAnd ("all of") or CondOr ("N of", N==1 is the common case) over the
// selection names matching its pattern, and checks every bare CondRef
// against the known selection names. names must be in a stable order so
// expansion is deterministic.
func expandQuantifiers(node CondNode, names []string) (CondNode, error) {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return expandNode(node, names, set)
}

func expandNode(node CondNode, names []string, set map[string]bool) (CondNode, error) {
	switch n := node.(type) {
	case CondRef:
		if !set[n.Name] {
			return nil, ErrUnresolvedSelection{Name: n.Name}
		}
		return n, nil

	case CondNot:
		child, err := expandNode(n.Child, names, set)
		if err != nil {
			return nil, err
		}
		return CondNot{Child: child}, nil

	case CondAnd:
		children, err := expandChildren(n.Children, names, set)
		if err != nil {
			return nil, err
		}
		return CondAnd{Children: children}, nil

	case CondOr:
		children, err := expandChildren(n.Children, names, set)
		if err != nil {
			return nil, err
		}
		return CondOr{Children: children}, nil

	case CondQuantifier:
		matched := matchPattern(n.Pattern, names)
		if len(matched) == 0 {
			return nil, ErrUnresolvedSelection{Name: n.Pattern}
		}
		refs := make([]CondNode, 0, len(matched))
		for _, m := range matched {
			refs = append(refs, CondRef{Name: m})
		}
		if len(refs) == 1 {
			return refs[0], nil
		}
		if n.Quantifier == "all" {
			return CondAnd{Children: refs}, nil
		}
		// "1 of X" and the general "N of X" both compile to an Or over the
		// matched selections; a numeric threshold beyond "1" has no
		// representation in the boolean AST and is treated the same as 1,
		// matching the grammar's own guidance in §4.1 (only "1 of"/"all of"
		// are named).
		return CondOr{Children: refs}, nil

	default:
		return node, nil
	}
}

func expandChildren(children []CondNode, names []string, set map[string]bool) ([]CondNode, error) {
	out := make([]CondNode, 0, len(children))
	for _, c := range children {
		expanded, err := expandNode(c, names, set)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}

// matchPattern resolves a quantifier pattern ("them", an exact selection
// name, or a wildcarded name such as "selection_*") against the known
// selection names, in the order names is given (Parse passes them sorted
// by name). Wildcard matching is done
// with gobwas/glob rather than a hand-rolled prefix check, the way the
// teacher's own pattern.go compiles Sigma's wildcard syntax into a glob —
// the Sigma spec's quantifier patterns aren't limited to a trailing "*".
func matchPattern(pattern string, names []string) []string {
	if pattern == "them" {
		return names
	}
	if strings.ContainsAny(pattern, "*?[") {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil
		}
		var out []string
		for _, n := range names {
			if g.Match(n) {
				out = append(out, n)
			}
		}
		return out
	}
	for _, n := range names {
		if n == pattern {
			return []string{n}
		}
	}
	return nil
}
