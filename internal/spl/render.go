package spl

import (
	"fmt"
	"strings"

	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
)

// stage is one pipeline step appended after the main search predicate:
// "| where cidrmatch(...)", "| regex field=...", "| where field > 5".
// Regex/CidrIn/NumericCmp matches that are direct top-level conjuncts, or
// the sole term of a top-level Not (rendered as a negated stage), become
// stages rather than inline predicate text, since that is how real SPL
// expresses them; a match using one of those ops nested any deeper (inside
// an Or, an inner And, or a Not below the top level) falls back to an
// inline approximation (renderInline) instead of a stage, since a
// mid-pipeline filter cannot be OR'd against a search-line predicate.
type renderResult struct {
	predicate string
	stages    []string
}

// render turns a Query AST into the main predicate text plus any trailing
// pipeline stages pulled out of a top-level conjunction.
func render(q queryast.Query) renderResult {
	conjuncts := flattenTopAnd(q)
	var inline []string
	var stages []string
	for _, c := range conjuncts {
		if stage, ok := asStage(c, false); ok {
			stages = append(stages, stage)
			continue
		}
		if not, ok := c.(queryast.Not); ok {
			if stage, ok := asStage(not.Term, true); ok {
				stages = append(stages, stage)
				continue
			}
		}
		inline = append(inline, renderInline(c))
	}
	return renderResult{predicate: strings.Join(inline, " "), stages: stages}
}

func flattenTopAnd(q queryast.Query) []queryast.Query {
	if and, ok := q.(queryast.And); ok {
		return and.Terms
	}
	return []queryast.Query{q}
}

// asStage reports whether m is a pipeline-only op and renders its stage
// text if so.
func asStage(q queryast.Query, negated bool) (string, bool) {
	m, ok := q.(queryast.Match)
	if !ok || !isStageOp(m.Op) {
		return "", false
	}
	return renderStage(m, negated), true
}

func isStageOp(op queryast.MatchOp) bool {
	return op == queryast.Regex || op == queryast.CidrIn || op.IsNumericCmp()
}

func renderStage(m queryast.Match, negated bool) string {
	switch m.Op {
	case queryast.Regex:
		if negated {
			return fmt.Sprintf(`| regex %s!=%s`, m.Field, quoted(m.Value.String()))
		}
		return fmt.Sprintf(`| regex %s=%s`, m.Field, quoted(m.Value.String()))
	case queryast.CidrIn:
		expr := fmt.Sprintf(`cidrmatch(%s, %s)`, quoted(m.Value.String()), m.Field)
		if negated {
			expr = "NOT " + expr
		}
		return "| where " + expr
	default:
		op := numericOpString(m.Op)
		expr := fmt.Sprintf("%s%s%s", m.Field, op, m.Value.String())
		if negated {
			expr = "NOT (" + expr + ")"
		}
		return "| where " + expr
	}
}

func numericOpString(op queryast.MatchOp) string {
	switch op {
	case queryast.NumericLt:
		return "<"
	case queryast.NumericLte:
		return "<="
	case queryast.NumericGt:
		return ">"
	case queryast.NumericGte:
		return ">="
	}
	return "="
}

// renderInline renders q as composable boolean predicate text. Nested
// And is parenthesized with an explicit "AND"; Or is always parenthesized
// with "OR"; Not wraps in "NOT (...)"; a stage-only op found here (nested,
// not a top-level conjunct) gets a best-effort inline approximation
// instead of being dropped.
func renderInline(q queryast.Query) string {
	switch n := q.(type) {
	case queryast.And:
		parts := make([]string, len(n.Terms))
		for i, t := range n.Terms {
			parts[i] = renderInline(t)
		}
		return "(" + strings.Join(parts, " AND ") + ")"

	case queryast.Or:
		parts := make([]string, len(n.Terms))
		for i, t := range n.Terms {
			parts[i] = renderInline(t)
		}
		return "(" + strings.Join(parts, " OR ") + ")"

	case queryast.Not:
		return "NOT (" + renderInline(n.Term) + ")"

	case queryast.Match:
		return renderMatch(n)

	default:
		return ""
	}
}

func renderMatch(m queryast.Match) string {
	switch m.Op {
	case queryast.Equals:
		return fmt.Sprintf("%s=%s", m.Field, quoted(m.Value.String()))
	case queryast.Contains:
		return fmt.Sprintf(`%s="*%s*"`, m.Field, escapeQuoted(m.Value.String()))
	case queryast.StartsWith:
		return fmt.Sprintf(`%s="%s*"`, m.Field, escapeQuoted(m.Value.String()))
	case queryast.EndsWith:
		return fmt.Sprintf(`%s="*%s"`, m.Field, escapeQuoted(m.Value.String()))
	case queryast.Exists:
		return fmt.Sprintf("isnotnull(%s)", m.Field)
	case queryast.In:
		return fmt.Sprintf("%s=%s", m.Field, quoted(m.Value.String()))
	case queryast.Regex, queryast.CidrIn:
		// best-effort inline approximation for a nested occurrence; see
		// the stage-extraction note on render().
		return fmt.Sprintf("%s=%s", m.Field, quoted(m.Value.String()))
	default:
		if m.Op.IsNumericCmp() {
			return fmt.Sprintf("%s%s%s", m.Field, numericOpString(m.Op), m.Value.String())
		}
		return fmt.Sprintf("%s=%s", m.Field, quoted(m.Value.String()))
	}
}
