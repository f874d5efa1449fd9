// Package spl renders the Query AST into literal SPL text: preamble,
// boolean predicate, postamble, and health-check comments, in that fixed
// order. Quoting and escaping are bit-exact by design (§4.5) — this
// package produces one line per pipeline stage and never reformats.
package spl

import (
	"strings"

	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
)

// Emit renders q into a complete SPL query: one line for the search
// predicate (preamble + boolean terms), one line per trailing pipeline
// stage, one "| stats" line, and one "###"-prefixed comment line per
// health check.
func Emit(q queryast.Query, p profile.Profile, ls sigmarule.LogSource, ov Overrides, healthChecks []string) string {
	rendered := render(q)

	var lines []string
	head := preamble(p, ls, ov)
	if rendered.predicate != "" {
		head += " " + rendered.predicate
	}
	lines = append(lines, head)
	lines = append(lines, rendered.stages...)
	lines = append(lines, statsClause(q))
	if macro := macroClause(p, ls); macro != "" {
		lines[len(lines)-1] += " " + macro
	}
	for _, hc := range healthChecks {
		lines = append(lines, "### "+hc)
	}
	return strings.Join(lines, "\n")
}
