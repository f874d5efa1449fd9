package spl

import (
	"strings"

	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
)

// defaultStatsFields is the candidate field list for the postamble's
// "| stats count by ..." clause (§4.5 step 3); it is filtered down to
// only the fields the compiled query actually resolved to.
var defaultStatsFields = []string{"_time", "host", "user", "process", "CommandLine"}

func collectFields(q queryast.Query) map[string]bool {
	set := make(map[string]bool)
	var walk func(queryast.Query)
	walk = func(n queryast.Query) {
		switch t := n.(type) {
		case queryast.And:
			for _, c := range t.Terms {
				walk(c)
			}
		case queryast.Or:
			for _, c := range t.Terms {
				walk(c)
			}
		case queryast.Not:
			walk(t.Term)
		case queryast.Match:
			set[t.Field] = true
		}
	}
	walk(q)
	return set
}

// statsClause builds the "| stats count by ..." line, falling back to
// "_time" alone when none of the default candidates were actually used,
// so the emitted pipeline stage always stays syntactically valid.
func statsClause(q queryast.Query) string {
	used := collectFields(q)
	var fields []string
	for _, f := range defaultStatsFields {
		if used[f] {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		fields = []string{"_time"}
	}
	return "| stats count by " + strings.Join(fields, ", ")
}

// macroClause returns the backtick-quoted macro invocation for the
// logsource's category, if the profile declares one by that name.
func macroClause(p profile.Profile, ls sigmarule.LogSource) string {
	if ls.Category == "" {
		return ""
	}
	if _, ok := p.Macros[ls.Category]; ok {
		return "`" + ls.Category + "`"
	}
	return ""
}
