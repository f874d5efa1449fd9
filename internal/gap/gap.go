// Package gap turns the condition compiler's per-field MappingResults
// into a human-actionable report: what couldn't be mapped cleanly, why it
// matters, and what to try instead.
package gap

import (
	"sort"

	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
	"github.com/Johnny9802/sigma-spl-bridge/internal/resolver"
)

// Item is one unresolved or heuristically-resolved field.
type Item struct {
	Field       string
	Location    string
	Status      resolver.Status
	Impact      string
	Suggestions []string
}

var impactText = map[resolver.Status]string{
	resolver.StatusMissing:   "No mapping exists; query uses raw Sigma field name which may not resolve in Splunk",
	resolver.StatusSuggested: "Using CIM/heuristic mapping; verify against your schema",
}

// knownFieldPool is consulted for Levenshtein suggestions: the profile's
// own mapped fields plus every field name the built-in CIM table knows
// about, combined because either one is a legitimate "did you mean".
func knownFieldPool(profileFields []string) []string {
	pool := append([]string(nil), profileFields...)
	pool = append(pool, resolver.CIMFieldNames()...)
	return pool
}

// Analyze iterates mappings and emits exactly one Item per entry whose
// status isn't "ok" (§8 property 3: gap completeness).
func Analyze(mappings []queryast.MappingResult, profileFields []string) []Item {
	pool := knownFieldPool(profileFields)
	items := make([]Item, 0)
	for _, m := range mappings {
		if m.Status == resolver.StatusOK {
			continue
		}
		item := Item{
			Field:    m.SigmaField,
			Location: m.Location,
			Status:   m.Status,
			Impact:   impactText[m.Status],
		}
		switch m.Status {
		case resolver.StatusMissing:
			item.Suggestions = closeMatches(m.SigmaField, pool, 2)
		case resolver.StatusSuggested:
			if m.Note != "" {
				item.Suggestions = []string{m.Note}
			}
		}
		items = append(items, item)
	}
	return items
}

// closeMatches returns every candidate within Levenshtein distance
// maxDist of field (a raw, case-sensitive edit distance with no length
// normalization), ordered by distance then name.
func closeMatches(field string, candidates []string, maxDist int) []string {
	type scored struct {
		name string
		dist int
	}
	var matches []scored
	seen := make(map[string]bool)
	for _, c := range candidates {
		if c == field || seen[c] {
			continue
		}
		seen[c] = true
		d := levenshtein(field, c)
		if d <= maxDist {
			matches = append(matches, scored{name: c, dist: d})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].name < matches[j].name
	})
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
