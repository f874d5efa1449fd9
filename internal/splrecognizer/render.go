package splrecognizer

import (
	"fmt"
	"strings"

	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
	"gopkg.in/yaml.v3"
)

// RuleMeta is the Sigma metadata the caller supplies for a reconstructed
// rule; Status and Level default per §4.9 when left blank, and
// DefaultProduct is the logsource fallback used only when nothing in the
// SPL preamble hints at one, so the rendered document always satisfies
// the "at least one logsource field" invariant C1 enforces on the way
// back in.
type RuleMeta struct {
	Title           string
	Status          string
	Level           string
	DefaultProduct  string
	DefaultCategory string
}

func (m RuleMeta) withDefaults() RuleMeta {
	if m.Title == "" {
		m.Title = "Reconstructed from SPL"
	}
	if m.Status == "" {
		m.Status = "experimental"
	}
	if m.Level == "" {
		m.Level = "medium"
	}
	return m
}

// buildInverseIndex inverts a profile's mapping list into target field ->
// sigma field, first-insertion-order wins on a collision, recording a
// correlation note for every field that loses the lookup (§4.9).
func buildInverseIndex(mappings []profile.Mapping) (map[string]string, []string) {
	inverse := make(map[string]string, len(mappings))
	var notes []string
	for _, m := range mappings {
		existing, ok := inverse[m.TargetField]
		if !ok {
			inverse[m.TargetField] = m.SigmaField
			continue
		}
		if existing != m.SigmaField {
			notes = append(notes, fmt.Sprintf(
				"multiple sigma fields map to target %q; using %q (first in profile order), ignoring %q for reverse lookup",
				m.TargetField, existing, m.SigmaField))
		}
	}
	return inverse, notes
}

func inverseField(target string, inverse map[string]string) string {
	if sigmaField, ok := inverse[target]; ok {
		return sigmaField
	}
	return target
}

// inverseLogsource recovers a best-effort Sigma logsource from the
// recovered index/sourcetype preamble, falling back to meta's defaults
// when neither hints at anything recognizable.
func inverseLogsource(pre Preamble, meta RuleMeta) sigmarule.LogSource {
	ls := sigmarule.LogSource{}
	if strings.Contains(strings.ToLower(pre.Sourcetype), "wineventlog") || pre.Index == "wineventlog" {
		ls.Product = "windows"
	}
	if ls.Empty() {
		ls.Product = meta.DefaultProduct
		ls.Category = meta.DefaultCategory
	}
	if ls.Empty() {
		ls.Product = "other"
	}
	return ls
}

// selBuilder accumulates named Sigma selections in declaration order as
// the Query AST is walked back into selection/condition form.
type selBuilder struct {
	names  []string
	groups []sigmarule.Group
}

func (b *selBuilder) newSelection(g sigmarule.Group) string {
	name := "selection"
	if len(b.names) > 0 {
		name = fmt.Sprintf("selection_%d", len(b.names)+1)
	}
	b.names = append(b.names, name)
	b.groups = append(b.groups, g)
	return name
}

// RenderSigma turns a recognized Result into a Sigma YAML document,
// reversing field names against profileMappings' inverse index and
// collecting every ambiguity as a correlation note instead of guessing
// silently.
func RenderSigma(res Result, profileMappings []profile.Mapping, meta RuleMeta) (string, []string, error) {
	meta = meta.withDefaults()
	inverse, notes := buildInverseIndex(profileMappings)
	notes = append(notes, res.CorrelationNotes...)

	b := &selBuilder{}
	cond, err := b.build(res.Query, inverse)
	if err != nil {
		return "", notes, err
	}

	ls := inverseLogsource(res.Preamble, meta)

	var fields []string
	for _, f := range res.StatsFields {
		fields = append(fields, inverseField(f, inverse))
	}

	doc := buildDocNode(meta, ls, b.names, b.groups, cond, fields)
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", notes, err
	}
	return string(out), notes, nil
}

// build walks q into selection/condition form. A bare Match or the
// null-literal shape Not(Match{Exists}) each become one new selection; And
// collapses into a single AND-group selection when every term is a bare
// leaf; Or collapses same-field leaves into one OR-of-values selection
// when it can, and otherwise falls back to OR'ing selection references at
// the condition-string level.
func (b *selBuilder) build(q queryast.Query, inverse map[string]string) (string, error) {
	switch n := q.(type) {
	case queryast.Match:
		entry, err := entryFromMatch(n, inverse)
		if err != nil {
			return "", err
		}
		return b.newSelection(sigmarule.Group{Entries: []sigmarule.Entry{entry}}), nil

	case queryast.Not:
		if m, ok := n.Term.(queryast.Match); ok && m.Op == queryast.Exists {
			entry := sigmarule.Entry{Field: inverseField(m.Field, inverse), Values: []interface{}{nil}}
			return b.newSelection(sigmarule.Group{Entries: []sigmarule.Entry{entry}}), nil
		}
		child, err := b.build(n.Term, inverse)
		if err != nil {
			return "", err
		}
		return "not " + wrapIfCompound(child), nil

	case queryast.And:
		if group, ok := buildLeafGroup(n.Terms, inverse); ok {
			return b.newSelection(group), nil
		}
		parts := make([]string, 0, len(n.Terms))
		for _, t := range n.Terms {
			p, err := b.build(t, inverse)
			if err != nil {
				return "", err
			}
			parts = append(parts, wrapIfCompound(p))
		}
		return strings.Join(parts, " and "), nil

	case queryast.Or:
		if group, ok := buildOrValueList(n.Terms, inverse); ok {
			return b.newSelection(group), nil
		}
		parts := make([]string, 0, len(n.Terms))
		for _, t := range n.Terms {
			p, err := b.build(t, inverse)
			if err != nil {
				return "", err
			}
			parts = append(parts, wrapIfCompound(p))
		}
		return strings.Join(parts, " or "), nil

	default:
		return "", ErrUnsupportedSpl{Fragment: fmt.Sprintf("%T", q)}
	}
}

func wrapIfCompound(s string) string {
	if strings.Contains(s, " ") {
		return "(" + s + ")"
	}
	return s
}

func isLeafMatch(q queryast.Query) (queryast.Match, bool) {
	m, ok := q.(queryast.Match)
	return m, ok
}

// buildLeafGroup builds one AND-group selection when every term is a
// bare field match, with no nested Or/Not to preserve.
func buildLeafGroup(terms []queryast.Query, inverse map[string]string) (sigmarule.Group, bool) {
	entries := make([]sigmarule.Entry, 0, len(terms))
	for _, t := range terms {
		m, ok := isLeafMatch(t)
		if !ok {
			return sigmarule.Group{}, false
		}
		entry, err := entryFromMatch(m, inverse)
		if err != nil {
			return sigmarule.Group{}, false
		}
		entries = append(entries, entry)
	}
	return sigmarule.Group{Entries: entries}, true
}

// buildOrValueList collapses an Or of same-field, same-modifier leaves
// into one Entry carrying every value, the inverse of how the condition
// compiler expands a Sigma list value into an Or of Match leaves.
func buildOrValueList(terms []queryast.Query, inverse map[string]string) (sigmarule.Group, bool) {
	if len(terms) == 0 {
		return sigmarule.Group{}, false
	}
	first, ok := isLeafMatch(terms[0])
	if !ok {
		return sigmarule.Group{}, false
	}
	field := inverseField(first.Field, inverse)
	mod := modifierFor(first.Op)
	values := make([]interface{}, 0, len(terms))
	for _, t := range terms {
		m, ok := isLeafMatch(t)
		if !ok {
			return sigmarule.Group{}, false
		}
		if inverseField(m.Field, inverse) != field || modifierFor(m.Op) != mod {
			return sigmarule.Group{}, false
		}
		values = append(values, valueFromLiteral(m.Value))
	}
	entry := sigmarule.Entry{Field: field, Values: values}
	if mod != "" {
		entry.Modifiers = []string{mod}
	}
	return sigmarule.Group{Entries: []sigmarule.Entry{entry}}, true
}

func entryFromMatch(m queryast.Match, inverse map[string]string) (sigmarule.Entry, error) {
	if m.Op == queryast.Exists {
		return sigmarule.Entry{}, ErrUnsupportedSpl{Fragment: "isnotnull(" + m.Field + ") without negation has no direct Sigma representation"}
	}
	field := inverseField(m.Field, inverse)
	entry := sigmarule.Entry{Field: field, Values: []interface{}{valueFromLiteral(m.Value)}}
	if mod := modifierFor(m.Op); mod != "" {
		entry.Modifiers = []string{mod}
	}
	return entry, nil
}

func modifierFor(op queryast.MatchOp) string {
	switch op {
	case queryast.Contains:
		return "contains"
	case queryast.StartsWith:
		return "startswith"
	case queryast.EndsWith:
		return "endswith"
	case queryast.Regex:
		return "re"
	case queryast.CidrIn:
		return "cidr"
	case queryast.NumericLt:
		return "lt"
	case queryast.NumericLte:
		return "lte"
	case queryast.NumericGt:
		return "gt"
	case queryast.NumericGte:
		return "gte"
	default:
		return ""
	}
}

func valueFromLiteral(lit queryast.Literal) interface{} {
	switch {
	case lit.IsNull:
		return nil
	case lit.IsBool:
		return lit.Bool
	case lit.IsInt:
		return lit.Int
	default:
		return lit.Str
	}
}
