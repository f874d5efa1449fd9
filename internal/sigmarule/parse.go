package sigmarule

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// knownModifiers is the closed set recognized by the field-with-modifiers
// grammar (§3). "cased" is the documented no-op flag from the condition
// parser's open question: recognized, never silently dropped; it only
// clears Match.CaseInsensitive, which the emitter does not read, so it
// does not change the emitted query.
var knownModifiers = map[string]bool{
	"contains":     true,
	"startswith":   true,
	"endswith":     true,
	"re":           true,
	"cidr":         true,
	"base64":       true,
	"base64offset": true,
	"wide":         true,
	"utf16":        true,
	"all":          true,
	"lt":           true,
	"lte":          true,
	"gt":           true,
	"gte":          true,
	"cased":        true,
}

// Parse projects YAML source bytes onto the Sigma AST, rejecting anything
// malformed so every later stage operates on a closed type instead of
// interface{}.
func Parse(src []byte) (*Rule, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, ErrInvalidYaml{Err: err}
	}
	return projectRule(doc)
}

func projectRule(doc map[string]interface{}) (*Rule, error) {
	title, _ := doc["title"].(string)
	if title == "" {
		return nil, ErrInvalidSigma{Location: "title", Reason: "required field missing or empty"}
	}

	lsRaw, ok := doc["logsource"]
	if !ok {
		return nil, ErrInvalidSigma{Location: "logsource", Reason: "required field missing"}
	}
	logSource, err := projectLogSource(lsRaw)
	if err != nil {
		return nil, err
	}

	detRaw, ok := doc["detection"]
	if !ok {
		return nil, ErrInvalidSigma{Location: "detection", Reason: "required field missing"}
	}
	detMap, ok := detRaw.(map[string]interface{})
	if !ok {
		return nil, ErrInvalidSigma{Location: "detection", Reason: "must be a mapping"}
	}

	condRaw, ok := detMap["condition"]
	if !ok {
		return nil, ErrInvalidSigma{Location: "detection.condition", Reason: "required field missing"}
	}
	condition, ok := condRaw.(string)
	if !ok || strings.TrimSpace(condition) == "" {
		return nil, ErrInvalidSigma{Location: "detection.condition", Reason: "must be a non-empty string"}
	}

	selections := make(map[string]Selection)
	var order []string
	for key, val := range detMap {
		if key == "condition" {
			continue
		}
		sel, err := projectSelection(key, val)
		if err != nil {
			return nil, err
		}
		selections[key] = sel
		order = append(order, key)
	}
	if len(selections) == 0 {
		return nil, ErrInvalidSigma{Location: "detection", Reason: "must declare at least one selection"}
	}
	sort.Strings(order)

	condTree, err := parseConditionString(condition)
	if err != nil {
		return nil, err
	}
	expanded, err := expandQuantifiers(condTree, order)
	if err != nil {
		return nil, err
	}

	r := &Rule{
		ID:             stringField(doc, "id"),
		Title:          title,
		Description:    stringField(doc, "description"),
		Level:          Level(stringField(doc, "level")),
		Status:         stringField(doc, "status"),
		Author:         stringField(doc, "author"),
		Date:           stringField(doc, "date"),
		References:     stringSliceField(doc, "references"),
		Tags:           stringSliceField(doc, "tags"),
		LogSource:      logSource,
		Selections:     selections,
		SelectionOrder: order,
		Condition:      condition,
		ConditionTree:  expanded,
		Fields:         stringSliceField(doc, "fields"),
		FalsePositives: stringSliceField(doc, "falsepositives"),
	}
	return r, nil
}

func projectLogSource(raw interface{}) (LogSource, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return LogSource{}, ErrInvalidSigma{Location: "logsource", Reason: "must be a mapping"}
	}
	ls := LogSource{
		Product:    stringField(m, "product"),
		Category:   stringField(m, "category"),
		Service:    stringField(m, "service"),
		Definition: stringField(m, "definition"),
	}
	if ls.Empty() {
		return LogSource{}, ErrInvalidSigma{Location: "logsource", Reason: "at least one of product/category/service/definition must be set"}
	}
	return ls, nil
}

func projectSelection(name string, raw interface{}) (Selection, error) {
	switch v := raw.(type) {
	case map[string]interface{}:
		group, err := projectGroup(name, v)
		if err != nil {
			return Selection{}, err
		}
		return Selection{Name: name, Groups: []Group{group}}, nil

	case []interface{}:
		if len(v) == 0 {
			return Selection{}, ErrEmptySelection{Name: name}
		}
		groups := make([]Group, 0, len(v))
		for i, elem := range v {
			m, ok := elem.(map[string]interface{})
			if !ok {
				return Selection{}, ErrInvalidSigma{
					Location: fmt.Sprintf("detection.%s[%d]", name, i),
					Reason:   "list elements must be mappings",
				}
			}
			g, err := projectGroup(name, m)
			if err != nil {
				return Selection{}, err
			}
			groups = append(groups, g)
		}
		return Selection{Name: name, Groups: groups}, nil

	default:
		return Selection{}, ErrInvalidSigma{
			Location: "detection." + name,
			Reason:   "must be a mapping or a list of mappings",
		}
	}
}

func projectGroup(selectionName string, m map[string]interface{}) (Group, error) {
	if len(m) == 0 {
		return Group{}, ErrEmptySelection{Name: selectionName}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, fieldExpr := range keys {
		field, mods, err := splitFieldModifiers(fieldExpr)
		if err != nil {
			return Group{}, err
		}
		entries = append(entries, Entry{
			Field:     field,
			Modifiers: mods,
			Values:    normalizeValues(m[fieldExpr]),
		})
	}
	return Group{Entries: entries}, nil
}

// splitFieldModifiers splits "field|mod1|mod2" on "|"; modifier order is
// preserved because it matters (base64 before contains decodes then
// substring-matches, not the other way around).
func splitFieldModifiers(fieldExpr string) (string, []string, error) {
	parts := strings.Split(fieldExpr, "|")
	field := parts[0]
	mods := parts[1:]
	for _, m := range mods {
		if !knownModifiers[m] {
			return "", nil, ErrUnknownModifier{Field: field, Modifier: m}
		}
	}
	return field, mods, nil
}

func normalizeValues(v interface{}) []interface{} {
	switch t := v.(type) {
	case []interface{}:
		return t
	default:
		return []interface{}{t}
	}
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringSliceField(m map[string]interface{}, key string) []string {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}
