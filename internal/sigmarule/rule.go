// Package sigmarule parses Sigma YAML documents into a validated, closed
// AST: generic YAML in, typed Rule out, with every malformed shape rejected
// at the boundary so the rest of the translation pipeline never type-switches
// on interface{} again.
package sigmarule

// Level is the Sigma rule severity.
type Level string

const (
	LevelInformational Level = "informational"
	LevelLow           Level = "low"
	LevelMedium        Level = "medium"
	LevelHigh          Level = "high"
	LevelCritical      Level = "critical"
)

// LogSource identifies the telemetry a rule is written against. At least
// one field must be present; which ones are is itself meaningful input to
// the prerequisite analyzer.
type LogSource struct {
	Product    string
	Category   string
	Service    string
	Definition string
}

func (l LogSource) Empty() bool {
	return l.Product == "" && l.Category == "" && l.Service == "" && l.Definition == ""
}

// Entry is one field-with-modifiers/value pair inside a selection's AND
// group. Values is always normalized to a slice: a scalar Sigma value
// becomes a one-element slice.
type Entry struct {
	Field     string
	Modifiers []string
	Values    []interface{}
}

// Group is an AND across its Entries — one YAML mapping under a selection.
type Group struct {
	Entries []Entry
}

// Selection is a named detection block. Groups are OR'd together: a
// selection given as a single mapping has one Group; a selection given as a
// list of mappings has one Group per list element.
type Selection struct {
	Name   string
	Groups []Group
}

// Rule is the fully validated, closed Sigma AST.
type Rule struct {
	ID             string
	Title          string
	Description    string
	Level          Level
	Status         string
	Author         string
	Date           string
	References     []string
	Tags           []string
	LogSource      LogSource
	Selections     map[string]Selection
	SelectionOrder []string
	Condition      string
	ConditionTree  CondNode
	Fields         []string
	FalsePositives []string
}

// Selection returns the named selection and whether it exists.
func (r *Rule) Selection(name string) (Selection, bool) {
	s, ok := r.Selections[name]
	return s, ok
}
