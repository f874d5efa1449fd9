// Package prereq computes the telemetry a Sigma rule needs to actually
// fire: which channels, which event IDs, and — when the primary source
// (typically Sysmon) isn't available — the native Windows auditing
// alternative and the GPO steps to turn it on.
package prereq

// EventID is one event ID a log source emits, with the instrumentation
// that produces it.
type EventID struct {
	ID     int
	Name   string
	Source string
}

// AlternativeLogSource is a fallback telemetry source for a
// RequiredLogSource, e.g. native Windows auditing when Sysmon isn't
// deployed.
type AlternativeLogSource struct {
	Name              string
	Description       string
	WindowsChannel    string
	EventIDs          []EventID
	SetupInstructions []string
}

// RequiredLogSource is one telemetry source a rule depends on.
type RequiredLogSource struct {
	Name              string
	Description       string
	WindowsChannel    string
	SplunkSourcetype  string
	EventIDs          []EventID
	SetupInstructions []string
	Alternatives      []AlternativeLogSource
}

// Report is C6's output.
type Report struct {
	RequiredLogs    []RequiredLogSource
	EventIDs        []int
	Channels        []string
	Configuration   []string
	HasAlternatives bool
}
