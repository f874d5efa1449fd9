// Package xlaterr defines the stable error taxonomy shared across the
// translation pipeline, and the Located wrapper the orchestrator uses to
// attach a dotted path to an otherwise typed error without discarding it.
package xlaterr

import "fmt"

// Kind identifies one of the stable error categories from the translator's
// error taxonomy. Components raise their own concrete error types (see each
// package's errors.go); Kind is only used where a caller needs to classify
// an error without a type switch, e.g. when shaping an HTTP response.
type Kind string

const (
	InvalidYaml         Kind = "InvalidYaml"
	InvalidSigma        Kind = "InvalidSigma"
	UnknownModifier      Kind = "UnknownModifier"
	UnresolvedSelection Kind = "UnresolvedSelection"
	UnsupportedSpl      Kind = "UnsupportedSpl"
	NotFound            Kind = "NotFound"
	Conflict            Kind = "Conflict"
	LlmUnavailable      Kind = "LlmUnavailable"
	Internal            Kind = "Internal"
)

// Located wraps an underlying error with the error kind and a dotted path
// locating it within the input (e.g. "detection.selection.Image"). The
// orchestrator (C10) is the only component allowed to construct one: every
// other component returns its own concrete error type and lets the
// orchestrator classify and locate it.
type Located struct {
	Kind     Kind
	Detail   string
	Location string
	Err      error
}

func (l *Located) Error() string {
	if l.Location != "" {
		return fmt.Sprintf("%s: %s (at %s)", l.Kind, l.Detail, l.Location)
	}
	return fmt.Sprintf("%s: %s", l.Kind, l.Detail)
}

func (l *Located) Unwrap() error { return l.Err }

// At builds a Located error classifying err as kind, anchored at location.
func At(kind Kind, location string, err error) *Located {
	return &Located{Kind: kind, Detail: err.Error(), Location: location, Err: err}
}
