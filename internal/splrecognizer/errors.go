// Package splrecognizer implements C9, the reverse recognizer: it parses
// the restricted subset of SPL the emitter (C5) produces back into the
// Query AST, then renders that AST as a Sigma YAML document. Out-of-
// grammar SPL never aborts the whole conversion silently — unparseable
// fragments are collected and surfaced as correlation notes, the way the
// orchestrator's best-effort contract in §4.9 requires.
package splrecognizer

import "fmt"

// ErrUnsupportedSpl is raised when a pipeline stage or predicate fragment
// falls outside the recognized grammar. Recognize turns it into a
// correlation note for that fragment instead of returning it.
type ErrUnsupportedSpl struct {
	Fragment string
	Offset   int
}

func (e ErrUnsupportedSpl) Error() string {
	return fmt.Sprintf("unsupported SPL fragment at offset %d: %q", e.Offset, e.Fragment)
}

// ErrEmptyQuery is raised when the search portion of the input contains no
// predicate at all (not even an implicit one) and no pipeline stage
// supplies one either.
type ErrEmptyQuery struct{}

func (ErrEmptyQuery) Error() string { return "spl input has no recognizable search predicate" }
