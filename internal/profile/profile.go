// Package profile holds named field-mapping profiles and their ordered
// mapping rules behind a single in-memory repository, guarded by a
// sync.RWMutex the way the rest of this codebase's shared,
// process-wide state is guarded: translations only read, administrative
// calls write, and writes are short and exclusive.
package profile

import "time"

// Profile is a named set of Sigma-to-target field mappings plus emission
// defaults. Exactly one Profile in a Store may have IsDefault set.
type Profile struct {
	ID                string
	Name              string
	Description       string
	DefaultIndex      string
	DefaultSourcetype string
	CIMEnabled        bool
	IsDefault         bool
	Macros            map[string]string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// recognizedTransforms is the closed set of named value transforms a
// Mapping may reference. An unrecognized transform does not reject the
// mapping outright — resolution degrades it to "suggested" with a note,
// per §4.3.
var recognizedTransforms = map[string]bool{
	"lower":          true,
	"upper":          true,
	"basename":       true,
	"strip_quotes":   true,
	"cidr_to_subnet": true,
}

// IsRecognizedTransform reports whether name is one of the transforms the
// emitter knows how to apply.
func IsRecognizedTransform(name string) bool {
	return recognizedTransforms[name]
}

// Mapping is one sigma_field -> target_field rule within a profile.
// sigma_field is unique within its profile and looked up case-sensitively.
type Mapping struct {
	SigmaField  string
	TargetField string
	Transform   string
	Category    string
	Notes       string
}
