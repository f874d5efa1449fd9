// Package convert implements C10, the orchestrator: the three entry
// points (sigma_to_spl, spl_to_sigma, text_to_sigma) that drive the rest
// of the pipeline end to end and assemble the ConversionResponse each one
// returns. Every component downstream raises its own concrete error
// type; this package is the only one allowed to wrap those into an
// xlaterr.Located, the way the teacher's cmd/parse.go classifies
// ErrUnsupportedToken vs ErrIncompleteDetection vs a generic error by
// type switch instead of collapsing everything into one error shape.
package convert

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/Johnny9802/sigma-spl-bridge/internal/coverage"
	"github.com/Johnny9802/sigma-spl-bridge/internal/gap"
	"github.com/Johnny9802/sigma-spl-bridge/internal/llm"
	"github.com/Johnny9802/sigma-spl-bridge/internal/prereq"
	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
)

// json is the drop-in jsoniter codec the teacher's go.mod already
// requires directly; ConversionResponse marshaling goes through it
// rather than encoding/json.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ConversionType distinguishes the three orchestrator entry points, per
// §3's conversion record.
type ConversionType string

const (
	SigmaToSPLType  ConversionType = "sigma_to_spl"
	SPLToSigmaType  ConversionType = "spl_to_sigma"
	TextToSigmaType ConversionType = "text_to_sigma"
)

// ConversionResponse is what every orchestrator entry point returns, and
// what a persistence adapter would store verbatim — field names and
// types are fixed by §3/§6.1 and must not drift.
type ConversionResponse struct {
	// RequestID correlates this response with the orchestrator's own log
	// lines; it is not part of the wire contract (§6.1 fixes the JSON
	// shape) and is replaced by an integer id once a persistence adapter
	// stores the record (§6.2).
	RequestID        string                   `json:"-"`
	Name             string                   `json:"name"`
	ConversionType   ConversionType           `json:"conversion_type"`
	ProfileID        string                   `json:"profile_id,omitempty"`
	InputContent     string                   `json:"input_content"`
	OutputSigma      string                   `json:"output_sigma,omitempty"`
	OutputSPL        string                   `json:"output_spl,omitempty"`
	Prerequisites    prereq.Report            `json:"prerequisites"`
	Mappings         []queryast.MappingResult `json:"mappings"`
	Gaps             []gap.Item               `json:"gaps"`
	HealthChecks     []string                 `json:"health_checks"`
	CorrelationNotes []string                 `json:"correlation_notes,omitempty"`
	LLMUsed          bool                     `json:"llm_used"`
	CreatedAt        time.Time                `json:"created_at"`
}

// ToJSON renders the response exactly as the HTTP adapter contract in
// §6.1 expects it.
func (r ConversionResponse) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// Orchestrator wires the Profile Store (C2) and the Sysmon/audit
// coverage Store (C8's backing state) together with an optional LLM
// adapter. It holds no translation-local state between calls — every
// entry point is a pure function of its input plus whatever the stores
// currently hold, per §4.10.
type Orchestrator struct {
	profiles *profile.Store
	coverage *coverage.Store
	llm      llm.Adapter
	log      *logrus.Logger
}

// New builds an Orchestrator. A nil llmAdapter defaults to llm.Unconfigured;
// a nil log defaults to logrus.StandardLogger(), matching how the rest of
// internal/ stays silent until cmd/ supplies a real logger (§1 of the
// ambient stack).
func New(profiles *profile.Store, cov *coverage.Store, llmAdapter llm.Adapter, log *logrus.Logger) *Orchestrator {
	if llmAdapter == nil {
		llmAdapter = llm.Unconfigured{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Orchestrator{profiles: profiles, coverage: cov, llm: llmAdapter, log: log}
}

// resolveProfile looks up profileID when given, otherwise falls back to
// the store's default profile, otherwise an empty profile so translation
// can still proceed with identity field mapping (§4.3 step 4).
func (o *Orchestrator) resolveProfile(profileID string) (profile.Profile, error) {
	if profileID != "" {
		p, err := o.profiles.Get(profileID)
		if err != nil {
			return profile.Profile{}, err
		}
		return p, nil
	}
	if p, ok := o.profiles.Default(); ok {
		return p, nil
	}
	return profile.Profile{}, nil
}

// Coverage runs C8 against the store this orchestrator was built with,
// giving cmd/ a single entry point for every store-backed operation
// instead of reaching past the orchestrator into package internals.
func (o *Orchestrator) Coverage(requiredEventIDs []int, category string) coverage.CheckResult {
	return coverage.Check(o.coverage, requiredEventIDs, category)
}

// Profiles exposes the profile store for the profile list/suggest
// commands, which aren't one of the three conversion entry points.
func (o *Orchestrator) Profiles() *profile.Store { return o.profiles }

// CoverageStore exposes the Sysmon/audit config store this orchestrator
// was built with.
func (o *Orchestrator) CoverageStore() *coverage.Store { return o.coverage }

// profileSigmaFields returns the sigma_field side of every mapping in
// profileID's profile, the pool the gap analyzer suggests "did you mean"
// matches from (§4.7). A profile with no mappings yet yields nil, which
// Analyze treats the same as an empty pool.
func (o *Orchestrator) profileSigmaFields(profileID string) []string {
	if profileID == "" {
		return nil
	}
	mappings, err := o.profiles.Mappings(profileID)
	if err != nil {
		return nil
	}
	fields := make([]string, 0, len(mappings))
	for _, m := range mappings {
		fields = append(fields, m.SigmaField)
	}
	return fields
}
