package convert

import (
	"time"

	"github.com/google/uuid"

	"github.com/Johnny9802/sigma-spl-bridge/internal/gap"
	"github.com/Johnny9802/sigma-spl-bridge/internal/prereq"
	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
	"github.com/Johnny9802/sigma-spl-bridge/internal/resolver"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
	"github.com/Johnny9802/sigma-spl-bridge/internal/spl"
)

// SigmaToSPL runs the forward pipeline: C1 parse, C3/C2 field resolution
// inline within C4's compile, C5 emission, then C6/C7 run in either order
// against the compiled mappings (§5's ordering rule). It never touches
// the LLM adapter.
func (o *Orchestrator) SigmaToSPL(name, profileID, sigmaText string, overrides spl.Overrides) (ConversionResponse, error) {
	resp := ConversionResponse{
		RequestID:      uuid.NewString(),
		Name:           name,
		ConversionType: SigmaToSPLType,
		InputContent:   sigmaText,
		CreatedAt:      time.Now().UTC(),
	}
	o.log.WithField("request_id", resp.RequestID).Debug("sigma_to_spl starting")

	rule, err := sigmarule.Parse([]byte(sigmaText))
	if err != nil {
		return ConversionResponse{}, classifySigmaErr(err, "")
	}

	p, err := o.resolveProfile(profileID)
	if err != nil {
		return ConversionResponse{}, classifyProfileErr(err, "profile_id")
	}
	resp.ProfileID = p.ID

	res := resolver.New(o.profiles)
	compiled, err := queryast.Compile(rule, res, p)
	if err != nil {
		return ConversionResponse{}, classifySigmaErr(err, "detection")
	}

	resp.Mappings = compiled.Mappings
	resp.Gaps = gap.Analyze(compiled.Mappings, o.profileSigmaFields(p.ID))

	report := prereq.Analyze(rule.LogSource, targetFieldsOf(compiled.Mappings))
	resp.Prerequisites = report
	resp.HealthChecks = prereq.HealthChecks(report)

	resp.OutputSPL = spl.Emit(compiled.Query, p, rule.LogSource, overrides, resp.HealthChecks)
	return resp, nil
}

func targetFieldsOf(mappings []queryast.MappingResult) []string {
	fields := make([]string, 0, len(mappings))
	for _, m := range mappings {
		fields = append(fields, m.TargetField)
	}
	return fields
}
