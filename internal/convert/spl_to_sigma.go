package convert

import (
	"time"

	"github.com/google/uuid"

	"github.com/Johnny9802/sigma-spl-bridge/internal/gap"
	"github.com/Johnny9802/sigma-spl-bridge/internal/prereq"
	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
	"github.com/Johnny9802/sigma-spl-bridge/internal/resolver"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
	"github.com/Johnny9802/sigma-spl-bridge/internal/splrecognizer"
)

// SPLToSigma runs the reverse pipeline: C9 recognizes the SPL and renders
// Sigma YAML, then the reconstructed rule is re-run through the same
// C1->C4->C6/C7 analysis C10's forward path uses, so the response's
// prerequisites/mappings/gaps fields are populated the same way
// regardless of conversion_type. A reconstructed rule that fails
// re-validation degrades to a correlation note rather than failing the
// whole request — output_sigma is still the primary deliverable here.
func (o *Orchestrator) SPLToSigma(name, profileID, splText string, meta splrecognizer.RuleMeta) (ConversionResponse, error) {
	resp := ConversionResponse{
		RequestID:      uuid.NewString(),
		Name:           name,
		ConversionType: SPLToSigmaType,
		InputContent:   splText,
		CreatedAt:      time.Now().UTC(),
	}
	o.log.WithField("request_id", resp.RequestID).Debug("spl_to_sigma starting")

	result, err := splrecognizer.Recognize(splText)
	if err != nil {
		return ConversionResponse{}, classifySplErr(err, "")
	}

	p, err := o.resolveProfile(profileID)
	if err != nil {
		return ConversionResponse{}, classifyProfileErr(err, "profile_id")
	}
	resp.ProfileID = p.ID

	profileMappings, _ := o.profiles.Mappings(p.ID)
	sigmaText, notes, err := splrecognizer.RenderSigma(result, profileMappings, meta)
	if err != nil {
		return ConversionResponse{}, classifySplErr(err, "detection")
	}
	resp.OutputSigma = sigmaText
	resp.CorrelationNotes = notes

	rebuilt, perr := sigmarule.Parse([]byte(sigmaText))
	if perr != nil {
		resp.CorrelationNotes = append(resp.CorrelationNotes,
			"reconstructed sigma failed re-validation: "+perr.Error())
		return resp, nil
	}

	res := resolver.New(o.profiles)
	compiled, cerr := queryast.Compile(rebuilt, res, p)
	if cerr != nil {
		resp.CorrelationNotes = append(resp.CorrelationNotes,
			"reconstructed sigma failed compilation: "+cerr.Error())
		return resp, nil
	}

	resp.Mappings = compiled.Mappings
	resp.Gaps = gap.Analyze(compiled.Mappings, o.profileSigmaFields(p.ID))

	report := prereq.Analyze(rebuilt.LogSource, targetFieldsOf(compiled.Mappings))
	resp.Prerequisites = report
	resp.HealthChecks = prereq.HealthChecks(report)

	return resp, nil
}
