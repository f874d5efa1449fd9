package convert

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Johnny9802/sigma-spl-bridge/internal/gap"
	"github.com/Johnny9802/sigma-spl-bridge/internal/llm"
	"github.com/Johnny9802/sigma-spl-bridge/internal/prereq"
	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
	"github.com/Johnny9802/sigma-spl-bridge/internal/resolver"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
	"github.com/Johnny9802/sigma-spl-bridge/internal/xlaterr"
)

// TextToSigma is the one entry point allowed to call the LLM adapter, and
// only as a strict post-processor: its output is validated and analyzed
// through the exact same C1->C4->C6/C7 pipeline as any other Sigma input,
// and it never reaches C5 (no output_spl), keeping the forward,
// Sigma-to-SPL path fully deterministic regardless of whether an LLM is
// configured (§9's "LLM path" design note).
func (o *Orchestrator) TextToSigma(ctx context.Context, name, profileID, freeText string, hints map[string]string) (ConversionResponse, error) {
	resp := ConversionResponse{
		RequestID:      uuid.NewString(),
		Name:           name,
		ConversionType: TextToSigmaType,
		InputContent:   freeText,
		CreatedAt:      time.Now().UTC(),
	}
	o.log.WithField("request_id", resp.RequestID).Debug("text_to_sigma starting")

	generated, err := o.llm.Generate(ctx, freeText, hints)
	if err != nil {
		if _, ok := err.(llm.ErrUnavailable); ok {
			return ConversionResponse{}, xlaterr.At(xlaterr.LlmUnavailable, "", err)
		}
		return ConversionResponse{}, xlaterr.At(xlaterr.Internal, "", err)
	}
	resp.OutputSigma = generated
	resp.LLMUsed = true

	p, err := o.resolveProfile(profileID)
	if err != nil {
		return ConversionResponse{}, classifyProfileErr(err, "profile_id")
	}
	resp.ProfileID = p.ID

	rule, perr := sigmarule.Parse([]byte(generated))
	if perr != nil {
		resp.CorrelationNotes = append(resp.CorrelationNotes,
			"llm-generated sigma failed validation: "+perr.Error())
		return resp, nil
	}

	res := resolver.New(o.profiles)
	compiled, cerr := queryast.Compile(rule, res, p)
	if cerr != nil {
		resp.CorrelationNotes = append(resp.CorrelationNotes,
			"llm-generated sigma failed compilation: "+cerr.Error())
		return resp, nil
	}

	resp.Mappings = compiled.Mappings
	resp.Gaps = gap.Analyze(compiled.Mappings, o.profileSigmaFields(p.ID))

	report := prereq.Analyze(rule.LogSource, targetFieldsOf(compiled.Mappings))
	resp.Prerequisites = report
	resp.HealthChecks = prereq.HealthChecks(report)

	return resp, nil
}
