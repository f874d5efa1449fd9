package convert

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Johnny9802/sigma-spl-bridge/internal/coverage"
	"github.com/Johnny9802/sigma-spl-bridge/internal/llm"
	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/spl"
	"github.com/Johnny9802/sigma-spl-bridge/internal/splrecognizer"
)

const mimikatzSigma = `
title: Mimikatz
logsource:
  category: process_creation
  product: windows
detection:
  selection:
    CommandLine|contains: ['sekurlsa::logonpasswords', 'lsadump::sam']
  condition: selection
level: critical
`

func newTestOrchestrator(t *testing.T) (*Orchestrator, *profile.Store) {
	profiles := profile.NewStore()
	_, err := profiles.Create(profile.Profile{Name: "default", IsDefault: true})
	require.NoError(t, err)
	cov := coverage.NewStore()
	return New(profiles, cov, nil, nil), profiles
}

func TestSigmaToSPL_MimikatzPrefix(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	resp, err := o.SigmaToSPL("mimikatz", "", mimikatzSigma, spl.Overrides{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.RequestID)
	require.Equal(t, SigmaToSPLType, resp.ConversionType)
	require.True(t, strings.HasPrefix(resp.OutputSPL,
		`search index=wineventlog sourcetype=WinEventLog:* (CommandLine="*sekurlsa::logonpasswords*" OR CommandLine="*lsadump::sam*")`))

	ids := make(map[int]bool)
	for _, id := range resp.Prerequisites.EventIDs {
		ids[id] = true
	}
	require.True(t, ids[1])
	require.False(t, resp.LLMUsed)
	require.False(t, resp.CreatedAt.IsZero())
}

func TestSigmaToSPL_InvalidYaml(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	_, err := o.SigmaToSPL("broken", "", "title: [", spl.Overrides{})
	require.Error(t, err)
}

func TestSigmaToSPL_UnknownProfileIsNotFound(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	_, err := o.SigmaToSPL("x", "does-not-exist", mimikatzSigma, spl.Overrides{})
	require.Error(t, err)
}

func TestSPLToSigma_RoundTrip(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	splText := `index=wineventlog (Image="*\\powershell.exe" AND CommandLine="*-enc*")`
	resp, err := o.SPLToSigma("reconstructed", "", splText, splrecognizer.RuleMeta{})
	require.NoError(t, err)
	require.Equal(t, SPLToSigmaType, resp.ConversionType)
	require.Contains(t, resp.OutputSigma, "Image|endswith: \\powershell.exe")
	require.Contains(t, resp.OutputSigma, "CommandLine|contains: -enc")
}

func TestTextToSigma_UnconfiguredLLM(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	_, err := o.TextToSigma(context.Background(), "nl", "", "detect powershell encoded commands", nil)
	require.Error(t, err)
}

func TestTextToSigma_ConfiguredLLM(t *testing.T) {
	profiles := profile.NewStore()
	cov := coverage.NewStore()
	o := New(profiles, cov, stubAdapter{sigma: mimikatzSigma}, nil)

	resp, err := o.TextToSigma(context.Background(), "nl", "", "detect mimikatz", nil)
	require.NoError(t, err)
	require.True(t, resp.LLMUsed)
	require.Equal(t, mimikatzSigma, resp.OutputSigma)
	require.Empty(t, resp.OutputSPL)
	require.NotEmpty(t, resp.Mappings)
}

type stubAdapter struct{ sigma string }

func (s stubAdapter) Generate(ctx context.Context, prompt string, hints map[string]string) (string, error) {
	return s.sigma, nil
}

var _ llm.Adapter = stubAdapter{}
