package splrecognizer

import (
	"strings"
	"testing"

	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/stretchr/testify/require"
)

func TestRecognize_ReverseRoundTrip(t *testing.T) {
	spl := `index=wineventlog (Image="*\\powershell.exe" AND CommandLine="*-enc*")`

	res, err := Recognize(spl)
	require.NoError(t, err)
	require.Equal(t, "wineventlog", res.Preamble.Index)
	require.Empty(t, res.CorrelationNotes)

	out, notes, err := RenderSigma(res, nil, RuleMeta{Title: "Reconstructed"})
	require.NoError(t, err)
	require.Empty(t, notes)

	require.Contains(t, out, "Image|endswith: \\powershell.exe")
	require.Contains(t, out, "CommandLine|contains: -enc")
	require.Contains(t, out, "condition: selection")
	require.True(t, strings.Contains(out, "product: other") || strings.Contains(out, "product: windows"))
}

func TestRecognize_PreambleWithSourcetype(t *testing.T) {
	spl := `search index=wineventlog sourcetype=WinEventLog:Security EventID=4688`

	res, err := Recognize(spl)
	require.NoError(t, err)
	require.Equal(t, "wineventlog", res.Preamble.Index)
	require.Equal(t, "WinEventLog:Security", res.Preamble.Sourcetype)

	out, _, err := RenderSigma(res, nil, RuleMeta{})
	require.NoError(t, err)
	require.Contains(t, out, "product: windows")
}

func TestRecognize_OrOfSameFieldCollapsesToValueList(t *testing.T) {
	spl := `CommandLine="*sekurlsa::logonpasswords*" OR CommandLine="*lsadump::sam*"`

	res, err := Recognize(spl)
	require.NoError(t, err)

	out, _, err := RenderSigma(res, nil, RuleMeta{})
	require.NoError(t, err)
	require.Contains(t, out, "CommandLine|contains:")
	require.Contains(t, out, "sekurlsa::logonpasswords")
	require.Contains(t, out, "lsadump::sam")
	require.Contains(t, out, "condition: selection")
}

func TestRecognize_WhereAndStatsStages(t *testing.T) {
	spl := `search index=wineventlog sourcetype=WinEventLog:* | where EventID=4688 | stats count by Image, CommandLine`

	res, err := Recognize(spl)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Image", "CommandLine"}, res.StatsFields)
}

func TestRecognize_RegexStage(t *testing.T) {
	spl := `search index=wineventlog | regex CommandLine="(?i)sekurlsa"`

	res, err := Recognize(spl)
	require.NoError(t, err)

	out, _, err := RenderSigma(res, nil, RuleMeta{})
	require.NoError(t, err)
	require.Contains(t, out, "CommandLine|re:")
}

func TestRecognize_UnsupportedStageBecomesCorrelationNote(t *testing.T) {
	spl := `search index=wineventlog EventID=4688 | transaction CommandLine`

	res, err := Recognize(spl)
	require.NoError(t, err)
	require.Len(t, res.CorrelationNotes, 1)
	require.Contains(t, res.CorrelationNotes[0], "transaction")
}

func TestRecognize_EmptyQueryErrors(t *testing.T) {
	_, err := Recognize("")
	require.ErrorAs(t, err, &ErrEmptyQuery{})
}

func TestRenderSigma_InverseFieldMapping(t *testing.T) {
	spl := `search index=wineventlog Image="*\\cmd.exe"`

	res, err := Recognize(spl)
	require.NoError(t, err)

	mappings := []profile.Mapping{{SigmaField: "ImagePath", TargetField: "Image"}}
	out, notes, err := RenderSigma(res, mappings, RuleMeta{})
	require.NoError(t, err)
	require.Empty(t, notes)
	require.Contains(t, out, "ImagePath|endswith: \\cmd.exe")
}
