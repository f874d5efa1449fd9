package gap

import (
	"testing"

	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
	"github.com/Johnny9802/sigma-spl-bridge/internal/resolver"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_MissingFieldGetsSuggestion(t *testing.T) {
	mappings := []queryast.MappingResult{
		{SigmaField: "Imag", TargetField: "Imag", Status: resolver.StatusMissing, Location: "detection.selection.Imag"},
	}
	items := Analyze(mappings, []string{"Image", "User"})
	require.Len(t, items, 1)
	require.Equal(t, "Imag", items[0].Field)
	require.Contains(t, items[0].Suggestions, "Image")
}

func TestAnalyze_SkipsOKEntries(t *testing.T) {
	mappings := []queryast.MappingResult{
		{SigmaField: "Image", Status: resolver.StatusOK},
		{SigmaField: "FakeField", Status: resolver.StatusMissing},
	}
	items := Analyze(mappings, nil)
	require.Len(t, items, 1)
	require.Equal(t, "FakeField", items[0].Field)
}

func TestLevenshtein(t *testing.T) {
	require.Equal(t, 0, levenshtein("Image", "Image"))
	require.Equal(t, 1, levenshtein("Image", "Imag"))
	require.Equal(t, 1, levenshtein("Image", "Imagee"))
}
