package sigmarule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const mimikatzRule = `
title: Mimikatz sekurlsa
logsource:
  category: process_creation
  product: windows
detection:
  selection:
    CommandLine|contains:
      - 'sekurlsa::logonpasswords'
      - 'lsadump::sam'
  condition: selection
level: critical
`

func TestParse_SimpleSelection(t *testing.T) {
	r, err := Parse([]byte(mimikatzRule))
	require.NoError(t, err)
	require.Equal(t, "Mimikatz sekurlsa", r.Title)
	require.Equal(t, LevelCritical, r.Level)
	require.Equal(t, "process_creation", r.LogSource.Category)

	sel, ok := r.Selection("selection")
	require.True(t, ok)
	require.Len(t, sel.Groups, 1)
	require.Len(t, sel.Groups[0].Entries, 1)

	entry := sel.Groups[0].Entries[0]
	require.Equal(t, "CommandLine", entry.Field)
	require.Equal(t, []string{"contains"}, entry.Modifiers)
	require.Len(t, entry.Values, 2)

	ref, ok := r.ConditionTree.(CondRef)
	require.True(t, ok)
	require.Equal(t, "selection", ref.Name)
}

const oneOfRule = `
title: wildcard selections
logsource:
  product: windows
detection:
  selection_a:
    Image|endswith: '\\powershell.exe'
  selection_b:
    Image|endswith: '\\pwsh.exe'
  condition: 1 of selection_*
`

func TestParse_OneOfWildcard(t *testing.T) {
	r, err := Parse([]byte(oneOfRule))
	require.NoError(t, err)
	or, ok := r.ConditionTree.(CondOr)
	require.True(t, ok)
	require.Len(t, or.Children, 2)
}

func TestParse_MissingTitle(t *testing.T) {
	_, err := Parse([]byte(`
logsource:
  product: windows
detection:
  selection:
    Image: foo.exe
  condition: selection
`))
	require.Error(t, err)
	require.IsType(t, ErrInvalidSigma{}, err)
}

func TestParse_UnknownModifier(t *testing.T) {
	_, err := Parse([]byte(`
title: bad
logsource:
  product: windows
detection:
  selection:
    Image|frobnicate: foo.exe
  condition: selection
`))
	require.Error(t, err)
	require.IsType(t, ErrUnknownModifier{}, err)
}

func TestParse_UnresolvedSelection(t *testing.T) {
	_, err := Parse([]byte(`
title: bad
logsource:
  product: windows
detection:
  selection:
    Image: foo.exe
  condition: nonexistent
`))
	require.Error(t, err)
	require.IsType(t, ErrUnresolvedSelection{}, err)
}

func TestParse_AndOrNotCombination(t *testing.T) {
	r, err := Parse([]byte(`
title: combo
logsource:
  product: windows
detection:
  selection1:
    Image: a.exe
  selection2:
    Image: b.exe
  filter:
    User: SYSTEM
  condition: (selection1 or selection2) and not filter
`))
	require.NoError(t, err)
	top, ok := r.ConditionTree.(CondAnd)
	require.True(t, ok)
	require.Len(t, top.Children, 2)
	_, ok = top.Children[0].(CondOr)
	require.True(t, ok)
	not, ok := top.Children[1].(CondNot)
	require.True(t, ok)
	ref, ok := not.Child.(CondRef)
	require.True(t, ok)
	require.Equal(t, "filter", ref.Name)
}
