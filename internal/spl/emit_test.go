package spl

import (
	"strings"
	"testing"

	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/queryast"
	"github.com/Johnny9802/sigma-spl-bridge/internal/resolver"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
	"github.com/stretchr/testify/require"
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

func TestEmit_MimikatzPrefix(t *testing.T) {
	rule, err := sigmarule.Parse([]byte(mimikatzSigma))
	require.NoError(t, err)

	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "default"})
	require.NoError(t, err)
	res := resolver.New(store)

	compiled, err := queryast.Compile(rule, res, p)
	require.NoError(t, err)

	out := Emit(compiled.Query, p, rule.LogSource, Overrides{}, nil)
	expectedPrefix := `search index=wineventlog sourcetype=WinEventLog:* (CommandLine="*sekurlsa::logonpasswords*" OR CommandLine="*lsadump::sam*")`
	require.True(t, strings.HasPrefix(out, expectedPrefix), "got: %s", out)
}

func TestEmit_EscapesQuotesAndBackslashes(t *testing.T) {
	rule, err := sigmarule.Parse([]byte(`
title: t
logsource: {product: windows}
detection:
  selection:
    Image|endswith: '\powershell.exe'
  condition: selection
`))
	require.NoError(t, err)

	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p"})
	require.NoError(t, err)
	res := resolver.New(store)
	compiled, err := queryast.Compile(rule, res, p)
	require.NoError(t, err)

	out := Emit(compiled.Query, p, rule.LogSource, Overrides{}, nil)
	require.Contains(t, out, `Image="*\\powershell.exe"`)
}

func TestEmit_HealthChecksAsComments(t *testing.T) {
	rule, err := sigmarule.Parse([]byte(`
title: t
logsource: {product: windows}
detection:
  selection:
    Image: a.exe
  condition: selection
`))
	require.NoError(t, err)
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p"})
	require.NoError(t, err)
	res := resolver.New(store)
	compiled, err := queryast.Compile(rule, res, p)
	require.NoError(t, err)

	out := Emit(compiled.Query, p, rule.LogSource, Overrides{}, []string{"verify Image is present in index"})
	require.Contains(t, out, "### verify Image is present in index")
}

func TestEmit_OverridesWinOverProfile(t *testing.T) {
	rule, err := sigmarule.Parse([]byte(`
title: t
logsource: {product: windows}
detection:
  selection:
    Image: a.exe
  condition: selection
`))
	require.NoError(t, err)
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p", DefaultIndex: "profile_idx"})
	require.NoError(t, err)
	res := resolver.New(store)
	compiled, err := queryast.Compile(rule, res, p)
	require.NoError(t, err)

	out := Emit(compiled.Query, p, rule.LogSource, Overrides{Index: "override_idx"}, nil)
	require.True(t, strings.HasPrefix(out, "search index=override_idx"))
}
