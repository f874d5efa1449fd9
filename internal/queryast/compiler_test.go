package queryast

import (
	"testing"

	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/resolver"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *sigmarule.Rule {
	r, err := sigmarule.Parse([]byte(src))
	require.NoError(t, err)
	return r
}

func TestCompile_ContainsListBecomesOr(t *testing.T) {
	rule := mustParse(t, `
title: t
logsource: {product: windows, category: process_creation}
detection:
  selection:
    CommandLine|contains: ['sekurlsa::logonpasswords', 'lsadump::sam']
  condition: selection
`)
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p"})
	require.NoError(t, err)
	res := resolver.New(store)

	out, err := Compile(rule, res, p)
	require.NoError(t, err)

	or, ok := out.Query.(Or)
	require.True(t, ok)
	require.Len(t, or.Terms, 2)
	m, ok := or.Terms[0].(Match)
	require.True(t, ok)
	require.Equal(t, Contains, m.Op)
	require.Equal(t, "CommandLine", m.Field)
}

func TestCompile_AllModifierBecomesAnd(t *testing.T) {
	rule := mustParse(t, `
title: t
logsource: {product: windows}
detection:
  selection:
    CommandLine|contains|all: ['a', 'b']
  condition: selection
`)
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p"})
	require.NoError(t, err)
	res := resolver.New(store)

	out, err := Compile(rule, res, p)
	require.NoError(t, err)
	and, ok := out.Query.(And)
	require.True(t, ok)
	require.Len(t, and.Terms, 2)
}

func TestCompile_Base64Modifier(t *testing.T) {
	rule := mustParse(t, `
title: t
logsource: {product: windows}
detection:
  selection:
    CommandLine|base64|contains: 'whoami'
  condition: selection
`)
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p"})
	require.NoError(t, err)
	res := resolver.New(store)

	out, err := Compile(rule, res, p)
	require.NoError(t, err)
	m, ok := out.Query.(Match)
	require.True(t, ok)
	require.Equal(t, Contains, m.Op)
	require.Equal(t, "d2hvYW1p", m.Value.Str)
}

func TestCompile_NullBecomesNotExists(t *testing.T) {
	rule := mustParse(t, `
title: t
logsource: {product: windows}
detection:
  selection:
    ParentImage: null
  condition: selection
`)
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p"})
	require.NoError(t, err)
	res := resolver.New(store)

	out, err := Compile(rule, res, p)
	require.NoError(t, err)
	not, ok := out.Query.(Not)
	require.True(t, ok)
	m, ok := not.Term.(Match)
	require.True(t, ok)
	require.Equal(t, Exists, m.Op)
}

func TestCompile_GapMapping(t *testing.T) {
	rule := mustParse(t, `
title: t
logsource: {product: windows}
detection:
  selection:
    FakeField: foo
  condition: selection
`)
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p"})
	require.NoError(t, err)
	res := resolver.New(store)

	out, err := Compile(rule, res, p)
	require.NoError(t, err)
	require.Len(t, out.Mappings, 1)
	require.Equal(t, resolver.StatusMissing, out.Mappings[0].Status)
	require.Equal(t, "detection.selection.FakeField", out.Mappings[0].Location)
}
