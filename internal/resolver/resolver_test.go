package resolver

import (
	"testing"

	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
	"github.com/stretchr/testify/require"
)

func TestResolve_ProfileMappingWins(t *testing.T) {
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p", CIMEnabled: true})
	require.NoError(t, err)
	require.NoError(t, store.AddMapping(p.ID, profile.Mapping{SigmaField: "Image", TargetField: "proc_name"}))

	r := New(store)
	ls := sigmarule.LogSource{Product: "windows", Category: "process_creation"}
	res := r.Resolve("Image", ls, p)
	require.Equal(t, StatusOK, res.Status)
	require.Equal(t, "proc_name", res.TargetField)
}

func TestResolve_CIMFallback(t *testing.T) {
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p", CIMEnabled: true})
	require.NoError(t, err)

	r := New(store)
	ls := sigmarule.LogSource{Product: "windows", Category: "process_creation"}
	res := r.Resolve("CommandLine", ls, p)
	require.Equal(t, StatusSuggested, res.Status)
	require.Equal(t, "process", res.TargetField)
}

func TestResolve_BuiltinFallback(t *testing.T) {
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p"})
	require.NoError(t, err)

	r := New(store)
	ls := sigmarule.LogSource{Product: "windows", Category: "process_creation"}
	res := r.Resolve("ParentImage", ls, p)
	require.Equal(t, StatusSuggested, res.Status)
	require.Equal(t, "ParentImage", res.TargetField)
}

func TestResolve_MissingFallback(t *testing.T) {
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p"})
	require.NoError(t, err)

	r := New(store)
	ls := sigmarule.LogSource{Product: "windows", Category: "process_creation"}
	res := r.Resolve("FakeField", ls, p)
	require.Equal(t, StatusMissing, res.Status)
	require.Equal(t, "FakeField", res.TargetField)
}

func TestResolve_Deterministic(t *testing.T) {
	store := profile.NewStore()
	p, err := store.Create(profile.Profile{Name: "p", CIMEnabled: true})
	require.NoError(t, err)

	r := New(store)
	ls := sigmarule.LogSource{Product: "windows", Category: "process_creation"}
	first := r.Resolve("CommandLine", ls, p)
	second := r.Resolve("CommandLine", ls, p)
	require.Equal(t, first, second)
}
