package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_CreateEnforcesUniqueDefault(t *testing.T) {
	s := NewStore()
	a, err := s.Create(Profile{Name: "a", IsDefault: true})
	require.NoError(t, err)
	b, err := s.Create(Profile{Name: "b", IsDefault: true})
	require.NoError(t, err)

	got, err := s.Get(a.ID)
	require.NoError(t, err)
	require.False(t, got.IsDefault)

	got, err = s.Get(b.ID)
	require.NoError(t, err)
	require.True(t, got.IsDefault)
}

func TestStore_CreateRejectsDuplicateName(t *testing.T) {
	s := NewStore()
	_, err := s.Create(Profile{Name: "dup"})
	require.NoError(t, err)
	_, err = s.Create(Profile{Name: "dup"})
	require.Error(t, err)
	require.IsType(t, ErrConflict{}, err)
}

func TestStore_MappingCRUD(t *testing.T) {
	s := NewStore()
	p, err := s.Create(Profile{Name: "win"})
	require.NoError(t, err)

	require.NoError(t, s.AddMapping(p.ID, Mapping{SigmaField: "Image", TargetField: "process"}))
	err = s.AddMapping(p.ID, Mapping{SigmaField: "Image", TargetField: "other"})
	require.Error(t, err)
	require.IsType(t, ErrConflict{}, err)

	ms, err := s.Mappings(p.ID)
	require.NoError(t, err)
	require.Len(t, ms, 1)

	require.NoError(t, s.DeleteMapping(p.ID, "Image"))
	ms, err = s.Mappings(p.ID)
	require.NoError(t, err)
	require.Len(t, ms, 0)
}

func TestStore_SuggestRequiresCIMEnabled(t *testing.T) {
	s := NewStore()
	p, err := s.Create(Profile{Name: "no-cim"})
	require.NoError(t, err)
	got, err := s.Suggest(p.ID, []string{"Image"})
	require.NoError(t, err)
	require.Empty(t, got)

	cimProfile, err := s.Create(Profile{Name: "cim", CIMEnabled: true})
	require.NoError(t, err)
	got, err = s.Suggest(cimProfile.ID, []string{"Image", "User"})
	require.NoError(t, err)
	require.Equal(t, "process", got["Image"])
	require.Equal(t, "user", got["User"])
}
