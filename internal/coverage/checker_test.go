package coverage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheck_MissingIDsWhenSysmonPartiallyEnabled(t *testing.T) {
	store := NewStore()
	store.AddSysmonConfig(SysmonConfig{
		Name:            "prod",
		EnabledEventIDs: map[int]bool{1: true},
		IsActive:        true,
	})

	result := Check(store, []int{1, 3}, "process_creation")
	require.Equal(t, []int{3}, result.SysmonCoverage.MissingIDs)
	require.False(t, result.OverallCovered)
	require.NotEmpty(t, result.Recommendations)
}

func TestCheck_EnablingMoreIDsNeverReducesCoverage(t *testing.T) {
	store := NewStore()
	store.AddSysmonConfig(SysmonConfig{
		Name:            "prod",
		EnabledEventIDs: map[int]bool{1: true},
		IsActive:        true,
	})
	before := Check(store, []int{1, 3}, "process_creation")

	store.AddSysmonConfig(SysmonConfig{
		Name:            "prod",
		EnabledEventIDs: map[int]bool{1: true, 3: true},
		IsActive:        true,
	})
	after := Check(store, []int{1, 3}, "process_creation")

	require.False(t, before.OverallCovered)
	require.True(t, after.OverallCovered)
}

func TestCheck_NoActiveConfigTreatsKnownSysmonIDsAsCovered(t *testing.T) {
	store := NewStore()
	result := Check(store, []int{1}, "process_creation")
	require.True(t, result.SysmonCoverage.Covered)
	require.False(t, result.SysmonCoverage.SysmonFound)
}

func TestCheck_AuditPathCanSatisfyOverallCoverage(t *testing.T) {
	store := NewStore()
	store.AddAuditConfig(WindowsAuditConfig{
		Name: "default-domain",
		Categories: map[string][]AuditSubcategory{
			"Detailed Tracking": {{Name: "Process Creation", Success: true}},
		},
		IsActive: true,
	})

	result := Check(store, []int{1}, "process_creation")
	require.True(t, result.AuditCoverage.Covered)
	require.True(t, result.OverallCovered)
}
