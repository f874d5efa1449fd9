package prereq

import (
	"testing"

	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_ProcessCreationHasSysmonAndNativeAlternative(t *testing.T) {
	report := Analyze(sigmarule.LogSource{Product: "windows", Category: "process_creation"}, nil)
	require.Contains(t, report.EventIDs, 1)
	require.Contains(t, report.EventIDs, 4688)
	require.True(t, report.HasAlternatives)
}

func TestAnalyze_RegistryEventHasThreeIDs(t *testing.T) {
	report := Analyze(sigmarule.LogSource{Product: "windows", Category: "registry_event"}, nil)
	require.ElementsMatch(t, []int{12, 13, 14}, report.EventIDs)
}

func TestAnalyze_UnknownCategoryProducesEmptyReport(t *testing.T) {
	report := Analyze(sigmarule.LogSource{Product: "linux", Category: "auditd"}, nil)
	require.Empty(t, report.RequiredLogs)
	require.False(t, report.HasAlternatives)
}

func TestAnalyze_AppLockerServiceHasTwoAlternatives(t *testing.T) {
	report := Analyze(sigmarule.LogSource{Product: "windows", Service: "applocker"}, nil)
	require.Contains(t, report.EventIDs, 8002)
	require.Contains(t, report.EventIDs, 4688)
	require.Contains(t, report.EventIDs, 1)
	require.True(t, report.HasAlternatives)
	require.Len(t, report.RequiredLogs, 1)
	require.Len(t, report.RequiredLogs[0].Alternatives, 2)
}

func TestAnalyze_ServiceIsCaseInsensitive(t *testing.T) {
	report := Analyze(sigmarule.LogSource{Product: "windows", Service: "AppLocker"}, nil)
	require.True(t, report.HasAlternatives)
}
