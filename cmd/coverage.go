package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage [event-ids]",
	Short: "Check required event IDs against the active Sysmon/audit config (C8)",
	Long:  `Compares a comma-separated list of required event IDs (e.g. "1,3,11") against the preloaded Sysmon and Windows-audit configuration snapshots.`,
	Args:  cobra.ExactArgs(1),
	Run:   runCoverage,
}

func runCoverage(cmd *cobra.Command, args []string) {
	var ids []int
	for _, raw := range strings.Split(args[0], ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("invalid event id %q: %v", raw, err)
		}
		ids = append(ids, id)
	}

	orch, err := newOrchestrator()
	if err != nil {
		log.Fatal(err)
	}

	result := orch.Coverage(ids, viper.GetString("coverage.category"))

	log.WithField("overall_covered", result.OverallCovered).Info("coverage check complete")
	log.Infof("sysmon: enabled=%v missing=%v covered=%v found=%v",
		result.SysmonCoverage.EnabledIDs, result.SysmonCoverage.MissingIDs,
		result.SysmonCoverage.Covered, result.SysmonCoverage.SysmonFound)
	log.Infof("audit: enabled_policies=%v covered=%v found=%v",
		result.AuditCoverage.EnabledPolicies, result.AuditCoverage.Covered, result.AuditCoverage.AuditFound)
	for _, r := range result.Recommendations {
		log.Warn(r)
	}
}

func init() {
	rootCmd.AddCommand(coverageCmd)

	coverageCmd.Flags().String("category", "", "Logsource category the event IDs belong to (for audit-policy relevance filtering).")
	viper.BindPFlag("coverage.category", coverageCmd.Flags().Lookup("category"))
}
