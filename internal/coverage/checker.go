package coverage

import (
	"sort"
	"strconv"
)

// auditSubcategoryByCategory maps a Sigma logsource category to the
// Windows audit subcategory name(s) relevant to it, so audit coverage can
// be judged against the same (product, category) context prereq.Analyze
// uses for Sysmon.
var auditSubcategoryByCategory = map[string][]string{
	"process_creation":   {"Process Creation"},
	"network_connection":  {"Filtering Platform Connection"},
	"file_event":          {"File System", "Detailed File Share"},
	"registry_event":      {"Registry"},
}

// sysmonEventIDSet is the closed set of event IDs this system recognizes
// as "Sysmon's own" (§4.8: "or all required IDs if Sysmon is not
// installed and the IDs are Sysmon IDs" only applies to this set).
var sysmonEventIDSet = map[int]bool{
	1: true, 2: true, 3: true, 5: true, 6: true, 7: true, 8: true, 9: true,
	10: true, 11: true, 12: true, 13: true, 14: true, 15: true, 16: true,
	17: true, 18: true, 19: true, 20: true, 21: true, 22: true, 23: true,
	24: true, 25: true, 26: true, 27: true, 28: true, 29: true,
}

// Check compares requiredEventIDs (and, when known, the logsource
// category) against the active Sysmon and Windows-audit configurations in
// store, per §4.8. Either coverage path suffices for OverallCovered.
func Check(store *Store, requiredEventIDs []int, category string) CheckResult {
	sysmonCov := checkSysmon(store, requiredEventIDs)
	auditCov := checkAudit(store, category)

	result := CheckResult{
		SysmonCoverage: sysmonCov,
		AuditCoverage:  auditCov,
		OverallCovered: sysmonCov.Covered || auditCov.Covered,
	}
	if !result.OverallCovered {
		result.Recommendations = recommendations(sysmonCov, auditCov, requiredEventIDs, category)
	}
	return result
}

func checkSysmon(store *Store, required []int) SysmonCoverage {
	cfg, found := store.ActiveSysmonConfig()
	if !found {
		// No Sysmon config is active: treat every required ID that is a
		// known Sysmon event ID as "enabled" so a rule written purely
		// against Sysmon telemetry isn't penalized for a config this
		// checker was never given, per §4.8's "or all required IDs if
		// Sysmon is not installed and the IDs are Sysmon IDs" clause.
		var enabled []int
		for _, id := range required {
			if sysmonEventIDSet[id] {
				enabled = append(enabled, id)
			}
		}
		sort.Ints(enabled)
		return SysmonCoverage{
			EnabledIDs:  enabled,
			MissingIDs:  nil,
			Covered:     len(enabled) == len(required),
			SysmonFound: false,
		}
	}

	var enabled, missing []int
	for _, id := range required {
		if cfg.EnabledEventIDs[id] && !cfg.DisabledEventIDs[id] {
			enabled = append(enabled, id)
		} else {
			missing = append(missing, id)
		}
	}
	sort.Ints(enabled)
	sort.Ints(missing)
	return SysmonCoverage{
		EnabledIDs:  enabled,
		MissingIDs:  missing,
		Covered:     len(missing) == 0,
		SysmonFound: true,
	}
}

func checkAudit(store *Store, category string) AuditCoverage {
	cfg, found := store.ActiveAuditConfig()
	if !found {
		return AuditCoverage{AuditFound: false, Covered: false}
	}

	relevant := auditSubcategoryByCategory[category]
	if len(relevant) == 0 {
		return AuditCoverage{AuditFound: true, Covered: false}
	}
	relevantSet := make(map[string]bool, len(relevant))
	for _, r := range relevant {
		relevantSet[r] = true
	}

	var enabled []string
	for _, subs := range cfg.Categories {
		for _, s := range subs {
			if relevantSet[s.Name] && (s.Success || s.Failure) {
				enabled = append(enabled, s.Name)
			}
		}
	}
	sort.Strings(enabled)
	return AuditCoverage{
		EnabledPolicies: enabled,
		AuditFound:      true,
		Covered:         len(enabled) == len(relevant),
	}
}

func recommendations(sysmon SysmonCoverage, audit AuditCoverage, required []int, category string) []string {
	var out []string
	if !sysmon.SysmonFound {
		out = append(out, "No Sysmon configuration is marked active; add and activate one to evaluate Sysmon coverage")
	} else {
		for _, id := range sysmon.MissingIDs {
			out = append(out, eventIDRecommendation(id))
		}
	}
	if !audit.AuditFound {
		out = append(out, "No Windows audit policy configuration is marked active; add and activate one to evaluate audit coverage")
	} else if !audit.Covered {
		for _, name := range auditSubcategoryByCategory[category] {
			out = append(out, "Enable the \""+name+"\" audit subcategory (Success and/or Failure) in Advanced Audit Policy Configuration")
		}
	}
	return out
}

func eventIDRecommendation(id int) string {
	switch id {
	case 1:
		return "Enable Sysmon Event ID 1 (Process creation) in the active Sysmon configuration"
	case 3:
		return "Enable Sysmon Event ID 3 (Network connection detected) in the active Sysmon configuration"
	case 7:
		return "Enable Sysmon Event ID 7 (Image loaded) in the active Sysmon configuration"
	case 11:
		return "Enable Sysmon Event ID 11 (File create) in the active Sysmon configuration"
	case 12, 13, 14:
		return "Enable Sysmon Event ID " + strconv.Itoa(id) + " (Registry) in the active Sysmon configuration"
	case 22:
		return "Enable Sysmon Event ID 22 (DNS query) in the active Sysmon configuration"
	case 4688:
		return "Enable 'Audit Process Creation' (event ID 4688) in Advanced Audit Policy Configuration"
	default:
		return "Enable Sysmon Event ID " + strconv.Itoa(id) + " in the active Sysmon configuration"
	}
}
