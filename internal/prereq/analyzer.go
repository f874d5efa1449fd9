package prereq

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
)

// Analyze derives the telemetry prerequisites for a rule's logsource
// from its category and service alone; ls.Product and fields are accepted
// but not consulted.
//
// Category and service are resolved independently and both may
// contribute a RequiredLogSource: a rule naming only a category (the
// common case) resolves through sysmonCategoryTable exactly as before,
// while a rule that also names a service (e.g. `service: applocker`)
// additionally resolves through serviceLogSources/serviceAlternatives,
// the generalization of the single process_creation/4688 pairing to
// every service the original converter's LOG_SOURCE_INFO table names.
func Analyze(ls sigmarule.LogSource, fields []string) Report {
	category := ls.Category
	service := strings.ToLower(ls.Service)
	sysmonIDs, hasSysmon := sysmonCategoryTable[category]

	var report Report
	if hasSysmon {
		name := "Sysmon " + category
		channel := "Microsoft-Windows-Sysmon/Operational"
		setup := fmt.Sprintf("Install Sysmon and enable event ID(s) %s in the Sysmon configuration", idList(sysmonIDs))
		if src := sysmonIDs[0].Source; src != "Sysmon" {
			name = src + " " + category
			channel = strings.TrimPrefix(categorySplunkSourcetype[category], "XmlWinEventLog:")
			setup = fmt.Sprintf("Enable logging of event ID(s) %s in the %s event log", idList(sysmonIDs), channel)
		}
		req := RequiredLogSource{
			Name:             name,
			Description:      categoryDescriptions[category],
			WindowsChannel:   channel,
			SplunkSourcetype: categorySplunkSourcetype[category],
			EventIDs:         sysmonIDs,
			SetupInstructions: []string{
				setup,
			},
		}
		if alt, ok := windowsNativeAlternatives[category]; ok {
			req.Alternatives = append(req.Alternatives, alt)
		}
		report.RequiredLogs = append(report.RequiredLogs, req)
	}

	if svc, ok := serviceLogSources[service]; ok {
		req := svc
		if alts, ok := serviceAlternatives[service]; ok {
			req.Alternatives = append([]AlternativeLogSource(nil), alts...)
		}
		report.RequiredLogs = append(report.RequiredLogs, req)
	}

	report.EventIDs = dedupedEventIDs(report.RequiredLogs)
	report.Channels = dedupedChannels(report.RequiredLogs)
	report.Configuration = configurationInstructions(report.RequiredLogs)
	for _, r := range report.RequiredLogs {
		if len(r.Alternatives) > 0 {
			report.HasAlternatives = true
			break
		}
	}
	return report
}

func idList(ids []EventID) string {
	s := ""
	for i, e := range ids {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", e.ID)
	}
	return s
}

func dedupedEventIDs(logs []RequiredLogSource) []int {
	seen := make(map[int]bool)
	var out []int
	for _, l := range logs {
		for _, e := range l.EventIDs {
			if !seen[e.ID] {
				seen[e.ID] = true
				out = append(out, e.ID)
			}
		}
		for _, alt := range l.Alternatives {
			for _, e := range alt.EventIDs {
				if !seen[e.ID] {
					seen[e.ID] = true
					out = append(out, e.ID)
				}
			}
		}
	}
	sort.Ints(out)
	return out
}

func dedupedChannels(logs []RequiredLogSource) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range logs {
		if l.WindowsChannel != "" && !seen[l.WindowsChannel] {
			seen[l.WindowsChannel] = true
			out = append(out, l.WindowsChannel)
		}
		for _, alt := range l.Alternatives {
			if alt.WindowsChannel != "" && !seen[alt.WindowsChannel] {
				seen[alt.WindowsChannel] = true
				out = append(out, alt.WindowsChannel)
			}
		}
	}
	sort.Strings(out)
	return out
}

func configurationInstructions(logs []RequiredLogSource) []string {
	var out []string
	for _, l := range logs {
		out = append(out, l.SetupInstructions...)
		for _, alt := range l.Alternatives {
			out = append(out, alt.SetupInstructions...)
		}
	}
	return out
}
