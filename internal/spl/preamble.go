package spl

import (
	"fmt"
	"strings"

	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
)

// Overrides are caller-supplied emission overrides; zero values mean "use
// the profile/logsource-derived default".
type Overrides struct {
	Index      string
	Sourcetype string
	TimeRange  string // e.g. "24h" -> earliest=-24h
}

type indexSourcetype struct {
	index      string
	sourcetype string
}

// serviceDefaults keys on (product, service) the way the original
// converter's LOGSOURCE_MAPPING does for its (product, service, None)
// rows: a rule that names its Windows channel explicitly (`service:
// sysmon`, `service: security`, ...) gets that channel's real Splunk
// sourcetype instead of the generic "WinEventLog:*" wildcard.
var serviceDefaults = map[string]map[string]indexSourcetype{
	"windows": {
		"sysmon":             {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"security":           {"windows", "XmlWinEventLog:Security"},
		"system":             {"windows", "XmlWinEventLog:System"},
		"powershell":         {"windows", "XmlWinEventLog:Microsoft-Windows-PowerShell/Operational"},
		"powershell-classic": {"windows", "XmlWinEventLog:Windows PowerShell"},
		"windefend":          {"windows", "XmlWinEventLog:Microsoft-Windows-Windows Defender/Operational"},
		"firewall-as":        {"windows", "XmlWinEventLog:Microsoft-Windows-Windows Firewall With Advanced Security/Firewall"},
		"bits-client":        {"windows", "XmlWinEventLog:Microsoft-Windows-Bits-Client/Operational"},
		"taskscheduler":      {"windows", "XmlWinEventLog:Microsoft-Windows-TaskScheduler/Operational"},
		"wmi":                {"windows", "XmlWinEventLog:Microsoft-Windows-WMI-Activity/Operational"},
		"dns-server":         {"windows", "XmlWinEventLog:DNS Server"},
		"applocker":          {"windows", "XmlWinEventLog:Microsoft-Windows-AppLocker/EXE and DLL"},
	},
	"linux": {
		"syslog": {"linux", "syslog"},
		"audit":  {"linux", "linux:audit"},
	},
}

// categoryDefaults keys on (product, category) the way the original
// converter's LOGSOURCE_MAPPING does for its (product, None, category)
// rows. process_creation is intentionally absent from the windows rows: it keeps the
// flat wineventlog/WinEventLog:* fallback that spec.md's own pinned
// scenario (§8 S1) expects, rather than the narrower Sysmon-only
// sourcetype the original resolves it to — every other category gets
// the original's real sourcetype.
var categoryDefaults = map[string]map[string]indexSourcetype{
	"windows": {
		"file_event":           {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"file_creation":        {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"file_delete":          {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"network_connection":   {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"registry_event":       {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"registry_set":         {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"registry_add":         {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"registry_delete":      {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"dns_query":            {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"image_load":           {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"driver_load":          {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"pipe_created":         {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"wmi_event":            {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"create_remote_thread": {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"process_access":       {"windows", "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational"},
		"ps_script":            {"windows", "XmlWinEventLog:Microsoft-Windows-PowerShell/Operational"},
		"ps_module":            {"windows", "XmlWinEventLog:Microsoft-Windows-PowerShell/Operational"},
		"ps_classic_start":     {"windows", "XmlWinEventLog:Windows PowerShell"},
	},
	"linux": {
		"process_creation":   {"linux", "linux:audit"},
		"file_event":         {"linux", "linux:audit"},
		"network_connection": {"linux", "linux:audit"},
	},
}

// logsourceDefaultIndex/Sourcetype are the built-in fallbacks used when
// neither a profile default nor an override is present. Resolution
// precedence is service (most specific, since a named Windows channel
// pins the sourcetype unambiguously) over category over the generic
// per-product fallback.
func logsourceDefaultIndex(ls sigmarule.LogSource) string {
	if v, ok := lookupIndexSourcetype(ls); ok {
		return v.index
	}
	if ls.Product == "windows" {
		return "wineventlog"
	}
	return ""
}

func logsourceDefaultSourcetype(ls sigmarule.LogSource) string {
	if v, ok := lookupIndexSourcetype(ls); ok {
		return v.sourcetype
	}
	if ls.Product == "windows" {
		return "WinEventLog:*"
	}
	return ""
}

func lookupIndexSourcetype(ls sigmarule.LogSource) (indexSourcetype, bool) {
	product := strings.ToLower(ls.Product)
	if ls.Service != "" {
		if byService, ok := serviceDefaults[product]; ok {
			if v, ok := byService[strings.ToLower(ls.Service)]; ok {
				return v, true
			}
		}
	}
	if ls.Category != "" {
		if byCategory, ok := categoryDefaults[product]; ok {
			if v, ok := byCategory[ls.Category]; ok {
				return v, true
			}
		}
	}
	return indexSourcetype{}, false
}

// preamble builds the "search index=... sourcetype=... [earliest=...]"
// line. Precedence: override > profile default > logsource-derived
// default > omitted entirely.
func preamble(p profile.Profile, ls sigmarule.LogSource, ov Overrides) string {
	index := ov.Index
	if index == "" {
		index = p.DefaultIndex
	}
	if index == "" {
		index = logsourceDefaultIndex(ls)
	}

	sourcetype := ov.Sourcetype
	if sourcetype == "" {
		sourcetype = p.DefaultSourcetype
	}
	if sourcetype == "" {
		sourcetype = logsourceDefaultSourcetype(ls)
	}

	s := "search"
	if index != "" {
		s += fmt.Sprintf(" index=%s", index)
	}
	if sourcetype != "" {
		s += fmt.Sprintf(" sourcetype=%s", sourcetype)
	}
	if ov.TimeRange != "" {
		s += fmt.Sprintf(" earliest=-%s", ov.TimeRange)
	}
	return s
}
