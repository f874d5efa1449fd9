package resolver

import "github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"

// builtinWindowsDefaults is the last-resort table for common Windows
// process-creation fields (§4.3 step 3), used when the profile has no
// explicit mapping and either CIM is disabled or the field isn't in the
// CIM table. Field names here double as the raw Sysmon/WinEventLog key,
// which is the correct fallback: in the common case Splunk indexes
// WinEventLog data with the original Windows field names intact. EventID
// is the one exception: Splunk's WinEventLog TA renders it as EventCode.
var builtinWindowsDefaults = map[string]string{
	"Image":        "Image",
	"CommandLine":  "CommandLine",
	"ParentImage":  "ParentImage",
	"User":         "User",
	"ComputerName": "ComputerName",
	"EventID":      "EventCode",
}

func lookupBuiltin(ls sigmarule.LogSource, sigmaField string) (string, bool) {
	if ls.Product != "windows" && ls.Product != "" {
		return "", false
	}
	target, ok := builtinWindowsDefaults[sigmaField]
	return target, ok
}
