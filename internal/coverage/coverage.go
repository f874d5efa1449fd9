// Package coverage compares a rule's required telemetry against the
// currently active Sysmon and Windows-audit configuration, so a
// translation can tell the user "this will not fire until you also do X".
package coverage

// SysmonRule is one configured Sysmon rule entry.
type SysmonRule struct {
	EventID int
	Name    string
	Enabled bool
}

// SysmonConfig is a named, versioned Sysmon configuration snapshot.
type SysmonConfig struct {
	Name             string
	Version          string
	SchemaVersion    string
	EnabledEventIDs  map[int]bool
	DisabledEventIDs map[int]bool
	Rules            []SysmonRule
	IsActive         bool
}

// AuditSubcategory is one Windows audit subcategory's success/failure
// logging flags.
type AuditSubcategory struct {
	Name    string
	Success bool
	Failure bool
}

// WindowsAuditConfig is a named Windows audit policy snapshot, grouped by
// category (e.g. "Detailed Tracking" -> ["Process Creation", ...]).
type WindowsAuditConfig struct {
	Name       string
	Categories map[string][]AuditSubcategory
	IsActive   bool
}

// SysmonCoverage reports how the required event IDs compare against the
// active Sysmon config.
type SysmonCoverage struct {
	EnabledIDs  []int
	MissingIDs  []int
	Covered     bool
	SysmonFound bool
}

// AuditCoverage reports which relevant audit subcategories are enabled.
type AuditCoverage struct {
	EnabledPolicies []string
	Covered         bool
	AuditFound      bool
}

// CheckResult is C8's output.
type CheckResult struct {
	SysmonCoverage  SysmonCoverage
	AuditCoverage   AuditCoverage
	OverallCovered  bool
	Recommendations []string
}
