package prereq

import "fmt"

// HealthChecks renders one verification SPL fragment per required log
// source: a cheap "is this data even present" query the emitter appends
// as a comment (§4.5 step 4), so a rule that returns zero results can be
// triaged against "wrong logic" vs "source not indexed" before anything
// else.
func HealthChecks(report Report) []string {
	checks := make([]string, 0, len(report.RequiredLogs))
	for _, l := range report.RequiredLogs {
		if l.SplunkSourcetype == "" {
			continue
		}
		checks = append(checks, fmt.Sprintf(
			"health check: search sourcetype=%s earliest=-24h | stats count -- expect count > 0 for %s",
			l.SplunkSourcetype, l.Name,
		))
	}
	return checks
}
