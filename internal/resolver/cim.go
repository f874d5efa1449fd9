package resolver

// cimTable maps (logsource category, sigma field) to a Splunk CIM field
// name. Keyed by category because CIM's process/network/filesystem data
// models give the same Sigma field different target semantics depending on
// what kind of event it appears in.
var cimTable = map[string]map[string]string{
	"process_creation": {
		"Image":       "process_name",
		"CommandLine": "process",
		"ParentImage": "parent_process_name",
		"User":        "user",
		"ProcessId":   "process_id",
		"ParentProcessId": "parent_process_id",
	},
	"network_connection": {
		"Image":             "process_name",
		"DestinationIp":     "dest_ip",
		"DestinationPort":   "dest_port",
		"SourceIp":          "src_ip",
		"SourcePort":        "src_port",
		"DestinationHostname": "dest_dns",
	},
	"file_event": {
		"Image":    "process_name",
		"TargetFilename": "file_path",
		"User":     "user",
	},
	"registry_event": {
		"Image":        "process_name",
		"TargetObject": "registry_key_name",
		"Details":      "registry_value_data",
	},
	"dns": {
		"QueryName": "query",
		"QueryResults": "answer",
		"Image":     "process_name",
	},
	"image_load": {
		"Image":    "process_name",
		"ImageLoaded": "file_path",
	},
}

func lookupCIM(category, sigmaField string) (string, bool) {
	fields, ok := cimTable[category]
	if !ok {
		return "", false
	}
	target, ok := fields[sigmaField]
	return target, ok
}

// CIMFieldNames returns every Sigma field name the built-in CIM table
// recognizes, across all categories, deduplicated. The gap analyzer uses
// this as part of its "did you mean" candidate pool.
func CIMFieldNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, fields := range cimTable {
		for name := range fields {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
