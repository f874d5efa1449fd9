package prereq

// sysmonCategoryTable is the static category -> event ID table from §4.6
// (logsource.product is not part of the key), generalized against the
// original converter's LOGSOURCE_MAPPING/EVENT_INFO tables: every
// `(windows, None, category)` row in that mapping becomes one entry here,
// not just the six categories spec.md worked by hand. The ps_* categories
// carry PowerShell event IDs, not Sysmon ones.
var sysmonCategoryTable = map[string][]EventID{
	"process_creation": {
		{ID: 1, Name: "Process Creation", Source: "Sysmon"},
	},
	"network_connection": {
		{ID: 3, Name: "Network Connection", Source: "Sysmon"},
	},
	"image_load": {
		{ID: 7, Name: "Image Loaded", Source: "Sysmon"},
	},
	"file_event": {
		{ID: 11, Name: "File Created", Source: "Sysmon"},
	},
	"file_creation": {
		{ID: 11, Name: "File Created", Source: "Sysmon"},
	},
	"file_delete": {
		{ID: 23, Name: "File Delete", Source: "Sysmon"},
	},
	"registry_event": {
		{ID: 12, Name: "Registry Object Added or Deleted", Source: "Sysmon"},
		{ID: 13, Name: "Registry Value Set", Source: "Sysmon"},
		{ID: 14, Name: "Registry Object Renamed", Source: "Sysmon"},
	},
	"registry_add": {
		{ID: 12, Name: "Registry Object Added or Deleted", Source: "Sysmon"},
	},
	"registry_set": {
		{ID: 13, Name: "Registry Value Set", Source: "Sysmon"},
	},
	"registry_delete": {
		{ID: 12, Name: "Registry Object Added or Deleted", Source: "Sysmon"},
	},
	"dns": {
		{ID: 22, Name: "DNS Query", Source: "Sysmon"},
	},
	"dns_query": {
		{ID: 22, Name: "DNS Query", Source: "Sysmon"},
	},
	"driver_load": {
		{ID: 6, Name: "Driver Loaded", Source: "Sysmon"},
	},
	"pipe_created": {
		{ID: 17, Name: "Pipe Created", Source: "Sysmon"},
	},
	"create_remote_thread": {
		{ID: 8, Name: "CreateRemoteThread", Source: "Sysmon"},
	},
	"process_access": {
		{ID: 10, Name: "Process Accessed", Source: "Sysmon"},
	},
	"wmi_event": {
		{ID: 19, Name: "WmiEventFilter Activity Detected", Source: "Sysmon"},
		{ID: 20, Name: "WmiEventConsumer Activity Detected", Source: "Sysmon"},
		{ID: 21, Name: "WmiEventConsumerToFilter Activity Detected", Source: "Sysmon"},
	},
	"ps_script": {
		{ID: 4104, Name: "Script Block Logging", Source: "PowerShell"},
	},
	"ps_module": {
		{ID: 4103, Name: "Module Logging", Source: "PowerShell"},
	},
	"ps_classic_start": {
		{ID: 400, Name: "Engine State Is Changed", Source: "PowerShell"},
	},
}

// categorySplunkSourcetype mirrors sysmonCategoryTable's keys with the
// Splunk sourcetype each category's Sysmon events land under once
// forwarded, per the original converter's LOGSOURCE_MAPPING. PowerShell
// categories use the PowerShell Operational channel's sourcetype instead
// of Sysmon's, since those events never come from Sysmon.
var categorySplunkSourcetype = map[string]string{
	"process_creation":     "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"network_connection":   "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"image_load":           "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"file_event":           "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"file_creation":        "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"file_delete":          "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"registry_event":       "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"registry_add":         "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"registry_set":         "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"registry_delete":      "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"dns":                  "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"dns_query":            "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"driver_load":          "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"pipe_created":         "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"create_remote_thread": "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"process_access":       "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"wmi_event":            "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
	"ps_script":            "XmlWinEventLog:Microsoft-Windows-PowerShell/Operational",
	"ps_module":            "XmlWinEventLog:Microsoft-Windows-PowerShell/Operational",
	"ps_classic_start":     "XmlWinEventLog:Windows PowerShell",
}

var categoryDescriptions = map[string]string{
	"process_creation":     "Process creation telemetry",
	"network_connection":   "Outbound/inbound network connection telemetry",
	"image_load":           "DLL/image load telemetry",
	"file_event":           "File creation telemetry",
	"file_creation":        "File creation telemetry",
	"file_delete":          "File deletion telemetry",
	"registry_event":       "Registry modification telemetry",
	"registry_add":         "Registry key/value addition telemetry",
	"registry_set":         "Registry value set telemetry",
	"registry_delete":      "Registry key/value deletion telemetry",
	"dns":                  "DNS query telemetry",
	"dns_query":            "DNS query telemetry",
	"driver_load":          "Driver load telemetry",
	"pipe_created":         "Named pipe creation telemetry",
	"create_remote_thread": "Remote thread creation telemetry",
	"process_access":       "Inter-process memory access telemetry",
	"wmi_event":            "WMI filter/consumer activity telemetry",
	"ps_script":            "PowerShell script block telemetry",
	"ps_module":            "PowerShell module logging telemetry",
	"ps_classic_start":     "Windows PowerShell engine start/stop telemetry",
}

// windowsNativeAlternatives is the non-Sysmon telemetry path for
// categories that also have one, e.g. 4688 (+ command-line logging GPO)
// as the native alternative to Sysmon event ID 1.
var windowsNativeAlternatives = map[string]AlternativeLogSource{
	"process_creation": {
		Name:           "Windows native process creation auditing",
		Description:    "Security-Auditing process creation event, the non-Sysmon alternative",
		WindowsChannel: "Security",
		EventIDs: []EventID{
			{ID: 4688, Name: "A new process has been created", Source: "Security"},
		},
		SetupInstructions: []string{
			"Enable 'Audit Process Creation' in Advanced Audit Policy Configuration",
			"Enable 'Include command line in process creation events' via GPO (Administrative Templates > System > Audit Process Creation) to get CommandLine in 4688",
		},
	},
}

// serviceAlternatives is keyed by logsource.service rather than category,
// mirroring the original converter's LOG_SOURCE_INFO["alternative_sources"]
// entries: today only AppLocker carries more than one recognized
// alternative source (native Windows Security auditing, or Sysmon process
// creation as a stand-in signal), but the shape generalizes to any
// service the table gains an entry for.
var serviceAlternatives = map[string][]AlternativeLogSource{
	"applocker": {
		{
			Name:           "Windows Security (Process Creation)",
			Description:    "4688 process creation correlated against the blocked path, the non-AppLocker approximation when AppLocker auditing isn't enabled",
			WindowsChannel: "Security",
			EventIDs: []EventID{
				{ID: 4688, Name: "A new process has been created", Source: "Security"},
			},
			SetupInstructions: []string{
				"Enable 'Audit Process Creation' in Advanced Audit Policy Configuration",
			},
		},
		{
			Name:           "Sysmon Process Creation",
			Description:    "Sysmon event 1 correlated against the blocked path, the Sysmon approximation when AppLocker auditing isn't enabled",
			WindowsChannel: "Microsoft-Windows-Sysmon/Operational",
			EventIDs: []EventID{
				{ID: 1, Name: "Process Creation", Source: "Sysmon"},
			},
			SetupInstructions: []string{
				"Install Sysmon and enable event ID 1 in the Sysmon configuration",
			},
		},
	},
}

// serviceLogSources is keyed by logsource.service, mirroring the
// original converter's LOG_SOURCE_INFO table: a service-qualified
// logsource (e.g. `product: windows, service: applocker`) names its
// channel and Splunk sourcetype directly rather than falling back to a
// Sysmon-category guess.
var serviceLogSources = map[string]RequiredLogSource{
	"applocker": {
		Name:             "AppLocker",
		Description:      "Application whitelisting allow/deny decisions",
		WindowsChannel:   "Microsoft-Windows-AppLocker/EXE and DLL",
		SplunkSourcetype: "XmlWinEventLog:Microsoft-Windows-AppLocker/EXE and DLL",
		EventIDs: []EventID{
			{ID: 8002, Name: "AppLocker policy applied successfully", Source: "AppLocker"},
			{ID: 8003, Name: "Audited: file would have been blocked", Source: "AppLocker"},
			{ID: 8004, Name: "File was blocked from running", Source: "AppLocker"},
		},
		SetupInstructions: []string{
			"Configure AppLocker rules under Application Control Policies and enable auditing or enforcement",
		},
	},
	"powershell": {
		Name:             "PowerShell Operational",
		Description:      "Script block and module logging telemetry",
		WindowsChannel:   "Microsoft-Windows-PowerShell/Operational",
		SplunkSourcetype: "XmlWinEventLog:Microsoft-Windows-PowerShell/Operational",
		EventIDs: []EventID{
			{ID: 4103, Name: "Module Logging", Source: "PowerShell"},
			{ID: 4104, Name: "Script Block Logging", Source: "PowerShell"},
		},
		SetupInstructions: []string{
			"Enable 'Turn on Module Logging' and 'Turn on PowerShell Script Block Logging' via GPO",
		},
	},
	"sysmon": {
		Name:             "Sysmon",
		Description:      "General Sysmon telemetry, not narrowed to one category",
		WindowsChannel:   "Microsoft-Windows-Sysmon/Operational",
		SplunkSourcetype: "XmlWinEventLog:Microsoft-Windows-Sysmon/Operational",
		SetupInstructions: []string{
			"Install Sysmon with a configuration covering the event IDs this rule needs",
		},
	},
	"security": {
		Name:             "Windows Security Auditing",
		Description:      "Native Windows security event log telemetry",
		WindowsChannel:   "Security",
		SplunkSourcetype: "XmlWinEventLog:Security",
		SetupInstructions: []string{
			"Enable the relevant Advanced Audit Policy Configuration subcategory",
		},
	},
}
