package validation

// CriticalCheck names used by the validation agent and the synthesized
// failure report.
const (
	CheckResponseNotEmpty = "response_not_empty"
	CheckDebugSavedInDB   = "debug_saved_in_db"
)

// PresetInfo is the preset snapshot embedded in a report.
type PresetInfo struct {
	Name string `json:"name"`
}

// Report is the structured result of a validation run. SyncError is only set
// on the synthesized path, when the agent itself failed.
type Report struct {
	AllCriticalOK  bool            `json:"all_critical_ok"`
	Analysis       string          `json:"analysis"`
	CriticalChecks map[string]bool `json:"critical_checks"`
	ConfigChecks   map[string]bool `json:"config_checks"`
	ConfigErrors   []string        `json:"config_errors"`
	ConfigOK       bool            `json:"config_ok"`
	PresetInfo     PresetInfo      `json:"preset_info"`
	SyncError      string          `json:"sync_error,omitempty"`
}

// FailureReport synthesizes a terminal report for an agent that failed
// outright, so a crashing validation step still produces an inspectable
// result instead of a slot stuck in pending.
func FailureReport(presetName string, err error) *Report {
	return &Report{
		AllCriticalOK: false,
		Analysis:      "validation run interrupted by a critical error: " + err.Error(),
		CriticalChecks: map[string]bool{
			CheckResponseNotEmpty: false,
			CheckDebugSavedInDB:   false,
		},
		ConfigChecks: map[string]bool{},
		ConfigErrors: []string{},
		ConfigOK:     false,
		PresetInfo:   PresetInfo{Name: presetName},
		SyncError:    err.Error(),
	}
}
