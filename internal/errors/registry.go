package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category    Category
	Message     string
	Explanation string
	DocURL      string
}

const docBase = "https://dot.vango.dev/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E009)
	// ============================================

	"E001": {
		Category:    CategoryRuntime,
		Message:     "Invalid mount container",
		Explanation: "Mount needs a container element that is attached to a document. The container was nil or detached.",
		DocURL:      docBase + "E001",
	},

	// ============================================
	// Storage Errors (E002-E004, E030-E039)
	// ============================================

	"E002": {
		Category:    CategoryStorage,
		Message:     "Persistence unavailable",
		Explanation: "A persist key was configured but no storage backend is available. The store keeps working in memory only.",
		DocURL:      docBase + "E002",
	},
	"E003": {
		Category:    CategoryStorage,
		Message:     "Snapshot could not be decoded",
		Explanation: "The persisted snapshot is not valid for this store. The initial state is used instead.",
		DocURL:      docBase + "E003",
	},
	"E004": {
		Category:    CategoryStorage,
		Message:     "Snapshot could not be written",
		Explanation: "The state was committed in memory but writing it to the storage backend failed.",
		DocURL:      docBase + "E004",
	},
	"E030": {
		Category:    CategoryStorage,
		Message:     "Unknown storage backend",
		Explanation: "The storage backend must be one of memory, bolt, sql or s3.",
		DocURL:      docBase + "E030",
	},
	"E031": {
		Category:    CategoryStorage,
		Message:     "Storage backend closed",
		Explanation: "The backend was used after Close.",
		DocURL:      docBase + "E031",
	},

	// ============================================
	// Routing Errors (E010-E019)
	// ============================================

	"E010": {
		Category:    CategoryRouting,
		Message:     "Invalid route pattern",
		Explanation: "A pattern is \"*\" or a sequence of /-separated literal and :name segments.",
		DocURL:      docBase + "E010",
	},
	"E011": {
		Category:    CategoryRouting,
		Message:     "Duplicate route parameter",
		Explanation: "A parameter name appears more than once in the same pattern; only one value could be captured.",
		DocURL:      docBase + "E011",
	},
	"E012": {
		Category:    CategoryRouting,
		Message:     "Route parameter could not be decoded",
		Explanation: "A captured parameter could not be converted to the field type it was decoded into.",
		DocURL:      docBase + "E012",
	},

	// ============================================
	// Config Errors (E020-E029)
	// ============================================

	"E020": {
		Category:    CategoryConfig,
		Message:     "Config file not found",
		Explanation: "No dot.json, dot.yaml or dot.yml was found in the current directory or any parent.",
		DocURL:      docBase + "E020",
	},
	"E021": {
		Category:    CategoryConfig,
		Message:     "Config file could not be parsed",
		Explanation: "The config file is not valid JSON or YAML, or an environment override has the wrong type.",
		DocURL:      docBase + "E021",
	},
	"E022": {
		Category:    CategoryConfig,
		Message:     "Invalid configuration",
		Explanation: "A configuration value is out of range or inconsistent with another value.",
		DocURL:      docBase + "E022",
	},

	// ============================================
	// CLI Errors (E050-E059)
	// ============================================

	"E050": {
		Category:    CategoryCLI,
		Message:     "Invalid command arguments",
		Explanation: "The command was called with missing or malformed arguments.",
		DocURL:      docBase + "E050",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
