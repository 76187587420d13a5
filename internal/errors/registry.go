package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryRender,
		Message:  "Markdown render failed",
		Detail:   "The markdown pipeline rejected the input. This usually indicates an I/O problem rather than bad markdown; markdown itself has no invalid documents.",
		DocURL:   "https://vmark.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Tree transform failed",
		Detail:   "One of the configured transforms returned an error. The chain stops at the first failure; transforms later in the list did not run.",
		DocURL:   "https://vmark.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryRender,
		Message:  "Fragment parse failed",
		Detail:   "The intermediate HTML could not be parsed back into a tree. This happens when a transform emits markup the parser cannot recover.",
		DocURL:   "https://vmark.dev/docs/errors/E003",
	},

	// ============================================
	// Config Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid vmark.json",
		Detail:   "The configuration file exists but could not be parsed as JSON.",
		DocURL:   "https://vmark.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid wrapper tag",
		Detail:   "The wrapper must be a plain element name like div, article or section.",
		DocURL:   "https://vmark.dev/docs/errors/E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid ignore pattern",
		Detail:   "Ignore patterns use doublestar glob syntax, e.g. \"**/node_modules/**\".",
		DocURL:   "https://vmark.dev/docs/errors/E103",
	},

	// ============================================
	// Server Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryServer,
		Message:  "Preview server failed to start",
		Detail:   "The listen address is likely in use or not permitted.",
		DocURL:   "https://vmark.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryServer,
		Message:  "Watch path does not exist",
		Detail:   "The preview server watches a directory of markdown files; the given path is missing or not a directory.",
		DocURL:   "https://vmark.dev/docs/errors/E202",
	},

	// ============================================
	// Publish Errors (E301-E399)
	// ============================================

	"E301": {
		Category: CategoryPublish,
		Message:  "Export destination not writable",
		Detail:   "The output directory could not be created or written to.",
		DocURL:   "https://vmark.dev/docs/errors/E301",
	},
	"E302": {
		Category: CategoryPublish,
		Message:  "S3 upload failed",
		Detail:   "The object store rejected the upload. Check the bucket name, region and credentials.",
		DocURL:   "https://vmark.dev/docs/errors/E302",
	},
	"E303": {
		Category: CategoryPublish,
		Message:  "Nothing to publish",
		Detail:   "No files matched the include patterns after applying excludes.",
		DocURL:   "https://vmark.dev/docs/errors/E303",
	},

	// ============================================
	// CLI Errors (E401-E499)
	// ============================================

	"E401": {
		Category: CategoryCLI,
		Message:  "Input file not found",
		DocURL:   "https://vmark.dev/docs/errors/E401",
	},
	"E402": {
		Category: CategoryCLI,
		Message:  "Conflicting flags",
		Detail:   "The given flag combination is contradictory, e.g. --lite together with a goldmark-only option.",
		DocURL:   "https://vmark.dev/docs/errors/E402",
	},
}
