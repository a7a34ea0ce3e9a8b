package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldFlavor  = "flavor"
	FieldWrite   = "write"
	FieldCheck   = "check"
	FieldJobs    = "jobs"
	FieldTabSize = "tab_size"

	// Formatting fields.
	FieldPass    = "pass"
	FieldEdits   = "edits"
	FieldLines   = "lines"
	FieldSkipped = "skipped"
	FieldNodes   = "nodes"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
