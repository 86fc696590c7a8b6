package logging

// Structured field names.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldFormat     = "format"
	FieldConfig     = "config"
	FieldSource     = "source"
	FieldWorkingDir = "working_dir"
	FieldJobs       = "jobs"
	FieldReason     = "reason"
	FieldSize       = "size"
	FieldLanguage   = "language"

	// Diagnostics.
	FieldCode   = "code"
	FieldLine   = "line"
	FieldColumn = "column"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"
	FieldFilesSkipped    = "files_skipped"
	FieldDeclarations    = "declarations"
	FieldTokens          = "tokens"

	// Build information.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
