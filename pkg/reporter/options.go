package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output: "auto" (default), "always" or "never".
	Color string

	// ShowContext prints the source line and a caret under each error.
	ShowContext bool

	// ShowSummary ends text and tree output with the one-line statistics.
	ShowSummary bool

	// ShowDeclarations lists reflected declarations per file in text output.
	ShowDeclarations bool

	// Compact uses minified JSON and SARIF.
	Compact bool

	// ToolVersion is recorded in JSON and SARIF output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:           os.Stdout,
		Format:           FormatText,
		Color:            "auto",
		ShowContext:      true,
		ShowSummary:      true,
		ShowDeclarations: true,
		ToolVersion:      "dev",
	}
}
