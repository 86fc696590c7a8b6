// Package reporter renders runner results in the supported output formats.
package reporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/runner"
	"github.com/yaklabco/headertool/pkg/source"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for result. It returns the number of
	// failed files reported and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTree:
		return NewTreeReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatYAML:
		return NewYAMLReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// positioned returns the *diag.Error inside an outcome's error, if any.
func positioned(outcome runner.FileOutcome) (*diag.Error, bool) {
	var d *diag.Error
	if outcome.Error == nil || !errors.As(outcome.Error, &d) {
		return nil, false
	}
	return d, true
}

// sourceLine returns raw line n of the outcome's file, or "".
func sourceLine(outcome runner.FileOutcome, n int) string {
	if outcome.File != nil {
		return string(outcome.File.RawLineContent(n))
	}
	if outcome.Content == nil {
		return ""
	}
	return string(source.NewLines(outcome.Content).Content(n))
}
