package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/headertool/internal/ui/pretty"
	"github.com/yaklabco/headertool/pkg/runner"
)

// SummaryReporter prints only aggregate statistics.
type SummaryReporter struct {
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var stats runner.Stats
	if result != nil {
		stats = result.Stats
	}

	fmt.Fprint(r.bw, r.styles.FormatSummary(stats))
	return stats.FilesErrored, nil
}
