package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/headertool/internal/ui/pretty"
	"github.com/yaklabco/headertool/pkg/cppast"
	"github.com/yaklabco/headertool/pkg/runner"
)

// TreeReporter prints the syntax tree of every parsed file.
type TreeReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	return &TreeReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var failed int
	for _, outcome := range result.Files {
		if err := ctx.Err(); err != nil {
			return failed, fmt.Errorf("report cancelled: %w", err)
		}

		switch {
		case outcome.Error != nil:
			writeError(r.bw, r.styles, outcome, r.opts.ShowContext)
			failed++
		case outcome.File != nil && outcome.File.Tree != nil:
			fmt.Fprintln(r.bw, r.styles.FilePath.Render(outcome.DisplayPath))
			if err := outcome.File.Tree.Dump(r.bw, cppast.RootID); err != nil {
				return failed, err
			}
			fmt.Fprintln(r.bw)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}
