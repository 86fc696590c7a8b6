package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/headertool/internal/ui/pretty"
	"github.com/yaklabco/headertool/pkg/reflection"
	"github.com/yaklabco/headertool/pkg/runner"
)

// TextReporter writes errors with source context, optionally followed by
// each file's reflected declarations and a summary line.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No header files found."))
		}
		return 0, nil
	}

	var failed int
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			writeError(r.bw, r.styles, outcome, r.opts.ShowContext)
			failed++
			continue
		}

		if r.opts.ShowDeclarations && outcome.Module != nil && outcome.Module.Len() > 0 {
			r.writeModule(outcome.DisplayPath, outcome.Module)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}

// writeError renders one failed outcome. Shared by the text and tree formats.
func writeError(bw *bufio.Writer, styles *pretty.Styles, outcome runner.FileOutcome, showContext bool) {
	if d, ok := positioned(outcome); ok && d.Resolved() {
		fmt.Fprint(bw, styles.FormatError(d, showContext, sourceLine(outcome, d.Line)))
		return
	}
	fmt.Fprint(bw, styles.FormatFileError(outcome.DisplayPath, outcome.Error))
}

func (r *TextReporter) writeModule(path string, mod *reflection.Module) {
	s := r.styles
	fmt.Fprintln(r.bw, s.FormatFileHeader(path, mod.Len()))

	for _, c := range mod.Classes {
		line := fmt.Sprintf("  %s %s", s.Kind.Render("class"), s.Name.Render(c.Name))
		if c.APIMacro != "" {
			line += " " + s.Dim.Render(c.APIMacro)
		}
		fmt.Fprintln(r.bw, line+r.specifiers(c.Specifiers)+r.location(c.Location))

		for _, fn := range c.Functions {
			var qualifiers []string
			if fn.Static {
				qualifiers = append(qualifiers, "static")
			}
			if fn.ConstExpr {
				qualifiers = append(qualifiers, "constexpr")
			}
			if fn.Virtual {
				qualifiers = append(qualifiers, "virtual")
			}
			kind := "function"
			if len(qualifiers) > 0 {
				kind = strings.Join(qualifiers, " ") + " " + kind
			}
			fmt.Fprintf(r.bw, "    %s %s(%s)%s%s\n",
				s.Kind.Render(kind),
				s.Name.Render(fn.QualifiedName),
				strings.Join(fn.Parameters, ", "),
				r.specifiers(fn.Specifiers),
				r.location(fn.Location),
			)
		}
	}

	for _, e := range mod.Enums {
		fmt.Fprintf(r.bw, "  %s %s%s%s\n",
			s.Kind.Render("enum"), s.Name.Render(e.Name), r.specifiers(e.Specifiers), r.location(e.Location))
		for _, item := range e.Items {
			fmt.Fprintf(r.bw, "    %s%s%s\n",
				s.Name.Render(item.QualifiedName), r.specifiers(item.Specifiers), r.location(item.Location))
		}
	}

	fmt.Fprintln(r.bw)
}

func (r *TextReporter) specifiers(specs []reflection.Specifier) string {
	if len(specs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(specs))
	for _, spec := range specs {
		parts = append(parts, formatSpecifier(spec))
	}
	return " " + r.styles.Specifier.Render("("+strings.Join(parts, ", ")+")")
}

func (r *TextReporter) location(loc reflection.Location) string {
	return " " + r.styles.Location.Render(fmt.Sprintf("%d:%d", loc.Line, loc.Column))
}

// formatSpecifier renders "Name" or "Name=value", quoting strings.
func formatSpecifier(spec reflection.Specifier) string {
	switch v := spec.Value.(type) {
	case nil:
		return spec.Name
	case string:
		return fmt.Sprintf("%s=%q", spec.Name, v)
	default:
		return fmt.Sprintf("%s=%v", spec.Name, v)
	}
}
