package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/headertool/pkg/diag"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "    "

// FormatError formats a positioned diagnostic as
// "path:line:col: error: message [Code]", followed by the source line and a
// caret when showContext is set and the line is known.
func (s *Styles) FormatError(err *diag.Error, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := s.FilePath.Render(err.Path)
	if err.Line > 0 {
		location += s.Location.Render(fmt.Sprintf(":%d:%d", err.Line, err.Column))
	}

	fmt.Fprintf(&builder, "%s: %s %s %s\n",
		location,
		s.Error.Render("error:"),
		s.Message.Render(err.Message),
		s.Code.Render("["+err.Code.String()+"]"),
	)

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, err.Column))
	}

	return builder.String()
}

// FormatFileError formats an error with no source position.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s %s\n", s.FilePath.Render(path), s.Error.Render("error:"), s.Message.Render(err.Error()))
}

// FormatSourceContext formats line with a caret under the 1-based byte column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	line = strings.TrimRight(line, "\r\n")

	var builder strings.Builder
	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		builder.WriteString(contextIndent + CaretPadding(line, column) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// CaretPadding returns the whitespace that places a caret under the byte
// column of line. Tabs are kept so the caret lines up however the terminal
// expands them; other runes are replaced by spaces of their display width.
func CaretPadding(line string, column int) string {
	prefix := line
	if column-1 < len(line) {
		prefix = line[:max(column-1, 0)]
	}

	var builder strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			builder.WriteByte('\t')
			continue
		}
		builder.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, declarations int) string {
	header := s.FilePath.Render(path)
	if declarations > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d declarations)", declarations))
	}
	return header
}
