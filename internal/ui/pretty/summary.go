package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/headertool/pkg/runner"
)

const summaryDividerWidth = 40

// plural returns "n one" or "n many".
func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 classes, 7 functions, 1 enum, 4 enum items in 2 files (1 failed, 5 parsed)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var builder strings.Builder

	if stats.Declarations() == 0 {
		builder.WriteString(s.Dim.Render("No reflected declarations"))
	} else {
		counts := []string{
			plural(stats.Classes, "class", "classes"),
			plural(stats.Functions, "function", "functions"),
			plural(stats.Enums, "enum", "enums"),
			plural(stats.EnumItems, "enum item", "enum items"),
		}
		builder.WriteString(strings.Join(counts, ", "))
		builder.WriteString(" in " + plural(stats.FilesWithDeclarations, "file", "files"))
	}

	parts := []string{plural(stats.FilesProcessed, "file", "files") + " parsed"}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	builder.WriteString(s.Dim.Render(" (") + strings.Join(parts, s.Dim.Render(", ")) + s.Dim.Render(")"))

	return builder.String() + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value int, style func(...string) string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", style(strconv.Itoa(value)))
	}

	builder.WriteString(s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files discovered", stats.FilesDiscovered, s.SummaryValue.Render)
	row("Files parsed", stats.FilesProcessed, s.SummaryValue.Render)
	if stats.FilesSkipped > 0 {
		row("Files skipped", stats.FilesSkipped, s.Warning.Render)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", stats.FilesErrored, s.Failure.Render)
	}
	builder.WriteString("\n")

	row("Classes", stats.Classes, s.SummaryValue.Render)
	row("Functions", stats.Functions, s.SummaryValue.Render)
	row("Enums", stats.Enums, s.SummaryValue.Render)
	row("Enum items", stats.EnumItems, s.SummaryValue.Render)
	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Parse failed for " + plural(stats.FilesErrored, "file", "files")))
	} else {
		builder.WriteString(s.Success.Render("All files parsed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
