package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/headertool/pkg/config"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    = Format(config.FormatText)
	FormatTree    = Format(config.FormatTree)
	FormatJSON    = Format(config.FormatJSON)
	FormatYAML    = Format(config.FormatYAML)
	FormatSARIF   = Format(config.FormatSARIF)
	FormatSummary = Format(config.FormatSummary)
)

// ParseFormat parses a format string. Empty means text.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}

	f := Format(strings.ToLower(formatStr))
	if !f.IsValid() {
		names := make([]string, 0, len(config.Formats()))
		for _, known := range config.Formats() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("unknown format %q; valid formats: %s", formatStr, strings.Join(names, ", "))
	}
	return f, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	return config.OutputFormat(f).IsValid()
}
