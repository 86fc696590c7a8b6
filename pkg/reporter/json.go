package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/headertool/pkg/reflection"
	"github.com/yaklabco/headertool/pkg/runner"
)

// documentVersion is the schema version of JSON and YAML output.
const documentVersion = "1.0.0"

// Document is the JSON and YAML output: reflection data and errors per file.
type Document struct {
	Version     string         `json:"version"     yaml:"version"`
	ToolVersion string         `json:"toolVersion" yaml:"toolVersion"`
	Files       []FileDocument `json:"files"       yaml:"files"`
	Summary     Summary        `json:"summary"     yaml:"summary"`
}

// FileDocument is one file's outcome.
type FileDocument struct {
	Path       string             `json:"path"                 yaml:"path"`
	Skipped    bool               `json:"skipped,omitempty"    yaml:"skipped,omitempty"`
	SkipReason string             `json:"skipReason,omitempty" yaml:"skipReason,omitempty"`
	Error      *ErrorDocument     `json:"error,omitempty"      yaml:"error,omitempty"`
	Classes    []reflection.Class `json:"classes,omitempty"    yaml:"classes,omitempty"`
	Enums      []reflection.Enum  `json:"enums,omitempty"      yaml:"enums,omitempty"`
}

// ErrorDocument describes a failed file. Code, Line and Column are set for
// parse errors only.
type ErrorDocument struct {
	Code    string `json:"code,omitempty"   yaml:"code,omitempty"`
	Message string `json:"message"          yaml:"message"`
	Line    int    `json:"line,omitempty"   yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// Summary holds the run statistics.
type Summary struct {
	FilesDiscovered       int `json:"filesDiscovered"       yaml:"filesDiscovered"`
	FilesProcessed        int `json:"filesProcessed"        yaml:"filesProcessed"`
	FilesSkipped          int `json:"filesSkipped"          yaml:"filesSkipped"`
	FilesErrored          int `json:"filesErrored"          yaml:"filesErrored"`
	FilesWithDeclarations int `json:"filesWithDeclarations" yaml:"filesWithDeclarations"`
	Classes               int `json:"classes"               yaml:"classes"`
	Functions             int `json:"functions"             yaml:"functions"`
	Enums                 int `json:"enums"                 yaml:"enums"`
	EnumItems             int `json:"enumItems"             yaml:"enumItems"`
}

// BuildDocument converts a run result into the JSON/YAML document.
func BuildDocument(result *runner.Result, toolVersion string) *Document {
	doc := &Document{
		Version:     documentVersion,
		ToolVersion: toolVersion,
		Files:       make([]FileDocument, 0),
	}
	if result == nil {
		return doc
	}

	stats := result.Stats
	doc.Summary = Summary{
		FilesDiscovered:       stats.FilesDiscovered,
		FilesProcessed:        stats.FilesProcessed,
		FilesSkipped:          stats.FilesSkipped,
		FilesErrored:          stats.FilesErrored,
		FilesWithDeclarations: stats.FilesWithDeclarations,
		Classes:               stats.Classes,
		Functions:             stats.Functions,
		Enums:                 stats.Enums,
		EnumItems:             stats.EnumItems,
	}

	for _, outcome := range result.Files {
		file := FileDocument{
			Path:       outcome.DisplayPath,
			Skipped:    outcome.Skipped,
			SkipReason: outcome.SkipReason,
		}

		if outcome.Error != nil {
			file.Error = &ErrorDocument{Message: outcome.Error.Error()}
			if d, ok := positioned(outcome); ok {
				file.Error = &ErrorDocument{
					Code:    d.Code.String(),
					Message: d.Message,
					Line:    d.Line,
					Column:  d.Column,
				}
			}
		}

		if outcome.Module != nil {
			file.Classes = outcome.Module.Classes
			file.Enums = outcome.Module.Enums
		}

		doc.Files = append(doc.Files, file)
	}

	return doc
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	doc := BuildDocument(result, r.opts.ToolVersion)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return doc.Summary.FilesErrored, nil
}
