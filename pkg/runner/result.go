package runner

import (
	"github.com/yaklabco/headertool/pkg/cppast"
	"github.com/yaklabco/headertool/pkg/reflection"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// DisplayPath is Path relative to the working directory when possible.
	// Diagnostics use it.
	DisplayPath string

	// Content is the raw file content. Nil when the file was not read.
	Content []byte

	// Language is the detected source language, or "" if unknown or the
	// file was not read.
	Language string

	// File is the parsed header. Nil on error or skip.
	File *cppast.File

	// Module is the reflection data built from File.
	Module *reflection.Module

	// Skipped is true when the file was deliberately not parsed.
	Skipped bool

	// SkipReason explains a skip.
	SkipReason string

	// Error is set when the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int

	// FilesWithDeclarations counts files with at least one class or enum.
	FilesWithDeclarations int

	Classes   int
	Functions int
	Enums     int
	EnumItems int
}

// Declarations returns the total number of reflected declarations.
func (s Stats) Declarations() int {
	return s.Classes + s.Functions + s.Enums + s.EnumItems
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to read or parse.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasDeclarations reports whether any reflected declaration was found.
func (r *Result) HasDeclarations() bool {
	if r == nil {
		return false
	}
	return r.Stats.Declarations() > 0
}

// Failed returns the outcomes that carry an error.
func (r *Result) Failed() []FileOutcome {
	if r == nil {
		return nil
	}

	var failed []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			failed = append(failed, outcome)
		}
	}
	return failed
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesProcessed++

	mod := outcome.Module
	if mod == nil {
		return
	}

	r.Stats.Classes += len(mod.Classes)
	r.Stats.Enums += len(mod.Enums)
	for _, c := range mod.Classes {
		r.Stats.Functions += len(c.Functions)
	}
	for _, e := range mod.Enums {
		r.Stats.EnumItems += len(e.Items)
	}
	if len(mod.Classes)+len(mod.Enums) > 0 {
		r.Stats.FilesWithDeclarations++
	}
}
