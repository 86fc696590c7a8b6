// Package diag provides the single error type raised by the header pipeline.
//
// Errors are created at the point of detection with a position in either the
// raw or the processed coordinate space. Callers holding the file's position
// map resolve them to a path, line and column before display.
package diag

import (
	"errors"
	"fmt"

	"github.com/yaklabco/headertool/pkg/source"
)

// Code classifies a diagnostic.
type Code uint8

// Diagnostic codes.
const (
	Unknown Code = iota

	// Preprocessing and lexing.
	UnterminatedComment
	UnterminatedLiteral
	InvalidEscapeSequence
	UnexpectedCharacter
	InvalidDigitForBase
	InvalidFloatingConstantPrefix
	HexFloatRequiresExponent
	ExponentHasNoDigits

	// Parsing.
	ExpectedFunctionName
	ExpectedLiteral
	MissingExpectedToken
	UnbalancedDelimiters
	MalformedHeaderMacro
)

//nolint:gochecknoglobals // read-only lookup table
var codeNames = map[Code]string{
	Unknown:                       "Unknown",
	UnterminatedComment:           "UnterminatedComment",
	UnterminatedLiteral:           "UnterminatedLiteral",
	InvalidEscapeSequence:         "InvalidEscapeSequence",
	UnexpectedCharacter:           "UnexpectedCharacter",
	InvalidDigitForBase:           "InvalidDigitForBase",
	InvalidFloatingConstantPrefix: "InvalidFloatingConstantPrefix",
	HexFloatRequiresExponent:      "HexFloatRequiresExponent",
	ExponentHasNoDigits:           "ExponentHasNoDigits",
	ExpectedFunctionName:          "ExpectedFunctionName",
	ExpectedLiteral:               "ExpectedLiteral",
	MissingExpectedToken:          "MissingExpectedToken",
	UnbalancedDelimiters:          "UnbalancedDelimiters",
	MalformedHeaderMacro:          "MalformedHeaderMacro",
}

// String returns the code name, e.g. "UnterminatedComment".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

// Error is a positioned diagnostic.
type Error struct {
	// Code classifies the failure.
	Code Code

	// Pos is where the failure was detected.
	Pos source.Position

	// Message is the human-readable description.
	Message string

	// Path is the file path. Empty until resolved.
	Path string

	// Line and Column are 1-based raw coordinates. Zero until resolved.
	Line   int
	Column int
}

// New creates an unresolved diagnostic.
func New(code Code, pos source.Position, message string) *Error {
	return &Error{Code: code, Pos: pos, Message: message}
}

// Newf creates an unresolved diagnostic with a formatted message.
func Newf(code Code, pos source.Position, format string, args ...any) *Error {
	return New(code, pos, fmt.Sprintf(format, args...))
}

// Error renders "path:line:column: message" once resolved.
func (e *Error) Error() string {
	if !e.Resolved() {
		return fmt.Sprintf("offset %d: %s", e.Pos.Offset, e.Message)
	}

	if e.Path == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}

	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

// Resolved reports whether line and column have been filled in.
func (e *Error) Resolved() bool {
	return e.Line > 0
}

// Resolve fills in path, line and column through the position map.
// It returns e for chaining.
func (e *Error) Resolve(path string, pm *source.PositionMap) *Error {
	e.Path = path
	if pm == nil {
		return e
	}

	lc := pm.LineAndColumn(e.Pos)
	e.Line = lc.Line
	e.Column = lc.Column
	return e
}

// Is matches another *Error by code, so errors.Is(err, &diag.Error{Code: c})
// tests for a code.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or Unknown.
func CodeOf(err error) Code {
	var d *Error
	if errors.As(err, &d) {
		return d.Code
	}
	return Unknown
}

// Resolve resolves err in place if it is a *Error and returns it unchanged
// otherwise.
func Resolve(err error, path string, pm *source.PositionMap) error {
	var d *Error
	if errors.As(err, &d) {
		d.Resolve(path, pm)
	}
	return err
}
