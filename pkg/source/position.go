// Package source defines positions in a C++ source file and the map that
// translates them between the raw file text and the preprocessed text.
//
// Preprocessing only removes text (comments, line splices), so every
// processed offset has a raw origin. The two coordinate spaces are kept
// apart by the Space tag on Position; nothing converts between them
// implicitly.
package source

import "fmt"

// Space identifies the coordinate space an offset belongs to.
type Space uint8

const (
	// SpaceProcessed is an offset into the preprocessed text.
	SpaceProcessed Space = iota

	// SpaceRaw is an offset into the raw file text.
	SpaceRaw
)

// String returns the name of the space.
func (s Space) String() string {
	switch s {
	case SpaceProcessed:
		return "processed"
	case SpaceRaw:
		return "raw"
	default:
		return fmt.Sprintf("Space(%d)", uint8(s))
	}
}

// Position is a byte offset tagged with its coordinate space.
type Position struct {
	Space  Space
	Offset int
}

// Raw returns a position in the raw file text.
func Raw(offset int) Position {
	return Position{Space: SpaceRaw, Offset: offset}
}

// Processed returns a position in the preprocessed text.
func Processed(offset int) Position {
	return Position{Space: SpaceProcessed, Offset: offset}
}

// IsRaw reports whether the position is in the raw coordinate space.
func (p Position) IsRaw() bool {
	return p.Space == SpaceRaw
}

// String renders the position for debugging, e.g. "processed@42".
func (p Position) String() string {
	return fmt.Sprintf("%s@%d", p.Space, p.Offset)
}

// LineColumn is a 1-based line and column in the raw file.
// Columns count bytes, not runes.
type LineColumn struct {
	Line   int
	Column int
}

// IsValid returns true if both line and column are positive.
func (lc LineColumn) IsValid() bool {
	return lc.Line > 0 && lc.Column > 0
}

// String renders "line:column".
func (lc LineColumn) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Column)
}
