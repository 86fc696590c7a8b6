package cppast

import (
	"sync"

	"github.com/yaklabco/headertool/pkg/source"
	"github.com/yaklabco/headertool/pkg/token"
)

// File is a parsed header: its texts, tokens and syntax tree.
// A File is not modified after the parser returns it.
type File struct {
	// Path is the file path used in diagnostics. May be empty.
	Path string

	// RawContent is the file as read.
	RawContent []byte

	// Content is the preprocessed text the tokens index into.
	Content []byte

	// PositionMap translates offsets to raw line/column.
	PositionMap *source.PositionMap

	// Tokens is the token stream, terminated by an EndOfFile token.
	Tokens []token.Token

	// HeaderMacroIndices lists the indices of HeaderMacro tokens.
	HeaderMacroIndices []int

	// Tree is the syntax tree.
	Tree *Tree

	linesOnce sync.Once
	lines     *source.Lines
}

// LineAndColumn resolves pos to a raw 1-based line and column.
func (f *File) LineAndColumn(pos source.Position) source.LineColumn {
	if f.PositionMap == nil {
		return source.LineColumn{}
	}
	return f.PositionMap.LineAndColumn(pos)
}

// TokenPosition returns the raw line and column of token i.
func (f *File) TokenPosition(i int) source.LineColumn {
	if i < 0 || i >= len(f.Tokens) {
		return source.LineColumn{}
	}
	return f.LineAndColumn(source.Processed(f.Tokens[i].Start()))
}

// TokenText returns the text of token i.
func (f *File) TokenText(i int) string {
	if i < 0 || i >= len(f.Tokens) {
		return ""
	}
	return f.Tokens[i].Text(f.Content)
}

// NodePosition returns the raw position of a node's first token.
func (f *File) NodePosition(id NodeID) source.LineColumn {
	n := f.Tree.Node(id)
	if n == nil || !n.HasTokenRange() {
		return source.LineColumn{}
	}
	return f.TokenPosition(n.FirstToken)
}

// RawLineContent returns the raw text of a 1-based line without its
// terminator, or nil if out of range.
func (f *File) RawLineContent(line int) []byte {
	f.linesOnce.Do(func() {
		f.lines = source.NewLines(f.RawContent)
	})
	return f.lines.Content(line)
}
