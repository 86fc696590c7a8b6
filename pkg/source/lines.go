package source

// Line is the byte extent of one physical line of raw text.
type Line struct {
	// Start is the offset of the first byte of the line.
	Start int

	// NewlineStart is where the line terminator begins. For a line without a
	// terminator it equals End.
	NewlineStart int

	// End is the offset just after the terminator.
	End int
}

// Lines indexes the physical lines of raw text. Both LF and CRLF endings are
// recognised. Empty content has no lines.
type Lines struct {
	content []byte
	lines   []Line
}

// NewLines builds the line index for content.
func NewLines(content []byte) *Lines {
	idx := &Lines{content: content}
	if len(content) == 0 {
		return idx
	}

	lineStart := 0
	for i, c := range content {
		if c != '\n' {
			continue
		}

		newlineStart := i
		if i > 0 && content[i-1] == '\r' {
			newlineStart = i - 1
		}

		idx.lines = append(idx.lines, Line{Start: lineStart, NewlineStart: newlineStart, End: i + 1})
		lineStart = i + 1
	}

	// Last line, possibly without a terminator.
	idx.lines = append(idx.lines, Line{Start: lineStart, NewlineStart: len(content), End: len(content)})

	return idx
}

// Count returns the number of lines.
func (l *Lines) Count() int {
	return len(l.lines)
}

// At returns the 1-based line, or false if out of range.
func (l *Lines) At(line int) (Line, bool) {
	if line < 1 || line > len(l.lines) {
		return Line{}, false
	}
	return l.lines[line-1], true
}

// Content returns the text of a 1-based line without its terminator.
// Returns nil if the line is out of range.
func (l *Lines) Content(line int) []byte {
	info, ok := l.At(line)
	if !ok {
		return nil
	}
	return l.content[info.Start:info.NewlineStart]
}
