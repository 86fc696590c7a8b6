// Package preprocess strips comments and line splices from raw C++ text.
//
// The output is never longer than the input: single-line comments are
// removed up to the line break, multi-line comments collapse to one space,
// and backslash-newline pairs are dropped. A source.PositionMap records
// where each stretch of processed text came from.
package preprocess

import (
	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/source"
)

// Result is the output of Preprocess.
type Result struct {
	// Raw is the input text.
	Raw []byte

	// Processed is the text with comments and splices removed.
	Processed []byte

	// Map translates processed and raw offsets to raw line/column.
	Map *source.PositionMap
}

type consumeMode uint8

const (
	modeWrite consumeMode = iota
	modeDiscard
)

// preprocessor holds the scan state for one file.
type preprocessor struct {
	raw       []byte
	out       []byte
	pos       int
	line      int
	lineStart int
	pmap      *source.PositionMap
}

// Preprocess scans raw once and returns the processed text and position map.
// An unterminated multi-line comment fails with diag.UnterminatedComment at
// the raw offset of its opening "/*", already resolved to line and column.
func Preprocess(raw []byte) (*Result, error) {
	p := &preprocessor{
		raw:  raw,
		out:  make([]byte, 0, len(raw)),
		line: 1,
		pmap: source.NewPositionMap(),
	}

	if err := p.run(); err != nil {
		return nil, err
	}

	return &Result{Raw: raw, Processed: p.out, Map: p.pmap}, nil
}

func (p *preprocessor) run() error {
	for !p.eof() {
		switch {
		case p.hasPrefix("//"):
			p.pos += 2
			p.skipLineComment()
			continue

		case p.hasPrefix("/*"):
			if err := p.skipBlockComment(); err != nil {
				return err
			}
			continue
		}

		if p.lineBreak(modeWrite) || p.splice() {
			continue
		}

		c := p.raw[p.pos]
		switch {
		case c == '"' && p.rawStringPrefix():
			p.copyRawString()
		case c == '"' || (c == '\'' && !p.afterNumber()):
			p.copyQuoted(c)
		default:
			p.out = append(p.out, c)
			p.pos++
		}
	}

	return nil
}

// skipLineComment drops everything up to, not including, the line break.
// A splice continues the comment onto the next physical line.
func (p *preprocessor) skipLineComment() {
	for !p.eof() {
		if p.splice() {
			continue
		}
		if p.atLineBreak() {
			break
		}
		p.pos++
	}

	p.mark()
}

func (p *preprocessor) skipBlockComment() error {
	start, startLine, startColumn := p.pos, p.line, p.column()
	p.pos += 2

	for !p.eof() {
		if p.hasPrefix("*/") {
			p.pos += 2

			// The replacement space maps back to the comment opener.
			p.pmap.Add(len(p.out), start, startLine, startColumn)
			p.out = append(p.out, ' ')
			p.mark()
			return nil
		}

		if p.lineBreak(modeDiscard) || p.splice() {
			continue
		}

		p.pos++
	}

	// Line breaks inside the comment may have replaced the entry for the
	// opener's line, so the position comes from the scan state.
	err := diag.New(diag.UnterminatedComment, source.Raw(start), "unterminated comment")
	err.Line, err.Column = startLine, startColumn
	return err
}

// copyQuoted copies a string or character literal verbatim. Splices inside
// the literal are still removed. The copy stops before a line break so the
// lexer can report the literal as unterminated.
func (p *preprocessor) copyQuoted(quote byte) {
	p.out = append(p.out, quote)
	p.pos++

	for !p.eof() {
		if p.splice() {
			continue
		}
		if p.atLineBreak() {
			return
		}

		c := p.raw[p.pos]
		p.out = append(p.out, c)
		p.pos++

		switch c {
		case quote:
			return
		case '\\':
			for p.splice() {
			}
			if !p.eof() && !p.atLineBreak() {
				p.out = append(p.out, p.raw[p.pos])
				p.pos++
			}
		}
	}
}

// maxRawDelimiter is the longest raw string delimiter C++ allows.
const maxRawDelimiter = 16

// copyRawString copies R"delim( ... )delim" verbatim, line breaks included.
// A malformed opener falls back to an ordinary string copy.
func (p *preprocessor) copyRawString() {
	open := p.pos + 1
	paren := -1
	for i := open; i < len(p.raw) && i-open <= maxRawDelimiter; i++ {
		c := p.raw[i]
		if c == '(' {
			paren = i
			break
		}
		if c == ')' || c == '\\' || c == '"' || isSpace(c) {
			break
		}
	}

	if paren < 0 {
		p.copyQuoted('"')
		return
	}

	closing := make([]byte, 0, paren-open+2)
	closing = append(closing, ')')
	closing = append(closing, p.raw[open:paren]...)
	closing = append(closing, '"')

	p.out = append(p.out, p.raw[p.pos:paren+1]...)
	p.pos = paren + 1

	for !p.eof() {
		if p.hasPrefix(string(closing)) {
			p.out = append(p.out, closing...)
			p.pos += len(closing)
			return
		}
		if p.lineBreak(modeWrite) {
			continue
		}
		p.out = append(p.out, p.raw[p.pos])
		p.pos++
	}
}

//nolint:gochecknoglobals // read-only lookup table
var rawStringPrefixes = map[string]bool{
	"R": true, "LR": true, "uR": true, "UR": true, "u8R": true,
}

// rawStringPrefix reports whether the identifier just written is a raw
// string prefix.
func (p *preprocessor) rawStringPrefix() bool {
	start := len(p.out)
	for start > 0 && isIdentByte(p.out[start-1]) {
		start--
	}
	return rawStringPrefixes[string(p.out[start:])]
}

// afterNumber reports whether the run just written is a number, in which case
// a quote is a digit separator rather than a character literal.
func (p *preprocessor) afterNumber() bool {
	start := len(p.out)
	for start > 0 && (isIdentByte(p.out[start-1]) || p.out[start-1] == '\'') {
		start--
	}
	return start < len(p.out) && p.out[start] >= '0' && p.out[start] <= '9'
}

func (p *preprocessor) lineBreak(mode consumeMode) bool {
	var n int
	switch {
	case p.at('\n'):
		n = 1
	case p.hasPrefix("\r\n"):
		n = 2
	default:
		return false
	}

	if mode == modeWrite {
		p.out = append(p.out, p.raw[p.pos:p.pos+n]...)
	}
	p.pos += n
	p.newLine()
	return true
}

func (p *preprocessor) splice() bool {
	switch {
	case p.hasPrefix("\\\n"):
		p.pos += 2
	case p.hasPrefix("\\\r\n"):
		p.pos += 3
	default:
		return false
	}

	p.newLine()
	return true
}

func (p *preprocessor) newLine() {
	p.line++
	p.lineStart = p.pos
	p.mark()
}

// mark anchors the current processed offset to the current raw position.
func (p *preprocessor) mark() {
	p.pmap.Add(len(p.out), p.pos, p.line, p.column())
}

func (p *preprocessor) column() int {
	return p.pos - p.lineStart + 1
}

func (p *preprocessor) eof() bool {
	return p.pos >= len(p.raw)
}

func (p *preprocessor) at(c byte) bool {
	return p.pos < len(p.raw) && p.raw[p.pos] == c
}

func (p *preprocessor) atLineBreak() bool {
	return p.at('\n') || p.hasPrefix("\r\n")
}

func (p *preprocessor) hasPrefix(s string) bool {
	if len(p.raw)-p.pos < len(s) {
		return false
	}
	return string(p.raw[p.pos:p.pos+len(s)]) == s
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
