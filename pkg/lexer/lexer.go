// Package lexer scans preprocessed C++ text into a flat token stream.
//
// The lexer recognises identifiers, keywords, literals and symbols of the
// C++ subset that carries header macros. Preprocessor directives are skipped
// to the end of the line. The first malformed construct aborts the scan with
// a *diag.Error positioned in the processed coordinate space.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/source"
	"github.com/yaklabco/headertool/pkg/token"
)

// Result is the output of Tokenize.
type Result struct {
	// Tokens is the token stream, terminated by one EndOfFile token.
	Tokens []token.Token

	// HeaderMacroIndices lists, in order, the indices of HeaderMacro tokens.
	HeaderMacroIndices []int
}

// lexer is a byte cursor over the processed text.
type lexer struct {
	src    []byte
	pos    uint32
	limit  uint32
	tokens []token.Token
	macros []int
}

// tokensPerByte estimates token density for the initial allocation.
const tokensPerByte = 6

// Tokenize scans content into tokens.
func Tokenize(content []byte) (*Result, error) {
	limit, err := safecast.Conv[uint32](len(content))
	if err != nil {
		return nil, fmt.Errorf("tokenize: content too large: %w", err)
	}

	lx := &lexer{
		src:    content,
		limit:  limit,
		tokens: make([]token.Token, 0, len(content)/tokensPerByte+1),
	}

	if err := lx.run(); err != nil {
		return nil, err
	}

	lx.tokens = append(lx.tokens, token.Token{Kind: token.EndOfFile, Offset: lx.limit})

	return &Result{Tokens: lx.tokens, HeaderMacroIndices: lx.macros}, nil
}

func (lx *lexer) run() error {
	for !lx.eof() {
		if err := lx.next(); err != nil {
			return err
		}
	}
	return nil
}

// next scans one construct at the cursor.
func (lx *lexer) next() error {
	c := lx.peek()

	switch {
	case c == '#':
		lx.skipLine()
		return nil

	case c == '/':
		skipped, err := lx.skipComment()
		if err != nil || skipped {
			return err
		}
		return lx.scanSymbol()

	case c == '"':
		return lx.scanString(lx.pos)

	case c == '\'':
		return lx.scanChar(lx.pos)

	case isDigit(c):
		return lx.scanNumber()

	case c == '.':
		if isDigit(lx.peekAt(1)) {
			return lx.scanNumber()
		}
		return lx.scanSymbol()

	case isIdentStart(c):
		return lx.scanIdentifier()

	case c < utf8.RuneSelf && isASCIISpace(c):
		lx.skipWhitespace()
		return nil

	case c < utf8.RuneSelf && token.IsSymbolByte(c):
		return lx.scanSymbol()

	case c >= utf8.RuneSelf:
		r, _ := lx.peekRune()
		switch {
		case isUnicodeSpace(r):
			lx.skipWhitespace()
			return nil
		case isUnicodeIdentStart(r):
			return lx.scanIdentifier()
		}
	}

	return lx.unexpected()
}

func (lx *lexer) unexpected() error {
	r, _ := lx.peekRune()
	return diag.Newf(diag.UnexpectedCharacter, lx.here(), "unexpected character %q", r)
}

// emit appends a token spanning [start, lx.pos).
func (lx *lexer) emit(kind token.Kind, start uint32) {
	if kind == token.HeaderMacro {
		lx.macros = append(lx.macros, len(lx.tokens))
	}
	lx.tokens = append(lx.tokens, token.Token{Kind: kind, Offset: start, Length: lx.pos - start})
}

// skipLine advances to the line break, leaving it for the whitespace scan.
func (lx *lexer) skipLine() {
	for !lx.eof() && lx.peek() != '\n' {
		lx.pos++
	}
}

// skipComment consumes a comment if one starts at the cursor. Preprocessed
// text normally has none left; this keeps the lexer usable on raw text.
func (lx *lexer) skipComment() (bool, error) {
	switch lx.peekAt(1) {
	case '/':
		lx.skipLine()
		return true, nil

	case '*':
		start := lx.pos
		lx.pos += 2
		for !lx.eof() {
			if lx.hasPrefix("*/") {
				lx.pos += 2
				return true, nil
			}
			lx.pos++
		}
		return false, diag.New(diag.UnterminatedComment, source.Processed(int(start)), "unterminated comment")
	}

	return false, nil
}

func (lx *lexer) skipWhitespace() {
	for !lx.eof() {
		c := lx.peek()
		if c < utf8.RuneSelf {
			if !isASCIISpace(c) {
				return
			}
			lx.pos++
			continue
		}

		r, size := lx.peekRune()
		if !isUnicodeSpace(r) {
			return
		}
		lx.pos += size
	}
}

func (lx *lexer) here() source.Position {
	return source.Processed(int(lx.pos))
}

func (lx *lexer) eof() bool {
	return lx.pos >= lx.limit
}

func (lx *lexer) peek() byte {
	if lx.eof() {
		return 0
	}
	return lx.src[lx.pos]
}

// peekAt returns the byte n positions ahead, or 0 past the end.
func (lx *lexer) peekAt(n uint32) byte {
	if lx.pos+n >= lx.limit {
		return 0
	}
	return lx.src[lx.pos+n]
}

// peekRune decodes the rune at the cursor and its width.
func (lx *lexer) peekRune() (rune, uint32) {
	r, size := utf8.DecodeRune(lx.src[lx.pos:])
	return r, uint32(size) //nolint:gosec // size is at most utf8.UTFMax
}

func (lx *lexer) eat(c byte) bool {
	if lx.peek() == c && !lx.eof() {
		lx.pos++
		return true
	}
	return false
}

func (lx *lexer) hasPrefix(s string) bool {
	if lx.limit-lx.pos < uint32(len(s)) { //nolint:gosec // s is a short literal
		return false
	}
	return string(lx.src[lx.pos:lx.pos+uint32(len(s))]) == s //nolint:gosec // s is a short literal
}
