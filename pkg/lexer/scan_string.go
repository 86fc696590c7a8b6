package lexer

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/source"
	"github.com/yaklabco/headertool/pkg/token"
)

// simpleEscapes maps the single-character escapes to their values.
//
//nolint:gochecknoglobals // read-only lookup table
var simpleEscapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'?':  '?',
	'0':  0,
}

// Escape and raw string limits.
const (
	ucnShortDigits = 4
	ucnLongDigits  = 8
	maxRawDelim    = 16
)

// scanString scans "..." whose token starts at start (a prefix may precede
// the quote at the cursor).
func (lx *lexer) scanString(start uint32) error {
	if err := lx.scanQuoted(start, '"'); err != nil {
		return err
	}
	lx.emit(token.StringLiteral, start)
	return nil
}

// scanChar scans '...' whose token starts at start.
func (lx *lexer) scanChar(start uint32) error {
	if err := lx.scanQuoted(start, '\''); err != nil {
		return err
	}
	lx.emit(token.CharacterLiteral, start)
	return nil
}

// scanQuoted consumes from the opening quote at the cursor through the
// matching closing quote. A line break or the end of input first makes the
// literal unterminated.
func (lx *lexer) scanQuoted(start uint32, quote byte) error {
	lx.pos++ // opening quote

	for {
		if lx.eof() || lx.peek() == '\n' || lx.peek() == '\r' {
			return diag.New(diag.UnterminatedLiteral, source.Processed(int(start)), "unterminated literal")
		}

		switch lx.peek() {
		case quote:
			lx.pos++
			return nil
		case '\\':
			if err := lx.scanEscape(); err != nil {
				return err
			}
		default:
			lx.pos++
		}
	}
}

// scanEscape validates one escape sequence starting at the backslash.
func (lx *lexer) scanEscape() error {
	at := lx.here()
	lx.pos++ // backslash

	c := lx.peek()
	if lx.eof() {
		return diag.New(diag.InvalidEscapeSequence, at, "incomplete escape sequence")
	}

	switch {
	case isSimpleEscape(c):
		lx.pos++
		return nil

	case c == 'u' || c == 'U':
		lx.pos++
		if !isHex(lx.peek()) {
			return diag.Newf(diag.InvalidEscapeSequence, at, `\%c used with no following hex digits`, c)
		}
		for isHex(lx.peek()) {
			lx.pos++
		}
		return nil
	}

	r, _ := lx.peekRune()
	return diag.Newf(diag.InvalidEscapeSequence, at, `invalid escape sequence '\%c'`, r)
}

func isSimpleEscape(c byte) bool {
	_, ok := simpleEscapes[c]
	return ok
}

// scanRawString scans prefix"delim( ... )delim" with the quote at the cursor.
func (lx *lexer) scanRawString(start uint32) error {
	lx.pos++ // opening quote

	delimStart := lx.pos
	for !lx.eof() && lx.peek() != '(' {
		if !isIdentContinue(lx.peek()) || lx.pos-delimStart >= maxRawDelim {
			return diag.New(diag.UnexpectedCharacter, lx.here(), "invalid raw string delimiter")
		}
		lx.pos++
	}
	if lx.eof() {
		return diag.New(diag.UnterminatedLiteral, source.Processed(int(start)), "unterminated raw string literal")
	}

	closing := make([]byte, 0, lx.pos-delimStart+2)
	closing = append(closing, ')')
	closing = append(closing, lx.src[delimStart:lx.pos]...)
	closing = append(closing, '"')
	lx.pos++ // '('

	idx := bytes.Index(lx.src[lx.pos:lx.limit], closing)
	if idx < 0 {
		return diag.New(diag.UnterminatedLiteral, source.Processed(int(start)), "unterminated raw string literal")
	}

	lx.pos += uint32(idx + len(closing)) //nolint:gosec // bounded by limit
	lx.emit(token.StringLiteral, start)
	return nil
}

// ErrNotString is returned by Unquote for text that is not a string literal.
var ErrNotString = errors.New("not a string literal")

// Unquote returns the value of a string literal token, resolving escapes.
// Encoding prefixes are accepted; raw strings are returned verbatim.
func Unquote(text string) (string, error) {
	quote := strings.IndexByte(text, '"')
	if quote < 0 || len(text) < quote+2 || text[len(text)-1] != '"' {
		return "", ErrNotString
	}

	prefix := text[:quote]
	switch {
	case rawPrefixes[prefix]:
		return unquoteRaw(text[quote:])
	case prefix == "" || literalPrefixes[prefix]:
		return unescape(text[quote+1 : len(text)-1])
	default:
		return "", ErrNotString
	}
}

func unquoteRaw(text string) (string, error) {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return "", ErrNotString
	}

	delim := text[1:open]
	body := text[open+1:]
	suffix := ")" + delim + `"`
	if !strings.HasSuffix(body, suffix) {
		return "", ErrNotString
	}
	return strings.TrimSuffix(body, suffix), nil
}

// unescape resolves the escapes in a quoted body.
func unescape(body string) (string, error) {
	if strings.IndexByte(body, '\\') < 0 {
		return body, nil
	}

	var sb strings.Builder
	sb.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}

		i++
		if i >= len(body) {
			return "", fmt.Errorf("incomplete escape sequence at %d", i-1)
		}

		esc := body[i]
		if v, ok := simpleEscapes[esc]; ok {
			sb.WriteByte(v)
			continue
		}

		if esc != 'u' && esc != 'U' {
			return "", fmt.Errorf("invalid escape sequence '\\%c'", esc)
		}

		// The code point takes at most four (\u) or eight (\U) digits; any
		// further hex digits are plain characters.
		limit := ucnShortDigits
		if esc == 'U' {
			limit = ucnLongDigits
		}
		j := i + 1
		for j < len(body) && j-i-1 < limit && isHex(body[j]) {
			j++
		}
		if j == i+1 {
			return "", fmt.Errorf("universal character name at %d has no hex digits", i-1)
		}
		v, err := strconv.ParseUint(body[i+1:j], 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return "", fmt.Errorf("invalid universal character name %q", body[i-1:j])
		}
		sb.WriteRune(rune(v))
		i = j - 1
	}

	return sb.String(), nil
}
