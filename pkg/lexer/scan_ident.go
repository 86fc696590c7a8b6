package lexer

import (
	"unicode/utf8"

	"github.com/yaklabco/headertool/pkg/token"
)

// Encoding prefixes that may open a string or character literal.
//
//nolint:gochecknoglobals // read-only lookup table
var literalPrefixes = map[string]bool{"L": true, "u": true, "U": true, "u8": true}

// Encoding prefixes that open a raw string literal.
//
//nolint:gochecknoglobals // read-only lookup table
var rawPrefixes = map[string]bool{"R": true, "LR": true, "uR": true, "UR": true, "u8R": true}

// scanIdentifier consumes a maximal identifier run and classifies it.
// A literal prefix directly followed by a quote hands over to the literal
// scanners with the token starting at the prefix.
func (lx *lexer) scanIdentifier() error {
	start := lx.pos
	lx.consumeIdentifier()
	word := string(lx.src[start:lx.pos])

	switch lx.peek() {
	case '"':
		if rawPrefixes[word] {
			return lx.scanRawString(start)
		}
		if literalPrefixes[word] {
			return lx.scanString(start)
		}
	case '\'':
		if literalPrefixes[word] {
			return lx.scanChar(start)
		}
	}

	lx.emit(token.Lookup(word), start)
	return nil
}

func (lx *lexer) consumeIdentifier() {
	for !lx.eof() {
		c := lx.peek()
		if c < utf8.RuneSelf {
			if !isIdentContinue(c) {
				return
			}
			lx.pos++
			continue
		}

		r, size := lx.peekRune()
		if !isUnicodeIdentContinue(r) {
			return
		}
		lx.pos += size
	}
}
