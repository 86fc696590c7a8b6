package lexer

import (
	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/token"
)

// Supported forms, tried in order:
//   - hexadecimal: 0x1F, 0x1.8p3, 0x1p-2 (a fraction needs a p exponent)
//   - binary: 0b1010 (integer only)
//   - octal: 017 (integer only)
//   - decimal: 0, 42, 1.5, .5, 1e10, 2.5E-3
//
// Digit separators (1'000'000) are accepted between digits. A trailing
// identifier run is a suffix (10u, 1.0f, 12_km) and belongs to the token.
func (lx *lexer) scanNumber() error {
	start := lx.pos

	var err error
	switch {
	case lx.peek() == '0' && (lx.peekAt(1) == 'x' || lx.peekAt(1) == 'X'):
		err = lx.scanHex()
	case lx.peek() == '0' && (lx.peekAt(1) == 'b' || lx.peekAt(1) == 'B'):
		err = lx.scanBinary()
	case lx.peek() == '0' && isDigit(lx.peekAt(1)):
		err = lx.scanOctal()
	default:
		err = lx.scanDecimal()
	}
	if err != nil {
		return err
	}

	lx.consumeIdentifier()
	lx.emit(token.NumericLiteral, start)
	return nil
}

func (lx *lexer) scanHex() error {
	prefix := lx.here()
	lx.pos += 2

	intDigits := lx.digits(isHex)

	hasFraction := false
	fracDigits := 0
	if lx.eat('.') {
		hasFraction = true
		fracDigits = lx.digits(isHex)
	}

	if intDigits == 0 && fracDigits == 0 {
		return diag.New(diag.InvalidDigitForBase, prefix, "hexadecimal literal has no digits")
	}

	if lx.peek() == 'p' || lx.peek() == 'P' {
		return lx.scanExponent()
	}

	if hasFraction {
		return diag.New(diag.HexFloatRequiresExponent, lx.here(), "hexadecimal floating literal requires an exponent")
	}

	return nil
}

func (lx *lexer) scanBinary() error {
	prefix := lx.here()
	lx.pos += 2

	n := lx.digits(isBinary)
	if isDigit(lx.peek()) {
		return diag.Newf(diag.InvalidDigitForBase, lx.here(), "invalid digit '%c' in binary literal", lx.peek())
	}
	if n == 0 {
		return diag.New(diag.InvalidDigitForBase, prefix, "binary literal has no digits")
	}

	return lx.rejectFloat("binary")
}

func (lx *lexer) scanOctal() error {
	lx.pos++ // leading 0

	lx.digits(isOctal)
	if isDigit(lx.peek()) {
		return diag.Newf(diag.InvalidDigitForBase, lx.here(), "invalid digit '%c' in octal literal", lx.peek())
	}

	return lx.rejectFloat("octal")
}

// rejectFloat fails if an integer-only literal continues as a float.
func (lx *lexer) rejectFloat(base string) error {
	switch lx.peek() {
	case '.', 'e', 'E':
		return diag.Newf(diag.InvalidFloatingConstantPrefix, lx.here(), "%s literal cannot be a floating constant", base)
	}
	return nil
}

func (lx *lexer) scanDecimal() error {
	lx.digits(isDigit)

	if lx.eat('.') {
		lx.digits(isDigit)
	}

	if lx.peek() == 'e' || lx.peek() == 'E' {
		return lx.scanExponent()
	}

	return nil
}

// scanExponent consumes an exponent marker, an optional sign and the
// mandatory decimal digits.
func (lx *lexer) scanExponent() error {
	marker := lx.here()
	lx.pos++

	if lx.peek() == '+' || lx.peek() == '-' {
		lx.pos++
	}

	if lx.digits(isDigit) == 0 {
		return diag.New(diag.ExponentHasNoDigits, marker, "exponent has no digits")
	}

	return nil
}

// digits consumes a run of digits accepted by valid, allowing single
// separators between digits, and returns the number of digits consumed.
func (lx *lexer) digits(valid func(byte) bool) int {
	n := 0
	for !lx.eof() {
		switch {
		case valid(lx.peek()):
			lx.pos++
			n++
		case n > 0 && lx.peek() == '\'' && valid(lx.peekAt(1)):
			lx.pos++
		default:
			return n
		}
	}
	return n
}
