package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/yaklabco/headertool/pkg/cppast"
	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/lexer"
	"github.com/yaklabco/headertool/pkg/token"
)

// acceptHeaderMacro parses NAME( spec (= literal)? (, spec (= literal)?)* )
// when the current token is the header macro name. It returns NoNode without
// moving if it is not.
func (a *analyzer) acceptHeaderMacro(name string) (cppast.NodeID, error) {
	if !a.is(token.HeaderMacro, name) {
		return cppast.NoNode, nil
	}

	first := a.pos
	header := a.tree.New(cppast.KindHeaderMacro, name)
	a.advance()

	if !a.acceptSymbol("(") {
		return cppast.NoNode, a.errorf(diag.MalformedHeaderMacro,
			"expected \"(\" after %s, found %s", name, a.describe())
	}

	if a.acceptSymbol(")") {
		a.finish(header, first)
		return header, nil
	}

	for {
		if a.eof() {
			return cppast.NoNode, a.errorf(diag.UnbalancedDelimiters, "expected \")\" before end of file")
		}

		spec, err := a.headerSpecifier(name)
		if err != nil {
			return cppast.NoNode, err
		}
		if err := a.attach(header, spec); err != nil {
			return cppast.NoNode, err
		}

		switch {
		case a.acceptSymbol(","):
			continue
		case a.acceptSymbol(")"):
			a.finish(header, first)
			return header, nil
		case a.eof():
			return cppast.NoNode, a.errorf(diag.UnbalancedDelimiters, "expected \")\" before end of file")
		default:
			return cppast.NoNode, a.errorf(diag.MalformedHeaderMacro,
				"expected \",\" or \")\" in %s, found %s", name, a.describe())
		}
	}
}

// headerSpecifier parses one "name" or "name = literal" entry.
func (a *analyzer) headerSpecifier(macro string) (cppast.NodeID, error) {
	first := a.pos
	name, ok := a.acceptKind(token.Identifier | token.Keyword)
	if !ok {
		return cppast.NoNode, a.errorf(diag.MalformedHeaderMacro,
			"expected specifier name in %s, found %s", macro, a.describe())
	}

	spec := a.tree.New(cppast.KindHeaderSpecifier, name)

	if a.acceptSymbol("=") {
		litFirst := a.pos
		value, err := a.literal()
		if err != nil {
			return cppast.NoNode, err
		}

		lit := a.tree.New(cppast.KindLiteral, "")
		a.tree.Node(lit).Value = value
		a.finish(lit, litFirst)
		if err := a.attach(spec, lit); err != nil {
			return cppast.NoNode, err
		}
	}

	a.finish(spec, first)
	return spec, nil
}

// literal parses a bool, an optionally negated integer, or a plain string.
func (a *analyzer) literal() (cppast.Literal, error) {
	start := a.pos

	if text, ok := a.acceptKind(token.BooleanLiteral); ok {
		return cppast.BoolLiteral(text == "true"), nil
	}

	negative := a.acceptSymbol("-")
	if text, ok := a.acceptKind(token.NumericLiteral); ok {
		v, err := parseInt(text, negative)
		if err != nil {
			return cppast.Literal{}, a.errorAt(start, diag.ExpectedLiteral,
				"invalid integer literal %q: %v", text, err)
		}
		return cppast.IntLiteral(v), nil
	}
	if negative {
		return cppast.Literal{}, a.errorf(diag.ExpectedLiteral,
			"expected integer literal after \"-\", found %s", a.describe())
	}

	if a.is(token.StringLiteral, "") && strings.HasPrefix(a.text(), `"`) {
		text := a.text()
		v, err := lexer.Unquote(text)
		if err != nil {
			return cppast.Literal{}, a.errorf(diag.ExpectedLiteral, "invalid string literal %s: %v", text, err)
		}
		a.advance()
		return cppast.StringLiteral(v), nil
	}

	return cppast.Literal{}, a.errorf(diag.ExpectedLiteral,
		"expected bool, integer or string literal, found %s", a.describe())
}

var (
	errIntSuffix = errors.New("integer suffixes are not supported")
	errNotInt    = errors.New("not an integer")
)

// parseInt converts a numeric token to int64. Digit separators are dropped;
// the base follows the C++ prefix.
func parseInt(text string, negative bool) (int64, error) {
	digits := strings.ReplaceAll(text, "'", "")
	base := 10

	lower := strings.ToLower(digits)
	switch {
	case strings.HasPrefix(lower, "0x"):
		base, digits = 16, digits[2:]
	case strings.HasPrefix(lower, "0b"):
		base, digits = 2, digits[2:]
	case len(digits) > 1 && digits[0] == '0':
		base, digits = 8, digits[1:]
	}

	if strings.ContainsAny(digits, ".pP") || (base == 10 && strings.ContainsAny(digits, "eE")) {
		return 0, errNotInt
	}
	for i := 0; i < len(digits); i++ {
		if !isDigitInBase(digits[i], base) {
			return 0, errIntSuffix
		}
	}
	if negative {
		digits = "-" + digits
	}

	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, numErr.Err
		}
		return 0, err
	}
	return v, nil
}

func isDigitInBase(c byte, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	case 16:
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	default:
		return c >= '0' && c <= '9'
	}
}
