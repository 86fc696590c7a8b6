package parser

import (
	"strings"

	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/token"
)

// delimiterSet pairs opening and closing delimiters by index.
type delimiterSet struct {
	open  string
	close string
}

//nolint:gochecknoglobals // read-only delimiter tables
var (
	// topLevelDelimiters are tracked while looking for the next header macro.
	topLevelDelimiters = delimiterSet{open: "{[(", close: "}])"}

	// declarationDelimiters are tracked while skipping inside declarations.
	// "<" only opens when it starts a template argument list, see opensTemplate.
	declarationDelimiters = delimiterSet{open: "{[(<", close: "}])>"}
)

func (d delimiterSet) closer(c byte) (byte, bool) {
	i := strings.IndexByte(d.open, c)
	if i < 0 {
		return 0, false
	}
	return d.close[i], true
}

// delimiterStack holds the closers still expected, innermost last.
type delimiterStack []byte

func (s *delimiterStack) push(c byte) { *s = append(*s, c) }

func (s *delimiterStack) top() (byte, bool) {
	if len(*s) == 0 {
		return 0, false
	}
	return (*s)[len(*s)-1], true
}

func (s *delimiterStack) pop() {
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
}

// track updates the stack for the current token: openers push their closer,
// and the expected closer pops. Other closers are ignored.
func (a *analyzer) track(s *delimiterStack, set delimiterSet) {
	tok := a.cur()
	if tok.Kind != token.Symbol {
		return
	}

	if tok.Is(a.src, token.Symbol, ">>") {
		// ">>" closes two template argument lists.
		for range 2 {
			if c, ok := s.top(); ok && c == '>' {
				s.pop()
			}
		}
		return
	}

	if tok.Length != 1 {
		return
	}

	c := a.src[tok.Offset]
	if closer, ok := set.closer(c); ok {
		if c != '<' || a.opensTemplate() {
			s.push(closer)
		}
		return
	}
	if top, ok := s.top(); ok && top == c {
		s.pop()
	}
}

// opensTemplate reports whether the "<" at the cursor starts a template
// argument list: it must follow a name and be closed by ">" before any
// unmatched closing bracket or one of ";", "{", "}" and "=". Anything else
// is a comparison.
func (a *analyzer) opensTemplate() bool {
	if a.pos == 0 || !a.tokens[a.pos-1].Kind.In(token.Identifier|token.Keyword) {
		return false
	}

	angles, depth := 1, 0
	for i := a.pos + 1; i < len(a.tokens); i++ {
		tok := a.tokens[i]
		if tok.Kind != token.Symbol {
			continue
		}

		switch a.tokenText(i) {
		case ";", "{", "}", "=":
			return false
		case "(", "[":
			depth++
		case ")", "]":
			if depth == 0 {
				return false
			}
			depth--
		case "<":
			if depth == 0 && a.tokens[i-1].Kind.In(token.Identifier|token.Keyword) {
				angles++
			}
		case ">":
			if depth == 0 {
				angles--
			}
		case ">>":
			if depth == 0 {
				angles -= 2
			}
		}

		if angles <= 0 {
			return true
		}
	}

	return false
}

// unbalanced reports the innermost missing closer at the cursor.
func (a *analyzer) unbalanced(s delimiterStack) error {
	c, _ := s.top()
	return a.errorf(diag.UnbalancedDelimiters, "expected %q before end of file", string(c))
}

// skipToHeaderMacro advances to the next header macro outside any bracket.
// When no header macro remains the cursor jumps to EndOfFile.
func (a *analyzer) skipToHeaderMacro() error {
	if !a.macroAhead() {
		a.toEOF()
		return nil
	}

	var stack delimiterStack
	for !a.eof() {
		tok := a.cur()
		if len(stack) == 0 && tok.Kind == token.HeaderMacro {
			return nil
		}
		a.track(&stack, topLevelDelimiters)
		a.advance()
	}

	if len(stack) > 0 {
		return a.unbalanced(stack)
	}
	return nil
}

// skipUntil advances to the first single-character symbol in stops seen
// outside any bracket. Reaching EndOfFile with open brackets fails with
// UnbalancedDelimiters; reaching it otherwise leaves the cursor there.
func (a *analyzer) skipUntil(stops string) error {
	var stack delimiterStack
	for !a.eof() {
		tok := a.cur()
		if len(stack) == 0 && tok.Kind == token.Symbol && tok.Length == 1 &&
			strings.IndexByte(stops, a.src[tok.Offset]) >= 0 {
			return nil
		}
		a.track(&stack, declarationDelimiters)
		a.advance()
	}

	if len(stack) > 0 {
		return a.unbalanced(stack)
	}
	return nil
}

// skipBalanced consumes open, everything up to the matching close, and
// close. It reports false without moving if the cursor is not at open.
func (a *analyzer) skipBalanced(open, close string) (bool, error) {
	if !a.isSymbol(open) {
		return false, nil
	}

	stack := delimiterStack{close[0]}
	a.advance()

	for len(stack) > 0 {
		if a.eof() {
			return true, a.unbalanced(stack)
		}
		switch {
		case a.isSymbol(open):
			stack.push(close[0])
		case a.isSymbol(close):
			stack.pop()
		}
		a.advance()
	}

	return true, nil
}
