package parser

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/yaklabco/headertool/pkg/cppast"
	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/source"
	"github.com/yaklabco/headertool/pkg/token"
)

// analyzer is a recursive-descent parser over one token stream.
// Every accept primitive either consumes and reports success, or leaves the
// cursor where it was.
type analyzer struct {
	src      []byte
	tokens   []token.Token
	macros   []int
	pos      int
	tree     *cppast.Tree
	apiMacro *regexp.Regexp
}

// Analyze builds the syntax tree for a token stream. tokens must end with an
// EndOfFile token. Errors are unresolved *diag.Error values positioned in the
// processed text.
func Analyze(
	ctx context.Context,
	src []byte,
	tokens []token.Token,
	headerMacroIndices []int,
	apiMacro *regexp.Regexp,
) (*cppast.Tree, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EndOfFile {
		return nil, fmt.Errorf("analyze: token stream must end with %s", token.EndOfFile)
	}
	if apiMacro == nil {
		apiMacro = defaultAPIMacro
	}

	a := &analyzer{
		src:      src,
		tokens:   tokens,
		macros:   headerMacroIndices,
		tree:     cppast.NewTree(),
		apiMacro: apiMacro,
	}

	if err := a.run(ctx); err != nil {
		return nil, err
	}
	return a.tree, nil
}

// run is the top-level loop: skip to a header macro at depth zero, try a
// class or enum there, and move on.
func (a *analyzer) run(ctx context.Context) error {
	root := a.tree.Root()
	a.tree.SetTokenRange(root, 0, len(a.tokens)-1)

	for len(a.macros) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("analyze: %w", err)
		}

		if err := a.skipToHeaderMacro(); err != nil {
			return err
		}
		if a.eof() {
			return nil
		}

		decl, ok, err := a.acceptDeclaration()
		if err != nil {
			return err
		}
		if !ok {
			// A macro that does not start a top-level declaration.
			a.advance()
			continue
		}

		if err := a.tree.AppendChild(root, decl); err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
	}

	return nil
}

func (a *analyzer) acceptDeclaration() (cppast.NodeID, bool, error) {
	switch a.text() {
	case token.MacroClass:
		id, err := a.acceptClass()
		return id, err == nil, err
	case token.MacroEnum:
		id, err := a.acceptEnum()
		return id, err == nil, err
	default:
		return cppast.NoNode, false, nil
	}
}

// macroAhead reports whether any header macro token remains at or after
// the cursor.
func (a *analyzer) macroAhead() bool {
	i := sort.SearchInts(a.macros, a.pos)
	return i < len(a.macros)
}

// cur returns the token at the cursor. The cursor never passes EndOfFile.
func (a *analyzer) cur() token.Token {
	return a.tokens[a.pos]
}

func (a *analyzer) peekToken(n int) token.Token {
	if a.pos+n >= len(a.tokens) {
		return a.tokens[len(a.tokens)-1]
	}
	return a.tokens[a.pos+n]
}

func (a *analyzer) eof() bool {
	return a.cur().Kind == token.EndOfFile
}

func (a *analyzer) advance() {
	if !a.eof() {
		a.pos++
	}
}

// toEOF moves the cursor to the EndOfFile token.
func (a *analyzer) toEOF() {
	a.pos = len(a.tokens) - 1
}

func (a *analyzer) text() string {
	return a.cur().Text(a.src)
}

func (a *analyzer) tokenText(i int) string {
	return a.tokens[i].Text(a.src)
}

// is reports whether the current token has a kind in set and, if text is
// non-empty, that text.
func (a *analyzer) is(set token.Kind, text string) bool {
	return a.cur().Is(a.src, set, text)
}

func (a *analyzer) isSymbol(text string) bool {
	return a.is(token.Symbol, text)
}

// accept consumes the current token if it matches.
func (a *analyzer) accept(set token.Kind, text string) bool {
	if !a.is(set, text) {
		return false
	}
	a.advance()
	return true
}

func (a *analyzer) acceptSymbol(text string) bool {
	return a.accept(token.Symbol, text)
}

// acceptKind consumes a token of a kind in set and returns its text.
func (a *analyzer) acceptKind(set token.Kind) (string, bool) {
	if !a.cur().Kind.In(set) {
		return "", false
	}
	text := a.text()
	a.advance()
	return text, true
}

// expectSymbol consumes the symbol or fails with MissingExpectedToken.
func (a *analyzer) expectSymbol(text, context string) error {
	if a.acceptSymbol(text) {
		return nil
	}
	return a.errorf(diag.MissingExpectedToken, "expected %q %s, found %s", text, context, a.describe())
}

// describe renders the current token for messages.
func (a *analyzer) describe() string {
	if a.eof() {
		return "end of file"
	}
	return fmt.Sprintf("%q", a.text())
}

// errorf creates a diagnostic at the current token.
func (a *analyzer) errorf(code diag.Code, format string, args ...any) *diag.Error {
	return a.errorAt(a.pos, code, format, args...)
}

func (a *analyzer) errorAt(index int, code diag.Code, format string, args ...any) *diag.Error {
	return diag.Newf(code, source.Processed(a.tokens[index].Start()), format, args...)
}

// finish sets the token range of id to [first, last consumed token].
func (a *analyzer) finish(id cppast.NodeID, first int) {
	a.tree.SetTokenRange(id, first, a.pos-1)
}

// attach appends child to parent. Both are fresh nodes, so failure means a
// bug in the analyzer.
func (a *analyzer) attach(parent, child cppast.NodeID) error {
	if err := a.tree.AppendChild(parent, child); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	return nil
}
