// Package parser runs the header pipeline for one file: preprocessing,
// tokenizing and syntactic analysis of macro-annotated declarations.
//
// Only declarations introduced by a header macro are recognised. Everything
// else is skipped with delimiter-balanced scans. The first grammar violation
// aborts the file with a *diag.Error resolved to path, line and column.
package parser

import (
	"context"
	"fmt"
	"regexp"

	"github.com/yaklabco/headertool/pkg/cppast"
	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/lexer"
	"github.com/yaklabco/headertool/pkg/preprocess"
)

// DefaultAPIMacroPattern matches import/export macros such as ENGINE_API.
const DefaultAPIMacroPattern = `^[A-Z][A-Z0-9_]*_API$`

//nolint:gochecknoglobals // compiled once, read-only
var defaultAPIMacro = regexp.MustCompile(DefaultAPIMacroPattern)

// Parser parses C++ headers into cppast files.
// A Parser is safe for concurrent use.
type Parser struct {
	apiMacro *regexp.Regexp
}

// Option configures a Parser.
type Option func(*Parser)

// WithAPIMacroPattern sets the pattern recognising the import/export macro
// between "class" and the class name. A nil pattern keeps the default.
func WithAPIMacroPattern(re *regexp.Regexp) Option {
	return func(p *Parser) {
		if re != nil {
			p.apiMacro = re
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{apiMacro: defaultAPIMacro}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the pipeline on content. path is used only in diagnostics.
// Pipeline errors are *diag.Error values; cancellation returns ctx.Err().
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*cppast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	file, err := p.Tokenize(ctx, path, content)
	if err != nil {
		return nil, err
	}

	tree, err := Analyze(ctx, file.Content, file.Tokens, file.HeaderMacroIndices, p.apiMacro)
	if err != nil {
		return nil, diag.Resolve(err, path, file.PositionMap)
	}
	file.Tree = tree

	return file, nil
}

// Tokenize runs preprocessing and tokenizing only. The returned file has
// no Tree.
func (p *Parser) Tokenize(ctx context.Context, path string, content []byte) (*cppast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tokenize %s: %w", path, err)
	}

	pre, err := preprocess.Preprocess(content)
	if err != nil {
		return nil, diag.Resolve(err, path, nil)
	}

	lexed, err := lexer.Tokenize(pre.Processed)
	if err != nil {
		return nil, diag.Resolve(err, path, pre.Map)
	}

	return &cppast.File{
		Path:               path,
		RawContent:         content,
		Content:            pre.Processed,
		PositionMap:        pre.Map,
		Tokens:             lexed.Tokens,
		HeaderMacroIndices: lexed.HeaderMacroIndices,
	}, nil
}

// ParseString is a convenience wrapper for tests and tools.
func (p *Parser) ParseString(path, content string) (*cppast.File, error) {
	return p.Parse(context.Background(), path, []byte(content))
}

// Parse parses content with a default Parser.
func Parse(ctx context.Context, path string, content []byte) (*cppast.File, error) {
	return New().Parse(ctx, path, content)
}
