package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/lexer"
	"github.com/yaklabco/headertool/pkg/source"
	"github.com/yaklabco/headertool/pkg/token"
)

type lexeme struct {
	kind token.Kind
	text string
}

func scan(t *testing.T, src string) []lexeme {
	t.Helper()

	res, err := lexer.Tokenize([]byte(src))
	require.NoError(t, err)
	require.NotEmpty(t, res.Tokens)

	last := res.Tokens[len(res.Tokens)-1]
	require.Equal(t, token.EndOfFile, last.Kind)
	require.Equal(t, len(src), last.Start())

	out := make([]lexeme, 0, len(res.Tokens)-1)
	for _, tok := range res.Tokens[:len(res.Tokens)-1] {
		out = append(out, lexeme{kind: tok.Kind, text: tok.Text([]byte(src))})
	}
	return out
}

func scanErr(t *testing.T, src string) *diag.Error {
	t.Helper()

	_, err := lexer.Tokenize([]byte(src))
	require.Error(t, err)

	var d *diag.Error
	require.ErrorAs(t, err, &d)
	return d
}

func TestTokenize_Empty(t *testing.T) {
	t.Parallel()

	res, err := lexer.Tokenize(nil)
	require.NoError(t, err)
	require.Len(t, res.Tokens, 1)
	assert.Equal(t, token.EndOfFile, res.Tokens[0].Kind)
	assert.Empty(t, res.HeaderMacroIndices)
}

func TestTokenize_Classification(t *testing.T) {
	t.Parallel()

	got := scan(t, "UCLASS() class FOO_API AActor : public Base { bool b = true; void* p = nullptr; };")

	want := []lexeme{
		{token.HeaderMacro, "UCLASS"},
		{token.Symbol, "("},
		{token.Symbol, ")"},
		{token.Keyword, "class"},
		{token.Identifier, "FOO_API"},
		{token.Identifier, "AActor"},
		{token.Symbol, ":"},
		{token.Keyword, "public"},
		{token.Identifier, "Base"},
		{token.Symbol, "{"},
		{token.Keyword, "bool"},
		{token.Identifier, "b"},
		{token.Symbol, "="},
		{token.BooleanLiteral, "true"},
		{token.Symbol, ";"},
		{token.Keyword, "void"},
		{token.Symbol, "*"},
		{token.Identifier, "p"},
		{token.Symbol, "="},
		{token.PointerLiteral, "nullptr"},
		{token.Symbol, ";"},
		{token.Symbol, "}"},
		{token.Symbol, ";"},
	}
	assert.Equal(t, want, got)
}

func TestTokenize_HeaderMacroIndices(t *testing.T) {
	t.Parallel()

	res, err := lexer.Tokenize([]byte("UENUM() enum E { UMETA() A };"))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 6}, res.HeaderMacroIndices)

	for _, idx := range res.HeaderMacroIndices {
		assert.Equal(t, token.HeaderMacro, res.Tokens[idx].Kind)
	}
}

func TestTokenize_Symbols(t *testing.T) {
	t.Parallel()

	got := scan(t, "a>>=b >> c->*d ... :: <=> .* x/y")

	var texts []string
	for _, l := range got {
		texts = append(texts, l.text)
	}
	assert.Equal(t, []string{
		"a", ">>=", "b", ">>", "c", "->*", "d", "...", "::", "<=>", ".*", "x", "/", "y",
	}, texts)
}

func TestTokenize_SkipsDirectivesAndWhitespace(t *testing.T) {
	t.Parallel()

	got := scan(t, "#include \"Actor.h\"\n#pragma once\n 　\t\vint x;")
	assert.Equal(t, []lexeme{
		{token.Keyword, "int"},
		{token.Identifier, "x"},
		{token.Symbol, ";"},
	}, got)
}

func TestTokenize_UnicodeWhitespace(t *testing.T) {
	t.Parallel()

	spaces := []struct {
		name string
		r    rune
	}{
		{"next line", '\u0085'},
		{"no-break space", '\u00A0'},
		{"ogham space mark", '\u1680'},
		{"mongolian vowel separator", '\u180E'},
		{"en quad", '\u2000'},
		{"em space", '\u2003'},
		{"thin space", '\u2009'},
		{"hair space", '\u200A'},
		{"zero width space", '\u200B'},
		{"line separator", '\u2028'},
		{"paragraph separator", '\u2029'},
		{"narrow no-break space", '\u202F'},
		{"medium mathematical space", '\u205F'},
		{"ideographic space", '\u3000'},
		{"byte order mark", '\uFEFF'},
	}

	want := []lexeme{
		{token.HeaderMacro, "UENUM"},
		{token.Symbol, "("},
		{token.Symbol, ")"},
		{token.Identifier, "E"},
	}

	for _, tc := range spaces {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sp := string(tc.r)
			src := sp + "UENUM" + sp + "(" + sp + sp + ")\t" + sp + " E" + sp
			res, err := lexer.Tokenize([]byte(src))
			require.NoError(t, err)

			got := make([]lexeme, 0, len(want))
			for _, tok := range res.Tokens[:len(res.Tokens)-1] {
				got = append(got, lexeme{kind: tok.Kind, text: tok.Text([]byte(src))})
			}
			assert.Equal(t, want, got)
			assert.Equal(t, []int{0}, res.HeaderMacroIndices)
			assert.Equal(t, len(sp), res.Tokens[0].Start())
		})
	}
}

func TestTokenize_NonSpaceFormatCharacter(t *testing.T) {
	t.Parallel()

	d := scanErr(t, "a\u00ADb")
	assert.Equal(t, diag.UnexpectedCharacter, d.Code)
	assert.Equal(t, source.Processed(1), d.Pos)
}

func TestTokenize_CommentsInRawText(t *testing.T) {
	t.Parallel()

	got := scan(t, "a // line\n/* block */ b")
	assert.Equal(t, []lexeme{{token.Identifier, "a"}, {token.Identifier, "b"}}, got)

	d := scanErr(t, "a /* open")
	assert.Equal(t, diag.UnterminatedComment, d.Code)
	assert.Equal(t, source.Processed(2), d.Pos)
}

func TestTokenize_UnicodeIdentifier(t *testing.T) {
	t.Parallel()

	got := scan(t, "int größe;")
	assert.Equal(t, lexeme{token.Identifier, "größe"}, got[1])
}

func TestTokenize_UnexpectedCharacter(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"a @ b", "$x", "`", "a \\ b", "☃"} {
		d := scanErr(t, src)
		assert.Equal(t, diag.UnexpectedCharacter, d.Code, src)
	}
}
