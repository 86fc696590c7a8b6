package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/headertool/pkg/token"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want token.Kind
	}{
		{"class", token.Keyword},
		{"thread_local", token.Keyword},
		{"true", token.BooleanLiteral},
		{"false", token.BooleanLiteral},
		{"nullptr", token.PointerLiteral},
		{"UCLASS", token.HeaderMacro},
		{"UMETA", token.HeaderMacro},
		{"UPROPERTY", token.HeaderMacro},
		{"GENERATED_BODY", token.Identifier},
		{"FORCEINLINE", token.Identifier},
		{"Class", token.Identifier},
		{"uclass", token.Identifier},
	}

	for _, tc := range tests {
		t.Run(tc.word, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, token.Lookup(tc.word))
		})
	}
}

func TestIsSymbol(t *testing.T) {
	t.Parallel()

	for _, s := range []string{">>=", ">>", ">", "::", "...", "->*", ".*", "{", ";"} {
		assert.True(t, token.IsSymbol(s), s)
	}
	for _, s := range []string{"..", "#", "@", "$", "=>", ""} {
		assert.False(t, token.IsSymbol(s), s)
	}

	assert.True(t, token.IsSymbolByte('>'))
	assert.True(t, token.IsSymbolByte('.'))
	assert.False(t, token.IsSymbolByte('#'))
	assert.False(t, token.IsSymbolByte('a'))
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.True(t, token.NumericLiteral.In(token.Literal))
	assert.False(t, token.Identifier.In(token.Literal))
	assert.True(t, token.Keyword.In(token.Keyword|token.Identifier))

	assert.Equal(t, "HeaderMacro", token.HeaderMacro.String())
	assert.Equal(t, "Identifier|Keyword", (token.Identifier | token.Keyword).String())
	assert.Equal(t, "None", token.Kind(0).String())
}

func TestToken_Text(t *testing.T) {
	t.Parallel()

	src := []byte("class AActor")
	tok := token.Token{Kind: token.Identifier, Offset: 6, Length: 6}

	assert.Equal(t, "AActor", tok.Text(src))
	assert.Equal(t, 12, tok.End())
	assert.True(t, tok.Is(src, token.Identifier, "AActor"))
	assert.True(t, tok.Is(src, token.Identifier|token.Keyword, ""))
	assert.False(t, tok.Is(src, token.Keyword, "AActor"))
	assert.False(t, tok.Is(src, token.Identifier, "Other"))

	outOfRange := token.Token{Kind: token.Identifier, Offset: 10, Length: 5}
	assert.Empty(t, outOfRange.Text(src))
}
