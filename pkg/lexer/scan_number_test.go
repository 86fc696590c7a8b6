package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/lexer"
	"github.com/yaklabco/headertool/pkg/token"
)

func TestTokenize_NumericLiterals(t *testing.T) {
	t.Parallel()

	valid := []string{
		"0",
		"7",
		"123",
		"017",
		"00",
		"0x1F",
		"0XAbC",
		"0x1p1",
		"0x1.8p3",
		"0x.8P-2",
		"0b1010",
		"0B1",
		"1.5",
		"1.",
		".5",
		"1e10",
		"2.5E-3",
		"6e+2",
		"10u",
		"10ull",
		"1.0f",
		"12_km",
		"0x10LL",
		"1'000'000",
		"0b1010'0101",
	}

	for _, src := range valid {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			got := scan(t, src)
			require.Len(t, got, 1)
			assert.Equal(t, lexeme{token.NumericLiteral, src}, got[0])
		})
	}
}

func TestTokenize_NumericErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		code diag.Code
	}{
		{"0b102", diag.InvalidDigitForBase},
		{"0b", diag.InvalidDigitForBase},
		{"019", diag.InvalidDigitForBase},
		{"08", diag.InvalidDigitForBase},
		{"0x", diag.InvalidDigitForBase},
		{"0x1.8", diag.HexFloatRequiresExponent},
		{"0x1.", diag.HexFloatRequiresExponent},
		{"0x1p", diag.ExponentHasNoDigits},
		{"0b1.0", diag.InvalidFloatingConstantPrefix},
		{"0b1e2", diag.InvalidFloatingConstantPrefix},
		{"017.5", diag.InvalidFloatingConstantPrefix},
		{"01e3", diag.InvalidFloatingConstantPrefix},
		{"1e", diag.ExponentHasNoDigits},
		{"1.5e+", diag.ExponentHasNoDigits},
	}

	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()

			d := scanErr(t, tc.src)
			assert.Equal(t, tc.code, d.Code)
		})
	}
}

func TestTokenize_LeadingDot(t *testing.T) {
	t.Parallel()

	got := scan(t, "a.b .5 x.*y")
	assert.Equal(t, []lexeme{
		{token.Identifier, "a"},
		{token.Symbol, "."},
		{token.Identifier, "b"},
		{token.NumericLiteral, ".5"},
		{token.Identifier, "x"},
		{token.Symbol, ".*"},
		{token.Identifier, "y"},
	}, got)
}

func TestTokenize_Deterministic(t *testing.T) {
	t.Parallel()

	src := []byte("UCLASS(A=1) class X { GENERATED_BODY() UFUNCTION() void F(int a, float b = 0x1p1); };")

	first, err := lexer.Tokenize(src)
	require.NoError(t, err)
	second, err := lexer.Tokenize(src)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
