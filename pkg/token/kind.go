// Package token defines the tokens of the C++ subset scanned by the lexer
// and the read-only tables used to classify them.
package token

import "strings"

// Kind classifies a token. Kinds are bit flags so predicates can test set
// membership with a single mask, e.g. tok.Kind.In(Keyword | Identifier).
type Kind uint16

// Token kinds.
const (
	Identifier Kind = 1 << iota
	Keyword
	Symbol
	StringLiteral
	CharacterLiteral
	NumericLiteral
	BooleanLiteral
	PointerLiteral
	HeaderMacro
	EndOfFile
)

// Literal matches every literal kind.
const Literal = StringLiteral | CharacterLiteral | NumericLiteral | BooleanLiteral | PointerLiteral

//nolint:gochecknoglobals // read-only lookup table
var kindNames = []struct {
	kind Kind
	name string
}{
	{Identifier, "Identifier"},
	{Keyword, "Keyword"},
	{Symbol, "Symbol"},
	{StringLiteral, "StringLiteral"},
	{CharacterLiteral, "CharacterLiteral"},
	{NumericLiteral, "NumericLiteral"},
	{BooleanLiteral, "BooleanLiteral"},
	{PointerLiteral, "PointerLiteral"},
	{HeaderMacro, "HeaderMacro"},
	{EndOfFile, "EndOfFile"},
}

// In reports whether k shares any flag with set.
func (k Kind) In(set Kind) bool {
	return k&set != 0
}

// String returns the kind name. Combined flags are joined with "|".
func (k Kind) String() string {
	if k == 0 {
		return "None"
	}

	var parts []string
	for _, kn := range kindNames {
		if k&kn.kind != 0 {
			parts = append(parts, kn.name)
		}
	}
	return strings.Join(parts, "|")
}
