// Package cppast provides the syntax tree produced for annotated C++ headers.
//
// The tree only holds declarations introduced by a header macro: classes,
// enums, their items and member functions, together with the macro
// annotations themselves. Nodes live in an arena owned by Tree and refer to
// each other by NodeID, so parent back-references need no pointers.
package cppast

import (
	"fmt"
	"strconv"
)

// NodeID addresses a node inside its Tree.
type NodeID int

// NoNode is the NodeID of a missing node, e.g. the root's parent.
const NoNode NodeID = -1

// Valid reports whether id refers to a node.
func (id NodeID) Valid() bool {
	return id >= 0
}

// Kind classifies a node.
type Kind uint8

// Node kinds.
const (
	KindRoot Kind = iota
	KindClass
	KindEnum
	KindEnumItem
	KindFunction
	KindFunctionParameter
	KindHeaderMacro
	KindHeaderSpecifier
	KindLiteral
)

//nolint:gochecknoglobals // read-only lookup table
var kindNames = [...]string{
	KindRoot:              "Root",
	KindClass:             "Class",
	KindEnum:              "Enum",
	KindEnumItem:          "EnumItem",
	KindFunction:          "Function",
	KindFunctionParameter: "FunctionParameter",
	KindHeaderMacro:       "HeaderMacro",
	KindHeaderSpecifier:   "HeaderSpecifier",
	KindLiteral:           "Literal",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsDeclaration reports whether nodes of this kind may carry a header macro
// as their first child.
func (k Kind) IsDeclaration() bool {
	switch k {
	case KindClass, KindEnum, KindEnumItem, KindFunction:
		return true
	default:
		return false
	}
}

// LiteralKind classifies a header specifier value.
type LiteralKind uint8

// Literal kinds.
const (
	LiteralBool LiteralKind = iota + 1
	LiteralInt64
	LiteralString
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralBool:
		return "bool"
	case LiteralInt64:
		return "int64"
	case LiteralString:
		return "string"
	default:
		return "none"
	}
}

// Literal is the value assigned to a header specifier.
type Literal struct {
	Kind   LiteralKind
	Bool   bool
	Int    int64
	String string
}

// BoolLiteral returns a bool literal.
func BoolLiteral(v bool) Literal { return Literal{Kind: LiteralBool, Bool: v} }

// IntLiteral returns an int64 literal.
func IntLiteral(v int64) Literal { return Literal{Kind: LiteralInt64, Int: v} }

// StringLiteral returns a string literal.
func StringLiteral(v string) Literal { return Literal{Kind: LiteralString, String: v} }

// Value returns the literal as bool, int64 or string, or nil if unset.
func (l Literal) Value() any {
	switch l.Kind {
	case LiteralBool:
		return l.Bool
	case LiteralInt64:
		return l.Int
	case LiteralString:
		return l.String
	default:
		return nil
	}
}

// Format renders the literal the way it would appear in source.
func (l Literal) Format() string {
	switch l.Kind {
	case LiteralBool:
		return strconv.FormatBool(l.Bool)
	case LiteralInt64:
		return strconv.FormatInt(l.Int, 10)
	case LiteralString:
		return strconv.Quote(l.String)
	default:
		return ""
	}
}

// Node is one entry of the arena.
type Node struct {
	// Kind identifies what type of node this is.
	Kind Kind

	// Name is the identifier for declarations and parameters, the macro
	// name for header macros and the specifier name for header specifiers.
	Name string

	// Parent is NoNode for the root and for detached nodes.
	Parent NodeID

	// Children in insertion order.
	Children []NodeID

	// Inclusive token range. Both are -1 until set.
	FirstToken int
	LastToken  int

	// Function attributes.
	IsStatic    bool
	IsConstExpr bool
	IsVirtual   bool

	// Index is the zero-based position of a function parameter.
	Index int

	// APIMacro is the import/export macro of a class, if any.
	APIMacro string

	// Value is set on Literal nodes.
	Value Literal
}

// HasTokenRange reports whether the token range has been set.
func (n *Node) HasTokenRange() bool {
	return n.FirstToken >= 0 && n.LastToken >= n.FirstToken
}

// ContainsRange reports whether n's token range contains [first, last].
func (n *Node) ContainsRange(first, last int) bool {
	return n.FirstToken <= first && last <= n.LastToken
}
