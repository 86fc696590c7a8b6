package parser_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/headertool/pkg/cppast"
	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/parser"
	"github.com/yaklabco/headertool/pkg/source"
	"github.com/yaklabco/headertool/pkg/token"
)

const sampleHeader = `#pragma once
#include "CoreMinimal.h"
#include "MyActor.generated.h"

/**
 * A sample actor.
 */
UCLASS(Blueprintable, Category = "Gameplay", Priority = 3)
class GAME_API AMyActor : public AActor, public IInterface<int, float>
{
	GENERATED_BODY()

public:
	AMyActor();

	UPROPERTY(EditAnywhere)
	int32 Health = 100;

	UFUNCTION(BlueprintCallable)
	void TakeDamage(float Amount, const FString& Reason = TEXT("none"));

	UFUNCTION()
	static FORCEINLINE int32 GetMax() { return 10; }

	void NotReflected() { if (true) { return; } }

	UFUNCTION(BlueprintPure, Meta = -1)
	virtual bool IsAlive(void) const override;
};

UENUM(BlueprintType)
enum class EState : uint8
{
	UMETA(DisplayName = "Idle") Idle,
	Running = 1 << 2,
	Dead
};
`

// parse parses src and checks the structural invariants of the result.
func parse(t *testing.T, src string) *cppast.File {
	t.Helper()

	file, err := parser.New().ParseString("test.h", src)
	require.NoError(t, err)
	require.NotNil(t, file.Tree)
	require.NoError(t, file.Tree.Validate())
	return file
}

func parseErr(t *testing.T, src string) *diag.Error {
	t.Helper()

	_, err := parser.New().ParseString("test.h", src)
	require.Error(t, err)

	var d *diag.Error
	require.ErrorAs(t, err, &d)
	return d
}

// children returns kind and name of each child of id.
func children(tree *cppast.Tree, id cppast.NodeID) []string {
	var out []string
	for _, child := range tree.Children(id) {
		out = append(out, tree.Kind(child).String()+" "+tree.Name(child))
	}
	return out
}

func TestParse_ClassWithFunction(t *testing.T) {
	t.Parallel()

	file := parse(t, "UCLASS() class FOO_API AActor { GENERATED_BODY() UFUNCTION() void Tick(); };")
	tree := file.Tree

	decls := tree.Declarations()
	require.Len(t, decls, 1)
	class := decls[0]

	assert.Equal(t, cppast.KindClass, tree.Kind(class))
	assert.Equal(t, "AActor", tree.Name(class))
	assert.Equal(t, "FOO_API", tree.Node(class).APIMacro)
	assert.Equal(t, []string{"HeaderMacro UCLASS", "Function Tick"}, children(tree, class))

	fn := tree.ChildrenOfKind(class, cppast.KindFunction)[0]
	assert.Empty(t, tree.Parameters(fn))
	assert.Equal(t, "AActor::Tick", tree.QualifiedName(fn))
}

func TestParse_Enum(t *testing.T) {
	t.Parallel()

	file := parse(t, "UENUM() enum class EColor { UMETA() Red, Green = 2, Blue };")
	tree := file.Tree

	decls := tree.Declarations()
	require.Len(t, decls, 1)
	enum := decls[0]

	assert.Equal(t, "EColor", tree.Name(enum))
	assert.Equal(t, []string{"HeaderMacro UENUM", "EnumItem Red", "EnumItem Green", "EnumItem Blue"},
		children(tree, enum))

	items := tree.ChildrenOfKind(enum, cppast.KindEnumItem)
	header, ok := tree.Header(items[0])
	require.True(t, ok)
	assert.Equal(t, "UMETA", tree.Name(header))

	_, ok = tree.Header(items[1])
	assert.False(t, ok)

	assert.Equal(t, "EColor::Red", tree.QualifiedName(items[0]))
	assert.Equal(t, enum, tree.Parent(items[2]))
}

func TestParse_UnterminatedCommentFailsBeforeTokenizing(t *testing.T) {
	t.Parallel()

	// The backtick would be an unexpected character if tokenizing ran.
	d := parseErr(t, "UCLASS() ` /* never closed")
	assert.Equal(t, diag.UnterminatedComment, d.Code)
	assert.Equal(t, source.Raw(11), d.Pos)
	assert.Equal(t, "test.h:1:12: unterminated comment", d.Error())
}

func TestParse_HeaderSpecifiers(t *testing.T) {
	t.Parallel()

	file := parse(t, `UCLASS(BlueprintType, DisplayName="My Class") class FOO_API AThing { GENERATED_BODY() };`)
	tree := file.Tree

	class := tree.Declarations()[0]
	assert.Equal(t, "AThing", tree.Name(class))

	specs := tree.Specifiers(class)
	require.Len(t, specs, 2)
	assert.Equal(t, "BlueprintType", tree.Name(specs[0]))
	assert.Equal(t, "DisplayName", tree.Name(specs[1]))

	_, ok := tree.SpecifierValue(specs[0])
	assert.False(t, ok)

	value, ok := tree.SpecifierValue(specs[1])
	require.True(t, ok)
	assert.Equal(t, cppast.StringLiteral("My Class"), value)
}

func TestParse_LiteralValues(t *testing.T) {
	t.Parallel()

	src := `UCLASS(A=true, B=-42, C=0x10, D="x\ty", E=1'000, F=false, G=0b101, H=017, I=0, J=-0x8000000000000000)
class X { GENERATED_BODY() };`
	tree := parse(t, src).Tree
	class := tree.Declarations()[0]

	want := map[string]cppast.Literal{
		"A": cppast.BoolLiteral(true),
		"B": cppast.IntLiteral(-42),
		"C": cppast.IntLiteral(16),
		"D": cppast.StringLiteral("x\ty"),
		"E": cppast.IntLiteral(1000),
		"F": cppast.BoolLiteral(false),
		"G": cppast.IntLiteral(5),
		"H": cppast.IntLiteral(15),
		"I": cppast.IntLiteral(0),
		"J": cppast.IntLiteral(-1 << 63),
	}

	for name, lit := range want {
		spec, ok := tree.Specifier(class, name)
		require.True(t, ok, name)
		got, ok := tree.SpecifierValue(spec)
		require.True(t, ok, name)
		assert.Equal(t, lit, got, name)
	}
}

func TestParse_NoHeaderMacros(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "whitespace", src: "  \n\t\n"},
		{name: "plain class", src: "class A { public: int x; };"},
		{name: "namespaces and templates", src: "namespace n { template <typename T> struct S { T v[3]; }; }"},
		{name: "directives", src: "#pragma once\n#include <vector>\nint f(int a) { return a >> 1; }"},
		{name: "unbalanced without macros", src: "int f() { return (1;"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			file := parse(t, tc.src)
			assert.Empty(t, file.Tree.Children(file.Tree.Root()))
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	first := parse(t, sampleHeader)
	second := parse(t, sampleHeader)

	if diff := cmp.Diff(first.Tree, second.Tree, cmp.AllowUnexported(cppast.Tree{})); diff != "" {
		t.Errorf("trees differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Tokens, second.Tokens)
	assert.Equal(t, first.Tree.String(), second.Tree.String())
}

func TestParse_SampleHeader(t *testing.T) {
	t.Parallel()

	file := parse(t, sampleHeader)
	tree := file.Tree

	decls := tree.Declarations()
	require.Len(t, decls, 2)
	class, enum := decls[0], decls[1]

	assert.Equal(t, "AMyActor", tree.Name(class))
	assert.Equal(t, "GAME_API", tree.Node(class).APIMacro)
	assert.Equal(t, []string{
		"HeaderMacro UCLASS",
		"Function TakeDamage",
		"Function GetMax",
		"Function IsAlive",
	}, children(tree, class))

	priority, ok := tree.Specifier(class, "Priority")
	require.True(t, ok)
	value, _ := tree.SpecifierValue(priority)
	assert.Equal(t, cppast.IntLiteral(3), value)

	fns := tree.ChildrenOfKind(class, cppast.KindFunction)

	params := tree.Parameters(fns[0])
	require.Len(t, params, 2)
	assert.Equal(t, "Amount", tree.Name(params[0]))
	assert.Equal(t, "Reason", tree.Name(params[1]))
	assert.Equal(t, 1, tree.Node(params[1]).Index)

	getMax := tree.Node(fns[1])
	assert.True(t, getMax.IsStatic)
	assert.False(t, getMax.IsVirtual)

	isAlive := tree.Node(fns[2])
	assert.True(t, isAlive.IsVirtual)
	assert.Empty(t, tree.Parameters(fns[2]))
	meta, ok := tree.Specifier(fns[2], "Meta")
	require.True(t, ok)
	value, _ = tree.SpecifierValue(meta)
	assert.Equal(t, cppast.IntLiteral(-1), value)

	assert.Equal(t, "EState", tree.Name(enum))
	assert.Equal(t, []string{"HeaderMacro UENUM", "EnumItem Idle", "EnumItem Running", "EnumItem Dead"},
		children(tree, enum))

	assert.Equal(t, source.LineColumn{Line: 8, Column: 1}, file.NodePosition(class))
	assert.Equal(t, source.LineColumn{Line: 19, Column: 2}, file.NodePosition(fns[0]))
	assert.Equal(t, source.LineColumn{Line: 31, Column: 1}, file.NodePosition(enum))
	assert.Equal(t, "UCLASS(Blueprintable, Category = \"Gameplay\", Priority = 3)", string(file.RawLineContent(8)))
}

func TestParse_FunctionSpecifiers(t *testing.T) {
	t.Parallel()

	src := `UCLASS() class A { GENERATED_BODY()
UFUNCTION() static CONSTEXPR int F(int a, float b = 1.0f, TArray<int, 3> c);
UFUNCTION() constexpr inline int G(TMap<int, TArray<int>> m) const { return {1}; }
UFUNCTION() virtual void H(void) override {}
};`
	tree := parse(t, src).Tree
	class := tree.Declarations()[0]
	fns := tree.ChildrenOfKind(class, cppast.KindFunction)
	require.Len(t, fns, 3)

	f := tree.Node(fns[0])
	assert.Equal(t, "F", f.Name)
	assert.True(t, f.IsStatic)
	assert.True(t, f.IsConstExpr)
	assert.False(t, f.IsVirtual)

	var names []string
	for _, p := range tree.Parameters(fns[0]) {
		names = append(names, tree.Name(p))
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)

	g := tree.Node(fns[1])
	assert.Equal(t, "G", g.Name)
	assert.True(t, g.IsConstExpr)
	require.Len(t, tree.Parameters(fns[1]), 1)
	assert.Equal(t, "m", tree.Name(tree.Parameters(fns[1])[0]))

	h := tree.Node(fns[2])
	assert.Equal(t, "H", h.Name)
	assert.True(t, h.IsVirtual)
	assert.Empty(t, tree.Parameters(fns[2]))
}

func TestParse_OtherMacrosAreSkipped(t *testing.T) {
	t.Parallel()

	src := `USTRUCT() struct S { int x; };
UFUNCTION() void Free();
UPROPERTY() int Global;
UCLASS() class A { GENERATED_BODY() };`
	tree := parse(t, src).Tree

	assert.Equal(t, []string{"Class A"}, children(tree, tree.Root()))
}

func TestParse_MacroInsideBracketsIsIgnored(t *testing.T) {
	t.Parallel()

	tree := parse(t, "namespace game { UCLASS() class A { GENERATED_BODY() }; }").Tree
	assert.Empty(t, tree.Children(tree.Root()))
}

func TestParse_APIMacroPattern(t *testing.T) {
	t.Parallel()

	src := "UCLASS() class MY_EXPORT A { GENERATED_BODY() };"

	_, err := parser.New().ParseString("a.h", src)
	require.Error(t, err, "MY_EXPORT is not an API macro by default")

	p := parser.New(parser.WithAPIMacroPattern(regexp.MustCompile(`^MY_EXPORT$`)))
	file, err := p.ParseString("a.h", src)
	require.NoError(t, err)
	require.NoError(t, file.Tree.Validate())

	class := file.Tree.Declarations()[0]
	assert.Equal(t, "A", file.Tree.Name(class))
	assert.Equal(t, "MY_EXPORT", file.Tree.Node(class).APIMacro)
}

func TestParse_APIMacroLookalikeIsClassName(t *testing.T) {
	t.Parallel()

	tree := parse(t, "UCLASS() class CORE_API : public B { GENERATED_BODY() };").Tree
	class := tree.Declarations()[0]
	assert.Equal(t, "CORE_API", tree.Name(class))
	assert.Empty(t, tree.Node(class).APIMacro)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		code diag.Code
		line int
		col  int
	}{
		{
			name: "struct instead of class",
			src:  "UCLASS() struct A {};",
			code: diag.MissingExpectedToken, line: 1, col: 10,
		},
		{
			name: "missing generated body",
			src:  "UCLASS() class A { int x; };",
			code: diag.MissingExpectedToken, line: 1, col: 20,
		},
		{
			name: "missing literal",
			src:  "UCLASS(A=) class A {};",
			code: diag.ExpectedLiteral, line: 1, col: 10,
		},
		{
			name: "float literal",
			src:  "UCLASS(A=1.5) class A {};",
			code: diag.ExpectedLiteral, line: 1, col: 10,
		},
		{
			name: "integer out of range",
			src:  "UCLASS(A=99999999999999999999) class A {};",
			code: diag.ExpectedLiteral, line: 1, col: 10,
		},
		{
			name: "integer suffix",
			src:  "UCLASS(A=10u) class A {};",
			code: diag.ExpectedLiteral, line: 1, col: 10,
		},
		{
			name: "prefixed string literal",
			src:  `UCLASS(A=L"x") class A {};`,
			code: diag.ExpectedLiteral, line: 1, col: 10,
		},
		{
			name: "missing comma",
			src:  "UCLASS(A B) class A {};",
			code: diag.MalformedHeaderMacro, line: 1, col: 10,
		},
		{
			name: "missing open paren",
			src:  "UCLASS class A {};",
			code: diag.MalformedHeaderMacro, line: 1, col: 8,
		},
		{
			name: "unclosed header",
			src:  "UCLASS(A",
			code: diag.UnbalancedDelimiters, line: 1, col: 9,
		},
		{
			name: "missing function name",
			src:  "UCLASS() class A { GENERATED_BODY() UFUNCTION() (); };",
			code: diag.ExpectedFunctionName, line: 1, col: 49,
		},
		{
			name: "unnamed parameter",
			src:  "UCLASS() class A { GENERATED_BODY() UFUNCTION() void F(int); };",
			code: diag.MissingExpectedToken, line: 1, col: 59,
		},
		{
			name: "unclosed class",
			src:  "UCLASS() class A { GENERATED_BODY()",
			code: diag.UnbalancedDelimiters, line: 1, col: 36,
		},
		{
			name: "missing enum comma",
			src:  "UENUM() enum E { A B };",
			code: diag.MissingExpectedToken, line: 1, col: 20,
		},
		{
			name: "enum without body",
			src:  "UENUM() enum E : int;",
			code: diag.MalformedHeaderMacro, line: 1, col: 21,
		},
		{
			name: "meta without item",
			src:  "UENUM() enum E { UMETA() = 1 };",
			code: diag.MissingExpectedToken, line: 1, col: 26,
		},
		{
			name: "macro inside unclosed brace",
			src:  "{ UCLASS()",
			code: diag.UnbalancedDelimiters, line: 1, col: 11,
		},
		{
			name: "unclosed parameter list",
			src:  "UCLASS() class A { GENERATED_BODY() UFUNCTION() void F(TArray<int> a",
			code: diag.MissingExpectedToken, line: 1, col: 69,
		},
		{
			name: "hex escape in specifier value",
			src:  "UCLASS(K=\"\\x41\") class A {};",
			code: diag.InvalidEscapeSequence, line: 1, col: 11,
		},
		{
			name: "lexer error on later line",
			src:  "a\n  \"abc",
			code: diag.UnterminatedLiteral, line: 2, col: 3,
		},
		{
			name: "column after comment",
			src:  "/* c */ UCLASS() struct",
			code: diag.MissingExpectedToken, line: 1, col: 18,
		},
		{
			name: "line after spliced line",
			src:  "int a = \\\n 1;\nUCLASS() struct",
			code: diag.MissingExpectedToken, line: 3, col: 10,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := parseErr(t, tc.src)
			assert.Equal(t, tc.code, d.Code, d.Error())
			assert.Equal(t, "test.h", d.Path)
			assert.Equal(t, tc.line, d.Line, d.Error())
			assert.Equal(t, tc.col, d.Column, d.Error())
			assert.Regexp(t, `^test\.h:\d+:\d+: `, d.Error())
		})
	}
}

func TestParse_UnbalancedMessageNamesCloser(t *testing.T) {
	t.Parallel()

	d := parseErr(t, "UCLASS() class A { GENERATED_BODY() UFUNCTION() void F(int a[2);")
	assert.Equal(t, diag.UnbalancedDelimiters, d.Code)
	assert.Contains(t, d.Message, `expected "]"`)
}

func TestParse_OperatorsInSkippedRegions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		params []string
		items  []string
	}{
		{
			name:   "comparison in default argument",
			src:    "UCLASS() class A { GENERATED_BODY() UFUNCTION() void F(bool b = 1 < 2, int c); };",
			params: []string{"b", "c"},
		},
		{
			name:   "named comparison in default argument",
			src:    "UCLASS() class A { GENERATED_BODY() UFUNCTION() void F(bool b = Max < 2); };",
			params: []string{"b"},
		},
		{
			name:   "greater than in default argument",
			src:    "UCLASS() class A { GENERATED_BODY() UFUNCTION() void F(bool b = 3 > 2, int c = 1 >> 1); };",
			params: []string{"b", "c"},
		},
		{
			name:   "template arguments with commas",
			src:    "UCLASS() class A { GENERATED_BODY() UFUNCTION() void F(TMap<int, TArray<int>> m, TPair<int, int> p); };",
			params: []string{"m", "p"},
		},
		{
			name:   "template argument with call",
			src:    "UCLASS() class A { GENERATED_BODY() UFUNCTION() void F(TArray<decltype(x)> a); };",
			params: []string{"a"},
		},
		{
			name:   "brackets in default argument",
			src:    "UCLASS() class A { GENERATED_BODY() UFUNCTION() void F(int a = v[1, 2], int b = g(3, 4)); };",
			params: []string{"a", "b"},
		},
		{
			name:  "comparison in enum value",
			src:   "UENUM() enum class E { A = (1 < 2), B };",
			items: []string{"A", "B"},
		},
		{
			name:  "named comparison in enum value",
			src:   "UENUM() enum class E { A = X < 2, B = Y > 1, C };",
			items: []string{"A", "B", "C"},
		},
		{
			name:  "shift and index in enum value",
			src:   "UENUM() enum E { A = 1 << 3, B = T[2], C = sizeof(int[4]) };",
			items: []string{"A", "B", "C"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tree := parse(t, tc.src).Tree
			decls := tree.Declarations()
			require.Len(t, decls, 1)

			if tc.params != nil {
				fns := tree.ChildrenOfKind(decls[0], cppast.KindFunction)
				require.Len(t, fns, 1)

				var names []string
				for _, p := range tree.Parameters(fns[0]) {
					names = append(names, tree.Name(p))
				}
				assert.Equal(t, tc.params, names)
			}

			if tc.items != nil {
				var names []string
				for _, item := range tree.ChildrenOfKind(decls[0], cppast.KindEnumItem) {
					names = append(names, tree.Name(item))
				}
				assert.Equal(t, tc.items, names)
			}
		})
	}
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.Parse(ctx, "a.h", []byte(sampleHeader))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, diag.Unknown, diag.CodeOf(err))
}

func TestParse_FileFacade(t *testing.T) {
	t.Parallel()

	raw := "// c\nUCLASS() class A { GENERATED_BODY() };"
	file := parse(t, raw)

	assert.Equal(t, "test.h", file.Path)
	assert.Equal(t, raw, string(file.RawContent))
	assert.Equal(t, "\nUCLASS() class A { GENERATED_BODY() };", string(file.Content))
	assert.Equal(t, []int{0}, file.HeaderMacroIndices)
	assert.Equal(t, "UCLASS", file.TokenText(0))
	assert.Equal(t, source.LineColumn{Line: 2, Column: 1}, file.TokenPosition(0))

	root := file.Tree.Node(file.Tree.Root())
	assert.Equal(t, 0, root.FirstToken)
	assert.Equal(t, len(file.Tokens)-1, root.LastToken)
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	file, err := parser.New().Tokenize(context.Background(), "t.h", []byte("UENUM() /* x */ enum\n  E"))
	require.NoError(t, err)

	assert.Nil(t, file.Tree)
	require.Len(t, file.Tokens, 6)
	assert.Equal(t, token.HeaderMacro, file.Tokens[0].Kind)
	assert.Equal(t, "enum", file.TokenText(3))
	assert.Equal(t, source.LineColumn{Line: 1, Column: 17}, file.TokenPosition(3))
	assert.Equal(t, source.LineColumn{Line: 2, Column: 3}, file.TokenPosition(4))
	assert.Equal(t, token.EndOfFile, file.Tokens[5].Kind)

	_, err = parser.New().Tokenize(context.Background(), "t.h", []byte("/* open"))
	require.Error(t, err)
	assert.Equal(t, diag.UnterminatedComment, diag.CodeOf(err))
}
