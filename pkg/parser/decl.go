package parser

import (
	"github.com/yaklabco/headertool/pkg/cppast"
	"github.com/yaklabco/headertool/pkg/diag"
	"github.com/yaklabco/headertool/pkg/token"
)

// Function specifiers allowed between UFUNCTION(...) and the declaration.
//
//nolint:gochecknoglobals // read-only lookup table
var functionSpecifiers = map[string]bool{
	"inline":       true,
	"virtual":      true,
	"explicit":     true,
	"friend":       true,
	"static":       true,
	"const":        true,
	"volatile":     true,
	"mutable":      true,
	"extern":       true,
	"register":     true,
	"thread_local": true,
	"constexpr":    true,
	"FORCEINLINE":  true,
	"CONSTEXPR":    true,
}

// acceptClass parses UCLASS(...) class API? Name (: bases)? { GENERATED_BODY() members };
func (a *analyzer) acceptClass() (cppast.NodeID, error) {
	first := a.pos

	header, err := a.acceptHeaderMacro(token.MacroClass)
	if err != nil {
		return cppast.NoNode, err
	}

	if !a.accept(token.Keyword, "class") {
		return cppast.NoNode, a.errorf(diag.MissingExpectedToken,
			"expected \"class\" after %s, found %s", token.MacroClass, a.describe())
	}

	var apiMacro string
	if a.is(token.Identifier, "") && a.apiMacro.MatchString(a.text()) &&
		a.peekToken(1).Kind == token.Identifier {
		apiMacro = a.text()
		a.advance()
	}

	name, ok := a.acceptKind(token.Identifier)
	if !ok {
		return cppast.NoNode, a.errorf(diag.MissingExpectedToken, "expected class name, found %s", a.describe())
	}

	class := a.tree.New(cppast.KindClass, name)
	a.tree.Node(class).APIMacro = apiMacro
	if err := a.attach(class, header); err != nil {
		return cppast.NoNode, err
	}

	if err := a.skipBaseClause(name); err != nil {
		return cppast.NoNode, err
	}
	if err := a.expectSymbol("{", "to open class "+name); err != nil {
		return cppast.NoNode, err
	}

	if !a.accept(token.Identifier, token.GeneratedBody) {
		return cppast.NoNode, a.errorf(diag.MissingExpectedToken,
			"expected %s() at the start of class %s, found %s", token.GeneratedBody, name, a.describe())
	}
	if err := a.expectSymbol("(", "after "+token.GeneratedBody); err != nil {
		return cppast.NoNode, err
	}
	if err := a.expectSymbol(")", "after "+token.GeneratedBody+"("); err != nil {
		return cppast.NoNode, err
	}

	if err := a.classMembers(class, name); err != nil {
		return cppast.NoNode, err
	}

	a.finish(class, first)
	return class, nil
}

// skipBaseClause skips ": bases" up to the opening brace.
func (a *analyzer) skipBaseClause(name string) error {
	if !a.acceptSymbol(":") {
		return nil
	}
	if err := a.skipUntil("{;"); err != nil {
		return err
	}
	if a.isSymbol(";") {
		return a.errorf(diag.MalformedHeaderMacro, "annotated declaration %s has no body", name)
	}
	return nil
}

// classMembers consumes the class body through the closing "};". Only
// UFUNCTION declarations are parsed; other members are skipped.
func (a *analyzer) classMembers(class cppast.NodeID, name string) error {
	for {
		switch {
		case a.eof():
			return a.errorf(diag.UnbalancedDelimiters, "expected \"}\" to close class %s before end of file", name)

		case a.is(token.HeaderMacro, token.MacroFunction):
			fn, err := a.acceptFunction()
			if err != nil {
				return err
			}
			if err := a.attach(class, fn); err != nil {
				return err
			}

		case a.isSymbol("{"):
			if _, err := a.skipBalanced("{", "}"); err != nil {
				return err
			}

		case a.acceptSymbol("}"):
			return a.expectSymbol(";", "after class "+name)

		default:
			a.advance()
		}
	}
}

// acceptFunction parses UFUNCTION(...) specifiers... type Name(params) and
// either a body or ";".
func (a *analyzer) acceptFunction() (cppast.NodeID, error) {
	first := a.pos

	header, err := a.acceptHeaderMacro(token.MacroFunction)
	if err != nil {
		return cppast.NoNode, err
	}

	var isStatic, isConstExpr, isVirtual bool
	for a.cur().Kind.In(token.Keyword|token.Identifier) && functionSpecifiers[a.text()] {
		switch a.text() {
		case "static":
			isStatic = true
		case "constexpr", "CONSTEXPR":
			isConstExpr = true
		case "virtual":
			isVirtual = true
		}
		a.advance()
	}
	afterSpecifiers := a.pos

	if err := a.skipUntil("("); err != nil {
		return cppast.NoNode, err
	}
	if a.eof() || a.pos <= afterSpecifiers || a.tokens[a.pos-1].Kind != token.Identifier {
		return cppast.NoNode, a.errorf(diag.ExpectedFunctionName, "expected function name before \"(\"")
	}

	fn := a.tree.New(cppast.KindFunction, a.tokenText(a.pos-1))
	node := a.tree.Node(fn)
	node.IsStatic = isStatic
	node.IsConstExpr = isConstExpr
	node.IsVirtual = isVirtual
	if err := a.attach(fn, header); err != nil {
		return cppast.NoNode, err
	}

	if err := a.parameters(fn); err != nil {
		return cppast.NoNode, err
	}

	if err := a.skipUntil("{;"); err != nil {
		return cppast.NoNode, err
	}
	switch {
	case a.isSymbol("{"):
		if _, err := a.skipBalanced("{", "}"); err != nil {
			return cppast.NoNode, err
		}
	case a.acceptSymbol(";"):
	default:
		return cppast.NoNode, a.errorf(diag.MissingExpectedToken,
			"expected function body or \";\" after %s, found %s", a.tree.Name(fn), a.describe())
	}

	a.finish(fn, first)
	return fn, nil
}

// parameters parses "( void )" or "( param, ... )". A parameter's name is the
// token before the first top-level "=", "," or ")".
func (a *analyzer) parameters(fn cppast.NodeID) error {
	a.advance() // (

	if a.is(token.Keyword, "void") && a.peekToken(1).Is(a.src, token.Symbol, ")") {
		a.advance()
		a.advance()
		return nil
	}

	for index := 0; ; {
		switch {
		case a.eof():
			return a.errorf(diag.MissingExpectedToken, "expected \")\" to close parameters of %s", a.tree.Name(fn))
		case a.acceptSymbol(")"):
			return nil
		case a.acceptSymbol(","):
			continue
		}

		param, err := a.parameter(index)
		if err != nil {
			return err
		}
		if err := a.attach(fn, param); err != nil {
			return err
		}
		index++
	}
}

func (a *analyzer) parameter(index int) (cppast.NodeID, error) {
	first := a.pos

	if err := a.skipUntil("=,)"); err != nil {
		return cppast.NoNode, err
	}
	if a.eof() {
		return cppast.NoNode, a.errorf(diag.MissingExpectedToken, "expected \")\" to close parameter list")
	}

	nameIndex := a.pos - 1
	if nameIndex < first || a.tokens[nameIndex].Kind != token.Identifier {
		return cppast.NoNode, a.errorAt(a.pos, diag.MissingExpectedToken,
			"expected parameter name before %s", a.describe())
	}

	param := a.tree.New(cppast.KindFunctionParameter, a.tokenText(nameIndex))
	a.tree.Node(param).Index = index

	// Default argument.
	if err := a.skipUntil(",)"); err != nil {
		return cppast.NoNode, err
	}

	a.finish(param, first)
	return param, nil
}

// acceptEnum parses UENUM(...) enum (class|struct)? Name (: type)? { items };
func (a *analyzer) acceptEnum() (cppast.NodeID, error) {
	first := a.pos

	header, err := a.acceptHeaderMacro(token.MacroEnum)
	if err != nil {
		return cppast.NoNode, err
	}

	if !a.accept(token.Keyword, "enum") {
		return cppast.NoNode, a.errorf(diag.MissingExpectedToken,
			"expected \"enum\" after %s, found %s", token.MacroEnum, a.describe())
	}
	if !a.accept(token.Keyword, "class") {
		a.accept(token.Keyword, "struct")
	}

	name, ok := a.acceptKind(token.Identifier)
	if !ok {
		return cppast.NoNode, a.errorf(diag.MissingExpectedToken, "expected enum name, found %s", a.describe())
	}

	enum := a.tree.New(cppast.KindEnum, name)
	if err := a.attach(enum, header); err != nil {
		return cppast.NoNode, err
	}

	if err := a.skipBaseClause(name); err != nil {
		return cppast.NoNode, err
	}
	if err := a.expectSymbol("{", "to open enum "+name); err != nil {
		return cppast.NoNode, err
	}

	if err := a.enumItems(enum, name); err != nil {
		return cppast.NoNode, err
	}
	if err := a.expectSymbol(";", "after enum "+name); err != nil {
		return cppast.NoNode, err
	}

	a.finish(enum, first)
	return enum, nil
}

// enumItems consumes the item list through the closing "}".
func (a *analyzer) enumItems(enum cppast.NodeID, name string) error {
	for {
		if a.eof() {
			return a.errorf(diag.UnbalancedDelimiters, "expected \"}\" to close enum %s before end of file", name)
		}

		item, ok, err := a.acceptEnumItem()
		if err != nil {
			return err
		}
		if ok {
			if err := a.attach(enum, item); err != nil {
				return err
			}
		}

		switch {
		case a.acceptSymbol(","):
		case a.acceptSymbol("}"):
			return nil
		case a.eof():
			return a.errorf(diag.UnbalancedDelimiters, "expected \"}\" to close enum %s before end of file", name)
		default:
			return a.errorf(diag.MissingExpectedToken,
				"expected \",\" or \"}\" in enum %s, found %s", name, a.describe())
		}
	}
}

// acceptEnumItem parses UMETA(...)? Name (= expr)?.
func (a *analyzer) acceptEnumItem() (cppast.NodeID, bool, error) {
	first := a.pos

	header, err := a.acceptHeaderMacro(token.MacroMeta)
	if err != nil {
		return cppast.NoNode, false, err
	}

	name, ok := a.acceptKind(token.Identifier)
	if !ok {
		if header.Valid() {
			return cppast.NoNode, false, a.errorf(diag.MissingExpectedToken,
				"expected enum item after %s, found %s", token.MacroMeta, a.describe())
		}
		a.pos = first
		return cppast.NoNode, false, nil
	}

	item := a.tree.New(cppast.KindEnumItem, name)
	if header.Valid() {
		if err := a.attach(item, header); err != nil {
			return cppast.NoNode, false, err
		}
	}

	if a.acceptSymbol("=") {
		if err := a.skipUntil(",}"); err != nil {
			return cppast.NoNode, false, err
		}
	}

	a.finish(item, first)
	return item, true, nil
}
