package token

// MaxSymbolLen is the length of the longest symbol.
const MaxSymbolLen = 3

// words classifies reserved identifiers. Anything absent is an Identifier.
//
//nolint:gochecknoglobals // read-only lookup table
var words = map[string]Kind{
	"alignas":          Keyword,
	"alignof":          Keyword,
	"and":              Keyword,
	"and_eq":           Keyword,
	"asm":              Keyword,
	"atomic_cancel":    Keyword,
	"atomic_commit":    Keyword,
	"atomic_noexcept":  Keyword,
	"auto":             Keyword,
	"bitand":           Keyword,
	"bitor":            Keyword,
	"bool":             Keyword,
	"break":            Keyword,
	"case":             Keyword,
	"catch":            Keyword,
	"char":             Keyword,
	"char8_t":          Keyword,
	"char16_t":         Keyword,
	"char32_t":         Keyword,
	"class":            Keyword,
	"compl":            Keyword,
	"concept":          Keyword,
	"const":            Keyword,
	"consteval":        Keyword,
	"constexpr":        Keyword,
	"constinit":        Keyword,
	"const_cast":       Keyword,
	"continue":         Keyword,
	"co_await":         Keyword,
	"co_return":        Keyword,
	"co_yield":         Keyword,
	"decltype":         Keyword,
	"default":          Keyword,
	"delete":           Keyword,
	"do":               Keyword,
	"double":           Keyword,
	"dynamic_cast":     Keyword,
	"else":             Keyword,
	"enum":             Keyword,
	"explicit":         Keyword,
	"export":           Keyword,
	"extern":           Keyword,
	"float":            Keyword,
	"for":              Keyword,
	"friend":           Keyword,
	"goto":             Keyword,
	"if":               Keyword,
	"inline":           Keyword,
	"int":              Keyword,
	"long":             Keyword,
	"mutable":          Keyword,
	"namespace":        Keyword,
	"new":              Keyword,
	"noexcept":         Keyword,
	"not":              Keyword,
	"not_eq":           Keyword,
	"operator":         Keyword,
	"or":               Keyword,
	"or_eq":            Keyword,
	"private":          Keyword,
	"protected":        Keyword,
	"public":           Keyword,
	"reflexpr":         Keyword,
	"register":         Keyword,
	"reinterpret_cast": Keyword,
	"requires":         Keyword,
	"return":           Keyword,
	"short":            Keyword,
	"signed":           Keyword,
	"sizeof":           Keyword,
	"static":           Keyword,
	"static_assert":    Keyword,
	"static_cast":      Keyword,
	"struct":           Keyword,
	"switch":           Keyword,
	"synchronized":     Keyword,
	"template":         Keyword,
	"this":             Keyword,
	"thread_local":     Keyword,
	"throw":            Keyword,
	"try":              Keyword,
	"typedef":          Keyword,
	"typeid":           Keyword,
	"typename":         Keyword,
	"union":            Keyword,
	"unsigned":         Keyword,
	"using":            Keyword,
	"virtual":          Keyword,
	"void":             Keyword,
	"volatile":         Keyword,
	"wchar_t":          Keyword,
	"while":            Keyword,
	"xor":              Keyword,
	"xor_eq":           Keyword,

	"true":    BooleanLiteral,
	"false":   BooleanLiteral,
	"nullptr": PointerLiteral,

	MacroClass:    HeaderMacro,
	MacroEnum:     HeaderMacro,
	MacroStruct:   HeaderMacro,
	MacroMethod:   HeaderMacro,
	MacroMeta:     HeaderMacro,
	MacroProperty: HeaderMacro,
	MacroFunction: HeaderMacro,
}

// symbols is the operator and punctuator set.
//
//nolint:gochecknoglobals // read-only lookup table
var symbols = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "%": {},
	"++": {}, "--": {},
	"=": {}, "+=": {}, "-=": {}, "*=": {}, "/=": {}, "%=": {},
	"<<=": {}, ">>=": {}, "&=": {}, "^=": {}, "|=": {},
	"==": {}, "!=": {}, "<": {}, ">": {}, "<=": {}, ">=": {}, "<=>": {},
	"&&": {}, "||": {}, "!": {},
	"|": {}, "&": {}, "^": {}, "~": {}, "<<": {}, ">>": {},
	"::": {}, "(": {}, ")": {}, "[": {}, "]": {}, "{": {}, "}": {},
	";": {}, ",": {}, ":": {}, "...": {},
	"->": {}, "->*": {}, ".": {}, ".*": {}, "?": {},
}

// symbolBytes holds every byte that can start or continue a symbol.
//
//nolint:gochecknoglobals // read-only lookup table
var symbolBytes = func() [256]bool {
	var set [256]bool
	for s := range symbols {
		for i := range len(s) {
			set[s[i]] = true
		}
	}
	return set
}()

// Lookup classifies an identifier-shaped word.
func Lookup(word string) Kind {
	if kind, ok := words[word]; ok {
		return kind
	}
	return Identifier
}

// IsSymbol reports whether s is an operator or punctuator.
func IsSymbol(s string) bool {
	_, ok := symbols[s]
	return ok
}

// IsSymbolByte reports whether c appears in any symbol.
func IsSymbolByte(c byte) bool {
	return symbolBytes[c]
}
