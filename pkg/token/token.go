package token

// Token is a classified span of the preprocessed text.
// It holds no text of its own; Text slices it out of the buffer.
type Token struct {
	// Kind classifies the token.
	Kind Kind

	// Offset is the byte index into the preprocessed text.
	Offset uint32

	// Length is the span length in bytes. EndOfFile tokens are empty.
	Length uint32
}

// Start returns the offset as an int.
func (t Token) Start() int {
	return int(t.Offset)
}

// End returns the exclusive end offset.
func (t Token) End() int {
	return int(t.Offset) + int(t.Length)
}

// Text returns the token text from the buffer it was scanned from.
func (t Token) Text(content []byte) string {
	end := t.End()
	if end > len(content) || t.Start() > end {
		return ""
	}
	return string(content[t.Offset:end])
}

// Is reports whether the token has one of the kinds in set and, when text is
// non-empty, the given text.
func (t Token) Is(content []byte, set Kind, text string) bool {
	if !t.Kind.In(set) {
		return false
	}
	return text == "" || t.Text(content) == text
}

// HeaderMacro names.
const (
	MacroClass    = "UCLASS"
	MacroEnum     = "UENUM"
	MacroStruct   = "USTRUCT"
	MacroMethod   = "UMETHOD"
	MacroMeta     = "UMETA"
	MacroProperty = "UPROPERTY"
	MacroFunction = "UFUNCTION"

	// GeneratedBody must open every annotated class body.
	GeneratedBody = "GENERATED_BODY"
)
