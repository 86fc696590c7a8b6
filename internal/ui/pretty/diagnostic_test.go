package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/headertool/internal/ui/pretty"
	"github.com/yaklabco/headertool/pkg/diag"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	err := &diag.Error{
		Code:    diag.MissingExpectedToken,
		Message: `expected ";" after class AActor`,
		Path:    "Source/Actor.h",
		Line:    9,
		Column:  2,
	}

	got := styles.FormatError(err, true, "}\n")
	assert.Equal(t,
		"Source/Actor.h:9:2: error: expected \";\" after class AActor [MissingExpectedToken]\n"+
			"    }\n"+
			"     ^\n",
		got)

	got = styles.FormatError(err, false, "}")
	assert.Equal(t, "Source/Actor.h:9:2: error: expected \";\" after class AActor [MissingExpectedToken]\n", got)
}

func TestFormatFileError(t *testing.T) {
	t.Parallel()

	got := pretty.NewStyles(false).FormatFileError("a.h", errors.New("permission denied"))
	assert.Equal(t, "a.h: error: permission denied\n", got)
}

func TestCaretPadding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		column int
		want   string
	}{
		{name: "first column", line: "UCLASS(", column: 1, want: ""},
		{name: "ascii", line: "class X", column: 7, want: "      "},
		{name: "tabs kept", line: "\t\tvoid F(", column: 3, want: "\t\t"},
		{name: "wide runes", line: "// 日本 x", column: 11, want: "        "},
		{name: "past end", line: "ab", column: 9, want: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pretty.CaretPadding(tt.line, tt.column))
		})
	}
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.h (3 declarations)", styles.FormatFileHeader("a.h", 3))
	assert.Equal(t, "a.h", styles.FormatFileHeader("a.h", 0))
}
