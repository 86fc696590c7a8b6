package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/headertool/pkg/source"
)

func TestNewLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty", content: "", want: nil},
		{name: "single line", content: "class A;", want: []string{"class A;"}},
		{name: "lf", content: "a\nb\n", want: []string{"a", "b", ""}},
		{name: "crlf", content: "a\r\nb", want: []string{"a", "b"}},
		{name: "blank lines", content: "\n\n", want: []string{"", "", ""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lines := source.NewLines([]byte(tc.content))
			assert.Equal(t, len(tc.want), lines.Count())

			for i, want := range tc.want {
				assert.Equal(t, want, string(lines.Content(i+1)), "line %d", i+1)
			}
		})
	}
}

func TestLines_OutOfRange(t *testing.T) {
	t.Parallel()

	lines := source.NewLines([]byte("a\nb"))

	assert.Nil(t, lines.Content(0))
	assert.Nil(t, lines.Content(3))

	_, ok := lines.At(-1)
	assert.False(t, ok)

	info, ok := lines.At(2)
	assert.True(t, ok)
	assert.Equal(t, source.Line{Start: 2, NewlineStart: 3, End: 3}, info)
}
