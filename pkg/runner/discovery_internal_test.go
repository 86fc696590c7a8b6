package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{path: "Source/Actor.h", pattern: "*.h", want: true},
		{path: "Source/Actor.h", pattern: "Source/*.h", want: true},
		{path: "Source/Engine/Actor.h", pattern: "Source/*.h", want: false},
		{path: "Intermediate", pattern: "Intermediate/**", want: true},
		{path: "Intermediate/Build/Proxy.h", pattern: "Intermediate/**", want: true},
		{path: "IntermediateX/Proxy.h", pattern: "Intermediate/**", want: false},
		{path: "Source/ThirdParty", pattern: "**/ThirdParty", want: true},
		{path: "Source/ThirdParty/zlib.h", pattern: "**/ThirdParty", want: true},
		{path: "Source/Actor.generated.h", pattern: "**/*.generated.h", want: true},
		{path: "Plugins/A/Source/B.h", pattern: "Plugins/**/B.h", want: true},
		{path: "Plugins/A/Source/C.h", pattern: "Plugins/**/B.h", want: false},
		{path: "Source/Actor.h", pattern: "[", want: false},
		{path: "anything/at/all.h", pattern: "**", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, matchGlob(tt.path, tt.pattern))
		})
	}
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Source/Actor.h", displayPath("/work", "/work/Source/Actor.h"))
	assert.Equal(t, "/elsewhere/Actor.h", displayPath("/work", "/elsewhere/Actor.h"))
}
