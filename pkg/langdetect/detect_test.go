package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVendored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{path: "vendor/zlib/zlib.h", want: true},
		{path: "Source/third_party/json.hpp", want: true},
		{path: "Source/Engine/Actor.h", want: false},
		{path: "Actor.h", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsVendored(tt.path))
		})
	}
}

func TestIsGenerated(t *testing.T) {
	t.Parallel()

	plain := []byte("#pragma once\nUCLASS()\nclass AActor {\n\tGENERATED_BODY()\n};\n")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "generated suffix", path: "Intermediate/Actor.generated.h", want: true},
		{name: "suffix case", path: "Actor.Generated.H", want: true},
		{name: "gen suffix", path: "Actor.gen.h", want: true},
		{name: "plain header", path: "Source/Actor.h", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsGenerated(tt.path, plain))
		})
	}
}

func TestLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "C++", Language("Source/Actor.hpp", nil))
	assert.True(t, IsHeaderLanguage(Language("Source/Actor.hpp", nil)))
	assert.False(t, IsHeaderLanguage("Go"))
	assert.False(t, IsHeaderLanguage(""))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	got := Classify("vendor/lib/Widget.generated.h", nil)
	assert.True(t, got.Vendored)
	assert.True(t, got.Generated)

	got = Classify("Source/Widget.hpp", []byte("class Widget {};\n"))
	assert.False(t, got.Vendored)
	assert.False(t, got.Generated)
	assert.Equal(t, "C++", got.Language)
}

func BenchmarkClassify(b *testing.B) {
	content := []byte(`UCLASS(Blueprintable)
class ENGINE_API AActor : public UObject
{
	GENERATED_BODY()

	UFUNCTION(BlueprintCallable)
	void Tick(float DeltaTime);
};
`)
	b.ResetTimer()
	for range b.N {
		Classify("Source/Engine/Actor.h", content)
	}
}
