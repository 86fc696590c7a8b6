// Package langdetect classifies candidate header files before parsing.
// It uses go-enry to spot vendored paths, generated files and the source
// language of a header.
package langdetect

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// generatedSuffixes mark headers emitted by the reflection code generator.
//
//nolint:gochecknoglobals // read-only lookup table
var generatedSuffixes = []string{".generated.h", ".gen.h"}

// headerLanguages are the enry languages a reflected header can be written in.
//
//nolint:gochecknoglobals // read-only lookup table
var headerLanguages = []string{"C", "C++", "Objective-C", "Objective-C++"}

// Classification describes one candidate file.
type Classification struct {
	// Language is the enry language name, or "" if unknown.
	Language string

	// Vendored is true for third-party paths such as vendor/ or third_party/.
	Vendored bool

	// Generated is true for machine-written files.
	Generated bool
}

// Classify inspects path and, when non-nil, content.
func Classify(path string, content []byte) Classification {
	return Classification{
		Language:  Language(path, content),
		Vendored:  IsVendored(path),
		Generated: IsGenerated(path, content),
	}
}

// IsVendored reports whether path lies in a vendored directory.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// IsGenerated reports whether the file was written by a generator: either the
// reflection generator's own output or anything enry recognises.
func IsGenerated(path string, content []byte) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return enry.IsGenerated(filepath.ToSlash(path), content)
}

// Language returns the enry language for the file, or "" if it cannot tell.
func Language(path string, content []byte) string {
	return enry.GetLanguage(filepath.Base(path), content)
}

// IsHeaderLanguage reports whether lang is a C-family language.
func IsHeaderLanguage(lang string) bool {
	return slices.Contains(headerLanguages, lang)
}
