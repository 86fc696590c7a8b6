// Package config defines the headertool configuration.
// It holds plain data only; discovery and merging live in internal/configloader.
package config

import "slices"

// OutputFormat selects the report renderer.
type OutputFormat string

// Output formats.
const (
	FormatText    OutputFormat = "text"
	FormatTree    OutputFormat = "tree"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// Formats lists every output format in display order.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTree, FormatJSON, FormatYAML, FormatSARIF, FormatSummary}
}

// IsValid reports whether f is a known format.
func (f OutputFormat) IsValid() bool {
	return slices.Contains(Formats(), f)
}

// DefaultAPIMacroPattern matches import/export macros such as ENGINE_API.
const DefaultAPIMacroPattern = `^[A-Z][A-Z0-9_]*_API$`

// DefaultExtensions returns the header extensions scanned by default.
func DefaultExtensions() []string {
	return []string{".h", ".hh", ".hpp", ".hxx", ".inl"}
}

// Config is the root configuration.
//
// Pointer booleans distinguish "unset" from false so that a higher layer can
// turn a default off.
type Config struct {
	// Extensions are the file extensions treated as headers, with leading dot.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Ignore holds glob patterns of files and directories to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Jobs is the number of files parsed concurrently. 0 means one per CPU.
	Jobs int `yaml:"jobs,omitempty" toml:"jobs,omitempty"`

	// SkipGenerated skips generated headers such as *.generated.h.
	SkipGenerated *bool `yaml:"skip_generated,omitempty" toml:"skip_generated,omitempty"`

	// SkipVendor skips vendored third-party directories.
	SkipVendor *bool `yaml:"skip_vendor,omitempty" toml:"skip_vendor,omitempty"`

	// FollowSymlinks traverses directory symlinks during discovery.
	FollowSymlinks *bool `yaml:"follow_symlinks,omitempty" toml:"follow_symlinks,omitempty"`

	// CFamilyOnly skips files whose detected language is not C, C++ or
	// Objective-C, whatever their extension.
	CFamilyOnly *bool `yaml:"c_family_only,omitempty" toml:"c_family_only,omitempty"`

	// APIMacroPattern recognises the import/export macro in class heads.
	APIMacroPattern string `yaml:"api_macro_pattern,omitempty" toml:"api_macro_pattern,omitempty"`

	// MaxFileSize is the largest file parsed, in bytes. 0 means unlimited.
	MaxFileSize int64 `yaml:"max_file_size,omitempty" toml:"max_file_size,omitempty"`

	// CLI-only options, never read from or written to files.

	// Format selects the report renderer.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Output is the report file. Empty means stdout.
	Output string `yaml:"-" toml:"-"`

	// NoContext omits source lines under error messages.
	NoContext bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config holding the defaults.
func NewConfig() *Config {
	return &Config{
		Extensions:      DefaultExtensions(),
		Jobs:            0,
		SkipGenerated:   Bool(true),
		SkipVendor:      Bool(true),
		FollowSymlinks:  Bool(false),
		CFamilyOnly:     Bool(false),
		APIMacroPattern: DefaultAPIMacroPattern,
		Format:          FormatText,
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// BoolValue returns *p, or def when p is nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ShouldSkipGenerated reports the effective SkipGenerated setting.
func (c *Config) ShouldSkipGenerated() bool {
	return c != nil && BoolValue(c.SkipGenerated, true)
}

// ShouldSkipVendor reports the effective SkipVendor setting.
func (c *Config) ShouldSkipVendor() bool {
	return c != nil && BoolValue(c.SkipVendor, true)
}

// ShouldFollowSymlinks reports the effective FollowSymlinks setting.
func (c *Config) ShouldFollowSymlinks() bool {
	return c != nil && BoolValue(c.FollowSymlinks, false)
}

// ShouldRequireCFamily reports the effective CFamilyOnly setting.
func (c *Config) ShouldRequireCFamily() bool {
	return c != nil && BoolValue(c.CFamilyOnly, false)
}

// EffectiveAPIMacroPattern returns the configured pattern or the default.
func (c *Config) EffectiveAPIMacroPattern() string {
	if c == nil || c.APIMacroPattern == "" {
		return DefaultAPIMacroPattern
	}
	return c.APIMacroPattern
}

// EffectiveExtensions returns the configured extensions or the defaults.
func (c *Config) EffectiveExtensions() []string {
	if c == nil || len(c.Extensions) == 0 {
		return DefaultExtensions()
	}
	return c.Extensions
}
