package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is "yaml" (default) or "toml".
	Format string
}

// DefaultFileName returns the project config file name for a template format.
func DefaultFileName(format string) string {
	if format == TemplateTOML {
		return ".headertool.toml"
	}
	return ".headertool.yml"
}

// GenerateTemplate renders a commented configuration file holding the
// defaults. Parsing the template yields the same values as NewConfig.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch strings.ToLower(opts.Format) {
	case "", TemplateYAML:
		return yamlTemplate(), nil
	case TemplateTOML:
		return tomlTemplate(), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q (want yaml or toml)", opts.Format)
	}
}

func yamlTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString("# headertool configuration\n\n")
	buf.WriteString("# Header file extensions to scan.\n")
	buf.WriteString("extensions:\n")
	for _, ext := range DefaultExtensions() {
		fmt.Fprintf(&buf, "  - %q\n", ext)
	}
	buf.WriteString(`
# Glob patterns of files or directories to skip.
# ignore:
#   - "ThirdParty/**"
#   - "**/Intermediate/**"

# Files parsed concurrently (0 = one per CPU).
# jobs: 0

# Skip generated headers (*.generated.h and friends).
skip_generated: true

# Skip vendored directories (vendor/, third_party/, ...).
skip_vendor: true

# Traverse directory symlinks.
# follow_symlinks: false

# Skip files that are not C, C++ or Objective-C, whatever their extension.
# c_family_only: false

# Regular expression for the export macro between "class" and the class name.
`)
	fmt.Fprintf(&buf, "api_macro_pattern: %s\n", strconv.Quote(DefaultAPIMacroPattern))
	buf.WriteString(`
# Largest header parsed, in bytes (0 = unlimited).
# max_file_size: 0
`)

	return buf.Bytes()
}

func tomlTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString("# headertool configuration\n\n")
	buf.WriteString("# Header file extensions to scan.\n")
	quoted := make([]string, 0, len(DefaultExtensions()))
	for _, ext := range DefaultExtensions() {
		quoted = append(quoted, strconv.Quote(ext))
	}
	fmt.Fprintf(&buf, "extensions = [%s]\n", strings.Join(quoted, ", "))
	buf.WriteString(`
# Glob patterns of files or directories to skip.
# ignore = ["ThirdParty/**", "**/Intermediate/**"]

# Files parsed concurrently (0 = one per CPU).
# jobs = 0

# Skip generated headers (*.generated.h and friends).
skip_generated = true

# Skip vendored directories (vendor/, third_party/, ...).
skip_vendor = true

# Traverse directory symlinks.
# follow_symlinks = false

# Skip files that are not C, C++ or Objective-C, whatever their extension.
# c_family_only = false

# Regular expression for the export macro between "class" and the class name.
`)
	// TOML literal strings take backslashes verbatim.
	fmt.Fprintf(&buf, "api_macro_pattern = '%s'\n", DefaultAPIMacroPattern)
	buf.WriteString(`
# Largest header parsed, in bytes (0 = unlimited).
# max_file_size = 0
`)

	return buf.Bytes()
}
