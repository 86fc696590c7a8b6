package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/headertool/pkg/config"
)

// envVarPrefix is the prefix for all headertool environment variables.
const envVarPrefix = "HEADERTOOL_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping ties an environment variable to a config field.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // read-only lookup table
var envMappings = map[string]envMapping{
	"JOBS":              {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"FORMAT":            {field: "format", typ: envTypeString, description: "Output format: text, tree, json, yaml, sarif or summary"},
	"IGNORE":            {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"EXTENSIONS":        {field: "extensions", typ: envTypeSlice, description: "Comma-separated list of header extensions"},
	"SKIP_GENERATED":    {field: "skip_generated", typ: envTypeBool, description: "Skip generated headers: true or false"},
	"SKIP_VENDOR":       {field: "skip_vendor", typ: envTypeBool, description: "Skip vendored directories: true or false"},
	"FOLLOW_SYMLINKS":   {field: "follow_symlinks", typ: envTypeBool, description: "Follow directory symlinks: true or false"},
	"C_FAMILY_ONLY":     {field: "c_family_only", typ: envTypeBool, description: "Skip files not detected as C-family: true or false"},
	"API_MACRO_PATTERN": {field: "api_macro_pattern", typ: envTypeString, description: "Regular expression for API export macros"},
	"MAX_FILE_SIZE":     {field: "max_file_size", typ: envTypeInt, description: "Largest file parsed in bytes (0 = unlimited)"},
}

// LoadFromEnv applies HEADERTOOL_* overrides to cfg. Empty variables are
// ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits a comma-separated list, trimming each element and
// dropping empty ones.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "api_macro_pattern":
		cfg.APIMacroPattern = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "skip_generated":
		cfg.SkipGenerated = config.Bool(value)
	case "skip_vendor":
		cfg.SkipVendor = config.Bool(value)
	case "follow_symlinks":
		cfg.FollowSymlinks = config.Bool(value)
	case "c_family_only":
		cfg.CFamilyOnly = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int64) error {
	switch field {
	case "jobs":
		cfg.Jobs = int(value)
	case "max_file_size":
		cfg.MaxFileSize = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the environment variable for a config field, or ""
// if the field has none.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
