// Package configloader resolves the effective configuration from defaults,
// user and project config files, environment variables and CLI flags.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/headertool/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts.
	// Defaults to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file given with --config.
	ExplicitPath string

	// IgnoreUserConfig skips $XDG_CONFIG_HOME/headertool.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips the upward project config search.
	IgnoreProjectConfig bool

	// IgnoreEnv skips HEADERTOOL_* environment variables.
	IgnoreEnv bool

	// CLIConfig holds values set by flags. It has the highest precedence.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	// Config is the merged configuration.
	Config *config.Config

	// Paths are the discovered config file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files loaded, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal findings such as unknown keys.
	Warnings []string
}

// Load resolves the configuration. Precedence, highest first:
//  1. CLI flags (opts.CLIConfig)
//  2. HEADERTOOL_* environment variables
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.headertool.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/headertool/config.yaml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}

	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}

		fileCfg, warnings, err := LoadFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}

		validation := ValidateWithFile(fileCfg, layer.path)
		if !validation.Valid() {
			return nil, &validation.Errors[0]
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		result.Warnings = append(result.Warnings, warnings...)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads one config file. The format follows the extension: .toml
// is TOML, anything else YAML. Unknown TOML keys are returned as warnings.
func LoadFile(path string) (*config.Config, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	if IsTOMLConfig(path) {
		cfg, unknown, err := config.FromTOML(content)
		if err != nil {
			return nil, nil, err
		}

		warnings := make([]string, 0, len(unknown))
		for _, key := range unknown {
			warnings = append(warnings, fmt.Sprintf("%s: unknown key %q ignored", path, key))
		}
		return cfg, warnings, nil
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, nil, err
	}
	return cfg, nil, nil
}

// IsTOMLConfig reports whether path names a TOML file.
func IsTOMLConfig(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// IsYAMLConfig reports whether path names a YAML file.
func IsYAMLConfig(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
