// Package runner discovers header files and parses them concurrently.
package runner

import (
	"github.com/yaklabco/headertool/pkg/config"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and is the base for display paths.
	// If empty, the process working directory is used.
	WorkingDir string

	// Extensions are the header extensions, with leading dot.
	// Defaults to config.DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to WorkingDir.
	// Empty means every file with a matching extension.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// SkipGenerated skips generated headers after reading them.
	SkipGenerated bool

	// SkipVendor skips vendored directories during discovery.
	SkipVendor bool

	// CFamilyOnly skips files that enry detects as a language other than
	// C, C++ or Objective-C. Files of unknown language are still parsed.
	CFamilyOnly bool

	// MaxFileSize fails larger files without parsing them, in bytes.
	// 0 means unlimited.
	MaxFileSize int64

	// Jobs caps concurrent parses. 0 or negative means runtime.NumCPU().
	Jobs int
}

// OptionsFromConfig builds Options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, workDir string, paths []string) Options {
	return Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Extensions:     cfg.EffectiveExtensions(),
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: cfg.ShouldFollowSymlinks(),
		SkipGenerated:  cfg.ShouldSkipGenerated(),
		SkipVendor:     cfg.ShouldSkipVendor(),
		CFamilyOnly:    cfg.ShouldRequireCFamily(),
		MaxFileSize:    cfg.MaxFileSize,
		Jobs:           cfg.Jobs,
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
