package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/headertool/pkg/langdetect"
)

// Discover finds header files matching opts. It returns a sorted,
// de-duplicated list of absolute paths. Paths named explicitly are kept even
// when they sit in a hidden or vendored directory; only the extension and
// glob filters apply to them.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m := newMatcher(workDir, opts)
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if m.matchesFile(absPath) {
				add(absPath)
			}
			continue
		}

		discovered, err := m.walk(ctx, absPath, make(map[string]bool))
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// matcher applies the discovery filters relative to a working directory.
type matcher struct {
	workDir    string
	extensions map[string]bool
	opts       Options
}

func newMatcher(workDir string, opts Options) *matcher {
	exts := make(map[string]bool)
	for _, ext := range opts.effectiveExtensions() {
		exts[strings.ToLower(ext)] = true
	}
	return &matcher{workDir: workDir, extensions: exts, opts: opts}
}

func (m *matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// skipDir reports whether a directory below the walk root is pruned.
func (m *matcher) skipDir(path, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	rel := m.rel(path)
	if matchesAny(rel, m.opts.ExcludeGlobs) {
		return true
	}
	return m.opts.SkipVendor && langdetect.IsVendored(rel+"/")
}

func (m *matcher) matchesFile(path string) bool {
	if !m.extensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}

	rel := m.rel(path)
	if matchesAny(rel, m.opts.ExcludeGlobs) {
		return false
	}
	if len(m.opts.IncludeGlobs) > 0 && !matchesAny(rel, m.opts.IncludeGlobs) {
		return false
	}
	return true
}

// walk collects matching files under root. visited holds the resolved
// directories already walked through symlinks so cycles terminate.
func (m *matcher) walk(ctx context.Context, root string, visited map[string]bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && m.skipDir(path, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !m.opts.FollowSymlinks || visited[target] || m.skipDir(path, entry.Name()) {
					return nil
				}
				visited[target] = true

				// WalkDir does not follow the root if it is a symlink, so walk the target.
				sub, err := m.walk(ctx, target, visited)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if m.matchesFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated path against a glob. Besides
// filepath.Match syntax it supports "**/name", "dir/**" and "a/**/b".
// A pattern without a slash also matches the base name.
func matchGlob(path, pattern string) bool {
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStar(path, pattern)
	}

	if ok, err := filepath.Match(pattern, path); err == nil && ok {
		return true
	}
	if strings.Contains(pattern, "/") {
		return false
	}
	ok, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && ok
}

func matchDoubleStar(path, pattern string) bool {
	prefix, suffix, _ := strings.Cut(pattern, "**")
	prefix = strings.TrimSuffix(prefix, "/")
	suffix = strings.TrimPrefix(suffix, "/")

	if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+"/") {
		return false
	}
	if suffix == "" {
		return true
	}

	// Try the suffix against every tail of the path after the prefix, and a
	// single-segment suffix against every component so "**/Intermediate"
	// covers files below it.
	rest := strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
	parts := strings.Split(rest, "/")
	for i := range parts {
		if matchGlob(strings.Join(parts[i:], "/"), suffix) {
			return true
		}
		if strings.Contains(suffix, "/") {
			continue
		}
		if ok, err := filepath.Match(suffix, parts[i]); err == nil && ok {
			return true
		}
	}
	return false
}
