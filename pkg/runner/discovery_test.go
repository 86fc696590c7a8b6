package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/headertool/pkg/runner"
)

// writeTree creates files (relative to dir) with placeholder content.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("#pragma once\n"), 0o600))
	}
}

func rel(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "Actor.h")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"Actor.h"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "Actor.h")}, files)
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir,
		"Source/Actor.h",
		"Source/Engine/World.hpp",
		"Source/Engine/World.cpp",
		"Source/Inline.inl",
		"README.md",
	)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Source/Actor.h",
		"Source/Engine/World.hpp",
		"Source/Inline.inl",
	}, rel(t, dir, files))
}

func TestDiscover_Filters(t *testing.T) {
	t.Parallel()

	tree := []string{
		"Source/Actor.h",
		"Source/Actor.generated.h",
		"Intermediate/Proxy/Proxy.h",
		"Source/ThirdParty/zlib/zlib.h",
		"vendor/json/json.hpp",
		".hidden/Secret.h",
		"Source/.Cache.h",
		"Plugins/Widget.H",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults keep vendored",
			opts: runner.Options{},
			want: []string{
				"Intermediate/Proxy/Proxy.h",
				"Plugins/Widget.H",
				"Source/Actor.generated.h",
				"Source/Actor.h",
				"Source/ThirdParty/zlib/zlib.h",
				"vendor/json/json.hpp",
			},
		},
		{
			name: "skip vendor",
			opts: runner.Options{SkipVendor: true},
			want: []string{
				"Intermediate/Proxy/Proxy.h",
				"Plugins/Widget.H",
				"Source/Actor.generated.h",
				"Source/Actor.h",
			},
		},
		{
			name: "exclude globs",
			opts: runner.Options{ExcludeGlobs: []string{"Intermediate/**", "*.generated.h", "**/ThirdParty"}},
			want: []string{
				"Plugins/Widget.H",
				"Source/Actor.h",
				"vendor/json/json.hpp",
			},
		},
		{
			name: "include globs",
			opts: runner.Options{IncludeGlobs: []string{"Source/**"}, SkipVendor: true},
			want: []string{
				"Source/Actor.generated.h",
				"Source/Actor.h",
			},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".hpp"}},
			want: []string{"vendor/json/json.hpp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree...)

			opts := tt.opts
			opts.WorkingDir = dir
			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, dir, files))
		})
	}
}

func TestDiscover_ExplicitFileBypassesDirectoryFilters(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "vendor/lib/Lib.h", ".hidden/Secret.h")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"vendor/lib/Lib.h", ".hidden/Secret.h", "vendor/lib/Lib.h"},
		WorkingDir: dir,
		SkipVendor: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden/Secret.h", "vendor/lib/Lib.h"}, rel(t, dir, files))
}

func TestDiscover_MultiplePathsDeduplicated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "A/One.h", "B/Two.h")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"B", "A", ".", "A/One.h"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A/One.h", "B/Two.h"}, rel(t, dir, files))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "Real/Actor.h")
	if err := os.Symlink(filepath.Join(dir, "Real"), filepath.Join(dir, "Link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	// A cycle back to the root must not hang.
	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "Real", "Loop")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"Real/Actor.h"}, rel(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Contains(t, rel(t, dir, files), "Real/Actor.h")
	assert.Len(t, files, 1)
}
