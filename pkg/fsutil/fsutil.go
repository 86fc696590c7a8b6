// Package fsutil reads header files under a size limit and writes output
// files atomically.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the file is larger than the allowed size.
	ErrTooLarge = errors.New("file exceeds max file size")
)

// FileInfo captures the state of a file when it was read.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
}

// ReadFile reads path. A positive maxSize rejects larger files with
// ErrTooLarge before reading them. Errors do not repeat the path; callers
// add the name they display.
func ReadFile(ctx context.Context, path string, maxSize int64) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, categorize(err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, categorize(err)
	}
	if stat.IsDir() {
		return nil, nil, ErrIsDirectory
	}
	if maxSize > 0 && stat.Size() > maxSize {
		return nil, nil, fmt.Errorf("%w (%d > %d bytes)", ErrTooLarge, stat.Size(), maxSize)
	}

	var r io.Reader = f
	if maxSize > 0 {
		// The file may grow between Stat and Read.
		r = io.LimitReader(f, maxSize+1)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, categorize(err)
	}
	if maxSize > 0 && int64(len(content)) > maxSize {
		return nil, nil, fmt.Errorf("%w (more than %d bytes)", ErrTooLarge, maxSize)
	}

	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    int64(len(content)),
	}
	return content, info, nil
}

func categorize(err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
