package fsutil_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/yaklabco/headertool/pkg/fsutil"
)

func FuzzWriteThenRead(f *testing.F) {
	f.Add([]byte(""), int64(0))
	f.Add([]byte("UCLASS()\nclass A {};\n"), int64(0))
	f.Add([]byte("\x00\x01\x02\x03"), int64(2))
	f.Add(make([]byte, 1024), int64(1024))

	f.Fuzz(func(t *testing.T, content []byte, maxSize int64) {
		path := filepath.Join(t.TempDir(), "fuzz.h")
		ctx := context.Background()

		if err := fsutil.WriteAtomic(ctx, path, content, 0); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, _, err := fsutil.ReadFile(ctx, path, maxSize)
		if maxSize > 0 && int64(len(content)) > maxSize {
			if err == nil {
				t.Fatalf("expected size error for %d > %d", len(content), maxSize)
			}
			return
		}
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(content))
		}
	})
}
