package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gomdindent/pkg/fsutil"
)

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("- a\n  b\n"))
	f.Add([]byte("\x00\xff\r\n"))

	f.Fuzz(func(t *testing.T, content []byte) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "f.md")

		if err := fsutil.WriteAtomic(ctx, path, content, 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("read back %q, want %q", got, content)
		}

		changed, err := fsutil.Changed(ctx, info, true)
		if err != nil || changed {
			t.Errorf("Changed() = %v, %v; want false, nil", changed, err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Errorf("stat: %v", err)
		}
	})
}
