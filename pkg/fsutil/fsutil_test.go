package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdindent/pkg/fsutil"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "a.md", "- a\n  b\n")

	content, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "- a\n  b\n", string(content))
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(8), info.Size)
	assert.Equal(t, os.FileMode(0o600), info.Mode.Perm())
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	_, _, err := fsutil.ReadFile(ctx, filepath.Join(dir, "missing.md"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = fsutil.ReadFile(ctx, dir)
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = fsutil.ReadFile(cancelled, filepath.Join(dir, "x.md"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("untouched", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "x\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		for _, strict := range []bool{false, true} {
			changed, err := fsutil.Changed(ctx, info, strict)
			require.NoError(t, err)
			assert.False(t, changed)
		}
	})

	t.Run("size differs", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "x\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("xy\n"), 0o600))

		changed, err := fsutil.Changed(ctx, info, false)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("same size and time only caught when strict", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "ab\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("ba\n"), 0o600))
		require.NoError(t, os.Chtimes(path, time.Now(), info.ModTime))

		changed, err := fsutil.Changed(ctx, info, false)
		require.NoError(t, err)
		assert.False(t, changed)

		changed, err = fsutil.Changed(ctx, info, true)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "a.md", "x\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		changed, err := fsutil.Changed(ctx, info, true)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.Changed(ctx, nil, true)
		assert.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}
