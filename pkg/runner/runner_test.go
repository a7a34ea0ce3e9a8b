package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdindent/pkg/config"
	"github.com/yaklabco/gomdindent/pkg/format"
	"github.com/yaklabco/gomdindent/pkg/runner"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRun_CheckMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "- a\nb\n")
	writeFile(t, filepath.Join(dir, "b.md"), "- a\n  b\n")
	writeFile(t, filepath.Join(dir, "c.md"), "```\n  code\n   more\n")

	r := runner.New(format.New(format.DefaultOptions()))
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(dir, "a.md"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.md"), result.Files[1].Path)
	assert.Equal(t, filepath.Join(dir, "c.md"), result.Files[2].Path)

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 3,
		FilesProcessed:  3,
		FilesChanged:    1,
		Edits:           1,
		LinesUntouched:  3,
	}, result.Stats)
	assert.True(t, result.HasChanges())
	assert.False(t, result.HasErrors())

	got, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "- a\nb\n", string(got))
}

func TestRun_WriteMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"one.md", "two.md", "nested/three.md"} {
		writeFile(t, filepath.Join(dir, name), "- a\nb\n")
	}

	opts := format.DefaultOptions()
	opts.Write = true

	result, err := runner.New(format.New(opts)).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Stats.FilesWritten)
	assert.Equal(t, 3, result.Stats.Edits)

	for _, outcome := range result.Files {
		require.NoError(t, outcome.Error)
		got, err := os.ReadFile(outcome.Path)
		require.NoError(t, err)
		assert.Equal(t, "- a\n  b\n", string(got))
	}

	again, err := runner.New(format.New(opts)).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.False(t, again.HasChanges())
}

func TestRun_InvalidOptionsRecordedPerFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "- a\nb\n")

	opts := format.DefaultOptions()
	opts.Indent.IndentSize = -1

	result, err := runner.New(format.New(opts)).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.ErrorIs(t, result.Files[0].Error, format.ErrLayoutFailure)
	assert.True(t, result.HasErrors())
	assert.Equal(t, 1, result.Stats.FilesErrored)
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(format.New(format.DefaultOptions())).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "x\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(format.New(format.DefaultOptions())).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Extensions = []string{".md"}
	cfg.Ignore = []string{"vendor/**"}
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, []string{"docs"})
	assert.Equal(t, []string{"docs"}, opts.Paths)
	assert.Equal(t, []string{".md"}, opts.Extensions)
	assert.Equal(t, []string{"vendor/**"}, opts.ExcludeGlobs)
	assert.Equal(t, 3, opts.Jobs)
	assert.False(t, opts.DetectMarkdown)
	assert.True(t, opts.SkipVendored)

	assert.True(t, runner.OptionsFromConfig(nil, nil).DetectMarkdown)
}
