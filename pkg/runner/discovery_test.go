package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/gomdindent/pkg/runner"
)

func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("- a\nb\n"), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func joinAll(dir string, rel ...string) []string {
	out := make([]string, 0, len(rel))
	for _, r := range rel {
		out = append(out, filepath.Join(dir, filepath.FromSlash(r)))
	}
	slices.Sort(out)
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		opts  runner.Options
		want  []string
	}{
		{
			name:  "extensions only",
			files: []string{"readme.md", "guide/intro.MARKDOWN", "src/main.go", "notes.txt"},
			want:  []string{"guide/intro.MARKDOWN", "readme.md"},
		},
		{
			name:  "hidden entries are skipped",
			files: []string{"a.md", ".hidden/b.md", ".c.md"},
			want:  []string{"a.md"},
		},
		{
			name:  "exclude directory glob",
			files: []string{"a.md", "build/b.md", "build/deep/c.md"},
			opts:  runner.Options{ExcludeGlobs: []string{"build/**"}},
			want:  []string{"a.md"},
		},
		{
			name:  "exclude base name at any depth",
			files: []string{"a.md", "guide/CHANGELOG.md", "CHANGELOG.md"},
			opts:  runner.Options{ExcludeGlobs: []string{"CHANGELOG.md"}},
			want:  []string{"a.md"},
		},
		{
			name:  "include globs",
			files: []string{"a.md", "guide/b.md", "guide/sub/c.md"},
			opts:  runner.Options{IncludeGlobs: []string{"guide/**"}},
			want:  []string{"guide/b.md", "guide/sub/c.md"},
		},
		{
			name:  "linguist extensions",
			files: []string{"a.md", "b.mdown", "c.mkd", "d.txt"},
			opts:  runner.Options{DetectMarkdown: true},
			want:  []string{"a.md", "b.mdown", "c.mkd"},
		},
		{
			name:  "vendored directories",
			files: []string{"a.md", "vendor/b.md", "node_modules/pkg/c.md"},
			opts:  runner.Options{SkipVendored: true},
			want:  []string{"a.md"},
		},
		{
			name:  "vendored directories kept by default",
			files: []string{"a.md", "vendor/b.md"},
			want:  []string{"a.md", "vendor/b.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tt.files...)

			opts := tt.opts
			opts.WorkingDir = dir

			got, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			want := joinAll(dir, tt.want...)
			if !slices.Equal(got, want) {
				t.Errorf("Discover() = %v, want %v", got, want)
			}
		})
	}
}

func TestDiscover_ExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "guide/a.md", "guide/b.txt")

	opts := runner.Options{
		Paths:        []string{"guide/a.md", "guide/b.txt", "guide/a.md"},
		WorkingDir:   dir,
		IncludeGlobs: []string{"other/**"},
	}
	got, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if want := joinAll(dir, "guide/a.md"); !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"["},
	})
	if err == nil {
		t.Fatal("expected error for malformed glob")
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, "a.md")
	writeTree(t, outside, "linked.md")
	if err := os.Symlink(outside, filepath.Join(dir, "ext")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(dir, filepath.Join(dir, "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if want := joinAll(dir, "a.md"); !slices.Equal(got, want) {
		t.Errorf("without follow: got %v, want %v", got, want)
	}

	got, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("with follow: got %v, want a.md and the linked file", got)
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()}); err == nil {
		t.Fatal("expected cancellation error")
	}
}
