package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdindent/pkg/langdetect"
)

// Discover returns the sorted, de-duplicated absolute paths of the Markdown
// files named by opts. Explicit file arguments are accepted when their
// extension matches or linguist recognises them as Markdown; directories
// are walked, skipping hidden entries.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	collect := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if m.file(abs, true) {
				collect(abs)
			}
			continue
		}

		if real, err := filepath.EvalSymlinks(abs); err == nil {
			m.visited[real] = struct{}{}
		}
		if err := m.walk(ctx, abs, collect); err != nil {
			return nil, err
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

// CompileGlob compiles a slash-separated ignore or include pattern.
// "*" stays within one path segment and "**" crosses segments.
func CompileGlob(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(filepath.ToSlash(pattern), '/')
	if err != nil {
		return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
	}
	return g, nil
}

type matcher struct {
	workDir    string
	extensions []string
	detect     bool
	vendored   bool
	follow     bool
	visited    map[string]struct{}
	include    []glob.Glob
	exclude    []glob.Glob
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	m := &matcher{
		workDir:  workDir,
		detect:   opts.DetectMarkdown,
		vendored: opts.SkipVendored,
		follow:   opts.FollowSymlinks,
		visited:  make(map[string]struct{}),
	}
	for _, ext := range opts.extensions() {
		m.extensions = append(m.extensions, strings.ToLower(ext))
	}

	var err error
	if m.include, err = compileAll(opts.IncludeGlobs); err != nil {
		return nil, err
	}
	if m.exclude, err = compileAll(opts.ExcludeGlobs); err != nil {
		return nil, err
	}
	return m, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := CompileGlob(pattern)
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// rel returns path relative to the working directory in slash form.
func (m *matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// matchAny tests the relative path and, for patterns without a slash,
// the base name, so "*.md" matches at any depth.
func matchAny(globs []glob.Glob, rel string) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

func (m *matcher) markdown(path string) bool {
	if slices.Contains(m.extensions, strings.ToLower(filepath.Ext(path))) {
		return true
	}
	return m.detect && langdetect.IsMarkdown(path)
}

// file reports whether a regular file is selected. Explicit arguments
// bypass the include filter but not the exclude filter.
func (m *matcher) file(path string, explicit bool) bool {
	if !m.markdown(path) {
		return false
	}
	rel := m.rel(path)
	if matchAny(m.exclude, rel) {
		return false
	}
	if !explicit && len(m.include) > 0 && !matchAny(m.include, rel) {
		return false
	}
	return true
}

// skipDir reports whether a directory below a walk root is pruned.
func (m *matcher) skipDir(path, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	rel := m.rel(path)
	if matchAny(m.exclude, rel) || matchAny(m.exclude, rel+"/") {
		return true
	}
	return m.vendored && langdetect.IsVendored(rel)
}

func (m *matcher) walk(ctx context.Context, root string, collect func(string)) error {
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

		if strings.HasPrefix(entry.Name(), ".") {
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
				if !m.follow || m.skipDir(path, entry.Name()) {
					return nil
				}
				if _, ok := m.visited[target]; ok {
					return nil
				}
				m.visited[target] = struct{}{}
				// WalkDir does not follow the link itself, so walk its target.
				return m.walk(ctx, target, collect)
			}
		}

		if m.file(path, false) {
			collect(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}
