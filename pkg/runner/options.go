// Package runner formats many Markdown files concurrently.
package runner

import "github.com/yaklabco/gomdindent/pkg/config"

// Options controls file discovery and concurrency.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process directory.
	WorkingDir string

	// Extensions are the lowercase, dot-prefixed extensions treated as
	// Markdown. Empty means DefaultExtensions.
	Extensions []string

	// DetectMarkdown also accepts files linguist recognises as Markdown,
	// such as .mdown or .mkd, when walking directories.
	DetectMarkdown bool

	// IncludeGlobs restrict discovery to matching paths relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// SkipVendored prunes directories linguist classifies as vendored.
	SkipVendored bool

	// FollowSymlinks walks symlinked directories.
	FollowSymlinks bool

	// Jobs bounds the number of files formatted at once. Zero or less
	// means runtime.NumCPU.
	Jobs int
}

// DefaultExtensions returns the extensions used when none are configured.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// OptionsFromConfig derives runner options for paths from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:          paths,
		Extensions:     cfg.Extensions,
		DetectMarkdown: len(cfg.Extensions) == 0,
		ExcludeGlobs:   cfg.Ignore,
		SkipVendored:   true,
		Jobs:           cfg.Jobs,
	}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
