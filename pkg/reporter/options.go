package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer receives the report (typically os.Stdout).
	Writer io.Writer

	// Format selects the reporter.
	Format Format

	// Color is "auto" (default), "always" or "never".
	Color string

	// Verbose also lists files that are already formatted.
	Verbose bool

	// ShowSummary appends aggregate statistics.
	ShowSummary bool

	// Compact disables JSON indentation.
	Compact bool

	// WorkingDir makes reported paths relative. Empty keeps them as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}

// displayPath shortens path against the working directory. Paths that
// would climb more than two levels keep their base name only.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil {
		return filepath.Base(path)
	}
	if strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
