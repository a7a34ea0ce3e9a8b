// Package reporter renders formatting results as text, JSON or unified diffs.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdindent/pkg/runner"
)

// Reporter writes a run result.
type Reporter interface {
	// Report writes the result and returns the number of files that need
	// or received reindenting.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
