package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/gomdindent/internal/ui/pretty"
	"github.com/yaklabco/gomdindent/pkg/runner"
)

// TextReporter lists files with their status, one per line.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No Markdown files found."))
		}
		return 0, nil
	}

	var changed int
	for _, file := range result.Files {
		if file.Result != nil && file.Result.Changed {
			changed++
		}
		if line := r.status(file); line != "" {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(r.opts.displayPath(file.Path)), line)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return changed, nil
}

// status renders the per-file status, or "" when nothing is worth saying.
func (r *TextReporter) status(file runner.FileOutcome) string {
	res := file.Result
	switch {
	case file.Error != nil:
		return r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error))
	case res == nil:
		return ""
	case res.Skipped:
		return r.styles.Warning.Render(res.Summary())
	case res.Changed:
		line := r.styles.Changed.Render(res.Summary()) +
			r.styles.Dim.Render(fmt.Sprintf(" (%s)", english.Plural(res.Edits, "edit", "")))
		if !res.Stable {
			line += ", " + r.styles.Warning.Render("unstable after "+english.Plural(res.Passes, "pass", "passes"))
		}
		return line
	case r.opts.Verbose:
		return r.styles.Unchanged.Render(res.Summary())
	default:
		return ""
	}
}
