package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/gomdindent/internal/ui/pretty"
	"github.com/yaklabco/gomdindent/pkg/fix"
	"github.com/yaklabco/gomdindent/pkg/runner"
)

// DiffReporter prints git-style unified diffs of every changed file.
// Files formatted without a diff attached get a header line only.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || !file.Result.Changed {
			continue
		}

		files++
		diff := file.Result.Diff
		if !diff.HasChanges() {
			fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(r.gitHeader(file.Path)))
			continue
		}
		additions += diff.Additions
		deletions += diff.Deletions
		r.writeDiff(file.Path, diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, additions, deletions)
	}
	return files, nil
}

func (r *DiffReporter) gitHeader(path string) string {
	display := r.opts.displayPath(path)
	return fmt.Sprintf("diff --git a/%s b/%s", display, display)
}

// writeDiff prints one file's diff with the --- and +++ headers rewritten
// to the display path.
func (r *DiffReporter) writeDiff(path string, diff *fix.Diff) {
	display := r.opts.displayPath(path)
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(r.gitHeader(path)))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+display))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+display))

	lines := strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n")
	if len(lines) >= 2 && strings.HasPrefix(lines[0], "---") && strings.HasPrefix(lines[1], "+++") {
		lines = lines[2:]
	}
	for _, line := range lines {
		r.writeDiffLine(line)
	}
	fmt.Fprintln(r.bw)
}

func (r *DiffReporter) writeDiffLine(line string) {
	var styled string
	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}
	fmt.Fprintln(r.bw, styled)
}

// writeSummary prints a git-style shortstat line.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{english.Plural(files, "file", "") + " changed"}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(english.Plural(additions, "insertion", "")+"(+)"))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(english.Plural(deletions, "deletion", "")+"(-)"))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}
