package pretty

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/yaklabco/gomdindent/pkg/runner"
)

const summaryDividerWidth = 40

func count(n int, singular string) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, singular, "")
}

// FormatSummaryOneLine formats run statistics as a single line, for
// example "2 of 14 files need reindenting (7 edits), 1 error".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	switch {
	case stats.FilesChanged == 0:
		parts = append(parts, s.Success.Render("All files formatted")+
			s.Dim.Render(fmt.Sprintf(" (%s checked)", count(stats.FilesProcessed, "file"))))
	case stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(fmt.Sprintf("Reindented %s of %s",
			humanize.Comma(int64(stats.FilesWritten)), count(stats.FilesProcessed, "file")))+
			s.Dim.Render(fmt.Sprintf(" (%s)", count(stats.Edits, "edit"))))
	default:
		verb := "need"
		if stats.FilesChanged == 1 {
			verb = "needs"
		}
		parts = append(parts, s.Changed.Render(fmt.Sprintf("%s of %s %s reindenting",
			humanize.Comma(int64(stats.FilesChanged)), count(stats.FilesProcessed, "file"), verb))+
			s.Dim.Render(fmt.Sprintf(" (%s)", count(stats.Edits, "edit"))))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(humanize.Comma(int64(stats.FilesSkipped))+" skipped"))
	}
	if stats.FilesUnstable > 0 {
		parts = append(parts, s.Warning.Render(humanize.Comma(int64(stats.FilesUnstable))+" unstable"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(count(stats.FilesErrored, "error")))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-18s %s\n", label+":", value)
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", s.SummaryValue.Render(humanize.Comma(int64(stats.FilesProcessed))))
	if stats.FilesChanged > 0 {
		row("Files changed", s.Changed.Render(humanize.Comma(int64(stats.FilesChanged))))
	}
	if stats.FilesWritten > 0 {
		row("Files written", s.Success.Render(humanize.Comma(int64(stats.FilesWritten))))
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render(humanize.Comma(int64(stats.FilesSkipped))))
	}
	if stats.FilesErrored > 0 {
		row("Files errored", s.Error.Render(humanize.Comma(int64(stats.FilesErrored))))
	}
	row("Edits", s.SummaryValue.Render(humanize.Comma(int64(stats.Edits))))
	if stats.LinesUntouched > 0 {
		row("Lines untouched", s.Dim.Render(humanize.Comma(int64(stats.LinesUntouched))))
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed"))
	case stats.FilesChanged > stats.FilesWritten:
		builder.WriteString(s.Changed.Render("Files need reindenting"))
	default:
		builder.WriteString(s.Success.Render("Indentation is consistent"))
	}
	builder.WriteString("\n")

	return builder.String()
}
