package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdindent/pkg/runner"
)

// jsonVersion is bumped when the JSON layout changes incompatibly.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's result.
type JSONFileResult struct {
	Path       string `json:"path"`
	Status     string `json:"status"`
	Changed    bool   `json:"changed"`
	Written    bool   `json:"written,omitempty"`
	Backup     bool   `json:"backup,omitempty"`
	Stable     bool   `json:"stable"`
	Passes     int    `json:"passes"`
	Edits      int    `json:"edits"`
	Untouched  int    `json:"untouchedLines,omitempty"`
	SkipReason string `json:"skipReason,omitempty"`
	Diff       string `json:"diff,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesProcessed  int `json:"filesProcessed"`
	FilesChanged    int `json:"filesChanged"`
	FilesWritten    int `json:"filesWritten"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	FilesUnstable   int `json:"filesUnstable"`
	Edits           int `json:"edits"`
	LinesUntouched  int `json:"linesUntouched"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesProcessed:  stats.FilesProcessed,
		FilesChanged:    stats.FilesChanged,
		FilesWritten:    stats.FilesWritten,
		FilesSkipped:    stats.FilesSkipped,
		FilesErrored:    stats.FilesErrored,
		FilesUnstable:   stats.FilesUnstable,
		Edits:           stats.Edits,
		LinesUntouched:  stats.LinesUntouched,
	}

	for _, file := range result.Files {
		entry := JSONFileResult{Path: r.opts.displayPath(file.Path)}

		if file.Error != nil {
			entry.Status = "error"
			entry.Error = file.Error.Error()
			output.Files = append(output.Files, entry)
			continue
		}

		if res := file.Result; res != nil {
			entry.Status = res.Summary()
			entry.Changed = res.Changed
			entry.Written = res.Written
			entry.Backup = res.BackupCreated
			entry.Stable = res.Stable
			entry.Passes = res.Passes
			entry.Edits = res.Edits
			entry.Untouched = res.Untouched
			entry.SkipReason = res.SkipReason
			if res.Diff != nil {
				entry.Diff = res.Diff.String()
			}
		}
		output.Files = append(output.Files, entry)
	}

	return output
}
