package format

import "github.com/yaklabco/gomdindent/pkg/fix"

// FileResult describes what formatting did to one file.
type FileResult struct {
	// Path is the file that was processed.
	Path string

	// Formatted is the new content, nil when the file is already formatted.
	Formatted []byte

	// Changed is true if formatting altered the content.
	Changed bool

	// Stable is false when the last allowed pass still produced edits.
	Stable bool

	// Passes is the number of passes that produced edits.
	Passes int

	// Edits is the number of indentation edits applied across all passes.
	Edits int

	// Lines is the number of line-starting leaves in the final pass.
	Lines int

	// Untouched is the number of lines left alone inside incomplete blocks.
	Untouched int

	// Diff is the unified diff of the change when requested.
	Diff *fix.Diff

	// Written is true if the file was rewritten on disk.
	Written bool

	// BackupCreated is true if a sidecar backup was written.
	BackupCreated bool

	// Skipped is true if the file changed on disk while it was formatted.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string
}

// Summary returns a short human-readable status.
func (r *FileResult) Summary() string {
	switch {
	case r == nil:
		return "ok"
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "formatted (backup created)"
	case r.Written:
		return "formatted"
	case r.Changed:
		return "needs formatting"
	default:
		return "ok"
	}
}
