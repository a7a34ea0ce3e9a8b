package fix

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// Diff is a unified diff between the original and formatted content of a file.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Original is the original file content.
	Original []byte

	// Modified is the modified file content.
	Modified []byte

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int

	// Hunks is the number of change groups.
	Hunks int

	body string
}

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}

	origLines := splitLines(original)
	modLines := splitLines(modified)

	matcher := difflib.NewMatcher(origLines, modLines)
	groups := matcher.GetGroupedOpCodes(contextLines)
	if len(groups) == 0 {
		return nil
	}

	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Hunks:    len(groups),
	}
	for _, group := range groups {
		for _, op := range group {
			switch op.Tag {
			case 'r':
				diff.Deletions += op.I2 - op.I1
				diff.Additions += op.J2 - op.J1
			case 'd':
				diff.Deletions += op.I2 - op.I1
			case 'i':
				diff.Additions += op.J2 - op.J1
			}
		}
	}

	name := strings.TrimPrefix(path, "/")
	var buf strings.Builder
	err := difflib.WriteUnifiedDiff(&buf, difflib.UnifiedDiff{
		A:        origLines,
		B:        modLines,
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
	if err != nil {
		return diff
	}
	diff.body = buf.String()

	return diff
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified format, without the git header.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.body
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.body
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && d.Hunks > 0
}

// splitLines splits content into newline-terminated lines.
// A missing final newline is supplied so every diff line ends cleanly.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := difflib.SplitLines(string(content))
	if content[len(content)-1] == '\n' {
		lines = lines[:len(lines)-1]
	}
	return lines
}
