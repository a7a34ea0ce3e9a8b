package goldmark

import (
	"sort"

	"github.com/yuin/goldmark/ast"
)

// Document is a parsed Markdown file. Content is owned by the document and
// must not be modified; Root's segments refer to it.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the goldmark document node.
	Root ast.Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// The last line may lack a trailing newline; it is empty when the file
	// ends with one.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineCount returns the number of lines in the file.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineIndex returns the 0-based index of the line containing offset, or -1
// when the offset is out of range.
func (d *Document) LineIndex(offset int) int {
	if offset < 0 || len(d.Lines) == 0 || offset > len(d.Content) {
		return -1
	}
	idx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})
	if idx >= len(d.Lines) {
		idx = len(d.Lines) - 1
	}
	return idx
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (d *Document) LineAt(offset int) (int, int) {
	idx := d.LineIndex(offset)
	if idx < 0 {
		return 0, 0
	}
	return idx + 1, offset - d.Lines[idx].StartOffset + 1
}

// LineContent returns the content of a 0-based line index, excluding the
// newline. Returns nil if the index is out of range.
func (d *Document) LineContent(idx int) []byte {
	if idx < 0 || idx >= len(d.Lines) {
		return nil
	}
	line := d.Lines[idx]
	return d.Content[line.StartOffset:line.NewlineStart]
}

// LineIndent returns the offset of the first non-blank byte of a 0-based
// line and whether the line has any content.
func (d *Document) LineIndent(idx int) (int, bool) {
	if idx < 0 || idx >= len(d.Lines) {
		return 0, false
	}
	line := d.Lines[idx]
	for pos := line.StartOffset; pos < line.NewlineStart; pos++ {
		if char := d.Content[pos]; char != ' ' && char != '\t' {
			return pos, true
		}
	}
	return line.NewlineStart, false
}
