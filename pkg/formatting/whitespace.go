package formatting

import "strings"

// Whitespace is the literal run of blanks and line breaks that precedes a
// block. After parsing it holds the original indentation; SetIndent turns it
// into the target for computed indentation.
type Whitespace struct {
	// StartOffset and EndOffset delimit the run in the source.
	StartOffset int
	EndOffset   int

	// LineFeeds is the number of line breaks in the run.
	LineFeeds int

	// IndentSpaces and Spaces describe the indentation that follows the last
	// line break: IndentSpaces covers the tab-expanded part, Spaces the
	// trailing alignment spaces.
	IndentSpaces int
	Spaces       int

	// FirstInFile is set for the run that reaches the start of the file.
	// It counts as a line break: nothing precedes it on its line.
	FirstInFile bool

	indentStart int
	original    string
}

// ParseWhitespace scans backwards from end over spaces, tabs and line
// breaks and returns the run that precedes end.
func ParseWhitespace(content []byte, end int, tabSize int) *Whitespace {
	end = min(max(end, 0), len(content))
	start := end
	for start > 0 && isBlank(content[start-1]) {
		start--
	}

	ws := &Whitespace{
		StartOffset: start,
		EndOffset:   end,
		FirstInFile: start == 0,
		indentStart: start,
	}
	for idx := start; idx < end; idx++ {
		if content[idx] == '\n' {
			ws.LineFeeds++
			ws.indentStart = idx + 1
		}
	}

	segment := content[ws.indentStart:end]
	ws.original = string(segment)
	ws.IndentSpaces, ws.Spaces = measureIndent(segment, tabSize)
	return ws
}

// ContainsLineFeeds reports whether the run starts a new line.
func (w *Whitespace) ContainsLineFeeds() bool {
	return w != nil && (w.LineFeeds > 0 || w.FirstInFile)
}

// SetIndent replaces the held indentation with d.
func (w *Whitespace) SetIndent(d IndentData) {
	w.IndentSpaces = d.IndentSpaces
	w.Spaces = d.AlignmentOffset
}

// Indent returns the held indentation.
func (w *Whitespace) Indent() IndentData {
	return IndentData{IndentSpaces: w.IndentSpaces, AlignmentOffset: w.Spaces}
}

// IndentRange returns the byte range of the indentation after the last
// line break; replacing it re-indents the line without touching blank lines.
func (w *Whitespace) IndentRange() (int, int) {
	return w.indentStart, w.EndOffset
}

// Original returns the indentation text as parsed.
func (w *Whitespace) Original() string {
	return w.original
}

// IndentText renders the held indentation.
func (w *Whitespace) IndentText(opts IndentOptions) string {
	if !opts.UseTabs || opts.TabSize <= 0 {
		return strings.Repeat(" ", max(w.IndentSpaces+w.Spaces, 0))
	}
	tabs := w.IndentSpaces / opts.TabSize
	rest := w.IndentSpaces%opts.TabSize + w.Spaces
	return strings.Repeat("\t", max(tabs, 0)) + strings.Repeat(" ", max(rest, 0))
}

// Changed reports whether the rendered indentation differs from the source.
func (w *Whitespace) Changed(opts IndentOptions) bool {
	return w.IndentText(opts) != w.original
}

// measureIndent expands tabs to the next tab stop. Everything up to the last
// tab counts as indentation, the spaces after it as alignment.
func measureIndent(segment []byte, tabSize int) (int, int) {
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}
	column, indent := 0, 0
	for _, char := range segment {
		switch char {
		case '\t':
			column += tabSize - column%tabSize
			indent = column
		case ' ':
			column++
		}
	}
	return indent, column - indent
}

func isBlank(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r'
}
