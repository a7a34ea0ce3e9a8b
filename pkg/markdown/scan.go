package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// maxOrderedDigits is the longest ordered list number CommonMark accepts.
const maxOrderedDigits = 9

// open returns the start offset and line of the next block. Blocks start at
// the first non-blank byte after the previous block, or on their first
// source line when goldmark recorded one further down.
func (b *builder) open(node ast.Node) (int, int) {
	start := b.skipBlank(b.pos)
	if start >= len(b.content) {
		return start, len(b.doc.Lines) - 1
	}
	line := b.doc.LineIndex(start)
	if segLine, ok := b.firstSegmentLine(node); ok && segLine > line {
		if pos, found := b.doc.LineIndent(segLine); found {
			start, line = pos, segLine
		}
	}
	return start, line
}

// close returns the last line of a block and whether the block is left
// unterminated.
func (b *builder) close(node ast.Node, first, start int) (int, bool) {
	lastLine := len(b.doc.Lines) - 1
	last := max(first, b.maxSegmentLine(node))

	switch n := node.(type) {
	case *ast.FencedCodeBlock:
		fence, length := b.fenceAt(start)
		contentLast := first
		if n.Lines().Len() > 0 {
			contentLast = max(first, b.segmentLine(n.Lines().At(n.Lines().Len()-1)))
		}
		if next := contentLast + 1; next <= lastLine && b.isClosingFence(next, fence, length) {
			return next, false
		}
		return contentLast, true

	case *ast.Heading:
		if n.Lines().Len() > 0 && !b.isATXHeading(start) {
			// Setext underline.
			last = min(last+1, lastLine)
		}

	case *ast.Blockquote:
		for last < lastLine && b.lineStartsWith(last+1, '>') {
			last++
		}

	case *east.Table:
		for last < lastLine && b.lineContains(last+1, '|') {
			last++
		}
	}
	return min(last, lastLine), false
}

// firstSegmentLine returns the line of the first source segment goldmark
// recorded for node itself.
func (b *builder) firstSegmentLine(node ast.Node) (int, bool) {
	if node.Type() != ast.TypeBlock {
		return 0, false
	}
	switch node.(type) {
	case *ast.Blockquote, *ast.List, *ast.ListItem:
		return 0, false
	}
	lines := node.Lines()
	if lines.Len() == 0 {
		return 0, false
	}
	line := b.doc.LineIndex(lines.At(0).Start)
	if _, fenced := node.(*ast.FencedCodeBlock); fenced {
		// Content starts below the opening fence.
		line--
	}
	return line, line >= 0
}

// maxSegmentLine returns the last line touched by node or a block
// descendant, or -1.
func (b *builder) maxSegmentLine(node ast.Node) int {
	last := -1
	if node.Type() != ast.TypeBlock {
		return last
	}
	if lines := node.Lines(); lines.Len() > 0 {
		last = b.segmentLine(lines.At(lines.Len() - 1))
	}
	if html, ok := node.(*ast.HTMLBlock); ok && html.HasClosure() {
		last = max(last, b.segmentLine(html.ClosureLine))
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		last = max(last, b.maxSegmentLine(child))
	}
	return last
}

// segmentLine returns the line holding the last byte of seg.
func (b *builder) segmentLine(seg text.Segment) int {
	return b.doc.LineIndex(max(seg.Start, seg.Stop-1))
}

// skipBlank returns the first offset at or after pos that is not a space,
// tab or line break.
func (b *builder) skipBlank(pos int) int {
	for pos < len(b.content) && isBlankByte(b.content[pos]) {
		pos++
	}
	return pos
}

// nextMarker returns the offset of the first list marker at or after pos.
// Lines goldmark consumed without a node, such as link reference
// definitions, are skipped.
func (b *builder) nextMarker(pos int) int {
	for {
		start := b.skipBlank(pos)
		if start >= len(b.content) || b.markerLen(start) > 0 {
			return start
		}
		pos = b.doc.Lines[b.doc.LineIndex(start)].EndOffset
		if pos <= start {
			return len(b.content)
		}
	}
}

// markerLen returns the length of the list marker at start, 0 when there is
// none.
func (b *builder) markerLen(start int) int {
	pos := start
	switch b.content[pos] {
	case '-', '+', '*':
		pos++
	default:
		for pos < len(b.content) && pos-start < maxOrderedDigits && isDigit(b.content[pos]) {
			pos++
		}
		if pos == start || pos >= len(b.content) || (b.content[pos] != '.' && b.content[pos] != ')') {
			return 0
		}
		pos++
	}
	if pos < len(b.content) && !isBlankByte(b.content[pos]) {
		return 0
	}
	return pos - start
}

// width returns the display width of content[from:to] starting at a tab
// stop.
func (b *builder) width(from, to int) int {
	col := 0
	for _, char := range string(b.content[from:to]) {
		if char == '\t' {
			col += b.tabSize - col%b.tabSize
			continue
		}
		col++
	}
	return col
}

// lineWidth returns the display width of the indentation of line.
func (b *builder) lineWidth(line int) int {
	if line < 0 || line >= len(b.doc.Lines) {
		return 0
	}
	pos, _ := b.doc.LineIndent(line)
	return b.width(b.doc.Lines[line].StartOffset, pos)
}

func (b *builder) lineStartsWith(line int, char byte) bool {
	pos, ok := b.doc.LineIndent(line)
	return ok && b.content[pos] == char
}

func (b *builder) lineContains(line int, char byte) bool {
	return bytes.IndexByte(b.doc.LineContent(line), char) >= 0
}

// fenceAt returns the fence character and run length at start.
func (b *builder) fenceAt(start int) (byte, int) {
	char := b.content[start]
	if char != '`' && char != '~' {
		return '`', 3
	}
	length := 0
	for pos := start; pos < len(b.content) && b.content[pos] == char; pos++ {
		length++
	}
	return char, length
}

// isClosingFence reports whether line closes a fence of at least length
// fence characters.
func (b *builder) isClosingFence(line int, fence byte, length int) bool {
	pos, ok := b.doc.LineIndent(line)
	if !ok {
		return false
	}
	end := b.doc.Lines[line].NewlineStart
	run := 0
	for pos < end && b.content[pos] == fence {
		run++
		pos++
	}
	if run < length {
		return false
	}
	for ; pos < end; pos++ {
		if c := b.content[pos]; c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

// isATXHeading reports whether the heading at start opens with 1 to 6 '#'
// followed by a blank or the end of the line.
func (b *builder) isATXHeading(start int) bool {
	pos := start
	for pos < len(b.content) && b.content[pos] == '#' {
		pos++
	}
	level := pos - start
	if level == 0 || level > 6 {
		return false
	}
	return pos == len(b.content) || isBlankByte(b.content[pos])
}

// opensBlock reports whether line, moved left within a paragraph, could
// start a block of its own: a heading, quote, list item, rule, setext
// underline, fence or HTML block. Lazy continuation lines like these only
// continue a paragraph because of where they sit.
func (b *builder) opensBlock(line int) bool {
	pos, ok := b.doc.LineIndent(line)
	if !ok {
		return false
	}
	rest := b.content[pos:b.doc.Lines[line].NewlineStart]
	switch char := rest[0]; char {
	case '#':
		return b.isATXHeading(pos)
	case '>', '<':
		return true
	case '`', '~':
		_, length := b.fenceAt(pos)
		return length >= 3
	case '=':
		return isRuleLine(rest, char, 1)
	case '_':
		return isRuleLine(rest, char, 3)
	case '-':
		return b.markerLen(pos) > 0 || isRuleLine(rest, char, 1)
	case '*':
		return b.markerLen(pos) > 0 || isRuleLine(rest, char, 3)
	}
	return b.markerLen(pos) > 0
}

// isRuleLine reports whether text holds at least minRun copies of char and
// otherwise only blanks.
func isRuleLine(text []byte, char byte, minRun int) bool {
	run := 0
	for _, c := range text {
		switch {
		case c == char:
			run++
		case c != ' ' && c != '\t' && c != '\r':
			return false
		}
	}
	return run >= minRun
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBlankByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
