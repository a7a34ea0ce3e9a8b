package markdown

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxExcerpt bounds the source excerpt printed for a leaf.
const maxExcerpt = 40

// Dump writes an indented outline of the model: kind, byte range, indent and
// the alignment and wrap groups of every block, plus a source excerpt for
// leaves.
func Dump(w io.Writer, root *Block, content []byte) error {
	var err error
	root.Walk(func(blk *Block, depth int) {
		if err != nil {
			return
		}
		var line strings.Builder
		line.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&line, "%s %s", blk.Kind, blk.Range)
		if blk.indent != nil {
			fmt.Fprintf(&line, " indent=%s", blk.indent)
		}
		if blk.alignment != nil {
			fmt.Fprintf(&line, " align=%q", blk.alignment.Name())
		}
		if blk.wrap != nil {
			fmt.Fprintf(&line, " wrap=%q(%s)", blk.wrap.Name(), blk.wrap.Type())
		}
		if blk.incomplete {
			line.WriteString(" incomplete")
		}
		if len(blk.children) == 0 && blk.Kind != KindDocument {
			line.WriteString(" ")
			line.WriteString(excerpt(content, blk))
		}
		line.WriteString("\n")
		_, err = io.WriteString(w, line.String())
	})
	return err
}

func excerpt(content []byte, blk *Block) string {
	start, end := blk.Range.StartOffset, blk.Range.EndOffset
	if start < 0 || end > len(content) || start > end {
		return `""`
	}
	text := []rune(string(content[start:end]))
	if len(text) > maxExcerpt {
		return strconv.Quote(string(text[:maxExcerpt])) + "…"
	}
	return strconv.Quote(string(text))
}
