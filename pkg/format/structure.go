package format

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdindent/pkg/parser/goldmark"
)

// checkStructure parses both versions of a document and fails when the
// reindented one has a different block structure or text.
func (f *Formatter) checkStructure(ctx context.Context, path string, before, after []byte) error {
	want, err := f.outline(ctx, path, before)
	if err != nil {
		return err
	}
	got, err := f.outline(ctx, path, after)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: %s: %w", ErrLayoutFailure, path, ErrStructureChanged)
	}
	return nil
}

func (f *Formatter) outline(ctx context.Context, path string, content []byte) (string, error) {
	doc, err := f.parser.Parse(ctx, path, content)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	return Outline(doc)
}

// Outline renders the node tree of a parsed document with the text each
// node carries. Paragraph text is compared as goldmark stores it, without
// line indentation; code lines keep theirs. HTML block lines are compared
// without leading blanks.
func Outline(doc *goldmark.Document) (string, error) {
	var sb strings.Builder
	src := doc.Content

	err := ast.Walk(doc.Root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			sb.WriteByte(')')
			return ast.WalkContinue, nil
		}

		sb.WriteString("(" + node.Kind().String())
		switch n := node.(type) {
		case *ast.List:
			fmt.Fprintf(&sb, " %q %d %t", n.Marker, n.Start, n.IsTight)
		case *ast.Heading:
			fmt.Fprintf(&sb, " %d", n.Level)
		case *ast.FencedCodeBlock:
			if n.Info != nil {
				fmt.Fprintf(&sb, " %q", n.Info.Segment.Value(src))
			}
			writeLines(&sb, n.Lines(), src, false)
		case *ast.CodeBlock:
			writeLines(&sb, n.Lines(), src, false)
		case *ast.HTMLBlock:
			writeLines(&sb, n.Lines(), src, true)
			if n.HasClosure() {
				fmt.Fprintf(&sb, " %q", bytes.TrimLeft(n.ClosureLine.Value(src), " \t"))
			}
		case *ast.Text:
			fmt.Fprintf(&sb, " %q %t %t", n.Segment.Value(src), n.SoftLineBreak(), n.HardLineBreak())
		case *ast.String:
			fmt.Fprintf(&sb, " %q", n.Value)
		case *ast.Link:
			fmt.Fprintf(&sb, " %q %q", n.Destination, n.Title)
		case *ast.Image:
			fmt.Fprintf(&sb, " %q %q", n.Destination, n.Title)
		case *ast.AutoLink:
			fmt.Fprintf(&sb, " %q", n.URL(src))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeLines(sb *strings.Builder, lines *text.Segments, src []byte, trim bool) {
	for idx := range lines.Len() {
		seg := lines.At(idx)
		value := seg.Value(src)
		if trim {
			value = bytes.TrimLeft(value, " \t")
		}
		fmt.Fprintf(sb, " %q", value)
	}
}
