package markdown

import (
	"errors"
	"fmt"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gomdindent/pkg/formatting"
	"github.com/yaklabco/gomdindent/pkg/parser/goldmark"
)

// ErrNoDocument is returned when Build is given nothing to model.
var ErrNoDocument = errors.New("no parsed document")

// codeIndent is the indentation that opens an indented code block.
const codeIndent = 4

// Options configure the model builder.
type Options struct {
	// TabSize is the tab width used to measure source indentation.
	TabSize int
}

// DefaultOptions returns the builder defaults.
func DefaultOptions() Options {
	return Options{TabSize: formatting.DefaultTabSize}
}

// Build turns a parsed document into an indentation model.
//
// Lists, list items and the document are containers; every other block is
// modelled as a sequence of line leaves. Items share one alignment per list
// and the blocks inside an item share one alignment, so content that follows
// a marker on the same line fixes the column for the rest of the item.
func Build(doc *goldmark.Document, opts Options) (*Block, error) {
	if doc == nil || doc.Root == nil {
		return nil, ErrNoDocument
	}
	if opts.TabSize <= 0 {
		opts.TabSize = formatting.DefaultTabSize
	}

	b := &builder{doc: doc, content: doc.Content, tabSize: opts.TabSize}
	root := &Block{
		Kind:   KindDocument,
		Range:  formatting.TextRange{StartOffset: 0, EndOffset: len(doc.Content)},
		indent: formatting.NoneIndent(),
	}

	for child := doc.Root.FirstChild(); child != nil; child = child.NextSibling() {
		blk, err := b.block(child, false)
		if err != nil {
			return nil, err
		}
		if blk == nil {
			continue
		}
		if blk.Kind == KindIndentedCode {
			blk.indent = formatting.SpacesIndent(b.lineWidth(b.doc.LineIndex(blk.Range.StartOffset)))
		} else {
			blk.indent = formatting.NoneIndent()
		}
		root.append(blk)
	}
	freezeBefore(root.children)
	return root, nil
}

type builder struct {
	doc     *goldmark.Document
	content []byte
	tabSize int

	// pos is the offset at or after which the next block starts.
	pos int

	seq int
}

// block models one goldmark block node. It returns nil for nodes that cover
// no source text.
func (b *builder) block(node ast.Node, nested bool) (*Block, error) {
	switch n := node.(type) {
	case *ast.List:
		return b.list(n, nested)
	case *ast.Paragraph, *ast.TextBlock:
		return b.text(node, KindParagraph), nil
	case *ast.Heading:
		return b.text(node, KindHeading), nil
	case *ast.FencedCodeBlock:
		return b.verbatim(node, KindFencedCode), nil
	case *ast.CodeBlock:
		return b.verbatim(node, KindIndentedCode), nil
	case *ast.HTMLBlock:
		return b.verbatim(node, KindHTML), nil
	case *ast.Blockquote:
		return b.verbatim(node, KindBlockquote), nil
	case *east.Table:
		return b.verbatim(node, KindTable), nil
	case *ast.ThematicBreak:
		return b.verbatim(node, KindThematicBreak), nil
	case *ast.ListItem:
		return nil, fmt.Errorf("list item outside of a list at offset %d", b.pos)
	default:
		return b.verbatim(node, KindOther), nil
	}
}

func (b *builder) name(kind string) string {
	b.seq++
	return fmt.Sprintf("%s-%d", kind, b.seq)
}

func (b *builder) list(node *ast.List, nested bool) (*Block, error) {
	name := b.name("list")
	wrap := formatting.NewWrap(name, formatting.WrapAlways, nested)
	items := formatting.NewAlignment(name + " items")

	blk := &Block{Kind: KindList}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		li, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		item, err := b.item(li)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		item.indent = formatting.NoneIndent()
		item.alignment = items
		item.wrap = wrap
		blk.append(item)
	}
	if len(blk.children) == 0 {
		return nil, nil
	}
	freezeBefore(blk.children)
	blk.cover()
	return blk, nil
}

func (b *builder) item(node *ast.ListItem) (*Block, error) {
	start := b.nextMarker(b.pos)
	if start >= len(b.content) {
		return nil, nil
	}
	line := b.doc.LineIndex(start)
	markerEnd := start + b.markerLen(start)
	lineStart := b.doc.Lines[line].StartOffset
	markerCol := b.width(lineStart, start)

	item := &Block{Kind: KindItem}
	item.append(&Block{
		Kind:   KindMarker,
		Range:  formatting.TextRange{StartOffset: start, EndOffset: markerEnd},
		indent: formatting.NoneIndent(),
	})
	b.pos = markerEnd

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		blk, err := b.block(child, true)
		if err != nil {
			return nil, err
		}
		if blk != nil {
			item.append(blk)
		}
	}

	freezeBefore(item.children[1:])

	markerWidth := b.width(lineStart, markerEnd) - markerCol
	contentWidth := markerWidth + 1
	if len(item.children) > 1 {
		first := item.children[1].Range.StartOffset
		if b.doc.LineIndex(first) == line {
			if w := b.width(lineStart, first) - markerCol; w <= markerWidth+codeIndent {
				contentWidth = w
			}
		}
	}

	content := formatting.NewAlignment(b.name("item") + " content")
	for _, child := range item.children[1:] {
		if child.Kind == KindIndentedCode {
			first := b.doc.LineIndex(child.Range.StartOffset)
			child.indent = formatting.SpacesIndent(b.lineWidth(first) - markerCol)
			continue
		}
		child.indent = formatting.SpacesIndent(contentWidth)
		child.alignment = content
	}

	item.cover()
	if len(item.children) == 1 {
		b.pos = b.doc.Lines[line].EndOffset
	}
	return item, nil
}

// text models paragraphs and headings: every line joins one alignment, so
// continuation lines line up under the first.
func (b *builder) text(node ast.Node, kind Kind) *Block {
	start, first := b.open(node)
	if start >= len(b.content) {
		return nil
	}
	last, _ := b.close(node, first, start)

	align := formatting.NewAlignment(b.name(kind.String()))
	blk := &Block{Kind: kind}
	for line := first; line <= last; line++ {
		leaf := b.lineLeaf(line, start, first)
		if leaf == nil {
			continue
		}
		leaf.indent = formatting.NoneIndent()
		leaf.alignment = align
		// Moving such a line could turn it into a block of its own.
		leaf.incomplete = line > first && b.opensBlock(line)
		blk.append(leaf)
	}
	return b.finish(blk, last)
}

// verbatim models blocks whose inner layout is kept. Later lines start at
// the column of the first line's indentation, so whatever follows that column
// (deeper spaces, tabs) stays part of the line and moves with the block.
func (b *builder) verbatim(node ast.Node, kind Kind) *Block {
	start, first := b.open(node)
	if start >= len(b.content) {
		return nil
	}
	last, incomplete := b.close(node, first, start)

	base := b.lineWidth(first)
	blk := &Block{Kind: kind, incomplete: incomplete}
	for line := first; line <= last; line++ {
		if line == first {
			leaf := b.lineLeaf(line, start, first)
			if leaf != nil {
				leaf.indent = formatting.NoneIndent()
				blk.append(leaf)
			}
			continue
		}
		leaf, rel := b.verbatimLeaf(line, base)
		if leaf == nil {
			continue
		}
		// Indented code cannot move a line left of its first line
		// without changing the code.
		if rel < 0 && kind == KindIndentedCode {
			blk.incomplete = true
		}
		leaf.indent = formatting.SpacesIndent(rel)
		blk.append(leaf)
	}
	return b.finish(blk, last)
}

// verbatimLeaf returns the leaf of a non-first verbatim line. The leaf starts
// where the line's indentation reaches column base; when no byte boundary
// falls on that column it starts at the content and rel reports the offset
// from base.
func (b *builder) verbatimLeaf(line, base int) (*Block, int) {
	from, ok := b.doc.LineIndent(line)
	if !ok {
		return nil, 0
	}
	lineStart := b.doc.Lines[line].StartOffset
	end := b.doc.Lines[line].NewlineStart
	leaf := func(start int) *Block {
		return &Block{Kind: KindLine, Range: formatting.TextRange{StartOffset: start, EndOffset: end}}
	}

	col := 0
	for pos := lineStart; pos < from; pos++ {
		if col == base {
			return leaf(pos), 0
		}
		if b.content[pos] == '\t' {
			col += b.tabSize - col%b.tabSize
		} else {
			col++
		}
		if col > base {
			break
		}
	}
	if col == base {
		return leaf(from), 0
	}
	return leaf(from), b.width(lineStart, from) - base
}

// freezeBefore marks every block that precedes an untouched sibling as
// incomplete. A block that moves while its later sibling stays put can
// capture the sibling or let it escape: a list moved left absorbs an
// unterminated fence that follows it.
func freezeBefore(blocks []*Block) {
	for idx := len(blocks) - 1; idx > 0; idx-- {
		if blocks[idx].frozen() {
			blocks[idx-1].incomplete = true
		}
	}
}

func (b *builder) finish(blk *Block, last int) *Block {
	b.pos = b.doc.Lines[last].EndOffset
	if len(blk.children) == 0 {
		return nil
	}
	blk.cover()
	return blk
}

// lineLeaf returns the leaf for the content of line; the first line of a
// block starts at the block start. Blank lines have no leaf.
func (b *builder) lineLeaf(line, start, first int) *Block {
	from, ok := b.doc.LineIndent(line)
	if line == first {
		from, ok = start, true
	}
	to := b.doc.Lines[line].NewlineStart
	if !ok || from >= to {
		return nil
	}
	return &Block{Kind: KindLine, Range: formatting.TextRange{StartOffset: from, EndOffset: to}}
}
