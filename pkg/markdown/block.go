// Package markdown builds indentation models of Markdown documents: trees of
// formatting blocks whose leaves are the non-blank source lines.
package markdown

import (
	"fmt"

	"github.com/yaklabco/gomdindent/pkg/formatting"
)

// Kind classifies a Block.
type Kind uint8

// Block kinds. Containers hold other blocks; every other kind holds only
// KindLine leaves.
const (
	// KindDocument is the root container.
	KindDocument Kind = iota
	// KindList is a container of KindItem blocks sharing one marker type.
	KindList
	// KindItem is a list item: a KindMarker leaf followed by the item's
	// blocks.
	KindItem
	// KindMarker is the bullet or ordered number opening an item.
	KindMarker
	KindParagraph
	// KindHeading is an ATX or setext heading, underline included.
	KindHeading
	// KindFencedCode is a fenced code block, closing fence included.
	KindFencedCode
	KindIndentedCode
	// KindHTML is a raw HTML block.
	KindHTML
	// KindBlockquote is kept verbatim; its lines move as a unit.
	KindBlockquote
	// KindTable is a GFM table.
	KindTable
	KindThematicBreak
	// KindOther covers block nodes the builder has no dedicated model for.
	KindOther
	// KindLine is a leaf holding the content of one source line.
	KindLine
)

var kindNames = [...]string{
	KindDocument:      "document",
	KindList:          "list",
	KindItem:          "item",
	KindMarker:        "marker",
	KindParagraph:     "paragraph",
	KindHeading:       "heading",
	KindFencedCode:    "fenced-code",
	KindIndentedCode:  "indented-code",
	KindHTML:          "html",
	KindBlockquote:    "blockquote",
	KindTable:         "table",
	KindThematicBreak: "thematic-break",
	KindOther:         "other",
	KindLine:          "line",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Block is one node of a Markdown indentation model. It implements
// formatting.Block.
type Block struct {
	Kind  Kind
	Range formatting.TextRange

	indent     *formatting.Indent
	alignment  *formatting.Alignment
	wrap       *formatting.Wrap
	incomplete bool
	children   []*Block
}

// TextRange implements formatting.Block.
func (b *Block) TextRange() formatting.TextRange { return b.Range }

// Indent implements formatting.Block.
func (b *Block) Indent() *formatting.Indent { return b.indent }

// Alignment implements formatting.Block.
func (b *Block) Alignment() *formatting.Alignment { return b.alignment }

// Wrap implements formatting.Block.
func (b *Block) Wrap() *formatting.Wrap { return b.wrap }

// IsIncomplete implements formatting.Block.
func (b *Block) IsIncomplete() bool { return b.incomplete }

// frozen reports whether the block or a nested block is left untouched as a
// whole. Untouched lines inside a paragraph do not count.
func (b *Block) frozen() bool {
	if b.incomplete {
		return true
	}
	for _, child := range b.children {
		if child.Kind != KindLine && child.frozen() {
			return true
		}
	}
	return false
}

// Children implements formatting.Block.
func (b *Block) Children() []formatting.Block {
	children := make([]formatting.Block, len(b.children))
	for idx, child := range b.children {
		children[idx] = child
	}
	return children
}

// Blocks returns the child blocks.
func (b *Block) Blocks() []*Block { return b.children }

// Walk visits b and its descendants in pre-order.
func (b *Block) Walk(fn func(blk *Block, depth int)) {
	b.walk(fn, 0)
}

func (b *Block) walk(fn func(*Block, int), depth int) {
	fn(b, depth)
	for _, child := range b.children {
		child.walk(fn, depth+1)
	}
}

// Leaves returns the leaf blocks in document order.
func (b *Block) Leaves() []*Block {
	var leaves []*Block
	b.Walk(func(blk *Block, _ int) {
		if len(blk.children) == 0 && blk.Kind != KindDocument {
			leaves = append(leaves, blk)
		}
	})
	return leaves
}

func (b *Block) append(child *Block) {
	b.children = append(b.children, child)
}

// cover sets the range to span the children.
func (b *Block) cover() {
	if len(b.children) == 0 {
		return
	}
	b.Range = formatting.TextRange{
		StartOffset: b.children[0].Range.StartOffset,
		EndOffset:   b.children[len(b.children)-1].Range.EndOffset,
	}
}
