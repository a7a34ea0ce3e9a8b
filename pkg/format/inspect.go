package format

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/gomdindent/pkg/formatting"
	"github.com/yaklabco/gomdindent/pkg/markdown"
)

// Inspection is the block model of a document together with the edits the
// first pass would make.
type Inspection struct {
	Content []byte
	Root    *markdown.Block
	Pass    *formatting.PassResult

	formatter *Formatter
}

// Placement is the indentation a line inserted into a document would get.
type Placement struct {
	// Parent is the block the new line would join.
	Parent formatting.TextRange

	// Governing is the nearest enclosing block that starts on a line of
	// its own. HasGoverning is false when only the document encloses the
	// line.
	Governing    formatting.TextRange
	HasGoverning bool

	// Indent is the column of the new line; Aligned reports that it comes
	// from the alignment of the line before it.
	Indent  formatting.IndentData
	Aligned bool
}

// Inspect builds the model for content and runs a single pass without
// applying it.
func (f *Formatter) Inspect(ctx context.Context, path string, content []byte) (*Inspection, error) {
	root, err := f.model(ctx, path, content)
	if err != nil {
		return nil, err
	}
	passResult, err := f.run(ctx, path, content, root)
	if err != nil {
		return nil, err
	}
	return &Inspection{Content: content, Root: root, Pass: passResult, formatter: f}, nil
}

// PlaceLine reports how a new line inserted at offset would be indented
// once the document is formatted. The line joins the innermost block that
// holds offset, after the children starting at or before it, and takes the
// indent and alignment of the child it follows.
func (in *Inspection) PlaceLine(offset int) (*Placement, error) {
	tree, err := in.formatter.tree(in.Content, in.Root)
	if err != nil {
		return nil, err
	}
	defer tree.DisposeAll()
	// Drop the anchors of the inspection pass.
	tree.ResetAll()

	opts := in.formatter.opts.Indent
	if _, err := formatting.NewPass(tree, opts).Run(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLayoutFailure, err)
	}

	offset = min(max(offset, 0), len(in.Content))
	parent, prev := tree.Root(), formatting.NoNode
	index := 0
	for {
		children := tree.Children(parent)
		index = 0
		for index < len(children) && tree.StartOffset(children[index]) <= offset {
			index++
		}
		if index == 0 {
			prev = formatting.NoNode
			break
		}
		prev = children[index-1]
		if len(tree.Children(prev)) == 0 || offset > tree.EndOffset(prev) {
			break
		}
		parent = prev
	}

	placement := &Placement{Parent: rangeOf(tree, parent)}
	from := parent
	var attrs formatting.ChildAttributes
	if prev != formatting.NoNode {
		from = prev
		attrs.ChildIndent = tree.Indent(prev)
		attrs.Alignment = tree.Alignment(prev)
	}
	if governing := tree.FindFirstIndentedParent(from); governing != formatting.NoNode {
		placement.Governing = rangeOf(tree, governing)
		placement.HasGoverning = true
	}

	if attrs.Alignment != nil {
		if anchor, _, ok := attrs.Alignment.Anchor(); ok {
			placement.Indent, placement.Aligned = anchor, true
			return placement, nil
		}
	}
	placement.Indent, err = tree.CalculateChildOffset(parent, opts, attrs, index)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLayoutFailure, err)
	}
	return placement, nil
}

func rangeOf(tree *formatting.Tree, id formatting.NodeID) formatting.TextRange {
	return formatting.TextRange{StartOffset: tree.StartOffset(id), EndOffset: tree.EndOffset(id)}
}

// Line returns the 1-based line number of offset.
func (in *Inspection) Line(offset int) int {
	offset = min(max(offset, 0), len(in.Content))
	return bytes.Count(in.Content[:offset], []byte{'\n'}) + 1
}

// DumpModel writes the block outline.
func (in *Inspection) DumpModel(w io.Writer) error {
	return markdown.Dump(w, in.Root, in.Content)
}
