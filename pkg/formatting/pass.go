package formatting

import (
	"fmt"
)

// Edit replaces the indentation of one line.
type Edit struct {
	// Node is the leaf that starts the line.
	Node NodeID

	// StartOffset and EndOffset delimit the replaced indentation.
	StartOffset int
	EndOffset   int

	// OldText and NewText are the indentation before and after.
	OldText string
	NewText string
}

// PassResult summarizes one formatting pass.
type PassResult struct {
	// Edits lists the indentation changes in document order.
	Edits []Edit

	// Lines is the number of leaves that start a line.
	Lines int

	// Skipped is the number of such leaves inside incomplete blocks.
	Skipped int
}

// Changed reports whether the pass produced any edit.
func (r *PassResult) Changed() bool {
	return r != nil && len(r.Edits) > 0
}

// PassOption configures a Pass.
type PassOption func(*Pass)

// WithVerify makes Run reset the tree and run a second time, failing with
// ErrUnstable when the second run disagrees with the first.
func WithVerify(verify bool) PassOption {
	return func(p *Pass) {
		p.verify = verify
	}
}

// Pass lays out every line of a tree once.
type Pass struct {
	tree   *Tree
	opts   IndentOptions
	verify bool

	lineStart  int
	lineIndent IndentData
}

// NewPass returns a pass over tree.
func NewPass(tree *Tree, opts IndentOptions, passOpts ...PassOption) *Pass {
	p := &Pass{tree: tree, opts: opts}
	for _, opt := range passOpts {
		opt(p)
	}
	return p
}

// Run computes the indentation of every leaf that starts a line, in document
// order, and writes it into the leaf's whitespace so later lines build on it.
func (p *Pass) Run() (*PassResult, error) {
	if err := p.opts.Validate(); err != nil {
		return nil, err
	}

	result, err := p.run()
	if err != nil || !p.verify {
		return result, err
	}

	p.tree.ResetAll()
	again, err := p.run()
	if err != nil {
		return nil, err
	}
	if err := sameEdits(result.Edits, again.Edits); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Pass) run() (*PassResult, error) {
	result := &PassResult{}
	tree := p.tree
	p.lineStart, p.lineIndent = 0, IndentData{}

	for _, leaf := range tree.Leaves() {
		n := &tree.nodes[leaf]

		if n.ws.ContainsLineFeeds() {
			result.Lines++
			column := n.ws.Indent()
			if tree.InsideIncomplete(leaf) {
				result.Skipped++
			} else {
				placed, err := p.place(leaf)
				if err != nil {
					return nil, err
				}
				column = placed
				// Compare against the parsed text, not the last pass.
				n.ws.SetIndent(column)
				if n.ws.Changed(p.opts) {
					start, end := n.ws.IndentRange()
					result.Edits = append(result.Edits, Edit{
						Node:        leaf,
						StartOffset: start,
						EndOffset:   end,
						OldText:     n.ws.Original(),
						NewText:     n.ws.IndentText(p.opts),
					})
				}
			}
			p.lineStart, p.lineIndent = n.start, column

			for _, wrap := range tree.Wraps(leaf) {
				wrap.MarkActive(leaf)
			}
		}

		if aligns := tree.Alignments(leaf); len(aligns) > 0 {
			column := p.columnOf(n.start)
			for _, align := range aligns {
				align.SetAnchor(leaf, column)
			}
		}
	}
	return result, nil
}

// place computes the indentation of a leaf that starts a line. The innermost
// anchored alignment of the blocks starting with the leaf wins.
func (p *Pass) place(leaf NodeID) (IndentData, error) {
	tree := p.tree
	for _, align := range tree.Alignments(leaf) {
		if column, _, ok := align.Anchor(); ok {
			return column, nil
		}
	}
	parent := tree.nodes[leaf].parent
	if parent == NoNode {
		return tree.nodes[leaf].ws.Indent(), nil
	}
	return tree.ChildOffset(parent, leaf, p.opts, tree.nodes[leaf].start)
}

// columnOf returns the column of offset on the current line, counting
// characters after the line's indentation as alignment. Tabs advance to the
// next tab stop measured from the rewritten indentation.
func (p *Pass) columnOf(offset int) IndentData {
	if offset <= p.lineStart {
		return p.lineIndent
	}
	start := p.lineIndent.Total()
	col := start
	for _, char := range string(p.tree.content[p.lineStart:offset]) {
		if char == '\t' {
			col += p.opts.TabSize - col%p.opts.TabSize
			continue
		}
		col++
	}
	return p.lineIndent.Add(IndentData{AlignmentOffset: col - start})
}

func sameEdits(first, second []Edit) error {
	if len(first) != len(second) {
		return fmt.Errorf("%w: %d edits, then %d", ErrUnstable, len(first), len(second))
	}
	for idx := range first {
		if first[idx] != second[idx] {
			return &InvariantError{
				Op:     "verify",
				Node:   first[idx].Node,
				Start:  first[idx].StartOffset,
				End:    first[idx].EndOffset,
				Parent: NoNode,
				Err:    fmt.Errorf("%w: %q, then %q", ErrUnstable, first[idx].NewText, second[idx].NewText),
			}
		}
	}
	return nil
}
