package formatting

import "fmt"

// Wraps returns the wraps governing id, outermost first: the own wraps of id
// and of every ancestor that starts at the same offset, stopping at the first
// wrap that ignores parent wraps.
func (t *Tree) Wraps(id NodeID) []*Wrap {
	n := t.get(id)
	if n == nil {
		return nil
	}
	start := n.start

	var inner []*Wrap
	for cur := id; cur != NoNode && t.nodes[cur].start == start; cur = t.nodes[cur].parent {
		wrap := t.nodes[cur].wrap
		if wrap == nil {
			continue
		}
		if !containsWrap(inner, wrap) {
			inner = append(inner, wrap)
		}
		if wrap.IgnoreParentWraps() {
			break
		}
	}

	result := make([]*Wrap, len(inner))
	for idx, wrap := range inner {
		result[len(inner)-1-idx] = wrap
	}
	return result
}

// Wrap returns the outermost wrap governing id, nil when there is none.
func (t *Tree) Wrap(id NodeID) *Wrap {
	wraps := t.Wraps(id)
	if len(wraps) == 0 {
		return nil
	}
	return wraps[0]
}

func containsWrap(wraps []*Wrap, wrap *Wrap) bool {
	for _, w := range wraps {
		if w == wrap {
			return true
		}
	}
	return false
}

// ArrangeStartOffset moves the start of id. When id started together with
// its parent, the parent moves too, and so on up the chain.
func (t *Tree) ArrangeStartOffset(id NodeID, startOffset int) error {
	n, err := t.live("arrange start offset", id)
	if err != nil {
		return err
	}
	if startOffset < 0 || startOffset > n.end {
		e := t.invariant("arrange start offset", id, ErrRangeNotContained)
		e.Err = fmt.Errorf("%w: new start %d", ErrRangeNotContained, startOffset)
		return e
	}

	for cur := id; cur != NoNode; {
		w := &t.nodes[cur]
		if w.start == startOffset {
			return nil
		}
		first := w.parent != NoNode && w.start == t.nodes[w.parent].start
		w.start = startOffset
		if !first {
			return nil
		}
		cur = w.parent
	}
	return nil
}

// ArrangeParentTextRange moves the parent's start to id's start.
func (t *Tree) ArrangeParentTextRange(id NodeID) error {
	n, err := t.live("arrange parent text range", id)
	if err != nil {
		return err
	}
	if n.parent == NoNode {
		return nil
	}
	return t.ArrangeStartOffset(n.parent, n.start)
}

// FindFirstIndentedParent returns the nearest ancestor that starts at a
// different offset than the wrapper below it and begins a new line, or NoNode.
func (t *Tree) FindFirstIndentedParent(id NodeID) NodeID {
	if t.get(id) == nil {
		return NoNode
	}
	for cur := id; ; {
		parent := t.nodes[cur].parent
		if parent == NoNode {
			return NoNode
		}
		p := &t.nodes[parent]
		if t.nodes[cur].start != p.start && p.ws.ContainsLineFeeds() {
			return parent
		}
		cur = parent
	}
}

// SetIndentFromParent records info on id and on every ancestor that starts at
// the same offset.
func (t *Tree) SetIndentFromParent(id NodeID, info *IndentInfo) error {
	n, err := t.live("set indent from parent", id)
	if err != nil {
		return err
	}
	n.indentFromParent = info
	if info == nil {
		return nil
	}
	for cur := id; ; {
		w := &t.nodes[cur]
		if w.parent == NoNode || t.nodes[w.parent].start != w.start {
			return nil
		}
		cur = w.parent
		t.nodes[cur].indentFromParent = info
	}
}

// Reset prepares id for another pass: the first-child-indent decision is
// re-enabled and the decisions of its alignment and wrap are discarded.
func (t *Tree) Reset(id NodeID) error {
	n, err := t.live("reset", id)
	if err != nil {
		return err
	}
	n.canUseFirstChildIndent = true
	if n.alignment != nil {
		n.alignment.Reset()
	}
	if n.wrap != nil {
		n.wrap.Reset()
	}
	return nil
}

// ResetAll resets every live wrapper. Shared groups advance one generation.
func (t *Tree) ResetAll() {
	alignments := make(map[*Alignment]struct{})
	wraps := make(map[*Wrap]struct{})
	for idx := range t.nodes {
		n := &t.nodes[idx]
		if n.disposed {
			continue
		}
		n.canUseFirstChildIndent = true
		if n.alignment != nil {
			alignments[n.alignment] = struct{}{}
		}
		if n.wrap != nil {
			wraps[n.wrap] = struct{}{}
		}
	}
	for align := range alignments {
		align.Reset()
	}
	for wrap := range wraps {
		wrap.Reset()
	}
}

// Dispose detaches id from its parent and drops its references. Disposing a
// wrapper twice is a no-op.
func (t *Tree) Dispose(id NodeID) {
	n := t.get(id)
	if n == nil || n.disposed {
		return
	}
	n.alignment = nil
	n.wrap = nil
	n.indent = nil
	n.indentFromParent = nil
	n.parent = NoNode
	n.ws = nil
	n.disposed = true
}

// DisposeAll disposes every wrapper and releases the shared whitespace.
func (t *Tree) DisposeAll() {
	for idx := range t.nodes {
		t.Dispose(NodeID(idx))
	}
	t.whitespace = make(map[int]*Whitespace)
}
