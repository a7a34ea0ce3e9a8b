package formatting

import "fmt"

// NodeID addresses a wrapper inside its Tree.
type NodeID int32

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

// TextRange is a half-open byte range [StartOffset, EndOffset).
type TextRange struct {
	StartOffset int
	EndOffset   int
}

// Len returns the length of the range in bytes.
func (r TextRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// Contains reports whether other lies within r.
func (r TextRange) Contains(other TextRange) bool {
	return r.StartOffset <= other.StartOffset && other.EndOffset <= r.EndOffset
}

func (r TextRange) String() string {
	return fmt.Sprintf("[%d:%d]", r.StartOffset, r.EndOffset)
}

// Block is a node of a formatting model, produced by a model builder.
type Block interface {
	TextRange() TextRange
	Indent() *Indent
	Alignment() *Alignment
	Wrap() *Wrap
	IsIncomplete() bool
	Children() []Block
}

// BlockSpec carries the annotations of one block for Tree.Add.
type BlockSpec struct {
	Range      TextRange
	Indent     *Indent
	Alignment  *Alignment
	Wrap       *Wrap
	Incomplete bool
}

// wrapper is one arena slot.
type wrapper struct {
	ws       *Whitespace
	parent   NodeID
	children []NodeID
	depth    int

	start int
	end   int

	canUseFirstChildIndent bool
	incomplete             bool

	indent           *Indent
	indentFromParent *IndentInfo
	alignment        *Alignment
	wrap             *Wrap

	disposed bool
}

// Tree is an arena of block wrappers. Wrappers are addressed by NodeID and
// refer to their parent by index, so the upward links carry no ownership.
//
// A Tree is not safe for concurrent use; one formatting pass owns it.
type Tree struct {
	content    []byte
	nodes      []wrapper
	whitespace map[int]*Whitespace
	tabSize    int
	maxDepth   int
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithMaxDepth bounds the tree depth and the length of parent-chain walks.
func WithMaxDepth(depth int) TreeOption {
	return func(t *Tree) {
		if depth > 0 {
			t.maxDepth = depth
		}
	}
}

// WithTabSize sets the tab width used to measure parsed indentation.
func WithTabSize(size int) TreeOption {
	return func(t *Tree) {
		if size > 0 {
			t.tabSize = size
		}
	}
}

// NewTree returns an empty tree over content.
func NewTree(content []byte, opts ...TreeOption) *Tree {
	t := &Tree{
		content:    content,
		whitespace: make(map[int]*Whitespace),
		tabSize:    DefaultTabSize,
		maxDepth:   DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Build mirrors a block model as a wrapper tree. Blocks are added in
// pre-order, so leaves come out in document order.
func Build(content []byte, root Block, opts ...TreeOption) (*Tree, error) {
	tree := NewTree(content, opts...)
	if root == nil {
		return tree, nil
	}

	type frame struct {
		block  Block
		parent NodeID
	}
	stack := []frame{{block: root, parent: NoNode}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id, err := tree.Add(top.parent, BlockSpec{
			Range:      top.block.TextRange(),
			Indent:     top.block.Indent(),
			Alignment:  top.block.Alignment(),
			Wrap:       top.block.Wrap(),
			Incomplete: top.block.IsIncomplete(),
		})
		if err != nil {
			return nil, err
		}

		children := top.block.Children()
		for idx := len(children) - 1; idx >= 0; idx-- {
			stack = append(stack, frame{block: children[idx], parent: id})
		}
	}
	return tree, nil
}

// Add appends a wrapper under parent (NoNode for the root). The block's range
// must lie within the parent's range.
func (t *Tree) Add(parent NodeID, spec BlockSpec) (NodeID, error) {
	id := NodeID(len(t.nodes))
	rng := spec.Range
	if rng.StartOffset < 0 || rng.EndOffset < rng.StartOffset || rng.EndOffset > len(t.content) {
		return NoNode, &InvariantError{
			Op: "add", Node: id, Start: rng.StartOffset, End: rng.EndOffset,
			Parent: NoNode, Err: ErrRangeNotContained,
		}
	}

	depth := 0
	if parent != NoNode {
		p, err := t.live("add", parent)
		if err != nil {
			return NoNode, err
		}
		if !(TextRange{StartOffset: p.start, EndOffset: p.end}).Contains(rng) {
			return NoNode, &InvariantError{
				Op: "add", Node: id, Start: rng.StartOffset, End: rng.EndOffset,
				Parent: parent, ParentStart: p.start, ParentEnd: p.end, Err: ErrRangeNotContained,
			}
		}
		depth = p.depth + 1
		if depth > t.maxDepth {
			return NoNode, &InvariantError{
				Op: "add", Node: id, Start: rng.StartOffset, End: rng.EndOffset,
				Parent: parent, ParentStart: p.start, ParentEnd: p.end, Err: ErrDepthExceeded,
			}
		}
	} else if len(t.nodes) > 0 {
		return NoNode, &InvariantError{
			Op: "add", Node: id, Start: rng.StartOffset, End: rng.EndOffset,
			Parent: NoNode, Err: fmt.Errorf("%w: tree already has a root", ErrNotChild),
		}
	}

	t.nodes = append(t.nodes, wrapper{
		ws:                     t.whitespaceAt(rng.StartOffset),
		parent:                 parent,
		depth:                  depth,
		start:                  rng.StartOffset,
		end:                    rng.EndOffset,
		canUseFirstChildIndent: true,
		incomplete:             spec.Incomplete,
		indent:                 spec.Indent,
		alignment:              spec.Alignment,
		wrap:                   spec.Wrap,
	})
	if parent != NoNode {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id, nil
}

// whitespaceAt returns the shared whitespace run preceding offset.
func (t *Tree) whitespaceAt(offset int) *Whitespace {
	if ws, ok := t.whitespace[offset]; ok {
		return ws
	}
	ws := ParseWhitespace(t.content, offset, t.tabSize)
	t.whitespace[offset] = ws
	return ws
}

// live returns the wrapper for id, failing for unknown or disposed nodes.
func (t *Tree) live(op string, id NodeID) (*wrapper, error) {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil, &InvariantError{Op: op, Node: id, Parent: NoNode, Err: ErrUnknownNode}
	}
	n := &t.nodes[id]
	if n.disposed {
		return nil, &InvariantError{Op: op, Node: id, Start: n.start, End: n.end, Parent: NoNode, Err: ErrNodeDisposed}
	}
	return n, nil
}

// get returns the wrapper for id or nil.
func (t *Tree) get(id NodeID) *wrapper {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// invariant builds an InvariantError for node id, including its parent.
func (t *Tree) invariant(op string, id NodeID, err error) *InvariantError {
	e := &InvariantError{Op: op, Node: id, Parent: NoNode, Err: err}
	if n := t.get(id); n != nil {
		e.Start, e.End = n.start, n.end
		if p := t.get(n.parent); p != nil {
			e.Parent, e.ParentStart, e.ParentEnd = n.parent, p.start, p.end
		}
	}
	return e
}

// Content returns the text the tree was built over.
func (t *Tree) Content() []byte { return t.content }

// Len returns the number of wrappers.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root wrapper, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return NoNode
	}
	return 0
}

// Parent returns the parent of id, NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.get(id); n != nil {
		return n.parent
	}
	return NoNode
}

// Children returns the children of id in order.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.get(id); n != nil {
		return n.children
	}
	return nil
}

// Leaves returns the wrappers without children in document order.
func (t *Tree) Leaves() []NodeID {
	var leaves []NodeID
	for idx := range t.nodes {
		if len(t.nodes[idx].children) == 0 && !t.nodes[idx].disposed {
			leaves = append(leaves, NodeID(idx))
		}
	}
	return leaves
}

// Walk visits wrappers in pre-order with their depth. Returning false from
// fn skips the subtree.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	root := t.Root()
	if root == NoNode {
		return
	}
	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{id: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.id, top.depth) {
			continue
		}
		children := t.nodes[top.id].children
		for idx := len(children) - 1; idx >= 0; idx-- {
			stack = append(stack, frame{id: children[idx], depth: top.depth + 1})
		}
	}
}

// StartOffset returns the wrapper's current start offset.
func (t *Tree) StartOffset(id NodeID) int {
	if n := t.get(id); n != nil {
		return n.start
	}
	return 0
}

// EndOffset returns the wrapper's end offset.
func (t *Tree) EndOffset(id NodeID) int {
	if n := t.get(id); n != nil {
		return n.end
	}
	return 0
}

// Length returns the length of the wrapper's range.
func (t *Tree) Length(id NodeID) int {
	return t.EndOffset(id) - t.StartOffset(id)
}

// Whitespace returns the run preceding the wrapper.
func (t *Tree) Whitespace(id NodeID) *Whitespace {
	if n := t.get(id); n != nil {
		return n.ws
	}
	return nil
}

// Indent returns the wrapper's indent, nil when unset.
func (t *Tree) Indent(id NodeID) *Indent {
	if n := t.get(id); n != nil {
		return n.indent
	}
	return nil
}

// SetIndent assigns the wrapper's indent for the current pass.
func (t *Tree) SetIndent(id NodeID, indent *Indent) error {
	n, err := t.live("set indent", id)
	if err != nil {
		return err
	}
	n.indent = indent
	return nil
}

// IndentFromParent returns the indent handed down by SetIndentFromParent.
func (t *Tree) IndentFromParent(id NodeID) *IndentInfo {
	if n := t.get(id); n != nil {
		return n.indentFromParent
	}
	return nil
}

// Alignment returns the wrapper's alignment group, nil when none.
func (t *Tree) Alignment(id NodeID) *Alignment {
	if n := t.get(id); n != nil {
		return n.alignment
	}
	return nil
}

// EffectiveAlignment returns the first alignment found on id or on an
// ancestor that starts at the same offset.
func (t *Tree) EffectiveAlignment(id NodeID) *Alignment {
	aligns := t.Alignments(id)
	if len(aligns) == 0 {
		return nil
	}
	return aligns[0]
}

// Alignments returns the alignments of id and of every ancestor that starts
// at the same offset, innermost first.
func (t *Tree) Alignments(id NodeID) []*Alignment {
	n := t.get(id)
	if n == nil {
		return nil
	}
	start := n.start

	var aligns []*Alignment
	for cur := id; cur != NoNode && t.nodes[cur].start == start; cur = t.nodes[cur].parent {
		if align := t.nodes[cur].alignment; align != nil {
			aligns = append(aligns, align)
		}
	}
	return aligns
}

// OwnWrap returns the wrap assigned to the wrapper itself.
func (t *Tree) OwnWrap(id NodeID) *Wrap {
	if n := t.get(id); n != nil {
		return n.wrap
	}
	return nil
}

// IsIncomplete reports whether the source block was incomplete.
func (t *Tree) IsIncomplete(id NodeID) bool {
	if n := t.get(id); n != nil {
		return n.incomplete
	}
	return false
}

// InsideIncomplete reports whether id or any ancestor is incomplete.
func (t *Tree) InsideIncomplete(id NodeID) bool {
	for cur := id; cur != NoNode; cur = t.nodes[cur].parent {
		if t.get(cur) == nil {
			return false
		}
		if t.nodes[cur].incomplete {
			return true
		}
	}
	return false
}

// CanUseFirstChildIndentAsBlockIndent reports the memoized decision that the
// wrapper's column equals its first child's column.
func (t *Tree) CanUseFirstChildIndentAsBlockIndent(id NodeID) bool {
	if n := t.get(id); n != nil {
		return n.canUseFirstChildIndent
	}
	return false
}

// IsDisposed reports whether Dispose was called for id.
func (t *Tree) IsDisposed(id NodeID) bool {
	if n := t.get(id); n != nil {
		return n.disposed
	}
	return false
}
