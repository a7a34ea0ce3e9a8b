package formatting

// Alignment is a group of blocks that share a column. The first block of the
// group to be placed anchors the column; later blocks that start a new line
// are moved to it.
//
// Decisions are scoped to a generation: Reset starts a new generation and
// every anchor recorded before it is ignored from then on.
type Alignment struct {
	name       string
	generation uint64

	anchored   bool
	anchorGen  uint64
	anchor     IndentData
	anchorNode NodeID
}

// NewAlignment returns an empty alignment group. The name only shows up in
// diagnostics and tree dumps.
func NewAlignment(name string) *Alignment {
	return &Alignment{name: name, anchorNode: NoNode}
}

// Name returns the group's diagnostic name.
func (a *Alignment) Name() string { return a.name }

// Generation returns the current generation.
func (a *Alignment) Generation() uint64 { return a.generation }

// Reset discards the anchor of the current generation.
func (a *Alignment) Reset() {
	a.generation++
}

// Anchor returns the column recorded in the current generation.
func (a *Alignment) Anchor() (IndentData, NodeID, bool) {
	if !a.anchored || a.anchorGen != a.generation {
		return IndentData{}, NoNode, false
	}
	return a.anchor, a.anchorNode, true
}

// SetAnchor records the group's column unless one is already recorded in the
// current generation. It reports whether the anchor was taken.
func (a *Alignment) SetAnchor(node NodeID, column IndentData) bool {
	if _, _, ok := a.Anchor(); ok {
		return false
	}
	a.anchored = true
	a.anchorGen = a.generation
	a.anchor = column
	a.anchorNode = node
	return true
}
