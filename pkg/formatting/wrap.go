package formatting

import "fmt"

// WrapType decides when the blocks of a Wrap group break onto new lines.
type WrapType uint8

const (
	// WrapNone never breaks.
	WrapNone WrapType = iota
	// WrapNormal breaks a block only when it does not fit.
	WrapNormal
	// WrapAlways breaks every block of the group.
	WrapAlways
	// WrapChopDownIfLong breaks every block once any block breaks.
	WrapChopDownIfLong
)

func (t WrapType) String() string {
	switch t {
	case WrapNone:
		return "none"
	case WrapNormal:
		return "normal"
	case WrapAlways:
		return "always"
	case WrapChopDownIfLong:
		return "chop-down-if-long"
	default:
		return fmt.Sprintf("WrapType(%d)", t)
	}
}

// Wrap is a group of blocks that share one line-break decision.
// Like Alignment, decisions belong to a generation that Reset advances.
type Wrap struct {
	name              string
	typ               WrapType
	ignoreParentWraps bool
	generation        uint64

	active    bool
	activeGen uint64
	firstNode NodeID
}

// NewWrap returns a wrap group. When ignoreParentWraps is set, the wraps of
// enclosing blocks starting at the same offset are not consulted.
func NewWrap(name string, typ WrapType, ignoreParentWraps bool) *Wrap {
	return &Wrap{name: name, typ: typ, ignoreParentWraps: ignoreParentWraps, firstNode: NoNode}
}

// Name returns the group's diagnostic name.
func (w *Wrap) Name() string { return w.name }

// Type returns the wrap policy.
func (w *Wrap) Type() WrapType { return w.typ }

// IgnoreParentWraps reports whether enclosing wraps are ignored.
func (w *Wrap) IgnoreParentWraps() bool { return w.ignoreParentWraps }

// Generation returns the current generation.
func (w *Wrap) Generation() uint64 { return w.generation }

// Reset discards the decision of the current generation.
func (w *Wrap) Reset() {
	w.generation++
}

// IsActive reports whether the group decided to break in this generation.
func (w *Wrap) IsActive() bool {
	if w.typ == WrapAlways {
		return true
	}
	return w.active && w.activeGen == w.generation
}

// MarkActive records that node broke onto a new line. The first node to do so
// in the current generation is remembered.
func (w *Wrap) MarkActive(node NodeID) {
	if w.active && w.activeGen == w.generation {
		return
	}
	w.active = true
	w.activeGen = w.generation
	w.firstNode = node
}

// FirstActive returns the node that activated the group in this generation.
func (w *Wrap) FirstActive() (NodeID, bool) {
	if !w.active || w.activeGen != w.generation {
		return NoNode, false
	}
	return w.firstNode, true
}
