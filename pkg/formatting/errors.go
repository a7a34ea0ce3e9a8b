package formatting

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrInvalidOptions indicates unusable IndentOptions.
	ErrInvalidOptions = errors.New("invalid indent options")

	// ErrUnknownNode indicates a NodeID that does not belong to the tree.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNodeDisposed indicates an operation on a disposed wrapper.
	ErrNodeDisposed = errors.New("node disposed")

	// ErrNotChild indicates a child that is not attached to the given parent.
	ErrNotChild = errors.New("node is not a child of the given parent")

	// ErrRangeNotContained indicates a block range outside its parent's range.
	ErrRangeNotContained = errors.New("range not contained in parent range")

	// ErrDepthExceeded indicates a tree deeper than the configured limit.
	ErrDepthExceeded = errors.New("maximum tree depth exceeded")

	// ErrUnstable indicates that re-running a pass after reset changed its result.
	ErrUnstable = errors.New("pass result changed after reset")
)

// InvariantError reports a broken structural precondition of the wrapper
// tree. It is a programming error in the model builder, never a property of
// the formatted text.
type InvariantError struct {
	// Op is the operation that detected the problem.
	Op string

	// Node is the offending wrapper (NoNode when not applicable).
	Node NodeID

	// Start and End are the offending wrapper's range.
	Start int
	End   int

	// Parent, ParentStart and ParentEnd describe the enclosing wrapper.
	Parent      NodeID
	ParentStart int
	ParentEnd   int

	// Err is the sentinel describing the violation.
	Err error
}

func (e *InvariantError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", e.Op, e.Err)
	if e.Node != NoNode {
		fmt.Fprintf(&b, " (node %d [%d:%d]", e.Node, e.Start, e.End)
		if e.Parent != NoNode {
			fmt.Fprintf(&b, ", parent %d [%d:%d]", e.Parent, e.ParentStart, e.ParentEnd)
		}
		b.WriteString(")")
	}
	return b.String()
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
