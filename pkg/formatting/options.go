package formatting

import "fmt"

// Default indentation sizes.
const (
	DefaultIndentSize             = 4
	DefaultContinuationIndentSize = 8
	DefaultLabelIndentSize        = 0
	DefaultTabSize                = 4

	// DefaultMaxDepth bounds the parent-chain walk of a single offset query.
	DefaultMaxDepth = 4096
)

// IndentOptions holds the numeric sizes each Indent variant maps to.
// The engine reads options but never writes them.
type IndentOptions struct {
	IndentSize             int
	ContinuationIndentSize int
	LabelIndentSize        int
	TabSize                int
	UseTabs                bool
}

// DefaultIndentOptions returns the default sizes.
func DefaultIndentOptions() IndentOptions {
	return IndentOptions{
		IndentSize:             DefaultIndentSize,
		ContinuationIndentSize: DefaultContinuationIndentSize,
		LabelIndentSize:        DefaultLabelIndentSize,
		TabSize:                DefaultTabSize,
	}
}

// Validate rejects negative sizes and a non-positive tab size.
func (o IndentOptions) Validate() error {
	switch {
	case o.IndentSize < 0:
		return fmt.Errorf("%w: indent size %d is negative", ErrInvalidOptions, o.IndentSize)
	case o.ContinuationIndentSize < 0:
		return fmt.Errorf("%w: continuation indent size %d is negative", ErrInvalidOptions, o.ContinuationIndentSize)
	case o.LabelIndentSize < 0:
		return fmt.Errorf("%w: label indent size %d is negative", ErrInvalidOptions, o.LabelIndentSize)
	case o.TabSize <= 0:
		return fmt.Errorf("%w: tab size must be positive, got %d", ErrInvalidOptions, o.TabSize)
	}
	return nil
}

// ChildAttributes describe a virtual child that is not in the tree yet.
type ChildAttributes struct {
	// ChildIndent is the child's indent. Nil means
	// ContinuationWithoutFirstIndent.
	ChildIndent *Indent

	// Alignment is the group the child would join, if any.
	Alignment *Alignment
}

// IndentInfo is an indentation handed down from a parent block.
type IndentInfo struct {
	LineFeeds    int
	IndentSpaces int
	Spaces       int
}
