// Package formatting implements the block-wrapper indentation engine.
//
// A formatting model is a tree of blocks annotated with Indent descriptors
// and shared Alignment and Wrap groups. The engine mirrors that tree as an
// arena of wrappers (see Tree) and answers the question "how far should this
// child be indented when it starts a new line" by walking up the parent chain
// and composing IndentData values.
package formatting

import "fmt"

// IndentType classifies how an Indent relates a block to its parent.
type IndentType uint8

const (
	// IndentNormal indents by IndentOptions.IndentSize.
	IndentNormal IndentType = iota
	// IndentNone keeps the parent's column.
	IndentNone
	// IndentSpaces adds a fixed number of alignment spaces.
	IndentSpaces
	// IndentLabel indents by IndentOptions.LabelIndentSize.
	IndentLabel
	// IndentContinuation indents by IndentOptions.ContinuationIndentSize.
	IndentContinuation
	// IndentContinuationWithoutFirst is a continuation indent that is not
	// applied to the first position of its parent.
	IndentContinuationWithoutFirst
)

// String returns a readable name for the indent type.
func (t IndentType) String() string {
	switch t {
	case IndentNormal:
		return "normal"
	case IndentNone:
		return "none"
	case IndentSpaces:
		return "spaces"
	case IndentLabel:
		return "label"
	case IndentContinuation:
		return "continuation"
	case IndentContinuationWithoutFirst:
		return "continuation-without-first"
	default:
		return fmt.Sprintf("IndentType(%d)", t)
	}
}

// Indent describes how a block's column relates to its parent.
// Indent values are immutable; use the constructors.
type Indent struct {
	typ      IndentType
	spaces   int
	absolute bool
}

// NormalIndent returns the regular block indent.
func NormalIndent() *Indent { return &Indent{typ: IndentNormal} }

// NoneIndent returns an indent that keeps the parent's column.
func NoneIndent() *Indent { return &Indent{typ: IndentNone} }

// AbsoluteNoneIndent returns a none indent measured from the document root.
func AbsoluteNoneIndent() *Indent { return &Indent{typ: IndentNone, absolute: true} }

// SpacesIndent returns an indent of exactly n alignment spaces.
// Negative counts are clamped to zero.
func SpacesIndent(n int) *Indent {
	return &Indent{typ: IndentSpaces, spaces: max(n, 0)}
}

// LabelIndent returns the label indent.
func LabelIndent() *Indent { return &Indent{typ: IndentLabel} }

// ContinuationIndent returns the continuation indent.
func ContinuationIndent() *Indent { return &Indent{typ: IndentContinuation} }

// ContinuationWithoutFirstIndent returns a continuation indent that is
// suppressed for the first position.
func ContinuationWithoutFirstIndent() *Indent {
	return &Indent{typ: IndentContinuationWithoutFirst}
}

// Absolute returns a copy of i measured from the document root rather than
// composed with ancestor indentation.
func (i *Indent) Absolute() *Indent {
	cp := *i
	cp.absolute = true
	return &cp
}

// Type returns the indent's variant.
func (i *Indent) Type() IndentType { return i.typ }

// Spaces returns the space count of an IndentSpaces indent.
func (i *Indent) Spaces() int { return i.spaces }

// IsAbsolute reports whether the indent ignores ancestor indentation.
// A nil indent is not absolute.
func (i *Indent) IsAbsolute() bool { return i != nil && i.absolute }

func (i *Indent) String() string {
	if i == nil {
		return "<nil>"
	}
	s := i.typ.String()
	if i.typ == IndentSpaces {
		s = fmt.Sprintf("%s(%d)", s, i.spaces)
	}
	if i.absolute {
		s = "absolute " + s
	}
	return s
}

// indentData maps an indent to the amount it contributes. isFirst decides
// whether a continuation-without-first indent sits at its parent's first
// position, in which case it contributes nothing.
func indentData(opts IndentOptions, indent *Indent, isFirst bool) IndentData {
	if indent == nil {
		indent = ContinuationWithoutFirstIndent()
	}
	switch indent.typ {
	case IndentContinuation:
		return IndentData{IndentSpaces: opts.ContinuationIndentSize}
	case IndentContinuationWithoutFirst:
		if isFirst {
			return IndentData{}
		}
		return IndentData{IndentSpaces: opts.ContinuationIndentSize}
	case IndentLabel:
		return IndentData{IndentSpaces: opts.LabelIndentSize}
	case IndentNone:
		return IndentData{}
	case IndentSpaces:
		return IndentData{AlignmentOffset: indent.spaces}
	default:
		return IndentData{IndentSpaces: opts.IndentSize}
	}
}
