package formatting

// IndentData is an accumulated indentation: IndentSpaces is rendered as
// indentation (tabs when enabled), AlignmentOffset is always rendered as
// spaces.
type IndentData struct {
	IndentSpaces    int
	AlignmentOffset int
}

// Add returns the component-wise sum of d and other.
func (d IndentData) Add(other IndentData) IndentData {
	return IndentData{
		IndentSpaces:    d.IndentSpaces + other.IndentSpaces,
		AlignmentOffset: d.AlignmentOffset + other.AlignmentOffset,
	}
}

// AddWhitespace folds in the indentation currently held by ws.
func (d IndentData) AddWhitespace(ws *Whitespace) IndentData {
	if ws == nil {
		return d
	}
	return d.Add(IndentData{IndentSpaces: ws.IndentSpaces, AlignmentOffset: ws.Spaces})
}

// IsEmpty reports whether both components are zero.
func (d IndentData) IsEmpty() bool {
	return d.IndentSpaces == 0 && d.AlignmentOffset == 0
}

// Total returns the resulting column width.
func (d IndentData) Total() int {
	return d.IndentSpaces + d.AlignmentOffset
}
