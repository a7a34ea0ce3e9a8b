package formatting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndentData_Mapping(t *testing.T) {
	t.Parallel()

	opts := IndentOptions{IndentSize: 4, ContinuationIndentSize: 8, LabelIndentSize: 0, TabSize: 4}

	tests := []struct {
		name    string
		indent  *Indent
		isFirst bool
		want    IndentData
	}{
		{"continuation", ContinuationIndent(), false, IndentData{IndentSpaces: 8}},
		{"continuation at first position", ContinuationIndent(), true, IndentData{IndentSpaces: 8}},
		{"continuation without first at first position", ContinuationWithoutFirstIndent(), true, IndentData{}},
		{"continuation without first elsewhere", ContinuationWithoutFirstIndent(), false, IndentData{IndentSpaces: 8}},
		{"label", LabelIndent(), false, IndentData{}},
		{"none", NoneIndent(), false, IndentData{}},
		{"spaces", SpacesIndent(3), false, IndentData{AlignmentOffset: 3}},
		{"normal", NormalIndent(), false, IndentData{IndentSpaces: 4}},
		{"absolute normal keeps its size", NormalIndent().Absolute(), false, IndentData{IndentSpaces: 4}},
		{"nil defaults to continuation without first", nil, false, IndentData{IndentSpaces: 8}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, indentData(opts, testCase.indent, testCase.isFirst))
		})
	}
}

func TestIndentData_LabelSize(t *testing.T) {
	t.Parallel()

	opts := IndentOptions{IndentSize: 2, ContinuationIndentSize: 4, LabelIndentSize: 2, TabSize: 4}
	assert.Equal(t, IndentData{IndentSpaces: 2}, indentData(opts, LabelIndent(), false))
}

func TestIndent_Constructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, IndentSpaces, SpacesIndent(3).Type())
	assert.Equal(t, 3, SpacesIndent(3).Spaces())
	assert.Equal(t, 0, SpacesIndent(-2).Spaces())

	normal := NormalIndent()
	abs := normal.Absolute()
	assert.True(t, abs.IsAbsolute())
	assert.False(t, normal.IsAbsolute(), "Absolute must not mutate the receiver")
	assert.True(t, AbsoluteNoneIndent().IsAbsolute())
	assert.Equal(t, IndentNone, AbsoluteNoneIndent().Type())

	var unset *Indent
	assert.False(t, unset.IsAbsolute())
	assert.Equal(t, "<nil>", unset.String())
	assert.Equal(t, "absolute spaces(2)", SpacesIndent(2).Absolute().String())
}

func TestIndentDataArithmetic(t *testing.T) {
	t.Parallel()

	sum := IndentData{IndentSpaces: 4, AlignmentOffset: 1}.Add(IndentData{IndentSpaces: 8, AlignmentOffset: 2})
	assert.Equal(t, IndentData{IndentSpaces: 12, AlignmentOffset: 3}, sum)
	assert.Equal(t, 15, sum.Total())
	assert.True(t, IndentData{}.IsEmpty())
	assert.False(t, IndentData{AlignmentOffset: 1}.IsEmpty())

	ws := &Whitespace{IndentSpaces: 4, Spaces: 2}
	assert.Equal(t, IndentData{IndentSpaces: 5, AlignmentOffset: 2}, IndentData{IndentSpaces: 1}.AddWhitespace(ws))
	assert.Equal(t, IndentData{IndentSpaces: 1}, IndentData{IndentSpaces: 1}.AddWhitespace(nil))
}

func TestIndentOptions_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultIndentOptions().Validate())

	bad := DefaultIndentOptions()
	bad.TabSize = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidOptions)

	bad = DefaultIndentOptions()
	bad.ContinuationIndentSize = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidOptions)
}
