package formatting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdindent/pkg/formatting"
)

func TestAlignment_FirstAnchorPerGeneration(t *testing.T) {
	t.Parallel()

	align := formatting.NewAlignment("args")
	_, node, ok := align.Anchor()
	assert.False(t, ok)
	assert.Equal(t, formatting.NoNode, node)

	assert.True(t, align.SetAnchor(3, formatting.IndentData{AlignmentOffset: 5}))
	assert.False(t, align.SetAnchor(4, formatting.IndentData{AlignmentOffset: 9}))

	column, node, ok := align.Anchor()
	assert.True(t, ok)
	assert.Equal(t, formatting.NodeID(3), node)
	assert.Equal(t, formatting.IndentData{AlignmentOffset: 5}, column)

	align.Reset()
	_, _, ok = align.Anchor()
	assert.False(t, ok)
	assert.True(t, align.SetAnchor(4, formatting.IndentData{AlignmentOffset: 9}))
	assert.Equal(t, "args", align.Name())
}

func TestWrap_Activation(t *testing.T) {
	t.Parallel()

	wrap := formatting.NewWrap("items", formatting.WrapNormal, false)
	assert.False(t, wrap.IsActive())
	_, ok := wrap.FirstActive()
	assert.False(t, ok)

	wrap.MarkActive(2)
	wrap.MarkActive(5)
	assert.True(t, wrap.IsActive())
	first, ok := wrap.FirstActive()
	assert.True(t, ok)
	assert.Equal(t, formatting.NodeID(2), first)

	wrap.Reset()
	assert.False(t, wrap.IsActive())

	always := formatting.NewWrap("list", formatting.WrapAlways, true)
	assert.True(t, always.IsActive())
	assert.True(t, always.IgnoreParentWraps())
	assert.Equal(t, "always", always.Type().String())
}
