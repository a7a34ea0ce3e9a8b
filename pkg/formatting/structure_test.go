package formatting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdindent/pkg/formatting"
)

func TestWraps(t *testing.T) {
	t.Parallel()

	build := func(t *testing.T, outer, inner *formatting.Wrap) (*formatting.Tree, formatting.NodeID) {
		t.Helper()
		tree := formatting.NewTree([]byte("0123456789abcdefghij"))
		root := add(t, tree, formatting.NoNode, 0, 20, nil)
		a := addSpec(t, tree, root, formatting.BlockSpec{Range: formatting.TextRange{StartOffset: 5, EndOffset: 20}, Wrap: outer})
		b := addSpec(t, tree, a, formatting.BlockSpec{Range: formatting.TextRange{StartOffset: 5, EndOffset: 15}, Wrap: inner})
		return tree, add(t, tree, b, 5, 10, nil)
	}

	t.Run("inner wrap ignores parents", func(t *testing.T) {
		t.Parallel()

		w1 := formatting.NewWrap("w1", formatting.WrapNormal, false)
		w2 := formatting.NewWrap("w2", formatting.WrapNormal, true)
		tree, leaf := build(t, w1, w2)

		assert.Equal(t, []*formatting.Wrap{w2}, tree.Wraps(leaf))
		assert.Same(t, w2, tree.Wrap(leaf))
		assert.Nil(t, tree.OwnWrap(leaf))
	})

	t.Run("outermost first", func(t *testing.T) {
		t.Parallel()

		w1 := formatting.NewWrap("w1", formatting.WrapNormal, false)
		w2 := formatting.NewWrap("w2", formatting.WrapNormal, false)
		tree, leaf := build(t, w1, w2)

		assert.Equal(t, []*formatting.Wrap{w1, w2}, tree.Wraps(leaf))
		assert.Same(t, w1, tree.Wrap(leaf))
	})

	t.Run("shared wrap listed once", func(t *testing.T) {
		t.Parallel()

		w := formatting.NewWrap("w", formatting.WrapAlways, false)
		tree, leaf := build(t, w, w)

		assert.Equal(t, []*formatting.Wrap{w}, tree.Wraps(leaf))
	})

	t.Run("no wraps", func(t *testing.T) {
		t.Parallel()

		tree, leaf := build(t, nil, nil)
		assert.Empty(t, tree.Wraps(leaf))
		assert.Nil(t, tree.Wrap(leaf))
	})
}

func TestArrangeStartOffset(t *testing.T) {
	t.Parallel()

	build := func(t *testing.T) (*formatting.Tree, formatting.NodeID, formatting.NodeID, formatting.NodeID, formatting.NodeID) {
		t.Helper()
		tree := formatting.NewTree([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
		root := add(t, tree, formatting.NoNode, 0, 30, nil)
		parent := add(t, tree, root, 10, 30, nil)
		first := add(t, tree, parent, 10, 20, nil)
		second := add(t, tree, parent, 20, 30, nil)
		return tree, root, parent, first, second
	}

	t.Run("first child moves its parent", func(t *testing.T) {
		t.Parallel()

		tree, root, parent, first, second := build(t)
		require.NoError(t, tree.ArrangeStartOffset(first, 12))
		assert.Equal(t, 12, tree.StartOffset(first))
		assert.Equal(t, 12, tree.StartOffset(parent))
		assert.Equal(t, 0, tree.StartOffset(root))

		require.NoError(t, tree.ArrangeStartOffset(second, 22))
		assert.Equal(t, 22, tree.StartOffset(second))
		assert.Equal(t, 12, tree.StartOffset(parent))
		assert.Equal(t, 8, tree.Length(second))
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()

		tree, _, parent, first, _ := build(t)
		require.ErrorIs(t, tree.ArrangeStartOffset(first, 25), formatting.ErrRangeNotContained)
		require.ErrorIs(t, tree.ArrangeStartOffset(first, -1), formatting.ErrRangeNotContained)
		assert.Equal(t, 10, tree.StartOffset(first))
		assert.Equal(t, 10, tree.StartOffset(parent))
	})

	t.Run("parent follows child", func(t *testing.T) {
		t.Parallel()

		tree := formatting.NewTree([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
		root := add(t, tree, formatting.NoNode, 0, 30, nil)
		parent := add(t, tree, root, 10, 30, nil)
		child := add(t, tree, parent, 14, 20, nil)

		require.NoError(t, tree.ArrangeParentTextRange(child))
		assert.Equal(t, 14, tree.StartOffset(parent))
		require.NoError(t, tree.ArrangeParentTextRange(root))
		assert.Equal(t, 0, tree.StartOffset(root))
	})
}

func TestFindFirstIndentedParent(t *testing.T) {
	t.Parallel()

	c := newCodeTree(t)
	assert.Equal(t, c.ifBlock, c.tree.FindFirstIndentedParent(c.x))
	assert.Equal(t, c.fn, c.tree.FindFirstIndentedParent(c.ifBlock))
	assert.Equal(t, formatting.NoNode, c.tree.FindFirstIndentedParent(c.root))
	assert.Equal(t, formatting.NoNode, c.tree.FindFirstIndentedParent(42))
}

func TestSetIndentFromParent(t *testing.T) {
	t.Parallel()

	c := newCodeTree(t)
	info := &formatting.IndentInfo{LineFeeds: 1, IndentSpaces: 8}

	require.NoError(t, c.tree.SetIndentFromParent(c.x, info))
	assert.Same(t, info, c.tree.IndentFromParent(c.x))
	assert.Same(t, info, c.tree.IndentFromParent(c.body2))
	assert.Nil(t, c.tree.IndentFromParent(c.ifBlock))

	require.NoError(t, c.tree.SetIndentFromParent(c.x, nil))
	assert.Nil(t, c.tree.IndentFromParent(c.x))
}

func TestResetAll_AdvancesSharedGroupsOnce(t *testing.T) {
	t.Parallel()

	align := formatting.NewAlignment("a")
	wrap := formatting.NewWrap("w", formatting.WrapNormal, false)
	tree := formatting.NewTree([]byte("ab\ncd"))
	root := add(t, tree, formatting.NoNode, 0, 5, nil)
	addSpec(t, tree, root, formatting.BlockSpec{Range: formatting.TextRange{StartOffset: 0, EndOffset: 2}, Alignment: align, Wrap: wrap})
	addSpec(t, tree, root, formatting.BlockSpec{Range: formatting.TextRange{StartOffset: 3, EndOffset: 5}, Alignment: align, Wrap: wrap})

	tree.ResetAll()
	assert.Equal(t, uint64(1), align.Generation())
	assert.Equal(t, uint64(1), wrap.Generation())
}
