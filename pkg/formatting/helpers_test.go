package formatting_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdindent/pkg/formatting"
)

func add(t *testing.T, tree *formatting.Tree, parent formatting.NodeID, start, end int, indent *formatting.Indent) formatting.NodeID {
	t.Helper()
	id, err := tree.Add(parent, formatting.BlockSpec{
		Range:  formatting.TextRange{StartOffset: start, EndOffset: end},
		Indent: indent,
	})
	require.NoError(t, err)
	return id
}

func addSpec(t *testing.T, tree *formatting.Tree, parent formatting.NodeID, spec formatting.BlockSpec) formatting.NodeID {
	t.Helper()
	id, err := tree.Add(parent, spec)
	require.NoError(t, err)
	return id
}

// codeTree models a brace language:
//
//	func {
//	if {
//	x
//	}
//	}
type codeTree struct {
	tree *formatting.Tree

	root, fn, body, ifBlock, body2, x, closeIf, closeFn formatting.NodeID
}

const codeSource = "func {\nif {\nx\n}\n}\n"

func newCodeTree(t *testing.T, opts ...formatting.TreeOption) *codeTree {
	t.Helper()

	tree := formatting.NewTree([]byte(codeSource), opts...)
	c := &codeTree{tree: tree}
	c.root = add(t, tree, formatting.NoNode, 0, 18, formatting.NoneIndent())
	c.fn = add(t, tree, c.root, 0, 17, formatting.NoneIndent())
	add(t, tree, c.fn, 0, 4, formatting.NoneIndent())
	add(t, tree, c.fn, 5, 6, formatting.NoneIndent())
	c.body = add(t, tree, c.fn, 7, 15, formatting.NormalIndent())
	c.ifBlock = add(t, tree, c.body, 7, 15, formatting.NoneIndent())
	add(t, tree, c.ifBlock, 7, 9, formatting.NoneIndent())
	add(t, tree, c.ifBlock, 10, 11, formatting.NoneIndent())
	c.body2 = add(t, tree, c.ifBlock, 12, 13, formatting.NormalIndent())
	c.x = add(t, tree, c.body2, 12, 13, formatting.NoneIndent())
	c.closeIf = add(t, tree, c.ifBlock, 14, 15, formatting.NoneIndent())
	c.closeFn = add(t, tree, c.fn, 16, 17, formatting.NoneIndent())
	return c
}

func applyEdits(content string, edits []formatting.Edit) string {
	out := content
	for idx := len(edits) - 1; idx >= 0; idx-- {
		edit := edits[idx]
		out = out[:edit.StartOffset] + edit.NewText + out[edit.EndOffset:]
	}
	return out
}
