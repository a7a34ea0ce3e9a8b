package markdown_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdindent/pkg/formatting"
	"github.com/yaklabco/gomdindent/pkg/markdown"
	"github.com/yaklabco/gomdindent/pkg/parser/goldmark"
)

func build(t *testing.T, flavor, src string) (*goldmark.Document, *markdown.Block) {
	t.Helper()

	doc, err := goldmark.New(flavor).Parse(context.Background(), "test.md", []byte(src))
	require.NoError(t, err)
	root, err := markdown.Build(doc, markdown.DefaultOptions())
	require.NoError(t, err)
	return doc, root
}

// reindent runs one verified pass over src and applies its edits.
func reindent(t *testing.T, src string) (string, *formatting.PassResult) {
	t.Helper()

	doc, root := build(t, goldmark.FlavorGFM, src)
	tree, err := formatting.Build(doc.Content, root)
	require.NoError(t, err)
	result, err := formatting.NewPass(tree, formatting.DefaultIndentOptions(), formatting.WithVerify(true)).Run()
	require.NoError(t, err)

	out := src
	for idx := len(result.Edits) - 1; idx >= 0; idx-- {
		edit := result.Edits[idx]
		out = out[:edit.StartOffset] + edit.NewText + out[edit.EndOffset:]
	}
	return out, result
}

func TestReindent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "paragraph continuation aligns with first line",
			src:  "- a\n   b\n",
			want: "- a\n  b\n",
		},
		{
			name: "lazy continuation",
			src:  "- a\nb\n",
			want: "- a\n  b\n",
		},
		{
			name: "nested list moves to parent content column",
			src:  "- a\n    - b\n",
			want: "- a\n  - b\n",
		},
		{
			name: "sibling items align",
			src:  "- a\n - b\n",
			want: "- a\n- b\n",
		},
		{
			name: "ordered list content width",
			src:  "1. first\n    second\n",
			want: "1. first\n   second\n",
		},
		{
			name: "top level paragraph",
			src:  "  foo\n   bar\n",
			want: "foo\nbar\n",
		},
		{
			name: "fenced code keeps relative indentation",
			src:  "- x\n\n   ```\n     y\n   ```\n",
			want: "- x\n\n  ```\n    y\n  ```\n",
		},
		{
			name: "block quote lines",
			src:  "  > a\n  > b\n",
			want: "> a\n> b\n",
		},
		{
			name: "crlf line endings",
			src:  "- a\r\n   b\r\n",
			want: "- a\r\n  b\r\n",
		},
		{
			name: "blank lines are kept",
			src:  "- a\n\n\n   b\n",
			want: "- a\n\n\n  b\n",
		},
		{
			name: "tabs inside code survive a move",
			src:  "  ```go\n  func f() {\n  \treturn\n  }\n  ```\n",
			want: "```go\nfunc f() {\n\treturn\n}\n```\n",
		},
		{
			name: "nested on marker line",
			src:  "- - a\n     b\n",
			want: "- - a\n    b\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, _ := reindent(t, testCase.src)
			assert.Equal(t, testCase.want, got)

			again, result := reindent(t, got)
			assert.Equal(t, got, again)
			assert.False(t, result.Changed(), "formatted output must be stable")
		})
	}
}

func TestReindent_Unchanged(t *testing.T) {
	t.Parallel()

	sources := []string{
		"",
		"# Title\n\nText.\n",
		"Title\n=====\n",
		"    code\n      more\n",
		"1. a\n2. b\n10. c\n",
		"- a\n\n  ```go\n  func main() {\n  \tprintln()\n  }\n  ```\n",
		"| a | b |\n| - | - |\n| 1 | 2 |\n",
		"<div>\n  <p>x</p>\n</div>\n",
		"---\n",
		"[ref]: https://example.com\n\n- item\n",
	}

	for _, src := range sources {
		got, result := reindent(t, src)
		assert.Equal(t, src, got)
		assert.False(t, result.Changed(), "source %q", src)
	}
}

func TestReindent_SkipsUnterminatedFence(t *testing.T) {
	t.Parallel()

	src := "```\n  code\n   more\n"
	got, result := reindent(t, src)
	assert.Equal(t, src, got)
	assert.Equal(t, 3, result.Skipped)

	_, root := build(t, goldmark.FlavorCommonMark, src)
	fence := root.Blocks()[0]
	assert.Equal(t, markdown.KindFencedCode, fence.Kind)
	assert.True(t, fence.IsIncomplete())
}

func TestReindent_KeepsBlockLikeContinuations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		want    string
		skipped int
	}{
		{"bullet", "text\n    - t\n", "text\n    - t\n", 1},
		{"ordered", "text\n    1. x\n", "text\n    1. x\n", 1},
		{"ordered with paren", "text\n    10) x\n", "text\n    10) x\n", 1},
		{"heading", "text\n    # h\n", "text\n    # h\n", 1},
		{"quote", "text\n    > q\n", "text\n    > q\n", 1},
		{"rule", "text\n    ***\n", "text\n    ***\n", 1},
		{"setext underline", "text\n    ---\n", "text\n    ---\n", 1},
		{"fence", "text\n    ~~~\n", "text\n    ~~~\n", 1},
		{"html", "text\n    <div>\n", "text\n    <div>\n", 1},
		{"inside an item", "- a\n  text\n      - b\n", "- a\n  text\n      - b\n", 1},
		{"plain lines still move", "para\n    # h\n   more\n", "para\n    # h\nmore\n", 1},
		{"emphasis is plain text", "text\n    *em* x\n", "text\n*em* x\n", 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, result := reindent(t, testCase.src)
			assert.Equal(t, testCase.want, got)
			assert.Equal(t, testCase.skipped, result.Skipped)
		})
	}
}

func TestBuild_BlockLikeContinuationIsIncomplete(t *testing.T) {
	t.Parallel()

	_, root := build(t, goldmark.FlavorCommonMark, "text\n    - t\nmore\n")
	para := root.Blocks()[0]
	require.Equal(t, markdown.KindParagraph, para.Kind)
	assert.False(t, para.IsIncomplete())

	lines := para.Blocks()
	require.Len(t, lines, 3)
	assert.False(t, lines[0].IsIncomplete())
	assert.True(t, lines[1].IsIncomplete())
	assert.False(t, lines[2].IsIncomplete())
}

func TestBuild_FreezesBlocksBeforeUntouchedSibling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		frozen func(root *markdown.Block) *markdown.Block
	}{
		{
			name:   "list before unterminated fence",
			src:    "  2. x\n   ```\n10) d\n",
			frozen: func(root *markdown.Block) *markdown.Block { return root.Blocks()[0] },
		},
		{
			name: "nested list before unterminated fence in an item",
			src:  "- a\n\n   - b\n\n  ```\n  x\n",
			frozen: func(root *markdown.Block) *markdown.Block {
				return root.Blocks()[0].Blocks()[0].Blocks()[2]
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, root := build(t, goldmark.FlavorCommonMark, testCase.src)
			blk := testCase.frozen(root)
			assert.Equal(t, markdown.KindList, blk.Kind)
			assert.True(t, blk.IsIncomplete())

			got, result := reindent(t, testCase.src)
			assert.Equal(t, testCase.src, got)
			assert.False(t, result.Changed())
		})
	}
}

func TestBuild_ListModel(t *testing.T) {
	t.Parallel()

	src := "- a\n  b\n- c\n"
	_, root := build(t, goldmark.FlavorCommonMark, src)

	require.Len(t, root.Blocks(), 1)
	list := root.Blocks()[0]
	assert.Equal(t, markdown.KindList, list.Kind)
	assert.Equal(t, formatting.TextRange{StartOffset: 0, EndOffset: 11}, list.Range)

	items := list.Blocks()
	require.Len(t, items, 2)
	assert.Same(t, items[0].Wrap(), items[1].Wrap())
	assert.Same(t, items[0].Alignment(), items[1].Alignment())
	assert.Equal(t, formatting.WrapAlways, items[0].Wrap().Type())
	assert.False(t, items[0].Wrap().IgnoreParentWraps())

	first := items[0].Blocks()
	require.Len(t, first, 2)
	assert.Equal(t, markdown.KindMarker, first[0].Kind)
	assert.Equal(t, formatting.TextRange{StartOffset: 0, EndOffset: 1}, first[0].Range)
	assert.Equal(t, markdown.KindParagraph, first[1].Kind)
	assert.Equal(t, formatting.IndentSpaces, first[1].Indent().Type())
	assert.Equal(t, 2, first[1].Indent().Spaces())

	lines := first[1].Blocks()
	require.Len(t, lines, 2)
	assert.Same(t, lines[0].Alignment(), lines[1].Alignment())
	assert.Equal(t, formatting.TextRange{StartOffset: 6, EndOffset: 7}, lines[1].Range)

	var leaves []string
	for _, leaf := range root.Leaves() {
		leaves = append(leaves, src[leaf.Range.StartOffset:leaf.Range.EndOffset])
	}
	assert.Equal(t, []string{"-", "a", "b", "-", "c"}, leaves)
}

func TestBuild_NestedListWrapIgnoresParent(t *testing.T) {
	t.Parallel()

	_, root := build(t, goldmark.FlavorCommonMark, "- a\n  - b\n")
	outer := root.Blocks()[0].Blocks()[0]
	nested := outer.Blocks()[2]
	require.Equal(t, markdown.KindList, nested.Kind)
	assert.True(t, nested.Blocks()[0].Wrap().IgnoreParentWraps())
	assert.NotSame(t, outer.Wrap(), nested.Blocks()[0].Wrap())
}

func TestBuild_VerbatimRelativeIndent(t *testing.T) {
	t.Parallel()

	_, root := build(t, goldmark.FlavorCommonMark, "```\nx\n    y\n```\n")
	fence := root.Blocks()[0]
	require.Equal(t, markdown.KindFencedCode, fence.Kind)
	require.Len(t, fence.Blocks(), 4)
	assert.Equal(t, formatting.IndentNone, fence.Blocks()[0].Indent().Type())
	assert.Equal(t, 0, fence.Blocks()[2].Indent().Spaces())
	assert.Equal(t, formatting.TextRange{StartOffset: 6, EndOffset: 11}, fence.Blocks()[2].Range, "deeper indentation stays in the line")
	assert.False(t, fence.IsIncomplete())
}

func TestBuild_RaggedIndentedCodeIsLeftAlone(t *testing.T) {
	t.Parallel()

	_, root := build(t, goldmark.FlavorCommonMark, "        deep\n    shallow\n")
	code := root.Blocks()[0]
	require.Equal(t, markdown.KindIndentedCode, code.Kind)
	assert.True(t, code.IsIncomplete())
}

func TestBuild_NoDocument(t *testing.T) {
	t.Parallel()

	_, err := markdown.Build(nil, markdown.DefaultOptions())
	require.ErrorIs(t, err, markdown.ErrNoDocument)
}

func TestDump(t *testing.T) {
	t.Parallel()

	src := "- a\n"
	_, root := build(t, goldmark.FlavorCommonMark, src)

	var buf bytes.Buffer
	require.NoError(t, markdown.Dump(&buf, root, []byte(src)))

	out := buf.String()
	assert.Contains(t, out, "document [0:4] indent=none\n")
	assert.Contains(t, out, "  list [0:3] indent=none\n")
	assert.Contains(t, out, `wrap="list-1"(always)`)
	assert.Contains(t, out, `marker [0:1] indent=none "-"`)
	assert.Contains(t, out, `line [2:3] indent=none align="paragraph-`)
}
