package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlr-lang/xlr/errs"
	"github.com/xlr-lang/xlr/syntax"
	"github.com/xlr-lang/xlr/tree"
)

func parse(t *testing.T, src string) (*tree.GC, tree.Handle, *errs.Sink) {
	t.Helper()
	g := tree.NewGC()
	syn := syntax.Default()
	sink := &errs.Sink{}
	h := ParseSource(src, g, syn, sink)
	return g, h, sink
}

func TestParseArithmeticPrecedence(t *testing.T) {
	g, h, sink := parse(t, "1 + 2 * 3\n")
	require.True(t, sink.Empty())
	n := g.Node(h)
	require.Equal(t, tree.Infix, n.Kind)
	assert.Equal(t, "+", n.NameVal)
	left := g.Node(n.Left)
	assert.Equal(t, tree.Integer, left.Kind)
	assert.Equal(t, int64(1), left.IntVal)
	right := g.Node(n.Right)
	require.Equal(t, tree.Infix, right.Kind)
	assert.Equal(t, "*", right.NameVal)
}

func TestParseFunctionApplicationAsPrefix(t *testing.T) {
	g, h, sink := parse(t, "fact 5\n")
	require.True(t, sink.Empty())
	n := g.Node(h)
	require.Equal(t, tree.Prefix, n.Kind)
	left := g.Node(n.Left)
	assert.Equal(t, tree.Name, left.Kind)
	assert.Equal(t, "fact", left.NameVal)
	right := g.Node(n.Right)
	assert.Equal(t, tree.Integer, right.Kind)
	assert.Equal(t, int64(5), right.IntVal)
}

func TestParsePostfixOperator(t *testing.T) {
	g, h, sink := parse(t, "5!\n")
	require.True(t, sink.Empty())
	n := g.Node(h)
	require.Equal(t, tree.Postfix, n.Kind)
	opNode := g.Node(n.Right)
	assert.Equal(t, "!", opNode.NameVal)
}

func TestParseBracketedBlock(t *testing.T) {
	g, h, sink := parse(t, "(1 + 2)\n")
	require.True(t, sink.Empty())
	n := g.Node(h)
	require.Equal(t, tree.Block, n.Kind)
	assert.Equal(t, "(", n.Opening)
	assert.Equal(t, ")", n.Closing)
	inner := g.Node(n.Child)
	assert.Equal(t, tree.Infix, inner.Kind)
}

func TestParseImplicitIndentBlockAsDefinitionBody(t *testing.T) {
	src := "f N ->\n    N + 1\n"
	g, h, sink := parse(t, src)
	require.True(t, sink.Empty())
	n := g.Node(h)
	require.Equal(t, tree.Infix, n.Kind)
	assert.Equal(t, "->", n.NameVal)
	body := g.Node(n.Right)
	require.Equal(t, tree.Block, body.Kind)
	assert.Equal(t, "indent", body.Opening)
	assert.Equal(t, "unindent", body.Closing)
}

func TestParseSequenceChainsStatements(t *testing.T) {
	g, h, sink := parse(t, "a\nb\nc")
	require.True(t, sink.Empty())
	var names []string
	cur := h
	for {
		n := g.Node(cur)
		if n.Kind == tree.Infix && n.NameVal == "\n" {
			names = append(names, g.Node(n.Left).NameVal)
			cur = n.Right
			continue
		}
		names = append(names, n.NameVal)
		break
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestParseUnaryMinus(t *testing.T) {
	g, h, sink := parse(t, "- 5\n")
	require.True(t, sink.Empty())
	n := g.Node(h)
	require.Equal(t, tree.Prefix, n.Kind)
	opNode := g.Node(n.Left)
	assert.Equal(t, "-", opNode.NameVal)
}

func TestParseMismatchedCloseReportsError(t *testing.T) {
	_, _, sink := parse(t, "(1 + 2\n")
	assert.False(t, sink.Empty())
}
