package serialize

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlr-lang/xlr/tree"
)

// buildSample constructs a small tree exercising every kind: an Infix whose
// left is a Block wrapping a Prefix, and whose right is a Postfix, with a
// repeated Name ("X") to exercise interning.
func buildSample(g *tree.GC) tree.Handle {
	x1 := g.NewName(1, "X")
	x2 := g.NewName(2, "X")
	txt := g.NewText(3, "hi", "\"", "\"")
	prefix := g.NewPrefix(4, x1, txt)
	block := g.NewBlock(5, prefix, "(", ")")
	real := g.NewReal(6, 3.5)
	postfix := g.NewPostfix(7, real, x2)
	return g.NewInfix(8, "+", block, postfix)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	g1 := tree.NewGC()
	h1 := buildSample(g1)

	var buf bytes.Buffer
	require.NoError(t, Serialize(g1, h1, &buf))

	g2 := tree.NewGC()
	h2, err := Deserialize(&buf, g2)
	require.NoError(t, err)

	assert.True(t, equalTrees(g1, h1, g2, h2))
}

func TestSerializeNullHandle(t *testing.T) {
	g1 := tree.NewGC()
	var buf bytes.Buffer
	require.NoError(t, Serialize(g1, 0, &buf))

	g2 := tree.NewGC()
	h2, err := Deserialize(&buf, g2)
	require.NoError(t, err)
	assert.Equal(t, tree.Handle(0), h2)
}

func TestDeserializeRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 0, 1, 1})
	_, err := Deserialize(buf, tree.NewGC())
	require.Error(t, err)
}

func TestDeserializeRejectsUnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	g := tree.NewGC()
	h := g.NewInteger(0, 1)
	require.NoError(t, Serialize(g, h, &buf))

	raw := buf.Bytes()
	raw[4] = 0x09 // corrupt the version's high byte
	_, err := Deserialize(bytes.NewReader(raw), tree.NewGC())
	require.Error(t, err)
}

// equalTrees is a deep structural comparison across two (possibly distinct)
// GCs, ignoring Pos but comparing Text and Block delimiters, which render's
// own treeEqual test helper does not compare.
func equalTrees(g1 *tree.GC, h1 tree.Handle, g2 *tree.GC, h2 tree.Handle) bool {
	n1, n2 := g1.Node(h1), g2.Node(h2)
	if n1 == nil || n2 == nil {
		return n1 == nil && n2 == nil
	}
	if n1.Kind != n2.Kind {
		return false
	}
	switch n1.Kind {
	case tree.Integer:
		return n1.IntVal == n2.IntVal
	case tree.Real:
		return n1.RealVal == n2.RealVal
	case tree.Text:
		return n1.TextVal == n2.TextVal && n1.Opening == n2.Opening && n1.Closing == n2.Closing
	case tree.Name:
		return n1.NameVal == n2.NameVal
	case tree.Block:
		return n1.Opening == n2.Opening && n1.Closing == n2.Closing &&
			equalTrees(g1, n1.Child, g2, n2.Child)
	case tree.Infix:
		return n1.NameVal == n2.NameVal &&
			equalTrees(g1, n1.Left, g2, n2.Left) && equalTrees(g1, n1.Right, g2, n2.Right)
	case tree.Prefix, tree.Postfix:
		return equalTrees(g1, n1.Left, g2, n2.Left) && equalTrees(g1, n1.Right, g2, n2.Right)
	}
	return false
}
