package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlr-lang/xlr/tree"
)

func TestBindLookupChain(t *testing.T) {
	g := tree.NewGC()
	root := NewGlobalScope()
	child := NewScope(root)

	v := g.NewInteger(0, 1)
	root.Bind("one", v)

	h, ok := child.Lookup("one")
	require.True(t, ok)
	assert.Equal(t, v, h)

	_, ok = root.Lookup("missing")
	assert.False(t, ok)
}

func TestDefineOrdersByDeclaration(t *testing.T) {
	g := tree.NewGC()
	s := NewGlobalScope()

	// 0! -> 1
	zeroFact := g.NewPostfix(0, g.NewInteger(0, 0), g.NewName(0, "!"))
	s.Define(g, zeroFact, g.NewInteger(0, 1), 0, Local)

	// N! when N > 0 -> ...
	guard := g.NewInfix(0, ">", g.NewName(0, "N"), g.NewInteger(0, 0))
	nFact := g.NewInfix(0, "when", g.NewPostfix(0, g.NewName(0, "N"), g.NewName(0, "!")), guard)
	body := g.NewInteger(0, 120)
	s.Define(g, nFact, body, 0, Local)

	value := g.NewPostfix(0, g.NewInteger(0, 5), g.NewName(0, "!"))
	cands := s.Candidates(g, value)
	require.Len(t, cands, 2, "both 0! and N! must bucket together under the '!' shape key")
	assert.Equal(t, zeroFact, cands[0].From, "declaration order must be preserved")
	assert.Equal(t, nFact, cands[1].From)
}

func TestLookupOuterSkipsOwnRewriteActivation(t *testing.T) {
	g := tree.NewGC()
	root := NewGlobalScope()

	nFact := g.NewPostfix(0, g.NewName(0, "N"), g.NewName(0, "!"))
	rw := root.Define(g, nFact, g.NewInteger(0, 0), 0, Local)

	// A scope pushed for rw's own body (e.g. its first activation, N=5)
	// must not make "N" visible as an outer binding to a nested re-match
	// of the very same rule.
	activation := NewScope(root)
	activation.DefiningRewrite = rw
	activation.Bind("N", g.NewInteger(0, 5))

	_, ok := activation.LookupOuter("N", rw)
	assert.False(t, ok, "a rule's own parameter must not shadow-check against its own recursive activation")

	// An unrelated rewrite's binding of the same name is still a genuine
	// outer reference.
	other := &Rewrite{}
	h, ok := activation.LookupOuter("N", other)
	require.True(t, ok)
	assert.Equal(t, tree.Integer, g.Node(h).Kind)

	// Passing a nil rw (no current rule context) behaves like Lookup.
	h, ok = activation.LookupOuter("N", nil)
	require.True(t, ok)
	assert.Equal(t, int64(5), g.Node(h).IntVal)
}

func TestCandidatesSearchesParentAfterLocal(t *testing.T) {
	g := tree.NewGC()
	root := NewGlobalScope()
	child := NewScope(root)

	globalRule := g.NewPrefix(0, g.NewName(0, "f"), g.NewName(0, "X"))
	root.Define(g, globalRule, g.NewName(0, "X"), 0, Global)

	localRule := g.NewPrefix(0, g.NewName(0, "f"), g.NewName(0, "Y"))
	child.Define(g, localRule, g.NewName(0, "Y"), 0, Local)

	value := g.NewPrefix(0, g.NewName(0, "f"), g.NewInteger(0, 1))
	cands := child.Candidates(g, value)
	require.Len(t, cands, 2)
	assert.Equal(t, localRule, cands[0].From, "local scope wins ordering over parent")
	assert.Equal(t, globalRule, cands[1].From)
}
