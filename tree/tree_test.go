package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAndAccess(t *testing.T) {
	g := NewGC()
	h := g.NewInteger(0, 42)
	n := g.Node(h)
	require.NotNil(t, n)
	assert.Equal(t, Integer, n.Kind)
	assert.Equal(t, int64(42), n.IntVal)
	assert.True(t, n.IsLeaf())
}

func TestInfixShape(t *testing.T) {
	g := NewGC()
	l := g.NewInteger(0, 1)
	r := g.NewInteger(0, 2)
	op := g.NewInfix(0, "+", l, r)
	assert.True(t, g.IsInfix(op, "+"))
	assert.False(t, g.node(op).IsLeaf())
}

func TestInfoChainRoundTrip(t *testing.T) {
	g := NewGC()
	h := g.NewName(0, "x")

	type parentInfo Handle
	SetInfo[parentInfo](g, h, parentInfo(0))
	v, ok := GetInfo[parentInfo](g, h)
	require.True(t, ok)
	assert.Equal(t, parentInfo(0), v)

	type typeInfo string
	SetInfo[typeInfo](g, h, typeInfo("integer"))
	tv, ok := GetInfo[typeInfo](g, h)
	require.True(t, ok)
	assert.Equal(t, typeInfo("integer"), tv)

	// Updating an existing key does not duplicate the record.
	SetInfo[typeInfo](g, h, typeInfo("real"))
	tv, ok = GetInfo[typeInfo](g, h)
	require.True(t, ok)
	assert.Equal(t, typeInfo("real"), tv)

	RemoveInfo[typeInfo](g, h)
	_, ok = GetInfo[typeInfo](g, h)
	assert.False(t, ok)

	// parentInfo record must still be intact.
	v, ok = GetInfo[parentInfo](g, h)
	require.True(t, ok)
	assert.Equal(t, parentInfo(0), v)
}

// TestCollectReclaimsUnreachable exercises safety invariant #6: a node
// unreachable from the root set is swept, and its Info finalizer runs
// exactly once.
func TestCollectReclaimsUnreachable(t *testing.T) {
	g := NewGC()
	root := g.NewInteger(0, 1)
	orphan := g.NewInteger(0, 2)
	g.AddRoot(root)

	finalized := 0
	g.AddFinalizer(orphan, func(Handle) { finalized++ })

	g.Collect()

	assert.NotNil(t, g.Node(root))
	assert.Nil(t, g.Node(orphan))
	assert.Equal(t, 1, finalized)

	g.Collect()
	assert.Equal(t, 1, finalized, "finalizer must run exactly once")
}

func TestCollectKeepsReachableChildren(t *testing.T) {
	g := NewGC()
	l := g.NewInteger(0, 1)
	r := g.NewInteger(0, 2)
	op := g.NewInfix(0, "+", l, r)
	g.AddRoot(op)

	g.Collect()

	assert.NotNil(t, g.Node(op))
	assert.NotNil(t, g.Node(l))
	assert.NotNil(t, g.Node(r))
}

func TestCollectClearsDeadWeakRef(t *testing.T) {
	g := NewGC()
	root := g.NewInteger(0, 1)
	orphan := g.NewInteger(0, 2)
	g.AddRoot(root)

	type parentInfo Handle
	SetWeakInfo[parentInfo](g, root, parentInfo(orphan))

	g.Collect()

	v, ok := GetInfo[parentInfo](g, root)
	require.True(t, ok)
	assert.Equal(t, parentInfo(0), v, "weak ref to a swept node must be cleared")
}

func TestCloneIsStructurallyIndependent(t *testing.T) {
	g := NewGC()
	l := g.NewInteger(0, 1)
	r := g.NewInteger(0, 2)
	orig := g.NewInfix(0, "+", l, r)

	clone := g.Clone(orig)
	assert.NotEqual(t, orig, clone)

	cn := g.Node(clone)
	require.NotNil(t, cn)
	assert.True(t, g.IsInfix(clone, "+"))
	assert.NotEqual(t, l, cn.Left)
	assert.NotEqual(t, r, cn.Right)
}
