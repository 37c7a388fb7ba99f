package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xlr-lang/xlr/tree"
)

func TestUnifyIdenticalLeafTypes(t *testing.T) {
	g := tree.NewGC()
	ctx := NewContext()
	assert.True(t, Unify(g, ctx, Integer(g), Integer(g), Use))
}

func TestUnifyIntegerIsSubtypeOfReal(t *testing.T) {
	g := tree.NewGC()
	ctx := NewContext()
	assert.True(t, Unify(g, ctx, Integer(g), Real(g), Use))
}

func TestUnifyIntegerAndTextFails(t *testing.T) {
	g := tree.NewGC()
	ctx := NewContext()
	assert.False(t, Unify(g, ctx, Integer(g), Text(g), Use))
}

func TestUnifyFreeVariableBinds(t *testing.T) {
	g := tree.NewGC()
	ctx := NewContext()
	v := freshVar(g)
	intType := Integer(g)
	assert.True(t, Unify(g, ctx, v, intType, Use))
	assert.Equal(t, intType, ctx.Resolve(g, v))
}

func TestUnifyUnionMatchesAnyMember(t *testing.T) {
	g := tree.NewGC()
	ctx := NewContext()
	u := Union(g, Integer(g), Text(g))
	assert.True(t, Unify(g, ctx, Text(g), u, Use))
}

func TestTypeOfConstants(t *testing.T) {
	g := tree.NewGC()
	ctx := NewContext()
	intLit := g.NewInteger(0, 1)
	ty := TypeOf(g, intLit, ctx)
	n := g.Node(ty)
	assert.Equal(t, tree.Name, n.Kind)
	assert.Equal(t, "integer", n.NameVal)
}

func TestCommitMergesProvisionalBindings(t *testing.T) {
	g := tree.NewGC()
	parent := NewContext()
	child := parent.Child()
	v := freshVar(g)
	intType := Integer(g)
	Unify(g, child, v, intType, Use)
	parent.Commit(child)
	assert.Equal(t, intType, parent.Resolve(g, v))
}
