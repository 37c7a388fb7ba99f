package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlr-lang/xlr/tree"
)

func TestBindLiteralPerfect(t *testing.T) {
	g := tree.NewGC()
	pattern := g.NewInteger(0, 5)
	value := g.NewInteger(0, 5)
	r := Bind(g, pattern, value)
	assert.Equal(t, Perfect, r.Strength)
}

func TestBindLiteralMismatchFails(t *testing.T) {
	g := tree.NewGC()
	pattern := g.NewInteger(0, 5)
	value := g.NewInteger(0, 6)
	r := Bind(g, pattern, value)
	assert.Equal(t, Failed, r.Strength)
}

func TestBindFreeVariable(t *testing.T) {
	g := tree.NewGC()
	pattern := g.NewName(0, "X")
	value := g.NewInteger(0, 42)
	r := Bind(g, pattern, value)
	require.Equal(t, Possible, r.Strength)
	bound, ok := r.Bindings.Get("X")
	require.True(t, ok)
	assert.Equal(t, value, bound)
}

func TestBindPrefixCall(t *testing.T) {
	g := tree.NewGC()
	// pattern: fact N
	pattern := g.NewPrefix(0, g.NewName(0, "fact"), g.NewName(0, "N"))
	// value: fact 5
	value := g.NewPrefix(0, g.NewName(0, "fact"), g.NewInteger(0, 5))
	r := Bind(g, pattern, value)
	require.Equal(t, Possible, r.Strength)
	n, ok := r.Bindings.Get("N")
	require.True(t, ok)
	assert.Equal(t, int64(5), g.Node(n).IntVal)
}

func TestBindPrefixWrongHeadFails(t *testing.T) {
	g := tree.NewGC()
	pattern := g.NewPrefix(0, g.NewName(0, "fact"), g.NewName(0, "N"))
	value := g.NewPrefix(0, g.NewName(0, "other"), g.NewInteger(0, 5))
	r := Bind(g, pattern, value)
	assert.Equal(t, Failed, r.Strength)
}

func TestBindTypedParameterEmitsTypeCheck(t *testing.T) {
	g := tree.NewGC()
	// pattern: X : integer
	pattern := g.NewInfix(0, ":", g.NewName(0, "X"), g.NewName(0, "integer"))
	value := g.NewInteger(0, 7)
	r := Bind(g, pattern, value)
	require.Equal(t, Possible, r.Strength)
	require.Len(t, r.Conditions, 1)
	assert.Equal(t, TypeCheck, r.Conditions[0].Kind)
}

func TestBindGuardEmitsGuardCondition(t *testing.T) {
	g := tree.NewGC()
	// pattern: N when N > 0
	guard := g.NewInfix(0, ">", g.NewName(0, "N"), g.NewInteger(0, 0))
	pattern := g.NewInfix(0, "when", g.NewName(0, "N"), guard)
	value := g.NewInteger(0, 5)
	r := Bind(g, pattern, value)
	require.Equal(t, Possible, r.Strength)
	require.Len(t, r.Conditions, 1)
	assert.Equal(t, Guard, r.Conditions[0].Kind)
	assert.Equal(t, guard, r.Conditions[0].Expr)
}

func TestBindRepeatedVariableSameValueDoesNotFail(t *testing.T) {
	g := tree.NewGC()
	// pattern: add X X
	xName := g.NewName(0, "X")
	pattern := g.NewPrefix(0, g.NewPrefix(0, g.NewName(0, "add"), xName), xName)
	v := g.NewInteger(0, 3)
	value := g.NewPrefix(0, g.NewPrefix(0, g.NewName(0, "add"), v), v)
	r := Bind(g, pattern, value)
	assert.NotEqual(t, Failed, r.Strength)
}

func TestBlockIsTransparent(t *testing.T) {
	g := tree.NewGC()
	inner := g.NewName(0, "X")
	pattern := g.NewBlock(0, inner, "(", ")")
	value := g.NewInteger(0, 9)
	r := Bind(g, pattern, value)
	require.Equal(t, Possible, r.Strength)
	bound, ok := r.Bindings.Get("X")
	require.True(t, ok)
	assert.Equal(t, value, bound)
}

// BindEnv seeds a pattern-variable name already present in env so that a
// coincidental reuse of that name is treated as a reference to the outer
// binding (an Equality condition against the seeded value), not a fresh
// capture — the "reference" resolution of the shadow-vs-reference question.
func TestBindEnvSeedsNameAsReferenceNotFreshCapture(t *testing.T) {
	g := tree.NewGC()
	pattern := g.NewName(0, "X")
	outer := g.NewInteger(0, 5)
	value := g.NewInteger(0, 100)
	r := BindEnv(g, pattern, value, map[string]tree.Handle{"X": outer})
	require.Equal(t, Possible, r.Strength)
	require.Len(t, r.Conditions, 1)
	assert.Equal(t, Equality, r.Conditions[0].Kind)
	assert.Equal(t, outer, r.Conditions[0].A)
	assert.Equal(t, value, r.Conditions[0].B)

	bound, ok := r.Bindings.Get("X")
	require.True(t, ok)
	assert.Equal(t, outer, bound)
}

// With no seed, the same pattern captures value as a fresh binding — the
// ordinary unbound-variable behavior BindEnv(..., nil) and Bind share.
func TestBindEnvWithoutSeedCapturesFreely(t *testing.T) {
	g := tree.NewGC()
	pattern := g.NewName(0, "X")
	value := g.NewInteger(0, 100)
	r := BindEnv(g, pattern, value, nil)
	require.Equal(t, Possible, r.Strength)
	assert.Empty(t, r.Conditions)
	bound, ok := r.Bindings.Get("X")
	require.True(t, ok)
	assert.Equal(t, value, bound)
}

func TestShapeIgnoresLeafValuesAndVariableNames(t *testing.T) {
	g := tree.NewGC()
	p1 := g.NewPrefix(0, g.NewName(0, "fact"), g.NewName(0, "N"))
	p2 := g.NewPrefix(0, g.NewName(0, "fact"), g.NewName(0, "M"))
	assert.Equal(t, Shape(g, p1), Shape(g, p2))
}
