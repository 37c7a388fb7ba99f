package types

import (
	"fmt"

	"github.com/xlr-lang/xlr/tree"
)

// Mode distinguishes why two types are being unified (spec.md §4.G).
type Mode int

const (
	// Use unifies an expression's inferred type against a context that
	// merely consumes it (e.g. a call-site argument).
	Use Mode = iota
	// Declaration unifies a body's inferred type against an explicitly
	// declared annotation, which must be honored exactly once committed.
	Declaration
)

// InferredType is the Info key under which a node's memoized type tree is
// cached (spec.md §4.G "memoized as an Info record").
type InferredType tree.Handle

var typeVarSeq int

// typeName allocates a fresh Name node standing for a predefined type.
func typeName(g *tree.GC, name string) tree.Handle {
	return g.NewName(0, name)
}

// Integer, Real, Text, Symbol and Boolean are the predefined leaf types of
// spec.md §4.G.
func Integer(g *tree.GC) tree.Handle { return typeName(g, "integer") }
func Real(g *tree.GC) tree.Handle    { return typeName(g, "real") }
func Text(g *tree.GC) tree.Handle    { return typeName(g, "text") }
func Symbol(g *tree.GC) tree.Handle  { return typeName(g, "symbol") }
func Boolean(g *tree.GC) tree.Handle { return typeName(g, "boolean") }

// Union builds the type tree "a|b".
func Union(g *tree.GC, a, b tree.Handle) tree.Handle {
	return g.NewInfix(0, "|", a, b)
}

// Function builds the type tree "a->b".
func Function(g *tree.GC, a, b tree.Handle) tree.Handle {
	return g.NewInfix(0, "->", a, b)
}

const typeVarPrefix = "?"

// freshVar allocates a fresh, still-unbound type variable.
func freshVar(g *tree.GC) tree.Handle {
	typeVarSeq++
	return g.NewName(0, fmt.Sprintf("%s%d", typeVarPrefix, typeVarSeq))
}

func isTypeVar(n *tree.Node) bool {
	return n != nil && n.Kind == tree.Name && len(n.NameVal) > 0 && n.NameVal[0] == typeVarPrefix[0]
}

// Context accumulates provisional type-variable bindings (spec.md §4.G
// "commit(child_env)"): inference runs against a child Context so a failed
// candidate never pollutes the parent's bindings.
type Context struct {
	bindings map[tree.Handle]tree.Handle
}

// NewContext returns an empty, top-level inference context.
func NewContext() *Context {
	return &Context{bindings: make(map[tree.Handle]tree.Handle)}
}

// Child returns a fresh provisional context for a single candidate attempt.
func (c *Context) Child() *Context {
	return NewContext()
}

// Commit merges child's bindings into c, per spec.md §4.G "commit".
func (c *Context) Commit(child *Context) bool {
	for k, v := range child.bindings {
		c.bindings[k] = v
	}
	return true
}

// Resolve follows c's bindings for h; it does not consult memoized Info.
func (c *Context) Resolve(g *tree.GC, h tree.Handle) tree.Handle {
	seen := make(map[tree.Handle]bool)
	for {
		if seen[h] {
			return h
		}
		seen[h] = true
		if v, ok := c.bindings[h]; ok {
			h = v
			continue
		}
		return h
	}
}

func (c *Context) bind(tv, t tree.Handle) {
	c.bindings[tv] = t
}

// TypeOf assigns or retrieves the type tree of expr (spec.md §4.G
// "type_of"). Constants get their predefined type; an already-typed node
// returns its memoized Info; anything else gets a fresh type variable,
// to be narrowed by subsequent Unify calls.
func TypeOf(g *tree.GC, expr tree.Handle, ctx *Context) tree.Handle {
	if t, ok := tree.GetInfo[InferredType](g, expr); ok {
		return tree.Handle(t)
	}
	n := g.Node(expr)
	if n == nil {
		return freshVar(g)
	}
	var t tree.Handle
	switch n.Kind {
	case tree.Integer:
		t = Integer(g)
	case tree.Real:
		t = Real(g)
	case tree.Text:
		t = Text(g)
	case tree.Name:
		if n.NameVal == "true" || n.NameVal == "false" {
			t = Boolean(g)
		} else {
			t = Symbol(g)
		}
	case tree.Block:
		t = TypeOf(g, n.Child, ctx)
	default:
		t = freshVar(g)
	}
	SetInferred(g, expr, t)
	return t
}

// SetInferred memoizes h's type as t, as an Info record on the expression
// node itself. Nothing is cached on the owning Rewrite, so inference is not
// memoized per rewrite or per argument shape.
func SetInferred(g *tree.GC, h, t tree.Handle) {
	tree.SetInfo[InferredType](g, h, InferredType(t))
}

// isSubtype reports whether a is a strict subtype of b (spec.md §4.G
// "integer ⊂ real").
func isSubtype(a, b string) bool {
	return a == "integer" && b == "real"
}

// Unify implements spec.md §4.G's unification: structural equality after
// substitution, subtyping, free-variable binding, or union-member match.
func Unify(g *tree.GC, ctx *Context, t1, t2 tree.Handle, mode Mode) bool {
	t1 = ctx.Resolve(g, t1)
	t2 = ctx.Resolve(g, t2)
	if t1 == t2 {
		return true
	}
	n1, n2 := g.Node(t1), g.Node(t2)
	if n1 == nil || n2 == nil {
		return false
	}
	if isTypeVar(n1) {
		ctx.bind(t1, t2)
		return true
	}
	if isTypeVar(n2) {
		ctx.bind(t2, t1)
		return true
	}
	if n2.Kind == tree.Infix && n2.NameVal == "|" {
		return Unify(g, ctx, t1, n2.Left, mode) || Unify(g, ctx, t1, n2.Right, mode)
	}
	if n1.Kind == tree.Infix && n1.NameVal == "|" {
		return Unify(g, ctx, n1.Left, t2, mode) || Unify(g, ctx, n1.Right, t2, mode)
	}
	if n1.Kind == tree.Name && n2.Kind == tree.Name {
		if n1.NameVal == n2.NameVal {
			return true
		}
		return isSubtype(n1.NameVal, n2.NameVal) || isSubtype(n2.NameVal, n1.NameVal)
	}
	if n1.Kind != n2.Kind {
		return false
	}
	switch n1.Kind {
	case tree.Infix:
		return n1.NameVal == n2.NameVal &&
			Unify(g, ctx, n1.Left, n2.Left, mode) && Unify(g, ctx, n1.Right, n2.Right, mode)
	case tree.Prefix, tree.Postfix:
		return Unify(g, ctx, n1.Left, n2.Left, mode) && Unify(g, ctx, n1.Right, n2.Right, mode)
	case tree.Block:
		return Unify(g, ctx, n1.Child, n2.Child, mode)
	}
	return false
}
