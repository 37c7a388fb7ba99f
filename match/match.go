package match

import (
	"github.com/xlr-lang/xlr/tree"
)

// Strength is the three-valued match outcome of spec.md §4.F.
type Strength int

const (
	Failed Strength = iota
	Possible
	Perfect
)

// weaker returns the lesser of two Strengths (spec.md §4.F "the strength is
// the weaker of the two").
func weaker(a, b Strength) Strength {
	if a < b {
		return a
	}
	return b
}

// ConditionKind distinguishes the flavors of deferred runtime check a match
// may produce.
type ConditionKind int

const (
	// Equality defers a value-equality check between A and B to run time
	// (used when a pattern variable is bound twice, or a literal is
	// matched against an unevaluated expression).
	Equality ConditionKind = iota
	// Guard defers evaluation of a `when` clause; it must reduce to the
	// boolean Name "true".
	Guard
	// TypeCheck defers unification of a bound value's type against a
	// declared type annotation.
	TypeCheck
)

// Condition is one deferred check a candidate rewrite must satisfy before
// its body runs (spec.md §4.F "conditions").
type Condition struct {
	Kind ConditionKind
	A, B tree.Handle // Equality
	Expr tree.Handle // Guard: the guard expression
	// TypeCheck: Value is the bound subterm, Type is the declared type tree.
	Value, Type tree.Handle
}

// Bindings maps pattern-variable names to the subterm of the value they
// were bound to. Order records first-occurrence order, since spec.md §4.F's
// invariant 2 requires every binding to map to a subterm of v, and callers
// (eval) build child environments in declaration order.
type Bindings struct {
	values map[string]tree.Handle
	order  []string
}

func newBindings() *Bindings {
	return &Bindings{values: make(map[string]tree.Handle)}
}

// Get returns the handle bound to name, if any.
func (b *Bindings) Get(name string) (tree.Handle, bool) {
	h, ok := b.values[name]
	return h, ok
}

// Names returns bound names in first-occurrence order.
func (b *Bindings) Names() []string {
	return b.order
}

func (b *Bindings) set(name string, h tree.Handle) {
	if _, ok := b.values[name]; !ok {
		b.order = append(b.order, name)
	}
	b.values[name] = h
}

// Result is the outcome of Bind: the three-valued strength, accumulated
// bindings, and deferred conditions.
type Result struct {
	Strength   Strength
	Bindings   *Bindings
	Conditions []Condition
}

// Bind matches value against pattern and returns bindings/conditions/
// strength per spec.md §4.F's per-shape rules.
func Bind(g *tree.GC, pattern, value tree.Handle) Result {
	return BindEnv(g, pattern, value, nil)
}

// BindEnv matches value against pattern like Bind, but first seeds the
// binding set from env: a bare-name pattern variable whose name is a key
// of env is treated as a reference to that outer value (so matching it
// defers to the same Equality-condition path as a name repeated twice in
// one pattern) rather than capturing a fresh binding. This resolves
// spec.md's open question of whether a pattern name that coincides with a
// name already bound in the surrounding scope shadows or references that
// outer binding, in favor of "references".
func BindEnv(g *tree.GC, pattern, value tree.Handle, env map[string]tree.Handle) Result {
	b := newBindings()
	for name, h := range env {
		b.set(name, h)
	}
	s, conds := bind(g, pattern, value, b)
	return Result{Strength: s, Bindings: b, Conditions: conds}
}

func bind(g *tree.GC, pattern, value tree.Handle, b *Bindings) (Strength, []Condition) {
	pn := g.Node(pattern)
	if pn == nil {
		return Failed, nil
	}

	// Block is transparent on both sides (spec.md §4.F "Block").
	if pn.Kind == tree.Block {
		return bind(g, pn.Child, unwrapBlock(g, value), b)
	}
	value = unwrapBlock(g, value)
	vn := g.Node(value)
	if vn == nil {
		return Failed, nil
	}

	switch pn.Kind {
	case tree.Integer, tree.Real, tree.Text:
		return bindLiteral(g, pn, vn, value)
	case tree.Name:
		return bindName(pn.NameVal, value, b)
	case tree.Infix:
		return bindInfix(g, pn, value, vn, b)
	case tree.Prefix:
		return bindPrefix(g, pn, value, vn, b)
	case tree.Postfix:
		return bindPostfix(g, pn, value, vn, b)
	}
	return Failed, nil
}

func unwrapBlock(g *tree.GC, h tree.Handle) tree.Handle {
	n := g.Node(h)
	for n != nil && n.Kind == tree.Block {
		h = n.Child
		n = g.Node(h)
	}
	return h
}

func bindLiteral(g *tree.GC, pn, vn *tree.Node, value tree.Handle) (Strength, []Condition) {
	if vn.Kind == pn.Kind {
		switch pn.Kind {
		case tree.Integer:
			if vn.IntVal == pn.IntVal {
				return Perfect, nil
			}
			return Failed, nil
		case tree.Real:
			if vn.RealVal == pn.RealVal {
				return Perfect, nil
			}
			return Failed, nil
		case tree.Text:
			if vn.TextVal == pn.TextVal && vn.Opening == pn.Opening {
				return Perfect, nil
			}
			return Failed, nil
		}
	}
	if vn.Kind == tree.Name {
		// value is an unresolved symbol: defer the literal comparison.
		lit := literalHandleOf(g, pn)
		return Possible, []Condition{{Kind: Equality, A: lit, B: value}}
	}
	return Failed, nil
}

func literalHandleOf(g *tree.GC, pn *tree.Node) tree.Handle {
	switch pn.Kind {
	case tree.Integer:
		return g.NewInteger(pn.Pos, pn.IntVal)
	case tree.Real:
		return g.NewReal(pn.Pos, pn.RealVal)
	case tree.Text:
		return g.NewText(pn.Pos, pn.TextVal, pn.Opening, pn.Closing)
	}
	return 0
}

func bindName(name string, value tree.Handle, b *Bindings) (Strength, []Condition) {
	if prev, ok := b.Get(name); ok {
		if prev == value {
			return Perfect, nil
		}
		return Possible, []Condition{{Kind: Equality, A: prev, B: value}}
	}
	b.set(name, value)
	return Possible, nil
}

func bindInfix(g *tree.GC, pn *tree.Node, value tree.Handle, vn *tree.Node, b *Bindings) (Strength, []Condition) {
	switch pn.NameVal {
	case ":":
		s, conds := bind(g, pn.Left, value, b)
		if s == Failed {
			return Failed, nil
		}
		conds = append(conds, Condition{Kind: TypeCheck, Value: value, Type: pn.Right})
		return Possible, conds
	case "when":
		s, conds := bind(g, pn.Left, value, b)
		if s == Failed {
			return Failed, nil
		}
		conds = append(conds, Condition{Kind: Guard, Expr: pn.Right})
		return Possible, conds
	}
	if vn.Kind != tree.Infix || vn.NameVal != pn.NameVal {
		return Failed, nil
	}
	ls, lc := bind(g, pn.Left, vn.Left, b)
	if ls == Failed {
		return Failed, nil
	}
	rs, rc := bind(g, pn.Right, vn.Right, b)
	if rs == Failed {
		return Failed, nil
	}
	return weaker(ls, rs), append(lc, rc...)
}

func bindPrefix(g *tree.GC, pn *tree.Node, value tree.Handle, vn *tree.Node, b *Bindings) (Strength, []Condition) {
	if vn.Kind != tree.Prefix {
		return Failed, nil
	}
	headPat := g.Node(pn.Left)
	headVal := g.Node(vn.Left)
	if headPat != nil && headPat.Kind == tree.Name {
		if headVal == nil || headVal.Kind != tree.Name || headVal.NameVal != headPat.NameVal {
			return Failed, nil
		}
		return bind(g, pn.Right, vn.Right, b)
	}
	hs, hc := bind(g, pn.Left, vn.Left, b)
	if hs == Failed {
		return Failed, nil
	}
	as, ac := bind(g, pn.Right, vn.Right, b)
	if as == Failed {
		return Failed, nil
	}
	return weaker(hs, as), append(hc, ac...)
}

func bindPostfix(g *tree.GC, pn *tree.Node, value tree.Handle, vn *tree.Node, b *Bindings) (Strength, []Condition) {
	if vn.Kind != tree.Postfix {
		return Failed, nil
	}
	tailPat := g.Node(pn.Right)
	tailVal := g.Node(vn.Right)
	if tailPat != nil && tailPat.Kind == tree.Name {
		if tailVal == nil || tailVal.Kind != tree.Name || tailVal.NameVal != tailPat.NameVal {
			return Failed, nil
		}
		return bind(g, pn.Left, vn.Left, b)
	}
	ls, lc := bind(g, pn.Left, vn.Left, b)
	if ls == Failed {
		return Failed, nil
	}
	ts, tc := bind(g, pn.Right, vn.Right, b)
	if ts == Failed {
		return Failed, nil
	}
	return weaker(ls, ts), append(lc, tc...)
}
