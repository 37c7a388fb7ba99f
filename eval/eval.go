package eval

import (
	"github.com/xlr-lang/xlr/errs"
	"github.com/xlr-lang/xlr/match"
	"github.com/xlr-lang/xlr/symbols"
	"github.com/xlr-lang/xlr/tree"
	"github.com/xlr-lang/xlr/types"
	"github.com/xlr-lang/xlr/xlctx"
)

// Closure wraps an unevaluated expression with the environment it must be
// evaluated in (spec.md §4.H "Closures and lazy evaluation"): an argument
// bound to a bare variable pattern is not evaluated before the call, only
// when a body reference to it is actually resolved.
//
// Closures in this implementation are not memoized across separate name
// occurrences in a rewrite body: each textual reference to the parameter
// re-enters the closure's captured expression. This is a deliberate
// resolution of the tension between §4.H's "memoized back into the
// closure" phrasing and scenario S4's explicit requirement that a side
// effect inside a lazy argument fire once per use (DESIGN.md records this
// choice).
type Closure struct {
	Scope *symbols.Scope
	Expr  tree.Handle
}

type reducedTag bool

func markReduced(g *tree.GC, h tree.Handle) {
	tree.SetInfo[reducedTag](g, h, true)
}

func isReduced(g *tree.GC, h tree.Handle) bool {
	v, ok := tree.GetInfo[reducedTag](g, h)
	return ok && bool(v)
}

// Eval is the top-level entry point of spec.md §4.H's eval(env, expr).
// ctx.Scope is the environment active at the call; it is restored to its
// entry value before Eval returns, so nested calls (eager typed-argument
// evaluation, guard/condition checks) cannot leak scope or depth changes
// into the caller.
func Eval(ctx *xlctx.Context, expr tree.Handle) (tree.Handle, error) {
	savedScope := ctx.Scope
	savedDepth := ctx.Depth
	defer func() {
		ctx.Scope = savedScope
		ctx.Depth = savedDepth
	}()
	return run(ctx, expr)
}

// run evaluates expr in ctx.Scope, tail-looping through successive rewrite
// applications. ctx.Scope is saved on entry and restored before run returns,
// so a nested call (evalChildren's per-child evaluation, checkConditions, the
// eager-typed-argument path in tryCandidates) cannot leak a closure's scope
// swap into its caller's sibling evaluations — only the tail loop within a
// single run invocation carries a scope change forward between iterations.
func run(ctx *xlctx.Context, expr tree.Handle) (tree.Handle, error) {
	savedScope := ctx.Scope
	defer func() { ctx.Scope = savedScope }()
	// enters counts this invocation's own EnterRewrite calls, so the
	// deferred loop below leaves exactly that many when this call returns.
	// That keeps ctx.Depth reflecting live run() nesting (genuine recursion
	// depth) rather than a cumulative count of every rewrite ever applied:
	// sibling sub-evaluations each get their own enters budget, released
	// back to the caller's baseline once they return, instead of piling
	// onto a single never-decremented counter.
	enters := 0
	defer func() {
		for i := 0; i < enters; i++ {
			ctx.LeaveRewrite()
		}
	}()
	for {
		if !ctx.SafePoint() {
			return expr, errs.New(errs.Cancelled, posOf(ctx.GC, expr), "evaluation cancelled")
		}

		n := ctx.GC.Node(expr)
		if n == nil {
			return expr, nil
		}

		// Step 1: constants and already-reduced nodes return as-is.
		if n.Kind == tree.Integer || n.Kind == tree.Real || n.Kind == tree.Text {
			return expr, nil
		}
		if isReduced(ctx.GC, expr) {
			return expr, nil
		}

		// Step 2: a name directly bound in env (a rewrite parameter,
		// lazy or eager) evaluates its binding. A name with no direct
		// binding falls through to step 3: it may still be the pattern
		// of a zero-argument rewrite.
		if n.Kind == tree.Name {
			if h, ok := ctx.Scope.Lookup(n.NameVal); ok {
				if cl, ok := tree.GetInfo[Closure](ctx.GC, h); ok {
					ctx.Scope = cl.Scope
					expr = cl.Expr
					continue
				}
				expr = h
				continue
			}
		}

		// Step 3: try candidate rewrites for expr's shape, in order.
		next, matched, err := tryCandidates(ctx, expr)
		if err != nil {
			return expr, err
		}
		if matched {
			if !ctx.EnterRewrite() {
				return expr, errs.New(errs.Resource, posOf(ctx.GC, expr), "recursion depth exceeded")
			}
			enters++
			expr = next
			continue
		}

		// Step 4: no candidate matched a compound form; evaluate children
		// and retry once.
		if isCompound(n.Kind) {
			evaluated, err := evalChildren(ctx, expr)
			if err != nil {
				return expr, err
			}
			next, matched, err := tryCandidates(ctx, evaluated)
			if err != nil {
				return evaluated, err
			}
			if matched {
				if !ctx.EnterRewrite() {
					return evaluated, errs.New(errs.Resource, posOf(ctx.GC, evaluated), "recursion depth exceeded")
				}
				enters++
				expr = next
				continue
			}
			if result, ok := applyBuiltin(ctx, evaluated); ok {
				markReduced(ctx.GC, result)
				return result, nil
			}
			// Step 5: a declared data form is inert once its children
			// have been evaluated.
			if name, ok := headName(ctx.GC, evaluated); ok && ctx.Scope.IsData(name) {
				markReduced(ctx.GC, evaluated)
				return evaluated, nil
			}
			// Step 6: form-error.
			return evaluated, shapeMatchError(ctx, evaluated)
		}

		// Step 5 for a bare name: a declared nullary data atom is inert.
		if n.Kind == tree.Name && ctx.Scope.IsData(n.NameVal) {
			markReduced(ctx.GC, expr)
			return expr, nil
		}

		// Step 6: form-error.
		return expr, shapeMatchError(ctx, expr)
	}
}

func isCompound(k tree.Kind) bool {
	switch k {
	case tree.Block, tree.Prefix, tree.Postfix, tree.Infix:
		return true
	}
	return false
}

func shapeMatchError(ctx *xlctx.Context, expr tree.Handle) error {
	return errs.New(errs.ShapeMatch, posOf(ctx.GC, expr), "no form matches $1", expr)
}

func posOf(g *tree.GC, h tree.Handle) tree.Position {
	if n := g.Node(h); n != nil {
		return n.Pos
	}
	return 0
}

// tryCandidates enumerates ctx.Scope's candidate rewrites for expr, in
// order, and applies the first one whose pattern match and conditions all
// succeed. On success it pushes a child scope (bound with the match's
// bindings, per the eager/lazy rule) into ctx.Scope and returns the
// rewrite's replacement body as the next expression to evaluate in tail
// position — no recursive Eval call is made for the matched body itself.
func tryCandidates(ctx *xlctx.Context, expr tree.Handle) (tree.Handle, bool, error) {
	callingScope := ctx.Scope
	for _, rw := range callingScope.Candidates(ctx.GC, expr) {
		result := match.BindEnv(ctx.GC, rw.From, expr, outerEnvFor(ctx.GC, rw, callingScope))
		if result.Strength == match.Failed {
			continue
		}

		childScope := symbols.NewScope(callingScope)
		childScope.DefiningRewrite = rw
		typed := typedNames(ctx.GC, rw.From)
		bindErr := error(nil)
		for _, name := range result.Bindings.Names() {
			h, _ := result.Bindings.Get(name)
			if typed[name] {
				ctx.Scope = callingScope
				reduced, err := run(ctx, h)
				if err != nil {
					bindErr = err
					break
				}
				childScope.Bind(name, reduced)
				continue
			}
			marker := ctx.GC.NewName(posOf(ctx.GC, h), name)
			tree.SetInfo[Closure](ctx.GC, marker, Closure{Scope: callingScope, Expr: h})
			childScope.Bind(name, marker)
		}
		if bindErr != nil {
			return 0, false, bindErr
		}

		conds := result.Conditions
		if rw.Guard != 0 {
			conds = append(conds, match.Condition{Kind: match.Guard, Expr: rw.Guard})
		}

		ctx.Scope = childScope
		ok, err := checkConditions(ctx, conds)
		if err != nil {
			ctx.Scope = callingScope
			return 0, false, err
		}
		if !ok {
			ctx.Scope = callingScope
			continue
		}
		return rw.To, true, nil
	}
	ctx.Scope = callingScope
	return 0, false, nil
}

// checkConditions evaluates deferred match conditions in order, in
// ctx.Scope (the freshly bound child scope). It stops at the first
// failure, per spec.md §4.F/§4.H ("on any failure, try the next
// candidate").
func checkConditions(ctx *xlctx.Context, conds []match.Condition) (bool, error) {
	for _, c := range conds {
		switch c.Kind {
		case match.Equality:
			av, err := run(ctx, c.A)
			if err != nil {
				return false, err
			}
			bv, err := run(ctx, c.B)
			if err != nil {
				return false, err
			}
			if !structurallyEqual(ctx.GC, av, bv) {
				return false, nil
			}
		case match.Guard:
			gv, err := run(ctx, c.Expr)
			if err != nil {
				return false, err
			}
			if !ctx.GC.IsName(gv, "true") {
				return false, nil
			}
		case match.TypeCheck:
			tctx := types.NewContext()
			vt := types.TypeOf(ctx.GC, c.Value, tctx)
			if !types.Unify(ctx.GC, tctx, vt, c.Type, types.Use) {
				ctx.Report(errs.New(errs.Type, posOf(ctx.GC, c.Value),
					"value of type $1 does not match declared type $2", c.Value, c.Type))
				return false, nil
			}
		}
	}
	return true, nil
}

// outerEnvFor builds the seed map match.BindEnv needs to resolve the
// shadow-vs-reference open question as "reference": every bare name that
// occurs in rw.From and is already bound in an enclosing scope contributes
// its current value, so matching treats that occurrence as a constraint
// against the outer binding instead of a fresh capture.
//
// The lookup skips scope frames whose DefiningRewrite is rw itself: a rule
// recursively re-applying to its own reduced argument rebinds its own
// parameter name fresh on every entry (the ordinary self-recursion idiom,
// e.g. "N! when N>0 -> N*(N-1)!"), it does not reference the enclosing
// activation's value of that same name. Only a name bound by some other
// rule's activation (or the global scope) counts as a genuine outer
// reference.
func outerEnvFor(g *tree.GC, rw *symbols.Rewrite, scope *symbols.Scope) map[string]tree.Handle {
	names := make(map[string]bool)
	collectNames(g, rw.From, names)
	var env map[string]tree.Handle
	for name := range names {
		if h, ok := scope.LookupOuter(name, rw); ok {
			if env == nil {
				env = make(map[string]tree.Handle)
			}
			env[name] = h
		}
	}
	return env
}

// typedNames collects the names that occur under a ":" type annotation
// anywhere in pattern, so the binding loop can tell a typed (eager)
// parameter from an untyped (lazy/closure) one.
func typedNames(g *tree.GC, pattern tree.Handle) map[string]bool {
	out := make(map[string]bool)
	var walk func(h tree.Handle)
	walk = func(h tree.Handle) {
		n := g.Node(h)
		if n == nil {
			return
		}
		if n.Kind == tree.Infix && n.NameVal == ":" {
			collectNames(g, n.Left, out)
		}
		switch n.Kind {
		case tree.Block:
			walk(n.Child)
		case tree.Prefix, tree.Postfix, tree.Infix:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(pattern)
	return out
}

func collectNames(g *tree.GC, h tree.Handle, out map[string]bool) {
	n := g.Node(h)
	if n == nil {
		return
	}
	if n.Kind == tree.Name {
		out[n.NameVal] = true
		return
	}
	switch n.Kind {
	case tree.Block:
		collectNames(g, n.Child, out)
	case tree.Prefix, tree.Postfix, tree.Infix:
		collectNames(g, n.Left, out)
		collectNames(g, n.Right, out)
	}
}

// evalChildren evaluates the children of a compound node and rebuilds it
// from the results, rather than mutating the shared original in place
// (spec.md §4.H step 4). A Prefix/Postfix side that is a bare Name is the
// call's fixed operator tag, not a value position (match.bindPrefix and
// bindPostfix give it the same special treatment), so it is left alone
// rather than evaluated as a free-standing expression.
func evalChildren(ctx *xlctx.Context, expr tree.Handle) (tree.Handle, error) {
	n := ctx.GC.Node(expr)
	switch n.Kind {
	case tree.Block:
		child, err := run(ctx, n.Child)
		if err != nil {
			return 0, err
		}
		return ctx.GC.NewBlock(n.Pos, child, n.Opening, n.Closing), nil
	case tree.Prefix:
		l, err := evalUnlessTag(ctx, n.Left)
		if err != nil {
			return 0, err
		}
		r, err := run(ctx, n.Right)
		if err != nil {
			return 0, err
		}
		return ctx.GC.NewPrefix(n.Pos, l, r), nil
	case tree.Postfix:
		l, err := run(ctx, n.Left)
		if err != nil {
			return 0, err
		}
		r, err := evalUnlessTag(ctx, n.Right)
		if err != nil {
			return 0, err
		}
		return ctx.GC.NewPostfix(n.Pos, l, r), nil
	case tree.Infix:
		l, err := run(ctx, n.Left)
		if err != nil {
			return 0, err
		}
		r, err := run(ctx, n.Right)
		if err != nil {
			return 0, err
		}
		return ctx.GC.NewInfix(n.Pos, n.NameVal, l, r), nil
	}
	return expr, nil
}

func evalUnlessTag(ctx *xlctx.Context, h tree.Handle) (tree.Handle, error) {
	if n := ctx.GC.Node(h); n != nil && n.Kind == tree.Name {
		return h, nil
	}
	return run(ctx, h)
}

func headName(g *tree.GC, expr tree.Handle) (string, bool) {
	n := g.Node(expr)
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case tree.Name:
		return n.NameVal, true
	case tree.Infix:
		return n.NameVal, true
	case tree.Prefix:
		if ln := g.Node(n.Left); ln != nil && ln.Kind == tree.Name {
			return ln.NameVal, true
		}
	case tree.Postfix:
		if rn := g.Node(n.Right); rn != nil && rn.Kind == tree.Name {
			return rn.NameVal, true
		}
	}
	return "", false
}

func structurallyEqual(g *tree.GC, a, b tree.Handle) bool {
	if a == b {
		return true
	}
	an, bn := g.Node(a), g.Node(b)
	if an == nil || bn == nil || an.Kind != bn.Kind {
		return false
	}
	switch an.Kind {
	case tree.Integer:
		return an.IntVal == bn.IntVal
	case tree.Real:
		return an.RealVal == bn.RealVal
	case tree.Text:
		return an.TextVal == bn.TextVal && an.Opening == bn.Opening
	case tree.Name:
		return an.NameVal == bn.NameVal
	case tree.Block:
		return structurallyEqual(g, an.Child, bn.Child)
	case tree.Infix:
		return an.NameVal == bn.NameVal &&
			structurallyEqual(g, an.Left, bn.Left) && structurallyEqual(g, an.Right, bn.Right)
	case tree.Prefix, tree.Postfix:
		return structurallyEqual(g, an.Left, bn.Left) && structurallyEqual(g, an.Right, bn.Right)
	}
	return false
}
