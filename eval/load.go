package eval

import (
	"github.com/xlr-lang/xlr/symbols"
	"github.com/xlr-lang/xlr/tree"
	"github.com/xlr-lang/xlr/xlctx"
)

// LoadProgram walks the top-level sequence chain of root (the right-spine of
// nested Infix("\n"/";", ...) nodes the parser produces for a sequence of
// statements, spec.md §4.D "Implicit blocks") and splits it into
// declarations and executable statements:
//
//   - `pattern -> body` (optionally `pattern when guard -> body`, where the
//     guard is already folded into pattern by the parser since "when" binds
//     tighter than "->") defines a rewrite rule in ctx.Scope.
//   - `data head(...)` marks head as a data constructor in ctx.Scope.
//
// Anything else is returned, in program order, as a statement to run.
func LoadProgram(ctx *xlctx.Context, root tree.Handle) []tree.Handle {
	var statements []tree.Handle
	g := ctx.GC
	var walk func(h tree.Handle)
	walk = func(h tree.Handle) {
		n := g.Node(h)
		if n == nil {
			return
		}
		if n.Kind == tree.Infix && isSequenceOp(n.NameVal) {
			walk(n.Left)
			walk(n.Right)
			return
		}
		if declareTopLevel(ctx, h) {
			return
		}
		statements = append(statements, h)
	}
	walk(root)
	return statements
}

func isSequenceOp(op string) bool {
	return op == "\n" || op == ";"
}

// declareTopLevel recognizes and registers a single declaration form,
// returning true if h was consumed as a declaration rather than a
// statement to execute.
func declareTopLevel(ctx *xlctx.Context, h tree.Handle) bool {
	g := ctx.GC
	n := g.Node(h)
	if n == nil {
		return false
	}
	if n.Kind == tree.Infix && n.NameVal == "->" {
		pattern, guard := splitGuard(g, n.Left)
		ctx.Scope.Define(g, pattern, n.Right, guard, rewriteKind(ctx.Scope))
		return true
	}
	if n.Kind == tree.Prefix {
		// Juxtaposition folds left, so `data point(X,Y)` arrives as
		// Prefix(Prefix(data, point), (X,Y)).
		if l := g.Node(n.Left); l != nil && l.Kind == tree.Prefix {
			n = l
		}
		if head := g.Node(n.Left); head != nil && head.Kind == tree.Name && head.NameVal == "data" {
			if name, ok := headName(g, n.Right); ok {
				ctx.Scope.MarkData(name)
			}
			return true
		}
	}
	return false
}

// splitGuard separates a `pattern when guard` left-hand side into its bare
// pattern and guard expression, so the bare pattern (not the "when" form
// wrapping it) determines the rewrite's shape bucket (spec.md §4.E): a
// guarded rule like `N! when N > 0 -> ...` must still bucket alongside
// `0! -> 1` as a Postfix("!") candidate.
func splitGuard(g *tree.GC, h tree.Handle) (pattern, guard tree.Handle) {
	if n := g.Node(h); n != nil && n.Kind == tree.Infix && n.NameVal == "when" {
		return n.Left, n.Right
	}
	return h, 0
}

func rewriteKind(s *symbols.Scope) symbols.Kind {
	if s.IsGlobal {
		return symbols.Global
	}
	return symbols.Local
}
