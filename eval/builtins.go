package eval

import (
	"fmt"

	"github.com/xlr-lang/xlr/tree"
	"github.com/xlr-lang/xlr/xlctx"
)

// applyBuiltin implements the tiny arithmetic/comparison/IO/sequencing stub
// SPEC_FULL.md §9 allows as the only built-in forms this package knows
// about: enough to run scenarios S1 (arithmetic), S2 (factorial's "-", "*",
// comparisons), S4 ("write" and ";" sequencing), S5 (a block or a ","
// list whose contents are reduced stays as it is), not a general builtins
// table (an explicit Non-goal). It is consulted only in step 4's
// compound-fallback retry, after every user-defined candidate rewrite has
// already failed to match.
func applyBuiltin(ctx *xlctx.Context, expr tree.Handle) (tree.Handle, bool) {
	n := ctx.GC.Node(expr)
	if n == nil {
		return 0, false
	}
	switch n.Kind {
	case tree.Block:
		return expr, true
	case tree.Infix:
		if n.NameVal == "," {
			return expr, true
		}
		return applyInfixBuiltin(ctx, n)
	case tree.Prefix:
		return applyPrefixBuiltin(ctx, n)
	}
	return 0, false
}

func applyInfixBuiltin(ctx *xlctx.Context, n *tree.Node) (tree.Handle, bool) {
	g := ctx.GC
	if n.NameVal == ";" {
		// Sequencing: both sides were already reduced (for effect) by
		// evalChildren; the sequence's value is its right side's.
		return n.Right, true
	}
	l, lok := numberOf(g, n.Left)
	r, rok := numberOf(g, n.Right)
	if !lok || !rok {
		return 0, false
	}
	lIsInt := g.Node(n.Left).Kind == tree.Integer
	rIsInt := g.Node(n.Right).Kind == tree.Integer

	switch n.NameVal {
	case "+", "-", "*":
		if lIsInt && rIsInt {
			li, ri := int64(l), int64(r)
			var v int64
			switch n.NameVal {
			case "+":
				v = li + ri
			case "-":
				v = li - ri
			case "*":
				v = li * ri
			}
			return g.NewInteger(n.Pos, v), true
		}
		var v float64
		switch n.NameVal {
		case "+":
			v = l + r
		case "-":
			v = l - r
		case "*":
			v = l * r
		}
		return g.NewReal(n.Pos, v), true
	case "/":
		if r == 0 {
			return 0, false
		}
		if lIsInt && rIsInt && int64(l)%int64(r) == 0 {
			return g.NewInteger(n.Pos, int64(l)/int64(r)), true
		}
		return g.NewReal(n.Pos, l/r), true
	case "mod":
		if !lIsInt || !rIsInt || int64(r) == 0 {
			return 0, false
		}
		return g.NewInteger(n.Pos, int64(l)%int64(r)), true
	case "=", "<>", "<", ">", "<=", ">=":
		return g.NewName(n.Pos, boolName(compare(n.NameVal, l, r))), true
	case "and", "or":
		lb, lok := boolOf(g, n.Left)
		rb, rok := boolOf(g, n.Right)
		if !lok || !rok {
			return 0, false
		}
		if n.NameVal == "and" {
			return g.NewName(n.Pos, boolName(lb && rb)), true
		}
		return g.NewName(n.Pos, boolName(lb || rb)), true
	}
	return 0, false
}

func applyPrefixBuiltin(ctx *xlctx.Context, n *tree.Node) (tree.Handle, bool) {
	g := ctx.GC
	head := g.Node(n.Left)
	if head == nil || head.Kind != tree.Name {
		return 0, false
	}
	switch head.NameVal {
	case "not":
		b, ok := boolOf(g, n.Right)
		if !ok {
			return 0, false
		}
		return g.NewName(n.Pos, boolName(!b)), true
	case "write":
		arg := g.Node(n.Right)
		if arg == nil {
			return 0, false
		}
		fmt.Fprint(ctx.Output, textOf(arg))
		return g.NewText(n.Pos, textOf(arg), "\"", "\""), true
	}
	return 0, false
}

func numberOf(g *tree.GC, h tree.Handle) (float64, bool) {
	n := g.Node(h)
	if n == nil {
		return 0, false
	}
	switch n.Kind {
	case tree.Integer:
		return float64(n.IntVal), true
	case tree.Real:
		return n.RealVal, true
	}
	return 0, false
}

func boolOf(g *tree.GC, h tree.Handle) (bool, bool) {
	n := g.Node(h)
	if n == nil || n.Kind != tree.Name {
		return false, false
	}
	switch n.NameVal {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func boolName(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func compare(op string, l, r float64) bool {
	switch op {
	case "=":
		return l == r
	case "<>":
		return l != r
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func textOf(n *tree.Node) string {
	switch n.Kind {
	case tree.Text:
		return n.TextVal
	case tree.Name:
		return n.NameVal
	}
	return ""
}
