package render

import (
	"strconv"

	"github.com/xlr-lang/xlr/syntax"
	"github.com/xlr-lang/xlr/tree"
)

// Renderer turns trees back into source text against a syntax.Table and an
// optional StyleSheet. It satisfies errs.Renderer (Render(tree.Handle)
// string) so diagnostics can substitute offending trees into their
// message templates without errs importing render.
type Renderer struct {
	GC    *tree.GC
	Syn   *syntax.Table
	Style *StyleSheet
}

// New returns a Renderer with no style-sheet overrides.
func New(g *tree.GC, syn *syntax.Table) *Renderer {
	return &Renderer{GC: g, Syn: syn}
}

// juxtaposePriority is the effective binding strength of function
// application (a bare Prefix whose head is not itself a declared prefix
// operator): the parser's juxtaposition branch fires regardless of the
// caller's minPriority (spec.md §4.D step 4), so it binds tighter than any
// declared operator and never needs parens when nested as an operand.
const juxtaposePriority = 1 << 30

// Render formats h as source text, adding parens wherever the parser's
// actual folding rules (right-recursive priority climbing, unconditional
// juxtaposition) require them to reproduce an equivalent tree on reparse.
func (r *Renderer) Render(h tree.Handle) string {
	text, _ := r.render(h)
	return text
}

// render returns h's text together with h's own binding priority, so the
// caller can decide whether to wrap it in parens for the position it's
// going into.
func (r *Renderer) render(h tree.Handle) (string, int) {
	if r.Style != nil {
		if text, ok := r.Style.tryRender(r, h); ok {
			return text, juxtaposePriority
		}
	}

	n := r.GC.Node(h)
	if n == nil {
		return "", juxtaposePriority
	}

	switch n.Kind {
	case tree.Integer:
		return strconv.FormatInt(n.IntVal, 10), juxtaposePriority
	case tree.Real:
		return strconv.FormatFloat(n.RealVal, 'g', -1, 64), juxtaposePriority
	case tree.Text:
		return n.Opening + n.TextVal + n.Closing, juxtaposePriority
	case tree.Name:
		return n.NameVal, juxtaposePriority
	case tree.Block:
		return r.renderBlock(n), juxtaposePriority
	case tree.Infix:
		return r.renderInfix(n)
	case tree.Prefix:
		return r.renderPrefix(n)
	case tree.Postfix:
		return r.renderPostfix(n)
	}
	return "", juxtaposePriority
}

func (r *Renderer) renderBlock(n *tree.Node) string {
	open, close := n.Opening, n.Closing
	// An implicit indent block has no printable delimiter pair; explicit
	// parens reparse to an equivalent (if not byte-identical) tree.
	if open == "indent" {
		open, close = "(", ")"
	}
	inner, _ := r.render(n.Child)
	return open + inner + close
}

func (r *Renderer) wrap(h tree.Handle, need int) string {
	text, prio := r.render(h)
	if prio < need {
		return "(" + text + ")"
	}
	return text
}

// renderInfix renders left OP right. The parser's infix fold is
// right-recursive at the SAME priority (`right := p.parseExpr(prio)`), so a
// left child at this priority must be parenthesized to force the same
// nesting back, while a right child at this priority reparses correctly
// unwrapped. A newline operator is written bare, since a space after it
// would indent the next line into an implicit block on reparse.
func (r *Renderer) renderInfix(n *tree.Node) (string, int) {
	prio, ok := r.Syn.InfixPriority(n.NameVal)
	if !ok {
		prio = r.Syn.DefaultPriority
	}
	left := r.wrap(n.Left, prio+1)
	right := r.wrap(n.Right, prio)
	if n.NameVal == "\n" {
		return left + "\n" + right, prio
	}
	return left + " " + n.NameVal + " " + right, prio
}

// renderPrefix renders a declared prefix operator (op operand) or a
// juxtaposed function application (left right). A juxtaposition's argument
// is parsed as a single atom (parsePrimary, not a full parseExpr), so any
// compound right child must be parenthesized regardless of its own
// priority; a compound left child must be parenthesized only when it is an
// Infix, whose own right-recursion would otherwise swallow the following
// juxtaposed argument into itself on reparse.
func (r *Renderer) renderPrefix(n *tree.Node) (string, int) {
	head := r.GC.Node(n.Left)
	if head != nil && head.Kind == tree.Name {
		if prio, ok := r.Syn.PrefixPriority(head.NameVal); ok {
			right := r.wrap(n.Right, prio)
			return head.NameVal + " " + right, prio
		}
	}
	left := r.renderJuxtaposeLeft(n.Left)
	right := r.renderJuxtaposeArg(n.Right)
	return left + " " + right, juxtaposePriority
}

func (r *Renderer) renderJuxtaposeLeft(h tree.Handle) string {
	if r.GC.Node(h).Kind == tree.Infix {
		return r.wrap(h, juxtaposePriority)
	}
	text, _ := r.render(h)
	return text
}

func (r *Renderer) renderJuxtaposeArg(h tree.Handle) string {
	n := r.GC.Node(h)
	if n == nil {
		return ""
	}
	switch n.Kind {
	case tree.Integer, tree.Real, tree.Text, tree.Name, tree.Block:
		text, _ := r.render(h)
		return text
	}
	return r.wrap(h, juxtaposePriority+1)
}

func (r *Renderer) renderPostfix(n *tree.Node) (string, int) {
	prio, ok := r.Syn.PostfixPriority(tagName(r.GC, n.Right))
	if !ok {
		prio = r.Syn.DefaultPriority
	}
	left := r.wrap(n.Left, prio)
	tag, _ := r.render(n.Right)
	return left + tag, prio
}

func tagName(g *tree.GC, h tree.Handle) string {
	if n := g.Node(h); n != nil && n.Kind == tree.Name {
		return n.NameVal
	}
	return ""
}
