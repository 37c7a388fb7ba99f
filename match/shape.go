package match

import "github.com/xlr-lang/xlr/tree"

// maxShapeDepth bounds how deep Shape descends (spec.md §4.E "tree depth
// bounded by a small constant"), keeping the hash cheap to compute and
// stable for deeply nested but otherwise-identical-shaped patterns.
const maxShapeDepth = 6

// wildcard marks a position occupied by a pattern variable: spec.md §4.E
// requires the hash to remain a correct superset filter, so free-variable
// positions must hash identically regardless of the variable's name.
const wildcard = "_"

// Node is the structural skeleton of one tree position, used as the input
// to a structural hash (symbols.ShapeHash feeds BucketKey's result to structhash.Hash).
// It carries only kind tags, infix operator names, and block delimiters —
// never leaf values — per spec.md §4.E "Shape hash".
type Node struct {
	Kind     string
	Op       string
	Children []Node
}

// Shape computes the depth-bounded structural skeleton of a pattern tree,
// ignoring leaf values and substituting wildcard at free-variable
// positions (bare Name nodes, which in a pattern are always variables
// except in the operator/head position already captured by Op).
func Shape(g *tree.GC, h tree.Handle) Node {
	return shape(g, h, maxShapeDepth)
}

func shape(g *tree.GC, h tree.Handle, depth int) Node {
	n := g.Node(h)
	if n == nil {
		return Node{Kind: "nil"}
	}
	if depth <= 0 {
		return Node{Kind: "…"}
	}
	switch n.Kind {
	case tree.Integer:
		return Node{Kind: "Integer"}
	case tree.Real:
		return Node{Kind: "Real"}
	case tree.Text:
		return Node{Kind: "Text", Op: n.Opening}
	case tree.Name:
		return Node{Kind: "Name", Op: wildcard}
	case tree.Block:
		return Node{Kind: "Block", Op: n.Opening + n.Closing,
			Children: []Node{shape(g, n.Child, depth-1)}}
	case tree.Prefix:
		return Node{Kind: "Prefix", Op: headName(g, n.Left),
			Children: []Node{shape(g, n.Right, depth-1)}}
	case tree.Postfix:
		return Node{Kind: "Postfix", Op: headName(g, n.Right),
			Children: []Node{shape(g, n.Left, depth-1)}}
	case tree.Infix:
		return Node{Kind: "Infix", Op: n.NameVal,
			Children: []Node{shape(g, n.Left, depth-1), shape(g, n.Right, depth-1)}}
	}
	return Node{Kind: "invalid"}
}

// BucketKey computes the shallow shape used to bucket Rewrites by shape
// hash (spec.md §4.E). Unlike Shape, it looks only at the top-level node —
// kind tag plus operator/head name — and never recurses into children.
//
// This is a deliberate simplification of "tree depth bounded by a small
// constant": hashing deeper positions runs into the asymmetry spec.md §9
// flags as ad-hoc — a pattern position occupied by a bare variable (e.g.
// the N in "N!") must be bucket-compatible with *any* concrete value at
// that position (e.g. the literal 0 in "0!"), so a hash that encodes child
// shape cannot, in general, be computed the same way from a pattern and
// from a fully-evaluated value without exploring every combination of
// wildcard/non-wildcard child positions. Restricting the hash to the root
// position keeps it a correct superset filter unconditionally: the
// pattern matcher in package match still performs the exact, deep
// comparison once a rewrite is pulled out of its bucket.
func BucketKey(g *tree.GC, h tree.Handle) Node {
	n := g.Node(h)
	if n == nil {
		return Node{Kind: "nil"}
	}
	switch n.Kind {
	case tree.Integer:
		return Node{Kind: "Integer"}
	case tree.Real:
		return Node{Kind: "Real"}
	case tree.Text:
		return Node{Kind: "Text"}
	case tree.Name:
		return Node{Kind: "Name"}
	case tree.Block:
		return Node{Kind: "Block", Op: n.Opening + n.Closing}
	case tree.Prefix:
		return Node{Kind: "Prefix", Op: headName(g, n.Left)}
	case tree.Postfix:
		return Node{Kind: "Postfix", Op: headName(g, n.Right)}
	case tree.Infix:
		if n.NameVal == "when" {
			// A guarded pattern buckets with the pattern it guards.
			return BucketKey(g, n.Left)
		}
		return Node{Kind: "Infix", Op: n.NameVal}
	}
	return Node{Kind: "invalid"}
}

// headName returns the literal name at h if h is a bare Name node (the
// "defining name" of a Prefix/Postfix call pattern), or wildcard otherwise.
func headName(g *tree.GC, h tree.Handle) string {
	n := g.Node(h)
	if n != nil && n.Kind == tree.Name {
		return n.NameVal
	}
	return wildcard
}
