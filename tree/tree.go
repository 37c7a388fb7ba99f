package tree

import (
	"fmt"
)

// Kind is the tag of the eight-variant Tree union (spec.md §3).
type Kind uint8

const (
	Invalid Kind = iota
	Integer
	Real
	Text
	Name
	Block
	Prefix
	Postfix
	Infix
)

//go:generate stringer -type Kind
func (k Kind) String() string {
	switch k {
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case Text:
		return "Text"
	case Name:
		return "Name"
	case Block:
		return "Block"
	case Prefix:
		return "Prefix"
	case Postfix:
		return "Postfix"
	case Infix:
		return "Infix"
	}
	return "Invalid"
}

// Position is an opaque source position, resolved to file/line/column via a
// Positions table kept outside of this package (spec.md §3).
type Position uint32

// Handle addresses a Node inside an Arena. The zero Handle never denotes a
// live node: it is used as the "no child" / "nil" sentinel, the same role
// NilAtom plays in gorgo's terex package.
type Handle uint32

// Node is the universal tree node. Only the fields relevant to Kind are
// meaningful; this mirrors a tagged union without requiring an interface
// per node (REDESIGN FLAGS §9: "no dynamic dispatch is needed in the hot
// path").
type Node struct {
	Kind Kind
	Pos  Position

	// Integer / Real
	IntVal  int64
	RealVal float64

	// Text: Quote ('a') is distinguished from double-quoted ("a") by
	// retaining the actual delimiters used, per spec.md §3.
	TextVal          string
	Opening, Closing string

	// Name (also operator symbols, and the booleans true/false)
	NameVal string

	// Block: single child plus delimiter pair (Opening/Closing above);
	// the four canonical pairs are (), [], {}, and the synthetic
	// indent/unindent pair.
	Child Handle

	// Prefix/Postfix: Left/Right; Infix: NameVal is the operator, Left/Right
	// are the operands.
	Left, Right Handle

	info *infoRecord // singly-linked Info chain, see info.go
}

func (n *Node) String() string {
	switch n.Kind {
	case Integer:
		return fmt.Sprintf("%d", n.IntVal)
	case Real:
		return fmt.Sprintf("%g", n.RealVal)
	case Text:
		return n.Opening + n.TextVal + n.Closing
	case Name:
		return n.NameVal
	case Block:
		return n.Opening + "…" + n.Closing
	case Prefix:
		return "Prefix"
	case Postfix:
		return "Postfix"
	case Infix:
		return "Infix(" + n.NameVal + ")"
	}
	return "<invalid>"
}

// IsLeaf reports whether a node has no tree children (Integer, Real, Text
// and Name nodes are always leaves).
func (n *Node) IsLeaf() bool {
	switch n.Kind {
	case Integer, Real, Text, Name:
		return true
	}
	return false
}

// children returns the handles directly reachable from n, in a stable order.
// Used by the GC mark phase and by the pattern matcher's shape walk.
func (n *Node) children() []Handle {
	switch n.Kind {
	case Block:
		return []Handle{n.Child}
	case Prefix, Postfix, Infix:
		return []Handle{n.Left, n.Right}
	}
	return nil
}
