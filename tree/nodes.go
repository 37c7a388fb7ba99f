package tree

// NewInteger allocates an Integer leaf.
func (g *GC) NewInteger(pos Position, v int64) Handle {
	h := g.Alloc(Integer)
	g.arena[h].Pos = pos
	g.arena[h].IntVal = v
	return h
}

// NewReal allocates a Real leaf.
func (g *GC) NewReal(pos Position, v float64) Handle {
	h := g.Alloc(Real)
	g.arena[h].Pos = pos
	g.arena[h].RealVal = v
	return h
}

// NewText allocates a Text leaf, retaining the actual delimiters used so
// that 'a' and "a" remain distinguishable (spec.md §3).
func (g *GC) NewText(pos Position, v, opening, closing string) Handle {
	h := g.Alloc(Text)
	n := &g.arena[h]
	n.Pos = pos
	n.TextVal = v
	n.Opening = opening
	n.Closing = closing
	return h
}

// NewName allocates a Name leaf. Operator symbols and the true/false
// literals are represented as Name nodes, matching the original grammar.
func (g *GC) NewName(pos Position, v string) Handle {
	h := g.Alloc(Name)
	n := &g.arena[h]
	n.Pos = pos
	n.NameVal = v
	return h
}

// NewBlock allocates a Block wrapping child, delimited by opening/closing.
func (g *GC) NewBlock(pos Position, child Handle, opening, closing string) Handle {
	h := g.Alloc(Block)
	n := &g.arena[h]
	n.Pos = pos
	n.Child = child
	n.Opening = opening
	n.Closing = closing
	return h
}

// NewPrefix allocates a Prefix node (left applied as an operator to right).
func (g *GC) NewPrefix(pos Position, left, right Handle) Handle {
	h := g.Alloc(Prefix)
	n := &g.arena[h]
	n.Pos = pos
	n.Left = left
	n.Right = right
	return h
}

// NewPostfix allocates a Postfix node (right applied as an operator to left).
func (g *GC) NewPostfix(pos Position, left, right Handle) Handle {
	h := g.Alloc(Postfix)
	n := &g.arena[h]
	n.Pos = pos
	n.Left = left
	n.Right = right
	return h
}

// NewInfix allocates an Infix node with operator symbol op between
// left and right.
func (g *GC) NewInfix(pos Position, op string, left, right Handle) Handle {
	h := g.Alloc(Infix)
	n := &g.arena[h]
	n.Pos = pos
	n.NameVal = op
	n.Left = left
	n.Right = right
	return h
}

// IsInfix reports whether h is a live Infix node with operator symbol op.
func (g *GC) IsInfix(h Handle, op string) bool {
	n := g.node(h)
	return n != nil && n.Kind == Infix && n.NameVal == op
}

// IsName reports whether h is a live Name node with value v.
func (g *GC) IsName(h Handle, v string) bool {
	n := g.node(h)
	return n != nil && n.Kind == Name && n.NameVal == v
}

// Clone performs a deep structural copy of h into fresh arena slots. The
// pattern matcher and evaluator use this when a rewrite's replacement tree
// must be instantiated against captured bindings rather than shared in
// place (spec.md §4.F).
func (g *GC) Clone(h Handle) Handle {
	n := g.node(h)
	if n == nil {
		return 0
	}
	switch n.Kind {
	case Integer:
		return g.NewInteger(n.Pos, n.IntVal)
	case Real:
		return g.NewReal(n.Pos, n.RealVal)
	case Text:
		return g.NewText(n.Pos, n.TextVal, n.Opening, n.Closing)
	case Name:
		return g.NewName(n.Pos, n.NameVal)
	case Block:
		return g.NewBlock(n.Pos, g.Clone(n.Child), n.Opening, n.Closing)
	case Prefix:
		return g.NewPrefix(n.Pos, g.Clone(n.Left), g.Clone(n.Right))
	case Postfix:
		return g.NewPostfix(n.Pos, g.Clone(n.Left), g.Clone(n.Right))
	case Infix:
		return g.NewInfix(n.Pos, n.NameVal, g.Clone(n.Left), g.Clone(n.Right))
	}
	return 0
}
