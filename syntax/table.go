package syntax

// NoPriority is returned by InfixPriority/PrefixPriority/PostfixPriority
// when name is not known to be an operator of that kind (spec.md §4.C
// "a sentinel meaning 'not an infix'").
const NoPriority = -1

// Table is a mutable syntax table (spec.md §4.C), consulted by scanner,
// parser, and render.
type Table struct {
	InfixPriorities   map[string]int
	PrefixPriorities  map[string]int
	PostfixPriorities map[string]int

	CommentDelimiters map[string]string
	TextDelimiters    map[string]string
	BlockDelimiters   map[string]string

	KnownTokens map[string]bool

	DefaultPriority   int
	StatementPriority int
	FunctionPriority  int

	Children map[string]*Table
}

// New returns an empty Table with the canonical default/statement/function
// priorities of the original syntax.h (0, 100, 200).
func New() *Table {
	return &Table{
		InfixPriorities:   make(map[string]int),
		PrefixPriorities:  make(map[string]int),
		PostfixPriorities: make(map[string]int),
		CommentDelimiters: make(map[string]string),
		TextDelimiters:    make(map[string]string),
		BlockDelimiters:   make(map[string]string),
		KnownTokens:       make(map[string]bool),
		DefaultPriority:   0,
		StatementPriority: 100,
		FunctionPriority:  200,
		Children:          make(map[string]*Table),
	}
}

// Default returns a Table preloaded with the operator priorities and
// delimiters needed to run the arithmetic/rewrite scenarios of spec.md §8
// (S1, S2, S3, S4, S5): standard arithmetic and comparison infixes, the
// declaration operators, sequence operators at low priority, and the four
// canonical block delimiter pairs plus line comments and quoted text.
func Default() *Table {
	t := New()

	// Newline binds loosest of all (spec.md §4.D "Implicit blocks"): it is
	// the statement separator between declarations, never part of a
	// single rule's own body.
	t.SetInfixPriority("\n", t.DefaultPriority-1)

	t.SetInfixPriority(",", 10)
	t.SetInfixPriority("is", 20)
	t.SetInfixPriority("->", 20)
	t.SetInfixPriority("when", 30)
	t.SetInfixPriority(":", 40)

	// ";" joins statements within a single rule body (e.g. `F -> F; F`)
	// tighter than "->" binds its right-hand side, so the whole
	// semicolon-joined chain becomes that rule's body; it still binds
	// looser than any value-level operator.
	t.SetInfixPriority(";", 25)

	t.SetInfixPriority("or", 100)
	t.SetInfixPriority("and", 110)
	t.SetInfixPriority("=", 120)
	t.SetInfixPriority("<>", 120)
	t.SetInfixPriority("<", 120)
	t.SetInfixPriority(">", 120)
	t.SetInfixPriority("<=", 120)
	t.SetInfixPriority(">=", 120)
	t.SetInfixPriority("+", 200)
	t.SetInfixPriority("-", 200)
	t.SetInfixPriority("*", 300)
	t.SetInfixPriority("/", 300)
	t.SetInfixPriority("mod", 300)

	t.SetPrefixPriority("-", 400)
	t.SetPrefixPriority("not", 100)
	t.SetPostfixPriority("!", 400)

	t.BlockDelimiters["("] = ")"
	t.BlockDelimiters["["] = "]"
	t.BlockDelimiters["{"] = "}"
	t.BlockDelimiters["indent"] = "unindent"

	t.TextDelimiters["\""] = "\""
	t.TextDelimiters["'"] = "'"

	t.CommentDelimiters["//"] = "\n"
	t.CommentDelimiters["/*"] = "*/"

	return t
}

// InfixPriority reports name's infix priority, or (NoPriority, false) if
// name is not a known infix operator.
func (t *Table) InfixPriority(name string) (int, bool) {
	p, ok := t.InfixPriorities[name]
	if !ok {
		return NoPriority, false
	}
	return p, true
}

// SetInfixPriority declares name as an infix operator of the given priority.
func (t *Table) SetInfixPriority(name string, p int) {
	t.InfixPriorities[name] = p
	t.KnownTokens[name] = true
}

// PrefixPriority reports name's prefix priority, or (NoPriority, false).
func (t *Table) PrefixPriority(name string) (int, bool) {
	p, ok := t.PrefixPriorities[name]
	if !ok {
		return NoPriority, false
	}
	return p, true
}

// SetPrefixPriority declares name as a prefix operator of the given priority.
func (t *Table) SetPrefixPriority(name string, p int) {
	t.PrefixPriorities[name] = p
	t.KnownTokens[name] = true
}

// PostfixPriority reports name's postfix priority, or (NoPriority, false).
func (t *Table) PostfixPriority(name string) (int, bool) {
	p, ok := t.PostfixPriorities[name]
	if !ok {
		return NoPriority, false
	}
	return p, true
}

// SetPostfixPriority declares name as a postfix operator of the given priority.
func (t *Table) SetPostfixPriority(name string, p int) {
	t.PostfixPriorities[name] = p
	t.KnownTokens[name] = true
}

// IsComment reports whether open is a known comment-opening delimiter, and
// returns its closing delimiter.
func (t *Table) IsComment(open string) (string, bool) {
	c, ok := t.CommentDelimiters[open]
	return c, ok
}

// IsTextDelimiter reports whether open is a known text-opening delimiter.
func (t *Table) IsTextDelimiter(open string) (string, bool) {
	c, ok := t.TextDelimiters[open]
	return c, ok
}

// IsBlock reports whether open is a known block-opening delimiter.
func (t *Table) IsBlock(open string) (string, bool) {
	c, ok := t.BlockDelimiters[open]
	return c, ok
}

// KnownToken reports whether name has been declared as an operator or
// appears in the known-token set.
func (t *Table) KnownToken(name string) bool {
	return t.KnownTokens[name]
}

// ChildSyntax returns the nested syntax table registered for a given
// block-opening delimiter, if the block switches grammars for its body
// (spec.md §4.C "child syntaxes").
func (t *Table) ChildSyntax(open string) (*Table, bool) {
	c, ok := t.Children[open]
	return c, ok
}

// SetChildSyntax registers a nested syntax table for a block-opening
// delimiter.
func (t *Table) SetChildSyntax(open string, child *Table) {
	t.Children[open] = child
}
