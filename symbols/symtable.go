package symbols

import (
	"hash/fnv"

	"github.com/cnf/structhash"
	"golang.org/x/exp/slices"

	"github.com/xlr-lang/xlr/match"
	"github.com/xlr-lang/xlr/tree"
)

// Kind distinguishes where a Rewrite came from (spec.md §3 "Rewrite").
type Kind int

const (
	Local Kind = iota
	Global
	Builtin
)

// Rewrite is a single `from -> to [when guard]` rule (spec.md §3).
type Rewrite struct {
	From  tree.Handle
	To    tree.Handle
	Guard tree.Handle // zero Handle if there is no guard
	Hash  uint64
	Kind  Kind

	seq int // insertion sequence, for declaration-order stability
}

// Scope is a lexical symbol table (spec.md §3 "SymbolTable"): a map of
// direct name bindings plus an ordered, shape-hash-bucketed rewrite list,
// chained to a parent scope. It generalizes gorgo's runtime.SymbolTable/
// Scope pair (a single flat Tag map) to the two-part model spec.md needs.
type Scope struct {
	Parent   *Scope
	IsGlobal bool

	// DefiningRewrite is the rule whose body this scope was pushed for, if
	// any (tryCandidates sets it on the child scope it builds). It lets a
	// recursive re-application of the same rule tell its own parameter
	// apart from a genuinely outer name (see LookupOuter).
	DefiningRewrite *Rewrite

	names     map[string]tree.Handle
	rewrites  map[uint64][]*Rewrite
	nextSeq   int
	dataHeads map[string]bool
}

// NewGlobalScope creates a root scope with IsGlobal set, as the gorgo
// ScopeTree's "Globals" scope is created.
func NewGlobalScope() *Scope {
	return &Scope{
		IsGlobal:  true,
		names:     make(map[string]tree.Handle),
		rewrites:  make(map[uint64][]*Rewrite),
		dataHeads: make(map[string]bool),
	}
}

// NewScope creates a child scope of parent (spec.md §4.E "enter_scope").
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent:    parent,
		names:     make(map[string]tree.Handle),
		rewrites:  make(map[uint64][]*Rewrite),
		dataHeads: make(map[string]bool),
	}
}

// MarkData declares name (a Tree head name) a data constructor: candidate
// rewrites that fail to match a form headed by name leave the form inert
// rather than raising a shape-match error (spec.md §4.H step 5, §7).
func (s *Scope) MarkData(name string) {
	s.dataHeads[name] = true
}

// IsData reports whether name was declared data in this scope or an
// ancestor.
func (s *Scope) IsData(name string) bool {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.dataHeads[name] {
			return true
		}
	}
	return false
}

// Bind directly binds name to h in this scope (spec.md §4.E "bind").
func (s *Scope) Bind(name string, h tree.Handle) {
	s.names[name] = h
}

// Lookup searches self then ancestors for a direct binding of name
// (spec.md §4.E "lookup").
func (s *Scope) Lookup(name string) (tree.Handle, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if h, ok := sc.names[name]; ok {
			return h, true
		}
	}
	return 0, false
}

// LookupOuter behaves like Lookup, except it skips over any scope whose
// DefiningRewrite is rw itself. This is what lets the shadow-vs-reference
// "references" resolution (match.BindEnv) tell an ordinary recursive call
// of a rule apart from one rule genuinely referencing another's outer
// binding: a rule's own parameter recurring in its own recursive call must
// still capture fresh on every re-entry, or self-recursion could never
// advance past its first step.
func (s *Scope) LookupOuter(name string, rw *Rewrite) (tree.Handle, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if rw != nil && sc.DefiningRewrite == rw {
			continue
		}
		if h, ok := sc.names[name]; ok {
			return h, true
		}
	}
	return 0, false
}

// ShapeHash computes the shape hash of a pattern (spec.md §4.E/§3),
// grounded in gorgo's lr/earley/earley.go hash() helper: structhash.Hash
// over a (here, shallow) structural skeleton, reduced to a uint64 bucket
// key with FNV-1a since spec.md's Rewrite.hash field is a u64, not the
// hex string structhash.Hash itself returns.
func ShapeHash(g *tree.GC, h tree.Handle) uint64 {
	key := match.BucketKey(g, h)
	s, err := structhash.Hash(key, 1)
	if err != nil {
		panic(err)
	}
	sum := fnv.New64a()
	_, _ = sum.Write([]byte(s))
	return sum.Sum64()
}

// Define registers a rewrite rule, computing the shape hash of from and
// appending at the end of its bucket so later definitions shadow earlier
// ones for identical patterns while the first matching rewrite across the
// ordered bucket still wins overall (spec.md §4.E "define").
func (s *Scope) Define(g *tree.GC, from, to, guard tree.Handle, kind Kind) *Rewrite {
	h := ShapeHash(g, from)
	r := &Rewrite{From: from, To: to, Guard: guard, Hash: h, Kind: kind, seq: s.nextSeq}
	s.nextSeq++
	s.rewrites[h] = append(s.rewrites[h], r)
	return r
}

// Candidates enumerates rewrites whose shape hash is compatible with
// value, ordered by declaration: local scope first (in declaration
// order), then ancestors (spec.md §4.E "candidates").
func (s *Scope) Candidates(g *tree.GC, value tree.Handle) []*Rewrite {
	h := ShapeHash(g, value)
	var out []*Rewrite
	for sc := s; sc != nil; sc = sc.Parent {
		bucket := append([]*Rewrite(nil), sc.rewrites[h]...)
		slices.SortStableFunc(bucket, func(a, b *Rewrite) bool { return a.seq < b.seq })
		out = append(out, bucket...)
	}
	return out
}
