/*
Package tree implements the universal parse-tree node of XL, an arena-managed
garbage collector for it, and a per-node Info chain for extensible metadata.

A Tree is a tagged union of eight shapes: Integer, Real, Text, Name, Block,
Prefix, Postfix and Infix. Every construct of the language — arithmetic,
control flow, type annotations, user definitions — is represented as a tree
and rewritten as a tree; there are no separate statement or expression
node kinds.

Nodes live in a single arena (a growable slice) and are addressed by Handle,
a 32-bit index, rather than by pointer. This follows directly from the
observation that XL trees form a DAG, never a cycle, through child edges:
a mark-sweep pass over the arena, started from an explicit root set, is
sufficient to reclaim unreachable nodes, and an index scheme keeps node
identity stable across a sweep that compacts nothing (nodes are reclaimed
in place, not moved).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xlr.tree'.
func tracer() tracing.Trace {
	return tracing.Select("xlr.tree")
}
