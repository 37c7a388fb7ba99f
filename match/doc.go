/*
Package match implements the structural pattern matcher of spec.md §4.F:
binding a value tree against a pattern tree, producing pattern-variable
bindings plus a list of conditions that can only be resolved once the
matched rewrite's guard and type constraints are evaluated.

The per-shape rules generalize gorgo's terex.matchAtom/bindSymbol/GCons.Match
trio (boolean match over S-expression Atoms/GCons) to the full eight-variant
tree.Node and to a three-valued MatchStrength instead of a plain bool.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package match

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("xlr.match")
}
