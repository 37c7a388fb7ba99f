/*
Package symbols implements the scoped symbol table and rewrite storage of
spec.md §3/§4.E: a chain of Scopes, each holding direct name bindings and
an ordered, shape-hash-bucketed list of Rewrite rules.

The Scope/lookup-chain shape generalizes gorgo's runtime.SymbolTable/Scope
pair (runtime/symtable.go) from a single flat Tag map to the two-part
direct-binding-plus-rewrite-bucket model spec.md §3 requires.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package symbols

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("xlr.symbols")
}
