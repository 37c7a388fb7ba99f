/*
Package types implements XL's type inference (spec.md §4.G): types are
themselves trees ("integer", "real", a union "A|B", a function "A->B", a
constructor form "type(X:integer, Y:integer)"), and checking is unification
over those tree shapes rather than classical term unification.

Unify is hand-written against the standard library: nothing in the
retrieved corpus implements Hindley-Milner-style unification over an
arbitrary tree-shape type system (see DESIGN.md), so there is no
third-party unifier to generalize the way package match generalizes
gorgo's terex matcher.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package types

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("xlr.types")
}
