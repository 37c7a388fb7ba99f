/*
Package eval implements the iterative rewrite loop of spec.md §4.H: the
six-step eval(env, expr) algorithm, Closure-based lazy arguments, and the
explicit work-loop (instead of host recursion) that gives tail-positioned
rewrite bodies constant Go stack growth.

Grounded in gorgo's terex/eval.go Eval/evalList/resolve trio (symbol
resolution, operator dispatch, atom-vs-list handling), generalized from
S-expressions to the full eight-variant tree.Node, and in
original_source/xlr/context.h's closure/laziness/rewrite-candidate
discussion.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package eval

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("xlr.eval")
}
