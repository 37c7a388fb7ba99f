/*
Package parser implements the operator-precedence ("shunting") parser of
spec.md §4.D: a direct Pratt loop driven by a mutable syntax.Table, building
tree.Node trees directly with no separate AST.

The control flow is grounded in the shape of gorgo's AST-building listener
(terex/termr/ast.go's ExitRule/appendRHSResult) but adapted from an LR-forest
walk down to a direct recursive-descent/precedence-climbing loop, because
spec.md §4.D specifies operator-precedence parsing directly rather than a
table-driven LR grammar; gorgo's LR machinery (lr/earley, lr/glr, lr/sppf) is
not the grounding for this package's control flow (see the module's
DESIGN.md for where that machinery is adapted instead).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package parser

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("xlr.parser")
}
