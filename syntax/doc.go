/*
Package syntax implements the mutable, runtime-loadable syntax table of
spec.md §4.C: infix/prefix/postfix priority maps, comment/text/block
delimiter maps, a known-token set, default/statement/function priorities,
and a child-syntax map for nested sub-languages.

The field layout follows the original Syntax class almost directly, with
one addition the 1990s source does not need: a map from delimiter to a
nested child Table, required by spec.md §4.C's "child syntaxes" bullet.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package syntax

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("xlr.syntax")
}
