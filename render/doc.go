/*
Package render implements XL's pretty-printer (spec.md §4.I), the dual of
package parser: it turns a tree.Handle back into source text, consulting
the same syntax.Table priorities the parser used so that the output
reparses to an equivalent tree (invariant 1, scenario S6). A StyleSheet may
override the default rendering for specific pattern shapes (spec.md §6's
style sheets), grounded the same way package syntax's own Load reads
xl.syntax: a small recursive-descent reader over raw lines, not the full
operator-precedence parser, to avoid a bootstrap cycle.
*/
package render
