/*
Package xlr is the module root for an XL evaluator: a homoiconic,
tree-rewriting language in which both programs and data are the same
eight-variant tree, and computation proceeds by matching a form against a
table of declared rewrites and replacing it with the matched candidate's
body. There is no code in this package; it exists to anchor the module
path and orient a reader across its packages:

■ tree: the arena-backed Node/Handle representation and its mark-sweep
collector.

■ scanner, syntax, parser: turn source text into a tree, against a mutable
table of operator priorities and delimiters.

■ symbols: the rewrite table a scope holds, searched by shape during
evaluation.

■ match: structural pattern matching of a call site against a candidate's
left-hand side, producing bindings and deferred conditions.

■ types: the small unification-based type checker consulted on a
candidate's first use.

■ eval: the rewrite loop itself, plus closures for lazy arguments.

■ render: the inverse of parser, turning a tree back into source text.

■ xlctx, errs, serialize: the ambient Context/Runtime record, error
taxonomy, and optional wire format.

■ cmd/xlrepl: a small interactive front end over the packages above.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package xlr
