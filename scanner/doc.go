/*
Package scanner implements the UTF-8, indentation-aware tokenizer of
spec.md §4.B: it turns a source byte stream into Integer, Real, Text,
Quote, LongString, Name, Symbol, Newline, ParOpen, ParClose, Indent,
Unindent, EOF and Error tokens.

Numeric-literal and punctuation-run recognition is delegated to a small
github.com/timtadh/lexmachine sub-lexer, grounded in gorgo's own
terex/terexlang/scan.go (which plugs lexmachine in the same way for its
leaf-level lexing). Indentation tracking, name scanning (needing true
Unicode classification and XL's single-vs-double-underscore rule) and
delimiter resolution against the syntax table are hand-written, the same
division of labor gorgo's own lr/scanner wrapper and the original
xlr/scanner.cpp use: a regex engine is a poor fit for stateful,
column-sensitive logic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package scanner

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("xlr.scanner")
}
