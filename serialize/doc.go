/*
Package serialize implements the optional wire format of spec.md §6: a
length-prefixed tag-value stream for a single tree.Handle, magic number
0x05121968, version 0x0101, one tag per Tree kind (the tag IS tree.Kind,
since the wire's NULL/INTEGER/REAL/TEXT/NAME/BLOCK/PREFIX/POSTFIX/INFIX
set is exactly tree.Invalid plus its eight live kinds). Every node is
framed as tag (1 byte), payload length (uint32), payload — so a reader can
skip a node it does not recognize without understanding its contents, the
usual reason a tag-value stream carries its own length prefixes.

Text values (Opening, Closing, NameVal, TextVal) are interned: the first
occurrence of a string writes it out in full and assigns it the next
index; every later occurrence writes only that index. No retrieved
example or ecosystem library implements this exact ad hoc framing (it is
neither protobuf, gob, nor a generic TLV library with this magic/version
scheme), so this package is hand-written against the stdlib
encoding/binary, the one deliberately stdlib-only wire-format component.
*/
package serialize
