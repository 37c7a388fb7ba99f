package scanner

import "github.com/xlr-lang/xlr/tree"

// Kind tags a scanned token (spec.md §4.B).
type Kind int

const (
	EOF Kind = iota
	Integer
	Real
	Text
	Quote      // text with single-quote delimiters
	LongString // text with user-defined delimiters
	Name
	Symbol
	Newline
	ParOpen
	ParClose
	Indent
	Unindent
	Error
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case Text:
		return "Text"
	case Quote:
		return "Quote"
	case LongString:
		return "LongString"
	case Name:
		return "Name"
	case Symbol:
		return "Symbol"
	case Newline:
		return "Newline"
	case ParOpen:
		return "ParOpen"
	case ParClose:
		return "ParClose"
	case Indent:
		return "Indent"
	case Unindent:
		return "Unindent"
	case Error:
		return "Error"
	}
	return "?"
}

// Token is one lexical unit produced by Scan.
type Token struct {
	Kind Kind
	Pos  tree.Position

	Text string // raw lexeme; for Text/Quote/LongString the decoded content

	IntVal  int64
	RealVal float64

	Opening, Closing string // delimiters, for ParOpen/ParClose/Text/Quote/LongString

	Message string // set when Kind == Error
}
