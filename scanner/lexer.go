package scanner

import (
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Sub-lexer token kinds, internal to this file: lexmachine classifies a
// run of input starting at the current scan position as one of these, and
// the hand-written indentation-aware loop in scanner.go decides what to do
// with the match (spec.md §4.B leaves indentation and delimiter lookup
// explicitly hand-rolled; numeric-literal and punctuation-run structure is
// a good fit for a compiled regex instead, the same division gorgo's own
// terex/terexlang/scan.go makes).
const (
	subNumber = iota
	subSymbol
)

var (
	subLexer     *lexmachine.Lexer
	subLexerOnce sync.Once
	subLexerErr  error
)

func getSubLexer() (*lexmachine.Lexer, error) {
	subLexerOnce.Do(func() {
		lx := lexmachine.NewLexer()
		// Numeric literals: optional #radix prefix for the whole mantissa,
		// underscore digit grouping, an optional E-exponent (possibly
		// itself preceded by a second #), per spec.md §4.B.
		lx.Add([]byte(`[0-9][0-9_]*#[0-9A-Za-z_]+(#[eE][+-]?[0-9]+)?`), subAction(subNumber))
		lx.Add([]byte(`[0-9][0-9_]*(\.[0-9][0-9_]*)?([eE][+-]?[0-9]+)?`), subAction(subNumber))
		// Maximal punctuation runs. The six solo delimiter characters
		// ( ) [ ] { } are excluded from the class outright (not just left
		// to the outer hand-rolled loop, which only intercepts them as the
		// first byte of a scan): without the exclusion a run starting on
		// an adjacent operator byte, e.g. the "+(" in "x+(y)", would match
		// as one greedy symbol token instead of "+" followed by a ParOpen.
		lx.Add([]byte("[!-'*-/:-@\\^-`|~]+"), subAction(subSymbol))
		if err := lx.Compile(); err != nil {
			subLexerErr = err
			return
		}
		subLexer = lx
	})
	return subLexer, subLexerErr
}

type subToken struct {
	kind  int
	text  string
	start int
	end   int
}

func subAction(kind int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return &subToken{kind: kind, text: string(m.Bytes), start: m.TC, end: m.TC + len(m.Bytes)}, nil
	}
}

// scanSub runs the lexmachine sub-lexer against src starting at byte offset
// pos and returns the longest match found there, or ok == false if nothing
// matches (the caller falls back to hand-rolled name/default handling).
func scanSub(src []byte, pos int) (*subToken, bool, error) {
	lx, err := getSubLexer()
	if err != nil {
		return nil, false, err
	}
	sc, err := lx.Scanner(src[pos:])
	if err != nil {
		return nil, false, err
	}
	tok, err, eof := sc.Next()
	if eof || tok == nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	st := tok.(*subToken)
	if st.start != 0 {
		// A match that does not begin at pos means the sub-lexer skipped
		// bytes it cannot classify; treat as no match at pos.
		return nil, false, nil
	}
	return st, true, nil
}
