package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlr-lang/xlr/errs"
	"github.com/xlr-lang/xlr/syntax"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanSimpleInfixExpression(t *testing.T) {
	var sink errs.Sink
	toks := Scan("1 + 2\n", syntax.Default(), &sink)
	require.True(t, sink.Empty())
	require.GreaterOrEqual(t, len(toks), 4)
	assert.Equal(t, Integer, toks[0].Kind)
	assert.Equal(t, int64(1), toks[0].IntVal)
	assert.Equal(t, Symbol, toks[1].Kind)
	assert.Equal(t, "+", toks[1].Text)
	assert.Equal(t, Integer, toks[2].Kind)
	assert.Equal(t, int64(2), toks[2].IntVal)
}

func TestScanNameWithDoubleUnderscoreTerminator(t *testing.T) {
	var sink errs.Sink
	toks := Scan("foo__bar\n", syntax.Default(), &sink)
	require.True(t, sink.Empty())
	assert.Equal(t, Name, toks[0].Kind)
	assert.Equal(t, "foo", toks[0].Text)
	assert.Equal(t, Name, toks[1].Kind)
	assert.Equal(t, "bar", toks[1].Text)
}

func TestScanNameWithJoiningUnderscore(t *testing.T) {
	var sink errs.Sink
	toks := Scan("foo_bar\n", syntax.Default(), &sink)
	require.True(t, sink.Empty())
	assert.Equal(t, Name, toks[0].Kind)
	assert.Equal(t, "foo_bar", toks[0].Text)
}

func TestScanIndentationProducesIndentAndUnindent(t *testing.T) {
	var sink errs.Sink
	src := "f N ->\n    N + 1\ng 2\n"
	toks := Scan(src, syntax.Default(), &sink)
	require.True(t, sink.Empty())
	ks := kinds(toks)
	assert.Contains(t, ks, Indent)
	assert.Contains(t, ks, Unindent)
}

func TestScanMixedTabsAndSpacesReportsLexicalError(t *testing.T) {
	var sink errs.Sink
	src := "a\n \t b\n"
	Scan(src, syntax.Default(), &sink)
	assert.False(t, sink.Empty())
}

func TestScanParenDepthSuppressesNewline(t *testing.T) {
	var sink errs.Sink
	src := "(1 +\n 2)\n"
	toks := Scan(src, syntax.Default(), &sink)
	require.True(t, sink.Empty())
	depth := 0
	for i, tk := range toks {
		switch tk.Kind {
		case ParOpen:
			depth++
		case ParClose:
			depth--
		case Newline:
			if depth > 0 {
				t.Fatalf("unexpected Newline token inside parens at index %d", i)
			}
		}
	}
}

func TestScanQuotedText(t *testing.T) {
	var sink errs.Sink
	toks := Scan(`"hello world"` + "\n", syntax.Default(), &sink)
	require.True(t, sink.Empty())
	require.Equal(t, Text, toks[0].Kind)
	assert.Equal(t, "hello world", toks[0].Text)
}

func TestScanLineComment(t *testing.T) {
	var sink errs.Sink
	toks := Scan("1 // a comment\n2\n", syntax.Default(), &sink)
	require.True(t, sink.Empty())
	assert.Equal(t, Integer, toks[0].Kind)
	found := false
	for _, tk := range toks {
		if tk.Kind == Integer && tk.IntVal == 2 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScanRealLiteral(t *testing.T) {
	var sink errs.Sink
	toks := Scan("3.14\n", syntax.Default(), &sink)
	require.True(t, sink.Empty())
	require.Equal(t, Real, toks[0].Kind)
	assert.InDelta(t, 3.14, toks[0].RealVal, 1e-9)
}

func TestScanRadixInteger(t *testing.T) {
	var sink errs.Sink
	toks := Scan("16#FF\n", syntax.Default(), &sink)
	require.True(t, sink.Empty())
	require.Equal(t, Integer, toks[0].Kind)
	assert.Equal(t, int64(255), toks[0].IntVal)
}

func TestScanSymbolAdjacentToParenDoesNotMerge(t *testing.T) {
	var sink errs.Sink
	toks := Scan("x+(y)\n", syntax.Default(), &sink)
	require.True(t, sink.Empty())
	require.GreaterOrEqual(t, len(toks), 5)
	assert.Equal(t, Name, toks[0].Kind)
	assert.Equal(t, "x", toks[0].Text)
	assert.Equal(t, Symbol, toks[1].Kind)
	assert.Equal(t, "+", toks[1].Text)
	assert.Equal(t, ParOpen, toks[2].Kind)
	assert.Equal(t, Name, toks[3].Kind)
	assert.Equal(t, "y", toks[3].Text)
	assert.Equal(t, ParClose, toks[4].Kind)
}

func TestScanEndsWithEOF(t *testing.T) {
	var sink errs.Sink
	toks := Scan("1\n", syntax.Default(), &sink)
	require.True(t, sink.Empty())
	assert.Equal(t, EOF, toks[len(toks)-1].Kind)
}
