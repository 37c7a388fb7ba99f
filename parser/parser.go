package parser

import (
	"github.com/xlr-lang/xlr/errs"
	"github.com/xlr-lang/xlr/scanner"
	"github.com/xlr-lang/xlr/syntax"
	"github.com/xlr-lang/xlr/tree"
)

// Parse runs the operator-precedence loop of spec.md §4.D over toks,
// producing a single tree rooted at the returned handle (0 for an empty
// program). Diagnostics are reported into sink without aborting the parse.
func Parse(toks []scanner.Token, g *tree.GC, syn *syntax.Table, sink *errs.Sink) tree.Handle {
	p := &parser{toks: toks, g: g, syn: syn, sink: sink}
	result := p.parseExpr(syn.DefaultPriority - 1)
	if p.cur().Kind != scanner.EOF {
		p.errorf(p.cur().Pos, "unexpected trailing token $1", p.cur().Text)
	}
	return result
}

// ParseSource scans src and parses it in one step, a convenience wrapper
// around scanner.Scan + Parse used by cmd/xlrepl and integration tests.
func ParseSource(src string, g *tree.GC, syn *syntax.Table, sink *errs.Sink) tree.Handle {
	toks := scanner.Scan(src, syn, sink)
	return Parse(toks, g, syn, sink)
}

type parser struct {
	toks []scanner.Token
	pos  int
	g    *tree.GC
	syn  *syntax.Table
	sink *errs.Sink
}

func (p *parser) cur() scanner.Token {
	if p.pos >= len(p.toks) {
		return scanner.Token{Kind: scanner.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() scanner.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) errorf(pos tree.Position, template string, args ...string) {
	p.sink.Add(errs.NewPlain(errs.Syntactic, pos, template, args...))
}

func (p *parser) skipLeadingNewlines() {
	for p.cur().Kind == scanner.Newline {
		p.advance()
	}
}

// parseExpr is the five-step loop of spec.md §4.D: it parses a primary,
// then repeatedly folds in infix operators (priority >= minPriority),
// postfix operators, or juxtaposed primaries (treated as prefix
// application) until a lower-priority operator or a block terminator is
// reached.
func (p *parser) parseExpr(minPriority int) tree.Handle {
	p.skipLeadingNewlines()
	result := p.parsePrimary()
	for {
		tok := p.cur()
		switch tok.Kind {
		case scanner.EOF, scanner.ParClose, scanner.Unindent:
			return result
		}

		if isSequenceSeparator(tok) && p.trailingSeparatorEndsBlock() {
			return result
		}

		key := infixKey(tok)
		if prio, ok := p.syn.InfixPriority(key); ok {
			if prio < minPriority {
				return result
			}
			p.advance()
			right := p.parseExpr(prio)
			result = p.g.NewInfix(tok.Pos, key, result, right)
			continue
		}
		if prio, ok := p.syn.PostfixPriority(key); ok {
			if prio < minPriority {
				return result
			}
			p.advance()
			opNode := p.g.NewName(tok.Pos, key)
			result = p.g.NewPostfix(tok.Pos, result, opNode)
			continue
		}
		if p.canStartPrimary(tok) {
			rhs := p.parsePrimary()
			result = p.g.NewPrefix(tok.Pos, result, rhs)
			continue
		}
		return result
	}
}

// parsePrimary consumes one atom — a literal, a name (possibly a declared
// prefix operator), a bracketed block, or an implicit indent block — and
// then any immediately following ":type" suffix. A type annotation binds
// tighter than juxtaposition (spec.md §4.D), so `f X:integer` parses as
// `f` applied to the single typed-name atom `X:integer`, not as
// `(f X):integer`; folding it in here rather than in the generic infix
// loop is what gives it that tight, atom-level binding.
func (p *parser) parsePrimary() tree.Handle {
	atom := p.parsePrimaryAtom()
	for p.cur().Kind == scanner.Symbol && p.cur().Text == ":" {
		tok := p.advance()
		typ := p.parsePrimaryAtom()
		atom = p.g.NewInfix(tok.Pos, ":", atom, typ)
	}
	return atom
}

func (p *parser) parsePrimaryAtom() tree.Handle {
	tok := p.cur()
	switch tok.Kind {
	case scanner.Integer:
		p.advance()
		return p.g.NewInteger(tok.Pos, tok.IntVal)
	case scanner.Real:
		p.advance()
		return p.g.NewReal(tok.Pos, tok.RealVal)
	case scanner.Text, scanner.Quote, scanner.LongString:
		p.advance()
		return p.g.NewText(tok.Pos, tok.Text, tok.Opening, tok.Closing)
	case scanner.Name:
		return p.parseNameOrPrefixOp(tok)
	case scanner.Symbol:
		return p.parseSymbolPrimary(tok)
	case scanner.ParOpen:
		return p.parseBracketedBlock(tok)
	case scanner.Indent:
		return p.parseIndentBlock(tok)
	case scanner.ParClose, scanner.Unindent, scanner.EOF, scanner.Newline:
		return 0
	case scanner.Error:
		p.advance()
		return 0
	}
	p.errorf(tok.Pos, "unexpected token")
	p.advance()
	return 0
}

func (p *parser) parseNameOrPrefixOp(tok scanner.Token) tree.Handle {
	if prio, ok := p.syn.PrefixPriority(tok.Text); ok {
		p.advance()
		opNode := p.g.NewName(tok.Pos, tok.Text)
		operand := p.parseExpr(prio)
		return p.g.NewPrefix(tok.Pos, opNode, operand)
	}
	p.advance()
	return p.g.NewName(tok.Pos, tok.Text)
}

// parseSymbolPrimary handles an operator symbol found where a primary is
// expected: a declared prefix operator binds its operand; an operator of
// unknown priority is, per spec.md §4.D's linear error recovery, reported
// and then treated as a default-priority prefix applied to whatever
// follows.
func (p *parser) parseSymbolPrimary(tok scanner.Token) tree.Handle {
	if prio, ok := p.syn.PrefixPriority(tok.Text); ok {
		p.advance()
		opNode := p.g.NewName(tok.Pos, tok.Text)
		operand := p.parseExpr(prio)
		return p.g.NewPrefix(tok.Pos, opNode, operand)
	}
	if _, ok := p.syn.InfixPriority(tok.Text); ok {
		// A pure infix/postfix operator with nothing to its left: report
		// and skip it so the caller can keep parsing.
		p.errorf(tok.Pos, "unexpected infix operator $1", tok.Text)
		p.advance()
		return 0
	}
	if _, ok := p.syn.PostfixPriority(tok.Text); ok {
		p.errorf(tok.Pos, "unexpected postfix operator $1", tok.Text)
		p.advance()
		return 0
	}
	p.errorf(tok.Pos, "symbol $1 has no declared priority", tok.Text)
	p.advance()
	opNode := p.g.NewName(tok.Pos, tok.Text)
	if p.canStartPrimary(p.cur()) {
		operand := p.parseExpr(p.syn.DefaultPriority)
		return p.g.NewPrefix(tok.Pos, opNode, operand)
	}
	return opNode
}

func (p *parser) parseBracketedBlock(open scanner.Token) tree.Handle {
	p.advance()
	inner := p.parseExpr(p.syn.DefaultPriority - 1)
	p.skipLeadingNewlines()
	expectedClose, _ := p.syn.IsBlock(open.Text)
	close := p.cur()
	if close.Kind == scanner.ParClose && close.Text == expectedClose {
		p.advance()
	} else {
		p.errorf(open.Pos, "unterminated block opened with $1", open.Text)
	}
	return p.g.NewBlock(open.Pos, inner, open.Text, expectedClose)
}

func (p *parser) parseIndentBlock(open scanner.Token) tree.Handle {
	p.advance()
	inner := p.parseExpr(p.syn.DefaultPriority - 1)
	if p.cur().Kind == scanner.Unindent {
		p.advance()
	} else {
		p.errorf(open.Pos, "unterminated indented block")
	}
	return p.g.NewBlock(open.Pos, inner, "indent", "unindent")
}

// canStartPrimary reports whether tok can begin a new primary expression,
// used to detect juxtaposition (spec.md §4.D step 4). A token already
// claimed as a pure infix or postfix operator cannot also start a
// primary; everything else that reaches here (literals, brackets, plain
// names, and operators that are also declared prefix operators) can.
func (p *parser) canStartPrimary(tok scanner.Token) bool {
	switch tok.Kind {
	case scanner.Integer, scanner.Real, scanner.Text, scanner.Quote, scanner.LongString,
		scanner.ParOpen, scanner.Indent:
		return true
	case scanner.Name, scanner.Symbol:
		if _, ok := p.syn.PrefixPriority(tok.Text); ok {
			return true
		}
		if _, ok := p.syn.InfixPriority(tok.Text); ok {
			return false
		}
		if _, ok := p.syn.PostfixPriority(tok.Text); ok {
			return false
		}
		return true
	}
	return false
}

func isSequenceSeparator(tok scanner.Token) bool {
	return tok.Kind == scanner.Newline || (tok.Kind == scanner.Symbol && tok.Text == ";")
}

// trailingSeparatorEndsBlock looks past a run of sequence separators
// (newlines/semicolons) to see whether they are followed by a block
// terminator. A trailing separator before EOF/close/unindent carries no
// statement after it, so it is insignificant rather than an Infix with an
// empty operand.
func (p *parser) trailingSeparatorEndsBlock() bool {
	save := p.pos
	for isSequenceSeparator(p.cur()) {
		p.advance()
	}
	switch p.cur().Kind {
	case scanner.EOF, scanner.ParClose, scanner.Unindent:
		return true
	}
	p.pos = save
	return false
}

func infixKey(tok scanner.Token) string {
	if tok.Kind == scanner.Newline {
		return "\n"
	}
	return tok.Text
}
