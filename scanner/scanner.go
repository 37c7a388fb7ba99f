package scanner

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/xlr-lang/xlr/errs"
	"github.com/xlr-lang/xlr/syntax"
	"github.com/xlr-lang/xlr/tree"
)

// Scan tokenizes src against syn, reporting lexical failures into sink
// without aborting (spec.md §4.B "Failure model"). Line endings are
// normalized to LF and an optional BOM is stripped first, per spec.md §6.
func Scan(src string, syn *syntax.Table, sink *errs.Sink) []Token {
	src = normalizeLineEndings(src)
	b := []byte(src)

	s := &scanState{
		b:           b,
		syn:         syn,
		sink:        sink,
		indentStack: arraylist.New(),
		atLineStart: true,
	}
	s.indentStack.Add(0)
	return s.run()
}

func normalizeLineEndings(src string) string {
	if len(src) >= 3 && src[0] == 0xEF && src[1] == 0xBB && src[2] == 0xBF {
		src = src[3:]
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return src
}

type scanState struct {
	b           []byte
	pos         int
	syn         *syntax.Table
	sink        *errs.Sink
	indentStack *arraylist.List
	parenDepth  int
	atLineStart bool
	tokens      []Token
}

func (s *scanState) emit(t Token) {
	s.tokens = append(s.tokens, t)
}

func (s *scanState) run() []Token {
	for s.pos < len(s.b) {
		if s.atLineStart && s.parenDepth == 0 {
			if s.handleLineStart() {
				continue
			}
		}
		if s.pos >= len(s.b) {
			break
		}
		if s.step() {
			continue
		}
	}
	// Unwind any still-open indentation levels and report EOF.
	for s.indentStack.Size() > 1 {
		s.indentStack.Remove(s.indentStack.Size() - 1)
		s.emit(Token{Kind: Unindent, Pos: tree.Position(s.pos)})
	}
	s.emit(Token{Kind: EOF, Pos: tree.Position(s.pos)})
	return s.tokens
}

// handleLineStart measures the indentation of a new line and emits
// Indent/Unindent tokens by comparing it against the indent stack
// (spec.md §4.B "Indentation"). It returns true if the caller should
// restart its scan loop (the line was blank; its newline is consumed
// without a token). A comment-only line returns false and leaves the
// comment to the main loop, with no indentation decision made.
func (s *scanState) handleLineStart() bool {
	col := 0
	sawSpace, sawTab := false, false
	start := s.pos
	for s.pos < len(s.b) && (s.b[s.pos] == ' ' || s.b[s.pos] == '\t') {
		if s.b[s.pos] == ' ' {
			sawSpace = true
		} else {
			sawTab = true
		}
		col++
		s.pos++
	}
	if s.pos >= len(s.b) || s.b[s.pos] == '\n' {
		if s.pos < len(s.b) {
			s.pos++
		}
		return true // blank line, no indentation decision to make
	}
	if _, _, ok := matchPrefix(s.b, s.pos, s.syn.CommentDelimiters); ok {
		return false // let the main loop consume (and possibly skip) the comment
	}
	if sawSpace && sawTab {
		s.sink.Add(errs.NewPlain(errs.Lexical, tree.Position(start), "mixed tabs and spaces in indentation"))
	}
	top, _ := s.indentStack.Get(s.indentStack.Size() - 1)
	topCol := top.(int)
	switch {
	case col > topCol:
		s.indentStack.Add(col)
		s.emit(Token{Kind: Indent, Pos: tree.Position(start)})
	case col < topCol:
		for {
			top, _ = s.indentStack.Get(s.indentStack.Size() - 1)
			if top.(int) <= col {
				break
			}
			s.indentStack.Remove(s.indentStack.Size() - 1)
			s.emit(Token{Kind: Unindent, Pos: tree.Position(start)})
		}
	}
	s.atLineStart = false
	return false
}

// step scans exactly one token (or skips exactly one comment) starting at
// s.pos. It returns true once it has made progress.
func (s *scanState) step() bool {
	pos := s.pos
	b := s.b

	if open, close, ok := matchPrefix(b, pos, s.syn.CommentDelimiters); ok {
		s.skipComment(open, close)
		return true
	}
	if open, close, ok := matchPrefix(b, pos, s.syn.TextDelimiters); ok {
		s.scanText(open, close)
		return true
	}

	ch := b[pos]
	switch {
	case ch == '\n':
		s.pos++
		if s.parenDepth == 0 {
			s.emit(Token{Kind: Newline, Pos: tree.Position(pos)})
			s.atLineStart = true
		}
		return true
	case ch == ' ' || ch == '\t':
		s.pos++
		return true
	case isOpenParen(ch):
		s.parenDepth++
		s.pos++
		s.emit(Token{Kind: ParOpen, Pos: tree.Position(pos), Text: string(ch), Opening: string(ch)})
		s.atLineStart = false
		return true
	case isCloseParen(ch):
		if s.parenDepth > 0 {
			s.parenDepth--
		}
		s.pos++
		s.emit(Token{Kind: ParClose, Pos: tree.Position(pos), Text: string(ch), Closing: string(ch)})
		s.atLineStart = false
		return true
	}

	r, size := utf8.DecodeRune(b[pos:])
	if unicode.IsLetter(r) {
		name, next := scanName(b, pos)
		s.pos = next
		s.emit(Token{Kind: Name, Pos: tree.Position(pos), Text: name})
		s.atLineStart = false
		return true
	}

	if st, ok, err := scanSub(b, pos); ok && err == nil {
		s.pos = pos + len(st.text)
		switch st.kind {
		case subNumber:
			tok := parseNumber(st.text, tree.Position(pos))
			if tok.Kind == Error {
				s.sink.Add(errs.NewPlain(errs.Lexical, tok.Pos, tok.Message))
			}
			s.emit(tok)
		case subSymbol:
			s.emit(Token{Kind: Symbol, Pos: tree.Position(pos), Text: st.text})
		}
		s.atLineStart = false
		return true
	}

	s.sink.Add(errs.NewPlain(errs.Lexical, tree.Position(pos), "invalid character $1", string(r)))
	s.emit(Token{Kind: Error, Pos: tree.Position(pos), Message: "invalid character " + string(r)})
	s.pos += size
	s.atLineStart = false
	return true
}

func (s *scanState) skipComment(open, close string) {
	s.pos += len(open)
	if close == "\n" {
		for s.pos < len(s.b) && s.b[s.pos] != '\n' {
			s.pos++
		}
		return
	}
	idx := bytes.Index(s.b[s.pos:], []byte(close))
	if idx < 0 {
		s.sink.Add(errs.NewPlain(errs.Lexical, tree.Position(s.pos), "unterminated comment"))
		s.pos = len(s.b)
		return
	}
	s.pos += idx + len(close)
}

func (s *scanState) scanText(open, close string) {
	start := s.pos
	s.pos += len(open)
	var content []byte
	for {
		if s.pos >= len(s.b) {
			s.sink.Add(errs.NewPlain(errs.Lexical, tree.Position(start), "unterminated text literal"))
			break
		}
		if matchLiteral(s.b, s.pos, close) {
			if open == close && matchLiteral(s.b, s.pos+len(close), open) {
				// doubled delimiter escapes it.
				content = append(content, []byte(open)...)
				s.pos += len(close) + len(open)
				continue
			}
			s.pos += len(close)
			break
		}
		r, size := utf8.DecodeRune(s.b[s.pos:])
		content = append(content, s.b[s.pos:s.pos+size]...)
		s.pos += size
		_ = r
	}
	kind := Text
	switch {
	case open == "'":
		kind = Quote
	case open != `"`:
		kind = LongString
	}
	s.emit(Token{Kind: kind, Pos: tree.Position(start), Text: string(content), Opening: open, Closing: close})
	s.atLineStart = false
}

func matchPrefix(b []byte, pos int, table map[string]string) (open, close string, ok bool) {
	bestLen := -1
	for k, v := range table {
		if k == "" || k == "indent" || k == "unindent" {
			continue
		}
		if len(k) <= len(b)-pos && string(b[pos:pos+len(k)]) == k {
			if len(k) > bestLen {
				bestLen, open, close, ok = len(k), k, v, true
			}
		}
	}
	return
}

func matchLiteral(b []byte, pos int, lit string) bool {
	return len(lit) <= len(b)-pos && string(b[pos:pos+len(lit)]) == lit
}

func isOpenParen(ch byte) bool  { return ch == '(' || ch == '[' || ch == '{' }
func isCloseParen(ch byte) bool { return ch == ')' || ch == ']' || ch == '}' }

// scanName hand-scans a Name token: Unicode-alphabetic start, continuing
// with letters/digits or a single joining underscore; a doubled
// underscore terminates the name (spec.md §4.B "Names").
func scanName(b []byte, pos int) (string, int) {
	var buf []byte
	for pos < len(b) {
		r, size := utf8.DecodeRune(b[pos:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			buf = append(buf, b[pos:pos+size]...)
			pos += size
			continue
		}
		if r == '_' {
			if pos+1 < len(b) && b[pos+1] == '_' {
				pos += 2
				break
			}
			if pos+1 < len(b) {
				r2, _ := utf8.DecodeRune(b[pos+1:])
				if unicode.IsLetter(r2) {
					buf = append(buf, '_')
					pos++
					continue
				}
			}
		}
		break
	}
	return string(buf), pos
}

// parseNumber converts a sub-lexer NUM match into an Integer or Real
// token, per spec.md §4.B's radix/grouping/exponent rules.
func parseNumber(text string, pos tree.Position) Token {
	clean := strings.ReplaceAll(text, "_", "")
	if idx := strings.IndexByte(clean, '#'); idx >= 0 {
		radix, err := strconv.Atoi(clean[:idx])
		if err != nil || radix < 2 || radix > 36 {
			return Token{Kind: Error, Pos: pos, Message: "invalid numeric radix"}
		}
		rest := clean[idx+1:]
		digits, exp := rest, ""
		if idx2 := strings.IndexByte(rest, '#'); idx2 >= 0 {
			digits, exp = rest[:idx2], rest[idx2+1:]
		}
		ival, err := strconv.ParseInt(digits, radix, 64)
		if err != nil {
			return Token{Kind: Error, Pos: pos, Message: "integer literal overflow"}
		}
		if exp == "" {
			return Token{Kind: Integer, Pos: pos, IntVal: ival, Text: text}
		}
		e, err := strconv.Atoi(strings.TrimPrefix(strings.TrimPrefix(exp, "E"), "e"))
		if err != nil {
			return Token{Kind: Error, Pos: pos, Message: "invalid numeric exponent"}
		}
		return Token{Kind: Real, Pos: pos, RealVal: float64(ival) * math.Pow(float64(radix), float64(e)), Text: text}
	}
	if strings.ContainsAny(clean, ".eE") {
		rv, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				sign := 1.0
				if strings.HasPrefix(clean, "-") {
					sign = -1
				}
				return Token{Kind: Real, Pos: pos, RealVal: sign * math.Inf(1), Text: text}
			}
			return Token{Kind: Error, Pos: pos, Message: "invalid real literal"}
		}
		return Token{Kind: Real, Pos: pos, RealVal: rv, Text: text}
	}
	ival, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return Token{Kind: Error, Pos: pos, Message: "integer literal overflow"}
	}
	return Token{Kind: Integer, Pos: pos, IntVal: ival, Text: text}
}
