package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xlr-lang/xlr/tree"
)

// StyleSheet holds the renderer's operator-name overrides loaded from an
// xl.stylesheet-format stream (spec.md §6 "Style sheet"). A rule's pattern
// names the operator heading an Infix, Prefix (including a juxtaposed
// function name), or Postfix node; its format string substitutes $1, $2,
// ... with the rendered children, left-to-right. Loading this with the
// small line-based reader here (rather than the full operator-precedence
// parser) avoids the same bootstrap cycle package syntax's own Load
// sidesteps: the parser cannot run before a Table exists, and the
// renderer's own priorities come from that Table.
type StyleSheet struct {
	rules map[string]string
}

// LoadStyleSheet reads a stream of "op -> \"format $1 ... $N\"" lines,
// blank lines and "//"-comments ignored.
func LoadStyleSheet(r io.Reader) (*StyleSheet, error) {
	s := &StyleSheet{rules: make(map[string]string)}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		parts := strings.SplitN(line, "->", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("render: malformed style rule %q", line)
		}
		op := unquote(strings.TrimSpace(parts[0]))
		format := unquote(strings.TrimSpace(parts[1]))
		if op == "" {
			return nil, fmt.Errorf("render: empty pattern in style rule %q", line)
		}
		s.rules[op] = format
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// tryRender applies a matching style rule to h, if one exists for h's
// operator. It reports ok=false when h has no operator head (a leaf or
// Block) or no rule covers it, so the caller falls back to default
// rendering.
func (s *StyleSheet) tryRender(r *Renderer, h tree.Handle) (string, bool) {
	n := r.GC.Node(h)
	if n == nil {
		return "", false
	}
	op, children, ok := styleKey(r.GC, n)
	if !ok {
		return "", false
	}
	format, ok := s.rules[op]
	if !ok {
		return "", false
	}
	out := format
	for i, c := range children {
		placeholder := "$" + strconv.Itoa(i+1)
		out = strings.ReplaceAll(out, placeholder, r.Render(c))
	}
	return out, true
}

// styleKey extracts the operator name a style rule is keyed on, plus the
// argument handles $1.. substitute for, mirroring the head-extraction
// convention match.BucketKey/eval.headName use for the same node shapes.
func styleKey(g *tree.GC, n *tree.Node) (string, []tree.Handle, bool) {
	switch n.Kind {
	case tree.Infix:
		return n.NameVal, []tree.Handle{n.Left, n.Right}, true
	case tree.Prefix:
		if head := g.Node(n.Left); head != nil && head.Kind == tree.Name {
			return head.NameVal, []tree.Handle{n.Right}, true
		}
	case tree.Postfix:
		if tail := g.Node(n.Right); tail != nil && tail.Kind == tree.Name {
			return tail.NameVal, []tree.Handle{n.Left}, true
		}
	}
	return "", nil, false
}
