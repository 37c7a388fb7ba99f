package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Load reads an xl.syntax-format stream into a Table (spec.md §6 "Syntax
// file"). This is deliberately a small recursive-descent reader over raw
// lines, not the operator-precedence parser in package parser: parser
// itself needs a Table to exist before it can parse anything, so bootstrap-
// loading the table cannot go through it (the same rationale the original
// Syntax::ReadSyntaxFile used, reading straight off a Scanner rather than
// a parsed tree).
//
// Recognized sections: INFIX, PREFIX, POSTFIX (each followed by indented
// lines "priority / "op" / "op2""), and COMMENT, TEXT, BLOCK (each
// followed by indented lines "open -> close").
func Load(r io.Reader) (*Table, error) {
	t := New()
	sc := bufio.NewScanner(r)

	var section string
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			section = strings.ToUpper(trimmed)
			continue
		}
		switch section {
		case "INFIX", "PREFIX", "POSTFIX":
			if err := loadPriorityLine(t, section, trimmed); err != nil {
				return nil, err
			}
		case "COMMENT", "TEXT", "BLOCK":
			if err := loadDelimiterLine(t, section, trimmed); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("syntax: line %q outside of a known section", trimmed)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func loadPriorityLine(t *Table, section, line string) error {
	parts := strings.Split(line, "/")
	if len(parts) < 2 {
		return fmt.Errorf("syntax: malformed priority line %q", line)
	}
	prio, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("syntax: bad priority in %q: %w", line, err)
	}
	for _, raw := range parts[1:] {
		op := unquote(strings.TrimSpace(raw))
		if op == "" {
			continue
		}
		switch section {
		case "INFIX":
			t.SetInfixPriority(op, prio)
		case "PREFIX":
			t.SetPrefixPriority(op, prio)
		case "POSTFIX":
			t.SetPostfixPriority(op, prio)
		}
	}
	return nil
}

func loadDelimiterLine(t *Table, section, line string) error {
	parts := strings.SplitN(line, "->", 2)
	if len(parts) != 2 {
		return fmt.Errorf("syntax: malformed delimiter line %q", line)
	}
	open := unquote(strings.TrimSpace(parts[0]))
	close := unquote(strings.TrimSpace(parts[1]))
	switch section {
	case "COMMENT":
		t.CommentDelimiters[open] = close
	case "TEXT":
		t.TextDelimiters[open] = close
	case "BLOCK":
		t.BlockDelimiters[open] = close
	}
	return nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
