/*
Package errs implements XL's error taxonomy (spec.md §7): one type per
diagnostic category, each carrying a source position and a $1/$2-style
message template, plus a non-aborting Sink used to accumulate lexical and
syntactic diagnostics while parsing continues.
*/
package errs

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"go.uber.org/multierr"

	"github.com/xlr-lang/xlr/tree"
)

func tracer() tracing.Trace {
	return tracing.Select("xlr.errs")
}

// Category tags which taxonomy bullet of spec.md §7 an error belongs to.
type Category int

const (
	Lexical Category = iota
	Syntactic
	ShapeMatch
	Type
	Guard
	Resource
	Cancelled
)

func (c Category) String() string {
	switch c {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case ShapeMatch:
		return "shape-match"
	case Type:
		return "type"
	case Guard:
		return "guard"
	case Resource:
		return "resource"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Renderer renders a tree for substitution into a message template. It is
// satisfied by render.Renderer; kept as an interface here so errs does not
// import render (which itself may need to report errors).
type Renderer interface {
	Render(h tree.Handle) string
}

// Diagnostic is the single concrete error type for every taxonomy bullet:
// the category distinguishes them for callers that branch on kind, while
// the template/args pair produces the $1/$2-substituted message.
type Diagnostic struct {
	Cat      Category
	Pos      tree.Position
	Template string
	Args     []tree.Handle
	strs     []string // pre-rendered substitutions, if no Renderer is available
}

// New builds a Diagnostic whose $N placeholders are resolved against tree
// handles via r at format time.
func New(cat Category, pos tree.Position, template string, args ...tree.Handle) *Diagnostic {
	return &Diagnostic{Cat: cat, Pos: pos, Template: template, Args: args}
}

// NewPlain builds a Diagnostic whose $N placeholders are resolved against
// already-formatted strings, for callers without a tree.Handle (e.g. the
// scanner, which reports on raw source text).
func NewPlain(cat Category, pos tree.Position, template string, strs ...string) *Diagnostic {
	return &Diagnostic{Cat: cat, Pos: pos, Template: template, strs: strs}
}

func (d *Diagnostic) Error() string {
	msg := d.Template
	if len(d.strs) > 0 {
		for i, s := range d.strs {
			msg = strings.ReplaceAll(msg, fmt.Sprintf("$%d", i+1), s)
		}
	}
	return fmt.Sprintf("%s error at %d: %s", d.Cat, d.Pos, msg)
}

// Format resolves $N placeholders against r, for callers carrying Handle
// arguments (the common case for shape-match/type/guard errors).
func (d *Diagnostic) Format(r Renderer) string {
	msg := d.Template
	for i, h := range d.Args {
		msg = strings.ReplaceAll(msg, fmt.Sprintf("$%d", i+1), r.Render(h))
	}
	return fmt.Sprintf("%s error at %d: %s", d.Cat, d.Pos, msg)
}

// Sink accumulates non-aborting diagnostics (spec.md §7 "Errors sink"):
// the scanner and parser keep going after a Lexical/Syntactic error. The
// evaluator does not consult any sink; callers such as cmd/xlrepl skip
// evaluation when the parse sink is non-empty.
type Sink struct {
	err error
}

// Add appends a diagnostic to the sink.
func (s *Sink) Add(d *Diagnostic) {
	tracer().Errorf("%s", d.Error())
	s.err = multierr.Append(s.err, d)
}

// Empty reports whether no diagnostic has been recorded.
func (s *Sink) Empty() bool {
	return s.err == nil
}

// Errors returns every accumulated diagnostic, in insertion order.
func (s *Sink) Errors() []error {
	return multierr.Errors(s.err)
}

// Err returns the accumulated diagnostics as a single error (nil if empty).
func (s *Sink) Err() error {
	return s.err
}
