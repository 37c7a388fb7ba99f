/*
Package xlctx implements the Context record of spec.md §3/§5: the runtime
record pairing a current scope with stack information (depth counter, error
handler, cancel flag), threaded explicitly through public entry points
rather than kept in global mutable singletons (REDESIGN FLAGS §9).
*/
package xlctx

import (
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"

	"github.com/xlr-lang/xlr/errs"
	"github.com/xlr-lang/xlr/symbols"
	"github.com/xlr-lang/xlr/syntax"
	"github.com/xlr-lang/xlr/tree"
)

func tracer() tracing.Trace {
	return tracing.Select("xlr.xlctx")
}

// ErrorHandler receives evaluation-time diagnostics (spec.md §7's
// "context-scoped error handler"). The default handler traces them as
// errors and does not add them to the Context's Sink; an embedder may
// install its own.
type ErrorHandler func(d *errs.Diagnostic)

// Context bundles everything a single evaluation needs, per spec.md §3's
// "Context" record and gorgo's runtime.Runtime.
type Context struct {
	GC     *tree.GC
	Syntax *syntax.Table
	Scope  *symbols.Scope

	Sink       errs.Sink
	OnError    ErrorHandler
	Depth      int
	MaxDepth   int
	ShouldStop bool

	// Output is where the "write" builtin sends its argument (spec.md §8
	// scenario S4). Defaults to os.Stdout.
	Output io.Writer
}

// New builds a fresh Context with a global scope and the default syntax
// table, ready for loading source files into.
func New(gc *tree.GC, syn *syntax.Table) *Context {
	c := &Context{
		GC:       gc,
		Syntax:   syn,
		Scope:    symbols.NewGlobalScope(),
		MaxDepth: 10000,
		Output:   os.Stdout,
	}
	c.OnError = c.defaultHandler
	return c
}

func (c *Context) defaultHandler(d *errs.Diagnostic) {
	tracer().Errorf("%s", d.Error())
}

// Report dispatches an evaluation-time diagnostic to the installed handler.
func (c *Context) Report(d *errs.Diagnostic) {
	if c.OnError != nil {
		c.OnError(d)
	}
}

// EnterRewrite increments the recursion-depth counter and reports whether
// MaxDepth is exceeded (spec.md §4.H "Termination and resource limits").
// Every EnterRewrite call a single eval.run invocation makes must be
// matched by a LeaveRewrite call once that invocation returns, so Depth
// tracks live run nesting rather than a cumulative count of every rewrite
// ever applied across sibling sub-evaluations.
func (c *Context) EnterRewrite() bool {
	c.Depth++
	if c.MaxDepth > 0 && c.Depth > c.MaxDepth {
		c.Depth--
		return false
	}
	return true
}

// LeaveRewrite decrements the recursion-depth counter.
func (c *Context) LeaveRewrite() {
	if c.Depth > 0 {
		c.Depth--
	}
}

// Cancel requests that the evaluator unwind at the next rewrite boundary
// (spec.md §5 "Cancellation").
func (c *Context) Cancel() {
	c.ShouldStop = true
}

// SafePoint is the single cooperative checkpoint: it runs the GC's own
// SafePoint and reports whether evaluation should continue.
func (c *Context) SafePoint() bool {
	c.GC.SafePoint()
	return !c.ShouldStop
}

// PushScope enters a new lexical scope (spec.md §4.E "enter_scope"),
// returning the previous scope so the caller can restore it.
func (c *Context) PushScope() *symbols.Scope {
	prev := c.Scope
	c.Scope = symbols.NewScope(prev)
	return prev
}

// PopScope restores a scope previously returned by PushScope.
func (c *Context) PopScope(prev *symbols.Scope) {
	c.Scope = prev
}
