/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Command xlrepl is a small interactive front end for loading and evaluating
// XL source, grounded in gorgo's terex/terexlang/trepl REPL: readline for
// input, pterm for colored output, schuko tracing for diagnostics. It is a
// demonstration surface only, not the external CLI driver spec.md §6
// describes (no --parse-only/--diff/--builtins flags, no exit-code
// contract) — those belong to a separate, unimplemented command.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/xlr-lang/xlr/errs"
	"github.com/xlr-lang/xlr/eval"
	"github.com/xlr-lang/xlr/parser"
	"github.com/xlr-lang/xlr/render"
	"github.com/xlr-lang/xlr/syntax"
	"github.com/xlr-lang/xlr/tree"
	"github.com/xlr-lang/xlr/xlctx"
)

func tracer() tracing.Trace {
	return tracing.Select("xlr.cmd.xlrepl")
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Source file to load before entering interactive mode")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))

	pterm.Info.Println("Welcome to xlrepl")

	ctx := xlctx.New(tree.NewGC(), syntax.Default())
	repl, err := readline.New("xl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{ctx: ctx, repl: repl}

	if *initf != "" {
		intp.loadInitFile(*initf)
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is the interpreter state threaded through one REPL session: one
// xlctx.Context (so declared rewrites persist across lines) and the
// readline instance reading input.
type Intp struct {
	ctx  *xlctx.Context
	repl *readline.Instance
}

func (intp *Intp) loadInitFile(filename string) {
	data, err := os.ReadFile(filename)
	if err != nil {
		tracer().Errorf("unable to open init file: %s", filename)
		return
	}
	intp.run(string(data))
}

// REPL starts interactive mode: each line is parsed, declared rewrites are
// registered, and the remaining statements are evaluated in turn.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF on <ctrl>D
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if cmd, arg, ok := parseCommand(line); ok {
			intp.runCommand(cmd, arg)
			continue
		}
		intp.run(line)
	}
	pterm.Info.Println("Good bye!")
}

func parseCommand(line string) (cmd, arg string, ok bool) {
	if !strings.HasPrefix(line, ":") {
		return "", "", false
	}
	fields := strings.SplitN(strings.TrimPrefix(line, ":"), " ", 2)
	cmd = fields[0]
	if len(fields) == 2 {
		arg = fields[1]
	}
	return cmd, arg, true
}

func (intp *Intp) runCommand(cmd, arg string) {
	switch cmd {
	case "tree":
		h := intp.parseOne(arg)
		if h != 0 {
			render.Debug(intp.ctx.GC, h)
		}
	default:
		pterm.Error.Println(fmt.Sprintf("unknown command %q", cmd))
	}
}

// parseOne parses src as a single expression, reporting any sink errors and
// returning 0 on failure.
func (intp *Intp) parseOne(src string) tree.Handle {
	sink := &errs.Sink{}
	h := parser.ParseSource(src+"\n", intp.ctx.GC, intp.ctx.Syntax, sink)
	if !sink.Empty() {
		intp.printSinkErrors(sink)
		return 0
	}
	return h
}

// run parses src as a full program, registers any declarations it contains,
// evaluates the remaining statements in order, and prints each result.
func (intp *Intp) run(src string) {
	sink := &errs.Sink{}
	root := parser.ParseSource(src+"\n", intp.ctx.GC, intp.ctx.Syntax, sink)
	if !sink.Empty() {
		intp.printSinkErrors(sink)
		return
	}
	statements := eval.LoadProgram(intp.ctx, root)
	r := render.New(intp.ctx.GC, intp.ctx.Syntax)
	for _, stmt := range statements {
		result, err := eval.Eval(intp.ctx, stmt)
		if err != nil {
			intp.printEvalError(err, r)
			continue
		}
		pterm.Info.Println(r.Render(result))
	}
}

func (intp *Intp) printSinkErrors(sink *errs.Sink) {
	for _, e := range sink.Errors() {
		pterm.Error.Println(e.Error())
	}
}

func (intp *Intp) printEvalError(err error, r *render.Renderer) {
	if diag, ok := err.(*errs.Diagnostic); ok {
		pterm.Error.Println(diag.Format(r))
		return
	}
	pterm.Error.Println(err.Error())
}
