package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlr-lang/xlr/errs"
	"github.com/xlr-lang/xlr/parser"
	"github.com/xlr-lang/xlr/syntax"
	"github.com/xlr-lang/xlr/tree"
	"github.com/xlr-lang/xlr/xlctx"
)

func run_(t *testing.T, src string) (*xlctx.Context, []tree.Handle) {
	t.Helper()
	g := tree.NewGC()
	syn := syntax.Default()
	sink := &errs.Sink{}
	root := parser.ParseSource(src, g, syn, sink)
	require.True(t, sink.Empty(), "parse errors: %v", sink.Errors())
	ctx := xlctx.New(g, syn)
	stmts := LoadProgram(ctx, root)
	return ctx, stmts
}

func evalLast(t *testing.T, ctx *xlctx.Context, stmts []tree.Handle) (tree.Handle, error) {
	t.Helper()
	require.NotEmpty(t, stmts)
	var (
		result tree.Handle
		err    error
	)
	for _, s := range stmts {
		result, err = Eval(ctx, s)
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

// S1: arithmetic reduction.
func TestEvalArithmeticReduction(t *testing.T) {
	ctx, stmts := run_(t, "2 + 3 * 4\n")
	result, err := evalLast(t, ctx, stmts)
	require.NoError(t, err)
	n := ctx.GC.Node(result)
	require.Equal(t, tree.Integer, n.Kind)
	assert.Equal(t, int64(14), n.IntVal)
}

// S2: guarded factorial.
func TestEvalGuardedFactorial(t *testing.T) {
	src := "0! -> 1\nN! when N > 0 -> N * (N-1)!\n5!\n"
	ctx, stmts := run_(t, src)
	result, err := evalLast(t, ctx, stmts)
	require.NoError(t, err)
	n := ctx.GC.Node(result)
	require.Equal(t, tree.Integer, n.Kind)
	assert.Equal(t, int64(120), n.IntVal)
}

// S2: a depth limit of 3 must fail evaluating 5! with a resource error.
func TestEvalFactorialDepthLimitRaisesResourceError(t *testing.T) {
	src := "0! -> 1\nN! when N > 0 -> N * (N-1)!\n5!\n"
	ctx, stmts := run_(t, src)
	ctx.MaxDepth = 3
	_, err := evalLast(t, ctx, stmts)
	require.Error(t, err)
	diag, ok := err.(*errs.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, errs.Resource, diag.Cat)
}

// S3: type mismatch.
func TestEvalTypeMismatchReportsError(t *testing.T) {
	src := "f X:integer -> X + 1\nf \"hello\"\n"
	ctx, stmts := run_(t, src)
	var reported *errs.Diagnostic
	ctx.OnError = func(d *errs.Diagnostic) { reported = d }
	_, _ = evalLast(t, ctx, stmts)
	require.NotNil(t, reported)
	assert.Equal(t, errs.Type, reported.Cat)
}

// S4: a lazy (untyped) argument is re-entered on every use, not memoized.
func TestEvalClosureLazinessReentersOnEachUse(t *testing.T) {
	src := "twice F -> F; F\ntwice (write \"hi\")\n"
	ctx, stmts := run_(t, src)
	var buf bytes.Buffer
	ctx.Output = &buf
	_, err := evalLast(t, ctx, stmts)
	require.NoError(t, err)
	assert.Equal(t, "hihi", buf.String())
}

// S5: a declared data form evaluates its children but stays inert itself.
func TestEvalDataFormInertness(t *testing.T) {
	src := "data point(X,Y)\npoint(1 + 1, 2 * 3)\n"
	ctx, stmts := run_(t, src)
	result, err := evalLast(t, ctx, stmts)
	require.NoError(t, err)
	n := ctx.GC.Node(result)
	require.Equal(t, tree.Prefix, n.Kind)
	head := ctx.GC.Node(n.Left)
	require.Equal(t, tree.Name, head.Kind)
	assert.Equal(t, "point", head.NameVal)
	args := ctx.GC.Node(n.Right)
	inner := ctx.GC.Node(args.Child)
	require.Equal(t, tree.Infix, inner.Kind)
	assert.Equal(t, ",", inner.NameVal)
	x := ctx.GC.Node(inner.Left)
	y := ctx.GC.Node(inner.Right)
	assert.Equal(t, int64(2), x.IntVal)
	assert.Equal(t, int64(6), y.IntVal)
}

// A name bound in an outer rewrite's scope that happens to also be the
// pattern variable of a different, unrelated rewrite is resolved as a
// reference to the outer binding, not shadowed by a fresh capture: calling
// "f 5" binds X=5 while expanding to "g 100", and evaluating "g 100" then
// matches g's own pattern "g X" against X already meaning 5, so the
// coincidental reuse of the name X fails the resulting equality check
// instead of silently rebinding X to 100.
func TestEvalCoincidentalNameReferencesOuterBindingNotShadow(t *testing.T) {
	src := "f X -> g 100\ng X -> X + 1\nf 5\n"
	ctx, stmts := run_(t, src)
	_, err := evalLast(t, ctx, stmts)
	require.Error(t, err)
	diag, ok := err.(*errs.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, errs.ShapeMatch, diag.Cat)
}

// When the pattern variable's name does not collide with anything in the
// calling scope, matching still captures it freely.
func TestEvalUnrelatedNameCapturesFreely(t *testing.T) {
	src := "g X -> X + 1\ng 100\n"
	ctx, stmts := run_(t, src)
	result, err := evalLast(t, ctx, stmts)
	require.NoError(t, err)
	n := ctx.GC.Node(result)
	require.Equal(t, tree.Integer, n.Kind)
	assert.Equal(t, int64(101), n.IntVal)
}
