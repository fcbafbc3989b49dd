package lintengine

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/go-toolsmith/astfmt"

	"github.com/go-lintpack/lintengine/config"
	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/version"
)

// Pass is a check view of a single run.
//
// Every check gets its own Pass per run; passes are never shared
// between runs or checks.
type Pass struct {
	run   *run
	check *Check

	printer *astfmt.Printer

	// node is the node being visited.
	node ast.Node

	// state is a check-defined run-local value, see RunState.
	state interface{}

	faulted bool
}

// RunState returns run-local state of the check that owns p,
// allocating a zero T on the first call.
//
// All calls for the same pass must use the same T.
func RunState[T any](p *Pass) *T {
	if p.state == nil {
		p.state = new(T)
	}
	return p.state.(*T)
}

// Info returns the check description.
func (p *Pass) Info() *CheckInfo { return p.check.Info }

// Unit returns the unit being analyzed.
func (p *Pass) Unit() *Unit { return p.run.unit }

// Fset returns the unit file set.
func (p *Pass) Fset() *token.FileSet { return p.run.unit.Fset }

// Pkg returns the unit package.
func (p *Pass) Pkg() *types.Package { return p.run.unit.Pkg }

// TypesInfo returns type facts of the unit.
func (p *Pass) TypesInfo() *types.Info { return p.run.unit.TypesInfo }

// File returns the file being walked.
// It's nil inside BeginRun and EndRun.
func (p *Pass) File() *ast.File { return p.run.file }

// Config returns run settings.
func (p *Pass) Config() *config.Config { return p.run.cfg }

// Node returns the node being visited.
func (p *Pass) Node() ast.Node { return p.node }

// Stack returns the current node with all its ancestors,
// outermost first. The returned slice must not be modified
// and is only valid until the visit returns.
func (p *Pass) Stack() []ast.Node { return p.run.stack }

// Parent returns the parent of the current node, or nil.
func (p *Pass) Parent() ast.Node {
	stack := p.run.stack
	if len(stack) < 2 {
		return nil
	}
	return stack[len(stack)-2]
}

// MSRV returns the minimum supported version in effect at the current
// location. Zero value means "unspecified".
func (p *Pass) MSRV() version.Version {
	return p.run.resolver.MSRV(p.run.scopes)
}

// Level resolves the check level at the current location.
func (p *Pass) Level() diag.Level {
	return p.run.resolver.Resolve(p.check.Info, p.run.scopes)
}

// Enabled reports whether diagnostics emitted at the current
// location would be kept. Checks can use it to skip expensive analysis.
func (p *Pass) Enabled() bool {
	return p.Level() != diag.Allow
}

// TypeOf returns the type of x, or nil if it's unknown.
func (p *Pass) TypeOf(x ast.Expr) types.Type {
	return p.run.unit.TypesInfo.TypeOf(x)
}

// ObjectOf returns the object id denotes, or nil.
func (p *Pass) ObjectOf(id *ast.Ident) types.Object {
	return p.run.unit.TypesInfo.ObjectOf(id)
}

// Sprint formats node as source code.
func (p *Pass) Sprint(n ast.Node) string {
	return p.printer.Sprint(n)
}

// Span returns the source span of n.
func (p *Pass) Span(n ast.Node) diag.Span {
	return diag.SpanOf(p.Fset(), n.Pos(), n.End())
}

// SpanRange returns the source span [from, to).
func (p *Pass) SpanRange(from, to token.Pos) diag.Span {
	return diag.SpanOf(p.Fset(), from, to)
}

// Replace returns an edit that replaces n with text.
func (p *Pass) Replace(n ast.Node, text string) diag.Edit {
	return diag.Edit{Span: p.Span(n), NewText: text}
}

// ReplaceRange returns an edit that replaces [from, to) with text.
func (p *Pass) ReplaceRange(from, to token.Pos, text string) diag.Edit {
	return diag.Edit{Span: p.SpanRange(from, to), NewText: text}
}

// Insert returns an edit that inserts text at pos.
func (p *Pass) Insert(pos token.Pos, text string) diag.Edit {
	return diag.Edit{Span: p.SpanRange(pos, pos), NewText: text}
}

// Report emits a diagnostic with a formatted message at n.
// Nodes passed as args are printed as source code.
func (p *Pass) Report(n ast.Node, format string, args ...interface{}) {
	p.Diag(n).Messagef(format, args...).Emit()
}

// Diag starts a diagnostic with primary span of n.
//
// If the check is allowed at the current location, Diag returns nil;
// all builder methods are no-ops on a nil builder, so message
// formatting and suggestion construction are skipped.
func (p *Pass) Diag(n ast.Node) *DiagnosticBuilder {
	return p.DiagSpan(p.Span(n))
}

// DiagSpan is like Diag, but takes an explicit primary span.
func (p *Pass) DiagSpan(primary diag.Span) *DiagnosticBuilder {
	lvl := p.Level()
	if lvl == diag.Allow {
		return nil
	}
	return &DiagnosticBuilder{
		pass: p,
		diag: diag.Diagnostic{
			Check:    p.check.Info.Name,
			Category: p.check.Info.Category.String(),
			Level:    lvl,
			Kind:     diag.KindLint,
			Primary:  primary,
		},
	}
}
