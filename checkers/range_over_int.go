package checkers

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/go-toolsmith/typep"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/version"
)

func init() {
	var info lintengine.CheckInfo
	info.Name = "rangeOverInt"
	info.Category = lintengine.Strict
	info.Kinds = []lintengine.NodeKind{lintengine.KindForStmt}
	info.MinVersion = version.New(1, 22, 0)
	info.Summary = "Detects counting loops that can range over an integer"
	info.Before = `for i := 0; i < n; i++ { use(i) }`
	info.After = `for i := range n { use(i) }`
	info.Note = "The loop variable type becomes the type of the bound."

	lintengine.AddCheck(info, lintengine.VisitFunc(visitRangeOverInt))
}

func visitRangeOverInt(p *lintengine.Pass, n ast.Node) {
	loop := n.(*ast.ForStmt)
	if loop.Init == nil || loop.Cond == nil || loop.Post == nil {
		return
	}

	// i := 0
	init, ok := loop.Init.(*ast.AssignStmt)
	if !ok || init.Tok != token.DEFINE || len(init.Lhs) != 1 || len(init.Rhs) != 1 {
		return
	}
	iter, ok := init.Lhs[0].(*ast.Ident)
	if !ok {
		return
	}
	if lit, ok := init.Rhs[0].(*ast.BasicLit); !ok || lit.Kind != token.INT || lit.Value != "0" {
		return
	}

	// i < n
	cond, ok := loop.Cond.(*ast.BinaryExpr)
	if !ok || cond.Op != token.LSS || !isIdentOf(p, cond.X, iter) {
		return
	}
	bound := cond.Y

	// i++
	post, ok := loop.Post.(*ast.IncDecStmt)
	if !ok || post.Tok != token.INC || !isIdentOf(p, post.X, iter) {
		return
	}

	if typ := p.TypeOf(bound); typ == nil || !typep.HasIntegerProp(typ.Underlying()) {
		return
	}
	if !pureBound(p, bound) {
		return
	}
	if mutated(p, loop.Body, p.ObjectOf(iter)) || mutatedAny(p, loop.Body, bound) {
		return
	}

	b := p.Diag(loop).Messagef("for loop can be written as `for %s := range %s`", iter, bound)
	b.SuggestFunc(func() diag.Suggestion {
		text := p.Sprint(iter) + " := range " + p.Sprint(bound)
		return diag.Suggestion{
			Message:       "range over the bound",
			Edits:         []diag.Edit{p.ReplaceRange(loop.Init.Pos(), loop.Post.End(), text)},
			Applicability: diag.MaybeIncorrect,
		}
	}).Emit()
}

// pureBound reports whether evaluating x once instead of on
// every iteration can't be observed, given that the loop body
// doesn't mutate the variables x refers to.
func pureBound(p *lintengine.Pass, x ast.Expr) bool {
	if call, ok := ast.Unparen(x).(*ast.CallExpr); ok && len(call.Args) == 1 {
		if fn, ok := ast.Unparen(call.Fun).(*ast.Ident); ok {
			if b, ok := p.ObjectOf(fn).(*types.Builtin); ok && (b.Name() == "len" || b.Name() == "cap") {
				return typep.SideEffectFree(p.TypesInfo(), call.Args[0])
			}
		}
	}
	return typep.SideEffectFree(p.TypesInfo(), x)
}

func isIdentOf(p *lintengine.Pass, x ast.Expr, id *ast.Ident) bool {
	other, ok := x.(*ast.Ident)
	return ok && p.ObjectOf(other) == p.ObjectOf(id)
}

// mutated reports whether body assigns obj or takes its address.
func mutated(p *lintengine.Pass, body *ast.BlockStmt, obj types.Object) bool {
	if obj == nil {
		return true
	}
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		if found {
			return false
		}
		switch n := n.(type) {
		case *ast.AssignStmt:
			for _, lhs := range n.Lhs {
				if id := rootIdent(lhs); id != nil && p.ObjectOf(id) == obj {
					found = true
				}
			}
		case *ast.IncDecStmt:
			if id := rootIdent(n.X); id != nil && p.ObjectOf(id) == obj {
				found = true
			}
		case *ast.UnaryExpr:
			if n.Op == token.AND {
				if id := rootIdent(n.X); id != nil && p.ObjectOf(id) == obj {
					found = true
				}
			}
		}
		return !found
	})
	return found
}

// mutatedAny reports whether body mutates any variable bound refers to.
func mutatedAny(p *lintengine.Pass, body *ast.BlockStmt, bound ast.Expr) bool {
	result := false
	ast.Inspect(bound, func(n ast.Node) bool {
		id, ok := n.(*ast.Ident)
		if !ok || result {
			return !result
		}
		if v, ok := p.ObjectOf(id).(*types.Var); ok && mutated(p, body, v) {
			result = true
		}
		return false
	})
	return result
}
