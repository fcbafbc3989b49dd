// Package checkers provides the built-in checks.
//
// Importing this package registers all checks in the default registry.
package checkers

import (
	"go/ast"

	"github.com/go-lintpack/lintengine"
)

// enclosingLoops returns the number of for and range statements
// among the ancestors of the current node, up to the nearest function.
// innermost is the closest such loop or nil.
func enclosingLoops(p *lintengine.Pass) (depth int, innermost ast.Node) {
	stack := p.Stack()
	for i := len(stack) - 2; i >= 0; i-- {
		switch n := stack[i].(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			return depth, innermost
		case *ast.ForStmt, *ast.RangeStmt:
			if innermost == nil {
				innermost = n
			}
			depth++
		}
	}
	return depth, innermost
}

// rootIdent returns the leftmost identifier of a selector
// or index chain like x.y[i].z.
func rootIdent(x ast.Expr) *ast.Ident {
	for {
		switch e := x.(type) {
		case *ast.Ident:
			return e
		case *ast.SelectorExpr:
			x = e.X
		case *ast.IndexExpr:
			x = e.X
		case *ast.StarExpr:
			x = e.X
		case *ast.ParenExpr:
			x = e.X
		default:
			return nil
		}
	}
}
