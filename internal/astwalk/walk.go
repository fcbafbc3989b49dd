// Package astwalk implements the traversal primitives used by the engine.
package astwalk

import (
	"go/ast"

	"github.com/go-toolsmith/astp"
)

// Walk traverses root in depth-first order.
//
// enter is called before node children are visited; if it returns false,
// neither the children nor leave are visited for that node.
// leave is called after all children are visited.
func Walk(root ast.Node, enter func(ast.Node) bool, leave func(ast.Node)) {
	var stack []ast.Node
	ast.Inspect(root, func(n ast.Node) bool {
		if n == nil {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			leave(top)
			return false
		}
		if !enter(n) {
			return false
		}
		stack = append(stack, n)
		return true
	})
}

// IntroducesScope reports whether n opens a new lexical scope.
func IntroducesScope(n ast.Node) bool {
	if _, ok := n.(*ast.File); ok {
		return true
	}
	return astp.IsFuncDecl(n) ||
		astp.IsFuncLit(n) ||
		astp.IsBlockStmt(n) ||
		astp.IsIfStmt(n) ||
		astp.IsForStmt(n) ||
		astp.IsRangeStmt(n) ||
		astp.IsSwitchStmt(n) ||
		astp.IsTypeSwitchStmt(n) ||
		astp.IsSelectStmt(n) ||
		astp.IsCaseClause(n) ||
		astp.IsCommClause(n)
}

// AttachedComments returns comment groups that belong to n:
// its doc comment, if any, followed by groups cmap associates with n.
func AttachedComments(cmap ast.CommentMap, n ast.Node) []*ast.CommentGroup {
	var groups []*ast.CommentGroup
	switch n := n.(type) {
	case *ast.File:
		groups = appendGroup(groups, n.Doc)
	case *ast.FuncDecl:
		groups = appendGroup(groups, n.Doc)
	case *ast.GenDecl:
		groups = appendGroup(groups, n.Doc)
	case *ast.TypeSpec:
		groups = appendGroup(groups, n.Doc)
	case *ast.ValueSpec:
		groups = appendGroup(groups, n.Doc)
	case *ast.Field:
		groups = appendGroup(groups, n.Doc)
	}
	for _, g := range cmap[n] {
		groups = appendGroup(groups, g)
	}
	return groups
}

func appendGroup(groups []*ast.CommentGroup, g *ast.CommentGroup) []*ast.CommentGroup {
	if g == nil {
		return groups
	}
	for _, x := range groups {
		if x == g {
			return groups
		}
	}
	return append(groups, g)
}
