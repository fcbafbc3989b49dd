package checkers

import (
	"go/ast"
	"go/types"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/version"
)

func init() {
	var info lintengine.CheckInfo
	info.Name = "emptyInterface"
	info.Category = lintengine.Style
	info.Kinds = []lintengine.NodeKind{lintengine.KindInterfaceType}
	info.MinVersion = version.New(1, 18, 0)
	info.Summary = "Detects interface{} that can be replaced with any"
	info.Before = `func f(x interface{})`
	info.After = `func f(x any)`
	info.Note = "Silent when a local declaration shadows any."

	lintengine.AddCheck(info, lintengine.VisitFunc(visitEmptyInterface))
}

func visitEmptyInterface(p *lintengine.Pass, n ast.Node) {
	iface := n.(*ast.InterfaceType)
	if iface.Methods == nil || len(iface.Methods.List) != 0 || iface.Incomplete {
		return
	}
	if !anyIsPredeclared(p, iface) {
		return
	}

	p.Diag(iface).
		Messagef("interface{} can be replaced with any").
		Suggest("use any", diag.MachineApplicable, p.Replace(iface, "any")).
		Emit()
}

func anyIsPredeclared(p *lintengine.Pass, n ast.Node) bool {
	pkg := p.Pkg()
	if pkg == nil {
		return false
	}
	scope := pkg.Scope().Innermost(n.Pos())
	if scope == nil {
		return false
	}
	_, obj := scope.LookupParent("any", n.Pos())
	return obj != nil && obj == types.Universe.Lookup("any")
}
