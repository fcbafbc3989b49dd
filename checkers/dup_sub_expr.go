package checkers

import (
	"go/ast"
	"go/token"

	"github.com/go-toolsmith/astequal"
	"github.com/go-toolsmith/typep"

	"github.com/go-lintpack/lintengine"
)

func init() {
	var info lintengine.CheckInfo
	info.Name = "dupSubExpr"
	info.Category = lintengine.Correctness
	info.Kinds = []lintengine.NodeKind{lintengine.KindBinaryExpr}
	info.Summary = "Detects suspicious duplicated sub-expressions"
	info.Before = `
sort.Slice(xs, func(i, j int) bool {
	return xs[i].v < xs[i].v // Second index should be j
})`
	info.After = `
sort.Slice(xs, func(i, j int) bool {
	return xs[i].v < xs[j].v
})`

	lintengine.AddCheck(info, lintengine.VisitFunc(visitDupSubExpr))
}

// dupSubExprOps lists operators for which identical operands
// are almost certainly a mistake.
var dupSubExprOps = map[token.Token]bool{
	token.LOR:     true, // x || x
	token.LAND:    true, // x && x
	token.OR:      true, // x | x
	token.AND:     true, // x & x
	token.XOR:     true, // x ^ x
	token.AND_NOT: true, // x &^ x
	token.SUB:     true, // x - x
	token.QUO:     true, // x / x
	token.REM:     true, // x % x
	token.EQL:     true, // x == x
	token.NEQ:     true, // x != x
	token.LSS:     true, // x < x
	token.LEQ:     true, // x <= x
	token.GTR:     true, // x > x
	token.GEQ:     true, // x >= x
}

func visitDupSubExpr(p *lintengine.Pass, n ast.Node) {
	e := n.(*ast.BinaryExpr)
	if !dupSubExprOps[e.Op] {
		return
	}
	// x != x is a NaN test.
	if e.Op == token.EQL || e.Op == token.NEQ {
		if typ := p.TypeOf(e.X); typ == nil || typep.HasFloatProp(typ.Underlying()) {
			return
		}
	}
	if !astequal.Expr(e.X, e.Y) || !typep.SideEffectFree(p.TypesInfo(), e.X) {
		return
	}

	p.Diag(e.Y).
		Messagef("suspicious identical LHS and RHS for `%s` operator", e.Op).
		Label(e.X, "same as this operand").
		Emit()
}
