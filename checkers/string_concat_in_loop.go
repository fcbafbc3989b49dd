package checkers

import (
	"go/ast"
	"go/token"

	"github.com/go-toolsmith/typep"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/config"
)

func init() {
	var info lintengine.CheckInfo
	info.Name = "stringConcatInLoop"
	info.Category = lintengine.Performance
	info.Kinds = []lintengine.NodeKind{lintengine.KindAssignStmt}
	info.Params = lintengine.CheckParams{
		"string-concat-min-loop-depth": config.Param{
			Value: 1,
			Usage: "minimal loop nesting depth to report string += at",
		},
	}
	info.Summary = "Detects string concatenation inside loops"
	info.Details = "Every += allocates a new string; strings.Builder amortizes allocations."
	info.Before = `
for _, x := range xs {
	s += x
}`
	info.After = `
var b strings.Builder
for _, x := range xs {
	b.WriteString(x)
}
s := b.String()`

	lintengine.AddCheck(info, lintengine.VisitFunc(visitStringConcatInLoop))
}

func visitStringConcatInLoop(p *lintengine.Pass, n ast.Node) {
	assign := n.(*ast.AssignStmt)
	if assign.Tok != token.ADD_ASSIGN || len(assign.Lhs) != 1 {
		return
	}
	lhs := assign.Lhs[0]
	if typ := p.TypeOf(lhs); typ == nil || !typep.HasStringProp(typ.Underlying()) {
		return
	}

	depth, loop := enclosingLoops(p)
	if depth == 0 || depth < p.Config().Int("string-concat-min-loop-depth") {
		return
	}
	// Variables local to an iteration start over every time.
	if id := rootIdent(lhs); id != nil {
		if obj := p.ObjectOf(id); obj != nil && perIteration(loop, obj.Pos()) {
			return
		}
	}

	p.Diag(assign).
		Messagef("%s is concatenated in a loop, consider using strings.Builder", lhs).
		Emit()
}

// perIteration reports whether a variable declared at pos gets a fresh
// value on every iteration of loop. For statements keep their init
// variables across iterations; range statements reassign theirs.
func perIteration(loop ast.Node, pos token.Pos) bool {
	scope := loop
	if loop, ok := loop.(*ast.ForStmt); ok {
		scope = loop.Body
	}
	return scope.Pos() <= pos && pos < scope.End()
}
