package checkers

import (
	"go/ast"
	"go/types"

	"github.com/go-toolsmith/astp"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/config"
)

func init() {
	var info lintengine.CheckInfo
	info.Name = "panicNil"
	info.Category = lintengine.Correctness
	info.Kinds = []lintengine.NodeKind{lintengine.KindCallExpr}
	info.Params = lintengine.CheckParams{
		"panic-nil-skip-eface": config.Param{
			Value: false,
			Usage: "whether to ignore interface{}(nil) arguments",
		},
	}
	info.Summary = "Detects panic(nil) calls"
	info.Details = "Such panic calls are hard to handle during recover."
	info.Before = `panic(nil)`
	info.After = `panic("something meaningful")`

	lintengine.AddCheck(info, &panicNilChecker{})
}

type panicNilChecker struct {
	lintengine.CheckBase
}

func (c *panicNilChecker) Visit(p *lintengine.Pass, n ast.Node) {
	call := n.(*ast.CallExpr)
	fn, ok := call.Fun.(*ast.Ident)
	if !ok || fn.Name != "panic" || len(call.Args) != 1 {
		return
	}
	if _, ok := p.ObjectOf(fn).(*types.Builtin); !ok {
		return
	}

	switch arg := call.Args[0]; p.Sprint(arg) {
	case "nil":
		c.warn(p, call)
	case "interface{}(nil)", "any(nil)":
		if astp.IsCallExpr(arg) && !p.Config().Bool("panic-nil-skip-eface") {
			c.warn(p, call)
		}
	}
}

func (c *panicNilChecker) warn(p *lintengine.Pass, cause *ast.CallExpr) {
	p.Diag(cause).
		Messagef("%s calls are discouraged", cause).
		Note("since go1.21 a nil panic value is replaced with *runtime.PanicNilError").
		Emit()
}
