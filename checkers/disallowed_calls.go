package checkers

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/types/typeutil"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/config"
)

func init() {
	var info lintengine.CheckInfo
	info.Name = "disallowedCalls"
	info.Category = lintengine.Restriction
	info.Kinds = []lintengine.NodeKind{lintengine.KindCallExpr}
	info.Params = lintengine.CheckParams{
		"disallowed-functions": config.Param{
			Value: []string{"plugin.Open", "syscall.Exec"},
			Usage: "functions that must not be called, like os.Exit or (*os.File).Chmod",
		},
	}
	info.Summary = "Detects calls of functions listed in the settings"
	info.Details = "Functions are written as the types.Func.FullName of the callee."
	info.Before = `os.Exit(1)`
	info.After = `return errExit`

	lintengine.AddCheck(info, &disallowedCallsChecker{})
}

type disallowedCallsChecker struct {
	lintengine.CheckBase
}

type disallowedCallsState struct {
	names map[string]bool
}

func (c *disallowedCallsChecker) BeginRun(p *lintengine.Pass) {
	st := lintengine.RunState[disallowedCallsState](p)
	st.names = make(map[string]bool)
	for _, name := range p.Config().Strings("disallowed-functions") {
		name = strings.TrimSpace(name)
		if name != "" {
			st.names[name] = true
		}
	}
}

func (c *disallowedCallsChecker) Visit(p *lintengine.Pass, n ast.Node) {
	st := lintengine.RunState[disallowedCallsState](p)
	if len(st.names) == 0 {
		return
	}

	call := n.(*ast.CallExpr)
	fn := typeutil.StaticCallee(p.TypesInfo(), call)
	if fn == nil {
		return
	}
	name := fn.Origin().FullName()
	if !st.names[name] {
		return
	}

	p.Diag(call.Fun).
		Messagef("call to %s is disallowed", name).
		Note("disallowed by the disallowed-functions setting").
		Emit()
}
