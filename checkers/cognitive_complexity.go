package checkers

import (
	"go/ast"
	"go/token"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/config"
)

func init() {
	var info lintengine.CheckInfo
	info.Name = "cognitiveComplexity"
	info.Category = lintengine.Complexity
	info.Kinds = []lintengine.NodeKind{
		lintengine.KindFuncDecl,
		lintengine.KindFuncLit,
		lintengine.KindIfStmt,
		lintengine.KindForStmt,
		lintengine.KindRangeStmt,
		lintengine.KindSwitchStmt,
		lintengine.KindTypeSwitchStmt,
		lintengine.KindSelectStmt,
		lintengine.KindBinaryExpr,
		lintengine.KindBranchStmt,
	}
	info.Params = lintengine.CheckParams{
		"cognitive-complexity-threshold": config.Param{
			Value: 25,
			Usage: "maximum cognitive complexity of a function",
		},
	}
	info.Summary = "Detects functions that are hard to understand"
	info.Details = `
Every control flow break adds one point; nested ones add one more point
per nesting level. Sequences of like boolean operators, else branches
and jumps to labels add one point each.`

	lintengine.AddCheck(info, &cognitiveComplexityChecker{})
}

type cognitiveComplexityChecker struct {
	lintengine.CheckBase
}

type complexityFrame struct {
	fn      ast.Node
	score   int
	nesting int
}

type complexityState struct {
	threshold int
	frames    []*complexityFrame

	// flat holds else-if statements that don't add nesting.
	flat map[ast.Node]bool
}

func (c *cognitiveComplexityChecker) BeginRun(p *lintengine.Pass) {
	st := lintengine.RunState[complexityState](p)
	st.threshold = p.Config().Int("cognitive-complexity-threshold")
	st.flat = make(map[ast.Node]bool)
}

func (c *cognitiveComplexityChecker) Visit(p *lintengine.Pass, n ast.Node) {
	st := lintengine.RunState[complexityState](p)

	switch n := n.(type) {
	case *ast.FuncDecl:
		st.frames = append(st.frames, &complexityFrame{fn: n})
		return
	case *ast.FuncLit:
		if len(st.frames) == 0 {
			st.frames = append(st.frames, &complexityFrame{fn: n})
		} else {
			st.top().nesting++
		}
		return
	}

	top := st.top()
	if top == nil {
		return
	}

	switch n := n.(type) {
	case *ast.IfStmt:
		if parent, ok := p.Parent().(*ast.IfStmt); ok && parent.Else == n {
			top.score++
			st.flat[n] = true
		} else {
			top.score += 1 + top.nesting
			top.nesting++
		}
		if _, ok := n.Else.(*ast.BlockStmt); ok {
			top.score++
		}
	case *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
		top.score += 1 + top.nesting
		top.nesting++
	case *ast.BinaryExpr:
		if n.Op != token.LAND && n.Op != token.LOR {
			return
		}
		if parent, ok := p.Parent().(*ast.BinaryExpr); !ok || parent.Op != n.Op {
			top.score++
		}
	case *ast.BranchStmt:
		if n.Tok == token.GOTO || n.Label != nil {
			top.score++
		}
	}
}

func (c *cognitiveComplexityChecker) Leave(p *lintengine.Pass, n ast.Node) {
	st := lintengine.RunState[complexityState](p)
	top := st.top()
	if top == nil {
		return
	}

	switch n := n.(type) {
	case *ast.FuncDecl:
		st.pop()
		c.check(p, st, top, n.Name, "func "+n.Name.Name)
	case *ast.FuncLit:
		if top.fn != n {
			top.nesting--
			return
		}
		st.pop()
		c.check(p, st, top, n.Type, "function literal")
	case *ast.IfStmt:
		if st.flat[n] {
			delete(st.flat, n)
			return
		}
		top.nesting--
	case *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
		top.nesting--
	}
}

func (c *cognitiveComplexityChecker) check(p *lintengine.Pass, st *complexityState, f *complexityFrame, at ast.Node, name string) {
	if f.score <= st.threshold {
		return
	}
	p.Diag(at).
		Messagef("cognitive complexity %d of %s is high (> %d)", f.score, name, st.threshold).
		Emit()
}

func (st *complexityState) top() *complexityFrame {
	if len(st.frames) == 0 {
		return nil
	}
	return st.frames[len(st.frames)-1]
}

func (st *complexityState) pop() {
	st.frames = st.frames[:len(st.frames)-1]
}
