package lintengine_test

import (
	"context"
	"go/ast"
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/loader"
	"github.com/go-lintpack/lintengine/version"
)

const walkerSource = `package example

func outer() {
	a := 1
	_ = a
	f := func() {
		b := 2
		_ = b
	}
	f()
}

func plain() int { return 1 }
`

// reportDefine reports every short variable declaration.
func reportDefine(p *lintengine.Pass, n ast.Node) {
	if as := n.(*ast.AssignStmt); as.Tok == token.DEFINE {
		p.Report(as, "%s defines a variable", as.Lhs[0])
	}
}

func defineInfo(name string, category lintengine.Category) lintengine.CheckInfo {
	return lintengine.CheckInfo{
		Name:     name,
		Category: category,
		Kinds:    []lintengine.NodeKind{lintengine.KindAssignStmt},
		Summary:  "Detects short variable declarations",
	}
}

func newUnit(t *testing.T, src string) *lintengine.Unit {
	t.Helper()
	u, err := loader.FromSource("example.go", []byte(src))
	require.NoError(t, err)
	return u
}

func runChecks(t *testing.T, reg *lintengine.Registry, opts lintengine.EngineOptions, src string) *diag.Report {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = lintengine.Discard()
	}
	e, err := lintengine.NewEngine(reg, opts)
	require.NoError(t, err)
	report, err := e.Run(newUnit(t, src))
	require.NoError(t, err)
	return report
}

func messages(report *diag.Report) []string {
	var out []string
	for _, d := range report.Diagnostics {
		out = append(out, d.Level.String()+" "+d.Check+": "+d.Message)
	}
	return out
}

func TestNoChecksForKind(t *testing.T) {
	reg := lintengine.NewRegistry()
	var visited int
	reg.MustRegister(lintengine.CheckInfo{
		Name:     "selectCheck",
		Category: lintengine.Style,
		Kinds:    []lintengine.NodeKind{lintengine.KindSelectStmt},
		Summary:  "Visits select statements",
	}, lintengine.VisitFunc(func(p *lintengine.Pass, n ast.Node) {
		visited++
		p.Report(n, "select")
	}))

	report := runChecks(t, reg, lintengine.EngineOptions{}, walkerSource)
	assert.Zero(t, visited)
	assert.Empty(t, report.Diagnostics)
	assert.Equal(t, diag.Clean, report.Disposition)
}

func TestDispatchOrder(t *testing.T) {
	reg := lintengine.NewRegistry()
	reg.MustRegister(defineInfo("first", lintengine.Style), lintengine.VisitFunc(reportDefine))
	reg.MustRegister(defineInfo("second", lintengine.Correctness), lintengine.VisitFunc(reportDefine))

	report := runChecks(t, reg, lintengine.EngineOptions{}, walkerSource)
	want := []string{
		"warn first: a defines a variable",
		"deny second: a defines a variable",
		"warn first: f defines a variable",
		"deny second: f defines a variable",
		"warn first: b defines a variable",
		"deny second: b defines a variable",
	}
	if diff := cmp.Diff(want, messages(report)); diff != "" {
		t.Errorf("diagnostics mismatch (-want +have):\n%s", diff)
	}
	assert.Equal(t, diag.HasErrors, report.Disposition)
	assert.Equal(t, 3, report.Count(diag.Warn))
	assert.Equal(t, 3, report.Count(diag.Deny))
}

func TestDeterminism(t *testing.T) {
	reg := lintengine.NewRegistry()
	reg.MustRegister(defineInfo("first", lintengine.Style), lintengine.VisitFunc(reportDefine))
	e, err := lintengine.NewEngine(reg, lintengine.EngineOptions{Logger: lintengine.Discard()})
	require.NoError(t, err)

	u := newUnit(t, walkerSource)
	r1, err := e.Run(u)
	require.NoError(t, err)
	r2, err := e.Run(u)
	require.NoError(t, err)
	if diff := cmp.Diff(r1.Diagnostics, r2.Diagnostics); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
}

func TestDedup(t *testing.T) {
	reg := lintengine.NewRegistry()
	reg.MustRegister(defineInfo("twice", lintengine.Style), lintengine.VisitFunc(func(p *lintengine.Pass, n ast.Node) {
		reportDefine(p, n)
		reportDefine(p, n)
	}))

	report := runChecks(t, reg, lintengine.EngineOptions{}, walkerSource)
	assert.Len(t, report.Diagnostics, 3)
}

func TestFaultIsolation(t *testing.T) {
	reg := lintengine.NewRegistry()
	var calls int
	reg.MustRegister(defineInfo("broken", lintengine.Style), lintengine.VisitFunc(func(p *lintengine.Pass, n ast.Node) {
		calls++
		panic("boom")
	}))
	reg.MustRegister(defineInfo("healthy", lintengine.Style), lintengine.VisitFunc(reportDefine))

	report := runChecks(t, reg, lintengine.EngineOptions{}, walkerSource)
	assert.Equal(t, 1, calls, "faulted check must be disabled")
	assert.Equal(t, 1, report.Faults)

	var faults, findings int
	for _, d := range report.Diagnostics {
		switch d.Kind {
		case diag.KindCheckFault:
			faults++
			assert.Equal(t, "broken", d.Check)
			assert.Equal(t, diag.Warn, d.Level)
			assert.Contains(t, d.Message, "boom")
		case diag.KindLint:
			findings++
			assert.Equal(t, "healthy", d.Check)
		}
	}
	assert.Equal(t, 1, faults)
	assert.Equal(t, 3, findings)
}

func TestCategoryOverrideAllow(t *testing.T) {
	reg := lintengine.NewRegistry()
	reg.MustRegister(defineInfo("styleOne", lintengine.Style), lintengine.VisitFunc(reportDefine))
	reg.MustRegister(defineInfo("styleTwo", lintengine.Style), lintengine.VisitFunc(reportDefine))
	reg.MustRegister(defineInfo("perfOne", lintengine.Performance), lintengine.VisitFunc(reportDefine))

	report := runChecks(t, reg, lintengine.EngineOptions{
		Overrides: []lintengine.Override{{Name: "style", Level: diag.Allow}},
	}, walkerSource)
	for _, d := range report.Diagnostics {
		assert.NotEqual(t, "style", d.Category)
	}
	assert.Len(t, report.Filter("perfOne"), 3)
}

func TestUnknownOverride(t *testing.T) {
	reg := lintengine.NewRegistry()
	reg.MustRegister(defineInfo("known", lintengine.Style), lintengine.VisitFunc(reportDefine))

	_, err := lintengine.NewEngine(reg, lintengine.EngineOptions{
		Overrides: []lintengine.Override{{Name: "unknown", Level: diag.Deny}},
	})
	require.ErrorIs(t, err, lintengine.ErrUnknownOverride)
	assert.False(t, reg.Frozen())
}

func TestLexicalOverride(t *testing.T) {
	const src = `package example

//lint:allow scoped
func outer() {
	a := 1
	_ = a
	//lint:deny scoped -- inner code must be clean
	{
		b := 2
		_ = b
		{
			c := 3
			_ = c
		}
	}
	d := 4
	_ = d
}
`
	reg := lintengine.NewRegistry()
	reg.MustRegister(defineInfo("scoped", lintengine.Style), lintengine.VisitFunc(reportDefine))

	report := runChecks(t, reg, lintengine.EngineOptions{}, src)
	want := []string{
		"deny scoped: b defines a variable",
		"deny scoped: c defines a variable",
	}
	if diff := cmp.Diff(want, messages(report)); diff != "" {
		t.Errorf("diagnostics mismatch (-want +have):\n%s", diff)
	}
}

func TestDirectiveNameLists(t *testing.T) {
	const src = `package example

func outer() {
	//lint:allow scoped other
	a := 1
	_ = a
	//lint:allow scoped, other third
	b := 2
	_ = b
	c := 3
	_ = c
}
`
	reg := lintengine.NewRegistry()
	for _, name := range []string{"scoped", "other", "third"} {
		reg.MustRegister(defineInfo(name, lintengine.Style), lintengine.VisitFunc(reportDefine))
	}

	report := runChecks(t, reg, lintengine.EngineOptions{}, src)
	want := []string{
		"warn third: a defines a variable",
		"warn other: c defines a variable",
		"warn scoped: c defines a variable",
		"warn third: c defines a variable",
	}
	if diff := cmp.Diff(want, messages(report)); diff != "" {
		t.Errorf("diagnostics mismatch (-want +have):\n%s", diff)
	}
}

func TestForbidIsNotSuppressible(t *testing.T) {
	const src = `package example

func outer() {
	//lint:allow scoped
	a := 1
	_ = a
}
`
	reg := lintengine.NewRegistry()
	reg.MustRegister(defineInfo("scoped", lintengine.Style), lintengine.VisitFunc(reportDefine))

	report := runChecks(t, reg, lintengine.EngineOptions{
		Overrides: []lintengine.Override{{Name: "style", Level: diag.Forbid}},
	}, src)
	assert.Equal(t, []string{"forbid scoped: a defines a variable"}, messages(report))
}

func TestMinVersionGate(t *testing.T) {
	const src = `package example

func old() {
	a := 1
	_ = a
}

//lint:msrv 1.22
func modern() {
	b := 2
	_ = b
}
`
	newReg := func() *lintengine.Registry {
		reg := lintengine.NewRegistry()
		info := defineInfo("gated", lintengine.Style)
		info.MinVersion = version.New(1, 22, 0)
		reg.MustRegister(info, lintengine.VisitFunc(reportDefine))
		return reg
	}

	tests := []struct {
		name string
		msrv version.Version
		want []string
	}{
		{"unspecified", version.Version{}, []string{
			"warn gated: a defines a variable",
			"warn gated: b defines a variable",
		}},
		{"older", version.New(1, 21, 0), []string{
			"warn gated: b defines a variable",
		}},
		{"newer", version.New(1, 23, 0), []string{
			"warn gated: a defines a variable",
			"warn gated: b defines a variable",
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e, err := lintengine.NewEngine(newReg(), lintengine.EngineOptions{Logger: lintengine.Discard()})
			require.NoError(t, err)
			u := newUnit(t, src)
			u.GoVersion = test.msrv
			report, err := e.Run(u)
			require.NoError(t, err)
			if diff := cmp.Diff(test.want, messages(report)); diff != "" {
				t.Errorf("diagnostics mismatch (-want +have):\n%s", diff)
			}
		})
	}
}

type depthCounter struct {
	lintengine.CheckBase
}

type depthState struct {
	depth    int
	maxDepth int
	funcs    int
}

func (depthCounter) Visit(p *lintengine.Pass, n ast.Node) {
	st := lintengine.RunState[depthState](p)
	st.depth++
	st.funcs++
	if st.depth > st.maxDepth {
		st.maxDepth = st.depth
	}
}

func (depthCounter) Leave(p *lintengine.Pass, n ast.Node) {
	lintengine.RunState[depthState](p).depth--
}

func (depthCounter) EndRun(p *lintengine.Pass) {
	st := lintengine.RunState[depthState](p)
	p.DiagSpan(diag.Span{File: "summary"}).
		Messagef("funcs=%d max=%d depth=%d", st.funcs, st.maxDepth, st.depth).
		Emit()
}

func TestRunStateIsPerRun(t *testing.T) {
	reg := lintengine.NewRegistry()
	reg.MustRegister(lintengine.CheckInfo{
		Name:     "depth",
		Category: lintengine.Complexity,
		Kinds:    []lintengine.NodeKind{lintengine.KindFuncDecl, lintengine.KindFuncLit},
		Summary:  "Counts function nesting",
	}, depthCounter{})
	e, err := lintengine.NewEngine(reg, lintengine.EngineOptions{Logger: lintengine.Discard()})
	require.NoError(t, err)

	u := newUnit(t, walkerSource)
	for i := 0; i < 2; i++ {
		report, err := e.Run(u)
		require.NoError(t, err)
		require.Len(t, report.Diagnostics, 1)
		assert.Equal(t, "funcs=3 max=2 depth=0", report.Diagnostics[0].Message)
	}
}

func TestAllowedDiagIsNil(t *testing.T) {
	reg := lintengine.NewRegistry()
	var built int
	reg.MustRegister(defineInfo("quiet", lintengine.Strict), lintengine.VisitFunc(func(p *lintengine.Pass, n ast.Node) {
		b := p.Diag(n)
		assert.Nil(t, b)
		assert.False(t, p.Enabled())
		b.Messagef("unused").
			SuggestFunc(func() diag.Suggestion {
				built++
				return diag.Suggestion{}
			}).
			Emit()
	}))

	report := runChecks(t, reg, lintengine.EngineOptions{}, walkerSource)
	assert.Empty(t, report.Diagnostics)
	assert.Zero(t, built)
}

func TestOverlappingSuggestions(t *testing.T) {
	reg := lintengine.NewRegistry()
	reg.MustRegister(defineInfo("overlap", lintengine.Style), lintengine.VisitFunc(func(p *lintengine.Pass, n ast.Node) {
		as := n.(*ast.AssignStmt)
		if as.Tok != token.DEFINE {
			return
		}
		p.Diag(as).
			Messagef("rewrite %s", as).
			Suggest("first", diag.MachineApplicable, p.Replace(as, "x")).
			Suggest("second", diag.MachineApplicable, p.Replace(as.Lhs[0], "y")).
			Emit()
	}))

	report := runChecks(t, reg, lintengine.EngineOptions{}, walkerSource)
	var findings, violations int
	for _, d := range report.Diagnostics {
		switch d.Kind {
		case diag.KindLint:
			findings++
			assert.Empty(t, d.Suggestions)
		case diag.KindContractViolation:
			violations++
		}
	}
	assert.Equal(t, 3, findings)
	assert.Equal(t, 3, violations)
	assert.Equal(t, 3, report.Faults)
}

func TestRunAll(t *testing.T) {
	reg := lintengine.NewRegistry()
	reg.MustRegister(defineInfo("first", lintengine.Style), lintengine.VisitFunc(reportDefine))
	e, err := lintengine.NewEngine(reg, lintengine.EngineOptions{Logger: lintengine.Discard()})
	require.NoError(t, err)

	sources := []string{
		walkerSource,
		"package example\n\nfunc f() {}\n",
		"package example\n\nfunc g() { x := 1; _ = x }\n",
	}
	var units []*lintengine.Unit
	for _, src := range sources {
		units = append(units, newUnit(t, src))
	}

	reports, err := e.RunAll(context.Background(), units, 2)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Len(t, reports[0].Diagnostics, 3)
	assert.Empty(t, reports[1].Diagnostics)
	assert.Len(t, reports[2].Diagnostics, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.RunAll(ctx, units, 1)
	require.ErrorIs(t, err, context.Canceled)
}
