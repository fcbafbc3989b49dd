package checkers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/config"
	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/linttest"
	"github.com/go-lintpack/lintengine/loader"
	"github.com/go-lintpack/lintengine/version"
)

func TestCheckers(t *testing.T) {
	linttest.TestChecks(t, lintengine.DefaultRegistry())
}

func run(t *testing.T, cfgText string, overrides []lintengine.Override, unit *lintengine.Unit) *diag.Report {
	t.Helper()
	reg := lintengine.DefaultRegistry()
	cfg, err := config.Parse("lint.toml", cfgText, reg.Schema())
	require.NoError(t, err)
	e, err := lintengine.NewEngine(reg, lintengine.EngineOptions{
		Config:    cfg,
		Overrides: overrides,
		Logger:    lintengine.Discard(),
	})
	require.NoError(t, err)
	report, err := e.Run(unit)
	require.NoError(t, err)
	return report
}

func load(t *testing.T, src string) *lintengine.Unit {
	t.Helper()
	u, err := loader.FromSource("example.go", []byte(src))
	require.NoError(t, err)
	return u
}

func ifChain(name string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "func %s(x int) int {\n", name)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "\tif x > %d {\n\t\tx--\n\t}\n", i)
	}
	b.WriteString("\treturn x\n}\n")
	return b.String()
}

func TestComplexityThreshold(t *testing.T) {
	src := "package example\n\n" + ifChain("medium", 28) + ifChain("large", 32)
	report := run(t, "cognitive-complexity-threshold = 30", nil, load(t, src))

	found := report.Filter("cognitiveComplexity")
	require.Len(t, found, 1)
	d := found[0]
	assert.Equal(t, "complexity", d.Category)
	assert.Equal(t, lintengine.Complexity.DefaultLevel(), d.Level)
	assert.Equal(t, "cognitive complexity 32 of func large is high (> 30)", d.Message)

	// Default threshold is 25.
	report = run(t, "", nil, load(t, src))
	assert.Len(t, report.Filter("cognitiveComplexity"), 2)
}

func TestComplexityScores(t *testing.T) {
	tests := []struct {
		body  string
		score int
	}{
		{"if x > 0 { x++ }", 1},
		{"if x > 0 { x++ } else { x-- }", 2},
		{"if x > 0 { x++ } else if x < 0 { x-- } else { x = 1 }", 3},
		{"for x > 0 { if x > 1 { x-- } }", 3},
		{"for x > 0 { for x > 1 { if x > 2 { x-- } } }", 6},
		{"if x > 0 && x < 5 && x != 3 || x == 10 { x++ }", 3},
		{"switch { case x > 0: x++ }", 1},
		{"f := func() { if x > 0 { x++ } }; f()", 2},
		{"loop: for { if x > 0 { break loop }; x++ }", 4},
	}

	for _, test := range tests {
		t.Run(test.body, func(t *testing.T) {
			src := "package example\n\nfunc f(x int) {\n\t" + test.body + "\n}\n"
			report := run(t, "cognitive-complexity-threshold = 0", nil, load(t, src))
			found := report.Filter("cognitiveComplexity")
			require.Len(t, found, 1)
			want := fmt.Sprintf("cognitive complexity %d of func f is high (> 0)", test.score)
			assert.Equal(t, want, found[0].Message)
		})
	}
}

func TestMinVersionGating(t *testing.T) {
	const src = "package example\n\nvar x interface{}\n\nfunc f(n int) {\n\tfor i := 0; i < n; i++ {\n\t\t_ = i\n\t}\n}\n"
	enable := []lintengine.Override{{Name: "rangeOverInt", Level: diag.Warn}}

	tests := []struct {
		name      string
		cfg       string
		goVersion version.Version
		want      []string
	}{
		{"unknown", "", version.Version{}, []string{"emptyInterface", "rangeOverInt"}},
		{"go1.17", "", version.New(1, 17, 0), nil},
		{"go1.18", "", version.New(1, 18, 0), []string{"emptyInterface"}},
		{"go1.22", "", version.New(1, 22, 0), []string{"emptyInterface", "rangeOverInt"}},
		{"settings win", `msrv = "1.17"`, version.New(1, 22, 0), nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			u := load(t, src)
			u.GoVersion = test.goVersion
			report := run(t, test.cfg, enable, u)
			var have []string
			for _, d := range report.Diagnostics {
				have = append(have, d.Check)
			}
			assert.Equal(t, test.want, have)
		})
	}
}

func TestCategoryAllow(t *testing.T) {
	const src = `package example

func f(a int) {
	_ = a == a
	panic(nil)
}
`
	report := run(t, "", nil, load(t, src))
	assert.Len(t, report.Diagnostics, 2)
	assert.Equal(t, diag.HasErrors, report.Disposition)

	report = run(t, "", []lintengine.Override{{Name: "correctness", Level: diag.Allow}}, load(t, src))
	assert.Empty(t, report.Diagnostics)
	assert.Equal(t, diag.Clean, report.Disposition)
}

func TestPanicNilSkipEface(t *testing.T) {
	const src = "package example\n\nfunc f() {\n\tpanic(interface{}(nil))\n}\n"
	report := run(t, "panic-nil-skip-eface = true", nil, load(t, src))
	assert.Empty(t, report.Filter("panicNil"))
	report = run(t, "", nil, load(t, src))
	assert.Len(t, report.Filter("panicNil"), 1)
}
