// Package linttest runs golden tests for lint checks.
//
// Every check has a testdata/<checkName> directory with a Go package.
// Expected diagnostics are written as "/// message" comments
// right above the line they're reported at; "/// [deny] message"
// also pins the level. An optional lint.toml
// in the same directory configures the run.
package linttest

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/fix"
	"github.com/go-lintpack/lintengine/loader"
)

// TestChecks runs golden tests over all checks of reg.
//
// Checks that are allowed by default are enabled at warn level.
func TestChecks(t *testing.T, reg *lintengine.Registry) {
	for _, c := range reg.Checks() {
		t.Run(c.Name(), func(t *testing.T) {
			if testing.CoverMode() == "" {
				t.Parallel()
			}
			RunCheck(t, reg, c.Name(), filepath.Join("testdata", c.Name()))
		})
	}
}

// RunCheck runs golden tests of check name over the package in dir.
//
// After matching diagnostics, machine-applicable suggestions are applied
// and the check is run again over the result: a fixed location must not
// be reported again. If a "<file>.fixed" file exists next to a source
// file, the fixed output must match it.
func RunCheck(t *testing.T, reg *lintengine.Registry, name, dir string) {
	t.Helper()

	sources := readPackage(t, dir)
	engine := newEngine(t, reg, name, dir)
	report := runOnce(t, engine, name, sources)

	byFile := make(map[string]*expectations, len(sources))
	for _, filename := range sortedKeys(sources) {
		exp, err := parseExpectations(filename, sources[filename])
		if err != nil {
			t.Fatalf("parse expectations: %v", err)
		}
		byFile[filename] = exp
	}
	for _, d := range report {
		exp := byFile[d.Primary.File]
		if exp == nil {
			t.Errorf("%s: reported outside of test files: %s", d.Primary, d.Message)
			continue
		}
		if err := exp.match(d); err != nil {
			t.Error(err)
		}
	}
	for _, filename := range sortedKeys(sources) {
		for _, e := range byFile[filename].unmatched() {
			t.Errorf("%s:%d: unmatched `%s`", filename, e.line, e)
		}
	}

	checkFixes(t, engine, name, sources, report)
}

func checkFixes(t *testing.T, engine *lintengine.Engine, name string, sources map[string][]byte, report []diag.Diagnostic) {
	t.Helper()

	result, err := fix.Apply(report, func(filename string) ([]byte, error) {
		return sources[filename], nil
	}, fix.Options{})
	if errors.Is(err, fix.ErrNoFixes) {
		return
	}
	if err != nil {
		t.Fatalf("apply fixes: %v", err)
	}

	for filename, data := range result.Files {
		want, err := os.ReadFile(filename + ".fixed")
		if err != nil {
			continue
		}
		if !bytes.Equal(want, data) {
			t.Errorf("%s: fixed output mismatch:\nwant:\n%s\nhave:\n%s", filename, want, data)
		}
	}

	fixed := make(map[string][]byte, len(sources))
	for filename, data := range sources {
		fixed[filename] = data
	}
	for filename, data := range result.Files {
		fixed[filename] = data
	}
	again := runOnce(t, engine, name, fixed)
	before := make(map[diagKey]bool)
	for _, d := range report {
		if d.HasFix() {
			before[keyOf(d)] = true
		}
	}
	for _, d := range again {
		if before[keyOf(d)] {
			t.Errorf("%s: reported again after its fix was applied: %s", d.Primary, d.Message)
		}
	}
}

type diagKey struct {
	span    diag.Span
	message string
}

func keyOf(d diag.Diagnostic) diagKey {
	return diagKey{span: d.Primary, message: d.Message}
}

func newEngine(t *testing.T, reg *lintengine.Registry, name, dir string) *lintengine.Engine {
	t.Helper()

	c := reg.Lookup(name)
	if c == nil {
		t.Fatalf("check %s is not registered", name)
	}
	cfg, err := reg.LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	var overrides []lintengine.Override
	if c.Info.DefaultLevel() == diag.Allow {
		overrides = append(overrides, lintengine.Override{Name: name, Level: diag.Warn})
	}
	engine, err := lintengine.NewEngine(reg, lintengine.EngineOptions{
		Config:    cfg,
		Overrides: overrides,
		Logger:    lintengine.Discard(),
	})
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	return engine
}

// runOnce returns lint findings of check name.
// Internal faults fail the test.
func runOnce(t *testing.T, engine *lintengine.Engine, name string, sources map[string][]byte) []diag.Diagnostic {
	t.Helper()

	unit, err := loader.FromFiles(sources)
	if err != nil {
		t.Fatalf("load test package: %v", err)
	}
	stripExpectations(unit)
	report, err := engine.Run(unit)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var out []diag.Diagnostic
	for _, d := range report.Filter(name) {
		if d.Kind.IsInternal() {
			t.Errorf("%s: %s", d.Primary, d.Message)
			continue
		}
		out = append(out, d)
	}
	return out
}

func readPackage(t *testing.T, dir string) map[string][]byte {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		t.Fatalf("list test files: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no test files in %s", dir)
	}
	sources := make(map[string][]byte, len(matches))
	for _, filename := range matches {
		if strings.HasSuffix(filename, "_test.go") {
			continue
		}
		data, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("read test file: %v", err)
		}
		sources[filename] = data
	}
	return sources
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
