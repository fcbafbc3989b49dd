package linttest

import (
	"fmt"
	"go/ast"
	"regexp"
	"sort"
	"strings"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/diag"
)

// expectationRE matches "/// message" and "/// [level] message" lines.
var expectationRE = regexp.MustCompile(`^\s*/// (?:\[(\w+)\] )?(.*)$`)

const expectationPrefix = "/// "

// expectation is a diagnostic a test file wants at a line.
type expectation struct {
	line    int
	level   diag.Level // unset matches any level
	message string
	matched bool
}

func (e *expectation) String() string {
	if e.level.IsSet() {
		return fmt.Sprintf("[%s] %s", e.level, e.message)
	}
	return e.message
}

// expectations holds every expectation of one source file by line.
type expectations struct {
	filename string
	byLine   map[int][]*expectation
}

// parseExpectations collects "///" comments of src.
//
// Consecutive expectation lines attach to the first line after them
// that isn't an expectation. When that line is a comment itself,
// they attach to the line of the first expectation instead, so
// diagnostics reported at comments can be described too.
func parseExpectations(filename string, src []byte) (*expectations, error) {
	exp := &expectations{
		filename: filename,
		byLine:   make(map[int][]*expectation),
	}

	var pending []*expectation
	for i, l := range strings.Split(string(src), "\n") {
		if m := expectationRE.FindStringSubmatch(l); m != nil {
			e := &expectation{message: m[2]}
			if m[1] != "" {
				lvl, err := diag.ParseLevel(m[1])
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %v", filename, i+1, err)
				}
				e.level = lvl
			}
			pending = append(pending, e)
			continue
		}
		if len(pending) == 0 {
			continue
		}
		line := i + 1
		if strings.HasPrefix(strings.TrimSpace(l), "//") {
			line -= len(pending)
		}
		for _, e := range pending {
			e.line = line
		}
		exp.byLine[line] = append(exp.byLine[line], pending...)
		pending = nil
	}
	if len(pending) != 0 {
		return nil, fmt.Errorf("%s: trailing expectations with no code after them", filename)
	}
	return exp, nil
}

// match marks the expectation d satisfies.
// A non-nil error describes why d wasn't expected.
func (exp *expectations) match(d diag.Diagnostic) error {
	line := d.Primary.Start.Line
	for _, e := range exp.byLine[line] {
		if e.message != d.Message {
			continue
		}
		if e.level.IsSet() && e.level != d.Level {
			return fmt.Errorf("%s: reported at %s, want %s: %s", d.Primary, d.Level, e.level, d.Message)
		}
		if e.matched {
			return fmt.Errorf("%s: multiple matches for %s", d.Primary, e)
		}
		e.matched = true
		return nil
	}
	return fmt.Errorf("%s: unexpected diagnostic: %s", d.Primary, d.Message)
}

// unmatched returns expectations no diagnostic matched, ordered by line.
func (exp *expectations) unmatched() []*expectation {
	var out []*expectation
	for _, list := range exp.byLine {
		for _, e := range list {
			if !e.matched {
				out = append(out, e)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].line != out[j].line {
			return out[i].line < out[j].line
		}
		return out[i].message < out[j].message
	})
	return out
}

// stripExpectations replaces "///" comments of u with empty
// single-line comments, so checks that read comments don't see them.
func stripExpectations(u *lintengine.Unit) {
	for _, f := range u.Files {
		stripFile(f)
	}
}

func stripFile(f *ast.File) {
	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if strings.HasPrefix(c.Text, expectationPrefix) {
				c.Text = "//"
			}
		}
	}
}
