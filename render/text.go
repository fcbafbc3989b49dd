// Package render formats lint reports for humans and tools.
package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-runewidth"

	"github.com/go-lintpack/lintengine/diag"
)

const tabWidth = 4

// Text formats diagnostics as annotated source snippets:
//
//	warning[emptyInterface]: interface{} can be replaced with any
//	  --> a.go:3:7
//	   |
//	 3 |  var x interface{}
//	   |        ^^^^^^^^^^^
//	   = help: use any: `any`
type Text struct {
	Color ColorMode

	// SourceReader reads file contents. If nil, os.ReadFile is used.
	SourceReader func(filename string) ([]byte, error)

	// Summary appends a "N warnings, M errors" line.
	Summary bool

	sources map[string][]string
}

// Render writes all diagnostics of reports to w.
func (r *Text) Render(w io.Writer, reports ...*diag.Report) error {
	au := newAurora(r.Color, w)
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	var total diag.Report
	total.Counts = make(map[diag.Level]int)
	first := true
	for _, report := range reports {
		for _, d := range report.Diagnostics {
			if !first {
				ew.print("\n")
			}
			first = false
			r.writeDiagnostic(ew, au, d)
		}
		for lvl, n := range report.Counts {
			total.Counts[lvl] += n
		}
		total.Faults += report.Faults
	}
	if r.Summary {
		r.writeSummary(ew, au, &total, first)
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

func (r *Text) writeDiagnostic(ew *errWriter, au aurora.Aurora, d diag.Diagnostic) {
	header, paint := levelStyle(au, d)
	ew.printf("%s%s %s\n", header, au.Bold(":"), au.Bold(d.Message))

	gutter := 0
	if d.Primary.Start.Line > 0 {
		gutter = len(strconv.Itoa(d.Primary.Start.Line))
	}
	for _, l := range d.Secondary {
		if l.Span.File == d.Primary.File {
			gutter = max(gutter, len(strconv.Itoa(l.Span.Start.Line)))
		}
	}
	pad := strings.Repeat(" ", gutter)

	if d.Primary.IsValid() {
		ew.printf("%s %s %s\n", pad, au.Bold(au.Blue("-->")), d.Primary)
		r.writeSnippet(ew, au, pad, d.Primary, paint, "^", "")
	}
	for _, l := range d.Secondary {
		if l.Span.File != d.Primary.File {
			ew.printf("%s %s %s\n", pad, au.Bold(au.Blue(":::")), l.Span)
		}
		r.writeSnippet(ew, au, pad, l.Span, au.Blue, "-", l.Text)
	}
	for _, note := range d.Notes {
		ew.printf("%s %s note: %s\n", pad, au.Bold(au.Blue("=")), note)
	}
	for _, s := range d.Suggestions {
		ew.printf("%s %s help: %s", pad, au.Bold(au.Blue("=")), s.Message)
		if len(s.Edits) == 1 && !strings.Contains(s.Edits[0].NewText, "\n") {
			ew.printf(": `%s`", au.Green(s.Edits[0].NewText))
		}
		ew.printf(" (%s)\n", s.Applicability)
	}
}

type paintFunc func(arg interface{}) aurora.Value

func levelStyle(au aurora.Aurora, d diag.Diagnostic) (aurora.Value, paintFunc) {
	var paint paintFunc
	name := d.Level.String()
	switch {
	case d.Kind == diag.KindCheckFault:
		name, paint = "internal", au.Magenta
	case d.Kind == diag.KindContractViolation:
		name, paint = "contract", au.Magenta
	case d.Level == diag.Deny:
		name, paint = "error", au.Red
	case d.Level == diag.Forbid:
		paint = au.Red
	case d.Level == diag.Warn:
		name, paint = "warning", au.Yellow
	default:
		paint = au.Cyan
	}
	return au.Bold(paint(fmt.Sprintf("%s[%s]", name, d.Check))), paint
}

// writeSnippet prints the first line of sp underlined with mark.
func (r *Text) writeSnippet(ew *errWriter, au aurora.Aurora, pad string, sp diag.Span, paint paintFunc, mark, label string) {
	bar := au.Bold(au.Blue("|"))
	line := r.sourceLine(sp.File, sp.Start.Line)
	if line == "" {
		if label != "" {
			ew.printf("%s %s %s\n", pad, bar, label)
		}
		return
	}

	num := strconv.Itoa(sp.Start.Line)
	ew.printf("%s %s\n", pad, bar)
	numPad := strings.Repeat(" ", max(0, len(pad)-len(num)))
	ew.printf("%s%s %s  %s\n", au.Bold(au.Blue(num)), numPad, bar, expandTabs(line))

	startCol := sp.Start.Column - 1
	if startCol < 0 || startCol > len(line) {
		startCol = 0
	}
	endCol := len(line)
	if sp.End.Line == sp.Start.Line && sp.End.Column-1 <= len(line) {
		endCol = sp.End.Column - 1
	}
	width := displayWidth(line[startCol:max(startCol, endCol)])
	if width == 0 {
		width = 1
	}

	underline := strings.Repeat(mark, width)
	if label != "" {
		underline += " " + label
	}
	ew.printf("%s %s  %s%s", pad, bar, strings.Repeat(" ", displayWidth(line[:startCol])), au.Bold(paint(underline)))
	ew.print("\n")
}

func (r *Text) writeSummary(ew *errWriter, au aurora.Aurora, total *diag.Report, empty bool) {
	warnings := total.Counts[diag.Warn]
	errs := total.Counts[diag.Deny] + total.Counts[diag.Forbid]
	if !empty {
		ew.print("\n")
	}
	var parts []string
	if errs != 0 {
		parts = append(parts, au.Bold(au.Red(plural(errs, "error"))).String())
	}
	if warnings != 0 {
		parts = append(parts, au.Bold(au.Yellow(plural(warnings, "warning"))).String())
	}
	if total.Faults != 0 {
		parts = append(parts, au.Bold(au.Magenta(plural(total.Faults, "internal fault"))).String())
	}
	if len(parts) == 0 {
		ew.print("no issues found\n")
		return
	}
	ew.printf("%s emitted\n", strings.Join(parts, ", "))
}

func plural(n int, what string) string {
	if n == 1 {
		return "1 " + what
	}
	return strconv.Itoa(n) + " " + what + "s"
}

func (r *Text) sourceLine(filename string, line int) string {
	if filename == "" || line <= 0 {
		return ""
	}
	lines, ok := r.sources[filename]
	if !ok {
		read := r.SourceReader
		if read == nil {
			read = os.ReadFile
		}
		data, err := read(filename)
		if err == nil {
			lines = strings.Split(string(bytes.TrimRight(data, "\n")), "\n")
		}
		if r.sources == nil {
			r.sources = make(map[string][]string)
		}
		r.sources[filename] = lines
	}
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth returns the number of terminal cells s occupies.
func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

// errWriter captures the first write error and skips the rest.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}
