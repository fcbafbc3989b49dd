// Package fix applies diagnostic suggestions to source files.
package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-lintpack/lintengine/diag"
)

// ErrNoFixes is returned when no suggestion was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Options configures which suggestions are applied.
type Options struct {
	// MaybeIncorrect also applies suggestions that may change
	// program behavior. Suggestions with placeholders are never applied.
	MaybeIncorrect bool
}

// AppliedFix records a suggestion that was applied.
type AppliedFix struct {
	Check     string
	Message   string
	File      string
	EditCount int
}

// SkippedFix records a suggestion that was not applied.
type SkippedFix struct {
	Check   string
	Message string
	Reason  string
}

// Result aggregates applied and skipped suggestions with new file contents.
type Result struct {
	Applied []AppliedFix
	Skipped []SkippedFix

	// Files maps changed file names to their fixed contents.
	Files map[string][]byte
}

// ReadFunc returns the contents of a file.
type ReadFunc func(filename string) ([]byte, error)

// Apply applies the first applicable suggestion of every diagnostic.
//
// Spans are interpreted against the contents returned by read, so all
// diagnostics must come from runs over the same file versions.
// A suggestion whose edits overlap edits already accepted for another
// diagnostic is skipped: the earlier diagnostic, in report order, wins.
func Apply(diagnostics []diag.Diagnostic, read ReadFunc, opts Options) (*Result, error) {
	result := &Result{Files: make(map[string][]byte)}
	accepted := make(map[string][]diag.Edit)

	for _, d := range diagnostics {
		if d.Kind.IsInternal() {
			continue
		}
		s, reason := pick(d, opts)
		if s == nil {
			if reason != "" {
				result.Skipped = append(result.Skipped, SkippedFix{d.Check, d.Message, reason})
			}
			continue
		}
		if reason := conflict(accepted, s.Edits); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{d.Check, d.Message, reason})
			continue
		}
		for _, e := range s.Edits {
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		result.Applied = append(result.Applied, AppliedFix{
			Check:     d.Check,
			Message:   s.Message,
			File:      d.Primary.File,
			EditCount: len(s.Edits),
		})
	}

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	files := make([]string, 0, len(accepted))
	for f := range accepted {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, filename := range files {
		src, err := read(filename)
		if err != nil {
			return result, fmt.Errorf("read %s: %w", filename, err)
		}
		fixed, err := applyEdits(src, accepted[filename])
		if err != nil {
			return result, fmt.Errorf("%s: %w", filename, err)
		}
		result.Files[filename] = fixed
	}
	return result, nil
}

func pick(d diag.Diagnostic, opts Options) (*diag.Suggestion, string) {
	var reason string
	for i := range d.Suggestions {
		s := &d.Suggestions[i]
		switch {
		case len(s.Edits) == 0:
			reason = "suggestion has no edits"
		case s.Applicability == diag.MachineApplicable:
			return s, ""
		case s.Applicability == diag.MaybeIncorrect && opts.MaybeIncorrect:
			return s, ""
		default:
			reason = fmt.Sprintf("applicability is %s", s.Applicability)
		}
	}
	return nil, reason
}

func conflict(accepted map[string][]diag.Edit, edits []diag.Edit) string {
	for _, e := range edits {
		for _, prev := range accepted[e.Span.File] {
			if e.Span.Overlaps(prev.Span) {
				return fmt.Sprintf("overlaps a fix at %s", prev.Span)
			}
		}
	}
	return ""
}

// applyEdits applies non-overlapping edits to src.
func applyEdits(src []byte, edits []diag.Edit) ([]byte, error) {
	sorted := append([]diag.Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Span, sorted[j].Span
		if a.Start.Offset != b.Start.Offset {
			return a.Start.Offset < b.Start.Offset
		}
		return a.Empty() && !b.Empty()
	})

	out := make([]byte, 0, len(src))
	last := 0
	for _, e := range sorted {
		start, end := e.Span.Start.Offset, e.Span.End.Offset
		if start < last || end < start || end > len(src) {
			return nil, fmt.Errorf("edit at %s is out of range", e.Span)
		}
		out = append(out, src[last:start]...)
		out = append(out, e.NewText...)
		last = end
	}
	out = append(out, src[last:]...)
	return out, nil
}

// WriteFiles stores fixed contents, keeping file permissions.
func WriteFiles(r *Result) error {
	names := make([]string, 0, len(r.Files))
	for name := range r.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mode := os.FileMode(0o644)
		if info, err := os.Stat(name); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(name, r.Files[name], mode); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
