package lintengine

import (
	"fmt"
	"go/ast"

	"github.com/go-lintpack/lintengine/diag"
)

// DiagnosticBuilder accumulates a diagnostic before it's emitted.
//
// A nil builder is valid: it's what Pass.Diag returns for allowed
// checks, and every method does nothing on it.
type DiagnosticBuilder struct {
	pass    *Pass
	diag    diag.Diagnostic
	lazy    []func() diag.Suggestion
	emitted bool
}

// Messagef sets the diagnostic message.
// Nodes passed as args are printed as source code.
func (b *DiagnosticBuilder) Messagef(format string, args ...interface{}) *DiagnosticBuilder {
	if b == nil {
		return nil
	}
	b.diag.Message = b.pass.printer.Sprintf(format, args...)
	return b
}

// Label adds a secondary span of n with text.
func (b *DiagnosticBuilder) Label(n ast.Node, text string) *DiagnosticBuilder {
	if b == nil {
		return nil
	}
	return b.LabelSpan(b.pass.Span(n), text)
}

// LabelSpan adds a secondary span with text.
func (b *DiagnosticBuilder) LabelSpan(sp diag.Span, text string) *DiagnosticBuilder {
	if b == nil {
		return nil
	}
	b.diag.Secondary = append(b.diag.Secondary, diag.Label{Span: sp, Text: text})
	return b
}

// Note appends a text-only note.
func (b *DiagnosticBuilder) Note(format string, args ...interface{}) *DiagnosticBuilder {
	if b == nil {
		return nil
	}
	b.diag.Notes = append(b.diag.Notes, b.pass.printer.Sprintf(format, args...))
	return b
}

// Suggest adds a suggestion made of edits.
func (b *DiagnosticBuilder) Suggest(message string, applicability diag.Applicability, edits ...diag.Edit) *DiagnosticBuilder {
	if b == nil {
		return nil
	}
	b.lazy = append(b.lazy, func() diag.Suggestion {
		return diag.Suggestion{
			Message:       message,
			Edits:         edits,
			Applicability: applicability,
		}
	})
	return b
}

// SuggestFunc adds a suggestion computed by fn.
// fn is only called if the diagnostic is emitted.
func (b *DiagnosticBuilder) SuggestFunc(fn func() diag.Suggestion) *DiagnosticBuilder {
	if b == nil {
		return nil
	}
	b.lazy = append(b.lazy, fn)
	return b
}

// Emit hands the diagnostic to the run sink. Only the first call has effect.
//
// Overlapping edits among the diagnostic suggestions are a check bug:
// the suggestions are dropped and a contract violation is reported
// next to the finding.
func (b *DiagnosticBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	r := b.pass.run

	if b.diag.Message == "" {
		r.contractViolation(b.pass, b.diag.Primary, "diagnostic has no message")
		b.diag.Message = b.pass.check.Info.Summary
	}

	for _, fn := range b.lazy {
		s := fn()
		if len(s.Edits) == 0 {
			r.contractViolation(b.pass, b.diag.Primary,
				fmt.Sprintf("suggestion %q has no edits", s.Message))
			continue
		}
		b.diag.Suggestions = append(b.diag.Suggestions, s)
	}
	b.lazy = nil

	if err := diag.CheckOverlaps(b.diag.Suggestions); err != nil {
		r.contractViolation(b.pass, b.diag.Primary, "overlapping suggestion edits: "+err.Error())
		b.diag.Suggestions = nil
	}

	r.collect(b.diag)
}

// Diagnostic returns the accumulated diagnostic without emitting it.
func (b *DiagnosticBuilder) Diagnostic() diag.Diagnostic {
	if b == nil {
		return diag.Diagnostic{}
	}
	return b.diag
}
