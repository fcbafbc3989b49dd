package diag

import (
	"fmt"
	"go/token"
)

// Pos is a resolved source position.
type Pos struct {
	Offset int `json:"offset"` // 0-based byte offset
	Line   int `json:"line"`   // 1-based
	Column int `json:"column"` // 1-based, in bytes
}

// Span is a half-open byte range [Start, End) inside File.
type Span struct {
	File  string `json:"file"`
	Start Pos    `json:"start"`
	End   Pos    `json:"end"`
}

// SpanOf converts a token range into a Span.
// An invalid end is replaced by the start position.
func SpanOf(fset *token.FileSet, from, to token.Pos) Span {
	start := fset.Position(from)
	end := start
	if to.IsValid() && to >= from {
		end = fset.Position(to)
	}
	return Span{
		File:  start.Filename,
		Start: Pos{Offset: start.Offset, Line: start.Line, Column: start.Column},
		End:   Pos{Offset: end.Offset, Line: end.Line, Column: end.Column},
	}
}

// IsValid reports whether s points into some file.
func (s Span) IsValid() bool {
	return s.File != "" && s.Start.Line > 0 && s.End.Offset >= s.Start.Offset
}

// Empty reports whether s covers no bytes.
func (s Span) Empty() bool {
	return s.Start.Offset == s.End.Offset
}

// Len returns the span size in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Overlaps reports whether two spans share at least one byte.
// Zero-width spans overlap with a span only if they point strictly
// inside of it; two insertions at the same offset don't overlap.
func (s Span) Overlaps(other Span) bool {
	if s.File != other.File {
		return false
	}
	if s.Empty() && other.Empty() {
		return false
	}
	if s.Empty() {
		return other.Start.Offset < s.Start.Offset && s.Start.Offset < other.End.Offset
	}
	if other.Empty() {
		return s.Start.Offset < other.Start.Offset && other.Start.Offset < s.End.Offset
	}
	return s.Start.Offset < other.End.Offset && other.Start.Offset < s.End.Offset
}

// Before reports whether s should be ordered before other:
// by file, then line, then column, then end offset.
func (s Span) Before(other Span) bool {
	if s.File != other.File {
		return s.File < other.File
	}
	if s.Start.Line != other.Start.Line {
		return s.Start.Line < other.Start.Line
	}
	if s.Start.Column != other.Start.Column {
		return s.Start.Column < other.Start.Column
	}
	return s.End.Offset < other.End.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Start.Line, s.Start.Column)
}
