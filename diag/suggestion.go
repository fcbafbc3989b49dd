package diag

import (
	"encoding/json"
	"fmt"
)

// Applicability tells how confident a suggestion producer is.
type Applicability int

const (
	// Unspecified applicability: the producer didn't say.
	Unspecified Applicability = iota
	// MachineApplicable suggestions are safe to apply without review.
	MachineApplicable
	// MaybeIncorrect suggestions may change behavior and need review.
	MaybeIncorrect
	// HasPlaceholders suggestions contain text a human must fill in.
	HasPlaceholders
)

func (a Applicability) String() string {
	switch a {
	case MachineApplicable:
		return "machine-applicable"
	case MaybeIncorrect:
		return "maybe-incorrect"
	case HasPlaceholders:
		return "has-placeholders"
	default:
		return "unspecified"
	}
}

// MarshalJSON serializes the applicability as a string.
func (a Applicability) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// Edit replaces Span of the original source with NewText.
type Edit struct {
	Span    Span   `json:"span"`
	NewText string `json:"newText"`
}

// Suggestion is an ordered set of edits that resolves a diagnostic
// when applied atomically to the original source.
type Suggestion struct {
	Message       string        `json:"message"`
	Edits         []Edit        `json:"edits"`
	Applicability Applicability `json:"applicability"`
}

// OverlapError describes two edits that can't be applied together.
type OverlapError struct {
	A, B Edit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("edit at %s overlaps edit at %s", e.A.Span, e.B.Span)
}

// CheckOverlaps returns *OverlapError for the first pair of
// overlapping edits found in suggestions, in their given order.
func CheckOverlaps(suggestions []Suggestion) error {
	var edits []Edit
	for _, s := range suggestions {
		edits = append(edits, s.Edits...)
	}
	for i := range edits {
		for j := i + 1; j < len(edits); j++ {
			if edits[i].Span.Overlaps(edits[j].Span) {
				return &OverlapError{A: edits[i], B: edits[j]}
			}
		}
	}
	return nil
}
