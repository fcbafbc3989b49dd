package diag

import (
	"encoding/json"
	"fmt"
)

// Kind separates lint findings from faults of the tool itself.
type Kind int

const (
	// KindLint is a normal check finding.
	KindLint Kind = iota
	// KindCheckFault is reported when a check failed internally.
	KindCheckFault
	// KindContractViolation is reported when a check misused
	// the diagnostic builder API.
	KindContractViolation
)

func (k Kind) String() string {
	switch k {
	case KindLint:
		return "lint"
	case KindCheckFault:
		return "check-fault"
	case KindContractViolation:
		return "contract-violation"
	default:
		return "unknown"
	}
}

// IsInternal reports whether k describes a tool fault.
func (k Kind) IsInternal() bool {
	return k != KindLint
}

// MarshalJSON serializes the kind as a string.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Label is a secondary span with its own text.
type Label struct {
	Span Span   `json:"span"`
	Text string `json:"text"`
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	// Check is the name of the check that produced this diagnostic.
	Check string `json:"check"`

	// Category is the category name of that check.
	Category string `json:"category"`

	// Level is the severity resolved at the emission point.
	Level Level `json:"level"`

	Kind Kind `json:"kind"`

	// Primary is the canonical location of the problem.
	Primary Span `json:"primary"`

	Message string `json:"message"`

	// Secondary spans add context like "first operand is here".
	Secondary []Label `json:"secondary,omitempty"`

	// Notes are trailing text-only remarks.
	Notes []string `json:"notes,omitempty"`

	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// HasFix reports whether d has at least one machine-applicable suggestion.
func (d *Diagnostic) HasFix() bool {
	for _, s := range d.Suggestions {
		if s.Applicability == MachineApplicable && len(s.Edits) != 0 {
			return true
		}
	}
	return false
}

// String returns the diagnostic in go vet style.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s (%s)", d.Primary, d.Level, d.Message, d.Check)
}
