package diag

import "encoding/json"

// Disposition summarizes a run outcome for the caller.
type Disposition int

const (
	// Clean means nothing was reported.
	Clean Disposition = iota
	// HasWarnings means only non-failing diagnostics were reported.
	HasWarnings
	// HasErrors means at least one Deny or Forbid diagnostic was reported.
	HasErrors
)

func (d Disposition) String() string {
	switch d {
	case Clean:
		return "clean"
	case HasWarnings:
		return "warnings"
	case HasErrors:
		return "errors"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the disposition as a string.
func (d Disposition) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Failed reports whether the caller should treat the run as failed.
func (d Disposition) Failed() bool {
	return d == HasErrors
}

// Worst returns the most severe of the given dispositions.
func Worst(ds ...Disposition) Disposition {
	worst := Clean
	for _, d := range ds {
		if d > worst {
			worst = d
		}
	}
	return worst
}

// Report is the finalized result of a run.
type Report struct {
	// Unit names the analyzed unit, if the caller set it.
	Unit string `json:"unit,omitempty"`

	// Diagnostics are sorted by source position.
	Diagnostics []Diagnostic `json:"diagnostics"`

	// Counts holds the number of lint findings per level.
	// Levels with no findings are absent.
	Counts map[Level]int `json:"counts"`

	// Faults is the number of internal tool diagnostics.
	Faults int `json:"faults"`

	Disposition Disposition `json:"disposition"`
}

func newReport(items []Diagnostic) *Report {
	r := &Report{
		Diagnostics: items,
		Counts:      make(map[Level]int),
	}
	for _, d := range items {
		if d.Kind.IsInternal() {
			r.Faults++
			continue
		}
		r.Counts[d.Level]++
	}
	switch {
	case r.Counts[Deny]+r.Counts[Forbid] != 0:
		r.Disposition = HasErrors
	case len(items) != 0:
		r.Disposition = HasWarnings
	default:
		r.Disposition = Clean
	}
	return r
}

// Count returns the number of lint findings at lvl.
func (r *Report) Count(lvl Level) int {
	return r.Counts[lvl]
}

// Filter returns diagnostics of a single check, in report order.
func (r *Report) Filter(check string) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Check == check {
			out = append(out, d)
		}
	}
	return out
}
