package render

import (
	"encoding/json"
	"io"

	"github.com/go-lintpack/lintengine/diag"
)

// JSON writes reports as a single JSON document.
type JSON struct {
	Indent bool
}

type jsonOutput struct {
	Disposition diag.Disposition `json:"disposition"`
	Reports     []*diag.Report   `json:"reports"`
}

// Render writes reports to w.
func (r *JSON) Render(w io.Writer, reports ...*diag.Report) error {
	out := jsonOutput{Reports: reports}
	for _, report := range reports {
		out.Disposition = diag.Worst(out.Disposition, report.Disposition)
		if report.Diagnostics == nil {
			report.Diagnostics = []diag.Diagnostic{}
		}
	}
	if out.Reports == nil {
		out.Reports = []*diag.Report{}
	}
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

// Renderer is implemented by Text and JSON.
type Renderer interface {
	Render(w io.Writer, reports ...*diag.Report) error
}
