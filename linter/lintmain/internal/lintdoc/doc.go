// Package lintdoc implements the "doc" sub-command.
package lintdoc

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/linter/lintmain/internal/cmdutil"
)

// Command returns the "doc" sub-command.
//
// Without arguments it lists all checks; with a check name
// it prints the full documentation of that check.
func Command(env *cmdutil.Env) *cobra.Command {
	return &cobra.Command{
		Use:  "doc [check]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printShortDoc(cmd.OutOrStdout(), env.Registry)
			}
			return printDoc(cmd.OutOrStdout(), env.Registry, args[0])
		},
	}
}

func printShortDoc(w io.Writer, reg *lintengine.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range reg.Checks() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			c.Name(), c.Info.Category, c.Info.DefaultLevel(), c.Info.Summary)
	}
	return tw.Flush()
}

var docTemplate = template.Must(template.New("doc").Parse(`{{.Check.Name}} check documentation
Category: {{.Check.Category}}
Default level: {{.Level}}
{{- if not .Check.MinVersion.IsZero }}
Requires: go{{.Check.MinVersion}}
{{- end }}

{{.Check.Summary}}.
{{ if .Check.Details }}
{{.Check.Details}}
{{ end }}
{{- if .Check.Before }}
Non-compliant code:
{{.Check.Before}}

Compliant code:
{{.Check.After}}
{{- end }}
{{- if .Check.Note }}

{{.Check.Note}}
{{- end }}
{{- if .Params }}

Check settings:
{{- range .Params }}
  {{.Key}} ({{.Kind}})
    	{{.Usage}} (default {{.Default}})
{{- end }}
{{- end }}
`))

type paramDoc struct {
	Key     string
	Kind    string
	Usage   string
	Default interface{}
}

func printDoc(w io.Writer, reg *lintengine.Registry, name string) error {
	c := reg.Lookup(name)
	if c == nil {
		return fmt.Errorf("check with name %q not found", name)
	}

	var data struct {
		Check  *lintengine.CheckInfo
		Level  string
		Params []paramDoc
	}
	data.Check = c.Info
	data.Level = c.Info.DefaultLevel().String()
	for key, p := range c.Info.Params {
		data.Params = append(data.Params, paramDoc{
			Key:     key,
			Kind:    p.Kind().String(),
			Usage:   p.Usage,
			Default: p.Value,
		})
	}
	sort.Slice(data.Params, func(i, j int) bool {
		return data.Params[i].Key < data.Params[j].Key
	})

	if err := docTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("executing check doc template: %w", err)
	}
	return nil
}
