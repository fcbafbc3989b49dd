package lintengine

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
	"unicode"

	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/version"
)

// directivePrefix starts a scope override comment:
//
//	//lint:allow name[,name...] [-- reason]
//	//lint:allow name name...
//	//lint:warn name[,name...]
//	//lint:deny name[,name...]
//	//lint:forbid name[,name...]
//	//lint:msrv 1.20
//
// Names are check or category names. A directive applies to the node
// its comment group is attached to and to the whole subtree of that node.
const directivePrefix = "//lint:"

// Override sets a level for a check or a whole category.
type Override struct {
	// Name is a check name or a category name.
	Name  string
	Level diag.Level
}

func (o Override) String() string {
	return o.Level.String() + "(" + o.Name + ")"
}

// ParseOverride builds an override from level and name strings.
func ParseOverride(level, name string) (Override, error) {
	lvl, err := diag.ParseLevel(level)
	if err != nil {
		return Override{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Override{}, fmt.Errorf("%s: empty check name", level)
	}
	return Override{Name: name, Level: lvl}, nil
}

// Frame is an entry of the walker scope stack.
type Frame struct {
	// Node is the node that introduced the frame.
	Node ast.Node

	// Overrides are level directives attached to Node, in source order.
	Overrides []Override

	// MSRV overrides the minimum supported version for the subtree.
	// Zero value means "inherit".
	MSRV version.Version
}

type directiveProblem struct {
	pos token.Pos
	msg string
}

// parseDirectives extracts scope overrides from comment groups.
// Malformed directives are returned as problems and otherwise ignored.
func parseDirectives(groups []*ast.CommentGroup) (overrides []Override, msrv version.Version, problems []directiveProblem) {
	for _, g := range groups {
		for _, c := range g.List {
			if !strings.HasPrefix(c.Text, directivePrefix) {
				continue
			}
			body := strings.TrimPrefix(c.Text, directivePrefix)
			if i := strings.Index(body, " -- "); i >= 0 {
				body = body[:i]
			}
			fields := strings.FieldsFunc(body, isNameSeparator)
			if len(fields) < 2 {
				problems = append(problems, directiveProblem{c.Pos(), fmt.Sprintf("malformed directive %q", c.Text)})
				continue
			}
			verb, args := fields[0], fields[1:]

			if verb == "msrv" {
				if len(args) != 1 {
					problems = append(problems, directiveProblem{c.Pos(), fmt.Sprintf("msrv directive wants one version, found %d", len(args))})
					continue
				}
				v, err := version.Parse(args[0])
				if err != nil {
					problems = append(problems, directiveProblem{c.Pos(), err.Error()})
					continue
				}
				msrv = v
				continue
			}

			lvl, err := diag.ParseLevel(verb)
			if err != nil {
				problems = append(problems, directiveProblem{c.Pos(), fmt.Sprintf("unknown directive %q", verb)})
				continue
			}
			for _, name := range args {
				overrides = append(overrides, Override{Name: name, Level: lvl})
			}
		}
	}
	return overrides, msrv, problems
}

// isNameSeparator reports whether r separates names in a directive list.
func isNameSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}
