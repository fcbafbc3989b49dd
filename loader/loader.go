// Package loader turns Go packages into units the engine can run over.
package loader

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-toolsmith/pkgload"
	"golang.org/x/tools/go/packages"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/version"
)

// Config controls which packages and files are loaded.
type Config struct {
	// Dir is the directory patterns are resolved in.
	// Empty means the current directory.
	Dir string

	// Tests enables loading of test packages.
	// When set, a package with tests is analyzed as its test variant.
	Tests bool

	// Generated keeps generated files.
	// By default files with the standard "Code generated" header are skipped.
	Generated bool
}

// Load loads packages matched by patterns.
//
// Packages that failed to load make Load return an error that lists
// all problems; the engine never runs over ill-typed code.
func Load(ctx context.Context, cfg Config, patterns ...string) ([]*lintengine.Unit, error) {
	pcfg := &packages.Config{
		Context: ctx,
		Dir:     cfg.Dir,
		Tests:   cfg.Tests,
		Mode:    packages.LoadSyntax | packages.NeedModule,
	}
	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %s", strings.Join(patterns, " "))
	}

	var selected []*packages.Package
	pkgload.VisitUnits(pkgs, func(u *pkgload.Unit) {
		if u.ExternalTest != nil {
			selected = append(selected, u.ExternalTest)
		}
		switch {
		case u.Test != nil:
			selected = append(selected, u.Test)
		case u.Base != nil:
			selected = append(selected, u.Base)
		}
	})

	var errs []error
	units := make([]*lintengine.Unit, 0, len(selected))
	for _, pkg := range selected {
		if len(pkg.Errors) != 0 {
			for _, e := range pkg.Errors {
				errs = append(errs, errors.New(e.Error()))
			}
			continue
		}
		units = append(units, newUnit(pkg, cfg.Generated))
	}
	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}
	return units, nil
}

func newUnit(pkg *packages.Package, keepGenerated bool) *lintengine.Unit {
	u := &lintengine.Unit{
		Path:      pkg.PkgPath,
		Fset:      pkg.Fset,
		Pkg:       pkg.Types,
		TypesInfo: pkg.TypesInfo,
	}
	if pkg.Module != nil && pkg.Module.GoVersion != "" {
		// A malformed go directive is the compiler's problem, not ours.
		u.GoVersion, _ = version.Parse(pkg.Module.GoVersion)
	}
	for _, f := range pkg.Syntax {
		if !keepGenerated && ast.IsGenerated(f) {
			continue
		}
		u.Files = append(u.Files, f)
	}
	return u
}

// FromSource parses and type-checks a single-file package.
// Imports are resolved from source, so only the standard library
// and GOPATH packages are reachable.
func FromSource(filename string, src []byte) (*lintengine.Unit, error) {
	return FromFiles(map[string][]byte{filename: src})
}

// FromFiles is like FromSource, but for a package of several files.
// Files are processed in filename order.
func FromFiles(files map[string][]byte) (*lintengine.Unit, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	fset := token.NewFileSet()
	var syntax []*ast.File
	for _, name := range names {
		f, err := parser.ParseFile(fset, name, files[name], parser.ParseComments)
		if err != nil {
			return nil, err
		}
		syntax = append(syntax, f)
	}
	if len(syntax) == 0 {
		return nil, errors.New("no files")
	}

	info := lintengine.NewTypesInfo()
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkgPath := syntax[0].Name.Name
	pkg, err := conf.Check(pkgPath, fset, syntax, info)
	if err != nil {
		return nil, fmt.Errorf("type-check %s: %w", filepath.Dir(names[0]), err)
	}
	return &lintengine.Unit{
		Path:      pkgPath,
		Fset:      fset,
		Files:     syntax,
		Pkg:       pkg,
		TypesInfo: info,
	}, nil
}
