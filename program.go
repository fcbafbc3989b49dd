package lintengine

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/go-lintpack/lintengine/version"
)

// Unit is a type-checked package handed to the engine by a front-end.
//
// The engine treats a unit as read-only: it never re-parses
// or re-type-checks anything.
type Unit struct {
	// Path identifies the unit in reports, usually the package path.
	Path string

	Fset  *token.FileSet
	Files []*ast.File

	Pkg       *types.Package
	TypesInfo *types.Info

	// GoVersion is the language version declared by the module
	// that contains the unit, if known. It's used as the minimum
	// supported version when the settings file doesn't set one.
	GoVersion version.Version
}

// NewTypesInfo returns types.Info with every map a check may consult.
func NewTypesInfo() *types.Info {
	return &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Instances:  make(map[*ast.Ident]types.Instance),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}
}
