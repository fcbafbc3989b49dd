package lintengine

import "go/ast"

// CheckBase is a type to be embedded into every checker type.
//
// It provides no-op implementations for all Checker hooks,
// so the embedding type only defines the ones it needs.
type CheckBase struct{}

// BeginRun does nothing by default.
//
// Checkers that need to prepare run-local data (e.g. resolve configured
// names into objects) should define a method with the same signature.
func (CheckBase) BeginRun(p *Pass) {}

// Visit does nothing by default.
func (CheckBase) Visit(p *Pass, n ast.Node) {}

// Leave does nothing by default.
func (CheckBase) Leave(p *Pass, n ast.Node) {}

// EndRun does nothing by default.
func (CheckBase) EndRun(p *Pass) {}
