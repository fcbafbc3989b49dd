package lintengine

import (
	"go/ast"

	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/version"
)

// CheckInfo describes a check.
type CheckInfo struct {
	// Name is a unique camelCase check identifier, like "panicNil".
	Name string

	Category Category

	// Level is the check default level.
	// If unset, the category default is used.
	Level diag.Level

	// Kinds lists node kinds the check wants to visit.
	// Must not be empty.
	Kinds []NodeKind

	// MinVersion is the oldest toolchain version the check suggestions
	// are valid for. Projects with older minimum supported version
	// never see this check firing. Zero value disables the gating.
	MinVersion version.Version

	// Params declares settings keys the check reads from Pass.Config.
	Params CheckParams

	// Summary is a short one sentence description.
	// Should not end with a period.
	Summary string

	// Details extends summary with additional info. Optional.
	Details string

	// Before is a code snippet of code that will violate rule.
	Before string

	// After is a code snippet of fixed code that complies to the rule.
	After string

	// Note is an optional caution message or advice.
	Note string
}

// DefaultLevel returns the level used when no override applies.
func (info *CheckInfo) DefaultLevel() diag.Level {
	if info.Level.IsSet() {
		return info.Level
	}
	return info.Category.DefaultLevel()
}

// Checker implements check logic.
//
// A checker value is shared by all runs and must not keep run-local state
// in its fields; use RunState instead. Embed CheckBase to get no-op
// implementations of the hooks you don't need.
//
// Checker signals unexpected errors with panic. The engine recovers it,
// reports a check fault and disables the check for the rest of the run.
type Checker interface {
	// BeginRun is called once per run before any node is visited.
	BeginRun(p *Pass)

	// Visit is called for every node of a kind listed in CheckInfo.Kinds,
	// before its children are visited.
	Visit(p *Pass, n ast.Node)

	// Leave is called for the same nodes after their children are visited.
	Leave(p *Pass, n ast.Node)

	// EndRun is called once per run after all nodes are visited.
	EndRun(p *Pass)
}

// VisitFunc adapts a plain function into a Checker.
type VisitFunc func(p *Pass, n ast.Node)

func (fn VisitFunc) BeginRun(p *Pass)          {}
func (fn VisitFunc) Visit(p *Pass, n ast.Node) { fn(p, n) }
func (fn VisitFunc) Leave(p *Pass, n ast.Node) {}
func (fn VisitFunc) EndRun(p *Pass)            {}

// Check is a registered check.
type Check struct {
	Info *CheckInfo

	checker Checker

	// index is the registration order.
	index int
}

// Name returns the check name.
func (c *Check) Name() string { return c.Info.Name }
