package lintengine

import (
	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/version"
)

// LevelResolver computes effective check levels.
//
// Resolution is a pure function of the check, the scope stack at the
// location and the resolver layers, most specific first:
//
//  1. scope directives, innermost frame first;
//  2. command-line overrides;
//  3. the check default level;
//  4. the category default level.
//
// Inside one layer a check name beats its category name and a later
// override beats an earlier one. Forbid from any layer wins over all
// other overrides. A check whose MinVersion is newer than the effective
// minimum supported version always resolves to Allow.
type LevelResolver struct {
	cli  []Override
	msrv version.Version
}

// NewLevelResolver returns a resolver with cli overrides layer and
// a project-wide minimum supported version.
func NewLevelResolver(cli []Override, msrv version.Version) *LevelResolver {
	return &LevelResolver{
		cli:  append([]Override(nil), cli...),
		msrv: msrv,
	}
}

// MSRV returns the minimum supported version in effect for scopes.
func (r *LevelResolver) MSRV(scopes []Frame) version.Version {
	for i := len(scopes) - 1; i >= 0; i-- {
		if !scopes[i].MSRV.IsZero() {
			return scopes[i].MSRV
		}
	}
	return r.msrv
}

// Resolve returns the level of the check described by info at the
// location described by scopes (outermost frame first).
func (r *LevelResolver) Resolve(info *CheckInfo, scopes []Frame) diag.Level {
	if !r.MSRV(scopes).Meets(info.MinVersion) {
		return diag.Allow
	}
	if r.forbidden(info, scopes) {
		return diag.Forbid
	}
	for i := len(scopes) - 1; i >= 0; i-- {
		if lvl, ok := matchOverride(info, scopes[i].Overrides); ok {
			return lvl
		}
	}
	if lvl, ok := matchOverride(info, r.cli); ok {
		return lvl
	}
	return info.DefaultLevel()
}

func (r *LevelResolver) forbidden(info *CheckInfo, scopes []Frame) bool {
	if info.DefaultLevel() == diag.Forbid {
		return true
	}
	if hasForbid(info, r.cli) {
		return true
	}
	for _, f := range scopes {
		if hasForbid(info, f.Overrides) {
			return true
		}
	}
	return false
}

func hasForbid(info *CheckInfo, list []Override) bool {
	category := info.Category.String()
	for _, o := range list {
		if o.Level == diag.Forbid && (o.Name == info.Name || o.Name == category) {
			return true
		}
	}
	return false
}

func matchOverride(info *CheckInfo, list []Override) (diag.Level, bool) {
	var byCheck, byCategory diag.Level
	category := info.Category.String()
	for _, o := range list {
		switch o.Name {
		case info.Name:
			byCheck = o.Level
		case category:
			byCategory = o.Level
		}
	}
	if byCheck.IsSet() {
		return byCheck, true
	}
	if byCategory.IsSet() {
		return byCategory, true
	}
	return 0, false
}
