package lintengine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/version"
)

func TestResolveLevel(t *testing.T) {
	styleCheck := &CheckInfo{Name: "styleCheck", Category: Style}
	denyCheck := &CheckInfo{Name: "denyCheck", Category: Style, Level: diag.Deny}
	gated := &CheckInfo{Name: "gated", Category: Correctness, MinVersion: version.New(1, 22, 0)}

	frame := func(overrides ...Override) Frame {
		return Frame{Overrides: overrides}
	}
	allow := func(name string) Override { return Override{Name: name, Level: diag.Allow} }
	warn := func(name string) Override { return Override{Name: name, Level: diag.Warn} }
	deny := func(name string) Override { return Override{Name: name, Level: diag.Deny} }
	forbid := func(name string) Override { return Override{Name: name, Level: diag.Forbid} }

	tests := []struct {
		name   string
		info   *CheckInfo
		cli    []Override
		msrv   version.Version
		scopes []Frame
		want   diag.Level
	}{
		{"category default", styleCheck, nil, version.Version{}, nil, diag.Warn},
		{"check default", denyCheck, nil, version.Version{}, nil, diag.Deny},

		{"cli category", styleCheck, []Override{allow("style")}, version.Version{}, nil, diag.Allow},
		{"cli check beats category", styleCheck,
			[]Override{deny("styleCheck"), allow("style")}, version.Version{}, nil, diag.Deny},
		{"cli last wins", styleCheck,
			[]Override{deny("styleCheck"), allow("styleCheck")}, version.Version{}, nil, diag.Allow},

		{"scope beats cli", styleCheck, []Override{deny("styleCheck")}, version.Version{},
			[]Frame{frame(allow("styleCheck"))}, diag.Allow},
		{"outer allow inner deny", styleCheck, nil, version.Version{},
			[]Frame{frame(allow("styleCheck")), frame(deny("styleCheck"))}, diag.Deny},
		{"outer deny inner allow", styleCheck, nil, version.Version{},
			[]Frame{frame(deny("styleCheck")), frame(allow("styleCheck"))}, diag.Allow},
		{"outer category inner check", styleCheck, nil, version.Version{},
			[]Frame{frame(allow("style")), frame(warn("styleCheck"))}, diag.Warn},
		{"inner category beats outer check", styleCheck, nil, version.Version{},
			[]Frame{frame(deny("styleCheck")), frame(allow("style"))}, diag.Allow},
		{"unrelated inner frame", styleCheck, nil, version.Version{},
			[]Frame{frame(deny("styleCheck")), frame(allow("otherCheck"))}, diag.Deny},

		{"forbid in cli", styleCheck, []Override{forbid("style")}, version.Version{},
			[]Frame{frame(allow("styleCheck"))}, diag.Forbid},
		{"forbid in outer frame", styleCheck, nil, version.Version{},
			[]Frame{frame(forbid("styleCheck")), frame(allow("styleCheck"))}, diag.Forbid},

		{"msrv unset", gated, nil, version.Version{}, nil, diag.Deny},
		{"msrv too old", gated, []Override{forbid("gated")}, version.New(1, 21, 0), nil, diag.Allow},
		{"msrv equal", gated, nil, version.New(1, 22, 0), nil, diag.Deny},
		{"msrv frame", gated, nil, version.New(1, 21, 0),
			[]Frame{{MSRV: version.New(1, 23, 0)}}, diag.Deny},
		{"msrv inner frame lowers", gated, nil, version.New(1, 23, 0),
			[]Frame{{MSRV: version.New(1, 22, 0)}, {MSRV: version.New(1, 18, 0)}}, diag.Allow},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := NewLevelResolver(test.cli, test.msrv)
			assert.Equal(t, test.want, r.Resolve(test.info, test.scopes))
		})
	}
}

func TestResolverMSRV(t *testing.T) {
	r := NewLevelResolver(nil, version.New(1, 20, 0))
	assert.Equal(t, version.New(1, 20, 0), r.MSRV(nil))
	assert.Equal(t, version.New(1, 21, 0), r.MSRV([]Frame{
		{MSRV: version.New(1, 21, 0)},
		{},
	}))
}
