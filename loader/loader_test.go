package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-lintpack/lintengine/version"
)

func TestFromSource(t *testing.T) {
	src := `package example

import "strings"

func f(s string) string { return strings.ToUpper(s) }
`
	u, err := FromSource("example.go", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "example", u.Path)
	require.Len(t, u.Files, 1)
	assert.NotNil(t, u.Pkg.Scope().Lookup("f"))
	assert.NotEmpty(t, u.TypesInfo.Uses)
}

func TestFromSourceTypeError(t *testing.T) {
	_, err := FromSource("bad.go", []byte("package bad\n\nvar x int = \"s\"\n"))
	require.Error(t, err)
}

func TestFromFilesOrder(t *testing.T) {
	u, err := FromFiles(map[string][]byte{
		"b.go": []byte("package p\n\nvar B = A\n"),
		"a.go": []byte("package p\n\nvar A = 1\n"),
	})
	require.NoError(t, err)
	require.Len(t, u.Files, 2)
	assert.Equal(t, "a.go", u.Fset.Position(u.Files[0].Pos()).Filename)
}

func TestLoadModule(t *testing.T) {
	if testing.Short() {
		t.Skip("invokes the go command")
	}
	dir := t.TempDir()
	write := func(name, data string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}
	write("go.mod", "module example.com/m\n\ngo 1.21\n")
	write("m.go", "package m\n\nfunc F() int { return 1 }\n")
	write("gen.go", "// Code generated by hand. DO NOT EDIT.\n\npackage m\n\nvar G = 1\n")

	units, err := Load(context.Background(), Config{Dir: dir}, "./...")
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "example.com/m", units[0].Path)
	assert.Equal(t, version.New(1, 21, 0), units[0].GoVersion)
	assert.Len(t, units[0].Files, 1)
}
