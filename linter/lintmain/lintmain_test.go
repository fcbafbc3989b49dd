package lintmain_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/go-lintpack/lintengine/checkers"
	"github.com/go-lintpack/lintengine/linter/lintmain"
	"github.com/go-lintpack/lintengine/linttest"
)

var testConfig = lintmain.Config{Name: "linter", Version: "v1.2.3"}

func run(args ...string) (string, int) {
	var buf bytes.Buffer
	code := lintmain.Main(context.Background(), testConfig, args, &buf, &buf)
	return buf.String(), code
}

func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("runs go list")
	}
	test := linttest.IntegrationTest{
		Main: func(dir string, args []string) (string, int) {
			return run(append(args, "--dir", dir)...)
		},
	}
	test.Run(t)
}

func TestVersion(t *testing.T) {
	out, code := run("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "v1.2.3\n", out)
}

func TestUnknownCommand(t *testing.T) {
	out, code := run("frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, out, "error: unknown command \"frobnicate\"")
}

func TestDocList(t *testing.T) {
	out, code := run("doc")
	require.Equal(t, 0, code, out)
	assert.Regexp(t, `(?m)^panicNil\s+correctness\s+deny\s+Detects panic\(nil\) calls$`, out)
	assert.Regexp(t, `(?m)^rangeOverInt\s+strict\s+allow\s+`, out)
}

func TestDocCheck(t *testing.T) {
	out, code := run("doc", "panicNil")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "panicNil check documentation\nCategory: correctness\nDefault level: deny\n")
	assert.Contains(t, out, "Non-compliant code:\npanic(nil)\n")
	assert.Contains(t, out, "  panic-nil-skip-eface (boolean)\n")

	out, code = run("doc", "emptyInterface")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Requires: go1.18.0\n")

	out, code = run("doc", "noSuchCheck")
	assert.Equal(t, 2, code)
	assert.Equal(t, "error: check with name \"noSuchCheck\" not found\n", out)
}

func TestBadFlags(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"check", "--color", "rainbow"}, `error: parse args: --color: unexpected value "rainbow"`},
		{[]string{"check", "--maybe-incorrect"}, "error: parse args: --maybe-incorrect requires --fix"},
		{[]string{"check", "-D", ""}, `invalid argument "" for "-D, --deny" flag`},
		{[]string{"check", "--jobs", "many"}, `invalid argument "many"`},
	}

	for _, test := range tests {
		out, code := run(test.args...)
		assert.Equal(t, 2, code, test.args)
		assert.Contains(t, out, test.want, test.args)
	}
}

func TestBadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lint.toml")
	require.NoError(t, os.WriteFile(path, []byte("no-such-key = 1\n"), 0o644))

	out, code := run("check", "--dir", dir)
	assert.Equal(t, 2, code)
	assert.Equal(t, "error: load settings: "+path+": unknown key \"no-such-key\"\n", out)
}
