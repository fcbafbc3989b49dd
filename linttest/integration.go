package linttest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// IntegrationTest runs a command-line driver over a set of projects.
//
// Every sub-directory of Dir is a test case with a linttest.params file.
// Each line of that file has the format:
//
//	args ... | goldenFile
//
// The driver output must match the golden file contents.
// A non-zero exit code is prepended as "exit status N".
type IntegrationTest struct {
	// Dir holds test cases. Defaults to "./testdata/_integration".
	Dir string

	// Main runs the driver with args inside dir.
	Main func(dir string, args []string) (output string, exitCode int)
}

// Run executes integration tests.
func (cfg *IntegrationTest) Run(t *testing.T) {
	dir := cfg.Dir
	if dir == "" {
		dir = "./testdata/_integration"
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		t.Fatalf("can't get dir abs path: %v", err)
	}

	files, err := os.ReadDir(absDir)
	if err != nil {
		t.Fatalf("list test files: %v", err)
	}

	for _, f := range files {
		if !f.IsDir() {
			continue
		}
		t.Run(f.Name(), func(t *testing.T) {
			cfg.runTest(t, filepath.Join(absDir, f.Name()))
		})
	}
}

func (cfg *IntegrationTest) runTest(t *testing.T, wd string) {
	data, err := os.ReadFile(filepath.Join(wd, "linttest.params"))
	if err != nil {
		t.Fatalf("reading linter run params: %v", err)
	}

	// If several tests re-use a single golden file,
	// don't read it repeatedly, just re-use its contents.
	goldenDataCache := make(map[string]string)

	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 2 {
			t.Fatalf("linttest.params:%d: want `args | golden`", i+1)
		}
		runParams := strings.Fields(parts[0])
		goldenFile := strings.TrimSpace(parts[1])

		want, ok := goldenDataCache[goldenFile]
		if !ok {
			data, err := os.ReadFile(filepath.Join(wd, goldenFile))
			if err != nil {
				t.Errorf("read golden file: %v", err)
			}
			want = strings.TrimSpace(string(data))
			goldenDataCache[goldenFile] = want
		}

		out, code := cfg.Main(wd, runParams)
		have := strings.TrimSpace(out)
		if code != 0 {
			have = strings.TrimSpace(fmt.Sprintf("exit status %d\n%s", code, have))
		}

		// To get line-by-line diff, split is required.
		wantLines := strings.Split(want, "\n")
		haveLines := strings.Split(have, "\n")
		if diff := cmp.Diff(wantLines, haveLines); diff != "" {
			t.Errorf("linttest.params:%d: output mismatch:\n%s", i+1, diff)
			t.Logf("linter output was: %s\n", have)
		}
	}
}
