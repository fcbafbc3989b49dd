// Command lintengine runs the built-in checks and builds custom linters
// that bundle additional check packages.
package main

import (
	"context"
	"os"

	_ "github.com/go-lintpack/lintengine/checkers" // Imported for lintengine.AddCheck calls
	"github.com/go-lintpack/lintengine/linter/lintmain"
)

var version = "v0.1.0"

func main() {
	cfg := lintmain.Config{
		Name:    "lintengine",
		Version: version,
	}
	os.Exit(lintmain.Main(context.Background(), cfg, os.Args[1:], os.Stdout, os.Stderr, buildCommand()))
}
