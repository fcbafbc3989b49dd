package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"text/template"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"

	"github.com/go-lintpack/lintengine/linter/lintmain"
)

func buildCommand() *cobra.Command {
	var p packer
	cmd := &cobra.Command{
		Use:   "build [flags] packages...",
		Short: "build a linter that also runs checks of the given packages",
		Long: `Build a linter binary that bundles the built-in checks with checks
registered by the given packages. A package can be specified by a
relative path, like . or ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.flags.args = args
			p.dir = cmd.Flag("dir").Value.String()
			log := logrus.New()
			log.SetOutput(cmd.ErrOrStderr())
			p.log = log
			return p.run()
		},
	}
	cmd.Flags().StringVar(&p.Config.Version, "linter.version", "0.0.1",
		`value that will be printed by the linter "version" command`)
	cmd.Flags().StringVar(&p.Config.Name, "linter.name", "linter",
		`name associated with linter`)
	cmd.Flags().StringVarP(&p.flags.outputFilename, "output", "o", "linter",
		`produced binary filename`)
	cmd.Flags().StringP("dir", "C", ".",
		`directory to resolve packages and build in`)
	return cmd
}

type packer struct {
	// Exported fields are used inside text template.

	Config   lintmain.Config
	Packages []string

	flags struct {
		args           []string
		outputFilename string
	}

	dir  string
	main *os.File
	log  logrus.FieldLogger
}

// cleanup removes the generated main file.
func (p *packer) cleanup() {
	if p.main == nil {
		return
	}
	if err := os.Remove(p.main.Name()); err != nil {
		p.log.WithField("file", p.main.Name()).Warnf("cleanup failed: %v", err)
	}
}

func (p *packer) run() error {
	defer p.cleanup()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"parse args", p.parseArgs},
		{"resolve packages", p.resolvePackages},
		{"create main file", p.createMainFile},
		{"build linter", p.buildLinter},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}

func (p *packer) parseArgs() error {
	if len(p.flags.args) == 0 {
		return errors.New("not enough arguments: expected non-empty package list")
	}
	if p.Config.Name == "" {
		return errors.New("--linter.name can't be empty")
	}
	return nil
}

func (p *packer) resolvePackages() error {
	cfg := &packages.Config{Mode: packages.NeedName, Dir: p.dir}
	pkgs, err := packages.Load(cfg, p.flags.args...)
	if err != nil {
		return err
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) != 0 {
			return pkg.Errors[0]
		}
		p.Packages = append(p.Packages, pkg.PkgPath)
	}
	return nil
}

var mainTemplate = template.Must(template.New("main").Parse(`package main

import (
	_ "github.com/go-lintpack/lintengine/checkers"
	"github.com/go-lintpack/lintengine/linter/lintmain"
{{- range .Packages}}
	_ "{{.}}" // Imported for lintengine.AddCheck calls
{{- end}}
)

func main() {
	lintmain.Run(lintmain.Config{
		Name:    {{printf "%q" .Config.Name}},
		Version: {{printf "%q" .Config.Version}},
	})
}
`))

func (p *packer) createMainFile() error {
	mainFile, err := os.CreateTemp(p.dir, "linter*.go")
	if err != nil {
		return fmt.Errorf("create tmp file: %w", err)
	}
	p.main = mainFile
	defer mainFile.Close()

	if err := mainTemplate.Execute(mainFile, p); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	return nil
}

func (p *packer) buildLinter() error {
	command := exec.Command("go", "build",
		"-o", p.flags.outputFilename,
		p.main.Name())
	command.Dir = p.dir
	out, err := command.CombinedOutput()
	if err != nil {
		return fmt.Errorf("build failed: %v:\n%s", err, out)
	}
	return nil
}
