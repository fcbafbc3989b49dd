// Package check implements the "check" sub-command.
package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-lintpack/lintengine"
	"github.com/go-lintpack/lintengine/config"
	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/fix"
	"github.com/go-lintpack/lintengine/linter/lintmain/internal/cmdutil"
	"github.com/go-lintpack/lintengine/loader"
	"github.com/go-lintpack/lintengine/render"
)

// Command returns the "check" sub-command.
func Command(env *cmdutil.Env) *cobra.Command {
	l := &linter{env: env}
	cmd := &cobra.Command{
		Use: "check [flags] [packages...]",
		Long: `Run checks over packages. Packages default to ./...

Check levels can be overridden with -A/--allow, -W/--warn, -D/--deny
and -F/--forbid. Each flag takes a check or category name and may be
repeated; later flags win, except that forbid can't be lowered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l.cmd = cmd
			l.packages = args
			return l.main()
		},
	}

	flags := cmd.Flags()
	for _, lvl := range []struct{ name, short string }{
		{"allow", "A"},
		{"warn", "W"},
		{"deny", "D"},
		{"forbid", "F"},
	} {
		flags.VarP(&overrideFlag{level: lvl.name, list: &l.overrides}, lvl.name, lvl.short,
			fmt.Sprintf(`set %s level for a check or category`, lvl.name))
	}
	flags.StringVarP(&l.flags.dir, "dir", "C", ".",
		`directory to load packages from`)
	flags.StringVar(&l.flags.config, "config", "",
		`settings file; by default lint.toml is looked up in --dir`)
	flags.IntVar(&l.flags.exitCode, "exit-code", cmdutil.ExitFindings,
		`exit code to be used when errors are found`)
	flags.BoolVar(&l.flags.fix, "fix", false,
		`apply machine-applicable suggestions`)
	flags.BoolVar(&l.flags.maybeIncorrect, "maybe-incorrect", false,
		`with --fix, also apply suggestions that may change behavior`)
	flags.StringVar(&l.flags.format, "format", "text",
		`output format (text|json)`)
	flags.StringVar(&l.flags.color, "color", "auto",
		`colorize text output (auto|always|never)`)
	flags.IntVarP(&l.flags.jobs, "jobs", "j", 0,
		`max packages checked in parallel (0 = no limit)`)
	flags.BoolVar(&l.flags.tests, "tests", true,
		`whether to check test files`)
	flags.BoolVar(&l.flags.generated, "generated", false,
		`whether to check generated files`)
	return cmd
}

type linter struct {
	env *cmdutil.Env
	cmd *cobra.Command
	log logrus.FieldLogger

	flags struct {
		dir            string
		config         string
		exitCode       int
		fix            bool
		maybeIncorrect bool
		format         string
		color          string
		jobs           int
		tests          bool
		generated      bool
	}

	dir       string
	packages  []string
	overrides []lintengine.Override
	renderer  render.Renderer

	cfg     *config.Config
	engine  *lintengine.Engine
	units   []*lintengine.Unit
	reports []*diag.Report

	// sources holds file contents as they were before fixes.
	sources map[string][]byte
}

func (l *linter) main() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"parse args", l.parseArgs},
		{"load settings", l.loadSettings},
		{"init engine", l.initEngine},
		{"load program", l.loadProgram},
		{"run checks", l.runChecks},
		{"apply fixes", l.applyFixes},
		{"print report", l.printReport},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return l.exit()
}

func (l *linter) parseArgs() error {
	l.log = l.env.Log
	if len(l.packages) == 0 {
		l.packages = []string{"./..."}
	}

	dir, err := filepath.Abs(l.flags.dir)
	if err != nil {
		return err
	}
	l.dir = dir

	switch l.flags.format {
	case "text":
		mode, ok := render.ParseColorMode(l.flags.color)
		if !ok {
			return fmt.Errorf("--color: unexpected value %q", l.flags.color)
		}
		l.renderer = &render.Text{
			Color:        mode,
			SourceReader: l.readSource,
			Summary:      true,
		}
	case "json":
		l.renderer = &render.JSON{Indent: true}
	default:
		return fmt.Errorf("--format: unexpected value %q", l.flags.format)
	}

	if l.flags.maybeIncorrect && !l.flags.fix {
		return errors.New("--maybe-incorrect requires --fix")
	}
	return nil
}

func (l *linter) loadSettings() error {
	var err error
	if l.flags.config != "" {
		l.cfg, err = config.LoadFile(l.flags.config, l.env.Registry.Schema())
	} else {
		l.cfg, err = l.env.Registry.LoadConfig(l.dir)
	}
	return err
}

func (l *linter) initEngine() error {
	engine, err := lintengine.NewEngine(l.env.Registry, lintengine.EngineOptions{
		Config:    l.cfg,
		Overrides: l.overrides,
		Logger:    l.log,
	})
	if err != nil {
		return err
	}
	l.engine = engine
	return nil
}

func (l *linter) loadProgram() error {
	units, err := loader.Load(l.cmd.Context(), loader.Config{
		Dir:       l.dir,
		Tests:     l.flags.tests,
		Generated: l.flags.generated,
	}, l.packages...)
	if err != nil {
		return err
	}
	l.units = units
	l.log.WithField("units", len(units)).Debug("program loaded")
	return nil
}

func (l *linter) runChecks() error {
	reports, err := l.engine.RunAll(l.cmd.Context(), l.units, l.flags.jobs)
	if err != nil {
		return err
	}
	l.reports = reports
	return nil
}

func (l *linter) applyFixes() error {
	if !l.flags.fix {
		return nil
	}

	var all []diag.Diagnostic
	for _, report := range l.reports {
		all = append(all, report.Diagnostics...)
	}
	res, err := fix.Apply(all, l.readSource, fix.Options{
		MaybeIncorrect: l.flags.maybeIncorrect,
	})
	if errors.Is(err, fix.ErrNoFixes) {
		l.log.Debug("nothing to fix")
		return nil
	}
	if err != nil {
		return err
	}
	for _, s := range res.Skipped {
		l.log.WithFields(logrus.Fields{"check": s.Check, "reason": s.Reason}).Debug("fix skipped")
	}
	if err := fix.WriteFiles(res); err != nil {
		return err
	}
	fmt.Fprintf(l.cmd.ErrOrStderr(), "applied %d fixes in %d files\n", len(res.Applied), len(res.Files))
	return nil
}

func (l *linter) printReport() error {
	for _, report := range l.reports {
		for i := range report.Diagnostics {
			l.relativize(&report.Diagnostics[i])
		}
	}
	return l.renderer.Render(l.cmd.OutOrStdout(), l.reports...)
}

func (l *linter) exit() error {
	var worst diag.Disposition
	for _, report := range l.reports {
		worst = diag.Worst(worst, report.Disposition)
	}
	if worst.Failed() && l.flags.exitCode != cmdutil.ExitOK {
		return &cmdutil.ExitError{Code: l.flags.exitCode}
	}
	return nil
}

// readSource returns file contents as they were when checks ran.
// Relative names are resolved against the packages directory.
func (l *linter) readSource(filename string) ([]byte, error) {
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(l.dir, filename)
	}
	if data, ok := l.sources[filename]; ok {
		return data, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if l.sources == nil {
		l.sources = make(map[string][]byte)
	}
	l.sources[filename] = data
	return data, nil
}

// relativize makes file names of d relative to the packages directory.
func (l *linter) relativize(d *diag.Diagnostic) {
	rel := func(sp *diag.Span) {
		if !filepath.IsAbs(sp.File) {
			return
		}
		name, err := filepath.Rel(l.dir, sp.File)
		if err != nil || strings.HasPrefix(name, "..") {
			return
		}
		sp.File = name
	}

	rel(&d.Primary)
	for i := range d.Secondary {
		rel(&d.Secondary[i].Span)
	}
	for i := range d.Suggestions {
		for j := range d.Suggestions[i].Edits {
			rel(&d.Suggestions[i].Edits[j].Span)
		}
	}
}
