package lintengine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/go-lintpack/lintengine/config"
	"github.com/go-lintpack/lintengine/diag"
)

// ErrUnknownOverride is returned when a command-line override names
// neither a registered check nor a category.
var ErrUnknownOverride = errors.New("unknown check or category")

// EngineOptions configures an Engine.
type EngineOptions struct {
	// Config holds project settings.
	// If nil, defaults of the registry schema are used.
	Config *config.Config

	// Overrides are command-line level overrides, in command-line order.
	Overrides []Override

	// Logger receives engine events.
	// If nil, only warnings and errors are written to stderr.
	Logger logrus.FieldLogger
}

// Engine runs registered checks over units.
//
// An engine is immutable and can run many units concurrently.
type Engine struct {
	reg       *Registry
	cfg       *config.Config
	overrides []Override
	log       logrus.FieldLogger
}

// NewEngine freezes reg and returns an engine that runs its checks.
func NewEngine(reg *Registry, opts EngineOptions) (*Engine, error) {
	var errs []error
	for _, o := range opts.Overrides {
		if !reg.IsKnownName(o.Name) {
			errs = append(errs, fmt.Errorf("%s: %w", o, ErrUnknownOverride))
		}
	}
	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}

	reg.Freeze()

	cfg := opts.Config
	if cfg == nil {
		cfg = reg.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = defaultLogger()
	}
	return &Engine{
		reg:       reg,
		cfg:       cfg,
		overrides: append([]Override(nil), opts.Overrides...),
		log:       log,
	}, nil
}

func defaultLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Discard returns a logger that drops everything.
func Discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Registry returns the frozen registry the engine runs.
func (e *Engine) Registry() *Registry { return e.reg }

// Config returns the engine settings.
func (e *Engine) Config() *config.Config { return e.cfg }

// Run traverses u once and returns the finalized report.
//
// A non-nil error means the engine itself misbehaved;
// check faults are reported as diagnostics instead.
func (e *Engine) Run(u *Unit) (*diag.Report, error) {
	if u == nil {
		return nil, errors.New("run: nil unit")
	}
	cfg := e.cfg
	if !u.GoVersion.IsZero() {
		cfg = cfg.WithMSRV(u.GoVersion)
	}
	resolver := NewLevelResolver(e.overrides, cfg.MSRV())
	report, err := newRun(e.reg, u, cfg, resolver, e.log).exec()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", u.Path, err)
	}
	return report, nil
}

// RunAll runs units in parallel, at most jobs at a time.
// jobs <= 0 means no limit.
//
// Reports are returned in units order. Cancelling ctx stops units
// that have not started yet; a started run always completes.
func (e *Engine) RunAll(ctx context.Context, units []*Unit, jobs int) ([]*diag.Report, error) {
	reports := make([]*diag.Report, len(units))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, u := range units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := e.Run(u)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
