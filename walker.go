package lintengine

import (
	"fmt"
	"go/ast"
	"runtime/debug"

	"github.com/go-toolsmith/astfmt"
	"github.com/sirupsen/logrus"

	"github.com/go-lintpack/lintengine/config"
	"github.com/go-lintpack/lintengine/diag"
	"github.com/go-lintpack/lintengine/internal/astwalk"
)

// run is a single traversal of one unit.
//
// A run exclusively owns its sink, scope stack and passes.
type run struct {
	reg      *Registry
	unit     *Unit
	cfg      *config.Config
	resolver *LevelResolver
	sink     *diag.Sink
	log      logrus.FieldLogger

	// passes are indexed by Check.index.
	passes []*Pass

	file    *ast.File
	cmap    ast.CommentMap
	applied map[*ast.CommentGroup]bool

	stack  []ast.Node
	scopes []Frame

	// framed records whether the node at the same stack index
	// pushed a scope frame.
	framed []bool

	// sinkErr is the first sink misuse error, if any.
	sinkErr error
}

func newRun(reg *Registry, unit *Unit, cfg *config.Config, resolver *LevelResolver, log logrus.FieldLogger) *run {
	r := &run{
		reg:      reg,
		unit:     unit,
		cfg:      cfg,
		resolver: resolver,
		sink:     diag.NewSink(),
		log:      log.WithField("unit", unit.Path),
	}
	printer := astfmt.NewPrinter(unit.Fset)
	for _, c := range reg.Checks() {
		r.passes = append(r.passes, &Pass{
			run:     r,
			check:   c,
			printer: printer,
		})
	}
	return r
}

func (r *run) exec() (*diag.Report, error) {
	if err := r.sink.Begin(); err != nil {
		return nil, err
	}
	r.log.Debug("run started")

	for _, p := range r.passes {
		r.safeCall(p, "BeginRun", nil, p.check.checker.BeginRun)
	}
	for _, f := range r.unit.Files {
		r.walkFile(f)
	}
	r.file = nil
	r.cmap = nil
	for _, p := range r.passes {
		r.safeCall(p, "EndRun", nil, p.check.checker.EndRun)
	}

	if r.sinkErr != nil {
		return nil, r.sinkErr
	}
	report, err := r.sink.Finalize()
	if err != nil {
		return nil, err
	}
	report.Unit = r.unit.Path
	r.log.WithFields(logrus.Fields{
		"diagnostics": len(report.Diagnostics),
		"disposition": report.Disposition,
	}).Debug("run finished")
	return report, nil
}

func (r *run) walkFile(f *ast.File) {
	r.file = f
	r.cmap = ast.NewCommentMap(r.unit.Fset, f, f.Comments)
	r.applied = make(map[*ast.CommentGroup]bool)
	r.stack = r.stack[:0]
	r.scopes = r.scopes[:0]
	r.framed = r.framed[:0]
	astwalk.Walk(f, r.enter, r.leave)
}

func (r *run) enter(n ast.Node) bool {
	r.stack = append(r.stack, n)
	frame, ok := r.frameFor(n)
	if ok {
		r.scopes = append(r.scopes, frame)
	}
	r.framed = append(r.framed, ok)

	for _, c := range r.reg.ChecksFor(KindOf(n)) {
		p := r.passes[c.index]
		r.safeCall(p, "Visit", n, func(p *Pass) {
			p.check.checker.Visit(p, n)
		})
	}
	return true
}

func (r *run) leave(n ast.Node) {
	for _, c := range r.reg.ChecksFor(KindOf(n)) {
		p := r.passes[c.index]
		r.safeCall(p, "Leave", n, func(p *Pass) {
			p.check.checker.Leave(p, n)
		})
	}

	top := len(r.stack) - 1
	if r.framed[top] {
		r.scopes = r.scopes[:len(r.scopes)-1]
	}
	r.framed = r.framed[:top]
	r.stack = r.stack[:top]
}

// frameFor returns a scope frame for n if it opens a scope
// or carries directives.
func (r *run) frameFor(n ast.Node) (Frame, bool) {
	var groups []*ast.CommentGroup
	for _, g := range astwalk.AttachedComments(r.cmap, n) {
		if r.applied[g] {
			continue
		}
		r.applied[g] = true
		groups = append(groups, g)
	}

	frame := Frame{Node: n}
	if len(groups) != 0 {
		overrides, msrv, problems := parseDirectives(groups)
		for _, prob := range problems {
			r.log.WithField("pos", r.unit.Fset.Position(prob.pos)).Warn(prob.msg)
		}
		for _, o := range overrides {
			if !r.reg.IsKnownName(o.Name) {
				r.log.WithField("pos", r.unit.Fset.Position(n.Pos())).
					Warnf("unknown check or category %q in %s directive", o.Name, o.Level)
				continue
			}
			frame.Overrides = append(frame.Overrides, o)
		}
		frame.MSRV = msrv
	}

	hasDirectives := len(frame.Overrides) != 0 || !frame.MSRV.IsZero()
	return frame, hasDirectives || astwalk.IntroducesScope(n)
}

// safeCall runs a check hook, turning a panic into a check fault.
// Faulted checks get no more hook calls during this run.
func (r *run) safeCall(p *Pass, hook string, n ast.Node, fn func(*Pass)) {
	if p.faulted {
		return
	}
	defer func() {
		rv := recover()
		if rv == nil {
			return
		}
		p.faulted = true
		r.fault(p, hook, n, rv)
	}()
	p.node = n
	fn(p)
	p.node = nil
}

func (r *run) fault(p *Pass, hook string, n ast.Node, rv interface{}) {
	p.node = nil

	var primary diag.Span
	if n != nil {
		primary = p.Span(n)
	} else if r.file != nil {
		primary = diag.SpanOf(r.unit.Fset, r.file.Pos(), r.file.Pos())
	}

	r.log.WithFields(logrus.Fields{
		"check": p.check.Info.Name,
		"hook":  hook,
		"pos":   primary.String(),
		"panic": rv,
	}).Error("check fault")
	r.log.Debugf("%s", debug.Stack())

	r.collect(diag.Diagnostic{
		Check:    p.check.Info.Name,
		Category: p.check.Info.Category.String(),
		Level:    diag.Warn,
		Kind:     diag.KindCheckFault,
		Primary:  primary,
		Message:  fmt.Sprintf("check %s faulted in %s: %v", p.check.Info.Name, hook, rv),
		Notes:    []string{"the check is disabled for the rest of this unit"},
	})
}

func (r *run) contractViolation(p *Pass, primary diag.Span, msg string) {
	r.log.WithFields(logrus.Fields{
		"check": p.check.Info.Name,
		"pos":   primary.String(),
	}).Warn(msg)

	r.collect(diag.Diagnostic{
		Check:    p.check.Info.Name,
		Category: p.check.Info.Category.String(),
		Level:    diag.Warn,
		Kind:     diag.KindContractViolation,
		Primary:  primary,
		Message:  fmt.Sprintf("check %s misused the diagnostic API: %s", p.check.Info.Name, msg),
	})
}

func (r *run) collect(d diag.Diagnostic) {
	if err := r.sink.Collect(d); err != nil && r.sinkErr == nil {
		r.sinkErr = err
	}
}
