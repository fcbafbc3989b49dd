package diag

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSinkState is returned when the sink is used out of its
// Initialized -> Traversing -> Finalized order.
var ErrSinkState = errors.New("diagnostic sink used in wrong state")

// SinkState is a Sink lifecycle stage.
type SinkState int

const (
	Initialized SinkState = iota
	Traversing
	Finalized
)

func (s SinkState) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Traversing:
		return "traversing"
	case Finalized:
		return "finalized"
	default:
		return "unknown"
	}
}

type dedupKey struct {
	check string
	kind  Kind
	file  string
	start int
	end   int
}

// Sink collects diagnostics of a single run.
type Sink struct {
	state SinkState
	items []Diagnostic
	seen  map[dedupKey]struct{}
}

// NewSink returns a sink in the Initialized state.
func NewSink() *Sink {
	return &Sink{seen: make(map[dedupKey]struct{})}
}

// State returns the current lifecycle stage.
func (s *Sink) State() SinkState { return s.state }

// Begin moves the sink into the Traversing state.
func (s *Sink) Begin() error {
	if s.state != Initialized {
		return fmt.Errorf("begin: %w (state is %s)", ErrSinkState, s.state)
	}
	s.state = Traversing
	return nil
}

// Collect records d. Diagnostics that target the same check and primary
// span as an already collected one are dropped.
func (s *Sink) Collect(d Diagnostic) error {
	if s.state != Traversing {
		return fmt.Errorf("collect %s: %w (state is %s)", d.Check, ErrSinkState, s.state)
	}
	key := dedupKey{
		check: d.Check,
		kind:  d.Kind,
		file:  d.Primary.File,
		start: d.Primary.Start.Offset,
		end:   d.Primary.End.Offset,
	}
	if _, ok := s.seen[key]; ok {
		return nil
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, d)
	return nil
}

// Finalize sorts collected diagnostics and builds the report.
// The sink can't be used after that.
func (s *Sink) Finalize() (*Report, error) {
	if s.state != Traversing {
		return nil, fmt.Errorf("finalize: %w (state is %s)", ErrSinkState, s.state)
	}
	s.state = Finalized

	items := s.items
	s.items = nil
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Primary != b.Primary {
			return a.Primary.Before(b.Primary)
		}
		return a.Check < b.Check
	})
	return newReport(items), nil
}
