// Package bench runs the combine variants under a timing.Recorder and checks
// that every variant agrees with the reference sum.
package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/colorfulnotion/combinebench/combine"
	"github.com/colorfulnotion/combinebench/log"
	"github.com/colorfulnotion/combinebench/timing"
)

var ErrMismatch = errors.New("bench: variant result mismatch")

// MismatchError reports a variant whose sum differs from the reference.
type MismatchError struct {
	Variant string
	Cycle   int
	Got     int64
	Want    int64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("variant %s returned %d, want %d (cycle %d)", e.Variant, e.Got, e.Want, e.Cycle)
}

func (e *MismatchError) Unwrap() error { return ErrMismatch }

type VariantSum struct {
	Name string `json:"name"`
	Sum  int64  `json:"sum"`
}

// Result is the outcome of a run. Averages is set only when more than one
// cycle ran.
type Result struct {
	Title     string         `json:"title"`
	Size      int            `json:"size"`
	Cycles    int            `json:"cycles"`
	Expected  int64          `json:"expected"`
	Sums      []VariantSum   `json:"sums"`
	Last      timing.Report  `json:"last"`
	Averages  *timing.Report `json:"averages,omitempty"`
	Rows      []timing.Row   `json:"rows,omitempty"`
	Generated time.Time      `json:"generated"`
}

type Runner struct {
	cfg    Config
	clock  timing.Clock
	logger log.Logger
}

type Option func(*Runner)

func WithClock(c timing.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

func WithLogger(l log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{cfg: cfg, clock: timing.SystemClock{}}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Root()
	}
	return r, nil
}

// Run times every variant once per cycle with a checkpoint after each call.
// Sums are compared with the reference after the cycle so the comparison
// never lands inside a timed interval.
func (r *Runner) Run() (*Result, error) {
	seq := combine.Sequence(r.cfg.Size)
	want := combine.Reference(seq)
	if exp := combine.Expected(r.cfg.Size); want != exp {
		return nil, &MismatchError{Variant: "reference", Got: want, Want: exp}
	}

	names := combine.Names(r.cfg.Variants)
	rec := timing.NewRecorder(r.cfg.Title,
		timing.WithClock(r.clock),
		timing.WithLogger(r.logger),
		timing.WithTemplate(names...),
	)
	r.logger.Info(log.BenchMonitoring, "benchmark starting", "size", r.cfg.Size, "cycles", r.cfg.Cycles, "variants", len(names))

	sums := make([]int64, len(r.cfg.Variants))
	for cycle := 1; cycle <= r.cfg.Cycles; cycle++ {
		if err := rec.BeginCycle(); err != nil {
			return nil, fmt.Errorf("cycle %d: %w", cycle, err)
		}
		for i, v := range r.cfg.Variants {
			sums[i] = v.Fn(seq)
			rec.Checkpoint(v.Name)
		}
		for i, v := range r.cfg.Variants {
			if sums[i] != want {
				return nil, &MismatchError{Variant: v.Name, Cycle: cycle, Got: sums[i], Want: want}
			}
		}
		r.logger.Debug(log.BenchMonitoring, "cycle complete", "cycle", cycle)
	}

	res := &Result{
		Title:     rec.Title(),
		Size:      r.cfg.Size,
		Cycles:    r.cfg.Cycles,
		Expected:  want,
		Sums:      make([]VariantSum, len(names)),
		Last:      rec.Report(),
		Generated: time.Now().UTC(),
	}
	for i, name := range names {
		res.Sums[i] = VariantSum{Name: name, Sum: sums[i]}
	}

	if r.cfg.Cycles > 1 {
		if err := rec.BeginCycle(); err != nil {
			return nil, fmt.Errorf("fold: %w", err)
		}
		avg, err := rec.ReportAverages()
		if err != nil {
			return nil, err
		}
		res.Averages = &avg
		res.Rows = rec.Snapshot()
	}
	return res, nil
}
