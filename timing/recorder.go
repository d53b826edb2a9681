// Package timing records named checkpoints over repeated cycles and reports
// the elapsed time between them.
package timing

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/colorfulnotion/combinebench/log"
)

const (
	DefaultTitle = "Time used"

	// StartName labels the sentinel checkpoint that opens every cycle.
	StartName = "start_time"

	averageSuffix = " Average"
)

var (
	ErrNoData        = errors.New("timing: no completed cycle to average")
	ErrCycleMismatch = errors.New("timing: cycle does not match template")
)

type checkpoint struct {
	name string
	at   time.Time
}

type bucket struct {
	count int
	total time.Duration
}

// Row is the accumulated state of one checkpoint name.
type Row struct {
	Name  string        `json:"name"`
	Count int           `json:"count"`
	Total time.Duration `json:"total_ns"`
	Mean  time.Duration `json:"mean_ns"`
}

// Recorder captures named instants for one cycle at a time and keeps running
// per-name totals across cycles. It is owned by a single goroutine.
type Recorder struct {
	title    string
	clock    Clock
	logger   log.Logger
	template []string

	points []checkpoint
	acc    map[string]*bucket
	order  []string // first-seen names of the last folded cycle
	cycles int
}

type Option func(*Recorder)

func WithClock(c Clock) Option {
	return func(r *Recorder) { r.clock = c }
}

// WithLogger sets the sink reports are written to. Defaults to log.Root().
func WithLogger(l log.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// WithTemplate fixes the ordered checkpoint names every cycle must present.
// Cycles that deviate are not folded into the averages.
func WithTemplate(names ...string) Option {
	return func(r *Recorder) { r.template = slices.Clone(names) }
}

// NewRecorder returns an empty recorder. An empty title selects DefaultTitle.
func NewRecorder(title string, opts ...Option) *Recorder {
	if title == "" {
		title = DefaultTitle
	}
	r := &Recorder{
		title: title,
		clock: SystemClock{},
		acc:   make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Root()
	}
	return r
}

func (r *Recorder) Title() string { return r.title }

// Cycles returns how many cycles have been folded into the accumulator.
func (r *Recorder) Cycles() int { return r.cycles }

// BeginCycle folds the previous cycle's intervals into the accumulator, then
// clears the checkpoints and records the start sentinel. With a template set,
// a previous cycle that does not match it is dropped and ErrCycleMismatch is
// returned; the new cycle is started either way.
func (r *Recorder) BeginCycle() error {
	var err error
	if len(r.points) > 1 {
		err = r.fold()
	}
	r.points = r.points[:0]
	r.Checkpoint(StartName)
	return err
}

// Checkpoint appends name at the current instant. Names need not be unique.
func (r *Recorder) Checkpoint(name string) {
	r.points = append(r.points, checkpoint{name: name, at: r.clock.Now()})
}

func (r *Recorder) fold() error {
	names := r.cycleNames()
	if r.template != nil && !slices.Equal(names, r.template) {
		r.logger.Warn(log.TimingMonitoring, "cycle dropped", "title", r.title, "got", names, "want", r.template)
		return fmt.Errorf("%w: got %v, want %v", ErrCycleMismatch, names, r.template)
	}
	for i := 1; i < len(r.points); i++ {
		b := r.acc[r.points[i].name]
		if b == nil {
			b = &bucket{}
			r.acc[r.points[i].name] = b
		}
		b.count++
		b.total += r.points[i].at.Sub(r.points[i-1].at)
	}
	r.order = firstSeen(names)
	r.cycles++
	r.logger.Debug(log.TimingMonitoring, "cycle folded", "title", r.title, "cycles", r.cycles, "checkpoints", len(names))
	return nil
}

// cycleNames returns the names of the current cycle without its first entry.
func (r *Recorder) cycleNames() []string {
	if len(r.points) < 2 {
		return []string{}
	}
	names := make([]string, 0, len(r.points)-1)
	for _, p := range r.points[1:] {
		names = append(names, p.name)
	}
	return names
}

// Intervals returns the current cycle's elapsed times without writing them to
// the log.
func (r *Recorder) Intervals() Report {
	names := r.cycleNames()
	intervals := make([]time.Duration, len(names))
	for i := 1; i < len(r.points); i++ {
		intervals[i-1] = r.points[i].at.Sub(r.points[i-1].at)
	}
	return newReport(r.title, names, intervals)
}

// Report logs and returns the elapsed time between each consecutive pair of
// checkpoints in the current cycle. A cycle holding only the sentinel yields an
// empty report with a zero Total.
func (r *Recorder) Report() Report {
	rep := r.Intervals()
	r.logger.Info(log.TimingMonitoring, rep.String())
	return rep
}

// Averages returns the per-name mean across folded cycles without logging.
func (r *Recorder) Averages() (Report, error) {
	if r.cycles == 0 {
		return Report{}, ErrNoData
	}
	names := r.reportOrder()
	intervals := make([]time.Duration, len(names))
	for i, name := range names {
		b := r.acc[name]
		if b == nil || b.count == 0 {
			return Report{}, fmt.Errorf("%w: %q has no samples", ErrNoData, name)
		}
		intervals[i] = b.total / time.Duration(b.count)
	}
	return newReport(r.title+averageSuffix, names, intervals), nil
}

// ReportAverages logs and returns the per-name mean across every folded cycle.
// It returns ErrNoData until BeginCycle has folded at least one cycle.
func (r *Recorder) ReportAverages() (Report, error) {
	rep, err := r.Averages()
	if err != nil {
		r.logger.Warn(log.TimingMonitoring, "no averages to report", "title", r.title, "err", err)
		return rep, err
	}
	r.logger.Info(log.TimingMonitoring, rep.String())
	return rep, nil
}

// Snapshot returns the accumulator in report order. Names that were folded but
// are absent from the current order follow, sorted; a differing Count between
// rows means cycles did not present the same checkpoints.
func (r *Recorder) Snapshot() []Row {
	out := make([]Row, 0, len(r.acc))
	seen := make(map[string]bool, len(r.acc))
	add := func(name string) {
		b, ok := r.acc[name]
		if !ok || seen[name] {
			return
		}
		seen[name] = true
		row := Row{Name: name, Count: b.count, Total: b.total}
		if b.count > 0 {
			row.Mean = b.total / time.Duration(b.count)
		}
		out = append(out, row)
	}
	for _, name := range r.reportOrder() {
		add(name)
	}
	var rest []string
	for name := range r.acc {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		add(name)
	}
	return out
}

func (r *Recorder) reportOrder() []string {
	if r.template != nil {
		return firstSeen(r.template)
	}
	return r.order
}

func firstSeen(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
