package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder captures per-run pipeline metrics.
type Recorder interface {
	ObserveStage(stage string, d time.Duration)
	IncRun(status string)
	IncViolation(rule string)
	ObserveTouched(n int)
}

// Noop implements Recorder without emitting anything.
type Noop struct{}

func (Noop) ObserveStage(string, time.Duration) {}
func (Noop) IncRun(string)                      {}
func (Noop) IncViolation(string)                {}
func (Noop) ObserveTouched(int)                 {}

// Prom implements Recorder backed by Prometheus collectors.
type Prom struct {
	runs       *prometheus.CounterVec
	violations *prometheus.CounterVec
	stages     *prometheus.HistogramVec
	touched    prometheus.Histogram
	gatherer   prometheus.Gatherer
}

// NewProm creates the collectors and registers them with reg. A nil reg
// gets a private registry so several recorders can coexist.
func NewProm(namespace string, reg *prometheus.Registry) *Prom {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	p := &Prom{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pipeline runs by final status",
		}, []string{"status"}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "policy_violations_total",
			Help:      "Policy denials by violated rule",
		}, []string{"rule"}),
		stages: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each pipeline stage",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"stage"}),
		touched: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "touched_entries",
			Help:      "Archive entries touched by successful runs",
			Buckets:   []float64{0, 1, 2, 5, 10, 25},
		}),
		gatherer: reg,
	}
	reg.MustRegister(p.runs, p.violations, p.stages, p.touched)
	return p
}

func (p *Prom) ObserveStage(stage string, d time.Duration) {
	p.stages.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *Prom) IncRun(status string) {
	p.runs.WithLabelValues(status).Inc()
}

func (p *Prom) IncViolation(rule string) {
	p.violations.WithLabelValues(rule).Inc()
}

func (p *Prom) ObserveTouched(n int) {
	p.touched.Observe(float64(n))
}

// WriteSummary prints counters and histogram counts, one per line, sorted by
// metric name.
func (p *Prom) WriteSummary(w io.Writer) error {
	families, err := p.gatherer.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, f := range families {
		for _, m := range f.GetMetric() {
			var labels []string
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			name := f.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%g", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
