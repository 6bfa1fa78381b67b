// Package metrics records per-run Prometheus metrics and writes them in the
// node-exporter textfile format, since gradesync runs as a batch job rather
// than a scrape target.
package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agentstation/gradesync/internal/grading"
	"github.com/agentstation/gradesync/pkg/constants"
	"github.com/agentstation/gradesync/pkg/errors"
	"github.com/agentstation/gradesync/pkg/reconcile"
)

const namespace = "gradesync"

// Manager owns a private registry and the collectors of one run.
type Manager struct {
	registry *prometheus.Registry

	comparisonRows *prometheus.CounterVec
	matched        prometheus.Counter
	skipped        prometheus.Counter
	graded         *prometheus.CounterVec
	llmLatency     prometheus.Histogram
	gradePosts     *prometheus.CounterVec
	lastRun        prometheus.Gauge
}

var _ grading.Observer = (*Manager)(nil)

// NewManager registers the gradesync collectors on a fresh registry.
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)

	return &Manager{
		registry: reg,
		comparisonRows: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compare",
			Name:      "rows_total",
			Help:      "Comparison report rows by status.",
		}, []string{"status"}),
		matched: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compare",
			Name:      "matched_total",
			Help:      "Remote records found in the local dataset.",
		}),
		skipped: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compare",
			Name:      "skipped_total",
			Help:      "Remote records without a usable identifier.",
		}),
		graded: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grade",
			Name:      "students_total",
			Help:      "Students processed by the grader, by outcome.",
		}, []string{"outcome"}),
		llmLatency: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grade",
			Name:      "llm_latency_seconds",
			Help:      "Latency of LLM completion calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		gradePosts: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grade",
			Name:      "posts_total",
			Help:      "Grade write-backs to the LMS, by result.",
		}, []string{"result"}),
		lastRun: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the run finished.",
		}),
	}
}

// Registry exposes the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveComparison records the rows of a reconciliation result.
func (m *Manager) ObserveComparison(r *reconcile.Result) {
	if r == nil {
		return
	}
	for _, s := range []reconcile.Status{reconcile.StatusMatch, reconcile.StatusMismatch, reconcile.StatusNotInLocal} {
		m.comparisonRows.WithLabelValues(string(s)).Add(float64(r.Count(s)))
	}
	m.matched.Add(float64(r.Matched))
	m.skipped.Add(float64(r.Skipped))
}

// ObserveGrade counts one graded student.
func (m *Manager) ObserveGrade(outcome string) {
	m.graded.WithLabelValues(outcome).Inc()
}

// ObserveCompletion records the latency of one LLM call.
func (m *Manager) ObserveCompletion(d time.Duration) {
	m.llmLatency.Observe(d.Seconds())
}

// ObservePost counts one grade write-back.
func (m *Manager) ObservePost(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.gradePosts.WithLabelValues(result).Inc()
}

// WriteTextfile stamps the run time and writes every metric to path.
func (m *Manager) WriteTextfile(path string) error {
	m.lastRun.SetToCurrentTime()

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
