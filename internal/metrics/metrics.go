// Package metrics instruments a sikuli.Runtime with Prometheus collectors
// and serves them over HTTP.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mj1618/sikuli-cli/internal/interpreter"
	"github.com/mj1618/sikuli-cli/internal/sikuli"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes used as label values.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Collectors groups the runtime metrics.
type Collectors struct {
	Runs     *prometheus.CounterVec
	Duration prometheus.Histogram
	Starts   *prometheus.CounterVec
}

// NewCollectors creates and registers the collectors on reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sikuli_runtime_runs_total",
				Help: "Script lines submitted to the interpreter, by outcome.",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sikuli_runtime_run_duration_seconds",
				Help:    "Time from submitting a script line to its response.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		Starts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sikuli_runtime_starts_total",
				Help: "Interpreter start attempts, by outcome.",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(c.Runs, c.Duration, c.Starts)
	return c
}

// InstrumentedRuntime decorates a Runtime with metrics.
type InstrumentedRuntime struct {
	next sikuli.Runtime
	c    *Collectors
}

// Instrument wraps rt.
func Instrument(rt sikuli.Runtime, c *Collectors) *InstrumentedRuntime {
	return &InstrumentedRuntime{next: rt, c: c}
}

// Start implements sikuli.Runtime.
func (r *InstrumentedRuntime) Start() error {
	err := r.next.Start()
	r.c.Starts.WithLabelValues(outcome(err)).Inc()
	return err
}

// Run implements sikuli.Runtime.
func (r *InstrumentedRuntime) Run(script, marker string, failsafe time.Duration) (string, error) {
	start := time.Now()
	out, err := r.next.Run(script, marker, failsafe)
	r.c.Duration.Observe(time.Since(start).Seconds())
	r.c.Runs.WithLabelValues(outcome(err)).Inc()
	return out, err
}

// Stop implements sikuli.Runtime.
func (r *InstrumentedRuntime) Stop() error {
	return r.next.Stop()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, interpreter.ErrTimeout):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}

// NewHandler serves /metrics from gatherer and a /healthz probe.
func NewHandler(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})
	return r
}
