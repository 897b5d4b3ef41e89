package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exposes pipeline counters through Prometheus.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry     *prometheus.Registry
	signals      *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	llmCalls     *prometheus.CounterVec
	pipelineTime *prometheus.HistogramVec
}

// New creates a recorder on its own registry, with Go runtime collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		signals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aitrader",
				Name:      "signals_total",
				Help:      "Trading signals emitted, by final signal type",
			},
			[]string{"signal_type"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aitrader",
				Name:      "collaborator_fallbacks_total",
				Help:      "Times a collaborator was replaced by its deterministic default",
			},
			[]string{"collaborator", "reason"},
		),
		llmCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aitrader",
				Name:      "llm_requests_total",
				Help:      "LLM provider requests, by outcome",
			},
			[]string{"outcome"},
		),
		pipelineTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "aitrader",
				Name:      "pipeline_duration_seconds",
				Help:      "Duration of signal pipelines",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordSignal(signalType string) {
	if r == nil {
		return
	}
	r.signals.WithLabelValues(signalType).Inc()
}

// RecordFallback counts a collaborator default (market_data, sentiment, reasoning).
func (r *Recorder) RecordFallback(collaborator, reason string) {
	if r == nil {
		return
	}
	r.fallbacks.WithLabelValues(collaborator, reason).Inc()
}

func (r *Recorder) RecordLLMCall(err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.llmCalls.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ObserveDuration(operation string, d time.Duration) {
	if r == nil {
		return
	}
	r.pipelineTime.WithLabelValues(operation).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}
