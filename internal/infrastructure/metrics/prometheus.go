// Package metrics expone las métricas operativas del simulador en formato Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appsim "github.com/jhoicas/Costeo-api/internal/application/simulation"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

const namespace = "costeo"

var _ appsim.Recorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder implementa simulation.Recorder con colectores Prometheus.
type PrometheusRecorder struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	failures *prometheus.CounterVec
	samples  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusRecorder crea un registro propio con los colectores de simulación,
// más los de proceso y runtime de Go.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Simulaciones terminadas por sujeto y métrica.",
		}, []string{"subject", "metric"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_failures_total",
			Help:      "Simulaciones abortadas por sujeto y motivo.",
		}, []string{"subject", "reason"}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_samples_total",
			Help:      "Corridas individuales ejecutadas.",
		}, []string{"subject"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_duration_seconds",
			Help:      "Duración de cada simulación completa.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"subject"}),
	}
	r.registry.MustRegister(
		r.runs, r.failures, r.samples, r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// RunCompleted registra una simulación terminada.
func (r *PrometheusRecorder) RunCompleted(subject entity.SubjectType, metric string, runs int, elapsed time.Duration) {
	r.runs.WithLabelValues(string(subject), metric).Inc()
	r.samples.WithLabelValues(string(subject)).Add(float64(runs))
	r.duration.WithLabelValues(string(subject)).Observe(elapsed.Seconds())
}

// RunFailed registra una simulación abortada.
func (r *PrometheusRecorder) RunFailed(subject entity.SubjectType, reason string) {
	r.failures.WithLabelValues(string(subject), reason).Inc()
}

// Registry registro usado por el recorder.
func (r *PrometheusRecorder) Registry() *prometheus.Registry { return r.registry }

// Handler handler HTTP que sirve el registro en formato de exposición.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
