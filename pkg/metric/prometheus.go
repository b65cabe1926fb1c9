package metric

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type (
	prometheusMetrics struct {
		vectors *vectors
		labels  Labels
	}

	// vectors lazily registers one vector per metric key, the label names of the first call are kept.
	vectors struct {
		registry   *prometheus.Registry
		mutex      sync.Mutex
		counters   map[string]*prometheus.CounterVec
		histograms map[string]*prometheus.HistogramVec
	}
)

func NewPrometheusRegistry() Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return prometheusMetrics{
		vectors: &vectors{
			registry:   registry,
			counters:   make(map[string]*prometheus.CounterVec),
			histograms: make(map[string]*prometheus.HistogramVec),
		},
		labels: Labels{},
	}
}

func (m prometheusMetrics) With(labels Labels) Metrics {
	merged := make(Labels, len(m.labels)+len(labels))
	for name, value := range m.labels {
		merged[name] = value
	}
	for name, value := range labels {
		merged[name] = value
	}

	return prometheusMetrics{
		vectors: m.vectors,
		labels:  merged,
	}
}

func (m prometheusMetrics) Increment(key string) {
	vec := m.vectors.counter(key, labelNames(m.labels))
	if vec == nil {
		return
	}

	counter, err := vec.GetMetricWith(prometheus.Labels(m.labels))
	if err != nil {
		return
	}
	counter.Inc()
}

func (m prometheusMetrics) Duration(key string, duration time.Duration) {
	vec := m.vectors.histogram(key, labelNames(m.labels))
	if vec == nil {
		return
	}

	observer, err := vec.GetMetricWith(prometheus.Labels(m.labels))
	if err != nil {
		return
	}
	observer.Observe(duration.Seconds())
}

func (m prometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.vectors.registry, promhttp.HandlerOpts{})
}

func (v *vectors) counter(key string, labelNames []string) *prometheus.CounterVec {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	if vec, ok := v.counters[key]; ok {
		return vec
	}

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: key, Help: key}, labelNames)
	if err := v.registry.Register(vec); err != nil {
		return nil
	}

	v.counters[key] = vec
	return vec
}

func (v *vectors) histogram(key string, labelNames []string) *prometheus.HistogramVec {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	if vec, ok := v.histograms[key]; ok {
		return vec
	}

	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    key,
		Help:    key,
		Buckets: prometheus.DefBuckets,
	}, labelNames)
	if err := v.registry.Register(vec); err != nil {
		return nil
	}

	v.histograms[key] = vec
	return vec
}

func labelNames(labels Labels) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
