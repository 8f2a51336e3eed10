package huff_serv

import "strings"

// Metric names recorded by Encode.
const (
	MetricEncodes  = "encode.total"
	MetricCached   = "encode.cached"
	MetricFailed   = "encode.failed"
	MetricStored   = "encode.stored"
	MetricBytesIn  = "bytes.in"
	MetricBitsOut  = "bits.out"
	MetricRunsRead = "runs.read"
)

// MetricRecorder records counters under a fixed prefix.
type MetricRecorder struct {
	service *Service
	prefix  string
}

// ----------------------------------------------------
// Service metrics management
// ----------------------------------------------------

func (s *Service) IncMetric(name string) {
	s.AddMetric(name, 1)
}

func (s *Service) AddMetric(name string, delta int64) {
	s.metricsMu.Lock()
	defer s.metricsMu.Unlock()
	s.metrics[name] += delta
}

// ResetMetrics drops every counter.
func (s *Service) ResetMetrics() {
	s.metricsMu.Lock()
	defer s.metricsMu.Unlock()
	s.metrics = make(map[string]int64)
}

// Metrics returns a snapshot of all counters.
func (s *Service) Metrics() map[string]int64 {
	s.metricsMu.Lock()
	defer s.metricsMu.Unlock()

	out := make(map[string]int64, len(s.metrics))
	for k, v := range s.metrics {
		out[k] = v
	}
	return out
}

// ----------------------------------------------------
// Prefix-based metric recorder
// ----------------------------------------------------

// WithMetricPrefix returns a recorder that prefixes every name.
func (s *Service) WithMetricPrefix(prefix string) *MetricRecorder {
	return &MetricRecorder{
		service: s,
		prefix:  strings.TrimSuffix(prefix, ".") + ".",
	}
}

func (m *MetricRecorder) Inc(name string) {
	m.service.IncMetric(m.prefix + name)
}

func (m *MetricRecorder) Add(name string, delta int64) {
	m.service.AddMetric(m.prefix+name, delta)
}
