package bisect

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordDispatch is called after each batched dispatch.
	// n is the batch length, duration the wall time, err nil on success.
	// Scalar operations surface here as dispatches of length 1.
	RecordDispatch(n int, duration time.Duration, err error)

	// RecordStaging is called after each staging acquisition attempt.
	RecordStaging(bytes int64, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDispatch(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordStaging(int64, error)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	DispatchCount      atomic.Int64
	DispatchErrors     atomic.Int64
	DispatchTotalNanos atomic.Int64
	QueriesDispatched  atomic.Int64
	StagingAcquires    atomic.Int64
	StagingErrors      atomic.Int64
	StagingBytes       atomic.Int64
}

func (m *BasicMetricsCollector) RecordDispatch(n int, duration time.Duration, err error) {
	m.DispatchCount.Add(1)
	m.DispatchTotalNanos.Add(duration.Nanoseconds())
	m.QueriesDispatched.Add(int64(n))
	if err != nil {
		m.DispatchErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordStaging(bytes int64, err error) {
	m.StagingAcquires.Add(1)
	if err != nil {
		m.StagingErrors.Add(1)
		return
	}
	m.StagingBytes.Add(bytes)
}

// AvgDispatchNanos returns the mean dispatch latency in nanoseconds.
func (m *BasicMetricsCollector) AvgDispatchNanos() int64 {
	count := m.DispatchCount.Load()
	if count == 0 {
		return 0
	}
	return m.DispatchTotalNanos.Load() / count
}
