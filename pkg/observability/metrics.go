package observability

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Metrics records counters, gauges and timings.
type Metrics interface {
	Counter(name string, value int64, tags ...Tag)
	Gauge(name string, value float64, tags ...Tag)
	Timing(name string, duration time.Duration, tags ...Tag)
}

// Tag labels a metric sample.
type Tag struct {
	Key   string
	Value string
}

// T creates a new Tag.
func T(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) Counter(string, int64, ...Tag)         {}
func (NoopMetrics) Gauge(string, float64, ...Tag)         {}
func (NoopMetrics) Timing(string, time.Duration, ...Tag) {}

// InMemoryMetrics keeps samples in memory for tests and the worker stats log.
type InMemoryMetrics struct {
	mu       sync.RWMutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]time.Duration
}

// NewInMemoryMetrics creates an empty collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]time.Duration),
	}
}

func (m *InMemoryMetrics) Counter(name string, value int64, tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[metricKey(name, tags)] += value
}

func (m *InMemoryMetrics) Gauge(name string, value float64, tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[metricKey(name, tags)] = value
}

func (m *InMemoryMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := metricKey(name, tags)
	m.timings[key] = append(m.timings[key], duration)
}

// CounterValue returns the current value of a counter.
func (m *InMemoryMetrics) CounterValue(name string, tags ...Tag) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[metricKey(name, tags)]
}

// GaugeValue returns the last value set on a gauge.
func (m *InMemoryMetrics) GaugeValue(name string, tags ...Tag) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gauges[metricKey(name, tags)]
}

// Timings returns a copy of the recorded durations.
func (m *InMemoryMetrics) Timings(name string, tags ...Tag) []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]time.Duration(nil), m.timings[metricKey(name, tags)]...)
}

// metricKey is order-independent in its tags.
func metricKey(name string, tags []Tag) string {
	if len(tags) == 0 {
		return name
	}
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, t.Key+"="+t.Value)
	}
	sort.Strings(parts)
	return name + ":" + strings.Join(parts, ",")
}

const (
	MetricOperationTotal    = "recruita.operation.total"
	MetricOperationDuration = "recruita.operation.duration"
	MetricOperationErrors   = "recruita.operation.errors"

	MetricBookingsCreated   = "recruita.bookings.created"
	MetricBookingsConflicts = "recruita.bookings.conflicts"
	MetricBookingsCancelled = "recruita.bookings.cancelled"
	MetricLockWait          = "recruita.bookings.lock_wait"

	MetricInterviewsScheduled   = "recruita.interviews.scheduled"
	MetricInterviewsRescheduled = "recruita.interviews.rescheduled"
	MetricInterviewsCancelled   = "recruita.interviews.cancelled"
	MetricInterviewsCompleted   = "recruita.interviews.completed"
	MetricPartialFailures       = "recruita.interviews.partial_failures"

	MetricEventsPublished = "recruita.events.published"
	MetricEventsConsumed  = "recruita.events.consumed"
	MetricOutboxPending   = "recruita.outbox.pending"
)
