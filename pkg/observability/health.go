package observability

import (
	"context"
	"sort"
	"sync"
	"time"
)

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResult is the outcome of one check.
type HealthCheckResult struct {
	Status   HealthStatus  `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// HealthReport aggregates all checks.
type HealthReport struct {
	Status    HealthStatus                 `json:"status"`
	Timestamp time.Time                    `json:"timestamp"`
	Checks    map[string]HealthCheckResult `json:"checks"`
}

type healthCheck struct {
	ping     func(ctx context.Context) error
	critical bool
}

// HealthRegistry runs dependency checks. A failing critical dependency makes
// the service unhealthy; a failing optional one only degrades it.
type HealthRegistry struct {
	mu     sync.RWMutex
	checks map[string]healthCheck
}

// NewHealthRegistry creates an empty registry.
func NewHealthRegistry() *HealthRegistry {
	return &HealthRegistry{checks: make(map[string]healthCheck)}
}

// Register adds a dependency check.
func (r *HealthRegistry) Register(name string, critical bool, ping func(ctx context.Context) error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[name] = healthCheck{ping: ping, critical: critical}
}

// Names returns the registered check names in order.
func (r *HealthRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check runs every registered check concurrently.
func (r *HealthRegistry) Check(ctx context.Context) HealthReport {
	r.mu.RLock()
	checks := make(map[string]healthCheck, len(r.checks))
	for name, c := range r.checks {
		checks[name] = c
	}
	r.mu.RUnlock()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]HealthCheckResult, len(checks))
		status  = HealthStatusHealthy
	)

	for name, c := range checks {
		wg.Add(1)
		go func(name string, c healthCheck) {
			defer wg.Done()
			start := time.Now()
			err := c.ping(ctx)
			result := HealthCheckResult{Status: HealthStatusHealthy, Duration: time.Since(start)}
			if err != nil {
				result.Message = err.Error()
				result.Status = HealthStatusDegraded
				if c.critical {
					result.Status = HealthStatusUnhealthy
				}
			}

			mu.Lock()
			defer mu.Unlock()
			results[name] = result
			if result.Status == HealthStatusUnhealthy {
				status = HealthStatusUnhealthy
			} else if result.Status == HealthStatusDegraded && status == HealthStatusHealthy {
				status = HealthStatusDegraded
			}
		}(name, c)
	}
	wg.Wait()

	return HealthReport{Status: status, Timestamp: time.Now().UTC(), Checks: results}
}
