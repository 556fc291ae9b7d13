package monitoring

import (
	"sync"
	"time"
)

var startTime = time.Now()

// Metrics tracks process-wide counters for the scoring pipeline.
type Metrics struct {
	mu             sync.RWMutex
	githubCalls    int64
	registryCalls  int64
	reportsWritten int64
	rowErrors      int64
	cacheHits      int64
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncrementGitHubCalls records one GitHub API request.
func (m *Metrics) IncrementGitHubCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.githubCalls++
}

// IncrementRegistryCalls records one package-registry request.
func (m *Metrics) IncrementRegistryCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registryCalls++
}

// IncrementReportsWritten records one completed report row.
func (m *Metrics) IncrementReportsWritten() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportsWritten++
}

// IncrementRowErrors records one repository that degraded to an error row.
func (m *Metrics) IncrementRowErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rowErrors++
}

// IncrementCacheHits records one serve-mode cache hit.
func (m *Metrics) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

// GetStats returns a snapshot of all counters.
func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"github_calls":    m.githubCalls,
		"registry_calls":  m.registryCalls,
		"reports_written": m.reportsWritten,
		"row_errors":      m.rowErrors,
		"cache_hits":      m.cacheHits,
		"uptime":          time.Since(startTime).String(),
	}
}
