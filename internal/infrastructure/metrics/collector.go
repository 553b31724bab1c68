package metrics

import (
	"sync"
	"sync/atomic"
)

// Deletion outcomes reported by the transports
const (
	OutcomeDeleted                = "deleted"
	OutcomeEventNotFound          = "event_not_found"
	OutcomeUserNotAuthorized      = "user_not_authorized"
	OutcomeInsufficientPermission = "insufficient_permission"
	OutcomeInvalidRequest         = "invalid_request"
	OutcomeFailed                 = "failed"
)

// Outcomes lists every deletion outcome in a stable order.
var Outcomes = []string{
	OutcomeDeleted,
	OutcomeEventNotFound,
	OutcomeUserNotAuthorized,
	OutcomeInsufficientPermission,
	OutcomeInvalidRequest,
	OutcomeFailed,
}

// Collector collects and aggregates metrics for the application.
type Collector struct {
	// API metrics
	apiRequests sync.Map // map[string]*uint64 - method -> count
	apiErrors   sync.Map // map[string]*uint64 - method -> error count
	apiDuration sync.Map // map[string]*durationValue - method -> total duration in seconds

	deletions sync.Map // map[string]*uint64 - outcome -> count
}

// durationValue holds duration with mutex for thread-safe updates.
type durationValue struct {
	mu           sync.Mutex
	totalSeconds float64
}

// APIMetrics holds API request metrics.
type APIMetrics struct {
	RequestCounts        map[string]uint64  `json:"request_counts"`
	ErrorCounts          map[string]uint64  `json:"error_counts"`
	TotalDurationSeconds map[string]float64 `json:"total_duration_seconds"`
	Deletions            map[string]uint64  `json:"deletions"`
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordRequest records an API request.
func (c *Collector) RecordRequest(method string) {
	counter := c.getOrCreateCounter(&c.apiRequests, method)
	atomic.AddUint64(counter, 1)
}

// RecordError records an API error.
func (c *Collector) RecordError(method string) {
	counter := c.getOrCreateCounter(&c.apiErrors, method)
	atomic.AddUint64(counter, 1)
}

// RecordDuration records the duration of an API call in seconds.
func (c *Collector) RecordDuration(method string, durationSeconds float64) {
	val, _ := c.apiDuration.LoadOrStore(method, &durationValue{})
	dv := val.(*durationValue)

	dv.mu.Lock()
	dv.totalSeconds += durationSeconds
	dv.mu.Unlock()
}

// RecordDeletion records the outcome of one delete request.
func (c *Collector) RecordDeletion(outcome string) {
	counter := c.getOrCreateCounter(&c.deletions, outcome)
	atomic.AddUint64(counter, 1)
}

// DeletionCount returns how many delete requests ended with outcome.
func (c *Collector) DeletionCount(outcome string) uint64 {
	val, ok := c.deletions.Load(outcome)
	if !ok {
		return 0
	}
	return atomic.LoadUint64(val.(*uint64))
}

// GetAPIMetrics returns current API metrics.
func (c *Collector) GetAPIMetrics() *APIMetrics {
	result := &APIMetrics{
		RequestCounts:        make(map[string]uint64),
		ErrorCounts:          make(map[string]uint64),
		TotalDurationSeconds: make(map[string]float64),
		Deletions:            make(map[string]uint64),
	}

	c.apiRequests.Range(func(key, value interface{}) bool {
		result.RequestCounts[key.(string)] = atomic.LoadUint64(value.(*uint64))
		return true
	})

	c.apiErrors.Range(func(key, value interface{}) bool {
		result.ErrorCounts[key.(string)] = atomic.LoadUint64(value.(*uint64))
		return true
	})

	c.apiDuration.Range(func(key, value interface{}) bool {
		dv := value.(*durationValue)
		dv.mu.Lock()
		result.TotalDurationSeconds[key.(string)] = dv.totalSeconds
		dv.mu.Unlock()
		return true
	})

	c.deletions.Range(func(key, value interface{}) bool {
		result.Deletions[key.(string)] = atomic.LoadUint64(value.(*uint64))
		return true
	})

	return result
}

// getOrCreateCounter gets or creates a counter for the given key.
func (c *Collector) getOrCreateCounter(m *sync.Map, key string) *uint64 {
	val, _ := m.LoadOrStore(key, new(uint64))
	return val.(*uint64)
}
