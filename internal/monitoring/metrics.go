package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds combination counters. All methods are safe for concurrent use.
type Metrics struct {
	CombineCount               int64
	ErrorCount                 int64
	ValidationErrors           int64
	UnsupportedOperationErrors int64
	PointsProcessed            int64
	AverageDuration            int64 // in nanoseconds
	StartTime                  time.Time

	OperatorCounts map[string]int64
	OperatorMutex  sync.RWMutex
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:      time.Now(),
		OperatorCounts: make(map[string]int64),
	}
}

// RecordCombine records a successful combination of seriesCount series of
// the given length
func (m *Metrics) RecordCombine(op string, seriesCount, length int, duration time.Duration) {
	atomic.AddInt64(&m.CombineCount, 1)
	atomic.AddInt64(&m.PointsProcessed, int64(seriesCount)*int64(length))

	// Update simple average
	current := atomic.LoadInt64(&m.AverageDuration)
	newAverage := duration.Nanoseconds()
	if current > 0 {
		newAverage = (current + duration.Nanoseconds()) / 2
	}
	atomic.StoreInt64(&m.AverageDuration, newAverage)

	m.OperatorMutex.Lock()
	m.OperatorCounts[op]++
	m.OperatorMutex.Unlock()
}

// IncrementValidationError counts an invalid-argument failure
func (m *Metrics) IncrementValidationError() {
	atomic.AddInt64(&m.ErrorCount, 1)
	atomic.AddInt64(&m.ValidationErrors, 1)
}

// IncrementUnsupportedOperation counts a rejected operator token
func (m *Metrics) IncrementUnsupportedOperation() {
	atomic.AddInt64(&m.ErrorCount, 1)
	atomic.AddInt64(&m.UnsupportedOperationErrors, 1)
}

// GetOperatorDistribution returns combination count by operator
func (m *Metrics) GetOperatorDistribution() map[string]int64 {
	m.OperatorMutex.RLock()
	defer m.OperatorMutex.RUnlock()

	distribution := make(map[string]int64, len(m.OperatorCounts))
	for op, count := range m.OperatorCounts {
		distribution[op] = count
	}
	return distribution
}

// GetStats returns current metrics statistics
func (m *Metrics) GetStats() map[string]interface{} {
	combines := atomic.LoadInt64(&m.CombineCount)
	errors := atomic.LoadInt64(&m.ErrorCount)

	errorRate := float64(0)
	if total := combines + errors; total > 0 {
		errorRate = float64(errors) / float64(total) * 100
	}

	return map[string]interface{}{
		"uptime_seconds":               time.Since(m.StartTime).Seconds(),
		"combine_count":                combines,
		"error_count":                  errors,
		"error_rate_percent":           errorRate,
		"validation_errors":            atomic.LoadInt64(&m.ValidationErrors),
		"unsupported_operation_errors": atomic.LoadInt64(&m.UnsupportedOperationErrors),
		"points_processed":             atomic.LoadInt64(&m.PointsProcessed),
		"avg_duration_ms":              float64(atomic.LoadInt64(&m.AverageDuration)) / 1000000,
		"operator_distribution":        m.GetOperatorDistribution(),
		"start_time":                   m.StartTime.Format(time.RFC3339),
	}
}
