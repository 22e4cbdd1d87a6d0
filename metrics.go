package monitor

import (
	"sync/atomic"
	"time"
)

// Metrics tracks serial link health statistics for the controller.
type Metrics struct {
	// Connection statistics
	ConnectionAttempts atomic.Int64 // Total connection attempts
	SuccessfulConnects atomic.Int64 // Successful connections
	ConnectionFailures atomic.Int64 // Failed connections
	Disconnections     atomic.Int64 // Total disconnects
	LastConnectTime    atomic.Int64 // Unix timestamp of last connect
	LastDisconnectTime atomic.Int64 // Unix timestamp of last disconnect

	// Poll operations
	PollTicks     atomic.Int64 // Total poll invocations while connected
	LinesReceived atomic.Int64 // Complete lines forwarded to the sink
	ReadErrors    atomic.Int64 // Transport read failures during poll
	BytesRead     atomic.Int64 // Total bytes read

	// Command operations
	CommandsSent   atomic.Int64 // Successfully written commands
	SendErrors     atomic.Int64 // Failed sends (transport or state)
	EncodingErrors atomic.Int64 // Commands rejected by the encoder
	BytesWritten   atomic.Int64 // Total bytes written
}

// MetricsSnapshot is a point-in-time copy of the counters plus derived
// rates, for status displays and tests.
type MetricsSnapshot struct {
	Timestamp   time.Time
	IsConnected bool

	ConnectionAttempts int64
	SuccessfulConnects int64
	ConnectionFailures int64
	Disconnections     int64

	PollTicks     int64
	LinesReceived int64
	ReadErrors    int64
	BytesRead     int64

	CommandsSent   int64
	SendErrors     int64
	EncodingErrors int64
	BytesWritten   int64

	ConnectionSuccessRate float64
	ReadErrorRate         float64
}

func (m *Metrics) snapshot(connected bool) MetricsSnapshot {
	s := MetricsSnapshot{
		Timestamp:   time.Now(),
		IsConnected: connected,

		ConnectionAttempts: m.ConnectionAttempts.Load(),
		SuccessfulConnects: m.SuccessfulConnects.Load(),
		ConnectionFailures: m.ConnectionFailures.Load(),
		Disconnections:     m.Disconnections.Load(),

		PollTicks:     m.PollTicks.Load(),
		LinesReceived: m.LinesReceived.Load(),
		ReadErrors:    m.ReadErrors.Load(),
		BytesRead:     m.BytesRead.Load(),

		CommandsSent:   m.CommandsSent.Load(),
		SendErrors:     m.SendErrors.Load(),
		EncodingErrors: m.EncodingErrors.Load(),
		BytesWritten:   m.BytesWritten.Load(),
	}
	s.ConnectionSuccessRate = successRate(s.SuccessfulConnects, s.ConnectionAttempts)
	s.ReadErrorRate = errorRate(s.ReadErrors, s.PollTicks)
	return s
}

func successRate(successes, attempts int64) float64 {
	if attempts == 0 {
		return 100.0
	}
	return float64(successes) / float64(attempts) * 100
}

func errorRate(errs, ops int64) float64 {
	if ops == 0 {
		return 0.0
	}
	return float64(errs) / float64(ops) * 100
}

// GetMetricsSnapshot creates a snapshot of the controller's counters.
func (s *Service) GetMetricsSnapshot() MetricsSnapshot {
	if s.metrics == nil {
		return MetricsSnapshot{Timestamp: time.Now()}
	}
	return s.metrics.snapshot(s.isOpen.Load())
}

// EnableMetrics turns on metrics collection.
func (s *Service) EnableMetrics() {
	s.metricsEnabled.Store(true)
}

// DisableMetrics turns off metrics collection.
func (s *Service) DisableMetrics() {
	s.metricsEnabled.Store(false)
}
