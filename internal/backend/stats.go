package backend

import (
	"sync"
	"time"
)

// StatsSnapshot aggregates the remote calls of one generation run.
type StatsSnapshot struct {
	Count    int
	Failures int
	AvgMs    float64
	MaxMs    int64
}

// CallStats counts remote backend calls and their latencies over a single
// run. Remote backends record every attempt, failed ones included, when a
// CallStats is attached; the CLI prints the aggregate after generation.
type CallStats struct {
	mu       sync.Mutex
	count    int
	failures int
	totalMs  int64
	maxMs    int64
}

func NewCallStats() *CallStats {
	return &CallStats{}
}

// Record adds one call outcome. A failed call still contributes its
// latency.
func (s *CallStats) Record(d time.Duration, err error) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	if err != nil {
		s.failures++
	}
	s.totalMs += ms
	if ms > s.maxMs {
		s.maxMs = ms
	}
}

func (s *CallStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count == 0 {
		return StatsSnapshot{}
	}
	return StatsSnapshot{
		Count:    s.count,
		Failures: s.failures,
		AvgMs:    float64(s.totalMs) / float64(s.count),
		MaxMs:    s.maxMs,
	}
}
