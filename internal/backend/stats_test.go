package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCallStatsAggregatesOutcomes(t *testing.T) {
	stats := NewCallStats()
	stats.Record(100*time.Millisecond, nil)
	stats.Record(300*time.Millisecond, errors.New("boom"))
	stats.Record(200*time.Millisecond, nil)

	snap := stats.Snapshot()
	require.Equal(t, 3, snap.Count)
	require.Equal(t, 1, snap.Failures)
	require.InDelta(t, 200, snap.AvgMs, 1e-9)
	require.Equal(t, int64(300), snap.MaxMs)
}

func TestCallStatsClampsNegativeDuration(t *testing.T) {
	stats := NewCallStats()
	stats.Record(-10*time.Millisecond, nil)

	snap := stats.Snapshot()
	require.Equal(t, 1, snap.Count)
	require.Equal(t, int64(0), snap.MaxMs)
	require.Zero(t, snap.AvgMs)
}

func TestCallStatsEmptySnapshot(t *testing.T) {
	require.Equal(t, StatsSnapshot{}, NewCallStats().Snapshot())
}
