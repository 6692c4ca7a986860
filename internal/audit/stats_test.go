package audit

import (
	"testing"
	"time"
)

func run(ms int64) *Result {
	return &Result{Total: 1, Duration: time.Duration(ms) * time.Millisecond}
}

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(run(ms))
	}

	snap := stats.Snapshot()
	if snap.Runs != 5 {
		t.Fatalf("expected runs=5, got %d", snap.Runs)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	now := time.Now()
	stats := NewStats(time.Minute)
	stats.now = func() time.Time { return now }
	stats.Record(run(100))

	now = now.Add(2 * time.Minute)
	if snap := stats.Snapshot(); snap.Runs != 0 {
		t.Fatalf("expected runs=0 after prune, got %d", snap.Runs)
	}

	stats.Record(run(200))
	snap := stats.Snapshot()
	if snap.Runs != 1 || snap.MinMs != 200 {
		t.Fatalf("expected a single fresh sample of 200, got %+v", snap)
	}
}

func TestStatsEmpty(t *testing.T) {
	if snap := NewStats(0).Snapshot(); snap != (StatsSnapshot{}) {
		t.Errorf("expected zero snapshot, got %+v", snap)
	}
}
