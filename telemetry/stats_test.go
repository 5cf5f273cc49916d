package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.0},
		{"clamped above", []float64{1, 2, 3}, 1.5, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	mean, std, p50, p90 := ComputeSpeedStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample standard deviation of 1..10
	if math.Abs(std-3.02765) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}

	// Input must not be reordered
	if values[0] != 10 {
		t.Error("ComputeSpeedStats sorted its input")
	}
}

func TestComputeSpeedStatsSmall(t *testing.T) {
	mean, std, p50, p90 := ComputeSpeedStats(nil)
	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, p50, p90 = ComputeSpeedStats([]float64{4})
	if mean != 4 || std != 0 || p50 != 4 || p90 != 4 {
		t.Errorf("single value stats = %v %v %v %v, want 4 0 4 4", mean, std, p50, p90)
	}
}

func TestCollectorWindow(t *testing.T) {
	if got := NewCollector(0, 1).WindowDurationTicks(); got != 1 {
		t.Errorf("empty window = %d ticks, want 1", got)
	}

	c := NewCollector(240, 1.0/240)

	if c.WindowDurationTicks() != 240 {
		t.Fatalf("window ticks = %d, want 240", c.WindowDurationTicks())
	}
	if c.ShouldFlush(239) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(240) {
		t.Error("should flush at the window end")
	}

	c.Record(NewBounceEvent(10, 1))
	c.Record(NewBounceEvent(11, 1))
	c.Record(Event{Type: EventShrink, Tick: 10})
	c.Record(NewContactEvent(12, 3))
	c.Record(NewFreezeEvent(100, 2))
	c.Record(Event{Type: EventSpawn, Tick: 100})
	c.Record(NewResetEvent(200, ResetDepleted))

	stats := c.Flush(240, SessionSample{
		Balls:          3,
		Frozen:         2,
		BoundaryRadius: 445,
		BallRadius:     20,
		Speeds:         []float64{3},
	})

	if stats.Bounces != 2 || stats.Shrinks != 1 || stats.Contacts != 3 {
		t.Errorf("bounces/shrinks/contacts = %d/%d/%d, want 2/1/3", stats.Bounces, stats.Shrinks, stats.Contacts)
	}
	if stats.Freezes != 1 || stats.Spawns != 1 || stats.Resets != 1 {
		t.Errorf("freezes/spawns/resets = %d/%d/%d, want 1/1/1", stats.Freezes, stats.Spawns, stats.Resets)
	}
	if stats.Balls != 3 || stats.Frozen != 2 || stats.SpeedMean != 3 {
		t.Errorf("sample not copied: %+v", stats)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}

	// Counters reset, lifetime totals kept
	next := c.Flush(480, SessionSample{})
	if next.Bounces != 0 || next.Resets != 0 {
		t.Errorf("window counters not reset: %+v", next)
	}
	if next.TotalResets != 1 || c.TotalResets() != 1 {
		t.Errorf("total resets = %d, want 1", next.TotalResets)
	}
	if next.WindowStartTick != 240 {
		t.Errorf("window start = %d, want 240", next.WindowStartTick)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventBounce, "bounce"},
		{EventContact, "contact"},
		{EventReset, "reset"},
		{EventType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
