package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int64
	dt                  float64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	bounces  int
	shrinks  int
	growths  int
	contacts int
	spawns   int
	freezes  int
	resets   int

	// Lifetime counters
	totalResets int
}

// NewCollector creates a stats collector flushing every ticksPerWindow
// ticks (at least 1). dt is seconds per tick, for sim-time columns.
func NewCollector(ticksPerWindow int, dt float64) *Collector {
	return &Collector{
		windowDurationTicks: int64(max(1, ticksPerWindow)),
		dt:                  dt,
	}
}

// Record counts an event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventBounce:
		c.bounces++
	case EventShrink:
		c.shrinks++
	case EventGrow:
		c.growths++
	case EventContact:
		c.contacts += ev.Count
	case EventSpawn:
		c.spawns++
	case EventFreeze:
		c.freezes++
	case EventReset:
		c.resets++
		c.totalResets++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// SessionSample is the session state sampled at window end.
type SessionSample struct {
	Balls          int
	Frozen         int
	BoundaryRadius float64
	BallRadius     float64
	Speeds         []float64 // speeds of unfrozen balls
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, sample SessionSample) WindowStats {
	mean, std, p50, p90 := ComputeSpeedStats(sample.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Balls:          sample.Balls,
		Frozen:         sample.Frozen,
		BoundaryRadius: sample.BoundaryRadius,
		BallRadius:     sample.BallRadius,

		Bounces:     c.bounces,
		Shrinks:     c.shrinks,
		Growths:     c.growths,
		Contacts:    c.contacts,
		Spawns:      c.spawns,
		Freezes:     c.freezes,
		Resets:      c.resets,
		TotalResets: c.totalResets,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP50:  p50,
		SpeedP90:  p90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.bounces = 0
	c.shrinks = 0
	c.growths = 0
	c.contacts = 0
	c.spawns = 0
	c.freezes = 0
	c.resets = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}

// TotalResets returns the number of resets recorded since creation.
func (c *Collector) TotalResets() int {
	return c.totalResets
}
