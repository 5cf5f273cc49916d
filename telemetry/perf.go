package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one timed section of a session tick.
type Phase uint8

const (
	PhaseIntegrate Phase = iota // gravity, movement and boundary bounces
	PhaseCollide                // ball-ball resolution
	PhaseRules                  // decay reset and timer freeze
	numPhases
)

// Phases lists every phase in tick order.
func Phases() []Phase {
	return []Phase{PhaseIntegrate, PhaseCollide, PhaseRules}
}

func (p Phase) String() string {
	switch p {
	case PhaseIntegrate:
		return "integrate"
	case PhaseCollide:
		return "collide"
	case PhaseRules:
		return "rules"
	default:
		return "unknown"
	}
}

// tickTiming is the wall time spent in one tick, split by phase.
type tickTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
	timed  [numPhases]bool
}

// PerfCollector keeps the timings of the last N ticks and the most
// recent frame interval. Not safe for concurrent use.
type PerfCollector struct {
	ring  []tickTiming
	next  int
	count int

	cur        tickTiming
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over window ticks
// (240 is one simulated second at the default step).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 240
	}
	return &PerfCollector{ring: make([]tickTiming, window)}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = tickTiming{}
	p.inPhase = false
}

// Enter closes the running phase, if any, and starts timing ph.
func (p *PerfCollector) Enter(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if !p.inPhase {
		return
	}
	p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	p.cur.timed[p.phase] = true
	p.inPhase = false
}

// EndTick closes the running phase and stores the tick.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordFrame marks a rendered frame; FPS comes from the last interval.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PhaseStats is the average cost of one phase over the window.
type PhaseStats struct {
	Avg   time.Duration
	Pct   float64 // share of the average tick
	Timed bool    // false when no tick in the window entered the phase
}

// PerfStats summarizes the window.
type PerfStats struct {
	Ticks          int
	AvgTick        time.Duration
	MinTick        time.Duration
	MaxTick        time.Duration
	TicksPerSecond float64

	Frame time.Duration
	FPS   float64

	phases [numPhases]PhaseStats
}

// Phase returns the stats of one phase.
func (s PerfStats) Phase(ph Phase) PhaseStats {
	if ph >= numPhases {
		return PhaseStats{}
	}
	return s.phases[ph]
}

// Stats averages the stored ticks.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.count, Frame: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var sums [numPhases]time.Duration
	var timed [numPhases]bool
	for i, t := range p.ring[:p.count] {
		total += t.total
		if i == 0 || t.total < s.MinTick {
			s.MinTick = t.total
		}
		s.MaxTick = max(s.MaxTick, t.total)
		for ph := range sums {
			sums[ph] += t.phases[ph]
			timed[ph] = timed[ph] || t.timed[ph]
		}
	}

	n := time.Duration(p.count)
	s.AvgTick = total / n
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	for ph := range sums {
		ps := PhaseStats{Avg: sums[ph] / n, Timed: timed[ph]}
		if s.AvgTick > 0 {
			ps.Pct = 100 * float64(ps.Avg) / float64(s.AvgTick)
		}
		s.phases[ph] = ps
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, ph := range Phases() {
		if st := s.Phase(ph); st.Timed {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", st.Pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the window via slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	IntegratePct float64 `csv:"integrate_pct"`
	CollidePct   float64 `csv:"collide_pct"`
	RulesPct     float64 `csv:"rules_pct"`
}

// ToCSV flattens the stats for perf.csv.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTick.Microseconds(),
		MinTickUS:    s.MinTick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		IntegratePct: s.Phase(PhaseIntegrate).Pct,
		CollidePct:   s.Phase(PhaseCollide).Pct,
		RulesPct:     s.Phase(PhaseRules).Pct,
	}
}
