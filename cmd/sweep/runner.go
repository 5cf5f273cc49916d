package main

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ring/systems"
	"github.com/pthm-cable/ring/telemetry"
	"github.com/pthm-cable/ring/world"
)

// roundResult holds the outcome of one headless round.
type roundResult struct {
	ticks     int64 // ticks until depletion (or maxTicks)
	depleted  bool
	bounces   int
	shrinks   int
	freezes   int
	balls     int
	peakSpeed float64
}

// counter tallies session events for a single round.
type counter struct {
	bounces, shrinks, freezes int
}

func (c *counter) Record(ev telemetry.Event) {
	switch ev.Type {
	case telemetry.EventBounce:
		c.bounces++
	case telemetry.EventShrink:
		c.shrinks++
	case telemetry.EventFreeze:
		c.freezes++
	}
}

// runRound plays one round until the boundary depletes or maxTicks is hit.
func runRound(p world.Params, seed int64, maxTicks int64) roundResult {
	s := world.New(p, seed)
	c := &counter{}
	s.Observer = c

	var res roundResult
	depleted := false
	s.OnReset = func(string) {
		depleted = true
		res.balls = len(s.Balls())
	}

	for s.TickCount() < maxTicks {
		s.Tick()
		if depleted {
			break
		}
		for _, b := range s.Balls() {
			res.peakSpeed = max(res.peakSpeed, systems.Speed(b.Vel))
		}
	}

	res.ticks = s.TickCount()
	res.depleted = depleted
	if !depleted {
		res.balls = len(s.Balls())
	}
	res.bounces = c.bounces
	res.shrinks = c.shrinks
	res.freezes = c.freezes
	return res
}

// ComboStats summarizes all seeds of one mode combination. Written as a
// row of sweep.csv.
type ComboStats struct {
	Modes        string  `csv:"modes"`
	Seeds        int     `csv:"seeds"`
	Depleted     int     `csv:"depleted"`
	LifetimeMean float64 `csv:"lifetime_s_mean"`
	LifetimeStd  float64 `csv:"lifetime_s_std"`
	LifetimeMin  float64 `csv:"lifetime_s_min"`
	LifetimeMax  float64 `csv:"lifetime_s_max"`
	BouncesMean  float64 `csv:"bounces_mean"`
	FreezesMean  float64 `csv:"freezes_mean"`
	BallsMean    float64 `csv:"balls_mean"`
	PeakSpeedMax float64 `csv:"peak_speed_max"`
}

// evaluate runs every seed for one mode combination in parallel.
func evaluate(p world.Params, seeds []int64, maxTicks int64) ComboStats {
	results := make([]roundResult, len(seeds))
	var wg sync.WaitGroup
	for i, seed := range seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = runRound(p, s, maxTicks)
		}(i, seed)
	}
	wg.Wait()

	return summarize(modesLabel(p.Modes), results, p.FixedStep)
}

// summarize aggregates round results; lifetimes are reported in simulated
// seconds.
func summarize(label string, results []roundResult, dt float64) ComboStats {
	cs := ComboStats{Modes: label, Seeds: len(results)}
	if len(results) == 0 {
		return cs
	}

	lifetimes := make([]float64, len(results))
	bounces := make([]float64, len(results))
	freezes := make([]float64, len(results))
	balls := make([]float64, len(results))
	for i, r := range results {
		lifetimes[i] = float64(r.ticks) * dt
		bounces[i] = float64(r.bounces)
		freezes[i] = float64(r.freezes)
		balls[i] = float64(r.balls)
		if r.depleted {
			cs.Depleted++
		}
		cs.PeakSpeedMax = max(cs.PeakSpeedMax, r.peakSpeed)
	}

	cs.LifetimeMean = stat.Mean(lifetimes, nil)
	if len(lifetimes) > 1 {
		cs.LifetimeStd = stat.StdDev(lifetimes, nil)
	}
	cs.LifetimeMin, cs.LifetimeMax = lifetimes[0], lifetimes[0]
	for _, l := range lifetimes[1:] {
		cs.LifetimeMin = min(cs.LifetimeMin, l)
		cs.LifetimeMax = max(cs.LifetimeMax, l)
	}
	cs.BouncesMean = stat.Mean(bounces, nil)
	cs.FreezesMean = stat.Mean(freezes, nil)
	cs.BallsMean = stat.Mean(balls, nil)
	return cs
}

// combos enumerates every growing/speed/timer combination over base.
// Sound is always off; collisions keep the base setting.
func combos(base world.Modes) []world.Modes {
	out := make([]world.Modes, 0, 8)
	for mask := 0; mask < 8; mask++ {
		out = append(out, world.Modes{
			Growing:    mask&1 != 0,
			Speed:      mask&2 != 0,
			Timer:      mask&4 != 0,
			Collisions: base.Collisions,
		})
	}
	return out
}

func modesLabel(m world.Modes) string {
	flag := func(on bool) string {
		if on {
			return "1"
		}
		return "0"
	}
	return fmt.Sprintf("g%s_s%s_t%s_c%s", flag(m.Growing), flag(m.Speed), flag(m.Timer), flag(m.Collisions))
}
