package systems

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ring/components"
)

// StepParams holds the integrator constants and mode flags used by Step.
type StepParams struct {
	DT              float64 // seconds per tick
	Gravity         float64 // px/s^2, +Y is down
	BounceDelay     float64 // ms between gated shrink/growth events
	GrowthIncrement float64 // ball radius gained per gated bounce in growing mode
	SpeedFactor     float64 // velocity multiplier per bounce in speed mode

	Sound   bool
	Growing bool
	Speed   bool
}

// StepResult reports what happened to a ball during one tick.
type StepResult struct {
	Bounced   bool // touched the boundary
	Shrunk    bool // boundary radius was decremented
	Grew      bool // shared ball radius was increased
	PlaySound bool
}

// Step advances one ball by one fixed tick inside the boundary.
// radius points at the shared ball radius, which grows in place under
// growing mode. now is the simulated time in ms. Frozen balls are left
// untouched.
func Step(b *components.Ball, bd *components.Boundary, radius *float64, p StepParams, now float64) StepResult {
	var res StepResult
	if b.Frozen {
		return res
	}

	// Gravity acts on the vertical axis only
	b.Vel.Y += p.Gravity * p.DT
	b.Pos = r2.Add(b.Pos, r2.Scale(p.DT, b.Vel))

	dist := Distance(b.Pos, bd.Center)
	if dist+*radius >= bd.Radius {
		res.Bounced = true
		n := Normal(Angle(bd.Center, b.Pos))

		b.Vel = Reflect(b.Vel, n)

		// Shrink and growth are gated independently
		res.Shrunk = bd.Shrink(now, p.BounceDelay)
		if p.Growing && now-b.LastBounce >= p.BounceDelay {
			*radius += p.GrowthIncrement
			b.LastBounce = now
			res.Grew = true
		}

		// Correct against the post-bounce radii so the ball ends the tick
		// inside the wall
		overlap := (dist + *radius) - bd.Radius
		b.Pos = r2.Sub(b.Pos, r2.Scale(overlap, n))

		res.PlaySound = p.Sound
		if p.Speed {
			b.Vel = r2.Scale(p.SpeedFactor, b.Vel)
		}
	}

	mustFinite(b)
	b.Trail.Push(b.Pos)
	return res
}

// mustFinite panics on NaN state; the stepper never produces it from
// well-formed input.
func mustFinite(b *components.Ball) {
	if math.IsNaN(b.Pos.X) || math.IsNaN(b.Pos.Y) || math.IsNaN(b.Vel.X) || math.IsNaN(b.Vel.Y) {
		panic(fmt.Sprintf("systems: ball %d has NaN state pos=%v vel=%v", b.ID, b.Pos, b.Vel))
	}
}
