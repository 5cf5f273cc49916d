// Package world owns a running session: the balls, the boundary, the
// simulated clock and the fixed-timestep loop that drives them.
package world

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ring/components"
	"github.com/pthm-cable/ring/systems"
	"github.com/pthm-cable/ring/telemetry"
)

// Observer receives telemetry events as they happen.
type Observer interface {
	Record(telemetry.Event)
}

// Session is a single round of the simulation. It is not safe for
// concurrent use; the host loop is the only writer.
type Session struct {
	params Params
	step   systems.StepParams
	stepMS float64

	seed int64
	rng  *rand.Rand

	balls      []*components.Ball
	boundary   *components.Boundary
	ballRadius float64
	startTime  float64 // timer epoch, sim ms

	tick        int64
	accumulator float64 // seconds not yet simulated
	nextID      uint32

	// OnBounce fires once per boundary bounce when sound mode is on.
	OnBounce func()
	// OnReset fires before the decay reset discards the round.
	OnReset func(reason string)
	// Observer, if set, receives telemetry events.
	Observer Observer
	// Perf, if set, times the tick phases.
	Perf *telemetry.PerfCollector
}

// New creates a session and performs the initial reset.
func New(p Params, seed int64) *Session {
	s := &Session{
		params: p,
		step:   p.stepParams(),
		stepMS: p.StepMS,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
	}
	s.reset(telemetry.ResetStart)
	return s
}

// Now returns the simulated time in milliseconds.
func (s *Session) Now() float64 {
	return float64(s.tick) * s.stepMS
}

// TickCount returns the number of fixed steps run so far.
func (s *Session) TickCount() int64 {
	return s.tick
}

// Seed returns the RNG seed the session was created with.
func (s *Session) Seed() int64 {
	return s.seed
}

// Params returns the session parameters.
func (s *Session) Params() Params {
	return s.params
}

// Balls returns the live balls in spawn order. Callers must not modify them.
func (s *Session) Balls() []*components.Ball {
	return s.balls
}

// Boundary returns the live boundary.
func (s *Session) Boundary() *components.Boundary {
	return s.boundary
}

// BallRadius returns the shared ball radius.
func (s *Session) BallRadius() float64 {
	return s.ballRadius
}

// Reset starts a new round with one ball and a full-size boundary.
func (s *Session) Reset() {
	s.reset(telemetry.ResetManual)
}

func (s *Session) reset(reason string) {
	now := s.Now()

	s.boundary = components.NewBoundary(s.params.Center, s.params.BoundaryRadius, s.params.Decrement)
	// The first bounce of a round is always eligible to shrink
	s.boundary.LastBounce = now - s.params.BounceDelay
	s.ballRadius = s.params.BallRadius
	s.balls = nil
	s.startTime = now

	s.record(telemetry.NewResetEvent(s.tick, reason))
	s.addBall()

	slog.Info("session reset",
		"reason", reason,
		"tick", s.tick,
		"boundary_radius", s.boundary.Radius,
	)
}

// Spawn adds one ball at a jittered point near the center. Existing balls
// and the boundary are untouched.
func (s *Session) Spawn() {
	s.addBall()
}

func (s *Session) addBall() *components.Ball {
	s.nextID++
	b := components.NewBall(s.nextID, s.spawnPoint(), s.params.InitialVelocity, s.params.TrailLength)
	b.LastBounce = s.Now() - s.params.BounceDelay
	s.balls = append(s.balls, b)
	s.record(telemetry.Event{Type: telemetry.EventSpawn, Tick: s.tick, BallID: b.ID})
	return b
}

// spawnPoint jitters each axis uniformly by an integer in [-v, v].
func (s *Session) spawnPoint() r2.Vec {
	v := s.params.SpawnVariance
	return r2.Vec{
		X: s.params.Center.X + float64(s.rng.Intn(2*v+1)-v),
		Y: s.params.Center.Y + float64(s.rng.Intn(2*v+1)-v),
	}
}

// Remaining returns the timer-mode time left in ms. It may be negative
// between the expiry and the tick that handles it.
func (s *Session) Remaining() float64 {
	return s.params.FreezeTime - (s.Now() - s.startTime)
}

// Advance feeds real elapsed time into the accumulator and runs as many
// whole fixed steps as it covers. The remainder carries to the next call.
// Backlog beyond MaxStepsPerUpdate is dropped. Returns the steps run.
func (s *Session) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		s.accumulator += elapsed.Seconds()
	}

	steps := 0
	for s.accumulator >= s.params.FixedStep {
		if steps >= s.params.MaxStepsPerUpdate {
			dropped := int(s.accumulator / s.params.FixedStep)
			s.accumulator = math.Mod(s.accumulator, s.params.FixedStep)
			slog.Warn("dropping simulation backlog",
				"tick", s.tick,
				"dropped_steps", dropped,
			)
			break
		}
		s.Tick()
		s.accumulator -= s.params.FixedStep
		steps++
	}
	return steps
}

// Tick runs exactly one fixed step: move every ball, resolve contacts,
// then apply the decay and timer rules.
func (s *Session) Tick() {
	if s.Perf != nil {
		s.Perf.StartTick()
		s.Perf.Enter(telemetry.PhaseIntegrate)
	}

	s.tick++
	now := s.Now()

	for _, b := range s.balls {
		res := systems.Step(b, s.boundary, &s.ballRadius, s.step, now)
		if !res.Bounced {
			continue
		}
		s.record(telemetry.NewBounceEvent(s.tick, b.ID))
		if res.Shrunk {
			s.record(telemetry.Event{Type: telemetry.EventShrink, Tick: s.tick, BallID: b.ID})
		}
		if res.Grew {
			s.record(telemetry.Event{Type: telemetry.EventGrow, Tick: s.tick, BallID: b.ID})
		}
		if res.PlaySound && s.OnBounce != nil {
			s.OnBounce()
		}
	}

	if s.params.Modes.Collisions {
		if s.Perf != nil {
			s.Perf.Enter(telemetry.PhaseCollide)
		}
		if n := systems.ResolveAll(s.balls, s.ballRadius); n > 0 {
			s.record(telemetry.NewContactEvent(s.tick, n))
		}
	}

	if s.Perf != nil {
		s.Perf.Enter(telemetry.PhaseRules)
	}

	if s.boundary.Radius <= s.params.ResetThreshold {
		if s.OnReset != nil {
			s.OnReset(telemetry.ResetDepleted)
		}
		s.reset(telemetry.ResetDepleted)
	}

	if s.params.Modes.Timer && s.Remaining() <= 0 {
		s.freeze()
	}

	if s.Perf != nil {
		s.Perf.EndTick()
	}
}

// freeze pins every ball in place, adds one live ball and restarts the timer.
func (s *Session) freeze() {
	frozen := 0
	for _, b := range s.balls {
		if !b.Frozen {
			b.Freeze()
			frozen++
		}
	}
	s.record(telemetry.NewFreezeEvent(s.tick, frozen))
	s.addBall()
	s.startTime = s.Now()

	slog.Info("timer expired",
		"tick", s.tick,
		"frozen", frozen,
		"balls", len(s.balls),
	)
}

func (s *Session) record(ev telemetry.Event) {
	if s.Observer != nil {
		s.Observer.Record(ev)
	}
}

// Sample summarizes the session for a telemetry window.
func (s *Session) Sample() telemetry.SessionSample {
	sample := telemetry.SessionSample{
		Balls:          len(s.balls),
		BoundaryRadius: s.boundary.Radius,
		BallRadius:     s.ballRadius,
	}
	for _, b := range s.balls {
		if b.Frozen {
			sample.Frozen++
			continue
		}
		sample.Speeds = append(sample.Speeds, systems.Speed(b.Vel))
	}
	return sample
}
