package world

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ring/components"
	"github.com/pthm-cable/ring/telemetry"
)

// BallView is a read-only copy of one ball for rendering.
type BallView struct {
	ID     uint32
	Pos    r2.Vec
	Vel    r2.Vec
	Trail  []r2.Vec // oldest first
	Frozen bool
}

// View is everything the render collaborator needs for one frame.
type View struct {
	Tick           int64
	Center         r2.Vec
	BoundaryRadius float64
	BallRadius     float64
	Balls          []BallView

	TimerActive bool
	Remaining   float64 // seconds, only meaningful when TimerActive
}

// Newest returns the most recently spawned ball.
func (v View) Newest() (BallView, bool) {
	if len(v.Balls) == 0 {
		return BallView{}, false
	}
	return v.Balls[len(v.Balls)-1], true
}

// Snapshot copies the current state for rendering. It does not mutate
// the session.
func (s *Session) Snapshot() View {
	v := View{
		Tick:           s.tick,
		Center:         s.boundary.Center,
		BoundaryRadius: s.boundary.Radius,
		BallRadius:     s.ballRadius,
		Balls:          make([]BallView, len(s.balls)),
		TimerActive:    s.params.Modes.Timer,
	}
	if v.TimerActive {
		v.Remaining = max(0, s.Remaining()) / 1000
	}
	for i, b := range s.balls {
		v.Balls[i] = BallView{
			ID:     b.ID,
			Pos:    b.Pos,
			Vel:    b.Vel,
			Trail:  b.Trail.Points(),
			Frozen: b.Frozen,
		}
	}
	return v
}

// Export captures the full session state for saving.
func (s *Session) Export(reason string) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		Seed:      s.seed,
		Reason:    reason,
		Tick:      s.tick,
		StartTime: s.startTime,
		Boundary: telemetry.BoundaryState{
			X:          s.boundary.Center.X,
			Y:          s.boundary.Center.Y,
			Radius:     s.boundary.Radius,
			LastBounce: s.boundary.LastBounce,
		},
		BallRadius: s.ballRadius,
		Balls:      make([]telemetry.BallState, len(s.balls)),
	}
	for i, b := range s.balls {
		trail := b.Trail.Points()
		bs := telemetry.BallState{
			ID:         b.ID,
			X:          b.Pos.X,
			Y:          b.Pos.Y,
			VelX:       b.Vel.X,
			VelY:       b.Vel.Y,
			Frozen:     b.Frozen,
			LastBounce: b.LastBounce,
			Trail:      make([][2]float64, len(trail)),
		}
		for j, p := range trail {
			bs.Trail[j] = [2]float64{p.X, p.Y}
		}
		snap.Balls[i] = bs
	}
	return snap
}

// Restore replaces the session state with a saved snapshot. The boundary
// keeps its configured initial radius for future resets.
func (s *Session) Restore(snap *telemetry.Snapshot) error {
	if len(snap.Balls) == 0 {
		return fmt.Errorf("restore: snapshot has no balls")
	}
	if snap.Tick < 0 {
		return fmt.Errorf("restore: negative tick %d", snap.Tick)
	}

	bd := components.NewBoundary(
		r2.Vec{X: snap.Boundary.X, Y: snap.Boundary.Y},
		s.params.BoundaryRadius,
		s.params.Decrement,
	)
	bd.Radius = snap.Boundary.Radius
	bd.LastBounce = snap.Boundary.LastBounce

	balls := make([]*components.Ball, len(snap.Balls))
	var maxID uint32
	for i, bs := range snap.Balls {
		b := components.NewBall(bs.ID, r2.Vec{X: bs.X, Y: bs.Y}, r2.Vec{X: bs.VelX, Y: bs.VelY}, s.params.TrailLength)
		b.Frozen = bs.Frozen
		b.LastBounce = bs.LastBounce
		for _, p := range bs.Trail {
			b.Trail.Push(r2.Vec{X: p[0], Y: p[1]})
		}
		balls[i] = b
		maxID = max(maxID, bs.ID)
	}

	s.seed = snap.Seed
	s.rng = rand.New(rand.NewSource(snap.Seed ^ snap.Tick))
	s.tick = snap.Tick
	s.accumulator = 0
	s.startTime = snap.StartTime
	s.boundary = bd
	s.ballRadius = snap.BallRadius
	s.balls = balls
	s.nextID = maxID
	return nil
}
