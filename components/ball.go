// Package components defines the plain data records of the simulation.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Ball is a single bouncing ball. Radius is not stored here: every ball
// shares the session's current ball radius.
type Ball struct {
	ID     uint32
	Pos    r2.Vec // center, arena pixels
	Vel    r2.Vec // px/s
	Trail  *Trail
	Frozen bool // frozen balls neither move nor collide

	// LastBounce is the simulated time (ms) at which this ball last
	// triggered growth.
	LastBounce float64
}

// NewBall creates a ball at pos with the given velocity and an empty
// trail of the given capacity.
func NewBall(id uint32, pos, vel r2.Vec, trailLength int) *Ball {
	return &Ball{
		ID:    id,
		Pos:   pos,
		Vel:   vel,
		Trail: NewTrail(trailLength),
	}
}

// Freeze pins the ball in place as a static obstacle.
func (b *Ball) Freeze() {
	b.Vel = r2.Vec{}
	b.Frozen = true
}
