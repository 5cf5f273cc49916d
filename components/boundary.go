package components

import "gonum.org/v1/gonum/spatial/r2"

// Boundary is the circular wall the balls bounce inside.
type Boundary struct {
	Center        r2.Vec
	Radius        float64
	InitialRadius float64
	Decrement     float64 // radius lost per gated bounce

	// LastBounce is the simulated time (ms) of the last radius decrement.
	// Shared by all balls.
	LastBounce float64
}

// NewBoundary creates a boundary at full radius.
func NewBoundary(center r2.Vec, radius, decrement float64) *Boundary {
	return &Boundary{
		Center:        center,
		Radius:        radius,
		InitialRadius: radius,
		Decrement:     decrement,
	}
}

// Shrink decrements the radius if at least delay ms have passed since the
// last decrement. Reports whether the radius changed.
func (b *Boundary) Shrink(now, delay float64) bool {
	if now-b.LastBounce < delay {
		return false
	}
	b.Radius -= b.Decrement
	b.LastBounce = now
	return true
}

