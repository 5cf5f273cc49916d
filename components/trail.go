package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Trail is a fixed-capacity FIFO of recent ball positions.
// Pushing into a full trail evicts the oldest point.
type Trail struct {
	points []r2.Vec
	head   int // index of the oldest point
	count  int
}

// NewTrail creates an empty trail holding at most capacity points.
func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{points: make([]r2.Vec, capacity)}
}

// Push appends p rounded to whole pixels.
func (t *Trail) Push(p r2.Vec) {
	p = r2.Vec{X: math.Round(p.X), Y: math.Round(p.Y)}
	if t.count < len(t.points) {
		t.points[(t.head+t.count)%len(t.points)] = p
		t.count++
		return
	}
	t.points[t.head] = p
	t.head = (t.head + 1) % len(t.points)
}

// Len returns the number of stored points.
func (t *Trail) Len() int { return t.count }

// Cap returns the trail capacity.
func (t *Trail) Cap() int { return len(t.points) }

// At returns the i-th point, oldest first.
func (t *Trail) At(i int) r2.Vec {
	if i < 0 || i >= t.count {
		panic("components: trail index out of range")
	}
	return t.points[(t.head+i)%len(t.points)]
}

// Points returns a copy of the stored points, oldest first.
func (t *Trail) Points() []r2.Vec {
	out := make([]r2.Vec, t.count)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

