// Package systems contains the per-tick simulation steps.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Angle returns the direction of the vector from 'from' to 'to'.
// Coincident points give atan2(0, 0) = 0.
func Angle(from, to r2.Vec) float64 {
	d := r2.Sub(to, from)
	return math.Atan2(d.Y, d.X)
}

// Normal returns the unit vector pointing along angle.
func Normal(angle float64) r2.Vec {
	return r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Reflect mirrors v across the line perpendicular to the unit normal n.
func Reflect(v, n r2.Vec) r2.Vec {
	return r2.Sub(v, r2.Scale(2*r2.Dot(v, n), n))
}

// Speed returns the magnitude of a velocity vector.
func Speed(v r2.Vec) float64 {
	return r2.Norm(v)
}

// toAxis expresses v in the frame rotated by angle: X along the axis,
// Y perpendicular to it.
func toAxis(v r2.Vec, angle float64) r2.Vec {
	c, s := math.Cos(angle), math.Sin(angle)
	return r2.Vec{X: v.X*c + v.Y*s, Y: -v.X*s + v.Y*c}
}

// fromAxis is the inverse of toAxis.
func fromAxis(v r2.Vec, angle float64) r2.Vec {
	c, s := math.Cos(angle), math.Sin(angle)
	return r2.Vec{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}
