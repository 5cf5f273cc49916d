package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ring/components"
)

// Resolve handles an equal-mass elastic collision between two balls of the
// shared radius. Velocity components along the line of centers are
// swapped and the pair is pushed apart by half the overlap each.
// Reports whether the balls were in contact.
func Resolve(a, b *components.Ball, radius float64) bool {
	if a.Frozen || b.Frozen {
		return false
	}

	dist := Distance(a.Pos, b.Pos)
	minDist := 2 * radius
	if dist >= minDist {
		return false
	}

	// Coincident centers give angle 0 and separate along +X
	angle := Angle(a.Pos, b.Pos)

	va := toAxis(a.Vel, angle)
	vb := toAxis(b.Vel, angle)
	va.X, vb.X = vb.X, va.X
	a.Vel = fromAxis(va, angle)
	b.Vel = fromAxis(vb, angle)

	n := Normal(angle)
	half := (minDist - dist) / 2
	a.Pos = r2.Sub(a.Pos, r2.Scale(half, n))
	b.Pos = r2.Add(b.Pos, r2.Scale(half, n))
	return true
}

// ResolveAll resolves every unordered pair in index order
// (0,1), (0,2), ..., (n-2,n-1). A later pair sees positions already
// corrected by earlier pairs in the same tick. Returns the number of
// contacts resolved.
func ResolveAll(balls []*components.Ball, radius float64) int {
	contacts := 0
	for i := 0; i < len(balls); i++ {
		for j := i + 1; j < len(balls); j++ {
			if Resolve(balls[i], balls[j], radius) {
				contacts++
			}
		}
	}
	return contacts
}
