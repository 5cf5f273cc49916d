// Package renderer draws the arena: the ring, the trails and the balls.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ring/camera"
	"github.com/pthm-cable/ring/world"
)

// DrawOptions selects the optional layers.
type DrawOptions struct {
	Trails   bool
	Velocity bool
}

// ArenaRenderer draws a session view through the camera.
type ArenaRenderer struct {
	hue       float32 // ring color phase, degrees
	thickness float32 // ring width in arena units

	Background  rl.Color
	Letterbox   rl.Color
	BallColor   rl.Color
	FrozenColor rl.Color
	TrailColor  rl.Color
}

// NewArenaRenderer creates a renderer for a ring of the given thickness.
func NewArenaRenderer(thickness float32) *ArenaRenderer {
	return &ArenaRenderer{
		thickness:   thickness,
		Background:  rl.Black,
		Letterbox:   rl.Color{R: 12, G: 12, B: 16, A: 255},
		BallColor:   rl.Green,
		FrozenColor: rl.Gray,
		TrailColor:  rl.Color{R: 120, G: 220, B: 120, A: 255},
	}
}

// RingColor returns the current ring color.
func (a *ArenaRenderer) RingColor() rl.Color {
	return rl.ColorFromHSV(a.hue, 1, 1)
}

// Draw renders one frame and advances the ring hue by one degree.
func (a *ArenaRenderer) Draw(v world.View, cam *camera.Camera, opts DrawOptions) {
	rl.ClearBackground(a.Letterbox)
	x, y, w, h := cam.ArenaRect()
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, a.Background)

	scale := cam.Scale()
	a.drawRing(v, cam, scale)

	r := float32(v.BallRadius) * scale

	if opts.Trails {
		for _, b := range v.Balls {
			a.drawTrail(b, cam, r)
		}
	}

	for _, b := range v.Balls {
		bx, by := cam.WorldToScreen(float32(b.Pos.X), float32(b.Pos.Y))
		if !cam.IsVisible(float32(b.Pos.X), float32(b.Pos.Y), float32(v.BallRadius)) {
			continue
		}
		color := a.BallColor
		if b.Frozen {
			color = a.FrozenColor
		}
		rl.DrawCircleV(rl.Vector2{X: bx, Y: by}, r, color)

		if opts.Velocity && !b.Frozen {
			ex, ey := cam.WorldToScreen(float32(b.Pos.X+b.Vel.X*0.1), float32(b.Pos.Y+b.Vel.Y*0.1))
			rl.DrawLineV(rl.Vector2{X: bx, Y: by}, rl.Vector2{X: ex, Y: ey}, rl.Yellow)
		}
	}

	a.hue += 1
	if a.hue >= 360 {
		a.hue -= 360
	}
}

// drawRing draws the boundary inward from its radius. A collapsed ring
// is not drawn.
func (a *ArenaRenderer) drawRing(v world.View, cam *camera.Camera, scale float32) {
	outer := float32(v.BoundaryRadius)
	if outer <= 0 {
		return
	}
	inner := max(0, outer-a.thickness)

	cx, cy := cam.WorldToScreen(float32(v.Center.X), float32(v.Center.Y))
	rl.DrawRing(rl.Vector2{X: cx, Y: cy}, inner*scale, outer*scale, 0, 360, 96, a.RingColor())
}

// drawTrail draws past positions oldest first, fading in toward the ball.
func (a *ArenaRenderer) drawTrail(b world.BallView, cam *camera.Camera, r float32) {
	n := len(b.Trail)
	for i, p := range b.Trail {
		alpha := 0.5 * float32(i+1) / float32(n)
		px, py := cam.WorldToScreen(float32(p.X), float32(p.Y))
		rl.DrawCircleV(rl.Vector2{X: px, Y: py}, r*0.6, rl.Fade(a.TrailColor, alpha))
	}
}
