package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ring/components"
)

const tol = 1e-9

var center = r2.Vec{X: 800, Y: 450}

func newBoundary() *components.Boundary {
	return components.NewBoundary(center, 450, 5)
}

func defaultParams() StepParams {
	return StepParams{
		DT:              1.0 / 240.0,
		Gravity:         1680,
		BounceDelay:     50,
		GrowthIncrement: 1,
		SpeedFactor:     1.005,
	}
}

// ballAtWall places a ball just inside the right side of the wall moving outward.
func ballAtWall(radius, speed float64) *components.Ball {
	pos := r2.Vec{X: center.X + 450 - radius - 0.5, Y: center.Y}
	return components.NewBall(0, pos, r2.Vec{X: speed}, 20)
}

func TestAngleAndNormal(t *testing.T) {
	tests := []struct {
		name      string
		from, to  r2.Vec
		wantAngle float64
	}{
		{"right", r2.Vec{}, r2.Vec{X: 1}, 0},
		{"down", r2.Vec{}, r2.Vec{Y: 2}, math.Pi / 2},
		{"left", r2.Vec{}, r2.Vec{X: -3}, math.Pi},
		{"coincident", r2.Vec{X: 5, Y: 5}, r2.Vec{X: 5, Y: 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Angle(tt.from, tt.to)
			if math.Abs(got-tt.wantAngle) > tol {
				t.Errorf("Angle = %v, want %v", got, tt.wantAngle)
			}
			if n := r2.Norm(Normal(got)); math.Abs(n-1) > tol {
				t.Errorf("|Normal| = %v, want 1", n)
			}
		})
	}
}

func TestReflect(t *testing.T) {
	got := Reflect(r2.Vec{X: 3, Y: 4}, r2.Vec{X: 1})
	if math.Abs(got.X+3) > tol || math.Abs(got.Y-4) > tol {
		t.Errorf("Reflect = %v, want {-3 4}", got)
	}
}

func TestStepReflectionPreservesSpeed(t *testing.T) {
	tests := []struct {
		name    string
		gravity float64
		vel     r2.Vec
	}{
		{"horizontal no gravity", 0, r2.Vec{X: 600}},
		{"oblique no gravity", 0, r2.Vec{X: 400, Y: -300}},
		{"with gravity", 1680, r2.Vec{X: 500, Y: 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultParams()
			p.Gravity = tt.gravity
			bd := newBoundary()
			radius := 20.0
			b := ballAtWall(radius, 0)
			b.Vel = tt.vel

			// Speed right before the reflection includes this tick's gravity
			pre := Speed(r2.Vec{X: tt.vel.X, Y: tt.vel.Y + tt.gravity*p.DT})

			res := Step(b, bd, &radius, p, 1000)
			if !res.Bounced {
				t.Fatal("expected a bounce")
			}
			if post := Speed(b.Vel); math.Abs(post-pre) > 1e-6 {
				t.Errorf("speed after bounce = %v, want %v", post, pre)
			}
		})
	}
}

func TestStepNoPenetration(t *testing.T) {
	p := defaultParams()
	p.Growing = true
	bd := newBoundary()
	radius := 20.0
	b := components.NewBall(0, r2.Vec{X: center.X + 37, Y: center.Y - 120}, r2.Vec{X: 900, Y: -350}, 20)

	bounces := 0
	for tick := 1; tick <= 5000; tick++ {
		now := float64(tick) * p.DT * 1000
		res := Step(b, bd, &radius, p, now)
		if res.Bounced {
			bounces++
		}
		if bd.Radius-radius < 0 {
			break
		}
		d := Distance(b.Pos, bd.Center)
		if d+radius > bd.Radius+1e-6 {
			t.Fatalf("tick %d: ball outside boundary: d=%v r=%v R=%v", tick, d, radius, bd.Radius)
		}
	}
	if bounces == 0 {
		t.Fatal("expected at least one bounce")
	}
}

func TestStepTrailFIFO(t *testing.T) {
	p := defaultParams()
	bd := newBoundary()
	radius := 20.0
	b := components.NewBall(0, center, r2.Vec{X: 2, Y: 2}, 20)

	var history []r2.Vec
	for tick := 1; tick <= 25; tick++ {
		Step(b, bd, &radius, p, float64(tick))
		history = append(history, r2.Vec{X: math.Round(b.Pos.X), Y: math.Round(b.Pos.Y)})
		if b.Trail.Len() > 20 {
			t.Fatalf("tick %d: trail length %d exceeds 20", tick, b.Trail.Len())
		}
	}

	got := b.Trail.Points()
	want := history[5:]
	if len(got) != len(want) {
		t.Fatalf("trail has %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("trail[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStepShrinkGating(t *testing.T) {
	p := defaultParams()
	p.Gravity = 0
	bd := newBoundary()
	radius := 20.0

	tests := []struct {
		now        float64
		wantShrunk bool
		wantRadius float64
	}{
		{100, true, 445},
		{120, false, 445},
		{149, false, 445},
		{150, true, 440},
		{400, true, 435},
	}

	for _, tt := range tests {
		// Fresh ball against the current wall each time
		b := components.NewBall(0, r2.Vec{X: center.X + bd.Radius - radius - 0.5, Y: center.Y}, r2.Vec{X: 500}, 20)
		res := Step(b, bd, &radius, p, tt.now)
		if !res.Bounced {
			t.Fatalf("now=%v: expected bounce", tt.now)
		}
		if res.Shrunk != tt.wantShrunk {
			t.Errorf("now=%v: Shrunk = %v, want %v", tt.now, res.Shrunk, tt.wantShrunk)
		}
		if bd.Radius != tt.wantRadius {
			t.Errorf("now=%v: radius = %v, want %v", tt.now, bd.Radius, tt.wantRadius)
		}
	}
}

// A ball resting on the center has no direction to the wall; atan2(0, 0)
// gives angle 0, so it is pushed toward -X.
func TestStepBallAtCenter(t *testing.T) {
	p := defaultParams()
	p.Gravity = 0
	radius := 20.0

	tests := []struct {
		name       string
		lastBounce float64
		wantShrunk bool
		wantRadius float64
	}{
		{"shrink eligible", -50, true, 5},
		{"shrink gated", 100, false, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := newBoundary()
			bd.Radius = 10
			bd.LastBounce = tt.lastBounce
			b := components.NewBall(0, center, r2.Vec{}, 20)

			res := Step(b, bd, &radius, p, 100)

			if !res.Bounced || res.Shrunk != tt.wantShrunk {
				t.Fatalf("result = %+v, want bounce with Shrunk=%v", res, tt.wantShrunk)
			}
			if bd.Radius != tt.wantRadius {
				t.Errorf("boundary radius = %v, want %v", bd.Radius, tt.wantRadius)
			}
			want := r2.Vec{X: center.X - (radius - tt.wantRadius), Y: center.Y}
			if math.Abs(b.Pos.X-want.X) > tol || math.Abs(b.Pos.Y-want.Y) > tol {
				t.Errorf("pos = %v, want %v", b.Pos, want)
			}
			if b.Vel != (r2.Vec{}) {
				t.Errorf("vel = %v, want zero", b.Vel)
			}
		})
	}
}

func TestStepGrowthGatedPerBall(t *testing.T) {
	p := defaultParams()
	p.Gravity = 0
	p.Growing = true
	bd := newBoundary()
	bd.Decrement = 0
	radius := 20.0

	b := ballAtWall(radius, 500)
	if res := Step(b, bd, &radius, p, 100); !res.Grew {
		t.Fatal("first bounce should grow")
	}
	if radius != 21 {
		t.Errorf("radius = %v, want 21", radius)
	}

	b.Vel = r2.Vec{X: 500}
	if res := Step(b, bd, &radius, p, 130); res.Grew {
		t.Error("bounce inside the delay window should not grow")
	}

	// A different ball has its own growth timer
	other := ballAtWall(radius, 500)
	if res := Step(other, bd, &radius, p, 130); !res.Grew {
		t.Error("another ball's first bounce should grow")
	}
	if radius != 22 {
		t.Errorf("radius = %v, want 22", radius)
	}
}

func TestStepSpeedEscalation(t *testing.T) {
	p := defaultParams()
	p.Gravity = 0
	p.Speed = true
	bd := newBoundary()
	bd.Decrement = 0
	radius := 20.0

	v0 := 3000.0
	b := components.NewBall(0, center, r2.Vec{X: v0}, 20)

	k := 0
	for tick := 1; tick <= 3000; tick++ {
		if Step(b, bd, &radius, p, float64(tick)).Bounced {
			k++
		}
		want := v0 * math.Pow(1.005, float64(k))
		if got := Speed(b.Vel); math.Abs(got-want) > 1e-6*want {
			t.Fatalf("after %d bounces speed = %v, want %v", k, got, want)
		}
	}
	if k < 10 {
		t.Errorf("expected many bounces, got %d", k)
	}
}

func TestStepSoundFlag(t *testing.T) {
	p := defaultParams()
	bd := newBoundary()
	radius := 20.0

	b := ballAtWall(radius, 500)
	if res := Step(b, bd, &radius, p, 100); res.PlaySound {
		t.Error("sound disabled should not request playback")
	}

	p.Sound = true
	b = ballAtWall(radius, 500)
	if res := Step(b, bd, &radius, p, 200); !res.PlaySound {
		t.Error("sound enabled should request playback on bounce")
	}

	b = components.NewBall(0, center, r2.Vec{}, 20)
	if res := Step(b, bd, &radius, p, 300); res.PlaySound || res.Bounced {
		t.Error("no bounce should not request playback")
	}
}

func TestStepFrozenBallUntouched(t *testing.T) {
	p := defaultParams()
	bd := newBoundary()
	radius := 20.0
	b := ballAtWall(radius, 500)
	b.Freeze()
	pos := b.Pos

	res := Step(b, bd, &radius, p, 100)
	if res != (StepResult{}) {
		t.Errorf("frozen ball produced %+v", res)
	}
	if b.Pos != pos || b.Vel != (r2.Vec{}) || b.Trail.Len() != 0 {
		t.Errorf("frozen ball changed: pos=%v vel=%v trail=%d", b.Pos, b.Vel, b.Trail.Len())
	}
	if bd.Radius != 450 {
		t.Errorf("boundary radius changed to %v", bd.Radius)
	}
}

func TestStepGravity(t *testing.T) {
	p := defaultParams()
	bd := newBoundary()
	radius := 20.0
	b := components.NewBall(0, center, r2.Vec{X: 2, Y: 2}, 20)

	Step(b, bd, &radius, p, 0)

	wantVY := 2 + 1680*p.DT
	if math.Abs(b.Vel.Y-wantVY) > tol || b.Vel.X != 2 {
		t.Errorf("vel = %v, want {2 %v}", b.Vel, wantVY)
	}
	wantY := center.Y + wantVY*p.DT
	if math.Abs(b.Pos.Y-wantY) > tol {
		t.Errorf("y = %v, want %v", b.Pos.Y, wantY)
	}
}
