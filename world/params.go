package world

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ring/config"
	"github.com/pthm-cable/ring/systems"
)

// Modes are the feature flags fixed for the lifetime of a session.
type Modes struct {
	Sound      bool
	Growing    bool
	Speed      bool
	Timer      bool
	Collisions bool
}

// Params holds everything a Session needs. Times are in simulated
// milliseconds unless noted.
type Params struct {
	Center            r2.Vec
	FixedStep         float64 // seconds per tick
	StepMS            float64 // FixedStep in ms, advances the sim clock
	Gravity           float64 // px/s^2
	BounceDelay       float64
	MaxStepsPerUpdate int

	BoundaryRadius float64
	Decrement      float64
	ResetThreshold float64

	BallRadius      float64
	GrowthIncrement float64
	SpeedFactor     float64
	TrailLength     int
	InitialVelocity r2.Vec // px/s

	SpawnVariance int     // px per axis
	FreezeTime    float64 // timer mode period

	Modes Modes
}

// ParamsFromConfig maps a loaded config onto session parameters.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Center:            r2.Vec{X: cfg.Derived.CenterX, Y: cfg.Derived.CenterY},
		FixedStep:         cfg.Physics.FixedStep,
		StepMS:            cfg.Derived.StepMS,
		Gravity:           cfg.Physics.Gravity,
		BounceDelay:       cfg.Physics.BounceDelayMS,
		MaxStepsPerUpdate: cfg.Physics.MaxStepsPerUpdate,

		BoundaryRadius: cfg.Boundary.Radius,
		Decrement:      cfg.Boundary.Decrement,
		ResetThreshold: cfg.Boundary.ResetThreshold,

		BallRadius:      cfg.Ball.Radius,
		GrowthIncrement: cfg.Ball.GrowthIncrement,
		SpeedFactor:     cfg.Ball.SpeedFactor,
		TrailLength:     cfg.Ball.TrailLength,
		InitialVelocity: r2.Vec{X: cfg.Ball.InitialVelocity[0], Y: cfg.Ball.InitialVelocity[1]},

		SpawnVariance: cfg.Spawn.Variance,
		FreezeTime:    cfg.Timer.FreezeTimeMS,

		Modes: Modes{
			Sound:      cfg.Modes.Sound,
			Growing:    cfg.Modes.Growing,
			Speed:      cfg.Modes.Speed,
			Timer:      cfg.Modes.Timer,
			Collisions: cfg.Modes.Collisions,
		},
	}
}

// DefaultParams returns the parameters of the embedded default config.
func DefaultParams() Params {
	return ParamsFromConfig(config.Defaults())
}

func (p Params) stepParams() systems.StepParams {
	return systems.StepParams{
		DT:              p.FixedStep,
		Gravity:         p.Gravity,
		BounceDelay:     p.BounceDelay,
		GrowthIncrement: p.GrowthIncrement,
		SpeedFactor:     p.SpeedFactor,
		Sound:           p.Modes.Sound,
		Growing:         p.Modes.Growing,
		Speed:           p.Modes.Speed,
	}
}
