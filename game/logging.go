package game

import (
	"log/slog"
)

// logStartup records the session parameters once at startup.
func logStartup(g *Game, opts Options) {
	p := g.session.Params()
	slog.Info("session started",
		"seed", g.session.Seed(),
		"headless", opts.Headless,
		"sound", p.Modes.Sound,
		"growing", p.Modes.Growing,
		"speed", p.Modes.Speed,
		"timer", p.Modes.Timer,
		"collisions", p.Modes.Collisions,
		"boundary_radius", p.BoundaryRadius,
		"output_dir", g.outputManager.Dir(),
	)
}

// logShutdown records the final state.
func logShutdown(g *Game) {
	slog.Info("session ended",
		"tick", g.session.TickCount(),
		"sim_time_ms", g.session.Now(),
		"balls", len(g.session.Balls()),
		"boundary_radius", g.session.Boundary().Radius,
		"resets", g.collector.TotalResets(),
	)
}
