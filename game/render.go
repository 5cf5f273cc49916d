package game

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ring/renderer"
	"github.com/pthm-cable/ring/systems"
	"github.com/pthm-cable/ring/ui"
	"github.com/pthm-cable/ring/world"
)

const controlsLegend = "SPACE/click: spawn | R: reset | T/V/S/P: overlays | wheel: zoom | ESC: quit"

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	view := g.session.Snapshot()

	g.arena.Draw(view, g.camera, renderer.DrawOptions{
		Trails:   g.overlays.IsEnabled(ui.OverlayTrails),
		Velocity: g.overlays.IsEnabled(ui.OverlayVelocity),
	})

	data := g.hudData(view)
	g.hud.Draw(data)
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)

	if g.overlays.IsEnabled(ui.OverlayStats) {
		g.statsPanel.Draw(data)
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	// Buttons are applied on the next update, keeping the session single-writer
	res := g.controls.Draw(g.overlays)
	if res.Spawn {
		g.Queue(CommandSpawn)
	}
	if res.Reset {
		g.Queue(CommandReset)
	}
}

// hudData builds the HUD fields from a view.
func (g *Game) hudData(view world.View) ui.HUDData {
	data := ui.HUDData{
		FPS:            rl.GetFPS(),
		BoundaryRadius: view.BoundaryRadius,
		InitialRadius:  g.cfg.Boundary.Radius,
		BallRadius:     view.BallRadius,
		Balls:          len(view.Balls),
		TimerActive:    view.TimerActive,
		Remaining:      view.Remaining,
		FreezeTime:     g.cfg.Timer.FreezeTimeMS / 1000,
		Tick:           view.Tick,
		Modes:          modesLabel(g.session.Params().Modes),
	}
	if newest, ok := view.Newest(); ok {
		data.Velocity = systems.Speed(newest.Vel)
	}
	for _, b := range view.Balls {
		if b.Frozen {
			data.Frozen++
		}
	}
	return data
}

// modesLabel lists the enabled modes.
func modesLabel(m world.Modes) string {
	var on []string
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"sound", m.Sound},
		{"growing", m.Growing},
		{"speed", m.Speed},
		{"timer", m.Timer},
		{"collisions", m.Collisions},
	} {
		if f.on {
			on = append(on, f.name)
		}
	}
	if len(on) == 0 {
		return "modes: none"
	}
	return fmt.Sprintf("modes: %s", strings.Join(on, ", "))
}
