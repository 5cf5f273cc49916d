package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ring/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Velocity       float64 // speed of the newest ball, px/s
	FPS            int32
	BoundaryRadius float64
	InitialRadius  float64
	BallRadius     float64
	Balls          int
	Frozen         int
	TimerActive    bool
	Remaining      float64 // seconds
	FreezeTime     float64 // seconds
	Tick           int64
	Modes          string
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	size := h.renderer.Theme.HUDFontSize
	step := size + 16

	y := int32(10)
	rl.DrawText(fmt.Sprintf("Velocity: %.2f", data.Velocity), 10, y, size, rl.White)
	y += step
	rl.DrawText(fmt.Sprintf("FPS: %d", data.FPS), 10, y, size, rl.White)
	y += step
	rl.DrawText(fmt.Sprintf("Radius: %.0f", data.BoundaryRadius), 10, y, size, rl.White)
	y += step
	rl.DrawText(fmt.Sprintf("Balls: %d (%d frozen)", data.Balls, data.Frozen), 10, y, size, rl.White)
	y += step

	if data.TimerActive {
		rl.DrawText(fmt.Sprintf("Timer: %.1fs", data.Remaining), 10, y, size, rl.Yellow)
		y += step
	}

	rl.DrawText(data.Modes, 10, y, h.renderer.Theme.FontSize+2, rl.Gray)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StatsPanel shows round progress bars.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the stats panel.
func (s *StatsPanel) Draw(data HUDData) {
	r := s.renderer
	p := r.Theme.Padding
	r.DrawPanel(s.x, s.y, s.width, r.Theme.LineHeight*6+p*2)

	y := r.DrawSectionHeader(s.x+p, s.y+p, "Round")
	w := s.width - 2*p

	if data.InitialRadius > 0 {
		y = r.DrawBar(s.x+p, y, "Ring", float32(data.BoundaryRadius/data.InitialRadius), w)
	}
	if data.TimerActive && data.FreezeTime > 0 {
		y = r.DrawBar(s.x+p, y, "Timer", float32(data.Remaining/data.FreezeTime), w)
	}
	y = r.DrawLabelValue(s.x+p, y, "Ball r", fmt.Sprintf("%.0f", data.BallRadius))
	r.DrawLabelValue(s.x+p, y, "Tick", fmt.Sprintf("%d", data.Tick))
}

// PerfPanel renders the tick phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %dus  Max: %dus", stats.AvgTick.Microseconds(), stats.MaxTick.Microseconds()),
		x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases() {
		pct := stats.Phase(phase).Pct

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 40 {
			color = rl.Orange
		}

		rl.DrawText(fmt.Sprintf("%-10s %5.1f%%", phase, pct), x, y, 12, color)
		y += 14
	}
}
