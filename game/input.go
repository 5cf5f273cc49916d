package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Command is a host-level action derived from raw input.
type Command uint8

const (
	CommandSpawn Command = iota // add one ball
	CommandReset                // restart the round
	CommandQuit                 // leave the main loop
)

// Queue schedules a command for the next update.
func (g *Game) Queue(cmd Command) {
	g.pending = append(g.pending, cmd)
}

// applyCommands executes queued commands in order.
func (g *Game) applyCommands() {
	for _, cmd := range g.pending {
		switch cmd {
		case CommandSpawn:
			g.session.Spawn()
		case CommandReset:
			g.session.Reset()
		case CommandQuit:
			g.quit = true
		}
	}
	g.pending = g.pending[:0]
}

// handleInput translates keyboard, mouse and window events into commands.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.WindowShouldClose() || rl.IsKeyPressed(rl.KeyEscape) {
		g.Queue(CommandQuit)
		return
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.Queue(CommandSpawn)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Queue(CommandReset)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		if !g.controls.Contains(pos.X, pos.Y, g.overlays) {
			g.Queue(CommandSpawn)
		}
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	for _, desc := range g.overlays.All() {
		if rl.IsKeyPressed(desc.Key) {
			g.overlays.HandleKeyPress(desc.Key)
		}
	}

	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.layoutPanels()
}

// layoutPanels anchors the controls panel to the top-right corner.
func (g *Game) layoutPanels() {
	g.controls.SetPosition(int32(g.screenWidth)-210, 10)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.camera.ZoomBy(1 + wheelMove*0.1)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
