package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsResult reports which buttons were pressed this frame.
type ControlsResult struct {
	Spawn bool
	Reset bool
}

// ControlsPanel renders the top-right panel with the spawn button and
// overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

const buttonHeight = 28

// height returns the panel height for the given overlay count.
func (c *ControlsPanel) height(overlays int) int32 {
	p := c.renderer.Theme.Padding
	return p + 2*(buttonHeight+6) + c.renderer.Theme.LineHeight + int32(overlays)*(buttonHeight-6) + p
}

// Contains reports whether a screen point lies on the panel.
func (c *ControlsPanel) Contains(x, y float32, overlays *OverlayRegistry) bool {
	h := c.height(len(overlays.All()))
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+h)
}

// Draw renders the controls panel and returns the buttons pressed.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) ControlsResult {
	var res ControlsResult
	r := c.renderer
	padding := r.Theme.Padding

	r.DrawPanel(c.x, c.y, c.width, c.height(len(overlays.All())))

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	w := float32(c.width - 2*padding)

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: buttonHeight}, "Spawn ball") {
		res.Spawn = true
	}
	y += buttonHeight + 6
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: buttonHeight}, "Reset round") {
		res.Reset = true
	}
	y += buttonHeight + 6

	rl.DrawText("Overlays", int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += float32(r.Theme.LineHeight)

	for _, desc := range overlays.All() {
		label := fmt.Sprintf("%s %s [%s]", toggleText(overlays.IsEnabled(desc.ID), "[x]", "[ ]"), desc.Name, desc.KeyLabel)
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: buttonHeight - 8}, label) {
			overlays.Toggle(desc.ID)
		}
		y += buttonHeight - 6
	}

	return res
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
