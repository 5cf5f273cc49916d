// Package game hosts a session: it owns the world, the collaborators that
// render it and play its sounds, and the telemetry that records it.
package game

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ring/audio"
	"github.com/pthm-cable/ring/camera"
	"github.com/pthm-cable/ring/config"
	"github.com/pthm-cable/ring/renderer"
	"github.com/pthm-cable/ring/telemetry"
	"github.com/pthm-cable/ring/ui"
	"github.com/pthm-cable/ring/world"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool   // log stats windows via slog
	OutputDir      string // CSV, config and snapshot output (empty = disabled)
	RestorePath    string // resume from a saved snapshot
	Headless       bool
	StepsPerUpdate int // fixed steps per UpdateHeadless call
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	session *world.Session
	player  audio.Player

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	// Rendering (nil in headless mode)
	camera     *camera.Camera
	arena      *renderer.ArenaRenderer
	hud        *ui.HUD
	statsPanel *ui.StatsPanel
	perfPanel  *ui.PerfPanel
	controls   *ui.ControlsPanel
	overlays   *ui.OverlayRegistry

	// State
	stepsPerUpdate int
	pending        []Command
	quit           bool

	// Window dimensions
	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	g := &Game{
		cfg:            cfg,
		session:        world.New(world.ParamsFromConfig(cfg), opts.Seed),
		logStats:       opts.LogStats,
		stepsPerUpdate: max(1, opts.StepsPerUpdate),
		collector:      telemetry.NewCollector(cfg.Derived.TicksPerWindow, cfg.Physics.FixedStep),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
	}

	if opts.RestorePath != "" {
		g.restore(opts.RestorePath)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("output disabled", "dir", opts.OutputDir, "error", err)
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	g.player = audio.New(cfg.Audio, cfg.Modes.Sound && !opts.Headless)

	g.session.Observer = g.collector
	g.session.Perf = g.perfCollector
	g.session.OnReset = g.onReset
	if cfg.Modes.Sound {
		g.session.OnBounce = g.player.PlayBounce
	}

	if !opts.Headless {
		g.initRendering()
	}

	logStartup(g, opts)
	return g
}

// initRendering sets up the camera, arena renderer and panels. Requires
// an open raylib window.
func (g *Game) initRendering() {
	g.screenWidth = float32(rl.GetScreenWidth())
	g.screenHeight = float32(rl.GetScreenHeight())

	g.camera = camera.New(g.screenWidth, g.screenHeight, float32(g.cfg.Screen.Width), float32(g.cfg.Screen.Height))
	g.arena = renderer.NewArenaRenderer(float32(g.cfg.Boundary.Thickness))
	g.hud = ui.NewHUD()
	g.overlays = ui.NewOverlayRegistry()
	g.controls = ui.NewControlsPanel(0, 10, 200)
	g.statsPanel = ui.NewStatsPanel(10, 260, 220)
	g.perfPanel = ui.NewPerfPanel(10, 400)
	g.layoutPanels()
}

// restore replaces the fresh session with a saved one. Failures are logged
// and the fresh session is kept.
func (g *Game) restore(path string) {
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		slog.Error("failed to load snapshot", "path", path, "error", err)
		return
	}
	if err := g.session.Restore(snap); err != nil {
		slog.Error("failed to restore snapshot", "path", path, "error", err)
		return
	}
	slog.Info("restored snapshot", "path", path, "tick", snap.Tick, "balls", len(snap.Balls))
}

// Update runs one frame of the windowed game: input, then as many fixed
// steps as the frame time covers.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()
	g.applyCommands()
	if g.quit {
		return
	}

	elapsed := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	if g.session.Advance(elapsed) > 0 {
		g.flushTelemetry()
	}
}

// UpdateHeadless runs StepsPerUpdate fixed steps without any window.
func (g *Game) UpdateHeadless() {
	g.applyCommands()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.session.Tick()
	}
	g.flushTelemetry()
}

// Session returns the hosted session.
func (g *Game) Session() *world.Session {
	return g.session
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.session.TickCount()
}

// ShouldQuit reports whether a quit command was received.
func (g *Game) ShouldQuit() bool {
	return g.quit
}

// Unload releases resources and writes the final snapshot.
func (g *Game) Unload() {
	g.saveSnapshot("exit")
	g.player.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	logShutdown(g)
}
