package game

import (
	"log/slog"
)

// flushTelemetry checks if the stats window should be flushed and writes it.
func (g *Game) flushTelemetry() {
	tick := g.session.TickCount()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.session.Sample())
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// onReset saves the collapsed round before the session discards it.
func (g *Game) onReset(reason string) {
	g.saveSnapshot(reason)
}

// saveSnapshot writes the session state when output is enabled.
func (g *Game) saveSnapshot(reason string) {
	if g.outputManager == nil {
		return
	}
	path, err := g.outputManager.WriteSnapshot(g.session.Export(reason))
	if err != nil {
		slog.Error("failed to save snapshot", "reason", reason, "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.session.TickCount())
}
