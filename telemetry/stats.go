package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Session state at window end
	Balls          int     `csv:"balls"`
	Frozen         int     `csv:"frozen"`
	BoundaryRadius float64 `csv:"boundary_radius"`
	BallRadius     float64 `csv:"ball_radius"`

	// Events during window
	Bounces     int `csv:"bounces"`
	Shrinks     int `csv:"shrinks"`
	Growths     int `csv:"growths"`
	Contacts    int `csv:"contacts"`
	Spawns      int `csv:"spawns"`
	Freezes     int `csv:"freezes"`
	Resets      int `csv:"resets"`
	TotalResets int `csv:"total_resets"`

	// Speed distribution of active balls
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// Percentile returns the empirical p-quantile of an ascending slice.
// Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeSpeedStats calculates mean, standard deviation and percentiles.
// A single value has zero spread.
func ComputeSpeedStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("balls", s.Balls),
		slog.Int("frozen", s.Frozen),
		slog.Float64("boundary_radius", s.BoundaryRadius),
		slog.Float64("ball_radius", s.BallRadius),
		slog.Int("bounces", s.Bounces),
		slog.Int("shrinks", s.Shrinks),
		slog.Int("growths", s.Growths),
		slog.Int("contacts", s.Contacts),
		slog.Int("spawns", s.Spawns),
		slog.Int("freezes", s.Freezes),
		slog.Int("resets", s.Resets),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
