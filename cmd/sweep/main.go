// Package main runs headless rounds across every growing/speed/timer mode
// combination and reports how long each survives before the boundary
// depletes.
//
// Usage: go run ./cmd/sweep -output sweep-out
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/ring/config"
	"github.com/pthm-cable/ring/world"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config file (empty = use defaults)")
	maxTicks := flag.Int64("max-ticks", 500000, "Per-round tick cap")
	seeds := flag.Int("seeds", 8, "Number of seeds per mode combination")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Sessions log every reset and freeze; keep only warnings
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	base := world.ParamsFromConfig(cfg)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	all := combos(base.Modes)
	fmt.Printf("Sweeping %d mode combinations, %d seeds each, cap %d ticks\n", len(all), *seeds, *maxTicks)

	rows := make([]*ComboStats, 0, len(all))
	startTime := time.Now()
	for i, modes := range all {
		p := base
		p.Modes = modes
		cs := evaluate(p, evalSeeds, *maxTicks)
		rows = append(rows, &cs)

		elapsed := time.Since(startTime)
		remaining := time.Duration(len(all)-i-1) * (elapsed / time.Duration(i+1))
		fmt.Printf("%d/%d %s: lifetime=%.1fs±%.1f depleted=%d/%d | elapsed: %s, ETA: %s\n",
			i+1, len(all), cs.Modes, cs.LifetimeMean, cs.LifetimeStd, cs.Depleted, cs.Seeds,
			formatDuration(elapsed), formatDuration(remaining))
	}

	outPath := filepath.Join(*outputDir, "sweep.csv")
	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("failed to create results file: %v", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(rows, f); err != nil {
		log.Fatalf("failed to write results: %v", err)
	}

	if err := cfg.WriteYAML(filepath.Join(*outputDir, "config.yaml")); err != nil {
		log.Printf("failed to write config: %v", err)
	}

	fmt.Printf("\nSweep complete in %s, results saved to: %s\n", formatDuration(time.Since(startTime)), outPath)
}
