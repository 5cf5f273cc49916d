package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Boundary.Radius != 450 {
		t.Errorf("boundary radius = %v, want 450", cfg.Boundary.Radius)
	}
	if cfg.Ball.TrailLength != 20 {
		t.Errorf("trail length = %d, want 20", cfg.Ball.TrailLength)
	}
	if cfg.Derived.CenterX != 800 || cfg.Derived.CenterY != 450 {
		t.Errorf("center = (%v, %v), want (800, 450)", cfg.Derived.CenterX, cfg.Derived.CenterY)
	}
	if math.Abs(cfg.Derived.StepMS-1000.0/240.0) > 1e-9 {
		t.Errorf("step ms = %v, want %v", cfg.Derived.StepMS, 1000.0/240.0)
	}
	if cfg.Derived.TicksPerWindow != 1200 {
		t.Errorf("ticks per window = %d, want 1200 for 5s at 240Hz", cfg.Derived.TicksPerWindow)
	}
	if cfg.Modes.Sound || cfg.Modes.Growing || cfg.Modes.Speed || cfg.Modes.Timer {
		t.Errorf("defaults should disable optional modes, got %+v", cfg.Modes)
	}
	if !cfg.Modes.Collisions {
		t.Error("defaults should enable collisions")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParseModes(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    ModesConfig
		wantErr bool
	}{
		{
			name: "nested yaml",
			data: "modes:\n  sound: true\n  growing: true\n  speed: false\n  timer: true\n",
			want: ModesConfig{Sound: true, Growing: true, Timer: true, Collisions: true},
		},
		{
			name: "flat json",
			data: `{"sound": false, "growing": false, "speed": true, "timer": false}`,
			want: ModesConfig{Speed: true, Collisions: true},
		},
		{
			name: "sound defaults to off",
			data: `{"growing": true, "speed": true, "timer": true}`,
			want: ModesConfig{Growing: true, Speed: true, Timer: true, Collisions: true},
		},
		{
			name: "collisions can be disabled",
			data: "modes: {growing: false, speed: false, timer: false, collisions: false}\n",
			want: ModesConfig{},
		},
		{
			name:    "missing timer",
			data:    `{"growing": true, "speed": true}`,
			wantErr: true,
		},
		{
			name:    "empty document",
			data:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrMissingKey) {
					t.Errorf("error %v should wrap ErrMissingKey", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Modes != tt.want {
				t.Errorf("modes = %+v, want %+v", cfg.Modes, tt.want)
			}
		})
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	data := `
modes: {growing: false, speed: false, timer: false}
boundary:
  radius: 300
ball:
  initial_velocity: [5, -3]
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Boundary.Radius != 300 {
		t.Errorf("radius = %v, want 300", cfg.Boundary.Radius)
	}
	// Untouched fields keep their defaults
	if cfg.Boundary.Decrement != 5 {
		t.Errorf("decrement = %v, want 5", cfg.Boundary.Decrement)
	}
	if cfg.Ball.InitialVelocity != [2]float64{5, -3} {
		t.Errorf("initial velocity = %v, want [5 -3]", cfg.Ball.InitialVelocity)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "modes: [growing"},
		{"zero step", "modes: {growing: false, speed: false, timer: false}\nphysics: {fixed_step: 0}\n"},
		{"shrinking speed factor", "modes: {growing: false, speed: true, timer: false}\nball: {speed_factor: 0.9}\n"},
		{"empty trail", "modes: {growing: false, speed: false, timer: false}\nball: {trail_length: 0}\n"},
		{"threshold above radius", "modes: {growing: false, speed: false, timer: false}\nboundary: {reset_threshold: 500}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("empty path should fail")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"sound": true, "growing": false, "speed": false, "timer": true}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Modes.Sound || !cfg.Modes.Timer {
		t.Errorf("modes = %+v, want sound and timer", cfg.Modes)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Defaults()
	cfg.Modes.Growing = true
	cfg.Boundary.Radius = 321

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Boundary.Radius != 321 || !loaded.Modes.Growing {
		t.Errorf("roundtrip lost values: radius=%v modes=%+v", loaded.Boundary.Radius, loaded.Modes)
	}
}
