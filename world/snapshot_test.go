package world

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ring/systems"
	"github.com/pthm-cable/ring/telemetry"
)

func TestSnapshotCopiesState(t *testing.T) {
	p := testParams(Modes{Timer: true, Collisions: true})
	s := New(p, 8)
	for i := 0; i < 30; i++ {
		s.Tick()
	}

	v := s.Snapshot()
	if v.Tick != 30 || len(v.Balls) != 1 {
		t.Fatalf("view tick=%d balls=%d, want 30 and 1", v.Tick, len(v.Balls))
	}
	if len(v.Balls[0].Trail) != p.TrailLength {
		t.Errorf("trail len = %d, want %d", len(v.Balls[0].Trail), p.TrailLength)
	}
	if !v.TimerActive {
		t.Error("timer mode should be reported")
	}
	want := (p.FreezeTime - s.Now()) / 1000
	if math.Abs(v.Remaining-want) > 1e-9 {
		t.Errorf("remaining = %vs, want %vs", v.Remaining, want)
	}

	// Mutating the view must not reach the session
	v.Balls[0].Trail[0] = r2.Vec{X: -1, Y: -1}
	v.Balls[0].Pos = r2.Vec{}
	if s.Balls()[0].Trail.At(0) == (r2.Vec{X: -1, Y: -1}) {
		t.Error("snapshot trail aliases session trail")
	}
	if s.Balls()[0].Pos == (r2.Vec{}) {
		t.Error("snapshot ball aliases session ball")
	}

	newest, ok := v.Newest()
	if !ok || newest.ID != 1 {
		t.Errorf("newest = %+v, %v", newest, ok)
	}
	if _, ok := (View{}).Newest(); ok {
		t.Error("empty view should have no newest ball")
	}
}

func TestSnapshotTimerInactive(t *testing.T) {
	s := New(testParams(Modes{}), 1)
	if v := s.Snapshot(); v.TimerActive || v.Remaining != 0 {
		t.Errorf("timer fields set without timer mode: %+v", v)
	}
}

func TestExportRestoreResumes(t *testing.T) {
	p := testParams(Modes{Growing: true, Collisions: true})
	a := New(p, 21)
	a.Spawn()
	for i := 0; i < 500; i++ {
		a.Tick()
	}

	snap := a.Export("manual")
	if snap.Version != telemetry.SnapshotVersion || snap.Tick != 500 || len(snap.Balls) != 2 {
		t.Fatalf("export = %+v", snap)
	}

	b := New(p, 1)
	if err := b.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if b.TickCount() != 500 || b.Now() != a.Now() || b.Seed() != 21 {
		t.Errorf("clock not restored: tick=%d now=%v", b.TickCount(), b.Now())
	}

	for i := 0; i < 100; i++ {
		a.Tick()
		b.Tick()
	}
	for i := range a.Balls() {
		if a.Balls()[i].Pos != b.Balls()[i].Pos || a.Balls()[i].Vel != b.Balls()[i].Vel {
			t.Errorf("ball %d diverged: %v vs %v", i, a.Balls()[i].Pos, b.Balls()[i].Pos)
		}
	}
	if a.Boundary().Radius != b.Boundary().Radius || a.BallRadius() != b.BallRadius() {
		t.Error("radii diverged after restore")
	}

	// New spawns continue the ID sequence
	b.Spawn()
	if id := b.Balls()[2].ID; id != 3 {
		t.Errorf("spawned id = %d, want 3", id)
	}
}

func TestRestoreRejectsEmpty(t *testing.T) {
	s := New(testParams(Modes{}), 1)
	if err := s.Restore(&telemetry.Snapshot{Version: telemetry.SnapshotVersion}); err == nil {
		t.Error("expected error for snapshot without balls")
	}
	if len(s.Balls()) != 1 {
		t.Error("failed restore modified the session")
	}
}

func TestCollisionsMode(t *testing.T) {
	overlapping := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		Boundary:   telemetry.BoundaryState{X: 800, Y: 450, Radius: 450},
		BallRadius: 20,
		Balls: []telemetry.BallState{
			{ID: 1, X: 790, Y: 450},
			{ID: 2, X: 810, Y: 450},
		},
	}

	tests := []struct {
		name       string
		collisions bool
		separated  bool
	}{
		{"enabled", true, true},
		{"disabled", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testParams(Modes{Collisions: tt.collisions}), 1)
			if err := s.Restore(overlapping); err != nil {
				t.Fatal(err)
			}
			s.Tick()

			d := systems.Distance(s.Balls()[0].Pos, s.Balls()[1].Pos)
			if got := d >= 2*s.BallRadius()-1e-9; got != tt.separated {
				t.Errorf("distance %v after tick, separated=%v want %v", d, got, tt.separated)
			}
		})
	}
}
