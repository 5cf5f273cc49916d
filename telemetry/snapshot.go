package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete session state for inspection or resume.
type Snapshot struct {
	Version int    `json:"version"`
	Seed    int64  `json:"seed"`
	Reason  string `json:"reason"`

	Tick      int64   `json:"tick"`
	StartTime float64 `json:"start_time_ms"`

	Boundary   BoundaryState `json:"boundary"`
	BallRadius float64       `json:"ball_radius"`
	Balls      []BallState   `json:"balls"`
}

// BoundaryState holds the ring state.
type BoundaryState struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Radius     float64 `json:"radius"`
	LastBounce float64 `json:"last_bounce_ms"`
}

// BallState holds one ball's complete state.
type BallState struct {
	ID         uint32       `json:"id"`
	X          float64      `json:"x"`
	Y          float64      `json:"y"`
	VelX       float64      `json:"vel_x"`
	VelY       float64      `json:"vel_y"`
	Frozen     bool         `json:"frozen"`
	LastBounce float64      `json:"last_bounce_ms"`
	Trail      [][2]float64 `json:"trail"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Reason != "" {
		name += "_" + snapshot.Reason
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d not supported (want %d)", snapshot.Version, SnapshotVersion)
	}
	if len(snapshot.Balls) == 0 {
		return nil, fmt.Errorf("snapshot %s has no balls", path)
	}

	return &snapshot, nil
}
