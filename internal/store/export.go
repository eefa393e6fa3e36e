package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/orbitsim/internal/vec"
)

// BodyTrack is one body's sampled trajectory.
type BodyTrack struct {
	Name       string     `json:"name"`
	Positions  []vec.Vec3 `json:"positions"`
	Velocities []vec.Vec3 `json:"velocities"`
}

// ExportData is the full-run JSON export: metadata plus per-body tracks, a
// friendlier shape for external tooling than the flat CSV.
type ExportData struct {
	Metadata     RunMetadata `json:"metadata"`
	Times        []float64   `json:"times"`
	Bodies       []BodyTrack `json:"bodies"`
	EnergyDrift  []float64   `json:"energy_drift"`
	AngularDrift []float64   `json:"angular_momentum_drift"`
}

// Export assembles the run export and writes it as indented JSON.
func Export(w io.Writer, meta RunMetadata, samples []Sample) error {
	data := ExportData{Metadata: meta}

	if len(samples) > 0 {
		data.Bodies = make([]BodyTrack, len(samples[0].Snapshot.Bodies))
		for i, b := range samples[0].Snapshot.Bodies {
			data.Bodies[i].Name = b.Name
		}
	}
	for i := range samples {
		snap := &samples[i].Snapshot
		data.Times = append(data.Times, snap.Time)
		data.EnergyDrift = append(data.EnergyDrift, samples[i].Drift.Energy)
		data.AngularDrift = append(data.AngularDrift, samples[i].Drift.AngularMomentum)
		for j, b := range snap.Bodies {
			data.Bodies[j].Positions = append(data.Bodies[j].Positions, b.Position)
			data.Bodies[j].Velocities = append(data.Bodies[j].Velocities, b.Velocity)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportFile writes the run export to a file.
func ExportFile(path string, meta RunMetadata, samples []Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return Export(file, meta, samples)
}
