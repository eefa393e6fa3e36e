package store

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/san-kum/orbitsim/internal/model"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/vec"
)

func testSamples() []Sample {
	mk := func(t, x float64, drift float64) Sample {
		return Sample{
			Snapshot: model.Snapshot{
				Time: t,
				Bodies: []model.BodyState{
					{Name: "Sun", Mass: 1},
					{Name: "Earth", Mass: 3e-6, Position: vec.Vec3{X: x}, Velocity: vec.Vec3{Y: 6.28}},
				},
			},
			Drift: physics.Drift{Energy: drift, AngularMomentum: drift / 2},
		}
	}
	return []Sample{mk(0, 1.0, 0), mk(0.5, -1.0, 1e-9), mk(1.0, 1.0, 2e-9)}
}

func testMeta() RunMetadata {
	return RunMetadata{
		Scenario:   "sun-earth",
		Dt:         5e-4,
		Softening:  1e-5,
		Relativity: false,
		PNScope:    "primary",
		Bodies:     []string{"Sun", "Earth"},
		Steps:      2000,
		FinalTime:  1.0,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runID, err := st.Save(testMeta(), testSamples())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Scenario != "sun-earth" {
		t.Errorf("scenario = %q, want sun-earth", meta.Scenario)
	}
	if meta.ID != runID {
		t.Errorf("metadata ID %q != run ID %q", meta.ID, runID)
	}
	if len(meta.Bodies) != 2 {
		t.Errorf("bodies = %v, want 2 names", meta.Bodies)
	}

	sr, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}
	if len(sr.Times) != 3 {
		t.Fatalf("got %d samples, want 3", len(sr.Times))
	}
	// time + 2 bodies * 6 + 2 drift columns
	if len(sr.Header) != 14 {
		t.Errorf("got %d columns, want 14: %v", len(sr.Header), sr.Header)
	}

	col := sr.Column("Earth_x")
	if col == nil {
		t.Fatal("Earth_x column missing")
	}
	if col[0] != 1.0 || col[1] != -1.0 {
		t.Errorf("Earth_x = %v, want [1 -1 1]", col)
	}
	if sr.Column("Pluto_x") != nil {
		t.Error("unknown column should be nil")
	}
}

func TestListSkipsJunk(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if _, err := st.Save(testMeta(), testSamples()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := st.Save(testMeta(), nil); err != nil {
		t.Fatalf("Save empty: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New("/nonexistent/orbitsim-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs from missing dir", len(runs))
	}
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, testMeta(), testSamples()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(data.Bodies) != 2 {
		t.Fatalf("got %d body tracks, want 2", len(data.Bodies))
	}
	if data.Bodies[1].Name != "Earth" || len(data.Bodies[1].Positions) != 3 {
		t.Errorf("Earth track malformed: %+v", data.Bodies[1])
	}
	if len(data.EnergyDrift) != 3 {
		t.Errorf("got %d drift samples, want 3", len(data.EnergyDrift))
	}
}
