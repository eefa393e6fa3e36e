// Package store persists headless runs to disk. Each run gets a directory
// under the base path holding metadata.json and a states.csv with one row per
// diagnostics sample.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/orbitsim/internal/model"
	"github.com/san-kum/orbitsim/internal/physics"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Sample is one persisted observation: the body states plus the conservation
// drift at that instant.
type Sample struct {
	Snapshot model.Snapshot
	Drift    physics.Drift
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Scenario   string    `json:"scenario"`
	Timestamp  time.Time `json:"timestamp"`
	Dt         float64   `json:"dt"`
	Softening  float64   `json:"softening"`
	Relativity bool      `json:"relativity"`
	PNScope    string    `json:"pn_scope"`
	Bodies     []string  `json:"bodies"`
	Steps      int       `json:"steps"`
	FinalTime  float64   `json:"final_time"`

	EnergyDrift          float64 `json:"energy_drift"`
	AngularMomentumDrift float64 `json:"angular_momentum_drift"`
}

// Save writes one finished run. The run ID is scenario name plus a nanosecond
// timestamp, which doubles as the directory name.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(samples) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for _, b := range samples[0].Snapshot.Bodies {
		header = append(header,
			b.Name+"_x", b.Name+"_y", b.Name+"_z",
			b.Name+"_vx", b.Name+"_vy", b.Name+"_vz")
	}
	header = append(header, "energy_drift", "l_drift")
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range samples {
		snap := &samples[i].Snapshot
		row := []string{formatF(snap.Time)}
		for _, b := range snap.Bodies {
			row = append(row,
				formatF(b.Position.X), formatF(b.Position.Y), formatF(b.Position.Z),
				formatF(b.Velocity.X), formatF(b.Velocity.Y), formatF(b.Velocity.Z))
		}
		row = append(row, formatE(samples[i].Drift.Energy), formatE(samples[i].Drift.AngularMomentum))
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatF(v float64) string { return strconv.FormatFloat(v, 'f', 9, 64) }
func formatE(v float64) string { return strconv.FormatFloat(v, 'e', 6, 64) }

// List returns the metadata of every readable run under the base directory.
// Unreadable or partial run directories are skipped, not fatal.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Series is a run's sampled time series in column form, for plotting.
type Series struct {
	Header []string // column names, excluding the leading time column
	Times  []float64
	Rows   [][]float64 // one row per sample, len(row) == len(Header)
}

// Column returns the named column, or nil when absent.
func (sr *Series) Column(name string) []float64 {
	for i, h := range sr.Header {
		if h != name {
			continue
		}
		col := make([]float64, len(sr.Rows))
		for j := range sr.Rows {
			col[j] = sr.Rows[j][i]
		}
		return col
	}
	return nil
}

// LoadSeries reads a run's states.csv back into columns.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("store: run %s has no samples", runID)
	}

	sr := &Series{Header: records[0][1:]}
	for _, record := range records[1:] {
		if len(record) != len(records[0]) {
			return nil, fmt.Errorf("store: run %s has a ragged csv row", runID)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, err
		}
		row := make([]float64, len(record)-1)
		for j, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, err
			}
			row[j] = v
		}
		sr.Times = append(sr.Times, t)
		sr.Rows = append(sr.Rows, row)
	}
	return sr, nil
}
