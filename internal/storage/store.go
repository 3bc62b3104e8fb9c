// Package storage persists run metadata and per-step temperature
// series under a data directory, one subdirectory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
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

// RunMetadata describes one completed run.
type RunMetadata struct {
	ID              string             `json:"id"`
	System          string             `json:"system"`
	Timestamp       time.Time          `json:"timestamp"`
	Seed            int64              `json:"seed"`
	StepSize        float64            `json:"step_size"`
	Steps           int                `json:"steps"`
	Temperature     float64            `json:"temperature"`
	CosAcceleration float64            `json:"cos_acceleration"`
	Metrics         map[string]float64 `json:"metrics"`
}

// TempSample is one row of the temperature time series.
type TempSample struct {
	Time    float64
	Atom    float64
	COM     float64
	Drude   float64
	TotalKE float64
}

// Save writes metadata.json and temperatures.csv for a run and returns
// the run id.
func (s *Store) Save(meta RunMetadata, series []TempSample) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.System, time.Now().Unix())
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
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return "", err
	}
	if err := metaFile.Close(); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "temperatures.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"time", "t_atom", "t_com", "t_drude", "kinetic_energy"}); err != nil {
		return "", err
	}
	for _, row := range series {
		record := []string{
			formatFloat(row.Time),
			formatFloat(row.Atom),
			formatFloat(row.COM),
			formatFloat(row.Drude),
			formatFloat(row.TotalKE),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return runID, w.Error()
}

// List returns the metadata of all stored runs, newest last.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, e.Name(), "metadata.json"))
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

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
