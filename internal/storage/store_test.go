package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	series := []TempSample{
		{Time: 0.05, Atom: 298.4, COM: 301.2, Drude: 1.1, TotalKE: 42.0},
		{Time: 0.10, Atom: 300.1, COM: 299.8, Drude: 0.9, TotalKE: 41.7},
	}
	runID, err := st.Save(RunMetadata{
		System:      "dimer",
		Seed:        42,
		StepSize:    0.001,
		Steps:       100,
		Temperature: 300,
		Metrics:     map[string]float64{"temperature": 299.9},
	}, series)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("listed %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.ID != runID || got.System != "dimer" || got.Steps != 100 {
		t.Errorf("metadata mismatch: %+v", got)
	}
	if got.Metrics["temperature"] != 299.9 {
		t.Errorf("metrics not persisted: %+v", got.Metrics)
	}
}

func TestSaveWritesTemperatureCSV(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := st.Save(RunMetadata{System: "atoms"}, []TempSample{
		{Time: 0.001, Atom: 310, TotalKE: 12.5},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, runID, "temperatures.csv"))
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one sample", len(rows))
	}
	if rows[0][1] != "t_atom" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "0.001" || rows[1][1] != "310" {
		t.Errorf("sample row = %v", rows[1])
	}
}

func TestListEmptyStore(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if runs != nil {
		t.Errorf("expected no runs, got %v", runs)
	}
}
