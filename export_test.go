package astrosim

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gonum/floats"
)

func TestExportTrajectories(t *testing.T) {
	ss := testSystem(t)
	dir := t.TempDir()
	cfg := ExportConfig{Filename: "planets", AsCSV: true, AsJSON: true, Samples: 12}
	if err := ExportTrajectories(dir, cfg, ss); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "planets.json"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var cat CgCatalog
	if err := json.NewDecoder(f).Decode(&cat); err != nil {
		t.Fatal(err)
	}
	if len(cat.Items) != 8 {
		t.Fatalf("%d catalog items, expected 8", len(cat.Items))
	}
	for _, item := range cat.Items {
		if item.Center != "Sun" || item.Trajectory == nil {
			t.Fatalf("malformed item %+v", item)
		}
		cf, err := os.Open(filepath.Join(dir, item.Trajectory.Source))
		if err != nil {
			t.Fatal(err)
		}
		rows, err := csv.NewReader(cf).ReadAll()
		cf.Close()
		if err != nil {
			t.Fatal(err)
		}
		// Header plus samples+1 rows, the last closing the orbit.
		if len(rows) != cfg.Samples+2 {
			t.Fatalf("%s: %d rows, expected %d", item.Name, len(rows), cfg.Samples+2)
		}
		if len(rows[0]) != 7 || rows[0][0] != "jd" {
			t.Fatalf("%s: bad header %+v", item.Name, rows[0])
		}
		first := parseStateRow(t, rows[1])
		last := parseStateRow(t, rows[len(rows)-1])
		for k := 1; k < 4; k++ {
			if !floats.EqualWithinAbs(first[k], last[k], distanceε) {
				t.Fatalf("%s: orbit does not close: %+v vs %+v", item.Name, first, last)
			}
		}
	}
}

func TestExportUseless(t *testing.T) {
	ss := testSystem(t)
	dir := t.TempDir()
	if err := ExportTrajectories(dir, ExportConfig{Filename: "nothing"}, ss); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("useless config wrote %d files", len(entries))
	}
}

func TestExportCSVOnly(t *testing.T) {
	ss := testSystem(t)
	dir := t.TempDir()
	if err := ExportTrajectories(dir, ExportConfig{Filename: "orbits", AsCSV: true, Samples: 4}, ss); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "orbits.json")); !os.IsNotExist(err) {
		t.Fatal("catalog written despite AsJSON being off")
	}
	if _, err := os.Stat(filepath.Join(dir, "orbits-Earth.xyzv")); err != nil {
		t.Fatal(err)
	}
}

func parseStateRow(t *testing.T, row []string) []float64 {
	t.Helper()
	out := make([]float64, len(row))
	for k, field := range row {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			t.Fatalf("bad field %q: %s", field, err)
		}
		out[k] = v
	}
	return out
}
