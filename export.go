package astrosim

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/soniakeys/meeus/julian"
)

const dateFormatCg = "2006-01-02T15:04:05"

// ExportConfig defines how trajectory exports are written.
type ExportConfig struct {
	Filename string // base name, without extension
	AsCSV    bool   // write one <base>-<body>.xyzv CSV per body
	AsJSON   bool   // write a <base>.json Cosmographia-style catalog
	Samples  int    // positions per orbit, defaults to 360
}

// IsUseless returns whether this config would output anything.
func (o ExportConfig) IsUseless() bool {
	return !o.AsCSV && !o.AsJSON
}

// CgCatalog definition.
type CgCatalog struct {
	Version string     `json:"version"`
	Name    string     `json:"name"`
	Items   []*CgItems `json:"items"`
}

// CgItems definition.
type CgItems struct {
	Class          string            `json:"class"`
	Name           string            `json:"name"`
	StartTime      string            `json:"startTime"`
	EndTime        string            `json:"endTime"`
	Center         string            `json:"center"`
	Trajectory     *CgTrajectory     `json:"trajectory,omitempty"`
	Label          *CgLabel          `json:"label,omitempty"`
	TrajectoryPlot *CgTrajectoryPlot `json:"trajectoryPlot,omitempty"`
}

// CgTrajectory definition.
type CgTrajectory struct {
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
}

// CgLabel definition.
type CgLabel struct {
	Color    []float64 `json:"color,omitempty"`
	FadeSize int       `json:"fadeSize,omitempty"`
	ShowText bool      `json:"showText,omitempty"`
}

// CgTrajectoryPlot definition.
type CgTrajectoryPlot struct {
	Color       []float64 `json:"color,omitempty"`
	LineWidth   int       `json:"lineWidth,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	SampleCount int       `json:"sampleCount,omitempty"`
}

// ExportTrajectories samples one orbital period per body and writes the
// configured outputs into dir. The CSV rows are `jd,x,y,z,vx,vy,vz` with
// positions in AU and velocities in AU/day.
func ExportTrajectories(dir string, cfg ExportConfig, ss *SolarSystem) error {
	if cfg.IsUseless() {
		return nil
	}
	samples := cfg.Samples
	if samples <= 0 {
		samples = 360
	}
	prop := ss.Propagator()
	items := make([]*CgItems, 0, len(ss.Bodies()))
	for _, b := range ss.Bodies() {
		el := b.Elements
		period := el.Period()
		if cfg.AsCSV {
			if err := exportBodyCSV(dir, cfg.Filename, b, prop, samples); err != nil {
				return err
			}
		}
		color := []float64{b.Color.R, b.Color.G, b.Color.B}
		items = append(items, &CgItems{
			Class:     "orbiter",
			Name:      b.NameEn,
			StartTime: julian.JDToTime(el.Epoch).Format(dateFormatCg),
			EndTime:   julian.JDToTime(el.Epoch + period).Format(dateFormatCg),
			Center:    "Sun",
			Trajectory: &CgTrajectory{
				Type:   "InterpolatedStates",
				Source: bodyCSVName(cfg.Filename, b),
			},
			Label: &CgLabel{Color: color, FadeSize: 1000000, ShowText: true},
			TrajectoryPlot: &CgTrajectoryPlot{
				Color:       color,
				LineWidth:   1,
				Duration:    fmt.Sprintf("%.1f d", period),
				SampleCount: samples,
			},
		})
	}
	if !cfg.AsJSON {
		return nil
	}
	f, err := os.Create(filepath.Join(dir, cfg.Filename+".json"))
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(CgCatalog{Version: "1.0", Name: cfg.Filename, Items: items})
}

func bodyCSVName(base string, b *CelestialBody) string {
	return fmt.Sprintf("%s-%s.xyzv", base, b.NameEn)
}

func exportBodyCSV(dir, base string, b *CelestialBody, prop *Propagator, samples int) error {
	f, err := os.Create(filepath.Join(dir, bodyCSVName(base, b)))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err = w.Write([]string{"jd", "x", "y", "z", "vx", "vy", "vz"}); err != nil {
		return err
	}
	el := b.Elements
	step := el.Period() / float64(samples)
	for s := 0; s <= samples; s++ {
		jd := el.Epoch + float64(s)*step
		R, V, err := prop.StateAt(el, jd)
		if err != nil {
			return err
		}
		row := make([]string, 0, 7)
		row = append(row, strconv.FormatFloat(jd, 'f', 6, 64))
		for _, val := range append(R, V...) {
			row = append(row, strconv.FormatFloat(val, 'e', 12, 64))
		}
		if err = w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
