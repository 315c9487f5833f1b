package main

import (
	"flag"
	"log"
	"os"

	"github.com/2to4/astrosim"
	kitlog "github.com/go-kit/kit/log"
)

// Samples one orbital period per planet and writes the xyzv/catalog files
// used for plotting orbit paths.

var (
	outDir  string
	name    string
	samples int
	noCSV   bool
	noJSON  bool
)

func init() {
	flag.StringVar(&outDir, "out", ".", "output directory")
	flag.StringVar(&name, "name", "orbits", "base name of the exported files")
	flag.IntVar(&samples, "samples", 360, "positions sampled per orbit")
	flag.BoolVar(&noCSV, "no-csv", false, "skip the per-body xyzv files")
	flag.BoolVar(&noJSON, "no-json", false, "skip the catalog JSON")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))

	system, err := astrosim.NewDataLoader(logger).BuildSolarSystem(astrosim.WithLogger(logger))
	if err != nil {
		log.Fatalf("could not build solar system: %s", err)
	}
	cfg := astrosim.ExportConfig{Filename: name, AsCSV: !noCSV, AsJSON: !noJSON, Samples: samples}
	if cfg.IsUseless() {
		log.Fatal("both outputs disabled, nothing to do")
	}
	if err := astrosim.ExportTrajectories(outDir, cfg, system); err != nil {
		log.Fatalf("export failed: %s", err)
	}
	logger.Log("level", "info", "status", "exported", "dir", outDir, "bodies", len(system.Bodies()), "samples", samples)
}
