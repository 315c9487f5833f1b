package astrosim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	kitlog "github.com/go-kit/kit/log"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Catalog is the on-disk planet data format. Planets are an array: the file
// order is the canonical rendering order.
type Catalog struct {
	Version     string        `json:"version,omitempty"`
	Description string        `json:"description,omitempty"`
	Sun         Sun           `json:"sun"`
	Planets     []CatalogBody `json:"planets"`
}

// CatalogBody is one planet entry of a Catalog.
type CatalogBody struct {
	Name           string          `json:"name"`
	NameEn         string          `json:"name_en"`
	Mass           float64         `json:"mass"`   // kg
	Radius         float64         `json:"radius"` // km
	Color          []float64       `json:"color,omitempty"`     // RGB triple, 0–1 floats
	ColorHex       string          `json:"color_hex,omitempty"` // alternative to color
	RotationPeriod float64         `json:"rotation_period"`     // hours
	AxialTilt      float64         `json:"axial_tilt"`          // degrees
	Elements       OrbitalElements `json:"orbital_elements"`
}

func (cb CatalogBody) color() (colorful.Color, error) {
	if cb.ColorHex != "" {
		c, err := colorful.Hex(cb.ColorHex)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("body %q: bad color %q: %w", cb.NameEn, cb.ColorHex, err)
		}
		return c, nil
	}
	if len(cb.Color) != 3 {
		return colorful.Color{}, fmt.Errorf("body %q: color must be an RGB triple", cb.NameEn)
	}
	c := colorful.Color{R: cb.Color[0], G: cb.Color[1], B: cb.Color[2]}
	if !c.IsValid() {
		return colorful.Color{}, fmt.Errorf("body %q: color components must be within [0,1]", cb.NameEn)
	}
	return c, nil
}

// DataLoader reads planet catalogs and builds solar systems out of them.
type DataLoader struct {
	logger kitlog.Logger
}

// NewDataLoader returns a loader logging through the provided logger.
func NewDataLoader(logger kitlog.Logger) *DataLoader {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &DataLoader{logger: kitlog.With(logger, "subsys", "loader")}
}

// ReadCatalog decodes and validates a catalog. Validation is fail-fast: the
// first bad element aborts the load.
func (dl *DataLoader) ReadCatalog(r io.Reader) (*Catalog, error) {
	var cat Catalog
	dec := json.NewDecoder(r)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("could not decode catalog: %w", err)
	}
	for _, pl := range cat.Planets {
		if pl.NameEn == "" {
			return nil, fmt.Errorf("body %q: missing name_en", pl.Name)
		}
		if err := pl.Elements.Validate(); err != nil {
			return nil, fmt.Errorf("body %q: %w", pl.NameEn, err)
		}
		if _, err := pl.color(); err != nil {
			return nil, err
		}
	}
	return &cat, nil
}

// ReadCatalogFile is ReadCatalog on a file path.
func (dl *DataLoader) ReadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open catalog: %w", err)
	}
	defer f.Close()
	return dl.ReadCatalog(f)
}

// Bodies converts catalog entries into celestial bodies, preserving order.
func (dl *DataLoader) Bodies(cat *Catalog) ([]*CelestialBody, error) {
	bodies := make([]*CelestialBody, 0, len(cat.Planets))
	for _, pl := range cat.Planets {
		c, err := pl.color()
		if err != nil {
			return nil, err
		}
		b, err := NewCelestialBody(pl.Name, pl.NameEn, pl.Mass, pl.Radius, c, pl.RotationPeriod, pl.AxialTilt, pl.Elements)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// BuildSolarSystem assembles a SolarSystem from the configured catalog (or
// the built-in eight planets) and the configured ephemeris source.
func (dl *DataLoader) BuildSolarSystem(opts ...SystemOption) (*SolarSystem, error) {
	conf := astroConfig()
	sun := DefaultSun()
	bodies := DefaultBodies()
	if conf.catalog != "" {
		cat, err := dl.ReadCatalogFile(conf.catalog)
		if err != nil {
			return nil, err
		}
		sun = cat.Sun
		if bodies, err = dl.Bodies(cat); err != nil {
			return nil, err
		}
	}
	eph, err := EphemerisFromConfig()
	if err != nil {
		return nil, err
	}
	if eph != nil {
		opts = append(opts, WithEphemeris(eph))
	}
	ss, err := NewSolarSystem(sun, bodies, opts...)
	if err != nil {
		return nil, err
	}
	dl.logger.Log("level", "info", "status", "loaded", "planets", len(bodies), "mode", conf.mode)
	return ss, nil
}
