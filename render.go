package astrosim

import (
	kitlog "github.com/go-kit/kit/log"
)

// Renderer is the capability set the visualization layer implements. The core
// never performs UI actions itself; it only pushes state through this
// interface. Positions are heliocentric ecliptic, in AU.
type Renderer interface {
	// AddBody introduces a body to the scene.
	AddBody(b *CelestialBody)
	// UpdatePosition moves a body after an advance.
	UpdatePosition(nameEn string, position []float64)
	// SetVisibility toggles a body in the scene.
	SetVisibility(nameEn string, visible bool)
}

// NopRenderer discards everything. Useful headless and in tests.
type NopRenderer struct{}

// AddBody implements Renderer.
func (NopRenderer) AddBody(*CelestialBody) {}

// UpdatePosition implements Renderer.
func (NopRenderer) UpdatePosition(string, []float64) {}

// SetVisibility implements Renderer.
func (NopRenderer) SetVisibility(string, bool) {}

// LogRenderer traces scene updates through a go-kit logger.
type LogRenderer struct {
	logger kitlog.Logger
}

// NewLogRenderer returns a renderer writing one logfmt line per call.
func NewLogRenderer(logger kitlog.Logger) *LogRenderer {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &LogRenderer{logger: kitlog.With(logger, "subsys", "render")}
}

// AddBody implements Renderer.
func (r *LogRenderer) AddBody(b *CelestialBody) {
	r.logger.Log("op", "add", "body", b.NameEn, "radius(km)", b.Radius)
}

// UpdatePosition implements Renderer.
func (r *LogRenderer) UpdatePosition(nameEn string, position []float64) {
	r.logger.Log("op", "update", "body", nameEn, "x", position[0], "y", position[1], "z", position[2])
}

// SetVisibility implements Renderer.
func (r *LogRenderer) SetVisibility(nameEn string, visible bool) {
	r.logger.Log("op", "visibility", "body", nameEn, "visible", visible)
}

// PushFrame sends every body of the system through a renderer. The driver
// calls this after each AdvanceTo.
func PushFrame(r Renderer, ss *SolarSystem) {
	for name, pos := range ss.AllPositions() {
		r.UpdatePosition(name, pos)
	}
}
