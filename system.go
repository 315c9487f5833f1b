package astrosim

import (
	"fmt"
	"sync"

	kitlog "github.com/go-kit/kit/log"
)

// SolarSystem owns the Sun and the ordered planet collection. It is not safe
// for concurrent callers: the external driver holds the single-writer role,
// calling AdvanceTo once per tick and reading positions afterwards.
type SolarSystem struct {
	Sun    Sun
	bodies []*CelestialBody
	index  map[string]*CelestialBody

	prop    *Propagator
	eph     Ephemeris
	logger  kitlog.Logger
	current float64
}

// SystemOption configures a SolarSystem at construction.
type SystemOption func(*SolarSystem)

// WithLogger routes system and propagator logs to the provided logger.
func WithLogger(logger kitlog.Logger) SystemOption {
	return func(ss *SolarSystem) { ss.logger = logger }
}

// WithEphemeris overrides the Keplerian propagation with a high-accuracy
// source for the bodies it covers. Bodies outside its coverage, and any
// source failure, fall back to the Keplerian elements.
func WithEphemeris(eph Ephemeris) SystemOption {
	return func(ss *SolarSystem) { ss.eph = eph }
}

// NewSolarSystem builds the system and advances it to the catalog epoch, so
// positions are defined before the first explicit AdvanceTo call. Body names
// must be unique (both display and English names share one namespace).
func NewSolarSystem(sun Sun, bodies []*CelestialBody, opts ...SystemOption) (*SolarSystem, error) {
	ss := &SolarSystem{
		Sun:    sun,
		bodies: bodies,
		index:  make(map[string]*CelestialBody, 2*len(bodies)),
		logger: kitlog.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(ss)
	}
	ss.prop = NewPropagator(ss.logger)
	for _, b := range bodies {
		for _, name := range []string{b.NameEn, b.Name} {
			if name == "" {
				continue
			}
			if _, dup := ss.index[name]; dup {
				return nil, fmt.Errorf("duplicate body name %q", name)
			}
			ss.index[name] = b
		}
	}
	epoch := J2000
	if len(bodies) > 0 {
		epoch = bodies[0].Elements.Epoch
	}
	if err := ss.AdvanceTo(epoch); err != nil {
		return nil, err
	}
	return ss, nil
}

// AdvanceTo recomputes every body's cached state for the given Julian date.
// It is idempotent: advancing twice to the same date produces identical
// state. Bodies are mutually independent, so the fan-out runs one goroutine
// per body, each writing only its own cached slot.
func (ss *SolarSystem) AdvanceTo(jd float64) error {
	if !isFinite(jd) {
		return &InvalidTimeError{jd}
	}
	var wg sync.WaitGroup
	for _, b := range ss.bodies {
		wg.Add(1)
		go func(b *CelestialBody) {
			defer wg.Done()
			ss.updateBody(b, jd)
		}(b)
	}
	wg.Wait()
	ss.current = jd
	return nil
}

func (ss *SolarSystem) updateBody(b *CelestialBody, jd float64) {
	if ss.eph != nil && ss.eph.Covers(b.NameEn) {
		R, V, err := ss.eph.StateAt(b.NameEn, jd)
		if err == nil {
			b.setState(jd, R, V)
			return
		}
		ss.logger.Log("level", "warning", "subsys", "system", "body", b.NameEn, "jd", jd, "ephemeris", err)
	}
	// Elements were validated at construction, so this cannot fail for a finite jd.
	R, V, err := ss.prop.StateAt(b.Elements, jd)
	if err != nil {
		ss.logger.Log("level", "critical", "subsys", "system", "body", b.NameEn, "jd", jd, "err", err)
		return
	}
	b.setState(jd, R, V)
}

// CurrentDate returns the Julian date of the most recent advance.
func (ss *SolarSystem) CurrentDate() float64 {
	return ss.current
}

// Body returns the named body, by English or display name.
func (ss *SolarSystem) Body(name string) (*CelestialBody, error) {
	b, found := ss.index[name]
	if !found {
		return nil, &UnknownBodyError{name}
	}
	return b, nil
}

// Bodies returns the bodies in canonical catalog order.
func (ss *SolarSystem) Bodies() []*CelestialBody {
	return append([]*CelestialBody(nil), ss.bodies...)
}

// Position returns the named body's cached heliocentric position in AU.
func (ss *SolarSystem) Position(name string) ([]float64, error) {
	b, err := ss.Body(name)
	if err != nil {
		return nil, err
	}
	return b.Position(), nil
}

// AllPositions returns every body's cached position keyed by English name,
// reflecting the most recent AdvanceTo call.
func (ss *SolarSystem) AllPositions() map[string][]float64 {
	positions := make(map[string][]float64, len(ss.bodies))
	for _, b := range ss.bodies {
		positions[b.NameEn] = b.Position()
	}
	return positions
}

// OrbitalPeriod returns the named body's period in days.
func (ss *SolarSystem) OrbitalPeriod(name string) (float64, error) {
	b, err := ss.Body(name)
	if err != nil {
		return 0, err
	}
	return b.Elements.Period(), nil
}

// Propagator exposes the system's propagator, e.g. for warning counters.
func (ss *SolarSystem) Propagator() *Propagator {
	return ss.prop
}
