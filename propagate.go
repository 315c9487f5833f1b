package astrosim

import (
	"errors"
	"math"
	"sync/atomic"

	kitlog "github.com/go-kit/kit/log"
)

// Propagator converts orbital elements and a target Julian date into a
// heliocentric ecliptic state. It is stateless per call and safe for
// concurrent use; the same inputs always produce the same output.
type Propagator struct {
	logger   kitlog.Logger
	warnings uint64
}

// NewPropagator returns a propagator which reports solver convergence
// warnings through the provided logger. A nil logger silences them.
func NewPropagator(logger kitlog.Logger) *Propagator {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Propagator{logger: kitlog.With(logger, "subsys", "propagator")}
}

// StateAt returns the position (AU) and velocity (AU/day) at jd, in the
// heliocentric ecliptic frame. It fails only on invalid elements or a
// non-finite date; any finite Δt propagates, however large.
func (p *Propagator) StateAt(el OrbitalElements, jd float64) (R, V []float64, err error) {
	if !isFinite(jd) {
		return nil, nil, &InvalidTimeError{jd}
	}
	if err = el.Validate(); err != nil {
		return nil, nil, err
	}

	e := el.Eccentricity
	M := el.MeanAnomalyAt(jd)
	E, warn := SolveKepler(M, e)
	var cw *ConvergenceWarning
	if errors.As(warn, &cw) {
		atomic.AddUint64(&p.warnings, 1)
		p.logger.Log("level", "warning", "M", M, "e", e, "iterations", cw.Iterations, "E", cw.BestEstimate)
	}

	ν := trueAnomalyFromE(E, e)
	r := el.SemiMajorAxis * (1 - e*math.Cos(E))
	sν, cν := math.Sincos(ν)

	i := Deg2rad(el.Inclination)
	ω := Deg2rad(el.ArgPerihelion)
	Ω := Deg2rad(el.AscendingNode)

	R = PQW2Ecliptic(i, ω, Ω, []float64{r * cν, r * sν, 0})

	// Radial and transverse velocity components in the orbital plane.
	h := math.Sqrt(μSun * el.SemiParameter())
	vR := μSun / h * e * sν
	vΘ := h / r
	V = PQW2Ecliptic(i, ω, Ω, []float64{vR*cν - vΘ*sν, vR*sν + vΘ*cν, 0})
	return R, V, nil
}

// PositionAt is StateAt without the velocity.
func (p *Propagator) PositionAt(el OrbitalElements, jd float64) ([]float64, error) {
	R, _, err := p.StateAt(el, jd)
	return R, err
}

// ConvergenceWarnings returns how many propagations hit the solver iteration
// cap since this propagator was created.
func (p *Propagator) ConvergenceWarnings() uint64 {
	return atomic.LoadUint64(&p.warnings)
}
