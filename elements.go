package astrosim

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonum/floats"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
	// J2000 is the standard reference epoch, as a Julian date.
	J2000 = 2451545.0
	// gaussK is the Gaussian gravitational constant, in rad/day at 1 AU.
	// All heliocentric periods derive from it: n = k·a^(-3/2).
	gaussK = 0.01720209894846
	// μSun is the heliocentric gravitational parameter in AU³/day².
	μSun = gaussK * gaussK
)

// OrbitalElements defines a Keplerian orbit at a reference epoch.
// Units are fixed: AU for the semi-major axis, degrees for all angles and a
// Julian date for the epoch. Conversions to radians happen internally; no
// caller may assume radians.
type OrbitalElements struct {
	SemiMajorAxis float64 `json:"semi_major_axis"`
	Eccentricity  float64 `json:"eccentricity"`
	Inclination   float64 `json:"inclination"`
	AscendingNode float64 `json:"longitude_of_ascending_node"`
	ArgPerihelion float64 `json:"argument_of_perihelion"`
	MeanAnomaly0  float64 `json:"mean_anomaly_at_epoch"`
	Epoch         float64 `json:"epoch"`
}

// NewOrbitalElements validates and returns the elements. Bad input data fails
// here, at construction, rather than producing silently wrong orbits later.
func NewOrbitalElements(a, e, i, Ω, ω, M0, epoch float64) (OrbitalElements, error) {
	el := OrbitalElements{a, e, i, Ω, ω, M0, epoch}
	return el, el.Validate()
}

// Validate returns an *InvalidOrbitError for any element which cannot
// describe a bound heliocentric ellipse.
func (el OrbitalElements) Validate() error {
	if !isFinite(el.SemiMajorAxis) || el.SemiMajorAxis <= 0 {
		return &InvalidOrbitError{"semi_major_axis", el.SemiMajorAxis}
	}
	if !isFinite(el.Eccentricity) || el.Eccentricity < 0 || el.Eccentricity >= 1 {
		return &InvalidOrbitError{"eccentricity", el.Eccentricity}
	}
	for _, angle := range []struct {
		field string
		value float64
	}{
		{"inclination", el.Inclination},
		{"longitude_of_ascending_node", el.AscendingNode},
		{"argument_of_perihelion", el.ArgPerihelion},
		{"mean_anomaly_at_epoch", el.MeanAnomaly0},
	} {
		if !isFinite(angle.value) {
			return &InvalidOrbitError{angle.field, angle.value}
		}
	}
	if !isFinite(el.Epoch) {
		return &InvalidOrbitError{"epoch", el.Epoch}
	}
	return nil
}

// MeanMotion returns the mean motion n in rad/day.
func (el OrbitalElements) MeanMotion() float64 {
	return gaussK / (el.SemiMajorAxis * math.Sqrt(el.SemiMajorAxis))
}

// Period returns the orbital period in days.
func (el OrbitalElements) Period() float64 {
	return 2 * math.Pi / el.MeanMotion()
}

// MeanAnomalyAt returns the mean anomaly at the given Julian date, in radians
// wrapped into [0, 2π). The elapsed time is reduced modulo the period before
// entering the angle sum, so very large offsets (thousands of years) do not
// accumulate a huge angle ahead of the trigonometric evaluation.
func (el OrbitalElements) MeanAnomalyAt(jd float64) float64 {
	Δt := math.Mod(jd-el.Epoch, el.Period())
	return normalizeRad(el.MeanAnomaly0*deg2rad + el.MeanMotion()*Δt)
}

// Perihelion returns the perihelion distance in AU.
func (el OrbitalElements) Perihelion() float64 {
	return el.SemiMajorAxis * (1 - el.Eccentricity)
}

// Aphelion returns the aphelion distance in AU.
func (el OrbitalElements) Aphelion() float64 {
	return el.SemiMajorAxis * (1 + el.Eccentricity)
}

// SemiParameter returns the semi-latus rectum in AU.
func (el OrbitalElements) SemiParameter() float64 {
	return el.SemiMajorAxis * (1 - el.Eccentricity*el.Eccentricity)
}

// ElementsFromState derives the orbital elements from a heliocentric ecliptic
// state vector, position in AU and velocity in AU/day. This is the inverse of
// Propagator.StateAt: the mean anomaly at the given date becomes the epoch
// anomaly of the returned elements. From Vallado's RV2COE, page 113.
func ElementsFromState(R, V []float64, jd float64) (OrbitalElements, error) {
	if !isFinite(jd) {
		return OrbitalElements{}, &InvalidTimeError{jd}
	}
	hVec := cross(R, V)
	nVec := cross([]float64{0, 0, 1}, hVec)
	v := norm(V)
	r := norm(R)
	ξ := v*v/2 - μSun/r
	a := -μSun / (2 * ξ)
	eVec := make([]float64, 3)
	for k := 0; k < 3; k++ {
		eVec[k] = ((v*v-μSun/r)*R[k] - dot(R, V)*V[k]) / μSun
	}
	e := norm(eVec)
	i := math.Acos(hVec[2] / norm(hVec))
	ω := math.Acos(dot(nVec, eVec) / (norm(nVec) * e))
	if math.IsNaN(ω) {
		ω = 0
	}
	if eVec[2] < 0 {
		ω = 2*math.Pi - ω
	}
	Ω := math.Acos(nVec[0] / norm(nVec))
	if math.IsNaN(Ω) {
		Ω = 0
	}
	if nVec[1] < 0 {
		Ω = 2*math.Pi - Ω
	}
	cosν := dot(unit(eVec), unit(R))
	if abscosν := math.Abs(cosν); abscosν > 1 && floats.EqualWithinAbs(abscosν, 1, 1e-12) {
		// Rounding can push the cosine epsilon-past unity and turn Acos into NaN.
		cosν = sign(cosν)
	}
	ν := math.Acos(cosν)
	if dot(R, V) < 0 {
		ν = 2*math.Pi - ν
	}
	E := normalizeRad(eccentricAnomalyFromν(ν, e))
	M := normalizeRad(E - e*math.Sin(E))
	el := OrbitalElements{a, e, Rad2deg(i), Rad2deg(Ω), Rad2deg(ω), Rad2deg(M), jd}
	return el, el.Validate()
}

// Equals returns whether both element sets describe the same orbit within the
// element tolerances, with the anomaly left free. Use StrictlyEquals to also
// check the mean anomaly.
func (el OrbitalElements) Equals(other OrbitalElements) (bool, error) {
	if !floats.EqualWithinAbs(el.SemiMajorAxis, other.SemiMajorAxis, distanceε) {
		return false, errors.New("semi major axis invalid")
	}
	if !floats.EqualWithinAbs(el.Eccentricity, other.Eccentricity, eccentricityε) {
		return false, errors.New("eccentricity invalid")
	}
	for _, angle := range []struct {
		name string
		a, b float64
	}{
		{"inclination", el.Inclination, other.Inclination},
		{"RAAN", el.AscendingNode, other.AscendingNode},
		{"argument of perihelion", el.ArgPerihelion, other.ArgPerihelion},
	} {
		if !floats.EqualWithinAbs(Deg2rad(angle.a), Deg2rad(angle.b), angleε) {
			return false, errors.New(angle.name + " invalid")
		}
	}
	return true, nil
}

// StrictlyEquals is Equals plus the mean anomaly at epoch.
func (el OrbitalElements) StrictlyEquals(other OrbitalElements) (bool, error) {
	if !floats.EqualWithinAbs(Deg2rad(el.MeanAnomaly0), Deg2rad(other.MeanAnomaly0), angleε) {
		return false, errors.New("mean anomaly invalid")
	}
	return el.Equals(other)
}

// OrbitInfo summarizes derived orbit properties for display panels.
type OrbitInfo struct {
	PeriodDays   float64 `json:"period_days"`
	PeriodYears  float64 `json:"period_years"`
	AphelionAU   float64 `json:"aphelion_au"`
	PerihelionAU float64 `json:"perihelion_au"`
}

// Info derives the displayable orbit summary.
func (el OrbitalElements) Info() OrbitInfo {
	period := el.Period()
	return OrbitInfo{
		PeriodDays:   period,
		PeriodYears:  period / 365.25,
		AphelionAU:   el.Aphelion(),
		PerihelionAU: el.Perihelion(),
	}
}

// String implements the Stringer interface.
func (el OrbitalElements) String() string {
	return fmt.Sprintf("a=%.6f AU e=%.6f i=%.3f° Ω=%.3f° ω=%.3f° M₀=%.3f° @ JD %.1f",
		el.SemiMajorAxis, el.Eccentricity, el.Inclination, el.AscendingNode, el.ArgPerihelion, el.MeanAnomaly0, el.Epoch)
}
