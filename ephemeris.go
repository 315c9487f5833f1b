package astrosim

import (
	"fmt"
	"math"
	"sync"

	"github.com/mshafiee/jpleph"
	"github.com/soniakeys/meeus/planetposition"
)

// Ephemeris provides heliocentric ecliptic states for named bodies at a
// Julian date, independently of their Keplerian elements. Implementations
// back the optional high-accuracy modes; the Keplerian propagator remains
// the default.
type Ephemeris interface {
	// Covers reports whether the source can serve the given English body name.
	Covers(nameEn string) bool
	// StateAt returns position (AU) and velocity (AU/day) in the heliocentric
	// ecliptic frame.
	StateAt(nameEn string, jd float64) (R, V []float64, err error)
}

// vsop87Index maps body names to the VSOP87 file index.
var vsop87Index = map[string]int{
	"Mercury": 0, "Venus": 1, "Earth": 2, "Mars": 3,
	"Jupiter": 4, "Saturn": 5, "Uranus": 6, "Neptune": 7,
}

// VSOP87Ephemeris serves planet states from VSOP87 data files. Planets are
// loaded lazily; the whole file is loaded on first use of each body.
type VSOP87Ephemeris struct {
	dir string

	mu      sync.Mutex
	planets map[string]*planetposition.V87Planet
}

// NewVSOP87Ephemeris returns a source reading VSOP87 files from dir.
func NewVSOP87Ephemeris(dir string) *VSOP87Ephemeris {
	return &VSOP87Ephemeris{dir: dir, planets: make(map[string]*planetposition.V87Planet)}
}

// Covers implements Ephemeris.
func (v *VSOP87Ephemeris) Covers(nameEn string) bool {
	_, found := vsop87Index[nameEn]
	return found
}

// StateAt implements Ephemeris. The velocity comes from a symmetric finite
// difference since VSOP87 series give positions only.
func (v *VSOP87Ephemeris) StateAt(nameEn string, jd float64) ([]float64, []float64, error) {
	planet, err := v.planet(nameEn)
	if err != nil {
		return nil, nil, err
	}
	R := vsopCartesian(planet, jd)
	const h = 0.05 // days
	Rp := vsopCartesian(planet, jd+h)
	Rm := vsopCartesian(planet, jd-h)
	V := make([]float64, 3)
	for i := 0; i < 3; i++ {
		V[i] = (Rp[i] - Rm[i]) / (2 * h)
	}
	return R, V, nil
}

func (v *VSOP87Ephemeris) planet(nameEn string) (*planetposition.V87Planet, error) {
	idx, found := vsop87Index[nameEn]
	if !found {
		return nil, &UnknownBodyError{nameEn}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if planet, loaded := v.planets[nameEn]; loaded {
		return planet, nil
	}
	planet, err := planetposition.LoadPlanetPath(idx, v.dir)
	if err != nil {
		return nil, fmt.Errorf("could not load VSOP87 data for %s: %w", nameEn, err)
	}
	v.planets[nameEn] = planet
	return planet, nil
}

// vsopCartesian converts the VSOP87 L,B,R spherical output to Cartesian AU.
func vsopCartesian(planet *planetposition.V87Planet, jd float64) []float64 {
	l, b, r := planet.Position2000(jd)
	sB, cB := math.Sincos(b.Rad())
	sL, cL := math.Sincos(l.Rad())
	return []float64{r * cB * cL, r * cB * sL, r * sB}
}

var jplTarget = map[string]jpleph.Planet{
	"Mercury": jpleph.Mercury, "Venus": jpleph.Venus, "Earth": jpleph.Earth,
	"Mars": jpleph.Mars, "Jupiter": jpleph.Jupiter, "Saturn": jpleph.Saturn,
	"Uranus": jpleph.Uranus, "Neptune": jpleph.Neptune,
}

// obliquityJ2000 is the mean obliquity of the ecliptic at J2000.0, degrees.
const obliquityJ2000 = 23.4392911

// JPLEphemeris serves planet states from a JPL DE binary (de405, de430, ...).
// DE states are ICRF equatorial, so they are rotated into the ecliptic frame
// to match the rest of the module.
type JPLEphemeris struct {
	eph *jpleph.Ephemeris
}

// NewJPLEphemeris opens the DE binary at path.
func NewJPLEphemeris(path string) (*JPLEphemeris, error) {
	eph, err := jpleph.NewEphemeris(path, false)
	if err != nil {
		return nil, fmt.Errorf("could not open JPL ephemeris %s: %w", path, err)
	}
	return &JPLEphemeris{eph: eph}, nil
}

// Covers implements Ephemeris.
func (j *JPLEphemeris) Covers(nameEn string) bool {
	_, found := jplTarget[nameEn]
	return found
}

// StateAt implements Ephemeris.
func (j *JPLEphemeris) StateAt(nameEn string, jd float64) ([]float64, []float64, error) {
	target, found := jplTarget[nameEn]
	if !found {
		return nil, nil, &UnknownBodyError{nameEn}
	}
	pos, vel, err := j.eph.CalculatePV(jd, target, jpleph.CenterSun, true)
	if err != nil {
		return nil, nil, err
	}
	eq2ecl := R1(Deg2rad(obliquityJ2000))
	R := MxV33(eq2ecl, []float64{pos.X, pos.Y, pos.Z})
	V := MxV33(eq2ecl, []float64{vel.DX, vel.DY, vel.DZ})
	return R, V, nil
}

// Close releases the underlying DE file handle.
func (j *JPLEphemeris) Close() error {
	return j.eph.Close()
}
