package astrosim

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Sun is fixed at the origin of the heliocentric frame; only its physical
// properties matter to consumers.
type Sun struct {
	Mass        float64 `json:"mass"`        // kg
	Radius      float64 `json:"radius"`      // km
	Temperature float64 `json:"temperature"` // K
	Luminosity  float64 `json:"luminosity"`  // W
}

// DefaultSun returns our closest star.
func DefaultSun() Sun {
	return Sun{Mass: 1.989e30, Radius: 695700.0, Temperature: 5778.0, Luminosity: 3.828e26}
}

// CelestialBody aggregates a planet's identity and physical properties with
// its orbital elements and the cached propagated state. Bodies are owned by a
// SolarSystem; only the cached state mutates after construction.
type CelestialBody struct {
	Name           string         // display name from the catalog
	NameEn         string         // canonical English name, unique within a system
	Mass           float64        // kg
	Radius         float64        // km
	Color          colorful.Color // RGB in [0,1]
	RotationPeriod float64        // hours, negative for retrograde spin
	AxialTilt      float64        // degrees
	Elements       OrbitalElements

	state bodyState
}

type bodyState struct {
	r, v  []float64
	jd    float64
	valid bool
}

// NewCelestialBody validates the elements and returns the body. The cached
// state starts empty; the owning SolarSystem fills it on the first advance.
func NewCelestialBody(name, nameEn string, mass, radius float64, color colorful.Color, rotationPeriod, axialTilt float64, el OrbitalElements) (*CelestialBody, error) {
	if err := el.Validate(); err != nil {
		return nil, fmt.Errorf("body %q: %w", nameEn, err)
	}
	return &CelestialBody{Name: name, NameEn: nameEn, Mass: mass, Radius: radius, Color: color,
		RotationPeriod: rotationPeriod, AxialTilt: axialTilt, Elements: el}, nil
}

// Position returns a copy of the cached heliocentric position in AU.
func (b *CelestialBody) Position() []float64 {
	return append([]float64(nil), b.state.r...)
}

// Velocity returns a copy of the cached heliocentric velocity in AU/day.
func (b *CelestialBody) Velocity() []float64 {
	return append([]float64(nil), b.state.v...)
}

// StateDate returns the Julian date the cached state is valid for.
func (b *CelestialBody) StateDate() float64 {
	return b.state.jd
}

// HasState reports whether the cached state has ever been computed.
func (b *CelestialBody) HasState() bool {
	return b.state.valid
}

func (b *CelestialBody) setState(jd float64, r, v []float64) {
	b.state = bodyState{r: r, v: v, jd: jd, valid: true}
}

// String implements the Stringer interface.
func (b *CelestialBody) String() string {
	return b.NameEn + " body"
}

// DefaultBodies returns fresh instances of the eight planets with their
// J2000.0 ecliptic elements. Each call allocates anew since the cached state
// is mutable.
func DefaultBodies() []*CelestialBody {
	mk := func(name, nameEn string, mass, radius float64, color colorful.Color, rot, tilt float64, el OrbitalElements) *CelestialBody {
		b, err := NewCelestialBody(name, nameEn, mass, radius, color, rot, tilt, el)
		if err != nil {
			panic(err) // the built-in catalog is known valid
		}
		return b
	}
	return []*CelestialBody{
		// Mercury is scorched.
		mk("水星", "Mercury", 3.301e23, 2439.7, colorful.Color{R: 0.7, G: 0.7, B: 0.7}, 1407.6, 0.034,
			OrbitalElements{0.387098, 0.205630, 7.005, 48.331, 29.124, 174.796, J2000}),
		// Venus is poisonous.
		mk("金星", "Venus", 4.867e24, 6051.8, colorful.Color{R: 1.0, G: 0.8, B: 0.4}, -5832.5, 177.4,
			OrbitalElements{0.723332, 0.006772, 3.39458, 76.680, 54.884, 50.115, J2000}),
		// Earth is home.
		mk("地球", "Earth", 5.972e24, 6371.0, colorful.Color{R: 0.3, G: 0.7, B: 1.0}, 23.9345, 23.44,
			OrbitalElements{1.00000261, 0.01671123, 0.00001531, -11.26064, 102.93768, 100.46457, J2000}),
		// Mars is the vacation place.
		mk("火星", "Mars", 6.417e23, 3389.5, colorful.Color{R: 0.8, G: 0.3, B: 0.1}, 24.6229, 25.19,
			OrbitalElements{1.52371034, 0.09339410, 1.84969142, 49.55953891, 286.50210865, 19.3870, J2000}),
		// Jupiter is big.
		mk("木星", "Jupiter", 1.898e27, 69911.0, colorful.Color{R: 0.9, G: 0.7, B: 0.4}, 9.9259, 3.13,
			OrbitalElements{5.20288700, 0.04838624, 1.30439695, 100.47390909, 273.86740840, 20.020, J2000}),
		// Saturn floats and that's really cool.
		mk("土星", "Saturn", 5.683e26, 58232.0, colorful.Color{R: 0.9, G: 0.9, B: 0.6}, 10.656, 26.73,
			OrbitalElements{9.53667594, 0.05386179, 2.48599187, 113.66242448, 339.39164700, 317.020, J2000}),
		// Uranus is no joke.
		mk("天王星", "Uranus", 8.681e25, 25362.0, colorful.Color{R: 0.4, G: 0.8, B: 0.9}, -17.2417, 97.77,
			OrbitalElements{19.18916464, 0.04725744, 0.77263783, 74.01692503, 96.99856000, 142.238, J2000}),
		// Neptune is far.
		mk("海王星", "Neptune", 1.024e26, 24622.0, colorful.Color{R: 0.2, G: 0.3, B: 0.8}, 16.1187, 28.32,
			OrbitalElements{30.06992276, 0.00859048, 1.77004347, 131.78422574, 276.33640000, 260.813, J2000}),
	}
}
