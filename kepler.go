package astrosim

import (
	"math"

	"github.com/gonum/floats"
)

const (
	// keplerε is the convergence criterion on the eccentric anomaly step, in radians.
	keplerε = 1e-10
	// keplerMaxIter bounds the Newton-Raphson iteration so the solver always terminates.
	keplerMaxIter = 50
)

// SolveKepler solves Kepler's equation M = E - e·sin(E) for the eccentric
// anomaly E via Newton-Raphson. The mean anomaly may be any finite value and
// is wrapped into [0, 2π) before iterating; the returned E lies in the same
// range as the wrapped M plus the eccentric correction.
//
// If the iteration cap is reached, the best estimate is returned together
// with a *ConvergenceWarning. Any other error is impossible for e ∈ [0,1).
func SolveKepler(M, e float64) (float64, error) {
	M = normalizeRad(M)
	if floats.EqualWithinAbs(e, 0, 1e-12) {
		// Circular orbit, E ≡ M.
		return M, nil
	}
	E := M + e*math.Sin(M)
	for iter := 0; iter < keplerMaxIter; iter++ {
		f := E - e*math.Sin(E) - M
		fPrime := 1 - e*math.Cos(E)
		ΔE := f / fPrime
		E -= ΔE
		if math.Abs(ΔE) < keplerε {
			return E, nil
		}
	}
	return E, &ConvergenceWarning{MeanAnomaly: M, Eccentricity: e, BestEstimate: E, Iterations: keplerMaxIter}
}

// trueAnomalyFromE converts an eccentric anomaly to the true anomaly ν via the
// half-angle formulation, which has no quadrant problem.
func trueAnomalyFromE(E, e float64) float64 {
	sE, cE := math.Sincos(E / 2)
	return 2 * math.Atan2(math.Sqrt(1+e)*sE, math.Sqrt(1-e)*cE)
}

// eccentricAnomalyFromν is the inverse conversion, used when deriving elements
// from a state vector.
func eccentricAnomalyFromν(ν, e float64) float64 {
	sν, cν := math.Sincos(ν)
	denom := 1 + e*cν
	return math.Atan2(math.Sqrt(1-e*e)*sν/denom, (e+cν)/denom)
}
