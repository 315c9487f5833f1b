package astrosim

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestSolveKeplerCircular(t *testing.T) {
	for M := 0.0; M < 2*math.Pi; M += 0.05 {
		E, err := SolveKepler(M, 0)
		if err != nil {
			t.Fatalf("unexpected error for M=%f: %s", M, err)
		}
		if !floats.EqualWithinAbs(E, M, 1e-12) {
			t.Fatalf("E=%.15f != M=%.15f for a circular orbit", E, M)
		}
	}
}

func TestSolveKeplerResidual(t *testing.T) {
	for _, e := range []float64{1e-6, 0.01671123, 0.205630, 0.5, 0.9} {
		for M := -4 * math.Pi; M < 4*math.Pi; M += 0.1 {
			E, err := SolveKepler(M, e)
			if err != nil {
				t.Fatalf("did not converge for M=%f e=%f: %s", M, e, err)
			}
			// The solution satisfies Kepler's equation for the wrapped M.
			if !floats.EqualWithinAbs(E-e*math.Sin(E), normalizeRad(M), 1e-9) {
				t.Fatalf("residual too large for M=%f e=%f: E=%f", M, e, E)
			}
		}
	}
}

func TestSolveKeplerNearParabolic(t *testing.T) {
	// Near e=1 the iteration may hit the cap; the contract is a finite best
	// estimate with a ConvergenceWarning, never an endless loop.
	for _, M := range []float64{1e-8, 0.1, math.Pi - 1e-6, math.Pi} {
		E, err := SolveKepler(M, 1-1e-12)
		if !isFinite(E) {
			t.Fatalf("non-finite E for M=%f", M)
		}
		if err != nil {
			var warn *ConvergenceWarning
			if !errors.As(err, &warn) {
				t.Fatalf("unexpected error type: %s", err)
			}
			if warn.Iterations != keplerMaxIter || !isFinite(warn.BestEstimate) {
				t.Fatalf("warning not populated: %+v", warn)
			}
		}
	}
}

func TestTrueAnomalyRoundTrip(t *testing.T) {
	for _, e := range []float64{0.01, 0.3, 0.8} {
		for E := 0.05; E < 2*math.Pi; E += 0.1 {
			ν := trueAnomalyFromE(E, e)
			back := normalizeRad(eccentricAnomalyFromν(ν, e))
			if ok, err := anglesEqual(back, E); !ok {
				t.Fatalf("ν→E→ν failed for E=%f e=%f: %s", E, e, err)
			}
		}
	}
}
