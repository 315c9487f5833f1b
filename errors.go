package astrosim

import "fmt"

// InvalidOrbitError is returned when orbital elements cannot describe a bound
// elliptical orbit (eccentricity outside [0,1), non-positive semi-major axis,
// or a non-finite field).
type InvalidOrbitError struct {
	Field string  // offending element, e.g. "eccentricity"
	Value float64 // the rejected value
}

func (e *InvalidOrbitError) Error() string {
	return fmt.Sprintf("invalid orbit: %s = %v", e.Field, e.Value)
}

// InvalidTimeError is returned when a target Julian date is NaN or infinite.
type InvalidTimeError struct {
	JD float64
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid Julian date: %v", e.JD)
}

// UnknownBodyError is returned when querying a body name absent from the system.
type UnknownBodyError struct {
	Name string
}

func (e *UnknownBodyError) Error() string {
	return fmt.Sprintf("unknown body %q", e.Name)
}

// ConvergenceWarning is returned by the Kepler solver when the iteration cap
// was reached before the tolerance was met. The best estimate is still usable;
// callers may log this but must not treat it as fatal.
type ConvergenceWarning struct {
	MeanAnomaly  float64 // radians, as normalized by the solver
	Eccentricity float64
	BestEstimate float64 // eccentric anomaly of the last iteration, radians
	Iterations   int
}

func (e *ConvergenceWarning) Error() string {
	return fmt.Sprintf("Kepler solver did not converge after %d iterations (M=%f e=%f E=%f)", e.Iterations, e.MeanAnomaly, e.Eccentricity, e.BestEstimate)
}
