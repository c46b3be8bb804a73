package panel

import (
	"fmt"
	"math"
)

// ValidationError reports a parameter value outside its documented interval.
// It is returned before any computation starts; the solver is never run on
// invalid input.
type ValidationError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *ValidationError) Error() string {
	if math.IsInf(e.Max, 1) {
		return fmt.Sprintf("%s must be positive, got %g", e.Field, e.Value)
	}
	return fmt.Sprintf("%s out of range [%g, %g], got %g", e.Field, e.Min, e.Max, e.Value)
}

// ComputationError reports a numeric failure inside a run, such as a
// non-finite value appearing in the temperature field. Each run owns its
// grids, so a failed run never corrupts a later one.
type ComputationError struct {
	Step    int
	Message string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed at step %d: %s", e.Step, e.Message)
}
