package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrDegenerateGeometry indicates two or more zero box dimensions.
	ErrDegenerateGeometry = errors.New("dynamo: two or more box dimensions are zero")

	// ErrNonPositiveInertia indicates a principal moment that is not > 0.
	ErrNonPositiveInertia = errors.New("dynamo: principal moments of inertia must be positive")

	// ErrUnknownMode indicates an unrecognised torque mode name.
	ErrUnknownMode = errors.New("dynamo: unknown torque mode")

	// ErrUnknownSequence indicates an unrecognised Euler sequence.
	ErrUnknownSequence = errors.New("dynamo: unknown euler sequence")

	// ErrUnknownAxis indicates an unrecognised inertial axis orientation.
	ErrUnknownAxis = errors.New("dynamo: unknown axis orientation")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Tick    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
