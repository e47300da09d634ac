package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrUnknownParameter indicates a parameter name or id outside the seven known ones.
	ErrUnknownParameter = errors.New("dynamo: unknown parameter")

	// ErrInvalidConfig indicates a configuration value that cannot drive a run.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrExport indicates the export collaborator failed to persist a run.
	ErrExport = errors.New("dynamo: export failed")

	// ErrUnstable indicates the integrator produced a non-finite angle.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Tick    uint64
	Time    float64
	Window  Window
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
