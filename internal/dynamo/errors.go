package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for sampling operations.
var (
	// ErrNonPositiveParam indicates beta, timestep or diffusion <= 0.
	ErrNonPositiveParam = errors.New("dynamo: parameter must be positive")

	// ErrShapeMismatch indicates force and position vectors of different length.
	ErrShapeMismatch = errors.New("dynamo: force and position shapes differ")

	// ErrInvalidPosition indicates a position containing NaN or Inf.
	ErrInvalidPosition = errors.New("dynamo: invalid position (NaN or Inf detected)")

	// ErrEmptyTrajectory indicates an operation on a trajectory with no configurations.
	ErrEmptyTrajectory = errors.New("dynamo: empty trajectory")
)

func paramError(name string, v float64) error {
	return fmt.Errorf("%s = %g: %w", name, v, ErrNonPositiveParam)
}
