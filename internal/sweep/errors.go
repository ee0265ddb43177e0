package sweep

import "errors"

var (
	// ErrInvalidGrid indicates a non-physical frequency range: start not
	// below stop, non-positive frequencies, too few points, NaN or Inf.
	ErrInvalidGrid = errors.New("sweep: invalid frequency grid")

	// ErrInvalidSolution indicates stub lengths that are NaN or Inf.
	ErrInvalidSolution = errors.New("sweep: solution lengths must be finite")

	// ErrUnknownMetric indicates a ranking metric outside the supported set.
	ErrUnknownMetric = errors.New("sweep: unknown ranking metric")
)
