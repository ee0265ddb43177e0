package txline

import "errors"

// Domain errors for line and stub evaluation.
var (
	// ErrSingularLength indicates a stub length within tolerance of a
	// cot/tan singularity, where the stub admittance is unbounded.
	ErrSingularLength = errors.New("txline: stub length within tolerance of a singularity")

	// ErrDegenerateTransform indicates a line transform whose limiting
	// expression is itself undefined (degenerate denominator with a
	// near-zero load admittance).
	ErrDegenerateTransform = errors.New("txline: degenerate line transform")

	// ErrUnknownStubKind indicates a stub termination other than short or open.
	ErrUnknownStubKind = errors.New("txline: unknown stub kind")
)
