package match

import "errors"

// Domain errors for matching operations.
var (
	// ErrInvalidLoad indicates a non-physical load impedance (negative
	// resistance, zero magnitude, NaN or Inf).
	ErrInvalidLoad = errors.New("match: non-physical load impedance")

	// ErrInvalidParams indicates line parameters outside their valid range.
	ErrInvalidParams = errors.New("match: invalid line parameters")

	// ErrDegenerateSpacing indicates a stub spacing within tolerance of a
	// half-wave multiple, where the spacing transform cannot move the
	// conductance and the matching equations degenerate.
	ErrDegenerateSpacing = errors.New("match: stub spacing is a half-wave multiple")

	// ErrNoConvergence indicates a root bracket that failed to reach the
	// configured precision within its iteration cap. Reported per
	// candidate; other candidates proceed.
	ErrNoConvergence = errors.New("match: bracket refinement did not converge")
)
