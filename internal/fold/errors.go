package fold

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry reports a joint count, image or perspective that
	// cannot produce a foldable chain.
	ErrInvalidGeometry = errors.New("fold: invalid geometry")

	// ErrIncompatibleDirectionLayout reports an explicitly requested layout
	// that contradicts the fold direction. It also matches ErrInvalidGeometry.
	ErrIncompatibleDirectionLayout = fmt.Errorf("%w: direction and layout disagree", ErrInvalidGeometry)

	// ErrNonConvergence reports a solver that exhausted its iteration budget
	// or was given an unreachable target.
	ErrNonConvergence = errors.New("fold: solver did not converge")
)

func invalidGeometry(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidGeometry, fmt.Sprintf(format, args...))
}
