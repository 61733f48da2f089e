package lowpoly

import "github.com/pkg/errors"

// Error kinds returned by the pipeline. Every error produced by this package
// wraps one of them, so callers can branch with errors.Is.
var (
	// ErrDegenerateGeometry reports three collinear or coincident points
	// combined into a triangle.
	ErrDegenerateGeometry = errors.New("lowpoly: degenerate geometry")
	// ErrInvalidParameter reports a configuration value outside its range.
	ErrInvalidParameter = errors.New("lowpoly: invalid parameter")
	// ErrEmptyInput reports a zero sized pixel buffer or too few points to triangulate.
	ErrEmptyInput = errors.New("lowpoly: empty input")
)

func invalidParam(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidParameter, format, args...)
}
