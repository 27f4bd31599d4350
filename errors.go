package capgrowth

import "errors"

var (
	// ErrEmptySegment is returned when the anchor date leaves no index record on
	// one side of it, so there is nothing to bridge.
	ErrEmptySegment = errors.New("anchor date outside of the index range")
	// ErrDivision is returned when a zero value is used as a denominator.
	ErrDivision = errors.New("division by zero")
	// ErrDomain is returned when a result is undefined over the reals, like the
	// fractional power of a negative growth ratio.
	ErrDomain = errors.New("undefined in the real domain")
)
