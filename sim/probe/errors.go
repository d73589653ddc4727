package probe

import "errors"

var (
	// ErrInvalidBounds is returned for a histogram with max <= min or no
	// buckets.
	ErrInvalidBounds = errors.New("invalid histogram bounds")
	// ErrInvalidWindow is returned for a sliding window narrower than 1.
	ErrInvalidWindow = errors.New("window width must be >= 1")
	// ErrInvalidCoefficient is returned for an EMA coefficient outside (0,1).
	ErrInvalidCoefficient = errors.New("EMA coefficient must be in (0,1)")
	// ErrInvalidSlice is returned for a non-positive slice duration or
	// snapshot period.
	ErrInvalidSlice = errors.New("slice duration must be > 0")
	// ErrKindMismatch is returned when an operation is applied to a probe
	// of the wrong variant.
	ErrKindMismatch = errors.New("probe kind mismatch")

	errCapacity = errors.New("capacity exceeded")
)
