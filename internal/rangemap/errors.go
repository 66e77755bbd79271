package rangemap

import "errors"

var (
	// ErrNonPositiveLogBound indicates a logarithmic domain with a bound <= 0.
	ErrNonPositiveLogBound = errors.New("rangemap: logarithmic domain requires positive bounds")

	// ErrInvertedDomain indicates a domain whose lower bound exceeds its upper bound.
	ErrInvertedDomain = errors.New("rangemap: lower bound exceeds upper bound")

	// ErrNotFinite indicates a NaN or infinite bound.
	ErrNotFinite = errors.New("rangemap: bound is not finite")
)
