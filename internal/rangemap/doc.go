// Package rangemap converts values between two numeric domains.
//
// Each [Domain] is either linear or logarithmic. A value is first reduced to
// the fraction t of the way it lies between the source bounds (measured
// linearly or in log space), then expanded into the target domain by linear
// or geometric interpolation:
//
//	t      = (x - a) / (b - a)            linear source
//	t      = (ln x - ln a) / (ln b - ln a) logarithmic source
//	result = A + (B - A) * t              linear target
//	result = A * (B / A)^t                logarithmic target
//
// # Usage
//
//	slider := rangemap.Linear(0, 1000)
//	speed := rangemap.Logarithmic(1.0/3, 3)
//	pos := rangemap.Map(speed, 1, slider) // 500
//
// Map never clamps its input and never fails. Domains must be checked with
// [Domain.Validate] when they are configured.
package rangemap
