package rangemap

import (
	"fmt"
	"math"
)

// Domain is a closed numeric interval measured linearly or logarithmically.
type Domain struct {
	Lower float64
	Upper float64
	Log   bool
}

func Linear(lower, upper float64) Domain {
	return Domain{Lower: lower, Upper: upper}
}

func Logarithmic(lower, upper float64) Domain {
	return Domain{Lower: lower, Upper: upper, Log: true}
}

// Validate reports configuration errors that would otherwise surface as NaN
// results during mapping.
func (d Domain) Validate() error {
	if math.IsNaN(d.Lower) || math.IsInf(d.Lower, 0) || math.IsNaN(d.Upper) || math.IsInf(d.Upper, 0) {
		return fmt.Errorf("%w: [%g, %g]", ErrNotFinite, d.Lower, d.Upper)
	}
	if d.Lower > d.Upper {
		return fmt.Errorf("%w: [%g, %g]", ErrInvertedDomain, d.Lower, d.Upper)
	}
	if d.Log && (d.Lower <= 0 || d.Upper <= 0) {
		return fmt.Errorf("%w: [%g, %g]", ErrNonPositiveLogBound, d.Lower, d.Upper)
	}
	return nil
}

// Degenerate reports whether both bounds are equal.
func (d Domain) Degenerate() bool {
	return d.Lower == d.Upper
}

// Clamp limits x to the domain bounds.
func (d Domain) Clamp(x float64) float64 {
	return Clamp(x, d.Lower, d.Upper)
}

func (d Domain) String() string {
	kind := "lin"
	if d.Log {
		kind = "log"
	}
	return fmt.Sprintf("%s[%g, %g]", kind, d.Lower, d.Upper)
}

// Fraction returns how far x lies between the domain bounds. A degenerate
// domain yields 0.
func (d Domain) Fraction(x float64) float64 {
	if d.Degenerate() {
		return 0
	}
	a, b := d.Lower, d.Upper
	if d.Log {
		a, b, x = math.Log(a), math.Log(b), math.Log(x)
	}
	return (x - a) / (b - a)
}

// Interpolate returns the point a fraction t of the way through the domain.
// The bounds are returned exactly at t == 0 and t == 1.
func (d Domain) Interpolate(t float64) float64 {
	switch t {
	case 0:
		return d.Lower
	case 1:
		return d.Upper
	}
	if d.Log {
		return gerp(d.Lower, d.Upper, t)
	}
	return lerp(d.Lower, d.Upper, t)
}

// Map converts x from the src domain into the dst domain.
func Map(src Domain, x float64, dst Domain) float64 {
	return dst.Interpolate(src.Fraction(x))
}

func Clamp(x, lo, hi float64) float64 {
	if x <= lo {
		return lo
	}
	if x >= hi {
		return hi
	}
	return x
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func gerp(a, b, t float64) float64 {
	return a * math.Pow(b/a, t)
}
