//go:build !ios && !android && (amd64 || arm64)

package avutil

import "fmt"

// Rational is an AVRational. Stream time bases and frame rates are
// read from struct memory into this type, never passed by value to C.
type Rational struct {
	Num int32
	Den int32
}

// NewRational creates a new Rational with the given numerator and denominator.
func NewRational(num, den int32) Rational {
	return Rational{Num: num, Den: den}
}

// Float64 converts the rational to a float64.
// Returns 0 if the denominator is 0.
func (r Rational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Valid reports whether both terms are positive.
func (r Rational) Valid() bool {
	return r.Num > 0 && r.Den > 0
}

// Invert returns den/num.
func (r Rational) Invert() Rational {
	return Rational{Num: r.Den, Den: r.Num}
}

// Cmp returns -1, 0 or 1 as r is less than, equal to or greater than other.
func (r Rational) Cmp(other Rational) int {
	left := int64(r.Num) * int64(other.Den)
	right := int64(other.Num) * int64(r.Den)

	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	}
	return 0
}

// Reduce reduces the rational to lowest terms.
func (r Rational) Reduce() Rational {
	if r.Den == 0 {
		return r
	}
	g := gcd(abs(r.Num), abs(r.Den))
	if g == 0 {
		return r
	}
	return Rational{Num: r.Num / g, Den: r.Den / g}
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func gcd(a, b int32) int32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

// TimeBaseMicro is AV_TIME_BASE_Q, the unit of container-level timestamps.
var TimeBaseMicro = NewRational(1, 1000000)

// TimeBase is AV_TIME_BASE.
const TimeBase = 1000000

// NoPTSValue is AV_NOPTS_VALUE.
const NoPTSValue int64 = -1 << 63
