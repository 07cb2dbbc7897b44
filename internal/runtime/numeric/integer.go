// Package numeric implements the fixed-width numeric wrappers the generated
// code links against. The Go side is the reference semantics: every operation
// here must match the embedded C runtime bit-for-bit.
package numeric

import (
	"math"
	"strconv"
)

// Integer is an immutable 64-bit signed integer with saturating arithmetic.
type Integer struct {
	value int64
}

// IntegerFrom wraps a raw int64.
func IntegerFrom(v int64) Integer {
	return Integer{value: v}
}

// Value returns the raw int64.
func (a Integer) Value() int64 {
	return a.value
}

// Add returns a+b, clamped to the int64 range. Overflow is detected with
// boundary checks before the operation; the raw operation never overflows.
func (a Integer) Add(b Integer) Integer {
	if a.value > 0 {
		if b.value > math.MaxInt64-a.value {
			return IntegerFrom(math.MaxInt64)
		}
	} else if b.value < math.MinInt64-a.value {
		return IntegerFrom(math.MinInt64)
	}
	return IntegerFrom(a.value + b.value)
}

// Sub returns a-b, clamped to the int64 range.
func (a Integer) Sub(b Integer) Integer {
	if b.value < 0 {
		if a.value > math.MaxInt64+b.value {
			return IntegerFrom(math.MaxInt64)
		}
	} else if a.value < math.MinInt64+b.value {
		return IntegerFrom(math.MinInt64)
	}
	return IntegerFrom(a.value - b.value)
}

// Mul returns a*b, clamped to the int64 range.
func (a Integer) Mul(b Integer) Integer {
	if a.value > 0 {
		if b.value > 0 && a.value > math.MaxInt64/b.value {
			return IntegerFrom(math.MaxInt64)
		}
		if b.value < 0 && b.value < math.MinInt64/a.value {
			return IntegerFrom(math.MinInt64)
		}
	} else if a.value < 0 {
		if b.value > 0 && a.value < math.MinInt64/b.value {
			return IntegerFrom(math.MinInt64)
		}
		if b.value < 0 && a.value < math.MaxInt64/b.value {
			return IntegerFrom(math.MaxInt64)
		}
	}
	return IntegerFrom(a.value * b.value)
}

// Div returns a/b with saturating conventions: division by zero yields the
// maximum value for a non-negative dividend and the minimum otherwise, and
// MinInt64/-1 saturates to MaxInt64 instead of overflowing.
func (a Integer) Div(b Integer) Integer {
	if b.value == 0 {
		if a.value >= 0 {
			return IntegerFrom(math.MaxInt64)
		}
		return IntegerFrom(math.MinInt64)
	}
	if a.value == math.MinInt64 && b.value == -1 {
		return IntegerFrom(math.MaxInt64)
	}
	return IntegerFrom(a.value / b.value)
}

// Equals compares by exact value.
func (a Integer) Equals(b Integer) bool {
	return a.value == b.value
}

// Show renders the canonical decimal form.
func (a Integer) Show() string {
	return strconv.FormatInt(a.value, 10)
}
