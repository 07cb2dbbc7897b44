// Package buffer implements the growable byte-string and array types the
// generated code links against. Growth follows the amortized-doubling rule
// newCap = max(2*cap, required); slices clamp their ranges instead of
// failing. Both are contracts the emitted C must match exactly.
//
// Unlike the C runtime this package reports invalid indexing explicitly:
// Get/Set/Pop and their String counterparts return ErrIndexOutOfRange or
// ErrEmpty instead of a silent zero value. The zero-value behavior of the
// original runtime masked bugs and is deliberately not reproduced.
//
// Instances are exclusively owned. Append and Push mutate the receiver in
// place and may reallocate, so no other reference to the old backing storage
// may be retained, and no instance may be used from more than one goroutine.
package buffer

import "errors"

var (
	// ErrIndexOutOfRange reports Get/Set beyond the logical length.
	ErrIndexOutOfRange = errors.New("buffer: index out of range")
	// ErrEmpty reports Pop on an empty buffer.
	ErrEmpty = errors.New("buffer: empty")
)

// grownCapacity applies the amortized-doubling rule. A required capacity
// that overflowed int in the caller's length arithmetic is unrepresentable
// and aborts; a doubling overflow falls back to the exact requirement.
func grownCapacity(current, required int) int {
	if required < 0 {
		panic("buffer: required capacity overflows int")
	}
	newCap := current * 2
	if newCap < 0 || newCap < required {
		newCap = required
	}
	return newCap
}

// clampRange clamps [start, end) into [0, length] and collapses inverted
// ranges, mirroring the defensive slice contract of the runtime.
func clampRange(start, end, length int) (int, int) {
	if end > length {
		end = length
	}
	if end < 0 {
		end = 0
	}
	if start > end {
		start = end
	}
	if start < 0 {
		start = 0
	}
	return start, end
}
