package buffer

// String is a growable byte string with explicit length/capacity bookkeeping.
// One terminator byte beyond the logical length is always reserved but never
// counted, so capacity arithmetic matches the emitted C runtime exactly.
type String struct {
	data   []byte
	length int
}

// StringFrom builds a String holding a copy of s.
func StringFrom(s string) String {
	data := make([]byte, len(s)+1)
	copy(data, s)
	return String{data: data, length: len(s)}
}

// StringWithCapacity builds an empty String with room for capacity bytes
// (terminator included, as in the C runtime).
func StringWithCapacity(capacity int) String {
	if capacity < 1 {
		capacity = 1
	}
	return String{data: make([]byte, capacity)}
}

// Len returns the logical length in bytes.
func (s *String) Len() int {
	return s.length
}

// Cap returns the allocated capacity, terminator slot included.
func (s *String) Cap() int {
	return len(s.data)
}

// ensureCapacity grows the backing storage so that additional more bytes plus
// the terminator fit.
func (s *String) ensureCapacity(additional int) {
	required := s.length + additional + 1
	if required <= len(s.data) {
		return
	}
	newBuf := make([]byte, grownCapacity(len(s.data), required))
	copy(newBuf, s.data[:s.length])
	s.data = newBuf
}

// Append appends other's bytes in place, reallocating as needed. Any
// previously taken reference to the backing storage is invalidated.
func (s *String) Append(other *String) {
	s.ensureCapacity(other.length)
	copy(s.data[s.length:], other.data[:other.length])
	s.length += other.length
}

// Slice returns a deep copy of the byte range [start, end). Out-of-range
// bounds are clamped into [0, Len] and inverted ranges collapse to empty;
// callers must not rely on clamping to signal misuse.
func (s *String) Slice(start, end int) String {
	start, end = clampRange(start, end, s.length)
	result := StringWithCapacity(end - start + 1)
	copy(result.data, s.data[start:end])
	result.length = end - start
	return result
}

// ByteAt returns the byte at index, or ErrIndexOutOfRange.
func (s *String) ByteAt(index int) (byte, error) {
	if index < 0 || index >= s.length {
		return 0, ErrIndexOutOfRange
	}
	return s.data[index], nil
}

// SetByte replaces the byte at index, or returns ErrIndexOutOfRange.
func (s *String) SetByte(index int, b byte) error {
	if index < 0 || index >= s.length {
		return ErrIndexOutOfRange
	}
	s.data[index] = b
	return nil
}

// Compare orders byte-lexicographically; on a common prefix the shorter
// string is less. Returns -1, 0 or 1.
func (s *String) Compare(other *String) int {
	min := s.length
	if other.length < min {
		min = other.length
	}
	for i := 0; i < min; i++ {
		if s.data[i] != other.data[i] {
			if s.data[i] < other.data[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case s.length < other.length:
		return -1
	case s.length > other.length:
		return 1
	}
	return 0
}

// Clone returns an independent deep copy.
func (s *String) Clone() String {
	result := StringWithCapacity(s.length + 1)
	copy(result.data, s.data[:s.length])
	result.length = s.length
	return result
}

// Free releases the backing storage. The String is reusable as empty.
func (s *String) Free() {
	s.data = nil
	s.length = 0
}

// String returns the contents as a Go string.
func (s *String) String() string {
	return string(s.data[:s.length])
}
