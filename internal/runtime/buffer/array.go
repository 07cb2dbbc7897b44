package buffer

// defaultArrayCapacity matches the generated PREFIX_new.
const defaultArrayCapacity = 8

// Array is a growable array of T with explicit length/capacity bookkeeping.
// The direct-copy operations assume T has value semantics; element types that
// own resources must be released through the drop hook passed to Free.
type Array[T any] struct {
	data   []T
	length int
}

// NewArray builds an empty array with the default capacity.
func NewArray[T any]() Array[T] {
	return Array[T]{data: make([]T, defaultArrayCapacity)}
}

// ArrayWithCapacity builds an empty array with room for capacity elements.
func ArrayWithCapacity[T any](capacity int) Array[T] {
	if capacity < 0 {
		capacity = 0
	}
	return Array[T]{data: make([]T, capacity)}
}

// Len returns the number of occupied slots.
func (a *Array[T]) Len() int {
	return a.length
}

// Cap returns the allocated capacity.
func (a *Array[T]) Cap() int {
	return len(a.data)
}

// Reserve grows the backing storage so that additional more elements fit.
func (a *Array[T]) Reserve(additional int) {
	required := a.length + additional
	if required <= len(a.data) {
		return
	}
	newBuf := make([]T, grownCapacity(len(a.data), required))
	copy(newBuf, a.data[:a.length])
	a.data = newBuf
}

// Push appends an element in place, reallocating as needed. Any previously
// taken reference to the backing storage is invalidated.
func (a *Array[T]) Push(elem T) {
	a.Reserve(1)
	a.data[a.length] = elem
	a.length++
}

// Pop removes and returns the last element, or ErrEmpty.
func (a *Array[T]) Pop() (T, error) {
	var zero T
	if a.length == 0 {
		return zero, ErrEmpty
	}
	a.length--
	elem := a.data[a.length]
	a.data[a.length] = zero
	return elem, nil
}

// Slice returns a deep copy of the element range [start, end). Out-of-range
// bounds are clamped into [0, Len] and inverted ranges collapse to empty.
func (a *Array[T]) Slice(start, end int) Array[T] {
	start, end = clampRange(start, end, a.length)
	result := ArrayWithCapacity[T](end - start)
	copy(result.data, a.data[start:end])
	result.length = end - start
	return result
}

// Get returns the element at index, or ErrIndexOutOfRange.
func (a *Array[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= a.length {
		return zero, ErrIndexOutOfRange
	}
	return a.data[index], nil
}

// Set replaces the element at index, or returns ErrIndexOutOfRange.
func (a *Array[T]) Set(index int, elem T) error {
	if index < 0 || index >= a.length {
		return ErrIndexOutOfRange
	}
	a.data[index] = elem
	return nil
}

// Compare orders element-lexicographically with cmp deciding per element;
// on a common prefix the shorter array is less. cmp must return a negative,
// zero or positive value; Compare itself returns -1, 0 or 1.
func (a *Array[T]) Compare(other *Array[T], cmp func(T, T) int) int {
	min := a.length
	if other.length < min {
		min = other.length
	}
	for i := 0; i < min; i++ {
		if c := cmp(a.data[i], other.data[i]); c != 0 {
			if c < 0 {
				return -1
			}
			return 1
		}
	}
	switch {
	case a.length < other.length:
		return -1
	case a.length > other.length:
		return 1
	}
	return 0
}

// Clone returns an independent copy. A non-nil copyFn deep-copies each
// element; nil copies elements bitwise, which is only sound for trivially
// copyable T.
func (a *Array[T]) Clone(copyFn func(T) T) Array[T] {
	result := ArrayWithCapacity[T](a.length)
	if copyFn == nil {
		copy(result.data, a.data[:a.length])
	} else {
		for i := 0; i < a.length; i++ {
			result.data[i] = copyFn(a.data[i])
		}
	}
	result.length = a.length
	return result
}

// Free releases the backing storage. A non-nil drop hook runs on every
// occupied slot first; element types that own resources leak without one.
func (a *Array[T]) Free(drop func(*T)) {
	if drop != nil {
		for i := 0; i < a.length; i++ {
			drop(&a.data[i])
		}
	}
	a.data = nil
	a.length = 0
}
