package buffer

import (
	"errors"
	"math"
	"testing"
)

func TestArrayPushGrowthKeepsData(t *testing.T) {
	a := NewArray[int]()
	if a.Cap() != 8 {
		t.Fatalf("default capacity = %d, want 8", a.Cap())
	}
	const n = 1000
	for i := 0; i < n; i++ {
		a.Push(i)
	}
	if a.Len() != n {
		t.Fatalf("Len = %d, want %d", a.Len(), n)
	}
	for i := 0; i < n; i++ {
		got, err := a.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if got != i {
			t.Fatalf("Get(%d) = %d, insertion order lost", i, got)
		}
	}
}

func TestArrayGrowthRule(t *testing.T) {
	a := ArrayWithCapacity[byte](2)
	a.Push(1)
	a.Push(2)
	a.Push(3) // required 3, doubled 4
	if a.Cap() != 4 {
		t.Fatalf("Cap = %d, want 4", a.Cap())
	}
	a.Reserve(100) // required 103 > doubled 8
	if a.Cap() != 103 {
		t.Fatalf("Cap = %d, want 103", a.Cap())
	}
}

func TestArrayPop(t *testing.T) {
	a := NewArray[string]()
	a.Push("first")
	a.Push("second")
	got, err := a.Pop()
	if err != nil || got != "second" {
		t.Fatalf("Pop = %q, %v", got, err)
	}
	got, err = a.Pop()
	if err != nil || got != "first" {
		t.Fatalf("Pop = %q, %v", got, err)
	}
	if _, err := a.Pop(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Pop on empty err = %v, want ErrEmpty", err)
	}
}

func TestArrayIndexErrors(t *testing.T) {
	a := NewArray[int]()
	a.Push(7)
	if _, err := a.Get(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Get(1) err = %v, want ErrIndexOutOfRange", err)
	}
	if err := a.Set(-1, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Set(-1) err = %v, want ErrIndexOutOfRange", err)
	}
	if err := a.Set(0, 9); err != nil {
		t.Fatalf("Set(0): %v", err)
	}
	if got, _ := a.Get(0); got != 9 {
		t.Fatalf("Get(0) = %d after Set", got)
	}
}

func TestArraySliceClampsAndCopies(t *testing.T) {
	a := NewArray[int]()
	for i := 0; i < 5; i++ {
		a.Push(i * 10)
	}
	s := a.Slice(1, 99)
	if s.Len() != 4 {
		t.Fatalf("Slice len = %d, want 4", s.Len())
	}
	if got, _ := s.Get(0); got != 10 {
		t.Fatalf("Slice[0] = %d, want 10", got)
	}
	if err := s.Set(0, -1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := a.Get(1); got != 10 {
		t.Fatalf("mutating a slice leaked into the source")
	}
	empty := a.Slice(4, 2)
	if empty.Len() != 0 {
		t.Fatalf("inverted range must collapse to empty, got len %d", empty.Len())
	}
}

func TestArrayCompare(t *testing.T) {
	cmp := func(a, b int) int { return a - b }
	fromSlice := func(elems []int) Array[int] {
		a := NewArray[int]()
		for _, e := range elems {
			a.Push(e)
		}
		return a
	}
	tests := []struct {
		a, b []int
		want int
	}{
		{[]int{1, 2, 3}, []int{1, 2, 3}, 0},
		{[]int{1, 2, 3}, []int{1, 2, 4}, -1},
		{[]int{1, 2, 4}, []int{1, 2, 3}, 1},
		{[]int{1, 2}, []int{1, 2, 3}, -1},
		{[]int{1, 2, 3}, []int{1, 2}, 1},
		{nil, nil, 0},
		{nil, []int{1}, -1},
	}
	for _, tt := range tests {
		a := fromSlice(tt.a)
		b := fromSlice(tt.b)
		if got := a.Compare(&b, cmp); got != tt.want {
			t.Fatalf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
	// The result is normalized regardless of cmp's magnitude.
	big := fromSlice([]int{100})
	small := fromSlice([]int{1})
	if got := big.Compare(&small, cmp); got != 1 {
		t.Fatalf("Compare must normalize cmp results to -1/0/1, got %d", got)
	}
}

func TestGrownCapacityOverflowGuard(t *testing.T) {
	// A doubling that would overflow falls back to the exact requirement.
	huge := math.MaxInt/2 + 1
	if got := grownCapacity(huge, huge+1); got != huge+1 {
		t.Fatalf("grownCapacity(%d, %d) = %d, want the exact requirement", huge, huge+1, got)
	}
	// A requirement that overflowed the caller's length arithmetic aborts.
	defer func() {
		if recover() == nil {
			t.Fatalf("negative required capacity must panic")
		}
	}()
	grownCapacity(8, -1)
}

func TestArrayFreeRunsDropHook(t *testing.T) {
	a := NewArray[String]()
	a.Push(StringFrom("one"))
	a.Push(StringFrom("two"))
	dropped := 0
	a.Free(func(s *String) {
		s.Free()
		dropped++
	})
	if dropped != 2 {
		t.Fatalf("drop hook ran %d times, want 2", dropped)
	}
	if a.Len() != 0 || a.Cap() != 0 {
		t.Fatalf("Free left len=%d cap=%d", a.Len(), a.Cap())
	}
}

func TestArrayCloneWithHook(t *testing.T) {
	a := NewArray[String]()
	a.Push(StringFrom("deep"))
	cp := a.Clone(func(s String) String { return s.Clone() })
	elem, _ := cp.Get(0)
	if err := elem.SetByte(0, 'D'); err != nil {
		t.Fatalf("SetByte: %v", err)
	}
	// The copy owns its own backing storage.
	orig, _ := a.Get(0)
	if b, _ := orig.ByteAt(0); b != 'd' {
		t.Fatalf("clone with hook still aliases element storage")
	}
}
