package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all type shapes the backend lowers.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindBool is the target-level bool.
	KindBool
	// KindInteger is the runtime's saturating 64-bit signed integer wrapper.
	KindInteger
	// KindFloat is the runtime's saturating 64-bit float wrapper.
	KindFloat
	// KindString is the runtime's growable byte-string wrapper.
	KindString
	// KindSlot is an opaque payload slot (lowered as void*), used where the
	// front end erased a generic parameter.
	KindSlot
	// KindArray is a growable array of Elem, concretized through the
	// template registry before anything references it.
	KindArray
	// KindNamed is a user-declared nominal type referenced by name.
	KindNamed
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSlot:
		return "slot"
	case KindArray:
		return "array"
	case KindNamed:
		return "named"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Elem    TypeID // for arrays
	Payload uint32 // nominal slot for named types
}

// MakeArray describes a growable array of the element type.
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}
