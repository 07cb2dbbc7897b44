// Package ir defines the declaration IR the backend consumes. The front end
// (lexer, parser, type checker) hands over fully resolved declarations; the
// backend trusts type-correctness and only checks the structural completeness
// lowering needs.
package ir

import (
	"iona/internal/source"
	"iona/internal/types"
)

// DeclKind discriminates Decl.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	// DeclSumType declares a tagged union.
	DeclSumType
	// DeclTemplateUse records a generic-container usage that needs a
	// concrete instantiation in the output.
	DeclTemplateUse
	// DeclStruct declares a product type.
	DeclStruct
)

// Variant is one alternative of a sum type. Payload is NoTypeID for
// state-only variants.
type Variant struct {
	Name    string
	Payload types.TypeID
	Span    source.Span
}

// SumType is an ordered set of variants under a unique type name.
// Declaration order is meaningful: it fixes the tag ordinals downstream code
// compares against.
type SumType struct {
	Name     string
	Variants []Variant
	Span     source.Span
}

// HasPayload reports whether any variant carries a payload.
func (s *SumType) HasPayload() bool {
	for i := range s.Variants {
		if s.Variants[i].Payload != types.NoTypeID {
			return true
		}
	}
	return false
}

// StructField is one member of a product type. Unlike variants every field
// carries a type.
type StructField struct {
	Name string
	Type types.TypeID
	Span source.Span
}

// Struct is an ordered set of fields under a unique type name.
type Struct struct {
	Name   string
	Fields []StructField
	Span   source.Span
}

// TemplateUse records that the program uses a generic container with a
// concrete element type.
type TemplateUse struct {
	Elem types.TypeID
	Span source.Span
}

// Decl is one declaration in input order.
type Decl struct {
	Kind     DeclKind
	Sum      *SumType
	Struct   *Struct
	Template *TemplateUse
}

// Module is the ordered declaration list for one source artifact.
type Module struct {
	// File identifies the originating source artifact; its path is the
	// provenance label stamped on emitted units.
	File  source.FileID
	Decls []Decl
}
