package lower

import (
	"errors"
	"fmt"

	"iona/internal/ir"
	"iona/internal/registry"
	"iona/internal/source"
	"iona/internal/types"
)

// ErrDuplicateField reports two struct fields with the same name.
var ErrDuplicateField = errors.New("lower: duplicate field name")

// Field is one member of a lowered product type.
type Field struct {
	Name string
	// CType is the field's representation in the target code.
	CType string
}

// LoweredStruct is the generated aggregate for one product type. Field order
// matches declaration order; the target layout depends on it.
type LoweredStruct struct {
	Name   string
	Fields []Field

	// Headers and Requires record the runtime dependencies the field
	// representations pull in.
	Headers  []registry.Header
	Requires []*registry.Instantiation

	Span source.Span
}

// Struct lowers one product-type declaration. Fields use the same
// representation map as sum-type payloads, so a struct field and a variant
// payload of the same type always agree. Container fields must already be
// instantiated in the registry; a miss fails with ErrUnregistered.
func Struct(in *types.Interner, reg *registry.Registry, st *ir.Struct) (*LoweredStruct, error) {
	out := &LoweredStruct{
		Name:   st.Name,
		Fields: make([]Field, 0, len(st.Fields)),
		Span:   st.Span,
	}
	seen := make(map[string]bool, len(st.Fields))
	var acc depAcc
	for i := range st.Fields {
		f := &st.Fields[i]
		if seen[f.Name] {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateField, st.Name, f.Name)
		}
		seen[f.Name] = true
		cType, err := fieldCType(in, reg, &acc, f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", st.Name, f.Name, err)
		}
		out.Fields = append(out.Fields, Field{Name: f.Name, CType: cType})
	}
	out.Headers = acc.headers
	out.Requires = acc.requires
	return out, nil
}
