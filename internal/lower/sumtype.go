// Package lower converts type declarations into their target representation.
// Sum types become a tag enumeration, a payload union covering only the
// data-carrying variants, and a wrapper aggregate {tag, data}; product types
// become a plain aggregate. Both share one field-representation map.
package lower

import (
	"errors"
	"fmt"
	"strings"

	"iona/internal/ir"
	"iona/internal/registry"
	"iona/internal/source"
	"iona/internal/types"
)

// ErrUnregistered reports a container payload whose instantiation was never
// registered. That is an upstream defect: the front end resolves every
// generic usage through the registry before lowering runs.
var ErrUnregistered = errors.New("lower: instantiation not registered")

// ErrDuplicateTag reports two variants with the same name.
var ErrDuplicateTag = errors.New("lower: duplicate variant tag")

// UnionField is one payload-carrying variant inside the lowered union.
type UnionField struct {
	// Name is the variant name, reused as the union member name.
	Name string
	// CType is the payload's representation in the target code.
	CType string
}

// LoweredSumType is the generated triple for one sum type. Immutable once
// produced; tag order matches declaration order and is meaningful to
// downstream ordinal comparisons.
type LoweredSumType struct {
	Name string
	// Tags holds the enumeration entries, uppercased, in declaration order.
	Tags []string
	// Union lists payload-carrying variants in declaration order; nil when
	// no variant carries data, in which case the wrapper holds only the tag.
	Union []UnionField

	// Headers and Requires record the runtime dependencies the payload
	// representations pull in.
	Headers  []registry.Header
	Requires []*registry.Instantiation

	Span source.Span
}

// EnumName is the name of the generated tag enumeration.
func (l *LoweredSumType) EnumName() string {
	return l.Name + "States"
}

// UnionName is the name of the generated payload union.
func (l *LoweredSumType) UnionName() string {
	return l.Name + "Values"
}

// SumType lowers one declaration. Container payloads must already be
// instantiated in the registry; a miss fails with ErrUnregistered naming the
// pair.
func SumType(in *types.Interner, reg *registry.Registry, st *ir.SumType) (*LoweredSumType, error) {
	out := &LoweredSumType{
		Name: st.Name,
		Tags: make([]string, 0, len(st.Variants)),
		Span: st.Span,
	}
	seen := make(map[string]bool, len(st.Variants))
	var acc depAcc
	for i := range st.Variants {
		v := &st.Variants[i]
		if seen[v.Name] {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateTag, st.Name, v.Name)
		}
		seen[v.Name] = true
		out.Tags = append(out.Tags, strings.ToUpper(v.Name))
		if v.Payload == types.NoTypeID {
			continue
		}
		cType, err := fieldCType(in, reg, &acc, v.Payload)
		if err != nil {
			return nil, fmt.Errorf("variant %s.%s: %w", st.Name, v.Name, err)
		}
		out.Union = append(out.Union, UnionField{Name: v.Name, CType: cType})
	}
	out.Headers = acc.headers
	out.Requires = acc.requires
	return out, nil
}

// depAcc collects the runtime dependencies field representations pull in,
// keeping first-use order without duplicates.
type depAcc struct {
	headers  []registry.Header
	requires []*registry.Instantiation
}

func (d *depAcc) addHeader(h registry.Header) {
	for _, existing := range d.headers {
		if existing == h {
			return
		}
	}
	d.headers = append(d.headers, h)
}

func (d *depAcc) addRequire(inst *registry.Instantiation) {
	for _, existing := range d.requires {
		if existing == inst {
			return
		}
	}
	d.requires = append(d.requires, inst)
}

// fieldCType maps a payload or field type to its target representation and
// records the dependencies it drags in.
func fieldCType(in *types.Interner, reg *registry.Registry, acc *depAcc, t types.TypeID) (string, error) {
	tt, ok := in.Lookup(t)
	if !ok {
		return "", fmt.Errorf("invalid type id %d", t)
	}
	switch tt.Kind {
	case types.KindBool:
		return "bool", nil
	case types.KindInteger:
		acc.addHeader(registry.HeaderNumbers)
		return "Integer", nil
	case types.KindFloat:
		acc.addHeader(registry.HeaderNumbers)
		return "Float", nil
	case types.KindString:
		acc.addHeader(registry.HeaderStrings)
		return "String", nil
	case types.KindSlot:
		return "void*", nil
	case types.KindArray:
		inst, ok := reg.Lookup(registry.TemplateArray, tt.Elem)
		if !ok {
			return "", fmt.Errorf("%w: Array<%s>", ErrUnregistered, in.DisplayName(tt.Elem))
		}
		acc.addRequire(inst)
		return inst.TypeName, nil
	case types.KindNamed:
		info, ok := in.NominalInfo(t)
		if !ok {
			return "", fmt.Errorf("unresolved named type id %d", t)
		}
		return info.Name, nil
	}
	return "", fmt.Errorf("kind %s cannot be lowered", tt.Kind)
}
