// Package registry maps (template, element type) pairs to concrete
// instantiations: a unique type name, a function-symbol prefix, and the
// runtime dependencies the instantiation needs. The mapping is a pure
// function and memoized per compilation, so repeated requests return the
// identical *Instantiation and emission can deduplicate by pointer.
package registry

import (
	"fmt"
	"strings"
	"unicode"

	"iona/internal/types"
)

// Instantiation is the concrete form of one (template, element type) pair.
// Immutable once returned.
type Instantiation struct {
	Template TemplateID
	Elem     types.TypeID

	// TypeName is the generated concrete type name, e.g. IntegerArray.
	TypeName string
	// Prefix is the function-symbol prefix, e.g. integer_array. Every
	// generated operation (new, with_capacity, free, reserve, push, pop,
	// slice, get, set) hangs off it so instantiations never collide.
	Prefix string

	// ElemCType is the element's type in the target code.
	ElemCType string
	// ElemDrop is the destructor symbol the generated free calls per
	// element. Empty for trivially copyable elements.
	ElemDrop string

	// Headers lists runtime support headers the instantiation needs.
	Headers []Header
	// Requires lists other instantiations this one depends on (the element
	// chain of nested containers), innermost first.
	Requires []*Instantiation
}

type instKey struct {
	Template TemplateID
	Elem     types.TypeID
}

// Registry memoizes instantiations for one compilation. Not safe for
// concurrent use; parallel compilations must each own a Registry.
type Registry struct {
	interner *types.Interner
	entries  map[instKey]*Instantiation
	order    []*Instantiation
	drops    map[types.TypeID]string
}

// New creates an empty registry bound to the interner.
func New(in *types.Interner) *Registry {
	return &Registry{
		interner: in,
		entries:  make(map[instKey]*Instantiation),
		drops:    make(map[types.TypeID]string),
	}
}

// RegisterDestructor records a destructor symbol for a non-trivial element
// type. The generated free for containers of that element calls it per slot;
// without a hook such elements leak.
func (r *Registry) RegisterDestructor(elem types.TypeID, symbol string) {
	r.drops[elem] = symbol
}

// Instantiate resolves the pair to its concrete instantiation, creating and
// memoizing it on first use. Instantiating a container of a container
// resolves the inner instantiation first.
func (r *Registry) Instantiate(template TemplateID, elem types.TypeID) (*Instantiation, error) {
	if template != TemplateArray {
		return nil, fmt.Errorf("registry: unknown template %q", template)
	}
	key := instKey{Template: template, Elem: elem}
	if inst, ok := r.entries[key]; ok {
		return inst, nil
	}

	props, err := r.elemProps(elem)
	if err != nil {
		return nil, fmt.Errorf("registry: instantiate %s<%s>: %w", template, r.interner.DisplayName(elem), err)
	}

	inst := &Instantiation{
		Template:  template,
		Elem:      elem,
		TypeName:  props.camel + "Array",
		Prefix:    toSnake(props.camel) + "_array",
		ElemCType: props.cType,
		ElemDrop:  props.drop,
		Headers:   props.headers,
		Requires:  props.requires,
	}
	r.entries[key] = inst
	r.order = append(r.order, inst)
	return inst, nil
}

// Lookup returns the memoized instantiation without creating one. Emission
// uses this path; a miss there is a RegistryLookupFailure.
func (r *Registry) Lookup(template TemplateID, elem types.TypeID) (*Instantiation, bool) {
	inst, ok := r.entries[instKey{Template: template, Elem: elem}]
	return inst, ok
}

// Instantiations returns every instantiation in first-use order.
func (r *Registry) Instantiations() []*Instantiation {
	return r.order
}

type elemProps struct {
	camel    string
	cType    string
	drop     string
	headers  []Header
	requires []*Instantiation
}

// elemProps derives naming and dependencies for an element type. Purely
// structural: the registry knows nothing about element semantics beyond the
// name, the headers it pulls in, and a registered destructor hook.
func (r *Registry) elemProps(elem types.TypeID) (elemProps, error) {
	tt, ok := r.interner.Lookup(elem)
	if !ok {
		return elemProps{}, fmt.Errorf("invalid element type id %d", elem)
	}
	var props elemProps
	switch tt.Kind {
	case types.KindBool:
		props = elemProps{camel: "Bool", cType: "bool"}
	case types.KindInteger:
		props = elemProps{camel: "Integer", cType: "Integer", headers: []Header{HeaderNumbers}}
	case types.KindFloat:
		props = elemProps{camel: "Float", cType: "Float", headers: []Header{HeaderNumbers}}
	case types.KindString:
		props = elemProps{camel: "String", cType: "String", drop: "string_free", headers: []Header{HeaderStrings}}
	case types.KindSlot:
		props = elemProps{camel: "Slot", cType: "void*"}
	case types.KindArray:
		inner, err := r.Instantiate(TemplateArray, tt.Elem)
		if err != nil {
			return elemProps{}, err
		}
		props = elemProps{
			camel:    inner.TypeName,
			cType:    inner.TypeName,
			drop:     inner.Prefix + "_free",
			headers:  inner.Headers,
			requires: append(append([]*Instantiation{}, inner.Requires...), inner),
		}
	case types.KindNamed:
		info, ok := r.interner.NominalInfo(elem)
		if !ok {
			return elemProps{}, fmt.Errorf("unresolved named type id %d", elem)
		}
		props = elemProps{camel: info.Name, cType: info.Name}
	default:
		return elemProps{}, fmt.Errorf("element kind %s is not instantiable", tt.Kind)
	}
	if drop, ok := r.drops[elem]; ok {
		props.drop = drop
	}
	return props, nil
}

// toSnake converts CamelCase into snake_case: IntegerArray -> integer_array.
func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
