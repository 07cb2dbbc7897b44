// Package irfile loads declaration IR from a TOML document. It stands in for
// the excluded front end: the document carries fully resolved declarations
// (no unresolved generic parameters), the same contract the type checker
// honors when feeding the backend directly.
package irfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"iona/internal/ir"
	"iona/internal/source"
	"iona/internal/types"
)

// ErrMalformed reports a structurally incomplete document.
var ErrMalformed = errors.New("irfile: malformed declaration")

// Document is the on-disk shape of one module's declarations.
type Document struct {
	// Source is the provenance label of the originating artifact.
	Source   string        `toml:"source"`
	SumTypes []SumTypeDecl `toml:"sumtypes"`
	Structs  []StructDecl  `toml:"structs"`
	Arrays   []ArrayDecl   `toml:"arrays"`
}

// SumTypeDecl declares one tagged union. Variant order is ordinal order.
type SumTypeDecl struct {
	Name     string        `toml:"name"`
	Variants []VariantDecl `toml:"variants"`
}

// VariantDecl is one alternative; Payload is empty for state-only variants.
type VariantDecl struct {
	Name    string `toml:"name"`
	Payload string `toml:"payload"`
}

// StructDecl declares one product type. Field order is layout order.
type StructDecl struct {
	Name   string      `toml:"name"`
	Fields []FieldDecl `toml:"fields"`
}

// FieldDecl is one struct member; every field carries a type.
type FieldDecl struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// ArrayDecl records a generic-container usage with a concrete element type.
type ArrayDecl struct {
	Element string `toml:"element"`
}

// Load reads and builds a module from a TOML file.
func Load(path string, in *types.Interner, files *source.FileSet) (*ir.Module, error) {
	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("irfile: decode %s: %w", path, err)
	}
	return Build(&doc, in, files)
}

// LoadString builds a module from TOML text.
func LoadString(text string, in *types.Interner, files *source.FileSet) (*ir.Module, error) {
	var doc Document
	if _, err := toml.Decode(text, &doc); err != nil {
		return nil, fmt.Errorf("irfile: decode: %w", err)
	}
	return Build(&doc, in, files)
}

// Build converts a decoded document into declaration IR, interning every
// referenced type. Declarations keep document order: sum types first, then
// structs, then array usages, as written.
func Build(doc *Document, in *types.Interner, files *source.FileSet) (*ir.Module, error) {
	if doc.Source == "" {
		return nil, fmt.Errorf("%w: missing source", ErrMalformed)
	}
	mod := &ir.Module{File: files.Add(doc.Source)}
	for i := range doc.SumTypes {
		st := &doc.SumTypes[i]
		if st.Name == "" {
			return nil, fmt.Errorf("%w: sum type without a name", ErrMalformed)
		}
		if len(st.Variants) == 0 {
			return nil, fmt.Errorf("%w: sum type %s has no variants", ErrMalformed, st.Name)
		}
		sum := &ir.SumType{Name: st.Name}
		for j := range st.Variants {
			v := &st.Variants[j]
			if v.Name == "" {
				return nil, fmt.Errorf("%w: variant of %s without a name", ErrMalformed, st.Name)
			}
			payload := types.NoTypeID
			if v.Payload != "" {
				id, err := ParseType(v.Payload, in)
				if err != nil {
					return nil, fmt.Errorf("sum type %s, variant %s: %w", st.Name, v.Name, err)
				}
				payload = id
			}
			sum.Variants = append(sum.Variants, ir.Variant{Name: v.Name, Payload: payload})
		}
		mod.Decls = append(mod.Decls, ir.Decl{Kind: ir.DeclSumType, Sum: sum})
	}
	for i := range doc.Structs {
		st := &doc.Structs[i]
		if st.Name == "" {
			return nil, fmt.Errorf("%w: struct without a name", ErrMalformed)
		}
		if len(st.Fields) == 0 {
			return nil, fmt.Errorf("%w: struct %s has no fields", ErrMalformed, st.Name)
		}
		strct := &ir.Struct{Name: st.Name}
		for j := range st.Fields {
			f := &st.Fields[j]
			if f.Name == "" {
				return nil, fmt.Errorf("%w: field of %s without a name", ErrMalformed, st.Name)
			}
			if f.Type == "" {
				return nil, fmt.Errorf("%w: field %s.%s without a type", ErrMalformed, st.Name, f.Name)
			}
			ft, err := ParseType(f.Type, in)
			if err != nil {
				return nil, fmt.Errorf("struct %s, field %s: %w", st.Name, f.Name, err)
			}
			strct.Fields = append(strct.Fields, ir.StructField{Name: f.Name, Type: ft})
		}
		mod.Decls = append(mod.Decls, ir.Decl{Kind: ir.DeclStruct, Struct: strct})
	}
	for i := range doc.Arrays {
		elem, err := ParseType(doc.Arrays[i].Element, in)
		if err != nil {
			return nil, fmt.Errorf("array declaration %d: %w", i, err)
		}
		mod.Decls = append(mod.Decls, ir.Decl{
			Kind:     ir.DeclTemplateUse,
			Template: &ir.TemplateUse{Elem: elem},
		})
	}
	return mod, nil
}

// ParseType resolves a type reference like "Integer" or "Array<Array<String>>"
// to an interned TypeID. Unknown simple names become nominal types.
func ParseType(s string, in *types.Interner) (types.TypeID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.NoTypeID, fmt.Errorf("%w: empty type reference", ErrMalformed)
	}
	if inner, ok := strings.CutPrefix(s, "Array<"); ok {
		inner, ok = strings.CutSuffix(inner, ">")
		if !ok {
			return types.NoTypeID, fmt.Errorf("%w: unterminated %q", ErrMalformed, s)
		}
		elem, err := ParseType(inner, in)
		if err != nil {
			return types.NoTypeID, err
		}
		return in.Intern(types.MakeArray(elem)), nil
	}
	switch s {
	case "Bool":
		return in.Builtins().Bool, nil
	case "Integer":
		return in.Builtins().Integer, nil
	case "Float":
		return in.Builtins().Float, nil
	case "String":
		return in.Builtins().String, nil
	case "Slot":
		return in.Builtins().Slot, nil
	}
	if strings.ContainsAny(s, "<>") {
		return types.NoTypeID, fmt.Errorf("%w: unsupported type reference %q", ErrMalformed, s)
	}
	return in.RegisterNominal(s, source.NoSpan()), nil
}

// Exists reports whether path is a readable file, for friendlier CLI errors.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
