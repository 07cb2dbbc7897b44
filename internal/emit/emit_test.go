package emit

import (
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"iona/internal/diag"
	"iona/internal/ir"
	"iona/internal/lower"
	"iona/internal/registry"
	"iona/internal/source"
	"iona/internal/types"
)

func coreModule(in *types.Interner, files *source.FileSet) *ir.Module {
	slot := in.Builtins().Slot
	return &ir.Module{
		File: files.Add("./stdlib/core.iona"),
		Decls: []ir.Decl{
			{Kind: ir.DeclSumType, Sum: &ir.SumType{
				Name: "Maybe",
				Variants: []ir.Variant{
					{Name: "Some", Payload: slot},
					{Name: "None"},
				},
			}},
			{Kind: ir.DeclSumType, Sum: &ir.SumType{
				Name: "Result",
				Variants: []ir.Variant{
					{Name: "Okay", Payload: slot},
					{Name: "Error", Payload: slot},
				},
			}},
		},
	}
}

func TestEmitCoreUnitGolden(t *testing.T) {
	in := types.NewInterner()
	reg := registry.New(in)
	files := source.NewFileSet()
	mod := coreModule(in, files)

	unit, err := New(in, reg, files, nil).Emit(mod)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if unit.Provenance != "./stdlib/core.iona" {
		t.Fatalf("Provenance = %q", unit.Provenance)
	}
	if len(unit.Headers) != 0 {
		t.Fatalf("slot-only payloads must not pull runtime headers, got %v", unit.Headers)
	}
	g := goldie.New(t)
	g.Assert(t, "core_unit", []byte(unit.Text))
}

func TestEmitIsDeterministic(t *testing.T) {
	run := func() string {
		in := types.NewInterner()
		reg := registry.New(in)
		files := source.NewFileSet()
		if _, err := reg.Instantiate(registry.TemplateArray, in.Builtins().String); err != nil {
			t.Fatalf("Instantiate: %v", err)
		}
		mod := coreModule(in, files)
		mod.Decls = append(mod.Decls, ir.Decl{
			Kind:     ir.DeclTemplateUse,
			Template: &ir.TemplateUse{Elem: in.Builtins().String},
		})
		unit, err := New(in, reg, files, nil).Emit(mod)
		if err != nil {
			t.Fatalf("Emit: %v", err)
		}
		return unit.Text
	}
	first := run()
	second := run()
	if first != second {
		t.Fatalf("identical input IR produced different output text")
	}
}

func TestEmitTemplateUse(t *testing.T) {
	in := types.NewInterner()
	reg := registry.New(in)
	files := source.NewFileSet()
	if _, err := reg.Instantiate(registry.TemplateArray, in.Builtins().Integer); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	mod := &ir.Module{
		File: files.Add("main.iona"),
		Decls: []ir.Decl{
			{Kind: ir.DeclTemplateUse, Template: &ir.TemplateUse{Elem: in.Builtins().Integer}},
		},
	}
	unit, err := New(in, reg, files, nil).Emit(mod)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	for _, want := range []string{
		"#include \"numbers.h\"",
		"} IntegerArray;",
		"IntegerArray integer_array_new(void)",
		"IntegerArray integer_array_with_capacity(size_t capacity)",
		"void integer_array_free(IntegerArray* arr)",
		"void integer_array_reserve(IntegerArray* arr, size_t additional)",
		"void integer_array_push(IntegerArray* arr, Integer elem)",
		"bool integer_array_pop(IntegerArray* arr, Integer* out)",
		"IntegerArray integer_array_slice(const IntegerArray* arr, size_t start, size_t end)",
		"bool integer_array_get(const IntegerArray* arr, size_t index, Integer* out)",
		"bool integer_array_set(IntegerArray* arr, size_t index, Integer elem)",
	} {
		if !strings.Contains(unit.Text, want) {
			t.Fatalf("unit is missing %q:\n%s", want, unit.Text)
		}
	}
	if len(unit.Headers) != 1 || unit.Headers[0] != "numbers.h" {
		t.Fatalf("Headers = %v, want [numbers.h]", unit.Headers)
	}
	support, err := unit.SupportFiles()
	if err != nil {
		t.Fatalf("SupportFiles: %v", err)
	}
	if !strings.Contains(support["numbers.h"], "saturating_add") {
		t.Fatalf("embedded numbers.h looks wrong")
	}
}

func TestEmitNestedInstantiationOrder(t *testing.T) {
	in := types.NewInterner()
	reg := registry.New(in)
	files := source.NewFileSet()
	innerElem := in.Builtins().Integer
	outerElem := in.Intern(types.MakeArray(innerElem))
	if _, err := reg.Instantiate(registry.TemplateArray, outerElem); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	mod := &ir.Module{
		File: files.Add("nested.iona"),
		Decls: []ir.Decl{
			{Kind: ir.DeclTemplateUse, Template: &ir.TemplateUse{Elem: outerElem}},
		},
	}
	unit, err := New(in, reg, files, nil).Emit(mod)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	inner := strings.Index(unit.Text, "} IntegerArray;")
	outer := strings.Index(unit.Text, "} IntegerArrayArray;")
	if inner < 0 || outer < 0 {
		t.Fatalf("nested instantiations missing from unit:\n%s", unit.Text)
	}
	if inner > outer {
		t.Fatalf("inner instantiation must be defined before the outer one")
	}
	// The generated free of the outer array releases inner arrays per slot.
	if !strings.Contains(unit.Text, "integer_array_free(&arr->data[i]);") {
		t.Fatalf("outer free must call the element destructor hook")
	}
}

func TestEmitDeduplicatesSharedDefinitions(t *testing.T) {
	in := types.NewInterner()
	reg := registry.New(in)
	files := source.NewFileSet()
	if _, err := reg.Instantiate(registry.TemplateArray, in.Builtins().Integer); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	use := ir.Decl{Kind: ir.DeclTemplateUse, Template: &ir.TemplateUse{Elem: in.Builtins().Integer}}
	arrType := in.Intern(types.MakeArray(in.Builtins().Integer))
	mod := &ir.Module{
		File: files.Add("dedup.iona"),
		Decls: []ir.Decl{
			use,
			use,
			{Kind: ir.DeclSumType, Sum: &ir.SumType{
				Name:     "Bag",
				Variants: []ir.Variant{{Name: "Items", Payload: arrType}},
			}},
		},
	}
	unit, err := New(in, reg, files, nil).Emit(mod)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if got := strings.Count(unit.Text, "} IntegerArray;"); got != 1 {
		t.Fatalf("shared instantiation emitted %d times, want exactly once", got)
	}
	// The sum type referencing the instantiation comes after its definition.
	defPos := strings.Index(unit.Text, "} IntegerArray;")
	usePos := strings.Index(unit.Text, "IntegerArray Items;")
	if usePos < 0 || usePos < defPos {
		t.Fatalf("definition must precede use:\n%s", unit.Text)
	}
}

func TestEmitStruct(t *testing.T) {
	in := types.NewInterner()
	reg := registry.New(in)
	files := source.NewFileSet()
	mod := &ir.Module{
		File: files.Add("person.iona"),
		Decls: []ir.Decl{
			{Kind: ir.DeclStruct, Struct: &ir.Struct{
				Name: "Person",
				Fields: []ir.StructField{
					{Name: "name", Type: in.Builtins().String},
					{Name: "age", Type: in.Builtins().Integer},
					{Name: "alive", Type: in.Builtins().Bool},
				},
			}},
		},
	}
	unit, err := New(in, reg, files, nil).Emit(mod)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := "struct Person {\n\tString name;\n\tInteger age;\n\tbool alive;\n};"
	if !strings.Contains(unit.Text, want) {
		t.Fatalf("unit is missing the aggregate:\n%s", unit.Text)
	}
	// Field representations pull in the runtime headers, numbers first.
	if len(unit.Headers) != 2 || unit.Headers[0] != "numbers.h" || unit.Headers[1] != "strings.h" {
		t.Fatalf("Headers = %v, want [numbers.h strings.h]", unit.Headers)
	}
}

func TestEmitStructContainerFieldOrder(t *testing.T) {
	in := types.NewInterner()
	reg := registry.New(in)
	files := source.NewFileSet()
	arrType := in.Intern(types.MakeArray(in.Builtins().Integer))
	if _, err := reg.Instantiate(registry.TemplateArray, in.Builtins().Integer); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	mod := &ir.Module{
		File: files.Add("inventory.iona"),
		Decls: []ir.Decl{
			{Kind: ir.DeclStruct, Struct: &ir.Struct{
				Name:   "Inventory",
				Fields: []ir.StructField{{Name: "items", Type: arrType}},
			}},
		},
	}
	unit, err := New(in, reg, files, nil).Emit(mod)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	defPos := strings.Index(unit.Text, "} IntegerArray;")
	usePos := strings.Index(unit.Text, "IntegerArray items;")
	if defPos < 0 || usePos < 0 || usePos < defPos {
		t.Fatalf("instantiation must be defined before the struct that uses it:\n%s", unit.Text)
	}
}

func TestEmitStructDuplicateFieldDiagnostic(t *testing.T) {
	in := types.NewInterner()
	reg := registry.New(in)
	files := source.NewFileSet()
	bag := diag.NewBag(16)
	mod := &ir.Module{
		File: files.Add("twice.iona"),
		Decls: []ir.Decl{
			{Kind: ir.DeclStruct, Struct: &ir.Struct{
				Name: "Twice",
				Fields: []ir.StructField{
					{Name: "x", Type: in.Builtins().Integer},
					{Name: "x", Type: in.Builtins().Float},
				},
			}},
		},
	}
	_, err := New(in, reg, files, diag.BagReporter{Bag: bag}).Emit(mod)
	if !errors.Is(err, lower.ErrDuplicateField) {
		t.Fatalf("err = %v, want ErrDuplicateField", err)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.CodeDuplicateStructField {
		t.Fatalf("duplicate field must report its own diagnostic code, got %+v", bag.Items())
	}
}

func TestEmitFailsOnUnregisteredInstantiation(t *testing.T) {
	in := types.NewInterner()
	reg := registry.New(in)
	files := source.NewFileSet()
	bag := diag.NewBag(16)
	mod := &ir.Module{
		File: files.Add("broken.iona"),
		Decls: []ir.Decl{
			{Kind: ir.DeclTemplateUse, Template: &ir.TemplateUse{Elem: in.Builtins().Float}},
		},
	}
	_, err := New(in, reg, files, diag.BagReporter{Bag: bag}).Emit(mod)
	if !errors.Is(err, lower.ErrUnregistered) {
		t.Fatalf("err = %v, want ErrUnregistered", err)
	}
	if !bag.HasErrors() {
		t.Fatalf("missing instantiation must produce a diagnostic")
	}
	d := bag.Items()[0]
	if d.Code != diag.CodeUnregisteredInstantiation {
		t.Fatalf("diagnostic code = %v", d.Code)
	}
	if !strings.Contains(d.Message, "Array<Float>") || !strings.Contains(d.Message, "broken.iona") {
		t.Fatalf("diagnostic must name the missing pair and its provenance: %q", d.Message)
	}
}

func TestEmitSharesLoweringAcrossUnits(t *testing.T) {
	in := types.NewInterner()
	reg := registry.New(in)
	files := source.NewFileSet()
	st := &ir.SumType{
		Name:     "Status",
		Variants: []ir.Variant{{Name: "Alive"}, {Name: "Dead"}},
	}
	e := New(in, reg, files, nil)
	first := &ir.Module{File: files.Add("a.iona"), Decls: []ir.Decl{{Kind: ir.DeclSumType, Sum: st}}}
	second := &ir.Module{File: files.Add("b.iona"), Decls: []ir.Decl{{Kind: ir.DeclSumType, Sum: st}}}
	u1, err := e.Emit(first)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	u2, err := e.Emit(second)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	// Both units define the shared type once, under their own provenance.
	for _, u := range []*CompilationUnit{u1, u2} {
		if got := strings.Count(u.Text, "} StatusStates;"); got != 1 {
			t.Fatalf("unit %q defines StatusStates %d times", u.Provenance, got)
		}
	}
	if u1.Provenance == u2.Provenance {
		t.Fatalf("units from distinct files must carry distinct provenance")
	}
}
