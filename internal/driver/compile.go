// Package driver orchestrates compilations. Each compilation owns an
// isolated interner, registry and emitter; nothing mutable is shared between
// concurrently running compilations, which keeps deduplication deterministic
// and free of cross-talk.
package driver

import (
	"fmt"

	"iona/internal/diag"
	"iona/internal/emit"
	"iona/internal/ir"
	"iona/internal/registry"
	"iona/internal/source"
	"iona/internal/types"
)

// maxDiagnostics bounds the Bag of one compilation.
const maxDiagnostics = 100

// Result is the outcome of compiling one module.
type Result struct {
	Unit *emit.CompilationUnit
	Bag  *diag.Bag
}

// Compilation bundles the per-compilation state. Create one per module; the
// registry's memoization is scoped to it.
type Compilation struct {
	Interner *types.Interner
	Files    *source.FileSet
	Registry *registry.Registry
	Bag      *diag.Bag
}

// NewCompilation creates isolated per-compilation state.
func NewCompilation() *Compilation {
	in := types.NewInterner()
	return &Compilation{
		Interner: in,
		Files:    source.NewFileSet(),
		Registry: registry.New(in),
		Bag:      diag.NewBag(maxDiagnostics),
	}
}

// Compile resolves every generic usage through the registry, then lowers and
// emits the module. Failures are fatal for the compilation: the returned
// Result carries diagnostics but no unit.
func (c *Compilation) Compile(mod *ir.Module) (*Result, error) {
	res := &Result{Bag: c.Bag}
	if err := c.populateRegistry(mod); err != nil {
		return res, err
	}
	e := emit.New(c.Interner, c.Registry, c.Files, diag.BagReporter{Bag: c.Bag})
	unit, err := e.Emit(mod)
	if err != nil {
		return res, err
	}
	res.Unit = unit
	return res, nil
}

// populateRegistry performs the resolution step the type checker owes the
// backend: every generic-container usage, including container payloads of
// sum-type variants and container-typed struct fields, is instantiated
// before lowering runs.
func (c *Compilation) populateRegistry(mod *ir.Module) error {
	instantiate := func(elem types.TypeID, span source.Span) error {
		if _, err := c.Registry.Instantiate(registry.TemplateArray, elem); err != nil {
			diag.ReportError(diag.BagReporter{Bag: c.Bag}, diag.CodeUnsupportedPayloadType, span, err.Error())
			return fmt.Errorf("driver: %w", err)
		}
		return nil
	}
	for i := range mod.Decls {
		decl := &mod.Decls[i]
		switch decl.Kind {
		case ir.DeclTemplateUse:
			if err := instantiate(decl.Template.Elem, decl.Template.Span); err != nil {
				return err
			}
		case ir.DeclSumType:
			for j := range decl.Sum.Variants {
				v := &decl.Sum.Variants[j]
				if v.Payload == types.NoTypeID {
					continue
				}
				tt, ok := c.Interner.Lookup(v.Payload)
				if !ok || tt.Kind != types.KindArray {
					continue
				}
				if err := instantiate(tt.Elem, v.Span); err != nil {
					return err
				}
			}
		case ir.DeclStruct:
			for j := range decl.Struct.Fields {
				f := &decl.Struct.Fields[j]
				tt, ok := c.Interner.Lookup(f.Type)
				if !ok || tt.Kind != types.KindArray {
					continue
				}
				if err := instantiate(tt.Elem, f.Span); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
