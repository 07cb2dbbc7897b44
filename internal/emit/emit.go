// Package emit assembles registry instantiations and lowered declarations
// into compilation units. Output is byte-for-byte deterministic for identical
// input IR: declarations are ordered by a dependency walk with ties broken
// by first-use order, and every shared definition is emitted exactly once
// per unit.
package emit

import (
	"errors"
	"fmt"
	"strings"

	"iona/internal/diag"
	"iona/internal/ir"
	"iona/internal/lower"
	"iona/internal/registry"
	"iona/internal/source"
	"iona/internal/types"
)

// Emitter renders compilation units for one compilation. Lowering results
// are memoized per declaration, so units emitted by the same Emitter share
// one lowered form per declaration. Not safe for concurrent use.
type Emitter struct {
	interner       *types.Interner
	registry       *registry.Registry
	files          *source.FileSet
	reporter       diag.Reporter
	lowered        map[*ir.SumType]*lower.LoweredSumType
	loweredStructs map[*ir.Struct]*lower.LoweredStruct
}

// New creates an Emitter over a pre-populated registry.
func New(in *types.Interner, reg *registry.Registry, files *source.FileSet, reporter diag.Reporter) *Emitter {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Emitter{
		interner:       in,
		registry:       reg,
		files:          files,
		reporter:       reporter,
		lowered:        make(map[*ir.SumType]*lower.LoweredSumType),
		loweredStructs: make(map[*ir.Struct]*lower.LoweredStruct),
	}
}

// renderItem is one definition scheduled for output, already deduplicated.
type renderItem struct {
	inst  *registry.Instantiation
	sum   *lower.LoweredSumType
	strct *lower.LoweredStruct
}

// Emit produces the compilation unit for one module. It fails fatally when a
// referenced instantiation was never registered; that is an upstream defect
// and no partial output is returned.
func (e *Emitter) Emit(mod *ir.Module) (*CompilationUnit, error) {
	provenance := e.files.Path(mod.File)

	var items []renderItem
	seenInst := make(map[*registry.Instantiation]bool)
	seenSum := make(map[*lower.LoweredSumType]bool)
	seenStruct := make(map[*lower.LoweredStruct]bool)

	scheduleInst := func(inst *registry.Instantiation) {
		for _, dep := range inst.Requires {
			if !seenInst[dep] {
				seenInst[dep] = true
				items = append(items, renderItem{inst: dep})
			}
		}
		if !seenInst[inst] {
			seenInst[inst] = true
			items = append(items, renderItem{inst: inst})
		}
	}

	for i := range mod.Decls {
		decl := &mod.Decls[i]
		switch decl.Kind {
		case ir.DeclTemplateUse:
			inst, ok := e.registry.Lookup(registry.TemplateArray, decl.Template.Elem)
			if !ok {
				name := fmt.Sprintf("Array<%s>", e.interner.DisplayName(decl.Template.Elem))
				msg := fmt.Sprintf("no registered instantiation for %s (source: %s)", name, provenance)
				diag.ReportError(e.reporter, diag.CodeUnregisteredInstantiation, decl.Template.Span, msg)
				return nil, fmt.Errorf("emit: %w: %s", lower.ErrUnregistered, name)
			}
			scheduleInst(inst)
		case ir.DeclSumType:
			lowered, err := e.lowerMemo(decl.Sum)
			if err != nil {
				code := diag.CodeUnloweredDeclaration
				switch {
				case errors.Is(err, lower.ErrDuplicateTag):
					code = diag.CodeDuplicateVariantTag
				case errors.Is(err, lower.ErrUnregistered):
					code = diag.CodeUnregisteredInstantiation
				}
				diag.ReportError(e.reporter, code, decl.Sum.Span,
					fmt.Sprintf("cannot lower %s (source: %s): %v", decl.Sum.Name, provenance, err))
				return nil, fmt.Errorf("emit: %w", err)
			}
			for _, dep := range lowered.Requires {
				scheduleInst(dep)
			}
			if !seenSum[lowered] {
				seenSum[lowered] = true
				items = append(items, renderItem{sum: lowered})
			}
		case ir.DeclStruct:
			lowered, err := e.lowerStructMemo(decl.Struct)
			if err != nil {
				code := diag.CodeUnloweredDeclaration
				switch {
				case errors.Is(err, lower.ErrDuplicateField):
					code = diag.CodeDuplicateStructField
				case errors.Is(err, lower.ErrUnregistered):
					code = diag.CodeUnregisteredInstantiation
				}
				diag.ReportError(e.reporter, code, decl.Struct.Span,
					fmt.Sprintf("cannot lower %s (source: %s): %v", decl.Struct.Name, provenance, err))
				return nil, fmt.Errorf("emit: %w", err)
			}
			for _, dep := range lowered.Requires {
				scheduleInst(dep)
			}
			if !seenStruct[lowered] {
				seenStruct[lowered] = true
				items = append(items, renderItem{strct: lowered})
			}
		default:
			return nil, fmt.Errorf("emit: invalid declaration kind %d", decl.Kind)
		}
	}

	unit := &CompilationUnit{
		Provenance: provenance,
		Headers:    runtimeHeaders(items),
	}
	unit.Text = render(provenance, unit.Headers, items)
	return unit, nil
}

// lowerMemo lowers a sum type once per Emitter, so every unit of the
// compilation shares one LoweredSumType per declaration.
func (e *Emitter) lowerMemo(st *ir.SumType) (*lower.LoweredSumType, error) {
	if l, ok := e.lowered[st]; ok {
		return l, nil
	}
	l, err := lower.SumType(e.interner, e.registry, st)
	if err != nil {
		return nil, err
	}
	e.lowered[st] = l
	return l, nil
}

func (e *Emitter) lowerStructMemo(st *ir.Struct) (*lower.LoweredStruct, error) {
	if l, ok := e.loweredStructs[st]; ok {
		return l, nil
	}
	l, err := lower.Struct(e.interner, e.registry, st)
	if err != nil {
		return nil, err
	}
	e.loweredStructs[st] = l
	return l, nil
}

// runtimeHeaders collects the embedded runtime headers the scheduled items
// pull in, in fixed include order (numbers before strings).
func runtimeHeaders(items []renderItem) []string {
	var needNumbers, needStrings bool
	mark := func(headers []registry.Header) {
		for _, h := range headers {
			switch h {
			case registry.HeaderNumbers:
				needNumbers = true
			case registry.HeaderStrings:
				needStrings = true
			}
		}
	}
	for _, item := range items {
		if item.inst != nil {
			mark(item.inst.Headers)
		}
		if item.sum != nil {
			mark(item.sum.Headers)
		}
		if item.strct != nil {
			mark(item.strct.Headers)
		}
	}
	var headers []string
	if needNumbers {
		headers = append(headers, "numbers.h")
	}
	if needStrings {
		headers = append(headers, "strings.h")
	}
	return headers
}

// render writes the full unit text: provenance annotation, includes, then
// each definition separated by a blank line.
func render(provenance string, headers []string, items []renderItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// source: %s\n\n", provenance)

	hasInst := false
	for _, item := range items {
		if item.inst != nil {
			hasInst = true
			break
		}
	}
	b.WriteString("#include <stdbool.h>\n")
	if hasInst {
		b.WriteString("#include <stddef.h>\n")
	}
	b.WriteString("#include <stdint.h>\n")
	if hasInst {
		b.WriteString("#include <stdio.h>\n")
		b.WriteString("#include <stdlib.h>\n")
		b.WriteString("#include <string.h>\n")
	}
	for _, h := range headers {
		fmt.Fprintf(&b, "#include \"%s\"\n", h)
	}
	b.WriteString("\n")

	for _, item := range items {
		switch {
		case item.inst != nil:
			renderInstantiation(&b, item.inst)
		case item.sum != nil:
			renderSumType(&b, item.sum)
		default:
			renderStruct(&b, item.strct)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}
