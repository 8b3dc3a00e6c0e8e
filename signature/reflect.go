// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package signature

import (
	"fmt"
	"sort"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/d3d11"
)

// FromWGSL reflects a signature description from WGSL shader source:
// the source is lowered to IR and every resource-bound global used by
// an entry point becomes one declaration. Stage visibility is the union
// of the entry points whose call graphs reach the global.
//
// The WGSL stage model maps onto the Direct3D one as vertex, pixel and
// compute; the tessellation and geometry stages have no WGSL
// counterpart and never appear in reflected signatures. Resources are
// ordered by (group, binding) so reflection is deterministic, and slots
// are assigned from that order, not from the WGSL binding numbers.
func FromWGSL(name, source string) (*Desc, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("signature: parse wgsl: %w", err)
	}
	module, err := naga.Lower(ast)
	if err != nil {
		return nil, fmt.Errorf("signature: lower wgsl: %w", err)
	}
	return FromIR(name, module)
}

// FromIR reflects a signature description from an already lowered IR
// module, with the same rules as FromWGSL.
func FromIR(name string, module *ir.Module) (*Desc, error) {
	usage := globalStageUsage(module)

	type numbered struct {
		group   uint32
		binding uint32
		res     Resource
	}
	var found []numbered

	for handle, gv := range module.GlobalVariables {
		stages := usage[ir.GlobalVariableHandle(handle)]
		if stages == d3d11.StagesNone {
			// Declared but unreachable from every entry point.
			continue
		}

		// Classification comes first: push constants carry no binding
		// yet must still be rejected when used.
		rng, ok, err := classify(module, &module.GlobalVariables[handle])
		if err != nil {
			return nil, err
		}
		if !ok || gv.Binding == nil {
			continue
		}

		resName := gv.Name
		if resName == "" {
			resName = fmt.Sprintf("g%d_b%d", gv.Binding.Group, gv.Binding.Binding)
		}
		found = append(found, numbered{
			group:   gv.Binding.Group,
			binding: gv.Binding.Binding,
			res: Resource{
				Name:   resName,
				Range:  rng,
				Stages: stages,
			},
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].group != found[j].group {
			return found[i].group < found[j].group
		}
		return found[i].binding < found[j].binding
	})

	desc := &Desc{Name: name, Resources: make([]Resource, 0, len(found))}
	for _, n := range found {
		desc.Resources = append(desc.Resources, n.res)
	}
	return desc, nil
}

// classify maps a resource-bound global onto a binding range. The
// second result is false for globals that occupy no binding slot.
// Storage buffers bind as unordered access views: the IR does not carry
// the declared access mode, so the writable case is assumed.
func classify(module *ir.Module, gv *ir.GlobalVariable) (d3d11.ResourceRange, bool, error) {
	switch gv.Space {
	case ir.SpaceUniform:
		return d3d11.RangeCB, true, nil
	case ir.SpaceStorage:
		return d3d11.RangeUAV, true, nil
	case ir.SpacePushConstant:
		return 0, false, fmt.Errorf("%w: push constant %q", ErrUnsupported, gv.Name)
	case ir.SpaceHandle:
		if int(gv.Type) >= len(module.Types) {
			return 0, false, fmt.Errorf("%w: global %q has a dangling type", ErrUnsupported, gv.Name)
		}
		switch inner := module.Types[gv.Type].Inner.(type) {
		case ir.ImageType:
			if inner.Class == ir.ImageClassStorage {
				return d3d11.RangeUAV, true, nil
			}
			return d3d11.RangeSRV, true, nil
		case ir.SamplerType:
			return d3d11.RangeSampler, true, nil
		default:
			return 0, false, fmt.Errorf("%w: global %q of unexpected handle type", ErrUnsupported, gv.Name)
		}
	default:
		// Function, private and workgroup variables take no slot.
		return 0, false, nil
	}
}

// globalStageUsage walks every entry point's call graph and records
// which stages reach each global variable.
func globalStageUsage(module *ir.Module) map[ir.GlobalVariableHandle]d3d11.ShaderStages {
	usage := make(map[ir.GlobalVariableHandle]d3d11.ShaderStages)
	for _, ep := range module.EntryPoints {
		flag := stageFlag(ep.Stage)
		if flag == d3d11.StagesNone {
			continue
		}
		seen := make(map[ir.FunctionHandle]bool)
		markFunctionBody(module, &ep.Function, flag, usage, seen)
	}
	return usage
}

func stageFlag(stage ir.ShaderStage) d3d11.ShaderStages {
	switch stage {
	case ir.StageVertex:
		return d3d11.StagesVertex
	case ir.StageFragment:
		return d3d11.StagesPixel
	case ir.StageCompute:
		return d3d11.StagesCompute
	}
	return d3d11.StagesNone
}

func markFunction(module *ir.Module, fn ir.FunctionHandle, flag d3d11.ShaderStages,
	usage map[ir.GlobalVariableHandle]d3d11.ShaderStages, seen map[ir.FunctionHandle]bool) {
	if int(fn) >= len(module.Functions) || seen[fn] {
		return
	}
	seen[fn] = true
	markFunctionBody(module, &module.Functions[fn], flag, usage, seen)
}

// markFunctionBody walks one function's expressions and body. Entry
// point functions are inline in their EntryPoint and have no handle, so
// the walk takes the function itself.
func markFunctionBody(module *ir.Module, f *ir.Function, flag d3d11.ShaderStages,
	usage map[ir.GlobalVariableHandle]d3d11.ShaderStages, seen map[ir.FunctionHandle]bool) {
	for i := range f.Expressions {
		switch e := f.Expressions[i].Kind.(type) {
		case ir.ExprGlobalVariable:
			usage[e.Variable] |= flag
		case ir.ExprCallResult:
			markFunction(module, e.Function, flag, usage, seen)
		}
	}
	markBlock(module, f.Body, flag, usage, seen)
}

// markBlock follows calls hidden in structured control flow; calls
// without results only appear as statements.
func markBlock(module *ir.Module, body []ir.Statement, flag d3d11.ShaderStages,
	usage map[ir.GlobalVariableHandle]d3d11.ShaderStages, seen map[ir.FunctionHandle]bool) {
	for i := range body {
		switch s := body[i].Kind.(type) {
		case ir.StmtCall:
			markFunction(module, s.Function, flag, usage, seen)
		case ir.StmtBlock:
			markBlock(module, s.Block, flag, usage, seen)
		case ir.StmtIf:
			markBlock(module, s.Accept, flag, usage, seen)
			markBlock(module, s.Reject, flag, usage, seen)
		case ir.StmtSwitch:
			for c := range s.Cases {
				markBlock(module, s.Cases[c].Body, flag, usage, seen)
			}
		case ir.StmtLoop:
			markBlock(module, s.Body, flag, usage, seen)
			markBlock(module, s.Continuing, flag, usage, seen)
		}
	}
}
