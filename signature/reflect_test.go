// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package signature

import (
	"errors"
	"testing"

	"github.com/gogpu/naga/ir"

	"github.com/gogpu/d3d11"
)

const renderWGSL = `
struct Globals {
    view_proj: mat4x4<f32>,
    tint: vec4<f32>,
}

@group(0) @binding(0) var<uniform> globals: Globals;
@group(0) @binding(1) var base_color: texture_2d<f32>;
@group(0) @binding(2) var base_sampler: sampler;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@location(0) pos: vec4<f32>, @location(1) uv: vec2<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = globals.view_proj * pos;
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let color = textureSample(base_color, base_sampler, in.uv);
    return color * globals.tint;
}
`

func TestFromWGSLRenderPipeline(t *testing.T) {
	desc, err := FromWGSL("sprite", renderWGSL)
	if err != nil {
		t.Fatalf("FromWGSL() error = %v", err)
	}
	if desc.Name != "sprite" {
		t.Errorf("Name = %q, want %q", desc.Name, "sprite")
	}

	want := []Resource{
		{Name: "globals", Range: d3d11.RangeCB, Stages: d3d11.StagesVertex | d3d11.StagesPixel},
		{Name: "base_color", Range: d3d11.RangeSRV, Stages: d3d11.StagesPixel},
		{Name: "base_sampler", Range: d3d11.RangeSampler, Stages: d3d11.StagesPixel},
	}
	if len(desc.Resources) != len(want) {
		t.Fatalf("reflected %d resources, want %d: %+v", len(desc.Resources), len(want), desc.Resources)
	}
	for i, w := range want {
		if got := desc.Resources[i]; got != w {
			t.Errorf("resource[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestFromWGSLCompilesToSignature(t *testing.T) {
	desc, err := FromWGSL("sprite", renderWGSL)
	if err != nil {
		t.Fatalf("FromWGSL() error = %v", err)
	}
	s, err := New(desc)
	if err != nil {
		t.Fatalf("New(reflected desc) error = %v", err)
	}

	// Slots follow reflection order, not the WGSL binding numbers.
	bp, ok := s.BindPoints("globals")
	if !ok || bp.Slot(d3d11.StageVertex) != 0 || bp.Slot(d3d11.StagePixel) != 0 {
		t.Errorf("globals bind points = %v, want slot 0 in VS and PS", bp)
	}
	if bp, _ := s.BindPoints("base_color"); bp.Slot(d3d11.StagePixel) != 0 {
		t.Errorf("base_color pixel slot = %d, want 0", bp.Slot(d3d11.StagePixel))
	}

	counters := s.Counters()
	if got := counters.Get(d3d11.RangeCB, d3d11.StageVertex); got != 1 {
		t.Errorf("vertex cb count = %d, want 1", got)
	}
	if got := counters.Get(d3d11.RangeSampler, d3d11.StagePixel); got != 1 {
		t.Errorf("pixel sampler count = %d, want 1", got)
	}
}

const computeWGSL = `
struct Counts {
    data: array<u32>
}

@group(0) @binding(0)
var<storage,read_write> src_counts: Counts;
@group(0) @binding(1)
var<storage,read_write> dst_counts: Counts;

fn load_count(i: u32) -> u32 {
    return src_counts.data[i];
}

@compute @workgroup_size(64)
fn cs_main(@builtin(global_invocation_id) id: vec3<u32>) {
    dst_counts.data[id.x] = load_count(id.x) + 1u;
}
`

func TestFromWGSLComputeStorage(t *testing.T) {
	desc, err := FromWGSL("counts", computeWGSL)
	if err != nil {
		t.Fatalf("FromWGSL() error = %v", err)
	}
	if len(desc.Resources) != 2 {
		t.Fatalf("reflected %d resources, want 2: %+v", len(desc.Resources), desc.Resources)
	}

	// Storage buffers bind as unordered access views. src_counts is
	// only touched inside the helper, so its visibility comes from the
	// call graph walk.
	src := desc.Resources[0]
	if src.Name != "src_counts" || src.Range != d3d11.RangeUAV || src.Stages != d3d11.StagesCompute {
		t.Errorf("src_counts = %+v, want compute uav", src)
	}
	dst := desc.Resources[1]
	if dst.Name != "dst_counts" || dst.Range != d3d11.RangeUAV {
		t.Errorf("dst_counts = %+v, want uav", dst)
	}
}

func TestFromWGSLParseError(t *testing.T) {
	if _, err := FromWGSL("bad", "@vertex fn ("); err == nil {
		t.Error("FromWGSL of invalid source should error")
	}
}

// irModule builds a one-entry-point module around the given globals,
// all of which the entry point references.
func irModule(stage ir.ShaderStage, globals ...ir.GlobalVariable) *ir.Module {
	exprs := make([]ir.Expression, len(globals))
	for i := range globals {
		exprs[i] = ir.Expression{Kind: ir.ExprGlobalVariable{Variable: ir.GlobalVariableHandle(i)}}
	}
	return &ir.Module{
		GlobalVariables: globals,
		EntryPoints: []ir.EntryPoint{{
			Name:     "main",
			Stage:    stage,
			Function: ir.Function{Name: "main", Expressions: exprs},
		}},
	}
}

func TestFromIRHandleClasses(t *testing.T) {
	module := irModule(ir.StageCompute,
		ir.GlobalVariable{Name: "out_image", Space: ir.SpaceHandle, Binding: &ir.ResourceBinding{Group: 0, Binding: 2}, Type: 0},
		ir.GlobalVariable{Name: "in_image", Space: ir.SpaceHandle, Binding: &ir.ResourceBinding{Group: 0, Binding: 0}, Type: 1},
		ir.GlobalVariable{Name: "in_sampler", Space: ir.SpaceHandle, Binding: &ir.ResourceBinding{Group: 0, Binding: 1}, Type: 2},
	)
	module.Types = []ir.Type{
		{Inner: ir.ImageType{Dim: ir.Dim2D, Class: ir.ImageClassStorage}},
		{Inner: ir.ImageType{Dim: ir.Dim2D, Class: ir.ImageClassSampled}},
		{Inner: ir.SamplerType{}},
	}

	desc, err := FromIR("post", module)
	if err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}

	// Ordered by (group, binding): sampled image, sampler, storage
	// image.
	want := []Resource{
		{Name: "in_image", Range: d3d11.RangeSRV, Stages: d3d11.StagesCompute},
		{Name: "in_sampler", Range: d3d11.RangeSampler, Stages: d3d11.StagesCompute},
		{Name: "out_image", Range: d3d11.RangeUAV, Stages: d3d11.StagesCompute},
	}
	if len(desc.Resources) != len(want) {
		t.Fatalf("reflected %d resources, want %d", len(desc.Resources), len(want))
	}
	for i, w := range want {
		if got := desc.Resources[i]; got != w {
			t.Errorf("resource[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestFromIRPushConstantUnsupported(t *testing.T) {
	module := irModule(ir.StageVertex,
		ir.GlobalVariable{Name: "pc", Space: ir.SpacePushConstant},
	)
	if _, err := FromIR("pc", module); !errors.Is(err, ErrUnsupported) {
		t.Errorf("FromIR() error = %v, want %v", err, ErrUnsupported)
	}
}

func TestFromIRUnnamedGlobal(t *testing.T) {
	module := irModule(ir.StageFragment,
		ir.GlobalVariable{Space: ir.SpaceUniform, Binding: &ir.ResourceBinding{Group: 0, Binding: 1}},
	)
	desc, err := FromIR("anon", module)
	if err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if len(desc.Resources) != 1 || desc.Resources[0].Name != "g0_b1" {
		t.Errorf("resources = %+v, want one named g0_b1", desc.Resources)
	}
}

func TestFromIRSkipsUnbound(t *testing.T) {
	// A referenced uniform without a binding and a private variable take
	// no slot.
	module := irModule(ir.StageVertex,
		ir.GlobalVariable{Name: "loose", Space: ir.SpaceUniform},
		ir.GlobalVariable{Name: "scratch", Space: ir.SpacePrivate},
	)
	desc, err := FromIR("unbound", module)
	if err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if len(desc.Resources) != 0 {
		t.Errorf("resources = %+v, want none", desc.Resources)
	}
}

func TestFromIRSkipsUnreferenced(t *testing.T) {
	module := &ir.Module{
		GlobalVariables: []ir.GlobalVariable{
			{Name: "unused", Space: ir.SpaceUniform, Binding: &ir.ResourceBinding{Group: 0, Binding: 0}},
		},
		EntryPoints: []ir.EntryPoint{{Name: "main", Stage: ir.StageVertex, Function: ir.Function{Name: "main"}}},
	}
	desc, err := FromIR("unref", module)
	if err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if len(desc.Resources) != 0 {
		t.Errorf("resources = %+v, want none", desc.Resources)
	}
}

func TestFromIRStageUnion(t *testing.T) {
	// One global referenced from a vertex and a fragment entry point.
	shared := ir.GlobalVariable{Name: "shared_cb", Space: ir.SpaceUniform, Binding: &ir.ResourceBinding{Group: 0, Binding: 0}}
	module := &ir.Module{
		GlobalVariables: []ir.GlobalVariable{shared},
		EntryPoints: []ir.EntryPoint{
			{Name: "vs", Stage: ir.StageVertex, Function: ir.Function{
				Name: "vs", Expressions: []ir.Expression{{Kind: ir.ExprGlobalVariable{Variable: 0}}},
			}},
			{Name: "fs", Stage: ir.StageFragment, Function: ir.Function{
				Name: "fs", Expressions: []ir.Expression{{Kind: ir.ExprGlobalVariable{Variable: 0}}},
			}},
		},
	}
	desc, err := FromIR("union", module)
	if err != nil {
		t.Fatalf("FromIR() error = %v", err)
	}
	if len(desc.Resources) != 1 {
		t.Fatalf("reflected %d resources, want 1", len(desc.Resources))
	}
	if got := desc.Resources[0].Stages; got != d3d11.StagesVertex|d3d11.StagesPixel {
		t.Errorf("stages = %v, want VS|PS", got)
	}
}
