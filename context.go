package d3d11

import "github.com/gogpu/d3d11/native"

// CommittedResources mirrors, per stage, the binding state the native
// device currently holds: one flat slot array per resource range, plus
// the constant window arrays for buffers and the underlying resource
// arrays for views. The bind helpers diff a cache against these arrays
// and patch them in place; whatever range they report back is what a
// backend call has to cover.
type CommittedResources struct {
	CBs              [NumShaderStages][MaxCBCount]native.Buffer
	CBFirstConstants [NumShaderStages][MaxCBCount]uint32
	CBNumConstants   [NumShaderStages][MaxCBCount]uint32

	SRVs         [NumShaderStages][MaxSRVCount]native.ShaderResourceView
	SRVResources [NumShaderStages][MaxSRVCount]native.Resource

	Samplers [NumShaderStages][MaxSamplerCount]native.SamplerState

	UAVs         [NumShaderStages][MaxUAVCount]native.UnorderedAccessView
	UAVResources [NumShaderStages][MaxUAVCount]native.Resource
}

// Clear forgets all committed bindings, as after a device reset.
func (cr *CommittedResources) Clear() {
	*cr = CommittedResources{}
}

// ContextStats counts the backend work a context performed. Bind calls
// are counted once per (stage, range) with a valid changed slot range;
// the slot counts accumulate the width of those ranges.
type ContextStats struct {
	BindCalls      int
	SlotsBound     int
	DynamicPatches int
	Transitions    int
	VerifyFailures int
	UnknownSkipped int
}

// DeviceContext models the recording context that consumes a resource
// cache: it owns the committed state arrays, issues the backend bind
// calls over the slot ranges the cache reports, and serves as the
// transition collaborator of TransitionResourceStates.
//
// Like the cache, a context belongs to one recording thread at a time
// and has no internal locking.
type DeviceContext struct {
	name      string
	committed CommittedResources
	stats     ContextStats
}

// NewDeviceContext creates a context with empty committed state.
func NewDeviceContext(name string) *DeviceContext {
	return &DeviceContext{name: name}
}

// Name returns the debug name given at creation.
func (dc *DeviceContext) Name() string { return dc.name }

// Committed exposes the committed state arrays, mainly so tests and
// debug tooling can inspect what would have reached the device.
func (dc *DeviceContext) Committed() *CommittedResources { return &dc.committed }

// Stats returns the accumulated counters.
func (dc *DeviceContext) Stats() ContextStats { return dc.stats }

// ResetStats zeroes the accumulated counters.
func (dc *DeviceContext) ResetStats() { dc.stats = ContextStats{} }

// InvalidateCommitted forgets all committed bindings so the next commit
// rebinds everything.
func (dc *DeviceContext) InvalidateCommitted() {
	dc.committed.Clear()
}

func (dc *DeviceContext) recordBind(mm MinMaxSlot) {
	if mm.IsValid() {
		dc.stats.BindCalls++
		dc.stats.SlotsBound += int(mm.SlotCount())
	}
}

// CommitResources diffs every stage and range of the cache against the
// committed state and issues one bind call per (stage, range) whose
// slots changed. base gives the per-stage slot offsets at which the
// cache's bindings live, counted in the same units as the cache's
// counters; a cache bound first in the pipeline passes the zero value.
func (dc *DeviceContext) CommitResources(cache *ResourceCache, base *ResourceCounters) {
	for s := ShaderStage(0); s < NumShaderStages; s++ {
		cb := cache.BindCBs(s,
			dc.committed.CBs[s][:], dc.committed.CBFirstConstants[s][:], dc.committed.CBNumConstants[s][:],
			uint32(base[RangeCB][s]))
		dc.recordBind(cb)

		srv := cache.BindSRVs(s,
			dc.committed.SRVs[s][:], dc.committed.SRVResources[s][:],
			uint32(base[RangeSRV][s]))
		dc.recordBind(srv)

		smp := cache.BindSamplers(s, dc.committed.Samplers[s][:], uint32(base[RangeSampler][s]))
		dc.recordBind(smp)

		uav := cache.BindUAVs(s,
			dc.committed.UAVs[s][:], dc.committed.UAVResources[s][:],
			uint32(base[RangeUAV][s]))
		dc.recordBind(uav)
	}
}

// CommitDynamicCBs patches only the constant buffer slots whose dynamic
// offsets changed since the last commit, issuing one single-slot bind
// call per patched slot. Returns the number of patched slots.
func (dc *DeviceContext) CommitDynamicCBs(cache *ResourceCache, base *ResourceCounters) int {
	patched := 0
	for s := ShaderStage(0); s < NumShaderStages; s++ {
		cache.BindDynamicCBs(s,
			dc.committed.CBs[s][:], dc.committed.CBFirstConstants[s][:], dc.committed.CBNumConstants[s][:],
			uint32(base[RangeCB][s]),
			func(uint32) {
				patched++
				dc.stats.DynamicPatches++
			})
	}
	return patched
}

// TransitionBufferState moves a buffer into the given state. Buffers in
// an application-managed (unknown) state are skipped with a warning;
// buffers already in the state are left alone.
func (dc *DeviceContext) TransitionBufferState(b *Buffer, state ResourceState) {
	if !b.State().IsKnown() {
		dc.stats.UnknownSkipped++
		Logger().Warn("buffer state is unknown to the engine, transition skipped",
			"context", dc.name, "buffer", b.Name())
		return
	}
	if b.State().Contains(state) {
		return
	}
	b.SetState(state)
	dc.stats.Transitions++
}

// TransitionTextureState moves a texture into the given state, with the
// same unknown-state and idempotence rules as TransitionBufferState.
func (dc *DeviceContext) TransitionTextureState(t *Texture, state ResourceState) {
	if !t.State().IsKnown() {
		dc.stats.UnknownSkipped++
		Logger().Warn("texture state is unknown to the engine, transition skipped",
			"context", dc.name, "texture", t.Name())
		return
	}
	if t.State().Contains(state) {
		return
	}
	t.SetState(state)
	dc.stats.Transitions++
}

// VerifyBufferState checks that a buffer is in the given state and
// reports a mismatch through the package logger. Buffers in an unknown
// state pass silently; their state is the application's business.
func (dc *DeviceContext) VerifyBufferState(b *Buffer, state ResourceState, operation string) {
	if b.State().IsKnown() && !b.State().Contains(state) {
		dc.stats.VerifyFailures++
		Logger().Error("buffer is in the wrong state; did an explicit transition go missing?",
			"context", dc.name, "buffer", b.Name(), "operation", operation,
			"expected", state.String(), "actual", b.State().String())
	}
}

// VerifyTextureState checks that a texture is in the given state and
// reports a mismatch through the package logger, like VerifyBufferState.
func (dc *DeviceContext) VerifyTextureState(t *Texture, state ResourceState, operation string) {
	if t.State().IsKnown() && !t.State().Contains(state) {
		dc.stats.VerifyFailures++
		Logger().Error("texture is in the wrong state; did an explicit transition go missing?",
			"context", dc.name, "texture", t.Name(), "operation", operation,
			"expected", state.String(), "actual", t.State().String())
	}
}
