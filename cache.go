package d3d11

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/d3d11/native"
)

// ContentType tells what a resource cache backs: the static bindings of
// a pipeline resource signature, or the per-object bindings of a shader
// resource binding. The cache behaves identically either way; the type
// is recorded for diagnostics.
type ContentType uint8

const (
	ContentSignature ContentType = iota
	ContentSRB
)

// String returns "signature" or "srb".
func (t ContentType) String() string {
	switch t {
	case ContentSignature:
		return "signature"
	case ContentSRB:
		return "srb"
	}
	return fmt.Sprintf("content(%d)", uint8(t))
}

// Byte size of one slot (descriptor plus native handle) per resource
// range. The values are the layout accounting of the offset table; they
// only have to be stable, not to match the in-memory size of the Go
// structs exactly.
const (
	cbSlotSize      = 32
	viewSlotSize    = 48
	samplerSlotSize = 16
)

func rangeSlotSize(r ResourceRange) uint32 {
	switch r {
	case RangeCB:
		return cbSlotSize
	case RangeSampler:
		return samplerSlotSize
	default:
		return viewSlotSize
	}
}

// numOffsets is the length of the offset table: stage count plus one
// entries per range, with the boundary entries shared between
// neighboring ranges.
const numOffsets = NumResourceRanges*NumShaderStages + 1

// RequiredMemorySize returns the total byte size of the slot storage a
// cache initialized with the given counters will carve up. The size is
// exact; Initialize allocates nothing beyond it.
func RequiredMemorySize(counters ResourceCounters) uint32 {
	var total uint32
	for r := range counters {
		sz := rangeSlotSize(ResourceRange(r))
		for s := range counters[r] {
			total += uint32(counters[r][s]) * sz
		}
	}
	return total
}

// ResourceCache holds every resource bound to one pipeline signature or
// shader resource binding: for each shader stage, the constant buffers,
// shader resource views, samplers and unordered access views at each
// slot, as parallel descriptor and native handle arrays.
//
// The layout is fixed at Initialize from per-stage slot counts and
// never changes afterwards. A single byte offset table addresses all
// four per-kind regions; per-stage slot counts are recovered from
// neighboring table entries, so the cache stores no counts of its own.
//
// A cache is not safe for concurrent mutation. One recording thread
// owns it at a time, matching the command recording model of the
// surrounding engine.
type ResourceCache struct {
	// offsets is a single non-decreasing sequence of byte offsets.
	// Entry r*NumShaderStages+s is where stage s of range r starts;
	// the entry after it is where the stage ends. The last entry of
	// each range coincides with the first entry of the next.
	offsets [numOffsets]uint16

	cbs            []CachedCB
	cbHandles      []native.Buffer
	srvs           []CachedView
	srvHandles     []native.ShaderResourceView
	samplers       []CachedSampler
	samplerHandles []native.SamplerState
	uavs           []CachedView
	uavHandles     []native.UnorderedAccessView

	// dynamicCBSlotsMask marks, per stage, the constant buffer slots
	// that may receive dynamic offsets. Fixed at Initialize.
	dynamicCBSlotsMask [NumShaderStages]uint16

	// dynamicCBOffsetsMask marks, per stage, the slots that currently
	// hold a buffer needing a dynamic offset. Recomputed on every
	// write to a constant buffer slot; always a subset of
	// dynamicCBSlotsMask.
	dynamicCBOffsetsMask [NumShaderStages]uint16

	contentType ContentType
	initialized bool
}

// NewResourceCache creates an empty, uninitialized cache.
func NewResourceCache(contentType ContentType) *ResourceCache {
	return &ResourceCache{contentType: contentType}
}

// Initialize computes the offset table from the per-stage slot counts,
// allocates the slot storage with every slot unbound, and records the
// dynamic-eligibility masks. Initializing an already initialized cache
// is a programming error and panics; call Destroy first to reuse the
// instance.
func (c *ResourceCache) Initialize(counters ResourceCounters, dynamicCBSlots [NumShaderStages]uint16) {
	if c.initialized {
		panic("d3d11: resource cache already initialized")
	}

	var off uint32
	idx := 0
	c.offsets[idx] = 0
	for r := range counters {
		sz := rangeSlotSize(ResourceRange(r))
		for s := range counters[r] {
			cnt := int(counters[r][s])
			if cnt > ResourceRange(r).MaxSlots() {
				panic(fmt.Sprintf("d3d11: %d %s slots requested for %s, limit is %d",
					cnt, ResourceRange(r), ShaderStage(s), ResourceRange(r).MaxSlots()))
			}
			off += uint32(cnt) * sz
			idx++
			c.offsets[idx] = uint16(off)
		}
	}

	c.cbs = make([]CachedCB, c.rangeTotal(RangeCB))
	c.cbHandles = make([]native.Buffer, len(c.cbs))
	c.srvs = make([]CachedView, c.rangeTotal(RangeSRV))
	c.srvHandles = make([]native.ShaderResourceView, len(c.srvs))
	c.samplers = make([]CachedSampler, c.rangeTotal(RangeSampler))
	c.samplerHandles = make([]native.SamplerState, len(c.samplers))
	c.uavs = make([]CachedView, c.rangeTotal(RangeUAV))
	c.uavHandles = make([]native.UnorderedAccessView, len(c.uavs))

	for s := range dynamicCBSlots {
		if debugChecks {
			cnt := c.slotCount(RangeCB, ShaderStage(s))
			if mask := dynamicCBSlots[s]; cnt < 16 && mask>>cnt != 0 {
				panic(fmt.Sprintf("d3d11: dynamic cb slots mask %#x of %s names slots beyond the stage's %d cb slots",
					mask, ShaderStage(s), cnt))
			}
		}
		c.dynamicCBSlotsMask[s] = dynamicCBSlots[s]
		c.dynamicCBOffsetsMask[s] = 0
	}

	c.initialized = true
	Logger().Debug("resource cache initialized",
		"content", c.contentType, "size", off, "counters", counters.String())
}

// Destroy releases every reference the cache still holds and frees the
// slot storage. The cache returns to the uninitialized state and may be
// initialized again.
func (c *ResourceCache) Destroy() {
	if !c.initialized {
		return
	}

	if debugChecks {
		bound := 0
		for i := range c.cbs {
			if c.cbs[i].IsBound() {
				bound++
			}
		}
		for i := range c.srvs {
			if c.srvs[i].IsBound() {
				bound++
			}
		}
		for i := range c.uavs {
			if c.uavs[i].IsBound() {
				bound++
			}
		}
		if bound > 0 {
			Logger().Debug("destroying resource cache with bound resources",
				"content", c.contentType, "slots", bound)
		}
	}

	for i := range c.cbs {
		if b := c.cbs[i].Buffer; b != nil {
			b.Release()
		}
	}
	for i := range c.srvs {
		if v := c.srvs[i].View; v != nil {
			v.Release()
		}
	}
	for i := range c.uavs {
		if v := c.uavs[i].View; v != nil {
			v.Release()
		}
	}

	c.cbs, c.cbHandles = nil, nil
	c.srvs, c.srvHandles = nil, nil
	c.samplers, c.samplerHandles = nil, nil
	c.uavs, c.uavHandles = nil, nil
	c.offsets = [numOffsets]uint16{}
	c.dynamicCBSlotsMask = [NumShaderStages]uint16{}
	c.dynamicCBOffsetsMask = [NumShaderStages]uint16{}
	c.initialized = false
}

// IsInitialized reports whether Initialize has run.
func (c *ResourceCache) IsInitialized() bool {
	return c.initialized
}

// ContentType returns the content type given at construction.
func (c *ResourceCache) ContentType() ContentType {
	return c.contentType
}

// MemorySize returns the byte size of the slot storage, as laid out by
// the offset table. Zero before Initialize.
func (c *ResourceCache) MemorySize() uint32 {
	return uint32(c.offsets[numOffsets-1])
}

// ResourceCount returns the number of slots of one range in one stage.
func (c *ResourceCache) ResourceCount(r ResourceRange, s ShaderStage) int {
	return c.slotCount(r, s)
}

// slotCount derives a stage's slot count from the offset table.
func (c *ResourceCache) slotCount(r ResourceRange, s ShaderStage) int {
	i := int(r)*NumShaderStages + int(s)
	return int(uint32(c.offsets[i+1]-c.offsets[i]) / rangeSlotSize(r))
}

// span returns the first element index and element count of a stage's
// sub-array within its range's storage.
func (c *ResourceCache) span(r ResourceRange, s ShaderStage) (first, count uint32) {
	i := int(r)*NumShaderStages + int(s)
	base := c.offsets[int(r)*NumShaderStages]
	sz := rangeSlotSize(r)
	return uint32(c.offsets[i]-base) / sz, uint32(c.offsets[i+1]-c.offsets[i]) / sz
}

// rangeTotal returns the element count of a whole range across all
// stages.
func (c *ResourceCache) rangeTotal(r ResourceRange) uint32 {
	lo := c.offsets[int(r)*NumShaderStages]
	hi := c.offsets[(int(r)+1)*NumShaderStages]
	return uint32(hi-lo) / rangeSlotSize(r)
}

func (c *ResourceCache) stageCBs(s ShaderStage) ([]CachedCB, []native.Buffer) {
	first, count := c.span(RangeCB, s)
	return c.cbs[first : first+count], c.cbHandles[first : first+count]
}

func (c *ResourceCache) stageSRVs(s ShaderStage) ([]CachedView, []native.ShaderResourceView) {
	first, count := c.span(RangeSRV, s)
	return c.srvs[first : first+count], c.srvHandles[first : first+count]
}

func (c *ResourceCache) stageSamplers(s ShaderStage) ([]CachedSampler, []native.SamplerState) {
	first, count := c.span(RangeSampler, s)
	return c.samplers[first : first+count], c.samplerHandles[first : first+count]
}

func (c *ResourceCache) stageUAVs(s ShaderStage) ([]CachedView, []native.UnorderedAccessView) {
	first, count := c.span(RangeUAV, s)
	return c.uavs[first : first+count], c.uavHandles[first : first+count]
}

// DynamicCBSlotsMask returns the dynamic-eligibility mask of a stage.
func (c *ResourceCache) DynamicCBSlotsMask(s ShaderStage) uint16 {
	return c.dynamicCBSlotsMask[s]
}

// DynamicCBOffsetsMask returns the mask of slots currently holding a
// buffer that needs a dynamic offset in a stage.
func (c *ResourceCache) DynamicCBOffsetsMask(s ShaderStage) uint16 {
	return c.dynamicCBOffsetsMask[s]
}

// HasDynamicResources reports whether any slot in any stage currently
// needs a dynamic offset.
func (c *ResourceCache) HasDynamicResources() bool {
	for s := range c.dynamicCBOffsetsMask {
		if c.dynamicCBOffsetsMask[s] != 0 {
			return true
		}
	}
	return false
}

// resolveBindPoint picks the first active stage of a bind point set.
// An empty set is a programming error.
func resolveBindPoint(bp BindPoints) (ShaderStage, uint8) {
	if bp.IsEmpty() {
		panic("d3d11: empty bind point set")
	}
	stage := bp.Stages().First()
	return stage, bp.Slot(stage)
}

func (c *ResourceCache) checkSlot(r ResourceRange, stage ShaderStage, slot uint8, count int) {
	if int(slot) >= count {
		panic(fmt.Sprintf("d3d11: %s slot %d out of range for %s (stage has %d slots)", r, slot, stage, count))
	}
}

// GetCB returns the constant buffer descriptor at a bind point. The
// descriptor is read from the first active stage; debug builds verify
// that every other active stage holds an identical descriptor.
func (c *ResourceCache) GetCB(bp BindPoints) CachedCB {
	stage, slot := resolveBindPoint(bp)
	descs, handles := c.stageCBs(stage)
	c.checkSlot(RangeCB, stage, slot, len(descs))
	if debugChecks {
		c.verifyCBStages(bp, descs[slot], handles[slot])
	}
	return descs[slot]
}

// GetSampler returns the sampler descriptor at a bind point, read the
// same way as GetCB.
func (c *ResourceCache) GetSampler(bp BindPoints) CachedSampler {
	stage, slot := resolveBindPoint(bp)
	descs, handles := c.stageSamplers(stage)
	c.checkSlot(RangeSampler, stage, slot, len(descs))
	if debugChecks {
		c.verifySamplerStages(bp, descs[slot], handles[slot])
	}
	return descs[slot]
}

// GetSRV returns the shader resource view descriptor at a bind point,
// read the same way as GetCB.
func (c *ResourceCache) GetSRV(bp BindPoints) CachedView {
	stage, slot := resolveBindPoint(bp)
	descs, handles := c.stageSRVs(stage)
	c.checkSlot(RangeSRV, stage, slot, len(descs))
	if debugChecks {
		verifyViewStages(c.stageSRVs, bp, descs[slot], handles[slot])
	}
	return descs[slot]
}

// GetUAV returns the unordered access view descriptor at a bind point,
// read the same way as GetCB.
func (c *ResourceCache) GetUAV(bp BindPoints) CachedView {
	stage, slot := resolveBindPoint(bp)
	descs, handles := c.stageUAVs(stage)
	c.checkSlot(RangeUAV, stage, slot, len(descs))
	if debugChecks {
		verifyViewStages(c.stageUAVs, bp, descs[slot], handles[slot])
	}
	return descs[slot]
}

// IsCBBound reports whether a constant buffer is bound at the bind
// point. False for an empty set and for slots beyond the stage's count.
func (c *ResourceCache) IsCBBound(bp BindPoints) bool {
	if bp.IsEmpty() {
		return false
	}
	stage := bp.Stages().First()
	slot := bp.Slot(stage)
	descs, _ := c.stageCBs(stage)
	return int(slot) < len(descs) && descs[slot].IsBound()
}

// IsSamplerBound reports whether a sampler is bound at the bind point.
func (c *ResourceCache) IsSamplerBound(bp BindPoints) bool {
	if bp.IsEmpty() {
		return false
	}
	stage := bp.Stages().First()
	slot := bp.Slot(stage)
	descs, _ := c.stageSamplers(stage)
	return int(slot) < len(descs) && descs[slot].IsBound()
}

// IsSRVBound reports whether a shader resource view is bound at the
// bind point.
func (c *ResourceCache) IsSRVBound(bp BindPoints) bool {
	if bp.IsEmpty() {
		return false
	}
	stage := bp.Stages().First()
	slot := bp.Slot(stage)
	descs, _ := c.stageSRVs(stage)
	return int(slot) < len(descs) && descs[slot].IsBound()
}

// IsUAVBound reports whether an unordered access view is bound at the
// bind point.
func (c *ResourceCache) IsUAVBound(bp BindPoints) bool {
	if bp.IsEmpty() {
		return false
	}
	stage := bp.Stages().First()
	slot := bp.Slot(stage)
	descs, _ := c.stageUAVs(stage)
	return int(slot) < len(descs) && descs[slot].IsBound()
}

func (c *ResourceCache) verifyCBStages(bp BindPoints, want CachedCB, wantHandle native.Buffer) {
	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		descs, handles := c.stageCBs(stage)
		c.checkSlot(RangeCB, stage, slot, len(descs))
		if descs[slot] != want || handles[slot] != wantHandle {
			panic(fmt.Sprintf("d3d11: inconsistent constant buffer across stages of bind points %s", bp))
		}
	}
}

func (c *ResourceCache) verifySamplerStages(bp BindPoints, want CachedSampler, wantHandle native.SamplerState) {
	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		descs, handles := c.stageSamplers(stage)
		c.checkSlot(RangeSampler, stage, slot, len(descs))
		if descs[slot] != want || handles[slot] != wantHandle {
			panic(fmt.Sprintf("d3d11: inconsistent sampler across stages of bind points %s", bp))
		}
	}
}

// verifyViewStages checks cross-stage identity for srv and uav slots.
// stageSlots is one of the stage accessor methods, so one body serves
// both handle types.
func verifyViewStages[H comparable](stageSlots func(ShaderStage) ([]CachedView, []H), bp BindPoints, want CachedView, wantHandle H) {
	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		descs, handles := stageSlots(stage)
		if int(slot) >= len(descs) {
			panic(fmt.Sprintf("d3d11: view slot %d out of range for %s (stage has %d slots)", slot, stage, len(descs)))
		}
		if descs[slot] != want || handles[slot] != wantHandle {
			panic(fmt.Sprintf("d3d11: inconsistent view across stages of bind points %s", bp))
		}
	}
}
