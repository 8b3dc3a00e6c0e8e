package d3d11

import (
	"math/bits"

	"github.com/gogpu/d3d11/native"
)

// The bind helpers diff one stage of the cache against the committed
// arrays a device context carries and patch the arrays in place. Slots
// are compared and written at base+i, where base is the stage's binding
// offset (non-zero when several signatures share the pipeline) and i is
// the cache slot. Every allocated slot takes part in the diff, bound or
// not, so unbinding propagates into the committed arrays like any other
// change. The returned range is the inclusive [Min, Max] of the
// committed slots actually rewritten; an invalid range means the arrays
// were already up to date.

// BindCBs diffs the stage's constant buffers against the committed
// buffer, first-constant and constant-count arrays. A slot counts as
// changed when any of the three differs, since shifting a window binds
// the same buffer with new constants.
func (c *ResourceCache) BindCBs(stage ShaderStage, committed []native.Buffer, firstConstants, numConstants []uint32, base uint32) MinMaxSlot {
	descs, handles := c.stageCBs(stage)
	mm := NewMinMaxSlot()
	for i := range descs {
		slot := base + uint32(i)
		first, num := descs[i].constantRange()
		if committed[slot] != handles[i] || firstConstants[slot] != first || numConstants[slot] != num {
			committed[slot] = handles[i]
			firstConstants[slot] = first
			numConstants[slot] = num
			mm.Add(slot)
		}
	}
	return mm
}

// BindSRVs diffs the stage's shader resource views against the
// committed view array, keeping the parallel array of underlying
// resources in step for state transition bookkeeping.
func (c *ResourceCache) BindSRVs(stage ShaderStage, committed []native.ShaderResourceView, committedResources []native.Resource, base uint32) MinMaxSlot {
	descs, handles := c.stageSRVs(stage)
	return bindViews(descs, handles, committed, committedResources, base)
}

// BindUAVs diffs the stage's unordered access views against the
// committed view array, keeping the parallel array of underlying
// resources in step for state transition bookkeeping.
func (c *ResourceCache) BindUAVs(stage ShaderStage, committed []native.UnorderedAccessView, committedResources []native.Resource, base uint32) MinMaxSlot {
	descs, handles := c.stageUAVs(stage)
	return bindViews(descs, handles, committed, committedResources, base)
}

// BindSamplers diffs the stage's samplers against the committed sampler
// array.
func (c *ResourceCache) BindSamplers(stage ShaderStage, committed []native.SamplerState, base uint32) MinMaxSlot {
	_, handles := c.stageSamplers(stage)
	mm := NewMinMaxSlot()
	for i := range handles {
		slot := base + uint32(i)
		if committed[slot] != handles[i] {
			committed[slot] = handles[i]
			mm.Add(slot)
		}
	}
	return mm
}

// bindViews is the shared srv/uav diff: the view handle decides whether
// a slot changed, and the underlying resource rides along.
func bindViews[H comparable](descs []CachedView, handles []H, committed []H, committedResources []native.Resource, base uint32) MinMaxSlot {
	mm := NewMinMaxSlot()
	for i := range descs {
		slot := base + uint32(i)
		if committed[slot] != handles[i] {
			committed[slot] = handles[i]
			committedResources[slot] = descs[i].Resource
			mm.Add(slot)
		}
	}
	return mm
}

// BindDynamicCBs re-diffs only the stage's slots whose
// dynamic-offsets-needed bit is set, recomputing the constant window
// from the current dynamic offset, and calls onChanged once per
// committed slot actually rewritten. Static slots are never visited, so
// the cost tracks the number of dynamic buffers, not the slot count.
//
// Bindings that change every draw flow through here; BindCBs remains
// the full diff for the rare full rebind.
func (c *ResourceCache) BindDynamicCBs(stage ShaderStage, committed []native.Buffer, firstConstants, numConstants []uint32, base uint32, onChanged func(slot uint32)) {
	descs, handles := c.stageCBs(stage)
	for mask := c.dynamicCBOffsetsMask[stage]; mask != 0; mask &= mask - 1 {
		i := bits.TrailingZeros16(mask)
		slot := base + uint32(i)
		first, num := descs[i].constantRange()
		if committed[slot] != handles[i] || firstConstants[slot] != first || numConstants[slot] != num {
			committed[slot] = handles[i]
			firstConstants[slot] = first
			numConstants[slot] = num
			if onChanged != nil {
				onChanged(slot)
			}
		}
	}
}
