package d3d11

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/d3d11/native"
)

// SetCB binds a constant buffer, or a byte window into one, to every
// active stage of the bind point set. Passing a nil buffer unbinds the
// slots.
//
// offset and size select the window. offset must be a multiple of
// CBOffsetAlignment and offset+size must not exceed the buffer size;
// violations are programming errors and panic. A size of zero selects
// the remainder of the buffer after offset.
//
// Rebinding a slot resets its dynamic offset to zero and releases the
// reference to the previously bound buffer. The slot's
// dynamic-offsets-needed bit is recomputed from the new window.
func (c *ResourceCache) SetCB(bp BindPoints, buffer *Buffer, offset, size uint32) {
	if buffer != nil {
		if offset%CBOffsetAlignment != 0 {
			panic(fmt.Sprintf("d3d11: constant buffer offset %d is not a multiple of %d", offset, CBOffsetAlignment))
		}
		if uint64(offset)+uint64(size) > buffer.Size() {
			panic(fmt.Sprintf("d3d11: constant buffer window [%d, %d) exceeds the size (%d) of buffer %q",
				offset, offset+size, buffer.Size(), buffer.Name()))
		}
		if size == 0 {
			size = uint32(buffer.Size()) - offset
		}
	} else {
		offset, size = 0, 0
	}

	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		descs, handles := c.stageCBs(stage)
		c.checkSlot(RangeCB, stage, slot, len(descs))

		if buffer != nil {
			buffer.AddRef()
			handles[slot] = buffer.Native()
		} else {
			handles[slot] = 0
		}
		prev := descs[slot].Buffer
		descs[slot] = CachedCB{Buffer: buffer, BaseOffset: offset, RangeSize: size}
		if prev != nil {
			prev.Release()
		}

		c.updateDynamicCBFlag(stage, slot, &descs[slot])
	}
}

// SetSampler binds a sampler to every active stage of the bind point
// set, or unbinds with nil. The cache does not take a reference;
// samplers are expected to be interned and outlive the cache.
func (c *ResourceCache) SetSampler(bp BindPoints, sampler *Sampler) {
	var handle native.SamplerState
	if sampler != nil {
		handle = sampler.Native()
	}
	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		descs, handles := c.stageSamplers(stage)
		c.checkSlot(RangeSampler, stage, slot, len(descs))
		descs[slot] = CachedSampler{Sampler: sampler}
		handles[slot] = handle
	}
}

// SetTexSRV binds a texture's shader resource view to every active
// stage of the bind point set, or unbinds with nil. The view must be of
// kind ViewShaderResource.
func (c *ResourceCache) SetTexSRV(bp BindPoints, view *TextureView) {
	var desc CachedView
	var handle native.ShaderResourceView
	if view != nil {
		handle = view.SRV()
		desc = CachedView{View: view, Texture: view.Texture(), Resource: view.Texture().Native()}
	}
	c.setSRV(bp, desc, handle)
}

// SetBufSRV binds a buffer's shader resource view to every active stage
// of the bind point set, or unbinds with nil. The view must be of kind
// ViewShaderResource.
func (c *ResourceCache) SetBufSRV(bp BindPoints, view *BufferView) {
	var desc CachedView
	var handle native.ShaderResourceView
	if view != nil {
		handle = view.SRV()
		desc = CachedView{View: view, Buffer: view.Buffer(), Resource: view.Buffer().NativeResource()}
	}
	c.setSRV(bp, desc, handle)
}

// SetTexUAV binds a texture's unordered access view to every active
// stage of the bind point set, or unbinds with nil. The view must be of
// kind ViewUnorderedAccess.
func (c *ResourceCache) SetTexUAV(bp BindPoints, view *TextureView) {
	var desc CachedView
	var handle native.UnorderedAccessView
	if view != nil {
		handle = view.UAV()
		desc = CachedView{View: view, Texture: view.Texture(), Resource: view.Texture().Native()}
	}
	c.setUAV(bp, desc, handle)
}

// SetBufUAV binds a buffer's unordered access view to every active
// stage of the bind point set, or unbinds with nil. The view must be of
// kind ViewUnorderedAccess.
func (c *ResourceCache) SetBufUAV(bp BindPoints, view *BufferView) {
	var desc CachedView
	var handle native.UnorderedAccessView
	if view != nil {
		handle = view.UAV()
		desc = CachedView{View: view, Buffer: view.Buffer(), Resource: view.Buffer().NativeResource()}
	}
	c.setUAV(bp, desc, handle)
}

func (c *ResourceCache) setSRV(bp BindPoints, desc CachedView, handle native.ShaderResourceView) {
	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		descs, handles := c.stageSRVs(stage)
		c.checkSlot(RangeSRV, stage, slot, len(descs))
		storeView(descs, handles, slot, desc, handle)
	}
}

func (c *ResourceCache) setUAV(bp BindPoints, desc CachedView, handle native.UnorderedAccessView) {
	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		descs, handles := c.stageUAVs(stage)
		c.checkSlot(RangeUAV, stage, slot, len(descs))
		storeView(descs, handles, slot, desc, handle)
	}
}

// storeView writes a view descriptor and its native handle into one
// slot. The new view is referenced before the old one is released, so
// rebinding a slot to the view it already holds never drops the count
// to zero in between.
func storeView[H comparable](descs []CachedView, handles []H, slot uint8, desc CachedView, handle H) {
	if desc.View != nil {
		desc.View.AddRef()
	}
	prev := descs[slot].View
	descs[slot] = desc
	handles[slot] = handle
	if prev != nil {
		prev.Release()
	}
}

// SetDynamicCBOffset shifts the window of the constant buffer bound at
// the bind point by writing its dynamic offset. Only the offset
// changes; buffer, base offset and range stay as SetCB left them.
//
// Every targeted slot must have been marked dynamic-eligible at
// Initialize; targeting any other slot is a programming error and
// panics. The offset must keep the window inside the buffer and, like
// base offsets, be a multiple of CBOffsetAlignment; debug builds check
// both, release builds trust the caller.
func (c *ResourceCache) SetDynamicCBOffset(bp BindPoints, offset uint32) {
	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		descs, _ := c.stageCBs(stage)
		c.checkSlot(RangeCB, stage, slot, len(descs))
		if c.dynamicCBSlotsMask[stage]&(1<<slot) == 0 {
			panic(fmt.Sprintf("d3d11: cb slot %d of %s does not allow dynamic offsets", slot, stage))
		}

		cb := &descs[slot]
		if debugChecks {
			if cb.Buffer == nil {
				panic(fmt.Sprintf("d3d11: dynamic offset set on unbound cb slot %d of %s", slot, stage))
			}
			if offset%CBOffsetAlignment != 0 {
				panic(fmt.Sprintf("d3d11: dynamic offset %d is not a multiple of %d", offset, CBOffsetAlignment))
			}
			if end := uint64(cb.BaseOffset) + uint64(offset) + uint64(cb.RangeSize); end > cb.Buffer.Size() {
				panic(fmt.Sprintf("d3d11: dynamic offset %d pushes window past the size (%d) of buffer %q",
					offset, cb.Buffer.Size(), cb.Buffer.Name()))
			}
		}
		cb.DynamicOffset = offset
	}
}

// updateDynamicCBFlag recomputes a slot's dynamic-offsets-needed bit
// after the slot was written. Only constant buffer slots participate in
// dynamic offset tracking; the other ranges never touch the masks.
func (c *ResourceCache) updateDynamicCBFlag(stage ShaderStage, slot uint8, cb *CachedCB) {
	bit := uint16(1) << slot
	if c.dynamicCBSlotsMask[stage]&bit != 0 {
		if cb.AllowsDynamicOffset() {
			c.dynamicCBOffsetsMask[stage] |= bit
		} else {
			c.dynamicCBOffsetsMask[stage] &^= bit
		}
	} else if debugChecks && c.dynamicCBOffsetsMask[stage]&bit != 0 {
		panic(fmt.Sprintf("d3d11: dynamic offsets bit set for non-eligible cb slot %d of %s", slot, stage))
	}
}
