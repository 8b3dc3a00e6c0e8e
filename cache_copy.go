package d3d11

import (
	"fmt"
	"math/bits"
)

// The copy operations adopt bindings from another cache with an
// equivalent layout, one bind point at a time. A shader resource
// binding seeded from its signature's static bindings uses these to
// pull the signature's slots over. Each returns whether the source slot
// was bound in every active stage, which callers use to detect
// incomplete bindings before issuing draws; copying an unbound source
// slot is itself valid and clears the destination.

// CopyCB copies the constant buffer at the bind points from src,
// taking a reference per stage slot and recomputing the destination's
// dynamic-offsets-needed bit. The copied descriptor keeps the source's
// dynamic offset.
func (c *ResourceCache) CopyCB(src *ResourceCache, bp BindPoints) bool {
	allBound := true
	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		srcDescs, srcHandles := src.stageCBs(stage)
		dstDescs, dstHandles := c.stageCBs(stage)
		src.checkSlot(RangeCB, stage, slot, len(srcDescs))
		c.checkSlot(RangeCB, stage, slot, len(dstDescs))

		desc := srcDescs[slot]
		if desc.Buffer != nil {
			desc.Buffer.AddRef()
		} else {
			allBound = false
		}
		prev := dstDescs[slot].Buffer
		dstDescs[slot] = desc
		dstHandles[slot] = srcHandles[slot]
		if prev != nil {
			prev.Release()
		}

		c.updateDynamicCBFlag(stage, slot, &dstDescs[slot])
	}
	return allBound
}

// CopySampler copies the sampler at the bind points from src. Samplers
// are held without a reference, so only the descriptor and handle move.
func (c *ResourceCache) CopySampler(src *ResourceCache, bp BindPoints) bool {
	allBound := true
	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		srcDescs, srcHandles := src.stageSamplers(stage)
		dstDescs, dstHandles := c.stageSamplers(stage)
		src.checkSlot(RangeSampler, stage, slot, len(srcDescs))
		c.checkSlot(RangeSampler, stage, slot, len(dstDescs))

		if !srcDescs[slot].IsBound() {
			allBound = false
		}
		dstDescs[slot] = srcDescs[slot]
		dstHandles[slot] = srcHandles[slot]
	}
	return allBound
}

// CopySRV copies the shader resource view at the bind points from src,
// taking a reference per stage slot.
func (c *ResourceCache) CopySRV(src *ResourceCache, bp BindPoints) bool {
	allBound := true
	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		srcDescs, srcHandles := src.stageSRVs(stage)
		dstDescs, dstHandles := c.stageSRVs(stage)
		src.checkSlot(RangeSRV, stage, slot, len(srcDescs))
		c.checkSlot(RangeSRV, stage, slot, len(dstDescs))

		if !srcDescs[slot].IsBound() {
			allBound = false
		}
		storeView(dstDescs, dstHandles, slot, srcDescs[slot], srcHandles[slot])
	}
	return allBound
}

// CopyUAV copies the unordered access view at the bind points from src,
// taking a reference per stage slot.
func (c *ResourceCache) CopyUAV(src *ResourceCache, bp BindPoints) bool {
	allBound := true
	for m := uint8(bp.Stages()); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		slot := bp.Slot(stage)
		srcDescs, srcHandles := src.stageUAVs(stage)
		dstDescs, dstHandles := c.stageUAVs(stage)
		src.checkSlot(RangeUAV, stage, slot, len(srcDescs))
		c.checkSlot(RangeUAV, stage, slot, len(dstDescs))

		if !srcDescs[slot].IsBound() {
			allBound = false
		}
		storeView(dstDescs, dstHandles, slot, srcDescs[slot], srcHandles[slot])
	}
	return allBound
}

// CopyResources copies every slot of every range from src for all
// stages the two caches have in common, requiring identical layouts.
// A shader resource binding calls this once right after initialization
// to adopt its signature's static bindings wholesale.
func (c *ResourceCache) CopyResources(src *ResourceCache) {
	if c.offsets != src.offsets {
		panic(fmt.Sprintf("d3d11: copying between caches with different layouts (%s vs %s)",
			c.contentType, src.contentType))
	}

	for s := ShaderStage(0); s < NumShaderStages; s++ {
		srcCBs, srcCBHandles := src.stageCBs(s)
		dstCBs, dstCBHandles := c.stageCBs(s)
		for i := range srcCBs {
			desc := srcCBs[i]
			if desc.Buffer != nil {
				desc.Buffer.AddRef()
			}
			prev := dstCBs[i].Buffer
			dstCBs[i] = desc
			dstCBHandles[i] = srcCBHandles[i]
			if prev != nil {
				prev.Release()
			}
			c.updateDynamicCBFlag(s, uint8(i), &dstCBs[i])
		}

		srcSRVs, srcSRVHandles := src.stageSRVs(s)
		dstSRVs, dstSRVHandles := c.stageSRVs(s)
		for i := range srcSRVs {
			storeView(dstSRVs, dstSRVHandles, uint8(i), srcSRVs[i], srcSRVHandles[i])
		}

		srcSamplers, srcSamplerHandles := src.stageSamplers(s)
		dstSamplers, dstSamplerHandles := c.stageSamplers(s)
		copy(dstSamplers, srcSamplers)
		copy(dstSamplerHandles, srcSamplerHandles)

		srcUAVs, srcUAVHandles := src.stageUAVs(s)
		dstUAVs, dstUAVHandles := c.stageUAVs(s)
		for i := range srcUAVs {
			storeView(dstUAVs, dstUAVHandles, uint8(i), srcUAVs[i], srcUAVHandles[i])
		}
	}
}
