package d3d11

import (
	"fmt"
	"math/bits"
	"strings"
)

// InvalidBindPoint is the slot value reported for stages a bind point
// set does not cover.
const InvalidBindPoint = 0xFF

// BindPoints addresses one logical resource across every shader stage
// it is visible in: a set of active stages plus one slot index per
// active stage. The zero value is the empty set.
//
// BindPoints is a small value type; WithSlot returns a modified copy so
// sets can be built up in a chain:
//
//	bp := d3d11.BindPoints{}.
//		WithSlot(d3d11.StageVertex, 0).
//		WithSlot(d3d11.StagePixel, 2)
type BindPoints struct {
	stages ShaderStages
	// Slot plus one per stage; zero marks an inactive stage so that the
	// zero value of BindPoints needs no constructor.
	slots [NumShaderStages]uint8
}

// WithSlot returns a copy of bp with the given stage active at the
// given slot. Slot must be below InvalidBindPoint.
func (bp BindPoints) WithSlot(stage ShaderStage, slot uint8) BindPoints {
	if int(stage) >= NumShaderStages {
		panic(fmt.Sprintf("d3d11: invalid shader stage %d", uint8(stage)))
	}
	if slot >= InvalidBindPoint {
		panic(fmt.Sprintf("d3d11: bind point slot %d out of range", slot))
	}
	bp.stages |= stage.Flag()
	bp.slots[stage] = slot + 1
	return bp
}

// Stages returns the set of active stages.
func (bp BindPoints) Stages() ShaderStages {
	return bp.stages
}

// IsEmpty reports whether no stage is active.
func (bp BindPoints) IsEmpty() bool {
	return bp.stages == 0
}

// Slot returns the slot index for a stage, or InvalidBindPoint if the
// stage is not active in this set.
func (bp BindPoints) Slot(stage ShaderStage) uint8 {
	if int(stage) >= NumShaderStages || bp.slots[stage] == 0 {
		return InvalidBindPoint
	}
	return bp.slots[stage] - 1
}

// String renders the active bind points, e.g. "VS:0 PS:2".
func (bp BindPoints) String() string {
	if bp.IsEmpty() {
		return "empty"
	}
	var b strings.Builder
	for m := uint8(bp.stages); m != 0; m &= m - 1 {
		stage := ShaderStage(bits.TrailingZeros8(m))
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s:%d", stage, bp.Slot(stage))
	}
	return b.String()
}
