package d3d11

import (
	"fmt"
	"strings"
)

// ResourceCounters holds a per-stage slot count for every resource
// range. A signature produces one to size a cache; the same type also
// serves as the per-stage base binding offsets when several signatures
// share a pipeline, since the slots of one signature start right after
// the slots of the previous one.
type ResourceCounters [NumResourceRanges][NumShaderStages]uint8

// Get returns the count for one range and stage.
func (c *ResourceCounters) Get(r ResourceRange, s ShaderStage) uint8 {
	return c[r][s]
}

// Set stores the count for one range and stage. The count must not
// exceed the range's per-stage slot limit.
func (c *ResourceCounters) Set(r ResourceRange, s ShaderStage, n uint8) {
	if int(n) > r.MaxSlots() {
		panic(fmt.Sprintf("d3d11: %d %s slots requested for %s, limit is %d", n, r, s, r.MaxSlots()))
	}
	c[r][s] = n
}

// Add accumulates other into c, range by range and stage by stage.
// Used to build base binding offsets across a chain of signatures.
// Panics if any resulting count exceeds the range's slot limit.
func (c *ResourceCounters) Add(other *ResourceCounters) {
	for r := range c {
		for s := range c[r] {
			sum := int(c[r][s]) + int(other[r][s])
			if sum > ResourceRange(r).MaxSlots() {
				panic(fmt.Sprintf("d3d11: combined %s slot count %d for %s exceeds limit %d",
					ResourceRange(r), sum, ShaderStage(s), ResourceRange(r).MaxSlots()))
			}
			c[r][s] = uint8(sum)
		}
	}
}

// IsEmpty reports whether every count is zero.
func (c *ResourceCounters) IsEmpty() bool {
	return *c == ResourceCounters{}
}

// String lists the non-zero counts, e.g. "cb[VS]=2 srv[PS]=4".
func (c *ResourceCounters) String() string {
	var b strings.Builder
	for r := range c {
		for s := range c[r] {
			if c[r][s] == 0 {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s[%s]=%d", ResourceRange(r), ShaderStage(s), c[r][s])
		}
	}
	if b.Len() == 0 {
		return "empty"
	}
	return b.String()
}
