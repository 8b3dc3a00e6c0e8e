package d3d11

import "fmt"

// ResourceRange classifies a binding slot by the kind of resource it
// holds. The numeric order (constant buffers, shader resource views,
// samplers, unordered access views) matches the layout order of the
// cache and must not change.
type ResourceRange uint8

const (
	RangeCB ResourceRange = iota
	RangeSRV
	RangeSampler
	RangeUAV

	// NumResourceRanges is the number of distinct resource ranges.
	NumResourceRanges = 4
)

// Per-stage slot limits of the Direct3D 11 binding model.
const (
	// MaxCBCount is the number of constant buffer slots per stage.
	MaxCBCount = 14

	// MaxSRVCount is the number of shader resource view slots per stage.
	MaxSRVCount = 128

	// MaxSamplerCount is the number of sampler slots per stage.
	MaxSamplerCount = 16

	// MaxUAVCount is the number of unordered access view slots.
	MaxUAVCount = 8
)

// CBOffsetAlignment is the required alignment, in bytes, of a constant
// buffer base or dynamic offset.
const CBOffsetAlignment = 256

var rangeNames = [NumResourceRanges]string{"cb", "srv", "sampler", "uav"}

// String returns the short lowercase tag of the range ("cb", "srv",
// "sampler", "uav").
func (r ResourceRange) String() string {
	if int(r) >= NumResourceRanges {
		return fmt.Sprintf("range(%d)", uint8(r))
	}
	return rangeNames[r]
}

// MaxSlots returns the per-stage slot limit for the range.
func (r ResourceRange) MaxSlots() int {
	switch r {
	case RangeCB:
		return MaxCBCount
	case RangeSRV:
		return MaxSRVCount
	case RangeSampler:
		return MaxSamplerCount
	case RangeUAV:
		return MaxUAVCount
	}
	return 0
}

// RequiredState returns the resource state a bound resource of this
// range must be in before it is used. Samplers have no state and return
// StateUnknown.
func (r ResourceRange) RequiredState() ResourceState {
	switch r {
	case RangeCB:
		return StateConstantBuffer
	case RangeSRV:
		return StateShaderResource
	case RangeUAV:
		return StateUnorderedAccess
	}
	return StateUnknown
}

// MarshalText implements encoding.TextMarshaler using the String form.
func (r ResourceRange) MarshalText() ([]byte, error) {
	if int(r) >= NumResourceRanges {
		return nil, fmt.Errorf("d3d11: invalid resource range %d", uint8(r))
	}
	return []byte(rangeNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the tags
// String produces.
func (r *ResourceRange) UnmarshalText(text []byte) error {
	for i, name := range rangeNames {
		if string(text) == name {
			*r = ResourceRange(i)
			return nil
		}
	}
	return fmt.Errorf("d3d11: unknown resource range %q", text)
}
