package d3d11

// MinMaxSlot accumulates the inclusive range of slots touched by a bind
// pass. A freshly created accumulator is invalid (Min > Max); it becomes
// valid after the first Add. The consumer issues one backend call
// covering [Min, Max] when the range is valid and skips the call
// entirely when it is not.
type MinMaxSlot struct {
	Min uint32
	Max uint32
}

// NewMinMaxSlot returns an empty accumulator.
func NewMinMaxSlot() MinMaxSlot {
	return MinMaxSlot{Min: ^uint32(0), Max: 0}
}

// Add extends the range to include slot.
func (mm *MinMaxSlot) Add(slot uint32) {
	if slot < mm.Min {
		mm.Min = slot
	}
	if slot > mm.Max {
		mm.Max = slot
	}
}

// IsValid reports whether any slot was added.
func (mm MinMaxSlot) IsValid() bool {
	return mm.Min <= mm.Max
}

// SlotCount returns the width of the range, or zero when the range is
// invalid.
func (mm MinMaxSlot) SlotCount() uint32 {
	if !mm.IsValid() {
		return 0
	}
	return mm.Max - mm.Min + 1
}
