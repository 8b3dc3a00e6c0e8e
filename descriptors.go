package d3d11

import "github.com/gogpu/d3d11/native"

// Size of one constant, and the granularity of constant counts, in the
// partial constant buffer binding model. Offsets into a constant buffer
// are expressed to the runtime as a first constant and a constant
// count; both are in units of cbConstantSize bytes and the count must
// be a multiple of cbConstantAlignment constants.
const (
	cbConstantSize      = 16
	cbConstantAlignment = 16
)

// CachedCB is the cached descriptor of one constant buffer slot.
//
// BaseOffset and RangeSize select a byte window into the buffer, fixed
// at bind time. DynamicOffset shifts the window start without rebinding
// and is reset to zero whenever the slot is written. All three are kept
// denormalized here so the bind path never dereferences the buffer
// object.
type CachedCB struct {
	// Buffer is the bound buffer. The cache owns one reference per
	// slot holding it; nil means the slot is empty.
	Buffer *Buffer

	// BaseOffset is the window start in bytes. Always a multiple of
	// CBOffsetAlignment.
	BaseOffset uint32

	// RangeSize is the window size in bytes. A bound slot always has a
	// non-zero RangeSize; the zero-size shorthand of SetCB is resolved
	// before the descriptor is stored.
	RangeSize uint32

	// DynamicOffset is added to BaseOffset to position the active
	// window. Only slots whose dynamic-eligibility bit is set ever
	// carry a non-zero value.
	DynamicOffset uint32
}

// IsBound reports whether the slot holds a buffer.
func (cb *CachedCB) IsBound() bool {
	return cb.Buffer != nil
}

// AllowsDynamicOffset reports whether the bound window may be shifted
// with SetDynamicCBOffset: the slot is bound and the window is a proper
// sub-range of the buffer. A window covering the whole buffer has
// nowhere to shift to, so it does not count.
func (cb *CachedCB) AllowsDynamicOffset() bool {
	return cb.Buffer != nil && cb.RangeSize != 0 && uint64(cb.RangeSize) < cb.Buffer.Size()
}

// constantRange converts the active window into the first-constant and
// constant-count pair the runtime binds with. Both are in 16-byte
// constants; the count is rounded up to the required granularity.
// An empty slot yields (0, 0).
func (cb *CachedCB) constantRange() (first, num uint32) {
	if cb.Buffer == nil {
		return 0, 0
	}
	first = (cb.BaseOffset + cb.DynamicOffset) / cbConstantSize
	num = alignUp(cb.RangeSize/cbConstantSize, cbConstantAlignment)
	return first, num
}

// alignUp rounds v up to the next multiple of a. a must be a power of
// two.
func alignUp(v, a uint32) uint32 {
	return (v + a - 1) &^ (a - 1)
}

// CachedSampler is the cached descriptor of one sampler slot. The
// reference is non-owning: samplers are interned and outlive every
// cache that points at them.
type CachedSampler struct {
	Sampler *Sampler
}

// IsBound reports whether the slot holds a sampler.
func (cs *CachedSampler) IsBound() bool {
	return cs.Sampler != nil
}

// CachedView is the cached descriptor of one shader resource view or
// unordered access view slot.
//
// Texture, Buffer and Resource are denormalized lookups captured from
// the view at bind time and never mutated independently: exactly one of
// Texture and Buffer is non-nil while the slot is bound, and Resource
// is the native resource backing the view, kept so transition and bind
// walks never call back into the view object.
type CachedView struct {
	// View is the bound view object. The cache owns one reference per
	// slot holding it; nil means the slot is empty.
	View DeviceObject

	// Texture is the parent texture for texture views, nil otherwise.
	Texture *Texture

	// Buffer is the parent buffer for buffer views, nil otherwise.
	Buffer *Buffer

	// Resource is the native resource backing the view.
	Resource native.Resource
}

// IsBound reports whether the slot holds a view.
func (cv *CachedView) IsBound() bool {
	return cv.View != nil
}
