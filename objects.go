package d3d11

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/google/uuid"

	"github.com/gogpu/d3d11/native"
)

// DeviceObject is implemented by every reference-counted engine object
// a cache can hold: buffers, textures and their views. Samplers also
// implement it, although the cache itself holds samplers without taking
// a reference.
type DeviceObject interface {
	// ID returns the unique identity of the object.
	ID() uuid.UUID

	// Name returns the debug name given at creation.
	Name() string

	// AddRef increments the reference count and returns the new count.
	AddRef() int32

	// Release decrements the reference count and returns the new count.
	// Releasing below zero is a programming error and panics.
	Release() int32
}

// object carries the identity and reference count shared by all device
// objects. Objects start with one reference owned by the creator.
type object struct {
	name string
	id   uuid.UUID
	refs atomic.Int32
}

func (o *object) init(name string) {
	o.name = name
	o.id = uuid.New()
	o.refs.Store(1)
}

// Name returns the debug name given at creation.
func (o *object) Name() string { return o.name }

// ID returns the unique identity of the object.
func (o *object) ID() uuid.UUID { return o.id }

// AddRef increments the reference count and returns the new count.
func (o *object) AddRef() int32 { return o.refs.Add(1) }

// Release decrements the reference count and returns the new count.
func (o *object) Release() int32 {
	n := o.refs.Add(-1)
	if n < 0 {
		panic(fmt.Sprintf("d3d11: object %q released more times than referenced", o.name))
	}
	return n
}

// RefCount returns the current reference count.
func (o *object) RefCount() int32 { return o.refs.Load() }

// Buffer is an engine buffer object wrapping a native buffer.
type Buffer struct {
	object
	size   uint64
	usage  gputypes.BufferUsage
	state  ResourceState
	native native.Buffer
}

// NewBuffer creates a buffer object for an existing native buffer.
// The returned buffer holds one reference owned by the caller and
// starts in StateUndefined.
func NewBuffer(name string, size uint64, usage gputypes.BufferUsage, handle native.Buffer) *Buffer {
	b := &Buffer{size: size, usage: usage, state: StateUndefined, native: handle}
	b.init(name)
	return b
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() uint64 { return b.size }

// Usage returns the usage flags given at creation.
func (b *Buffer) Usage() gputypes.BufferUsage { return b.usage }

// Native returns the native buffer handle.
func (b *Buffer) Native() native.Buffer { return b.native }

// NativeResource returns the buffer as a generic native resource.
func (b *Buffer) NativeResource() native.Resource { return native.Resource(b.native) }

// State returns the tracked resource state.
func (b *Buffer) State() ResourceState { return b.state }

// SetState replaces the tracked resource state. Pass StateUnknown to
// hand state tracking over to the application.
func (b *Buffer) SetState(s ResourceState) { b.state = s }

// Texture is an engine texture object wrapping a native texture
// resource.
type Texture struct {
	object
	format gputypes.TextureFormat
	dim    gputypes.TextureDimension
	size   gputypes.Extent3D
	usage  gputypes.TextureUsage
	state  ResourceState
	native native.Resource
}

// NewTexture creates a texture object for an existing native texture.
// The returned texture holds one reference owned by the caller and
// starts in StateUndefined.
func NewTexture(name string, format gputypes.TextureFormat, dim gputypes.TextureDimension,
	size gputypes.Extent3D, usage gputypes.TextureUsage, handle native.Resource) *Texture {
	t := &Texture{format: format, dim: dim, size: size, usage: usage, state: StateUndefined, native: handle}
	t.init(name)
	return t
}

// Format returns the texture format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Dimension returns the texture dimensionality.
func (t *Texture) Dimension() gputypes.TextureDimension { return t.dim }

// Extent returns the texture extent.
func (t *Texture) Extent() gputypes.Extent3D { return t.size }

// Usage returns the usage flags given at creation.
func (t *Texture) Usage() gputypes.TextureUsage { return t.usage }

// Native returns the native resource handle.
func (t *Texture) Native() native.Resource { return t.native }

// State returns the tracked resource state.
func (t *Texture) State() ResourceState { return t.state }

// SetState replaces the tracked resource state. Pass StateUnknown to
// hand state tracking over to the application.
func (t *Texture) SetState(s ResourceState) { t.state = s }

// ViewKind tells whether a view grants read-only (shader resource) or
// read-write (unordered access) access to its resource.
type ViewKind uint8

const (
	ViewShaderResource ViewKind = iota
	ViewUnorderedAccess
)

// String returns "srv" or "uav".
func (k ViewKind) String() string {
	switch k {
	case ViewShaderResource:
		return "srv"
	case ViewUnorderedAccess:
		return "uav"
	}
	return fmt.Sprintf("view(%d)", uint8(k))
}

// TextureView is a shader resource or unordered access view of a
// texture. The view keeps a plain pointer to its parent; the parent
// must outlive the view.
type TextureView struct {
	object
	texture *Texture
	kind    ViewKind
	view    native.View
}

// NewTextureView creates a view object over an existing native view.
func NewTextureView(name string, texture *Texture, kind ViewKind, handle native.View) *TextureView {
	if texture == nil {
		panic("d3d11: texture view requires a parent texture")
	}
	v := &TextureView{texture: texture, kind: kind, view: handle}
	v.init(name)
	return v
}

// Texture returns the parent texture.
func (v *TextureView) Texture() *Texture { return v.texture }

// Kind returns the view kind.
func (v *TextureView) Kind() ViewKind { return v.kind }

// NativeView returns the untyped native view handle.
func (v *TextureView) NativeView() native.View { return v.view }

// SRV returns the typed shader resource view handle. The view must be
// of kind ViewShaderResource.
func (v *TextureView) SRV() native.ShaderResourceView {
	if v.kind != ViewShaderResource {
		panic(fmt.Sprintf("d3d11: texture view %q is a %s, not an srv", v.name, v.kind))
	}
	return native.ShaderResourceView(v.view)
}

// UAV returns the typed unordered access view handle. The view must be
// of kind ViewUnorderedAccess.
func (v *TextureView) UAV() native.UnorderedAccessView {
	if v.kind != ViewUnorderedAccess {
		panic(fmt.Sprintf("d3d11: texture view %q is a %s, not a uav", v.name, v.kind))
	}
	return native.UnorderedAccessView(v.view)
}

// BufferView is a shader resource or unordered access view of a buffer.
// The view keeps a plain pointer to its parent; the parent must outlive
// the view.
type BufferView struct {
	object
	buffer *Buffer
	kind   ViewKind
	view   native.View
}

// NewBufferView creates a view object over an existing native view.
func NewBufferView(name string, buffer *Buffer, kind ViewKind, handle native.View) *BufferView {
	if buffer == nil {
		panic("d3d11: buffer view requires a parent buffer")
	}
	v := &BufferView{buffer: buffer, kind: kind, view: handle}
	v.init(name)
	return v
}

// Buffer returns the parent buffer.
func (v *BufferView) Buffer() *Buffer { return v.buffer }

// Kind returns the view kind.
func (v *BufferView) Kind() ViewKind { return v.kind }

// NativeView returns the untyped native view handle.
func (v *BufferView) NativeView() native.View { return v.view }

// SRV returns the typed shader resource view handle. The view must be
// of kind ViewShaderResource.
func (v *BufferView) SRV() native.ShaderResourceView {
	if v.kind != ViewShaderResource {
		panic(fmt.Sprintf("d3d11: buffer view %q is a %s, not an srv", v.name, v.kind))
	}
	return native.ShaderResourceView(v.view)
}

// UAV returns the typed unordered access view handle. The view must be
// of kind ViewUnorderedAccess.
func (v *BufferView) UAV() native.UnorderedAccessView {
	if v.kind != ViewUnorderedAccess {
		panic(fmt.Sprintf("d3d11: buffer view %q is a %s, not a uav", v.name, v.kind))
	}
	return native.UnorderedAccessView(v.view)
}

// SamplerDesc describes an immutable sampler state. The zero value is a
// usable default (nearest filtering, repeat addressing). SamplerDesc is
// comparable and serves as the interning key of SamplerPool.
type SamplerDesc struct {
	MagFilter     gputypes.FilterMode
	MinFilter     gputypes.FilterMode
	MipmapFilter  gputypes.FilterMode
	AddressU      gputypes.AddressMode
	AddressV      gputypes.AddressMode
	AddressW      gputypes.AddressMode
	Compare       gputypes.CompareFunction
	MaxAnisotropy uint8
}

// Sampler is an immutable sampler state object. Caches reference
// samplers without taking ownership; a SamplerPool keeps interned
// samplers alive for as long as any cache may point at them.
type Sampler struct {
	object
	desc   SamplerDesc
	native native.SamplerState
}

// NewSampler creates a sampler object for an existing native sampler
// state.
func NewSampler(name string, desc SamplerDesc, handle native.SamplerState) *Sampler {
	s := &Sampler{desc: desc, native: handle}
	s.init(name)
	return s
}

// Desc returns the sampler description.
func (s *Sampler) Desc() SamplerDesc { return s.desc }

// Native returns the native sampler state handle.
func (s *Sampler) Native() native.SamplerState { return s.native }
