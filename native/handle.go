// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native defines handle types for objects owned by the underlying
// Direct3D 11 runtime.
//
// A handle is an opaque pointer-sized value identifying one native object
// (a buffer, a view, a sampler state). Handles are plain comparable values:
// two handles are equal exactly when they identify the same native object,
// and the zero value always means "no object". The package performs no
// lifetime management; ownership is tracked by the device objects that
// carry these handles.
package native

// Resource identifies a native resource (the common base of buffers and
// textures). Views cache the Resource backing them so binding code never
// has to query it per call.
type Resource uintptr

// Buffer identifies a native buffer object.
type Buffer uintptr

// ShaderResourceView identifies a native shader resource view.
type ShaderResourceView uintptr

// UnorderedAccessView identifies a native unordered access view.
type UnorderedAccessView uintptr

// SamplerState identifies a native sampler state object.
type SamplerState uintptr

// View identifies a native view of either flavor. Device objects store
// their view handle as View; binding code converts to the typed handle
// once the view kind is known.
type View uintptr

// IsNil reports whether r identifies no object.
func (r Resource) IsNil() bool { return r == 0 }

// IsNil reports whether b identifies no object.
func (b Buffer) IsNil() bool { return b == 0 }

// IsNil reports whether v identifies no object.
func (v ShaderResourceView) IsNil() bool { return v == 0 }

// IsNil reports whether v identifies no object.
func (v UnorderedAccessView) IsNil() bool { return v == 0 }

// IsNil reports whether s identifies no object.
func (s SamplerState) IsNil() bool { return s == 0 }

// IsNil reports whether v identifies no object.
func (v View) IsNil() bool { return v == 0 }
