// Package d3d11 provides the shader resource binding cache of a
// Direct3D 11 rendering backend.
//
// # Overview
//
// A ResourceCache holds, for every shader stage, the constant buffers,
// shader resource views, samplers and unordered access views bound to
// each slot of one pipeline resource signature or shader resource
// binding. The cache stores parallel descriptor and native handle
// arrays in a layout fixed at initialization, diffs itself against the
// state a DeviceContext has committed, and reports the minimal slot
// ranges a backend call has to cover.
//
// # Quick Start
//
//	import "github.com/gogpu/d3d11"
//
//	var counters d3d11.ResourceCounters
//	counters.Set(d3d11.RangeCB, d3d11.StageVertex, 1)
//
//	cache := d3d11.NewResourceCache(d3d11.ContentSRB)
//	cache.Initialize(counters, [d3d11.NumShaderStages]uint16{})
//	defer cache.Destroy()
//
//	bp := d3d11.BindPoints{}.WithSlot(d3d11.StageVertex, 0)
//	cache.SetCB(bp, constants, 0, 0)
//
//	ctx := d3d11.NewDeviceContext("main")
//	ctx.CommitResources(cache, &d3d11.ResourceCounters{})
//
// # Architecture
//
// The package is organized around a few cooperating pieces:
//   - ResourceCache: packed slot storage, setters, diff-and-bind,
//     cache-to-cache copy, state transition walks
//   - DeviceContext: committed state arrays and the transition and
//     verification primitives
//   - Device objects: Buffer, Texture, views and Sampler with
//     reference counts and native handles
//   - signature/: turns per-stage resource declarations into the slot
//     counts, bind points and dynamic masks a cache is built from
//
// # Dynamic Offsets
//
// Constant buffer slots marked dynamic-eligible at initialization can
// shift their byte window every draw with SetDynamicCBOffset without
// rebinding; CommitDynamicCBs then patches exactly the slots whose
// windows moved.
//
// # Error Handling
//
// Violated preconditions (misaligned offsets, out-of-range slots,
// double initialization) are programming errors and panic. An unbound
// slot, an empty bind point set or a no-op diff are ordinary states,
// reported through zero values and invalid ranges, never as errors.
//
// # Thread Safety
//
// A cache and a context belong to one recording goroutine at a time
// and have no internal locking. SamplerPool and the package logger are
// safe for concurrent use.
package d3d11

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version number
	VersionMajor = 0

	// VersionMinor is the minor version number
	VersionMinor = 3

	// VersionPatch is the patch version number
	VersionPatch = 0
)
