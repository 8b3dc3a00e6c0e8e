package d3d11

import "strings"

// ResourceState describes the usage state of a buffer or texture as a
// set of flags. A resource may be in several read-only states at once
// (for example constant buffer and shader resource).
//
// StateUnknown means the state is not tracked by the engine; transition
// and verification walks skip such resources with a diagnostic.
type ResourceState uint32

// StateUnknown marks a resource whose state the engine does not track.
const StateUnknown ResourceState = 0

const (
	StateUndefined ResourceState = 1 << iota
	StateVertexBuffer
	StateConstantBuffer
	StateIndexBuffer
	StateRenderTarget
	StateUnorderedAccess
	StateDepthWrite
	StateDepthRead
	StateShaderResource
	StateCopyDst
	StateCopySrc
	StateResolveDst
	StateResolveSrc
	StatePresent
	StateCommon
)

var stateNames = []struct {
	state ResourceState
	name  string
}{
	{StateUndefined, "undefined"},
	{StateVertexBuffer, "vertex_buffer"},
	{StateConstantBuffer, "constant_buffer"},
	{StateIndexBuffer, "index_buffer"},
	{StateRenderTarget, "render_target"},
	{StateUnorderedAccess, "unordered_access"},
	{StateDepthWrite, "depth_write"},
	{StateDepthRead, "depth_read"},
	{StateShaderResource, "shader_resource"},
	{StateCopyDst, "copy_dst"},
	{StateCopySrc, "copy_src"},
	{StateResolveDst, "resolve_dst"},
	{StateResolveSrc, "resolve_src"},
	{StatePresent, "present"},
	{StateCommon, "common"},
}

// Contains reports whether every flag of other is set in s.
func (s ResourceState) Contains(other ResourceState) bool {
	return s&other == other
}

// IsKnown reports whether the state is tracked by the engine.
func (s ResourceState) IsKnown() bool {
	return s != StateUnknown
}

// String returns the state flags joined with '|', or "unknown".
func (s ResourceState) String() string {
	if s == StateUnknown {
		return "unknown"
	}
	var b strings.Builder
	for _, sn := range stateNames {
		if s&sn.state != 0 {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(sn.name)
		}
	}
	return b.String()
}
