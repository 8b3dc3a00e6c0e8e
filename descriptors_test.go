package d3d11

import "testing"

func TestCachedCBIsBound(t *testing.T) {
	var cb CachedCB
	if cb.IsBound() {
		t.Error("zero CachedCB should be unbound")
	}
	cb.Buffer = newTestBuffer("cb", 256, 0x10)
	if !cb.IsBound() {
		t.Error("CachedCB with a buffer should be bound")
	}
}

func TestCachedCBAllowsDynamicOffset(t *testing.T) {
	buf := newTestBuffer("cb", 1024, 0x10)
	tests := []struct {
		name string
		cb   CachedCB
		want bool
	}{
		{"unbound", CachedCB{}, false},
		{"window", CachedCB{Buffer: buf, BaseOffset: 0, RangeSize: 512}, true},
		{"whole buffer", CachedCB{Buffer: buf, BaseOffset: 0, RangeSize: 1024}, false},
		{"zero size", CachedCB{Buffer: buf}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cb.AllowsDynamicOffset(); got != tt.want {
				t.Errorf("AllowsDynamicOffset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCachedCBConstantRange(t *testing.T) {
	buf := newTestBuffer("cb", 4096, 0x10)
	tests := []struct {
		name      string
		cb        CachedCB
		wantFirst uint32
		wantNum   uint32
	}{
		{"unbound", CachedCB{}, 0, 0},
		{"whole small buffer", CachedCB{Buffer: buf, RangeSize: 256}, 0, 16},
		{"offset window", CachedCB{Buffer: buf, BaseOffset: 256, RangeSize: 512}, 16, 32},
		{"dynamic shift", CachedCB{Buffer: buf, BaseOffset: 256, DynamicOffset: 512, RangeSize: 256}, 48, 16},
		{"count rounds up", CachedCB{Buffer: buf, RangeSize: 100}, 0, 16},
		{"large window", CachedCB{Buffer: buf, RangeSize: 1024}, 0, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, num := tt.cb.constantRange()
			if first != tt.wantFirst || num != tt.wantNum {
				t.Errorf("constantRange() = (%d, %d), want (%d, %d)", first, num, tt.wantFirst, tt.wantNum)
			}
		})
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		v, a, want uint32
	}{
		{0, 16, 0},
		{1, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{64, 16, 64},
	}
	for _, tt := range tests {
		if got := alignUp(tt.v, tt.a); got != tt.want {
			t.Errorf("alignUp(%d, %d) = %d, want %d", tt.v, tt.a, got, tt.want)
		}
	}
}

func TestCachedSamplerIsBound(t *testing.T) {
	var cs CachedSampler
	if cs.IsBound() {
		t.Error("zero CachedSampler should be unbound")
	}
	cs.Sampler = NewSampler("s", SamplerDesc{}, 0x30)
	if !cs.IsBound() {
		t.Error("CachedSampler with a sampler should be bound")
	}
}

func TestCachedViewIsBound(t *testing.T) {
	var cv CachedView
	if cv.IsBound() {
		t.Error("zero CachedView should be unbound")
	}
	tex := newTestTexture("t", 0x40)
	cv.View = NewTextureView("v", tex, ViewShaderResource, 0x41)
	if !cv.IsBound() {
		t.Error("CachedView with a view should be bound")
	}
}
