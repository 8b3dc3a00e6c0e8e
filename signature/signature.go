// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package signature

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/gogpu/d3d11"
)

// Sentinel errors returned by New and the loaders. All are wrapped with
// detail; match with errors.Is.
var (
	ErrInvalidResource   = errors.New("signature: invalid resource")
	ErrDuplicateResource = errors.New("signature: duplicate resource name")
	ErrTooManyResources  = errors.New("signature: too many resources for range")
	ErrUnsupported       = errors.New("signature: unsupported shader resource")
)

// Resource declares one named binding of a signature: what kind of
// resource it is, which stages see it, and how many consecutive slots
// it occupies.
type Resource struct {
	// Name identifies the resource within its signature.
	Name string `toml:"name"`

	// Range is the resource kind deciding which slot space the
	// resource lives in.
	Range d3d11.ResourceRange `toml:"kind"`

	// Stages is the set of shader stages the resource is visible in.
	Stages d3d11.ShaderStages `toml:"stages"`

	// Count is the array size in slots; zero means one.
	Count uint8 `toml:"count,omitempty"`

	// Dynamic marks a constant buffer as eligible for dynamic offsets.
	Dynamic bool `toml:"dynamic,omitempty"`
}

// Desc is the plain declaration of a signature, ready to be filled from
// code, decoded from a TOML file or reflected from shader source.
type Desc struct {
	Name      string     `toml:"name"`
	Resources []Resource `toml:"resource"`
}

// Signature is a compiled Desc: every resource is assigned consecutive
// slots per active stage, and the slot counts, bind points and dynamic
// masks a ResourceCache is initialized from are derived once.
type Signature struct {
	name       string
	resources  []Resource
	counters   d3d11.ResourceCounters
	bindPoints map[string]d3d11.BindPoints
	dynamicCBs [d3d11.NumShaderStages]uint16
}

// New compiles a Desc. Resources are assigned slots in declaration
// order, each stage filling its slot space independently, so the same
// resource may sit at different slots in different stages.
func New(desc *Desc) (*Signature, error) {
	if desc == nil {
		return nil, fmt.Errorf("%w: nil desc", ErrInvalidResource)
	}

	s := &Signature{
		name:       desc.Name,
		resources:  make([]Resource, 0, len(desc.Resources)),
		bindPoints: make(map[string]d3d11.BindPoints, len(desc.Resources)),
	}

	var next [d3d11.NumResourceRanges][d3d11.NumShaderStages]int
	for _, res := range desc.Resources {
		if res.Name == "" {
			return nil, fmt.Errorf("%w: unnamed resource in signature %q", ErrInvalidResource, desc.Name)
		}
		if int(res.Range) >= d3d11.NumResourceRanges {
			return nil, fmt.Errorf("%w: resource %q has invalid kind %d", ErrInvalidResource, res.Name, uint8(res.Range))
		}
		if res.Stages == d3d11.StagesNone {
			return nil, fmt.Errorf("%w: resource %q is visible in no stage", ErrInvalidResource, res.Name)
		}
		if res.Dynamic && res.Range != d3d11.RangeCB {
			return nil, fmt.Errorf("%w: resource %q is dynamic but not a constant buffer", ErrInvalidResource, res.Name)
		}
		if _, dup := s.bindPoints[res.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateResource, res.Name)
		}
		if res.Count == 0 {
			res.Count = 1
		}

		bp := d3d11.BindPoints{}
		for m := uint8(res.Stages); m != 0; m &= m - 1 {
			stage := d3d11.ShaderStage(bits.TrailingZeros8(m))
			slot := next[res.Range][stage]
			end := slot + int(res.Count)
			if end > res.Range.MaxSlots() {
				return nil, fmt.Errorf("%w: resource %q needs %s slots [%d, %d) in %s, limit is %d",
					ErrTooManyResources, res.Name, res.Range, slot, end, stage, res.Range.MaxSlots())
			}
			next[res.Range][stage] = end
			bp = bp.WithSlot(stage, uint8(slot))

			if res.Dynamic {
				for b := slot; b < end; b++ {
					s.dynamicCBs[stage] |= uint16(1) << b
				}
			}
		}

		s.bindPoints[res.Name] = bp
		s.resources = append(s.resources, res)
	}

	for r := range next {
		for st := range next[r] {
			s.counters[r][st] = uint8(next[r][st])
		}
	}
	return s, nil
}

// Name returns the signature name.
func (s *Signature) Name() string { return s.name }

// Resources returns the compiled resource declarations in declaration
// order, with counts normalized.
func (s *Signature) Resources() []Resource {
	out := make([]Resource, len(s.resources))
	copy(out, s.resources)
	return out
}

// Counters returns the per-stage slot counts of every range.
func (s *Signature) Counters() d3d11.ResourceCounters { return s.counters }

// BindPoints returns the bind points assigned to a named resource.
func (s *Signature) BindPoints(name string) (d3d11.BindPoints, bool) {
	bp, ok := s.bindPoints[name]
	return bp, ok
}

// DynamicCBSlotsMasks returns, per stage, the mask of constant buffer
// slots declared dynamic.
func (s *Signature) DynamicCBSlotsMasks() [d3d11.NumShaderStages]uint16 {
	return s.dynamicCBs
}

// RequiredCacheSize returns the byte size of the slot storage a cache
// built from this signature will use.
func (s *Signature) RequiredCacheSize() uint32 {
	return d3d11.RequiredMemorySize(s.counters)
}

// NewCache creates and initializes a ResourceCache sized for this
// signature.
func (s *Signature) NewCache(contentType d3d11.ContentType) *d3d11.ResourceCache {
	cache := d3d11.NewResourceCache(contentType)
	cache.Initialize(s.counters, s.dynamicCBs)
	return cache
}
