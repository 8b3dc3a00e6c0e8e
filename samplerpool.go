package d3d11

import (
	"fmt"

	"github.com/gogpu/d3d11/internal/intern"
)

// SamplerPool interns sampler objects by description so that equal
// descriptions share one sampler. Caches store samplers without taking
// references; the pool is what keeps them alive, which is why it never
// evicts. Release the pool only after every cache that might hold its
// samplers is destroyed.
//
// SamplerPool is safe for concurrent use.
type SamplerPool struct {
	table  *intern.Table[SamplerDesc, *Sampler]
	create func(SamplerDesc) (*Sampler, error)
}

// NewSamplerPool creates a pool that calls create once per distinct
// description. create typically wraps the native sampler state factory.
func NewSamplerPool(create func(SamplerDesc) (*Sampler, error)) *SamplerPool {
	if create == nil {
		panic("d3d11: sampler pool requires a create function")
	}
	return &SamplerPool{
		table:  intern.New[SamplerDesc, *Sampler](),
		create: create,
	}
}

// Get returns the interned sampler for desc, creating it on first use.
func (p *SamplerPool) Get(desc SamplerDesc) (*Sampler, error) {
	s, err := p.table.GetOrCreate(desc, func() (*Sampler, error) {
		s, err := p.create(desc)
		if err != nil {
			return nil, fmt.Errorf("d3d11: create sampler: %w", err)
		}
		if s == nil {
			return nil, fmt.Errorf("d3d11: sampler create function returned nil")
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of distinct samplers interned so far.
func (p *SamplerPool) Len() int {
	return p.table.Len()
}

// Release drops the pool's reference on every interned sampler and
// empties the pool. Callers must not use previously returned samplers
// afterwards.
func (p *SamplerPool) Release() {
	released := 0
	p.table.Range(func(_ SamplerDesc, s *Sampler) {
		s.Release()
		released++
	})
	p.table.Clear()
	if released > 0 {
		Logger().Debug("sampler pool released", "samplers", released)
	}
}
