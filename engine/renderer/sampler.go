package renderer

import "github.com/spaghettifunk/ral/engine/core"

// SamplerDescriptor is the construction-time argument for CreateSamplerState
//.
type SamplerDescriptor struct {
	Filter         Filter
	AddressU       AddressMode
	AddressV       AddressMode
	AddressW       AddressMode
	MipLODBias     float32
	MaxAnisotropy  float32
	BorderColor    [4]float32 // default: opaque black
	MinLOD, MaxLOD float32
}

// DefaultSamplerDescriptor mirrors the documented default border color
// (opaque black) and a conservative filter/address setup.
func DefaultSamplerDescriptor() SamplerDescriptor {
	return SamplerDescriptor{
		Filter:        FilterMinMagMipLinear,
		AddressU:      AddressModeWrap,
		AddressV:      AddressModeWrap,
		AddressW:      AddressModeWrap,
		MaxAnisotropy: 1,
		BorderColor:   [4]float32{0, 0, 0, 1},
		MinLOD:        0,
		MaxLOD:        1000,
	}
}

// SamplerState is the RAL-visible handle for one sampler configuration.
type SamplerState struct {
	RefCounted
	desc    SamplerDescriptor
	backend BackendSampler
}

func (s *SamplerState) BackendHandle() interface{} { return s.backend }

func (s *SamplerState) selfDestruct(r *Renderer) func() {
	return func() {
		if s.backend != nil {
			r.backend.DestroySampler(s.backend)
		}
	}
}

// CreateSamplerState validates MaxAnisotropy against the active
// Capabilities")
// before delegating to the backend.
func (r *Renderer) CreateSamplerState(desc SamplerDescriptor) *SamplerState {
	if desc.MaxAnisotropy > r.capabilities.MaxAnisotropy {
		r.ctx.Log(core.LogLevelWarning,
			"CreateSamplerState: requested anisotropy %.1f exceeds capability %.1f, clamping",
			desc.MaxAnisotropy, r.capabilities.MaxAnisotropy)
		desc.MaxAnisotropy = r.capabilities.MaxAnisotropy
	}
	backendSampler := r.backend.CreateSampler(desc)
	if backendSampler == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateSamplerState: backend returned no native sampler")
		return nil
	}
	s := &SamplerState{desc: desc}
	s.RefCounted = NewRefCounted(r, ResourceKindSamplerState, s.selfDestruct(r))
	s.backend = backendSampler
	return s
}
