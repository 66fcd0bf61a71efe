package renderer

import (
	"github.com/spaghettifunk/ral/engine/core"
)

// DescriptorRange describes one shader-visible binding within a root
// parameter's descriptor table.
type DescriptorRange struct {
	RangeType    RangeType
	ResourceKind ResourceKind
	BindingSlot  uint32
}

// StaticSampler is a sampler baked directly into the root signature
// rather than bound through a ResourceGroup.
type StaticSampler struct {
	BindingSlot uint32
	Descriptor  SamplerDescriptor
}

// RootParameter is an ordered binding-table entry. DESCRIPTOR_TABLE is
// the only supported RootParameterType.
type RootParameter struct {
	Type             RootParameterType
	DescriptorRanges []DescriptorRange
	ShaderVisibility ShaderVisibility
}

// RootSignatureDescriptor is the construction-time argument to
// CreateRootSignature. The instance deep-copies this before building any native layout.
type RootSignatureDescriptor struct {
	Parameters     []RootParameter
	StaticSamplers []StaticSampler
}

// clone deep-copies the descriptor's slices so the RootSignature does not
// alias caller-owned memory.
func (d RootSignatureDescriptor) clone() RootSignatureDescriptor {
	params := make([]RootParameter, len(d.Parameters))
	for i, p := range d.Parameters {
		ranges := make([]DescriptorRange, len(p.DescriptorRanges))
		copy(ranges, p.DescriptorRanges)
		params[i] = RootParameter{Type: p.Type, DescriptorRanges: ranges, ShaderVisibility: p.ShaderVisibility}
	}
	samplers := make([]StaticSampler, len(d.StaticSamplers))
	copy(samplers, d.StaticSamplers)
	return RootSignatureDescriptor{Parameters: params, StaticSamplers: samplers}
}

// RootSignature is the CPU-side binding-layout contract.
type RootSignature struct {
	RefCounted
	desc    RootSignatureDescriptor
	backend BackendRootSignature
}

func (s *RootSignature) ParameterCount() int { return len(s.desc.Parameters) }

func (s *RootSignature) Parameter(i int) (RootParameter, bool) {
	if i < 0 || i >= len(s.desc.Parameters) {
		return RootParameter{}, false
	}
	return s.desc.Parameters[i], true
}

func (s *RootSignature) Backend() BackendRootSignature { return s.backend }

func (s *RootSignature) selfDestruct(r *Renderer) func() {
	return func() {
		if s.backend != nil {
			r.backend.DestroyRootSignature(s.backend)
		}
	}
}

// CreateRootSignature deep-copies desc, asks the backend to
// build native descriptor-set layouts / a pipeline layout for it, and
// returns a RootSignature with refcount 1.
func (r *Renderer) CreateRootSignature(desc RootSignatureDescriptor) *RootSignature {
	cloned := desc.clone()
	sig := &RootSignature{desc: cloned}
	sig.RefCounted = NewRefCounted(r, ResourceKindRootSignature, sig.selfDestruct(r))
	sig.backend = r.backend.CreateRootSignature(cloned)
	if sig.backend == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateRootSignature: backend returned no native signature")
		return nil
	}
	return sig
}

// BoundResource pairs a resource handle with its RAL kind for the purpose
// of building a ResourceGroup; concrete Buffer/Texture types implement
// this through small adapters (see buffer.go / texture.go).
type BoundResource interface {
	Resource
	BackendHandle() interface{}
}

// ResourceGroup realizes one descriptor-table binding of a root signature
//. It holds strong references to every bound resource
// (and sampler) until destroyed.
type ResourceGroup struct {
	RefCounted
	signature *RootSignature
	paramIdx  uint32
	resources []BoundResource
	samplers  []*SamplerState
	backend   BackendResourceGroup
}

func (g *ResourceGroup) selfDestruct(r *Renderer) func() {
	return func() {
		for _, res := range g.resources {
			res.ReleaseReference()
		}
		for _, s := range g.samplers {
			s.ReleaseReference()
		}
		g.signature.ReleaseReference()
		if g.backend != nil {
			r.backend.DestroyResourceGroup(g.backend)
		}
	}
}

// CreateResourceGroup builds a bindable group of resources for one root parameter:
// validates rootParameterIndex and that every resource's kind matches the
// descriptor range declared at that slot, then asks the backend to
// allocate and populate one native descriptor set.
func (r *Renderer) CreateResourceGroup(signature *RootSignature, rootParameterIndex uint32, resources []BoundResource, samplers []*SamplerState) *ResourceGroup {
	if !checkAffinity(r, signature) {
		return nil
	}
	param, ok := signature.Parameter(int(rootParameterIndex))
	if !ok {
		r.ctx.Log(core.LogLevelCritical, "CreateResourceGroup: root_parameter_index %d out of range (signature has %d parameters)",
			rootParameterIndex, signature.ParameterCount())
		return nil
	}
	if len(resources) == 0 {
		r.ctx.Log(core.LogLevelCritical, "CreateResourceGroup: resource count must be > 0")
		return nil
	}
	if len(resources) > len(param.DescriptorRanges) {
		r.ctx.Log(core.LogLevelCritical, "CreateResourceGroup: %d resources supplied but root parameter %d only declares %d descriptor ranges",
			len(resources), rootParameterIndex, len(param.DescriptorRanges))
		return nil
	}
	for i, res := range resources {
		if !checkAffinity(r, res) {
			return nil
		}
		rng := param.DescriptorRanges[i]
		if res.Kind() != rng.ResourceKind {
			r.ctx.Log(core.LogLevelCritical,
				"%w: slot %d expects %s, got %s", core.ErrInvalidRootSignature, i, rng.ResourceKind, res.Kind())
			return nil
		}
	}

	group := &ResourceGroup{
		signature: signature,
		paramIdx:  rootParameterIndex,
		resources: append([]BoundResource(nil), resources...),
		samplers:  append([]*SamplerState(nil), samplers...),
	}
	group.RefCounted = NewRefCounted(r, ResourceKindResourceGroup, group.selfDestruct(r))

	signature.AddReference()
	for _, res := range resources {
		res.AddReference()
	}
	for _, s := range samplers {
		s.AddReference()
	}

	group.backend = r.backend.CreateResourceGroup(signature.backend, rootParameterIndex, resources)
	if group.backend == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateResourceGroup: backend returned no native descriptor set")
	}
	return group
}
