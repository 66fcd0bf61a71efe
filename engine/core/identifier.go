package core

import "fmt"

// Owners is a slot-recycling id table, kept for callers that just need a
// stable uint32 handle tied to an arbitrary owner value (debug tooling,
// resource-group slot bookkeeping).
var Owners []interface{}

func IdentifierAquireNewID(owner interface{}) uint32 {
	if len(Owners) == 0 {
		Owners = make([]interface{}, 100)
	}
	length := uint32(len(Owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if Owners[i] == nil {
			Owners[i] = owner
			return i
		}
	}

	// If here, no existing free slots. Need a new id, so push one.
	// This means the id will be length - 1
	Owners = append(Owners, owner)
	length = uint32(len(Owners))
	return length - 1
}

func IdentifierReleaseID(id uint32) error {
	if len(Owners) == 0 {
		err := fmt.Errorf("identifier_release_id called before initialization. identifier_aquire_new_id should have been called first. Nothing was done")
		return err
	}

	length := uint32(len(Owners))
	if id > length {
		err := fmt.Errorf("identifier_release_id: id '%d' out of range (max=%d). Nothing was done", id, length)
		return err
	}

	// Just zero out the entry, making it available for use.
	Owners[id] = nil
	return nil
}

// ResourceKind identifies which of the renderer's object kinds a resource
// belongs to, for statistics and debug-name prefixing purposes. Defined
// here (rather than in the ral package) so the STATISTICS counters below
// have no import-cycle back onto ral.
type ResourceKind int

const (
	ResourceKindRootSignature ResourceKind = iota
	ResourceKindResourceGroup
	ResourceKindGraphicsProgram
	ResourceKindVertexArray
	ResourceKindRenderPass
	ResourceKindQueryPool
	ResourceKindSwapChain
	ResourceKindFramebuffer
	ResourceKindIndexBuffer
	ResourceKindVertexBuffer
	ResourceKindTextureBuffer
	ResourceKindStructuredBuffer
	ResourceKindIndirectBuffer
	ResourceKindUniformBuffer
	ResourceKindTexture1D
	ResourceKindTexture2D
	ResourceKindTexture2DArray
	ResourceKindTexture3D
	ResourceKindTextureCube
	ResourceKindGraphicsPipelineState
	ResourceKindComputePipelineState
	ResourceKindSamplerState
	ResourceKindVertexShader
	ResourceKindTessellationControlShader
	ResourceKindTessellationEvaluationShader
	ResourceKindGeometryShader
	ResourceKindFragmentShader
	ResourceKindComputeShader

	resourceKindCount
)

var resourceKindNames = [resourceKindCount]string{
	ResourceKindRootSignature:                "RootSignature",
	ResourceKindResourceGroup:                "ResourceGroup",
	ResourceKindGraphicsProgram:              "GraphicsProgram",
	ResourceKindVertexArray:                  "VertexArray",
	ResourceKindRenderPass:                   "RenderPass",
	ResourceKindQueryPool:                    "QueryPool",
	ResourceKindSwapChain:                    "SwapChain",
	ResourceKindFramebuffer:                  "Framebuffer",
	ResourceKindIndexBuffer:                  "IndexBuffer",
	ResourceKindVertexBuffer:                 "VertexBuffer",
	ResourceKindTextureBuffer:                "TextureBuffer",
	ResourceKindStructuredBuffer:             "StructuredBuffer",
	ResourceKindIndirectBuffer:               "IndirectBuffer",
	ResourceKindUniformBuffer:                "UniformBuffer",
	ResourceKindTexture1D:                    "Texture1D",
	ResourceKindTexture2D:                    "Texture2D",
	ResourceKindTexture2DArray:               "Texture2DArray",
	ResourceKindTexture3D:                    "Texture3D",
	ResourceKindTextureCube:                  "TextureCube",
	ResourceKindGraphicsPipelineState:        "GraphicsPipelineState",
	ResourceKindComputePipelineState:         "ComputePipelineState",
	ResourceKindSamplerState:                 "SamplerState",
	ResourceKindVertexShader:                 "VertexShader",
	ResourceKindTessellationControlShader:    "TessellationControlShader",
	ResourceKindTessellationEvaluationShader: "TessellationEvaluationShader",
	ResourceKindGeometryShader:               "GeometryShader",
	ResourceKindFragmentShader:               "FragmentShader",
	ResourceKindComputeShader:                "ComputeShader",
}

func (k ResourceKind) String() string {
	if k < 0 || int(k) >= len(resourceKindNames) {
		return "Unknown"
	}
	return resourceKindNames[k]
}

// Statistics is the live-object counter set for every ResourceKind. The
// renderer is not internally thread-safe (see the concurrency model), so
// these are plain counters rather than atomics - they're only touched from
// the render thread, same as everything else reachable from a Renderer.
type Statistics struct {
	counts [resourceKindCount]int64
}

func NewStatistics() *Statistics {
	return &Statistics{}
}

func (s *Statistics) Acquire(kind ResourceKind) {
	if s == nil {
		return
	}
	s.counts[kind]++
}

func (s *Statistics) Release(kind ResourceKind) {
	if s == nil {
		return
	}
	s.counts[kind]--
}

func (s *Statistics) Count(kind ResourceKind) int64 {
	if s == nil {
		return 0
	}
	return s.counts[kind]
}

// Total sums every live object across all resource kinds; used by the
// shutdown leak check.
func (s *Statistics) Total() int64 {
	if s == nil {
		return 0
	}
	var total int64
	for _, c := range s.counts {
		total += c
	}
	return total
}
