package renderer

import "github.com/spaghettifunk/ral/engine/core"

// RasterizerState.
type RasterizerState struct {
	Fill                   FillMode
	Cull                   CullMode
	FrontFace              FrontFace
	DepthBias              int32
	DepthBiasClamp         float32
	SlopeScaledDepthBias   float32
	DepthClipEnable        bool
}

// DepthStencilState.
type DepthStencilState struct {
	DepthEnable    bool
	DepthWriteMask bool
	DepthFunc      CompareFunction
	StencilEnable  bool
}

// RenderTargetBlendState is one per-attachment entry of BlendState
//.
type RenderTargetBlendState struct {
	BlendEnable  bool
	SrcColor     BlendFactor
	DstColor     BlendFactor
	ColorOp      BlendOp
	SrcAlpha     BlendFactor
	DstAlpha     BlendFactor
	AlphaOp      BlendOp
	WriteMask    uint8 // bit0=R,1=G,2=B,3=A
}

// BlendState carries one RenderTargetBlendState per render target.
type BlendState struct {
	RenderTarget [MaxSimultaneousRenderTargetsLimit]RenderTargetBlendState
}

// VertexAttribute describes one input-assembler attribute.
type VertexAttribute struct {
	SemanticName     string
	Format           VertexAttributeFormat
	InputSlot        uint32
	AlignedByteOffset uint32
	StrideBytes      uint32
	InstancesPerElement uint32 // 0 = per-vertex, >0 = per-instance step rate
}

// GraphicsPipelineStateDescriptor is the construction-time argument for
// CreateGraphicsPipelineState.
type GraphicsPipelineStateDescriptor struct {
	RootSignature    *RootSignature
	Program          *GraphicsProgram
	RenderPass       *RenderPass
	VertexAttributes []VertexAttribute
	PrimitiveTopology PrimitiveTopology
	Rasterizer       RasterizerState
	DepthStencil     DepthStencilState
	Blend            BlendState
	RenderTargetCount uint32
}

// GraphicsPipelineState is immutable once created; holds strong
// references to its root signature, program, and render pass.
type GraphicsPipelineState struct {
	RefCounted
	desc    GraphicsPipelineStateDescriptor
	backend BackendPipelineState
}

func (p *GraphicsPipelineState) BackendHandle() interface{} { return p.backend }

func (p *GraphicsPipelineState) selfDestruct(r *Renderer) func() {
	return func() {
		p.desc.RootSignature.ReleaseReference()
		p.desc.Program.ReleaseReference()
		p.desc.RenderPass.ReleaseReference()
		if p.backend != nil {
			r.backend.DestroyPipelineState(p.backend)
		}
	}
}

// CreateGraphicsPipelineState validates that the topology's patch-control
// points fit Capabilities.MaxPatchVertices and that RenderTargetCount
// equals the bound RenderPass's color-attachment count, then
// asks the backend to build a native pipeline.
func (r *Renderer) CreateGraphicsPipelineState(desc GraphicsPipelineStateDescriptor) *GraphicsPipelineState {
	if !checkAffinity(r, desc.RootSignature) || !checkAffinity(r, desc.Program) || !checkAffinity(r, desc.RenderPass) {
		return nil
	}
	if desc.PrimitiveTopology.IsPatchList() && uint32(desc.PrimitiveTopology.PatchControlPoints()) > r.capabilities.MaxPatchVertices {
		r.ctx.Log(core.LogLevelCritical,
			"CreateGraphicsPipelineState: topology requests %d patch control points, capability max is %d",
			desc.PrimitiveTopology.PatchControlPoints(), r.capabilities.MaxPatchVertices)
		return nil
	}
	if desc.RenderTargetCount != uint32(len(desc.RenderPass.colorFormats)) {
		r.ctx.Log(core.LogLevelCritical,
			"CreateGraphicsPipelineState: render_target_count %d does not match bound render pass color count %d",
			desc.RenderTargetCount, len(desc.RenderPass.colorFormats))
		return nil
	}

	backendPSO := r.backend.CreateGraphicsPipelineState(desc)
	if backendPSO == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateGraphicsPipelineState: backend returned no native pipeline")
		return nil
	}

	pso := &GraphicsPipelineState{desc: desc}
	pso.RefCounted = NewRefCounted(r, ResourceKindGraphicsPipelineState, pso.selfDestruct(r))
	desc.RootSignature.AddReference()
	desc.Program.AddReference()
	desc.RenderPass.AddReference()
	pso.backend = backendPSO
	return pso
}

// ComputePipelineStateDescriptor is the construction-time argument for
// CreateComputePipelineState: RootSignature + ComputeShader.
type ComputePipelineStateDescriptor struct {
	RootSignature *RootSignature
	ComputeShader *Shader
}

// ComputePipelineState is immutable once created.
type ComputePipelineState struct {
	RefCounted
	desc    ComputePipelineStateDescriptor
	backend BackendPipelineState
}

func (p *ComputePipelineState) BackendHandle() interface{} { return p.backend }

func (p *ComputePipelineState) selfDestruct(r *Renderer) func() {
	return func() {
		p.desc.RootSignature.ReleaseReference()
		p.desc.ComputeShader.ReleaseReference()
		if p.backend != nil {
			r.backend.DestroyPipelineState(p.backend)
		}
	}
}

func (r *Renderer) CreateComputePipelineState(desc ComputePipelineStateDescriptor) *ComputePipelineState {
	if !checkAffinity(r, desc.RootSignature) || !checkAffinity(r, desc.ComputeShader) {
		return nil
	}
	if desc.ComputeShader.Stage() != ShaderStageCompute {
		r.ctx.Log(core.LogLevelCritical, "CreateComputePipelineState: shader is not a compute shader")
		return nil
	}
	backendPSO := r.backend.CreateComputePipelineState(desc)
	if backendPSO == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateComputePipelineState: backend returned no native pipeline")
		return nil
	}
	pso := &ComputePipelineState{desc: desc}
	pso.RefCounted = NewRefCounted(r, ResourceKindComputePipelineState, pso.selfDestruct(r))
	desc.RootSignature.AddReference()
	desc.ComputeShader.AddReference()
	pso.backend = backendPSO
	return pso
}
