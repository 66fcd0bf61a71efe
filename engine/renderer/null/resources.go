package null

import "github.com/spaghettifunk/ral/engine/renderer"

// Every null-backend handle is one of these tiny wrapper structs; none
// hold native resources, so destruction is a no-op beyond satisfying the
// interface. Each implements exactly the marker method its
// renderer.Backend* interface requires.

type handleBuffer struct {
	kind renderer.BufferKind
	desc renderer.BufferDescriptor
	data []byte
}

func (handleBuffer) IsBackendBuffer() {}

type handleTexture struct {
	kind renderer.TextureKind
	desc renderer.TextureDescriptor
}

func (handleTexture) IsBackendTexture() {}

type handleSampler struct{ desc renderer.SamplerDescriptor }

func (handleSampler) IsBackendSampler() {}

type handleShaderModule struct {
	stage    renderer.ShaderStage
	bytecode []byte
}

func (handleShaderModule) IsBackendShaderModule() {}

type handleRootSignature struct{ desc renderer.RootSignatureDescriptor }

func (handleRootSignature) IsBackendRootSignature() {}

type handleResourceGroup struct {
	rootParameterIndex uint32
	resources          []renderer.BoundResource
}

func (handleResourceGroup) IsBackendResourceGroup() {}

type handlePipelineState struct{ label string }

func (handlePipelineState) IsBackendPipelineState() {}

type handleRenderPass struct{ desc renderer.RenderPassDescriptor }

func (handleRenderPass) IsBackendRenderPass() {}

type handleFramebuffer struct{ desc renderer.FramebufferDescriptor }

func (handleFramebuffer) IsBackendFramebuffer() {}

type handleSwapChain struct {
	desc         renderer.SwapChainDescriptor
	imageCount   uint32
	framebuffers []*handleFramebuffer
}

func (*handleSwapChain) IsBackendSwapChain() {}

type handleVertexArray struct{ desc renderer.VertexArrayDescriptor }

func (handleVertexArray) IsBackendVertexArray() {}
