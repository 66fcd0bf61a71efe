package null

import "github.com/spaghettifunk/ral/engine/renderer"

func (b *Backend) CreateBuffer(kind renderer.BufferKind, desc renderer.BufferDescriptor, initial []byte) renderer.BackendBuffer {
	data := append([]byte(nil), initial...)
	return handleBuffer{kind: kind, desc: desc, data: data}
}

func (b *Backend) DestroyBuffer(renderer.BackendBuffer) {}

func (b *Backend) CreateTexture(kind renderer.TextureKind, desc renderer.TextureDescriptor, initial []byte) renderer.BackendTexture {
	return handleTexture{kind: kind, desc: desc}
}

func (b *Backend) DestroyTexture(renderer.BackendTexture) {}

func (b *Backend) CreateSampler(desc renderer.SamplerDescriptor) renderer.BackendSampler {
	return handleSampler{desc: desc}
}

func (b *Backend) DestroySampler(renderer.BackendSampler) {}

func (b *Backend) CreateVertexArray(desc renderer.VertexArrayDescriptor) renderer.BackendVertexArray {
	return handleVertexArray{desc: desc}
}

func (b *Backend) DestroyVertexArray(renderer.BackendVertexArray) {}

func (b *Backend) CreateShaderModule(stage renderer.ShaderStage, bytecode []byte) renderer.BackendShaderModule {
	return handleShaderModule{stage: stage, bytecode: bytecode}
}

func (b *Backend) DestroyShaderModule(renderer.BackendShaderModule) {}

func (b *Backend) CreateRootSignature(desc renderer.RootSignatureDescriptor) renderer.BackendRootSignature {
	return handleRootSignature{desc: desc}
}

func (b *Backend) DestroyRootSignature(renderer.BackendRootSignature) {}

func (b *Backend) CreateResourceGroup(rs renderer.BackendRootSignature, rootParameterIndex uint32, resources []renderer.BoundResource) renderer.BackendResourceGroup {
	return handleResourceGroup{rootParameterIndex: rootParameterIndex, resources: resources}
}

func (b *Backend) DestroyResourceGroup(renderer.BackendResourceGroup) {}

func (b *Backend) CreateGraphicsPipelineState(desc renderer.GraphicsPipelineStateDescriptor) renderer.BackendPipelineState {
	return handlePipelineState{label: "graphics"}
}

func (b *Backend) CreateComputePipelineState(desc renderer.ComputePipelineStateDescriptor) renderer.BackendPipelineState {
	return handlePipelineState{label: "compute"}
}

func (b *Backend) DestroyPipelineState(renderer.BackendPipelineState) {}

func (b *Backend) CreateRenderPass(desc renderer.RenderPassDescriptor) renderer.BackendRenderPass {
	return handleRenderPass{desc: desc}
}

func (b *Backend) DestroyRenderPass(renderer.BackendRenderPass) {}

func (b *Backend) CreateFramebuffer(desc renderer.FramebufferDescriptor) renderer.BackendFramebuffer {
	return handleFramebuffer{desc: desc}
}

func (b *Backend) DestroyFramebuffer(renderer.BackendFramebuffer) {}
