package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/ral/engine/renderer"
)

// Every native Vulkan object this backend hands back through the
// renderer.Backend interface is wrapped in one of these small handle
// types, mirroring the null backend's handle* structs one-for-one. Each
// implements exactly the marker method its renderer.BackendXxx interface
// requires and holds the real Vulkan state the backend's dispatch
// methods need to act on it.

type backendBuffer struct {
	buffer *VulkanBuffer
	kind   renderer.BufferKind
	size   uint64
}

func (*backendBuffer) IsBackendBuffer() {}

type backendTexture struct {
	image       *VulkanImage
	kind        renderer.TextureKind
	format      vk.Format
	mipLevels   uint32
	layerCount  uint32
	layout      vk.ImageLayout
}

func (*backendTexture) IsBackendTexture() {}

type backendSampler struct {
	handle vk.Sampler
}

func (*backendSampler) IsBackendSampler() {}

type backendShaderModule struct {
	handle vk.ShaderModule
	stage  renderer.ShaderStage
}

func (*backendShaderModule) IsBackendShaderModule() {}

type backendRootSignature struct {
	setLayouts []vk.DescriptorSetLayout
	pool       vk.DescriptorPool
	layout     vk.PipelineLayout
}

func (*backendRootSignature) IsBackendRootSignature() {}

type backendResourceGroup struct {
	set vk.DescriptorSet
}

func (*backendResourceGroup) IsBackendResourceGroup() {}

type backendPipelineState struct {
	pipeline *VulkanPipeline
	bindPoint vk.PipelineBindPoint
}

func (*backendPipelineState) IsBackendPipelineState() {}

type backendRenderPass struct {
	pass *VulkanRenderpass
}

func (*backendRenderPass) IsBackendRenderPass() {}

type backendFramebuffer struct {
	framebuffer  *VulkanFramebuffer
	renderPass   *VulkanRenderpass
	colorImages  []*VulkanImage
	depthImage   *VulkanImage
	width        uint32
	height       uint32
}

func (*backendFramebuffer) IsBackendFramebuffer() {}

type backendSwapChain struct {
	swapchain    *VulkanSwapchain
	framebuffers []*backendFramebuffer
	acquireFence *VulkanFence
}

func (*backendSwapChain) IsBackendSwapChain() {}

type backendVertexArray struct {
	vertexBuffers []vertexArrayBinding
	indexBuffer   *backendBuffer
	indexType     vk.IndexType
}

func (*backendVertexArray) IsBackendVertexArray() {}

type vertexArrayBinding struct {
	buffer *backendBuffer
	offset uint64
}
