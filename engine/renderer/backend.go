package renderer

import "github.com/spaghettifunk/ral/engine/core"

// Backend is implemented once per rendering API (Vulkan, null). Renderer
// delegates to it for everything that touches native resources; Renderer
// itself owns the reference-counted object graph and command recording
// that are backend-agnostic.
//
// A Backend's create methods return the zero value (nil / zero Handle) on
// failure rather than an error: resource-acquisition failure is reported
// through Context.Log at CRITICAL and observed by the caller as "did I get
// back nil", matching the null-object failure semantics of the original
// renderer this design is based on.
type Backend interface {
	Name() string
	Capabilities() Capabilities

	Initialize(ctx core.Context, appName string, width, height uint32) error
	Shutdown() error
	Resized(width, height uint32) error

	BeginFrame() error
	EndFrame() error

	CreateBuffer(kind BufferKind, desc BufferDescriptor, initial []byte) BackendBuffer
	DestroyBuffer(b BackendBuffer)

	CreateTexture(kind TextureKind, desc TextureDescriptor, initial []byte) BackendTexture
	DestroyTexture(t BackendTexture)

	CreateSampler(desc SamplerDescriptor) BackendSampler
	DestroySampler(s BackendSampler)

	CreateVertexArray(desc VertexArrayDescriptor) BackendVertexArray
	DestroyVertexArray(v BackendVertexArray)

	CreateShaderModule(stage ShaderStage, bytecode []byte) BackendShaderModule
	DestroyShaderModule(m BackendShaderModule)

	CreateRootSignature(desc RootSignatureDescriptor) BackendRootSignature
	DestroyRootSignature(rs BackendRootSignature)

	CreateResourceGroup(rs BackendRootSignature, rootParameterIndex uint32, resources []BoundResource) BackendResourceGroup
	DestroyResourceGroup(rg BackendResourceGroup)

	CreateGraphicsPipelineState(desc GraphicsPipelineStateDescriptor) BackendPipelineState
	CreateComputePipelineState(desc ComputePipelineStateDescriptor) BackendPipelineState
	DestroyPipelineState(p BackendPipelineState)

	CreateRenderPass(desc RenderPassDescriptor) BackendRenderPass
	DestroyRenderPass(rp BackendRenderPass)

	CreateFramebuffer(desc FramebufferDescriptor) BackendFramebuffer
	DestroyFramebuffer(fb BackendFramebuffer)

	CreateSwapChain(desc SwapChainDescriptor) BackendSwapChain
	DestroySwapChain(sc BackendSwapChain)
	SwapChainAcquireNext(sc BackendSwapChain) (imageIndex uint32, err error)
	SwapChainPresent(sc BackendSwapChain, imageIndex uint32) error
	SwapChainFramebuffer(sc BackendSwapChain, imageIndex uint32) BackendFramebuffer

	// The methods below are the dispatch-function table's call targets
	//: Renderer.SubmitCommandBuffer walks a CommandBuffer's
	// packets and invokes exactly one of these per packet, passing along
	// already-resolved backend handles so a Backend never has to reach
	// back into the reference-counted RAL object graph.
	SetGraphicsRootSignature(rs BackendRootSignature)
	SetGraphicsPipelineState(p BackendPipelineState)
	SetGraphicsResourceGroup(rootParameterIndex uint32, rg BackendResourceGroup)
	SetGraphicsVertexArray(va BackendVertexArray)
	SetGraphicsViewports(viewports []Viewport)
	SetGraphicsScissorRectangles(rects []ScissorRectangle)
	SetGraphicsRenderTarget(fb BackendFramebuffer)
	ClearGraphics(flags ClearFlag, color [4]float32, depth float32, stencil uint32)
	DrawGraphics(args DrawArguments)
	DrawIndexedGraphics(args DrawIndexedArguments)
	SetComputeRootSignature(rs BackendRootSignature)
	SetComputePipelineState(p BackendPipelineState)
	SetComputeResourceGroup(rootParameterIndex uint32, rg BackendResourceGroup)
	DispatchCompute(groupX, groupY, groupZ uint32)
	SetTextureMinimumMaximumMipmapIndex(t BackendTexture, minimumMipmapIndex, maximumMipmapIndex uint32)
	ResolveMultisampleFramebuffer(source, destination BackendFramebuffer)
	CopyResource(source, destination interface{})
	SetDebugMarker(name string)
	BeginDebugEvent(name string)
	EndDebugEvent()
}

// The Backend* types below are opaque backend-private handles. Core RAL
// types (Buffer, Texture, ...) hold one of these plus their reference
// count and never reach into the concrete backend struct. The marker
// methods are exported so that out-of-package backends (engine/renderer/null,
// engine/renderer/vulkan) can implement them.
type (
	BackendBuffer        interface{ IsBackendBuffer() }
	BackendTexture       interface{ IsBackendTexture() }
	BackendSampler       interface{ IsBackendSampler() }
	BackendShaderModule  interface{ IsBackendShaderModule() }
	BackendRootSignature interface{ IsBackendRootSignature() }
	BackendResourceGroup interface{ IsBackendResourceGroup() }
	BackendPipelineState interface{ IsBackendPipelineState() }
	BackendRenderPass    interface{ IsBackendRenderPass() }
	BackendFramebuffer   interface{ IsBackendFramebuffer() }
	BackendSwapChain     interface{ IsBackendSwapChain() }
	BackendVertexArray   interface{ IsBackendVertexArray() }
)
