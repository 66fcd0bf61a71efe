package renderer

import "github.com/spaghettifunk/ral/engine/core"

// Viewport.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// ScissorRectangle.
type ScissorRectangle struct {
	Left, Top, Right, Bottom int32
}

// CommandKind tags every packet a CommandBuffer can hold.
type CommandKind int

const (
	CommandSetGraphicsRootSignature CommandKind = iota
	CommandSetGraphicsPipelineState
	CommandSetGraphicsResourceGroup
	CommandSetGraphicsVertexArray
	CommandSetGraphicsViewports
	CommandSetGraphicsScissorRectangles
	CommandSetGraphicsRenderTarget
	CommandSetGraphicsRenderTargetSwapChain
	CommandClearGraphics
	CommandDrawGraphics
	CommandDrawIndexedGraphics
	CommandSetComputeRootSignature
	CommandSetComputePipelineState
	CommandSetComputeResourceGroup
	CommandDispatchCompute
	CommandSetTextureMinimumMaximumMipmapIndex
	CommandResolveMultisampleFramebuffer
	CommandCopyResource
	CommandSetDebugMarker
	CommandBeginDebugEvent
	CommandEndDebugEvent
	CommandExecuteCommandBuffer
)

// CommandPacket is one recorded entry in a CommandBuffer's arena. Each
// concrete packet type below carries exactly the payload its command
// needs; Kind lets a backend's dispatch table switch on it without a type
// assertion chain.
type CommandPacket interface {
	Kind() CommandKind
}

type packetSetGraphicsRootSignature struct{ RootSignature *RootSignature }
func (packetSetGraphicsRootSignature) Kind() CommandKind { return CommandSetGraphicsRootSignature }

type packetSetGraphicsPipelineState struct{ PipelineState *GraphicsPipelineState }
func (packetSetGraphicsPipelineState) Kind() CommandKind { return CommandSetGraphicsPipelineState }

type packetSetGraphicsResourceGroup struct {
	RootParameterIndex uint32
	ResourceGroup      *ResourceGroup
}
func (packetSetGraphicsResourceGroup) Kind() CommandKind { return CommandSetGraphicsResourceGroup }

type packetSetGraphicsVertexArray struct{ VertexArray *VertexArray }
func (packetSetGraphicsVertexArray) Kind() CommandKind { return CommandSetGraphicsVertexArray }

type packetSetGraphicsViewports struct{ Viewports []Viewport }
func (packetSetGraphicsViewports) Kind() CommandKind { return CommandSetGraphicsViewports }

type packetSetGraphicsScissorRectangles struct{ Rectangles []ScissorRectangle }
func (packetSetGraphicsScissorRectangles) Kind() CommandKind {
	return CommandSetGraphicsScissorRectangles
}

type packetSetGraphicsRenderTarget struct{ Framebuffer *Framebuffer }
func (packetSetGraphicsRenderTarget) Kind() CommandKind { return CommandSetGraphicsRenderTarget }

// packetSetGraphicsRenderTargetSwapChain targets an already-acquired swap
// chain image directly, bypassing the ref-counted Framebuffer wrapper:
// a swap-chain image has no attachment Texture of its own for Framebuffer
// to hold a strong reference to.
type packetSetGraphicsRenderTargetSwapChain struct{ Framebuffer BackendFramebuffer }
func (packetSetGraphicsRenderTargetSwapChain) Kind() CommandKind {
	return CommandSetGraphicsRenderTargetSwapChain
}

type packetClearGraphics struct {
	Flags        ClearFlag
	Color        [4]float32
	Depth        float32
	Stencil      uint32
}
func (packetClearGraphics) Kind() CommandKind { return CommandClearGraphics }

type packetDrawGraphics struct{ Args DrawArguments }
func (packetDrawGraphics) Kind() CommandKind { return CommandDrawGraphics }

type packetDrawIndexedGraphics struct{ Args DrawIndexedArguments }
func (packetDrawIndexedGraphics) Kind() CommandKind { return CommandDrawIndexedGraphics }

type packetSetComputeRootSignature struct{ RootSignature *RootSignature }
func (packetSetComputeRootSignature) Kind() CommandKind { return CommandSetComputeRootSignature }

type packetSetComputePipelineState struct{ PipelineState *ComputePipelineState }
func (packetSetComputePipelineState) Kind() CommandKind { return CommandSetComputePipelineState }

type packetSetComputeResourceGroup struct {
	RootParameterIndex uint32
	ResourceGroup      *ResourceGroup
}
func (packetSetComputeResourceGroup) Kind() CommandKind { return CommandSetComputeResourceGroup }

type packetDispatchCompute struct{ GroupX, GroupY, GroupZ uint32 }
func (packetDispatchCompute) Kind() CommandKind { return CommandDispatchCompute }

type packetSetTextureMinimumMaximumMipmapIndex struct {
	Texture            *Texture
	MinimumMipmapIndex uint32
	MaximumMipmapIndex uint32
}
func (packetSetTextureMinimumMaximumMipmapIndex) Kind() CommandKind {
	return CommandSetTextureMinimumMaximumMipmapIndex
}

type packetResolveMultisampleFramebuffer struct {
	Source      *Framebuffer
	Destination *Framebuffer
}
func (packetResolveMultisampleFramebuffer) Kind() CommandKind {
	return CommandResolveMultisampleFramebuffer
}

type packetCopyResource struct {
	Source      BoundResource
	Destination BoundResource
}
func (packetCopyResource) Kind() CommandKind { return CommandCopyResource }

type packetSetDebugMarker struct{ Name string }
func (packetSetDebugMarker) Kind() CommandKind { return CommandSetDebugMarker }

type packetBeginDebugEvent struct{ Name string }
func (packetBeginDebugEvent) Kind() CommandKind { return CommandBeginDebugEvent }

type packetEndDebugEvent struct{}
func (packetEndDebugEvent) Kind() CommandKind { return CommandEndDebugEvent }

type packetExecuteCommandBuffer struct{ CommandBuffer *CommandBuffer }
func (packetExecuteCommandBuffer) Kind() CommandKind { return CommandExecuteCommandBuffer }

// CommandBuffer is an append-only, bump-allocated arena of typed command
// packets: recording only ever grows the backing slice, never
// mutates an already-recorded packet, and packets are read back in
// insertion order by Renderer.dispatch (dispatch.go).
type CommandBuffer struct {
	renderer       *Renderer
	packets        []CommandPacket
	insideRenderPass bool
}

// NewCommandBuffer allocates an empty CommandBuffer bound to r. Capacity
// is a hint only; the arena still grows past it via append.
func (r *Renderer) NewCommandBuffer(capacityHint int) *CommandBuffer {
	return &CommandBuffer{renderer: r, packets: make([]CommandPacket, 0, capacityHint)}
}

func (cb *CommandBuffer) Renderer() *Renderer        { return cb.renderer }
func (cb *CommandBuffer) Packets() []CommandPacket   { return cb.packets }
func (cb *CommandBuffer) Len() int                   { return len(cb.packets) }

func (cb *CommandBuffer) record(p CommandPacket) {
	cb.packets = append(cb.packets, p)
}

func (cb *CommandBuffer) SetGraphicsRootSignature(rs *RootSignature) {
	cb.record(packetSetGraphicsRootSignature{RootSignature: rs})
}

func (cb *CommandBuffer) SetGraphicsPipelineState(pso *GraphicsPipelineState) {
	cb.record(packetSetGraphicsPipelineState{PipelineState: pso})
}

func (cb *CommandBuffer) SetGraphicsResourceGroup(rootParameterIndex uint32, rg *ResourceGroup) {
	cb.record(packetSetGraphicsResourceGroup{RootParameterIndex: rootParameterIndex, ResourceGroup: rg})
}

func (cb *CommandBuffer) SetGraphicsVertexArray(va *VertexArray) {
	cb.record(packetSetGraphicsVertexArray{VertexArray: va})
}

func (cb *CommandBuffer) SetGraphicsViewports(viewports []Viewport) {
	cb.record(packetSetGraphicsViewports{Viewports: append([]Viewport(nil), viewports...)})
}

func (cb *CommandBuffer) SetGraphicsScissorRectangles(rects []ScissorRectangle) {
	cb.record(packetSetGraphicsScissorRectangles{Rectangles: append([]ScissorRectangle(nil), rects...)})
}

// SetGraphicsRenderTarget records a render-target switch. The Vulkan
// backend ends any open pass and calls vkCmdBeginRenderPass as soon as
// this packet is dispatched; the begin is not deferred to the first draw
// or clear, so back-to-back switches with no draw in between each open
// and close a pass. Re-selecting the already bound target is a no-op.
func (cb *CommandBuffer) SetGraphicsRenderTarget(fb *Framebuffer) {
	cb.record(packetSetGraphicsRenderTarget{Framebuffer: fb})
	cb.insideRenderPass = true
}

// SetGraphicsRenderTargetSwapChain targets the BackendFramebuffer returned
// by Renderer.SwapChainCurrentFramebuffer, for recording the frame that
// presents to a SwapChain rather than an offscreen Framebuffer.
func (cb *CommandBuffer) SetGraphicsRenderTargetSwapChain(fb BackendFramebuffer) {
	cb.record(packetSetGraphicsRenderTargetSwapChain{Framebuffer: fb})
	cb.insideRenderPass = true
}

func (cb *CommandBuffer) ClearGraphics(flags ClearFlag, color [4]float32, depth float32, stencil uint32) {
	cb.record(packetClearGraphics{Flags: flags, Color: color, Depth: depth, Stencil: stencil})
}

func (cb *CommandBuffer) DrawGraphics(args DrawArguments) {
	cb.record(packetDrawGraphics{Args: args})
}

func (cb *CommandBuffer) DrawIndexedGraphics(args DrawIndexedArguments) {
	cb.record(packetDrawIndexedGraphics{Args: args})
}

func (cb *CommandBuffer) SetComputeRootSignature(rs *RootSignature) {
	cb.record(packetSetComputeRootSignature{RootSignature: rs})
}

func (cb *CommandBuffer) SetComputePipelineState(pso *ComputePipelineState) {
	cb.record(packetSetComputePipelineState{PipelineState: pso})
}

func (cb *CommandBuffer) SetComputeResourceGroup(rootParameterIndex uint32, rg *ResourceGroup) {
	cb.record(packetSetComputeResourceGroup{RootParameterIndex: rootParameterIndex, ResourceGroup: rg})
}

func (cb *CommandBuffer) DispatchCompute(groupX, groupY, groupZ uint32) {
	cb.record(packetDispatchCompute{GroupX: groupX, GroupY: groupY, GroupZ: groupZ})
}

func (cb *CommandBuffer) SetTextureMinimumMaximumMipmapIndex(tex *Texture, minIndex, maxIndex uint32) {
	cb.record(packetSetTextureMinimumMaximumMipmapIndex{
		Texture: tex, MinimumMipmapIndex: minIndex, MaximumMipmapIndex: maxIndex,
	})
}

func (cb *CommandBuffer) ResolveMultisampleFramebuffer(source, destination *Framebuffer) {
	cb.record(packetResolveMultisampleFramebuffer{Source: source, Destination: destination})
}

func (cb *CommandBuffer) CopyResource(source, destination BoundResource) {
	cb.record(packetCopyResource{Source: source, Destination: destination})
}

func (cb *CommandBuffer) SetDebugMarker(name string) {
	if !cb.renderer.ctx.DebugEnabled() {
		return
	}
	cb.record(packetSetDebugMarker{Name: name})
}

func (cb *CommandBuffer) BeginDebugEvent(name string) {
	if !cb.renderer.ctx.DebugEnabled() {
		return
	}
	cb.record(packetBeginDebugEvent{Name: name})
}

func (cb *CommandBuffer) EndDebugEvent() {
	if !cb.renderer.ctx.DebugEnabled() {
		return
	}
	cb.record(packetEndDebugEvent{})
}

// ExecuteCommandBuffer records a secondary-buffer invocation: nested is
// flattened into parent's packet stream by the backend dispatch, not by
// the arena itself.
func (cb *CommandBuffer) ExecuteCommandBuffer(nested *CommandBuffer) {
	if nested.renderer != cb.renderer {
		cb.renderer.ctx.Log(core.LogLevelCritical, "ExecuteCommandBuffer: nested command buffer belongs to a different renderer")
		return
	}
	cb.record(packetExecuteCommandBuffer{CommandBuffer: nested})
}

// Reset empties the arena for reuse without reallocating its backing
// array.
func (cb *CommandBuffer) Reset() {
	cb.packets = cb.packets[:0]
	cb.insideRenderPass = false
}
