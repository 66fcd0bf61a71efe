package null

import "github.com/spaghettifunk/ral/engine/renderer"

// The command-dispatch methods below intentionally do nothing but count:
// the null backend's entire point is to let the reference-counted object
// graph and command-recording API be exercised without a GPU.

func (b *Backend) SetGraphicsRootSignature(renderer.BackendRootSignature) {}
func (b *Backend) SetGraphicsPipelineState(renderer.BackendPipelineState) {}
func (b *Backend) SetGraphicsResourceGroup(uint32, renderer.BackendResourceGroup) {}
func (b *Backend) SetGraphicsVertexArray(renderer.BackendVertexArray) {}
func (b *Backend) SetGraphicsViewports([]renderer.Viewport) {}
func (b *Backend) SetGraphicsScissorRectangles([]renderer.ScissorRectangle) {}
func (b *Backend) SetGraphicsRenderTarget(renderer.BackendFramebuffer) {}
func (b *Backend) ClearGraphics(renderer.ClearFlag, [4]float32, float32, uint32) {}

func (b *Backend) DrawGraphics(renderer.DrawArguments) {
	b.drawCount++
}

func (b *Backend) DrawIndexedGraphics(renderer.DrawIndexedArguments) {
	b.drawCount++
}

func (b *Backend) SetComputeRootSignature(renderer.BackendRootSignature) {}
func (b *Backend) SetComputePipelineState(renderer.BackendPipelineState) {}
func (b *Backend) SetComputeResourceGroup(uint32, renderer.BackendResourceGroup) {}

func (b *Backend) DispatchCompute(groupX, groupY, groupZ uint32) {
	b.dispatchCount++
}

func (b *Backend) SetTextureMinimumMaximumMipmapIndex(renderer.BackendTexture, uint32, uint32) {}
func (b *Backend) ResolveMultisampleFramebuffer(renderer.BackendFramebuffer, renderer.BackendFramebuffer) {}
func (b *Backend) CopyResource(interface{}, interface{})                                        {}
func (b *Backend) SetDebugMarker(string)                                                        {}
func (b *Backend) BeginDebugEvent(string)                                                       {}
func (b *Backend) EndDebugEvent()                                                                {}
