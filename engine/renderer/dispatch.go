package renderer

// dispatch walks cb's packet arena in recorded order and invokes the
// dispatch-function table entry on r.backend each packet's Kind selects
//. A CommandExecuteCommandBuffer packet recurses into the
// nested buffer so its packets are dispatched inline, flattening secondary
// buffers into the primary stream rather than requiring the backend to
// understand nesting itself.
func (r *Renderer) dispatch(cb *CommandBuffer) error {
	for _, raw := range cb.packets {
		switch p := raw.(type) {
		case packetSetGraphicsRootSignature:
			r.backend.SetGraphicsRootSignature(p.RootSignature.Backend())
		case packetSetGraphicsPipelineState:
			r.backend.SetGraphicsPipelineState(p.PipelineState.BackendHandle().(BackendPipelineState))
		case packetSetGraphicsResourceGroup:
			r.backend.SetGraphicsResourceGroup(p.RootParameterIndex, p.ResourceGroup.backend)
		case packetSetGraphicsVertexArray:
			r.backend.SetGraphicsVertexArray(p.VertexArray.Backend())
		case packetSetGraphicsViewports:
			r.backend.SetGraphicsViewports(p.Viewports)
		case packetSetGraphicsScissorRectangles:
			r.backend.SetGraphicsScissorRectangles(p.Rectangles)
		case packetSetGraphicsRenderTarget:
			r.backend.SetGraphicsRenderTarget(p.Framebuffer.Backend())
		case packetSetGraphicsRenderTargetSwapChain:
			r.backend.SetGraphicsRenderTarget(p.Framebuffer)
		case packetClearGraphics:
			r.backend.ClearGraphics(p.Flags, p.Color, p.Depth, p.Stencil)
		case packetDrawGraphics:
			r.backend.DrawGraphics(p.Args)
		case packetDrawIndexedGraphics:
			r.backend.DrawIndexedGraphics(p.Args)
		case packetSetComputeRootSignature:
			r.backend.SetComputeRootSignature(p.RootSignature.Backend())
		case packetSetComputePipelineState:
			r.backend.SetComputePipelineState(p.PipelineState.BackendHandle().(BackendPipelineState))
		case packetSetComputeResourceGroup:
			r.backend.SetComputeResourceGroup(p.RootParameterIndex, p.ResourceGroup.backend)
		case packetDispatchCompute:
			r.backend.DispatchCompute(p.GroupX, p.GroupY, p.GroupZ)
		case packetSetTextureMinimumMaximumMipmapIndex:
			r.backend.SetTextureMinimumMaximumMipmapIndex(p.Texture.BackendHandle().(BackendTexture), p.MinimumMipmapIndex, p.MaximumMipmapIndex)
		case packetResolveMultisampleFramebuffer:
			r.backend.ResolveMultisampleFramebuffer(p.Source.Backend(), p.Destination.Backend())
		case packetCopyResource:
			r.backend.CopyResource(p.Source.BackendHandle(), p.Destination.BackendHandle())
		case packetSetDebugMarker:
			r.backend.SetDebugMarker(p.Name)
		case packetBeginDebugEvent:
			r.backend.BeginDebugEvent(p.Name)
		case packetEndDebugEvent:
			r.backend.EndDebugEvent()
		case packetExecuteCommandBuffer:
			if err := r.dispatch(p.CommandBuffer); err != nil {
				return err
			}
		}
	}
	return nil
}
