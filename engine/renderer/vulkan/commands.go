package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/ral/engine/renderer"
)

// The dispatch methods below issue real vk.Cmd* calls against the
// command buffer Backend.BeginFrame acquired. SetGraphicsRenderTarget
// handles the render-pass open/close the null backend has no need for:
// it begins the pass immediately (not at the first draw or clear), a pass
// stays open across draws to the same framebuffer, and it is only closed
// when the target changes or the frame ends.

func (b *Backend) endActiveRenderPass() {
	if b.currentFramebuffer != nil && b.activeCmd != nil {
		b.currentFramebuffer.renderPass.RenderpassEnd(b.activeCmd)
	}
	b.currentFramebuffer = nil
}

func (b *Backend) SetGraphicsRootSignature(rs renderer.BackendRootSignature) {
	brs, ok := rs.(*backendRootSignature)
	if !ok {
		brs = nil
	}
	b.currentGraphicsRootSignature = brs
}

func (b *Backend) SetGraphicsPipelineState(p renderer.BackendPipelineState) {
	bps, ok := p.(*backendPipelineState)
	if !ok || bps == nil || b.activeCmd == nil {
		return
	}
	bps.pipeline.Bind(b.activeCmd, vk.PipelineBindPointGraphics)
}

func (b *Backend) SetGraphicsResourceGroup(rootParameterIndex uint32, rg renderer.BackendResourceGroup) {
	brg, ok := rg.(*backendResourceGroup)
	if !ok || brg == nil || b.currentGraphicsRootSignature == nil || b.activeCmd == nil {
		return
	}
	vk.CmdBindDescriptorSets(b.activeCmd.Handle, vk.PipelineBindPointGraphics,
		b.currentGraphicsRootSignature.layout, rootParameterIndex, 1,
		[]vk.DescriptorSet{brg.set}, 0, nil)
}

func (b *Backend) SetGraphicsVertexArray(va renderer.BackendVertexArray) {
	bva, ok := va.(*backendVertexArray)
	if !ok || bva == nil || b.activeCmd == nil {
		return
	}
	if len(bva.vertexBuffers) > 0 {
		buffers := make([]vk.Buffer, len(bva.vertexBuffers))
		offsets := make([]vk.DeviceSize, len(bva.vertexBuffers))
		for i, vb := range bva.vertexBuffers {
			buffers[i] = vb.buffer.buffer.Handle
			offsets[i] = vk.DeviceSize(vb.offset)
		}
		vk.CmdBindVertexBuffers(b.activeCmd.Handle, 0, uint32(len(buffers)), buffers, offsets)
	}
	if bva.indexBuffer != nil {
		vk.CmdBindIndexBuffer(b.activeCmd.Handle, bva.indexBuffer.buffer.Handle, 0, bva.indexType)
	}
}

func (b *Backend) SetGraphicsViewports(viewports []renderer.Viewport) {
	if b.activeCmd == nil || len(viewports) == 0 {
		return
	}
	vp := make([]vk.Viewport, len(viewports))
	for i, v := range viewports {
		vp[i] = vk.Viewport{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height, MinDepth: v.MinDepth, MaxDepth: v.MaxDepth}
	}
	vk.CmdSetViewport(b.activeCmd.Handle, 0, uint32(len(vp)), vp)
}

func (b *Backend) SetGraphicsScissorRectangles(rects []renderer.ScissorRectangle) {
	if b.activeCmd == nil || len(rects) == 0 {
		return
	}
	sc := make([]vk.Rect2D, len(rects))
	for i, r := range rects {
		sc[i] = vk.Rect2D{
			Offset: vk.Offset2D{X: r.Left, Y: r.Top},
			Extent: vk.Extent2D{Width: uint32(r.Right - r.Left), Height: uint32(r.Bottom - r.Top)},
		}
	}
	vk.CmdSetScissor(b.activeCmd.Handle, 0, uint32(len(sc)), sc)
}

func (b *Backend) SetGraphicsRenderTarget(fb renderer.BackendFramebuffer) {
	bfb, ok := fb.(*backendFramebuffer)
	if !ok || bfb == nil || b.activeCmd == nil {
		return
	}
	if b.currentFramebuffer == bfb {
		return
	}
	b.endActiveRenderPass()
	bfb.renderPass.RenderpassBegin(b.activeCmd, bfb.framebuffer.Handle, bfb.width, bfb.height)
	b.currentFramebuffer = bfb
}

// ClearGraphics clears the currently bound render target mid-pass via
// vkCmdClearAttachments, since every attachment uses LOAD_OP_LOAD
// (renderpass.go) rather than a bake-in clear.
func (b *Backend) ClearGraphics(flags renderer.ClearFlag, color [4]float32, depth float32, stencil uint32) {
	if b.activeCmd == nil || b.currentFramebuffer == nil {
		return
	}
	rp := b.currentFramebuffer.renderPass
	extent := vk.Rect2D{Extent: vk.Extent2D{Width: b.currentFramebuffer.width, Height: b.currentFramebuffer.height}}
	clearRect := vk.ClearRect{Rect: extent, BaseArrayLayer: 0, LayerCount: 1}

	var attachments []vk.ClearAttachment
	if flags&renderer.ClearFlagColor != 0 {
		cv := vk.ClearValue{}
		cv.SetColor(color[:])
		for i := range rp.ColorFormats {
			attachments = append(attachments, vk.ClearAttachment{
				AspectMask:      vk.ImageAspectFlags(vk.ImageAspectColorBit),
				ColorAttachment: uint32(i),
				ClearValue:      cv,
			})
		}
	}
	if rp.HasDepth && flags&(renderer.ClearFlagDepth|renderer.ClearFlagStencil) != 0 {
		cv := vk.ClearValue{}
		cv.SetDepthStencil(depth, stencil)
		attachments = append(attachments, vk.ClearAttachment{
			AspectMask: vulkanClearAspect(flags &^ renderer.ClearFlagColor),
			ClearValue: cv,
		})
	}
	if len(attachments) == 0 {
		return
	}
	vk.CmdClearAttachments(b.activeCmd.Handle, uint32(len(attachments)), attachments, 1, []vk.ClearRect{clearRect})
}

func (b *Backend) DrawGraphics(args renderer.DrawArguments) {
	if b.activeCmd == nil {
		return
	}
	vk.CmdDraw(b.activeCmd.Handle, args.VertexCountPerInstance, args.InstanceCount, args.StartVertexLocation, args.StartInstanceLocation)
}

func (b *Backend) DrawIndexedGraphics(args renderer.DrawIndexedArguments) {
	if b.activeCmd == nil {
		return
	}
	vk.CmdDrawIndexed(b.activeCmd.Handle, args.IndexCountPerInstance, args.InstanceCount,
		args.StartIndexLocation, args.BaseVertexLocation, args.StartInstanceLocation)
}

func (b *Backend) SetComputeRootSignature(rs renderer.BackendRootSignature) {
	brs, ok := rs.(*backendRootSignature)
	if !ok {
		brs = nil
	}
	b.currentComputeRootSignature = brs
}

func (b *Backend) SetComputePipelineState(p renderer.BackendPipelineState) {
	bps, ok := p.(*backendPipelineState)
	if !ok || bps == nil || b.activeCmd == nil {
		return
	}
	bps.pipeline.Bind(b.activeCmd, vk.PipelineBindPointCompute)
}

func (b *Backend) SetComputeResourceGroup(rootParameterIndex uint32, rg renderer.BackendResourceGroup) {
	brg, ok := rg.(*backendResourceGroup)
	if !ok || brg == nil || b.currentComputeRootSignature == nil || b.activeCmd == nil {
		return
	}
	vk.CmdBindDescriptorSets(b.activeCmd.Handle, vk.PipelineBindPointCompute,
		b.currentComputeRootSignature.layout, rootParameterIndex, 1,
		[]vk.DescriptorSet{brg.set}, 0, nil)
}

func (b *Backend) DispatchCompute(groupX, groupY, groupZ uint32) {
	if b.activeCmd == nil {
		return
	}
	vk.CmdDispatch(b.activeCmd.Handle, groupX, groupY, groupZ)
}

// SetTextureMinimumMaximumMipmapIndex rebuilds the texture's shader-visible
// image view over the [minimumMipmapIndex, maximumMipmapIndex] range. The
// old view is destroyed once the new one is confirmed created.
func (b *Backend) SetTextureMinimumMaximumMipmapIndex(t renderer.BackendTexture, minimumMipmapIndex, maximumMipmapIndex uint32) {
	bt, ok := t.(*backendTexture)
	if !ok || bt == nil || bt.image == nil {
		return
	}
	levelCount := maximumMipmapIndex - minimumMipmapIndex + 1
	aspect := vk.ImageAspectFlags(vk.ImageAspectColorBit)
	viewCreateInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    bt.image.Handle,
		ViewType: vulkanImageViewType(bt.kind),
		Format:   bt.format,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspect,
			BaseMipLevel:   minimumMipmapIndex,
			LevelCount:     levelCount,
			BaseArrayLayer: 0,
			LayerCount:     bt.layerCount,
		},
	}
	var view vk.ImageView
	if res := vk.CreateImageView(b.context.Device.LogicalDevice, &viewCreateInfo, b.context.Allocator, &view); res != vk.Success {
		return
	}
	if bt.image.View != nil {
		vk.DestroyImageView(b.context.Device.LogicalDevice, bt.image.View, b.context.Allocator)
	}
	bt.image.View = view
}

// ResolveMultisampleFramebuffer resolves each color attachment of source
// into the matching attachment of destination via vkCmdResolveImage.
func (b *Backend) ResolveMultisampleFramebuffer(source, destination renderer.BackendFramebuffer) {
	bsrc, ok1 := source.(*backendFramebuffer)
	bdst, ok2 := destination.(*backendFramebuffer)
	if !ok1 || !ok2 || bsrc == nil || bdst == nil || b.activeCmd == nil {
		return
	}
	n := len(bsrc.colorImages)
	if len(bdst.colorImages) < n {
		n = len(bdst.colorImages)
	}
	for i := 0; i < n; i++ {
		region := vk.ImageResolve{
			SrcSubresource: vk.ImageSubresourceLayers{AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit), LayerCount: 1},
			DstSubresource: vk.ImageSubresourceLayers{AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit), LayerCount: 1},
			Extent:         vk.Extent3D{Width: bsrc.width, Height: bsrc.height, Depth: 1},
		}
		vk.CmdResolveImage(b.activeCmd.Handle,
			bsrc.colorImages[i].Handle, vk.ImageLayoutColorAttachmentOptimal,
			bdst.colorImages[i].Handle, vk.ImageLayoutColorAttachmentOptimal,
			1, []vk.ImageResolve{region})
	}
}

// CopyResource dispatches to a buffer-to-buffer or image-to-image copy
// depending on the concrete backend handle kind; the two resources must
// agree.
func (b *Backend) CopyResource(source, destination interface{}) {
	if b.activeCmd == nil {
		return
	}
	switch src := source.(type) {
	case *backendBuffer:
		dst, ok := destination.(*backendBuffer)
		if !ok || dst == nil {
			return
		}
		size := src.size
		if dst.size < size {
			size = dst.size
		}
		region := vk.BufferCopy{Size: vk.DeviceSize(size)}
		vk.CmdCopyBuffer(b.activeCmd.Handle, src.buffer.Handle, dst.buffer.Handle, 1, []vk.BufferCopy{region})
	case *backendTexture:
		dst, ok := destination.(*backendTexture)
		if !ok || dst == nil {
			return
		}
		region := vk.ImageCopy{
			SrcSubresource: vk.ImageSubresourceLayers{AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit), LayerCount: 1},
			DstSubresource: vk.ImageSubresourceLayers{AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit), LayerCount: 1},
			Extent:         vk.Extent3D{Width: src.image.Width, Height: src.image.Height, Depth: 1},
		}
		vk.CmdCopyImage(b.activeCmd.Handle,
			src.image.Handle, vk.ImageLayoutTransferSrcOptimal,
			dst.image.Handle, vk.ImageLayoutTransferDstOptimal,
			1, []vk.ImageCopy{region})
	}
}

// SetDebugMarker, BeginDebugEvent and EndDebugEvent live in debug.go.
