package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/ral/engine/core"
	"github.com/spaghettifunk/ral/engine/renderer"
)

// VulkanRenderpass is the native handle behind a renderer.RenderPass:
// just the attachment-format description plus the built vk.RenderPass,
// since attachment clear values are supplied per-draw through the
// ClearGraphics dispatch command rather than baked into the pass.
type VulkanRenderpass struct {
	Handle       vk.RenderPass
	ColorFormats []vk.Format
	HasDepth     bool
	DepthFormat  vk.Format
}

// RenderpassCreate builds one subpass with ColorFormats color attachments
// (plus an optional depth attachment), all using LOAD_OP_LOAD /
// STORE_OP_STORE: the pass never clears on its own, because clears are
// recorded explicitly (see Backend.ClearGraphics in commands.go).
func RenderpassCreate(context *VulkanContext, colorFormats []vk.Format, depthFormat *vk.Format) (*VulkanRenderpass, error) {
	rp := &VulkanRenderpass{ColorFormats: append([]vk.Format(nil), colorFormats...)}

	attachmentDescriptions := make([]vk.AttachmentDescription, 0, len(colorFormats)+1)
	colorRefs := make([]vk.AttachmentReference, 0, len(colorFormats))

	for _, format := range colorFormats {
		attachmentDescriptions = append(attachmentDescriptions, vk.AttachmentDescription{
			Format:         format,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpLoad,
			StoreOp:        vk.AttachmentStoreOpStore,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutColorAttachmentOptimal,
			FinalLayout:    vk.ImageLayoutColorAttachmentOptimal,
		})
		colorRefs = append(colorRefs, vk.AttachmentReference{
			Attachment: uint32(len(attachmentDescriptions) - 1),
			Layout:     vk.ImageLayoutColorAttachmentOptimal,
		})
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: uint32(len(colorRefs)),
		PColorAttachments:    colorRefs,
	}

	var depthRef vk.AttachmentReference
	if depthFormat != nil {
		rp.HasDepth = true
		rp.DepthFormat = *depthFormat
		attachmentDescriptions = append(attachmentDescriptions, vk.AttachmentDescription{
			Format:         *depthFormat,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpLoad,
			StoreOp:        vk.AttachmentStoreOpStore,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutDepthStencilAttachmentOptimal,
			FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
		})
		depthRef = vk.AttachmentReference{
			Attachment: uint32(len(attachmentDescriptions) - 1),
			Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
		}
		subpass.PDepthStencilAttachment = &depthRef
	}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit) | vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	}

	createInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachmentDescriptions)),
		PAttachments:    attachmentDescriptions,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}

	if res := vk.CreateRenderPass(context.Device.LogicalDevice, &createInfo, context.Allocator, &rp.Handle); res != vk.Success {
		err := fmt.Errorf("failed to create renderpass")
		core.LogError(err.Error())
		return nil, err
	}

	return rp, nil
}

func (vr *VulkanRenderpass) RenderpassDestroy(context *VulkanContext) {
	if vr.Handle != nil {
		vk.DestroyRenderPass(context.Device.LogicalDevice, vr.Handle, context.Allocator)
		vr.Handle = nil
	}
}

// RenderpassBegin opens the pass over frameBuffer at the given extent.
// Because every attachment uses LOAD_OP_LOAD, the clear values passed to
// the begin info are never applied; ClearGraphics (commands.go) is what
// actually clears content mid-pass, via vkCmdClearAttachments.
func (vr *VulkanRenderpass) RenderpassBegin(commandBuffer *VulkanCommandBuffer, frameBuffer vk.Framebuffer, width, height uint32) {
	beginInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  vr.Handle,
		Framebuffer: frameBuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: vk.Extent2D{Width: width, Height: height},
		},
	}

	clearValues := make([]vk.ClearValue, len(vr.ColorFormats))
	for i := range clearValues {
		clearValues[i].SetColor([]float32{0, 0, 0, 1})
	}
	if vr.HasDepth {
		depthClear := vk.ClearValue{}
		depthClear.SetDepthStencil(1.0, 0)
		clearValues = append(clearValues, depthClear)
	}
	beginInfo.ClearValueCount = uint32(len(clearValues))
	beginInfo.PClearValues = clearValues

	vk.CmdBeginRenderPass(commandBuffer.Handle, &beginInfo, vk.SubpassContentsInline)
	commandBuffer.State = COMMAND_BUFFER_STATE_IN_RENDER_PASS
}

func (vr *VulkanRenderpass) RenderpassEnd(commandBuffer *VulkanCommandBuffer) {
	vk.CmdEndRenderPass(commandBuffer.Handle)
	commandBuffer.State = COMMAND_BUFFER_STATE_RECORDING
}

// CreateRenderPass implements renderer.Backend. It resolves
// RenderPassDescriptor's TextureFormats to native vk.Format and delegates
// to RenderpassCreate.
func (b *Backend) CreateRenderPass(desc renderer.RenderPassDescriptor) renderer.BackendRenderPass {
	colorFormats := make([]vk.Format, len(desc.ColorFormats))
	for i, f := range desc.ColorFormats {
		colorFormats[i] = vulkanFormat(f)
	}
	var depthFormat *vk.Format
	if desc.DepthFormat != nil {
		f := vulkanFormat(*desc.DepthFormat)
		depthFormat = &f
	}

	pass, err := RenderpassCreate(b.context, colorFormats, depthFormat)
	if err != nil {
		b.ctx.Log(core.LogLevelCritical, "CreateRenderPass: %v", err)
		return nil
	}
	return &backendRenderPass{pass: pass}
}

func (b *Backend) DestroyRenderPass(rp renderer.BackendRenderPass) {
	brp, ok := rp.(*backendRenderPass)
	if !ok || brp == nil || brp.pass == nil {
		return
	}
	brp.pass.RenderpassDestroy(b.context)
}
