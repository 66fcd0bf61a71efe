package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/ral/engine/core"
	"github.com/spaghettifunk/ral/engine/renderer"
)

// CreateSwapChain builds a VulkanSwapchain plus one backendFramebuffer per
// swap-chain image, all sharing the swap chain's single depth attachment
// and bound against desc.RenderPass's native render pass. Each swap chain
// gets its own acquire fence: because this backend records every frame
// into one reusable command buffer gated on its own frameFence
// (backend.go), there is no per-frame-in-flight semaphore to hand
// vkAcquireNextImage, so acquisition here waits on a fence instead.
func (b *Backend) CreateSwapChain(desc renderer.SwapChainDescriptor) renderer.BackendSwapChain {
	brp, ok := desc.RenderPass.Backend().(*backendRenderPass)
	if !ok || brp == nil || brp.pass == nil {
		b.ctx.Log(core.LogLevelCritical, "CreateSwapChain: render pass has no native backend")
		return nil
	}

	swapchain, err := SwapchainCreate(b.context, desc.Width, desc.Height)
	if err != nil {
		b.ctx.Log(core.LogLevelCritical, "CreateSwapChain: %v", err)
		return nil
	}

	framebuffers := make([]*backendFramebuffer, swapchain.ImageCount)
	for i := 0; i < int(swapchain.ImageCount); i++ {
		attachments := []vk.ImageView{swapchain.Views[i]}
		if brp.pass.HasDepth {
			attachments = append(attachments, swapchain.DepthAttachment.View)
		}
		fb, err := FramebufferCreate(b.context, brp.pass, desc.Width, desc.Height, uint32(len(attachments)), attachments,
			fmt.Sprintf("swapchain-image-%d", i))
		if err != nil {
			b.ctx.Log(core.LogLevelCritical, "CreateSwapChain: failed building framebuffer for image %d: %v", i, err)
			for j := 0; j < i; j++ {
				framebuffers[j].framebuffer.Destroy(b.context)
			}
			swapchain.SwapchainDestroy(b.context)
			return nil
		}
		framebuffers[i] = &backendFramebuffer{
			framebuffer: fb,
			renderPass:  brp.pass,
			colorImages: []*VulkanImage{{Handle: swapchain.Images[i], View: swapchain.Views[i], Width: desc.Width, Height: desc.Height}},
			depthImage:  swapchain.DepthAttachment,
			width:       desc.Width,
			height:      desc.Height,
		}
	}

	acquireFence, err := NewFence(b.context, false)
	if err != nil {
		b.ctx.Log(core.LogLevelCritical, "CreateSwapChain: %v", err)
		for _, fb := range framebuffers {
			fb.framebuffer.Destroy(b.context)
		}
		swapchain.SwapchainDestroy(b.context)
		return nil
	}

	return &backendSwapChain{
		swapchain:    swapchain,
		framebuffers: framebuffers,
		acquireFence: acquireFence,
	}
}

func (b *Backend) DestroySwapChain(sc renderer.BackendSwapChain) {
	bsc, ok := sc.(*backendSwapChain)
	if !ok || bsc == nil {
		return
	}
	if bsc.acquireFence != nil {
		bsc.acquireFence.FenceDestroy(b.context)
	}
	for _, fb := range bsc.framebuffers {
		fb.framebuffer.Destroy(b.context)
	}
	if bsc.swapchain != nil {
		bsc.swapchain.SwapchainDestroy(b.context)
	}
}

// SwapChainAcquireNext issues vkAcquireNextImage directly and reports
// OUT_OF_DATE as core.ErrSwapchainOutdated without recreating anything -
// recreation is the renderer package's job (engine/renderer/swapchain.go
// retries against a freshly built backend swap chain on that error).
func (b *Backend) SwapChainAcquireNext(sc renderer.BackendSwapChain) (uint32, error) {
	bsc, ok := sc.(*backendSwapChain)
	if !ok || bsc == nil {
		return 0, core.ErrUnknown
	}

	var imageIndex uint32
	result := vk.AcquireNextImage(b.context.Device.LogicalDevice, bsc.swapchain.Handle, ^uint64(0), nil, bsc.acquireFence.Handle, &imageIndex)
	switch result {
	case vk.Success, vk.Suboptimal:
	case vk.ErrorOutOfDate:
		return 0, core.ErrSwapchainOutdated
	default:
		return 0, VulkanError("vkAcquireNextImage", result)
	}

	if err := bsc.acquireFence.FenceWait(b.context, ^uint64(0)); err != nil {
		return 0, fmt.Errorf("swap chain image acquire fence: %w", err)
	}
	if err := bsc.acquireFence.FenceReset(b.context); err != nil {
		return 0, err
	}
	return imageIndex, nil
}

// SwapChainPresent issues vkQueuePresent with no wait semaphores: EndFrame
// (backend.go) already blocks on vkQueueWaitIdle before returning, so by
// the time Present is called the submitted work is known complete.
func (b *Backend) SwapChainPresent(sc renderer.BackendSwapChain, imageIndex uint32) error {
	bsc, ok := sc.(*backendSwapChain)
	if !ok || bsc == nil {
		return core.ErrUnknown
	}

	presentInfo := vk.PresentInfo{
		SType:          vk.StructureTypePresentInfo,
		SwapchainCount: 1,
		PSwapchains:    []vk.Swapchain{bsc.swapchain.Handle},
		PImageIndices:  []uint32{imageIndex},
	}

	result := vk.QueuePresent(b.context.Device.PresentQueue, &presentInfo)
	switch result {
	case vk.Success:
		return nil
	case vk.ErrorOutOfDate, vk.Suboptimal:
		return core.ErrSwapchainOutdated
	default:
		return VulkanError("vkQueuePresent", result)
	}
}

func (b *Backend) SwapChainFramebuffer(sc renderer.BackendSwapChain, imageIndex uint32) renderer.BackendFramebuffer {
	bsc, ok := sc.(*backendSwapChain)
	if !ok || bsc == nil || int(imageIndex) >= len(bsc.framebuffers) {
		return nil
	}
	return bsc.framebuffers[imageIndex]
}
