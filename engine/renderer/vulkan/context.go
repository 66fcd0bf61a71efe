package vulkan

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/ral/engine/core"
)

// VulkanBuffer is the concrete buffer representation backing
// BackendBuffer, BackendVertexArray index/vertex storage and the
// staging buffers used to upload texture/buffer data to the GPU.
type VulkanBuffer struct {
	Handle              vk.Buffer
	Usage               vk.BufferUsageFlags
	IsLocked            bool
	Memory              vk.DeviceMemory
	MemoryRequirements  vk.MemoryRequirements
	MemoryIndex         int32
	MemoryPropertyFlags uint32
}

// VulkanContext holds every piece of device/swapchain/sync state the
// backend needs across frames. It is owned by the single VulkanBackend
// instance and never touched directly by renderer-package code.
type VulkanContext struct {
	FrameDeltaTime float32

	FramebufferWidth  uint32
	FramebufferHeight uint32
	// FramebufferSizeGeneration is bumped on every Backend.Resized call;
	// swap-chain recreation is driven by engine/renderer/swapchain.go
	// rather than by comparing generations here.
	FramebufferSizeGeneration uint64

	Instance  vk.Instance
	Allocator *vk.AllocationCallbacks
	Surface   vk.Surface

	debugMessenger vk.DebugReportCallback

	// Options carries the host's RendererOptions (see engine/core/config.go)
	// into physical-device selection, so requirements like discrete-GPU-only
	// or sampler anisotropy come from configuration rather than a literal
	// hardcoded at the call site.
	Options core.RendererOptions

	Device *VulkanDevice
}

func (vc *VulkanContext) FindMemoryIndex(typeFilter, propertyFlags uint32) int32 {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(vc.Device.PhysicalDevice, &memoryProperties)
	memoryProperties.Deref()

	for i := uint32(0); i < memoryProperties.MemoryTypeCount; i++ {
		// Check each memory type to see if its bit is set to 1.
		memoryProperties.MemoryTypes[i].Deref()
		if (typeFilter&(1<<i)) != 0 && (uint32(memoryProperties.MemoryTypes[i].PropertyFlags)&propertyFlags) == propertyFlags {
			return int32(i)
		}
	}
	core.LogWarn("Unable to find suitable memory type!")
	return -1
}
