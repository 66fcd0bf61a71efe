package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/ral/engine/renderer"
)

// bufferAllocate creates a vk.Buffer of sizeBytes and binds freshly
// allocated device memory matching memoryFlags, mirroring ImageCreate's
// allocate-then-bind recipe (image.go).
func bufferAllocate(context *VulkanContext, sizeBytes uint64, usage vk.BufferUsageFlags, memoryFlags vk.MemoryPropertyFlags) (*VulkanBuffer, error) {
	buf := &VulkanBuffer{Usage: usage}

	createInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(sizeBytes),
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}
	if res := vk.CreateBuffer(context.Device.LogicalDevice, &createInfo, context.Allocator, &buf.Handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create buffer")
	}

	vk.GetBufferMemoryRequirements(context.Device.LogicalDevice, buf.Handle, &buf.MemoryRequirements)
	buf.MemoryRequirements.Deref()

	memoryIndex := context.FindMemoryIndex(buf.MemoryRequirements.MemoryTypeBits, uint32(memoryFlags))
	if memoryIndex == -1 {
		vk.DestroyBuffer(context.Device.LogicalDevice, buf.Handle, context.Allocator)
		return nil, fmt.Errorf("unable to find suitable memory type for buffer")
	}
	buf.MemoryIndex = memoryIndex
	buf.MemoryPropertyFlags = uint32(memoryFlags)

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  buf.MemoryRequirements.Size,
		MemoryTypeIndex: uint32(memoryIndex),
	}
	if res := vk.AllocateMemory(context.Device.LogicalDevice, &allocateInfo, context.Allocator, &buf.Memory); res != vk.Success {
		vk.DestroyBuffer(context.Device.LogicalDevice, buf.Handle, context.Allocator)
		return nil, fmt.Errorf("failed to allocate buffer memory")
	}
	if res := vk.BindBufferMemory(context.Device.LogicalDevice, buf.Handle, buf.Memory, 0); res != vk.Success {
		return nil, fmt.Errorf("failed to bind buffer memory")
	}
	return buf, nil
}

// bufferLoadData maps, copies, and unmaps host-visible memory - valid only
// for buffers created with MemoryPropertyHostVisibleBit (the staging
// buffer path, and uniform buffers since this backend keeps them
// host-coherent for simplicity rather than adding a separate flush step).
func bufferLoadData(context *VulkanContext, buf *VulkanBuffer, offset uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var mapped unsafe.Pointer
	if res := vk.MapMemory(context.Device.LogicalDevice, buf.Memory, vk.DeviceSize(offset), vk.DeviceSize(len(data)), 0, &mapped); res != vk.Success {
		return fmt.Errorf("failed to map buffer memory")
	}
	dst := (*[1 << 30]byte)(mapped)[:len(data):len(data)]
	copy(dst, data)
	vk.UnmapMemory(context.Device.LogicalDevice, buf.Memory)
	return nil
}

// bufferUploadViaStaging is the path for device-local (GPU-only) buffers:
// data lands in a transient host-visible staging buffer, then a single-use
// command buffer copies it into the destination (same idiom
// ImageCopyFromBuffer uses for textures).
func bufferUploadViaStaging(context *VulkanContext, dst *VulkanBuffer, sizeBytes uint64, data []byte) error {
	staging, err := bufferAllocate(context, sizeBytes, vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)|vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return err
	}
	defer bufferDestroy(context, staging)

	if err := bufferLoadData(context, staging, 0, data); err != nil {
		return err
	}

	cmd, err := AllocateAndBeginSingleUse(context, context.Device.GraphicsCommandPool)
	if err != nil {
		return err
	}
	region := vk.BufferCopy{Size: vk.DeviceSize(sizeBytes)}
	vk.CmdCopyBuffer(cmd.Handle, staging.Handle, dst.Handle, 1, []vk.BufferCopy{region})
	return cmd.EndSingleUse(context, context.Device.GraphicsCommandPool, context.Device.GraphicsQueue)
}

func bufferDestroy(context *VulkanContext, buf *VulkanBuffer) {
	if buf == nil {
		return
	}
	if buf.Memory != nil {
		vk.FreeMemory(context.Device.LogicalDevice, buf.Memory, context.Allocator)
		buf.Memory = nil
	}
	if buf.Handle != nil {
		vk.DestroyBuffer(context.Device.LogicalDevice, buf.Handle, context.Allocator)
		buf.Handle = nil
	}
}

// vulkanBufferUsageFlags derives the native usage bits a BufferKind/
// BufferFlag combination needs.
func vulkanBufferUsageFlags(kind renderer.BufferKind, flags renderer.BufferFlag) vk.BufferUsageFlags {
	var usage vk.BufferUsageFlagBits
	usage |= vk.BufferUsageTransferDstBit | vk.BufferUsageTransferSrcBit
	switch kind {
	case renderer.BufferKindIndex:
		usage |= vk.BufferUsageIndexBufferBit
	case renderer.BufferKindVertex:
		usage |= vk.BufferUsageVertexBufferBit
	case renderer.BufferKindUniform:
		usage |= vk.BufferUsageUniformBufferBit
	case renderer.BufferKindTexture:
		usage |= vk.BufferUsageUniformTexelBufferBit | vk.BufferUsageStorageTexelBufferBit
	case renderer.BufferKindStructured:
		usage |= vk.BufferUsageStorageBufferBit
	case renderer.BufferKindIndirect:
		usage |= vk.BufferUsageIndirectBufferBit
	}
	if flags&renderer.BufferFlagUnorderedAccess != 0 {
		usage |= vk.BufferUsageStorageBufferBit
	}
	if flags&renderer.BufferFlagDrawArguments != 0 || flags&renderer.BufferFlagDrawIndexedArguments != 0 {
		usage |= vk.BufferUsageIndirectBufferBit
	}
	return vk.BufferUsageFlags(usage)
}
