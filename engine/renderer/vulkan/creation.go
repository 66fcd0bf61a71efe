package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/ral/engine/core"
	"github.com/spaghettifunk/ral/engine/renderer"
)

func (b *Backend) CreateBuffer(kind renderer.BufferKind, desc renderer.BufferDescriptor, initial []byte) renderer.BackendBuffer {
	usage := vulkanBufferUsageFlags(kind, desc.Flags)
	deviceLocal := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	hostVisible := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit) | vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit)

	memoryFlags := deviceLocal
	if kind == renderer.BufferKindUniform {
		memoryFlags = hostVisible
	}
	if desc.SizeBytes == 0 {
		b.ctx.Log(core.LogLevelCritical, "CreateBuffer: size_bytes must be > 0")
		return nil
	}

	native, err := bufferAllocate(b.context, desc.SizeBytes, usage, memoryFlags)
	if err != nil {
		// Device-local memory may be unavailable for host-visible uploads
		// on some drivers; retry host-visible so small uniform/staging-less
		// buffers on integrated GPUs still work.
		native, err = bufferAllocate(b.context, desc.SizeBytes, usage, hostVisible)
		if err != nil {
			b.ctx.Log(core.LogLevelCritical, "CreateBuffer: %v", err)
			return nil
		}
		memoryFlags = hostVisible
	}

	if len(initial) > 0 {
		if memoryFlags&hostVisible == hostVisible {
			if err := bufferLoadData(b.context, native, 0, initial); err != nil {
				b.ctx.Log(core.LogLevelCritical, "CreateBuffer: %v", err)
			}
		} else if err := bufferUploadViaStaging(b.context, native, desc.SizeBytes, initial); err != nil {
			b.ctx.Log(core.LogLevelCritical, "CreateBuffer: %v", err)
		}
	}

	return &backendBuffer{buffer: native, kind: kind, size: desc.SizeBytes}
}

func (b *Backend) DestroyBuffer(buf renderer.BackendBuffer) {
	bb, ok := buf.(*backendBuffer)
	if !ok || bb == nil || bb.buffer == nil {
		return
	}
	bufferDestroy(b.context, bb.buffer)
}

func vulkanImageType(kind renderer.TextureKind) vk.ImageType {
	if kind == renderer.TextureKind3D {
		return vk.ImageType3d
	}
	if kind == renderer.TextureKind1D {
		return vk.ImageType1d
	}
	return vk.ImageType2d
}

func vulkanImageViewType(kind renderer.TextureKind) vk.ImageViewType {
	switch kind {
	case renderer.TextureKind1D:
		return vk.ImageViewType1d
	case renderer.TextureKind2DArray:
		return vk.ImageViewType2dArray
	case renderer.TextureKind3D:
		return vk.ImageViewType3d
	case renderer.TextureKindCube:
		return vk.ImageViewTypeCube
	default:
		return vk.ImageViewType2d
	}
}

func (b *Backend) CreateTexture(kind renderer.TextureKind, desc renderer.TextureDescriptor, initial []byte) renderer.BackendTexture {
	format := vulkanFormat(desc.Format)
	aspect := vk.ImageAspectFlags(vk.ImageAspectColorBit)
	if desc.Format.IsDepth() {
		aspect = vk.ImageAspectFlags(vk.ImageAspectDepthBit)
	}

	usage := vk.ImageUsageFlags(vk.ImageUsageTransferDstBit) | vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit)
	if desc.Flags&renderer.TextureFlagShaderResource != 0 {
		usage |= vk.ImageUsageFlags(vk.ImageUsageSampledBit)
	}
	if desc.Flags&renderer.TextureFlagUnorderedAccess != 0 {
		usage |= vk.ImageUsageFlags(vk.ImageUsageStorageBit)
	}
	if desc.Flags&renderer.TextureFlagRenderTarget != 0 {
		if desc.Format.IsDepth() {
			usage |= vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit)
		} else {
			usage |= vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit)
		}
	}

	var createFlags vk.ImageCreateFlags
	if kind == renderer.TextureKindCube {
		createFlags = vk.ImageCreateFlags(vk.ImageCreateCubeCompatibleBit)
	}

	mipLevels := desc.MipLevels()
	arrayLayers := desc.LayerCount(kind)
	depth := desc.Depth
	if depth == 0 {
		depth = 1
	}

	image, err := ImageCreate(b.context, vulkanImageType(kind), desc.Width, desc.Height, depth,
		mipLevels, arrayLayers, createFlags, vulkanSampleCount(desc.Multisamples),
		format, vk.ImageTilingOptimal, usage, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
		false, aspect)
	if err != nil {
		b.ctx.Log(core.LogLevelCritical, "CreateTexture: %v", err)
		return nil
	}
	if err := image.ImageViewCreate(b.context, vulkanImageViewType(kind), format, aspect, mipLevels, arrayLayers); err != nil {
		b.ctx.Log(core.LogLevelCritical, "CreateTexture: %v", err)
		return nil
	}

	layout := vk.ImageLayoutUndefined
	if len(initial) > 0 {
		cmd, err := AllocateAndBeginSingleUse(b.context, b.context.Device.GraphicsCommandPool)
		if err != nil {
			b.ctx.Log(core.LogLevelCritical, "CreateTexture: %v", err)
			return nil
		}
		if err := image.ImageTransitionLayout(b.context, cmd, format, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal, aspect, mipLevels, arrayLayers); err != nil {
			b.ctx.Log(core.LogLevelCritical, "CreateTexture: %v", err)
			return nil
		}

		staging, err := bufferAllocate(b.context, uint64(len(initial)), vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
			vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)|vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit))
		if err != nil {
			b.ctx.Log(core.LogLevelCritical, "CreateTexture: %v", err)
			return nil
		}
		if err := bufferLoadData(b.context, staging, 0, initial); err != nil {
			b.ctx.Log(core.LogLevelCritical, "CreateTexture: %v", err)
		}
		image.ImageCopyFromBuffer(cmd, staging.Handle, arrayLayers)

		if err := image.ImageTransitionLayout(b.context, cmd, format, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal, aspect, mipLevels, arrayLayers); err != nil {
			b.ctx.Log(core.LogLevelCritical, "CreateTexture: %v", err)
		}
		if err := cmd.EndSingleUse(b.context, b.context.Device.GraphicsCommandPool, b.context.Device.GraphicsQueue); err != nil {
			b.ctx.Log(core.LogLevelCritical, "CreateTexture: %v", err)
		}
		bufferDestroy(b.context, staging)
		layout = vk.ImageLayoutShaderReadOnlyOptimal
	}

	return &backendTexture{image: image, kind: kind, format: format, mipLevels: mipLevels, layerCount: arrayLayers, layout: layout}
}

func (b *Backend) DestroyTexture(t renderer.BackendTexture) {
	bt, ok := t.(*backendTexture)
	if !ok || bt == nil || bt.image == nil {
		return
	}
	bt.image.ImageDestroy(b.context)
}

func vulkanBorderColor(c [4]float32) vk.BorderColor {
	switch {
	case c == [4]float32{0, 0, 0, 0}:
		return vk.BorderColorFloatTransparentBlack
	case c == [4]float32{1, 1, 1, 1}:
		return vk.BorderColorFloatOpaqueWhite
	default:
		return vk.BorderColorFloatOpaqueBlack
	}
}

func (b *Backend) CreateSampler(desc renderer.SamplerDescriptor) renderer.BackendSampler {
	min, mag, mipmap, compare := vulkanFilter(desc.Filter)
	createInfo := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MinFilter:               min,
		MagFilter:               mag,
		MipmapMode:              mipmap,
		AddressModeU:            vulkanAddressMode(desc.AddressU),
		AddressModeV:            vulkanAddressMode(desc.AddressV),
		AddressModeW:            vulkanAddressMode(desc.AddressW),
		MipLodBias:              desc.MipLODBias,
		AnisotropyEnable:        boolToVk(desc.MaxAnisotropy > 1),
		MaxAnisotropy:           desc.MaxAnisotropy,
		CompareEnable:           boolToVk(compare),
		CompareOp:               vk.CompareOpLessOrEqual,
		MinLod:                  desc.MinLOD,
		MaxLod:                  desc.MaxLOD,
		BorderColor:             vulkanBorderColor(desc.BorderColor),
		UnnormalizedCoordinates: vk.False,
	}

	var handle vk.Sampler
	if res := vk.CreateSampler(b.context.Device.LogicalDevice, &createInfo, b.context.Allocator, &handle); res != vk.Success {
		b.ctx.Log(core.LogLevelCritical, "CreateSampler: vkCreateSampler failed")
		return nil
	}
	return &backendSampler{handle: handle}
}

func (b *Backend) DestroySampler(s renderer.BackendSampler) {
	bs, ok := s.(*backendSampler)
	if !ok || bs == nil || bs.handle == nil {
		return
	}
	vk.DestroySampler(b.context.Device.LogicalDevice, bs.handle, b.context.Allocator)
	bs.handle = nil
}

func (b *Backend) CreateVertexArray(desc renderer.VertexArrayDescriptor) renderer.BackendVertexArray {
	bindings := make([]vertexArrayBinding, 0, len(desc.VertexBuffers))
	for _, vb := range desc.VertexBuffers {
		bb, ok := vb.VertexBuffer.BackendHandle().(*backendBuffer)
		if !ok || bb == nil {
			b.ctx.Log(core.LogLevelCritical, "CreateVertexArray: vertex buffer has no native handle")
			return nil
		}
		bindings = append(bindings, vertexArrayBinding{buffer: bb, offset: vb.Offset})
	}

	var indexBuffer *backendBuffer
	indexType := vk.IndexTypeUint32
	if desc.IndexBuffer != nil {
		ib, ok := desc.IndexBuffer.BackendHandle().(*backendBuffer)
		if !ok || ib == nil {
			b.ctx.Log(core.LogLevelCritical, "CreateVertexArray: index buffer has no native handle")
			return nil
		}
		indexBuffer = ib
	}

	return &backendVertexArray{vertexBuffers: bindings, indexBuffer: indexBuffer, indexType: indexType}
}

func (b *Backend) DestroyVertexArray(renderer.BackendVertexArray) {}

func (b *Backend) CreateRootSignature(desc renderer.RootSignatureDescriptor) renderer.BackendRootSignature {
	setLayouts := make([]vk.DescriptorSetLayout, 0, len(desc.Parameters))
	poolSizes := map[vk.DescriptorType]uint32{}

	for _, param := range desc.Parameters {
		bindings := make([]vk.DescriptorSetLayoutBinding, 0, len(param.DescriptorRanges))
		for i, rng := range param.DescriptorRanges {
			dtype, ok := vulkanDescriptorType(rng.ResourceKind, rng.RangeType)
			if !ok {
				b.ctx.Log(core.LogLevelCritical, "CreateRootSignature: no native descriptor type for kind %s / range %d", rng.ResourceKind, rng.RangeType)
				return nil
			}
			bindings = append(bindings, vk.DescriptorSetLayoutBinding{
				Binding:         rng.BindingSlot,
				DescriptorType:  dtype,
				DescriptorCount: 1,
				StageFlags:      vulkanVisibilityStageFlags(param.ShaderVisibility),
			})
			poolSizes[dtype]++
			_ = i
		}

		layoutInfo := vk.DescriptorSetLayoutCreateInfo{
			SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
			BindingCount: uint32(len(bindings)),
			PBindings:    bindings,
		}
		var layout vk.DescriptorSetLayout
		if res := vk.CreateDescriptorSetLayout(b.context.Device.LogicalDevice, &layoutInfo, b.context.Allocator, &layout); res != vk.Success {
			b.ctx.Log(core.LogLevelCritical, "CreateRootSignature: vkCreateDescriptorSetLayout failed")
			return nil
		}
		setLayouts = append(setLayouts, layout)
	}

	maxSets := b.context.Options.DescriptorPoolMaxSets
	if maxSets == 0 {
		maxSets = uint32(len(setLayouts))
	}
	poolSizeList := make([]vk.DescriptorPoolSize, 0, len(poolSizes))
	for dtype, count := range poolSizes {
		poolSizeList = append(poolSizeList, vk.DescriptorPoolSize{Type: dtype, DescriptorCount: count * maxSets})
	}

	var pool vk.DescriptorPool
	if len(poolSizeList) > 0 {
		poolInfo := vk.DescriptorPoolCreateInfo{
			SType:         vk.StructureTypeDescriptorPoolCreateInfo,
			PoolSizeCount: uint32(len(poolSizeList)),
			PPoolSizes:    poolSizeList,
			MaxSets:       maxSets,
			Flags:         vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
		}
		if res := vk.CreateDescriptorPool(b.context.Device.LogicalDevice, &poolInfo, b.context.Allocator, &pool); res != vk.Success {
			b.ctx.Log(core.LogLevelCritical, "CreateRootSignature: vkCreateDescriptorPool failed")
			return nil
		}
	}

	pipelineLayoutInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(setLayouts)),
		PSetLayouts:    setLayouts,
	}
	var pipelineLayout vk.PipelineLayout
	if res := vk.CreatePipelineLayout(b.context.Device.LogicalDevice, &pipelineLayoutInfo, b.context.Allocator, &pipelineLayout); res != vk.Success {
		b.ctx.Log(core.LogLevelCritical, "CreateRootSignature: vkCreatePipelineLayout failed")
		return nil
	}

	return &backendRootSignature{setLayouts: setLayouts, pool: pool, layout: pipelineLayout}
}

func (b *Backend) DestroyRootSignature(rs renderer.BackendRootSignature) {
	brs, ok := rs.(*backendRootSignature)
	if !ok || brs == nil {
		return
	}
	if brs.layout != nil {
		vk.DestroyPipelineLayout(b.context.Device.LogicalDevice, brs.layout, b.context.Allocator)
	}
	if brs.pool != nil {
		vk.DestroyDescriptorPool(b.context.Device.LogicalDevice, brs.pool, b.context.Allocator)
	}
	for _, l := range brs.setLayouts {
		vk.DestroyDescriptorSetLayout(b.context.Device.LogicalDevice, l, b.context.Allocator)
	}
}

func (b *Backend) CreateResourceGroup(rs renderer.BackendRootSignature, rootParameterIndex uint32, resources []renderer.BoundResource) renderer.BackendResourceGroup {
	brs, ok := rs.(*backendRootSignature)
	if !ok || brs == nil || int(rootParameterIndex) >= len(brs.setLayouts) {
		b.ctx.Log(core.LogLevelCritical, "CreateResourceGroup: invalid root signature / parameter index")
		return nil
	}
	if brs.pool == nil {
		b.ctx.Log(core.LogLevelCritical, "CreateResourceGroup: root signature has no descriptor pool")
		return nil
	}

	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     brs.pool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{brs.setLayouts[rootParameterIndex]},
	}
	sets := make([]vk.DescriptorSet, 1)
	if res := vk.AllocateDescriptorSets(b.context.Device.LogicalDevice, &allocInfo, &sets[0]); res != vk.Success {
		b.ctx.Log(core.LogLevelCritical, "CreateResourceGroup: vkAllocateDescriptorSets failed")
		return nil
	}
	set := sets[0]

	writes := make([]vk.WriteDescriptorSet, 0, len(resources))
	for i, res := range resources {
		switch h := res.BackendHandle().(type) {
		case *backendBuffer:
			bufferInfo := vk.DescriptorBufferInfo{Buffer: h.buffer.Handle, Offset: 0, Range: vk.DeviceSize(h.size)}
			writes = append(writes, vk.WriteDescriptorSet{
				SType:           vk.StructureTypeWriteDescriptorSet,
				DstSet:          set,
				DstBinding:      uint32(i),
				DescriptorCount: 1,
				DescriptorType:  vk.DescriptorTypeUniformBuffer,
				PBufferInfo:     []vk.DescriptorBufferInfo{bufferInfo},
			})
		case *backendTexture:
			imageInfo := vk.DescriptorImageInfo{ImageView: h.image.View, ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal}
			writes = append(writes, vk.WriteDescriptorSet{
				SType:           vk.StructureTypeWriteDescriptorSet,
				DstSet:          set,
				DstBinding:      uint32(i),
				DescriptorCount: 1,
				DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
				PImageInfo:      []vk.DescriptorImageInfo{imageInfo},
			})
		}
	}
	if len(writes) > 0 {
		vk.UpdateDescriptorSets(b.context.Device.LogicalDevice, uint32(len(writes)), writes, 0, nil)
	}

	return &backendResourceGroup{set: set}
}

func (b *Backend) DestroyResourceGroup(renderer.BackendResourceGroup) {}

func (b *Backend) CreateFramebuffer(desc renderer.FramebufferDescriptor) renderer.BackendFramebuffer {
	brp, ok := desc.RenderPass.Backend().(*backendRenderPass)
	if !ok || brp == nil || brp.pass == nil {
		b.ctx.Log(core.LogLevelCritical, "CreateFramebuffer: render pass has no native handle")
		return nil
	}

	attachments := make([]vk.ImageView, 0, len(desc.ColorAttachments)+1)
	colorImages := make([]*VulkanImage, 0, len(desc.ColorAttachments))
	var depthImage *VulkanImage
	var width, height uint32
	for _, a := range desc.ColorAttachments {
		bt, ok := a.Texture.BackendHandle().(*backendTexture)
		if !ok || bt == nil {
			b.ctx.Log(core.LogLevelCritical, "CreateFramebuffer: color attachment has no native handle")
			return nil
		}
		attachments = append(attachments, bt.image.View)
		colorImages = append(colorImages, bt.image)
		width, height = bt.image.Width, bt.image.Height
	}
	if desc.DepthAttachment != nil {
		bt, ok := desc.DepthAttachment.Texture.BackendHandle().(*backendTexture)
		if !ok || bt == nil {
			b.ctx.Log(core.LogLevelCritical, "CreateFramebuffer: depth attachment has no native handle")
			return nil
		}
		attachments = append(attachments, bt.image.View)
		depthImage = bt.image
		width, height = bt.image.Width, bt.image.Height
	}

	fb, err := FramebufferCreate(b.context, brp.pass, width, height, uint32(len(attachments)), attachments, desc.DebugName)
	if err != nil {
		b.ctx.Log(core.LogLevelCritical, "CreateFramebuffer: %v", err)
		return nil
	}
	return &backendFramebuffer{framebuffer: fb, renderPass: brp.pass, colorImages: colorImages, depthImage: depthImage, width: width, height: height}
}

func (b *Backend) DestroyFramebuffer(fb renderer.BackendFramebuffer) {
	bfb, ok := fb.(*backendFramebuffer)
	if !ok || bfb == nil || bfb.framebuffer == nil {
		return
	}
	bfb.framebuffer.Destroy(b.context)
}
