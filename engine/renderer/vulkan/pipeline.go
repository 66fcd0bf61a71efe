package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/ral/engine/core"
	"github.com/spaghettifunk/ral/engine/renderer"
)

// VulkanPipeline holds a built graphics or compute pipeline and its layout.
type VulkanPipeline struct {
	Handle         vk.Pipeline
	PipelineLayout vk.PipelineLayout
}

func (pipeline *VulkanPipeline) Destroy(context *VulkanContext) {
	if pipeline.Handle != nil {
		vk.DestroyPipeline(context.Device.LogicalDevice, pipeline.Handle, context.Allocator)
		pipeline.Handle = nil
	}
	if pipeline.PipelineLayout != nil {
		vk.DestroyPipelineLayout(context.Device.LogicalDevice, pipeline.PipelineLayout, context.Allocator)
		pipeline.PipelineLayout = nil
	}
}

func (pipeline *VulkanPipeline) Bind(command_buffer *VulkanCommandBuffer, bind_point vk.PipelineBindPoint) {
	vk.CmdBindPipeline(command_buffer.Handle, bind_point, pipeline.Handle)
}

func rootSignatureSetLayouts(sig *renderer.RootSignature) []vk.DescriptorSetLayout {
	brs, ok := sig.Backend().(*backendRootSignature)
	if !ok || brs == nil {
		return nil
	}
	return brs.setLayouts
}

func shaderStages(prog *renderer.GraphicsProgram) []vk.PipelineShaderStageCreateInfo {
	stages := prog.Stages()
	out := make([]vk.PipelineShaderStageCreateInfo, 0, len(stages))
	for _, s := range stages {
		sm, ok := s.BackendHandle().(*backendShaderModule)
		if !ok || sm == nil {
			continue
		}
		out = append(out, shaderStageCreateInfo(sm, "main"))
	}
	return out
}

// vertexInputState builds one VkVertexInputBindingDescription per distinct
// InputSlot (one vertex buffer binding) and one VkVertexInputAttributeDescription
// per RAL VertexAttribute.
func vertexInputState(attrs []renderer.VertexAttribute) ([]vk.VertexInputBindingDescription, []vk.VertexInputAttributeDescription) {
	bindingStride := map[uint32]uint32{}
	bindingInstanced := map[uint32]bool{}
	var slotOrder []uint32
	for _, a := range attrs {
		if _, seen := bindingStride[a.InputSlot]; !seen {
			slotOrder = append(slotOrder, a.InputSlot)
		}
		bindingStride[a.InputSlot] = a.StrideBytes
		if a.InstancesPerElement > 0 {
			bindingInstanced[a.InputSlot] = true
		}
	}

	bindings := make([]vk.VertexInputBindingDescription, 0, len(slotOrder))
	for _, slot := range slotOrder {
		rate := vk.VertexInputRateVertex
		if bindingInstanced[slot] {
			rate = vk.VertexInputRateInstance
		}
		bindings = append(bindings, vk.VertexInputBindingDescription{
			Binding:   slot,
			Stride:    bindingStride[slot],
			InputRate: rate,
		})
	}

	attributes := make([]vk.VertexInputAttributeDescription, len(attrs))
	for i, a := range attrs {
		attributes[i] = vk.VertexInputAttributeDescription{
			Location: uint32(i),
			Binding:  a.InputSlot,
			Format:   vulkanVertexAttributeFormat(a.Format),
			Offset:   a.AlignedByteOffset,
		}
	}
	return bindings, attributes
}

func colorBlendAttachments(blend renderer.BlendState, count uint32) []vk.PipelineColorBlendAttachmentState {
	out := make([]vk.PipelineColorBlendAttachmentState, count)
	for i := uint32(0); i < count; i++ {
		rt := blend.RenderTarget[i]
		var writeMask vk.ColorComponentFlags
		if rt.WriteMask&0x1 != 0 {
			writeMask |= vk.ColorComponentFlags(vk.ColorComponentRBit)
		}
		if rt.WriteMask&0x2 != 0 {
			writeMask |= vk.ColorComponentFlags(vk.ColorComponentGBit)
		}
		if rt.WriteMask&0x4 != 0 {
			writeMask |= vk.ColorComponentFlags(vk.ColorComponentBBit)
		}
		if rt.WriteMask&0x8 != 0 {
			writeMask |= vk.ColorComponentFlags(vk.ColorComponentABit)
		}
		state := vk.PipelineColorBlendAttachmentState{
			ColorWriteMask: writeMask,
		}
		if rt.BlendEnable {
			state.BlendEnable = vk.True
			state.SrcColorBlendFactor = vulkanBlendFactor(rt.SrcColor)
			state.DstColorBlendFactor = vulkanBlendFactor(rt.DstColor)
			state.ColorBlendOp = vulkanBlendOp(rt.ColorOp)
			state.SrcAlphaBlendFactor = vulkanBlendFactor(rt.SrcAlpha)
			state.DstAlphaBlendFactor = vulkanBlendFactor(rt.DstAlpha)
			state.AlphaBlendOp = vulkanBlendOp(rt.AlphaOp)
		}
		out[i] = state
	}
	return out
}

// NewGraphicsPipeline translates a RAL GraphicsPipelineStateDescriptor into
// a vk.Pipeline: viewport/scissor are left dynamic (set per-draw through
// SetGraphicsViewports/SetGraphicsScissorRectangles in commands.go) since
// the RAL has no fixed-function viewport state of its own.
func NewGraphicsPipeline(context *VulkanContext, desc renderer.GraphicsPipelineStateDescriptor) (*VulkanPipeline, error) {
	out_pipeline := &VulkanPipeline{}

	brp, ok := desc.RenderPass.Backend().(*backendRenderPass)
	if !ok || brp == nil || brp.pass == nil {
		return nil, fmt.Errorf("NewGraphicsPipeline: render pass has no native handle")
	}

	viewport_state := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	rasterizer_create_info := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        boolToVk(!desc.Rasterizer.DepthClipEnable),
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vulkanPolygonMode(desc.Rasterizer.Fill),
		LineWidth:               1.0,
		CullMode:                vulkanCullMode(desc.Rasterizer.Cull),
		FrontFace:               vulkanFrontFace(desc.Rasterizer.FrontFace),
		DepthBiasEnable:         boolToVk(desc.Rasterizer.DepthBias != 0 || desc.Rasterizer.SlopeScaledDepthBias != 0),
		DepthBiasConstantFactor: float32(desc.Rasterizer.DepthBias),
		DepthBiasClamp:          desc.Rasterizer.DepthBiasClamp,
		DepthBiasSlopeFactor:    desc.Rasterizer.SlopeScaledDepthBias,
	}

	multisampling_create_info := vk.PipelineMultisampleStateCreateInfo{
		SType:                 vk.StructureTypePipelineMultisampleStateCreateInfo,
		SampleShadingEnable:   vk.False,
		RasterizationSamples:  vk.SampleCount1Bit,
		MinSampleShading:      1.0,
		AlphaToCoverageEnable: vk.False,
		AlphaToOneEnable:      vk.False,
	}

	depth_stencil := vk.PipelineDepthStencilStateCreateInfo{
		SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:       boolToVk(desc.DepthStencil.DepthEnable),
		DepthWriteEnable:      boolToVk(desc.DepthStencil.DepthWriteMask),
		DepthCompareOp:        vulkanCompareOp(desc.DepthStencil.DepthFunc),
		DepthBoundsTestEnable: vk.False,
		StencilTestEnable:     boolToVk(desc.DepthStencil.StencilEnable),
	}

	attachments := colorBlendAttachments(desc.Blend, desc.RenderTargetCount)
	color_blend_state_create_info := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
	}

	dynamic_states := []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
	}
	dynamic_state_create_info := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamic_states)),
		PDynamicStates:    dynamic_states,
	}

	bindings, attributes := vertexInputState(desc.VertexAttributes)
	vertex_input_info := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(bindings)),
		PVertexBindingDescriptions:      bindings,
		VertexAttributeDescriptionCount: uint32(len(attributes)),
		PVertexAttributeDescriptions:    attributes,
	}

	input_assembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vulkanPrimitiveTopology(desc.PrimitiveTopology),
		PrimitiveRestartEnable: vk.False,
	}

	setLayouts := rootSignatureSetLayouts(desc.RootSignature)
	pipeline_layout_create_info := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(setLayouts)),
		PSetLayouts:    setLayouts,
	}

	var pPipelineLayout vk.PipelineLayout
	result := vk.CreatePipelineLayout(context.Device.LogicalDevice, &pipeline_layout_create_info, context.Allocator, &pPipelineLayout)
	if !VulkanResultIsSuccess(result) {
		return nil, VulkanError("vkCreatePipelineLayout", result)
	}
	out_pipeline.PipelineLayout = pPipelineLayout

	stages := shaderStages(desc.Program)

	var tessellationState *vk.PipelineTessellationStateCreateInfo
	if desc.PrimitiveTopology.IsPatchList() {
		tessellationState = &vk.PipelineTessellationStateCreateInfo{
			SType:              vk.StructureTypePipelineTessellationStateCreateInfo,
			PatchControlPoints: uint32(desc.PrimitiveTopology.PatchControlPoints()),
		}
	}

	pipeline_create_info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertex_input_info,
		PInputAssemblyState: &input_assembly,
		PTessellationState:  tessellationState,
		PViewportState:      &viewport_state,
		PRasterizationState: &rasterizer_create_info,
		PMultisampleState:   &multisampling_create_info,
		PDepthStencilState:  &depth_stencil,
		PColorBlendState:    &color_blend_state_create_info,
		PDynamicState:       &dynamic_state_create_info,
		Layout:              out_pipeline.PipelineLayout,
		RenderPass:          brp.pass.Handle,
		Subpass:             0,
		BasePipelineHandle:  vk.NullPipeline,
		BasePipelineIndex:   -1,
	}

	pipelines := make([]vk.Pipeline, 1)
	result = vk.CreateGraphicsPipelines(context.Device.LogicalDevice, vk.NullPipelineCache, 1,
		[]vk.GraphicsPipelineCreateInfo{pipeline_create_info}, context.Allocator, pipelines)
	if !VulkanResultIsSuccess(result) {
		vk.DestroyPipelineLayout(context.Device.LogicalDevice, out_pipeline.PipelineLayout, context.Allocator)
		return nil, VulkanError("vkCreateGraphicsPipelines", result)
	}
	out_pipeline.Handle = pipelines[0]

	core.LogDebug("Graphics pipeline created!")
	return out_pipeline, nil
}

// NewComputePipeline builds a single-stage compute pipeline from a root
// signature and compute shader module.
func NewComputePipeline(context *VulkanContext, sig *renderer.RootSignature, shader *renderer.Shader) (*VulkanPipeline, error) {
	out_pipeline := &VulkanPipeline{}

	setLayouts := rootSignatureSetLayouts(sig)
	pipeline_layout_create_info := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(setLayouts)),
		PSetLayouts:    setLayouts,
	}
	var pPipelineLayout vk.PipelineLayout
	result := vk.CreatePipelineLayout(context.Device.LogicalDevice, &pipeline_layout_create_info, context.Allocator, &pPipelineLayout)
	if !VulkanResultIsSuccess(result) {
		return nil, VulkanError("vkCreatePipelineLayout", result)
	}
	out_pipeline.PipelineLayout = pPipelineLayout

	sm, ok := shader.BackendHandle().(*backendShaderModule)
	if !ok || sm == nil {
		vk.DestroyPipelineLayout(context.Device.LogicalDevice, out_pipeline.PipelineLayout, context.Allocator)
		return nil, fmt.Errorf("NewComputePipeline: compute shader has no native module")
	}

	create_info := vk.ComputePipelineCreateInfo{
		SType:  vk.StructureTypeComputePipelineCreateInfo,
		Stage:  shaderStageCreateInfo(sm, "main"),
		Layout: out_pipeline.PipelineLayout,
	}

	pipelines := make([]vk.Pipeline, 1)
	result = vk.CreateComputePipelines(context.Device.LogicalDevice, vk.NullPipelineCache, 1,
		[]vk.ComputePipelineCreateInfo{create_info}, context.Allocator, pipelines)
	if !VulkanResultIsSuccess(result) {
		vk.DestroyPipelineLayout(context.Device.LogicalDevice, out_pipeline.PipelineLayout, context.Allocator)
		return nil, VulkanError("vkCreateComputePipelines", result)
	}
	out_pipeline.Handle = pipelines[0]
	return out_pipeline, nil
}

func boolToVk(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}

func (b *Backend) CreateGraphicsPipelineState(desc renderer.GraphicsPipelineStateDescriptor) renderer.BackendPipelineState {
	pipeline, err := NewGraphicsPipeline(b.context, desc)
	if err != nil {
		b.ctx.Log(core.LogLevelCritical, "CreateGraphicsPipelineState: %v", err)
		return nil
	}
	return &backendPipelineState{pipeline: pipeline, bindPoint: vk.PipelineBindPointGraphics}
}

func (b *Backend) CreateComputePipelineState(desc renderer.ComputePipelineStateDescriptor) renderer.BackendPipelineState {
	pipeline, err := NewComputePipeline(b.context, desc.RootSignature, desc.ComputeShader)
	if err != nil {
		b.ctx.Log(core.LogLevelCritical, "CreateComputePipelineState: %v", err)
		return nil
	}
	return &backendPipelineState{pipeline: pipeline, bindPoint: vk.PipelineBindPointCompute}
}

func (b *Backend) DestroyPipelineState(ps renderer.BackendPipelineState) {
	bps, ok := ps.(*backendPipelineState)
	if !ok || bps == nil || bps.pipeline == nil {
		return
	}
	bps.pipeline.Destroy(b.context)
}
