package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/ral/engine/core"
	"github.com/spaghettifunk/ral/engine/renderer"
)

// CreateShaderModule builds a vk.ShaderModule directly from decoded
// SPIR-V bytes (renderer.Shader's bytecode, see engine/renderer/shader.go)
// and records only the stage tag the dispatch/pipeline-build code needs
// to pick a vk.PipelineShaderStageCreateInfo's Stage field. Binding
// layout and uniform data belong entirely to the root signature /
// resource group model one layer up; this backend never reaches into
// SPIR-V reflection data the way a per-material instance-uniform shader
// system would.
func (b *Backend) CreateShaderModule(stage renderer.ShaderStage, bytecode []byte) renderer.BackendShaderModule {
	if len(bytecode)%4 != 0 {
		b.ctx.Log(core.LogLevelCritical, "CreateShaderModule: SPIR-V bytecode length %d is not a multiple of 4", len(bytecode))
		return nil
	}

	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(bytecode)),
		PCode:    sliceUint32FromBytes(bytecode),
	}

	var handle vk.ShaderModule
	if res := vk.CreateShaderModule(b.context.Device.LogicalDevice, &createInfo, b.context.Allocator, &handle); res != vk.Success {
		err := fmt.Errorf("failed to create shader module for stage %d", stage)
		core.LogError(err.Error())
		return nil
	}

	return &backendShaderModule{handle: handle, stage: stage}
}

func (b *Backend) DestroyShaderModule(m renderer.BackendShaderModule) {
	sm, ok := m.(*backendShaderModule)
	if !ok || sm == nil || sm.handle == nil {
		return
	}
	vk.DestroyShaderModule(b.context.Device.LogicalDevice, sm.handle, b.context.Allocator)
	sm.handle = nil
}

// sliceUint32FromBytes reinterprets a little-endian byte slice (the
// layout engine/renderer/shader.go's spirvWordsToBytes produces) as the
// []uint32 the Vulkan binding's ShaderModuleCreateInfo.PCode expects.
func sliceUint32FromBytes(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
	}
	return words
}

func shaderStageCreateInfo(m *backendShaderModule, entryPoint string) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  vulkanShaderStageFlag(m.stage),
		Module: m.handle,
		PName:  VulkanSafeString(entryPoint),
	}
}
