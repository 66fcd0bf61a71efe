package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/ral/engine/renderer"
)

func TestVulkanFormatKnown(t *testing.T) {
	require.Equal(t, vk.FormatB8g8r8a8Unorm, vulkanFormat(renderer.TextureFormatB8G8R8A8))
	require.Equal(t, vk.FormatD32Sfloat, vulkanFormat(renderer.TextureFormatD32Float))
	require.Equal(t, vk.FormatBc1RgbaSrgbBlock, vulkanFormat(renderer.TextureFormatBC1SRGB))
}

func TestVulkanFormatUnknownFallsBackToRGBA8(t *testing.T) {
	require.Equal(t, vk.FormatR8g8b8a8Unorm, vulkanFormat(renderer.TextureFormatUnknown))
}

func TestSupportedTextureFormatsSorted(t *testing.T) {
	formats := supportedTextureFormats()
	require.NotEmpty(t, formats)
	for i := 1; i < len(formats); i++ {
		require.Less(t, formats[i-1], formats[i])
	}
}

func TestVulkanFilterDecomposesPointAndLinear(t *testing.T) {
	min, mag, mipmap, compare := vulkanFilter(renderer.FilterMinMagMipLinear)
	require.Equal(t, vk.FilterLinear, min)
	require.Equal(t, vk.FilterLinear, mag)
	require.Equal(t, vk.SamplerMipmapModeLinear, mipmap)
	require.False(t, compare)

	min, mag, _, _ = vulkanFilter(renderer.FilterMinMagMipPoint)
	require.Equal(t, vk.FilterNearest, min)
	require.Equal(t, vk.FilterNearest, mag)
}

func TestVulkanAddressModeOutOfRangeFallsBackToRepeat(t *testing.T) {
	require.Equal(t, vk.SamplerAddressModeRepeat, vulkanAddressMode(renderer.AddressMode(99)))
}

func TestVulkanCompareOpTable(t *testing.T) {
	require.Equal(t, vk.CompareOpNever, vulkanCompareOp(renderer.CompareFunctionNever))
	require.Equal(t, vk.CompareOpAlways, vulkanCompareOp(renderer.CompareFunctionAlways))
}

func TestVulkanBlendFactorHoleSlotsAreSafe(t *testing.T) {
	require.Equal(t, vk.BlendFactorOne, vulkanBlendFactor(renderer.BlendFactor(12)))
	require.Equal(t, vk.BlendFactorOne, vulkanBlendFactor(renderer.BlendFactor(13)))
	require.Equal(t, vk.BlendFactorOne, vulkanBlendFactor(renderer.BlendFactor(9999)))
}

func TestVulkanBlendOpTable(t *testing.T) {
	require.Equal(t, vk.BlendOpAdd, vulkanBlendOp(renderer.BlendOpAdd))
	require.Equal(t, vk.BlendOpMax, vulkanBlendOp(renderer.BlendOpMax))
	require.Equal(t, vk.BlendOpAdd, vulkanBlendOp(renderer.BlendOp(9999)))
}

func TestVulkanPrimitiveTopologyPatchListCollapse(t *testing.T) {
	require.Equal(t, vk.PrimitiveTopologyPatchList, vulkanPrimitiveTopology(renderer.PrimitiveTopologyPatchList1))
	require.Equal(t, vk.PrimitiveTopologyTriangleList, vulkanPrimitiveTopology(renderer.PrimitiveTopologyTriangleList))
}

func TestVulkanCullMode(t *testing.T) {
	require.Equal(t, vk.CullModeFlags(vk.CullModeNone), vulkanCullMode(renderer.CullModeNone))
	require.Equal(t, vk.CullModeFlags(vk.CullModeBackBit), vulkanCullMode(renderer.CullModeBack))
}

func TestVulkanShaderStageFlag(t *testing.T) {
	require.Equal(t, vk.ShaderStageFragmentBit, vulkanShaderStageFlag(renderer.ShaderStageFragment))
	require.Equal(t, vk.ShaderStageComputeBit, vulkanShaderStageFlag(renderer.ShaderStageCompute))
}

func TestVulkanVisibilityStageFlagsUnion(t *testing.T) {
	v := renderer.ShaderVisibilityVertex | renderer.ShaderVisibilityFragment
	flags := vulkanVisibilityStageFlags(v)
	require.NotZero(t, flags&vk.ShaderStageFlags(vk.ShaderStageVertexBit))
	require.NotZero(t, flags&vk.ShaderStageFlags(vk.ShaderStageFragmentBit))
	require.Zero(t, flags&vk.ShaderStageFlags(vk.ShaderStageComputeBit))
}

func TestVulkanIndexType(t *testing.T) {
	require.Equal(t, vk.IndexTypeUint16, vulkanIndexType(renderer.IndexBufferFormatUnsignedShort))
	require.Equal(t, vk.IndexTypeUint32, vulkanIndexType(renderer.IndexBufferFormatUnsignedInt))
}

func TestVulkanSampleCount(t *testing.T) {
	require.Equal(t, vk.SampleCount1Bit, vulkanSampleCount(renderer.MultisampleNone))
	require.Equal(t, vk.SampleCount8Bit, vulkanSampleCount(renderer.MultisampleCount8x))
}

func TestVulkanDescriptorTypeResolvesUniformBuffer(t *testing.T) {
	dt, ok := vulkanDescriptorType(renderer.ResourceKindUniformBuffer, renderer.RangeTypeUBV)
	require.True(t, ok)
	require.Equal(t, vk.DescriptorTypeUniformBuffer, dt)
}

func TestVulkanClearAspectFoldsBitmask(t *testing.T) {
	aspect := vulkanClearAspect(renderer.ClearFlagColor | renderer.ClearFlagDepth)
	require.NotZero(t, aspect&vk.ImageAspectFlags(vk.ImageAspectColorBit))
	require.NotZero(t, aspect&vk.ImageAspectFlags(vk.ImageAspectDepthBit))
	require.Zero(t, aspect&vk.ImageAspectFlags(vk.ImageAspectStencilBit))
}
