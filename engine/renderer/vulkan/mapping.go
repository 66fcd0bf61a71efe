package vulkan

import (
	vk "github.com/goki/vulkan"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/ral/engine/renderer"
)

// textureFormatTable maps the backend-agnostic TextureFormat enumeration
// onto native Vulkan formats. Built as a map rather than a slice since
// TextureFormat has no guaranteed-dense layout once compressed formats
// are added.
var textureFormatTable = map[renderer.TextureFormat]vk.Format{
	renderer.TextureFormatR8:             vk.FormatR8Unorm,
	renderer.TextureFormatR8G8B8:         vk.FormatR8g8b8Unorm,
	renderer.TextureFormatR8G8B8A8:       vk.FormatR8g8b8a8Unorm,
	renderer.TextureFormatR8G8B8A8SRGB:   vk.FormatR8g8b8a8Srgb,
	renderer.TextureFormatB8G8R8A8:       vk.FormatB8g8r8a8Unorm,
	renderer.TextureFormatR11G11B10F:     vk.FormatB10g11r11UfloatPack32,
	renderer.TextureFormatR16G16B16A16F:  vk.FormatR16g16b16a16Sfloat,
	renderer.TextureFormatR32G32B32A32F:  vk.FormatR32g32b32a32Sfloat,
	renderer.TextureFormatBC1:            vk.FormatBc1RgbaUnormBlock,
	renderer.TextureFormatBC1SRGB:        vk.FormatBc1RgbaSrgbBlock,
	renderer.TextureFormatBC2:            vk.FormatBc2UnormBlock,
	renderer.TextureFormatBC2SRGB:        vk.FormatBc2SrgbBlock,
	renderer.TextureFormatBC3:            vk.FormatBc3UnormBlock,
	renderer.TextureFormatBC3SRGB:        vk.FormatBc3SrgbBlock,
	renderer.TextureFormatBC4:            vk.FormatBc4UnormBlock,
	renderer.TextureFormatBC5:            vk.FormatBc5UnormBlock,
	renderer.TextureFormatETC1:           vk.FormatEtc2R8g8b8UnormBlock,
	renderer.TextureFormatR16Unorm:       vk.FormatR16Unorm,
	renderer.TextureFormatR32Uint:        vk.FormatR32Uint,
	renderer.TextureFormatR32Float:       vk.FormatR32Sfloat,
	renderer.TextureFormatD32Float:       vk.FormatD32Sfloat,
	renderer.TextureFormatR16G16Snorm:    vk.FormatR16g16Snorm,
	renderer.TextureFormatR16G16Float:    vk.FormatR16g16Sfloat,
}

// vulkanFormat resolves a RAL TextureFormat to its native Vulkan format,
// falling back to FormatR8g8b8a8Unorm for TextureFormatUnknown so callers
// never pass the zero vk.Format to a Vulkan create-info struct.
func vulkanFormat(f renderer.TextureFormat) vk.Format {
	if vf, ok := textureFormatTable[f]; ok {
		return vf
	}
	return vk.FormatR8g8b8a8Unorm
}

// supportedTextureFormats is exposed for diagnostics/tests: every
// TextureFormat this backend has a native mapping for.
func supportedTextureFormats() []renderer.TextureFormat {
	keys := maps.Keys(textureFormatTable)
	slices.SortFunc(keys, func(a, b renderer.TextureFormat) bool { return a < b })
	return keys
}

var filterModeTable = [2]vk.Filter{
	renderer.FilterModePoint:  vk.FilterNearest,
	renderer.FilterModeLinear: vk.FilterLinear,
}

var mipmapModeTable = [2]vk.SamplerMipmapMode{
	renderer.FilterModePoint:  vk.SamplerMipmapModeNearest,
	renderer.FilterModeLinear: vk.SamplerMipmapModeLinear,
}

// vulkanFilter decomposes a RAL Filter into (min, mag, mipmap, isCompare)
// native Vulkan settings, using the shared filter-decomposition table
// rather than re-deriving the switch here.
func vulkanFilter(f renderer.Filter) (min, mag vk.Filter, mipmap vk.SamplerMipmapMode, compare bool) {
	d := renderer.DecomposeFilter(f)
	return filterModeTable[d.Min], filterModeTable[d.Mag], mipmapModeTable[d.Mipmap], d.Comparison
}

var addressModeTable = []vk.SamplerAddressMode{
	renderer.AddressModeWrap.Index():       vk.SamplerAddressModeRepeat,
	renderer.AddressModeMirror.Index():     vk.SamplerAddressModeMirroredRepeat,
	renderer.AddressModeClamp.Index():      vk.SamplerAddressModeClampToEdge,
	renderer.AddressModeBorder.Index():     vk.SamplerAddressModeClampToBorder,
	renderer.AddressModeMirrorOnce.Index(): vk.SamplerAddressModeMirrorClampToEdge,
}

func vulkanAddressMode(a renderer.AddressMode) vk.SamplerAddressMode {
	if i := a.Index(); i >= 0 && i < len(addressModeTable) {
		return addressModeTable[i]
	}
	return vk.SamplerAddressModeRepeat
}

var compareOpTable = []vk.CompareOp{
	renderer.CompareFunctionNever.Index():        vk.CompareOpNever,
	renderer.CompareFunctionLess.Index():         vk.CompareOpLess,
	renderer.CompareFunctionEqual.Index():        vk.CompareOpEqual,
	renderer.CompareFunctionLessEqual.Index():    vk.CompareOpLessOrEqual,
	renderer.CompareFunctionGreater.Index():      vk.CompareOpGreater,
	renderer.CompareFunctionNotEqual.Index():     vk.CompareOpNotEqual,
	renderer.CompareFunctionGreaterEqual.Index(): vk.CompareOpGreaterOrEqual,
	renderer.CompareFunctionAlways.Index():       vk.CompareOpAlways,
}

func vulkanCompareOp(c renderer.CompareFunction) vk.CompareOp {
	if i := c.Index(); i >= 0 && i < len(compareOpTable) {
		return compareOpTable[i]
	}
	return vk.CompareOpAlways
}

// blendFactorTable is indexed directly by BlendFactor's raw value; the
// two hole slots (12, 13 - unused D3D12 dual-source placeholders) carry
// a harmless BlendFactorOne so an accidental lookup never indexes out of
// range.
var blendFactorTable = []vk.BlendFactor{
	renderer.BlendFactorZero:           vk.BlendFactorZero,
	renderer.BlendFactorOne:            vk.BlendFactorOne,
	renderer.BlendFactorSrcColor:       vk.BlendFactorSrcColor,
	renderer.BlendFactorInvSrcColor:    vk.BlendFactorOneMinusSrcColor,
	renderer.BlendFactorSrcAlpha:       vk.BlendFactorSrcAlpha,
	renderer.BlendFactorInvSrcAlpha:    vk.BlendFactorOneMinusSrcAlpha,
	renderer.BlendFactorDstAlpha:       vk.BlendFactorDstAlpha,
	renderer.BlendFactorInvDstAlpha:    vk.BlendFactorOneMinusDstAlpha,
	renderer.BlendFactorDstColor:       vk.BlendFactorDstColor,
	renderer.BlendFactorInvDstColor:    vk.BlendFactorOneMinusDstColor,
	renderer.BlendFactorSrcAlphaSat:    vk.BlendFactorSrcAlphaSaturate,
	renderer.BlendFactorUnused11:       vk.BlendFactorOne,
	12:                                 vk.BlendFactorOne,
	13:                                 vk.BlendFactorOne,
	renderer.BlendFactorBlendFactor:    vk.BlendFactorConstantColor,
	renderer.BlendFactorInvBlendFactor: vk.BlendFactorOneMinusConstantColor,
	renderer.BlendFactorSrc1Color:      vk.BlendFactorSrc1Color,
	renderer.BlendFactorInvSrc1Color:   vk.BlendFactorOneMinusSrc1Color,
	renderer.BlendFactorSrc1Alpha:      vk.BlendFactorSrc1Alpha,
	renderer.BlendFactorInvSrc1Alpha:   vk.BlendFactorOneMinusSrc1Alpha,
}

func vulkanBlendFactor(f renderer.BlendFactor) vk.BlendFactor {
	if i := int(f); i >= 0 && i < len(blendFactorTable) {
		return blendFactorTable[i]
	}
	return vk.BlendFactorOne
}

var blendOpTable = []vk.BlendOp{
	renderer.BlendOpAdd - 1:        vk.BlendOpAdd,
	renderer.BlendOpSubtract - 1:   vk.BlendOpSubtract,
	renderer.BlendOpRevSubtract - 1: vk.BlendOpReverseSubtract,
	renderer.BlendOpMin - 1:        vk.BlendOpMin,
	renderer.BlendOpMax - 1:        vk.BlendOpMax,
}

func vulkanBlendOp(op renderer.BlendOp) vk.BlendOp {
	if i := int(op) - 1; i >= 0 && i < len(blendOpTable) {
		return blendOpTable[i]
	}
	return vk.BlendOpAdd
}

// vulkanPrimitiveTopology maps PrimitiveTopology to its native
// counterpart; every PATCH_LIST_N collapses to PatchList, with N itself
// carried separately as the pipeline's tessellation patch-control-point
// count.
func vulkanPrimitiveTopology(t renderer.PrimitiveTopology) vk.PrimitiveTopology {
	if t.IsPatchList() {
		return vk.PrimitiveTopologyPatchList
	}
	switch t {
	case renderer.PrimitiveTopologyPointList:
		return vk.PrimitiveTopologyPointList
	case renderer.PrimitiveTopologyLineList:
		return vk.PrimitiveTopologyLineList
	case renderer.PrimitiveTopologyLineStrip:
		return vk.PrimitiveTopologyLineStrip
	case renderer.PrimitiveTopologyTriangleList:
		return vk.PrimitiveTopologyTriangleList
	case renderer.PrimitiveTopologyTriangleStrip:
		return vk.PrimitiveTopologyTriangleStrip
	default:
		return vk.PrimitiveTopologyTriangleList
	}
}

func vulkanCullMode(c renderer.CullMode) vk.CullModeFlags {
	switch c {
	case renderer.CullModeNone:
		return vk.CullModeFlags(vk.CullModeNone)
	case renderer.CullModeFront:
		return vk.CullModeFlags(vk.CullModeFrontBit)
	case renderer.CullModeBack:
		return vk.CullModeFlags(vk.CullModeBackBit)
	default:
		return vk.CullModeFlags(vk.CullModeBackBit)
	}
}

func vulkanFrontFace(f renderer.FrontFace) vk.FrontFace {
	if f == renderer.FrontFaceCounterClockwise {
		return vk.FrontFaceCounterClockwise
	}
	return vk.FrontFaceClockwise
}

func vulkanPolygonMode(f renderer.FillMode) vk.PolygonMode {
	if f == renderer.FillModeWireframe {
		return vk.PolygonModeLine
	}
	return vk.PolygonModeFill
}

func vulkanShaderStageFlag(s renderer.ShaderStage) vk.ShaderStageFlagBits {
	switch s {
	case renderer.ShaderStageVertex:
		return vk.ShaderStageVertexBit
	case renderer.ShaderStageTessellationControl:
		return vk.ShaderStageTessellationControlBit
	case renderer.ShaderStageTessellationEvaluation:
		return vk.ShaderStageTessellationEvaluationBit
	case renderer.ShaderStageGeometry:
		return vk.ShaderStageGeometryBit
	case renderer.ShaderStageFragment:
		return vk.ShaderStageFragmentBit
	case renderer.ShaderStageCompute:
		return vk.ShaderStageComputeBit
	default:
		return vk.ShaderStageVertexBit
	}
}

// vulkanVisibilityStageFlags folds a ShaderVisibility bitmask into the
// union of native stage-flag bits it covers.
func vulkanVisibilityStageFlags(v renderer.ShaderVisibility) vk.ShaderStageFlags {
	var flags vk.ShaderStageFlagBits
	if v&renderer.ShaderVisibilityVertex != 0 {
		flags |= vk.ShaderStageVertexBit
	}
	if v&renderer.ShaderVisibilityTessellationControl != 0 {
		flags |= vk.ShaderStageTessellationControlBit
	}
	if v&renderer.ShaderVisibilityTessellationEvaluation != 0 {
		flags |= vk.ShaderStageTessellationEvaluationBit
	}
	if v&renderer.ShaderVisibilityGeometry != 0 {
		flags |= vk.ShaderStageGeometryBit
	}
	if v&renderer.ShaderVisibilityFragment != 0 {
		flags |= vk.ShaderStageFragmentBit
	}
	if v&renderer.ShaderVisibilityCompute != 0 {
		flags |= vk.ShaderStageComputeBit
	}
	return vk.ShaderStageFlags(flags)
}

func vulkanVertexAttributeFormat(f renderer.VertexAttributeFormat) vk.Format {
	switch f {
	case renderer.VertexAttributeFormatFloat1:
		return vk.FormatR32Sfloat
	case renderer.VertexAttributeFormatFloat2:
		return vk.FormatR32g32Sfloat
	case renderer.VertexAttributeFormatFloat3:
		return vk.FormatR32g32b32Sfloat
	case renderer.VertexAttributeFormatFloat4:
		return vk.FormatR32g32b32a32Sfloat
	case renderer.VertexAttributeFormatByte4:
		return vk.FormatR8g8b8a8Unorm
	case renderer.VertexAttributeFormatUint:
		return vk.FormatR32Uint
	default:
		return vk.FormatR32g32b32Sfloat
	}
}

func vulkanIndexType(f renderer.IndexBufferFormat) vk.IndexType {
	switch f {
	case renderer.IndexBufferFormatUnsignedShort:
		return vk.IndexTypeUint16
	default:
		return vk.IndexTypeUint32
	}
}

func vulkanSampleCount(m renderer.MultisampleCount) vk.SampleCountFlagBits {
	switch m {
	case renderer.MultisampleCount2x:
		return vk.SampleCount2Bit
	case renderer.MultisampleCount4x:
		return vk.SampleCount4Bit
	case renderer.MultisampleCount8x:
		return vk.SampleCount8Bit
	default:
		return vk.SampleCount1Bit
	}
}

var descriptorTypeTable = map[renderer.DescriptorType]vk.DescriptorType{
	renderer.DescriptorTypeUniformTexelBuffer:    vk.DescriptorTypeUniformTexelBuffer,
	renderer.DescriptorTypeStorageTexelBuffer:    vk.DescriptorTypeStorageTexelBuffer,
	renderer.DescriptorTypeStorageBuffer:         vk.DescriptorTypeStorageBuffer,
	renderer.DescriptorTypeUniformBuffer:         vk.DescriptorTypeUniformBuffer,
	renderer.DescriptorTypeCombinedImageSampler:  vk.DescriptorTypeCombinedImageSampler,
	renderer.DescriptorTypeStorageImage:          vk.DescriptorTypeStorageImage,
}

// vulkanDescriptorType resolves a (ResourceKind, RangeType) pair to its
// native descriptor type via the shared resolution table.
func vulkanDescriptorType(kind renderer.ResourceKind, rt renderer.RangeType) (vk.DescriptorType, bool) {
	dt, ok := renderer.ResolveDescriptorType(kind, rt)
	if !ok {
		return 0, false
	}
	vt, ok := descriptorTypeTable[dt]
	return vt, ok
}

// vulkanClearAspect folds a ClearFlag bitmask into the native image
// aspect mask the clear targets.
func vulkanClearAspect(f renderer.ClearFlag) vk.ImageAspectFlags {
	var aspect vk.ImageAspectFlagBits
	if f&renderer.ClearFlagColor != 0 {
		aspect |= vk.ImageAspectColorBit
	}
	if f&renderer.ClearFlagDepth != 0 {
		aspect |= vk.ImageAspectDepthBit
	}
	if f&renderer.ClearFlagStencil != 0 {
		aspect |= vk.ImageAspectStencilBit
	}
	return vk.ImageAspectFlags(aspect)
}
